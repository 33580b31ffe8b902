//go:build !integration

package recommender

import (
	"math"
	"mySmartShop/domain"
	"testing"
	"time"
)

func TestCosineSimilarity(t *testing.T) {
	a := userVector{1: 3, 2: 4}

	if got := cosineSimilarity(a, a); !almostEqual(got, 1.0) {
		t.Errorf("self similarity = %v, want 1.0", got)
	}

	// no overlapping products
	b := userVector{3: 5, 4: 1}
	if got := cosineSimilarity(a, b); got != 0 {
		t.Errorf("disjoint similarity = %v, want 0", got)
	}

	// hand-computed: dot = 3*6 + 4*8 = 50, |a| = 5, |c| = 10
	c := userVector{1: 6, 2: 8}
	if got := cosineSimilarity(a, c); !almostEqual(got, 1.0) {
		t.Errorf("scaled similarity = %v, want 1.0", got)
	}

	d := userVector{1: 4, 2: 3}
	want := (3.0*4 + 4.0*3) / (5.0 * 5.0) // 24/25
	if got := cosineSimilarity(a, d); !almostEqual(got, want) {
		t.Errorf("similarity = %v, want %v", got, want)
	}

	if got := cosineSimilarity(a, userVector{}); got != 0 {
		t.Errorf("empty vector similarity = %v, want 0", got)
	}
}

func TestTopNeighborsOrderAndTruncation(t *testing.T) {
	vectors := map[uint]userVector{
		1: {10: 5, 20: 3},
		2: {10: 5, 20: 3},  // identical to target: sim 1.0
		3: {10: 5, 20: 3},  // also identical: tie broken by user id
		4: {10: 1, 30: 10}, // weak overlap
		5: {40: 2},         // no overlap
	}

	neighbors := topNeighbors(1, vectors, 2)

	if len(neighbors) != 2 {
		t.Fatalf("got %d neighbors, want 2", len(neighbors))
	}
	if neighbors[0].userID != 2 || neighbors[1].userID != 3 {
		t.Errorf("neighbor order = [%d %d], want [2 3]", neighbors[0].userID, neighbors[1].userID)
	}

	// without truncation, user 5 must still be excluded (sim 0)
	all := topNeighbors(1, vectors, 10)
	for _, n := range all {
		if n.userID == 5 {
			t.Error("user with no overlap must not appear as a neighbor")
		}
		if n.userID == 1 {
			t.Error("target must not be its own neighbor")
		}
	}
}

func TestTopNeighborsEmptyTarget(t *testing.T) {
	vectors := map[uint]userVector{
		2: {10: 5},
	}

	if got := topNeighbors(1, vectors, 5); got != nil {
		t.Errorf("neighbors for absent target = %v, want nil", got)
	}
}

func TestCollaborativeScoresExcludesOwnProducts(t *testing.T) {
	vectors := map[uint]userVector{
		1: {10: 5},
		2: {10: 5, 20: 3, 30: 1},
		3: {10: 4, 20: 2},
	}

	scores, supporters := collaborativeScores(1, vectors, 10)

	if _, ok := scores[10]; ok {
		t.Error("target's own product must never receive a collaborative score")
	}
	if _, ok := scores[20]; !ok {
		t.Fatal("product 20 should be scored")
	}

	// max-normalization: the strongest candidate scores exactly 1.0
	maxScore := 0.0
	for _, s := range scores {
		if s > maxScore {
			maxScore = s
		}
	}
	if !almostEqual(maxScore, 1.0) {
		t.Errorf("max normalized score = %v, want 1.0", maxScore)
	}
	for pid, s := range scores {
		if s < 0 || s > 1+1e-9 {
			t.Errorf("score for product %d = %v, outside [0,1]", pid, s)
		}
	}

	if supporters[20] != 2 {
		t.Errorf("product 20 supporters = %d, want 2", supporters[20])
	}
	if supporters[30] != 1 {
		t.Errorf("product 30 supporters = %d, want 1", supporters[30])
	}
}

func TestCollaborativeScoresNoNeighbors(t *testing.T) {
	vectors := map[uint]userVector{
		1: {10: 5},
		2: {99: 2}, // no overlap with the target
	}

	scores, supporters := collaborativeScores(1, vectors, 10)
	if len(scores) != 0 {
		t.Errorf("scores with no neighbors = %v, want empty", scores)
	}
	if len(supporters) != 0 {
		t.Errorf("supporters with no neighbors = %v, want empty", supporters)
	}
}

// Weighted vectors built from real interactions: a purchase today (5.0)
// and a 30-day-old view (0.25) against a neighbor who shares only the
// purchased product.
func TestWeightedInteractionSimilarity(t *testing.T) {
	now := time.Now()
	interactions := []domain.Interaction{
		{UserID: 1, ProductID: 101, Kind: domain.InteractionPurchase, Timestamp: now},
		{UserID: 1, ProductID: 102, Kind: domain.InteractionView, Timestamp: now.Add(-30 * 24 * time.Hour)},
		{UserID: 2, ProductID: 101, Kind: domain.InteractionPurchase, Timestamp: now},
	}

	vectors, err := buildUserVectors(interactions, now, DefaultConfig())
	if err != nil {
		t.Fatalf("buildUserVectors: %v", err)
	}

	if !almostEqual(vectors[1][101], 5.0) {
		t.Errorf("purchase weight = %v, want 5.0", vectors[1][101])
	}
	if !almostEqual(vectors[1][102], 0.25) {
		t.Errorf("30-day view weight = %v, want 0.25", vectors[1][102])
	}

	want := 25.0 / (math.Sqrt(25.0+0.0625) * 5.0)
	got := cosineSimilarity(vectors[1], vectors[2])
	if !almostEqual(got, want) {
		t.Errorf("similarity = %v, want %v", got, want)
	}
	if math.Abs(got-0.9988) > 0.0001 {
		t.Errorf("similarity = %v, want about 0.9988", got)
	}
}

func TestMagnitude(t *testing.T) {
	if got := magnitude(userVector{1: 3, 2: 4}); !almostEqual(got, 5.0) {
		t.Errorf("magnitude = %v, want 5.0", got)
	}
	if got := magnitude(userVector{}); !almostEqual(got, 0) {
		t.Errorf("empty magnitude = %v, want 0", got)
	}
}
