//go:build !integration

package recommender

import (
	"testing"

	"mySmartShop/domain"
)

func TestFuseAndRankWeighting(t *testing.T) {
	cands := []scoredCandidate{
		{productID: 1, collab: 1.0, content: 0.0},
		{productID: 2, collab: 0.0, content: 1.0},
	}

	ranked := fuseAndRank(cands, 0.6, 0.4)

	if !almostEqual(ranked[0].hybrid, 0.6) || ranked[0].productID != 1 {
		t.Errorf("top = %+v, want product 1 at 0.6", ranked[0])
	}
	if !almostEqual(ranked[1].hybrid, 0.4) || ranked[1].productID != 2 {
		t.Errorf("second = %+v, want product 2 at 0.4", ranked[1])
	}
}

func TestFuseAndRankExtremeWeights(t *testing.T) {
	cands := []scoredCandidate{
		{productID: 1, collab: 0.9, content: 0.1},
		{productID: 2, collab: 0.1, content: 0.9},
	}

	// pure collaborative
	ranked := fuseAndRank(append([]scoredCandidate(nil), cands...), 1.0, 0.0)
	if ranked[0].productID != 1 {
		t.Errorf("pure collab top = %d, want 1", ranked[0].productID)
	}

	// pure content
	ranked = fuseAndRank(append([]scoredCandidate(nil), cands...), 0.0, 1.0)
	if ranked[0].productID != 2 {
		t.Errorf("pure content top = %d, want 2", ranked[0].productID)
	}
}

func TestFuseAndRankTieBreaks(t *testing.T) {
	cands := []scoredCandidate{
		{productID: 9, collab: 0.5, rating: 4.0},
		{productID: 3, collab: 0.5, rating: 4.0}, // same score and rating: id wins
		{productID: 5, collab: 0.5, rating: 4.8}, // same score, better rating
	}

	ranked := fuseAndRank(cands, 1.0, 0.0)

	wantOrder := []uint64{5, 3, 9}
	for i, want := range wantOrder {
		if ranked[i].productID != want {
			t.Errorf("rank %d = product %d, want %d", i, ranked[i].productID, want)
		}
	}
}

func TestSelectDiverseCap(t *testing.T) {
	ranked := []scoredCandidate{
		{productID: 1, hybrid: 0.9, category: "shoes"},
		{productID: 2, hybrid: 0.8, category: "shoes"},
		{productID: 3, hybrid: 0.7, category: "shoes"},
		{productID: 4, hybrid: 0.6, category: "shoes"}, // over the cap
		{productID: 5, hybrid: 0.5, category: "hats"},
	}

	selected := selectDiverse(ranked, 3, 4)

	if len(selected) != 4 {
		t.Fatalf("got %d items, want 4", len(selected))
	}

	shoes := 0
	for _, c := range selected {
		if c.category == "shoes" {
			shoes++
		}
	}
	if shoes != 3 {
		t.Errorf("shoes selected = %d, want 3", shoes)
	}
	if selected[3].productID != 5 {
		t.Errorf("last slot = product %d, want 5", selected[3].productID)
	}
}

func TestSelectDiverseRelaxation(t *testing.T) {
	// only one category available: the cap alone cannot fill the limit
	ranked := []scoredCandidate{
		{productID: 1, hybrid: 0.9, category: "shoes"},
		{productID: 2, hybrid: 0.8, category: "shoes"},
		{productID: 3, hybrid: 0.7, category: "shoes"},
		{productID: 4, hybrid: 0.6, category: "shoes"},
		{productID: 5, hybrid: 0.5, category: "shoes"},
	}

	selected := selectDiverse(ranked, 3, 5)

	if len(selected) != 5 {
		t.Fatalf("relaxation should fill all 5 slots, got %d", len(selected))
	}

	// overall ordering is preserved after relaxation
	for i := 1; i < len(selected); i++ {
		if rankLess(selected[i], selected[i-1]) {
			t.Fatalf("ordering broken at index %d: %+v before %+v", i, selected[i-1], selected[i])
		}
	}
	for i, want := range []uint64{1, 2, 3, 4, 5} {
		if selected[i].productID != want {
			t.Errorf("slot %d = product %d, want %d", i, selected[i].productID, want)
		}
	}
}

func TestSelectDiverseShortList(t *testing.T) {
	ranked := []scoredCandidate{
		{productID: 1, hybrid: 0.9, category: "shoes"},
	}

	selected := selectDiverse(ranked, 3, 10)
	if len(selected) != 1 {
		t.Errorf("got %d items, want 1", len(selected))
	}

	if got := selectDiverse(ranked, 3, 0); got != nil {
		t.Errorf("zero limit = %v, want nil", got)
	}
}

func TestConfidence(t *testing.T) {
	// no supporters: hybrid * 1/2
	if got := confidence(0, 0.8); !almostEqual(got, 0.4) {
		t.Errorf("confidence(0, 0.8) = %v, want 0.4", got)
	}

	// grows with supporters, bounded by the hybrid score
	prev := 0.0
	for supporters := 0; supporters <= 50; supporters++ {
		c := confidence(supporters, 0.8)
		if c <= prev {
			t.Fatalf("confidence not increasing at %d supporters", supporters)
		}
		if c > 0.8 {
			t.Fatalf("confidence %v exceeds hybrid score", c)
		}
		prev = c
	}
}

func TestPopularityRanking(t *testing.T) {
	catalog := map[uint64]domain.Product{
		1: {ID: 1, Category: "shoes", Rating: 4.0},
		2: {ID: 2, Category: "hats", Rating: 4.9},
		3: {ID: 3, Category: "shoes", Rating: 4.5},
	}

	interactions := []domain.Interaction{
		{UserID: 1, ProductID: 3, Kind: domain.InteractionView},
		{UserID: 2, ProductID: 3, Kind: domain.InteractionView},
		{UserID: 1, ProductID: 1, Kind: domain.InteractionView},
		{UserID: 1, ProductID: 999, Kind: domain.InteractionView}, // not in catalog
	}

	ranked := popularityRanking(interactions, catalog, 10)

	if len(ranked) != 3 {
		t.Fatalf("got %d items, want 3", len(ranked))
	}
	wantOrder := []uint64{3, 1, 2}
	for i, want := range wantOrder {
		if ranked[i].productID != want {
			t.Errorf("rank %d = product %d, want %d", i, ranked[i].productID, want)
		}
	}
	if !almostEqual(ranked[0].hybrid, 1.0) {
		t.Errorf("top popularity score = %v, want 1.0", ranked[0].hybrid)
	}
	if ranked[1].hybrid <= ranked[2].hybrid {
		t.Error("popularity scores must step down with rank")
	}
}

func TestPopularityRankingNoInteractions(t *testing.T) {
	catalog := map[uint64]domain.Product{
		1: {ID: 1, Category: "shoes", Rating: 4.0},
		2: {ID: 2, Category: "hats", Rating: 4.9},
	}

	// brand-new system: catalog rating decides
	ranked := popularityRanking(nil, catalog, 10)

	if len(ranked) != 2 || ranked[0].productID != 2 {
		t.Fatalf("rating fallback order wrong: %+v", ranked)
	}
}
