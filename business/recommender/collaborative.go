package recommender

import (
	"math"
	"sort"
)

type neighbor struct {
	userID     uint
	similarity float64
}

// cosineSimilarity between two sparse vectors: dot product over shared
// dimensions divided by the product of the full magnitudes. A vector with
// no entries has undefined similarity and scores 0 against everyone.
func cosineSimilarity(a, b userVector) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	small, large := a, b
	if len(b) < len(a) {
		small, large = b, a
	}

	dot := 0.0
	for pid, w := range small {
		if w2, ok := large[pid]; ok {
			dot += w * w2
		}
	}
	if dot == 0 {
		return 0
	}

	return dot / (magnitude(a) * magnitude(b))
}

func magnitude(v userVector) float64 {
	sum := 0.0
	for _, w := range v {
		sum += w * w
	}

	return math.Sqrt(sum)
}

// topNeighbors ranks every other user by similarity to the target and
// keeps the k most similar with strictly positive similarity. Ties break
// on user id so the neighborhood is deterministic.
func topNeighbors(targetID uint, vectors map[uint]userVector, k int) []neighbor {
	target := vectors[targetID]
	if len(target) == 0 {
		return nil
	}

	neighbors := make([]neighbor, 0, len(vectors))
	for uid, vec := range vectors {
		if uid == targetID {
			continue
		}

		sim := cosineSimilarity(target, vec)
		if sim <= 0 {
			continue
		}

		neighbors = append(neighbors, neighbor{userID: uid, similarity: sim})
	}

	sort.Slice(neighbors, func(i, j int) bool {
		if neighbors[i].similarity != neighbors[j].similarity {
			return neighbors[i].similarity > neighbors[j].similarity
		}
		return neighbors[i].userID < neighbors[j].userID
	})

	if len(neighbors) > k {
		neighbors = neighbors[:k]
	}

	return neighbors
}

// collaborativeScores accumulates neighbor signal for products the target
// has not interacted with, normalized to [0,1] by the run maximum. With no
// neighbors every candidate scores zero and ranking defers to the content
// side. The supporter count per product feeds the confidence value.
func collaborativeScores(targetID uint, vectors map[uint]userVector, k int) (map[uint64]float64, map[uint64]int) {
	scores := make(map[uint64]float64)
	supporters := make(map[uint64]int)

	target := vectors[targetID]

	for _, n := range topNeighbors(targetID, vectors, k) {
		for pid, w := range vectors[n.userID] {
			// the target's own interacted products are never candidates
			if _, seen := target[pid]; seen {
				continue
			}

			scores[pid] += n.similarity * w
			supporters[pid]++
		}
	}

	maxScore := 0.0
	for _, s := range scores {
		if s > maxScore {
			maxScore = s
		}
	}
	if maxScore > 0 {
		for pid := range scores {
			scores[pid] /= maxScore
		}
	}

	return scores, supporters
}
