package recommender

import "sort"

// scoredCandidate carries both sub-scores through fusion and the diversity
// walk. Category and rating ride along so neither pass needs catalog
// lookups.
type scoredCandidate struct {
	productID  uint64
	collab     float64
	content    float64
	hybrid     float64
	rating     float64
	category   string
	supporters int
}

// rankLess is the one ordering used everywhere: hybrid score descending,
// catalog rating descending, product id ascending. Fully deterministic.
func rankLess(a, b scoredCandidate) bool {
	if a.hybrid != b.hybrid {
		return a.hybrid > b.hybrid
	}
	if a.rating != b.rating {
		return a.rating > b.rating
	}
	return a.productID < b.productID
}

// fuseAndRank combines collaborative and content sub-scores with the given
// weights and sorts candidates deterministically.
func fuseAndRank(cands []scoredCandidate, collabWeight, contentWeight float64) []scoredCandidate {
	for i := range cands {
		cands[i].hybrid = collabWeight*cands[i].collab + contentWeight*cands[i].content
	}

	sort.Slice(cands, func(i, j int) bool {
		return rankLess(cands[i], cands[j])
	})

	return cands
}

// selectDiverse walks the ranked list admitting at most capPerCategory
// items per category. If the capped walk cannot fill limit slots, the cap
// is relaxed: remaining slots are filled from the highest-ranked skipped
// candidates and the result is emitted in overall rank order.
func selectDiverse(ranked []scoredCandidate, capPerCategory, limit int) []scoredCandidate {
	if limit <= 0 {
		return nil
	}

	selected := make([]scoredCandidate, 0, limit)
	skipped := make([]scoredCandidate, 0)
	perCategory := make(map[string]int)

	for _, c := range ranked {
		if len(selected) == limit {
			break
		}

		if capPerCategory > 0 && perCategory[c.category] >= capPerCategory {
			skipped = append(skipped, c)
			continue
		}

		selected = append(selected, c)
		perCategory[c.category]++
	}

	if len(selected) == limit || len(skipped) == 0 {
		return selected
	}

	need := limit - len(selected)
	if need > len(skipped) {
		need = len(skipped)
	}
	selected = append(selected, skipped[:need]...)

	// both slices are subsequences of ranked, so re-sorting with the same
	// comparator restores the overall ordering
	sort.Slice(selected, func(i, j int) bool {
		return rankLess(selected[i], selected[j])
	})

	return selected
}

// confidence grows monotonically with both the number of neighbors backing
// an item and the strength of its hybrid score. It is reported alongside
// each recommendation but never used for ranking. Range [0,1].
func confidence(supporters int, hybrid float64) float64 {
	support := float64(supporters+1) / float64(supporters+2)

	return hybrid * support
}
