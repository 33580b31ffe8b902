package recommender

import (
	"mySmartShop/domain"
	"sort"
)

// popularityRanking is the cold-start fallback: products ranked by
// interaction volume inside the recency window, ties broken by catalog
// rating then product id. With no interactions at all the catalog rating
// alone decides, so a brand-new system still produces an ordering. Scores
// step down by rank and floor above zero so the output keeps a usable
// ordering signal.
func popularityRanking(interactions []domain.Interaction, catalog map[uint64]domain.Product, limit int) []scoredCandidate {
	counts := make(map[uint64]int)
	for _, it := range interactions {
		if _, ok := catalog[it.ProductID]; ok {
			counts[it.ProductID]++
		}
	}

	type popular struct {
		id     uint64
		count  int
		rating float64
	}

	ranked := make([]popular, 0, len(catalog))
	for id, product := range catalog {
		ranked = append(ranked, popular{id: id, count: counts[id], rating: product.Rating})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].count != ranked[j].count {
			return ranked[i].count > ranked[j].count
		}
		if ranked[i].rating != ranked[j].rating {
			return ranked[i].rating > ranked[j].rating
		}
		return ranked[i].id < ranked[j].id
	})

	if limit > len(ranked) {
		limit = len(ranked)
	}

	out := make([]scoredCandidate, 0, limit)
	for i := 0; i < limit; i++ {
		score := 1.0 - 0.05*float64(i)
		if score < 0.05 {
			score = 0.05
		}

		product := catalog[ranked[i].id]
		out = append(out, scoredCandidate{
			productID: ranked[i].id,
			hybrid:    score,
			rating:    product.Rating,
			category:  product.Category,
		})
	}

	return out
}
