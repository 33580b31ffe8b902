package recommender

import (
	"math"
	"mySmartShop/domain"
)

const (
	insightsTopAffinities = 3
	insightsMaxPurchases  = 5
)

// buildInsights projects the profile into the read-only view the UI and
// the explanation generator consume. An empty profile yields empty lists
// and zero counters, never fabricated statistics.
func buildInsights(prof *profile, interactions []domain.Interaction, catalog map[uint64]domain.Product) domain.UserInsights {
	insights := domain.UserInsights{
		FavoriteCategories: []domain.CategoryAffinity{},
		FavoriteBrands:     []domain.BrandAffinity{},
		RecentPurchases:    []domain.PurchaseSummary{},
	}

	if prof.empty() {
		return insights
	}

	insights.TotalInteractions = prof.interactions
	insights.AvgPrice = round2(prof.priceMean)
	insights.PriceSpread = round2(prof.priceStd)

	for i, a := range prof.categories {
		if i == insightsTopAffinities {
			break
		}
		insights.FavoriteCategories = append(insights.FavoriteCategories, domain.CategoryAffinity{
			Category: a.key,
			Weight:   round2(a.weight),
		})
	}

	for i, a := range prof.brands {
		if i == insightsTopAffinities {
			break
		}
		insights.FavoriteBrands = append(insights.FavoriteBrands, domain.BrandAffinity{
			Brand:  a.key,
			Weight: round2(a.weight),
		})
	}

	// interactions arrive time-ordered, so walk backwards for the most
	// recent purchases first
	for i := len(interactions) - 1; i >= 0; i-- {
		it := interactions[i]
		if it.Kind != domain.InteractionPurchase {
			continue
		}

		product, ok := catalog[it.ProductID]
		if !ok {
			continue
		}

		insights.RecentPurchases = append(insights.RecentPurchases, domain.PurchaseSummary{
			Name:     product.Name,
			Category: product.Category,
			Price:    product.Price,
		})
		if len(insights.RecentPurchases) == insightsMaxPurchases {
			break
		}
	}

	return insights
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
