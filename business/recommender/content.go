package recommender

import (
	"math"
	"mySmartShop/domain"
)

// Fixed sub-score weights for content matching. Category dominates: it is
// the strongest taste signal the interaction log carries.
const (
	categoryMatchWeight  = 0.4
	brandMatchWeight     = 0.2
	priceMatchWeight     = 0.2
	attributeMatchWeight = 0.2
)

// contentScore rates how well a candidate fits the user profile, in [0,1].
// With an empty profile there is no basis for preference and every
// candidate scores zero; ranking then falls back to popularity ordering.
func contentScore(p domain.Product, prof *profile) float64 {
	if prof.empty() {
		return 0
	}

	score := 0.0

	if w, ok := prof.categoryWeight[p.Category]; ok && prof.totalCategoryWeight > 0 {
		score += categoryMatchWeight * (w / prof.totalCategoryWeight)
	}

	if p.Brand != "" {
		if w, ok := prof.brandWeight[p.Brand]; ok && prof.totalBrandWeight > 0 {
			score += brandMatchWeight * (w / prof.totalBrandWeight)
		}
	}

	score += priceMatchWeight * priceSimilarity(p.Price, prof.priceMean)
	score += attributeMatchWeight * attributeMatch(p.Attributes, prof.attributes)

	return score
}

// priceSimilarity is 1 at the user's historical mean and falls linearly
// with relative distance, clipped to [0,1].
func priceSimilarity(price, mean float64) float64 {
	if mean <= 0 {
		return 0
	}

	sim := 1.0 - math.Abs(price-mean)/mean
	if sim < 0 {
		return 0
	}
	if sim > 1 {
		return 1
	}

	return sim
}

// attributeMatch is the fraction of preferred attribute keys whose
// favorite value the candidate reproduces. No preference means no match.
func attributeMatch(attrs map[string]any, preferred map[string]string) float64 {
	if len(preferred) == 0 {
		return 0
	}

	matches := 0
	for key, want := range preferred {
		raw, ok := attrs[key]
		if !ok {
			continue
		}
		if got, comparable := attributeValueKey(raw); comparable && got == want {
			matches++
		}
	}

	return float64(matches) / float64(len(preferred))
}
