package recommender

import (
	"math"
	"mySmartShop/domain"
	"sort"
	"strconv"
	"time"
)

type affinity struct {
	key    string
	weight float64
}

// profile summarizes one user's taste from weighted interactions joined
// with catalog metadata. All statistics come from interactions only, never
// from the catalog alone. A user with no history has a nil profile ("no
// basis for preference"), never a zero-filled one.
type profile struct {
	categories []affinity // sorted by weight descending
	brands     []affinity

	categoryWeight      map[string]float64
	brandWeight         map[string]float64
	totalCategoryWeight float64
	totalBrandWeight    float64

	priceMean float64
	priceStd  float64

	// attributes holds, per attribute key, the weighted most frequent
	// canonical value across interacted products.
	attributes map[string]string

	interactions int
}

func (p *profile) empty() bool {
	return p == nil || p.interactions == 0
}

type weightedPrice struct {
	price  float64
	weight float64
}

func buildProfile(interactions []domain.Interaction, catalog map[uint64]domain.Product, now time.Time, cfg Config) (*profile, error) {
	if len(interactions) == 0 {
		return nil, nil
	}

	p := &profile{
		categoryWeight: make(map[string]float64),
		brandWeight:    make(map[string]float64),
		attributes:     make(map[string]string),
	}

	attrVotes := make(map[string]map[string]float64)
	prices := make([]weightedPrice, 0, len(interactions))
	var priceSum, priceWeightSum float64

	for _, it := range interactions {
		product, ok := catalog[it.ProductID]
		if !ok {
			// interaction references a product no longer in the catalog
			continue
		}

		w, err := cfg.interactionWeight(it, now)
		if err != nil {
			return nil, err
		}

		p.interactions++

		p.categoryWeight[product.Category] += w
		if product.Brand != "" {
			p.brandWeight[product.Brand] += w
		}

		prices = append(prices, weightedPrice{price: product.Price, weight: w})
		priceSum += w * product.Price
		priceWeightSum += w

		for key, raw := range product.Attributes {
			val, comparable := attributeValueKey(raw)
			if !comparable {
				continue
			}
			votes, ok := attrVotes[key]
			if !ok {
				votes = make(map[string]float64)
				attrVotes[key] = votes
			}
			votes[val] += w
		}
	}

	if p.interactions == 0 {
		return nil, nil
	}

	if priceWeightSum > 0 {
		p.priceMean = priceSum / priceWeightSum

		var varianceSum float64
		for _, wp := range prices {
			d := wp.price - p.priceMean
			varianceSum += wp.weight * d * d
		}
		p.priceStd = math.Sqrt(varianceSum / priceWeightSum)
	}

	p.categories, p.totalCategoryWeight = sortedAffinities(p.categoryWeight)
	p.brands, p.totalBrandWeight = sortedAffinities(p.brandWeight)

	for key, votes := range attrVotes {
		p.attributes[key] = topVote(votes)
	}

	return p, nil
}

func sortedAffinities(weights map[string]float64) ([]affinity, float64) {
	out := make([]affinity, 0, len(weights))
	total := 0.0

	for key, w := range weights {
		out = append(out, affinity{key: key, weight: w})
		total += w
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].weight != out[j].weight {
			return out[i].weight > out[j].weight
		}
		return out[i].key < out[j].key
	})

	return out, total
}

// topVote picks the heaviest value, ties broken lexicographically so the
// profile is deterministic.
func topVote(votes map[string]float64) string {
	best := ""
	bestWeight := math.Inf(-1)

	for val, w := range votes {
		if w > bestWeight || (w == bestWeight && val < best) {
			best = val
			bestWeight = w
		}
	}

	return best
}

// attributeValueKey canonicalizes the open string|number|boolean value
// union into a comparable key. Anything outside the union is not
// comparable and simply never matches.
func attributeValueKey(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case bool:
		return strconv.FormatBool(t), true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case int:
		return strconv.Itoa(t), true
	case int64:
		return strconv.FormatInt(t, 10), true
	default:
		return "", false
	}
}
