package recommender

import "mySmartShop/domain"

// Config collects every numeric knob of the scoring path in one place:
// interaction weights, recency decay, neighborhood size, fusion weights and
// the diversity cap.
type Config struct {
	// InteractionWeights maps interaction kind to its base signal strength.
	InteractionWeights map[string]float64

	// RecencyDecayRate fades weight as interactions age:
	// effective = base / (1 + days*rate). Never reaches zero.
	RecencyDecayRate float64

	// RecencyWindowDays bounds the interaction snapshot scanned per run.
	RecencyWindowDays int

	// NeighborCount is the K most similar users considered by the
	// collaborative scorer.
	NeighborCount int

	// Fusion weights for hybrid_score = collab*CollabWeight + content*ContentWeight.
	CollabWeight  float64
	ContentWeight float64

	// DiversityCap is the maximum number of same-category items admitted
	// before the cap is relaxed to fill remaining slots.
	DiversityCap int
}

const (
	defaultRecencyDecayRate  = 0.1
	defaultRecencyWindowDays = 30
	defaultNeighborCount     = 10
	defaultCollabWeight      = 0.6
	defaultContentWeight     = 0.4
	defaultDiversityCap      = 3

	weightView     = 1.0
	weightClick    = 2.0
	weightCart     = 3.0
	weightRating   = 4.0
	weightPurchase = 5.0
)

func DefaultConfig() Config {
	return Config{
		InteractionWeights: map[string]float64{
			domain.InteractionView:     weightView,
			domain.InteractionClick:    weightClick,
			domain.InteractionCart:     weightCart,
			domain.InteractionRating:   weightRating,
			domain.InteractionPurchase: weightPurchase,
		},
		RecencyDecayRate:  defaultRecencyDecayRate,
		RecencyWindowDays: defaultRecencyWindowDays,
		NeighborCount:     defaultNeighborCount,
		CollabWeight:      defaultCollabWeight,
		ContentWeight:     defaultContentWeight,
		DiversityCap:      defaultDiversityCap,
	}
}
