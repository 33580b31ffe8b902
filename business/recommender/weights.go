package recommender

import (
	"fmt"
	"mySmartShop/domain"
	"time"
)

// baseWeight looks up the signal strength for an interaction kind. A
// rating interaction keeps its flat base weight regardless of the rating's
// numeric value.
func (cfg Config) baseWeight(kind string) (float64, error) {
	w, ok := cfg.InteractionWeights[kind]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownInteractionKind, kind)
	}

	return w, nil
}

// decayedWeight fades a base weight by whole days of age. Same-day
// interactions keep their full weight; the decay is strictly monotonic and
// never reaches zero. Negative day counts are rejected.
func decayedWeight(base float64, daysSince int, decayRate float64) (float64, error) {
	if daysSince < 0 {
		return 0, fmt.Errorf("%w: %d days ahead", ErrFutureInteraction, -daysSince)
	}

	return base / (1.0 + float64(daysSince)*decayRate), nil
}

func (cfg Config) interactionWeight(it domain.Interaction, now time.Time) (float64, error) {
	base, err := cfg.baseWeight(it.Kind)
	if err != nil {
		return 0, err
	}

	return decayedWeight(base, daysBetween(it.Timestamp, now), cfg.RecencyDecayRate)
}

// daysBetween truncates to whole days, the granularity interactions decay
// at. Any future timestamp maps to -1 so the caller rejects it even when
// the clock skew is under a day.
func daysBetween(from, to time.Time) int {
	if from.After(to) {
		return -1
	}

	return int(to.Sub(from).Hours() / 24)
}
