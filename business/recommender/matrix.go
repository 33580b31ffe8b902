package recommender

import (
	"fmt"
	"mySmartShop/domain"
	"time"
)

// userVector is the sparse product → accumulated weight mapping for one
// user. Only non-zero entries are stored.
type userVector map[uint64]float64

// buildUserVectors folds the interaction snapshot into one weighted vector
// per user. K interactions with the same (user, product) pair contribute
// the sum of K individually decayed terms, never an overwrite. Users with
// no interactions simply have no entry.
func buildUserVectors(interactions []domain.Interaction, now time.Time, cfg Config) (map[uint]userVector, error) {
	vectors := make(map[uint]userVector)

	for _, it := range interactions {
		w, err := cfg.interactionWeight(it, now)
		if err != nil {
			return nil, fmt.Errorf("interaction %d (user %d): %w", it.ID, it.UserID, err)
		}

		vec, ok := vectors[it.UserID]
		if !ok {
			vec = make(userVector)
			vectors[it.UserID] = vec
		}
		vec[it.ProductID] += w
	}

	return vectors, nil
}
