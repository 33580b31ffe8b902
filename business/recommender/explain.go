package recommender

import (
	"context"
	"fmt"
	"math"
	"mySmartShop/domain"
	"mySmartShop/pkg/logger"
	"strings"

	"golang.org/x/sync/errgroup"
)

// explainConcurrency bounds the fan-out against the text-generation
// service so a long list never floods it.
const explainConcurrency = 4

const maxFallbackReasons = 2

// attachExplanations fills the Explanation field of every item, in place.
// Calls run concurrently under a bounded group; each call has its own
// timeout, and any failure falls back to the rule-based text. Request
// cancellation stops further calls but already-fetched texts are kept.
func (s *Service) attachExplanations(ctx context.Context, items []domain.RecommendedItem, insights domain.UserInsights) {
	if s.explainRepo == nil {
		for i := range items {
			items[i].Explanation = fallbackExplanation(items[i].Product, insights)
		}
		return
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(explainConcurrency)

	for i := range items {
		g.Go(func() error {
			if gctx.Err() != nil {
				items[i].Explanation = fallbackExplanation(items[i].Product, insights)
				return nil
			}

			callCtx, cancel := context.WithTimeout(gctx, s.explainTimeout)
			defer cancel()

			text, err := s.explainRepo.Explain(callCtx, insights, items[i].Product, items[i].Score, items[i].Rank)
			if err != nil {
				ExplanationFailuresTotal.Inc()
				logger.Warn("explanation generation failed, using fallback",
					"product_id", items[i].ProductID,
					"error", err,
				)
				items[i].Explanation = fallbackExplanation(items[i].Product, insights)
				return nil
			}

			items[i].Explanation = text
			return nil
		})
	}

	_ = g.Wait()
}

// fallbackExplanation builds a deterministic one-sentence explanation from
// the user's insights when the generation service is unavailable.
func fallbackExplanation(product domain.Product, insights domain.UserInsights) string {
	reasons := make([]string, 0, 4)

	if len(insights.FavoriteCategories) > 0 && insights.FavoriteCategories[0].Category == product.Category {
		reasons = append(reasons, fmt.Sprintf("matches your interest in %s", product.Category))
	}

	if product.Brand != "" {
		for _, b := range insights.FavoriteBrands {
			if b.Brand == product.Brand {
				reasons = append(reasons, fmt.Sprintf("comes from %s, a brand you shop often", product.Brand))
				break
			}
		}
	}

	if product.Rating >= 4.5 {
		reasons = append(reasons, fmt.Sprintf("holds an excellent %.1f/5.0 rating", product.Rating))
	}

	if insights.AvgPrice > 0 && math.Abs(product.Price-insights.AvgPrice)/insights.AvgPrice < 0.3 {
		reasons = append(reasons, "fits your usual price range")
	}

	if len(reasons) == 0 {
		return fmt.Sprintf("%s is a popular pick in %s among shoppers with similar taste.", product.Name, product.Category)
	}
	if len(reasons) > maxFallbackReasons {
		reasons = reasons[:maxFallbackReasons]
	}

	return fmt.Sprintf("%s is recommended because it %s.", product.Name, strings.Join(reasons, " and "))
}
