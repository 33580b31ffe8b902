package rest

import (
	"context"
	"errors"
	"mySmartShop/business/recommender"
	"mySmartShop/domain"
	"mySmartShop/pkg/logger"
	"mySmartShop/pkg/metrics"
	"net/http"
	"strconv"
	"time"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type (
	RecommendationHandler struct {
		validate              *validator.Validate
		recommendationService RecommendationService
		timeout               time.Duration
	}

	RecommendationService interface {
		Recommend(ctx context.Context, userID uint, opts recommender.RecommendOptions) ([]domain.RecommendedItem, error)
		CachedRecommendations(ctx context.Context, userID uint) ([]domain.RecommendedItem, bool)
		StoredRecommendations(ctx context.Context, userID uint, limit int) ([]domain.Recommendation, error)
		Insights(ctx context.Context, userID uint) (domain.UserInsights, error)
	}

	GenerateRecommendationsRequest struct {
		Limit              int      `json:"limit" validate:"omitempty,gte=1,lte=50"`
		IncludeExplanation bool     `json:"include_explanation"`
		CollabWeight       *float64 `json:"collab_weight,omitempty" validate:"omitempty,gte=0,lte=1"`
		ContentWeight      *float64 `json:"content_weight,omitempty" validate:"omitempty,gte=0,lte=1"`
		DiversityCap       *int     `json:"diversity_cap,omitempty" validate:"omitempty,gte=1"`
	}

	LatestRecommendationsQuery struct {
		Limit int `query:"limit" validate:"omitempty,gte=1,lte=50"`
	}

	GenerateRecommendationsResponse struct {
		Items       []domain.RecommendedItem `json:"items"`
		GeneratedAt time.Time                `json:"generated_at"`
	}
)

// generation runs the full scoring pass, so it gets a longer budget than
// the plain CRUD handlers
const generateTimeout = 30 * time.Second

func NewRecommendationHandler(svc RecommendationService) *RecommendationHandler {
	return &RecommendationHandler{
		validate:              validator.New(),
		recommendationService: svc,
		timeout:               generateTimeout,
	}
}

func (h *RecommendationHandler) targetUserID(c echo.Context) (uint, error) {
	idStr := c.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil {
		return 0, errors.New("invalid user ID")
	}

	return uint(id), nil
}

// Generate runs the scoring pass and returns the ranked list.
func (h *RecommendationHandler) Generate(c echo.Context) error {
	userID, err := h.targetUserID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	var req GenerateRecommendationsRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	metrics.RecommendRequests.Inc()
	timer := time.Now()

	items, err := h.recommendationService.Recommend(ctx, userID, recommender.RecommendOptions{
		Limit:              req.Limit,
		IncludeExplanation: req.IncludeExplanation,
		CollabWeight:       req.CollabWeight,
		ContentWeight:      req.ContentWeight,
		DiversityCap:       req.DiversityCap,
	})

	metrics.RecommendLatency.Observe(time.Since(timer).Seconds())

	if err != nil {
		logger.Error("Failed to generate recommendations", err)
		if errors.Is(err, recommender.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(GenerateRecommendationsResponse{
		Items:       items,
		GeneratedAt: time.Now().UTC(),
	}))
}

// Latest serves the most recently generated list: the cache if fresh,
// otherwise the persisted batch.
func (h *RecommendationHandler) Latest(c echo.Context) error {
	userID, err := h.targetUserID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	var q LatestRecommendationsQuery
	if err := c.Bind(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if q.Limit <= 0 {
		q.Limit = 10
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	if items, ok := h.recommendationService.CachedRecommendations(ctx, userID); ok {
		if len(items) > q.Limit {
			items = items[:q.Limit]
		}
		return c.JSON(http.StatusOK, fres.Response.StatusOK(items))
	}

	stored, err := h.recommendationService.StoredRecommendations(ctx, userID, q.Limit)
	if err != nil {
		logger.Error("Failed to load stored recommendations", err)
		if errors.Is(err, recommender.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(stored))
}

// Insights exposes the profile summary backing the recommendations.
func (h *RecommendationHandler) Insights(c echo.Context) error {
	userID, err := h.targetUserID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	insights, err := h.recommendationService.Insights(ctx, userID)
	if err != nil {
		logger.Error("Failed to build user insights", err)
		if errors.Is(err, recommender.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(insights))
}
