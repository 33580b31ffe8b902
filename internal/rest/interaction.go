package rest

import (
	"context"
	"mySmartShop/domain"
	"mySmartShop/pkg/logger"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"gorm.io/datatypes"
)

type (
	InteractionHandler struct {
		validate           *validator.Validate
		interactionService InteractionService
		timeout            time.Duration
	}

	InteractionService interface {
		RecordInteraction(ctx context.Context, interaction *domain.Interaction) (*domain.Interaction, error)
		GetUserInteractions(ctx context.Context, userID uint, since time.Time) ([]domain.Interaction, error)
		CountUserInteractions(ctx context.Context, userID uint) (int64, error)
	}

	RecordInteractionRequest struct {
		ProductID uint64            `json:"product_id" validate:"required"`
		Kind      string            `json:"kind" validate:"required,oneof=view click cart purchase rating"`
		Rating    *float64          `json:"rating,omitempty" validate:"omitempty,gte=1,lte=5"`
		Duration  *int              `json:"duration,omitempty" validate:"omitempty,gte=0"`
		Context   datatypes.JSONMap `json:"context,omitempty"`
	}

	InteractionHistoryQuery struct {
		Days int `query:"days" validate:"omitempty,gte=1,lte=365"`
	}
)

func NewInteractionHandler(svc InteractionService) *InteractionHandler {
	return &InteractionHandler{
		validate:           validator.New(),
		interactionService: svc,
		timeout:            10 * time.Second,
	}
}

func (h *InteractionHandler) Record(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	var req RecordInteractionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	interaction := &domain.Interaction{
		UserID:    userID,
		ProductID: req.ProductID,
		Kind:      req.Kind,
		Rating:    req.Rating,
		Duration:  req.Duration,
		Context:   req.Context,
	}

	recorded, err := h.interactionService.RecordInteraction(ctx, interaction)
	if err != nil {
		logger.Error("Failed to record interaction", err)
		if strings.Contains(err.Error(), "not found") {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(recorded))
}

func (h *InteractionHandler) History(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	// admins can read another user's history via the id param
	if idStr := c.Param("id"); idStr != "" {
		id, err := strconv.ParseUint(idStr, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid user ID"})
		}
		userID = uint(id)
	}

	var q InteractionHistoryQuery
	if err := c.Bind(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if q.Days <= 0 {
		q.Days = 30
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	since := time.Now().AddDate(0, 0, -q.Days)
	interactions, err := h.interactionService.GetUserInteractions(ctx, userID, since)
	if err != nil {
		logger.Error("Failed to get user interactions", err)
		if strings.Contains(err.Error(), "not found") {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	total, err := h.interactionService.CountUserInteractions(ctx, userID)
	if err != nil {
		logger.Error("Failed to count user interactions", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(map[string]interface{}{
		"total_all_time": total,
		"days":           q.Days,
		"interactions":   interactions,
	}))
}
