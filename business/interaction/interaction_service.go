package interaction

import (
	"context"
	"errors"
	"fmt"
	"mySmartShop/domain"
	"mySmartShop/pkg/logger"
	"time"
)

// InteractionRepository contract interface
type InteractionRepository interface {
	Create(ctx context.Context, interaction *domain.Interaction) error
	FindByUserSince(ctx context.Context, userID uint, since time.Time) ([]domain.Interaction, error)
	CountByUser(ctx context.Context, userID uint) (int64, error)
}

// ProductRepository contract interface
type ProductRepository interface {
	FindByID(ctx context.Context, id uint64) (domain.Product, error)
}

// UserRepository contract interface
type UserRepository interface {
	FindByID(ctx context.Context, id uint) (domain.User, error)
}

// RecommendationCacheInvalidator drops a user's cached recommendation
// list; a new interaction makes the cached ranking stale.
type RecommendationCacheInvalidator interface {
	Invalidate(ctx context.Context, userID uint) error
}

type interactionService struct {
	interactionRepo  InteractionRepository
	productRepo      ProductRepository
	userRepo         UserRepository
	cacheInvalidator RecommendationCacheInvalidator
}

func NewInteractionService(
	interactionRepo InteractionRepository,
	productRepo ProductRepository,
	userRepo UserRepository,
	cacheInvalidator RecommendationCacheInvalidator,
) *interactionService {
	return &interactionService{
		interactionRepo:  interactionRepo,
		productRepo:      productRepo,
		userRepo:         userRepo,
		cacheInvalidator: cacheInvalidator,
	}
}

func (s *interactionService) RecordInteraction(ctx context.Context, interaction *domain.Interaction) (*domain.Interaction, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when recording interaction")
		return nil, fmt.Errorf("context error: %w", err)
	}

	if !domain.ValidInteractionKinds[interaction.Kind] {
		logger.Error("invalid interaction kind", "kind", interaction.Kind)
		return nil, fmt.Errorf("invalid interaction kind %q", interaction.Kind)
	}

	if interaction.Kind == domain.InteractionRating {
		if interaction.Rating == nil {
			logger.Error("rating interaction without a rating value")
			return nil, errors.New("rating value is required for rating interactions")
		}
		if *interaction.Rating < 1 || *interaction.Rating > 5 {
			logger.Error("rating out of range", "rating", *interaction.Rating)
			return nil, errors.New("rating must be between 1 and 5")
		}
	}

	if !interaction.Timestamp.IsZero() && interaction.Timestamp.After(time.Now()) {
		logger.Error("interaction timestamp is in the future", "timestamp", interaction.Timestamp)
		return nil, errors.New("interaction timestamp cannot be in the future")
	}

	if _, err := s.userRepo.FindByID(ctx, interaction.UserID); err != nil {
		logger.Error("user not found for interaction", err)
		return nil, errors.New("user not found")
	}

	if _, err := s.productRepo.FindByID(ctx, interaction.ProductID); err != nil {
		logger.Error("product not found for interaction", err)
		return nil, errors.New("product not found")
	}

	if err := s.interactionRepo.Create(ctx, interaction); err != nil {
		logger.Error("failed to record interaction", err)
		return nil, fmt.Errorf("failed to record interaction: %w", err)
	}

	if s.cacheInvalidator != nil {
		if err := s.cacheInvalidator.Invalidate(ctx, interaction.UserID); err != nil {
			logger.Warn("failed to invalidate recommendation cache", "user_id", interaction.UserID, "error", err)
		}
	}

	return interaction, nil
}

func (s *interactionService) GetUserInteractions(ctx context.Context, userID uint, since time.Time) ([]domain.Interaction, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when get user interactions")
		return nil, fmt.Errorf("context error: %w", err)
	}

	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		logger.Error("user not found", err)
		return nil, errors.New("user not found")
	}

	interactions, err := s.interactionRepo.FindByUserSince(ctx, userID, since)
	if err != nil {
		logger.Error("failed to find user interactions", err)
		return nil, err
	}

	return interactions, nil
}

func (s *interactionService) CountUserInteractions(ctx context.Context, userID uint) (int64, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when count user interactions")
		return 0, fmt.Errorf("context error: %w", err)
	}

	return s.interactionRepo.CountByUser(ctx, userID)
}
