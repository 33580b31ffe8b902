package postgres

import (
	"context"
	"fmt"
	"mySmartShop/domain"
	"time"

	"gorm.io/gorm"
)

type InteractionRepository struct {
	DB *gorm.DB
}

func NewInteractionRepository(db *gorm.DB) *InteractionRepository {
	return &InteractionRepository{
		DB: db,
	}
}

func (r *InteractionRepository) Create(ctx context.Context, interaction *domain.Interaction) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Create(interaction).Error; err != nil {
		return fmt.Errorf("failed to record interaction: %w", err)
	}

	return nil
}

// FindAllSince returns the snapshot the scoring pass works from, ordered
// oldest first so downstream walks see events in time order.
func (r *InteractionRepository) FindAllSince(ctx context.Context, since time.Time) ([]domain.Interaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var interactions []domain.Interaction
	err := r.DB.WithContext(ctx).
		Where("timestamp >= ?", since).
		Order("timestamp ASC, id ASC").
		Find(&interactions).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load interactions: %w", err)
	}

	return interactions, nil
}

func (r *InteractionRepository) FindByUserSince(ctx context.Context, userID uint, since time.Time) ([]domain.Interaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var interactions []domain.Interaction
	err := r.DB.WithContext(ctx).
		Where("user_id = ? AND timestamp >= ?", userID, since).
		Order("timestamp ASC, id ASC").
		Find(&interactions).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load user interactions: %w", err)
	}

	return interactions, nil
}

func (r *InteractionRepository) CountByUser(ctx context.Context, userID uint) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("context error: %w", err)
	}

	var count int64
	err := r.DB.WithContext(ctx).
		Model(&domain.Interaction{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count user interactions: %w", err)
	}

	return count, nil
}
