package postgres

import (
	"context"
	"errors"
	"fmt"
	"mySmartShop/domain"

	"gorm.io/gorm"
)

const saveBatchChunkSize = 100

type RecommendationRepository struct {
	DB *gorm.DB
}

func NewRecommendationRepository(db *gorm.DB) *RecommendationRepository {
	return &RecommendationRepository{
		DB: db,
	}
}

func (r *RecommendationRepository) SaveBatch(ctx context.Context, recs []domain.Recommendation) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}
	if len(recs) == 0 {
		return nil
	}

	if err := r.DB.WithContext(ctx).CreateInBatches(recs, saveBatchChunkSize).Error; err != nil {
		return fmt.Errorf("failed to save recommendation batch: %w", err)
	}

	return nil
}

// FindLatestByUser returns the rows of the user's most recent batch in
// rank order.
func (r *RecommendationRepository) FindLatestByUser(ctx context.Context, userID uint, limit int) ([]domain.Recommendation, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var latest domain.Recommendation
	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		First(&latest).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return []domain.Recommendation{}, nil
		}
		return nil, fmt.Errorf("failed to find latest batch: %w", err)
	}

	var recs []domain.Recommendation
	err = r.DB.WithContext(ctx).
		Where("user_id = ? AND batch_id = ?", userID, latest.BatchID).
		Order("rank ASC").
		Limit(limit).
		Find(&recs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load recommendations: %w", err)
	}

	return recs, nil
}

// DeleteOlderThanBatches keeps the newest keep batches per user and drops
// the rest, bounding table growth.
func (r *RecommendationRepository) DeleteOlderThanBatches(ctx context.Context, userID uint, keep int) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	// batch ids are uuids, so recency comes from created_at
	var keepIDs []string
	err := r.DB.WithContext(ctx).
		Model(&domain.Recommendation{}).
		Select("batch_id").
		Where("user_id = ?", userID).
		Group("batch_id").
		Order("MAX(created_at) DESC").
		Limit(keep).
		Pluck("batch_id", &keepIDs).Error
	if err != nil {
		return fmt.Errorf("failed to list recent batches: %w", err)
	}

	if len(keepIDs) == 0 {
		return nil
	}

	err = r.DB.WithContext(ctx).
		Where("user_id = ? AND batch_id NOT IN ?", userID, keepIDs).
		Delete(&domain.Recommendation{}).Error
	if err != nil {
		return fmt.Errorf("failed to prune old batches: %w", err)
	}

	return nil
}
