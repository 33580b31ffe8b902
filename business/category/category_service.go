package category

import (
	"context"
	"fmt"
	"mySmartShop/domain"
	"mySmartShop/pkg/logger"
)

// CategoryRepository contract interface. Categories are a projection of
// the catalog, there is no category table of its own.
type CategoryRepository interface {
	CountByCategory(ctx context.Context) ([]domain.CategorySummary, error)
}

type categoryService struct {
	categoryRepo CategoryRepository
}

func NewCategoryService(categoryRepo CategoryRepository) *categoryService {
	return &categoryService{
		categoryRepo: categoryRepo,
	}
}

func (s *categoryService) GetAllCategories(ctx context.Context) ([]domain.CategorySummary, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when get all categories")
		return nil, fmt.Errorf("context error: %w", err)
	}

	categories, err := s.categoryRepo.CountByCategory(ctx)
	if err != nil {
		logger.Error("Failed to find all categories", err)
		return nil, err
	}

	return categories, nil
}
