package category

import (
	"context"
	"errors"
	"fmt"

	"github.com/Motasaith/Abdul-Shop-sub001/domain"
	"github.com/Motasaith/Abdul-Shop-sub001/pkg/logger"
)

// CategoryRepository contract interface
type CategoryRepository interface {
	Create(ctx context.Context, category *domain.Category) error
	FindByID(ctx context.Context, id uint64) (domain.Category, error)
	FindAll(ctx context.Context) ([]domain.Category, error)
	Update(ctx context.Context, category *domain.Category) error
	Delete(ctx context.Context, id uint64) error
}

type categoryService struct {
	categoryRepo CategoryRepository
}

func NewCategoryService(categoryRepo CategoryRepository) *categoryService {
	return &categoryService{
		categoryRepo: categoryRepo,
	}
}

func (s *categoryService) GetAllCategories(ctx context.Context) ([]domain.Category, error) {
	categories, err := s.categoryRepo.FindAll(ctx)
	if err != nil {
		logger.Error("Failed to find all categories", err)
		return nil, err
	}

	return categories, nil
}

func (s *categoryService) GetCategoryByID(ctx context.Context, id uint64) (domain.Category, error) {
	if id == 0 {
		return domain.Category{}, errors.New("invalid category id")
	}

	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		logger.Error("Failed to find category by id", err)
		return domain.Category{}, err
	}

	return category, nil
}

func (s *categoryService) CreateCategory(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	if category.Name == "" {
		logger.Error("Invalid category data: name is required")
		return nil, errors.New("category name is required")
	}

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		logger.Error("failed to create category", err)
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	return category, nil
}

func (s *categoryService) UpdateCategory(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	if category.ID == 0 {
		return nil, errors.New("category ID is required")
	}

	if category.Name == "" {
		return nil, errors.New("category name is required")
	}

	if _, err := s.categoryRepo.FindByID(ctx, category.ID); err != nil {
		logger.Error("category not found", err)
		return nil, errors.New("category not found")
	}

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		logger.Error("failed to update category", err)
		return nil, fmt.Errorf("failed to update category: %w", err)
	}

	return category, nil
}

func (s *categoryService) DeleteCategory(ctx context.Context, id uint64) error {
	if id == 0 {
		return errors.New("invalid category id")
	}

	if _, err := s.categoryRepo.FindByID(ctx, id); err != nil {
		logger.Error("category not found", err)
		return errors.New("category not found")
	}

	if err := s.categoryRepo.Delete(ctx, id); err != nil {
		logger.Error("failed to delete category", err)
		return fmt.Errorf("failed to delete category: %w", err)
	}

	return nil
}
