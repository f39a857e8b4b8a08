package postgres

import (
	"context"
	"errors"

	"github.com/Motasaith/Abdul-Shop-sub001/domain"

	"gorm.io/gorm"
)

type CategoryRepository struct {
	DB *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{
		DB: db,
	}
}

func (r *CategoryRepository) Create(ctx context.Context, category *domain.Category) error {
	if err := r.DB.WithContext(ctx).Create(category).Error; err != nil {
		return err
	}

	return nil
}

func (r *CategoryRepository) FindByID(ctx context.Context, id uint64) (domain.Category, error) {
	var category domain.Category

	err := r.DB.WithContext(ctx).First(&category, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Category{}, errors.New("category not found")
		}
		return domain.Category{}, err
	}

	return category, nil
}

func (r *CategoryRepository) FindAll(ctx context.Context) ([]domain.Category, error) {
	var categories []domain.Category

	if err := r.DB.WithContext(ctx).Order("name").Find(&categories).Error; err != nil {
		return nil, err
	}

	return categories, nil
}

func (r *CategoryRepository) Update(ctx context.Context, category *domain.Category) error {
	result := r.DB.WithContext(ctx).Model(&domain.Category{}).
		Where("id = ?", category.ID).
		Update("name", category.Name)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errors.New("category not found")
	}

	return nil
}

func (r *CategoryRepository) Delete(ctx context.Context, id uint64) error {
	result := r.DB.WithContext(ctx).Delete(&domain.Category{}, id)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errors.New("category not found or already deleted")
	}

	return nil
}
