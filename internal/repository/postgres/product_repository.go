package postgres

import (
	"context"
	"errors"

	"github.com/Motasaith/Abdul-Shop-sub001/domain"

	"gorm.io/gorm"
)

type ProductRepository struct {
	DB *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{
		DB: db,
	}
}

func (r *ProductRepository) Create(ctx context.Context, product *domain.Product) error {
	if err := r.DB.WithContext(ctx).Create(product).Error; err != nil {
		return err
	}

	return nil
}

func (r *ProductRepository) FindByID(ctx context.Context, id uint64) (domain.Product, error) {
	var product domain.Product

	err := r.DB.WithContext(ctx).First(&product, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Product{}, errors.New("product not found")
		}
		return domain.Product{}, err
	}

	return product, nil
}

func (r *ProductRepository) FindAll(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product

	if err := r.DB.WithContext(ctx).Where("is_active = ?", true).Find(&products).Error; err != nil {
		return nil, err
	}

	return products, nil
}

func (r *ProductRepository) FindByOwner(ctx context.Context, ownerID uint) ([]domain.Product, error) {
	var products []domain.Product

	if err := r.DB.WithContext(ctx).Where("owner_id = ?", ownerID).Find(&products).Error; err != nil {
		return nil, err
	}

	return products, nil
}

// FindIDsByOwner returns the vendor's current product id set. Callers use
// this for per-request authorization, so no caching happens here.
func (r *ProductRepository) FindIDsByOwner(ctx context.Context, ownerID uint) ([]uint64, error) {
	var ids []uint64

	err := r.DB.WithContext(ctx).Model(&domain.Product{}).
		Where("owner_id = ?", ownerID).
		Pluck("id", &ids).Error
	if err != nil {
		return nil, err
	}

	return ids, nil
}

func (r *ProductRepository) Update(ctx context.Context, product *domain.Product) error {
	result := r.DB.WithContext(ctx).Model(&domain.Product{}).Where("id = ?", product.ID).
		Select("name", "description", "category", "price", "sale_price", "stock",
			"is_active", "is_new", "is_sale", "updated_at").
		Updates(product)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errors.New("product not found")
	}

	return nil
}

func (r *ProductRepository) Delete(ctx context.Context, id uint64) error {
	result := r.DB.WithContext(ctx).Delete(&domain.Product{}, id)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errors.New("product not found or already deleted")
	}

	return nil
}
