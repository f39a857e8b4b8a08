package product

import (
	"context"
	"errors"
	"fmt"

	"github.com/Motasaith/Abdul-Shop-sub001/domain"
	"github.com/Motasaith/Abdul-Shop-sub001/pkg/logger"
)

// ProductRepository contract interface
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	FindByID(ctx context.Context, id uint64) (domain.Product, error)
	FindAll(ctx context.Context) ([]domain.Product, error)
	FindByOwner(ctx context.Context, ownerID uint) ([]domain.Product, error)
	FindIDsByOwner(ctx context.Context, ownerID uint) ([]uint64, error)
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id uint64) error
}

type productService struct {
	productRepo ProductRepository
}

func NewProductService(productRepo ProductRepository) *productService {
	return &productService{
		productRepo: productRepo,
	}
}

func (s *productService) GetAllProducts(ctx context.Context) ([]domain.Product, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when get all products")
		return nil, fmt.Errorf("context error: %w", err)
	}

	products, err := s.productRepo.FindAll(ctx)
	if err != nil {
		logger.Error("Failed to find all products", err)
		return nil, err
	}

	return products, nil
}

func (s *productService) GetProductByID(ctx context.Context, id uint64) (*domain.Product, error) {
	if id == 0 {
		logger.Error("invalid product id")
		return nil, errors.New("invalid product id")
	}

	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		logger.Error("failed to find product by id", err)
		return nil, err
	}

	return &product, nil
}

func (s *productService) GetProductsByOwner(ctx context.Context, ownerID uint) ([]domain.Product, error) {
	return s.productRepo.FindByOwner(ctx, ownerID)
}

func (s *productService) CreateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when create product")
		return nil, fmt.Errorf("context error: %w", err)
	}

	// Validation
	if product.Name == "" {
		logger.Error("Invalid product data: product name is required")
		return nil, errors.New("product name is required")
	}

	if product.OwnerID == 0 {
		logger.Error("Invalid product data: owner is required")
		return nil, errors.New("product owner is required")
	}

	if product.Price <= 0 {
		logger.Error("Invalid product data: price must be greater than 0")
		return nil, errors.New("price must be greater than 0")
	}

	if product.Stock < 0 {
		logger.Error("Invalid product data: stock cannot be negative")
		return nil, errors.New("stock cannot be negative")
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		logger.Error("failed to create new product", err)
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	logger.Info("product created successfully")

	return product, nil
}

// UpdateProduct applies a catalog edit. Vendors can only touch their own
// products, admins can touch anything.
func (s *productService) UpdateProduct(ctx context.Context, product *domain.Product, actorID uint, role string) (*domain.Product, error) {
	if product.ID == 0 {
		logger.Error("Invalid product data: ID is required")
		return nil, errors.New("product ID is required")
	}

	if product.Price <= 0 {
		logger.Error("Invalid product data: price must be greater than 0")
		return nil, errors.New("price must be greater than 0")
	}

	if product.Stock < 0 {
		logger.Error("Invalid product data: stock cannot be negative")
		return nil, errors.New("stock cannot be negative")
	}

	existing, err := s.productRepo.FindByID(ctx, product.ID)
	if err != nil {
		logger.Error("product not found", err)
		return nil, errors.New("product not found")
	}

	if role != domain.RoleAdmin && existing.OwnerID != actorID {
		return nil, errors.New("forbidden: you can only update your own products")
	}

	// Ownership never changes through an edit.
	product.OwnerID = existing.OwnerID

	if err := s.productRepo.Update(ctx, product); err != nil {
		logger.Error("failed to update product", err)
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	updated, err := s.productRepo.FindByID(ctx, product.ID)
	if err != nil {
		logger.Error("failed to fetch updated product", err)
		return nil, fmt.Errorf("failed to fetch updated product: %w", err)
	}

	logger.Info("product updated success")

	return &updated, nil
}

func (s *productService) DeleteProduct(ctx context.Context, id uint64, actorID uint, role string) error {
	if id == 0 {
		logger.Error("Invalid product id when deleting product")
		return errors.New("invalid product id")
	}

	existing, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		logger.Error("product not found", err)
		return errors.New("product not found")
	}

	if role != domain.RoleAdmin && existing.OwnerID != actorID {
		return errors.New("forbidden: you can only delete your own products")
	}

	if err := s.productRepo.Delete(ctx, id); err != nil {
		logger.Error("failed to delete product", err)
		return fmt.Errorf("failed to delete product: %w", err)
	}

	logger.Info("product deleted success")

	return nil
}
