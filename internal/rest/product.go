package rest

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/Motasaith/Abdul-Shop-sub001/domain"
	"github.com/Motasaith/Abdul-Shop-sub001/pkg/logger"
	jsonres "github.com/Motasaith/Abdul-Shop-sub001/pkg/response"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type ProductService interface {
	GetAllProducts(ctx context.Context) ([]domain.Product, error)
	GetProductByID(ctx context.Context, id uint64) (*domain.Product, error)
	GetProductsByOwner(ctx context.Context, ownerID uint) ([]domain.Product, error)
	CreateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error)
	UpdateProduct(ctx context.Context, product *domain.Product, actorID uint, role string) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id uint64, actorID uint, role string) error
}

type ProductHandler struct {
	productService ProductService
	validator      *validator.Validate
	timeout        time.Duration
}

func NewProductHandler(productService ProductService) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		validator:      validator.New(),
		timeout:        10 * time.Second,
	}
}

type ProductCreateRequest struct {
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Price       float64 `json:"price" validate:"required,gt=0"`
	SalePrice   float64 `json:"sale_price" validate:"omitempty,gt=0"`
	Stock       int     `json:"stock" validate:"gte=0"`
	IsActive    *bool   `json:"is_active"`
	IsNew       bool    `json:"is_new"`
	IsSale      bool    `json:"is_sale"`
}

type ProductUpdateRequest struct {
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Price       float64 `json:"price" validate:"required,gt=0"`
	SalePrice   float64 `json:"sale_price" validate:"omitempty,gt=0"`
	Stock       int     `json:"stock" validate:"gte=0"`
	IsActive    *bool   `json:"is_active"`
	IsNew       bool    `json:"is_new"`
	IsSale      bool    `json:"is_sale"`
}

func (h *ProductHandler) GetAllProducts(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	products, err := h.productService.GetAllProducts(ctx)
	if err != nil {
		logger.Error("Failed to get all products", err)
		return c.JSON(http.StatusInternalServerError, jsonres.Error(
			"INTERNAL_SERVER_ERROR", "Failed to get products", nil,
		))
	}

	return c.JSON(http.StatusOK, jsonres.Success("OK", "Products retrieved successfully", products))
}

func (h *ProductHandler) GetProductByID(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, jsonres.Error(
			"BAD_REQUEST", "Invalid product ID", nil,
		))
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	product, err := h.productService.GetProductByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusNotFound, jsonres.Error(
			"NOT_FOUND", "Product not found", nil,
		))
	}

	return c.JSON(http.StatusOK, jsonres.Success("OK", "Product retrieved successfully", product))
}

// GetMyProducts lists the catalog entries owned by the authenticated vendor.
func (h *ProductHandler) GetMyProducts(c echo.Context) error {
	ownerID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, jsonres.Error(
			"UNAUTHORIZED", "User not authenticated", nil,
		))
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	products, err := h.productService.GetProductsByOwner(ctx, ownerID)
	if err != nil {
		logger.Error("Failed to get vendor products", err)
		return c.JSON(http.StatusInternalServerError, jsonres.Error(
			"INTERNAL_SERVER_ERROR", "Failed to get products", nil,
		))
	}

	return c.JSON(http.StatusOK, jsonres.Success("OK", "Products retrieved successfully", products))
}

func (h *ProductHandler) CreateProduct(c echo.Context) error {
	ownerID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, jsonres.Error(
			"UNAUTHORIZED", "User not authenticated", nil,
		))
	}

	var req ProductCreateRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid request body", err)
		return c.JSON(http.StatusBadRequest, jsonres.Error(
			"BAD_REQUEST", err.Error(), nil,
		))
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate product create", err)
		return c.JSON(http.StatusBadRequest, jsonres.Error(
			"BAD_REQUEST", err.Error(), nil,
		))
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	product, err := h.productService.CreateProduct(ctx, &domain.Product{
		OwnerID:     ownerID,
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Price:       req.Price,
		SalePrice:   req.SalePrice,
		Stock:       req.Stock,
		IsActive:    isActive,
		IsNew:       req.IsNew,
		IsSale:      req.IsSale,
	})
	if err != nil {
		logger.Error("Failed to create product", err)
		return c.JSON(http.StatusBadRequest, jsonres.Error(
			"BAD_REQUEST", err.Error(), nil,
		))
	}

	return c.JSON(http.StatusCreated, jsonres.Success("CREATED", "Product created successfully", product))
}

func (h *ProductHandler) UpdateProduct(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, jsonres.Error(
			"BAD_REQUEST", "Invalid product ID", nil,
		))
	}

	actorID, role, errRes := actorFromContext(c)
	if errRes != nil {
		return errRes
	}

	var req ProductUpdateRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid request body", err)
		return c.JSON(http.StatusBadRequest, jsonres.Error(
			"BAD_REQUEST", err.Error(), nil,
		))
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate product update", err)
		return c.JSON(http.StatusBadRequest, jsonres.Error(
			"BAD_REQUEST", err.Error(), nil,
		))
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	product, err := h.productService.UpdateProduct(ctx, &domain.Product{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Price:       req.Price,
		SalePrice:   req.SalePrice,
		Stock:       req.Stock,
		IsActive:    isActive,
		IsNew:       req.IsNew,
		IsSale:      req.IsSale,
	}, actorID, role)
	if err != nil {
		return serviceErrorJSON(c, err)
	}

	return c.JSON(http.StatusOK, jsonres.Success("OK", "Product updated successfully", product))
}

func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, jsonres.Error(
			"BAD_REQUEST", "Invalid product ID", nil,
		))
	}

	actorID, role, errRes := actorFromContext(c)
	if errRes != nil {
		return errRes
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.productService.DeleteProduct(ctx, id, actorID, role); err != nil {
		return serviceErrorJSON(c, err)
	}

	return c.JSON(http.StatusOK, jsonres.Success("OK", "Product deleted successfully", nil))
}
