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

type CategoryService interface {
	GetAllCategories(ctx context.Context) ([]domain.Category, error)
	GetCategoryByID(ctx context.Context, id uint64) (domain.Category, error)
	CreateCategory(ctx context.Context, category *domain.Category) (*domain.Category, error)
	UpdateCategory(ctx context.Context, category *domain.Category) (*domain.Category, error)
	DeleteCategory(ctx context.Context, id uint64) error
}

type CategoryHandler struct {
	categoryService CategoryService
	validator       *validator.Validate
	timeout         time.Duration
}

func NewCategoryHandler(categoryService CategoryService) *CategoryHandler {
	return &CategoryHandler{
		categoryService: categoryService,
		validator:       validator.New(),
		timeout:         10 * time.Second,
	}
}

type CategoryRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

func (h *CategoryHandler) GetAllCategories(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	categories, err := h.categoryService.GetAllCategories(ctx)
	if err != nil {
		logger.Error("Failed to get all categories", err)
		return c.JSON(http.StatusInternalServerError, jsonres.Error(
			"INTERNAL_SERVER_ERROR", "Failed to get categories", nil,
		))
	}

	return c.JSON(http.StatusOK, jsonres.Success("OK", "Categories retrieved successfully", categories))
}

func (h *CategoryHandler) GetCategoryByID(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, jsonres.Error(
			"BAD_REQUEST", "Invalid category ID", nil,
		))
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	category, err := h.categoryService.GetCategoryByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusNotFound, jsonres.Error(
			"NOT_FOUND", "Category not found", nil,
		))
	}

	return c.JSON(http.StatusOK, jsonres.Success("OK", "Category retrieved successfully", category))
}

func (h *CategoryHandler) CreateCategory(c echo.Context) error {
	var req CategoryRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid request body", err)
		return c.JSON(http.StatusBadRequest, jsonres.Error(
			"BAD_REQUEST", err.Error(), nil,
		))
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate category create", err)
		return c.JSON(http.StatusBadRequest, jsonres.Error(
			"BAD_REQUEST", err.Error(), nil,
		))
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	category, err := h.categoryService.CreateCategory(ctx, &domain.Category{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return serviceErrorJSON(c, err)
	}

	return c.JSON(http.StatusCreated, jsonres.Success("CREATED", "Category created successfully", category))
}

func (h *CategoryHandler) UpdateCategory(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, jsonres.Error(
			"BAD_REQUEST", "Invalid category ID", nil,
		))
	}

	var req CategoryRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid request body", err)
		return c.JSON(http.StatusBadRequest, jsonres.Error(
			"BAD_REQUEST", err.Error(), nil,
		))
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate category update", err)
		return c.JSON(http.StatusBadRequest, jsonres.Error(
			"BAD_REQUEST", err.Error(), nil,
		))
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	category, err := h.categoryService.UpdateCategory(ctx, &domain.Category{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return serviceErrorJSON(c, err)
	}

	return c.JSON(http.StatusOK, jsonres.Success("OK", "Category updated successfully", category))
}

func (h *CategoryHandler) DeleteCategory(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, jsonres.Error(
			"BAD_REQUEST", "Invalid category ID", nil,
		))
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.categoryService.DeleteCategory(ctx, id); err != nil {
		return serviceErrorJSON(c, err)
	}

	return c.JSON(http.StatusOK, jsonres.Success("OK", "Category deleted successfully", nil))
}
