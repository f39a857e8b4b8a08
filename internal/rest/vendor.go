package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/Motasaith/Abdul-Shop-sub001/app/echo-server/metrics"
	"github.com/Motasaith/Abdul-Shop-sub001/business/vendor"
	"github.com/Motasaith/Abdul-Shop-sub001/domain"
	"github.com/Motasaith/Abdul-Shop-sub001/pkg/logger"
	jsonres "github.com/Motasaith/Abdul-Shop-sub001/pkg/response"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type VendorService interface {
	Apply(ctx context.Context, userID uint, input vendor.ApplicationInput) (domain.User, error)
	UpdateProfile(ctx context.Context, vendorID uint, input vendor.ProfileInput) (domain.User, error)
	RequestPayout(ctx context.Context, vendorID uint, amount float64) (domain.User, error)
	Analytics(ctx context.Context, vendorID uint, timeRange string) (domain.VendorAnalytics, error)
}

type VendorHandler struct {
	vendorService VendorService
	validator     *validator.Validate
	timeout       time.Duration
}

func NewVendorHandler(vendorService VendorService) *VendorHandler {
	return &VendorHandler{
		vendorService: vendorService,
		validator:     validator.New(),
		timeout:       15 * time.Second,
	}
}

type BankDetailsRequest struct {
	BankName      string `json:"bank_name"`
	AccountName   string `json:"account_name"`
	AccountNumber string `json:"account_number"`
}

type VendorApplicationRequest struct {
	ShopName         string             `json:"shop_name" validate:"required"`
	StoreDescription string             `json:"store_description"`
	BankDetails      BankDetailsRequest `json:"bank_details"`
}

type VendorProfileRequest struct {
	ShopName         string             `json:"shop_name"`
	StoreDescription string             `json:"store_description"`
	BankDetails      BankDetailsRequest `json:"bank_details"`
}

type PayoutRequest struct {
	Amount float64 `json:"amount" validate:"required,gt=0"`
}

// Apply submits a vendor application for the authenticated account.
func (h *VendorHandler) Apply(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, jsonres.Error(
			"UNAUTHORIZED", "User not authenticated", nil,
		))
	}

	var req VendorApplicationRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid request body", err)
		return c.JSON(http.StatusBadRequest, jsonres.Error(
			"BAD_REQUEST", err.Error(), nil,
		))
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate vendor application", err)
		return c.JSON(http.StatusBadRequest, jsonres.Error(
			"BAD_REQUEST", err.Error(), nil,
		))
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	applicant, err := h.vendorService.Apply(ctx, userID, vendor.ApplicationInput{
		ShopName:         req.ShopName,
		StoreDescription: req.StoreDescription,
		BankDetails: domain.BankDetails{
			BankName:      req.BankDetails.BankName,
			AccountName:   req.BankDetails.AccountName,
			AccountNumber: req.BankDetails.AccountNumber,
		},
	})
	if err != nil {
		return serviceErrorJSON(c, err)
	}

	return c.JSON(http.StatusCreated, jsonres.Success("CREATED", "Vendor application submitted", applicant))
}

// UpdateProfile edits the authenticated vendor's shop details.
func (h *VendorHandler) UpdateProfile(c echo.Context) error {
	vendorID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, jsonres.Error(
			"UNAUTHORIZED", "User not authenticated", nil,
		))
	}

	var req VendorProfileRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid request body", err)
		return c.JSON(http.StatusBadRequest, jsonres.Error(
			"BAD_REQUEST", err.Error(), nil,
		))
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	updated, err := h.vendorService.UpdateProfile(ctx, vendorID, vendor.ProfileInput{
		ShopName:         req.ShopName,
		StoreDescription: req.StoreDescription,
		BankDetails: domain.BankDetails{
			BankName:      req.BankDetails.BankName,
			AccountName:   req.BankDetails.AccountName,
			AccountNumber: req.BankDetails.AccountNumber,
		},
	})
	if err != nil {
		return serviceErrorJSON(c, err)
	}

	return c.JSON(http.StatusOK, jsonres.Success("OK", "Vendor profile updated", updated))
}

// RequestPayout debits the vendor wallet. A concurrent request can never
// overdraw because the repository applies the debit conditionally.
func (h *VendorHandler) RequestPayout(c echo.Context) error {
	vendorID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, jsonres.Error(
			"UNAUTHORIZED", "User not authenticated", nil,
		))
	}

	var req PayoutRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid request body", err)
		return c.JSON(http.StatusBadRequest, jsonres.Error(
			"BAD_REQUEST", err.Error(), nil,
		))
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate payout request", err)
		return c.JSON(http.StatusBadRequest, jsonres.Error(
			"BAD_REQUEST", err.Error(), nil,
		))
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	updated, err := h.vendorService.RequestPayout(ctx, vendorID, req.Amount)
	if err != nil {
		return serviceErrorJSON(c, err)
	}

	return c.JSON(http.StatusOK, jsonres.Success("OK", "Payout requested successfully", updated))
}

// Analytics aggregates the vendor's sales over ?time_range=7days|30days|90days.
func (h *VendorHandler) Analytics(c echo.Context) error {
	vendorID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, jsonres.Error(
			"UNAUTHORIZED", "User not authenticated", nil,
		))
	}

	timeRange := c.QueryParam("time_range")
	if timeRange == "" {
		timeRange = c.QueryParam("range")
	}
	if timeRange == "" {
		timeRange = "30days"
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	start := time.Now()
	analytics, err := h.vendorService.Analytics(ctx, vendorID, timeRange)
	metrics.VendorAnalyticsDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		return serviceErrorJSON(c, err)
	}

	return c.JSON(http.StatusOK, jsonres.Success("OK", "Analytics retrieved successfully", analytics))
}
