package rest

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/Motasaith/Abdul-Shop-sub001/domain"
	"github.com/Motasaith/Abdul-Shop-sub001/pkg/logger"
	jsonres "github.com/Motasaith/Abdul-Shop-sub001/pkg/response"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// AdminVendorService is the admin-facing slice of the vendor service.
type AdminVendorService interface {
	GetVendors(ctx context.Context, statuses []string) ([]domain.User, error)
	ApproveVendor(ctx context.Context, vendorID uint) (domain.User, error)
	RejectVendor(ctx context.Context, vendorID uint) (domain.User, error)
	BanVendor(ctx context.Context, vendorID uint) (domain.User, error)
	UnbanVendor(ctx context.Context, vendorID uint) (domain.User, error)
	SetCommissionRate(ctx context.Context, vendorID uint, rate float64) (domain.User, error)
}

type AdminHandler struct {
	vendorService AdminVendorService
	validator     *validator.Validate
	timeout       time.Duration
}

func NewAdminHandler(vendorService AdminVendorService) *AdminHandler {
	return &AdminHandler{
		vendorService: vendorService,
		validator:     validator.New(),
		timeout:       10 * time.Second,
	}
}

type CommissionRateRequest struct {
	Rate float64 `json:"rate" validate:"gte=0,lte=100"`
}

// GetVendors lists vendor accounts, optionally filtered with
// ?status=pending,approved.
func (h *AdminHandler) GetVendors(c echo.Context) error {
	var statuses []string
	if raw := c.QueryParam("status"); raw != "" {
		for _, s := range strings.Split(raw, ",") {
			if s = strings.TrimSpace(s); s != "" {
				statuses = append(statuses, s)
			}
		}
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	vendors, err := h.vendorService.GetVendors(ctx, statuses)
	if err != nil {
		logger.Error("Failed to list vendors", err)
		return c.JSON(http.StatusInternalServerError, jsonres.Error(
			"INTERNAL_SERVER_ERROR", "Failed to list vendors", nil,
		))
	}

	return c.JSON(http.StatusOK, jsonres.Success("OK", "Vendors retrieved successfully", vendors))
}

func (h *AdminHandler) ApproveVendor(c echo.Context) error {
	return h.transition(c, h.vendorService.ApproveVendor, "Vendor approved")
}

func (h *AdminHandler) RejectVendor(c echo.Context) error {
	return h.transition(c, h.vendorService.RejectVendor, "Vendor rejected")
}

func (h *AdminHandler) BanVendor(c echo.Context) error {
	return h.transition(c, h.vendorService.BanVendor, "Vendor banned")
}

func (h *AdminHandler) UnbanVendor(c echo.Context) error {
	return h.transition(c, h.vendorService.UnbanVendor, "Vendor reinstated")
}

func (h *AdminHandler) transition(c echo.Context, op func(context.Context, uint) (domain.User, error), message string) error {
	vendorID, errRes := vendorIDParam(c)
	if errRes != nil {
		return errRes
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	updated, err := op(ctx, vendorID)
	if err != nil {
		return serviceErrorJSON(c, err)
	}

	return c.JSON(http.StatusOK, jsonres.Success("OK", message, updated))
}

// SetCommissionRate stores a per-vendor commission percentage. Out of range
// rates are rejected, never clamped.
func (h *AdminHandler) SetCommissionRate(c echo.Context) error {
	vendorID, errRes := vendorIDParam(c)
	if errRes != nil {
		return errRes
	}

	var req CommissionRateRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid request body", err)
		return c.JSON(http.StatusBadRequest, jsonres.Error(
			"BAD_REQUEST", err.Error(), nil,
		))
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate commission rate", err)
		return c.JSON(http.StatusBadRequest, jsonres.Error(
			"BAD_REQUEST", err.Error(), nil,
		))
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	updated, err := h.vendorService.SetCommissionRate(ctx, vendorID, req.Rate)
	if err != nil {
		return serviceErrorJSON(c, err)
	}

	return c.JSON(http.StatusOK, jsonres.Success("OK", "Commission rate updated", updated))
}

func vendorIDParam(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "Invalid vendor ID")
	}
	return uint(id), nil
}
