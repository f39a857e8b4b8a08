package rest

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/Motasaith/Abdul-Shop-sub001/app/echo-server/metrics"
	"github.com/Motasaith/Abdul-Shop-sub001/business/orders"
	"github.com/Motasaith/Abdul-Shop-sub001/domain"
	"github.com/Motasaith/Abdul-Shop-sub001/pkg/logger"
	jsonres "github.com/Motasaith/Abdul-Shop-sub001/pkg/response"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type OrdersService interface {
	CreateOrder(ctx context.Context, input orders.CheckoutInput) (domain.Order, error)
	GetOrder(ctx context.Context, orderID uint64, userID uint, role string) (domain.Order, error)
	GetOrdersByUser(ctx context.Context, userID uint) ([]domain.Order, error)
	GetOrdersByVendor(ctx context.Context, vendorID uint) ([]domain.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID uint64, target string, tracking orders.TrackingInfo, actorID uint, role string) (domain.Order, string, error)
	MarkOrderPaid(ctx context.Context, orderID uint64) (domain.Order, map[uint]float64, error)
}

type OrdersHandler struct {
	ordersService OrdersService
	validator     *validator.Validate
	timeout       time.Duration
}

func NewOrdersHandler(ordersService OrdersService) *OrdersHandler {
	return &OrdersHandler{
		ordersService: ordersService,
		validator:     validator.New(),
		timeout:       15 * time.Second,
	}
}

type CheckoutItemRequest struct {
	ProductID uint64 `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
}

type CheckoutRequest struct {
	PaymentMethod string                `json:"payment_method" validate:"required"`
	Shipping      ShippingRequest       `json:"shipping" validate:"required"`
	Items         []CheckoutItemRequest `json:"items" validate:"required,min=1,dive"`
}

type ShippingRequest struct {
	Address    string `json:"address" validate:"required"`
	City       string `json:"city" validate:"required"`
	PostalCode string `json:"postal_code" validate:"required"`
	Country    string `json:"country" validate:"required"`
	Phone      string `json:"phone"`
}

type OrderStatusRequest struct {
	Status          string `json:"status" validate:"required"`
	TrackingNumber  string `json:"tracking_number"`
	TrackingCarrier string `json:"tracking_carrier"`
}

func (h *OrdersHandler) CreateOrder(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, jsonres.Error(
			"UNAUTHORIZED", "User not authenticated", nil,
		))
	}

	var req CheckoutRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid request body", err)
		return c.JSON(http.StatusBadRequest, jsonres.Error(
			"BAD_REQUEST", err.Error(), nil,
		))
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate checkout request", err)
		return c.JSON(http.StatusBadRequest, jsonres.Error(
			"BAD_REQUEST", err.Error(), nil,
		))
	}

	items := make([]orders.CheckoutItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, orders.CheckoutItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	order, err := h.ordersService.CreateOrder(ctx, orders.CheckoutInput{
		UserID:        userID,
		PaymentMethod: req.PaymentMethod,
		Shipping: domain.ShippingAddress{
			Address:    req.Shipping.Address,
			City:       req.Shipping.City,
			PostalCode: req.Shipping.PostalCode,
			Country:    req.Shipping.Country,
			Phone:      req.Shipping.Phone,
		},
		Items: items,
	})
	if err != nil {
		return serviceErrorJSON(c, err)
	}

	metrics.CheckoutTotal.Inc()

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(order))
}

func (h *OrdersHandler) GetOrderByID(c echo.Context) error {
	orderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, jsonres.Error(
			"BAD_REQUEST", "Invalid order ID", nil,
		))
	}

	userID, role, errRes := actorFromContext(c)
	if errRes != nil {
		return errRes
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	order, err := h.ordersService.GetOrder(ctx, orderID, userID, role)
	if err != nil {
		return serviceErrorJSON(c, err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(order))
}

// GetMyOrders lists the authenticated customer's order history.
func (h *OrdersHandler) GetMyOrders(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, jsonres.Error(
			"UNAUTHORIZED", "User not authenticated", nil,
		))
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	orderList, err := h.ordersService.GetOrdersByUser(ctx, userID)
	if err != nil {
		logger.Error("Failed to get user orders", err)
		return c.JSON(http.StatusInternalServerError, jsonres.Error(
			"INTERNAL_SERVER_ERROR", "Failed to get orders", nil,
		))
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(orderList))
}

// GetVendorOrders lists orders containing at least one product owned by the
// authenticated vendor.
func (h *OrdersHandler) GetVendorOrders(c echo.Context) error {
	vendorID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, jsonres.Error(
			"UNAUTHORIZED", "User not authenticated", nil,
		))
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	orderList, err := h.ordersService.GetOrdersByVendor(ctx, vendorID)
	if err != nil {
		logger.Error("Failed to get vendor orders", err)
		return c.JSON(http.StatusInternalServerError, jsonres.Error(
			"INTERNAL_SERVER_ERROR", "Failed to get orders", nil,
		))
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(orderList))
}

// UpdateOrderStatus runs the order through the status machine.
func (h *OrdersHandler) UpdateOrderStatus(c echo.Context) error {
	orderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, jsonres.Error(
			"BAD_REQUEST", "Invalid order ID", nil,
		))
	}

	actorID, role, errRes := actorFromContext(c)
	if errRes != nil {
		return errRes
	}

	var req OrderStatusRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid request body", err)
		return c.JSON(http.StatusBadRequest, jsonres.Error(
			"BAD_REQUEST", err.Error(), nil,
		))
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate order status request", err)
		return c.JSON(http.StatusBadRequest, jsonres.Error(
			"BAD_REQUEST", err.Error(), nil,
		))
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	order, fromStatus, err := h.ordersService.UpdateOrderStatus(ctx, orderID, req.Status, orders.TrackingInfo{
		Number:  req.TrackingNumber,
		Carrier: req.TrackingCarrier,
	}, actorID, role)
	if err != nil {
		return serviceErrorJSON(c, err)
	}

	if order.OrderStatus != fromStatus {
		metrics.OrderStatusTransitions.WithLabelValues(fromStatus, order.OrderStatus).Inc()
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(order))
}

// MarkOrderPaid is the admin payment override. On success every vendor in
// the order has been credited their commission-adjusted share.
func (h *OrdersHandler) MarkOrderPaid(c echo.Context) error {
	orderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, jsonres.Error(
			"BAD_REQUEST", "Invalid order ID", nil,
		))
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	order, credits, err := h.ordersService.MarkOrderPaid(ctx, orderID)
	if err != nil {
		return serviceErrorJSON(c, err)
	}

	for _, amount := range credits {
		metrics.WalletCreditTotal.Add(amount)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(order))
}
