package rest

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Motasaith/Abdul-Shop-sub001/business/orders"
	"github.com/Motasaith/Abdul-Shop-sub001/domain"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeOrdersService struct {
	getOrderCalls int
	updateCalls   int
	result        domain.Order
	fromStatus    string
	err           error
}

func (f *fakeOrdersService) CreateOrder(ctx context.Context, input orders.CheckoutInput) (domain.Order, error) {
	return f.result, f.err
}

func (f *fakeOrdersService) GetOrder(ctx context.Context, orderID uint64, userID uint, role string) (domain.Order, error) {
	f.getOrderCalls++
	return f.result, f.err
}

func (f *fakeOrdersService) GetOrdersByUser(ctx context.Context, userID uint) ([]domain.Order, error) {
	return nil, f.err
}

func (f *fakeOrdersService) GetOrdersByVendor(ctx context.Context, vendorID uint) ([]domain.Order, error) {
	return nil, f.err
}

func (f *fakeOrdersService) UpdateOrderStatus(ctx context.Context, orderID uint64, target string, tracking orders.TrackingInfo, actorID uint, role string) (domain.Order, string, error) {
	f.updateCalls++
	return f.result, f.fromStatus, f.err
}

func (f *fakeOrdersService) MarkOrderPaid(ctx context.Context, orderID uint64) (domain.Order, map[uint]float64, error) {
	return f.result, nil, f.err
}

func newStatusUpdateContext(t *testing.T, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	req := httptest.NewRequest(http.MethodPut, "/orders/1/status", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("1")
	c.Set("user_id", uint(10))
	c.Set("role", domain.RoleVendor)
	return c, rec
}

func TestUpdateOrderStatusSingleServiceCall(t *testing.T) {
	svc := &fakeOrdersService{
		result:     domain.Order{ID: 1, OrderStatus: domain.OrderStatusShipped},
		fromStatus: domain.OrderStatusProcessing,
	}
	h := NewOrdersHandler(svc)

	c, rec := newStatusUpdateContext(t, `{"status":"Shipped","tracking_number":"TRK-1"}`)

	require.NoError(t, h.UpdateOrderStatus(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, svc.updateCalls)
	assert.Zero(t, svc.getOrderCalls, "status update must not read the order separately")
}

func TestUpdateOrderStatusForbiddenWithoutExtraRead(t *testing.T) {
	svc := &fakeOrdersService{
		err: errors.New("forbidden: order contains none of your products"),
	}
	h := NewOrdersHandler(svc)

	c, rec := newStatusUpdateContext(t, `{"status":"Shipped"}`)

	require.NoError(t, h.UpdateOrderStatus(c))

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Zero(t, svc.getOrderCalls)
}
