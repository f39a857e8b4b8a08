package orders

import (
	"testing"
	"time"

	"github.com/Motasaith/Abdul-Shop-sub001/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to string
		want     bool
	}{
		{domain.OrderStatusProcessing, domain.OrderStatusShipped, true},
		{domain.OrderStatusProcessing, domain.OrderStatusDelivered, true},
		{domain.OrderStatusProcessing, domain.OrderStatusCancelled, true},
		{domain.OrderStatusShipped, domain.OrderStatusDelivered, true},
		{domain.OrderStatusShipped, domain.OrderStatusCancelled, false},
		{domain.OrderStatusShipped, domain.OrderStatusProcessing, false},
		{domain.OrderStatusDelivered, domain.OrderStatusShipped, false},
		{domain.OrderStatusDelivered, domain.OrderStatusCancelled, false},
		{domain.OrderStatusCancelled, domain.OrderStatusProcessing, false},
		{domain.OrderStatusCancelled, domain.OrderStatusShipped, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, CanTransition(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestIsValidStatus(t *testing.T) {
	assert.True(t, IsValidStatus(domain.OrderStatusProcessing))
	assert.True(t, IsValidStatus(domain.OrderStatusCancelled))
	assert.False(t, IsValidStatus("Refunded"))
	assert.False(t, IsValidStatus(""))
	assert.False(t, IsValidStatus("shipped"))
}

func TestApplyTransitionShipped(t *testing.T) {
	order := domain.Order{OrderStatus: domain.OrderStatusProcessing}
	now := time.Now()

	changed, err := applyTransition(&order, domain.OrderStatusShipped, TrackingInfo{
		Number:  "TRK-123",
		Carrier: "DHL",
	}, now)
	require.NoError(t, err)
	require.True(t, changed)

	assert.Equal(t, domain.OrderStatusShipped, order.OrderStatus)
	assert.True(t, order.IsShipped)
	require.NotNil(t, order.ShippedAt)
	assert.Equal(t, now, *order.ShippedAt)
	assert.Equal(t, "TRK-123", order.TrackingNumber)
	assert.Equal(t, "DHL", order.TrackingCarrier)
}

func TestApplyTransitionDelivered(t *testing.T) {
	order := domain.Order{OrderStatus: domain.OrderStatusShipped}
	now := time.Now()

	changed, err := applyTransition(&order, domain.OrderStatusDelivered, TrackingInfo{}, now)
	require.NoError(t, err)
	require.True(t, changed)

	assert.True(t, order.IsDelivered)
	require.NotNil(t, order.DeliveredAt)
	assert.Equal(t, domain.OrderStatusDelivered, order.OrderStatus)
}

// Repeating the current status must not rewrite timestamps or report a change.
func TestApplyTransitionSameStateNoOp(t *testing.T) {
	shippedAt := time.Now().Add(-time.Hour)
	order := domain.Order{
		OrderStatus: domain.OrderStatusShipped,
		IsShipped:   true,
		ShippedAt:   &shippedAt,
	}

	changed, err := applyTransition(&order, domain.OrderStatusShipped, TrackingInfo{}, time.Now())
	require.NoError(t, err)

	assert.False(t, changed)
	assert.Equal(t, shippedAt, *order.ShippedAt)
}

func TestApplyTransitionCancelAfterShipRejected(t *testing.T) {
	order := domain.Order{OrderStatus: domain.OrderStatusShipped, IsShipped: true}

	changed, err := applyTransition(&order, domain.OrderStatusCancelled, TrackingInfo{}, time.Now())

	assert.Error(t, err)
	assert.False(t, changed)
	assert.Equal(t, domain.OrderStatusShipped, order.OrderStatus)
	assert.Nil(t, order.CancelledAt)
}

func TestApplyTransitionCancelFromProcessing(t *testing.T) {
	order := domain.Order{OrderStatus: domain.OrderStatusProcessing}
	now := time.Now()

	changed, err := applyTransition(&order, domain.OrderStatusCancelled, TrackingInfo{}, now)
	require.NoError(t, err)
	require.True(t, changed)

	assert.Equal(t, domain.OrderStatusCancelled, order.OrderStatus)
	require.NotNil(t, order.CancelledAt)
}
