package orders

import (
	"fmt"
	"time"

	"github.com/Motasaith/Abdul-Shop-sub001/domain"
)

// statusTransitions is the single source of truth for order lifecycle
// legality. Cancellation is only reachable from Processing; once an order
// ships the cancel path is closed here rather than in any UI.
var statusTransitions = map[string][]string{
	domain.OrderStatusProcessing: {domain.OrderStatusShipped, domain.OrderStatusDelivered, domain.OrderStatusCancelled},
	domain.OrderStatusShipped:    {domain.OrderStatusDelivered},
	domain.OrderStatusDelivered:  {},
	domain.OrderStatusCancelled:  {},
}

func IsValidStatus(status string) bool {
	_, ok := statusTransitions[status]
	return ok
}

func CanTransition(from, to string) bool {
	for _, next := range statusTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// TrackingInfo optionally accompanies a transition to Shipped.
type TrackingInfo struct {
	Number  string
	Carrier string
}

// applyTransition mutates the order in memory for a legal transition and
// reports whether anything changed. A same-state transition is a no-op so
// repeated requests never rewrite timestamps or re-trigger side effects.
func applyTransition(order *domain.Order, target string, tracking TrackingInfo, now time.Time) (bool, error) {
	if target == order.OrderStatus {
		return false, nil
	}

	if !CanTransition(order.OrderStatus, target) {
		return false, fmt.Errorf("cannot transition order from %s to %s", order.OrderStatus, target)
	}

	switch target {
	case domain.OrderStatusShipped:
		order.IsShipped = true
		order.ShippedAt = &now
		if tracking.Number != "" {
			order.TrackingNumber = tracking.Number
		}
		if tracking.Carrier != "" {
			order.TrackingCarrier = tracking.Carrier
		}
	case domain.OrderStatusDelivered:
		order.IsDelivered = true
		order.DeliveredAt = &now
	case domain.OrderStatusCancelled:
		order.CancelledAt = &now
	}

	order.OrderStatus = target

	return true, nil
}
