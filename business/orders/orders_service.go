package orders

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/Motasaith/Abdul-Shop-sub001/business/commission"
	"github.com/Motasaith/Abdul-Shop-sub001/business/product"
	"github.com/Motasaith/Abdul-Shop-sub001/business/user"
	"github.com/Motasaith/Abdul-Shop-sub001/domain"
	"github.com/Motasaith/Abdul-Shop-sub001/pkg/logger"

	"github.com/google/uuid"
)

// OrdersRepository contract interface. Multi-row writes (checkout stock
// decrement, cancellation stock restore, paid + wallet credits) are
// transactional inside the repository so a failed request leaves the
// order record unchanged.
type OrdersRepository interface {
	CreateWithStock(ctx context.Context, order *domain.Order, decrements map[uint64]int) error
	FindByID(ctx context.Context, id uint64) (domain.Order, error)
	FindByUser(ctx context.Context, userID uint) ([]domain.Order, error)
	FindByVendor(ctx context.Context, vendorID uint) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, order *domain.Order) error
	CancelWithStockRestore(ctx context.Context, order *domain.Order) error
	MarkPaid(ctx context.Context, orderID uint64, paidAt time.Time, walletCredits map[uint]float64) error
}

// NotificationRepository contract interface
type NotificationRepository interface {
	SendEmail(toName, toEmail, subject, message string) (err error)
}

type OrdersService struct {
	orderRepo   OrdersRepository
	productRepo product.ProductRepository
	userRepo    user.UserRepository
	notifRepo   NotificationRepository
}

func NewOrdersService(
	orderRepo OrdersRepository,
	productRepo product.ProductRepository,
	userRepo user.UserRepository,
	notifRepo NotificationRepository,
) *OrdersService {
	return &OrdersService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		userRepo:    userRepo,
		notifRepo:   notifRepo,
	}
}

const (
	freeShippingThreshold = 100.0
	flatShippingPrice     = 10.0
	taxRate               = 0.15
)

type CheckoutItem struct {
	ProductID uint64
	Quantity  int
}

type CheckoutInput struct {
	UserID        uint
	PaymentMethod string
	Shipping      domain.ShippingAddress
	Items         []CheckoutItem
}

// CreateOrder builds an order from the requested items, denormalizing the
// product name, price and owning vendor onto each line. Stock is decremented
// with a conditional update inside the same transaction that inserts the order.
func (s *OrdersService) CreateOrder(ctx context.Context, input CheckoutInput) (domain.Order, error) {
	if len(input.Items) == 0 {
		return domain.Order{}, errors.New("order must contain at least one item")
	}

	var orderItems []domain.OrderItem
	decrements := make(map[uint64]int)
	itemsPrice := 0.0

	for _, item := range input.Items {
		if item.Quantity <= 0 {
			return domain.Order{}, errors.New("item quantity must be positive")
		}

		p, err := s.productRepo.FindByID(ctx, item.ProductID)
		if err != nil {
			logger.Error("Product not found during checkout", err)
			return domain.Order{}, fmt.Errorf("product %d not found", item.ProductID)
		}

		if !p.IsActive {
			return domain.Order{}, fmt.Errorf("product %s is not available", p.Name)
		}

		if p.Stock < item.Quantity {
			return domain.Order{}, fmt.Errorf("insufficient stock for product %s", p.Name)
		}

		price := p.Price
		if p.IsSale && p.SalePrice > 0 {
			price = p.SalePrice
		}

		orderItems = append(orderItems, domain.OrderItem{
			ProductID: p.ID,
			VendorID:  p.OwnerID,
			Name:      p.Name,
			Price:     price,
			Quantity:  item.Quantity,
		})

		decrements[p.ID] += item.Quantity
		itemsPrice += price * float64(item.Quantity)
	}

	itemsPrice = roundCents(itemsPrice)

	shippingPrice := flatShippingPrice
	if itemsPrice >= freeShippingThreshold {
		shippingPrice = 0
	}
	taxPrice := roundCents(itemsPrice * taxRate)

	order := domain.Order{
		OrderNumber:   uuid.NewString(),
		UserID:        input.UserID,
		OrderItems:    orderItems,
		OrderStatus:   domain.OrderStatusProcessing,
		PaymentMethod: input.PaymentMethod,
		Shipping:      input.Shipping,
		ItemsPrice:    itemsPrice,
		ShippingPrice: shippingPrice,
		TaxPrice:      taxPrice,
		TotalPrice:    roundCents(itemsPrice + shippingPrice + taxPrice),
	}

	if err := s.orderRepo.CreateWithStock(ctx, &order, decrements); err != nil {
		logger.Error("Failed to create order", err)
		return domain.Order{}, err
	}

	return order, nil
}

func (s *OrdersService) GetOrder(ctx context.Context, orderID uint64, userID uint, role string) (domain.Order, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return domain.Order{}, err
	}

	if role != domain.RoleAdmin && order.UserID != userID {
		return domain.Order{}, errors.New("forbidden: you can only view your own orders")
	}

	return order, nil
}

func (s *OrdersService) GetOrdersByUser(ctx context.Context, userID uint) ([]domain.Order, error) {
	return s.orderRepo.FindByUser(ctx, userID)
}

func (s *OrdersService) GetOrdersByVendor(ctx context.Context, vendorID uint) ([]domain.Order, error) {
	return s.orderRepo.FindByVendor(ctx, vendorID)
}

// UpdateOrderStatus runs the status machine for one order and reports the
// status the order held before the transition, so callers can observe the
// edge without a second read. Vendors may only act on orders containing at
// least one of their own products; the product set is re-derived from the
// catalog on every call so a transferred or deleted product never leaves
// stale authorization behind.
func (s *OrdersService) UpdateOrderStatus(ctx context.Context, orderID uint64, target string, tracking TrackingInfo, actorID uint, role string) (domain.Order, string, error) {
	if !IsValidStatus(target) {
		return domain.Order{}, "", fmt.Errorf("invalid order status: %s", target)
	}

	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return domain.Order{}, "", err
	}

	if role != domain.RoleAdmin {
		owns, err := s.actorOwnsAnyItem(ctx, actorID, order.OrderItems)
		if err != nil {
			return domain.Order{}, "", err
		}
		if !owns {
			return domain.Order{}, "", errors.New("forbidden: order contains none of your products")
		}
	}

	fromStatus := order.OrderStatus

	changed, err := applyTransition(&order, target, tracking, time.Now())
	if err != nil {
		return domain.Order{}, "", err
	}
	if !changed {
		return order, fromStatus, nil
	}

	if target == domain.OrderStatusCancelled {
		err = s.orderRepo.CancelWithStockRestore(ctx, &order)
	} else {
		err = s.orderRepo.UpdateStatus(ctx, &order)
	}
	if err != nil {
		logger.Error("Failed to persist order status transition", err)
		return domain.Order{}, "", err
	}

	s.notifyStatusChange(ctx, order)

	return order, fromStatus, nil
}

// MarkOrderPaid is the admin manual payment override. It sets is_paid and
// paid_at exactly once and credits every vendor represented in the order with
// their commission-adjusted share, all inside a single transaction. The
// per-vendor credit map is returned for reporting.
func (s *OrdersService) MarkOrderPaid(ctx context.Context, orderID uint64) (domain.Order, map[uint]float64, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return domain.Order{}, nil, err
	}

	if order.IsPaid {
		return domain.Order{}, nil, errors.New("order already paid")
	}

	lines := make([]commission.Line, 0, len(order.OrderItems))
	rates := make(map[uint]float64)
	for _, item := range order.OrderItems {
		lines = append(lines, commission.Line{
			VendorID: item.VendorID,
			Price:    item.Price,
			Quantity: item.Quantity,
		})

		if _, ok := rates[item.VendorID]; ok {
			continue
		}
		vendor, err := s.userRepo.FindByID(ctx, item.VendorID)
		if err != nil {
			logger.Error("Vendor not found while marking order paid", err)
			return domain.Order{}, nil, fmt.Errorf("vendor %d not found", item.VendorID)
		}
		rates[item.VendorID] = vendor.VendorDetails.CommissionRate
	}

	credits, err := commission.PerVendor(lines, rates)
	if err != nil {
		return domain.Order{}, nil, err
	}

	paidAt := time.Now()
	if err := s.orderRepo.MarkPaid(ctx, order.ID, paidAt, credits); err != nil {
		logger.Error("Failed to mark order paid", err)
		return domain.Order{}, nil, err
	}

	order.IsPaid = true
	order.PaidAt = &paidAt

	return order, credits, nil
}

func (s *OrdersService) actorOwnsAnyItem(ctx context.Context, vendorID uint, items []domain.OrderItem) (bool, error) {
	productIDs, err := s.productRepo.FindIDsByOwner(ctx, vendorID)
	if err != nil {
		logger.Error("Failed to load vendor product set", err)
		return false, err
	}

	owned := make(map[uint64]struct{}, len(productIDs))
	for _, id := range productIDs {
		owned[id] = struct{}{}
	}

	for _, item := range items {
		if _, ok := owned[item.ProductID]; ok {
			return true, nil
		}
	}

	return false, nil
}

func (s *OrdersService) notifyStatusChange(ctx context.Context, order domain.Order) {
	if s.notifRepo == nil {
		return
	}

	customer, err := s.userRepo.FindByID(ctx, order.UserID)
	if err != nil {
		logger.Warn("Failed to load customer for status notification", err)
		return
	}

	var subject, body string
	switch order.OrderStatus {
	case domain.OrderStatusShipped:
		subject = "Your order is on its way!"
		body = fmt.Sprintf("Order %s has been shipped.", order.OrderNumber)
		if order.TrackingNumber != "" {
			body = fmt.Sprintf("%s Tracking: %s (%s).", body, order.TrackingNumber, order.TrackingCarrier)
		}
	case domain.OrderStatusDelivered:
		subject = "Your order has been delivered"
		body = fmt.Sprintf("Order %s was delivered. Thank you for shopping with us!", order.OrderNumber)
	default:
		return
	}

	if err := s.notifRepo.SendEmail(customer.FullName, customer.Email, subject, body); err != nil {
		logger.Warn("Failed to send order status email", err)
	}
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
