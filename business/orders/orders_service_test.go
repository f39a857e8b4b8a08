package orders

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Motasaith/Abdul-Shop-sub001/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeOrdersRepo struct {
	orders map[uint64]domain.Order

	createdOrder    *domain.Order
	decrements      map[uint64]int
	statusUpdates   []string
	cancelled       bool
	paidOrderID     uint64
	paidCredits     map[uint]float64
	markPaidCalls   int
	failMarkPaid    error
	failUpdateState error
}

func newFakeOrdersRepo() *fakeOrdersRepo {
	return &fakeOrdersRepo{orders: make(map[uint64]domain.Order)}
}

func (f *fakeOrdersRepo) CreateWithStock(ctx context.Context, order *domain.Order, decrements map[uint64]int) error {
	order.ID = uint64(len(f.orders) + 1)
	f.createdOrder = order
	f.decrements = decrements
	f.orders[order.ID] = *order
	return nil
}

func (f *fakeOrdersRepo) FindByID(ctx context.Context, id uint64) (domain.Order, error) {
	order, ok := f.orders[id]
	if !ok {
		return domain.Order{}, errors.New("order not found")
	}
	return order, nil
}

func (f *fakeOrdersRepo) FindByUser(ctx context.Context, userID uint) ([]domain.Order, error) {
	var out []domain.Order
	for _, o := range f.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (f *fakeOrdersRepo) FindByVendor(ctx context.Context, vendorID uint) ([]domain.Order, error) {
	return nil, nil
}

func (f *fakeOrdersRepo) UpdateStatus(ctx context.Context, order *domain.Order) error {
	if f.failUpdateState != nil {
		return f.failUpdateState
	}
	f.statusUpdates = append(f.statusUpdates, order.OrderStatus)
	f.orders[order.ID] = *order
	return nil
}

func (f *fakeOrdersRepo) CancelWithStockRestore(ctx context.Context, order *domain.Order) error {
	f.cancelled = true
	f.orders[order.ID] = *order
	return nil
}

func (f *fakeOrdersRepo) MarkPaid(ctx context.Context, orderID uint64, paidAt time.Time, walletCredits map[uint]float64) error {
	f.markPaidCalls++
	if f.failMarkPaid != nil {
		return f.failMarkPaid
	}
	f.paidOrderID = orderID
	f.paidCredits = walletCredits

	order := f.orders[orderID]
	order.IsPaid = true
	order.PaidAt = &paidAt
	f.orders[orderID] = order
	return nil
}

type fakeProductRepo struct {
	products map[uint64]domain.Product
}

func newFakeProductRepo(products ...domain.Product) *fakeProductRepo {
	f := &fakeProductRepo{products: make(map[uint64]domain.Product)}
	for _, p := range products {
		f.products[p.ID] = p
	}
	return f
}

func (f *fakeProductRepo) Create(ctx context.Context, product *domain.Product) error {
	f.products[product.ID] = *product
	return nil
}

func (f *fakeProductRepo) FindByID(ctx context.Context, id uint64) (domain.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return domain.Product{}, errors.New("product not found")
	}
	return p, nil
}

func (f *fakeProductRepo) FindAll(ctx context.Context) ([]domain.Product, error) {
	return nil, nil
}

func (f *fakeProductRepo) FindByOwner(ctx context.Context, ownerID uint) ([]domain.Product, error) {
	return nil, nil
}

func (f *fakeProductRepo) FindIDsByOwner(ctx context.Context, ownerID uint) ([]uint64, error) {
	var ids []uint64
	for _, p := range f.products {
		if p.OwnerID == ownerID {
			ids = append(ids, p.ID)
		}
	}
	return ids, nil
}

func (f *fakeProductRepo) Update(ctx context.Context, product *domain.Product) error {
	f.products[product.ID] = *product
	return nil
}

func (f *fakeProductRepo) Delete(ctx context.Context, id uint64) error {
	delete(f.products, id)
	return nil
}

type fakeUserRepo struct {
	users map[uint]domain.User
}

func newFakeUserRepo(users ...domain.User) *fakeUserRepo {
	f := &fakeUserRepo{users: make(map[uint]domain.User)}
	for _, u := range users {
		f.users[u.ID] = u
	}
	return f
}

func (f *fakeUserRepo) Create(ctx context.Context, user *domain.User) error { return nil }

func (f *fakeUserRepo) FindByID(ctx context.Context, id uint) (domain.User, error) {
	u, ok := f.users[id]
	if !ok {
		return domain.User{}, errors.New("user not found")
	}
	return u, nil
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	return domain.User{}, errors.New("user not found")
}

func (f *fakeUserRepo) FindAll(ctx context.Context) ([]domain.User, error) { return nil, nil }

func (f *fakeUserRepo) Update(ctx context.Context, user *domain.User) error { return nil }

func (f *fakeUserRepo) Delete(ctx context.Context, id uint) error { return nil }

func (f *fakeUserRepo) UpdateEmailVerification(ctx context.Context, id uint, isVerified bool) error {
	return nil
}

type fakeNotifier struct {
	emails []string
}

func (f *fakeNotifier) SendEmail(toName, toEmail, subject, message string) error {
	f.emails = append(f.emails, subject)
	return nil
}

func newTestService(orderRepo *fakeOrdersRepo, productRepo *fakeProductRepo, userRepo *fakeUserRepo) *OrdersService {
	return NewOrdersService(orderRepo, productRepo, userRepo, &fakeNotifier{})
}

func vendorUser(id uint, rate float64) domain.User {
	return domain.User{
		ID:   id,
		Role: domain.RoleVendor,
		VendorDetails: domain.VendorDetails{
			CommissionRate: rate,
			Status:         domain.VendorStatusApproved,
		},
	}
}

func TestCreateOrderComputesTotals(t *testing.T) {
	orderRepo := newFakeOrdersRepo()
	productRepo := newFakeProductRepo(
		domain.Product{ID: 1, OwnerID: 10, Name: "Lamp", Price: 40, Stock: 5, IsActive: true},
		domain.Product{ID: 2, OwnerID: 20, Name: "Rug", Price: 25, Stock: 3, IsActive: true},
	)
	svc := newTestService(orderRepo, productRepo, newFakeUserRepo())

	order, err := svc.CreateOrder(context.Background(), CheckoutInput{
		UserID:        1,
		PaymentMethod: "card",
		Items: []CheckoutItem{
			{ProductID: 1, Quantity: 2},
			{ProductID: 2, Quantity: 1},
		},
	})
	require.NoError(t, err)

	// 2*40 + 25 = 105, over the free shipping threshold
	assert.Equal(t, 105.0, order.ItemsPrice)
	assert.Equal(t, 0.0, order.ShippingPrice)
	assert.Equal(t, 15.75, order.TaxPrice)
	assert.Equal(t, 120.75, order.TotalPrice)
	assert.Equal(t, domain.OrderStatusProcessing, order.OrderStatus)
	assert.NotEmpty(t, order.OrderNumber)

	require.Len(t, order.OrderItems, 2)
	assert.Equal(t, uint(10), order.OrderItems[0].VendorID)
	assert.Equal(t, "Lamp", order.OrderItems[0].Name)

	assert.Equal(t, map[uint64]int{1: 2, 2: 1}, orderRepo.decrements)
}

func TestCreateOrderChargesShippingUnderThreshold(t *testing.T) {
	orderRepo := newFakeOrdersRepo()
	productRepo := newFakeProductRepo(
		domain.Product{ID: 1, OwnerID: 10, Name: "Mug", Price: 12, Stock: 10, IsActive: true},
	)
	svc := newTestService(orderRepo, productRepo, newFakeUserRepo())

	order, err := svc.CreateOrder(context.Background(), CheckoutInput{
		UserID: 1,
		Items:  []CheckoutItem{{ProductID: 1, Quantity: 1}},
	})
	require.NoError(t, err)

	assert.Equal(t, 12.0, order.ItemsPrice)
	assert.Equal(t, 10.0, order.ShippingPrice)
	assert.Equal(t, 1.8, order.TaxPrice)
	assert.Equal(t, 23.8, order.TotalPrice)
}

func TestCreateOrderUsesSalePrice(t *testing.T) {
	orderRepo := newFakeOrdersRepo()
	productRepo := newFakeProductRepo(
		domain.Product{ID: 1, OwnerID: 10, Name: "Chair", Price: 80, SalePrice: 60, IsSale: true, Stock: 2, IsActive: true},
	)
	svc := newTestService(orderRepo, productRepo, newFakeUserRepo())

	order, err := svc.CreateOrder(context.Background(), CheckoutInput{
		UserID: 1,
		Items:  []CheckoutItem{{ProductID: 1, Quantity: 1}},
	})
	require.NoError(t, err)

	assert.Equal(t, 60.0, order.OrderItems[0].Price)
	assert.Equal(t, 60.0, order.ItemsPrice)
}

func TestCreateOrderRejectsBadItems(t *testing.T) {
	orderRepo := newFakeOrdersRepo()
	productRepo := newFakeProductRepo(
		domain.Product{ID: 1, OwnerID: 10, Name: "Sofa", Price: 400, Stock: 1, IsActive: true},
		domain.Product{ID: 2, OwnerID: 10, Name: "Retired", Price: 10, Stock: 5, IsActive: false},
	)
	svc := newTestService(orderRepo, productRepo, newFakeUserRepo())
	ctx := context.Background()

	_, err := svc.CreateOrder(ctx, CheckoutInput{UserID: 1})
	assert.Error(t, err)

	_, err = svc.CreateOrder(ctx, CheckoutInput{
		UserID: 1,
		Items:  []CheckoutItem{{ProductID: 1, Quantity: 0}},
	})
	assert.Error(t, err)

	_, err = svc.CreateOrder(ctx, CheckoutInput{
		UserID: 1,
		Items:  []CheckoutItem{{ProductID: 1, Quantity: 2}},
	})
	assert.ErrorContains(t, err, "insufficient stock")

	_, err = svc.CreateOrder(ctx, CheckoutInput{
		UserID: 1,
		Items:  []CheckoutItem{{ProductID: 2, Quantity: 1}},
	})
	assert.ErrorContains(t, err, "not available")

	_, err = svc.CreateOrder(ctx, CheckoutInput{
		UserID: 1,
		Items:  []CheckoutItem{{ProductID: 99, Quantity: 1}},
	})
	assert.ErrorContains(t, err, "not found")

	assert.Nil(t, orderRepo.createdOrder)
}

func TestGetOrderOwnership(t *testing.T) {
	orderRepo := newFakeOrdersRepo()
	orderRepo.orders[1] = domain.Order{ID: 1, UserID: 5, OrderStatus: domain.OrderStatusProcessing}
	svc := newTestService(orderRepo, newFakeProductRepo(), newFakeUserRepo())
	ctx := context.Background()

	_, err := svc.GetOrder(ctx, 1, 5, domain.RoleCustomer)
	assert.NoError(t, err)

	_, err = svc.GetOrder(ctx, 1, 6, domain.RoleCustomer)
	assert.ErrorContains(t, err, "forbidden")

	_, err = svc.GetOrder(ctx, 1, 6, domain.RoleAdmin)
	assert.NoError(t, err)
}

func TestUpdateOrderStatusRejectsUnknownStatus(t *testing.T) {
	orderRepo := newFakeOrdersRepo()
	svc := newTestService(orderRepo, newFakeProductRepo(), newFakeUserRepo())

	_, _, err := svc.UpdateOrderStatus(context.Background(), 1, "Refunded", TrackingInfo{}, 1, domain.RoleAdmin)
	assert.ErrorContains(t, err, "invalid order status")
}

func TestUpdateOrderStatusVendorWithoutItemsForbidden(t *testing.T) {
	orderRepo := newFakeOrdersRepo()
	orderRepo.orders[1] = domain.Order{
		ID:          1,
		UserID:      5,
		OrderStatus: domain.OrderStatusProcessing,
		OrderItems:  []domain.OrderItem{{ProductID: 1, VendorID: 10, Quantity: 1}},
	}
	productRepo := newFakeProductRepo(
		domain.Product{ID: 1, OwnerID: 10, Name: "Lamp", Price: 40, Stock: 5, IsActive: true},
	)
	svc := newTestService(orderRepo, productRepo, newFakeUserRepo())

	// Vendor 20 owns nothing in this order.
	_, _, err := svc.UpdateOrderStatus(context.Background(), 1, domain.OrderStatusShipped, TrackingInfo{}, 20, domain.RoleVendor)
	assert.ErrorContains(t, err, "forbidden")

	stored := orderRepo.orders[1]
	assert.Equal(t, domain.OrderStatusProcessing, stored.OrderStatus)
	assert.Empty(t, orderRepo.statusUpdates)
}

func TestUpdateOrderStatusVendorShips(t *testing.T) {
	orderRepo := newFakeOrdersRepo()
	orderRepo.orders[1] = domain.Order{
		ID:          1,
		UserID:      5,
		OrderStatus: domain.OrderStatusProcessing,
		OrderItems:  []domain.OrderItem{{ProductID: 1, VendorID: 10, Quantity: 1}},
	}
	productRepo := newFakeProductRepo(
		domain.Product{ID: 1, OwnerID: 10, Name: "Lamp", Price: 40, Stock: 5, IsActive: true},
	)
	userRepo := newFakeUserRepo(domain.User{ID: 5, FullName: "Asha", Email: "asha@example.com"})
	svc := newTestService(orderRepo, productRepo, userRepo)

	order, fromStatus, err := svc.UpdateOrderStatus(context.Background(), 1, domain.OrderStatusShipped, TrackingInfo{Number: "TRK-9"}, 10, domain.RoleVendor)
	require.NoError(t, err)

	assert.Equal(t, domain.OrderStatusShipped, order.OrderStatus)
	assert.Equal(t, domain.OrderStatusProcessing, fromStatus)
	assert.Equal(t, "TRK-9", order.TrackingNumber)
	assert.Equal(t, []string{domain.OrderStatusShipped}, orderRepo.statusUpdates)
}

func TestUpdateOrderStatusCancelRestoresStock(t *testing.T) {
	orderRepo := newFakeOrdersRepo()
	orderRepo.orders[1] = domain.Order{
		ID:          1,
		UserID:      5,
		OrderStatus: domain.OrderStatusProcessing,
		OrderItems:  []domain.OrderItem{{ProductID: 1, VendorID: 10, Quantity: 2}},
	}
	svc := newTestService(orderRepo, newFakeProductRepo(), newFakeUserRepo())

	order, fromStatus, err := svc.UpdateOrderStatus(context.Background(), 1, domain.OrderStatusCancelled, TrackingInfo{}, 99, domain.RoleAdmin)
	require.NoError(t, err)

	assert.Equal(t, domain.OrderStatusCancelled, order.OrderStatus)
	assert.Equal(t, domain.OrderStatusProcessing, fromStatus)
	assert.True(t, orderRepo.cancelled)
	assert.Empty(t, orderRepo.statusUpdates)
}

func TestUpdateOrderStatusReportsPriorStatusOnNoOp(t *testing.T) {
	orderRepo := newFakeOrdersRepo()
	orderRepo.orders[1] = domain.Order{
		ID:          1,
		UserID:      5,
		OrderStatus: domain.OrderStatusShipped,
		OrderItems:  []domain.OrderItem{{ProductID: 1, VendorID: 10, Quantity: 1}},
	}
	svc := newTestService(orderRepo, newFakeProductRepo(), newFakeUserRepo())

	order, fromStatus, err := svc.UpdateOrderStatus(context.Background(), 1, domain.OrderStatusShipped, TrackingInfo{}, 99, domain.RoleAdmin)
	require.NoError(t, err)

	assert.Equal(t, domain.OrderStatusShipped, order.OrderStatus)
	assert.Equal(t, domain.OrderStatusShipped, fromStatus)
	assert.Empty(t, orderRepo.statusUpdates)
}

func TestMarkOrderPaidCreditsEachVendor(t *testing.T) {
	orderRepo := newFakeOrdersRepo()
	orderRepo.orders[1] = domain.Order{
		ID:          1,
		UserID:      5,
		OrderStatus: domain.OrderStatusProcessing,
		OrderItems: []domain.OrderItem{
			{ProductID: 1, VendorID: 10, Price: 100, Quantity: 2}, // 200 at 10% -> 180
			{ProductID: 2, VendorID: 20, Price: 50, Quantity: 1},  // 50 at 20% -> 40
		},
	}
	userRepo := newFakeUserRepo(vendorUser(10, 10), vendorUser(20, 20))
	svc := newTestService(orderRepo, newFakeProductRepo(), userRepo)

	order, credits, err := svc.MarkOrderPaid(context.Background(), 1)
	require.NoError(t, err)

	assert.True(t, order.IsPaid)
	assert.NotNil(t, order.PaidAt)
	assert.Equal(t, map[uint]float64{10: 180.0, 20: 40.0}, credits)
	assert.Equal(t, credits, orderRepo.paidCredits)
	assert.Equal(t, uint64(1), orderRepo.paidOrderID)
}

func TestMarkOrderPaidRejectsAlreadyPaid(t *testing.T) {
	paidAt := time.Now()
	orderRepo := newFakeOrdersRepo()
	orderRepo.orders[1] = domain.Order{ID: 1, IsPaid: true, PaidAt: &paidAt}
	svc := newTestService(orderRepo, newFakeProductRepo(), newFakeUserRepo())

	_, _, err := svc.MarkOrderPaid(context.Background(), 1)
	assert.ErrorContains(t, err, "already paid")
	assert.Zero(t, orderRepo.markPaidCalls)
}

func TestMarkOrderPaidUnknownVendor(t *testing.T) {
	orderRepo := newFakeOrdersRepo()
	orderRepo.orders[1] = domain.Order{
		ID:         1,
		OrderItems: []domain.OrderItem{{ProductID: 1, VendorID: 77, Price: 10, Quantity: 1}},
	}
	svc := newTestService(orderRepo, newFakeProductRepo(), newFakeUserRepo())

	_, _, err := svc.MarkOrderPaid(context.Background(), 1)
	assert.ErrorContains(t, err, "vendor 77 not found")
	assert.Zero(t, orderRepo.markPaidCalls)
}
