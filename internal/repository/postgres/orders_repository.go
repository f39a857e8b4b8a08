package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Motasaith/Abdul-Shop-sub001/domain"

	"gorm.io/gorm"
)

type OrdersRepository struct {
	DB *gorm.DB
}

func NewOrdersRepository(db *gorm.DB) *OrdersRepository {
	return &OrdersRepository{
		DB: db,
	}
}

// CreateWithStock inserts the order and decrements stock for every product
// in the same transaction. The decrement is conditional on remaining stock
// so two concurrent checkouts cannot oversell.
func (r *OrdersRepository) CreateWithStock(ctx context.Context, order *domain.Order, decrements map[uint64]int) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for productID, quantity := range decrements {
			result := tx.Model(&domain.Product{}).
				Where("id = ? AND stock >= ?", productID, quantity).
				UpdateColumn("stock", gorm.Expr("stock - ?", quantity))
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return fmt.Errorf("insufficient stock for product %d", productID)
			}
		}

		if err := tx.Create(order).Error; err != nil {
			return err
		}

		return nil
	})
}

func (r *OrdersRepository) FindByID(ctx context.Context, id uint64) (domain.Order, error) {
	var order domain.Order

	err := r.DB.WithContext(ctx).Preload("OrderItems").First(&order, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Order{}, errors.New("order not found")
		}
		return domain.Order{}, err
	}

	return order, nil
}

func (r *OrdersRepository) FindByUser(ctx context.Context, userID uint) ([]domain.Order, error) {
	var orders []domain.Order

	err := r.DB.WithContext(ctx).Preload("OrderItems").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}

	return orders, nil
}

// FindByVendor returns orders containing at least one item belonging to the
// vendor, newest first.
func (r *OrdersRepository) FindByVendor(ctx context.Context, vendorID uint) ([]domain.Order, error) {
	var orders []domain.Order

	err := r.DB.WithContext(ctx).Preload("OrderItems").
		Where("id IN (?)", r.DB.Model(&domain.OrderItem{}).
			Select("order_id").
			Where("vendor_id = ?", vendorID)).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}

	return orders, nil
}

// UpdateStatus persists a non-cancelling transition. Only the lifecycle
// columns are written so nothing else on the order can be clobbered.
func (r *OrdersRepository) UpdateStatus(ctx context.Context, order *domain.Order) error {
	result := r.DB.WithContext(ctx).Model(&domain.Order{}).Where("id = ?", order.ID).
		Select("order_status", "is_shipped", "shipped_at", "is_delivered", "delivered_at",
			"tracking_number", "tracking_carrier", "updated_at").
		Updates(order)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errors.New("order not found")
	}

	return nil
}

// CancelWithStockRestore marks the order cancelled and puts every item's
// quantity back on the shelf in one transaction.
func (r *OrdersRepository) CancelWithStockRestore(ctx context.Context, order *domain.Order) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&domain.Order{}).
			Where("id = ? AND order_status = ?", order.ID, domain.OrderStatusProcessing).
			Select("order_status", "cancelled_at", "updated_at").
			Updates(order)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return errors.New("order not found or not cancellable")
		}

		for _, item := range order.OrderItems {
			err := tx.Model(&domain.Product{}).
				Where("id = ?", item.ProductID).
				UpdateColumn("stock", gorm.Expr("stock + ?", item.Quantity)).Error
			if err != nil {
				return err
			}
		}

		return nil
	})
}

// MarkPaid flips the payment flags and credits each vendor's wallet inside
// one transaction. The is_paid guard in the WHERE clause makes the credit
// happen at most once even under concurrent requests, and the wallet
// increment is a SQL expression, never a read-modify-write.
func (r *OrdersRepository) MarkPaid(ctx context.Context, orderID uint64, paidAt time.Time, walletCredits map[uint]float64) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&domain.Order{}).
			Where("id = ? AND is_paid = ?", orderID, false).
			Updates(map[string]interface{}{
				"is_paid":    true,
				"paid_at":    paidAt,
				"updated_at": time.Now(),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return errors.New("order already paid")
		}

		for vendorID, amount := range walletCredits {
			credit := tx.Model(&domain.User{}).
				Where("id = ?", vendorID).
				UpdateColumn("vendor_wallet_balance", gorm.Expr("vendor_wallet_balance + ?", amount))
			if credit.Error != nil {
				return credit.Error
			}
			if credit.RowsAffected == 0 {
				return fmt.Errorf("vendor %d not found for wallet credit", vendorID)
			}
		}

		return nil
	})
}

// FindVendorSales returns the analytics rows for one vendor's product set:
// order lines from non-cancelled orders created at or after since.
func (r *OrdersRepository) FindVendorSales(ctx context.Context, productIDs []uint64, since time.Time) ([]domain.VendorSaleRow, error) {
	var rows []domain.VendorSaleRow

	err := r.DB.WithContext(ctx).Model(&domain.OrderItem{}).
		Select("orders.created_at AS order_created_at, order_items.product_id, order_items.name AS product_name, order_items.price, order_items.quantity").
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("order_items.product_id IN ?", productIDs).
		Where("orders.order_status <> ?", domain.OrderStatusCancelled).
		Where("orders.created_at >= ?", since).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	return rows, nil
}
