package domain

import "time"

// Order lifecycle states. Status strings are stored as-is; legality of
// transitions is enforced by the status machine in business/orders.
const (
	OrderStatusProcessing = "Processing"
	OrderStatusShipped    = "Shipped"
	OrderStatusDelivered  = "Delivered"
	OrderStatusCancelled  = "Cancelled"
)

type ShippingAddress struct {
	Address    string `gorm:"column:address" json:"address"`
	City       string `gorm:"column:city" json:"city"`
	PostalCode string `gorm:"column:postal_code" json:"postal_code"`
	Country    string `gorm:"column:country" json:"country"`
	Phone      string `gorm:"column:phone" json:"phone"`
}

// OrderItem carries the product name, price and owning vendor denormalized
// at checkout so the order stays stable when the catalog changes.
type OrderItem struct {
	ID        uint64  `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID   uint64  `gorm:"column:order_id;index;not null" json:"order_id"`
	ProductID uint64  `gorm:"column:product_id;not null" json:"product_id"`
	VendorID  uint    `gorm:"column:vendor_id;index;not null" json:"vendor_id"`
	Name      string  `gorm:"column:name;type:text" json:"name"`
	Price     float64 `gorm:"column:price;type:numeric" json:"price"`
	Quantity  int     `gorm:"column:quantity;not null" json:"quantity"`
}

func (OrderItem) TableName() string {
	return "order_items"
}

// Orders are kept forever for audit and analytics, there is no delete path.
type Order struct {
	ID          uint64      `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderNumber string      `gorm:"column:order_number;unique;not null" json:"order_number"`
	UserID      uint        `gorm:"column:user_id;index;not null" json:"user_id"`
	OrderItems  []OrderItem `gorm:"foreignKey:OrderID" json:"order_items"`

	OrderStatus string `gorm:"column:order_status;default:Processing" json:"order_status"`

	PaymentMethod string     `gorm:"column:payment_method" json:"payment_method"`
	IsPaid        bool       `gorm:"column:is_paid;default:false" json:"is_paid"`
	PaidAt        *time.Time `gorm:"column:paid_at" json:"paid_at"`

	IsShipped       bool       `gorm:"column:is_shipped;default:false" json:"is_shipped"`
	ShippedAt       *time.Time `gorm:"column:shipped_at" json:"shipped_at"`
	IsDelivered     bool       `gorm:"column:is_delivered;default:false" json:"is_delivered"`
	DeliveredAt     *time.Time `gorm:"column:delivered_at" json:"delivered_at"`
	CancelledAt     *time.Time `gorm:"column:cancelled_at" json:"cancelled_at"`
	TrackingNumber  string     `gorm:"column:tracking_number" json:"tracking_number"`
	TrackingCarrier string     `gorm:"column:tracking_carrier" json:"tracking_carrier"`

	Shipping ShippingAddress `gorm:"embedded;embeddedPrefix:shipping_" json:"shipping"`

	ItemsPrice    float64 `gorm:"column:items_price;type:numeric" json:"items_price"`
	ShippingPrice float64 `gorm:"column:shipping_price;type:numeric" json:"shipping_price"`
	TaxPrice      float64 `gorm:"column:tax_price;type:numeric" json:"tax_price"`
	TotalPrice    float64 `gorm:"column:total_price;type:numeric" json:"total_price"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Order) TableName() string {
	return "orders"
}
