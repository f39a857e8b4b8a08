package domain

import "time"

// VendorAnalytics is the aggregated dashboard payload for one vendor.
type VendorAnalytics struct {
	TotalRevenue float64          `json:"total_revenue"`
	TotalSales   int              `json:"total_sales"`
	SalesGraph   []DailySales     `json:"sales_graph"`
	TopProducts  []ProductRanking `json:"top_products"`
}

type DailySales struct {
	Date      string  `json:"date"`
	Revenue   float64 `json:"revenue"`
	UnitsSold int     `json:"units_sold"`
}

type ProductRanking struct {
	ProductID uint64  `json:"product_id"`
	Name      string  `json:"name"`
	TotalSold int     `json:"total_sold"`
	Revenue   float64 `json:"revenue"`
}

// VendorSaleRow is one order line belonging to a vendor, as returned by the
// repository for analytics aggregation. Only non-cancelled orders qualify.
type VendorSaleRow struct {
	OrderCreatedAt time.Time `json:"order_created_at"`
	ProductID      uint64    `json:"product_id"`
	ProductName    string    `json:"product_name"`
	Price          float64   `json:"price"`
	Quantity       int       `json:"quantity"`
}
