package domain

import (
	"time"

	"gorm.io/gorm"
)

type Product struct {
	ID          uint64         `gorm:"primaryKey;autoIncrement" json:"id"`
	OwnerID     uint           `gorm:"column:owner_id;index;not null" json:"owner_id"`
	Name        string         `gorm:"column:name;type:text;not null" json:"name"`
	Description string         `gorm:"column:description;type:text" json:"description"`
	Category    string         `gorm:"column:category;type:text" json:"category"`
	Price       float64        `gorm:"column:price;type:numeric" json:"price"`
	SalePrice   float64        `gorm:"column:sale_price;type:numeric" json:"sale_price"`
	Stock       int            `gorm:"column:stock;default:0" json:"stock"`
	IsActive    bool           `gorm:"column:is_active;default:true" json:"is_active"`
	IsNew       bool           `gorm:"column:is_new;default:false" json:"is_new"`
	IsSale      bool           `gorm:"column:is_sale;default:false" json:"is_sale"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Product) TableName() string {
	return "products"
}
