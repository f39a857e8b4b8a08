package domain

import (
	"time"
)

type Category struct {
	ID          uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"column:name;type:text;unique;not null" json:"name"`
	Description string    `gorm:"column:description;type:text" json:"description"`
	CreatedAt   time.Time `gorm:"column:created_at" json:"created_at"`
}

func (Category) TableName() string {
	return "categories"
}
