package domain

import (
	"time"

	"gorm.io/gorm"
)

const (
	RoleCustomer = "customer"
	RoleVendor   = "vendor"
	RoleAdmin    = "admin"
)

// Vendor application lifecycle. "none" is the default for accounts that
// never applied.
const (
	VendorStatusNone     = "none"
	VendorStatusPending  = "pending"
	VendorStatusApproved = "approved"
	VendorStatusRejected = "rejected"
	VendorStatusBanned   = "banned"
)

type BankDetails struct {
	BankName      string `gorm:"column:bank_name" json:"bank_name"`
	AccountName   string `gorm:"column:bank_account_name" json:"account_name"`
	AccountNumber string `gorm:"column:bank_account_number" json:"account_number"`
}

// VendorDetails lives on the users table with a vendor_ column prefix.
// WalletBalance must never go negative and CommissionRate is a percentage
// in [0,100]; both are enforced before anything is written.
type VendorDetails struct {
	ShopName         string      `gorm:"column:shop_name" json:"shop_name"`
	StoreDescription string      `gorm:"column:store_description" json:"store_description"`
	CommissionRate   float64     `gorm:"column:commission_rate;default:10" json:"commission_rate"`
	WalletBalance    float64     `gorm:"column:wallet_balance;default:0" json:"wallet_balance"`
	BankDetails      BankDetails `gorm:"embedded" json:"bank_details"`
	Status           string      `gorm:"column:status;default:none" json:"status"`
}

type User struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	FullName      string         `gorm:"column:full_name;not null" json:"full_name"`
	Email         string         `gorm:"column:email;unique;not null" json:"email"`
	IsVerified    bool           `gorm:"column:is_verified;default:false" json:"is_verified"`
	Password      string         `gorm:"column:password;not null" json:"-"`
	Role          string         `gorm:"column:role;default:customer" json:"role"`
	VendorDetails VendorDetails  `gorm:"embedded;embeddedPrefix:vendor_" json:"vendor_details"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "users"
}
