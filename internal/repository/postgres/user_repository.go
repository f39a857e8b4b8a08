package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/Motasaith/Abdul-Shop-sub001/domain"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{
		DB: db,
	}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	if err := r.DB.WithContext(ctx).Create(&user).Error; err != nil {
		return err
	}

	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uint) (domain.User, error) {
	var user domain.User

	err := r.DB.WithContext(ctx).First(&user, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.User{}, errors.New("user not found")
		}
		return domain.User{}, err
	}

	return user, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	var user domain.User

	err := r.DB.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.User{}, errors.New("user not found")
		}
		return domain.User{}, err
	}

	return user, nil
}

func (r *UserRepository) FindAll(ctx context.Context) ([]domain.User, error) {
	var users []domain.User

	if err := r.DB.WithContext(ctx).Find(&users).Error; err != nil {
		return nil, err
	}

	return users, nil
}

// FindVendors lists accounts whose vendor status matches one of statuses;
// an empty filter returns every account that ever applied.
func (r *UserRepository) FindVendors(ctx context.Context, statuses []string) ([]domain.User, error) {
	var users []domain.User

	query := r.DB.WithContext(ctx)
	if len(statuses) > 0 {
		query = query.Where("vendor_status IN ?", statuses)
	} else {
		query = query.Where("vendor_status <> ?", domain.VendorStatusNone)
	}

	if err := query.Find(&users).Error; err != nil {
		return nil, err
	}

	return users, nil
}

func (r *UserRepository) Update(ctx context.Context, user *domain.User) error {
	var existingUser domain.User
	if err := r.DB.WithContext(ctx).First(&existingUser, user.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("user not found")
		}
		return err
	}

	user.UpdatedAt = time.Now()

	if err := r.DB.WithContext(ctx).Model(&domain.User{}).Where("id = ?", user.ID).
		Select("full_name", "email", "password", "role", "updated_at").
		Updates(user).Error; err != nil {
		return err
	}

	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id uint) error {
	result := r.DB.WithContext(ctx).Delete(&domain.User{}, id)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errors.New("user not found or already deleted")
	}

	return nil
}

func (r *UserRepository) UpdateEmailVerification(ctx context.Context, id uint, isVerified bool) error {
	result := r.DB.WithContext(ctx).Model(&domain.User{}).Where("id = ?", id).Update("is_verified", isVerified)

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errors.New("user not found or status already updated")
	}

	return nil
}

// UpdateVendorDetails writes the vendor application columns in one update.
func (r *UserRepository) UpdateVendorDetails(ctx context.Context, id uint, details domain.VendorDetails) error {
	result := r.DB.WithContext(ctx).Model(&domain.User{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"vendor_shop_name":           details.ShopName,
			"vendor_store_description":   details.StoreDescription,
			"vendor_bank_name":           details.BankDetails.BankName,
			"vendor_bank_account_name":   details.BankDetails.AccountName,
			"vendor_bank_account_number": details.BankDetails.AccountNumber,
			"vendor_status":              details.Status,
			"updated_at":                 time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errors.New("user not found")
	}

	return nil
}

func (r *UserRepository) UpdateVendorStatus(ctx context.Context, id uint, status, role string) error {
	result := r.DB.WithContext(ctx).Model(&domain.User{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"vendor_status": status,
			"role":          role,
			"updated_at":    time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errors.New("user not found")
	}

	return nil
}

func (r *UserRepository) UpdateCommissionRate(ctx context.Context, id uint, rate float64) error {
	result := r.DB.WithContext(ctx).Model(&domain.User{}).Where("id = ?", id).
		Update("vendor_commission_rate", rate)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errors.New("user not found")
	}

	return nil
}

// DebitWallet decrements the wallet in a single conditional UPDATE. The
// balance guard lives in the WHERE clause, never in application code, so
// concurrent payouts cannot overdraw.
func (r *UserRepository) DebitWallet(ctx context.Context, id uint, amount float64) error {
	result := r.DB.WithContext(ctx).Model(&domain.User{}).
		Where("id = ? AND vendor_wallet_balance >= ?", id, amount).
		UpdateColumn("vendor_wallet_balance", gorm.Expr("vendor_wallet_balance - ?", amount))
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errors.New("insufficient wallet balance")
	}

	return nil
}
