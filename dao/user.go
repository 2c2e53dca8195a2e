package dao

import (
	"time"

	"gorm.io/gorm"

	"github.com/mdarif551578/hasmi-coin-mining-sub000/models"
)

// BalanceField names a user balance column a ledger transaction may
// mutate. Only these two columns are ever touched by the engine.
type BalanceField string

const (
	FieldUSD    BalanceField = "usd_balance"
	FieldWallet BalanceField = "wallet_balance"
)

// UserDAO handles user-related database operations
type UserDAO struct {
	db *gorm.DB
}

func NewUserDAO(db *gorm.DB) *UserDAO {
	return &UserDAO{db: db}
}

// WithTx returns a copy of the DAO scoped to the given transaction.
func (d *UserDAO) WithTx(tx *gorm.DB) *UserDAO {
	return &UserDAO{db: tx}
}

// CreateUser creates a new user
func (d *UserDAO) CreateUser(user *models.User) error {
	return d.db.Create(user).Error
}

// GetUserByID retrieves a user by id
func (d *UserDAO) GetUserByID(id uint64) (*models.User, error) {
	var user models.User
	if err := d.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByEmail retrieves a user by email
func (d *UserDAO) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	if err := d.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByReferralCode retrieves a user by referral code
func (d *UserDAO) GetUserByReferralCode(code string) (*models.User, error) {
	var user models.User
	if err := d.db.Where("referral_code = ?", code).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// CountUsers returns the total number of users
func (d *UserDAO) CountUsers() (int64, error) {
	var total int64
	err := d.db.Model(&models.User{}).Count(&total).Error
	return total, err
}

// AdjustBalance applies a delta to one balance field. Deltas keep two
// unrelated approvals touching the same user commutative.
func (d *UserDAO) AdjustBalance(userID uint64, field BalanceField, delta float64) error {
	res := d.db.Model(&models.User{}).
		Where("id = ?", userID).
		Update(string(field), gorm.Expr(string(field)+" + ?", delta))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DebitBalance subtracts amount from a balance field only if the
// field currently covers it. Returns false when funds are short and
// gorm.ErrRecordNotFound when the user row does not exist at all.
func (d *UserDAO) DebitBalance(userID uint64, field BalanceField, amount float64) (bool, error) {
	res := d.db.Model(&models.User{}).
		Where("id = ? AND "+string(field)+" >= ?", userID, amount).
		Update(string(field), gorm.Expr(string(field)+" - ?", amount))
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected > 0 {
		return true, nil
	}
	// Zero rows covers both short funds and a vanished user.
	var total int64
	if err := d.db.Model(&models.User{}).Where("id = ?", userID).Count(&total).Error; err != nil {
		return false, err
	}
	if total == 0 {
		return false, gorm.ErrRecordNotFound
	}
	return false, nil
}

// SetMiningPlan grants a mining plan capability to the user.
func (d *UserDAO) SetMiningPlan(userID uint64, plan string) error {
	return d.db.Model(&models.User{}).
		Where("id = ?", userID).
		Update("mining_plan", plan).Error
}

// ClaimMiningReward credits reward and stamps the claim time in one
// guarded update; a stale cutoff leaves the row untouched so two
// concurrent claims cannot both pay.
func (d *UserDAO) ClaimMiningReward(userID uint64, reward float64, cutoff, now time.Time) (bool, error) {
	res := d.db.Model(&models.User{}).
		Where("id = ? AND (last_claim_at IS NULL OR last_claim_at <= ?)", userID, cutoff).
		Updates(map[string]interface{}{
			"wallet_balance": gorm.Expr("wallet_balance + ?", reward),
			"last_claim_at":  now,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
