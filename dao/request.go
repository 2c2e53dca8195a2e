package dao

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mdarif551578/hasmi-coin-mining-sub000/models"
)

// markResolved flips a pending row to a terminal status. Returns false
// when the row is no longer pending (or never existed), which is how a
// lost race with another admin shows up.
func markResolved(db *gorm.DB, model interface{}, id uuid.UUID, to string) (bool, error) {
	res := db.Model(model).
		Where("id = ? AND status = ?", id, models.StatusPending).
		Update("status", to)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// countPending returns the number of pending rows for a model.
func countPending(db *gorm.DB, model interface{}) (int64, error) {
	var total int64
	err := db.Model(model).Where("status = ?", models.StatusPending).Count(&total).Error
	return total, err
}

// DepositDAO handles deposit-request database operations
type DepositDAO struct {
	db *gorm.DB
}

func NewDepositDAO(db *gorm.DB) *DepositDAO {
	return &DepositDAO{db: db}
}

func (d *DepositDAO) WithTx(tx *gorm.DB) *DepositDAO {
	return &DepositDAO{db: tx}
}

func (d *DepositDAO) Create(dep *models.Deposit) error {
	if dep.ID == uuid.Nil {
		dep.ID = uuid.New()
	}
	return d.db.Create(dep).Error
}

func (d *DepositDAO) GetByID(id uuid.UUID) (*models.Deposit, error) {
	var dep models.Deposit
	if err := d.db.Where("id = ?", id).First(&dep).Error; err != nil {
		return nil, err
	}
	return &dep, nil
}

func (d *DepositDAO) MarkResolved(id uuid.UUID, to string) (bool, error) {
	return markResolved(d.db, &models.Deposit{}, id, to)
}

func (d *DepositDAO) ListByUser(userID uint64) ([]models.Deposit, error) {
	var list []models.Deposit
	err := d.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&list).Error
	return list, err
}

func (d *DepositDAO) ListByStatus(status string) ([]models.Deposit, error) {
	var list []models.Deposit
	err := d.db.Where("status = ?", status).Order("created_at ASC").Find(&list).Error
	return list, err
}

func (d *DepositDAO) CountPending() (int64, error) {
	return countPending(d.db, &models.Deposit{})
}

// DeletePending removes a user's own still-pending deposit request.
func (d *DepositDAO) DeletePending(id uuid.UUID, userID uint64) (bool, error) {
	res := d.db.Where("id = ? AND user_id = ? AND status = ?", id, userID, models.StatusPending).
		Delete(&models.Deposit{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// WithdrawalDAO handles withdrawal-request database operations
type WithdrawalDAO struct {
	db *gorm.DB
}

func NewWithdrawalDAO(db *gorm.DB) *WithdrawalDAO {
	return &WithdrawalDAO{db: db}
}

func (d *WithdrawalDAO) WithTx(tx *gorm.DB) *WithdrawalDAO {
	return &WithdrawalDAO{db: tx}
}

func (d *WithdrawalDAO) Create(w *models.Withdrawal) error {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	return d.db.Create(w).Error
}

func (d *WithdrawalDAO) GetByID(id uuid.UUID) (*models.Withdrawal, error) {
	var w models.Withdrawal
	if err := d.db.Where("id = ?", id).First(&w).Error; err != nil {
		return nil, err
	}
	return &w, nil
}

func (d *WithdrawalDAO) MarkResolved(id uuid.UUID, to string) (bool, error) {
	return markResolved(d.db, &models.Withdrawal{}, id, to)
}

func (d *WithdrawalDAO) ListByUser(userID uint64) ([]models.Withdrawal, error) {
	var list []models.Withdrawal
	err := d.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&list).Error
	return list, err
}

func (d *WithdrawalDAO) ListByStatus(status string) ([]models.Withdrawal, error) {
	var list []models.Withdrawal
	err := d.db.Where("status = ?", status).Order("created_at ASC").Find(&list).Error
	return list, err
}

func (d *WithdrawalDAO) CountPending() (int64, error) {
	return countPending(d.db, &models.Withdrawal{})
}

func (d *WithdrawalDAO) DeletePending(id uuid.UUID, userID uint64) (bool, error) {
	res := d.db.Where("id = ? AND user_id = ? AND status = ?", id, userID, models.StatusPending).
		Delete(&models.Withdrawal{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// ExchangeDAO handles exchange-request database operations
type ExchangeDAO struct {
	db *gorm.DB
}

func NewExchangeDAO(db *gorm.DB) *ExchangeDAO {
	return &ExchangeDAO{db: db}
}

func (d *ExchangeDAO) WithTx(tx *gorm.DB) *ExchangeDAO {
	return &ExchangeDAO{db: tx}
}

func (d *ExchangeDAO) Create(ex *models.ExchangeRequest) error {
	if ex.ID == uuid.Nil {
		ex.ID = uuid.New()
	}
	return d.db.Create(ex).Error
}

func (d *ExchangeDAO) GetByID(id uuid.UUID) (*models.ExchangeRequest, error) {
	var ex models.ExchangeRequest
	if err := d.db.Where("id = ?", id).First(&ex).Error; err != nil {
		return nil, err
	}
	return &ex, nil
}

func (d *ExchangeDAO) MarkResolved(id uuid.UUID, to string) (bool, error) {
	return markResolved(d.db, &models.ExchangeRequest{}, id, to)
}

func (d *ExchangeDAO) ListByUser(userID uint64) ([]models.ExchangeRequest, error) {
	var list []models.ExchangeRequest
	err := d.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&list).Error
	return list, err
}

func (d *ExchangeDAO) ListByStatus(status string) ([]models.ExchangeRequest, error) {
	var list []models.ExchangeRequest
	err := d.db.Where("status = ?", status).Order("created_at ASC").Find(&list).Error
	return list, err
}

func (d *ExchangeDAO) CountPending() (int64, error) {
	return countPending(d.db, &models.ExchangeRequest{})
}

func (d *ExchangeDAO) DeletePending(id uuid.UUID, userID uint64) (bool, error) {
	res := d.db.Where("id = ? AND user_id = ? AND status = ?", id, userID, models.StatusPending).
		Delete(&models.ExchangeRequest{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
