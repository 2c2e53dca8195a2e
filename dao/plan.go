package dao

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mdarif551578/hasmi-coin-mining-sub000/models"
)

// PlanPurchaseDAO handles plan-purchase database operations
type PlanPurchaseDAO struct {
	db *gorm.DB
}

func NewPlanPurchaseDAO(db *gorm.DB) *PlanPurchaseDAO {
	return &PlanPurchaseDAO{db: db}
}

func (d *PlanPurchaseDAO) WithTx(tx *gorm.DB) *PlanPurchaseDAO {
	return &PlanPurchaseDAO{db: tx}
}

func (d *PlanPurchaseDAO) Create(p *models.PlanPurchase) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return d.db.Create(p).Error
}

func (d *PlanPurchaseDAO) GetByID(id uuid.UUID) (*models.PlanPurchase, error) {
	var p models.PlanPurchase
	if err := d.db.Where("id = ?", id).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// Resolve flips a pending purchase to a terminal status, stamping the
// maturity date for NFT plans at approval time.
func (d *PlanPurchaseDAO) Resolve(id uuid.UUID, to string, maturesAt *time.Time) (bool, error) {
	fields := map[string]interface{}{"status": to}
	if maturesAt != nil {
		fields["matures_at"] = *maturesAt
	}
	res := d.db.Model(&models.PlanPurchase{}).
		Where("id = ? AND status = ?", id, models.StatusPending).
		Updates(fields)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (d *PlanPurchaseDAO) ListByUser(userID uint64) ([]models.PlanPurchase, error) {
	var list []models.PlanPurchase
	err := d.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&list).Error
	return list, err
}

func (d *PlanPurchaseDAO) ListByStatus(status string) ([]models.PlanPurchase, error) {
	var list []models.PlanPurchase
	err := d.db.Where("status = ?", status).Order("created_at ASC").Find(&list).Error
	return list, err
}

func (d *PlanPurchaseDAO) CountPending() (int64, error) {
	return countPending(d.db, &models.PlanPurchase{})
}

// DeletePending removes a user's own still-pending plan purchase.
func (d *PlanPurchaseDAO) DeletePending(id uuid.UUID, userID uint64) (bool, error) {
	res := d.db.Where("id = ? AND user_id = ? AND status = ?", id, userID, models.StatusPending).
		Delete(&models.PlanPurchase{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// ListMatured returns approved NFT purchases whose maturity date has
// passed and which have not been paid out yet.
func (d *PlanPurchaseDAO) ListMatured(now time.Time) ([]models.PlanPurchase, error) {
	var list []models.PlanPurchase
	err := d.db.Where(
		"status = ? AND plan_type = ? AND matures_at IS NOT NULL AND matures_at <= ? AND matured_at IS NULL",
		models.StatusApproved, models.PlanTypeNFT, now,
	).Find(&list).Error
	return list, err
}

// MarkMatured stamps the payout time; a row already stamped is left
// alone so a sweep can never pay twice.
func (d *PlanPurchaseDAO) MarkMatured(id uuid.UUID, now time.Time) (bool, error) {
	res := d.db.Model(&models.PlanPurchase{}).
		Where("id = ? AND matured_at IS NULL", id).
		Update("matured_at", now)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
