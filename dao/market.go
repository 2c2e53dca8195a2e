package dao

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mdarif551578/hasmi-coin-mining-sub000/models"
)

// ListingDAO handles market-listing database operations
type ListingDAO struct {
	db *gorm.DB
}

func NewListingDAO(db *gorm.DB) *ListingDAO {
	return &ListingDAO{db: db}
}

func (d *ListingDAO) WithTx(tx *gorm.DB) *ListingDAO {
	return &ListingDAO{db: tx}
}

func (d *ListingDAO) Create(l *models.MarketListing) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return d.db.Create(l).Error
}

func (d *ListingDAO) GetByID(id uuid.UUID) (*models.MarketListing, error) {
	var l models.MarketListing
	if err := d.db.Where("id = ?", id).First(&l).Error; err != nil {
		return nil, err
	}
	return &l, nil
}

// Transition moves a listing from one status to another. Returns false
// when the listing was not in the expected source status, which is the
// conflict-detection guard for concurrent settlements.
func (d *ListingDAO) Transition(id uuid.UUID, from, to string) (bool, error) {
	res := d.db.Model(&models.MarketListing{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (d *ListingDAO) ListByStatus(status string) ([]models.MarketListing, error) {
	var list []models.MarketListing
	err := d.db.Where("status = ?", status).Order("created_at ASC").Find(&list).Error
	return list, err
}

func (d *ListingDAO) ListBySeller(sellerID uint64) ([]models.MarketListing, error) {
	var list []models.MarketListing
	err := d.db.Where("seller_id = ?", sellerID).Order("created_at DESC").Find(&list).Error
	return list, err
}

func (d *ListingDAO) CountPending() (int64, error) {
	return countPending(d.db, &models.MarketListing{})
}

// BuyRequestDAO handles buy-request database operations
type BuyRequestDAO struct {
	db *gorm.DB
}

func NewBuyRequestDAO(db *gorm.DB) *BuyRequestDAO {
	return &BuyRequestDAO{db: db}
}

func (d *BuyRequestDAO) WithTx(tx *gorm.DB) *BuyRequestDAO {
	return &BuyRequestDAO{db: tx}
}

func (d *BuyRequestDAO) Create(br *models.BuyRequest) error {
	if br.ID == uuid.Nil {
		br.ID = uuid.New()
	}
	return d.db.Create(br).Error
}

func (d *BuyRequestDAO) GetByID(id uuid.UUID) (*models.BuyRequest, error) {
	var br models.BuyRequest
	if err := d.db.Where("id = ?", id).First(&br).Error; err != nil {
		return nil, err
	}
	return &br, nil
}

func (d *BuyRequestDAO) MarkResolved(id uuid.UUID, to string) (bool, error) {
	return markResolved(d.db, &models.BuyRequest{}, id, to)
}

// HasPendingForListing reports whether any buy request is still
// pending against the listing.
func (d *BuyRequestDAO) HasPendingForListing(listingID uuid.UUID) (bool, error) {
	var total int64
	err := d.db.Model(&models.BuyRequest{}).
		Where("listing_id = ? AND status = ?", listingID, models.StatusPending).
		Count(&total).Error
	return total > 0, err
}

func (d *BuyRequestDAO) ListByBuyer(buyerID uint64) ([]models.BuyRequest, error) {
	var list []models.BuyRequest
	err := d.db.Where("buyer_id = ?", buyerID).Order("created_at DESC").Find(&list).Error
	return list, err
}

func (d *BuyRequestDAO) ListByStatus(status string) ([]models.BuyRequest, error) {
	var list []models.BuyRequest
	err := d.db.Where("status = ?", status).Order("created_at ASC").Find(&list).Error
	return list, err
}

func (d *BuyRequestDAO) CountPending() (int64, error) {
	return countPending(d.db, &models.BuyRequest{})
}

func (d *BuyRequestDAO) DeletePending(id uuid.UUID, buyerID uint64) (bool, error) {
	res := d.db.Where("id = ? AND buyer_id = ? AND status = ?", id, buyerID, models.StatusPending).
		Delete(&models.BuyRequest{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
