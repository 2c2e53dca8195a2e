package models

import (
	"time"

	"github.com/google/uuid"
)

// Listing-only statuses; pending and rejected come from request.go.
const (
	ListingOpen      = "open"
	ListingSold      = "sold"
	ListingCancelled = "cancelled"
)

// MarketListing is a seller's offer of a fixed HC amount at a fixed
// USD-per-HC rate. The seller's HC is escrowed out of wallet_balance
// when an admin opens the listing, and released on cancellation.
type MarketListing struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	SellerID  uint64    `gorm:"not null;index" json:"seller_id"`
	Amount    float64   `gorm:"type:decimal(32,8);not null" json:"amount"`
	Rate      float64   `gorm:"type:decimal(32,8);not null" json:"rate"`
	Status    string    `gorm:"not null;default:pending;index" json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// BuyRequest is a buyer's claim against an open listing. Amount, rate
// and total price are snapshotted from the listing at claim time.
// At most one buy request per listing can ever reach approved.
type BuyRequest struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ListingID  uuid.UUID `gorm:"type:uuid;not null;index" json:"listing_id"`
	BuyerID    uint64    `gorm:"not null;index" json:"buyer_id"`
	SellerID   uint64    `gorm:"not null" json:"seller_id"`
	Amount     float64   `gorm:"type:decimal(32,8);not null" json:"amount"`
	Rate       float64   `gorm:"type:decimal(32,8);not null" json:"rate"`
	TotalPrice float64   `gorm:"type:decimal(32,8);not null" json:"total_price"`
	Status     string    `gorm:"not null;default:pending;index" json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}
