package models

import (
	"time"

	"github.com/google/uuid"
)

// Plan types
const (
	PlanTypePaid = "paid"
	PlanTypeNFT  = "nft"
)

// PlanPurchase records a user's request to buy a mining or NFT plan.
// Cost, profit and duration are snapshotted from the settings catalog
// at request time. Approval debits cost; paid plans additionally grant
// the mining_plan capability, NFT plans get a maturity date and are
// paid their profit by the maturity sweep.
type PlanPurchase struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID       uint64     `gorm:"not null;index" json:"user_id"`
	PlanName     string     `gorm:"not null" json:"plan_name"`
	PlanType     string     `gorm:"not null" json:"plan_type"`
	Cost         float64    `gorm:"type:decimal(32,8);not null" json:"cost"`
	Profit       float64    `gorm:"type:decimal(32,8);not null" json:"profit"`
	DurationDays int        `gorm:"not null" json:"duration_days"`
	Status       string     `gorm:"not null;default:pending;index" json:"status"`
	MaturesAt    *time.Time `json:"matures_at,omitempty"`
	MaturedAt    *time.Time `json:"matured_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}
