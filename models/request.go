package models

import (
	"time"

	"github.com/google/uuid"
)

// Request statuses shared by every request kind. Approved and rejected
// are terminal: a row that left pending is never mutated again.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Deposit is a user's claim that funds were sent over an external
// payment rail; an admin reconciles it manually before approving.
type Deposit struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uint64    `gorm:"not null;index" json:"user_id"`
	Amount    float64   `gorm:"type:decimal(32,8);not null" json:"amount"`
	Method    string    `json:"method"`
	TxRef     string    `json:"tx_ref"`
	Status    string    `gorm:"not null;default:pending;index" json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// Withdrawal holds the requested amount out of usd_balance at creation
// time; approval is a pure status flip and rejection releases the hold.
type Withdrawal struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID        uint64    `gorm:"not null;index" json:"user_id"`
	Amount        float64   `gorm:"type:decimal(32,8);not null" json:"amount"`
	Method        string    `json:"method"`
	AccountNumber string    `json:"account_number"`
	Status        string    `gorm:"not null;default:pending;index" json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

// ExchangeRequest converts USD into HC at the rate snapshotted from
// settings when the request was created.
type ExchangeRequest struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uint64    `gorm:"not null;index" json:"user_id"`
	USDAmount float64   `gorm:"column:usd_amount;type:decimal(32,8);not null" json:"usd_amount"`
	Rate      float64   `gorm:"type:decimal(32,8);not null" json:"rate"`
	HCAmount  float64   `gorm:"column:hc_amount;type:decimal(32,8);not null" json:"hc_amount"`
	Status    string    `gorm:"not null;default:pending;index" json:"status"`
	CreatedAt time.Time `json:"created_at"`
}
