package models

import (
	"time"
)

// User roles
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents a user with USD and Hasmi Coin balances.
// Balance columns are only ever mutated inside a ledger transaction,
// and always as deltas, never as absolute writes.
type User struct {
	ID            uint64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Email         string     `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash  string     `gorm:"not null" json:"-"`
	DisplayName   string     `json:"display_name"`
	Role          string     `gorm:"not null;default:user" json:"role"`
	WalletBalance float64    `gorm:"type:decimal(32,8);not null;default:0" json:"wallet_balance"`
	USDBalance    float64    `gorm:"column:usd_balance;type:decimal(32,8);not null;default:0" json:"usd_balance"`
	ReferralCode  string     `gorm:"uniqueIndex;not null" json:"referral_code"`
	ReferredBy    string     `json:"referred_by,omitempty"`
	MiningPlan    string     `json:"mining_plan,omitempty"`
	LastClaimAt   *time.Time `json:"last_claim_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}
