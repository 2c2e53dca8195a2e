package models

import (
	"time"
)

// PlanSpec is a catalog entry in the settings plan list.
type PlanSpec struct {
	Name         string  `json:"name"`
	Type         string  `json:"type"` // paid or nft
	Cost         float64 `json:"cost"`
	Profit       float64 `json:"profit"`
	DurationDays int     `json:"duration_days"`
	DailyReward  float64 `json:"daily_reward"` // HC per mining claim
}

// DepositMethod describes one manual payment rail shown to users.
type DepositMethod struct {
	Name          string `json:"name"`
	AccountNumber string `json:"account_number"`
	Instructions  string `json:"instructions"`
}

// Settings is a singleton row (ID 1) read by request-creation flows
// and the mining claim path. The lifecycle engine never writes it.
type Settings struct {
	ID                  uint64          `gorm:"primaryKey" json:"id"`
	ExchangeRate        float64         `gorm:"type:decimal(32,8);not null" json:"exchange_rate"` // HC per USD
	ReferralBonus       float64         `gorm:"type:decimal(32,8);not null" json:"referral_bonus"`
	MinDeposit          float64         `gorm:"type:decimal(32,8);not null" json:"min_deposit"`
	MinWithdrawal       float64         `gorm:"type:decimal(32,8);not null" json:"min_withdrawal"`
	MiningIntervalHours int             `gorm:"not null" json:"mining_interval_hours"`
	DepositMethods      []DepositMethod `gorm:"serializer:json" json:"deposit_methods"`
	Plans               []PlanSpec      `gorm:"serializer:json" json:"plans"`
	UpdatedAt           time.Time       `json:"updated_at"`
}

// Plan looks up a catalog entry by name.
func (s *Settings) Plan(name string) (PlanSpec, bool) {
	for _, p := range s.Plans {
		if p.Name == name {
			return p, true
		}
	}
	return PlanSpec{}, false
}
