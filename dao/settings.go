package dao

import (
	"errors"

	"gorm.io/gorm"

	"github.com/mdarif551578/hasmi-coin-mining-sub000/models"
)

// settingsID is the fixed primary key of the singleton settings row.
const settingsID = 1

// SettingsDAO handles the settings singleton
type SettingsDAO struct {
	db *gorm.DB
}

func NewSettingsDAO(db *gorm.DB) *SettingsDAO {
	return &SettingsDAO{db: db}
}

func (d *SettingsDAO) WithTx(tx *gorm.DB) *SettingsDAO {
	return &SettingsDAO{db: tx}
}

// Get returns the settings row.
func (d *SettingsDAO) Get() (*models.Settings, error) {
	var s models.Settings
	if err := d.db.First(&s, settingsID).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

// Ensure seeds the settings row with defaults when it does not exist.
func (d *SettingsDAO) Ensure() error {
	var s models.Settings
	err := d.db.First(&s, settingsID).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	seed := models.Settings{
		ID:                  settingsID,
		ExchangeRate:        1000,
		ReferralBonus:       50,
		MinDeposit:          5,
		MinWithdrawal:       10,
		MiningIntervalHours: 24,
		DepositMethods: []models.DepositMethod{
			{Name: "bkash", AccountNumber: "01700000000", Instructions: "Send money and submit the transaction id"},
			{Name: "nagad", AccountNumber: "01800000000", Instructions: "Send money and submit the transaction id"},
		},
		Plans: []models.PlanSpec{
			{Name: "starter", Type: models.PlanTypePaid, Cost: 10, Profit: 0, DurationDays: 30, DailyReward: 100},
			{Name: "pro", Type: models.PlanTypePaid, Cost: 50, Profit: 0, DurationDays: 30, DailyReward: 600},
			{Name: "genesis-nft", Type: models.PlanTypeNFT, Cost: 100, Profit: 130, DurationDays: 60, DailyReward: 0},
		},
	}
	return d.db.Create(&seed).Error
}
