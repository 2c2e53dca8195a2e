package logic

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/mdarif551578/hasmi-coin-mining-sub000/dao"
)

// MaturityLogic pays out matured NFT plan purchases. One transaction
// per purchase; the matured_at stamp is the idempotency guard, so a
// purchase is never paid twice even across overlapping sweeps.
type MaturityLogic struct {
	store    *dao.Store
	userDAO  *dao.UserDAO
	planDAO  *dao.PlanPurchaseDAO
	notifier Notifier
}

func NewMaturityLogic(store *dao.Store, userDAO *dao.UserDAO, planDAO *dao.PlanPurchaseDAO, notifier Notifier) *MaturityLogic {
	return &MaturityLogic{store: store, userDAO: userDAO, planDAO: planDAO, notifier: notifier}
}

// Sweep pays every approved NFT purchase whose maturity date has
// passed. Returns how many purchases were paid.
func (l *MaturityLogic) Sweep(ctx context.Context) (int, error) {
	now := time.Now()
	due, err := l.planDAO.ListMatured(now)
	if err != nil {
		return 0, err
	}

	paid := 0
	for _, p := range due {
		purchase := p
		var credited bool
		err := l.store.RunTransaction(ctx, func(tx *gorm.DB) error {
			credited = false
			ok, err := l.planDAO.WithTx(tx).MarkMatured(purchase.ID, now)
			if err != nil {
				return err
			}
			if !ok {
				// Another sweep got here first.
				return nil
			}
			if err := l.userDAO.WithTx(tx).AdjustBalance(purchase.UserID, dao.FieldUSD, purchase.Profit); err != nil {
				return err
			}
			credited = true
			return nil
		})
		if err != nil {
			logrus.WithFields(logrus.Fields{"purchase_id": purchase.ID}).WithError(err).Warn("maturity payout failed")
			continue
		}
		if credited {
			paid++
		}
	}

	if paid > 0 {
		logrus.WithField("paid", paid).Info("maturity sweep complete")
		if l.notifier != nil {
			l.notifier.Notify()
		}
	}
	return paid, nil
}
