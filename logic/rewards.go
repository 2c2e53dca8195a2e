package logic

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mdarif551578/hasmi-coin-mining-sub000/dao"
	"github.com/mdarif551578/hasmi-coin-mining-sub000/models"
)

// resolveTaskSubmission pays the reward the task carries at approval
// time, not at submission time, and freezes that value onto the
// submission row. Re-reading the task later can never change a past
// payout.
func (l *LifecycleLogic) resolveTaskSubmission(tx *gorm.DB, id uuid.UUID, decision Decision) error {
	sub, err := l.submissionDAO.WithTx(tx).GetByID(id)
	if err != nil {
		return notFoundOr(err, "task submission")
	}
	if sub.Status != models.StatusPending {
		return ErrAlreadyResolved
	}

	reward := 0.0
	if decision == DecisionApproved {
		task, err := l.taskDAO.WithTx(tx).GetByID(sub.TaskID)
		if err != nil {
			return notFoundOr(err, "task")
		}
		reward = task.Reward
		if err := l.userDAO.WithTx(tx).AdjustBalance(sub.UserID, dao.FieldWallet, reward); err != nil {
			return notFoundOr(err, "user")
		}
	}
	return flip(l.submissionDAO.WithTx(tx).Resolve(id, string(decision), reward))
}

// resolvePlanPurchase debits the plan cost with a sufficiency guard at
// approval time. Paid plans grant the mining_plan capability; NFT
// plans get a maturity date and are paid out by the maturity sweep.
func (l *LifecycleLogic) resolvePlanPurchase(tx *gorm.DB, id uuid.UUID, decision Decision) error {
	p, err := l.planDAO.WithTx(tx).GetByID(id)
	if err != nil {
		return notFoundOr(err, "plan purchase")
	}
	if p.Status != models.StatusPending {
		return ErrAlreadyResolved
	}

	var maturesAt *time.Time
	if decision == DecisionApproved {
		users := l.userDAO.WithTx(tx)
		ok, err := users.DebitBalance(p.UserID, dao.FieldUSD, p.Cost)
		if err != nil {
			return notFoundOr(err, "user")
		}
		if !ok {
			return ErrInsufficientFunds
		}
		switch p.PlanType {
		case models.PlanTypePaid:
			if err := users.SetMiningPlan(p.UserID, p.PlanName); err != nil {
				return err
			}
		case models.PlanTypeNFT:
			m := time.Now().AddDate(0, 0, p.DurationDays)
			maturesAt = &m
		}
	}
	return flip(l.planDAO.WithTx(tx).Resolve(id, string(decision), maturesAt))
}
