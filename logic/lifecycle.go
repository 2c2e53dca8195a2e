package logic

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/mdarif551578/hasmi-coin-mining-sub000/dao"
	"github.com/mdarif551578/hasmi-coin-mining-sub000/models"
)

// RequestKind tags the request families the lifecycle engine resolves.
type RequestKind string

const (
	KindDeposit        RequestKind = "deposit"
	KindWithdrawal     RequestKind = "withdrawal"
	KindExchange       RequestKind = "exchange"
	KindTaskSubmission RequestKind = "task_submission"
	KindPlanPurchase   RequestKind = "plan_purchase"
)

// Decision is an admin's verdict on a pending request.
type Decision string

const (
	DecisionApproved Decision = models.StatusApproved
	DecisionRejected Decision = models.StatusRejected
)

// Notifier is poked after every committed mutation so the dashboard
// can recompute. Implementations must not block.
type Notifier interface {
	Notify()
}

// LifecycleLogic is the request lifecycle engine. Every resolution is
// one transaction fusing the status flip with its balance effect, so a
// status can never change without the matching balance change under
// concurrent admin actions or partial failure.
type LifecycleLogic struct {
	store         *dao.Store
	userDAO       *dao.UserDAO
	depositDAO    *dao.DepositDAO
	withdrawalDAO *dao.WithdrawalDAO
	exchangeDAO   *dao.ExchangeDAO
	taskDAO       *dao.TaskDAO
	submissionDAO *dao.TaskSubmissionDAO
	planDAO       *dao.PlanPurchaseDAO
	notifier      Notifier
}

func NewLifecycleLogic(
	store *dao.Store,
	userDAO *dao.UserDAO,
	depositDAO *dao.DepositDAO,
	withdrawalDAO *dao.WithdrawalDAO,
	exchangeDAO *dao.ExchangeDAO,
	taskDAO *dao.TaskDAO,
	submissionDAO *dao.TaskSubmissionDAO,
	planDAO *dao.PlanPurchaseDAO,
	notifier Notifier,
) *LifecycleLogic {
	return &LifecycleLogic{
		store:         store,
		userDAO:       userDAO,
		depositDAO:    depositDAO,
		withdrawalDAO: withdrawalDAO,
		exchangeDAO:   exchangeDAO,
		taskDAO:       taskDAO,
		submissionDAO: submissionDAO,
		planDAO:       planDAO,
		notifier:      notifier,
	}
}

// Resolve transitions one pending request to a terminal state and
// applies the kind's balance effect in the same transaction. The
// acting user's admin role is verified inside the transaction; the
// route-level gate is a convenience, not the authority.
func (l *LifecycleLogic) Resolve(ctx context.Context, adminID uint64, kind RequestKind, requestID uuid.UUID, decision Decision) error {
	if decision != DecisionApproved && decision != DecisionRejected {
		return fmt.Errorf("invalid decision %q", decision)
	}

	err := l.store.RunTransaction(ctx, func(tx *gorm.DB) error {
		if err := requireAdmin(l.userDAO.WithTx(tx), adminID); err != nil {
			return err
		}
		switch kind {
		case KindDeposit:
			return l.resolveDeposit(tx, requestID, decision)
		case KindWithdrawal:
			return l.resolveWithdrawal(tx, requestID, decision)
		case KindExchange:
			return l.resolveExchange(tx, requestID, decision)
		case KindTaskSubmission:
			return l.resolveTaskSubmission(tx, requestID, decision)
		case KindPlanPurchase:
			return l.resolvePlanPurchase(tx, requestID, decision)
		default:
			return fmt.Errorf("unknown request kind %q", kind)
		}
	})
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"kind":       kind,
			"request_id": requestID,
			"decision":   decision,
			"admin_id":   adminID,
		}).WithError(err).Warn("request resolution failed")
		return err
	}

	logrus.WithFields(logrus.Fields{
		"kind":       kind,
		"request_id": requestID,
		"decision":   decision,
		"admin_id":   adminID,
	}).Info("request resolved")
	l.notify()
	return nil
}

// resolveDeposit credits usd_balance on approval; rejection is a pure
// status flip since no funds ever moved.
func (l *LifecycleLogic) resolveDeposit(tx *gorm.DB, id uuid.UUID, decision Decision) error {
	dep, err := l.depositDAO.WithTx(tx).GetByID(id)
	if err != nil {
		return notFoundOr(err, "deposit")
	}
	if dep.Status != models.StatusPending {
		return ErrAlreadyResolved
	}
	if decision == DecisionApproved {
		if err := l.userDAO.WithTx(tx).AdjustBalance(dep.UserID, dao.FieldUSD, dep.Amount); err != nil {
			return notFoundOr(err, "user")
		}
	}
	return flip(l.depositDAO.WithTx(tx).MarkResolved(id, string(decision)))
}

// resolveWithdrawal releases the hold taken at request creation on
// rejection; approval changes no balance because the funds already
// left usd_balance when the request was filed.
func (l *LifecycleLogic) resolveWithdrawal(tx *gorm.DB, id uuid.UUID, decision Decision) error {
	w, err := l.withdrawalDAO.WithTx(tx).GetByID(id)
	if err != nil {
		return notFoundOr(err, "withdrawal")
	}
	if w.Status != models.StatusPending {
		return ErrAlreadyResolved
	}
	if decision == DecisionRejected {
		if err := l.userDAO.WithTx(tx).AdjustBalance(w.UserID, dao.FieldUSD, w.Amount); err != nil {
			return notFoundOr(err, "user")
		}
	}
	return flip(l.withdrawalDAO.WithTx(tx).MarkResolved(id, string(decision)))
}

// resolveExchange debits USD and credits HC at approval time. The
// debit is guarded here, not at creation time, because the balance may
// have changed while the request sat pending. Rejection changes no
// balance: nothing was held.
func (l *LifecycleLogic) resolveExchange(tx *gorm.DB, id uuid.UUID, decision Decision) error {
	ex, err := l.exchangeDAO.WithTx(tx).GetByID(id)
	if err != nil {
		return notFoundOr(err, "exchange request")
	}
	if ex.Status != models.StatusPending {
		return ErrAlreadyResolved
	}
	if decision == DecisionApproved {
		users := l.userDAO.WithTx(tx)
		ok, err := users.DebitBalance(ex.UserID, dao.FieldUSD, ex.USDAmount)
		if err != nil {
			return notFoundOr(err, "user")
		}
		if !ok {
			return ErrInsufficientFunds
		}
		if err := users.AdjustBalance(ex.UserID, dao.FieldWallet, ex.HCAmount); err != nil {
			return notFoundOr(err, "user")
		}
	}
	return flip(l.exchangeDAO.WithTx(tx).MarkResolved(id, string(decision)))
}

// Admin panel read paths: the pending rows of each request kind.

func (l *LifecycleLogic) PendingDeposits() ([]models.Deposit, error) {
	return l.depositDAO.ListByStatus(models.StatusPending)
}

func (l *LifecycleLogic) PendingWithdrawals() ([]models.Withdrawal, error) {
	return l.withdrawalDAO.ListByStatus(models.StatusPending)
}

func (l *LifecycleLogic) PendingExchanges() ([]models.ExchangeRequest, error) {
	return l.exchangeDAO.ListByStatus(models.StatusPending)
}

func (l *LifecycleLogic) PendingTaskSubmissions() ([]models.TaskSubmission, error) {
	return l.submissionDAO.ListByStatus(models.StatusPending)
}

func (l *LifecycleLogic) PendingPlanPurchases() ([]models.PlanPurchase, error) {
	return l.planDAO.ListByStatus(models.StatusPending)
}

func (l *LifecycleLogic) notify() {
	if l.notifier != nil {
		l.notifier.Notify()
	}
}

// requireAdmin verifies the acting user holds the admin role, inside
// the same transaction that performs the mutation.
func requireAdmin(users *dao.UserDAO, adminID uint64) error {
	actor, err := users.GetUserByID(adminID)
	if err != nil {
		return notFoundOr(err, "admin user")
	}
	if actor.Role != models.RoleAdmin {
		return ErrForbidden
	}
	return nil
}

// notFoundOr converts a gorm missing-row error into the ledger
// taxonomy and passes anything else through.
func notFoundOr(err error, entity string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s: %w", entity, ErrNotFound)
	}
	return err
}

// flip interprets a conditional status update: zero rows affected
// means another resolution won the race.
func flip(ok bool, err error) error {
	if err != nil {
		return err
	}
	if !ok {
		return ErrAlreadyResolved
	}
	return nil
}
