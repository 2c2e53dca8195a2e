package logic

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/mdarif551578/hasmi-coin-mining-sub000/dao"
)

// PendingCounts is the admin dashboard snapshot: one cardinality per
// pending-request collection plus the user total.
type PendingCounts struct {
	TotalUsers             int64     `json:"total_users"`
	PendingDeposits        int64     `json:"pending_deposits"`
	PendingWithdrawals     int64     `json:"pending_withdrawals"`
	PendingExchanges       int64     `json:"pending_exchanges"`
	PendingListings        int64     `json:"pending_listings"`
	PendingBuyRequests     int64     `json:"pending_buy_requests"`
	PendingTaskSubmissions int64     `json:"pending_task_submissions"`
	PendingPlanPurchases   int64     `json:"pending_plan_purchases"`
	RefreshedAt            time.Time `json:"refreshed_at"`
}

// DashboardLogic multiplexes all change notifications into a single
// recompute loop: one buffered channel, one goroutine, one pass over
// all counters per wakeup. Readers get the latest committed snapshot.
type DashboardLogic struct {
	userDAO       *dao.UserDAO
	depositDAO    *dao.DepositDAO
	withdrawalDAO *dao.WithdrawalDAO
	exchangeDAO   *dao.ExchangeDAO
	listingDAO    *dao.ListingDAO
	buyDAO        *dao.BuyRequestDAO
	submissionDAO *dao.TaskSubmissionDAO
	planDAO       *dao.PlanPurchaseDAO

	wake chan struct{}

	mu       sync.RWMutex
	snapshot PendingCounts
	ready    bool
}

func NewDashboardLogic(
	userDAO *dao.UserDAO,
	depositDAO *dao.DepositDAO,
	withdrawalDAO *dao.WithdrawalDAO,
	exchangeDAO *dao.ExchangeDAO,
	listingDAO *dao.ListingDAO,
	buyDAO *dao.BuyRequestDAO,
	submissionDAO *dao.TaskSubmissionDAO,
	planDAO *dao.PlanPurchaseDAO,
) *DashboardLogic {
	return &DashboardLogic{
		userDAO:       userDAO,
		depositDAO:    depositDAO,
		withdrawalDAO: withdrawalDAO,
		exchangeDAO:   exchangeDAO,
		listingDAO:    listingDAO,
		buyDAO:        buyDAO,
		submissionDAO: submissionDAO,
		planDAO:       planDAO,
		wake:          make(chan struct{}, 1),
	}
}

// Notify wakes the recompute loop. Non-blocking: a wakeup already
// queued covers any number of commits.
func (l *DashboardLogic) Notify() {
	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// Start runs the recompute loop until ctx is cancelled.
func (l *DashboardLogic) Start(ctx context.Context) {
	if err := l.recompute(); err != nil {
		logrus.WithError(err).Warn("initial dashboard recompute failed")
	}
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-l.wake:
				if err := l.recompute(); err != nil {
					logrus.WithError(err).Warn("dashboard recompute failed")
				}
			}
		}
	}()
}

// GetPendingCounts returns the latest snapshot, computing one
// synchronously if the loop has never filled it.
func (l *DashboardLogic) GetPendingCounts() (PendingCounts, error) {
	l.mu.RLock()
	if l.ready {
		snap := l.snapshot
		l.mu.RUnlock()
		return snap, nil
	}
	l.mu.RUnlock()

	if err := l.recompute(); err != nil {
		return PendingCounts{}, err
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.snapshot, nil
}

func (l *DashboardLogic) recompute() error {
	var snap PendingCounts
	var err error

	if snap.TotalUsers, err = l.userDAO.CountUsers(); err != nil {
		return err
	}
	if snap.PendingDeposits, err = l.depositDAO.CountPending(); err != nil {
		return err
	}
	if snap.PendingWithdrawals, err = l.withdrawalDAO.CountPending(); err != nil {
		return err
	}
	if snap.PendingExchanges, err = l.exchangeDAO.CountPending(); err != nil {
		return err
	}
	if snap.PendingListings, err = l.listingDAO.CountPending(); err != nil {
		return err
	}
	if snap.PendingBuyRequests, err = l.buyDAO.CountPending(); err != nil {
		return err
	}
	if snap.PendingTaskSubmissions, err = l.submissionDAO.CountPending(); err != nil {
		return err
	}
	if snap.PendingPlanPurchases, err = l.planDAO.CountPending(); err != nil {
		return err
	}
	snap.RefreshedAt = time.Now()

	l.mu.Lock()
	l.snapshot = snap
	l.ready = true
	l.mu.Unlock()
	return nil
}
