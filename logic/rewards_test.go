package logic

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mdarif551578/hasmi-coin-mining-sub000/models"
)

func TestTaskRewardFrozenAtApprovalTime(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	admin := e.admin(t)
	alice := e.user(t, models.RoleUser, 0, 0)
	bob := e.user(t, models.RoleUser, 0, 0)

	task, err := e.catalog.CreateTask(ctx, admin.ID, "Follow the channel", 10, "https://example.com/ch")
	require.NoError(t, err)

	sub1, err := e.catalog.SubmitTask(ctx, alice.ID, task.ID, "done", "")
	require.NoError(t, err)
	sub2, err := e.catalog.SubmitTask(ctx, bob.ID, task.ID, "done", "")
	require.NoError(t, err)

	require.NoError(t, e.lifecycle.Resolve(ctx, admin.ID, KindTaskSubmission, sub1.ID, DecisionApproved))
	require.Equal(t, 10.0, e.reload(t, alice.ID).WalletBalance)

	// The catalog reward changes between the two approvals.
	require.NoError(t, e.catalog.UpdateTask(ctx, admin.ID, task.ID, map[string]interface{}{"reward": 25.0}))

	require.NoError(t, e.lifecycle.Resolve(ctx, admin.ID, KindTaskSubmission, sub2.ID, DecisionApproved))
	require.Equal(t, 25.0, e.reload(t, bob.ID).WalletBalance)

	// The first payout keeps the value it was approved at.
	row, err := e.submissions.GetByID(sub1.ID)
	require.NoError(t, err)
	require.Equal(t, 10.0, row.Reward)

	row2, err := e.submissions.GetByID(sub2.ID)
	require.NoError(t, err)
	require.Equal(t, 25.0, row2.Reward)
}

func TestTaskRejectionPaysNothing(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	admin := e.admin(t)
	alice := e.user(t, models.RoleUser, 0, 0)

	task, err := e.catalog.CreateTask(ctx, admin.ID, "Share the post", 10, "")
	require.NoError(t, err)

	sub, err := e.catalog.SubmitTask(ctx, alice.ID, task.ID, "done", "")
	require.NoError(t, err)

	require.NoError(t, e.lifecycle.Resolve(ctx, admin.ID, KindTaskSubmission, sub.ID, DecisionRejected))

	require.Equal(t, 0.0, e.reload(t, alice.ID).WalletBalance)
	row, err := e.submissions.GetByID(sub.ID)
	require.NoError(t, err)
	require.Equal(t, models.StatusRejected, row.Status)
	require.Equal(t, 0.0, row.Reward)
}

func TestSubmitRequiresActiveTask(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	admin := e.admin(t)
	alice := e.user(t, models.RoleUser, 0, 0)

	task, err := e.catalog.CreateTask(ctx, admin.ID, "Old promo", 10, "")
	require.NoError(t, err)
	require.NoError(t, e.catalog.UpdateTask(ctx, admin.ID, task.ID, map[string]interface{}{"is_active": false}))

	_, err = e.catalog.SubmitTask(ctx, alice.ID, task.ID, "done", "")
	require.ErrorIs(t, err, ErrTaskInactive)
}

func TestCancelPendingPlanPurchase(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	alice := e.user(t, models.RoleUser, 100, 0)

	p, err := e.catalog.PurchasePlan(ctx, alice.ID, "starter")
	require.NoError(t, err)

	require.NoError(t, e.catalog.CancelPurchase(ctx, alice.ID, p.ID))
	require.Equal(t, 100.0, e.reload(t, alice.ID).USDBalance)

	_, err = e.plans.GetByID(p.ID)
	require.Error(t, err)

	// The row is gone; a second cancel finds nothing pending.
	err = e.catalog.CancelPurchase(ctx, alice.ID, p.ID)
	require.ErrorIs(t, err, ErrAlreadyResolved)
}

func TestCancelPlanPurchaseScopedToOwnerAndPending(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	admin := e.admin(t)
	alice := e.user(t, models.RoleUser, 100, 0)
	mallory := e.user(t, models.RoleUser, 0, 0)

	p, err := e.catalog.PurchasePlan(ctx, alice.ID, "starter")
	require.NoError(t, err)

	// Someone else's cancel touches nothing.
	err = e.catalog.CancelPurchase(ctx, mallory.ID, p.ID)
	require.ErrorIs(t, err, ErrAlreadyResolved)

	// Once approved the purchase is out of the user's hands.
	require.NoError(t, e.lifecycle.Resolve(ctx, admin.ID, KindPlanPurchase, p.ID, DecisionApproved))
	err = e.catalog.CancelPurchase(ctx, alice.ID, p.ID)
	require.ErrorIs(t, err, ErrAlreadyResolved)
	require.Equal(t, 90.0, e.reload(t, alice.ID).USDBalance)
}

func TestTaskAdministrationRequiresAdmin(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	alice := e.user(t, models.RoleUser, 0, 0)

	_, err := e.catalog.CreateTask(ctx, alice.ID, "Rogue task", 1000, "")
	require.ErrorIs(t, err, ErrForbidden)
}
