package logic

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/mdarif551578/hasmi-coin-mining-sub000/models"
)

func TestListingApprovalEscrowsSellerCoins(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	admin := e.admin(t)
	seller := e.user(t, models.RoleUser, 0, 500)

	listing, err := e.market.CreateListing(ctx, seller.ID, 200, 0.1)
	require.NoError(t, err)
	require.Equal(t, models.StatusPending, listing.Status)

	// Creation does not move coins; opening does.
	require.Equal(t, 500.0, e.reload(t, seller.ID).WalletBalance)

	require.NoError(t, e.market.ApproveListing(ctx, admin.ID, listing.ID))
	require.Equal(t, 300.0, e.reload(t, seller.ID).WalletBalance)

	row, err := e.listings.GetByID(listing.ID)
	require.NoError(t, err)
	require.Equal(t, models.ListingOpen, row.Status)
}

func TestListingApprovalRequiresSufficientCoins(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	admin := e.admin(t)
	seller := e.user(t, models.RoleUser, 0, 50)

	listing, err := e.market.CreateListing(ctx, seller.ID, 200, 0.1)
	require.NoError(t, err)

	err = e.market.ApproveListing(ctx, admin.ID, listing.ID)
	require.ErrorIs(t, err, ErrInsufficientFunds)

	require.Equal(t, 50.0, e.reload(t, seller.ID).WalletBalance)
	row, err := e.listings.GetByID(listing.ID)
	require.NoError(t, err)
	require.Equal(t, models.StatusPending, row.Status)
}

func TestBuyRequestSettlementMovesBothLegs(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	admin := e.admin(t)
	seller := e.user(t, models.RoleUser, 5, 500)
	buyer := e.user(t, models.RoleUser, 50, 0)

	listing, err := e.market.CreateListing(ctx, seller.ID, 200, 0.1)
	require.NoError(t, err)
	require.NoError(t, e.market.ApproveListing(ctx, admin.ID, listing.ID))

	br, err := e.market.CreateBuyRequest(ctx, buyer.ID, listing.ID)
	require.NoError(t, err)
	require.Equal(t, 20.0, br.TotalPrice)

	require.NoError(t, e.market.SettleBuyRequest(ctx, admin.ID, br.ID, DecisionApproved))

	freshBuyer := e.reload(t, buyer.ID)
	require.Equal(t, 30.0, freshBuyer.USDBalance)
	require.Equal(t, 200.0, freshBuyer.WalletBalance)

	freshSeller := e.reload(t, seller.ID)
	require.Equal(t, 25.0, freshSeller.USDBalance)
	require.Equal(t, 300.0, freshSeller.WalletBalance)

	row, err := e.listings.GetByID(listing.ID)
	require.NoError(t, err)
	require.Equal(t, models.ListingSold, row.Status)
}

func TestBuyRequestSettlesAtMostOnce(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	admin := e.admin(t)
	seller := e.user(t, models.RoleUser, 0, 500)
	buyer := e.user(t, models.RoleUser, 50, 0)

	listing, err := e.market.CreateListing(ctx, seller.ID, 200, 0.1)
	require.NoError(t, err)
	require.NoError(t, e.market.ApproveListing(ctx, admin.ID, listing.ID))

	br, err := e.market.CreateBuyRequest(ctx, buyer.ID, listing.ID)
	require.NoError(t, err)

	require.NoError(t, e.market.SettleBuyRequest(ctx, admin.ID, br.ID, DecisionApproved))
	err = e.market.SettleBuyRequest(ctx, admin.ID, br.ID, DecisionApproved)
	require.ErrorIs(t, err, ErrAlreadyResolved)

	// Exactly one settlement's worth of movement.
	require.Equal(t, 30.0, e.reload(t, buyer.ID).USDBalance)
	require.Equal(t, 20.0, e.reload(t, seller.ID).USDBalance)
}

func TestSecondDistinctBuyRequestCannotSettle(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	admin := e.admin(t)
	seller := e.user(t, models.RoleUser, 0, 500)
	first := e.user(t, models.RoleUser, 50, 0)
	second := e.user(t, models.RoleUser, 50, 0)

	listing, err := e.market.CreateListing(ctx, seller.ID, 200, 0.1)
	require.NoError(t, err)
	require.NoError(t, e.market.ApproveListing(ctx, admin.ID, listing.ID))

	// Both buyers claim the same open listing.
	br1, err := e.market.CreateBuyRequest(ctx, first.ID, listing.ID)
	require.NoError(t, err)
	br2, err := e.market.CreateBuyRequest(ctx, second.ID, listing.ID)
	require.NoError(t, err)

	require.NoError(t, e.market.SettleBuyRequest(ctx, admin.ID, br1.ID, DecisionApproved))

	// The listing is sold; approving the rival claim must fail even
	// though that request itself is still pending.
	err = e.market.SettleBuyRequest(ctx, admin.ID, br2.ID, DecisionApproved)
	require.ErrorIs(t, err, ErrAlreadyResolved)

	freshSecond := e.reload(t, second.ID)
	require.Equal(t, 50.0, freshSecond.USDBalance)
	require.Equal(t, 0.0, freshSecond.WalletBalance)
	require.Equal(t, 20.0, e.reload(t, seller.ID).USDBalance)

	row, err := e.buys.GetByID(br2.ID)
	require.NoError(t, err)
	require.Equal(t, models.StatusPending, row.Status)

	// The losing claim can still be rejected to clear the queue.
	require.NoError(t, e.market.SettleBuyRequest(ctx, admin.ID, br2.ID, DecisionRejected))
}

func TestBuyRequestRejectionKeepsListingOpen(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	admin := e.admin(t)
	seller := e.user(t, models.RoleUser, 0, 500)
	buyer := e.user(t, models.RoleUser, 50, 0)

	listing, err := e.market.CreateListing(ctx, seller.ID, 200, 0.1)
	require.NoError(t, err)
	require.NoError(t, e.market.ApproveListing(ctx, admin.ID, listing.ID))

	br, err := e.market.CreateBuyRequest(ctx, buyer.ID, listing.ID)
	require.NoError(t, err)

	require.NoError(t, e.market.SettleBuyRequest(ctx, admin.ID, br.ID, DecisionRejected))

	require.Equal(t, 50.0, e.reload(t, buyer.ID).USDBalance)
	row, err := e.listings.GetByID(listing.ID)
	require.NoError(t, err)
	require.Equal(t, models.ListingOpen, row.Status)

	// The listing can be claimed again after the rejection.
	_, err = e.market.CreateBuyRequest(ctx, buyer.ID, listing.ID)
	require.NoError(t, err)
}

func TestBuyRequestRejectsOwnListing(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	admin := e.admin(t)
	seller := e.user(t, models.RoleUser, 50, 500)

	listing, err := e.market.CreateListing(ctx, seller.ID, 200, 0.1)
	require.NoError(t, err)
	require.NoError(t, e.market.ApproveListing(ctx, admin.ID, listing.ID))

	_, err = e.market.CreateBuyRequest(ctx, seller.ID, listing.ID)
	require.ErrorIs(t, err, ErrOwnListing)
}

func TestBuyRequestNeedsOpenListing(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	seller := e.user(t, models.RoleUser, 0, 500)
	buyer := e.user(t, models.RoleUser, 50, 0)

	listing, err := e.market.CreateListing(ctx, seller.ID, 200, 0.1)
	require.NoError(t, err)

	// Still pending: not visible to buyers.
	_, err = e.market.CreateBuyRequest(ctx, buyer.ID, listing.ID)
	require.ErrorIs(t, err, ErrListingUnavailable)
}

func TestCancelListingReleasesEscrow(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	admin := e.admin(t)
	seller := e.user(t, models.RoleUser, 0, 500)

	listing, err := e.market.CreateListing(ctx, seller.ID, 200, 0.1)
	require.NoError(t, err)
	require.NoError(t, e.market.ApproveListing(ctx, admin.ID, listing.ID))
	require.Equal(t, 300.0, e.reload(t, seller.ID).WalletBalance)

	require.NoError(t, e.market.CancelListing(ctx, seller.ID, listing.ID))
	require.Equal(t, 500.0, e.reload(t, seller.ID).WalletBalance)

	row, err := e.listings.GetByID(listing.ID)
	require.NoError(t, err)
	require.Equal(t, models.ListingCancelled, row.Status)
}

func TestCancelPendingListingReleasesNothing(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	seller := e.user(t, models.RoleUser, 0, 500)

	listing, err := e.market.CreateListing(ctx, seller.ID, 200, 0.1)
	require.NoError(t, err)

	require.NoError(t, e.market.CancelListing(ctx, seller.ID, listing.ID))
	require.Equal(t, 500.0, e.reload(t, seller.ID).WalletBalance)
}

func TestCancelListingBlockedWhileClaimed(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	admin := e.admin(t)
	seller := e.user(t, models.RoleUser, 0, 500)
	buyer := e.user(t, models.RoleUser, 50, 0)

	listing, err := e.market.CreateListing(ctx, seller.ID, 200, 0.1)
	require.NoError(t, err)
	require.NoError(t, e.market.ApproveListing(ctx, admin.ID, listing.ID))

	br, err := e.market.CreateBuyRequest(ctx, buyer.ID, listing.ID)
	require.NoError(t, err)

	err = e.market.CancelListing(ctx, seller.ID, listing.ID)
	require.ErrorIs(t, err, ErrListingClaimed)

	// Once the claim is withdrawn the seller can cancel.
	require.NoError(t, e.market.CancelBuyRequest(ctx, buyer.ID, br.ID))
	require.NoError(t, e.market.CancelListing(ctx, seller.ID, listing.ID))
	require.Equal(t, 500.0, e.reload(t, seller.ID).WalletBalance)
}

func TestCancelListingOwnerOnly(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	seller := e.user(t, models.RoleUser, 0, 500)
	mallory := e.user(t, models.RoleUser, 0, 0)

	listing, err := e.market.CreateListing(ctx, seller.ID, 200, 0.1)
	require.NoError(t, err)

	err = e.market.CancelListing(ctx, mallory.ID, listing.ID)
	require.ErrorIs(t, err, ErrForbidden)
}

func TestRejectListing(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	admin := e.admin(t)
	seller := e.user(t, models.RoleUser, 0, 500)

	listing, err := e.market.CreateListing(ctx, seller.ID, 200, 0.1)
	require.NoError(t, err)

	require.NoError(t, e.market.RejectListing(ctx, admin.ID, listing.ID))
	require.Equal(t, 500.0, e.reload(t, seller.ID).WalletBalance)

	row, err := e.listings.GetByID(listing.ID)
	require.NoError(t, err)
	require.Equal(t, models.StatusRejected, row.Status)

	// Terminal rows and missing rows map to different errors.
	err = e.market.RejectListing(ctx, admin.ID, listing.ID)
	require.ErrorIs(t, err, ErrAlreadyResolved)

	err = e.market.RejectListing(ctx, admin.ID, uuid.New())
	require.ErrorIs(t, err, ErrNotFound)
}

func TestSettlementReportsVanishedBuyer(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	admin := e.admin(t)
	seller := e.user(t, models.RoleUser, 0, 500)
	buyer := e.user(t, models.RoleUser, 50, 0)

	listing, err := e.market.CreateListing(ctx, seller.ID, 200, 0.1)
	require.NoError(t, err)
	require.NoError(t, e.market.ApproveListing(ctx, admin.ID, listing.ID))

	br, err := e.market.CreateBuyRequest(ctx, buyer.ID, listing.ID)
	require.NoError(t, err)

	// The buyer's row disappears while the claim sits pending. That is
	// a missing user, not a short balance.
	require.NoError(t, e.db.Delete(&models.User{}, buyer.ID).Error)

	err = e.market.SettleBuyRequest(ctx, admin.ID, br.ID, DecisionApproved)
	require.ErrorIs(t, err, ErrNotFound)

	// Full rollback: seller untouched, listing still open.
	require.Equal(t, 0.0, e.reload(t, seller.ID).USDBalance)
	row, err := e.listings.GetByID(listing.ID)
	require.NoError(t, err)
	require.Equal(t, models.ListingOpen, row.Status)
}

func TestSettlementNeedsSolventBuyer(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	admin := e.admin(t)
	seller := e.user(t, models.RoleUser, 0, 500)
	buyer := e.user(t, models.RoleUser, 10, 0)

	listing, err := e.market.CreateListing(ctx, seller.ID, 200, 0.1)
	require.NoError(t, err)
	require.NoError(t, e.market.ApproveListing(ctx, admin.ID, listing.ID))

	br, err := e.market.CreateBuyRequest(ctx, buyer.ID, listing.ID)
	require.NoError(t, err)

	err = e.market.SettleBuyRequest(ctx, admin.ID, br.ID, DecisionApproved)
	require.ErrorIs(t, err, ErrInsufficientFunds)

	// Full rollback: nothing moved, nothing flipped.
	require.Equal(t, 10.0, e.reload(t, buyer.ID).USDBalance)
	require.Equal(t, 0.0, e.reload(t, seller.ID).USDBalance)
	row, err := e.listings.GetByID(listing.ID)
	require.NoError(t, err)
	require.Equal(t, models.ListingOpen, row.Status)
}
