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

// Marketplace errors surfaced to end users rather than admins.
var (
	ErrListingUnavailable = errors.New("listing is not open")
	ErrListingClaimed     = errors.New("listing has a pending buy request")
	ErrOwnListing         = errors.New("cannot buy your own listing")
)

// MarketLogic handles the two-sided trade flows: listing moderation
// with HC escrow, buyer claims and admin-mediated settlement.
type MarketLogic struct {
	store      *dao.Store
	userDAO    *dao.UserDAO
	listingDAO *dao.ListingDAO
	buyDAO     *dao.BuyRequestDAO
	notifier   Notifier
}

func NewMarketLogic(
	store *dao.Store,
	userDAO *dao.UserDAO,
	listingDAO *dao.ListingDAO,
	buyDAO *dao.BuyRequestDAO,
	notifier Notifier,
) *MarketLogic {
	return &MarketLogic{
		store:      store,
		userDAO:    userDAO,
		listingDAO: listingDAO,
		buyDAO:     buyDAO,
		notifier:   notifier,
	}
}

// CreateListing files a pending sell offer. No HC moves yet; escrow
// happens when an admin opens the listing.
func (l *MarketLogic) CreateListing(ctx context.Context, sellerID uint64, amount, rate float64) (*models.MarketListing, error) {
	if amount <= 0 || rate <= 0 {
		return nil, fmt.Errorf("amount and rate must be positive")
	}
	listing := &models.MarketListing{
		SellerID: sellerID,
		Amount:   amount,
		Rate:     rate,
		Status:   models.StatusPending,
	}
	if err := l.listingDAO.Create(listing); err != nil {
		return nil, err
	}
	l.notify()
	return listing, nil
}

// ApproveListing opens a listing to buyers and escrows the seller's
// HC in the same transaction, so a seller cannot list coins they do
// not hold or spend listed coins elsewhere.
func (l *MarketLogic) ApproveListing(ctx context.Context, adminID uint64, id uuid.UUID) error {
	err := l.store.RunTransaction(ctx, func(tx *gorm.DB) error {
		if err := requireAdmin(l.userDAO.WithTx(tx), adminID); err != nil {
			return err
		}
		listing, err := l.listingDAO.WithTx(tx).GetByID(id)
		if err != nil {
			return notFoundOr(err, "listing")
		}
		if listing.Status != models.StatusPending {
			return ErrAlreadyResolved
		}
		ok, err := l.userDAO.WithTx(tx).DebitBalance(listing.SellerID, dao.FieldWallet, listing.Amount)
		if err != nil {
			return notFoundOr(err, "seller")
		}
		if !ok {
			return ErrInsufficientFunds
		}
		return flip(l.listingDAO.WithTx(tx).Transition(id, models.StatusPending, models.ListingOpen))
	})
	return l.finish("listing approved", id, adminID, err)
}

// RejectListing is a pure status flip; nothing was escrowed yet.
func (l *MarketLogic) RejectListing(ctx context.Context, adminID uint64, id uuid.UUID) error {
	err := l.store.RunTransaction(ctx, func(tx *gorm.DB) error {
		if err := requireAdmin(l.userDAO.WithTx(tx), adminID); err != nil {
			return err
		}
		listing, err := l.listingDAO.WithTx(tx).GetByID(id)
		if err != nil {
			return notFoundOr(err, "listing")
		}
		if listing.Status != models.StatusPending {
			return ErrAlreadyResolved
		}
		return flip(l.listingDAO.WithTx(tx).Transition(id, models.StatusPending, models.StatusRejected))
	})
	return l.finish("listing rejected", id, adminID, err)
}

// CancelListing lets the seller withdraw a listing that has no pending
// buy request against it, releasing the escrow when it was open. The
// claim check runs inside the transaction so a buyer claiming at the
// same moment cannot slip through.
func (l *MarketLogic) CancelListing(ctx context.Context, sellerID uint64, id uuid.UUID) error {
	err := l.store.RunTransaction(ctx, func(tx *gorm.DB) error {
		listing, err := l.listingDAO.WithTx(tx).GetByID(id)
		if err != nil {
			return notFoundOr(err, "listing")
		}
		if listing.SellerID != sellerID {
			return ErrForbidden
		}
		if listing.Status != models.StatusPending && listing.Status != models.ListingOpen {
			return ErrAlreadyResolved
		}
		claimed, err := l.buyDAO.WithTx(tx).HasPendingForListing(id)
		if err != nil {
			return err
		}
		if claimed {
			return ErrListingClaimed
		}
		if listing.Status == models.ListingOpen {
			if err := l.userDAO.WithTx(tx).AdjustBalance(sellerID, dao.FieldWallet, listing.Amount); err != nil {
				return notFoundOr(err, "user")
			}
		}
		return flip(l.listingDAO.WithTx(tx).Transition(id, listing.Status, models.ListingCancelled))
	})
	if err == nil {
		l.notify()
	}
	return err
}

// CreateBuyRequest claims an open listing for a buyer. Amount, rate
// and total price are snapshotted from the listing; the buyer's funds
// are only debited at settlement.
func (l *MarketLogic) CreateBuyRequest(ctx context.Context, buyerID uint64, listingID uuid.UUID) (*models.BuyRequest, error) {
	var br *models.BuyRequest
	err := l.store.RunTransaction(ctx, func(tx *gorm.DB) error {
		listing, err := l.listingDAO.WithTx(tx).GetByID(listingID)
		if err != nil {
			return notFoundOr(err, "listing")
		}
		if listing.Status != models.ListingOpen {
			return ErrListingUnavailable
		}
		if listing.SellerID == buyerID {
			return ErrOwnListing
		}
		br = &models.BuyRequest{
			ListingID:  listingID,
			BuyerID:    buyerID,
			SellerID:   listing.SellerID,
			Amount:     listing.Amount,
			Rate:       listing.Rate,
			TotalPrice: listing.Amount * listing.Rate,
			Status:     models.StatusPending,
		}
		return l.buyDAO.WithTx(tx).Create(br)
	})
	if err != nil {
		return nil, err
	}
	l.notify()
	return br, nil
}

// SettleBuyRequest finalizes a trade. Approval reads all four rows in
// one transaction, verifies the request and listing are still in the
// expected states, moves the USD leg buyer to seller, hands the
// escrowed HC to the buyer and marks the listing sold. Rejection flips
// the request only and leaves the listing open with its escrow intact.
func (l *MarketLogic) SettleBuyRequest(ctx context.Context, adminID uint64, id uuid.UUID, decision Decision) error {
	if decision != DecisionApproved && decision != DecisionRejected {
		return fmt.Errorf("invalid decision %q", decision)
	}
	err := l.store.RunTransaction(ctx, func(tx *gorm.DB) error {
		if err := requireAdmin(l.userDAO.WithTx(tx), adminID); err != nil {
			return err
		}
		br, err := l.buyDAO.WithTx(tx).GetByID(id)
		if err != nil {
			return notFoundOr(err, "buy request")
		}
		if br.Status != models.StatusPending {
			return ErrAlreadyResolved
		}

		if decision == DecisionRejected {
			return flip(l.buyDAO.WithTx(tx).MarkResolved(id, string(decision)))
		}

		listing, err := l.listingDAO.WithTx(tx).GetByID(br.ListingID)
		if err != nil {
			return notFoundOr(err, "listing")
		}
		if listing.Status != models.ListingOpen {
			return ErrAlreadyResolved
		}

		users := l.userDAO.WithTx(tx)
		ok, err := users.DebitBalance(br.BuyerID, dao.FieldUSD, br.TotalPrice)
		if err != nil {
			return notFoundOr(err, "buyer")
		}
		if !ok {
			return ErrInsufficientFunds
		}
		if err := users.AdjustBalance(br.SellerID, dao.FieldUSD, br.TotalPrice); err != nil {
			return notFoundOr(err, "seller")
		}
		// HC leg: the coins escrowed at listing-open time go to the buyer.
		if err := users.AdjustBalance(br.BuyerID, dao.FieldWallet, br.Amount); err != nil {
			return notFoundOr(err, "buyer")
		}
		if err := flip(l.buyDAO.WithTx(tx).MarkResolved(id, string(decision))); err != nil {
			return err
		}
		return flip(l.listingDAO.WithTx(tx).Transition(br.ListingID, models.ListingOpen, models.ListingSold))
	})
	return l.finish("buy request settled", id, adminID, err)
}

// CancelBuyRequest deletes the buyer's own still-pending claim. No
// compensating balance effect: nothing was debited at claim time.
func (l *MarketLogic) CancelBuyRequest(ctx context.Context, buyerID uint64, id uuid.UUID) error {
	ok, err := l.buyDAO.DeletePending(id, buyerID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrAlreadyResolved
	}
	l.notify()
	return nil
}

// OpenListings returns the listings visible to buyers.
func (l *MarketLogic) OpenListings() ([]models.MarketListing, error) {
	return l.listingDAO.ListByStatus(models.ListingOpen)
}

// ListingsBySeller returns a seller's own listings.
func (l *MarketLogic) ListingsBySeller(sellerID uint64) ([]models.MarketListing, error) {
	return l.listingDAO.ListBySeller(sellerID)
}

// BuyRequestsByBuyer returns a buyer's own claims.
func (l *MarketLogic) BuyRequestsByBuyer(buyerID uint64) ([]models.BuyRequest, error) {
	return l.buyDAO.ListByBuyer(buyerID)
}

// PendingListings returns the listings awaiting moderation.
func (l *MarketLogic) PendingListings() ([]models.MarketListing, error) {
	return l.listingDAO.ListByStatus(models.StatusPending)
}

// PendingBuyRequests returns the claims awaiting settlement.
func (l *MarketLogic) PendingBuyRequests() ([]models.BuyRequest, error) {
	return l.buyDAO.ListByStatus(models.StatusPending)
}

func (l *MarketLogic) notify() {
	if l.notifier != nil {
		l.notifier.Notify()
	}
}

// finish logs the outcome of an admin-driven market operation and
// pokes the dashboard after commit, never inside the retryable body.
func (l *MarketLogic) finish(action string, id uuid.UUID, adminID uint64, err error) error {
	entry := logrus.WithFields(logrus.Fields{"id": id, "admin_id": adminID})
	if err != nil {
		entry.WithError(err).Warn(action + " failed")
		return err
	}
	entry.Info(action)
	l.notify()
	return nil
}
