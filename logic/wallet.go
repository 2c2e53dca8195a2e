package logic

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/mdarif551578/hasmi-coin-mining-sub000/dao"
	"github.com/mdarif551578/hasmi-coin-mining-sub000/models"
)

// WalletLogic handles the user-facing creation and cancellation of
// deposit, withdrawal and exchange requests. Creation appends a
// pending row; the one exception to "no balance effect at creation"
// is the withdrawal hold.
type WalletLogic struct {
	store         *dao.Store
	userDAO       *dao.UserDAO
	depositDAO    *dao.DepositDAO
	withdrawalDAO *dao.WithdrawalDAO
	exchangeDAO   *dao.ExchangeDAO
	settingsDAO   *dao.SettingsDAO
	notifier      Notifier
}

func NewWalletLogic(
	store *dao.Store,
	userDAO *dao.UserDAO,
	depositDAO *dao.DepositDAO,
	withdrawalDAO *dao.WithdrawalDAO,
	exchangeDAO *dao.ExchangeDAO,
	settingsDAO *dao.SettingsDAO,
	notifier Notifier,
) *WalletLogic {
	return &WalletLogic{
		store:         store,
		userDAO:       userDAO,
		depositDAO:    depositDAO,
		withdrawalDAO: withdrawalDAO,
		exchangeDAO:   exchangeDAO,
		settingsDAO:   settingsDAO,
		notifier:      notifier,
	}
}

// CreateDeposit files a claim that funds were sent over an external
// rail. Nothing is credited until an admin reconciles and approves.
func (l *WalletLogic) CreateDeposit(ctx context.Context, userID uint64, amount float64, method, txRef string) (*models.Deposit, error) {
	settings, err := l.settingsDAO.Get()
	if err != nil {
		return nil, err
	}
	if amount < settings.MinDeposit {
		return nil, fmt.Errorf("minimum deposit is %v", settings.MinDeposit)
	}
	dep := &models.Deposit{
		UserID: userID,
		Amount: amount,
		Method: method,
		TxRef:  txRef,
		Status: models.StatusPending,
	}
	if err := l.depositDAO.Create(dep); err != nil {
		return nil, err
	}
	l.notify()
	return dep, nil
}

// CreateWithdrawal holds the amount out of usd_balance and files the
// request in one transaction. A short balance fails the whole thing.
func (l *WalletLogic) CreateWithdrawal(ctx context.Context, userID uint64, amount float64, method, accountNumber string) (*models.Withdrawal, error) {
	settings, err := l.settingsDAO.Get()
	if err != nil {
		return nil, err
	}
	if amount < settings.MinWithdrawal {
		return nil, fmt.Errorf("minimum withdrawal is %v", settings.MinWithdrawal)
	}

	w := &models.Withdrawal{
		UserID:        userID,
		Amount:        amount,
		Method:        method,
		AccountNumber: accountNumber,
		Status:        models.StatusPending,
	}
	err = l.store.RunTransaction(ctx, func(tx *gorm.DB) error {
		ok, err := l.userDAO.WithTx(tx).DebitBalance(userID, dao.FieldUSD, amount)
		if err != nil {
			return notFoundOr(err, "user")
		}
		if !ok {
			return ErrInsufficientFunds
		}
		return l.withdrawalDAO.WithTx(tx).Create(w)
	})
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{"user_id": userID, "amount": amount}).Info("withdrawal hold taken")
	l.notify()
	return w, nil
}

// CreateExchange files a USD-to-HC conversion at the current settings
// rate. No funds move until approval.
func (l *WalletLogic) CreateExchange(ctx context.Context, userID uint64, usdAmount float64) (*models.ExchangeRequest, error) {
	if usdAmount <= 0 {
		return nil, fmt.Errorf("amount must be positive")
	}
	settings, err := l.settingsDAO.Get()
	if err != nil {
		return nil, err
	}
	ex := &models.ExchangeRequest{
		UserID:    userID,
		USDAmount: usdAmount,
		Rate:      settings.ExchangeRate,
		HCAmount:  usdAmount * settings.ExchangeRate,
		Status:    models.StatusPending,
	}
	if err := l.exchangeDAO.Create(ex); err != nil {
		return nil, err
	}
	l.notify()
	return ex, nil
}

// CancelDeposit deletes the user's own still-pending deposit request.
func (l *WalletLogic) CancelDeposit(ctx context.Context, userID uint64, id uuid.UUID) error {
	ok, err := l.depositDAO.DeletePending(id, userID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrAlreadyResolved
	}
	l.notify()
	return nil
}

// CancelWithdrawal deletes a still-pending withdrawal and releases the
// hold in the same transaction.
func (l *WalletLogic) CancelWithdrawal(ctx context.Context, userID uint64, id uuid.UUID) error {
	err := l.store.RunTransaction(ctx, func(tx *gorm.DB) error {
		w, err := l.withdrawalDAO.WithTx(tx).GetByID(id)
		if err != nil {
			return notFoundOr(err, "withdrawal")
		}
		if w.UserID != userID {
			return ErrForbidden
		}
		ok, err := l.withdrawalDAO.WithTx(tx).DeletePending(id, userID)
		if err != nil {
			return err
		}
		if !ok {
			return ErrAlreadyResolved
		}
		return l.userDAO.WithTx(tx).AdjustBalance(userID, dao.FieldUSD, w.Amount)
	})
	if err != nil {
		return err
	}
	l.notify()
	return nil
}

// CancelExchange deletes the user's own still-pending exchange
// request. Nothing to refund: nothing was held.
func (l *WalletLogic) CancelExchange(ctx context.Context, userID uint64, id uuid.UUID) error {
	ok, err := l.exchangeDAO.DeletePending(id, userID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrAlreadyResolved
	}
	l.notify()
	return nil
}

// Deposits returns the user's deposit history.
func (l *WalletLogic) Deposits(userID uint64) ([]models.Deposit, error) {
	return l.depositDAO.ListByUser(userID)
}

// Withdrawals returns the user's withdrawal history.
func (l *WalletLogic) Withdrawals(userID uint64) ([]models.Withdrawal, error) {
	return l.withdrawalDAO.ListByUser(userID)
}

// Exchanges returns the user's exchange history.
func (l *WalletLogic) Exchanges(userID uint64) ([]models.ExchangeRequest, error) {
	return l.exchangeDAO.ListByUser(userID)
}

// DepositMethods returns the manual payment rails from settings.
func (l *WalletLogic) DepositMethods() ([]models.DepositMethod, error) {
	settings, err := l.settingsDAO.Get()
	if err != nil {
		return nil, err
	}
	return settings.DepositMethods, nil
}

func (l *WalletLogic) notify() {
	if l.notifier != nil {
		l.notifier.Notify()
	}
}
