package logic

import (
	"fmt"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mdarif551578/hasmi-coin-mining-sub000/dao"
	"github.com/mdarif551578/hasmi-coin-mining-sub000/models"
	"github.com/mdarif551578/hasmi-coin-mining-sub000/pkg"
)

var userSeq uint64

// env wires the full logic stack against an in-memory database so
// tests run real transactions with real rollbacks.
type env struct {
	db          *gorm.DB
	store       *dao.Store
	users       *dao.UserDAO
	deposits    *dao.DepositDAO
	withdrawals *dao.WithdrawalDAO
	exchanges   *dao.ExchangeDAO
	listings    *dao.ListingDAO
	buys        *dao.BuyRequestDAO
	tasks       *dao.TaskDAO
	submissions *dao.TaskSubmissionDAO
	plans       *dao.PlanPurchaseDAO
	settings    *dao.SettingsDAO

	lifecycle *LifecycleLogic
	market    *MarketLogic
	wallet    *WalletLogic
	catalog   *CatalogLogic
	accounts  *UserLogic
	maturity  *MaturityLogic
	dashboard *DashboardLogic
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Deposit{},
		&models.Withdrawal{},
		&models.ExchangeRequest{},
		&models.MarketListing{},
		&models.BuyRequest{},
		&models.Task{},
		&models.TaskSubmission{},
		&models.PlanPurchase{},
		&models.Settings{},
	))
	return db
}

func newEnv(t *testing.T) *env {
	t.Helper()
	db := newTestDB(t)

	e := &env{
		db:          db,
		store:       dao.NewStore(db),
		users:       dao.NewUserDAO(db),
		deposits:    dao.NewDepositDAO(db),
		withdrawals: dao.NewWithdrawalDAO(db),
		exchanges:   dao.NewExchangeDAO(db),
		listings:    dao.NewListingDAO(db),
		buys:        dao.NewBuyRequestDAO(db),
		tasks:       dao.NewTaskDAO(db),
		submissions: dao.NewTaskSubmissionDAO(db),
		plans:       dao.NewPlanPurchaseDAO(db),
		settings:    dao.NewSettingsDAO(db),
	}
	require.NoError(t, e.settings.Ensure())

	e.dashboard = NewDashboardLogic(e.users, e.deposits, e.withdrawals, e.exchanges, e.listings, e.buys, e.submissions, e.plans)
	e.lifecycle = NewLifecycleLogic(e.store, e.users, e.deposits, e.withdrawals, e.exchanges, e.tasks, e.submissions, e.plans, e.dashboard)
	e.market = NewMarketLogic(e.store, e.users, e.listings, e.buys, e.dashboard)
	e.wallet = NewWalletLogic(e.store, e.users, e.deposits, e.withdrawals, e.exchanges, e.settings, e.dashboard)
	e.catalog = NewCatalogLogic(e.store, e.users, e.tasks, e.submissions, e.plans, e.settings, e.dashboard)
	e.accounts = NewUserLogic(e.store, e.users, e.settings, e.dashboard)
	e.maturity = NewMaturityLogic(e.store, e.users, e.plans, e.dashboard)
	return e
}

// user seeds an account with the given role and balances.
func (e *env) user(t *testing.T, role string, usd, wallet float64) *models.User {
	t.Helper()
	n := atomic.AddUint64(&userSeq, 1)
	code, err := pkg.NewReferralCode()
	require.NoError(t, err)
	u := &models.User{
		Email:         fmt.Sprintf("user%d@example.com", n),
		PasswordHash:  "x",
		DisplayName:   fmt.Sprintf("User %d", n),
		Role:          role,
		USDBalance:    usd,
		WalletBalance: wallet,
		ReferralCode:  code,
	}
	require.NoError(t, e.users.CreateUser(u))
	return u
}

func (e *env) admin(t *testing.T) *models.User {
	return e.user(t, models.RoleAdmin, 0, 0)
}

// reload fetches the current committed state of a user row.
func (e *env) reload(t *testing.T, id uint64) *models.User {
	t.Helper()
	u, err := e.users.GetUserByID(id)
	require.NoError(t, err)
	return u
}
