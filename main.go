package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/mdarif551578/hasmi-coin-mining-sub000/config"
	"github.com/mdarif551578/hasmi-coin-mining-sub000/controller"
	"github.com/mdarif551578/hasmi-coin-mining-sub000/dao"
	"github.com/mdarif551578/hasmi-coin-mining-sub000/logic"
	"github.com/mdarif551578/hasmi-coin-mining-sub000/middleware"
	"github.com/mdarif551578/hasmi-coin-mining-sub000/models"
)

func main() {
	// Initialize config
	if len(os.Args) < 2 {
		log.Fatal("Usage: go run main.go <config.yaml>")
	}
	configFile := os.Args[1]
	if err := config.LoadConfig(configFile); err != nil {
		log.Fatalf("Failed to load config from %s: %v", configFile, err)
	}

	// Initialize database
	db, err := gorm.Open(postgres.Open(config.GlobalConfig.DSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := db.AutoMigrate(
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
	); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// Initialize DAOs
	store := dao.NewStore(db)
	userDAO := dao.NewUserDAO(db)
	depositDAO := dao.NewDepositDAO(db)
	withdrawalDAO := dao.NewWithdrawalDAO(db)
	exchangeDAO := dao.NewExchangeDAO(db)
	listingDAO := dao.NewListingDAO(db)
	buyDAO := dao.NewBuyRequestDAO(db)
	taskDAO := dao.NewTaskDAO(db)
	submissionDAO := dao.NewTaskSubmissionDAO(db)
	planDAO := dao.NewPlanPurchaseDAO(db)
	settingsDAO := dao.NewSettingsDAO(db)

	if err := settingsDAO.Ensure(); err != nil {
		log.Fatalf("Failed to seed settings: %v", err)
	}

	// Initialize Logics
	dashboardLogic := logic.NewDashboardLogic(userDAO, depositDAO, withdrawalDAO, exchangeDAO, listingDAO, buyDAO, submissionDAO, planDAO)
	lifecycleLogic := logic.NewLifecycleLogic(store, userDAO, depositDAO, withdrawalDAO, exchangeDAO, taskDAO, submissionDAO, planDAO, dashboardLogic)
	marketLogic := logic.NewMarketLogic(store, userDAO, listingDAO, buyDAO, dashboardLogic)
	catalogLogic := logic.NewCatalogLogic(store, userDAO, taskDAO, submissionDAO, planDAO, settingsDAO, dashboardLogic)
	walletLogic := logic.NewWalletLogic(store, userDAO, depositDAO, withdrawalDAO, exchangeDAO, settingsDAO, dashboardLogic)
	userLogic := logic.NewUserLogic(store, userDAO, settingsDAO, dashboardLogic)
	maturityLogic := logic.NewMaturityLogic(store, userDAO, planDAO, dashboardLogic)

	// Initialize Controllers
	userCtrl := controller.NewUserController(userLogic)
	walletCtrl := controller.NewWalletController(walletLogic)
	marketCtrl := controller.NewMarketController(marketLogic)
	taskCtrl := controller.NewTaskController(catalogLogic)
	adminCtrl := controller.NewAdminController(lifecycleLogic, marketLogic, catalogLogic, dashboardLogic)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Start the dashboard aggregator
	dashboardLogic.Start(ctx)

	// Start the NFT maturity sweep
	c := cron.New()
	if _, err := c.AddFunc("@daily", func() {
		if _, err := maturityLogic.Sweep(ctx); err != nil {
			logrus.WithError(err).Error("maturity sweep failed")
		}
	}); err != nil {
		log.Fatalf("Failed to schedule maturity sweep: %v", err)
	}
	c.Start()
	defer c.Stop()

	// Setup Gin router
	r := gin.Default()

	r.POST("/user/register", userCtrl.Register)
	r.POST("/user/login", userCtrl.Login)
	r.GET("/user", middleware.Auth, userCtrl.GetProfile)
	r.POST("/mining/claim", middleware.Auth, userCtrl.ClaimMining)

	wallet := r.Group("/wallet", middleware.Auth)
	{
		wallet.GET("/deposit-methods", walletCtrl.GetDepositMethods)
		wallet.POST("/deposits", walletCtrl.CreateDeposit)
		wallet.GET("/deposits", walletCtrl.ListDeposits)
		wallet.DELETE("/deposits/:id", walletCtrl.CancelDeposit)
		wallet.POST("/withdrawals", walletCtrl.CreateWithdrawal)
		wallet.GET("/withdrawals", walletCtrl.ListWithdrawals)
		wallet.DELETE("/withdrawals/:id", walletCtrl.CancelWithdrawal)
		wallet.POST("/exchanges", walletCtrl.CreateExchange)
		wallet.GET("/exchanges", walletCtrl.ListExchanges)
		wallet.DELETE("/exchanges/:id", walletCtrl.CancelExchange)
	}

	market := r.Group("/market", middleware.Auth)
	{
		market.GET("/listings", marketCtrl.OpenListings)
		market.POST("/listings", marketCtrl.CreateListing)
		market.GET("/listings/mine", marketCtrl.MyListings)
		market.DELETE("/listings/:id", marketCtrl.CancelListing)
		market.POST("/listings/:id/buy", marketCtrl.CreateBuyRequest)
		market.GET("/buy-requests", marketCtrl.MyBuyRequests)
		market.DELETE("/buy-requests/:id", marketCtrl.CancelBuyRequest)
	}

	tasks := r.Group("/tasks", middleware.Auth)
	{
		tasks.GET("", taskCtrl.ListTasks)
		tasks.POST("/:id/submissions", taskCtrl.SubmitTask)
		tasks.GET("/submissions", taskCtrl.MySubmissions)
		tasks.DELETE("/submissions/:id", taskCtrl.CancelSubmission)
	}

	plans := r.Group("/plans", middleware.Auth)
	{
		plans.GET("", taskCtrl.ListPlans)
		plans.POST("/purchase", taskCtrl.PurchasePlan)
		plans.GET("/purchases", taskCtrl.MyPurchases)
		plans.DELETE("/purchases/:id", taskCtrl.CancelPurchase)
	}

	admin := r.Group("/admin", middleware.Auth, middleware.AdminOnly)
	{
		admin.GET("/dashboard", adminCtrl.Dashboard)

		admin.GET("/deposits", adminCtrl.PendingDeposits)
		admin.POST("/deposits/:id/approve", adminCtrl.ApproveDeposit)
		admin.POST("/deposits/:id/reject", adminCtrl.RejectDeposit)

		admin.GET("/withdrawals", adminCtrl.PendingWithdrawals)
		admin.POST("/withdrawals/:id/approve", adminCtrl.ApproveWithdrawal)
		admin.POST("/withdrawals/:id/reject", adminCtrl.RejectWithdrawal)

		admin.GET("/exchanges", adminCtrl.PendingExchanges)
		admin.POST("/exchanges/:id/approve", adminCtrl.ApproveExchange)
		admin.POST("/exchanges/:id/reject", adminCtrl.RejectExchange)

		admin.GET("/listings", adminCtrl.PendingListings)
		admin.POST("/listings/:id/approve", adminCtrl.ApproveListing)
		admin.POST("/listings/:id/reject", adminCtrl.RejectListing)

		admin.GET("/buy-requests", adminCtrl.PendingBuyRequests)
		admin.POST("/buy-requests/:id/approve", adminCtrl.ApproveBuyRequest)
		admin.POST("/buy-requests/:id/reject", adminCtrl.RejectBuyRequest)

		admin.GET("/task-submissions", adminCtrl.PendingTaskSubmissions)
		admin.POST("/task-submissions/:id/approve", adminCtrl.ApproveTaskSubmission)
		admin.POST("/task-submissions/:id/reject", adminCtrl.RejectTaskSubmission)

		admin.GET("/plan-purchases", adminCtrl.PendingPlanPurchases)
		admin.POST("/plan-purchases/:id/approve", adminCtrl.ApprovePlanPurchase)
		admin.POST("/plan-purchases/:id/reject", adminCtrl.RejectPlanPurchase)

		admin.POST("/tasks", adminCtrl.CreateTask)
		admin.PATCH("/tasks/:id", adminCtrl.UpdateTask)
	}

	// Run server
	if err := r.Run(fmt.Sprintf(":%d", config.GlobalConfig.Server.Port)); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
