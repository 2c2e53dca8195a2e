package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mdarif551578/hasmi-coin-mining-sub000/logic"
	"github.com/mdarif551578/hasmi-coin-mining-sub000/middleware"
)

// WalletController handles deposit, withdrawal and exchange requests
type WalletController struct {
	walletLogic *logic.WalletLogic
}

func NewWalletController(walletLogic *logic.WalletLogic) *WalletController {
	return &WalletController{walletLogic: walletLogic}
}

// GetDepositMethods handles GET /wallet/deposit-methods
func (c *WalletController) GetDepositMethods(ctx *gin.Context) {
	methods, err := c.walletLogic.DepositMethods()
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, methods)
}

// CreateDeposit handles POST /wallet/deposits
func (c *WalletController) CreateDeposit(ctx *gin.Context) {
	type Request struct {
		Amount float64 `json:"amount" binding:"required,gt=0"`
		Method string  `json:"method" binding:"required"`
		TxRef  string  `json:"tx_ref" binding:"required"`
	}
	var req Request
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	dep, err := c.walletLogic.CreateDeposit(ctx.Request.Context(), middleware.UserID(ctx), req.Amount, req.Method, req.TxRef)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dep)
}

// ListDeposits handles GET /wallet/deposits
func (c *WalletController) ListDeposits(ctx *gin.Context) {
	list, err := c.walletLogic.Deposits(middleware.UserID(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, list)
}

// CancelDeposit handles DELETE /wallet/deposits/:id
func (c *WalletController) CancelDeposit(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}
	if err := c.walletLogic.CancelDeposit(ctx.Request.Context(), middleware.UserID(ctx), id); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "deposit request cancelled"})
}

// CreateWithdrawal handles POST /wallet/withdrawals
func (c *WalletController) CreateWithdrawal(ctx *gin.Context) {
	type Request struct {
		Amount        float64 `json:"amount" binding:"required,gt=0"`
		Method        string  `json:"method" binding:"required"`
		AccountNumber string  `json:"account_number" binding:"required"`
	}
	var req Request
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	w, err := c.walletLogic.CreateWithdrawal(ctx.Request.Context(), middleware.UserID(ctx), req.Amount, req.Method, req.AccountNumber)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, w)
}

// ListWithdrawals handles GET /wallet/withdrawals
func (c *WalletController) ListWithdrawals(ctx *gin.Context) {
	list, err := c.walletLogic.Withdrawals(middleware.UserID(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, list)
}

// CancelWithdrawal handles DELETE /wallet/withdrawals/:id
func (c *WalletController) CancelWithdrawal(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}
	if err := c.walletLogic.CancelWithdrawal(ctx.Request.Context(), middleware.UserID(ctx), id); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "withdrawal cancelled and funds released"})
}

// CreateExchange handles POST /wallet/exchanges
func (c *WalletController) CreateExchange(ctx *gin.Context) {
	type Request struct {
		USDAmount float64 `json:"usd_amount" binding:"required,gt=0"`
	}
	var req Request
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ex, err := c.walletLogic.CreateExchange(ctx.Request.Context(), middleware.UserID(ctx), req.USDAmount)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, ex)
}

// ListExchanges handles GET /wallet/exchanges
func (c *WalletController) ListExchanges(ctx *gin.Context) {
	list, err := c.walletLogic.Exchanges(middleware.UserID(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, list)
}

// CancelExchange handles DELETE /wallet/exchanges/:id
func (c *WalletController) CancelExchange(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}
	if err := c.walletLogic.CancelExchange(ctx.Request.Context(), middleware.UserID(ctx), id); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "exchange request cancelled"})
}
