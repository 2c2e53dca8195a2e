package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mdarif551578/hasmi-coin-mining-sub000/logic"
	"github.com/mdarif551578/hasmi-coin-mining-sub000/middleware"
)

// AdminController exposes the approve/reject action surface, the
// pending queues and the dashboard counters.
type AdminController struct {
	lifecycleLogic *logic.LifecycleLogic
	marketLogic    *logic.MarketLogic
	catalogLogic   *logic.CatalogLogic
	dashboardLogic *logic.DashboardLogic
}

func NewAdminController(
	lifecycleLogic *logic.LifecycleLogic,
	marketLogic *logic.MarketLogic,
	catalogLogic *logic.CatalogLogic,
	dashboardLogic *logic.DashboardLogic,
) *AdminController {
	return &AdminController{
		lifecycleLogic: lifecycleLogic,
		marketLogic:    marketLogic,
		catalogLogic:   catalogLogic,
		dashboardLogic: dashboardLogic,
	}
}

// resolve runs one lifecycle decision and renders the outcome.
func (c *AdminController) resolve(ctx *gin.Context, kind logic.RequestKind, decision logic.Decision) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}
	if err := c.lifecycleLogic.Resolve(ctx.Request.Context(), middleware.UserID(ctx), kind, id, decision); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": string(kind) + " " + string(decision)})
}

// ApproveDeposit handles POST /admin/deposits/:id/approve
func (c *AdminController) ApproveDeposit(ctx *gin.Context) {
	c.resolve(ctx, logic.KindDeposit, logic.DecisionApproved)
}

// RejectDeposit handles POST /admin/deposits/:id/reject
func (c *AdminController) RejectDeposit(ctx *gin.Context) {
	c.resolve(ctx, logic.KindDeposit, logic.DecisionRejected)
}

// ApproveWithdrawal handles POST /admin/withdrawals/:id/approve
func (c *AdminController) ApproveWithdrawal(ctx *gin.Context) {
	c.resolve(ctx, logic.KindWithdrawal, logic.DecisionApproved)
}

// RejectWithdrawal handles POST /admin/withdrawals/:id/reject
func (c *AdminController) RejectWithdrawal(ctx *gin.Context) {
	c.resolve(ctx, logic.KindWithdrawal, logic.DecisionRejected)
}

// ApproveExchange handles POST /admin/exchanges/:id/approve
func (c *AdminController) ApproveExchange(ctx *gin.Context) {
	c.resolve(ctx, logic.KindExchange, logic.DecisionApproved)
}

// RejectExchange handles POST /admin/exchanges/:id/reject
func (c *AdminController) RejectExchange(ctx *gin.Context) {
	c.resolve(ctx, logic.KindExchange, logic.DecisionRejected)
}

// ApproveTaskSubmission handles POST /admin/task-submissions/:id/approve
func (c *AdminController) ApproveTaskSubmission(ctx *gin.Context) {
	c.resolve(ctx, logic.KindTaskSubmission, logic.DecisionApproved)
}

// RejectTaskSubmission handles POST /admin/task-submissions/:id/reject
func (c *AdminController) RejectTaskSubmission(ctx *gin.Context) {
	c.resolve(ctx, logic.KindTaskSubmission, logic.DecisionRejected)
}

// ApprovePlanPurchase handles POST /admin/plan-purchases/:id/approve
func (c *AdminController) ApprovePlanPurchase(ctx *gin.Context) {
	c.resolve(ctx, logic.KindPlanPurchase, logic.DecisionApproved)
}

// RejectPlanPurchase handles POST /admin/plan-purchases/:id/reject
func (c *AdminController) RejectPlanPurchase(ctx *gin.Context) {
	c.resolve(ctx, logic.KindPlanPurchase, logic.DecisionRejected)
}

// ApproveListing handles POST /admin/listings/:id/approve
func (c *AdminController) ApproveListing(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}
	if err := c.marketLogic.ApproveListing(ctx.Request.Context(), middleware.UserID(ctx), id); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "listing opened"})
}

// RejectListing handles POST /admin/listings/:id/reject
func (c *AdminController) RejectListing(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}
	if err := c.marketLogic.RejectListing(ctx.Request.Context(), middleware.UserID(ctx), id); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "listing rejected"})
}

// ApproveBuyRequest handles POST /admin/buy-requests/:id/approve
func (c *AdminController) ApproveBuyRequest(ctx *gin.Context) {
	c.settle(ctx, logic.DecisionApproved, "buy request approved")
}

// RejectBuyRequest handles POST /admin/buy-requests/:id/reject
func (c *AdminController) RejectBuyRequest(ctx *gin.Context) {
	c.settle(ctx, logic.DecisionRejected, "buy request rejected")
}

func (c *AdminController) settle(ctx *gin.Context, decision logic.Decision, message string) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}
	if err := c.marketLogic.SettleBuyRequest(ctx.Request.Context(), middleware.UserID(ctx), id, decision); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": message})
}

// Dashboard handles GET /admin/dashboard
func (c *AdminController) Dashboard(ctx *gin.Context) {
	counts, err := c.dashboardLogic.GetPendingCounts()
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, counts)
}

// PendingDeposits handles GET /admin/deposits
func (c *AdminController) PendingDeposits(ctx *gin.Context) {
	list, err := c.lifecycleLogic.PendingDeposits()
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, list)
}

// PendingWithdrawals handles GET /admin/withdrawals
func (c *AdminController) PendingWithdrawals(ctx *gin.Context) {
	list, err := c.lifecycleLogic.PendingWithdrawals()
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, list)
}

// PendingExchanges handles GET /admin/exchanges
func (c *AdminController) PendingExchanges(ctx *gin.Context) {
	list, err := c.lifecycleLogic.PendingExchanges()
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, list)
}

// PendingListings handles GET /admin/listings
func (c *AdminController) PendingListings(ctx *gin.Context) {
	list, err := c.marketLogic.PendingListings()
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, list)
}

// PendingBuyRequests handles GET /admin/buy-requests
func (c *AdminController) PendingBuyRequests(ctx *gin.Context) {
	list, err := c.marketLogic.PendingBuyRequests()
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, list)
}

// PendingTaskSubmissions handles GET /admin/task-submissions
func (c *AdminController) PendingTaskSubmissions(ctx *gin.Context) {
	list, err := c.lifecycleLogic.PendingTaskSubmissions()
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, list)
}

// PendingPlanPurchases handles GET /admin/plan-purchases
func (c *AdminController) PendingPlanPurchases(ctx *gin.Context) {
	list, err := c.lifecycleLogic.PendingPlanPurchases()
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, list)
}

// CreateTask handles POST /admin/tasks
func (c *AdminController) CreateTask(ctx *gin.Context) {
	type Request struct {
		Title  string  `json:"title" binding:"required"`
		Reward float64 `json:"reward" binding:"required,gt=0"`
		Link   string  `json:"link"`
	}
	var req Request
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, err := c.catalogLogic.CreateTask(ctx.Request.Context(), middleware.UserID(ctx), req.Title, req.Reward, req.Link)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, task)
}

// UpdateTask handles PATCH /admin/tasks/:id
func (c *AdminController) UpdateTask(ctx *gin.Context) {
	type Request struct {
		Title    *string  `json:"title"`
		Reward   *float64 `json:"reward"`
		Link     *string  `json:"link"`
		IsActive *bool    `json:"is_active"`
	}
	id, ok := pathID(ctx)
	if !ok {
		return
	}
	var req Request
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	fields := map[string]interface{}{}
	if req.Title != nil {
		fields["title"] = *req.Title
	}
	if req.Reward != nil {
		fields["reward"] = *req.Reward
	}
	if req.Link != nil {
		fields["link"] = *req.Link
	}
	if req.IsActive != nil {
		fields["is_active"] = *req.IsActive
	}
	if len(fields) == 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "no fields to update"})
		return
	}

	if err := c.catalogLogic.UpdateTask(ctx.Request.Context(), middleware.UserID(ctx), id, fields); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "task updated", "id": id})
}
