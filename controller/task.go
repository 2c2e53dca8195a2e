package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mdarif551578/hasmi-coin-mining-sub000/logic"
	"github.com/mdarif551578/hasmi-coin-mining-sub000/middleware"
)

// TaskController handles the task catalog and plan purchase endpoints
type TaskController struct {
	catalogLogic *logic.CatalogLogic
}

func NewTaskController(catalogLogic *logic.CatalogLogic) *TaskController {
	return &TaskController{catalogLogic: catalogLogic}
}

// ListTasks handles GET /tasks
func (c *TaskController) ListTasks(ctx *gin.Context) {
	list, err := c.catalogLogic.ActiveTasks()
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, list)
}

// SubmitTask handles POST /tasks/:id/submissions
func (c *TaskController) SubmitTask(ctx *gin.Context) {
	type Request struct {
		SubmissionText string `json:"submission_text" binding:"required"`
		ScreenshotURL  string `json:"screenshot_url"`
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

	sub, err := c.catalogLogic.SubmitTask(ctx.Request.Context(), middleware.UserID(ctx), id, req.SubmissionText, req.ScreenshotURL)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, sub)
}

// MySubmissions handles GET /tasks/submissions
func (c *TaskController) MySubmissions(ctx *gin.Context) {
	list, err := c.catalogLogic.MySubmissions(middleware.UserID(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, list)
}

// CancelSubmission handles DELETE /tasks/submissions/:id
func (c *TaskController) CancelSubmission(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}
	if err := c.catalogLogic.CancelSubmission(ctx.Request.Context(), middleware.UserID(ctx), id); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "submission cancelled"})
}

// ListPlans handles GET /plans
func (c *TaskController) ListPlans(ctx *gin.Context) {
	plans, err := c.catalogLogic.Plans()
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, plans)
}

// PurchasePlan handles POST /plans/purchase
func (c *TaskController) PurchasePlan(ctx *gin.Context) {
	type Request struct {
		PlanName string `json:"plan_name" binding:"required"`
	}
	var req Request
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	p, err := c.catalogLogic.PurchasePlan(ctx.Request.Context(), middleware.UserID(ctx), req.PlanName)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, p)
}

// CancelPurchase handles DELETE /plans/purchases/:id
func (c *TaskController) CancelPurchase(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}
	if err := c.catalogLogic.CancelPurchase(ctx.Request.Context(), middleware.UserID(ctx), id); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "purchase cancelled"})
}

// MyPurchases handles GET /plans/purchases
func (c *TaskController) MyPurchases(ctx *gin.Context) {
	list, err := c.catalogLogic.MyPurchases(middleware.UserID(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, list)
}
