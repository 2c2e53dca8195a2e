package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mdarif551578/hasmi-coin-mining-sub000/logic"
	"github.com/mdarif551578/hasmi-coin-mining-sub000/middleware"
)

// MarketController handles the peer-to-peer marketplace endpoints
type MarketController struct {
	marketLogic *logic.MarketLogic
}

func NewMarketController(marketLogic *logic.MarketLogic) *MarketController {
	return &MarketController{marketLogic: marketLogic}
}

// OpenListings handles GET /market/listings
func (c *MarketController) OpenListings(ctx *gin.Context) {
	list, err := c.marketLogic.OpenListings()
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, list)
}

// CreateListing handles POST /market/listings
func (c *MarketController) CreateListing(ctx *gin.Context) {
	type Request struct {
		Amount float64 `json:"amount" binding:"required,gt=0"`
		Rate   float64 `json:"rate" binding:"required,gt=0"`
	}
	var req Request
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	listing, err := c.marketLogic.CreateListing(ctx.Request.Context(), middleware.UserID(ctx), req.Amount, req.Rate)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, listing)
}

// MyListings handles GET /market/listings/mine
func (c *MarketController) MyListings(ctx *gin.Context) {
	list, err := c.marketLogic.ListingsBySeller(middleware.UserID(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, list)
}

// CancelListing handles DELETE /market/listings/:id
func (c *MarketController) CancelListing(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}
	if err := c.marketLogic.CancelListing(ctx.Request.Context(), middleware.UserID(ctx), id); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "listing cancelled"})
}

// CreateBuyRequest handles POST /market/listings/:id/buy
func (c *MarketController) CreateBuyRequest(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}
	br, err := c.marketLogic.CreateBuyRequest(ctx.Request.Context(), middleware.UserID(ctx), id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, br)
}

// MyBuyRequests handles GET /market/buy-requests
func (c *MarketController) MyBuyRequests(ctx *gin.Context) {
	list, err := c.marketLogic.BuyRequestsByBuyer(middleware.UserID(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, list)
}

// CancelBuyRequest handles DELETE /market/buy-requests/:id
func (c *MarketController) CancelBuyRequest(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}
	if err := c.marketLogic.CancelBuyRequest(ctx.Request.Context(), middleware.UserID(ctx), id); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "buy request cancelled"})
}
