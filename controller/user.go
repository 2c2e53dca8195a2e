package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mdarif551578/hasmi-coin-mining-sub000/logic"
	"github.com/mdarif551578/hasmi-coin-mining-sub000/middleware"
)

// UserController handles account and mining HTTP requests
type UserController struct {
	userLogic *logic.UserLogic
}

func NewUserController(userLogic *logic.UserLogic) *UserController {
	return &UserController{userLogic: userLogic}
}

// Register handles POST /user/register
func (c *UserController) Register(ctx *gin.Context) {
	type Request struct {
		Email        string `json:"email" binding:"required,email"`
		Password     string `json:"password" binding:"required,min=6"`
		DisplayName  string `json:"display_name" binding:"required"`
		ReferralCode string `json:"referral_code"`
	}
	var req Request
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := c.userLogic.Register(ctx.Request.Context(), req.Email, req.Password, req.DisplayName, req.ReferralCode)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, user)
}

// Login handles POST /user/login
func (c *UserController) Login(ctx *gin.Context) {
	type Request struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	var req Request
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, token, expireAt, err := c.userLogic.Login(req.Email, req.Password)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"user":      user,
		"token":     token,
		"expire_at": expireAt,
	})
}

// GetProfile handles GET /user
func (c *UserController) GetProfile(ctx *gin.Context) {
	user, err := c.userLogic.Profile(middleware.UserID(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, user)
}

// ClaimMining handles POST /mining/claim
func (c *UserController) ClaimMining(ctx *gin.Context) {
	reward, err := c.userLogic.ClaimMining(ctx.Request.Context(), middleware.UserID(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "reward claimed", "reward": reward})
}
