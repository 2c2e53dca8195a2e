package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mdarif551578/hasmi-coin-mining-sub000/logic"
)

// respondError maps ledger errors onto HTTP statuses. Anything outside
// the taxonomy is a 500 with the message left for the logs; the admin
// panel stays interactive either way.
func respondError(ctx *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, logic.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, logic.ErrAlreadyResolved):
		status = http.StatusConflict
	case errors.Is(err, logic.ErrListingClaimed), errors.Is(err, logic.ErrListingUnavailable):
		status = http.StatusConflict
	case errors.Is(err, logic.ErrInsufficientFunds):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, logic.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, logic.ErrInvalidCredentials):
		status = http.StatusUnauthorized
	case errors.Is(err, logic.ErrOwnListing),
		errors.Is(err, logic.ErrTaskInactive),
		errors.Is(err, logic.ErrNoMiningPlan),
		errors.Is(err, logic.ErrClaimTooSoon):
		status = http.StatusBadRequest
	}
	ctx.JSON(status, gin.H{"error": err.Error()})
}

// pathID parses the :id route parameter as a UUID, answering 400 on
// garbage. The bool reports whether the handler should continue.
func pathID(ctx *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return uuid.Nil, false
	}
	return id, true
}
