package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"payday.backend/internal/domain/entities"
	domainerrors "payday.backend/internal/domain/errors"
	"payday.backend/internal/interfaces/http/middleware"
	"payday.backend/internal/interfaces/http/response"
)

type PayoutLogService interface {
	ListByOwner(ctx context.Context, owner string, limit, offset int) ([]*entities.PayoutLog, int, error)
}

// PayoutHandler serves the payout history
type PayoutHandler struct {
	payoutRepo PayoutLogService
}

// NewPayoutHandler creates a new payout handler
func NewPayoutHandler(payoutRepo PayoutLogService) *PayoutHandler {
	return &PayoutHandler{payoutRepo: payoutRepo}
}

// List lists the wallet's payout history, newest first
// GET /api/v1/payouts?page=1&limit=20
func (h *PayoutHandler) List(c *gin.Context) {
	owner, ok := middleware.GetWalletAddress(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Wallet not authenticated"))
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	logs, total, err := h.payoutRepo.ListByOwner(c.Request.Context(), owner, limit, (page-1)*limit)
	if err != nil {
		response.Error(c, domainerrors.StorageFailure(err))
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"payouts": logs,
		"total":   total,
		"page":    page,
		"limit":   limit,
	})
}
