package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"payday.backend/internal/domain/entities"
	domainerrors "payday.backend/internal/domain/errors"
	"payday.backend/internal/interfaces/http/middleware"
	"payday.backend/internal/interfaces/http/response"
)

type SpendingLimitService interface {
	Get(ctx context.Context, owner string) (*entities.SpendingLimit, error)
	Set(ctx context.Context, owner string, amount string) (*entities.SpendingLimit, error)
}

// SpendingLimitHandler handles the auto-approval spending limit endpoints
type SpendingLimitHandler struct {
	limitUsecase SpendingLimitService
}

// NewSpendingLimitHandler creates a new spending limit handler
func NewSpendingLimitHandler(limitUsecase SpendingLimitService) *SpendingLimitHandler {
	return &SpendingLimitHandler{limitUsecase: limitUsecase}
}

type setLimitRequest struct {
	Amount string `json:"amount" binding:"required"`
}

// Get returns the wallet's spending limit, null when none is set
// GET /api/v1/spending-limit
func (h *SpendingLimitHandler) Get(c *gin.Context) {
	owner, ok := middleware.GetWalletAddress(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Wallet not authenticated"))
		return
	}

	limit, err := h.limitUsecase.Get(c.Request.Context(), owner)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"limit": limit})
}

// Set replaces the wallet's spending limit
// PUT /api/v1/spending-limit
func (h *SpendingLimitHandler) Set(c *gin.Context) {
	var req setLimitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	owner, ok := middleware.GetWalletAddress(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Wallet not authenticated"))
		return
	}

	limit, err := h.limitUsecase.Set(c.Request.Context(), owner, req.Amount)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, limit)
}
