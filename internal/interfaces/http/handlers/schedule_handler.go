package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"payday.backend/internal/domain/entities"
	domainerrors "payday.backend/internal/domain/errors"
	"payday.backend/internal/interfaces/http/middleware"
	"payday.backend/internal/interfaces/http/response"
	"payday.backend/internal/usecases"
)

type ScheduleService interface {
	Create(ctx context.Context, owner string, input *entities.CreateScheduleInput) (*entities.ScheduledPayment, error)
	Update(ctx context.Context, owner string, id uuid.UUID, input *entities.UpdateScheduleInput) (*entities.ScheduledPayment, error)
	Toggle(ctx context.Context, owner string, id uuid.UUID) (*entities.ScheduledPayment, error)
	Delete(ctx context.Context, owner string, id uuid.UUID) error
	List(ctx context.Context, owner string) ([]*entities.ScheduledPayment, error)
	Get(ctx context.Context, owner string, id uuid.UUID) (*entities.ScheduledPayment, error)
}

type ProcessorService interface {
	ProcessDue(ctx context.Context, owner string) (*entities.ProcessResult, error)
}

// ScheduleHandler handles scheduled payment endpoints
type ScheduleHandler struct {
	scheduleUsecase  ScheduleService
	processorUsecase ProcessorService
}

// NewScheduleHandler creates a new schedule handler
func NewScheduleHandler(scheduleUsecase ScheduleService, processorUsecase ProcessorService) *ScheduleHandler {
	return &ScheduleHandler{
		scheduleUsecase:  scheduleUsecase,
		processorUsecase: processorUsecase,
	}
}

// Create creates a new scheduled payment
// POST /api/v1/schedules
func (h *ScheduleHandler) Create(c *gin.Context) {
	var input entities.CreateScheduleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	owner, ok := middleware.GetWalletAddress(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Wallet not authenticated"))
		return
	}

	schedule, err := h.scheduleUsecase.Create(c.Request.Context(), owner, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, schedule)
}

// List lists the wallet's schedules
// GET /api/v1/schedules
func (h *ScheduleHandler) List(c *gin.Context) {
	owner, ok := middleware.GetWalletAddress(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Wallet not authenticated"))
		return
	}

	schedules, err := h.scheduleUsecase.List(c.Request.Context(), owner)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"schedules": schedules,
		"total":     len(schedules),
	})
}

// Get gets a schedule by ID
// GET /api/v1/schedules/:id
func (h *ScheduleHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid schedule ID"))
		return
	}

	owner, ok := middleware.GetWalletAddress(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Wallet not authenticated"))
		return
	}

	schedule, err := h.scheduleUsecase.Get(c.Request.Context(), owner, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, schedule)
}

// Update partially updates a schedule
// PATCH /api/v1/schedules/:id
func (h *ScheduleHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid schedule ID"))
		return
	}

	var input entities.UpdateScheduleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	owner, ok := middleware.GetWalletAddress(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Wallet not authenticated"))
		return
	}

	schedule, err := h.scheduleUsecase.Update(c.Request.Context(), owner, id, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, schedule)
}

// Toggle flips a schedule between active and paused
// POST /api/v1/schedules/:id/toggle
func (h *ScheduleHandler) Toggle(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid schedule ID"))
		return
	}

	owner, ok := middleware.GetWalletAddress(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Wallet not authenticated"))
		return
	}

	schedule, err := h.scheduleUsecase.Toggle(c.Request.Context(), owner, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, schedule)
}

// Delete removes a schedule
// DELETE /api/v1/schedules/:id
func (h *ScheduleHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid schedule ID"))
		return
	}

	owner, ok := middleware.GetWalletAddress(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Wallet not authenticated"))
		return
	}

	if err := h.scheduleUsecase.Delete(c.Request.Context(), owner, id); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

// Due previews the wallet's currently due schedules without processing them
// GET /api/v1/schedules/due
func (h *ScheduleHandler) Due(c *gin.Context) {
	owner, ok := middleware.GetWalletAddress(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Wallet not authenticated"))
		return
	}

	schedules, err := h.scheduleUsecase.List(c.Request.Context(), owner)
	if err != nil {
		response.Error(c, err)
		return
	}

	due := usecases.DueNow(time.Now(), schedules)
	response.Success(c, http.StatusOK, gin.H{
		"schedules": due,
		"total":     len(due),
	})
}

// ProcessDue processes the wallet's due schedules sequentially
// POST /api/v1/schedules/process-due
func (h *ScheduleHandler) ProcessDue(c *gin.Context) {
	owner, ok := middleware.GetWalletAddress(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Wallet not authenticated"))
		return
	}

	result, err := h.processorUsecase.ProcessDue(c.Request.Context(), owner)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}
