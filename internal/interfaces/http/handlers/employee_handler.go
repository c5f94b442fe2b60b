package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"payday.backend/internal/domain/entities"
	domainerrors "payday.backend/internal/domain/errors"
	"payday.backend/internal/interfaces/http/middleware"
	"payday.backend/internal/interfaces/http/response"
)

type EmployeeService interface {
	Create(ctx context.Context, owner string, input *entities.CreateEmployeeInput) (*entities.Employee, error)
	Update(ctx context.Context, owner string, id uuid.UUID, input *entities.UpdateEmployeeInput) (*entities.Employee, error)
	Delete(ctx context.Context, owner string, id uuid.UUID) error
	List(ctx context.Context, owner string) ([]*entities.Employee, error)
	Get(ctx context.Context, owner string, id uuid.UUID) (*entities.Employee, error)
}

// EmployeeHandler handles employee roster endpoints
type EmployeeHandler struct {
	employeeUsecase EmployeeService
}

// NewEmployeeHandler creates a new employee handler
func NewEmployeeHandler(employeeUsecase EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{employeeUsecase: employeeUsecase}
}

// Create adds an employee
// POST /api/v1/employees
func (h *EmployeeHandler) Create(c *gin.Context) {
	var input entities.CreateEmployeeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	owner, ok := middleware.GetWalletAddress(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Wallet not authenticated"))
		return
	}

	employee, err := h.employeeUsecase.Create(c.Request.Context(), owner, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, employee)
}

// List lists the wallet's employees
// GET /api/v1/employees
func (h *EmployeeHandler) List(c *gin.Context) {
	owner, ok := middleware.GetWalletAddress(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Wallet not authenticated"))
		return
	}

	employees, err := h.employeeUsecase.List(c.Request.Context(), owner)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"employees": employees,
		"total":     len(employees),
	})
}

// Get gets an employee by ID
// GET /api/v1/employees/:id
func (h *EmployeeHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid employee ID"))
		return
	}

	owner, ok := middleware.GetWalletAddress(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Wallet not authenticated"))
		return
	}

	employee, err := h.employeeUsecase.Get(c.Request.Context(), owner, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, employee)
}

// Update partially updates an employee
// PATCH /api/v1/employees/:id
func (h *EmployeeHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid employee ID"))
		return
	}

	var input entities.UpdateEmployeeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	owner, ok := middleware.GetWalletAddress(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Wallet not authenticated"))
		return
	}

	employee, err := h.employeeUsecase.Update(c.Request.Context(), owner, id, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, employee)
}

// Delete removes an employee
// DELETE /api/v1/employees/:id
func (h *EmployeeHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid employee ID"))
		return
	}

	owner, ok := middleware.GetWalletAddress(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Wallet not authenticated"))
		return
	}

	if err := h.employeeUsecase.Delete(c.Request.Context(), owner, id); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}
