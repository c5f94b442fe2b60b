package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// Employee represents a payroll recipient owned by a wallet
type Employee struct {
	ID            uuid.UUID   `json:"id"`
	OwnerAddress  string      `json:"ownerAddress"`
	Name          string      `json:"name"`
	WalletAddress string      `json:"walletAddress"`
	Position      null.String `json:"position,omitempty"`
	SalaryAmount  null.String `json:"salaryAmount,omitempty"`
	SalaryToken   null.String `json:"salaryToken,omitempty"`
	IsActive      bool        `json:"isActive"`
	CreatedAt     time.Time   `json:"createdAt"`
	UpdatedAt     time.Time   `json:"updatedAt"`
}

// CreateEmployeeInput represents input for creating an employee
type CreateEmployeeInput struct {
	Name          string  `json:"name" binding:"required"`
	WalletAddress string  `json:"walletAddress" binding:"required"`
	Position      *string `json:"position,omitempty"`
	SalaryAmount  *string `json:"salaryAmount,omitempty"`
	SalaryToken   *string `json:"salaryToken,omitempty"`
}

// UpdateEmployeeInput represents a partial employee update
type UpdateEmployeeInput struct {
	Name          *string `json:"name,omitempty"`
	WalletAddress *string `json:"walletAddress,omitempty"`
	Position      *string `json:"position,omitempty"`
	SalaryAmount  *string `json:"salaryAmount,omitempty"`
	SalaryToken   *string `json:"salaryToken,omitempty"`
	IsActive      *bool   `json:"isActive,omitempty"`
}
