package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// ScheduleType represents how often a scheduled payment fires
type ScheduleType string

const (
	ScheduleTypeOneTime   ScheduleType = "one-time"
	ScheduleTypeRecurring ScheduleType = "recurring"
)

// Recurrence represents the cadence of a recurring schedule
type Recurrence string

const (
	RecurrenceDaily    Recurrence = "daily"
	RecurrenceWeekly   Recurrence = "weekly"
	RecurrenceBiWeekly Recurrence = "bi-weekly"
	RecurrenceMonthly  Recurrence = "monthly"
)

// IsValid reports whether the recurrence is one of the supported cadences
func (r Recurrence) IsValid() bool {
	switch r {
	case RecurrenceDaily, RecurrenceWeekly, RecurrenceBiWeekly, RecurrenceMonthly:
		return true
	}
	return false
}

// ScheduleStatus represents the lifecycle status of a schedule
type ScheduleStatus string

const (
	ScheduleStatusActive    ScheduleStatus = "active"
	ScheduleStatusPaused    ScheduleStatus = "paused"
	ScheduleStatusCompleted ScheduleStatus = "completed"
	ScheduleStatusCancelled ScheduleStatus = "cancelled"
)

// IsTerminal reports whether no further transitions are allowed
func (s ScheduleStatus) IsTerminal() bool {
	return s == ScheduleStatusCompleted || s == ScheduleStatusCancelled
}

// ScheduledPayment is one instruction to pay a fixed amount to a recipient,
// once or on a recurring cadence. Recipient fields are snapshotted at
// creation, not a live join against the employee record.
type ScheduledPayment struct {
	ID               uuid.UUID      `json:"id"`
	OwnerAddress     string         `json:"ownerAddress"`
	EmployeeID       *uuid.UUID     `json:"employeeId,omitempty"`
	RecipientName    string         `json:"recipientName"`
	RecipientAddress string         `json:"recipientAddress"`
	Amount           string         `json:"amount"`
	Token            string         `json:"token"`
	ScheduleType     ScheduleType   `json:"scheduleType"`
	ScheduledDate    time.Time      `json:"scheduledDate"`
	Recurrence       Recurrence     `json:"recurrence,omitempty"`
	NextPaymentDate  null.Time      `json:"nextPaymentDate,omitempty"`
	EndDate          null.Time      `json:"endDate,omitempty"`
	Status           ScheduleStatus `json:"status"`
	LastProcessed    null.Time      `json:"lastProcessed,omitempty"`
	ProcessedCount   int            `json:"processedCount"`
	CreatedAt        time.Time      `json:"createdAt"`
	UpdatedAt        time.Time      `json:"updatedAt"`
}

// ReferenceDate returns the instant the detector evaluates against:
// next_payment_date for recurring schedules, scheduled_date otherwise.
func (s *ScheduledPayment) ReferenceDate() time.Time {
	if s.ScheduleType == ScheduleTypeRecurring && s.NextPaymentDate.Valid {
		return s.NextPaymentDate.Time
	}
	return s.ScheduledDate
}

// CreateScheduleInput represents input for creating a schedule
type CreateScheduleInput struct {
	EmployeeID       *uuid.UUID `json:"employeeId,omitempty"`
	RecipientName    string     `json:"recipientName"`
	RecipientAddress string     `json:"recipientAddress"`
	Amount           string     `json:"amount"`
	Token            string     `json:"token"`
	ScheduleType     string     `json:"scheduleType"`
	ScheduledDate    time.Time  `json:"scheduledDate"`
	Recurrence       string     `json:"recurrence,omitempty"`
	EndDate          *time.Time `json:"endDate,omitempty"`
}

// UpdateScheduleInput represents a partial update; nil fields are untouched
type UpdateScheduleInput struct {
	RecipientName    *string    `json:"recipientName,omitempty"`
	RecipientAddress *string    `json:"recipientAddress,omitempty"`
	Amount           *string    `json:"amount,omitempty"`
	Token            *string    `json:"token,omitempty"`
	ScheduledDate    *time.Time `json:"scheduledDate,omitempty"`
	NextPaymentDate  *time.Time `json:"nextPaymentDate,omitempty"`
	EndDate          *time.Time `json:"endDate,omitempty"`
	Status           *string    `json:"status,omitempty"`
}

// ProcessResult aggregates per-item outcomes of one processing run
type ProcessResult struct {
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`
}

// SpendingLimit is a per-owner ceiling for unattended auto-processing.
// It is decremented by the total of each auto-processed batch and never
// auto-replenished.
type SpendingLimit struct {
	OwnerAddress string    `json:"ownerAddress"`
	Amount       string    `json:"amount"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
