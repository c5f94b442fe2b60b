package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// PayoutStatus represents the outcome of one payout attempt
type PayoutStatus string

const (
	PayoutStatusSucceeded PayoutStatus = "succeeded"
	PayoutStatusFailed    PayoutStatus = "failed"
)

// PayoutLog records one execution attempt of a schedule, successful or not.
// It backs the dashboard's payout history screen.
type PayoutLog struct {
	ID               uuid.UUID    `json:"id"`
	ScheduleID       uuid.UUID    `json:"scheduleId"`
	OwnerAddress     string       `json:"ownerAddress"`
	RecipientAddress string       `json:"recipientAddress"`
	Amount           string       `json:"amount"`
	Token            string       `json:"token"`
	Status           PayoutStatus `json:"status"`
	TxHash           null.String  `json:"txHash,omitempty"`
	ErrorMessage     null.String  `json:"errorMessage,omitempty"`
	CreatedAt        time.Time    `json:"createdAt"`
}
