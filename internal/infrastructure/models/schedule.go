package models

import (
	"time"

	"github.com/google/uuid"
)

type ScheduledPayment struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	OwnerAddress     string     `gorm:"type:varchar(255);not null;index"`
	EmployeeID       *uuid.UUID `gorm:"type:uuid;index"`
	RecipientName    string     `gorm:"type:varchar(255);not null"`
	RecipientAddress string     `gorm:"type:varchar(255);not null"`
	Amount           string     `gorm:"type:decimal(36,18);not null"`
	Token            string     `gorm:"type:varchar(50);not null"`
	ScheduleType     string     `gorm:"type:varchar(20);not null"`
	ScheduledDate    time.Time  `gorm:"not null;index"`
	Recurrence       *string    `gorm:"type:varchar(20)"`
	NextPaymentDate  *time.Time `gorm:"index"`
	EndDate          *time.Time
	Status           string `gorm:"type:varchar(20);not null;index"`
	LastProcessed    *time.Time
	ProcessedCount   int `gorm:"not null;default:0"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (ScheduledPayment) TableName() string {
	return "scheduled_payments"
}
