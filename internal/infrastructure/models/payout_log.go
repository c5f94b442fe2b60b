package models

import (
	"time"

	"github.com/google/uuid"
)

type PayoutLog struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	ScheduleID       uuid.UUID `gorm:"type:uuid;not null;index"`
	OwnerAddress     string    `gorm:"type:varchar(255);not null;index"`
	RecipientAddress string    `gorm:"type:varchar(255);not null"`
	Amount           string    `gorm:"type:decimal(36,18);not null"`
	Token            string    `gorm:"type:varchar(50);not null"`
	Status           string    `gorm:"type:varchar(20);not null"`
	TxHash           *string   `gorm:"type:varchar(255)"`
	ErrorMessage     *string   `gorm:"type:text"`
	CreatedAt        time.Time
}

func (PayoutLog) TableName() string {
	return "payout_logs"
}
