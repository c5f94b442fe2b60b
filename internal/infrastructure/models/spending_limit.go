package models

import "time"

type SpendingLimit struct {
	OwnerAddress string `gorm:"type:varchar(255);primaryKey"`
	Amount       string `gorm:"type:decimal(36,18);not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (SpendingLimit) TableName() string {
	return "spending_limits"
}
