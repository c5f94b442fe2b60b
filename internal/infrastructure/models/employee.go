package models

import (
	"time"

	"github.com/google/uuid"
)

type Employee struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	OwnerAddress  string    `gorm:"type:varchar(255);not null;index"`
	Name          string    `gorm:"type:varchar(255);not null"`
	WalletAddress string    `gorm:"type:varchar(255);not null"`
	Position      *string   `gorm:"type:varchar(255)"`
	SalaryAmount  *string   `gorm:"type:decimal(36,18)"`
	SalaryToken   *string   `gorm:"type:varchar(50)"`
	IsActive      bool      `gorm:"not null;default:true"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (Employee) TableName() string {
	return "employees"
}
