package repositories

import (
	"context"
	"time"

	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"payday.backend/internal/domain/entities"
	"payday.backend/internal/infrastructure/models"
)

// PayoutLogRepositoryImpl implements PayoutLogRepository
type PayoutLogRepositoryImpl struct {
	db *gorm.DB
}

func NewPayoutLogRepository(db *gorm.DB) *PayoutLogRepositoryImpl {
	return &PayoutLogRepositoryImpl{db: db}
}

func (r *PayoutLogRepositoryImpl) Create(ctx context.Context, log *entities.PayoutLog) error {
	m := &models.PayoutLog{
		ID:               log.ID,
		ScheduleID:       log.ScheduleID,
		OwnerAddress:     log.OwnerAddress,
		RecipientAddress: log.RecipientAddress,
		Amount:           log.Amount,
		Token:            log.Token,
		Status:           string(log.Status),
		TxHash:           log.TxHash.Ptr(),
		ErrorMessage:     log.ErrorMessage.Ptr(),
		CreatedAt:        time.Now(),
	}
	if err := GetDB(ctx, r.db).WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	log.CreatedAt = m.CreatedAt
	return nil
}

func (r *PayoutLogRepositoryImpl) ListByOwner(ctx context.Context, owner string, limit, offset int) ([]*entities.PayoutLog, int, error) {
	db := GetDB(ctx, r.db).WithContext(ctx)

	var total int64
	if err := db.Model(&models.PayoutLog{}).
		Where("owner_address = ?", owner).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var ms []models.PayoutLog
	if err := db.
		Where("owner_address = ?", owner).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&ms).Error; err != nil {
		return nil, 0, err
	}

	var logs []*entities.PayoutLog
	for _, m := range ms {
		logs = append(logs, &entities.PayoutLog{
			ID:               m.ID,
			ScheduleID:       m.ScheduleID,
			OwnerAddress:     m.OwnerAddress,
			RecipientAddress: m.RecipientAddress,
			Amount:           m.Amount,
			Token:            m.Token,
			Status:           entities.PayoutStatus(m.Status),
			TxHash:           null.StringFromPtr(m.TxHash),
			ErrorMessage:     null.StringFromPtr(m.ErrorMessage),
			CreatedAt:        m.CreatedAt,
		})
	}
	return logs, int(total), nil
}
