package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"payday.backend/internal/domain/entities"
	"payday.backend/internal/infrastructure/models"
)

// ScheduleRepositoryImpl implements ScheduleRepository
type ScheduleRepositoryImpl struct {
	db *gorm.DB
}

func NewScheduleRepository(db *gorm.DB) *ScheduleRepositoryImpl {
	return &ScheduleRepositoryImpl{db: db}
}

func (r *ScheduleRepositoryImpl) Create(ctx context.Context, s *entities.ScheduledPayment) error {
	m := toModel(s)
	m.CreatedAt = time.Now()
	m.UpdatedAt = m.CreatedAt
	if err := GetDB(ctx, r.db).WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	s.CreatedAt = m.CreatedAt
	s.UpdatedAt = m.UpdatedAt
	return nil
}

func (r *ScheduleRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*entities.ScheduledPayment, error) {
	var m models.ScheduledPayment
	if err := GetDB(ctx, r.db).WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, err
	}
	return toEntity(&m), nil
}

func (r *ScheduleRepositoryImpl) Update(ctx context.Context, s *entities.ScheduledPayment) error {
	m := toModel(s)
	m.UpdatedAt = time.Now()
	// Save with a full model so cleared nullable fields are written as NULL
	err := GetDB(ctx, r.db).WithContext(ctx).Model(&models.ScheduledPayment{}).
		Where("id = ?", s.ID).
		Select("*").Omit("id", "created_at").
		Updates(m).Error
	if err != nil {
		return err
	}
	s.UpdatedAt = m.UpdatedAt
	return nil
}

func (r *ScheduleRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.ScheduledPayment{}).Error
}

func (r *ScheduleRepositoryImpl) ListByOwner(ctx context.Context, owner string) ([]*entities.ScheduledPayment, error) {
	var ms []models.ScheduledPayment
	if err := GetDB(ctx, r.db).WithContext(ctx).
		Where("owner_address = ?", owner).
		Order("scheduled_date ASC, created_at ASC").
		Find(&ms).Error; err != nil {
		return nil, err
	}

	var schedules []*entities.ScheduledPayment
	for _, m := range ms {
		model := m
		schedules = append(schedules, toEntity(&model))
	}
	return schedules, nil
}

func (r *ScheduleRepositoryImpl) ListOwnersWithActive(ctx context.Context) ([]string, error) {
	var owners []string
	err := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.ScheduledPayment{}).
		Where("status = ?", entities.ScheduleStatusActive).
		Distinct().
		Pluck("owner_address", &owners).Error
	if err != nil {
		return nil, err
	}
	return owners, nil
}

func toModel(s *entities.ScheduledPayment) *models.ScheduledPayment {
	var recurrence *string
	if s.Recurrence != "" {
		v := string(s.Recurrence)
		recurrence = &v
	}
	return &models.ScheduledPayment{
		ID:               s.ID,
		OwnerAddress:     s.OwnerAddress,
		EmployeeID:       s.EmployeeID,
		RecipientName:    s.RecipientName,
		RecipientAddress: s.RecipientAddress,
		Amount:           s.Amount,
		Token:            s.Token,
		ScheduleType:     string(s.ScheduleType),
		ScheduledDate:    s.ScheduledDate,
		Recurrence:       recurrence,
		NextPaymentDate:  s.NextPaymentDate.Ptr(),
		EndDate:          s.EndDate.Ptr(),
		Status:           string(s.Status),
		LastProcessed:    s.LastProcessed.Ptr(),
		ProcessedCount:   s.ProcessedCount,
		CreatedAt:        s.CreatedAt,
		UpdatedAt:        s.UpdatedAt,
	}
}

func toEntity(m *models.ScheduledPayment) *entities.ScheduledPayment {
	var recurrence entities.Recurrence
	if m.Recurrence != nil {
		recurrence = entities.Recurrence(*m.Recurrence)
	}
	return &entities.ScheduledPayment{
		ID:               m.ID,
		OwnerAddress:     m.OwnerAddress,
		EmployeeID:       m.EmployeeID,
		RecipientName:    m.RecipientName,
		RecipientAddress: m.RecipientAddress,
		Amount:           m.Amount,
		Token:            m.Token,
		ScheduleType:     entities.ScheduleType(m.ScheduleType),
		ScheduledDate:    m.ScheduledDate,
		Recurrence:       recurrence,
		NextPaymentDate:  null.TimeFromPtr(m.NextPaymentDate),
		EndDate:          null.TimeFromPtr(m.EndDate),
		Status:           entities.ScheduleStatus(m.Status),
		LastProcessed:    null.TimeFromPtr(m.LastProcessed),
		ProcessedCount:   m.ProcessedCount,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}
