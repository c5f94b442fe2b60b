package usecases

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"payday.backend/internal/domain/entities"
	domainerrors "payday.backend/internal/domain/errors"
	"payday.backend/internal/domain/repositories"
	"payday.backend/pkg/logger"
)

// ScheduleUsecase is the store facade for scheduled payments. Every mutation
// writes the local gorm store synchronously (failures surface as storage
// errors) and then mirrors to the remote replica on a best-effort basis.
type ScheduleUsecase struct {
	repo   repositories.ScheduleRepository
	mirror repositories.RemoteMirror
}

func NewScheduleUsecase(repo repositories.ScheduleRepository, mirror repositories.RemoteMirror) *ScheduleUsecase {
	return &ScheduleUsecase{repo: repo, mirror: mirror}
}

// Create validates and persists a new schedule for the owner wallet
func (u *ScheduleUsecase) Create(ctx context.Context, owner string, input *entities.CreateScheduleInput) (*entities.ScheduledPayment, error) {
	if input.RecipientAddress == "" {
		return nil, domainerrors.BadRequest("recipient address is required")
	}
	amount, err := ParseAmount(input.Amount)
	if err != nil || amount <= 0 {
		return nil, domainerrors.BadRequest("amount must be a positive decimal")
	}

	scheduleType := entities.ScheduleType(input.ScheduleType)
	recurrence := entities.Recurrence(input.Recurrence)
	var nextPaymentDate null.Time

	switch scheduleType {
	case entities.ScheduleTypeOneTime:
		recurrence = ""
	case entities.ScheduleTypeRecurring:
		if !recurrence.IsValid() {
			return nil, domainerrors.BadRequest("recurring schedules require a valid recurrence")
		}
		nextPaymentDate = null.TimeFrom(input.ScheduledDate)
	default:
		return nil, domainerrors.BadRequest("invalid schedule type")
	}

	s := &entities.ScheduledPayment{
		ID:               uuid.New(),
		OwnerAddress:     owner,
		EmployeeID:       input.EmployeeID,
		RecipientName:    input.RecipientName,
		RecipientAddress: input.RecipientAddress,
		Amount:           input.Amount,
		Token:            input.Token,
		ScheduleType:     scheduleType,
		ScheduledDate:    input.ScheduledDate,
		Recurrence:       recurrence,
		NextPaymentDate:  nextPaymentDate,
		EndDate:          null.TimeFromPtr(input.EndDate),
		Status:           entities.ScheduleStatusActive,
		ProcessedCount:   0,
	}

	if err := u.repo.Create(ctx, s); err != nil {
		return nil, domainerrors.StorageFailure(err)
	}
	u.syncSchedule(ctx, s)
	return s, nil
}

// Update merges partial fields into the schedule. Transitions out of a
// terminal status are rejected.
func (u *ScheduleUsecase) Update(ctx context.Context, owner string, id uuid.UUID, input *entities.UpdateScheduleInput) (*entities.ScheduledPayment, error) {
	s, err := u.getOwned(ctx, owner, id)
	if err != nil {
		return nil, err
	}

	if input.Status != nil {
		newStatus := entities.ScheduleStatus(*input.Status)
		switch newStatus {
		case entities.ScheduleStatusActive, entities.ScheduleStatusPaused,
			entities.ScheduleStatusCompleted, entities.ScheduleStatusCancelled:
		default:
			return nil, domainerrors.BadRequest("invalid status")
		}
		if s.Status.IsTerminal() && newStatus != s.Status {
			return nil, domainerrors.Conflict("schedule is " + string(s.Status))
		}
		s.Status = newStatus
	}
	if input.Amount != nil {
		amount, err := ParseAmount(*input.Amount)
		if err != nil || amount <= 0 {
			return nil, domainerrors.BadRequest("amount must be a positive decimal")
		}
		s.Amount = *input.Amount
	}
	if input.RecipientName != nil {
		s.RecipientName = *input.RecipientName
	}
	if input.RecipientAddress != nil {
		if *input.RecipientAddress == "" {
			return nil, domainerrors.BadRequest("recipient address is required")
		}
		s.RecipientAddress = *input.RecipientAddress
	}
	if input.Token != nil {
		s.Token = *input.Token
	}
	if input.ScheduledDate != nil {
		s.ScheduledDate = *input.ScheduledDate
	}
	if input.NextPaymentDate != nil {
		s.NextPaymentDate = null.TimeFromPtr(input.NextPaymentDate)
	}
	if input.EndDate != nil {
		s.EndDate = null.TimeFromPtr(input.EndDate)
	}

	if err := u.repo.Update(ctx, s); err != nil {
		return nil, domainerrors.StorageFailure(err)
	}
	u.syncSchedule(ctx, s)
	return s, nil
}

// Toggle flips a schedule between active and paused
func (u *ScheduleUsecase) Toggle(ctx context.Context, owner string, id uuid.UUID) (*entities.ScheduledPayment, error) {
	s, err := u.getOwned(ctx, owner, id)
	if err != nil {
		return nil, err
	}

	switch s.Status {
	case entities.ScheduleStatusActive:
		s.Status = entities.ScheduleStatusPaused
	case entities.ScheduleStatusPaused:
		s.Status = entities.ScheduleStatusActive
	default:
		return nil, domainerrors.Conflict("schedule is " + string(s.Status))
	}

	if err := u.repo.Update(ctx, s); err != nil {
		return nil, domainerrors.StorageFailure(err)
	}
	u.syncSchedule(ctx, s)
	return s, nil
}

// Delete removes a schedule regardless of status
func (u *ScheduleUsecase) Delete(ctx context.Context, owner string, id uuid.UUID) error {
	s, err := u.getOwned(ctx, owner, id)
	if err != nil {
		return err
	}

	if err := u.repo.Delete(ctx, id); err != nil {
		return domainerrors.StorageFailure(err)
	}
	if err := u.mirror.DeleteSchedule(ctx, s.OwnerAddress, id); err != nil {
		logger.Warn(ctx, "remote mirror delete failed",
			zap.String("schedule_id", id.String()), zap.Error(err))
	}
	return nil
}

// List returns the owner's schedules ordered by scheduled date
func (u *ScheduleUsecase) List(ctx context.Context, owner string) ([]*entities.ScheduledPayment, error) {
	schedules, err := u.repo.ListByOwner(ctx, owner)
	if err != nil {
		return nil, domainerrors.StorageFailure(err)
	}
	return schedules, nil
}

// Get returns one schedule owned by the wallet
func (u *ScheduleUsecase) Get(ctx context.Context, owner string, id uuid.UUID) (*entities.ScheduledPayment, error) {
	return u.getOwned(ctx, owner, id)
}

// ApplyFireSuccess records one successful fire: last_processed and
// processed_count advance, and the schedule either moves to its next
// occurrence or completes, per the advance result.
func (u *ScheduleUsecase) ApplyFireSuccess(ctx context.Context, s *entities.ScheduledPayment, firedAt time.Time, adv AdvanceResult) error {
	s.LastProcessed = null.TimeFrom(firedAt)
	s.ProcessedCount++
	if adv.Completed {
		s.Status = entities.ScheduleStatusCompleted
		if s.ScheduleType == entities.ScheduleTypeOneTime {
			s.NextPaymentDate = null.Time{}
		}
	} else {
		s.NextPaymentDate = null.TimeFrom(adv.NextDate)
	}

	if err := u.repo.Update(ctx, s); err != nil {
		return domainerrors.StorageFailure(err)
	}
	u.syncSchedule(ctx, s)
	return nil
}

func (u *ScheduleUsecase) getOwned(ctx context.Context, owner string, id uuid.UUID) (*entities.ScheduledPayment, error) {
	s, err := u.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.NotFound("schedule not found")
		}
		return nil, domainerrors.StorageFailure(err)
	}
	if s.OwnerAddress != owner {
		return nil, domainerrors.Forbidden("schedule belongs to another wallet")
	}
	return s, nil
}

// syncSchedule mirrors the record remotely. Failures are logged and
// swallowed; local state is the source of truth and a later write
// reconciles by upsert.
func (u *ScheduleUsecase) syncSchedule(ctx context.Context, s *entities.ScheduledPayment) {
	if err := u.mirror.UpsertSchedule(ctx, s); err != nil {
		logger.Warn(ctx, "remote mirror sync failed",
			zap.String("schedule_id", s.ID.String()), zap.Error(err))
	}
}
