package usecases

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/volatiletech/null/v8"
	"payday.backend/internal/domain/entities"
)

func activeOneTime(at time.Time) *entities.ScheduledPayment {
	return &entities.ScheduledPayment{
		ID:               uuid.New(),
		OwnerAddress:     "0xOwner",
		RecipientAddress: "0xRecipient",
		Amount:           "100",
		Token:            "USDC",
		ScheduleType:     entities.ScheduleTypeOneTime,
		ScheduledDate:    at,
		Status:           entities.ScheduleStatusActive,
	}
}

func activeRecurring(next time.Time, r entities.Recurrence) *entities.ScheduledPayment {
	return &entities.ScheduledPayment{
		ID:               uuid.New(),
		OwnerAddress:     "0xOwner",
		RecipientAddress: "0xRecipient",
		Amount:           "100",
		Token:            "USDC",
		ScheduleType:     entities.ScheduleTypeRecurring,
		ScheduledDate:    next.AddDate(0, -1, 0),
		Recurrence:       r,
		NextPaymentDate:  null.TimeFrom(next),
		Status:           entities.ScheduleStatusActive,
	}
}

func TestDueNow_OneTimePastIsDue(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	due := DueNow(now, []*entities.ScheduledPayment{
		activeOneTime(now.Add(-time.Hour)),
		activeOneTime(now), // exactly at the instant counts as reached
	})
	assert.Len(t, due, 2)
}

func TestDueNow_FutureIsNotDue(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	due := DueNow(now, []*entities.ScheduledPayment{
		activeOneTime(now.Add(time.Minute)),
	})
	assert.Empty(t, due)
}

func TestDueNow_NonActiveStatusesAreSkipped(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	for _, status := range []entities.ScheduleStatus{
		entities.ScheduleStatusPaused,
		entities.ScheduleStatusCompleted,
		entities.ScheduleStatusCancelled,
	} {
		s := activeOneTime(now.Add(-time.Hour))
		s.Status = status
		assert.Empty(t, DueNow(now, []*entities.ScheduledPayment{s}), "status %s", status)
	}
}

func TestDueNow_RecurringUsesNextPaymentDate(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	// scheduled_date is long past but next_payment_date is in the future
	s := activeRecurring(now.Add(time.Hour), entities.RecurrenceWeekly)
	assert.Empty(t, DueNow(now, []*entities.ScheduledPayment{s}))

	s = activeRecurring(now.Add(-time.Hour), entities.RecurrenceWeekly)
	assert.Len(t, DueNow(now, []*entities.ScheduledPayment{s}), 1)
}

func TestDueNow_RecurringPastEndDateIsNotDue(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	s := activeRecurring(now.Add(-time.Hour), entities.RecurrenceDaily)
	s.EndDate = null.TimeFrom(now.Add(-time.Minute))
	assert.Empty(t, DueNow(now, []*entities.ScheduledPayment{s}))
}

func TestDueNow_DailyFireGuard(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	// processed earlier today (UTC): guarded even though the reference date
	// never advanced
	s := activeRecurring(now.Add(-2*time.Hour), entities.RecurrenceDaily)
	s.LastProcessed = null.TimeFrom(now.Add(-time.Hour))
	assert.Empty(t, DueNow(now, []*entities.ScheduledPayment{s}))

	// processed yesterday: fires again
	s.LastProcessed = null.TimeFrom(now.AddDate(0, 0, -1))
	assert.Len(t, DueNow(now, []*entities.ScheduledPayment{s}), 1)
}

func TestDueNow_DailyFireGuardIsPinnedToUTC(t *testing.T) {
	// 23:30 UTC on the 14th and 00:30 UTC on the 15th are different UTC days
	// regardless of the host timezone the timestamps carry.
	jakarta := time.FixedZone("WIB", 7*3600)
	lastProcessed := time.Date(2026, 3, 15, 6, 30, 0, 0, jakarta) // 14th 23:30 UTC
	now := time.Date(2026, 3, 15, 0, 30, 0, 0, time.UTC)

	s := activeRecurring(now.Add(-time.Hour), entities.RecurrenceDaily)
	s.LastProcessed = null.TimeFrom(lastProcessed)
	assert.Len(t, DueNow(now, []*entities.ScheduledPayment{s}), 1)
}

func TestDueNow_GuardDoesNotApplyToOneTime(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	// A one-time schedule still active with last_processed set today is an
	// inconsistent leftover; the status check is what fences one-time
	// schedules, not the daily guard.
	s := activeOneTime(now.Add(-time.Hour))
	s.LastProcessed = null.TimeFrom(now.Add(-time.Hour))
	assert.Len(t, DueNow(now, []*entities.ScheduledPayment{s}), 1)
}

func TestDueNow_IsPure(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	s := activeRecurring(now.Add(-time.Hour), entities.RecurrenceWeekly)
	snapshot := []*entities.ScheduledPayment{s}

	first := DueNow(now, snapshot)
	second := DueNow(now, snapshot)
	assert.Equal(t, first, second)
	assert.Equal(t, entities.ScheduleStatusActive, s.Status)
	assert.Zero(t, s.ProcessedCount)
}
