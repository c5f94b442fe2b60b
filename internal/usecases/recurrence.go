package usecases

import (
	"time"

	"payday.backend/internal/domain/entities"
)

// AdvanceResult is the outcome of advancing a schedule after a successful fire
type AdvanceResult struct {
	NextDate  time.Time
	Completed bool
}

// Advance computes the next occurrence after a successful fire. The cadence
// is added to the previous next_payment_date rather than the fire instant,
// so late processing does not drift the schedule. One-time schedules and
// recurrences that would step past end_date resolve to completed.
func Advance(s *entities.ScheduledPayment, firedAt time.Time) AdvanceResult {
	if s.ScheduleType != entities.ScheduleTypeRecurring {
		return AdvanceResult{Completed: true}
	}

	prev := s.ScheduledDate
	if s.NextPaymentDate.Valid {
		prev = s.NextPaymentDate.Time
	}

	var next time.Time
	switch s.Recurrence {
	case entities.RecurrenceDaily:
		next = prev.AddDate(0, 0, 1)
	case entities.RecurrenceWeekly:
		next = prev.AddDate(0, 0, 7)
	case entities.RecurrenceBiWeekly:
		next = prev.AddDate(0, 0, 14)
	case entities.RecurrenceMonthly:
		next = addCalendarMonth(prev)
	default:
		// Unknown cadence cannot advance; treat as exhausted.
		return AdvanceResult{Completed: true}
	}

	if s.EndDate.Valid && next.After(s.EndDate.Time) {
		return AdvanceResult{Completed: true}
	}
	return AdvanceResult{NextDate: next}
}

// addCalendarMonth adds one month preserving the day-of-month, clamping to
// the last day when the target month is shorter (Jan 31 -> Feb 28/29).
func addCalendarMonth(t time.Time) time.Time {
	year, month, day := t.Date()

	// Day 0 of month+2 is the last day of month+1; time.Date normalizes
	// out-of-range months.
	lastDay := time.Date(year, month+2, 0, 0, 0, 0, 0, t.Location()).Day()
	if day > lastDay {
		day = lastDay
	}

	return time.Date(year, month+1, day, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}
