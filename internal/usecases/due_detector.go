package usecases

import (
	"time"

	"payday.backend/internal/domain/entities"
)

// DueNow returns the subset of schedules that must fire at the given
// instant. It is a pure predicate over the snapshot: no mutation, safe to
// call repeatedly. Calendar-day comparisons are pinned to UTC.
func DueNow(now time.Time, schedules []*entities.ScheduledPayment) []*entities.ScheduledPayment {
	var due []*entities.ScheduledPayment
	for _, s := range schedules {
		if isDue(now, s) {
			due = append(due, s)
		}
	}
	return due
}

func isDue(now time.Time, s *entities.ScheduledPayment) bool {
	if s.Status != entities.ScheduleStatusActive {
		return false
	}

	if s.ReferenceDate().After(now) {
		return false
	}

	if s.ScheduleType == entities.ScheduleTypeRecurring {
		if s.EndDate.Valid && now.After(s.EndDate.Time) {
			return false
		}
		// Daily-fire guard: even if next_payment_date has not advanced
		// (e.g. a partial failure), a recurring schedule fires at most once
		// per UTC calendar day.
		if s.LastProcessed.Valid && sameUTCDay(s.LastProcessed.Time, now) {
			return false
		}
	}

	return true
}

func sameUTCDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}
