package repositories

import (
	"context"

	"github.com/google/uuid"
	"payday.backend/internal/domain/entities"
)

// ScheduleRepository is the local, authoritative store of scheduled payments.
// Every query is scoped to an owner wallet; the engine never operates across
// owners.
type ScheduleRepository interface {
	Create(ctx context.Context, schedule *entities.ScheduledPayment) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.ScheduledPayment, error)
	Update(ctx context.Context, schedule *entities.ScheduledPayment) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByOwner(ctx context.Context, owner string) ([]*entities.ScheduledPayment, error)
	ListOwnersWithActive(ctx context.Context) ([]string, error)
}

// RemoteMirror is the best-effort replica of the schedule store. Writes are
// fire-and-forget from the caller's perspective: a mirror failure must never
// fail the local operation. Reconciliation is upsert-on-id.
type RemoteMirror interface {
	UpsertSchedule(ctx context.Context, schedule *entities.ScheduledPayment) error
	DeleteSchedule(ctx context.Context, owner string, id uuid.UUID) error
	UpsertSpendingLimit(ctx context.Context, limit *entities.SpendingLimit) error
}
