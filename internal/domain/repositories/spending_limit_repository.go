package repositories

import (
	"context"

	"payday.backend/internal/domain/entities"
)

// SpendingLimitRepository stores the per-owner auto-approval ceiling
type SpendingLimitRepository interface {
	Get(ctx context.Context, owner string) (*entities.SpendingLimit, error)
	Set(ctx context.Context, owner string, amount string) (*entities.SpendingLimit, error)
	// Decrement subtracts amount from the owner's limit atomically against
	// the latest persisted value, not an in-memory copy.
	Decrement(ctx context.Context, owner string, amount string) error
}
