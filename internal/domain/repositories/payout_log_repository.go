package repositories

import (
	"context"

	"payday.backend/internal/domain/entities"
)

// PayoutLogRepository stores the history of payout attempts
type PayoutLogRepository interface {
	Create(ctx context.Context, log *entities.PayoutLog) error
	ListByOwner(ctx context.Context, owner string, limit, offset int) ([]*entities.PayoutLog, int, error)
}
