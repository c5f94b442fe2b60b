package mirror

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"payday.backend/internal/domain/entities"
	"payday.backend/pkg/redis"
)

var (
	setMirrorValue = redis.Set
	delMirrorValue = redis.Del
	getMirrorValue = redis.Get
)

// RedisMirror replicates schedule records to Redis on a best-effort basis.
// The local gorm store stays authoritative; a failed mirror write is the
// caller's problem only to the extent of logging it. Records are keyed by
// owner and id so a later successful write reconciles by upsert.
type RedisMirror struct{}

func NewRedisMirror() *RedisMirror {
	return &RedisMirror{}
}

func scheduleKey(owner string, id uuid.UUID) string {
	return fmt.Sprintf("mirror:schedules:%s:%s", owner, id)
}

func limitKey(owner string) string {
	return fmt.Sprintf("mirror:limits:%s", owner)
}

func (m *RedisMirror) UpsertSchedule(ctx context.Context, s *entities.ScheduledPayment) error {
	payload, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return setMirrorValue(ctx, scheduleKey(s.OwnerAddress, s.ID), payload, 0)
}

func (m *RedisMirror) DeleteSchedule(ctx context.Context, owner string, id uuid.UUID) error {
	return delMirrorValue(ctx, scheduleKey(owner, id))
}

func (m *RedisMirror) UpsertSpendingLimit(ctx context.Context, limit *entities.SpendingLimit) error {
	payload, err := json.Marshal(limit)
	if err != nil {
		return err
	}
	return setMirrorValue(ctx, limitKey(limit.OwnerAddress), payload, 0)
}

// GetSchedule reads a mirrored record back. Only used by tests and ops
// tooling; the engine never reads from the mirror.
func (m *RedisMirror) GetSchedule(ctx context.Context, owner string, id uuid.UUID) (*entities.ScheduledPayment, error) {
	raw, err := getMirrorValue(ctx, scheduleKey(owner, id))
	if err != nil {
		return nil, err
	}
	var s entities.ScheduledPayment
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return nil, err
	}
	return &s, nil
}
