package usecases

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"payday.backend/internal/domain/entities"
	domainerrors "payday.backend/internal/domain/errors"
	"payday.backend/internal/domain/repositories"
	"payday.backend/pkg/logger"
)

// SpendingLimitUsecase manages the per-owner auto-approval ceiling
type SpendingLimitUsecase struct {
	repo   repositories.SpendingLimitRepository
	mirror repositories.RemoteMirror
}

func NewSpendingLimitUsecase(repo repositories.SpendingLimitRepository, mirror repositories.RemoteMirror) *SpendingLimitUsecase {
	return &SpendingLimitUsecase{repo: repo, mirror: mirror}
}

// Get returns the owner's limit, or nil when none is set
func (u *SpendingLimitUsecase) Get(ctx context.Context, owner string) (*entities.SpendingLimit, error) {
	limit, err := u.repo.Get(ctx, owner)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, domainerrors.StorageFailure(err)
	}
	return limit, nil
}

// Set replaces the owner's limit
func (u *SpendingLimitUsecase) Set(ctx context.Context, owner string, amount string) (*entities.SpendingLimit, error) {
	v, err := ParseAmount(amount)
	if err != nil || v < 0 {
		return nil, domainerrors.BadRequest("limit must be a non-negative decimal")
	}

	limit, err := u.repo.Set(ctx, owner, amount)
	if err != nil {
		return nil, domainerrors.StorageFailure(err)
	}
	u.syncLimit(ctx, limit)
	return limit, nil
}

// Decrement reduces the limit by the total amount offered in an
// auto-processed batch. Called by the gate only.
func (u *SpendingLimitUsecase) Decrement(ctx context.Context, owner string, amount string) error {
	if err := u.repo.Decrement(ctx, owner, amount); err != nil {
		return domainerrors.StorageFailure(err)
	}
	if limit, err := u.repo.Get(ctx, owner); err == nil {
		u.syncLimit(ctx, limit)
	}
	return nil
}

func (u *SpendingLimitUsecase) syncLimit(ctx context.Context, limit *entities.SpendingLimit) {
	if err := u.mirror.UpsertSpendingLimit(ctx, limit); err != nil {
		logger.Warn(ctx, "remote mirror sync failed",
			zap.String("owner", limit.OwnerAddress), zap.Error(err))
	}
}
