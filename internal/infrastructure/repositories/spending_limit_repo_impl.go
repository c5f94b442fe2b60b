package repositories

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"gorm.io/gorm"
	"payday.backend/internal/domain/entities"
	"payday.backend/internal/infrastructure/models"
)

// SpendingLimitRepositoryImpl implements SpendingLimitRepository
type SpendingLimitRepositoryImpl struct {
	db *gorm.DB
}

func NewSpendingLimitRepository(db *gorm.DB) *SpendingLimitRepositoryImpl {
	return &SpendingLimitRepositoryImpl{db: db}
}

func (r *SpendingLimitRepositoryImpl) Get(ctx context.Context, owner string) (*entities.SpendingLimit, error) {
	var m models.SpendingLimit
	if err := GetDB(ctx, r.db).WithContext(ctx).Where("owner_address = ?", owner).First(&m).Error; err != nil {
		return nil, err
	}
	return &entities.SpendingLimit{
		OwnerAddress: m.OwnerAddress,
		Amount:       m.Amount,
		UpdatedAt:    m.UpdatedAt,
	}, nil
}

func (r *SpendingLimitRepositoryImpl) Set(ctx context.Context, owner string, amount string) (*entities.SpendingLimit, error) {
	now := time.Now()
	db := GetDB(ctx, r.db).WithContext(ctx)

	var m models.SpendingLimit
	err := db.Where("owner_address = ?", owner).First(&m).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		m = models.SpendingLimit{OwnerAddress: owner, Amount: amount, CreatedAt: now, UpdatedAt: now}
		if err := db.Create(&m).Error; err != nil {
			return nil, err
		}
	case err != nil:
		return nil, err
	default:
		if err := db.Model(&models.SpendingLimit{}).
			Where("owner_address = ?", owner).
			Updates(map[string]interface{}{
				"amount":     amount,
				"updated_at": now,
			}).Error; err != nil {
			return nil, err
		}
		m.Amount = amount
		m.UpdatedAt = now
	}

	return &entities.SpendingLimit{
		OwnerAddress: m.OwnerAddress,
		Amount:       m.Amount,
		UpdatedAt:    m.UpdatedAt,
	}, nil
}

// formatRatAmount renders a rational as a plain decimal string, trailing
// zeros stripped. The column is decimal(36,18).
func formatRatAmount(r *big.Rat) string {
	if r.IsInt() {
		return r.Num().String()
	}
	s := strings.TrimRight(r.FloatString(18), "0")
	return strings.TrimRight(s, ".")
}

// Decrement subtracts amount inside a transaction so the math always runs
// against the latest persisted value. The gate only processes batches that
// fit the limit, but a concurrent manual Set could still shrink it, so the
// result is floored at zero.
func (r *SpendingLimitRepositoryImpl) Decrement(ctx context.Context, owner string, amount string) error {
	return GetDB(ctx, r.db).WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var m models.SpendingLimit
		if err := tx.Where("owner_address = ?", owner).First(&m).Error; err != nil {
			return err
		}

		current, ok := new(big.Rat).SetString(m.Amount)
		if !ok {
			return fmt.Errorf("corrupt spending limit amount %q", m.Amount)
		}
		delta, ok := new(big.Rat).SetString(amount)
		if !ok {
			return fmt.Errorf("invalid decrement amount %q", amount)
		}

		remaining := new(big.Rat).Sub(current, delta)
		if remaining.Sign() < 0 {
			remaining.SetInt64(0)
		}

		return tx.Model(&models.SpendingLimit{}).
			Where("owner_address = ?", owner).
			Updates(map[string]interface{}{
				"amount":     formatRatAmount(remaining),
				"updated_at": time.Now(),
			}).Error
	})
}
