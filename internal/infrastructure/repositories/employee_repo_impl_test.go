package repositories

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"payday.backend/internal/domain/entities"
)

func TestEmployeeRepository_CreateGetUpdateDelete(t *testing.T) {
	db := newTestDB(t)
	createEmployeeTable(t, db)
	repo := NewEmployeeRepository(db)
	ctx := context.Background()

	e := &entities.Employee{
		ID:            uuid.New(),
		OwnerAddress:  ownerA,
		Name:          "Alice",
		WalletAddress: "0xalice",
		Position:      null.StringFrom("Engineer"),
		SalaryAmount:  null.StringFrom("2500"),
		SalaryToken:   null.StringFrom("USDC"),
		IsActive:      true,
	}
	require.NoError(t, repo.Create(ctx, e))

	got, err := repo.GetByID(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", got.Name)
	assert.Equal(t, "Engineer", got.Position.String)
	assert.True(t, got.IsActive)

	got.Name = "Alice B"
	got.IsActive = false
	require.NoError(t, repo.Update(ctx, got))

	got, err = repo.GetByID(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice B", got.Name)
	assert.False(t, got.IsActive)

	require.NoError(t, repo.Delete(ctx, e.ID))
	_, err = repo.GetByID(ctx, e.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestEmployeeRepository_ListByOwner(t *testing.T) {
	db := newTestDB(t)
	createEmployeeTable(t, db)
	repo := NewEmployeeRepository(db)
	ctx := context.Background()

	for _, name := range []string{"Charlie", "Alice", "Bob"} {
		require.NoError(t, repo.Create(ctx, &entities.Employee{
			ID:            uuid.New(),
			OwnerAddress:  ownerA,
			Name:          name,
			WalletAddress: "0x" + name,
			IsActive:      true,
		}))
	}
	require.NoError(t, repo.Create(ctx, &entities.Employee{
		ID:            uuid.New(),
		OwnerAddress:  ownerB,
		Name:          "Zed",
		WalletAddress: "0xzed",
		IsActive:      true,
	}))

	list, err := repo.ListByOwner(ctx, ownerA)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "Alice", list[0].Name)
	assert.Equal(t, "Bob", list[1].Name)
	assert.Equal(t, "Charlie", list[2].Name)
}
