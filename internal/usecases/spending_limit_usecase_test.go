package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
	"payday.backend/internal/domain/entities"
)

func newLimitUC() (*SpendingLimitUsecase, *MockSpendingLimitRepository, *MockRemoteMirror) {
	repo := new(MockSpendingLimitRepository)
	mirror := new(MockRemoteMirror)
	return NewSpendingLimitUsecase(repo, mirror), repo, mirror
}

func TestSpendingLimitUsecase_Get_NoLimitIsNotAnError(t *testing.T) {
	uc, repo, _ := newLimitUC()
	repo.On("Get", mock.Anything, testOwner).Return(nil, gorm.ErrRecordNotFound).Once()

	limit, err := uc.Get(context.Background(), testOwner)
	assert.NoError(t, err)
	assert.Nil(t, limit)
}

func TestSpendingLimitUsecase_Set(t *testing.T) {
	uc, repo, mirror := newLimitUC()
	stored := &entities.SpendingLimit{OwnerAddress: testOwner, Amount: "500", UpdatedAt: time.Now()}
	repo.On("Set", mock.Anything, testOwner, "500").Return(stored, nil).Once()
	mirror.On("UpsertSpendingLimit", mock.Anything, stored).Return(nil).Once()

	limit, err := uc.Set(context.Background(), testOwner, "500")
	assert.NoError(t, err)
	assert.Equal(t, "500", limit.Amount)
	mirror.AssertExpectations(t)
}

func TestSpendingLimitUsecase_Set_RejectsInvalidAmounts(t *testing.T) {
	uc, _, _ := newLimitUC()

	_, err := uc.Set(context.Background(), testOwner, "-5")
	assert.Error(t, err)

	_, err = uc.Set(context.Background(), testOwner, "lots")
	assert.Error(t, err)
}

func TestSpendingLimitUsecase_Set_ZeroDisablesAutoProcessing(t *testing.T) {
	uc, repo, mirror := newLimitUC()
	stored := &entities.SpendingLimit{OwnerAddress: testOwner, Amount: "0"}
	repo.On("Set", mock.Anything, testOwner, "0").Return(stored, nil).Once()
	mirror.On("UpsertSpendingLimit", mock.Anything, stored).Return(nil).Once()

	limit, err := uc.Set(context.Background(), testOwner, "0")
	assert.NoError(t, err)
	assert.Equal(t, "0", limit.Amount)
}

func TestSpendingLimitUsecase_Decrement_SyncsMirror(t *testing.T) {
	uc, repo, mirror := newLimitUC()
	repo.On("Decrement", mock.Anything, testOwner, "80").Return(nil).Once()
	repo.On("Get", mock.Anything, testOwner).Return(&entities.SpendingLimit{OwnerAddress: testOwner, Amount: "20"}, nil).Once()
	mirror.On("UpsertSpendingLimit", mock.Anything, mock.Anything).Return(nil).Once()

	assert.NoError(t, uc.Decrement(context.Background(), testOwner, "80"))
	repo.AssertExpectations(t)
	mirror.AssertExpectations(t)
}
