package usecases

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"payday.backend/internal/domain/entities"
	"payday.backend/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.Init("production")
	os.Exit(m.Run())
}

// Mock ScheduleRepository
type MockScheduleRepository struct {
	mock.Mock
}

func (m *MockScheduleRepository) Create(ctx context.Context, schedule *entities.ScheduledPayment) error {
	args := m.Called(ctx, schedule)
	return args.Error(0)
}

func (m *MockScheduleRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.ScheduledPayment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.ScheduledPayment), args.Error(1)
}

func (m *MockScheduleRepository) Update(ctx context.Context, schedule *entities.ScheduledPayment) error {
	args := m.Called(ctx, schedule)
	return args.Error(0)
}

func (m *MockScheduleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockScheduleRepository) ListByOwner(ctx context.Context, owner string) ([]*entities.ScheduledPayment, error) {
	args := m.Called(ctx, owner)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.ScheduledPayment), args.Error(1)
}

func (m *MockScheduleRepository) ListOwnersWithActive(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// Mock RemoteMirror
type MockRemoteMirror struct {
	mock.Mock
}

func (m *MockRemoteMirror) UpsertSchedule(ctx context.Context, schedule *entities.ScheduledPayment) error {
	args := m.Called(ctx, schedule)
	return args.Error(0)
}

func (m *MockRemoteMirror) DeleteSchedule(ctx context.Context, owner string, id uuid.UUID) error {
	args := m.Called(ctx, owner, id)
	return args.Error(0)
}

func (m *MockRemoteMirror) UpsertSpendingLimit(ctx context.Context, limit *entities.SpendingLimit) error {
	args := m.Called(ctx, limit)
	return args.Error(0)
}

// Mock SpendingLimitRepository
type MockSpendingLimitRepository struct {
	mock.Mock
}

func (m *MockSpendingLimitRepository) Get(ctx context.Context, owner string) (*entities.SpendingLimit, error) {
	args := m.Called(ctx, owner)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.SpendingLimit), args.Error(1)
}

func (m *MockSpendingLimitRepository) Set(ctx context.Context, owner string, amount string) (*entities.SpendingLimit, error) {
	args := m.Called(ctx, owner, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.SpendingLimit), args.Error(1)
}

func (m *MockSpendingLimitRepository) Decrement(ctx context.Context, owner string, amount string) error {
	args := m.Called(ctx, owner, amount)
	return args.Error(0)
}

// Mock PayoutLogRepository
type MockPayoutLogRepository struct {
	mock.Mock
}

func (m *MockPayoutLogRepository) Create(ctx context.Context, log *entities.PayoutLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func (m *MockPayoutLogRepository) ListByOwner(ctx context.Context, owner string, limit, offset int) ([]*entities.PayoutLog, int, error) {
	args := m.Called(ctx, owner, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*entities.PayoutLog), args.Int(1), args.Error(2)
}

// Mock PaymentSubmitter
type MockPaymentSubmitter struct {
	mock.Mock
}

func (m *MockPaymentSubmitter) Submit(ctx context.Context, recipientAddress, amount, token, memo string) (string, error) {
	args := m.Called(ctx, recipientAddress, amount, token, memo)
	return args.String(0), args.Error(1)
}

// Mock RewardIssuer
type MockRewardIssuer struct {
	mock.Mock
}

func (m *MockRewardIssuer) IssueBatch(ctx context.Context, owner string, succeeded int) {
	m.Called(ctx, owner, succeeded)
}
