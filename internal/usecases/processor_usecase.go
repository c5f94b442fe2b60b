package usecases

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"
	"payday.backend/internal/domain/entities"
	"payday.backend/internal/domain/repositories"
	"payday.backend/internal/infrastructure/metrics"
	"payday.backend/pkg/logger"
)

// PaymentSubmitter is the external payment capability. It may be slow or
// interactive; the processor awaits each submission before moving on.
type PaymentSubmitter interface {
	Submit(ctx context.Context, recipientAddress, amount, token, memo string) (string, error)
}

// RewardIssuer reports a processed batch to the rewards service,
// fire-and-forget.
type RewardIssuer interface {
	IssueBatch(ctx context.Context, owner string, succeeded int)
}

// ProcessorUsecase drives execution of due schedules, strictly one at a
// time. The submitter is a wallet-signing operation, so items are never
// submitted concurrently, and a per-owner lock serializes the gate's ticks
// with manual triggers.
type ProcessorUsecase struct {
	schedules  *ScheduleUsecase
	payoutRepo repositories.PayoutLogRepository
	submitter  PaymentSubmitter
	rewards    RewardIssuer

	mu    sync.Mutex
	locks map[string]*sync.Mutex
	// Schedules whose transfer went out but whose state write failed,
	// keyed to the fire time. Later passes retry the write instead of
	// submitting a second payment.
	unpersisted map[uuid.UUID]time.Time

	now func() time.Time
}

func NewProcessorUsecase(
	schedules *ScheduleUsecase,
	payoutRepo repositories.PayoutLogRepository,
	submitter PaymentSubmitter,
	rewards RewardIssuer,
) *ProcessorUsecase {
	return &ProcessorUsecase{
		schedules:   schedules,
		payoutRepo:  payoutRepo,
		submitter:   submitter,
		rewards:     rewards,
		locks:       make(map[string]*sync.Mutex),
		unpersisted: make(map[uuid.UUID]time.Time),
		now:         time.Now,
	}
}

// ProcessDue snapshots the owner's schedules, detects the due subset and
// processes it. This is the manual-trigger entry point.
func (u *ProcessorUsecase) ProcessDue(ctx context.Context, owner string) (*entities.ProcessResult, error) {
	lock := u.ownerLock(owner)
	lock.Lock()
	defer lock.Unlock()

	schedules, err := u.schedules.List(ctx, owner)
	if err != nil {
		return nil, err
	}

	due := DueNow(u.now(), schedules)
	return u.processLocked(ctx, owner, due), nil
}

// ProcessSet processes an approved set on behalf of the auto-approval gate.
// The gate computes the set before the owner lock is held, so a manual run
// may have completed part of it in between; once the lock is acquired the
// owner's schedules are re-listed and only approved items that are still
// due get submitted. The second return value is the exact decimal total of
// the submissions attempted, which is what the caller should charge.
func (u *ProcessorUsecase) ProcessSet(ctx context.Context, owner string, approved []*entities.ScheduledPayment) (*entities.ProcessResult, string, error) {
	lock := u.ownerLock(owner)
	lock.Lock()
	defer lock.Unlock()

	schedules, err := u.schedules.List(ctx, owner)
	if err != nil {
		return nil, "", err
	}

	approvedIDs := make(map[uuid.UUID]struct{}, len(approved))
	for _, s := range approved {
		approvedIDs[s.ID] = struct{}{}
	}

	var due []*entities.ScheduledPayment
	var amounts []string
	for _, s := range DueNow(u.now(), schedules) {
		if _, ok := approvedIDs[s.ID]; !ok {
			continue
		}
		due = append(due, s)
		if _, fired := u.pendingFire(s.ID); !fired {
			amounts = append(amounts, s.Amount)
		}
	}

	attempted, err := SumAmounts(amounts...)
	if err != nil {
		return nil, "", err
	}
	return u.processLocked(ctx, owner, due), attempted, nil
}

func (u *ProcessorUsecase) processLocked(ctx context.Context, owner string, due []*entities.ScheduledPayment) *entities.ProcessResult {
	result := &entities.ProcessResult{}
	if len(due) == 0 {
		return result
	}

	start := u.now()
	for _, s := range due {
		if firedAt, ok := u.pendingFire(s.ID); ok {
			// Already paid on an earlier pass; only the state write is
			// outstanding. Retry it instead of submitting again.
			if err := u.schedules.ApplyFireSuccess(ctx, s, firedAt, Advance(s, firedAt)); err != nil {
				logger.Error(ctx, "failed to persist earlier fire result",
					zap.String("schedule_id", s.ID.String()),
					zap.Error(err))
				continue
			}
			u.clearPendingFire(s.ID)
			continue
		}

		firedAt := u.now()
		txHash, err := u.submitter.Submit(ctx, s.RecipientAddress, s.Amount, s.Token, "payroll: "+s.RecipientName)
		if err != nil {
			// Failed items keep their processed state untouched so they
			// stay eligible on the next due-evaluation pass.
			result.Failed++
			metrics.IncPayoutItem("failed")
			logger.Warn(ctx, "payment execution failed",
				zap.String("schedule_id", s.ID.String()),
				zap.String("recipient", s.RecipientAddress),
				zap.Error(err))
			u.recordPayout(ctx, s, entities.PayoutStatusFailed, "", err.Error())
			continue
		}

		result.Succeeded++
		metrics.IncPayoutItem("succeeded")
		u.recordPayout(ctx, s, entities.PayoutStatusSucceeded, txHash, "")

		adv := Advance(s, firedAt)
		if err := u.schedules.ApplyFireSuccess(ctx, s, firedAt, adv); err != nil {
			// The transfer went out but the state update failed. Mark the
			// fire so later passes retry the write and never pay twice.
			u.setPendingFire(s.ID, firedAt)
			logger.Error(ctx, "failed to persist fire result",
				zap.String("schedule_id", s.ID.String()),
				zap.Error(err))
		}
	}

	metrics.ObserveBatchDuration(u.now().Sub(start).Seconds())

	if result.Succeeded > 0 {
		u.rewards.IssueBatch(ctx, owner, result.Succeeded)
	}

	logger.Info(ctx, "processed due schedules",
		zap.String("owner", owner),
		zap.Int("succeeded", result.Succeeded),
		zap.Int("failed", result.Failed))
	return result
}

func (u *ProcessorUsecase) recordPayout(ctx context.Context, s *entities.ScheduledPayment, status entities.PayoutStatus, txHash, errMsg string) {
	log := &entities.PayoutLog{
		ID:               uuid.New(),
		ScheduleID:       s.ID,
		OwnerAddress:     s.OwnerAddress,
		RecipientAddress: s.RecipientAddress,
		Amount:           s.Amount,
		Token:            s.Token,
		Status:           status,
	}
	if txHash != "" {
		log.TxHash = null.StringFrom(txHash)
	}
	if errMsg != "" {
		log.ErrorMessage = null.StringFrom(errMsg)
	}
	if err := u.payoutRepo.Create(ctx, log); err != nil {
		logger.Warn(ctx, "failed to record payout log",
			zap.String("schedule_id", s.ID.String()), zap.Error(err))
	}
}

func (u *ProcessorUsecase) pendingFire(id uuid.UUID) (time.Time, bool) {
	u.mu.Lock()
	defer u.mu.Unlock()
	at, ok := u.unpersisted[id]
	return at, ok
}

func (u *ProcessorUsecase) setPendingFire(id uuid.UUID, at time.Time) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.unpersisted[id] = at
}

func (u *ProcessorUsecase) clearPendingFire(id uuid.UUID) {
	u.mu.Lock()
	defer u.mu.Unlock()
	delete(u.unpersisted, id)
}

func (u *ProcessorUsecase) ownerLock(owner string) *sync.Mutex {
	u.mu.Lock()
	defer u.mu.Unlock()
	lock, ok := u.locks[owner]
	if !ok {
		lock = &sync.Mutex{}
		u.locks[owner] = lock
	}
	return lock
}
