package jobs

import (
	"context"
	"time"

	"go.uber.org/zap"
	"payday.backend/internal/domain/repositories"
	"payday.backend/internal/infrastructure/metrics"
	"payday.backend/internal/usecases"
	"payday.backend/pkg/logger"
)

// AutoApprovalJob is the unattended-processing monitor. On a fixed interval
// it detects each owner's due schedules and, when the batch total fits the
// owner's standing spending limit, processes the whole batch and charges the
// limit for the amount offered. Anything that does not fit is left for a
// manual trigger: the gate never auto-processes a partial batch.
type AutoApprovalJob struct {
	scheduleRepo repositories.ScheduleRepository
	schedules    *usecases.ScheduleUsecase
	limits       *usecases.SpendingLimitUsecase
	processor    *usecases.ProcessorUsecase
	interval     time.Duration
	stop         chan struct{}
	now          func() time.Time
}

func NewAutoApprovalJob(
	scheduleRepo repositories.ScheduleRepository,
	schedules *usecases.ScheduleUsecase,
	limits *usecases.SpendingLimitUsecase,
	processor *usecases.ProcessorUsecase,
	interval time.Duration,
) *AutoApprovalJob {
	if interval <= 0 {
		interval = time.Minute
	}
	return &AutoApprovalJob{
		scheduleRepo: scheduleRepo,
		schedules:    schedules,
		limits:       limits,
		processor:    processor,
		interval:     interval,
		stop:         make(chan struct{}),
		now:          time.Now,
	}
}

func (j *AutoApprovalJob) Start(ctx context.Context) {
	logger.Info(ctx, "starting auto-approval gate", zap.Duration("interval", j.interval))

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info(ctx, "auto-approval gate stopped (context cancelled)")
			return
		case <-j.stop:
			logger.Info(ctx, "auto-approval gate stopped")
			return
		case <-ticker.C:
			j.Tick(ctx)
		}
	}
}

func (j *AutoApprovalJob) Stop() {
	close(j.stop)
}

// Tick runs one gate pass over every owner with active schedules. Errors
// are logged per owner and never escape; the next tick proceeds
// independently.
func (j *AutoApprovalJob) Tick(ctx context.Context) {
	metrics.IncGateTick()

	owners, err := j.scheduleRepo.ListOwnersWithActive(ctx)
	if err != nil {
		logger.Error(ctx, "gate: failed to list owners", zap.Error(err))
		return
	}

	for _, owner := range owners {
		if err := j.runOwner(ctx, owner); err != nil {
			metrics.IncGateBatch("error")
			logger.Error(ctx, "gate: owner pass failed",
				zap.String("owner", owner), zap.Error(err))
		}
	}
}

func (j *AutoApprovalJob) runOwner(ctx context.Context, owner string) error {
	schedules, err := j.schedules.List(ctx, owner)
	if err != nil {
		return err
	}

	due := usecases.DueNow(j.now(), schedules)
	if len(due) == 0 {
		return nil
	}

	amounts := make([]string, len(due))
	for i, s := range due {
		amounts[i] = s.Amount
	}
	totalStr, err := usecases.SumAmounts(amounts...)
	if err != nil {
		return err
	}
	total, err := usecases.ParseAmount(totalStr)
	if err != nil {
		return err
	}
	if total <= 0 {
		return nil
	}

	limit, err := j.limits.Get(ctx, owner)
	if err != nil {
		return err
	}
	if limit == nil {
		metrics.IncGateBatch("no_limit")
		logger.Debug(ctx, "gate: no spending limit set, leaving batch for manual processing",
			zap.String("owner", owner), zap.Int("due", len(due)))
		return nil
	}

	available, err := usecases.ParseAmount(limit.Amount)
	if err != nil {
		return err
	}
	if total > available {
		// All-or-nothing: no partial subset is auto-processed.
		metrics.IncGateBatch("over_limit")
		logger.Info(ctx, "gate: due total exceeds spending limit, leaving batch for manual processing",
			zap.String("owner", owner),
			zap.String("total", totalStr),
			zap.String("limit", limit.Amount))
		return nil
	}

	// The processor re-evaluates the approved set under the owner lock, so a
	// manual run racing this tick cannot get items paid twice; attempted is
	// the total of what was actually submitted.
	result, attempted, err := j.processor.ProcessSet(ctx, owner, due)
	if err != nil {
		return err
	}
	if attempted == "0" {
		metrics.IncGateBatch("stale")
		logger.Info(ctx, "gate: approved batch no longer due, nothing charged",
			zap.String("owner", owner))
		return nil
	}

	// The limit models exposure offered, not amount cleared: charge the
	// attempted total regardless of per-item outcomes.
	if err := j.limits.Decrement(ctx, owner, attempted); err != nil {
		logger.Error(ctx, "gate: failed to decrement spending limit",
			zap.String("owner", owner), zap.Error(err))
	}

	metrics.IncGateBatch("approved")
	logger.Info(ctx, "gate: auto-processed due batch",
		zap.String("owner", owner),
		zap.String("total", attempted),
		zap.Int("succeeded", result.Succeeded),
		zap.Int("failed", result.Failed))
	return nil
}
