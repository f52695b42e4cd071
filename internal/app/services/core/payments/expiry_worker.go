package payments

import (
	"context"
	"lgu-portal-service/internal/app/config"
	"lgu-portal-service/internal/app/contracts"
	"lgu-portal-service/internal/pkg/constvars"
	"lgu-portal-service/internal/pkg/utils"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const (
	defaultExpiryCronSpec = "@every 5m"
	defaultLeaderLockTTL  = 2 * time.Minute
)

// ExpiryWorker periodically expires transactions the citizen abandoned.
// Only the instance holding the leader lock does the work.
type ExpiryWorker struct {
	log     *zap.Logger
	cfg     *config.InternalConfig
	locker  contracts.LockerService
	payment contracts.PaymentUsecase
	cron    *cron.Cron
	runCtx  context.Context
	cancel  context.CancelFunc
}

func NewExpiryWorker(log *zap.Logger, cfg *config.InternalConfig, locker contracts.LockerService, payment contracts.PaymentUsecase) *ExpiryWorker {
	return &ExpiryWorker{log: log, cfg: cfg, locker: locker, payment: payment}
}

func (w *ExpiryWorker) Start(ctx context.Context) {
	w.runCtx, w.cancel = context.WithCancel(ctx)
	c := cron.New()
	spec := w.cfg.Workers.ExpiryCronSpec
	if spec == "" {
		spec = defaultExpiryCronSpec
	}
	if _, err := c.AddFunc(spec, func() { w.RunOnce(w.runCtx) }); err != nil {
		w.log.Warn("payments.ExpiryWorker invalid cron spec, falling back to default",
			zap.String("cron_spec", spec),
			zap.Error(err),
		)
		c = cron.New()
		_, _ = c.AddFunc(defaultExpiryCronSpec, func() { w.RunOnce(w.runCtx) })
	}
	c.Start()
	w.cron = c
}

// Stop waits for a running job to finish.
func (w *ExpiryWorker) Stop() {
	if w.cancel != nil {
		w.cancel()
	}
	if w.cron != nil {
		<-w.cron.Stop().Done()
	}
}

func (w *ExpiryWorker) RunOnce(ctx context.Context) {
	ctx = utils.WithRequestID(ctx, uuid.NewString())
	requestID := utils.GetRequestID(ctx)
	ttl := w.leaderTTL()

	acquired, token, err := w.locker.TryLock(ctx, constvars.RedisKeyExpiryWorkerLeader, ttl)
	if err != nil {
		w.log.Warn("payments.ExpiryWorker leader lock attempt failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return
	}
	if !acquired {
		w.log.Info("payments.ExpiryWorker leader lock held by another instance",
			zap.String(constvars.LoggingRequestIDKey, requestID),
		)
		return
	}
	defer func() {
		if err := w.locker.Unlock(ctx, constvars.RedisKeyExpiryWorkerLeader, token); err != nil {
			w.log.Warn("payments.ExpiryWorker error releasing leader lock",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(err),
			)
		}
	}()

	refreshCtx, cancelRefresh := context.WithCancel(ctx)
	defer cancelRefresh()
	go w.refreshLeaderLock(refreshCtx, token, ttl)

	expired, err := w.payment.ExpireStaleTransactions(ctx)
	if err != nil {
		w.log.Warn("payments.ExpiryWorker expiry run failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return
	}
	w.log.Info("payments.ExpiryWorker expiry run finished",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingCountKey, expired),
	)
}

func (w *ExpiryWorker) refreshLeaderLock(ctx context.Context, token string, ttl time.Duration) {
	tick := time.NewTicker(ttl / 2)
	defer tick.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-tick.C:
			if err := w.locker.Refresh(ctx, constvars.RedisKeyExpiryWorkerLeader, token, ttl); err != nil {
				w.log.Warn("payments.ExpiryWorker failed to refresh leader lock",
					zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
					zap.Error(err),
				)
			}
		}
	}
}

func (w *ExpiryWorker) leaderTTL() time.Duration {
	if w.cfg.Workers.LeaderLockTTLInSeconds <= 0 {
		return defaultLeaderLockTTL
	}
	return time.Duration(w.cfg.Workers.LeaderLockTTLInSeconds) * time.Second
}
