package usecase

import (
	"context"
	"time"

	"go.uber.org/zap"

	domainErrors "github.com/CIPMABUJA/hr-hub-backend/internal/domain/errors"
	domainRepo "github.com/CIPMABUJA/hr-hub-backend/internal/domain/repository"
)

// ReconcilerConfig tunes the stale-pending sweep.
type ReconcilerConfig struct {
	Interval  time.Duration
	StaleAge  time.Duration
	BatchSize int
}

// Reconciler sweeps pending payments whose callback never arrived and
// re-runs verification against the gateway. Verification is idempotent,
// so racing a late callback is harmless.
type Reconciler struct {
	payments domainRepo.PaymentRepository
	verifier *PaymentService
	config   ReconcilerConfig
	logger   *zap.Logger
}

// NewReconciler creates a new payment reconciler
func NewReconciler(payments domainRepo.PaymentRepository, verifier *PaymentService, config ReconcilerConfig, logger *zap.Logger) *Reconciler {
	if config.Interval <= 0 {
		config.Interval = 10 * time.Minute
	}
	if config.StaleAge <= 0 {
		config.StaleAge = 30 * time.Minute
	}
	if config.BatchSize <= 0 {
		config.BatchSize = 50
	}
	return &Reconciler{
		payments: payments,
		verifier: verifier,
		config:   config,
		logger:   logger,
	}
}

// Run sweeps on a fixed interval until ctx is cancelled. Intended to run
// in its own goroutine.
func (r *Reconciler) Run(ctx context.Context) {
	r.logger.Info("Payment reconciler started",
		zap.Duration("interval", r.config.Interval),
		zap.Duration("stale_age", r.config.StaleAge))

	ticker := time.NewTicker(r.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("Payment reconciler stopped")
			return
		case <-ticker.C:
			r.Sweep(ctx)
		}
	}
}

// Sweep runs one reconciliation pass. Exported so an operator endpoint or
// test can trigger it directly.
func (r *Reconciler) Sweep(ctx context.Context) {
	cutoff := time.Now().Add(-r.config.StaleAge)

	stale, err := r.payments.ListStalePending(ctx, cutoff, r.config.BatchSize)
	if err != nil {
		r.logger.Error("Reconciliation sweep failed to list pending payments", zap.Error(err))
		return
	}
	if len(stale) == 0 {
		return
	}

	r.logger.Info("Reconciling stale pending payments", zap.Int("count", len(stale)))

	var settled, failed int
	for _, payment := range stale {
		if ctx.Err() != nil {
			return
		}

		result, err := r.verifier.VerifyPayment(ctx, payment.Reference)
		if err != nil {
			r.logger.Warn("Reconciliation verify failed",
				zap.String("reference", payment.Reference),
				zap.Error(err))
			// Gateway trouble affects the whole batch; stop early and let
			// the next tick retry. A per-row failure must not block the
			// rest of the batch behind it.
			if domainErrors.IsGateway(err) {
				break
			}
			failed++
			continue
		}
		if result.Success {
			settled++
		} else {
			failed++
		}
	}

	r.logger.Info("Reconciliation sweep finished",
		zap.Int("settled", settled),
		zap.Int("unresolved", failed))
}
