package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"claim-escrow-engine/config"
	"claim-escrow-engine/internal/core/domain"
	"claim-escrow-engine/internal/core/ports"
	"claim-escrow-engine/pkg/apperror"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
)

const reviewReasonExhausted = "settlement attempts exhausted"

// ReconcilerMetrics are the reconciler's Prometheus collectors.
type ReconcilerMetrics struct {
	passes   *prometheus.CounterVec
	settled  prometheus.Counter
	failed   prometheus.Counter
	givenUp  prometheus.Counter
	backlog  prometheus.Gauge
	duration prometheus.Histogram
}

// NewReconcilerMetrics registers the reconciler collectors. A nil registerer
// yields working but unregistered collectors.
func NewReconcilerMetrics(reg prometheus.Registerer) *ReconcilerMetrics {
	factory := promauto.With(reg)
	return &ReconcilerMetrics{
		passes: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "reconciler_passes_total",
			Help: "reconciliation passes by outcome",
		}, []string{"outcome"}),
		settled: factory.NewCounter(prometheus.CounterOpts{
			Name: "reconciler_claims_settled_total",
			Help: "claims settled by the reconciler",
		}),
		failed: factory.NewCounter(prometheus.CounterOpts{
			Name: "reconciler_settle_failures_total",
			Help: "settlement retries that failed",
		}),
		givenUp: factory.NewCounter(prometheus.CounterOpts{
			Name: "reconciler_claims_given_up_total",
			Help: "claims parked for operator review",
		}),
		backlog: factory.NewGauge(prometheus.GaugeOpts{
			Name: "reconciler_backlog_claims",
			Help: "settleable claims seen by the last pass",
		}),
		duration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "reconciler_pass_duration_seconds",
			Help:    "wall time of a reconciliation pass",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

// PassResult summarizes one reconciliation pass.
type PassResult struct {
	Skipped bool `json:"skipped"` // another replica held the pass lock
	Scanned int  `json:"scanned"`
	Due     int  `json:"due"`
	Settled int  `json:"settled"`
	Failed  int  `json:"failed"`
	GivenUp int  `json:"given_up"`
}

// Reconciler periodically resumes settlement of APPROVED and
// SETTLEMENT_FAILED claims.
type Reconciler struct {
	claimRepo ports.ClaimRepository
	claims    ports.ClaimService
	locker    ports.PassLocker
	cfg       config.ReconcilerConfig
	metrics   *ReconcilerMetrics
	now       func() time.Time
	log       zerolog.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewReconciler creates a Reconciler. locker may be nil for a single replica.
func NewReconciler(
	claimRepo ports.ClaimRepository,
	claims ports.ClaimService,
	locker ports.PassLocker,
	cfg config.ReconcilerConfig,
	metrics *ReconcilerMetrics,
	log zerolog.Logger,
) *Reconciler {
	if metrics == nil {
		metrics = NewReconcilerMetrics(nil)
	}
	return &Reconciler{
		claimRepo: claimRepo,
		claims:    claims,
		locker:    locker,
		cfg:       cfg,
		metrics:   metrics,
		now:       func() time.Time { return time.Now().UTC() },
		log:       log,
	}
}

// Start runs passes every cfg.Interval until Stop is called or ctx ends.
func (r *Reconciler) Start(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.done != nil {
		return
	}

	ctx, r.cancel = context.WithCancel(ctx)
	r.done = make(chan struct{})
	go r.loop(ctx, r.done)

	r.log.Info().Dur("interval", r.cfg.Interval).Msg("reconciler started")
}

// Stop cancels the loop and waits for an in-flight pass to return.
func (r *Reconciler) Stop() {
	r.mu.Lock()
	cancel, done := r.cancel, r.done
	r.cancel, r.done = nil, nil
	r.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
	r.log.Info().Msg("reconciler stopped")
}

func (r *Reconciler) loop(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(r.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := r.RunOnce(ctx); err != nil && ctx.Err() == nil {
				r.log.Error().Err(err).Msg("reconciliation pass failed")
			}
		}
	}
}

// RunOnce performs a single pass, bounded by cfg.LockTTL.
func (r *Reconciler) RunOnce(ctx context.Context) (*PassResult, error) {
	start := time.Now()
	ctx, cancel := context.WithTimeout(ctx, r.cfg.LockTTL)
	defer cancel()

	if r.locker != nil {
		release, ok, err := r.locker.TryAcquire(ctx, r.cfg.LockTTL)
		if err != nil {
			r.metrics.passes.WithLabelValues("error").Inc()
			return nil, fmt.Errorf("acquire pass lock: %w", err)
		}
		if !ok {
			r.metrics.passes.WithLabelValues("skipped").Inc()
			r.log.Debug().Msg("reconciliation pass held by another replica, skipping")
			return &PassResult{Skipped: true}, nil
		}
		defer func() {
			if err := release(context.WithoutCancel(ctx)); err != nil {
				r.log.Warn().Err(err).Msg("failed to release pass lock")
			}
		}()
	}

	now := r.now()
	candidates, err := r.claimRepo.ListAwaitingSettlement(ctx, now.Add(-r.cfg.GracePeriod), r.cfg.BatchSize)
	if err != nil {
		r.metrics.passes.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("list claims awaiting settlement: %w", err)
	}

	res := &PassResult{Scanned: len(candidates)}
	r.metrics.backlog.Set(float64(len(candidates)))

	for i := range candidates {
		if ctx.Err() != nil {
			break
		}
		claim := &candidates[i]
		if !r.due(claim, now) {
			continue
		}
		res.Due++
		r.reconcile(ctx, claim, res)
	}

	r.metrics.passes.WithLabelValues("completed").Inc()
	r.metrics.duration.Observe(time.Since(start).Seconds())
	r.log.Info().
		Int("scanned", res.Scanned).
		Int("settled", res.Settled).
		Int("failed", res.Failed).
		Int("given_up", res.GivenUp).
		Msg("reconciliation pass complete")

	return res, nil
}

// Backoff is the wait after the last transition before the next attempt:
// grace_period doubled per recorded attempt, capped at max_backoff.
func (r *Reconciler) Backoff(attempts int) time.Duration {
	d := r.cfg.GracePeriod
	for i := 0; i < attempts; i++ {
		d *= 2
		if d >= r.cfg.MaxBackoff {
			return r.cfg.MaxBackoff
		}
	}
	return d
}

func (r *Reconciler) due(claim *domain.Claim, now time.Time) bool {
	return !claim.UpdatedAt.Add(r.Backoff(claim.SettlementAttempts)).After(now)
}

func (r *Reconciler) reconcile(ctx context.Context, claim *domain.Claim, res *PassResult) {
	log := r.log.With().Str("claim_id", claim.ID.String()).Int("attempt", claim.SettlementAttempts+1).Logger()

	if claim.SettlementAttempts >= r.cfg.MaxAttempts {
		ok, err := r.claimRepo.FlagForReview(ctx, claim.ID, reviewReasonExhausted, r.now())
		if err != nil {
			log.Error().Err(err).Msg("failed to flag claim for review")
			return
		}
		if ok {
			res.GivenUp++
			r.metrics.givenUp.Inc()
			log.Warn().Msg("settlement attempts exhausted, claim parked for review")
		}
		return
	}

	settled, err := r.claims.Settle(ctx, claim.ID)
	switch {
	case err == nil:
		res.Settled++
		r.metrics.settled.Inc()
		log.Info().Str("tx_hash", deref(settled.TxHash)).Msg("reconciler settled claim")
	case apperror.IsPermanentSettlement(err):
		res.GivenUp++
		r.metrics.givenUp.Inc()
		log.Warn().Err(err).Msg("permanent settlement failure, claim parked for review")
	default:
		res.Failed++
		r.metrics.failed.Inc()
		log.Warn().Err(err).Msg("settlement retry failed")
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
