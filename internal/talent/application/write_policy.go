package application

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/sngm3741/talentflow/api/internal/metrics"
	"go.uber.org/zap"
)

// WritePolicy runs before every simulated write. A non-nil error aborts the write.
type WritePolicy interface {
	Apply(ctx context.Context) error
}

type WritePolicyConfig struct {
	MinDelay       time.Duration
	MaxDelay       time.Duration
	MinFailureRate float64
	MaxFailureRate float64
}

func DefaultWritePolicyConfig() WritePolicyConfig {
	return WritePolicyConfig{
		MinDelay:       200 * time.Millisecond,
		MaxDelay:       1200 * time.Millisecond,
		MinFailureRate: 0.05,
		MaxFailureRate: 0.10,
	}
}

// RandomWritePolicy sleeps a random latency, then fails with a probability that is
// itself re-drawn on every call.
type RandomWritePolicy struct {
	cfg WritePolicyConfig

	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomWritePolicy uses rng when given, otherwise a time-seeded source.
func NewRandomWritePolicy(cfg WritePolicyConfig, rng *rand.Rand) *RandomWritePolicy {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &RandomWritePolicy{cfg: cfg, rng: rng}
}

func (p *RandomWritePolicy) draw() (time.Duration, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	delay := p.cfg.MinDelay
	if span := p.cfg.MaxDelay - p.cfg.MinDelay; span > 0 {
		delay += time.Duration(p.rng.Int63n(int64(span)))
	}
	rate := p.cfg.MinFailureRate
	if span := p.cfg.MaxFailureRate - p.cfg.MinFailureRate; span > 0 {
		rate += p.rng.Float64() * span
	}
	return delay, p.rng.Float64() < rate
}

func (p *RandomWritePolicy) Apply(ctx context.Context) error {
	delay, fail := p.draw()
	if delay > 0 {
		timer := time.NewTimer(delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	} else if err := ctx.Err(); err != nil {
		return err
	}
	if fail {
		return ErrSimulatedFailure
	}
	return nil
}

// NoopWritePolicy lets every write through immediately.
type NoopWritePolicy struct{}

func (NoopWritePolicy) Apply(ctx context.Context) error {
	return ctx.Err()
}

// WriteGate applies the policy to writes and records their outcome.
type WriteGate struct {
	policy  WritePolicy
	metrics *metrics.Metrics
	logger  *zap.Logger
}

func NewWriteGate(policy WritePolicy, m *metrics.Metrics, logger *zap.Logger) *WriteGate {
	if policy == nil {
		policy = NoopWritePolicy{}
	}
	if m == nil {
		m = metrics.NewMetrics()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WriteGate{policy: policy, metrics: m, logger: logger}
}

// perform runs fn only after the policy lets the write through.
func perform[T any](ctx context.Context, gate *WriteGate, op string, fn func() (T, error)) (T, error) {
	var zero T
	if gate == nil {
		gate = NewWriteGate(nil, nil, nil)
	}
	gate.metrics.IncrementWriteAttempt()
	if err := gate.policy.Apply(ctx); err != nil {
		switch {
		case errors.Is(err, ErrSimulatedFailure):
			gate.metrics.IncrementInjectedFailure()
			gate.logger.Warn("simulated write failure", zap.String("op", op))
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			gate.metrics.IncrementWriteCancelled()
			gate.logger.Info("write cancelled", zap.String("op", op), zap.Error(err))
		}
		return zero, err
	}
	result, err := fn()
	if err != nil {
		return zero, err
	}
	gate.metrics.IncrementWriteSucceeded()
	return result, nil
}
