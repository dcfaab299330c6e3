package resilience

import (
	"errors"
	"testing"
	"time"
)

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time          { return c.now }
func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestBreaker(cfg CircuitBreakerConfig) (*CircuitBreaker, *fakeClock) {
	clock := &fakeClock{now: time.Date(2026, 8, 22, 15, 0, 0, 0, time.UTC)}
	cfg.Enabled = true
	b := NewCircuitBreaker(cfg)
	b.clock = clock.Now
	return b, clock
}

func TestCircuitBreaker_TripsAndRecovers(t *testing.T) {
	t.Parallel()

	b, clock := newTestBreaker(CircuitBreakerConfig{FailureThreshold: 2, OpenTimeout: 5 * time.Second, HalfOpenMaxReq: 1})

	if err := b.Allow(); err != nil {
		t.Fatalf("closed breaker rejected call: %v", err)
	}
	b.Record(true)
	if got := b.State(); got != CircuitStateClosed {
		t.Fatalf("expected closed after one failure, got %s", got)
	}

	b.Record(true)
	if got := b.State(); got != CircuitStateOpen {
		t.Fatalf("expected open after threshold, got %s", got)
	}
	if err := b.Allow(); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected ErrCircuitOpen, got %v", err)
	}

	clock.Advance(5 * time.Second)
	if got := b.State(); got != CircuitStateHalfOpen {
		t.Fatalf("expected half open after timeout, got %s", got)
	}
	if err := b.Allow(); err != nil {
		t.Fatalf("expected probe to pass, got %v", err)
	}
	b.Record(false)
	if got := b.State(); got != CircuitStateClosed {
		t.Fatalf("expected closed after good probe, got %s", got)
	}
}

func TestCircuitBreaker_FailedProbeReopens(t *testing.T) {
	t.Parallel()

	b, clock := newTestBreaker(CircuitBreakerConfig{FailureThreshold: 1, OpenTimeout: time.Second, HalfOpenMaxReq: 1})

	b.Record(true)
	clock.Advance(2 * time.Second)

	if err := b.Allow(); err != nil {
		t.Fatalf("expected first probe, got %v", err)
	}
	if err := b.Allow(); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected second probe rejected, got %v", err)
	}

	b.Record(true)
	if got := b.State(); got != CircuitStateOpen {
		t.Fatalf("expected open after failed probe, got %s", got)
	}
}

func TestCircuitBreaker_SuccessResetsFailureCount(t *testing.T) {
	t.Parallel()

	b, _ := newTestBreaker(CircuitBreakerConfig{FailureThreshold: 2})

	b.Record(true)
	b.Record(false)
	b.Record(true)
	if got := b.State(); got != CircuitStateClosed {
		t.Fatalf("expected non-consecutive failures to keep breaker closed, got %s", got)
	}
}

func TestCircuitBreaker_DisabledIsNil(t *testing.T) {
	t.Parallel()

	b := NewCircuitBreaker(CircuitBreakerConfig{})
	if b != nil {
		t.Fatalf("expected nil breaker when disabled")
	}
	b.Record(true)
	if err := b.Allow(); err != nil {
		t.Fatalf("nil breaker rejected call: %v", err)
	}
	if got := b.State(); got != CircuitStateClosed {
		t.Fatalf("expected nil breaker to report closed, got %s", got)
	}
}

func TestCircuitBreakerConfig_Defaults(t *testing.T) {
	t.Parallel()

	got := CircuitBreakerConfig{Enabled: true, FailureThreshold: -3}.withDefaults()
	want := DefaultCircuitBreakerConfig()
	if got != want {
		t.Fatalf("expected defaults %+v, got %+v", want, got)
	}
}
