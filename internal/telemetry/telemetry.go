// Package telemetry tracks per-tick timing and rule-firing counters for
// the strategy runner, the supplemented replacement for the
// `reporter.py`/`debug_report.py` instrumentation the distilled spec
// dropped (see SPEC_FULL.md "Supplemented features").
package telemetry

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// Snapshot is a point-in-time read of the counters Telemetry has
// accumulated, safe to log or serve over an inspection endpoint.
type Snapshot struct {
	TickCount           uint64
	AverageTickDuration  time.Duration
	MaxTickDuration      time.Duration
	RuleFirings          map[string]uint64
	LastCommandCounter   uint64
}

// Telemetry accumulates per-tick duration and rule-firing counts across
// the life of a strategy runner. Safe for concurrent use.
type Telemetry struct {
	mu sync.Mutex

	tickCount         uint64
	totalTickDuration time.Duration
	maxTickDuration   time.Duration
	ruleFirings       map[string]uint64
	lastCounter       uint64

	logger *zap.SugaredLogger
}

// New constructs a Telemetry that logs slow-tick warnings via logger.
func New(logger *zap.SugaredLogger) *Telemetry {
	return &Telemetry{ruleFirings: map[string]uint64{}, logger: logger}
}

// RecordTick accounts for one control-loop iteration's wall time,
// warning if it exceeds the 60 Hz budget (spec.md §4.5 "Log per-tick
// duration").
func (t *Telemetry) RecordTick(d time.Duration) {
	const tickBudget = time.Second / 60

	t.mu.Lock()
	t.tickCount++
	t.totalTickDuration += d
	if d > t.maxTickDuration {
		t.maxTickDuration = d
	}
	t.mu.Unlock()

	if d > tickBudget {
		t.logger.Warnw("tick exceeded 60 Hz budget", "duration", d, "budget", tickBudget)
	}
}

// RecordRuleFiring increments the firing counter for ruleName.
func (t *Telemetry) RecordRuleFiring(ruleName string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.ruleFirings[ruleName]++
}

// RecordCommandCounter records the referee's latest command_counter,
// warning if it ever regresses (spec.md §8: "command_counter is
// monotone non-decreasing").
func (t *Telemetry) RecordCommandCounter(counter uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if counter < t.lastCounter {
		t.logger.Warnw("command_counter regressed", "previous", t.lastCounter, "got", counter)
	}
	t.lastCounter = counter
}

// Snapshot returns a copy of the accumulated counters.
func (t *Telemetry) Snapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()

	firings := make(map[string]uint64, len(t.ruleFirings))
	for k, v := range t.ruleFirings {
		firings[k] = v
	}

	var avg time.Duration
	if t.tickCount > 0 {
		avg = t.totalTickDuration / time.Duration(t.tickCount)
	}

	return Snapshot{
		TickCount:          t.tickCount,
		AverageTickDuration: avg,
		MaxTickDuration:     t.maxTickDuration,
		RuleFirings:         firings,
		LastCommandCounter:  t.lastCounter,
	}
}
