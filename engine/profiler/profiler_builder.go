package profiler

import (
	"time"

	"github.com/Carmen-Shannon/oxy-portal/engine/render_target"
)

// ProfilerBuilderOption is a functional option for configuring a Profiler.
type ProfilerBuilderOption func(*Profiler)

// WithInterval sets how often a summary is logged. Values <= 0 log every tick.
//
// Parameters:
//   - d: the update interval
//
// Returns:
//   - ProfilerBuilderOption: option function to apply
func WithInterval(d time.Duration) ProfilerBuilderOption {
	return func(p *Profiler) {
		p.updateInterval = max(d, 0)
	}
}

// WithClock replaces time.Now, for tests and fixed-step simulations.
//
// Parameters:
//   - clock: returns the current time
//
// Returns:
//   - ProfilerBuilderOption: option function to apply
func WithClock(clock func() time.Time) ProfilerBuilderOption {
	return func(p *Profiler) {
		if clock != nil {
			p.clock = clock
		}
	}
}

// WithPool sets the render target pool whose counters are included in each summary.
//
// Parameters:
//   - pool: the pool to report on
//
// Returns:
//   - ProfilerBuilderOption: option function to apply
func WithPool(pool render_target.Pool) ProfilerBuilderOption {
	return func(p *Profiler) {
		p.pool = pool
	}
}
