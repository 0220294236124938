package profiler

import (
	"runtime"
	"time"

	"github.com/Carmen-Shannon/oxy-portal/common"
	"github.com/Carmen-Shannon/oxy-portal/engine/render_target"
)

// FrameStats is what one frame of portal rendering did.
type FrameStats struct {
	Renders   int // successful portal renders
	Failures  int // portal renders that returned an error
	Spawned   int // portal cameras created
	Destroyed int // portal cameras torn down
	Relinked  int // portal cameras whose link changed
	Agents    int // portal cameras alive at the end of the frame
	MaxDepth  int // deepest portal recursion seen
}

// Summary aggregates FrameStats over one logging interval.
type Summary struct {
	Frames    int
	FPS       float64
	Renders   int
	Failures  int
	Spawned   int
	Destroyed int
	Relinked  int
	Agents    int
	MaxDepth  int
	Pool      render_target.Stats
	HeapMB    float64
	GCCount   uint32
}

// Profiler tracks portal rendering and memory statistics.
// Outputs a summary to the logger at a configurable interval.
type Profiler struct {
	clock          func() time.Time
	updateInterval time.Duration
	lastTime       time.Time
	pool           render_target.Pool

	current  Summary
	last     Summary
	memStats runtime.MemStats
}

// NewProfiler creates a new Profiler.
// Update interval defaults to 1 second and the clock to time.Now.
//
// Parameters:
//   - options: functional options to configure the profiler
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler(options ...ProfilerBuilderOption) *Profiler {
	p := &Profiler{
		clock:          time.Now,
		updateInterval: time.Second,
	}
	for _, option := range options {
		option(p)
	}
	p.lastTime = p.clock()
	return p
}

// Tick should be called once per frame with that frame's portal statistics.
// Logs a summary when the update interval has elapsed.
//
// Parameters:
//   - frame: the statistics of the frame that just ended
//
// Returns:
//   - bool: true if a summary was logged this tick, false otherwise
func (p *Profiler) Tick(frame FrameStats) bool {
	c := &p.current
	c.Frames++
	c.Renders += frame.Renders
	c.Failures += frame.Failures
	c.Spawned += frame.Spawned
	c.Destroyed += frame.Destroyed
	c.Relinked += frame.Relinked
	c.Agents = frame.Agents
	c.MaxDepth = max(c.MaxDepth, frame.MaxDepth)

	now := p.clock()
	elapsed := now.Sub(p.lastTime)
	if elapsed < p.updateInterval {
		return false
	}

	if elapsed > 0 {
		c.FPS = float64(c.Frames) / elapsed.Seconds()
	}
	if p.pool != nil {
		c.Pool = p.pool.Stats()
	}
	runtime.ReadMemStats(&p.memStats)
	c.HeapMB = float64(p.memStats.Alloc) / 1024 / 1024
	c.GCCount = p.memStats.NumGC

	common.Logger().Info("portal profiler",
		"fps", c.FPS,
		"renders", c.Renders,
		"failures", c.Failures,
		"spawned", c.Spawned,
		"destroyed", c.Destroyed,
		"relinked", c.Relinked,
		"agents", c.Agents,
		"max_depth", c.MaxDepth,
		"targets_live", c.Pool.Live,
		"targets_idle", c.Pool.Idle,
		"heap_mb", c.HeapMB,
		"gc", c.GCCount,
	)

	p.last = *c
	p.current = Summary{}
	p.lastTime = now
	return true
}

// Last returns the most recently logged summary.
//
// Returns:
//   - Summary: the last interval's summary, zero before the first one
func (p *Profiler) Last() Summary {
	return p.last
}
