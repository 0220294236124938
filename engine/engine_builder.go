package engine

import (
	"github.com/Carmen-Shannon/oxy-portal/engine/config"
	"github.com/Carmen-Shannon/oxy-portal/engine/profiler"
	"github.com/Carmen-Shannon/oxy-portal/engine/render_target"
	"github.com/Carmen-Shannon/oxy-portal/engine/renderer"
	"github.com/Carmen-Shannon/oxy-portal/engine/scene"
	"github.com/Carmen-Shannon/oxy-portal/engine/stereo"
	"github.com/cogentcore/webgpu/wgpu"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithProfiling enables or disables the per-interval portal summary.
//
// Parameters:
//   - enabled: if true, enables performance profiling
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled = enabled
	}
}

// WithProfiler sets a custom profiler, for example one with a fixed clock.
//
// Parameters:
//   - p: the profiler
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiler(p *profiler.Profiler) EngineBuilderOption {
	return func(e *engine) {
		e.profiler = p
	}
}

// WithConfig sets the feature switches, clipping offset and target limits.
//
// Parameters:
//   - cfg: the configuration
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithConfig(cfg config.Config) EngineBuilderOption {
	return func(e *engine) {
		e.cfg = cfg
	}
}

// WithRenderer sets the renderer portal views are drawn with.
//
// Parameters:
//   - r: the scene renderer
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithRenderer(r renderer.SceneRenderer) EngineBuilderOption {
	return func(e *engine) {
		if r != nil {
			e.renderer = r
		}
	}
}

// WithRenderTargetPool sets a pool the engine does not own.
// Close leaves it open.
//
// Parameters:
//   - pool: the render target pool
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithRenderTargetPool(pool render_target.Pool) EngineBuilderOption {
	return func(e *engine) {
		e.pool = pool
	}
}

// WithTrackedPoseSource sets the per-eye pose source for stereo cameras.
//
// Parameters:
//   - source: the tracked pose source
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithTrackedPoseSource(source stereo.TrackedPoseSource) EngineBuilderOption {
	return func(e *engine) {
		e.source = source
	}
}

// WithAmbientCopier sets the hook that propagates exit scene lighting.
//
// Parameters:
//   - copier: the ambient copier
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithAmbientCopier(copier scene.AmbientCopier) EngineBuilderOption {
	return func(e *engine) {
		if copier != nil {
			e.copier = copier
		}
	}
}

// WithColorFormat sets the colour format of portal render targets.
//
// Parameters:
//   - format: the texture format
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithColorFormat(format wgpu.TextureFormat) EngineBuilderOption {
	return func(e *engine) {
		e.colorFormat = format
	}
}
