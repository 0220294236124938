package engine

import (
	"cmp"
	"errors"
	"fmt"
	"slices"

	"github.com/Carmen-Shannon/oxy-portal/common"
	"github.com/Carmen-Shannon/oxy-portal/engine/camera"
	"github.com/Carmen-Shannon/oxy-portal/engine/config"
	"github.com/Carmen-Shannon/oxy-portal/engine/portal"
	"github.com/Carmen-Shannon/oxy-portal/engine/portal_camera"
	"github.com/Carmen-Shannon/oxy-portal/engine/profiler"
	"github.com/Carmen-Shannon/oxy-portal/engine/render_target"
	"github.com/Carmen-Shannon/oxy-portal/engine/renderer"
	"github.com/Carmen-Shannon/oxy-portal/engine/scene"
	"github.com/Carmen-Shannon/oxy-portal/engine/stereo"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/google/uuid"
)

// ErrClosed is returned by operations on an engine after Close.
var ErrClosed = errors.New("engine closed")

// agentKey identifies the portal camera serving one parent camera through one portal.
type agentKey struct {
	portal portal.Handle
	parent uuid.UUID
}

func compareAgentKeys(a, b agentKey) int {
	if c := cmp.Compare(a.portal, b.portal); c != 0 {
		return c
	}
	return slices.Compare(a.parent[:], b.parent[:])
}

// engine implements the Engine interface.
// Owns the portal table, the portal cameras and the frame lifecycle.
type engine struct {
	cfg         config.Config
	table       portal.Table
	registry    portal_camera.Registry
	pool        render_target.Pool
	ownsPool    bool
	renderer    renderer.SceneRenderer
	source      stereo.TrackedPoseSource
	copier      scene.AmbientCopier
	colorFormat wgpu.TextureFormat

	profiler         *profiler.Profiler
	profilingEnabled bool

	agents    map[agentKey]portal_camera.PortalCamera
	requested map[agentKey]bool
	frame     profiler.FrameStats
	closed    bool
}

// FrameReport summarises one frame, returned by EndFrame.
type FrameReport struct {
	profiler.FrameStats

	// Err joins the release errors of portal cameras destroyed this frame.
	Err error
}

// Engine is the rendering context of the portal core.
// It replaces any process-wide state: every portal, portal camera and render target lives in
// exactly one Engine. An Engine is single-threaded; renderers may call back into it from
// RenderSceneFrom to render nested portals.
type Engine interface {
	// Config returns the configuration the engine was built with.
	//
	// Returns:
	//   - config.Config: the configuration
	Config() config.Config

	// Table returns the portal table.
	//
	// Returns:
	//   - portal.Table: the table owning every portal
	Table() portal.Table

	// Registry returns the portal camera registry.
	//
	// Returns:
	//   - portal_camera.Registry: the registry
	Registry() portal_camera.Registry

	// Pool returns the render target pool.
	//
	// Returns:
	//   - render_target.Pool: the pool
	Pool() render_target.Pool

	// EnableProfiler enables the per-interval portal summary in the log.
	EnableProfiler()

	// DisableProfiler disables the portal summary.
	DisableProfiler()

	// CreatePortalPair creates two portals and links them. Both get the configured clipping
	// offset unless their options set one.
	//
	// Parameters:
	//   - a: options for the first portal
	//   - b: options for the second portal
	//
	// Returns:
	//   - portal.Portal: the first portal
	//   - portal.Portal: the second portal
	//   - error: ErrClosed, or the link error; neither portal is kept on failure
	CreatePortalPair(a, b []portal.PortalBuilderOption) (portal.Portal, portal.Portal, error)

	// PortalCamera finds the portal camera rendering portal h for parent, spawning it if needed.
	//
	// Parameters:
	//   - h: the entry portal
	//   - parent: the camera looking at the portal
	//
	// Returns:
	//   - portal_camera.PortalCamera: the portal camera
	//   - error: ErrClosed, or an error wrapping portal.ErrUnknownPortal
	PortalCamera(h portal.Handle, parent camera.Camera) (portal_camera.PortalCamera, error)

	// RenderPortal renders the view through portal h for one eye of parent.
	//
	// Parameters:
	//   - h: the entry portal
	//   - parent: the camera looking at the portal
	//   - eye: the eye to render
	//
	// Returns:
	//   - render_target.RenderTarget: the rendered view
	//   - error: any error from spawning or rendering
	RenderPortal(h portal.Handle, parent camera.Camera, eye stereo.Eye) (render_target.RenderTarget, error)

	// Current returns the innermost portal camera whose render is in progress.
	//
	// Returns:
	//   - portal_camera.PortalCamera: the rendering portal camera, or nil
	//   - bool: false if no portal render is in progress
	Current() (portal_camera.PortalCamera, bool)

	// EndFrame ticks every portal camera, tears down the ones left unused and resets the
	// per-frame counters.
	//
	// Returns:
	//   - FrameReport: what the frame did
	EndFrame() FrameReport

	// Close destroys every portal camera and, if the engine created it, closes the pool.
	// Safe to call multiple times; subsequent calls are no-ops.
	//
	// Returns:
	//   - error: joined release errors
	Close() error
}

var _ Engine = &engine{}

// NewEngine creates a new Engine instance with the provided options.
// Without options it uses the default configuration, a memory-backed pool and a no-op renderer.
//
// Parameters:
//   - options: functional options for engine configuration
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		cfg:         config.Default(),
		table:       portal.NewTable(),
		registry:    portal_camera.NewRegistry(),
		renderer:    renderer.Nop(),
		copier:      scene.NewAmbientCopier(),
		colorFormat: render_target.DefaultColorFormat,
		agents:      make(map[agentKey]portal_camera.PortalCamera),
		requested:   make(map[agentKey]bool),
	}

	for _, opt := range options {
		opt(e)
	}

	if e.pool == nil {
		e.pool = render_target.NewPool(render_target.WithCapacity(e.cfg.MaxRenderTargets))
		e.ownsPool = true
	}
	if e.profiler == nil {
		e.profiler = profiler.NewProfiler(profiler.WithPool(e.pool))
	}
	return e
}

func (e *engine) Config() config.Config {
	return e.cfg
}

func (e *engine) Table() portal.Table {
	return e.table
}

func (e *engine) Registry() portal_camera.Registry {
	return e.registry
}

func (e *engine) Pool() render_target.Pool {
	return e.pool
}

// EnableProfiler enables performance profiling output to the log.
func (e *engine) EnableProfiler() {
	e.profilingEnabled = true
}

// DisableProfiler disables performance profiling output.
func (e *engine) DisableProfiler() {
	e.profilingEnabled = false
}

func (e *engine) CreatePortalPair(a, b []portal.PortalBuilderOption) (portal.Portal, portal.Portal, error) {
	if e.closed {
		return nil, nil, ErrClosed
	}
	base := portal.WithClippingOffset(e.cfg.ClippingOffset)
	pa := e.table.Create(append([]portal.PortalBuilderOption{base}, a...)...)
	pb := e.table.Create(append([]portal.PortalBuilderOption{base}, b...)...)
	if err := e.table.Link(pa.Handle(), pb.Handle()); err != nil {
		err = errors.Join(err, e.table.Remove(pa.Handle()), e.table.Remove(pb.Handle()))
		return nil, nil, fmt.Errorf("create portal pair: %w", err)
	}
	return pa, pb, nil
}

func (e *engine) PortalCamera(h portal.Handle, parent camera.Camera) (portal_camera.PortalCamera, error) {
	if e.closed {
		return nil, ErrClosed
	}
	if parent == nil {
		return nil, errors.New("portal camera: nil parent camera")
	}
	key := agentKey{portal: h, parent: parent.ID()}
	if pc, ok := e.agents[key]; ok && !pc.Destroyed() {
		return pc, nil
	}

	pc, err := portal_camera.NewPortalCamera(
		portal_camera.WithTable(e.table),
		portal_camera.WithPortal(h),
		portal_camera.WithParent(parent),
		portal_camera.WithRegistry(e.registry),
		portal_camera.WithPool(e.pool),
		portal_camera.WithRenderer(e.renderer),
		portal_camera.WithTrackedPoseSource(e.source),
		portal_camera.WithAmbientCopier(e.copier),
		portal_camera.WithConfig(e.cfg),
		portal_camera.WithColorFormat(e.colorFormat),
	)
	if err != nil {
		return nil, err
	}
	e.agents[key] = pc
	e.frame.Spawned++
	return pc, nil
}

func (e *engine) RenderPortal(h portal.Handle, parent camera.Camera, eye stereo.Eye) (render_target.RenderTarget, error) {
	pc, err := e.PortalCamera(h, parent)
	if err != nil {
		return nil, err
	}
	e.requested[agentKey{portal: h, parent: parent.ID()}] = true
	e.frame.MaxDepth = max(e.frame.MaxDepth, e.registry.Depth()+1)

	rt, err := pc.RenderToTexture(eye)
	if err != nil {
		e.frame.Failures++
		return nil, err
	}
	e.frame.Renders++
	return rt, nil
}

func (e *engine) Current() (portal_camera.PortalCamera, bool) {
	return e.registry.Current()
}

func (e *engine) EndFrame() FrameReport {
	var errs []error

	keys := make([]agentKey, 0, len(e.agents))
	for k := range e.agents {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, compareAgentKeys)

	for _, k := range keys {
		pc := e.agents[k]
		if pc.Destroyed() {
			delete(e.agents, k)
			continue
		}

		_, live := e.table.Get(k.portal)
		if live {
			changed, err := pc.SyncLink()
			if changed {
				e.frame.Relinked++
			}
			if err != nil {
				errs = append(errs, err)
			}
		}

		if !live || pc.Tick(e.requested[k]) == portal_camera.TeardownDestroy {
			if err := pc.Destroy(); err != nil {
				errs = append(errs, fmt.Errorf("destroy portal %d camera: %w", k.portal, err))
			}
			delete(e.agents, k)
			e.frame.Destroyed++
		}
	}
	clear(e.requested)

	e.frame.Agents = len(e.agents)
	report := FrameReport{FrameStats: e.frame, Err: errors.Join(errs...)}
	if report.Err != nil {
		common.Logger().Warn("portal teardown errors", "err", report.Err)
	}
	if e.profilingEnabled && e.profiler != nil {
		e.profiler.Tick(e.frame)
	}
	e.frame = profiler.FrameStats{}
	return report
}

func (e *engine) Close() error {
	if e.closed {
		return nil
	}
	e.closed = true

	var errs []error
	for k, pc := range e.agents {
		if err := pc.Destroy(); err != nil {
			errs = append(errs, fmt.Errorf("destroy portal %d camera: %w", k.portal, err))
		}
	}
	clear(e.agents)
	clear(e.requested)

	if e.ownsPool {
		if err := e.pool.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
