package portal_camera

import (
	"errors"
	"fmt"

	"github.com/Carmen-Shannon/oxy-portal/common"
	"github.com/Carmen-Shannon/oxy-portal/engine/camera"
	"github.com/Carmen-Shannon/oxy-portal/engine/config"
	"github.com/Carmen-Shannon/oxy-portal/engine/portal"
	"github.com/Carmen-Shannon/oxy-portal/engine/render_target"
	"github.com/Carmen-Shannon/oxy-portal/engine/renderer"
	"github.com/Carmen-Shannon/oxy-portal/engine/scene"
	"github.com/Carmen-Shannon/oxy-portal/engine/stereo"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
)

// TeardownDecision is the outcome of a per-frame Tick.
type TeardownDecision int

const (
	// TeardownKeep means the portal camera was used recently and stays alive.
	TeardownKeep TeardownDecision = iota
	// TeardownDestroy means the portal camera went a full frame unused and should be destroyed.
	TeardownDestroy
)

func (d TeardownDecision) String() string {
	if d == TeardownDestroy {
		return "destroy"
	}
	return "keep"
}

// FrustumGizmo holds the corners of the culling and view-projection frusta of the last render,
// near corners first, for debug drawing.
type FrustumGizmo struct {
	Culling        [8]mgl64.Vec3
	ViewProjection [8]mgl64.Vec3
}

type portalCameraImpl struct {
	table    portal.Table
	handle   portal.Handle
	registry Registry
	pool     render_target.Pool
	renderer renderer.SceneRenderer
	source   stereo.TrackedPoseSource
	copier   scene.AmbientCopier
	cfg      config.Config

	camera      camera.Camera
	parent      camera.Camera
	colorFormat wgpu.TextureFormat

	enterScene scene.Scene
	exitScene  scene.Scene
	lighting   scene.Scene
	crossScene bool

	generation         uint64
	framesSinceLastUse int
	renderDepth        int
	frame              FrameData
	matrices           MatrixSet
	inFlight           render_target.RenderTarget
	destroyed          bool
}

// PortalCamera renders the view through one portal on behalf of one parent camera. It owns a
// driven camera that it teleports to the exit side of the portal, the matrices it derives there
// and a per-eye cache of the textures it renders.
//
// A PortalCamera is not safe for concurrent use.
type PortalCamera interface {
	// ID returns the id of the driven camera, which is the portal camera's registry key.
	//
	// Returns:
	//   - uuid.UUID: the driven camera id
	ID() uuid.UUID

	// Camera returns the driven camera.
	//
	// Returns:
	//   - camera.Camera: the driven camera
	Camera() camera.Camera

	// Parent returns the camera this portal camera mirrors.
	//
	// Returns:
	//   - camera.Camera: the parent camera
	Parent() camera.Camera

	// Portal returns the handle of the entry portal this camera renders for.
	//
	// Returns:
	//   - portal.Handle: the entry portal
	Portal() portal.Handle

	// EnterScene returns the scene the entry portal lives in.
	//
	// Returns:
	//   - scene.Scene: the enter scene, may be nil
	EnterScene() scene.Scene

	// SetEnterScene sets the scene the entry portal lives in.
	//
	// Parameters:
	//   - s: the enter scene
	SetEnterScene(s scene.Scene)

	// ExitScene returns the scene visible through the portal.
	//
	// Returns:
	//   - scene.Scene: the exit scene, may be nil
	ExitScene() scene.Scene

	// SetExitScene sets the scene visible through the portal. When it differs from the enter
	// scene its ambient settings are copied once into the portal camera's lighting snapshot.
	//
	// Parameters:
	//   - s: the exit scene
	SetExitScene(s scene.Scene)

	// Ambient returns the ambient settings renders are issued with.
	//
	// Returns:
	//   - scene.AmbientSettings: the lighting used for renders
	Ambient() scene.AmbientSettings

	// RenderDepth returns the number of portal renders that were in progress when this camera
	// last started rendering.
	//
	// Returns:
	//   - int: the recursion depth of the last render
	RenderDepth() int

	// FramesSinceLastUse returns the recency counter.
	//
	// Returns:
	//   - int: ticks since the last render request
	FramesSinceLastUse() int

	// FrameData returns a copy of the per-eye render cache.
	//
	// Returns:
	//   - FrameData: the cached frames
	FrameData() FrameData

	// Matrices returns the matrices chosen by the last render.
	//
	// Returns:
	//   - MatrixSet: the last projection and culling results
	Matrices() MatrixSet

	// RenderToTexture renders the view through the portal for one eye of the parent camera and
	// caches the result.
	//
	// Parameters:
	//   - eye: the eye to render; unknown values render Mono
	//
	// Returns:
	//   - render_target.RenderTarget: the target holding the rendered view
	//   - error: ErrDestroyed, a wrapped render_target.ErrResourceExhausted, or the renderer's error
	RenderToTexture(eye stereo.Eye) (render_target.RenderTarget, error)

	// Tick advances the recency counter once per frame.
	//
	// Parameters:
	//   - requestedThisFrame: true if the camera was asked to render this frame
	//
	// Returns:
	//   - TeardownDecision: TeardownDestroy once the camera has gone a full frame unused
	Tick(requestedThisFrame bool) TeardownDecision

	// LinkGeneration returns the entry portal link generation the cached frames belong to.
	//
	// Returns:
	//   - uint64: the link generation
	LinkGeneration() uint64

	// SyncLink drops the cache and re-reads the exit scene if the entry portal was relinked.
	//
	// Returns:
	//   - bool: true if the link had changed
	//   - error: release errors from dropping the cache
	SyncLink() (bool, error)

	// Gizmo returns the frustum corners of the last render's matrices.
	//
	// Returns:
	//   - FrustumGizmo: the culling and view-projection corners
	//   - error: common.ErrDegenerateGeometry if a frustum has no corners
	Gizmo() (FrustumGizmo, error)

	// Destroy releases every target the camera holds and removes it from the registry. It is
	// safe to call more than once and from inside the camera's own render.
	//
	// Returns:
	//   - error: joined release errors
	Destroy() error

	// Destroyed reports whether Destroy has been called.
	//
	// Returns:
	//   - bool: true after Destroy
	Destroyed() bool
}

var _ PortalCamera = &portalCameraImpl{}

// NewPortalCamera creates a portal camera for the portal and parent camera given by the options,
// and registers it under its driven camera's id. WithTable, WithPortal and WithParent are
// required.
//
// Parameters:
//   - options: functional options to configure the portal camera
//
// Returns:
//   - PortalCamera: the new portal camera
//   - error: error if a required option is missing or the portal is unknown
func NewPortalCamera(options ...PortalCameraBuilderOption) (PortalCamera, error) {
	pc := &portalCameraImpl{
		pool:        render_target.NewPool(),
		renderer:    renderer.Nop(),
		copier:      scene.NewAmbientCopier(),
		cfg:         config.Default(),
		colorFormat: render_target.DefaultColorFormat,
		lighting:    scene.NewScene(scene.WithName("portal lighting")),
	}
	for _, option := range options {
		option(pc)
	}

	if pc.table == nil {
		return nil, errors.New("portal camera: no portal table")
	}
	if pc.parent == nil {
		return nil, errors.New("portal camera: no parent camera")
	}
	entry, ok := pc.table.Get(pc.handle)
	if !ok {
		return nil, fmt.Errorf("portal camera: portal %d: %w", pc.handle, portal.ErrUnknownPortal)
	}
	if pc.registry == nil {
		pc.registry = NewRegistry()
	}
	if pc.camera == nil {
		pc.camera = camera.NewCamera(camera.WithName(fmt.Sprintf("portal %d camera", pc.handle)))
	}

	pc.generation = entry.Generation()
	if pc.enterScene == nil {
		pc.enterScene = entry.Scene()
	}
	if exit, ok := pc.table.Exit(pc.handle); ok {
		pc.SetExitScene(exit.Scene())
	}

	pc.registry.Register(pc.camera.ID(), pc)
	common.Logger().Info("portal camera spawned", "portal", pc.handle, "camera", pc.camera.ID(), "parent", pc.parent.ID())
	return pc, nil
}

func (pc *portalCameraImpl) ID() uuid.UUID {
	return pc.camera.ID()
}

func (pc *portalCameraImpl) Camera() camera.Camera {
	return pc.camera
}

func (pc *portalCameraImpl) Parent() camera.Camera {
	return pc.parent
}

func (pc *portalCameraImpl) Portal() portal.Handle {
	return pc.handle
}

func (pc *portalCameraImpl) EnterScene() scene.Scene {
	return pc.enterScene
}

func (pc *portalCameraImpl) SetEnterScene(s scene.Scene) {
	pc.enterScene = s
}

func (pc *portalCameraImpl) ExitScene() scene.Scene {
	return pc.exitScene
}

func (pc *portalCameraImpl) SetExitScene(s scene.Scene) {
	pc.exitScene = s
	pc.crossScene = s != nil && !scene.Same(s, pc.enterScene)
	if pc.crossScene {
		pc.copier.CopyAmbientSettings(s, pc.lighting)
	}
}

func (pc *portalCameraImpl) Ambient() scene.AmbientSettings {
	switch {
	case pc.crossScene:
		return pc.lighting.Ambient()
	case pc.enterScene != nil:
		return pc.enterScene.Ambient()
	default:
		return scene.DefaultAmbientSettings()
	}
}

func (pc *portalCameraImpl) RenderDepth() int {
	return pc.renderDepth
}

func (pc *portalCameraImpl) FramesSinceLastUse() int {
	return pc.framesSinceLastUse
}

func (pc *portalCameraImpl) FrameData() FrameData {
	return pc.frame
}

func (pc *portalCameraImpl) Matrices() MatrixSet {
	return pc.matrices
}

func (pc *portalCameraImpl) LinkGeneration() uint64 {
	return pc.generation
}

func (pc *portalCameraImpl) Tick(requestedThisFrame bool) TeardownDecision {
	if requestedThisFrame {
		pc.framesSinceLastUse = 0
	}
	if pc.framesSinceLastUse > 0 {
		return TeardownDestroy
	}
	pc.framesSinceLastUse++
	return TeardownKeep
}

func (pc *portalCameraImpl) SyncLink() (bool, error) {
	gen := pc.table.Generation(pc.handle)
	if gen == pc.generation {
		return false, nil
	}
	pc.generation = gen
	err := pc.frame.clear(pc.pool)

	var exitScene scene.Scene
	if exit, ok := pc.table.Exit(pc.handle); ok {
		exitScene = exit.Scene()
	}
	pc.SetExitScene(exitScene)
	common.Logger().Info("portal camera relinked", "portal", pc.handle, "generation", gen)
	return true, err
}

func (pc *portalCameraImpl) RenderToTexture(eye stereo.Eye) (render_target.RenderTarget, error) {
	if pc.destroyed {
		return nil, ErrDestroyed
	}
	pc.framesSinceLastUse = 0

	if _, err := pc.SyncLink(); err != nil {
		common.Logger().Warn("releasing stale portal targets", "portal", pc.handle, "err", err)
	}
	entry, ok := pc.table.Get(pc.handle)
	if !ok {
		return nil, fmt.Errorf("render portal %d: %w", pc.handle, portal.ErrUnknownPortal)
	}

	camera.CopySettings(pc.parent, pc.camera)
	state := stereo.Resolve(pc.parent, eye, pc.source)
	pc.camera.SetTargetEye(state.TargetEye)

	pose := state.Pose
	exit, linked := pc.table.Exit(pc.handle)
	if linked {
		pose = portal.TeleportPose(state.Pose, entry, exit)
	} else {
		exit = nil
		common.Logger().Warn("portal has no exit, rendering untransformed", "portal", pc.handle)
	}
	pc.camera.SetPose(pose)

	settings := pc.camera.Settings()
	pc.matrices = BuildMatrices(MatrixInput{
		Pose:        pose,
		Projection:  state.Projection,
		FieldOfView: settings.FieldOfView,
		Far:         settings.Far,
		Entry:       entry,
		Exit:        exit,
		ObliqueClip: pc.cfg.EnableObliqueClip,
		OffAxis:     pc.cfg.EnableOffAxisProjection,
	})
	pc.applyMatrices(state.Eye)

	width, height := pc.parent.PixelSize()
	desc := render_target.Descriptor{
		Width:       width,
		Height:      height,
		DepthBits:   pc.cfg.RenderTargetDepthBits,
		ColorFormat: pc.colorFormat,
	}.Normalized()

	mask := state.TargetEye
	rt, reused := pc.frame.slot(mask).Target, true
	if rt == nil || rt.Descriptor() != desc || !pc.pool.IsLive(rt) {
		var err error
		if rt, err = pc.pool.Acquire(desc); err != nil {
			return nil, fmt.Errorf("render portal %d %s eye: %w", pc.handle, state.Eye, err)
		}
		reused = false
		pc.inFlight = rt
	} else {
		common.Logger().Debug("reusing portal target", "portal", pc.handle, "eye", state.Eye.String(), "target", rt.ID())
	}
	pc.camera.SetTarget(rt)

	pc.renderDepth = pc.registry.Depth()
	req := renderer.RenderRequest{
		Camera:  pc.camera.RenderState(),
		Portal:  pc.handle,
		Scene:   pc.visibleScene(),
		Ambient: pc.Ambient(),
		Depth:   pc.renderDepth,
	}
	pc.registry.push(pc)
	out, err := pc.renderer.RenderSceneFrom(req)
	pc.registry.pop(pc)
	pc.inFlight = nil

	if pc.destroyed {
		if out != nil && out != rt {
			pc.releaseLogged(out)
		}
		return nil, ErrDestroyed
	}

	if err != nil {
		if reused {
			pc.frame.evict(mask)
		}
		pc.releaseLogged(rt)
		pc.camera.SetTarget(nil)
		return nil, fmt.Errorf("render portal %d %s eye: %w", pc.handle, state.Eye, err)
	}

	if out != nil && out != rt {
		if reused {
			pc.frame.evict(mask)
		}
		pc.releaseLogged(rt)
		rt = out
		pc.camera.SetTarget(rt)
	}

	if err := pc.frame.store(mask, EyeFrame{
		Target:        rt,
		Projection:    pc.camera.ProjectionMatrix(),
		WorldToCamera: pc.camera.ViewMatrix(),
	}, pc.pool); err != nil {
		common.Logger().Warn("portal target release failed", "portal", pc.handle, "err", err)
	}
	return rt, nil
}

// applyMatrices installs the derived matrices on the driven camera and logs the chosen variants.
func (pc *portalCameraImpl) applyMatrices(eye stereo.Eye) {
	m := pc.matrices
	pc.camera.SetProjectionMatrix(m.Projection.Matrix)
	pc.camera.SetCullingMatrix(m.Culling.Matrix)

	log := common.Logger()
	log.Debug("portal matrices",
		"portal", pc.handle,
		"eye", eye.String(),
		"projection", m.Projection.Variant.String(),
		"culling", m.Culling.Variant.String(),
	)
	if errors.Is(m.Projection.Err, common.ErrDegenerateGeometry) {
		log.Warn("degenerate portal geometry, using default matrices", "portal", pc.handle)
	}
}

// visibleScene is the scene drawn through the portal: the exit scene when known.
func (pc *portalCameraImpl) visibleScene() scene.Scene {
	if pc.exitScene != nil {
		return pc.exitScene
	}
	return pc.enterScene
}

func (pc *portalCameraImpl) releaseLogged(rt render_target.RenderTarget) {
	if err := pc.pool.Release(rt); err != nil {
		common.Logger().Warn("portal target release failed", "portal", pc.handle, "target", rt.ID(), "err", err)
	}
}

func (pc *portalCameraImpl) Gizmo() (FrustumGizmo, error) {
	var g FrustumGizmo
	var err error
	if g.Culling, err = common.FrustumCorners(common.ExtractFrustumFromMatrix(pc.camera.CullingMatrix())); err != nil {
		return g, fmt.Errorf("culling frustum: %w", err)
	}
	if g.ViewProjection, err = common.FrustumCorners(common.ExtractFrustumFromMatrix(pc.camera.ViewProjectionMatrix())); err != nil {
		return g, fmt.Errorf("view-projection frustum: %w", err)
	}
	return g, nil
}

func (pc *portalCameraImpl) Destroy() error {
	if pc.destroyed {
		return nil
	}
	pc.destroyed = true

	var errs []error
	if pc.inFlight != nil && !pc.frame.holds(pc.inFlight) {
		if err := pc.pool.Release(pc.inFlight); err != nil {
			errs = append(errs, fmt.Errorf("release in-flight target: %w", err))
		}
	}
	pc.inFlight = nil
	if err := pc.frame.clear(pc.pool); err != nil {
		errs = append(errs, err)
	}
	pc.camera.SetTarget(nil)

	if current, ok := pc.registry.Lookup(pc.camera.ID()); ok && current == PortalCamera(pc) {
		pc.registry.Unregister(pc.camera.ID())
	}
	common.Logger().Info("portal camera destroyed", "portal", pc.handle, "camera", pc.camera.ID())
	return errors.Join(errs...)
}

func (pc *portalCameraImpl) Destroyed() bool {
	return pc.destroyed
}
