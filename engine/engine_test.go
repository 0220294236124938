package engine

import (
	"errors"
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-portal/common"
	"github.com/Carmen-Shannon/oxy-portal/engine/camera"
	"github.com/Carmen-Shannon/oxy-portal/engine/config"
	"github.com/Carmen-Shannon/oxy-portal/engine/portal"
	"github.com/Carmen-Shannon/oxy-portal/engine/render_target"
	"github.com/Carmen-Shannon/oxy-portal/engine/renderer"
	"github.com/Carmen-Shannon/oxy-portal/engine/scene"
	"github.com/Carmen-Shannon/oxy-portal/engine/stereo"
	"github.com/go-gl/mathgl/mgl64"
)

func newPlayer() camera.Camera {
	return camera.NewCamera(camera.WithName("player"), camera.WithPose(common.NewPose(
		mgl64.Vec3{0, 0, -5},
		mgl64.QuatRotate(math.Pi, mgl64.Vec3{0, 1, 0}),
	)))
}

func newPair(t *testing.T, e Engine) (portal.Portal, portal.Portal) {
	t.Helper()
	a, b, err := e.CreatePortalPair(
		[]portal.PortalBuilderOption{portal.WithName("a")},
		[]portal.PortalBuilderOption{portal.WithName("b"), portal.WithPosition(mgl64.Vec3{10, 0, 0})},
	)
	if err != nil {
		t.Fatalf("CreatePortalPair: %v", err)
	}
	return a, b
}

func TestCreatePortalPair_LinksWithConfiguredOffset(t *testing.T) {
	e := NewEngine(WithConfig(config.New(config.WithClippingOffset(0.2))))
	t.Cleanup(func() { _ = e.Close() })

	a, b := newPair(t, e)
	if exit, ok := e.Table().Exit(a.Handle()); !ok || exit.Handle() != b.Handle() {
		t.Errorf("exit of a = %v, %v; want b", exit, ok)
	}
	if a.ClippingOffset() != 0.2 || b.ClippingOffset() != 0.2 {
		t.Errorf("offsets = %g/%g, want 0.2", a.ClippingOffset(), b.ClippingOffset())
	}

	c, _, err := e.CreatePortalPair(
		[]portal.PortalBuilderOption{portal.WithClippingOffset(0.5)},
		nil,
	)
	if err != nil {
		t.Fatalf("CreatePortalPair: %v", err)
	}
	if c.ClippingOffset() != 0.5 {
		t.Errorf("explicit offset = %g, want 0.5", c.ClippingOffset())
	}
}

// failingLinkTable refuses every link.
type failingLinkTable struct {
	portal.Table
}

func (failingLinkTable) Link(a, b portal.Handle) error {
	return portal.ErrAlreadyLinked
}

func TestCreatePortalPair_RemovesPortalsWhenLinkFails(t *testing.T) {
	e := NewEngine()
	t.Cleanup(func() { _ = e.Close() })
	newPair(t, e)
	impl := e.(*engine)
	impl.table = failingLinkTable{Table: impl.table}
	before := e.Table().Len()

	a, b, err := e.CreatePortalPair(nil, nil)
	if !errors.Is(err, portal.ErrAlreadyLinked) {
		t.Fatalf("err = %v, want ErrAlreadyLinked", err)
	}
	if a != nil || b != nil {
		t.Error("failed pair should not return portals")
	}
	if got := e.Table().Len(); got != before {
		t.Errorf("table holds %d portals, want %d", got, before)
	}
}

func TestPortalCamera_FindOrSpawn(t *testing.T) {
	e := NewEngine()
	t.Cleanup(func() { _ = e.Close() })
	a, b := newPair(t, e)
	player := newPlayer()

	pc, err := e.PortalCamera(a.Handle(), player)
	if err != nil {
		t.Fatalf("PortalCamera: %v", err)
	}
	again, err := e.PortalCamera(a.Handle(), player)
	if err != nil || again != pc {
		t.Errorf("second lookup = %v, %v; want the same portal camera", again, err)
	}
	other, err := e.PortalCamera(b.Handle(), player)
	if err != nil || other == pc {
		t.Errorf("other portal = %v, %v; want a distinct portal camera", other, err)
	}
	if e.Registry().Len() != 2 {
		t.Errorf("registry Len = %d, want 2", e.Registry().Len())
	}
	if _, err := e.PortalCamera(99, player); !errors.Is(err, portal.ErrUnknownPortal) {
		t.Errorf("unknown portal err = %v, want ErrUnknownPortal", err)
	}
}

func TestEndFrame_TearsDownUnusedAgents(t *testing.T) {
	e := NewEngine()
	t.Cleanup(func() { _ = e.Close() })
	a, _ := newPair(t, e)
	player := newPlayer()

	if _, err := e.RenderPortal(a.Handle(), player, stereo.Mono); err != nil {
		t.Fatalf("RenderPortal: %v", err)
	}
	r := e.EndFrame()
	if r.Renders != 1 || r.Spawned != 1 || r.Destroyed != 0 || r.Agents != 1 || r.MaxDepth != 1 {
		t.Errorf("frame 1 report = %+v", r)
	}

	r = e.EndFrame()
	if r.Destroyed != 1 || r.Agents != 0 || r.Err != nil {
		t.Errorf("frame 2 report = %+v, want the idle agent destroyed", r)
	}
	if s := e.Pool().Stats(); s.Live != 0 {
		t.Errorf("live targets = %d after teardown, want 0", s.Live)
	}
	if e.Registry().Len() != 0 {
		t.Errorf("registry Len = %d, want 0", e.Registry().Len())
	}
}

func TestEndFrame_RemovedPortalDestroysAgent(t *testing.T) {
	e := NewEngine()
	t.Cleanup(func() { _ = e.Close() })
	a, b := newPair(t, e)
	player := newPlayer()

	if _, err := e.RenderPortal(a.Handle(), player, stereo.Mono); err != nil {
		t.Fatalf("RenderPortal: %v", err)
	}
	if err := e.Table().Remove(b.Handle()); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if r := e.EndFrame(); r.Relinked != 1 {
		t.Errorf("report = %+v, want one relink", r)
	}

	if err := e.Table().Remove(a.Handle()); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if r := e.EndFrame(); r.Destroyed != 1 || r.Agents != 0 {
		t.Errorf("report = %+v, want the orphaned agent destroyed", r)
	}
}

func TestRenderPortal_NestedThroughRenderer(t *testing.T) {
	var e Engine
	depths := map[portal.Handle]int{}
	var a, b portal.Portal
	r := renderer.Func(func(req renderer.RenderRequest) (render_target.RenderTarget, error) {
		depths[req.Portal] = req.Depth
		if cur, ok := e.Current(); !ok || cur.Portal() != req.Portal {
			t.Errorf("Current during portal %d render = %v, %v", req.Portal, cur, ok)
		}
		if req.Portal == a.Handle() {
			pc, _ := e.Current()
			_, err := e.RenderPortal(b.Handle(), pc.Camera(), stereo.Mono)
			return nil, err
		}
		return nil, nil
	})
	e = NewEngine(WithRenderer(r))
	t.Cleanup(func() { _ = e.Close() })
	a, b = newPair(t, e)

	if _, err := e.RenderPortal(a.Handle(), newPlayer(), stereo.Mono); err != nil {
		t.Fatalf("RenderPortal: %v", err)
	}
	if depths[a.Handle()] != 0 || depths[b.Handle()] != 1 {
		t.Errorf("depths = %v, want a:0 b:1", depths)
	}
	rep := e.EndFrame()
	if rep.Renders != 2 || rep.Spawned != 2 || rep.MaxDepth != 2 {
		t.Errorf("report = %+v, want 2 renders, 2 spawned, depth 2", rep)
	}
	if _, ok := e.Current(); ok {
		t.Error("Current after the frame should be empty")
	}
}

func TestRenderPortal_CountsFailures(t *testing.T) {
	pool := render_target.NewPool(render_target.WithCapacity(1))
	hog, err := pool.Acquire(render_target.Descriptor{Width: 1, Height: 1})
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	e := NewEngine(WithRenderTargetPool(pool))
	a, _ := newPair(t, e)

	if _, err := e.RenderPortal(a.Handle(), newPlayer(), stereo.Mono); !errors.Is(err, render_target.ErrResourceExhausted) {
		t.Fatalf("err = %v, want ErrResourceExhausted", err)
	}
	if r := e.EndFrame(); r.Failures != 1 || r.Renders != 0 {
		t.Errorf("report = %+v, want one failure", r)
	}

	if err := e.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if !pool.IsLive(hog) {
		t.Error("Close touched a pool the engine does not own")
	}
}

func TestAmbientCopier_InvokedOnSpawn(t *testing.T) {
	calls := 0
	copier := scene.AmbientCopierFunc(func(from, to scene.Scene) {
		calls++
		to.SetAmbient(from.Ambient())
	})
	e := NewEngine(WithAmbientCopier(copier))
	t.Cleanup(func() { _ = e.Close() })

	_, _, err := e.CreatePortalPair(
		[]portal.PortalBuilderOption{portal.WithScene(scene.NewScene(scene.WithName("here")))},
		[]portal.PortalBuilderOption{portal.WithScene(scene.NewScene(scene.WithName("there")))},
	)
	if err != nil {
		t.Fatalf("CreatePortalPair: %v", err)
	}
	for _, h := range e.Table().Handles() {
		if _, err := e.RenderPortal(h, newPlayer(), stereo.Mono); err != nil {
			t.Fatalf("RenderPortal %d: %v", h, err)
		}
	}
	if calls != 2 {
		t.Errorf("copier called %d times, want once per portal camera", calls)
	}
}

func TestClose(t *testing.T) {
	e := NewEngine()
	a, _ := newPair(t, e)
	player := newPlayer()
	pc, err := e.PortalCamera(a.Handle(), player)
	if err != nil {
		t.Fatalf("PortalCamera: %v", err)
	}
	if _, err := pc.RenderToTexture(stereo.Left); err != nil {
		t.Fatalf("RenderToTexture: %v", err)
	}

	if err := e.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if !pc.Destroyed() {
		t.Error("Close left a portal camera alive")
	}
	if err := e.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
	if _, err := e.PortalCamera(a.Handle(), player); !errors.Is(err, ErrClosed) {
		t.Errorf("PortalCamera after Close err = %v, want ErrClosed", err)
	}
	if _, _, err := e.CreatePortalPair(nil, nil); !errors.Is(err, ErrClosed) {
		t.Errorf("CreatePortalPair after Close err = %v, want ErrClosed", err)
	}
}
