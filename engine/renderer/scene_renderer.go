package renderer

import (
	"github.com/Carmen-Shannon/oxy-portal/engine/camera"
	"github.com/Carmen-Shannon/oxy-portal/engine/portal"
	"github.com/Carmen-Shannon/oxy-portal/engine/render_target"
	"github.com/Carmen-Shannon/oxy-portal/engine/scene"
)

// RenderRequest is everything a renderer needs to draw the scene seen through one portal for one
// eye. Camera.Target is the target to draw into.
type RenderRequest struct {
	// Camera is the driven portal camera, already teleported and carrying its final matrices.
	Camera camera.RenderState
	// Portal is the entry portal being rendered for.
	Portal portal.Handle
	// Scene is the scene visible through the portal, which may be nil.
	Scene scene.Scene
	// Ambient is the lighting to render with. It is the exit scene's ambient when the portal
	// crosses scenes, otherwise the enter scene's.
	Ambient scene.AmbientSettings
	// Depth is the number of portal renders already in progress below this one.
	Depth int
}

// SceneRenderer draws a scene from a portal camera. It is the boundary between the portal core
// and whatever issues draw calls. Implementations may render nested portals, which re-enters the
// portal core.
type SceneRenderer interface {
	// RenderSceneFrom draws the scene described by req.
	//
	// Parameters:
	//   - req: the render request
	//
	// Returns:
	//   - render_target.RenderTarget: the target drawn into, or nil for req.Camera.Target
	//   - error: error if rendering failed
	RenderSceneFrom(req RenderRequest) (render_target.RenderTarget, error)
}

// Func adapts a plain function to the SceneRenderer interface.
type Func func(req RenderRequest) (render_target.RenderTarget, error)

// RenderSceneFrom calls f(req).
func (f Func) RenderSceneFrom(req RenderRequest) (render_target.RenderTarget, error) {
	return f(req)
}

// Nop returns a SceneRenderer that draws nothing and reports success.
//
// Returns:
//   - SceneRenderer: the no-op renderer
func Nop() SceneRenderer {
	return Func(func(RenderRequest) (render_target.RenderTarget, error) {
		return nil, nil
	})
}
