package scene

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
)

// AmbientMode selects how ambient light is sourced for a scene.
type AmbientMode int

const (
	AmbientModeSkybox AmbientMode = iota
	AmbientModeTrilight
	AmbientModeFlat
)

// FogMode selects the fog falloff curve.
type FogMode int

const (
	FogModeLinear FogMode = iota
	FogModeExponential
	FogModeExponentialSquared
)

// AmbientSettings is the set of scene-wide lighting values a renderer reads when drawing a scene.
// Colors are linear RGBA.
type AmbientSettings struct {
	Mode           AmbientMode
	SkyColor       mgl64.Vec4
	EquatorColor   mgl64.Vec4
	GroundColor    mgl64.Vec4
	Intensity      float64
	ReflectionMult float64
	Skybox         string

	Fog        bool
	FogMode    FogMode
	FogColor   mgl64.Vec4
	FogDensity float64
	FogStart   float64
	FogEnd     float64
}

// DefaultAmbientSettings returns a flat grey ambient with fog disabled.
//
// Returns:
//   - AmbientSettings: the default ambient settings
func DefaultAmbientSettings() AmbientSettings {
	return AmbientSettings{
		Mode:           AmbientModeFlat,
		SkyColor:       mgl64.Vec4{0.2, 0.2, 0.2, 1},
		EquatorColor:   mgl64.Vec4{0.2, 0.2, 0.2, 1},
		GroundColor:    mgl64.Vec4{0.2, 0.2, 0.2, 1},
		Intensity:      1,
		ReflectionMult: 1,
		FogMode:        FogModeExponentialSquared,
		FogColor:       mgl64.Vec4{0.5, 0.5, 0.5, 1},
		FogDensity:     0.01,
		FogEnd:         300,
	}
}

type scene struct {
	id      uuid.UUID
	name    string
	ambient AmbientSettings
}

// Scene is the lighting context a portal lives in. Portals and their render agents only need the
// scene's identity and ambient settings; geometry is owned by the renderer.
type Scene interface {
	// ID returns the scene's unique identifier.
	//
	// Returns:
	//   - uuid.UUID: the scene id
	ID() uuid.UUID

	// Name returns the scene's display name.
	//
	// Returns:
	//   - string: the scene name
	Name() string

	// Ambient returns a copy of the scene's ambient settings.
	//
	// Returns:
	//   - AmbientSettings: the current ambient settings
	Ambient() AmbientSettings

	// SetAmbient replaces the scene's ambient settings.
	//
	// Parameters:
	//   - settings: the new ambient settings
	SetAmbient(settings AmbientSettings)
}

var _ Scene = &scene{}

// NewScene creates a new Scene with a random id and the default ambient settings.
//
// Parameters:
//   - options: functional options to configure the scene
//
// Returns:
//   - Scene: the newly created scene
func NewScene(options ...SceneBuilderOption) Scene {
	s := &scene{
		id:      uuid.New(),
		ambient: DefaultAmbientSettings(),
	}
	for _, option := range options {
		option(s)
	}
	return s
}

func (s *scene) ID() uuid.UUID {
	return s.id
}

func (s *scene) Name() string {
	return s.name
}

func (s *scene) Ambient() AmbientSettings {
	return s.ambient
}

func (s *scene) SetAmbient(settings AmbientSettings) {
	s.ambient = settings
}

// Same reports whether a and b refer to the same scene. Two nil scenes are the same.
//
// Parameters:
//   - a, b: the scenes to compare
//
// Returns:
//   - bool: true if both are nil or both have the same id
func Same(a, b Scene) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.ID() == b.ID()
}
