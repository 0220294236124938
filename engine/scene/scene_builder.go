package scene

import (
	"github.com/google/uuid"
)

// SceneBuilderOption is a functional option for configuring a Scene.
// Use the With* functions to create options.
type SceneBuilderOption func(s *scene)

// WithID overrides the randomly generated scene id.
//
// Parameters:
//   - id: the scene id
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithID(id uuid.UUID) SceneBuilderOption {
	return func(s *scene) {
		s.id = id
	}
}

// WithName sets the scene's display name.
//
// Parameters:
//   - name: the scene name
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithName(name string) SceneBuilderOption {
	return func(s *scene) {
		s.name = name
	}
}

// WithAmbient sets the scene's initial ambient settings.
//
// Parameters:
//   - settings: the ambient settings
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithAmbient(settings AmbientSettings) SceneBuilderOption {
	return func(s *scene) {
		s.ambient = settings
	}
}
