package scene

import (
	"github.com/vantage3d/vantage/engine/light"
)

// SceneBuilderOption is a functional option for configuring a Scene.
type SceneBuilderOption func(*sceneImpl)

// WithName sets the scene's identifier.
//
// Parameters:
//   - name: the scene name
//
// Returns:
//   - SceneBuilderOption: functional option to set the name
func WithName(name string) SceneBuilderOption {
	return func(s *sceneImpl) {
		s.name = name
	}
}

// WithActive sets whether the scene starts active.
//
// Parameters:
//   - active: true to start active (the default)
//
// Returns:
//   - SceneBuilderOption: functional option to set the active flag
func WithActive(active bool) SceneBuilderOption {
	return func(s *sceneImpl) {
		s.active = active
	}
}

// WithLight registers a light during scene construction. The light is
// assigned the next available light id, starting at 1.
//
// Parameters:
//   - l: the light to register
//
// Returns:
//   - SceneBuilderOption: functional option to add the light
func WithLight(l light.Light) SceneBuilderOption {
	return func(s *sceneImpl) {
		s.nextLightID++
		s.lights[s.nextLightID] = l
	}
}
