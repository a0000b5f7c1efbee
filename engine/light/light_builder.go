package light

import (
	"github.com/go-gl/mathgl/mgl32"
)

// LightBuilderOption is a functional option for configuring a Light.
type LightBuilderOption func(*lightImpl)

// WithType sets the light type.
//
// Parameters:
//   - lightType: directional, point, or spot
//
// Returns:
//   - LightBuilderOption: functional option to set the type
func WithType(lightType LightType) LightBuilderOption {
	return func(l *lightImpl) {
		l.lightType = lightType
	}
}

// WithDirection sets the initial light direction. A zero vector is ignored.
//
// Parameters:
//   - d: the light direction (normalized on assignment)
//
// Returns:
//   - LightBuilderOption: functional option to set the direction
func WithDirection(d mgl32.Vec3) LightBuilderOption {
	return func(l *lightImpl) {
		if d.Len() > 0 {
			l.direction = d.Normalize()
		}
	}
}

// WithPosition sets the initial light position.
//
// Parameters:
//   - p: the world-space position
//
// Returns:
//   - LightBuilderOption: functional option to set the position
func WithPosition(p mgl32.Vec3) LightBuilderOption {
	return func(l *lightImpl) {
		l.position = p
	}
}

// WithColor sets the light color.
//
// Parameters:
//   - color: RGB color components
//
// Returns:
//   - LightBuilderOption: functional option to set the color
func WithColor(color mgl32.Vec3) LightBuilderOption {
	return func(l *lightImpl) {
		l.color = color
	}
}

// WithIntensity sets the scalar intensity multiplier.
//
// Parameters:
//   - intensity: the intensity value
//
// Returns:
//   - LightBuilderOption: functional option to set the intensity
func WithIntensity(intensity float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.intensity = intensity
	}
}
