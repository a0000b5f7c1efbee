package camera

import (
	"github.com/go-gl/mathgl/mgl32"
)

// CameraBuilderOption is a functional option for configuring a Camera.
type CameraBuilderOption func(*cameraImpl)

// WithFov sets the field of view angle in degrees.
//
// Parameters:
//   - fovDegrees: field of view in degrees
//
// Returns:
//   - CameraBuilderOption: functional option to set the field of view
func WithFov(fovDegrees float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.fovDegrees = fovDegrees
	}
}

// WithFovType sets which screen axis the field of view angle applies to.
//
// Parameters:
//   - fovType: FovVertical or FovHorizontal
//
// Returns:
//   - CameraBuilderOption: functional option to set the field of view type
func WithFovType(fovType FovType) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.fovType = fovType
	}
}

// WithAspect sets the aspect ratio (width / height).
//
// Parameters:
//   - aspect: the aspect ratio
//
// Returns:
//   - CameraBuilderOption: functional option to set the aspect ratio
func WithAspect(aspect float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.aspect = aspect
	}
}

// WithClipPlanes sets the near and far clipping plane distances.
//
// Parameters:
//   - near: near plane distance (must be > 0)
//   - far: far plane distance (must be > near)
//
// Returns:
//   - CameraBuilderOption: functional option to set the clip planes
func WithClipPlanes(near, far float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.near = near
		c.far = far
	}
}

// WithModelMatrix sets the initial camera-to-world pose.
//
// Parameters:
//   - m: the rigid pose matrix
//
// Returns:
//   - CameraBuilderOption: functional option to set the pose
func WithModelMatrix(m mgl32.Mat4) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.modelMatrix = m
	}
}
