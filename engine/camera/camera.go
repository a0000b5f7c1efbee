package camera

import (
	"math"
	"sync"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/vantage3d/vantage/common"
)

// FovType selects which screen axis the field of view angle applies to.
type FovType int

const (
	// FovVertical applies the field of view to the vertical screen axis.
	FovVertical FovType = iota

	// FovHorizontal applies the field of view to the horizontal screen axis.
	FovHorizontal
)

// cameraImpl is the implementation of the Camera interface.
type cameraImpl struct {
	mu *sync.Mutex

	// modelMatrix is the camera-to-world rigid pose. The rotation component
	// is always orthonormal with determinant +1.
	modelMatrix mgl32.Mat4

	fovDegrees float32
	fovType    FovType
	aspect     float32
	near       float32
	far        float32

	viewMatrix       [16]float32
	projectionMatrix [16]float32
}

// Camera is the handle the interaction layer mutates. It holds a rigid pose
// (position + orientation as a camera-to-world model matrix) and perspective
// projection parameters, and derives view/projection matrices from them.
// Thread-safe for concurrent access.
type Camera interface {
	// ModelMatrix returns the camera-to-world pose matrix.
	//
	// Returns:
	//   - mgl32.Mat4: the rigid pose (column-major)
	ModelMatrix() mgl32.Mat4

	// SetModelMatrix replaces the camera-to-world pose and recomputes the
	// view matrix. The rotation component must be a valid rotation.
	//
	// Parameters:
	//   - m: the new pose
	SetModelMatrix(m mgl32.Mat4)

	// Position returns the camera's world-space position.
	//
	// Returns:
	//   - mgl32.Vec3: the translation component of the pose
	Position() mgl32.Vec3

	// ForwardVector returns the direction the camera is looking, in world space.
	//
	// Returns:
	//   - mgl32.Vec3: the normalized forward vector (-Z of the pose)
	ForwardVector() mgl32.Vec3

	// UpVector returns the camera's up direction in world space.
	//
	// Returns:
	//   - mgl32.Vec3: the normalized up vector (+Y of the pose)
	UpVector() mgl32.Vec3

	// LeftVector returns the camera's left direction in world space.
	//
	// Returns:
	//   - mgl32.Vec3: the normalized left vector (-X of the pose)
	LeftVector() mgl32.Vec3

	// LookAt repositions the camera at eye, looking at center, with the given
	// up vector, and recomputes the view matrix.
	//
	// Parameters:
	//   - center: the point to look at
	//   - eye: the camera position
	//   - up: the up direction (typically 0,1,0)
	LookAt(center, eye, up mgl32.Vec3)

	// SetProjection sets the perspective projection parameters and recomputes
	// the projection matrix.
	//
	// Parameters:
	//   - fovDegrees: the field of view angle in degrees
	//   - aspect: viewport aspect ratio (width/height)
	//   - near: near clipping plane distance
	//   - far: far clipping plane distance
	//   - fovType: which screen axis the angle applies to
	SetProjection(fovDegrees, aspect, near, far float32, fovType FovType)

	// FieldOfView returns the field of view angle in degrees.
	//
	// Returns:
	//   - float32: the field of view in degrees
	FieldOfView() float32

	// FieldOfViewType returns which screen axis the field of view applies to.
	//
	// Returns:
	//   - FovType: vertical or horizontal
	FieldOfViewType() FovType

	// Aspect returns the aspect ratio (width / height).
	//
	// Returns:
	//   - float32: the aspect ratio
	Aspect() float32

	// Near returns the near clipping plane distance.
	//
	// Returns:
	//   - float32: near plane distance
	Near() float32

	// Far returns the far clipping plane distance.
	//
	// Returns:
	//   - float32: far plane distance
	Far() float32

	// ViewMatrix returns the current 4x4 world-to-camera matrix as 16 floats
	// (column-major), the inverse of the model matrix.
	//
	// Returns:
	//   - [16]float32: the view matrix
	ViewMatrix() [16]float32

	// ProjectionMatrix returns the current 4x4 projection matrix as 16 floats (column-major).
	//
	// Returns:
	//   - [16]float32: the projection matrix
	ProjectionMatrix() [16]float32

	// ViewProjectionMatrix returns the combined projection * view matrix.
	//
	// Returns:
	//   - [16]float32: the combined view-projection matrix
	ViewProjectionMatrix() [16]float32
}

var _ Camera = &cameraImpl{}

// NewCamera creates a new Camera with default perspective settings, placed at
// the origin looking down -Z.
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the newly created camera
func NewCamera(options ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		mu:          &sync.Mutex{},
		modelMatrix: mgl32.Ident4(),
		fovDegrees:  60.0,
		fovType:     FovVertical,
		aspect:      1.0,
		near:        0.1,
		far:         100.0,
	}
	for _, option := range options {
		option(c)
	}
	c.updateViewMatrix()
	c.updateProjectionMatrix()
	return c
}

func (c *cameraImpl) ModelMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.modelMatrix
}

func (c *cameraImpl) SetModelMatrix(m mgl32.Mat4) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.modelMatrix = m
	c.updateViewMatrix()
}

func (c *cameraImpl) Position() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.modelMatrix.Col(3).Vec3()
}

func (c *cameraImpl) ForwardVector() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.modelMatrix.Col(2).Vec3().Mul(-1)
}

func (c *cameraImpl) UpVector() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.modelMatrix.Col(1).Vec3()
}

func (c *cameraImpl) LeftVector() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.modelMatrix.Col(0).Vec3().Mul(-1)
}

func (c *cameraImpl) LookAt(center, eye, up mgl32.Vec3) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var view [16]float32
	common.LookAt(view[:],
		eye[0], eye[1], eye[2],
		center[0], center[1], center[2],
		up[0], up[1], up[2],
	)
	// The pose is the inverse of the view matrix.
	var model [16]float32
	common.Invert4(model[:], view[:])
	c.modelMatrix = mgl32.Mat4(model)
	c.viewMatrix = view
}

func (c *cameraImpl) SetProjection(fovDegrees, aspect, near, far float32, fovType FovType) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fovDegrees = fovDegrees
	c.aspect = aspect
	c.near = near
	c.far = far
	c.fovType = fovType
	c.updateProjectionMatrix()
}

func (c *cameraImpl) FieldOfView() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fovDegrees
}

func (c *cameraImpl) FieldOfViewType() FovType {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fovType
}

func (c *cameraImpl) Aspect() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.aspect
}

func (c *cameraImpl) Near() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.near
}

func (c *cameraImpl) Far() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.far
}

func (c *cameraImpl) ViewMatrix() [16]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewMatrix
}

func (c *cameraImpl) ProjectionMatrix() [16]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.projectionMatrix
}

func (c *cameraImpl) ViewProjectionMatrix() [16]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out [16]float32
	common.Mul4(out[:], c.projectionMatrix[:], c.viewMatrix[:])
	return out
}

// updateViewMatrix recomputes the view matrix as the inverse of the pose.
// Caller must hold the mutex.
func (c *cameraImpl) updateViewMatrix() {
	model := [16]float32(c.modelMatrix)
	common.Invert4(c.viewMatrix[:], model[:])
}

// updateProjectionMatrix recomputes the projection matrix from the stored
// parameters. A horizontal field of view is converted to the equivalent
// vertical angle for the current aspect ratio.
// Caller must hold the mutex.
func (c *cameraImpl) updateProjectionMatrix() {
	fovRad := float64(mgl32.DegToRad(c.fovDegrees))
	if c.fovType == FovHorizontal {
		fovRad = 2.0 * math.Atan(math.Tan(fovRad/2.0)/float64(c.aspect))
	}
	common.Perspective(c.projectionMatrix[:], float32(fovRad), c.aspect, c.near, c.far)
}
