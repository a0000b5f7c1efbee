package interactor

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/vantage3d/vantage/common"
	"github.com/vantage3d/vantage/engine/camera"
)

const (
	zoomMousePerPixel   = 0.1
	zoomTrackpadPerUnit = 0.2
	zoomWheelPerTick    = 2.0

	minFieldOfView = 5.0
	maxFieldOfView = 90.0
)

// CameraInteractor drives the viewing camera itself. Orbit-style drags go
// through the shared accumulator and the result is pushed straight into the
// camera; fly-style operations move and turn the camera relative to its own
// frame without a center of rotation.
type CameraInteractor struct {
	*RotationInteractor

	fovAtMouseDown float32
}

// NewCameraInteractor returns an interactor manipulating cam. minFarPlane
// bounds how close the far clip plane may collapse when the far plane is
// recomputed after a dolly.
func NewCameraInteractor(cam camera.Camera, minFarPlane float32) *CameraInteractor {
	return &CameraInteractor{
		RotationInteractor: NewRotationInteractor(cam, minFarPlane),
	}
}

// StartMouseDrag anchors a new drag at the camera's current pose and field
// of view.
func (c *CameraInteractor) StartMouseDrag() {
	c.fovAtMouseDown = c.Camera().FieldOfView()
	c.RotationInteractor.StartMouseDrag()
}

// ResetMouseDrag re-anchors the drag at the current pose, keeping deltas
// relative for fly-style rotations.
func (c *CameraInteractor) ResetMouseDrag() {
	c.StartMouseDrag()
}

// Rotate orbits the camera around the center of rotation.
func (c *CameraInteractor) Rotate(dx, dy int) {
	c.MatrixInteractor.Rotate(dx, dy)
	c.Camera().SetModelMatrix(c.Matrix())
}

// RotateZ rolls the camera about its view direction.
func (c *CameraInteractor) RotateZ(dx, dy int) {
	c.MatrixInteractor.RotateZ(dx, dy)
	c.Camera().SetModelMatrix(c.Matrix())
}

// Dolly moves the camera along its view direction and stretches the far
// plane so the content cannot be clipped away behind it. Wheel and trackpad
// deltas arrive without a mouse down, so they compose against the camera's
// live pose rather than the drag snapshot.
func (c *CameraInteractor) Dolly(delta float32, dragType DragType) {
	if dragType == DragMouse {
		c.MatrixInteractor.Dolly(delta, dragType)
	} else {
		dist := c.CalcDollyDist(delta, dragType)
		c.SetMatrix(c.Camera().ModelMatrix().Mul4(mgl32.Translate3D(0, 0, -dist)))
	}
	c.Camera().SetModelMatrix(c.Matrix())
	c.UpdateCameraFarPlane()
}

// Pan slides the camera parallel to the view plane, dragging the center of
// rotation along.
func (c *CameraInteractor) Pan(dx, dy int) {
	c.MatrixInteractor.Pan(dx, dy)
	c.Camera().SetModelMatrix(c.Matrix())
}

// Zoom changes the field of view instead of moving the camera, clamped to
// [5, 90] degrees. Mouse drags are relative to the field of view captured
// when the drag started; wheel and trackpad deltas adjust the live value.
func (c *CameraInteractor) Zoom(delta float32, dragType DragType) {
	cam := c.Camera()

	var dFov float32
	oldFov := cam.FieldOfView()
	switch dragType {
	case DragMouse:
		dFov = -delta * zoomMousePerPixel
		oldFov = c.fovAtMouseDown
	case DragTwoFinger:
		dFov = delta * zoomTrackpadPerUnit
	case DragWheel:
		dFov = delta * zoomWheelPerTick
	}
	newFov := common.Clamp(oldFov+dFov, minFieldOfView, maxFieldOfView)

	cam.SetProjection(newFov, cam.Aspect(), cam.Near(), cam.Far(), cam.FieldOfViewType())
	c.SetFieldOfView(newFov)
}

// RotateFly turns the camera about its own position rather than the center
// of rotation. Callers re-anchor the drag each event so dx and dy are
// per-event deltas.
func (c *CameraInteractor) RotateFly(dx, dy int) {
	pos := c.MatrixAtMouseDown().Col(3).Vec3()
	saved := c.CenterOfRotation()
	c.SetCenterOfRotation(pos)
	c.MatrixInteractor.Rotate(dx, dy)
	c.SetCenterOfRotation(saved)
	c.Camera().SetModelMatrix(c.Matrix())
}

// MoveLocal translates the camera in its own frame, so {0, 0, -d} always
// moves forward no matter which way the camera faces.
func (c *CameraInteractor) MoveLocal(v mgl32.Vec3) {
	cam := c.Camera()
	matrix := cam.ModelMatrix().Mul4(mgl32.Translate3D(v.X(), v.Y(), v.Z()))
	cam.SetModelMatrix(matrix)
	c.SetMatrix(matrix)
}

// RotateLocal turns the camera about one of its own axes by angle radians.
func (c *CameraInteractor) RotateLocal(angle float32, axis mgl32.Vec3) {
	cam := c.Camera()
	matrix := cam.ModelMatrix().Mul4(mgl32.HomogRotate3D(angle, axis))
	cam.SetModelMatrix(matrix)
	c.SetMatrix(matrix)
}
