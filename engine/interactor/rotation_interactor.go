package interactor

import (
	"github.com/vantage3d/vantage/engine/camera"
)

// RotationInteractor layers a camera handle on top of the matrix accumulator
// for interactors whose drags are expressed in the viewing camera's frame.
// It does not decide what the matrix is applied to; CameraInteractor and
// ModelInteractor embed it and push the result to their own targets.
type RotationInteractor struct {
	*MatrixInteractor

	camera      camera.Camera
	minFarPlane float32
}

// NewRotationInteractor wires the accumulator to a camera. minFarPlane is
// the floor applied when the far clip plane is recomputed from the content
// bounds.
func NewRotationInteractor(cam camera.Camera, minFarPlane float32) *RotationInteractor {
	return &RotationInteractor{
		MatrixInteractor: NewMatrixInteractor(),
		camera:           cam,
		minFarPlane:      minFarPlane,
	}
}

// Camera returns the viewing camera the interactor was built with.
func (r *RotationInteractor) Camera() camera.Camera {
	return r.camera
}

// StartMouseDrag snapshots the camera pose and the current center of
// rotation as the drag anchor.
func (r *RotationInteractor) StartMouseDrag() {
	r.SetMouseDownInfo(r.camera.ModelMatrix(), r.CenterOfRotation())
}

// ResetMouseDrag re-anchors an in-progress drag at the camera's current
// pose. Fly-mode rotations call this every event so deltas stay relative.
func (r *RotationInteractor) ResetMouseDrag() {
	r.StartMouseDrag()
}

// UpdateMouseDragUI refreshes any indicator geometry tied to the drag.
// The base implementation has none.
func (r *RotationInteractor) UpdateMouseDragUI() {}

// EndMouseDrag finishes a drag. The base implementation has nothing to
// clean up.
func (r *RotationInteractor) EndMouseDrag() {}

// UpdateCameraFarPlane pushes the far clip plane out far enough that the
// content stays visible from the camera's current position, no matter how
// far it has dollied away. The distance is the largest of the bounds
// corners' and the camera's distances from the origin, padded by two
// content diagonals, and never drops below the configured floor.
func (r *RotationInteractor) UpdateCameraFarPlane() {
	bounds := r.BoundingBox()
	pos := r.camera.ModelMatrix().Col(3).Vec3()

	far := bounds.Min.Len()
	if l := bounds.Max.Len(); l > far {
		far = l
	}
	if l := pos.Len(); l > far {
		far = l
	}
	far += 2.0 * bounds.ExtentNorm()
	if far < r.minFarPlane {
		far = r.minFarPlane
	}

	r.camera.SetProjection(
		r.camera.FieldOfView(),
		r.camera.Aspect(),
		r.camera.Near(),
		far,
		r.camera.FieldOfViewType(),
	)
}
