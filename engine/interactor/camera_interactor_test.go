package interactor

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/vantage3d/vantage/common"
	"github.com/vantage3d/vantage/engine/camera"
)

func newTestCameraInteractor() *CameraInteractor {
	cam := camera.NewCamera(
		camera.WithModelMatrix(mgl32.Translate3D(0, 0, 5)),
	)
	c := NewCameraInteractor(cam, 1.0)
	c.SetViewSize(400, 400)
	c.SetBoundingBox(common.NewBoundingBox(
		mgl32.Vec3{-1, -1, -1},
		mgl32.Vec3{1, 1, 1},
	))
	return c
}

func TestRotatePushesPoseIntoCamera(t *testing.T) {
	c := newTestCameraInteractor()
	c.StartMouseDrag()
	c.Rotate(40, 10)

	if !mat4Equal(c.Camera().ModelMatrix(), c.Matrix()) {
		t.Errorf("camera pose diverged from accumulator after rotate")
	}
}

func TestZoomClampsFieldOfView(t *testing.T) {
	c := newTestCameraInteractor()

	c.Zoom(100, DragWheel)
	if fov := c.Camera().FieldOfView(); math.Abs(float64(fov-90)) > testEpsilon {
		t.Errorf("zoom out past limit: expected fov 90, got %f", fov)
	}

	c.Zoom(-1000, DragWheel)
	if fov := c.Camera().FieldOfView(); math.Abs(float64(fov-5)) > testEpsilon {
		t.Errorf("zoom in past limit: expected fov 5, got %f", fov)
	}
}

func TestZoomDoesNotMoveCamera(t *testing.T) {
	c := newTestCameraInteractor()
	before := c.Camera().Position()
	c.Zoom(3, DragWheel)
	if !vec3Equal(before, c.Camera().Position()) {
		t.Errorf("field-of-view zoom moved the camera from %+v to %+v",
			before, c.Camera().Position())
	}
}

func TestRotateFlyKeepsCameraPosition(t *testing.T) {
	c := newTestCameraInteractor()
	c.StartMouseDrag()
	before := c.Camera().Position()

	c.RotateFly(-25, -10)

	if !vec3Equal(before, c.Camera().Position()) {
		t.Errorf("fly rotation moved the camera from %+v to %+v",
			before, c.Camera().Position())
	}
	if vec3Equal(c.Camera().ForwardVector(), mgl32.Vec3{0, 0, -1}) {
		t.Errorf("fly rotation left the view direction unchanged")
	}
}

func TestMoveLocalFollowsCameraFrame(t *testing.T) {
	cam := camera.NewCamera()
	cam.LookAt(
		mgl32.Vec3{-1, 0, 0}, // looking down -x
		mgl32.Vec3{0, 0, 0},
		mgl32.Vec3{0, 1, 0},
	)
	c := NewCameraInteractor(cam, 1.0)
	c.SetViewSize(400, 400)

	c.MoveLocal(mgl32.Vec3{0, 0, -2})

	// Forward is -x in world space, so local -z moves along -x.
	if !vec3Equal(cam.Position(), mgl32.Vec3{-2, 0, 0}) {
		t.Errorf("local move ignored camera orientation: got %+v", cam.Position())
	}
}

func TestDollyExtendsFarPlane(t *testing.T) {
	cam := camera.NewCamera(
		camera.WithModelMatrix(mgl32.Translate3D(0, 0, 50)),
		camera.WithClipPlanes(0.1, 10),
	)
	c := NewCameraInteractor(cam, 1.0)
	c.SetViewSize(400, 400)
	c.SetBoundingBox(common.NewBoundingBox(
		mgl32.Vec3{-10, -10, -10},
		mgl32.Vec3{10, 10, 10},
	))
	c.StartMouseDrag()

	c.Dolly(100, DragMouse)

	pos := cam.Position().Len()
	minFar := float64(pos) + 2*float64(c.ModelSize())
	if float64(cam.Far()) < minFar-testEpsilon {
		t.Errorf("far plane %f cannot cover content at camera distance %f", cam.Far(), pos)
	}
}

func TestFarPlaneNeverBelowFloor(t *testing.T) {
	cam := camera.NewCamera(
		camera.WithModelMatrix(mgl32.Ident4()),
		camera.WithClipPlanes(0.01, 0.02),
	)
	c := NewCameraInteractor(cam, 1.0)
	c.SetViewSize(400, 400)
	c.SetBoundingBox(common.NewBoundingBox(mgl32.Vec3{}, mgl32.Vec3{}))

	c.UpdateCameraFarPlane()

	if cam.Far() < 1.0 {
		t.Errorf("far plane fell below floor: got %f", cam.Far())
	}
}
