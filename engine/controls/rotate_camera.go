package controls

import (
	"github.com/vantage3d/vantage/common"
	"github.com/vantage3d/vantage/engine/interactor"
)

// rotateCameraControl is orbit mode: the shared rotation gesture driving the
// camera, plus a field-of-view zoom on Shift+wheel.
type rotateCameraControl struct {
	interactor *interactor.CameraInteractor
	gesture    *rotationGesture
}

func newRotateCameraControl(ci *interactor.CameraInteractor) *rotateCameraControl {
	return &rotateCameraControl{
		interactor: ci,
		gesture:    newRotationGesture(ci),
	}
}

func (r *rotateCameraControl) Interactor() *interactor.MatrixInteractor {
	return r.interactor.MatrixInteractor
}

func (r *rotateCameraControl) Mouse(e common.MouseEvent) {
	if e.Type == common.MouseWheel && e.Modifiers&common.ModShift != 0 {
		r.interactor.Zoom(2.0*e.WheelDY, wheelDragType(e))
		return
	}
	r.gesture.Mouse(e)
}

func (r *rotateCameraControl) Key(e common.KeyEvent) {}

func (r *rotateCameraControl) Tick(e common.TickEvent) bool {
	return false
}
