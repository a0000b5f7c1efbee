package controls

import (
	"github.com/vantage3d/vantage/common"
	"github.com/vantage3d/vantage/engine/interactor"
)

// rotateModelControl moves the model instead of the camera, reusing the
// orbit gesture machine with the model interactor as its target.
type rotateModelControl struct {
	interactor *interactor.ModelInteractor
	gesture    *rotationGesture
}

func newRotateModelControl(mi *interactor.ModelInteractor) *rotateModelControl {
	return &rotateModelControl{
		interactor: mi,
		gesture:    newRotationGesture(mi),
	}
}

func (r *rotateModelControl) Interactor() *interactor.MatrixInteractor {
	return r.interactor.MatrixInteractor
}

func (r *rotateModelControl) Mouse(e common.MouseEvent) {
	r.gesture.Mouse(e)
}

func (r *rotateModelControl) Key(e common.KeyEvent) {}

func (r *rotateModelControl) Tick(e common.TickEvent) bool {
	return false
}
