package controls

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/vantage3d/vantage/common"
	"github.com/vantage3d/vantage/engine/interactor"
)

// rotateEnvironmentControl spins the skybox and image-based lighting.
// Plain drags rotate about screen axes; holding Meta rolls about the view
// direction instead.
type rotateEnvironmentControl struct {
	interactor *interactor.EnvironmentInteractor

	downX, downY int
	onChanged    func(mgl32.Mat4)
}

func newRotateEnvironmentControl(ei *interactor.EnvironmentInteractor) *rotateEnvironmentControl {
	return &rotateEnvironmentControl{interactor: ei}
}

func (r *rotateEnvironmentControl) setOnChanged(cb func(mgl32.Mat4)) {
	r.onChanged = cb
}

func (r *rotateEnvironmentControl) Interactor() *interactor.MatrixInteractor {
	return r.interactor.MatrixInteractor
}

func (r *rotateEnvironmentControl) Mouse(e common.MouseEvent) {
	switch e.Type {
	case common.MouseButtonDown:
		r.downX = e.X
		r.downY = e.Y
		r.interactor.StartMouseDrag()
	case common.MouseDrag:
		dx := e.X - r.downX
		dy := e.Y - r.downY
		if e.Modifiers&common.ModMeta != 0 {
			r.interactor.RotateZ(dx, dy)
		} else {
			r.interactor.Rotate(dx, dy)
		}
		if r.onChanged != nil {
			r.onChanged(r.interactor.CurrentRotation())
		}
	case common.MouseButtonUp:
		r.interactor.EndMouseDrag()
	case common.MouseMove, common.MouseWheel:
	}
}

func (r *rotateEnvironmentControl) Key(e common.KeyEvent) {}

func (r *rotateEnvironmentControl) Tick(e common.TickEvent) bool {
	return false
}
