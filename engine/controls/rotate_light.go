package controls

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/vantage3d/vantage/common"
	"github.com/vantage3d/vantage/engine/interactor"
)

// rotateLightControl aims the directional light. Any button starts a drag,
// and the drag rotates the light direction captured at the press; a callback
// reports every step so the host can relight.
type rotateLightControl struct {
	interactor *interactor.LightInteractor

	downX, downY int
	onChanged    func(mgl32.Vec3)
}

func newRotateLightControl(li *interactor.LightInteractor) *rotateLightControl {
	return &rotateLightControl{interactor: li}
}

func (r *rotateLightControl) setOnChanged(cb func(mgl32.Vec3)) {
	r.onChanged = cb
}

func (r *rotateLightControl) Interactor() *interactor.MatrixInteractor {
	return r.interactor.MatrixInteractor
}

func (r *rotateLightControl) Mouse(e common.MouseEvent) {
	switch e.Type {
	case common.MouseButtonDown:
		r.downX = e.X
		r.downY = e.Y
		r.interactor.StartMouseDrag()
	case common.MouseDrag:
		r.interactor.Rotate(e.X-r.downX, e.Y-r.downY)
		if r.onChanged != nil {
			r.onChanged(r.interactor.CurrentDirection())
		}
	case common.MouseButtonUp:
		r.interactor.EndMouseDrag()
	case common.MouseMove, common.MouseWheel:
	}
}

func (r *rotateLightControl) Key(e common.KeyEvent) {}

func (r *rotateLightControl) Tick(e common.TickEvent) bool {
	return false
}
