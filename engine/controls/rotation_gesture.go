package controls

import (
	"runtime"

	"github.com/vantage3d/vantage/common"
	"github.com/vantage3d/vantage/engine/interactor"
)

// dragState is what a held button is currently doing.
type dragState int

const (
	dragNone dragState = iota
	dragPan
	dragDolly
	dragRotateXY
	dragRotateZ
)

// rotationTarget is the subset of interactor operations the orbit-style
// gesture machine drives. CameraInteractor and ModelInteractor both satisfy
// it.
type rotationTarget interface {
	StartMouseDrag()
	EndMouseDrag()
	UpdateMouseDragUI()
	Rotate(dx, dy int)
	RotateZ(dx, dy int)
	Pan(dx, dy int)
	Dolly(delta float32, dragType interactor.DragType)
}

// rotationGesture maps button and modifier combinations onto a target's
// rotate, roll, pan and dolly operations. Drag deltas are measured from the
// press position, so the target sees total drag distance on every event.
//
// Left drag rotates; with Shift it dollies, adding Ctrl (Alt on macOS)
// rolls instead. Ctrl alone pans, Meta alone rolls, and the right button
// always pans. Wheel events dolly, with per-device scaling applied by the
// target.
type rotationGesture struct {
	target rotationTarget

	state        dragState
	downX, downY int
}

func newRotationGesture(target rotationTarget) *rotationGesture {
	return &rotationGesture{target: target}
}

func (g *rotationGesture) Mouse(e common.MouseEvent) {
	switch e.Type {
	case common.MouseButtonDown:
		g.downX = e.X
		g.downY = e.Y
		g.state = resolveDragState(e)
		g.target.StartMouseDrag()
	case common.MouseDrag:
		dx := e.X - g.downX
		dy := e.Y - g.downY
		switch g.state {
		case dragPan:
			g.target.Pan(dx, dy)
		case dragDolly:
			g.target.Dolly(float32(dy), interactor.DragMouse)
		case dragRotateXY:
			g.target.Rotate(dx, dy)
		case dragRotateZ:
			g.target.RotateZ(dx, dy)
		case dragNone:
		}
		g.target.UpdateMouseDragUI()
	case common.MouseWheel:
		g.target.Dolly(2.0*e.WheelDY, wheelDragType(e))
	case common.MouseButtonUp:
		g.state = dragNone
		g.target.EndMouseDrag()
	case common.MouseMove:
	}
}

// resolveDragState maps the pressed button and modifier set to a drag state.
func resolveDragState(e common.MouseEvent) dragState {
	switch e.Button {
	case common.MouseButtonLeft:
		if e.Modifiers&common.ModShift != 0 {
			if e.Modifiers&rollModifier() != 0 {
				return dragRotateZ
			}
			return dragDolly
		}
		if e.Modifiers&common.ModCtrl != 0 {
			return dragPan
		}
		if e.Modifiers&common.ModMeta != 0 {
			return dragRotateZ
		}
		return dragRotateXY
	case common.MouseButtonRight:
		return dragPan
	default:
		return dragNone
	}
}

// rollModifier is the modifier that, with Shift, turns a dolly drag into a
// roll. macOS keyboards use Option where other platforms use Ctrl.
func rollModifier() int {
	if runtime.GOOS == "darwin" {
		return common.ModAlt
	}
	return common.ModCtrl
}

// wheelDragType picks the dolly scaling for a scroll event's source device.
func wheelDragType(e common.MouseEvent) interactor.DragType {
	if e.IsTrackpad {
		return interactor.DragTwoFinger
	}
	return interactor.DragWheel
}
