package controls

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/vantage3d/vantage/common"
	"github.com/vantage3d/vantage/engine/interactor"
)

const (
	// flyMovePerTick is the fraction of the content diagonal a held
	// movement key covers each tick.
	flyMovePerTick = 0.0025
	// flyTurnPerTick is the rotation in radians a held turn key covers
	// each tick.
	flyTurnPerTick = 0.0075
)

// flyControl is first-person mode. Drags turn the camera in place with
// per-event deltas, and held WASD-style keys integrate movement on every
// tick, scaled so crossing a large model takes as many ticks as a small one.
type flyControl struct {
	interactor *interactor.CameraInteractor

	lastX, lastY int
	keysDown     map[uint32]struct{}
}

func newFlyControl(ci *interactor.CameraInteractor) *flyControl {
	return &flyControl{
		interactor: ci,
		keysDown:   make(map[uint32]struct{}),
	}
}

func (f *flyControl) Interactor() *interactor.MatrixInteractor {
	return f.interactor.MatrixInteractor
}

func (f *flyControl) Mouse(e common.MouseEvent) {
	switch e.Type {
	case common.MouseButtonDown:
		f.lastX = e.X
		f.lastY = e.Y
		f.interactor.StartMouseDrag()
	case common.MouseDrag:
		dx := e.X - f.lastX
		dy := e.Y - f.lastY
		f.lastX = e.X
		f.lastY = e.Y
		if e.Modifiers&common.ModMeta != 0 {
			f.interactor.RotateZ(dx, dy)
		} else {
			f.interactor.RotateFly(-dx, -dy)
		}
		// Deltas are per-event, so re-anchor for the next one.
		f.interactor.ResetMouseDrag()
	case common.MouseButtonUp:
		f.interactor.EndMouseDrag()
	case common.MouseMove, common.MouseWheel:
	}
}

func (f *flyControl) Key(e common.KeyEvent) {
	switch e.Type {
	case common.KeyPress:
		f.keysDown[e.Key] = struct{}{}
	case common.KeyRelease:
		delete(f.keysDown, e.Key)
	}
}

func (f *flyControl) Tick(e common.TickEvent) bool {
	if len(f.keysDown) == 0 {
		return false
	}

	dist := flyMovePerTick * f.interactor.ModelSize()
	redraw := false

	move := func(v mgl32.Vec3) {
		f.interactor.MoveLocal(v.Mul(dist))
		redraw = true
	}
	turn := func(mult float32, axis mgl32.Vec3) {
		f.interactor.RotateLocal(mult*flyTurnPerTick, axis)
		redraw = true
	}

	if f.held(common.KeyA) {
		move(mgl32.Vec3{-1, 0, 0})
	}
	if f.held(common.KeyD) {
		move(mgl32.Vec3{1, 0, 0})
	}
	if f.held(common.KeyW) {
		move(mgl32.Vec3{0, 0, -1})
	}
	if f.held(common.KeyS) {
		move(mgl32.Vec3{0, 0, 1})
	}
	if f.held(common.KeyQ) {
		move(mgl32.Vec3{0, 1, 0})
	}
	if f.held(common.KeyZ) {
		move(mgl32.Vec3{0, -1, 0})
	}
	if f.held(common.KeyE) {
		turn(-2, mgl32.Vec3{0, 0, 1})
	}
	if f.held(common.KeyR) {
		turn(2, mgl32.Vec3{0, 0, 1})
	}
	if f.held(common.KeyUp) {
		turn(1, mgl32.Vec3{1, 0, 0})
	}
	if f.held(common.KeyDown) {
		turn(-1, mgl32.Vec3{1, 0, 0})
	}
	if f.held(common.KeyLeft) {
		turn(1, mgl32.Vec3{0, 1, 0})
	}
	if f.held(common.KeyRight) {
		turn(-1, mgl32.Vec3{0, 1, 0})
	}
	return redraw
}

func (f *flyControl) held(key uint32) bool {
	_, ok := f.keysDown[key]
	return ok
}
