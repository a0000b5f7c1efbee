package interactor

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/vantage3d/vantage/common"
	"github.com/vantage3d/vantage/engine/camera"
	"github.com/vantage3d/vantage/engine/scene"
)

// ModelInteractor moves the model instead of the camera. Rotations spin the
// tracked entities about the center of their combined bounds, pans and
// dollies translate them, and the camera never moves. Entity transforms are
// snapshotted at mouse down so every event composes a fresh delta transform
// with the snapshot rather than accumulating error across events.
type ModelInteractor struct {
	*RotationInteractor

	scene scene.Scene

	axesID   uint64
	modelIDs []uint64

	axesWasEnabled        bool
	transformsAtMouseDown map[uint64]mgl32.Mat4
	boundsAtMouseDown     common.BoundingBox
}

// NewModelInteractor returns an interactor moving scene entities relative
// to cam's frame.
func NewModelInteractor(scn scene.Scene, cam camera.Camera, minFarPlane float32) *ModelInteractor {
	return &ModelInteractor{
		RotationInteractor:    NewRotationInteractor(cam, minFarPlane),
		scene:                 scn,
		transformsAtMouseDown: make(map[uint64]mgl32.Mat4),
	}
}

// SetModel selects the entities the interactor manipulates. axes is an
// indicator entity shown while a drag is active; a zero id disables it.
func (m *ModelInteractor) SetModel(axes uint64, objects []uint64) {
	m.axesID = axes
	m.modelIDs = append([]uint64(nil), objects...)
}

// StartMouseDrag snapshots every tracked entity's transform and the combined
// bounds, anchors rotations at the bounds center and shows the axes display.
func (m *ModelInteractor) StartMouseDrag() {
	m.transformsAtMouseDown = make(map[uint64]mgl32.Mat4, len(m.modelIDs))
	for _, id := range m.modelIDs {
		m.transformsAtMouseDown[id] = m.scene.EntityTransform(id)
	}
	m.boundsAtMouseDown = m.BoundingBox()

	if m.axesID != 0 {
		m.axesWasEnabled = m.scene.EntityEnabled(m.axesID)
		m.scene.SetEntityEnabled(m.axesID, true)
	}

	m.SetMouseDownInfo(m.Camera().ModelMatrix(), m.boundsAtMouseDown.Center())
}

// EndMouseDrag restores the axes display to its pre-drag visibility.
func (m *ModelInteractor) EndMouseDrag() {
	if m.axesID != 0 {
		m.scene.SetEntityEnabled(m.axesID, m.axesWasEnabled)
	}
}

// Rotate spins the tracked entities about the center of their bounds, using
// screen-aligned axes from the camera pose captured at mouse down.
func (m *ModelInteractor) Rotate(dx, dy int) {
	if dx == 0 && dy == 0 {
		return
	}

	base := m.MatrixAtMouseDown()
	right := base.Mat3().Mul3x1(mgl32.Vec3{1, 0, 0})
	up := base.Mat3().Mul3x1(mgl32.Vec3{0, 1, 0})
	axis := right.Mul(float32(dy)).Add(up.Mul(float32(dx))).Normalize()
	theta := m.CalcRotateRadians(dx, dy)

	m.applyToModel(m.rotateAboutCenter(theta, axis))
}

// RotateZ spins the tracked entities about the camera's view direction.
func (m *ModelInteractor) RotateZ(dx, dy int) {
	_ = dy
	base := m.MatrixAtMouseDown()
	forward := base.Mat3().Mul3x1(mgl32.Vec3{0, 0, -1})
	theta := m.CalcRotateZRadians(dx)

	m.applyToModel(m.rotateAboutCenter(theta, forward))
}

// Pan slides the tracked entities parallel to the view plane. The deltas
// are negated relative to a camera pan because the model moves instead of
// the viewpoint.
func (m *ModelInteractor) Pan(dx, dy int) {
	move := m.CalcPanVectorWorld(-dx, -dy)
	m.applyToModel(mgl32.Translate3D(move.X(), move.Y(), move.Z()))
}

// Dolly moves the tracked entities along the camera's view direction.
// Wheel and trackpad deltas have no drag anchor, so the snapshot is
// refreshed before the delta is applied.
func (m *ModelInteractor) Dolly(delta float32, dragType DragType) {
	if dragType != DragMouse {
		m.StartMouseDrag()
		defer m.EndMouseDrag()
	}

	dist := m.CalcDollyDist(delta, dragType)
	base := m.MatrixAtMouseDown()
	forward := base.Mat3().Mul3x1(mgl32.Vec3{0, 0, -1})
	move := forward.Mul(-dist)
	m.applyToModel(mgl32.Translate3D(move.X(), move.Y(), move.Z()))
}

// rotateAboutCenter builds a world transform rotating about the bounds
// center captured at mouse down.
func (m *ModelInteractor) rotateAboutCenter(theta float32, axis mgl32.Vec3) mgl32.Mat4 {
	c := m.boundsAtMouseDown.Center()
	return mgl32.Translate3D(c.X(), c.Y(), c.Z()).
		Mul4(mgl32.HomogRotate3D(theta, axis)).
		Mul4(mgl32.Translate3D(-c.X(), -c.Y(), -c.Z()))
}

// applyToModel composes t with every snapshot transform and refreshes the
// tracked bounds so dolly and fly speeds follow the model.
func (m *ModelInteractor) applyToModel(t mgl32.Mat4) {
	for _, id := range m.modelIDs {
		base, ok := m.transformsAtMouseDown[id]
		if !ok {
			base = m.scene.EntityTransform(id)
		}
		m.scene.SetEntityTransform(id, t.Mul4(base))
	}
	m.SetBoundingBox(m.boundsAtMouseDown.Transformed(t))
}
