package interactor

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/vantage3d/vantage/common"
	"github.com/vantage3d/vantage/engine/camera"
	"github.com/vantage3d/vantage/engine/scene"
)

// defaultLightDirection matches the direction a freshly built light points.
var defaultLightDirection = mgl32.Vec3{0, -1, 0}

// LightInteractor rotates a directional light in the scene by dragging. The
// accumulated matrix starts at identity on every drag and acts on the light
// direction captured at mouse down, so the light never drifts from repeated
// drags. While a drag is active an arrow indicator entity shows the current
// direction; indicators never contribute to the scene bounds.
type LightInteractor struct {
	*MatrixInteractor

	scene  scene.Scene
	camera camera.Camera

	lightID        uint64
	dirAtMouseDown mgl32.Vec3

	arrowID uint64
}

// NewLightInteractor returns an interactor rotating directional lights in
// scn, using cam's frame to keep drags aligned with the screen.
func NewLightInteractor(scn scene.Scene, cam camera.Camera) *LightInteractor {
	return &LightInteractor{
		MatrixInteractor: NewMatrixInteractor(),
		scene:            scn,
		camera:           cam,
		dirAtMouseDown:   defaultLightDirection,
	}
}

// SetDirectionalLight selects which scene light the interactor manipulates.
func (l *LightInteractor) SetDirectionalLight(id uint64) {
	l.lightID = id
}

// StartMouseDrag captures the light's current direction, resets the
// accumulator to identity and shows the direction indicator.
func (l *LightInteractor) StartMouseDrag() {
	dir := l.scene.LightDirection(l.lightID)
	if dir.Len() > 0 {
		l.dirAtMouseDown = dir.Normalize()
	}
	l.SetMouseDownInfo(mgl32.Ident4(), mgl32.Vec3{})

	size := l.ModelSize()
	if l.arrowID == 0 {
		half := 0.05 * size
		length := 0.8 * size
		l.arrowID = l.scene.AddIndicator("light-direction-arrow", common.NewBoundingBox(
			mgl32.Vec3{-half, -length, -half},
			mgl32.Vec3{half, 0, half},
		))
	}
	l.updateIndicator(l.dirAtMouseDown)
}

// Rotate spins the captured direction about screen-aligned axes and pushes
// the result into the scene.
func (l *LightInteractor) Rotate(dx, dy int) {
	right := l.camera.LeftVector().Mul(-1)
	up := l.camera.UpVector()
	l.RotateWorld(-dx, -dy, right, up)

	dir := l.CurrentDirection()
	l.scene.SetLightDirection(l.lightID, dir)
	l.updateIndicator(dir)
}

// CurrentDirection returns the light direction implied by the accumulated
// rotation applied to the direction captured at mouse down.
func (l *LightInteractor) CurrentDirection() mgl32.Vec3 {
	return l.Matrix().Mat3().Mul3x1(l.dirAtMouseDown).Normalize()
}

// UpdateMouseDragUI re-aims the indicator at the current direction.
func (l *LightInteractor) UpdateMouseDragUI() {
	l.updateIndicator(l.CurrentDirection())
}

// EndMouseDrag removes the direction indicator from the scene.
func (l *LightInteractor) EndMouseDrag() {
	if l.arrowID != 0 {
		l.scene.RemoveEntity(l.arrowID)
		l.arrowID = 0
	}
}

func (l *LightInteractor) updateIndicator(dir mgl32.Vec3) {
	if l.arrowID == 0 {
		return
	}
	center := l.BoundingBox().Center()
	orient := mgl32.QuatBetweenVectors(defaultLightDirection, dir).Mat4()
	transform := mgl32.Translate3D(center.X(), center.Y(), center.Z()).Mul4(orient)
	l.scene.SetEntityTransform(l.arrowID, transform)
}
