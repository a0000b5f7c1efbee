package interactor

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/vantage3d/vantage/engine/camera"
	"github.com/vantage3d/vantage/engine/scene"
)

// EnvironmentInteractor rotates the scene's environment map (skybox plus
// image-based lighting) by dragging. The accumulator starts at identity on
// every drag and composes with the rotation captured at mouse down. When the
// skybox is normally hidden it is shown for the duration of the drag so the
// rotation has visible feedback.
type EnvironmentInteractor struct {
	*MatrixInteractor

	scene  scene.Scene
	camera camera.Camera

	skyboxID   uint64
	skyboxIsOn bool

	rotationAtMouseDown mgl32.Mat4
}

// NewEnvironmentInteractor returns an interactor rotating scn's environment,
// using cam's frame to keep drags aligned with the screen.
func NewEnvironmentInteractor(scn scene.Scene, cam camera.Camera) *EnvironmentInteractor {
	return &EnvironmentInteractor{
		MatrixInteractor:    NewMatrixInteractor(),
		scene:               scn,
		camera:              cam,
		rotationAtMouseDown: mgl32.Ident4(),
	}
}

// SetSkybox records the skybox entity and whether it is normally visible.
// A zero id means the scene has no skybox geometry to toggle.
func (e *EnvironmentInteractor) SetSkybox(id uint64, isOn bool) {
	e.skyboxID = id
	e.skyboxIsOn = isOn
}

// StartMouseDrag captures the environment rotation, resets the accumulator
// and reveals the skybox if it is normally hidden.
func (e *EnvironmentInteractor) StartMouseDrag() {
	e.rotationAtMouseDown = e.scene.EnvironmentRotation()
	e.SetMouseDownInfo(mgl32.Ident4(), mgl32.Vec3{})

	if e.skyboxID != 0 && !e.skyboxIsOn {
		e.scene.SetEntityEnabled(e.skyboxID, true)
	}
}

// Rotate spins the environment about screen-aligned axes.
func (e *EnvironmentInteractor) Rotate(dx, dy int) {
	right := e.camera.LeftVector().Mul(-1)
	up := e.camera.UpVector()
	e.RotateWorld(-dx, -dy, right, up)
	e.scene.SetEnvironmentRotation(e.CurrentRotation())
}

// RotateZ spins the environment about the camera's view direction.
func (e *EnvironmentInteractor) RotateZ(dx, dy int) {
	forward := e.camera.ForwardVector()
	e.RotateZWorld(dx, dy, forward)
	e.scene.SetEnvironmentRotation(e.CurrentRotation())
}

// CurrentRotation returns the accumulated drag rotation composed with the
// rotation captured at mouse down.
func (e *EnvironmentInteractor) CurrentRotation() mgl32.Mat4 {
	return e.Matrix().Mul4(e.rotationAtMouseDown)
}

// EndMouseDrag restores the skybox to its normal visibility.
func (e *EnvironmentInteractor) EndMouseDrag() {
	if e.skyboxID != 0 && !e.skyboxIsOn {
		e.scene.SetEntityEnabled(e.skyboxID, false)
	}
}
