// Package controls turns raw pointer, key and tick events into camera,
// light, environment and model manipulation. Each interaction mode is a
// small state machine wrapping one of the interactor types; a dispatcher
// routes events to the active mode and handles the temporary override that
// lets a middle-button or Alt drag aim the sun without leaving orbit mode.
package controls

import (
	"sync"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/vantage3d/vantage/common"
	"github.com/vantage3d/vantage/engine/camera"
	"github.com/vantage3d/vantage/engine/interactor"
	"github.com/vantage3d/vantage/engine/scene"
)

// Mode selects which interaction state machine receives events.
type Mode int

const (
	// ModeOrbit rotates the camera around a center of rotation.
	ModeOrbit Mode = iota
	// ModeFly moves the camera first-person style.
	ModeFly
	// ModeRotateLight aims the scene's directional light.
	ModeRotateLight
	// ModeRotateEnvironment spins the skybox and image-based lighting.
	ModeRotateEnvironment
	// ModeRotateModel moves the model instead of the camera.
	ModeRotateModel
)

// MouseInteractor is one interaction mode: a gesture state machine feeding
// an interactor. Tick reports whether the scene needs redrawing.
type MouseInteractor interface {
	// Interactor exposes the underlying accumulator for view-size and
	// bounds fan-out.
	Interactor() *interactor.MatrixInteractor

	// Mouse feeds a pointer event to the mode's state machine.
	Mouse(e common.MouseEvent)

	// Key feeds a keyboard event to the mode's state machine.
	Key(e common.KeyEvent)

	// Tick advances time-based motion.
	//
	// Returns:
	//   - bool: true if the scene changed and needs redrawing
	Tick(e common.TickEvent) bool
}

var (
	_ MouseInteractor = &rotateCameraControl{}
	_ MouseInteractor = &flyControl{}
	_ MouseInteractor = &rotateLightControl{}
	_ MouseInteractor = &rotateEnvironmentControl{}
	_ MouseInteractor = &rotateModelControl{}
)

// Controls owns the five interaction modes and dispatches events to the
// active one. While in orbit mode, pressing the middle mouse button or
// holding Alt alone temporarily reroutes the drag to the light mode; the
// override lasts until the button is released.
// Thread-safe for concurrent access.
type Controls struct {
	mu *sync.Mutex

	cameraInteractor *interactor.CameraInteractor
	lightInteractor  *interactor.LightInteractor

	orbit       *rotateCameraControl
	fly         *flyControl
	light       *rotateLightControl
	environment *rotateEnvironmentControl
	model       *rotateModelControl

	mode     Mode
	current  MouseInteractor
	override MouseInteractor
}

// NewControls builds the dispatcher and its five modes around cam and scn.
// minFarPlane bounds how far in the far clip plane may collapse when it is
// recomputed after a dolly.
func NewControls(cam camera.Camera, scn scene.Scene, minFarPlane float32) *Controls {
	cameraInteractor := interactor.NewCameraInteractor(cam, minFarPlane)
	lightInteractor := interactor.NewLightInteractor(scn, cam)

	c := &Controls{
		mu:               &sync.Mutex{},
		cameraInteractor: cameraInteractor,
		lightInteractor:  lightInteractor,
		orbit:            newRotateCameraControl(cameraInteractor),
		fly:              newFlyControl(cameraInteractor),
		light:            newRotateLightControl(lightInteractor),
		environment:      newRotateEnvironmentControl(interactor.NewEnvironmentInteractor(scn, cam)),
		model:            newRotateModelControl(interactor.NewModelInteractor(scn, cam, minFarPlane)),
	}
	c.mode = ModeOrbit
	c.current = c.orbit
	return c
}

// Mode returns the active interaction mode.
func (c *Controls) Mode() Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

// SetMode switches the active interaction mode. Leaving fly mode for orbit
// re-derives the center of rotation along the camera's current view
// direction, since flying moves the camera without maintaining a pivot.
func (c *Controls) SetMode(mode Mode) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if mode == c.mode {
		return
	}

	if mode == ModeOrbit && c.mode == ModeFly {
		cam := c.cameraInteractor.Camera()
		pos := cam.Position()
		dist := c.cameraInteractor.CenterOfRotation().Sub(pos).Len()
		c.cameraInteractor.SetCenterOfRotation(pos.Add(cam.ForwardVector().Mul(dist)))
	}

	c.mode = mode
	c.override = nil
	switch mode {
	case ModeFly:
		c.current = c.fly
	case ModeRotateLight:
		c.current = c.light
	case ModeRotateEnvironment:
		c.current = c.environment
	case ModeRotateModel:
		c.current = c.model
	case ModeOrbit:
		fallthrough
	default:
		c.current = c.orbit
	}
}

// SetViewSize propagates the viewport dimensions to every mode.
func (c *Controls) SetViewSize(width, height int) {
	for _, m := range c.modes() {
		m.Interactor().SetViewSize(width, height)
	}
}

// SetBoundingBox propagates the content bounds to every mode.
func (c *Controls) SetBoundingBox(bounds common.BoundingBox) {
	for _, m := range c.modes() {
		m.Interactor().SetBoundingBox(bounds)
	}
}

// SetCenterOfRotation sets the orbit pivot.
func (c *Controls) SetCenterOfRotation(center mgl32.Vec3) {
	c.cameraInteractor.SetCenterOfRotation(center)
}

// SetFieldOfView keeps pan scaling in sync with the camera projection.
func (c *Controls) SetFieldOfView(degrees float32) {
	for _, m := range c.modes() {
		m.Interactor().SetFieldOfView(degrees)
	}
}

// SetDirectionalLight selects the light aimed in light mode and by the
// orbit-mode override. onChanged fires on every drag step with the new
// direction; nil disables the notification.
func (c *Controls) SetDirectionalLight(id uint64, onChanged func(mgl32.Vec3)) {
	c.lightInteractor.SetDirectionalLight(id)
	c.light.setOnChanged(onChanged)
}

// SetSkybox configures environment mode. onChanged fires on every drag step
// with the accumulated environment rotation; nil disables the notification.
func (c *Controls) SetSkybox(id uint64, isOn bool, onChanged func(mgl32.Mat4)) {
	c.environment.interactor.SetSkybox(id, isOn)
	c.environment.setOnChanged(onChanged)
}

// SetModel selects the entities moved in model mode.
func (c *Controls) SetModel(axes uint64, objects []uint64) {
	c.model.interactor.SetModel(axes, objects)
}

// CameraInteractor exposes the orbit/fly camera interactor for camera setup
// and presets.
func (c *Controls) CameraInteractor() *interactor.CameraInteractor {
	return c.cameraInteractor
}

// Mouse routes a pointer event. In orbit mode a middle-button press, or a
// press with Alt as the only modifier, arms the light override; the event
// and all events until the button release go to the light mode instead.
func (c *Controls) Mouse(e common.MouseEvent) {
	c.mu.Lock()
	if e.Type == common.MouseButtonDown && c.mode == ModeOrbit {
		if e.Button == common.MouseButtonMiddle || e.Modifiers == common.ModAlt {
			c.override = c.light
		}
	}
	target := c.current
	if c.override != nil {
		target = c.override
	}
	if e.Type == common.MouseButtonUp {
		c.override = nil
	}
	c.mu.Unlock()

	fovBefore := c.cameraInteractor.Camera().FieldOfView()
	target.Mouse(e)

	// A zoom changes the projection; every mode scales pan by the field of
	// view, so fan the new value out rather than leaving it with the
	// camera mode alone.
	if fov := c.cameraInteractor.Camera().FieldOfView(); fov != fovBefore {
		c.SetFieldOfView(fov)
	}
}

// Key routes a keyboard event to the active mode.
func (c *Controls) Key(e common.KeyEvent) {
	c.mu.Lock()
	target := c.current
	if c.override != nil {
		target = c.override
	}
	c.mu.Unlock()

	target.Key(e)
}

// Tick advances time-based motion in the active mode only; an armed
// override never receives ticks.
//
// Returns:
//   - bool: true if the scene changed and needs redrawing
func (c *Controls) Tick(e common.TickEvent) bool {
	c.mu.Lock()
	target := c.current
	c.mu.Unlock()

	return target.Tick(e)
}

func (c *Controls) modes() []MouseInteractor {
	return []MouseInteractor{c.orbit, c.fly, c.light, c.environment, c.model}
}
