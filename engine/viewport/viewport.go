// Package viewport hosts a camera, a scene and the interaction controls
// behind a widget-style surface: it receives input and resize events from
// the window, throttles render quality while the user is interacting, and
// tells the renderer when the scene needs drawing again.
package viewport

import (
	"sync"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/vantage3d/vantage/common"
	"github.com/vantage3d/vantage/engine/camera"
	"github.com/vantage3d/vantage/engine/controls"
	"github.com/vantage3d/vantage/engine/scene"
)

const (
	defaultNearPlane = 0.1
	minFarPlane      = 1.0

	// qualityRestoreDelay is how long after the last interaction the
	// render quality returns to best.
	qualityRestoreDelay = 200 * time.Millisecond

	// presetDistanceFactor positions preset views this many largest
	// dimensions away from the content center.
	presetDistanceFactor = 1.5
)

// Quality is the render fidelity the viewport asks of the renderer.
type Quality int

const (
	// QualityBest renders at full fidelity.
	QualityBest Quality = iota
	// QualityFast trades fidelity for responsiveness during interaction.
	QualityFast
)

// CameraPreset is a canned viewing direction along a world axis.
type CameraPreset int

const (
	// PresetPlusX looks at the content from +X.
	PresetPlusX CameraPreset = iota
	// PresetPlusY looks at the content from +Y.
	PresetPlusY
	// PresetPlusZ looks at the content from +Z.
	PresetPlusZ
)

// viewportImpl is the implementation of the Viewport interface.
type viewportImpl struct {
	mu *sync.Mutex

	camera   camera.Camera
	scene    scene.Scene
	controls *controls.Controls

	frameWidth    int
	frameHeight   int
	pendingResize bool

	quality         Quality
	buttonsDown     int
	lastInteraction time.Time
	now             func() time.Time

	bestEntities []uint64
	fastEntities []uint64

	onCameraChanged func(camera.Camera)
}

// Viewport is the interaction host: input events go in, camera, scene and
// render-quality state come out. Thread-safe for concurrent access.
type Viewport interface {
	// Camera returns the viewing camera.
	Camera() camera.Camera

	// Scene returns the hosted scene.
	Scene() scene.Scene

	// Controls returns the interaction dispatcher.
	Controls() *controls.Controls

	// Mode returns the active interaction mode.
	Mode() controls.Mode

	// SetMode switches the active interaction mode.
	SetMode(mode controls.Mode)

	// SetFrame records a resize. The new size takes effect on the next
	// Draw, never mid-event, so a drag in flight keeps its coordinate
	// frame for the rest of the frame.
	//
	// Parameters:
	//   - width: the new frame width in pixels
	//   - height: the new frame height in pixels
	SetFrame(width, height int)

	// FrameSize returns the frame dimensions last applied by Draw.
	FrameSize() (int, int)

	// SetupCamera builds a projection for the scene's current bounds:
	// the far plane is pushed out to cover the content from anywhere the
	// camera can reach, and the orbit pivot moves to the bounds center.
	//
	// Parameters:
	//   - fovDegrees: the vertical field of view
	SetupCamera(fovDegrees float32)

	// GoToCameraPreset moves the camera to a canned view along a world
	// axis, looking at the content center.
	GoToCameraPreset(preset CameraPreset)

	// SelectDirectionalLight chooses the light aimed by light mode and
	// the orbit-mode override. onChanged fires on every drag step.
	SelectDirectionalLight(id uint64, onChanged func(mgl32.Vec3))

	// SetEnvironment configures the skybox entity for environment mode.
	// onChanged fires on every drag step with the accumulated rotation.
	SetEnvironment(skyboxID uint64, isOn bool, onChanged func(mgl32.Mat4))

	// SetModel selects the entities moved by model mode. axes is an
	// indicator entity shown while dragging.
	SetModel(axes uint64, objects []uint64)

	// SetQualityEntities registers interchangeable fidelity sets: best
	// entities show at full quality, fast stand-ins replace them while
	// interaction has the quality throttled.
	SetQualityEntities(best, fast []uint64)

	// SetOnCameraChanged registers a callback fired whenever an event
	// moves the camera.
	SetOnCameraChanged(cb func(camera.Camera))

	// Mouse feeds a pointer event through the quality throttle into the
	// interaction dispatcher.
	Mouse(e common.MouseEvent)

	// Key feeds a keyboard event into the interaction dispatcher.
	Key(e common.KeyEvent)

	// Tick advances time-based motion and the quality restore timer.
	//
	// Returns:
	//   - bool: true if the scene needs redrawing
	Tick(e common.TickEvent) bool

	// Draw applies any deferred resize and returns whether one was
	// applied. The renderer calls it once per frame before drawing.
	Draw() bool

	// RenderQuality returns the fidelity the renderer should use.
	RenderQuality() Quality

	// SetRenderQuality forces the fidelity, swapping quality entity sets
	// to match.
	SetRenderQuality(q Quality)
}

var _ Viewport = &viewportImpl{}

// NewViewport creates a viewport hosting scn viewed through cam.
//
// Parameters:
//   - cam: the viewing camera
//   - scn: the hosted scene
//   - options: functional options to configure the viewport
//
// Returns:
//   - Viewport: the newly created viewport
func NewViewport(cam camera.Camera, scn scene.Scene, options ...ViewportBuilderOption) Viewport {
	v := &viewportImpl{
		mu:          &sync.Mutex{},
		camera:      cam,
		scene:       scn,
		controls:    controls.NewControls(cam, scn, minFarPlane),
		frameWidth:  1,
		frameHeight: 1,
		quality:     QualityBest,
		now:         time.Now,
	}
	for _, option := range options {
		option(v)
	}
	return v
}

func (v *viewportImpl) Camera() camera.Camera {
	return v.camera
}

func (v *viewportImpl) Scene() scene.Scene {
	return v.scene
}

func (v *viewportImpl) Controls() *controls.Controls {
	return v.controls
}

func (v *viewportImpl) Mode() controls.Mode {
	return v.controls.Mode()
}

func (v *viewportImpl) SetMode(mode controls.Mode) {
	v.controls.SetMode(mode)
}

func (v *viewportImpl) SetFrame(width, height int) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	if width == v.frameWidth && height == v.frameHeight {
		return
	}
	v.frameWidth = width
	v.frameHeight = height
	v.pendingResize = true
}

func (v *viewportImpl) FrameSize() (int, int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.frameWidth, v.frameHeight
}

func (v *viewportImpl) SetupCamera(fovDegrees float32) {
	bounds := v.scene.BoundingBox()

	v.mu.Lock()
	aspect := float32(v.frameWidth) / float32(v.frameHeight)
	v.mu.Unlock()

	far := farPlaneFor(bounds, v.camera.ModelMatrix().Col(3).Vec3())
	v.camera.SetProjection(fovDegrees, aspect, defaultNearPlane, far, camera.FovVertical)

	v.controls.SetBoundingBox(bounds)
	v.controls.SetCenterOfRotation(bounds.Center())
	v.controls.SetFieldOfView(fovDegrees)
	v.notifyCameraChanged()
}

func (v *viewportImpl) GoToCameraPreset(preset CameraPreset) {
	bounds := v.scene.BoundingBox()
	center := bounds.Center()
	dist := presetDistanceFactor * bounds.MaxExtent()
	if dist <= 0 {
		dist = presetDistanceFactor
	}

	var eye, up mgl32.Vec3
	switch preset {
	case PresetPlusX:
		eye = center.Add(mgl32.Vec3{dist, 0, 0})
		up = mgl32.Vec3{0, 1, 0}
	case PresetPlusY:
		eye = center.Add(mgl32.Vec3{0, dist, 0})
		up = mgl32.Vec3{0, 0, 1}
	case PresetPlusZ:
		fallthrough
	default:
		eye = center.Add(mgl32.Vec3{0, 0, dist})
		up = mgl32.Vec3{0, 1, 0}
	}

	v.camera.LookAt(center, eye, up)
	v.controls.SetCenterOfRotation(center)
	v.notifyCameraChanged()
}

func (v *viewportImpl) SelectDirectionalLight(id uint64, onChanged func(mgl32.Vec3)) {
	v.controls.SetDirectionalLight(id, onChanged)
}

func (v *viewportImpl) SetEnvironment(skyboxID uint64, isOn bool, onChanged func(mgl32.Mat4)) {
	v.controls.SetSkybox(skyboxID, isOn, onChanged)
}

func (v *viewportImpl) SetModel(axes uint64, objects []uint64) {
	v.controls.SetModel(axes, objects)
}

func (v *viewportImpl) SetQualityEntities(best, fast []uint64) {
	v.mu.Lock()
	v.bestEntities = append([]uint64(nil), best...)
	v.fastEntities = append([]uint64(nil), fast...)
	q := v.quality
	v.mu.Unlock()

	v.applyQualityEntities(q)
}

func (v *viewportImpl) SetOnCameraChanged(cb func(camera.Camera)) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.onCameraChanged = cb
}

func (v *viewportImpl) Mouse(e common.MouseEvent) {
	v.mu.Lock()
	switch e.Type {
	case common.MouseButtonDown:
		v.buttonsDown++
	case common.MouseButtonUp:
		if v.buttonsDown > 0 {
			v.buttonsDown--
		}
	case common.MouseMove, common.MouseDrag, common.MouseWheel:
	}

	interacting := e.Type != common.MouseMove
	// Only drags and wheel scrolling refresh the restore timer; a bare
	// click throttles quality but does not hold it down.
	if e.Type == common.MouseDrag || e.Type == common.MouseWheel {
		v.lastInteraction = v.now()
	}
	needsFast := interacting && v.quality != QualityFast
	if needsFast {
		v.quality = QualityFast
	}
	v.mu.Unlock()

	if needsFast {
		v.applyQualityEntities(QualityFast)
	}

	before := v.camera.ModelMatrix()
	v.controls.Mouse(e)
	if v.camera.ModelMatrix() != before {
		v.notifyCameraChanged()
	}
}

func (v *viewportImpl) Key(e common.KeyEvent) {
	v.controls.Key(e)
}

func (v *viewportImpl) Tick(e common.TickEvent) bool {
	before := v.camera.ModelMatrix()
	redraw := v.controls.Tick(e)
	if v.camera.ModelMatrix() != before {
		v.notifyCameraChanged()
	}

	v.mu.Lock()
	if redraw {
		// Time-based motion counts as interaction; stay fast until it
		// settles.
		v.lastInteraction = v.now()
		if v.quality != QualityFast {
			v.quality = QualityFast
			v.mu.Unlock()
			v.applyQualityEntities(QualityFast)
			return true
		}
		v.mu.Unlock()
		return true
	}

	restore := v.quality == QualityFast &&
		v.buttonsDown == 0 &&
		v.now().Sub(v.lastInteraction) > qualityRestoreDelay
	if restore {
		v.quality = QualityBest
	}
	v.mu.Unlock()

	if restore {
		v.applyQualityEntities(QualityBest)
		return true
	}
	return false
}

func (v *viewportImpl) Draw() bool {
	v.mu.Lock()
	if !v.pendingResize {
		v.mu.Unlock()
		return false
	}
	v.pendingResize = false
	width := v.frameWidth
	height := v.frameHeight
	v.mu.Unlock()

	aspect := float32(width) / float32(height)
	v.camera.SetProjection(
		v.camera.FieldOfView(),
		aspect,
		v.camera.Near(),
		v.camera.Far(),
		v.camera.FieldOfViewType(),
	)
	v.controls.SetViewSize(width, height)
	return true
}

func (v *viewportImpl) RenderQuality() Quality {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.quality
}

func (v *viewportImpl) SetRenderQuality(q Quality) {
	v.mu.Lock()
	changed := q != v.quality
	v.quality = q
	v.mu.Unlock()

	if changed {
		v.applyQualityEntities(q)
	}
}

// applyQualityEntities swaps the registered fidelity sets to match q.
func (v *viewportImpl) applyQualityEntities(q Quality) {
	v.mu.Lock()
	best := v.bestEntities
	fast := v.fastEntities
	v.mu.Unlock()

	showBest := q == QualityBest
	for _, id := range best {
		v.scene.SetEntityEnabled(id, showBest)
	}
	for _, id := range fast {
		v.scene.SetEntityEnabled(id, !showBest)
	}
}

func (v *viewportImpl) notifyCameraChanged() {
	v.mu.Lock()
	cb := v.onCameraChanged
	v.mu.Unlock()

	if cb != nil {
		cb(v.camera)
	}
}

// farPlaneFor computes a far clip distance covering bounds from any
// reachable camera position: the largest origin distance among the bounds
// corners and the camera itself, padded by two content diagonals.
func farPlaneFor(bounds common.BoundingBox, cameraPos mgl32.Vec3) float32 {
	far := bounds.Min.Len()
	if l := bounds.Max.Len(); l > far {
		far = l
	}
	if l := cameraPos.Len(); l > far {
		far = l
	}
	far += 2.0 * bounds.ExtentNorm()
	if far < minFarPlane {
		far = minFarPlane
	}
	return far
}
