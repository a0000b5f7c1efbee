package controls

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/vantage3d/vantage/common"
	"github.com/vantage3d/vantage/engine/camera"
	"github.com/vantage3d/vantage/engine/light"
	"github.com/vantage3d/vantage/engine/scene"
)

const testEpsilon = 1e-4

func vec3Equal(a, b mgl32.Vec3) bool {
	return a.Sub(b).Len() < testEpsilon
}

func newTestControls() (*Controls, camera.Camera, scene.Scene, uint64) {
	scn := scene.NewScene()
	scn.AddEntity("cube", common.NewBoundingBox(
		mgl32.Vec3{-1, -1, -1},
		mgl32.Vec3{1, 1, 1},
	))
	lightID := scn.AddLight(light.NewLight())

	cam := camera.NewCamera(
		camera.WithModelMatrix(mgl32.Translate3D(0, 0, 5)),
	)

	c := NewControls(cam, scn, 1.0)
	c.SetViewSize(400, 400)
	c.SetBoundingBox(scn.BoundingBox())
	c.SetDirectionalLight(lightID, nil)
	return c, cam, scn, lightID
}

func drag(c *Controls, button common.MouseButton, modifiers, fromX, fromY, toX, toY int) {
	c.Mouse(common.MouseEvent{
		Type: common.MouseButtonDown, X: fromX, Y: fromY,
		Button: button, Modifiers: modifiers,
	})
	c.Mouse(common.MouseEvent{
		Type: common.MouseDrag, X: toX, Y: toY,
		Button: button, Modifiers: modifiers,
	})
	c.Mouse(common.MouseEvent{
		Type: common.MouseButtonUp, X: toX, Y: toY,
		Button: button, Modifiers: modifiers,
	})
}

func TestOrbitDragMovesCamera(t *testing.T) {
	c, cam, _, _ := newTestControls()
	before := cam.Position()

	drag(c, common.MouseButtonLeft, 0, 100, 100, 160, 130)

	if vec3Equal(before, cam.Position()) {
		t.Errorf("orbit drag left the camera in place")
	}
}

func TestMiddleButtonOverridesToLight(t *testing.T) {
	c, cam, scn, lightID := newTestControls()
	camBefore := cam.ModelMatrix()
	dirBefore := scn.LightDirection(lightID)

	drag(c, common.MouseButtonMiddle, 0, 100, 100, 170, 140)

	if vec3Equal(dirBefore, scn.LightDirection(lightID)) {
		t.Errorf("middle-button drag should aim the light")
	}
	for i := 0; i < 16; i++ {
		if math.Abs(float64(camBefore[i]-cam.ModelMatrix()[i])) > testEpsilon {
			t.Fatalf("middle-button drag must not move the camera")
		}
	}
}

func TestAltAloneOverridesToLight(t *testing.T) {
	c, _, scn, lightID := newTestControls()
	dirBefore := scn.LightDirection(lightID)

	drag(c, common.MouseButtonLeft, common.ModAlt, 100, 100, 170, 140)

	if vec3Equal(dirBefore, scn.LightDirection(lightID)) {
		t.Errorf("Alt-drag in orbit mode should aim the light")
	}
}

func TestAltWithOtherModifiersDoesNotOverride(t *testing.T) {
	c, _, scn, lightID := newTestControls()
	dirBefore := scn.LightDirection(lightID)

	drag(c, common.MouseButtonLeft, common.ModAlt|common.ModShift, 100, 100, 170, 140)

	if !vec3Equal(dirBefore, scn.LightDirection(lightID)) {
		t.Errorf("Alt combined with other modifiers must not arm the light override")
	}
}

func TestOverrideClearsOnButtonUp(t *testing.T) {
	c, cam, _, _ := newTestControls()

	drag(c, common.MouseButtonMiddle, 0, 100, 100, 170, 140)

	// The next plain drag must orbit the camera again.
	before := cam.Position()
	drag(c, common.MouseButtonLeft, 0, 100, 100, 160, 130)
	if vec3Equal(before, cam.Position()) {
		t.Errorf("override should end with the button release")
	}
}

func TestOverrideOnlyArmsInOrbitMode(t *testing.T) {
	c, _, scn, lightID := newTestControls()
	c.SetMode(ModeFly)
	dirBefore := scn.LightDirection(lightID)

	drag(c, common.MouseButtonMiddle, 0, 100, 100, 170, 140)

	if !vec3Equal(dirBefore, scn.LightDirection(lightID)) {
		t.Errorf("light override must not arm outside orbit mode")
	}
}

func TestFlyTickIntegratesHeldKeys(t *testing.T) {
	c, cam, _, _ := newTestControls()
	c.SetMode(ModeFly)
	before := cam.Position()

	c.Key(common.KeyEvent{Type: common.KeyPress, Key: common.KeyW})
	if !c.Tick(common.TickEvent{}) {
		t.Fatalf("tick with a held key should request a redraw")
	}
	if vec3Equal(before, cam.Position()) {
		t.Errorf("held forward key should move the camera on tick")
	}

	c.Key(common.KeyEvent{Type: common.KeyRelease, Key: common.KeyW})
	if c.Tick(common.TickEvent{}) {
		t.Errorf("tick with no held keys should not request a redraw")
	}
}

func TestFlySpeedScalesWithContentSize(t *testing.T) {
	c, cam, _, _ := newTestControls()
	c.SetMode(ModeFly)
	c.Key(common.KeyEvent{Type: common.KeyPress, Key: common.KeyW})
	p0 := cam.Position()
	c.Tick(common.TickEvent{})
	smallStep := cam.Position().Sub(p0).Len()

	c2, cam2, _, _ := newTestControls()
	c2.SetBoundingBox(common.NewBoundingBox(
		mgl32.Vec3{-10, -10, -10},
		mgl32.Vec3{10, 10, 10},
	))
	c2.SetMode(ModeFly)
	c2.Key(common.KeyEvent{Type: common.KeyPress, Key: common.KeyW})
	p1 := cam2.Position()
	c2.Tick(common.TickEvent{})
	bigStep := cam2.Position().Sub(p1).Len()

	if math.Abs(float64(bigStep-10*smallStep)) > testEpsilon {
		t.Errorf("fly speed should scale with the content diagonal: %f vs %f", smallStep, bigStep)
	}
}

func TestTickRoutesToActiveModeOnly(t *testing.T) {
	c, cam, _, _ := newTestControls()
	// Orbit mode ignores held keys entirely.
	c.Key(common.KeyEvent{Type: common.KeyPress, Key: common.KeyW})
	before := cam.Position()
	if c.Tick(common.TickEvent{}) {
		t.Errorf("orbit mode tick should never request a redraw")
	}
	if !vec3Equal(before, cam.Position()) {
		t.Errorf("orbit mode tick moved the camera")
	}
}

func TestLeavingFlyModeRecentersOrbitPivot(t *testing.T) {
	c, cam, _, _ := newTestControls()
	pivotDist := c.CameraInteractor().CenterOfRotation().Sub(cam.Position()).Len()

	c.SetMode(ModeFly)
	// Turn the camera so the old pivot is no longer ahead.
	c.Mouse(common.MouseEvent{Type: common.MouseButtonDown, X: 100, Y: 100, Button: common.MouseButtonLeft})
	c.Mouse(common.MouseEvent{Type: common.MouseDrag, X: 250, Y: 100, Button: common.MouseButtonLeft})
	c.Mouse(common.MouseEvent{Type: common.MouseButtonUp, X: 250, Y: 100, Button: common.MouseButtonLeft})
	c.SetMode(ModeOrbit)

	want := cam.Position().Add(cam.ForwardVector().Mul(pivotDist))
	if !vec3Equal(c.CameraInteractor().CenterOfRotation(), want) {
		t.Errorf("pivot should sit ahead of the camera after leaving fly mode: got %+v, want %+v",
			c.CameraInteractor().CenterOfRotation(), want)
	}
}

func TestShiftWheelZoomsInsteadOfDollying(t *testing.T) {
	c, cam, _, _ := newTestControls()
	posBefore := cam.Position()
	fovBefore := cam.FieldOfView()

	c.Mouse(common.MouseEvent{Type: common.MouseWheel, Modifiers: common.ModShift, WheelDY: 1})

	if !vec3Equal(posBefore, cam.Position()) {
		t.Errorf("shift+wheel should not move the camera")
	}
	if math.Abs(float64(fovBefore-cam.FieldOfView())) < testEpsilon {
		t.Errorf("shift+wheel should change the field of view")
	}
}

func TestZoomRescalesPanInEveryMode(t *testing.T) {
	c, cam, _, _ := newTestControls()

	// Anchor a drag snapshot on the model mode so its pan vector has the
	// camera-to-pivot distance to scale by.
	mi := c.model.Interactor()
	mi.SetMouseDownInfo(cam.ModelMatrix(), mgl32.Vec3{0, 0, 0})
	before := mi.CalcPanVectorWorld(40, 0).Len()

	// Shift+wheel zoom in orbit mode narrows the projection from 60 to 40
	// degrees; pan steps in every mode must shrink with it.
	c.Mouse(common.MouseEvent{Type: common.MouseWheel, Modifiers: common.ModShift, WheelDY: -5})
	if math.Abs(float64(cam.FieldOfView()-40)) > testEpsilon {
		t.Fatalf("expected field of view 40 after zoom, got %f", cam.FieldOfView())
	}

	after := mi.CalcPanVectorWorld(40, 0).Len()
	want := before * float32(math.Tan(20*math.Pi/180)/math.Tan(30*math.Pi/180))
	if math.Abs(float64(after-want)) > testEpsilon {
		t.Errorf("expected pan step %f after zoom, got %f", want, after)
	}
}

func TestWheelDollyMovesCamera(t *testing.T) {
	c, cam, _, _ := newTestControls()
	before := cam.Position()

	c.Mouse(common.MouseEvent{Type: common.MouseWheel, WheelDY: 1})

	if vec3Equal(before, cam.Position()) {
		t.Errorf("wheel should dolly the camera")
	}
}
