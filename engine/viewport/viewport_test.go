package viewport

import (
	"math"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/vantage3d/vantage/common"
	"github.com/vantage3d/vantage/engine/camera"
	"github.com/vantage3d/vantage/engine/controls"
	"github.com/vantage3d/vantage/engine/scene"
)

const testEpsilon = 1e-4

// fakeClock steps time only when the test asks it to.
type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time {
	return c.t
}

func (c *fakeClock) advance(d time.Duration) {
	c.t = c.t.Add(d)
}

func newTestViewport(clock *fakeClock) (Viewport, camera.Camera, scene.Scene) {
	scn := scene.NewScene()
	scn.AddEntity("cube", common.NewBoundingBox(
		mgl32.Vec3{-1, -1, -1},
		mgl32.Vec3{1, 1, 1},
	))
	cam := camera.NewCamera(
		camera.WithModelMatrix(mgl32.Translate3D(0, 0, 5)),
	)
	opts := []ViewportBuilderOption{WithFrameSize(400, 400)}
	if clock != nil {
		opts = append(opts, WithTimeSource(clock.now))
	}
	v := NewViewport(cam, scn, opts...)
	return v, cam, scn
}

func TestResizeDeferredUntilDraw(t *testing.T) {
	v, cam, _ := newTestViewport(nil)
	v.SetupCamera(60)
	aspectBefore := cam.Aspect()

	v.SetFrame(800, 400)

	if cam.Aspect() != aspectBefore {
		t.Fatalf("resize applied before Draw")
	}
	if !v.Draw() {
		t.Fatalf("Draw should report the applied resize")
	}
	if math.Abs(float64(cam.Aspect()-2.0)) > testEpsilon {
		t.Errorf("expected aspect 2.0 after draw, got %f", cam.Aspect())
	}
	if v.Draw() {
		t.Errorf("a resize must be consumed exactly once")
	}
}

func TestRedundantResizeIgnored(t *testing.T) {
	v, _, _ := newTestViewport(nil)
	w, h := v.FrameSize()
	v.SetFrame(w, h)
	if v.Draw() {
		t.Errorf("same-size resize should not mark the frame dirty")
	}
}

func TestSetupCameraCoversContent(t *testing.T) {
	v, cam, _ := newTestViewport(nil)
	v.SetupCamera(60)

	bounds := v.Scene().BoundingBox()
	needed := cam.Position().Len() + 2*bounds.ExtentNorm()
	if float64(cam.Far()) < float64(needed)-testEpsilon {
		t.Errorf("far plane %f cannot cover content needing %f", cam.Far(), needed)
	}
	if cam.Far() < 1.0 {
		t.Errorf("far plane below floor: %f", cam.Far())
	}
}

func TestSetupCameraCentersPivot(t *testing.T) {
	v, _, scn := newTestViewport(nil)
	scn.AddEntity("offset", common.NewBoundingBox(
		mgl32.Vec3{4, 4, 4},
		mgl32.Vec3{6, 6, 6},
	))
	v.SetupCamera(60)

	pivot := v.Controls().CameraInteractor().CenterOfRotation()
	want := scn.BoundingBox().Center()
	if pivot.Sub(want).Len() > testEpsilon {
		t.Errorf("pivot %+v should sit at bounds center %+v", pivot, want)
	}
}

func TestCameraPresetsLookAtCenter(t *testing.T) {
	v, cam, scn := newTestViewport(nil)
	center := scn.BoundingBox().Center()

	for _, preset := range []CameraPreset{PresetPlusX, PresetPlusY, PresetPlusZ} {
		v.GoToCameraPreset(preset)
		toCenter := center.Sub(cam.Position()).Normalize()
		if toCenter.Sub(cam.ForwardVector()).Len() > testEpsilon {
			t.Errorf("preset %d: camera does not face the content center", preset)
		}
	}
}

func TestInteractionDropsQualityUntilIdle(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1000, 0)}
	v, _, _ := newTestViewport(clock)

	v.Mouse(common.MouseEvent{Type: common.MouseButtonDown, Button: common.MouseButtonLeft, X: 10, Y: 10})
	if v.RenderQuality() != QualityFast {
		t.Fatalf("interaction should drop quality to fast")
	}
	v.Mouse(common.MouseEvent{Type: common.MouseDrag, Button: common.MouseButtonLeft, X: 30, Y: 10})
	v.Mouse(common.MouseEvent{Type: common.MouseButtonUp, Button: common.MouseButtonLeft, X: 30, Y: 10})

	// Still inside the restore delay.
	clock.advance(100 * time.Millisecond)
	if v.Tick(common.TickEvent{}) {
		t.Errorf("quality should not restore before the delay elapses")
	}
	if v.RenderQuality() != QualityFast {
		t.Errorf("quality restored too early")
	}

	clock.advance(150 * time.Millisecond)
	if !v.Tick(common.TickEvent{}) {
		t.Errorf("quality restore should request a redraw")
	}
	if v.RenderQuality() != QualityBest {
		t.Errorf("quality should restore to best after idle delay")
	}
}

func TestClickWithoutDragDoesNotDelayRestore(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1000, 0)}
	v, _, _ := newTestViewport(clock)

	v.Mouse(common.MouseEvent{Type: common.MouseButtonDown, Button: common.MouseButtonLeft, X: 10, Y: 10})
	v.Mouse(common.MouseEvent{Type: common.MouseDrag, Button: common.MouseButtonLeft, X: 30, Y: 10})
	v.Mouse(common.MouseEvent{Type: common.MouseButtonUp, Button: common.MouseButtonLeft, X: 30, Y: 10})

	// A plain click partway through the delay throttles quality but must
	// not push the restore out; the timer runs from the last drag.
	clock.advance(150 * time.Millisecond)
	v.Mouse(common.MouseEvent{Type: common.MouseButtonDown, Button: common.MouseButtonLeft, X: 30, Y: 10})
	v.Mouse(common.MouseEvent{Type: common.MouseButtonUp, Button: common.MouseButtonLeft, X: 30, Y: 10})

	clock.advance(100 * time.Millisecond)
	if !v.Tick(common.TickEvent{}) {
		t.Errorf("restore should fire once the delay from the last drag elapses")
	}
	if v.RenderQuality() != QualityBest {
		t.Errorf("quality should restore to best despite the intervening click")
	}
}

func TestQualityStaysFastWhileButtonHeld(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1000, 0)}
	v, _, _ := newTestViewport(clock)

	v.Mouse(common.MouseEvent{Type: common.MouseButtonDown, Button: common.MouseButtonLeft, X: 10, Y: 10})
	clock.advance(10 * time.Second)
	v.Tick(common.TickEvent{})

	if v.RenderQuality() != QualityBest {
		// Held button keeps quality fast no matter how long idle.
		return
	}
	t.Errorf("quality restored while a button was still held")
}

func TestMoveEventsDoNotDropQuality(t *testing.T) {
	v, _, _ := newTestViewport(&fakeClock{t: time.Unix(1000, 0)})
	v.Mouse(common.MouseEvent{Type: common.MouseMove, X: 10, Y: 10})
	if v.RenderQuality() != QualityBest {
		t.Errorf("hover movement must not throttle quality")
	}
}

func TestQualityEntitySwap(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1000, 0)}
	v, _, scn := newTestViewport(clock)

	best := scn.AddEntity("cloud", common.NewBoundingBox(mgl32.Vec3{-1, -1, -1}, mgl32.Vec3{1, 1, 1}))
	fast := scn.AddEntity("cloud-small", common.NewBoundingBox(mgl32.Vec3{-1, -1, -1}, mgl32.Vec3{1, 1, 1}))
	v.SetQualityEntities([]uint64{best}, []uint64{fast})

	if !scn.EntityEnabled(best) || scn.EntityEnabled(fast) {
		t.Fatalf("best quality should show the full entity only")
	}

	v.Mouse(common.MouseEvent{Type: common.MouseWheel, WheelDY: 1})
	if scn.EntityEnabled(best) || !scn.EntityEnabled(fast) {
		t.Errorf("fast quality should swap in the stand-in entity")
	}

	clock.advance(time.Second)
	v.Tick(common.TickEvent{})
	if !scn.EntityEnabled(best) || scn.EntityEnabled(fast) {
		t.Errorf("restoring quality should swap the full entity back")
	}
}

func TestCameraChangedCallback(t *testing.T) {
	v, _, _ := newTestViewport(nil)
	v.SetupCamera(60)

	calls := 0
	v.SetOnCameraChanged(func(camera.Camera) { calls++ })

	v.Mouse(common.MouseEvent{Type: common.MouseButtonDown, Button: common.MouseButtonLeft, X: 10, Y: 10})
	v.Mouse(common.MouseEvent{Type: common.MouseDrag, Button: common.MouseButtonLeft, X: 60, Y: 40})
	if calls == 0 {
		t.Errorf("orbit drag should report a camera change")
	}

	calls = 0
	v.Mouse(common.MouseEvent{Type: common.MouseMove, X: 70, Y: 40})
	if calls != 0 {
		t.Errorf("hover movement should not report a camera change")
	}
}

func TestFlyTickRequestsRedraw(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1000, 0)}
	v, cam, _ := newTestViewport(clock)
	v.SetupCamera(60)
	v.SetMode(controls.ModeFly)

	before := cam.Position()
	v.Key(common.KeyEvent{Type: common.KeyPress, Key: common.KeyW})
	if !v.Tick(common.TickEvent{}) {
		t.Fatalf("fly motion should request a redraw")
	}
	if before.Sub(cam.Position()).Len() == 0 {
		t.Errorf("fly tick did not move the camera")
	}
	if v.RenderQuality() != QualityFast {
		t.Errorf("fly motion should throttle quality like a drag")
	}
}
