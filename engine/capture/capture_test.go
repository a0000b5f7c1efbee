package capture

import (
	"bytes"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/vantage3d/vantage/common"
	"github.com/vantage3d/vantage/engine/scene"
)

// fakeFrameRenderer simulates an async GPU readback: the pixel copy
// requested on one frame lands after framesUntilReady further EndFrame
// calls.
type fakeFrameRenderer struct {
	width, height uint32
	pixel         byte

	framesUntilReady int
	failCopy         bool

	beginFailures int

	pending   func([]byte)
	frames    int
	renders   int
	copies    int
	released  bool
	countdown int
}

func (f *fakeFrameRenderer) SetDimensions(width, height uint32) error {
	f.width = width
	f.height = height
	return nil
}

func (f *fakeFrameRenderer) Dimensions() (uint32, uint32) {
	return f.width, f.height
}

func (f *fakeFrameRenderer) BeginFrame() bool {
	if f.beginFailures > 0 {
		f.beginFailures--
		return false
	}
	f.frames++
	return true
}

func (f *fakeFrameRenderer) Render(scn scene.Scene) {
	f.renders++
}

func (f *fakeFrameRenderer) RequestPixels(done func(pixels []byte)) {
	f.copies++
	f.pending = done
	f.countdown = f.framesUntilReady
}

func (f *fakeFrameRenderer) EndFrame() {
	if f.pending == nil {
		return
	}
	if f.countdown > 0 {
		f.countdown--
		return
	}
	done := f.pending
	f.pending = nil
	if f.failCopy {
		done(nil)
		return
	}
	pixels := bytes.Repeat([]byte{f.pixel}, int(f.width)*int(f.height)*4)
	done(pixels)
}

func (f *fakeFrameRenderer) Release() {
	f.released = true
}

func newTestScene() scene.Scene {
	scn := scene.NewScene()
	scn.AddEntity("cube", common.NewBoundingBox(
		mgl32.Vec3{-1, -1, -1},
		mgl32.Vec3{1, 1, 1},
	))
	return scn
}

func TestRequestFrameDeliversPixels(t *testing.T) {
	fake := &fakeFrameRenderer{width: 4, height: 2, pixel: 0xAB}
	rtb := NewRenderToBuffer(fake)

	var got Buffer
	calls := 0
	rtb.RequestFrame(newTestScene(), func(b Buffer) {
		got = b
		calls++
	})

	if calls != 1 {
		t.Fatalf("callback should fire exactly once, fired %d times", calls)
	}
	if got.Width != 4 || got.Height != 2 {
		t.Errorf("expected 4x2 capture, got %dx%d", got.Width, got.Height)
	}
	if got.ByteCount() != 4*2*4 {
		t.Errorf("expected %d bytes, got %d", 4*2*4, got.ByteCount())
	}
	for i, px := range got.Pixels {
		if px != 0xAB {
			t.Fatalf("pixel byte %d not copied: got %#x", i, px)
		}
	}
}

func TestCaptureLoopsUntilReadbackLands(t *testing.T) {
	fake := &fakeFrameRenderer{width: 2, height: 2, pixel: 1, framesUntilReady: 3}
	rtb := NewRenderToBuffer(fake)

	delivered := false
	rtb.RequestFrame(newTestScene(), func(b Buffer) {
		delivered = b.ByteCount() > 0
	})

	if !delivered {
		t.Fatalf("capture should block until the readback lands")
	}
	if fake.frames != 4 {
		t.Errorf("expected 4 frames before the readback landed, got %d", fake.frames)
	}
	if fake.copies != 1 {
		t.Errorf("the pixel copy must be scheduled exactly once, got %d", fake.copies)
	}
}

func TestCaptureRetriesFailedBeginFrame(t *testing.T) {
	fake := &fakeFrameRenderer{width: 2, height: 2, pixel: 1, beginFailures: 2}
	rtb := NewRenderToBuffer(fake)

	delivered := false
	rtb.RequestFrame(newTestScene(), func(b Buffer) {
		delivered = b.ByteCount() > 0
	})

	if !delivered {
		t.Fatalf("capture should survive frames that fail to begin")
	}
	if fake.frames != 1 {
		t.Errorf("expected exactly one successful frame, got %d", fake.frames)
	}
}

func TestNilSceneRejectedWithEmptyBuffer(t *testing.T) {
	fake := &fakeFrameRenderer{width: 2, height: 2}
	rtb := NewRenderToBuffer(fake)

	calls := 0
	rtb.RequestFrame(nil, func(b Buffer) {
		calls++
		if b.Width != 0 || b.Height != 0 || b.Pixels != nil {
			t.Errorf("nil scene must deliver the zero buffer, got %+v", b)
		}
	})

	if calls != 1 {
		t.Fatalf("rejection must still invoke the callback once, got %d", calls)
	}
	if fake.frames != 0 {
		t.Errorf("rejected capture must not render")
	}
}

func TestFailedReadbackDeliversEmptyBuffer(t *testing.T) {
	fake := &fakeFrameRenderer{width: 2, height: 2, failCopy: true}
	rtb := NewRenderToBuffer(fake)

	var got Buffer
	rtb.RequestFrame(newTestScene(), func(b Buffer) { got = b })

	if got.ByteCount() != 0 {
		t.Errorf("failed readback should deliver the zero buffer, got %d bytes", got.ByteCount())
	}
}

func TestResizeWhileIdle(t *testing.T) {
	fake := &fakeFrameRenderer{width: 2, height: 2, pixel: 7}
	rtb := NewRenderToBuffer(fake)

	if err := rtb.SetDimensions(8, 8); err != nil {
		t.Fatalf("resize while idle should succeed, got %v", err)
	}
	if w, h := rtb.Dimensions(); w != 8 || h != 8 {
		t.Errorf("expected 8x8 after resize, got %dx%d", w, h)
	}

	var got Buffer
	rtb.RequestFrame(newTestScene(), func(b Buffer) { got = b })
	if got.ByteCount() != 8*8*4 {
		t.Errorf("capture should use the resized target, got %d bytes", got.ByteCount())
	}
}

func TestBackToBackCaptures(t *testing.T) {
	fake := &fakeFrameRenderer{width: 2, height: 2, pixel: 9}
	rtb := NewRenderToBuffer(fake)

	delivered := 0
	for i := 0; i < 3; i++ {
		rtb.RequestFrame(newTestScene(), func(b Buffer) {
			if b.ByteCount() > 0 {
				delivered++
			}
		})
	}
	if delivered != 3 {
		t.Errorf("sequential captures should all deliver, got %d of 3", delivered)
	}
}

// reentrantFrameRenderer issues a second capture request from inside the
// first capture's render loop, while the pipeline is still pending.
type reentrantFrameRenderer struct {
	*fakeFrameRenderer
	rtb      RenderToBuffer
	scn      scene.Scene
	rejected []Buffer
}

func (f *reentrantFrameRenderer) Render(scn scene.Scene) {
	f.fakeFrameRenderer.Render(scn)
	if f.rtb == nil {
		return
	}
	rtb := f.rtb
	f.rtb = nil
	rtb.RequestFrame(f.scn, func(b Buffer) {
		f.rejected = append(f.rejected, b)
	})
}

func TestOverlappingRequestRejectedImmediately(t *testing.T) {
	inner := &fakeFrameRenderer{width: 2, height: 2, pixel: 0x5A, framesUntilReady: 2}
	fake := &reentrantFrameRenderer{fakeFrameRenderer: inner, scn: newTestScene()}
	rtb := NewRenderToBuffer(fake)
	fake.rtb = rtb

	var got Buffer
	calls := 0
	rtb.RequestFrame(newTestScene(), func(b Buffer) {
		got = b
		calls++
	})

	// The second request must be turned away with the zero Buffer, exactly
	// once, before the first capture finishes.
	if len(fake.rejected) != 1 {
		t.Fatalf("overlapping request should get exactly one callback, got %d", len(fake.rejected))
	}
	if fake.rejected[0].ByteCount() != 0 {
		t.Errorf("overlapping request should deliver the zero buffer, got %d bytes", fake.rejected[0].ByteCount())
	}

	// The first capture is unaffected by the rejection.
	if calls != 1 {
		t.Fatalf("first capture should fire exactly once, fired %d times", calls)
	}
	if got.ByteCount() != 2*2*4 {
		t.Errorf("first capture should deliver full pixels, got %d bytes", got.ByteCount())
	}
	for i, b := range got.Pixels {
		if b != 0x5A {
			t.Errorf("byte %d: expected 0x5A, got %#x", i, b)
			break
		}
	}
	if inner.copies != 1 {
		t.Errorf("the rejected request must not schedule a readback, copies = %d", inner.copies)
	}
}

func TestPendingReportedDuringCapture(t *testing.T) {
	fake := &fakeFrameRenderer{width: 2, height: 2}
	rtb := NewRenderToBuffer(fake)

	if rtb.Pending() {
		t.Errorf("fresh pipeline should be idle")
	}
	rtb.RequestFrame(newTestScene(), func(Buffer) {})
	if rtb.Pending() {
		t.Errorf("pipeline should return to idle after delivery")
	}
}

func TestReleaseFreesRenderer(t *testing.T) {
	fake := &fakeFrameRenderer{width: 2, height: 2}
	rtb := NewRenderToBuffer(fake)
	rtb.Release()
	if !fake.released {
		t.Errorf("release should propagate to the frame renderer")
	}
}
