// Package capture renders frames off-screen and delivers the pixels to a
// callback, for screenshots and headless image export. The GPU readback is
// asynchronous, so a capture submits frames in a loop until the copied
// pixels arrive.
package capture

import (
	"fmt"
	"sync"

	"github.com/vantage3d/vantage/engine/scene"
)

// Buffer is a completed capture: tightly packed RGBA pixels, four bytes per
// pixel, rows top to bottom. A failed or rejected capture delivers the zero
// Buffer.
type Buffer struct {
	// Width is the capture width in pixels.
	Width uint32

	// Height is the capture height in pixels.
	Height uint32

	// Pixels is the RGBA data, len Width*Height*4.
	Pixels []byte
}

// ByteCount returns the length of Pixels.
func (b Buffer) ByteCount() uint64 {
	return uint64(len(b.Pixels))
}

// BufferReadyCallback receives the finished capture. It is invoked exactly
// once per RequestFrame, on the caller's goroutine.
type BufferReadyCallback func(Buffer)

// FrameRenderer abstracts one off-screen frame for the capture loop:
// acquire a frame, draw into it, optionally schedule a pixel copy, then
// submit. The pixels land in the RequestPixels callback on some later
// EndFrame once the GPU has finished the copy.
type FrameRenderer interface {
	// SetDimensions resizes the off-screen target.
	//
	// Parameters:
	//   - width: target width in pixels
	//   - height: target height in pixels
	//
	// Returns:
	//   - error: when the target cannot be (re)created
	SetDimensions(width, height uint32) error

	// Dimensions returns the current target size.
	Dimensions() (uint32, uint32)

	// BeginFrame acquires the next frame.
	//
	// Returns:
	//   - bool: false when no frame is available yet and the caller
	//     should try again
	BeginFrame() bool

	// Render draws the scene into the current frame.
	Render(scn scene.Scene)

	// RequestPixels schedules a copy of the current frame's pixels. done
	// receives tightly packed RGBA data, or nil when the copy failed.
	RequestPixels(done func(pixels []byte))

	// EndFrame submits the current frame and pumps any completed pixel
	// copies.
	EndFrame()

	// Release frees the off-screen resources.
	Release()
}

// renderToBufferImpl is the implementation of the RenderToBuffer interface.
type renderToBufferImpl struct {
	mu *sync.Mutex

	frameRenderer FrameRenderer
	pending       bool
	buffer        []byte
}

// RenderToBuffer runs captures: one at a time, each delivering exactly one
// Buffer to its callback. Thread-safe for concurrent access.
type RenderToBuffer interface {
	// SetDimensions resizes the capture target. Rejected while a capture
	// is in flight.
	//
	// Parameters:
	//   - width: target width in pixels
	//   - height: target height in pixels
	//
	// Returns:
	//   - error: when a capture is pending or the target cannot be resized
	SetDimensions(width, height uint32) error

	// Dimensions returns the capture target size.
	Dimensions() (uint32, uint32)

	// Pending reports whether a capture is in flight.
	Pending() bool

	// RequestFrame captures one frame of scn and hands the pixels to
	// callback. A nil scene, or a capture already in flight, delivers the
	// zero Buffer immediately. The call blocks until the capture
	// completes; frames are submitted in a loop until the GPU readback
	// lands.
	//
	// Parameters:
	//   - scn: the scene to render
	//   - callback: receives the finished capture, invoked exactly once
	RequestFrame(scn scene.Scene, callback BufferReadyCallback)

	// Release frees the capture resources.
	Release()
}

var _ RenderToBuffer = &renderToBufferImpl{}

// NewRenderToBuffer creates a capture pipeline drawing through fr.
//
// Parameters:
//   - fr: the off-screen frame renderer
//
// Returns:
//   - RenderToBuffer: the newly created capture pipeline
func NewRenderToBuffer(fr FrameRenderer) RenderToBuffer {
	return &renderToBufferImpl{
		mu:            &sync.Mutex{},
		frameRenderer: fr,
	}
}

func (r *renderToBufferImpl) SetDimensions(width, height uint32) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.pending {
		return fmt.Errorf("cannot resize capture target: capture in flight")
	}
	if err := r.frameRenderer.SetDimensions(width, height); err != nil {
		return fmt.Errorf("resize capture target: %w", err)
	}
	// The old pixel buffer no longer matches; reallocate lazily on the
	// next capture.
	r.buffer = nil
	return nil
}

func (r *renderToBufferImpl) Dimensions() (uint32, uint32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.frameRenderer.Dimensions()
}

func (r *renderToBufferImpl) Pending() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pending
}

func (r *renderToBufferImpl) RequestFrame(scn scene.Scene, callback BufferReadyCallback) {
	if callback == nil {
		return
	}

	r.mu.Lock()
	if scn == nil || r.pending {
		r.mu.Unlock()
		callback(Buffer{})
		return
	}
	r.pending = true
	width, height := r.frameRenderer.Dimensions()
	size := int(width) * int(height) * 4
	if len(r.buffer) != size {
		r.buffer = make([]byte, size)
	}
	r.mu.Unlock()

	frameDone := false
	copyScheduled := false
	failed := false
	for !frameDone {
		if !r.frameRenderer.BeginFrame() {
			continue
		}
		r.frameRenderer.Render(scn)
		if !copyScheduled {
			// Only the first successful frame schedules the copy;
			// later frames just keep the queue moving until it lands.
			copyScheduled = true
			r.frameRenderer.RequestPixels(func(pixels []byte) {
				if pixels == nil {
					failed = true
				} else {
					copy(r.buffer, pixels)
				}
				frameDone = true
			})
		}
		r.frameRenderer.EndFrame()
	}

	r.mu.Lock()
	r.pending = false
	out := Buffer{Width: width, Height: height, Pixels: r.buffer}
	r.mu.Unlock()

	if failed {
		callback(Buffer{})
		return
	}
	callback(out)
}

func (r *renderToBufferImpl) Release() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frameRenderer.Release()
	r.buffer = nil
}
