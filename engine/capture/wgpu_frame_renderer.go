package capture

import (
	"fmt"
	"sync"

	"github.com/cogentcore/webgpu/wgpu"

	"github.com/vantage3d/vantage/engine/scene"
)

// copyPitchAlignment is the row alignment WebGPU requires for
// texture-to-buffer copies.
const copyPitchAlignment = 256

// wgpuFrameRenderer renders into an off-screen RGBA8 texture and reads it
// back through a mappable staging buffer. EndFrame polls the device, which
// is what fires the map callback and delivers the pixels.
type wgpuFrameRenderer struct {
	mu *sync.Mutex

	device *wgpu.Device
	queue  *wgpu.Queue

	width  uint32
	height uint32

	texture     *wgpu.Texture
	textureView *wgpu.TextureView
	readback    *wgpu.Buffer

	clearColor wgpu.Color
	drawFn     func(*wgpu.RenderPassEncoder, scene.Scene)

	frameEncoder *wgpu.CommandEncoder
	pendingRead  func(pixels []byte)
}

var _ FrameRenderer = &wgpuFrameRenderer{}

// NewWgpuFrameRenderer creates an off-screen frame renderer on device.
// drawFn records the scene's draw calls into the render pass; a nil drawFn
// captures the clear color only.
//
// Parameters:
//   - device: the wgpu device
//   - queue: the device's queue
//   - width: initial target width in pixels
//   - height: initial target height in pixels
//   - drawFn: records draw calls for a scene, may be nil
//
// Returns:
//   - FrameRenderer: the newly created renderer
//   - error: when the off-screen target cannot be created
func NewWgpuFrameRenderer(
	device *wgpu.Device,
	queue *wgpu.Queue,
	width, height uint32,
	drawFn func(*wgpu.RenderPassEncoder, scene.Scene),
) (FrameRenderer, error) {
	r := &wgpuFrameRenderer{
		mu:         &sync.Mutex{},
		device:     device,
		queue:      queue,
		clearColor: wgpu.Color{R: 0.1, G: 0.1, B: 0.1, A: 1.0},
		drawFn:     drawFn,
	}
	if err := r.SetDimensions(width, height); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *wgpuFrameRenderer) SetDimensions(width, height uint32) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if width == 0 || height == 0 {
		return fmt.Errorf("capture target must be at least 1x1, got %dx%d", width, height)
	}

	r.releaseTarget()

	texture, err := r.device.CreateTexture(&wgpu.TextureDescriptor{
		Label: "Capture Texture",
		Size: wgpu.Extent3D{
			Width:              width,
			Height:             height,
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        wgpu.TextureFormatRGBA8Unorm,
		Usage:         wgpu.TextureUsageRenderAttachment | wgpu.TextureUsageCopySrc,
	})
	if err != nil {
		return fmt.Errorf("create capture texture: %w", err)
	}

	view, err := texture.CreateView(nil)
	if err != nil {
		texture.Release()
		return fmt.Errorf("create capture texture view: %w", err)
	}

	readback, err := r.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "Capture Readback Buffer",
		Size:  uint64(paddedBytesPerRow(width)) * uint64(height),
		Usage: wgpu.BufferUsageMapRead | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		view.Release()
		texture.Release()
		return fmt.Errorf("create capture readback buffer: %w", err)
	}

	r.width = width
	r.height = height
	r.texture = texture
	r.textureView = view
	r.readback = readback
	return nil
}

func (r *wgpuFrameRenderer) Dimensions() (uint32, uint32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.width, r.height
}

func (r *wgpuFrameRenderer) BeginFrame() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.frameEncoder != nil {
		return false
	}
	encoder, err := r.device.CreateCommandEncoder(nil)
	if err != nil {
		return false
	}
	r.frameEncoder = encoder
	return true
}

func (r *wgpuFrameRenderer) Render(scn scene.Scene) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.frameEncoder == nil {
		return
	}
	pass := r.frameEncoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:       r.textureView,
				LoadOp:     wgpu.LoadOpClear,
				StoreOp:    wgpu.StoreOpStore,
				ClearValue: r.clearColor,
			},
		},
	})
	if r.drawFn != nil {
		r.drawFn(pass, scn)
	}
	pass.End()
	pass.Release()
}

func (r *wgpuFrameRenderer) RequestPixels(done func(pixels []byte)) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.frameEncoder == nil {
		done(nil)
		return
	}
	r.frameEncoder.CopyTextureToBuffer(
		&wgpu.ImageCopyTexture{
			Texture:  r.texture,
			MipLevel: 0,
			Origin:   wgpu.Origin3D{},
			Aspect:   wgpu.TextureAspectAll,
		},
		&wgpu.ImageCopyBuffer{
			Buffer: r.readback,
			Layout: wgpu.TextureDataLayout{
				Offset:       0,
				BytesPerRow:  paddedBytesPerRow(r.width),
				RowsPerImage: r.height,
			},
		},
		&wgpu.Extent3D{
			Width:              r.width,
			Height:             r.height,
			DepthOrArrayLayers: 1,
		},
	)
	r.pendingRead = done
}

func (r *wgpuFrameRenderer) EndFrame() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.frameEncoder == nil {
		return
	}

	commandBuffer, err := r.frameEncoder.Finish(nil)
	if err != nil {
		r.frameEncoder.Release()
		r.frameEncoder = nil
		r.failPendingRead()
		return
	}

	r.queue.Submit(commandBuffer)
	commandBuffer.Release()
	r.frameEncoder.Release()
	r.frameEncoder = nil

	if r.pendingRead == nil {
		// Nothing to read back; still pump the device so earlier work
		// keeps draining.
		r.device.Poll(false, nil)
		return
	}

	done := r.pendingRead
	r.pendingRead = nil
	size := uint64(paddedBytesPerRow(r.width)) * uint64(r.height)
	err = r.readback.MapAsync(wgpu.MapModeRead, 0, size,
		func(status wgpu.BufferMapAsyncStatus) {
			if status != wgpu.BufferMapAsyncStatusSuccess {
				done(nil)
				return
			}
			data := r.readback.GetMappedRange(0, uint(size))
			pixels := stripRowPadding(data, r.width, r.height)
			r.readback.Unmap()
			done(pixels)
		})
	if err != nil {
		done(nil)
		return
	}
	// Blocking poll drives the map callback on this goroutine.
	r.device.Poll(true, nil)
}

func (r *wgpuFrameRenderer) Release() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.frameEncoder != nil {
		r.frameEncoder.Release()
		r.frameEncoder = nil
	}
	r.releaseTarget()
}

func (r *wgpuFrameRenderer) releaseTarget() {
	if r.readback != nil {
		r.readback.Release()
		r.readback = nil
	}
	if r.textureView != nil {
		r.textureView.Release()
		r.textureView = nil
	}
	if r.texture != nil {
		r.texture.Release()
		r.texture = nil
	}
}

func (r *wgpuFrameRenderer) failPendingRead() {
	if r.pendingRead != nil {
		done := r.pendingRead
		r.pendingRead = nil
		done(nil)
	}
}

// paddedBytesPerRow rounds a row of RGBA pixels up to the copy alignment.
func paddedBytesPerRow(width uint32) uint32 {
	bytesPerRow := width * 4
	return (bytesPerRow + copyPitchAlignment - 1) &^ (copyPitchAlignment - 1)
}

// stripRowPadding copies the mapped data into a tightly packed buffer,
// dropping the per-row alignment padding.
func stripRowPadding(data []byte, width, height uint32) []byte {
	tight := width * 4
	padded := paddedBytesPerRow(width)
	out := make([]byte, uint64(tight)*uint64(height))
	if tight == padded {
		copy(out, data)
		return out
	}
	for row := uint32(0); row < height; row++ {
		src := uint64(row) * uint64(padded)
		dst := uint64(row) * uint64(tight)
		copy(out[dst:dst+uint64(tight)], data[src:src+uint64(tight)])
	}
	return out
}
