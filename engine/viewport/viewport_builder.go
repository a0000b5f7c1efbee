package viewport

import "time"

// ViewportBuilderOption is a functional option for configuring a Viewport
// on creation.
type ViewportBuilderOption func(*viewportImpl)

// WithFrameSize sets the initial frame dimensions in pixels.
//
// Parameters:
//   - width: the frame width
//   - height: the frame height
//
// Returns:
//   - ViewportBuilderOption: the option to apply
func WithFrameSize(width, height int) ViewportBuilderOption {
	return func(v *viewportImpl) {
		if width < 1 {
			width = 1
		}
		if height < 1 {
			height = 1
		}
		v.frameWidth = width
		v.frameHeight = height
		v.controls.SetViewSize(width, height)
	}
}

// WithTimeSource replaces the clock used by the render-quality restore
// timer. Tests use it to step time deterministically.
//
// Parameters:
//   - now: the clock function
//
// Returns:
//   - ViewportBuilderOption: the option to apply
func WithTimeSource(now func() time.Time) ViewportBuilderOption {
	return func(v *viewportImpl) {
		if now != nil {
			v.now = now
		}
	}
}

// WithRenderQuality sets the initial render fidelity.
//
// Parameters:
//   - q: the starting quality
//
// Returns:
//   - ViewportBuilderOption: the option to apply
func WithRenderQuality(q Quality) ViewportBuilderOption {
	return func(v *viewportImpl) {
		v.quality = q
	}
}
