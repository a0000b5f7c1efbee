// Package export encodes captured frames to image files. WebP is the
// default on-disk format; PNG is available for tooling that cannot read
// WebP. A pooled writer offloads encoding so captures never stall the
// render loop on disk IO.
package export

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"golang.org/x/image/draw"

	"github.com/vantage3d/vantage/engine/capture"
)

// Format selects the on-disk image encoding.
type Format int

const (
	// FormatWebP encodes lossless WebP.
	FormatWebP Format = iota
	// FormatPNG encodes PNG.
	FormatPNG
)

// FormatFromPath picks the encoding matching a file extension. Unknown
// extensions fall back to WebP.
func FormatFromPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".png") {
		return FormatPNG
	}
	return FormatWebP
}

// Image wraps a capture's pixels as an image without copying them.
//
// Parameters:
//   - buf: the capture to wrap
//
// Returns:
//   - *image.NRGBA: the wrapped image
//   - error: when the capture is empty or its pixel count does not match
//     its dimensions
func Image(buf capture.Buffer) (*image.NRGBA, error) {
	if buf.Width == 0 || buf.Height == 0 {
		return nil, fmt.Errorf("cannot export empty capture")
	}
	expected := uint64(buf.Width) * uint64(buf.Height) * 4
	if buf.ByteCount() != expected {
		return nil, fmt.Errorf("capture pixel data is %d bytes, expected %d", buf.ByteCount(), expected)
	}
	return &image.NRGBA{
		Pix:    buf.Pixels,
		Stride: int(buf.Width) * 4,
		Rect:   image.Rect(0, 0, int(buf.Width), int(buf.Height)),
	}, nil
}

// Encode writes buf to w in the requested format.
//
// Parameters:
//   - w: the destination
//   - buf: the capture to encode
//   - format: the image encoding
//
// Returns:
//   - error: when the capture is invalid or encoding fails
func Encode(w io.Writer, buf capture.Buffer, format Format) error {
	img, err := Image(buf)
	if err != nil {
		return err
	}

	switch format {
	case FormatPNG:
		if err := png.Encode(w, img); err != nil {
			return fmt.Errorf("png encode: %w", err)
		}
	case FormatWebP:
		fallthrough
	default:
		if err := nativewebp.Encode(w, img, nil); err != nil {
			return fmt.Errorf("webp encode: %w", err)
		}
	}
	return nil
}

// WriteFile encodes buf to path, picking the format from the extension.
//
// Parameters:
//   - path: the destination file
//   - buf: the capture to encode
//
// Returns:
//   - error: when the file cannot be written or encoding fails
func WriteFile(path string, buf capture.Buffer) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if err := Encode(f, buf, FormatFromPath(path)); err != nil {
		return err
	}
	return nil
}

// Downsample scales a capture down by factor with premultiplied-alpha
// CatmullRom filtering, for captures rendered at a multiple of the target
// resolution. A factor below 2 returns the capture unchanged.
//
// Parameters:
//   - buf: the capture to scale
//   - factor: the integer scale divisor
//
// Returns:
//   - capture.Buffer: the scaled capture
//   - error: when the capture is invalid
func Downsample(buf capture.Buffer, factor int) (capture.Buffer, error) {
	src, err := Image(buf)
	if err != nil {
		return capture.Buffer{}, err
	}
	if factor < 2 {
		return buf, nil
	}

	outW := int(buf.Width) / factor
	outH := int(buf.Height) / factor
	if outW < 1 || outH < 1 {
		return capture.Buffer{}, fmt.Errorf("capture %dx%d too small to downsample by %d",
			buf.Width, buf.Height, factor)
	}

	dst := image.NewNRGBA(image.Rect(0, 0, outW, outH))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)

	return capture.Buffer{
		Width:  uint32(outW),
		Height: uint32(outH),
		Pixels: dst.Pix,
	}, nil
}
