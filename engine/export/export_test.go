package export

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/vantage3d/vantage/engine/capture"
)

// solidCapture builds a capture filled with one RGBA color.
func solidCapture(w, h uint32, r, g, b, a byte) capture.Buffer {
	pixels := make([]byte, int(w)*int(h)*4)
	for i := 0; i < len(pixels); i += 4 {
		pixels[i] = r
		pixels[i+1] = g
		pixels[i+2] = b
		pixels[i+3] = a
	}
	return capture.Buffer{Width: w, Height: h, Pixels: pixels}
}

func TestEncodePNGRoundTrip(t *testing.T) {
	buf := solidCapture(4, 3, 200, 100, 50, 255)

	var out bytes.Buffer
	if err := Encode(&out, buf, FormatPNG); err != nil {
		t.Fatalf("encode failed: %v", err)
	}

	img, err := png.Decode(&out)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if img.Bounds().Dx() != 4 || img.Bounds().Dy() != 3 {
		t.Errorf("expected 4x3, got %v", img.Bounds())
	}
	r, g, b, _ := img.At(2, 1).RGBA()
	if r>>8 != 200 || g>>8 != 100 || b>>8 != 50 {
		t.Errorf("pixel round-trip mismatch: got %d,%d,%d", r>>8, g>>8, b>>8)
	}
}

func TestEncodeWebPProducesData(t *testing.T) {
	buf := solidCapture(8, 8, 10, 20, 30, 255)

	var out bytes.Buffer
	if err := Encode(&out, buf, FormatWebP); err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	if out.Len() == 0 {
		t.Errorf("webp encoder wrote no data")
	}
}

func TestEncodeRejectsMalformedCapture(t *testing.T) {
	if err := Encode(&bytes.Buffer{}, capture.Buffer{}, FormatPNG); err == nil {
		t.Errorf("empty capture should be rejected")
	}

	short := capture.Buffer{Width: 4, Height: 4, Pixels: make([]byte, 7)}
	if err := Encode(&bytes.Buffer{}, short, FormatPNG); err == nil {
		t.Errorf("truncated pixel data should be rejected")
	}
}

func TestFormatFromPath(t *testing.T) {
	if FormatFromPath("shot.png") != FormatPNG {
		t.Errorf(".png should select PNG")
	}
	if FormatFromPath("shot.PNG") != FormatPNG {
		t.Errorf("extension match should ignore case")
	}
	if FormatFromPath("shot.webp") != FormatWebP {
		t.Errorf(".webp should select WebP")
	}
	if FormatFromPath("shot") != FormatWebP {
		t.Errorf("unknown extensions should default to WebP")
	}
}

func TestDownsampleHalvesDimensions(t *testing.T) {
	buf := solidCapture(16, 8, 120, 130, 140, 255)

	out, err := Downsample(buf, 2)
	if err != nil {
		t.Fatalf("downsample failed: %v", err)
	}
	if out.Width != 8 || out.Height != 4 {
		t.Errorf("expected 8x4, got %dx%d", out.Width, out.Height)
	}
	// Solid input stays solid after filtering.
	if out.Pixels[0] != 120 || out.Pixels[1] != 130 || out.Pixels[2] != 140 {
		t.Errorf("solid color should survive downsampling: got %v", out.Pixels[:4])
	}
}

func TestWriterWritesFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "frame.png")
	buf := solidCapture(4, 4, 1, 2, 3, 255)

	w := NewWriter(WithWorkers(1))
	var writeErr error
	w.Submit(path, buf, func(err error) { writeErr = err })
	w.Flush()

	if writeErr != nil {
		t.Fatalf("write failed: %v", writeErr)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("output missing: %v", err)
	}
	if _, err := png.Decode(bytes.NewReader(data)); err != nil {
		t.Errorf("output is not a valid png: %v", err)
	}
}
