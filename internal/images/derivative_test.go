package images

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"

	"golang.org/x/image/webp"
)

func pngBytes(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		img.Set(x, 0, color.RGBA{R: uint8(x % 256), A: 255})
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode fixture: %v", err)
	}
	return buf.Bytes()
}

func derivativeDims(t *testing.T, data []byte) (int, int) {
	t.Helper()
	img, err := webp.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("derivative is not decodable webp: %v", err)
	}
	b := img.Bounds()
	return b.Dx(), b.Dy()
}

func TestProcessDownscalesToBound(t *testing.T) {
	d, err := Process(pngBytes(t, 4000, 1000), "image/png")
	if err != nil {
		t.Fatalf("Process returned error: %v", err)
	}
	if d.Width != 4000 || d.Height != 1000 {
		t.Fatalf("expected original dims 4000x1000, got %dx%d", d.Width, d.Height)
	}

	w, h := derivativeDims(t, d.WebP)
	if w > MaxDimension || h > MaxDimension {
		t.Fatalf("derivative exceeds bound: %dx%d", w, h)
	}
	if w != 1920 || h != 480 {
		t.Fatalf("expected aspect-preserving 1920x480, got %dx%d", w, h)
	}
}

func TestProcessNeverUpscales(t *testing.T) {
	d, err := Process(pngBytes(t, 640, 480), "image/png")
	if err != nil {
		t.Fatalf("Process returned error: %v", err)
	}
	w, h := derivativeDims(t, d.WebP)
	if w != 640 || h != 480 {
		t.Fatalf("expected 640x480 unchanged, got %dx%d", w, h)
	}
}

func TestProcessRejectsUnsupportedMimeType(t *testing.T) {
	_, err := Process(pngBytes(t, 10, 10), "application/pdf")
	if !errors.Is(err, ErrUnsupportedMediaType) {
		t.Fatalf("expected ErrUnsupportedMediaType, got %v", err)
	}
}

func TestProcessRejectsMalformedBytes(t *testing.T) {
	_, err := Process([]byte("definitely not an image"), "image/png")
	if !errors.Is(err, ErrDecode) {
		t.Fatalf("expected ErrDecode, got %v", err)
	}
}
