package images

import (
	"bytes"
	"errors"
	"fmt"
	"image"

	// JPEG and PNG decoders are registered by imaging itself; GIF and
	// WebP inputs need explicit registration.
	_ "image/gif"

	"github.com/HugoSmits86/nativewebp"
	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"
)

// MaxDimension bounds the display derivative: neither axis of the encoded
// WebP exceeds this, and images already within bounds are never upscaled.
const MaxDimension = 1920

var (
	ErrUnsupportedMediaType = errors.New("unsupported media type")
	ErrDecode               = errors.New("failed to decode image")
)

// AllowedMimeTypes defines which image types are accepted for upload.
var AllowedMimeTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// Derivative is the outcome of processing one upload: the recompressed
// display bytes plus the intrinsic dimensions of the original.
type Derivative struct {
	WebP   []byte
	Width  int
	Height int
}

// Process validates the declared MIME type, decodes the original bytes and
// produces the bounded WebP derivative. Malformed bytes yield ErrDecode;
// the caller skips that file and continues with the rest of the batch.
func Process(data []byte, mimeType string) (*Derivative, error) {
	if !AllowedMimeTypes[mimeType] {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedMediaType, mimeType)
	}

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	bounds := src.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	resized := src
	if width > MaxDimension || height > MaxDimension {
		resized = imaging.Fit(src, MaxDimension, MaxDimension, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := nativewebp.Encode(&buf, resized, nil); err != nil {
		return nil, fmt.Errorf("failed to encode webp derivative: %w", err)
	}

	return &Derivative{
		WebP:   buf.Bytes(),
		Width:  width,
		Height: height,
	}, nil
}
