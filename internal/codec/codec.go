// Package codec turns encoded image bytes into pixel buffers and back.
//
// Input decoding is format-agnostic: anything registered with the image
// package (jpeg, png, gif, bmp, tiff, webp) is accepted. Output is limited to
// the formats a Registry has encoders for.
package codec

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"strings"

	"github.com/disintegration/imaging"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

var (
	ErrEmptyInput        = errors.New("empty image data")
	ErrEmptyImage        = errors.New("image has no pixels")
	ErrUnsupportedFormat = errors.New("unsupported output format")
)

// Format selects the encoder used for output.
type Format int

const (
	JPEG Format = iota + 1
	PNG
)

// ParseFormat accepts "jpg", "jpeg" and "png" in any case.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "jpg", "jpeg":
		return JPEG, nil
	case "png":
		return PNG, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
	}
}

// Valid reports whether f is one of the known formats.
func (f Format) Valid() bool {
	return f == JPEG || f == PNG
}

func (f Format) String() string {
	switch f {
	case JPEG:
		return "jpeg"
	case PNG:
		return "png"
	default:
		return fmt.Sprintf("format(%d)", int(f))
	}
}

// Extension returns the file extension without dot.
func (f Format) Extension() string {
	switch f {
	case JPEG:
		return "jpg"
	case PNG:
		return "png"
	default:
		return ""
	}
}

func (f Format) ContentType() string {
	switch f {
	case JPEG:
		return "image/jpeg"
	case PNG:
		return "image/png"
	default:
		return "application/octet-stream"
	}
}

// Codec is the capability the transformer needs from an image library.
// Implementations must be safe for concurrent use.
type Codec interface {
	// Decode returns the full pixel buffer.
	Decode(data []byte) (image.Image, error)
	// DecodeConfig reads only the dimensions from the image header.
	DecodeConfig(data []byte) (image.Config, error)
	// Encode serializes img. Quality applies to lossy formats only.
	Encode(img image.Image, format Format, quality int) ([]byte, error)
}

// Imaging is the default Codec, backed by github.com/disintegration/imaging.
type Imaging struct {
	registry *Registry
}

// NewImaging returns a codec using the built-in encoder registry.
func NewImaging() *Imaging {
	return &Imaging{registry: NewRegistry()}
}

// NewImagingWithRegistry returns a codec that encodes through r.
func NewImagingWithRegistry(r *Registry) *Imaging {
	return &Imaging{registry: r}
}

func (c *Imaging) Decode(data []byte) (image.Image, error) {
	if len(data) == 0 {
		return nil, ErrEmptyInput
	}
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	if b := img.Bounds(); b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrEmptyImage, b.Dx(), b.Dy())
	}
	return onCanvas(img, data), nil
}

// onCanvas places a decoded frame on the full canvas declared in the header.
// GIF frames may be smaller than the logical screen and offset into it; the
// returned image always matches what DecodeConfig reports.
func onCanvas(img image.Image, data []byte) image.Image {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil || cfg.Width <= 0 || cfg.Height <= 0 {
		return img
	}
	canvas := image.Rect(0, 0, cfg.Width, cfg.Height)
	if img.Bounds() == canvas {
		return img
	}
	return imaging.Paste(imaging.New(cfg.Width, cfg.Height, color.Transparent), img, img.Bounds().Min)
}

func (c *Imaging) DecodeConfig(data []byte) (image.Config, error) {
	if len(data) == 0 {
		return image.Config{}, ErrEmptyInput
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return image.Config{}, err
	}
	return cfg, nil
}

func (c *Imaging) Encode(img image.Image, format Format, quality int) ([]byte, error) {
	enc, ok := c.registry.Get(format)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
	data, err := enc.Encode(img, quality)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", format, err)
	}
	return data, nil
}
