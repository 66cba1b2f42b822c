// Package transform implements stateless JPEG quality reduction, exact
// resize and percentage scale on encoded image buffers.
//
// Each call decodes into a buffer it owns, transforms, re-encodes and
// returns. Parameters are validated before any decode work starts.
package transform

import (
	"fmt"
	"image"

	"github.com/nguyenthanhliemfc/imagekit/internal/codec"
)

// DefaultJPEGQuality is used when ResizeImage or ScaleImage write JPEG.
const DefaultJPEGQuality = 90

// Transformer is safe for concurrent use; it holds only immutable settings.
type Transformer struct {
	codec       codec.Codec
	resampler   Resampler
	jpegQuality int
}

// Option configures a Transformer.
type Option func(*Transformer)

// WithResampler replaces the default imaging nearest-neighbour resampler.
func WithResampler(r Resampler) Option {
	return func(t *Transformer) {
		if r != nil {
			t.resampler = r
		}
	}
}

// WithJPEGQuality sets the quality used when resize or scale output JPEG.
func WithJPEGQuality(q int) Option {
	return func(t *Transformer) {
		t.jpegQuality = q
	}
}

// New builds a Transformer. A nil codec selects codec.NewImaging().
func New(c codec.Codec, opts ...Option) (*Transformer, error) {
	if c == nil {
		c = codec.NewImaging()
	}
	t := &Transformer{
		codec:       c,
		resampler:   ImagingNearest{},
		jpegQuality: DefaultJPEGQuality,
	}
	for _, opt := range opts {
		opt(t)
	}
	if err := validateQuality(t.jpegQuality); err != nil {
		return nil, err
	}
	return t, nil
}

// ReduceJPGQuality re-encodes src as JPEG at quality (1-100). The output is
// always JPEG and keeps the input dimensions.
func (t *Transformer) ReduceJPGQuality(src []byte, quality int) ([]byte, error) {
	if err := validateQuality(quality); err != nil {
		return nil, err
	}

	img, err := t.decode(src)
	if err != nil {
		return nil, err
	}
	return t.encode(img, codec.JPEG, quality)
}

// ResizeImage resamples src to exactly newWidth x newHeight with a
// non-smoothing filter and encodes it as format. Aspect ratio is not kept.
func (t *Transformer) ResizeImage(src []byte, newHeight, newWidth int, format codec.Format) ([]byte, error) {
	if newHeight <= 0 || newWidth <= 0 {
		return nil, fmt.Errorf("%w: target size %dx%d must be positive", ErrInvalidArgument, newWidth, newHeight)
	}
	if !format.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidArgument, format)
	}

	img, err := t.decode(src)
	if err != nil {
		return nil, err
	}

	resized := t.resampler.Resample(img, newWidth, newHeight)
	return t.encode(resized, format, t.jpegQuality)
}

// ScaleImage resizes src to percentage of its original dimensions.
// See ScaledSize for how the target size is computed.
func (t *Transformer) ScaleImage(src []byte, percentage float64, format codec.Format) ([]byte, error) {
	if !format.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidArgument, format)
	}

	width, height, err := t.Dimensions(src)
	if err != nil {
		return nil, err
	}

	scaledWidth, scaledHeight, err := ScaledSize(width, height, percentage)
	if err != nil {
		return nil, err
	}
	return t.ResizeImage(src, scaledHeight, scaledWidth, format)
}

// Dimensions reads width and height from the image header.
func (t *Transformer) Dimensions(src []byte) (width, height int, err error) {
	cfg, err := t.codec.DecodeConfig(src)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return cfg.Width, cfg.Height, nil
}

func (t *Transformer) decode(src []byte) (image.Image, error) {
	img, err := t.codec.Decode(src)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return img, nil
}

func (t *Transformer) encode(img image.Image, format codec.Format, quality int) ([]byte, error) {
	data, err := t.codec.Encode(img, format, quality)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncode, err)
	}
	return data, nil
}

func validateQuality(q int) error {
	if q < 1 || q > 100 {
		return fmt.Errorf("%w: quality %d outside [1,100]", ErrInvalidArgument, q)
	}
	return nil
}
