package codec

import (
	"fmt"
	"image"
)

// Encoder encodes an image to a specific format.
type Encoder interface {
	// Format returns the output format this encoder produces.
	Format() Format

	// Encode converts the image to bytes. Quality (1-100) is honoured by
	// lossy encoders and ignored by lossless ones.
	Encode(img image.Image, quality int) ([]byte, error)
}

// DefaultQuality is used when a caller passes a quality outside 1-100.
const DefaultQuality = 82

func checkBounds(img image.Image) error {
	if img == nil {
		return ErrEmptyImage
	}
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrEmptyImage, b.Dx(), b.Dy())
	}
	return nil
}
