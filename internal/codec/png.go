package codec

import (
	"bytes"
	"image"
	"image/png"

	"github.com/disintegration/imaging"
)

// PNGEncoder encodes images to PNG. Quality is ignored.
type PNGEncoder struct {
	// Level defaults to png.DefaultCompression.
	Level png.CompressionLevel
}

func (e *PNGEncoder) Format() Format { return PNG }

func (e *PNGEncoder) Encode(img image.Image, _ int) ([]byte, error) {
	if err := checkBounds(img); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.Grow(128 * 1024)

	if err := imaging.Encode(&buf, img, imaging.PNG, imaging.PNGCompressionLevel(e.Level)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
