package codec

import (
	"bytes"
	"image"

	"github.com/disintegration/imaging"
)

// JPEGEncoder encodes images to baseline JPEG.
type JPEGEncoder struct{}

func (e *JPEGEncoder) Format() Format { return JPEG }

func (e *JPEGEncoder) Encode(img image.Image, quality int) ([]byte, error) {
	if err := checkBounds(img); err != nil {
		return nil, err
	}
	if quality <= 0 || quality > 100 {
		quality = DefaultQuality
	}

	var buf bytes.Buffer
	buf.Grow(64 * 1024)

	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(quality)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
