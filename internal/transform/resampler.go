package transform

import (
	"fmt"
	"image"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/nfnt/resize"
)

// Resampler scales a pixel buffer to exactly width x height without
// smoothing. Implementations must not modify img.
type Resampler interface {
	Resample(img image.Image, width, height int) image.Image
}

// ImagingNearest resamples with imaging's nearest-neighbour filter.
type ImagingNearest struct{}

func (ImagingNearest) Resample(img image.Image, width, height int) image.Image {
	return imaging.Resize(img, width, height, imaging.NearestNeighbor)
}

// NfntNearest resamples with github.com/nfnt/resize.
type NfntNearest struct{}

func (NfntNearest) Resample(img image.Image, width, height int) image.Image {
	return resize.Resize(uint(width), uint(height), img, resize.NearestNeighbor)
}

// ResamplerNames lists the names accepted by ResamplerByName.
var ResamplerNames = []string{"imaging", "nfnt"}

// ResamplerByName maps a configuration value to a Resampler.
// An empty name selects the default.
func ResamplerByName(name string) (Resampler, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "imaging":
		return ImagingNearest{}, nil
	case "nfnt":
		return NfntNearest{}, nil
	default:
		return nil, fmt.Errorf("%w: unknown resampler %q (want one of %s)",
			ErrInvalidArgument, name, strings.Join(ResamplerNames, ", "))
	}
}
