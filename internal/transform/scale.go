package transform

import (
	"fmt"
	"math"
)

// ScaledSize computes the target size for a percentage scale.
//
// Each dimension is dim * (percentage * 0.01) rounded half to even and
// narrowed to a 16-bit signed integer. Results outside the int16 range
// (including NaN and infinities) are rejected rather than wrapped. Zero and
// negative results are returned as-is; ResizeImage rejects them.
func ScaledSize(width, height int, percentage float64) (scaledWidth, scaledHeight int, err error) {
	scaledWidth, err = narrowInt16(float64(width) * (percentage * .01))
	if err != nil {
		return 0, 0, fmt.Errorf("scale width %d by %v%%: %w", width, percentage, err)
	}
	scaledHeight, err = narrowInt16(float64(height) * (percentage * .01))
	if err != nil {
		return 0, 0, fmt.Errorf("scale height %d by %v%%: %w", height, percentage, err)
	}
	return scaledWidth, scaledHeight, nil
}

func narrowInt16(v float64) (int, error) {
	r := math.RoundToEven(v)
	if math.IsNaN(r) || r < math.MinInt16 || r > math.MaxInt16 {
		return 0, fmt.Errorf("%w: %v overflows int16", ErrInvalidArgument, v)
	}
	return int(r), nil
}
