package transform

import (
	"bytes"
	"image"
	"image/color"
	"image/gif"
	"image/png"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nguyenthanhliemfc/imagekit/internal/codec"
)

func buildTestPNG(t *testing.T, w, h int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{
				R: uint8((x * 255) / w),
				G: uint8((y * 255) / h),
				B: 140,
				A: 255,
			})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func decodeSize(t *testing.T, data []byte) (format string, w, h int) {
	t.Helper()

	img, format, err := image.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	return format, img.Bounds().Dx(), img.Bounds().Dy()
}

// countingCodec records how often the wrapped codec is used.
type countingCodec struct {
	inner   codec.Codec
	decodes atomic.Int32
	configs atomic.Int32
	encodes atomic.Int32
}

func (c *countingCodec) Decode(data []byte) (image.Image, error) {
	c.decodes.Add(1)
	return c.inner.Decode(data)
}

func (c *countingCodec) DecodeConfig(data []byte) (image.Config, error) {
	c.configs.Add(1)
	return c.inner.DecodeConfig(data)
}

func (c *countingCodec) Encode(img image.Image, format codec.Format, quality int) ([]byte, error) {
	c.encodes.Add(1)
	return c.inner.Encode(img, format, quality)
}

func newTransformer(t *testing.T, opts ...Option) *Transformer {
	t.Helper()

	tr, err := New(nil, opts...)
	require.NoError(t, err)
	return tr
}

func TestReduceJPGQualityValidRange(t *testing.T) {
	tr := newTransformer(t)
	src := buildTestPNG(t, 60, 40)

	for _, q := range []int{1, 2, 50, 99, 100} {
		out, err := tr.ReduceJPGQuality(src, q)
		require.NoError(t, err, "quality %d", q)

		format, w, h := decodeSize(t, out)
		assert.Equal(t, "jpeg", format)
		assert.Equal(t, 60, w)
		assert.Equal(t, 40, h)
	}
}

func TestReduceJPGQualityRejectsOutOfRangeWithoutDecoding(t *testing.T) {
	cc := &countingCodec{inner: codec.NewImaging()}
	tr, err := New(cc)
	require.NoError(t, err)

	src := buildTestPNG(t, 8, 8)
	for _, q := range []int{0, 101, -5, 1000} {
		_, err := tr.ReduceJPGQuality(src, q)
		assert.ErrorIs(t, err, ErrInvalidArgument, "quality %d", q)
	}
	assert.Zero(t, cc.decodes.Load())
	assert.Zero(t, cc.encodes.Load())
}

func TestReduceJPGQualityLowerQualityIsSmaller(t *testing.T) {
	tr := newTransformer(t)
	src := buildTestPNG(t, 200, 150)

	low, err := tr.ReduceJPGQuality(src, 10)
	require.NoError(t, err)
	high, err := tr.ReduceJPGQuality(src, 95)
	require.NoError(t, err)

	assert.Less(t, len(low), len(high))
}

func TestResizeImageExactDimensions(t *testing.T) {
	src := buildTestPNG(t, 120, 80)

	tests := []struct {
		name string
		w, h int
	}{
		{name: "downscale", w: 30, h: 20},
		{name: "upscale", w: 250, h: 170},
		{name: "aspect change", w: 10, h: 90},
		{name: "single pixel", w: 1, h: 1},
		{name: "same size", w: 120, h: 80},
	}

	for _, resampler := range []Resampler{ImagingNearest{}, NfntNearest{}} {
		tr := newTransformer(t, WithResampler(resampler))
		for _, tc := range tests {
			t.Run(tc.name, func(t *testing.T) {
				out, err := tr.ResizeImage(src, tc.h, tc.w, codec.PNG)
				require.NoError(t, err)

				format, w, h := decodeSize(t, out)
				assert.Equal(t, "png", format)
				assert.Equal(t, tc.w, w)
				assert.Equal(t, tc.h, h)
			})
		}
	}
}

func TestResizeImageJPEGOutput(t *testing.T) {
	tr := newTransformer(t, WithJPEGQuality(70))

	out, err := tr.ResizeImage(buildTestPNG(t, 50, 50), 25, 40, codec.JPEG)
	require.NoError(t, err)

	format, w, h := decodeSize(t, out)
	assert.Equal(t, "jpeg", format)
	assert.Equal(t, 40, w)
	assert.Equal(t, 25, h)
}

func TestResizeImageIsIdempotentOnDimensions(t *testing.T) {
	tr := newTransformer(t)

	once, err := tr.ResizeImage(buildTestPNG(t, 77, 33), 21, 55, codec.PNG)
	require.NoError(t, err)
	twice, err := tr.ResizeImage(once, 21, 55, codec.PNG)
	require.NoError(t, err)

	_, w, h := decodeSize(t, twice)
	assert.Equal(t, 55, w)
	assert.Equal(t, 21, h)
}

func TestResizeImageNearestKeepsPalette(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	img.SetNRGBA(0, 0, color.NRGBA{R: 255, A: 255})
	img.SetNRGBA(1, 0, color.NRGBA{B: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	tr := newTransformer(t)
	out, err := tr.ResizeImage(buf.Bytes(), 3, 8, codec.PNG)
	require.NoError(t, err)

	decoded, err := png.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	b := decoded.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := decoded.At(x, y).RGBA()
			assert.Zero(t, g)
			assert.True(t, (r == 0xffff && bl == 0) || (r == 0 && bl == 0xffff),
				"pixel (%d,%d) blended: r=%d b=%d", x, y, r, bl)
		}
	}
}

func TestResizeImageRejectsBadArgumentsWithoutDecoding(t *testing.T) {
	cc := &countingCodec{inner: codec.NewImaging()}
	tr, err := New(cc)
	require.NoError(t, err)
	src := buildTestPNG(t, 8, 8)

	_, err = tr.ResizeImage(src, 0, 10, codec.PNG)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = tr.ResizeImage(src, 10, -1, codec.PNG)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = tr.ResizeImage(src, 10, 10, codec.Format(0))
	assert.ErrorIs(t, err, ErrInvalidArgument)

	assert.Zero(t, cc.decodes.Load())
}

func TestResizeImageEncoderRejection(t *testing.T) {
	tr := newTransformer(t)

	// JPEG cannot hold a dimension of 65536 or more.
	_, err := tr.ResizeImage(buildTestPNG(t, 4, 4), 1, 1<<16, codec.JPEG)
	assert.ErrorIs(t, err, ErrEncode)
}

func TestScaleImage(t *testing.T) {
	tr := newTransformer(t)
	src := buildTestPNG(t, 200, 100)

	out, err := tr.ScaleImage(src, 50.0, codec.JPEG)
	require.NoError(t, err)
	format, w, h := decodeSize(t, out)
	assert.Equal(t, "jpeg", format)
	assert.Equal(t, 100, w)
	assert.Equal(t, 50, h)

	out, err = tr.ScaleImage(src, 100.0, codec.PNG)
	require.NoError(t, err)
	format, w, h = decodeSize(t, out)
	assert.Equal(t, "png", format)
	assert.Equal(t, 200, w)
	assert.Equal(t, 100, h)
}

// buildSubFrameGIF returns a 20x20 GIF whose only frame covers (5,5)-(15,15).
func buildSubFrameGIF(t *testing.T) []byte {
	t.Helper()

	pal := color.Palette{color.Transparent, color.NRGBA{G: 200, A: 255}}
	frame := image.NewPaletted(image.Rect(5, 5, 15, 15), pal)
	for i := range frame.Pix {
		frame.Pix[i] = 1
	}

	var buf bytes.Buffer
	require.NoError(t, gif.EncodeAll(&buf, &gif.GIF{
		Image:  []*image.Paletted{frame},
		Delay:  []int{0},
		Config: image.Config{ColorModel: pal, Width: 20, Height: 20},
	}))
	return buf.Bytes()
}

func TestSubFrameGIFKeepsCanvasSize(t *testing.T) {
	tr := newTransformer(t)
	src := buildSubFrameGIF(t)

	w, h, err := tr.Dimensions(src)
	require.NoError(t, err)
	assert.Equal(t, 20, w)
	assert.Equal(t, 20, h)

	out, err := tr.ReduceJPGQuality(src, 80)
	require.NoError(t, err)
	format, w, h := decodeSize(t, out)
	assert.Equal(t, "jpeg", format)
	assert.Equal(t, 20, w)
	assert.Equal(t, 20, h)

	out, err = tr.ScaleImage(src, 50, codec.PNG)
	require.NoError(t, err)
	_, w, h = decodeSize(t, out)
	assert.Equal(t, 10, w)
	assert.Equal(t, 10, h)

	// The frame sits in the middle of the canvas, so the scaled corner stays empty.
	img, err := png.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	_, _, _, a := img.At(0, 0).RGBA()
	assert.Zero(t, a)
	_, g, _, a := img.At(5, 5).RGBA()
	assert.NotZero(t, g)
	assert.Equal(t, uint32(0xffff), a)
}

func TestScaleImageNonPositivePercentageFailsInResize(t *testing.T) {
	cc := &countingCodec{inner: codec.NewImaging()}
	tr, err := New(cc)
	require.NoError(t, err)
	src := buildTestPNG(t, 20, 10)

	for _, p := range []float64{0, -50} {
		_, err := tr.ScaleImage(src, p, codec.PNG)
		assert.ErrorIs(t, err, ErrInvalidArgument, "percentage %v", p)
	}
	assert.Equal(t, int32(2), cc.configs.Load())
	assert.Zero(t, cc.decodes.Load())
}

func TestScaleImageOverflow(t *testing.T) {
	tr := newTransformer(t)

	_, err := tr.ScaleImage(buildTestPNG(t, 400, 10), 10000, codec.PNG)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestMalformedInputIsDecodeError(t *testing.T) {
	tr := newTransformer(t)
	garbage := [][]byte{nil, {}, []byte("not an image"), {0x89, 'P', 'N', 'G', 0x0d, 0x0a}}

	for _, g := range garbage {
		_, err := tr.ReduceJPGQuality(g, 80)
		assert.ErrorIs(t, err, ErrDecode)
		_, err = tr.ResizeImage(g, 10, 10, codec.PNG)
		assert.ErrorIs(t, err, ErrDecode)
		_, err = tr.ScaleImage(g, 50, codec.JPEG)
		assert.ErrorIs(t, err, ErrDecode)
	}
}

func TestTruncatedInputIsDecodeError(t *testing.T) {
	tr := newTransformer(t)
	src := buildTestPNG(t, 64, 64)
	truncated := src[:len(src)/2]

	_, err := tr.ScaleImage(truncated, 50, codec.PNG)
	assert.ErrorIs(t, err, ErrDecode)
}

func TestNewRejectsInvalidJPEGQuality(t *testing.T) {
	_, err := New(nil, WithJPEGQuality(0))
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestConcurrentCalls(t *testing.T) {
	tr := newTransformer(t)
	src := buildTestPNG(t, 64, 48)

	var wg sync.WaitGroup
	errs := make(chan error, 24)
	for i := 0; i < 8; i++ {
		wg.Add(3)
		go func() {
			defer wg.Done()
			_, err := tr.ReduceJPGQuality(src, 40)
			errs <- err
		}()
		go func(n int) {
			defer wg.Done()
			_, err := tr.ResizeImage(src, 10+n, 20+n, codec.PNG)
			errs <- err
		}(i)
		go func() {
			defer wg.Done()
			_, err := tr.ScaleImage(src, 25, codec.JPEG)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}
}
