package framing

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	red  = color.NRGBA{R: 255, A: 255}
	blue = color.NRGBA{B: 255, A: 255}
)

// splitImage returns a w×h image whose first half (left, or top when vertical) is red
// and second half is blue.
func splitImage(w, h int, vertical bool) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			first := x < w/2
			if vertical {
				first = y < h/2
			}
			if first {
				img.Set(x, y, red)
			} else {
				img.Set(x, y, blue)
			}
		}
	}
	return img
}

func isRed(c color.Color) bool {
	r, g, b, _ := c.RGBA()
	return r>>8 > 200 && g>>8 < 60 && b>>8 < 60
}

func isBlue(c color.Color) bool {
	r, g, b, _ := c.RGBA()
	return b>>8 > 200 && r>>8 < 60 && g>>8 < 60
}

func TestFrame_AlwaysExactSize(t *testing.T) {
	sources := []image.Image{
		splitImage(400, 100, false),
		splitImage(100, 400, true),
		splitImage(50, 50, false),
		splitImage(1, 3, true),
	}
	params := []Params{
		{Width: 160, Height: 90, Zoom: 1},
		{Width: 108, Height: 108, Zoom: 0.1, OffsetX: -1, OffsetY: 1},
		{Width: 64, Height: 32, Zoom: 2.5, OffsetX: 0.3, OffsetY: -0.7},
		{Width: 33, Height: 77, Zoom: 0.5, OffsetX: 1, OffsetY: 1},
		{Width: 20, Height: 20, Zoom: -4, OffsetX: 9, OffsetY: -9},
		{Width: 20, Height: 10, Zoom: math.NaN(), OffsetX: math.NaN()},
	}

	for _, src := range sources {
		for _, p := range params {
			out := Frame(src, p)
			assert.Equal(t, p.Width, out.Bounds().Dx(), "params %+v", p)
			assert.Equal(t, p.Height, out.Bounds().Dy(), "params %+v", p)
		}
	}
}

func TestFrame_NilSourceYieldsBlankCanvas(t *testing.T) {
	out := Frame(nil, Params{Width: 10, Height: 5, Zoom: 1})
	assert.Equal(t, image.Rect(0, 0, 10, 5), out.Bounds())
	r, g, b, _ := out.At(3, 3).RGBA()
	assert.Equal(t, []uint32{0xffff, 0xffff, 0xffff}, []uint32{r, g, b})
}

func TestFrame_WideSourceCentredByDefault(t *testing.T) {
	src := splitImage(400, 100, false)

	out := Frame(src, Params{Width: 100, Height: 100, Zoom: 1})

	assert.True(t, isRed(out.At(10, 50)), "left of centre should show the red half")
	assert.True(t, isBlue(out.At(90, 50)), "right of centre should show the blue half")
}

func TestFrame_OffsetPansToEdges(t *testing.T) {
	src := splitImage(400, 100, false)

	left := Frame(src, Params{Width: 100, Height: 100, Zoom: 1, OffsetX: -1})
	assert.True(t, isRed(left.At(5, 50)))
	assert.True(t, isRed(left.At(95, 50)))

	right := Frame(src, Params{Width: 100, Height: 100, Zoom: 1, OffsetX: 1})
	assert.True(t, isBlue(right.At(5, 50)))
	assert.True(t, isBlue(right.At(95, 50)))
}

func TestFrame_TallSourceCentredVertically(t *testing.T) {
	src := splitImage(100, 400, true)

	centred := Frame(src, Params{Width: 100, Height: 100, Zoom: 1})
	assert.True(t, isRed(centred.At(50, 10)))
	assert.True(t, isBlue(centred.At(50, 90)))

	top := Frame(src, Params{Width: 100, Height: 100, Zoom: 1, OffsetY: -1})
	assert.True(t, isRed(top.At(50, 95)))
}

func TestFrame_ZoomOutLeavesWhiteMargins(t *testing.T) {
	src := splitImage(100, 100, false)

	out := Frame(src, Params{Width: 100, Height: 100, Zoom: 0.5})

	r, g, b, _ := out.At(2, 2).RGBA()
	assert.Equal(t, []uint32{0xffff, 0xffff, 0xffff}, []uint32{r, g, b})
	assert.True(t, isRed(out.At(30, 50)))
}

func TestFrame_HugeZoomIsClamped(t *testing.T) {
	src := splitImage(100, 100, false)

	var out *image.NRGBA
	require.NotPanics(t, func() {
		out = Frame(src, Params{Width: 100, Height: 100, Zoom: 1e5})
	})
	assert.Equal(t, image.Rect(0, 0, 100, 100), out.Bounds())
	assert.Equal(t, MaxZoom, Params{Width: 100, Height: 100, Zoom: 1e5}.Normalize().Zoom)
	assert.Equal(t, MaxZoom, Params{Width: 100, Height: 100, Zoom: math.Inf(1)}.Normalize().Zoom)

	// at 3x the centre of the frame sits on the red/blue boundary; the edges do not
	assert.True(t, isRed(out.At(5, 50)))
	assert.True(t, isBlue(out.At(95, 50)))
}

func TestFrame_ExtremeAspectOnlyResizesVisibleWindow(t *testing.T) {
	src := splitImage(20000, 2, false)

	var out *image.NRGBA
	require.NotPanics(t, func() {
		out = Frame(src, Params{Width: 108, Height: 108, Zoom: 3})
	})
	assert.Equal(t, image.Rect(0, 0, 108, 108), out.Bounds())

	left := Frame(src, Params{Width: 108, Height: 108, Zoom: 1, OffsetX: -1})
	assert.True(t, isRed(left.At(54, 54)))
	right := Frame(src, Params{Width: 108, Height: 108, Zoom: 1, OffsetX: 1})
	assert.True(t, isBlue(right.At(54, 54)))
}

func TestFrame_FlattensTransparency(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 20, 20))
	out := Frame(src, Params{Width: 20, Height: 20, Zoom: 1})

	_, _, _, a := out.At(10, 10).RGBA()
	assert.Equal(t, uint32(0xffff), a)
}

func TestFrame_Deterministic(t *testing.T) {
	src := splitImage(300, 200, false)
	p := Params{Width: 80, Height: 45, Zoom: 1.3, OffsetX: 0.25, OffsetY: -0.5}

	assert.Equal(t, Frame(src, p).Pix, Frame(src, p).Pix)
}

func TestCoverScale(t *testing.T) {
	// wider than frame: scale by height
	assert.InDelta(t, 0.5, CoverScale(400, 200, 100, 100, 1), 1e-9)
	// taller than frame: scale by width
	assert.InDelta(t, 0.25, CoverScale(400, 800, 100, 100, 1), 1e-9)
	// zoom multiplies, floored at MinZoom
	assert.InDelta(t, 1.0, CoverScale(400, 200, 100, 100, 2), 1e-9)
	assert.InDelta(t, 0.05, CoverScale(400, 200, 100, 100, 0.01), 1e-9)
	assert.Equal(t, 0.0, CoverScale(0, 200, 100, 100, 1))
}

func TestCoverScale_MonotonicInZoom(t *testing.T) {
	prev := CoverScale(1920, 1080, 1080, 1080, 0)
	for zoom := 0.0; zoom <= 3.0; zoom += 0.05 {
		scale := CoverScale(1920, 1080, 1080, 1080, zoom)
		assert.GreaterOrEqual(t, scale, prev, "zoom %.2f", zoom)
		if zoom > MinZoom+1e-9 {
			assert.Greater(t, scale, prev, "zoom %.2f", zoom)
		}
		prev = scale
	}
}

func TestPlace(t *testing.T) {
	p := Place(400, 100, Params{Width: 100, Height: 100, Zoom: 1})
	assert.Equal(t, Placement{ScaledWidth: 400, ScaledHeight: 100, X: -150, Y: 0}, p)

	left := Place(400, 100, Params{Width: 100, Height: 100, Zoom: 1, OffsetX: -1})
	assert.Equal(t, 0, left.X)

	right := Place(400, 100, Params{Width: 100, Height: 100, Zoom: 1, OffsetX: 1})
	assert.Equal(t, -300, right.X)
}

func TestParams_Normalize(t *testing.T) {
	p := Params{Width: 0, Height: -3, Zoom: 0.01, OffsetX: -2, OffsetY: 5}.Normalize()
	assert.Equal(t, Params{Width: 1, Height: 1, Zoom: MinZoom, OffsetX: -1, OffsetY: 1}, p)

	nan := Params{Width: 10, Height: 10, Zoom: math.NaN(), OffsetX: math.NaN(), OffsetY: math.NaN()}.Normalize()
	assert.Equal(t, 1.0, nan.Zoom)
	assert.Equal(t, 0.0, nan.OffsetX)
	assert.Equal(t, 0.0, nan.OffsetY)
}

func TestDecode(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, splitImage(30, 20, false)))

	img, err := Decode(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, 30, img.Bounds().Dx())
	assert.Equal(t, 20, img.Bounds().Dy())

	_, err = Decode(nil)
	var decErr *DecodeError
	assert.ErrorAs(t, err, &decErr)

	_, err = Decode([]byte("not an image"))
	assert.ErrorAs(t, err, &decErr)
}
