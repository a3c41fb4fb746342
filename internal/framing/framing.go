// Package framing fits project images into fixed-size frames with operator-controlled zoom and pan.
package framing

import (
	"bytes"
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
)

// Zoom range applied by Normalize.
const (
	MinZoom = 0.1
	MaxZoom = 3.0
)

var background = color.White

// Params describes one framing request.
type Params struct {
	Width   int     `json:"width"`
	Height  int     `json:"height"`
	Zoom    float64 `json:"zoom"`
	OffsetX float64 `json:"offset_x"`
	OffsetY float64 `json:"offset_y"`
}

// Normalize clamps out-of-range values instead of rejecting them.
func (p Params) Normalize() Params {
	p.Width = max(p.Width, 1)
	p.Height = max(p.Height, 1)

	if math.IsNaN(p.Zoom) {
		p.Zoom = 1
	}
	p.Zoom = math.Max(MinZoom, math.Min(MaxZoom, p.Zoom))

	p.OffsetX = clampOffset(p.OffsetX)
	p.OffsetY = clampOffset(p.OffsetY)
	return p
}

func clampOffset(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(-1, math.Min(1, v))
}

// CoverScale returns the scale applied to an iw×ih source for a fw×fh frame.
// A source wider than the frame is scaled by height, otherwise by width; the result
// is multiplied by zoom (floored at MinZoom).
func CoverScale(iw, ih, fw, fh int, zoom float64) float64 {
	if iw <= 0 || ih <= 0 || fw <= 0 || fh <= 0 {
		return 0
	}

	targetRatio := float64(fw) / float64(fh)
	imgRatio := float64(iw) / float64(ih)

	var scale float64
	if imgRatio > targetRatio {
		scale = float64(fh) / float64(ih)
	} else {
		scale = float64(fw) / float64(iw)
	}
	return scale * math.Max(zoom, MinZoom)
}

// Placement is where the scaled source lands on the frame canvas.
type Placement struct {
	ScaledWidth  int
	ScaledHeight int
	X            int
	Y            int
}

// Place computes the scaled size and paste position for a source of the given size.
func Place(iw, ih int, p Params) Placement {
	p = p.Normalize()
	scale := CoverScale(iw, ih, p.Width, p.Height, p.Zoom)

	newW := max(int(float64(iw)*scale), 1)
	newH := max(int(float64(ih)*scale), 1)

	maxDX := float64(max(0, newW-p.Width))
	maxDY := float64(max(0, newH-p.Height))

	return Placement{
		ScaledWidth:  newW,
		ScaledHeight: newH,
		X:            int(float64(p.Width-newW)/2 - (maxDX/2)*p.OffsetX),
		Y:            int(float64(p.Height-newH)/2 - (maxDY/2)*p.OffsetY),
	}
}

// Frame produces an image of exactly p.Width×p.Height. Offset -1 shows the left/top
// edge of the source, +1 the right/bottom edge, 0 centres it. Uncovered canvas is white.
func Frame(src image.Image, p Params) *image.NRGBA {
	p = p.Normalize()
	canvas := imaging.New(p.Width, p.Height, background)
	if src == nil || src.Bounds().Empty() {
		return canvas
	}

	base := flatten(src)
	b := base.Bounds()
	place := Place(b.Dx(), b.Dy(), p)

	// Only the part of the scaled source that lands on the canvas is resized.
	x0, x1, sx0, sx1 := visibleSpan(place.X, place.ScaledWidth, p.Width, b.Dx())
	y0, y1, sy0, sy1 := visibleSpan(place.Y, place.ScaledHeight, p.Height, b.Dy())
	if x1 <= x0 || y1 <= y0 {
		return canvas
	}

	window := imaging.Crop(base, image.Rect(sx0, sy0, sx1, sy1))
	scaled := imaging.Resize(window, x1-x0, y1-y0, imaging.Lanczos)
	return imaging.Paste(canvas, scaled, image.Pt(x0, y0))
}

// visibleSpan clips a scaled run of length scaled placed at pos to [0, frame) and
// maps the clipped run back to source coordinates in [0, src).
func visibleSpan(pos, scaled, frame, src int) (c0, c1, s0, s1 int) {
	c0 = max(pos, 0)
	c1 = min(pos+scaled, frame)
	if c1 <= c0 {
		return c0, c1, 0, 0
	}
	ratio := float64(src) / float64(scaled)
	s0 = max(int(math.Floor(float64(c0-pos)*ratio)), 0)
	s1 = min(int(math.Ceil(float64(c1-pos)*ratio)), src)
	if s1 <= s0 {
		s1 = min(s0+1, src)
		s0 = s1 - 1
	}
	return c0, c1, s0, s1
}

// flatten composites src onto an opaque white background so the frame is always RGB.
func flatten(src image.Image) *image.NRGBA {
	b := src.Bounds()
	opaque := imaging.New(b.Dx(), b.Dy(), background)
	return imaging.Overlay(opaque, src, image.Pt(0, 0), 1.0)
}

// Decode reads PNG or JPEG bytes, applying any EXIF orientation.
func Decode(data []byte) (image.Image, error) {
	if len(data) == 0 {
		return nil, &DecodeError{Message: "image is empty"}
	}
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, &DecodeError{Message: "unsupported or corrupt image", Cause: err}
	}
	return img, nil
}
