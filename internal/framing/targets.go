package framing

import (
	"bytes"
	"fmt"
	"image"
	"strings"

	"github.com/disintegration/imaging"
)

// Target is one of the fixed-aspect derivatives produced from a source image.
type Target string

// Targets used by the website and Instagram outputs
const (
	Hero   Target = "hero"
	Square Target = "square"
)

// Targets lists every target in presentation order.
var Targets = []Target{Hero, Square}

// jpegQuality matches the quality of downloadable hero images.
const jpegQuality = 92

// ParseTarget converts user input to a Target.
func ParseTarget(s string) (Target, error) {
	t := Target(strings.ToLower(strings.TrimSpace(s)))
	switch t {
	case Hero, Square:
		return t, nil
	}
	return "", fmt.Errorf("unknown frame target %q (want hero or square)", s)
}

// Size returns the frame dimensions of the target.
func (t Target) Size() (int, int) {
	switch t {
	case Hero:
		return 1600, 900
	case Square:
		return 1080, 1080
	}
	return 0, 0
}

// Params returns framing parameters for the target with the given zoom and pan.
func (t Target) Params(zoom, offsetX, offsetY float64) Params {
	w, h := t.Size()
	return Params{Width: w, Height: h, Zoom: zoom, OffsetX: offsetX, OffsetY: offsetY}
}

// Format is the encoding used when the target is downloaded.
func (t Target) Format() imaging.Format {
	if t == Hero {
		return imaging.JPEG
	}
	return imaging.PNG
}

// ContentType is the MIME type of the encoded target.
func (t Target) ContentType() string {
	if t == Hero {
		return "image/jpeg"
	}
	return "image/png"
}

// FileName is the download file name of the encoded target.
func (t Target) FileName() string {
	if t == Hero {
		return "web_hero_1600x900.jpg"
	}
	return "instagram_1080.png"
}

// Encode writes img in the target's download format.
func Encode(img image.Image, t Target) ([]byte, error) {
	return EncodeAs(img, t.Format())
}

// EncodeAs writes img as JPEG or PNG.
func EncodeAs(img image.Image, format imaging.Format) ([]byte, error) {
	var buf bytes.Buffer
	var err error
	if format == imaging.JPEG {
		err = imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(jpegQuality))
	} else {
		err = imaging.Encode(&buf, img, format)
	}
	if err != nil {
		return nil, &EncodeError{Format: format.String(), Cause: err}
	}
	return buf.Bytes(), nil
}
