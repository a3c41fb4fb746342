package llm

import (
	"fmt"
	"net/http"
	"strings"
)

// Image is an image payload sent alongside a prompt.
// Format is the short image format ("png", "jpeg").
type Image struct {
	Format string
	Data   []byte
}

// NewImage sniffs the format of data. Only PNG and JPEG are accepted.
func NewImage(data []byte) (*Image, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("image data is empty")
	}
	mime := http.DetectContentType(data)
	switch mime {
	case "image/png", "image/jpeg":
		return &Image{Format: strings.TrimPrefix(mime, "image/"), Data: data}, nil
	default:
		return nil, fmt.Errorf("unsupported image type %q", mime)
	}
}

// MIMEType returns the image's content type.
func (i *Image) MIMEType() string {
	return "image/" + i.Format
}
