//nolint:revive // types is a standard Go package name pattern
package types

// FontOptions are the font families offered for rendered website copy.
var FontOptions = []string{
	"Arial", "Georgia", "Verdana", "Courier New", "Times New Roman",
	"Century", "Century Gothic",
}

// TypographyStyle controls how website copy is rendered as HTML.
// Stored separately from StyleProfile records.
type TypographyStyle struct {
	HeadlineFont  string `json:"headline_font" validate:"required,oneof=Arial Georgia Verdana 'Courier New' 'Times New Roman' Century 'Century Gothic'"`
	HeadlineSize  int    `json:"headline_size" validate:"min=18,max=48"`
	HeadlineColor string `json:"headline_color" validate:"required,hexcolor"`
	BodyFont      string `json:"body_font" validate:"required,oneof=Arial Georgia Verdana 'Courier New' 'Times New Roman' Century 'Century Gothic'"`
	BodySize      int    `json:"body_size" validate:"min=12,max=32"`
	BodyColor     string `json:"body_color" validate:"required,hexcolor"`
}

// DefaultTypography returns the preset used when no typography style is chosen.
func DefaultTypography() TypographyStyle {
	return TypographyStyle{
		HeadlineFont:  "Century Gothic",
		HeadlineSize:  32,
		HeadlineColor: "#222222",
		BodyFont:      "Century Gothic",
		BodySize:      18,
		BodyColor:     "#222222",
	}
}

// Validate validates the typography style using the validator.
func (t *TypographyStyle) Validate() error {
	return validateStruct(t)
}
