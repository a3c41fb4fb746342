//nolint:revive // types is a standard Go package name pattern
package types

import (
	"strings"
)

// LengthLabel names one of the three generated article lengths.
type LengthLabel string

// Length labels, in generation order
const (
	LengthShort  LengthLabel = "short"
	LengthMedium LengthLabel = "medium"
	LengthLong   LengthLabel = "long"
)

// LengthLabels lists every label. A complete generation populates all of them.
var LengthLabels = []LengthLabel{LengthShort, LengthMedium, LengthLong}

// Sentinel texts standing in for content the model did not produce.
const (
	NoHeadlineSentinel = "[No headline generated]"
	NoArticleSentinel  = "[No article generated]"
)

// WordTarget returns the approximate article word count requested for the label.
func (l LengthLabel) WordTarget() int {
	switch l {
	case LengthShort:
		return 50
	case LengthMedium:
		return 120
	case LengthLong:
		return 250
	default:
		return 0
	}
}

// Valid reports whether l is one of the known labels.
func (l LengthLabel) Valid() bool {
	return l.WordTarget() > 0
}

// ParseLengthLabel converts user input to a LengthLabel.
func ParseLengthLabel(s string) (LengthLabel, error) {
	label := LengthLabel(strings.ToLower(strings.TrimSpace(s)))
	if !label.Valid() {
		return "", &ValidationError{Field: "length", Message: "must be one of short, medium, long"}
	}
	return label, nil
}

// Section is one block of article body text.
type Section struct {
	Body string `json:"body"`
}

// Variant is the generated headline and body for one length label.
type Variant struct {
	Title    string    `json:"title"`
	Sections []Section `json:"sections"`
}

// Body returns the text of the first section.
func (v Variant) Body() string {
	if len(v.Sections) == 0 {
		return ""
	}
	return v.Sections[0].Body
}

// HasContent reports whether the variant carries a real title and body rather than sentinels.
func (v Variant) HasContent() bool {
	title := strings.TrimSpace(v.Title)
	body := strings.TrimSpace(v.Body())
	return len(v.Sections) == 1 &&
		title != "" && title != NoHeadlineSentinel &&
		body != "" && body != NoArticleSentinel
}

// GeneratedContent maps each length label to its generated variant.
type GeneratedContent map[LengthLabel]Variant

// Complete reports whether every label is present with real content.
func (c GeneratedContent) Complete() bool {
	if len(c) != len(LengthLabels) {
		return false
	}
	for _, label := range LengthLabels {
		v, ok := c[label]
		if !ok || !v.HasContent() {
			return false
		}
	}
	return true
}

// LongFormText is the text captions and hashtags are derived from: the long headline and body.
func (c GeneratedContent) LongFormText() string {
	long, ok := c[LengthLong]
	if !ok {
		return ""
	}
	return strings.TrimSpace(long.Title + " " + long.Body())
}
