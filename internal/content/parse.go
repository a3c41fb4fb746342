package content

import (
	"strings"

	"github.com/jonathan/archinews-creator/internal/types"
)

const headlinePrefix = "headline:"

var emphasisMarkers = []string{"**", "__", "*", "_"}

// ParseResponse splits raw model output into a variant: the first line is the
// headline, every following line (joined and trimmed) is the body. Missing parts
// are replaced by the sentinel texts.
func ParseResponse(raw string) types.Variant {
	lines := strings.Split(strings.ReplaceAll(strings.TrimSpace(raw), "\r\n", "\n"), "\n")

	title := cleanHeadline(lines[0])
	body := strings.TrimSpace(strings.Join(lines[1:], "\n"))

	if title == "" {
		title = types.NoHeadlineSentinel
	}
	if body == "" {
		body = types.NoArticleSentinel
	}

	return types.Variant{
		Title:    title,
		Sections: []types.Section{{Body: body}},
	}
}

// cleanHeadline removes a markdown heading marker, surrounding emphasis and a
// "Headline:" label in whichever order the model nested them.
func cleanHeadline(line string) string {
	line = strings.TrimSpace(line)
	if trimmed := strings.TrimLeft(line, "#"); trimmed != line && strings.HasPrefix(trimmed, " ") {
		line = strings.TrimSpace(trimmed)
	}

	for {
		before := line
		line = stripEmphasis(line)
		if strings.HasPrefix(strings.ToLower(line), headlinePrefix) {
			line = strings.TrimSpace(line[len(headlinePrefix):])
		}
		if line == before {
			return line
		}
	}
}

func stripEmphasis(s string) string {
	for _, marker := range emphasisMarkers {
		if len(s) > 2*len(marker) && strings.HasPrefix(s, marker) && strings.HasSuffix(s, marker) {
			return strings.TrimSpace(s[len(marker) : len(s)-len(marker)])
		}
	}
	// "**Headline:** Foo" leaves a dangling marker after the label
	for _, marker := range emphasisMarkers {
		if strings.HasPrefix(s, marker) {
			rest := strings.TrimSpace(strings.TrimPrefix(s, marker))
			if strings.HasPrefix(strings.ToLower(rest), headlinePrefix) {
				rest = strings.TrimSpace(rest[len(headlinePrefix):])
				return strings.TrimSpace(strings.TrimPrefix(rest, marker))
			}
		}
	}
	return s
}
