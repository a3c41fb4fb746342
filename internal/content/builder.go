// Package content builds website copy prompts and turns model output into
// headline and article variants for each length.
package content

import (
	"strconv"
	"strings"

	"github.com/jonathan/archinews-creator/internal/prompts"
	"github.com/jonathan/archinews-creator/internal/types"
)

// BuildPrompt assembles the website copy instruction for one length label.
// Empty project fields are interpolated as empty strings and empty style fields
// fall back to the defaults of types.StyleProfile.WithDefaults.
func BuildPrompt(project types.Project, usps []string, style types.StyleProfile, label types.LengthLabel, withImage bool) string {
	style = style.WithDefaults()

	imageNote := ""
	if withImage {
		imageNote = prompts.MustGet(prompts.WebsiteFile, "image-note")
	}

	words := strconv.Itoa(label.WordTarget())
	return prompts.Format(prompts.MustGet(prompts.WebsiteFile, "article"), map[string]string{
		"ImageNote":   imageNote,
		"ProjectName": project.Name,
		"Client":      project.Client,
		"Location":    project.Location,
		"Type":        string(project.Type),
		"SizeScope":   project.SizeScope,
		"Timeline":    project.Timeline,
		"Phase":       project.Phase,
		"Firms":       project.Firms(),
		"USPs":        strings.Join(usps, ", "),
		"Voice":       style.Voice,
		"Formality":   string(style.Formality),
		"Length":      string(label),
		"Words":       words,
		"Structure":   string(style.Structure),
	})
}
