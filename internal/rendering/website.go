package rendering

import (
	_ "embed"
	"html/template"
	"strings"

	"github.com/jonathan/archinews-creator/internal/types"
)

//go:embed website.html.tmpl
var websiteTemplate string

var websiteTmpl = template.Must(template.New("website").Parse(websiteTemplate))

// InfoItem is one label/value pair of the project info grid.
type InfoItem struct {
	Label string
	Value string
}

// WebsiteData is the data passed to the website template.
type WebsiteData struct {
	Headline string
	Body     string
	Info     []InfoItem
	Style    types.TypographyStyle
}

// RenderWebsiteHTML renders one generated variant with the project info grid.
// A zero typography style falls back to types.DefaultTypography.
func RenderWebsiteHTML(v types.Variant, project types.Project, style types.TypographyStyle) (string, error) {
	if !v.HasContent() {
		return "", &RenderError{Message: "no generated content to render"}
	}

	if style == (types.TypographyStyle{}) {
		style = types.DefaultTypography()
	}
	if err := style.Validate(); err != nil {
		return "", &RenderError{Message: "invalid typography style", Cause: err}
	}

	data := WebsiteData{
		Headline: DisplayHeadline(v.Title),
		Body:     v.Body(),
		Info:     ProjectInfo(project),
		Style:    style,
	}

	var out strings.Builder
	if err := websiteTmpl.Execute(&out, data); err != nil {
		return "", &TemplateError{Message: "failed to execute template", Cause: err}
	}
	return out.String(), nil
}

// ProjectInfo returns the grid entries in display order.
func ProjectInfo(p types.Project) []InfoItem {
	return []InfoItem{
		{Label: "Project", Value: p.Name},
		{Label: "Client", Value: p.Client},
		{Label: "Location", Value: p.Location},
		{Label: "Architectural Office", Value: p.Firms()},
		{Label: "Type", Value: string(p.Type)},
		{Label: "Size", Value: p.SizeScope},
		{Label: "Timeline", Value: p.Timeline},
		{Label: "Phase", Value: p.Phase},
	}
}

// DisplayHeadline strips a leftover "Headline:" label and bold markers.
func DisplayHeadline(title string) string {
	title = strings.TrimSpace(title)
	if strings.HasPrefix(strings.ToLower(title), "headline:") {
		title = strings.TrimSpace(title[len("headline:"):])
	}
	title = strings.TrimPrefix(title, "**")
	title = strings.TrimSuffix(title, "**")
	return strings.TrimSpace(title)
}
