// Package observability provides structured logging setup and formatted
// output for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/archinews-creator/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 72
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and word-wrapped content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	inner := boxWidth - 4
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s │\n", pad(title, inner))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		for _, wrapped := range wrap(line, inner) {
			fmt.Fprintf(p.out, "│ %s │\n", pad(wrapped, inner))
		}
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintProject outputs the project card.
func (p *Printer) PrintProject(project *types.Project) {
	if project == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Name:      %s\n", project.Name))
	sb.WriteString(fmt.Sprintf("Type:      %s\n", project.Type))
	if project.Client != "" {
		sb.WriteString(fmt.Sprintf("Client:    %s\n", project.Client))
	}
	if project.Location != "" {
		sb.WriteString(fmt.Sprintf("Location:  %s\n", project.Location))
	}
	if project.Phase != "" {
		sb.WriteString(fmt.Sprintf("Phase:     %s\n", project.Phase))
	}
	if len(project.ArchitecturalFirm) > 0 {
		sb.WriteString(fmt.Sprintf("Office:    %s\n", project.Firms()))
	}
	if len(project.CustomUSPs) > 0 {
		sb.WriteString("Custom USPs:\n")
		count := min(len(project.CustomUSPs), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", project.CustomUSPs[i]))
		}
		if len(project.CustomUSPs) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(project.CustomUSPs)-maxItemsToShow))
		}
	}

	p.printBox("PROJECT CARD", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintGeneratedContent outputs one box per length with headline, word count and body.
func (p *Printer) PrintGeneratedContent(content types.GeneratedContent) {
	if len(content) == 0 {
		return
	}

	for _, label := range types.LengthLabels {
		v, ok := content[label]
		if !ok {
			continue
		}
		body := v.Body()
		var sb strings.Builder
		sb.WriteString(fmt.Sprintf("%s\n", v.Title))
		sb.WriteString(fmt.Sprintf("(%d words, target %d)\n\n", len(strings.Fields(body)), label.WordTarget()))
		sb.WriteString(body)
		p.printBox("WEBSITE COPY: "+strings.ToUpper(string(label)), sb.String())
	}
}

// PrintCaption outputs a caption with its character count.
func (p *Printer) PrintCaption(caption string, target int) {
	if caption == "" {
		return
	}
	header := fmt.Sprintf("(%d characters, target %d)\n\n", utf8.RuneCountInString(caption), target)
	p.printBox("INSTAGRAM CAPTION", header+caption)
}

// PrintHashtags outputs the final hashtag list.
func (p *Printer) PrintHashtags(tags []string) {
	content := "(none)"
	if len(tags) > 0 {
		content = fmt.Sprintf("%d hashtags\n\n%s", len(tags), strings.Join(tags, " "))
	}
	p.printBox("HASHTAGS", content)
}

func pad(s string, width int) string {
	if n := utf8.RuneCountInString(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}

// wrap breaks line at spaces so no piece exceeds width runes; single words
// longer than width are cut.
func wrap(line string, width int) []string {
	if utf8.RuneCountInString(line) <= width {
		return []string{line}
	}

	var lines []string
	var current []rune
	for _, word := range strings.Fields(line) {
		w := []rune(word)
		for len(w) > width {
			if len(current) > 0 {
				lines = append(lines, string(current))
				current = nil
			}
			lines = append(lines, string(w[:width]))
			w = w[width:]
		}
		switch {
		case len(current) == 0:
			current = w
		case len(current)+1+len(w) <= width:
			current = append(append(current, ' '), w...)
		default:
			lines = append(lines, string(current))
			current = w
		}
	}
	if len(current) > 0 {
		lines = append(lines, string(current))
	}
	return lines
}
