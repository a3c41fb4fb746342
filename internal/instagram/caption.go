// Package instagram derives Instagram captions and hashtags from generated
// website copy.
package instagram

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"github.com/jonathan/archinews-creator/internal/llm"
	"github.com/jonathan/archinews-creator/internal/prompts"
)

// Caption length targets in characters.
var CaptionLengths = []int{80, 200, 400}

// DefaultCaptionLength is the preselected caption length.
const DefaultCaptionLength = 200

// CaptionTones are the tones offered for captions.
var CaptionTones = []string{"neutral", "enthusiastic", "conversational", "formal"}

// DefaultEndings are the closing lines offered for every caption.
var DefaultEndings = []string{"www.scherzer-architekten.de", "Photo: Max Mustermann"}

// NoContentMarker is returned instead of a caption when there is no website copy to work from.
const NoContentMarker = "[No website content available. Please generate website content first.]"

const errorMarkerPrefix = "[Error generating caption: "

// captionTokenHeadroom is added to the character target to get the output-token budget.
const captionTokenHeadroom = 50

// CaptionGenerator writes captions. It never returns an error: failures come
// back as a visible marker in place of the caption, see IsFailedCaption.
type CaptionGenerator struct {
	Client llm.Client
	Logger *slog.Logger
}

// NewCaptionGenerator creates a caption generator.
func NewCaptionGenerator(client llm.Client, logger *slog.Logger) *CaptionGenerator {
	return &CaptionGenerator{Client: client, Logger: logger}
}

// Generate rewrites text as a caption of about length characters in tone and
// appends each ending on its own line, in the given order.
func (g *CaptionGenerator) Generate(ctx context.Context, text, tone string, length int, endings []string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return NoContentMarker
	}
	if !slices.Contains(CaptionLengths, length) {
		return errorMarker(fmt.Errorf("unsupported caption length %d", length))
	}
	if g.Client == nil {
		return errorMarker(fmt.Errorf("no generation client configured"))
	}
	if strings.TrimSpace(tone) == "" {
		tone = CaptionTones[0]
	}

	prompt := prompts.Format(prompts.MustGet(prompts.InstagramFile, "caption"), map[string]string{
		"Text":   text,
		"Tone":   tone,
		"Length": strconv.Itoa(length),
	})

	raw, err := g.Client.Generate(ctx, llm.Request{
		Prompt:          prompt,
		Tier:            llm.TierText,
		MaxOutputTokens: length + captionTokenHeadroom,
		Temperature:     llm.DefaultTemperature,
	})
	if err != nil {
		g.logger().Warn("caption generation failed", "error", err, "tone", tone, "length", length)
		return errorMarker(err)
	}

	caption := llm.CleanText(raw)
	if caption == "" {
		g.logger().Warn("caption generation returned no text", "tone", tone, "length", length)
		return errorMarker(fmt.Errorf("model returned an empty caption"))
	}

	lines := []string{caption}
	for _, ending := range endings {
		if strings.TrimSpace(ending) != "" {
			lines = append(lines, ending)
		}
	}
	return strings.Join(lines, "\n")
}

// IsFailedCaption reports whether text is a failure marker rather than a caption.
func IsFailedCaption(text string) bool {
	return text == NoContentMarker || strings.HasPrefix(text, errorMarkerPrefix)
}

func errorMarker(err error) string {
	return errorMarkerPrefix + err.Error() + "]"
}

func (g *CaptionGenerator) logger() *slog.Logger {
	if g.Logger != nil {
		return g.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
