package instagram

import (
	"context"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/jonathan/archinews-creator/internal/llm"
	"github.com/jonathan/archinews-creator/internal/prompts"
)

// MaxAutoHashtags caps the generated hashtags.
const MaxAutoHashtags = 15

const hashtagTokenBudget = 150

// NoHashtagsNotice is shown when neither generated nor custom hashtags exist.
const NoHashtagsNotice = "No hashtags generated. Please check your website content or select custom hashtags."

// DefaultCustomHashtags are offered as custom hashtags in every session.
var DefaultCustomHashtags = []string{"#architecture", "#design"}

// HashtagGenerator derives hashtags from website copy. Failures degrade to an empty list.
type HashtagGenerator struct {
	Client llm.Client
	Logger *slog.Logger
}

// NewHashtagGenerator creates a hashtag generator.
func NewHashtagGenerator(client llm.Client, logger *slog.Logger) *HashtagGenerator {
	return &HashtagGenerator{Client: client, Logger: logger}
}

// Generate returns up to MaxAutoHashtags hashtags for text. Empty text is not
// sent to the model.
func (g *HashtagGenerator) Generate(ctx context.Context, text string) []string {
	text = strings.TrimSpace(text)
	if text == "" || g.Client == nil {
		return []string{}
	}

	prompt := prompts.Format(prompts.MustGet(prompts.InstagramFile, "hashtags"), map[string]string{
		"Count": strconv.Itoa(MaxAutoHashtags),
		"Text":  text,
	})

	raw, err := g.Client.Generate(ctx, llm.Request{
		Prompt:          prompt,
		Tier:            llm.TierText,
		MaxOutputTokens: hashtagTokenBudget,
		Temperature:     llm.DefaultTemperature,
	})
	if err != nil {
		g.logger().Warn("hashtag generation failed", "error", err)
		return []string{}
	}

	tags := FilterHashtags(raw)
	g.logger().Debug("hashtags generated", "count", len(tags))
	return tags
}

// FilterHashtags keeps the whitespace-separated tokens of raw that start with '#',
// drops exact duplicates and truncates to MaxAutoHashtags.
func FilterHashtags(raw string) []string {
	tags := []string{}
	seen := make(map[string]bool)
	for _, token := range strings.Fields(raw) {
		if !strings.HasPrefix(token, "#") || seen[token] {
			continue
		}
		seen[token] = true
		tags = append(tags, token)
		if len(tags) == MaxAutoHashtags {
			break
		}
	}
	return tags
}

// CombineHashtags concatenates generated and ticked custom hashtags without
// cross-source de-duplication.
func CombineHashtags(auto, tickedCustom []string) []string {
	combined := make([]string, 0, len(auto)+len(tickedCustom))
	combined = append(combined, auto...)
	return append(combined, tickedCustom...)
}

// HashtagText renders tags as one space-separated line, or NoHashtagsNotice.
func HashtagText(tags []string) string {
	if len(tags) == 0 {
		return NoHashtagsNotice
	}
	return strings.Join(tags, " ")
}

func (g *HashtagGenerator) logger() *slog.Logger {
	if g.Logger != nil {
		return g.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
