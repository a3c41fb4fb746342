package content

import (
	"context"
	"io"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/archinews-creator/internal/llm"
	"github.com/jonathan/archinews-creator/internal/types"
)

// imageTokenAllowance is added to every budget when an image accompanies the prompt.
const imageTokenAllowance = 300

// TokenBudget returns the output-token budget for one length label.
func TokenBudget(label types.LengthLabel, withImage bool) int {
	var budget int
	switch label {
	case types.LengthShort:
		budget = 200
	case types.LengthMedium:
		budget = 350
	default:
		budget = 500
	}
	if withImage {
		budget += imageTokenAllowance
	}
	return budget
}

// Generator produces website copy for all three lengths.
type Generator struct {
	Client llm.Client
	Logger *slog.Logger
	// Parallel issues the three calls concurrently. Failure semantics are unchanged.
	Parallel bool
}

// NewGenerator creates a sequential generator.
func NewGenerator(client llm.Client, logger *slog.Logger) *Generator {
	return &Generator{Client: client, Logger: logger}
}

// Generate returns headline and article variants for short, medium and long.
// Any failed call, or any variant left with a sentinel, fails the whole batch
// with a *GenerationError and no content is returned.
func (g *Generator) Generate(ctx context.Context, project types.Project, usps []string, style types.StyleProfile, image *llm.Image) (types.GeneratedContent, error) {
	return g.GenerateWithProgress(ctx, project, usps, style, image, nil)
}

// ProgressFunc is told about each variant as soon as it is ready. In parallel
// mode it is called from several goroutines.
type ProgressFunc func(label types.LengthLabel, v types.Variant)

// GenerateWithProgress is Generate with a callback per finished variant. The
// callback may fire for some labels of a batch that fails overall.
func (g *Generator) GenerateWithProgress(ctx context.Context, project types.Project, usps []string, style types.StyleProfile, image *llm.Image, onVariant ProgressFunc) (types.GeneratedContent, error) {
	if g.Client == nil {
		return nil, &GenerationError{Message: "no generation client configured"}
	}

	start := time.Now()
	logger := g.logger().With("project", project.Name, "with_image", image != nil, "parallel", g.Parallel)
	logger.Info("generating website copy")

	variants := make([]types.Variant, len(types.LengthLabels))
	if g.Parallel {
		group, gctx := errgroup.WithContext(ctx)
		for i, label := range types.LengthLabels {
			group.Go(func() error {
				v, err := g.generateOne(gctx, logger, project, usps, style, label, image)
				if err != nil {
					return err
				}
				variants[i] = v
				if onVariant != nil {
					onVariant(label, v)
				}
				return nil
			})
		}
		if err := group.Wait(); err != nil {
			logger.Error("website copy generation failed", "error", err)
			return nil, err
		}
	} else {
		for i, label := range types.LengthLabels {
			v, err := g.generateOne(ctx, logger, project, usps, style, label, image)
			if err != nil {
				logger.Error("website copy generation failed", "error", err)
				return nil, err
			}
			variants[i] = v
			if onVariant != nil {
				onVariant(label, v)
			}
		}
	}

	result := make(types.GeneratedContent, len(variants))
	for i, label := range types.LengthLabels {
		result[label] = variants[i]
	}
	logger.Info("website copy generated", "duration", time.Since(start).Round(time.Millisecond))
	return result, nil
}

func (g *Generator) generateOne(ctx context.Context, logger *slog.Logger, project types.Project, usps []string, style types.StyleProfile, label types.LengthLabel, image *llm.Image) (types.Variant, error) {
	withImage := image != nil
	tier := llm.TierText
	if withImage {
		tier = llm.TierVision
	}

	req := llm.Request{
		Prompt:          BuildPrompt(project, usps, style, label, withImage),
		Image:           image,
		Tier:            tier,
		MaxOutputTokens: TokenBudget(label, withImage),
		Temperature:     llm.DefaultTemperature,
	}
	logger.Debug("requesting variant", "label", label, "tier", tier, "max_tokens", req.MaxOutputTokens)

	raw, err := g.Client.Generate(ctx, req)
	if err != nil {
		return types.Variant{}, &GenerationError{Label: label, Message: "model call failed", Cause: err}
	}

	variant := ParseResponse(raw)
	if !variant.HasContent() {
		return types.Variant{}, &GenerationError{Label: label, Message: "model returned no usable headline and article"}
	}
	return variant, nil
}

func (g *Generator) logger() *slog.Logger {
	if g.Logger != nil {
		return g.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
