package main

import (
	"fmt"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/jonathan/archinews-creator/internal/instagram"
	"github.com/jonathan/archinews-creator/internal/types"
)

var captionCmd = &cobra.Command{
	Use:   "caption",
	Short: "Write an Instagram caption from the long website copy",
	Args:  cobra.NoArgs,
	RunE:  runCaption,
}

var (
	captionContentFile string
	captionTone        string
	captionLength      int
	captionEndings     []string
	captionOutputFile  string
	captionAPIKey      string
)

func init() {
	captionCmd.Flags().StringVarP(&captionContentFile, "content", "c", "", "Path to GeneratedContent JSON file (required)")
	captionCmd.Flags().StringVar(&captionTone, "tone", instagram.CaptionTones[0], fmt.Sprintf("Caption tone, one of %v", instagram.CaptionTones))
	captionCmd.Flags().IntVar(&captionLength, "length", instagram.DefaultCaptionLength, fmt.Sprintf("Target length in characters, one of %v", instagram.CaptionLengths))
	captionCmd.Flags().StringArrayVar(&captionEndings, "ending", instagram.DefaultEndings, "Line appended after the caption (repeatable)")
	captionCmd.Flags().StringVarP(&captionOutputFile, "out", "o", "caption.txt", "Output text file")
	captionCmd.Flags().StringVar(&captionAPIKey, "api-key", "", "Gemini API key (overrides GEMINI_API_KEY env var)")
	mustMarkRequired(captionCmd, "content")

	rootCmd.AddCommand(captionCmd)
}

func runCaption(cmd *cobra.Command, _ []string) error {
	if !slices.Contains(instagram.CaptionTones, captionTone) {
		return fmt.Errorf("unknown tone %q (expected one of %v)", captionTone, instagram.CaptionTones)
	}
	if !slices.Contains(instagram.CaptionLengths, captionLength) {
		return fmt.Errorf("unsupported length %d (expected one of %v)", captionLength, instagram.CaptionLengths)
	}

	var generated types.GeneratedContent
	if err := readJSONFile(captionContentFile, "content", &generated); err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	client, err := newClient(cmd.Context(), cfg, captionAPIKey)
	if err != nil {
		return err
	}
	defer client.Close() //nolint:errcheck

	captions := instagram.NewCaptionGenerator(client, newLogger(cfg))
	caption := captions.Generate(cmd.Context(), generated.LongFormText(), captionTone, captionLength, captionEndings)
	if instagram.IsFailedCaption(caption) {
		return fmt.Errorf("caption generation failed: %s", caption)
	}

	if err := writeOutput(captionOutputFile, []byte(caption)); err != nil {
		return err
	}
	if p := printer(cfg); p != nil {
		p.PrintCaption(caption, captionLength)
	}
	_, _ = fmt.Fprintf(os.Stdout, "Output: %s\n", captionOutputFile)
	return nil
}
