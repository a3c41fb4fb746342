package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/archinews-creator/internal/content"
	"github.com/jonathan/archinews-creator/internal/llm"
	"github.com/jonathan/archinews-creator/internal/schemas"
	"github.com/jonathan/archinews-creator/internal/store"
	"github.com/jonathan/archinews-creator/internal/types"
	"github.com/jonathan/archinews-creator/internal/usps"
	embedded "github.com/jonathan/archinews-creator/schemas"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate website copy in short, medium and long versions",
	Long:  "Generates a headline and article for each length from a stored project card, the chosen USPs and a style profile. With --image the vision model describes the photo as part of the article.",
	Args:  cobra.NoArgs,
	RunE:  runGenerate,
}

var (
	generateProject    string
	generatePresets    []string
	generateCustomUSPs string
	generateSavedUSPs  []string
	generateStyle      string
	generateImage      string
	generateOutputFile string
	generateParallel   bool
	generateAPIKey     string
)

func init() {
	generateCmd.Flags().StringVarP(&generateProject, "project", "p", "", "Name of a stored project card (required)")
	generateCmd.Flags().StringSliceVar(&generatePresets, "preset", nil, "Preset USP to include (repeatable)")
	generateCmd.Flags().StringVar(&generateCustomUSPs, "custom-usps", "", "Comma-separated custom USPs")
	generateCmd.Flags().StringSliceVar(&generateSavedUSPs, "saved-usp", nil, "Previously saved custom USP to include (repeatable)")
	generateCmd.Flags().StringVarP(&generateStyle, "style", "s", "", "Name of a stored style profile (default style when empty)")
	generateCmd.Flags().StringVarP(&generateImage, "image", "i", "", "Path to a PNG or JPEG project photo")
	generateCmd.Flags().StringVarP(&generateOutputFile, "out", "o", "", "Path to output GeneratedContent JSON file (required)")
	generateCmd.Flags().BoolVar(&generateParallel, "parallel", false, "Generate the three lengths concurrently")
	generateCmd.Flags().StringVar(&generateAPIKey, "api-key", "", "Gemini API key (overrides GEMINI_API_KEY env var)")
	mustMarkRequired(generateCmd, "project", "out")

	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(cfg)

	project, err := store.NewProjectStore(cfg.DataDir, logger).Get(generateProject)
	if err != nil {
		return fmt.Errorf("failed to load project: %w", err)
	}

	style := types.NewStyleDraft()
	if generateStyle != "" {
		if style, err = store.NewStyleStore(cfg.DataDir, logger).Get(generateStyle); err != nil {
			return fmt.Errorf("failed to load style: %w", err)
		}
	}

	var image *llm.Image
	if generateImage != "" {
		data, err := os.ReadFile(generateImage)
		if err != nil {
			return fmt.Errorf("failed to read image file: %w", err)
		}
		if image, err = llm.NewImage(data); err != nil {
			return err
		}
	}

	client, err := newClient(cmd.Context(), cfg, generateAPIKey)
	if err != nil {
		return err
	}
	defer client.Close() //nolint:errcheck

	generator := content.NewGenerator(client, logger)
	generator.Parallel = generateParallel || cfg.Parallel

	final := usps.Final(generatePresets, generateCustomUSPs, generateSavedUSPs)
	generated, err := generator.Generate(cmd.Context(), project, final, style, image)
	if err != nil {
		return fmt.Errorf("failed to generate website copy: %w", err)
	}

	jsonBytes, err := json.MarshalIndent(generated, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	if err := validateOutput(embedded.GeneratedContent, jsonBytes); err != nil {
		return err
	}
	if err := writeOutput(generateOutputFile, jsonBytes); err != nil {
		return err
	}

	if p := printer(cfg); p != nil {
		p.PrintGeneratedContent(generated)
	}
	_, _ = fmt.Fprintf(os.Stdout, "Generated %d versions for %q\n", len(generated), project.Name)
	_, _ = fmt.Fprintf(os.Stdout, "Output: %s\n", generateOutputFile)
	return nil
}

// validateOutput checks a document against an embedded schema. Schema load
// problems are reported as warnings.
func validateOutput(schemaName string, document []byte) error {
	err := schemas.ValidateDocument(schemaName, document)
	if err == nil {
		return nil
	}
	var validationErr *schemas.ValidationError
	if errors.As(err, &validationErr) {
		return fmt.Errorf("generated JSON does not validate against schema: %w", err)
	}
	_, _ = fmt.Fprintf(os.Stderr, "Warning: Could not validate output against schema: %v\n", err)
	return nil
}
