package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/archinews-creator/internal/rendering"
	"github.com/jonathan/archinews-creator/internal/store"
	"github.com/jonathan/archinews-creator/internal/types"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render one length of generated copy as an HTML fragment",
	Args:  cobra.NoArgs,
	RunE:  runRender,
}

var (
	renderContentFile string
	renderProject     string
	renderLength      string
	renderTypography  string
	renderOutputFile  string
)

func init() {
	renderCmd.Flags().StringVarP(&renderContentFile, "content", "c", "", "Path to GeneratedContent JSON file (required)")
	renderCmd.Flags().StringVarP(&renderProject, "project", "p", "", "Name of the stored project card (required)")
	renderCmd.Flags().StringVarP(&renderLength, "length", "l", string(types.LengthLong), "Length to render: short, medium or long")
	renderCmd.Flags().StringVarP(&renderTypography, "typography", "t", "", "Name of a stored typography style (default style when empty)")
	renderCmd.Flags().StringVarP(&renderOutputFile, "out", "o", "", "Output HTML file (default website_content_<length>.html)")
	mustMarkRequired(renderCmd, "content", "project")

	rootCmd.AddCommand(renderCmd)
}

func runRender(_ *cobra.Command, _ []string) error {
	label, err := types.ParseLengthLabel(renderLength)
	if err != nil {
		return err
	}

	var generated types.GeneratedContent
	if err := readJSONFile(renderContentFile, "content", &generated); err != nil {
		return err
	}
	variant, ok := generated[label]
	if !ok || !variant.HasContent() {
		return fmt.Errorf("content file has no %s version", label)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(cfg)

	project, err := store.NewProjectStore(cfg.DataDir, logger).Get(renderProject)
	if err != nil {
		return fmt.Errorf("failed to load project: %w", err)
	}
	style := types.DefaultTypography()
	if renderTypography != "" {
		if style, err = store.NewTypographyStore(cfg.DataDir, logger).Get(renderTypography); err != nil {
			return fmt.Errorf("failed to load typography style: %w", err)
		}
	}

	html, err := rendering.RenderWebsiteHTML(variant, project, style)
	if err != nil {
		return err
	}

	out := renderOutputFile
	if out == "" {
		out = fmt.Sprintf("website_content_%s.html", label)
	}
	if err := writeOutput(out, []byte(html)); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(os.Stdout, "Output: %s\n", out)
	return nil
}
