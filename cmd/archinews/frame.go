package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jonathan/archinews-creator/internal/framing"
)

var frameCmd = &cobra.Command{
	Use:   "frame",
	Short: "Frame an image as a 1600x900 hero JPEG and a 1080x1080 square PNG",
	Long:  "Scales the image to cover each target frame, applies zoom and pan offsets in [-1, 1], and writes web_hero_1600x900.jpg and/or instagram_1080.png.",
	Args:  cobra.NoArgs,
	RunE:  runFrame,
}

var (
	frameImage   string
	frameTarget  string
	frameZoom    float64
	frameOffsetX float64
	frameOffsetY float64
	frameOutDir  string
)

func init() {
	frameCmd.Flags().StringVarP(&frameImage, "image", "i", "", "Path to PNG or JPEG image (required)")
	frameCmd.Flags().StringVarP(&frameTarget, "target", "t", "all", "Frame target: hero, square or all")
	frameCmd.Flags().Float64Var(&frameZoom, "zoom", 1, "Zoom factor on top of cover scaling")
	frameCmd.Flags().Float64Var(&frameOffsetX, "offset-x", 0, "Horizontal pan in [-1, 1]")
	frameCmd.Flags().Float64Var(&frameOffsetY, "offset-y", 0, "Vertical pan in [-1, 1]")
	frameCmd.Flags().StringVarP(&frameOutDir, "out", "o", ".", "Output directory")
	mustMarkRequired(frameCmd, "image")

	rootCmd.AddCommand(frameCmd)
}

// frameTargets resolves the --target flag.
func frameTargets(raw string) ([]framing.Target, error) {
	if raw == "all" {
		return framing.Targets, nil
	}
	t, err := framing.ParseTarget(raw)
	if err != nil {
		return nil, err
	}
	return []framing.Target{t}, nil
}

func runFrame(_ *cobra.Command, _ []string) error {
	targets, err := frameTargets(frameTarget)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(frameImage)
	if err != nil {
		return fmt.Errorf("failed to read image file: %w", err)
	}
	src, err := framing.Decode(data)
	if err != nil {
		return err
	}

	for _, target := range targets {
		framed := framing.Frame(src, target.Params(frameZoom, frameOffsetX, frameOffsetY))
		encoded, err := framing.Encode(framed, target)
		if err != nil {
			return err
		}
		path := filepath.Join(frameOutDir, target.FileName())
		if err := writeOutput(path, encoded); err != nil {
			return err
		}
		w, h := target.Size()
		_, _ = fmt.Fprintf(os.Stdout, "%s: %dx%d -> %s\n", target, w, h, path)
	}
	return nil
}
