package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/archinews-creator/internal/store"
	"github.com/jonathan/archinews-creator/internal/types"
)

var typographyCmd = &cobra.Command{
	Use:   "typography",
	Short: "Manage named typography styles for rendered website copy",
}

var typographySaveCmd = &cobra.Command{
	Use:   "save NAME",
	Short: "Save a typography style under NAME",
	Args:  cobra.ExactArgs(1),
	RunE:  runTypographySave,
}

var typographyListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print all typography styles as JSON",
	Args:  cobra.NoArgs,
	RunE:  runTypographyList,
}

var typographyStyle types.TypographyStyle

func init() {
	def := types.DefaultTypography()
	f := typographySaveCmd.Flags()
	f.StringVar(&typographyStyle.HeadlineFont, "headline-font", def.HeadlineFont, fmt.Sprintf("Headline font, one of %v", types.FontOptions))
	f.IntVar(&typographyStyle.HeadlineSize, "headline-size", def.HeadlineSize, "Headline size in px (18-48)")
	f.StringVar(&typographyStyle.HeadlineColor, "headline-color", def.HeadlineColor, "Headline color as #rrggbb")
	f.StringVar(&typographyStyle.BodyFont, "body-font", def.BodyFont, "Body font")
	f.IntVar(&typographyStyle.BodySize, "body-size", def.BodySize, "Body size in px (12-32)")
	f.StringVar(&typographyStyle.BodyColor, "body-color", def.BodyColor, "Body color as #rrggbb")

	typographyCmd.AddCommand(typographySaveCmd, typographyListCmd)
	rootCmd.AddCommand(typographyCmd)
}

func openTypography() (*store.TypographyStore, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return store.NewTypographyStore(cfg.DataDir, newLogger(cfg)), nil
}

func runTypographySave(_ *cobra.Command, args []string) error {
	styles, err := openTypography()
	if err != nil {
		return err
	}
	if err := styles.Save(args[0], typographyStyle); err != nil {
		return fmt.Errorf("failed to save typography style: %w", err)
	}
	_, _ = fmt.Fprintf(os.Stdout, "Typography style %q saved\n", args[0])
	return nil
}

func runTypographyList(_ *cobra.Command, _ []string) error {
	styles, err := openTypography()
	if err != nil {
		return err
	}
	return printJSON(styles.All())
}
