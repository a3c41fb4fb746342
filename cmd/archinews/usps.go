package main

import (
	"fmt"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/jonathan/archinews-creator/internal/types"
	"github.com/jonathan/archinews-creator/internal/usps"
)

var uspsCmd = &cobra.Command{
	Use:   "usps",
	Short: "List preset USPs and manage custom USPs",
}

var uspsPresetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "Print the preset USPs for a project type",
	Args:  cobra.NoArgs,
	RunE:  runUSPsPresets,
}

var uspsSavedCmd = &cobra.Command{
	Use:   "saved",
	Short: "Print custom USPs saved across all projects",
	Args:  cobra.NoArgs,
	RunE:  runUSPsSaved,
}

var uspsSaveCmd = &cobra.Command{
	Use:   "save",
	Short: "Save comma-separated custom USPs to a project",
	Args:  cobra.NoArgs,
	RunE:  runUSPsSave,
}

var (
	uspsType    string
	uspsProject string
	uspsCustom  string
)

func init() {
	uspsPresetsCmd.Flags().StringVarP(&uspsType, "type", "t", string(types.ProjectTypeSchool), fmt.Sprintf("Project type, one of %v", types.ProjectTypes))

	uspsSaveCmd.Flags().StringVarP(&uspsProject, "project", "p", "", "Project name (required)")
	uspsSaveCmd.Flags().StringVarP(&uspsCustom, "custom", "c", "", "Comma-separated custom USPs (required)")
	mustMarkRequired(uspsSaveCmd, "project", "custom")

	uspsCmd.AddCommand(uspsPresetsCmd, uspsSavedCmd, uspsSaveCmd)
	rootCmd.AddCommand(uspsCmd)
}

func runUSPsPresets(_ *cobra.Command, _ []string) error {
	projectType := types.ProjectType(uspsType)
	if !slices.Contains(types.ProjectTypes, projectType) {
		return fmt.Errorf("unknown project type %q (expected one of %v)", uspsType, types.ProjectTypes)
	}
	for _, usp := range usps.PresetsFor(projectType) {
		_, _ = fmt.Fprintln(os.Stdout, usp)
	}
	return nil
}

func runUSPsSaved(_ *cobra.Command, _ []string) error {
	projects, err := openProjects()
	if err != nil {
		return err
	}
	for _, usp := range projects.SavedCustomUSPs() {
		_, _ = fmt.Fprintln(os.Stdout, usp)
	}
	return nil
}

func runUSPsSave(_ *cobra.Command, _ []string) error {
	list := usps.ParseCustom(uspsCustom)
	if len(list) == 0 {
		return fmt.Errorf("no custom USPs given")
	}
	projects, err := openProjects()
	if err != nil {
		return err
	}
	if err := projects.SaveUSPs(uspsProject, list); err != nil {
		return fmt.Errorf("failed to save USPs: %w", err)
	}
	_, _ = fmt.Fprintf(os.Stdout, "Saved %d custom USPs to %q\n", len(list), uspsProject)
	return nil
}
