package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/archinews-creator/internal/store"
	"github.com/jonathan/archinews-creator/internal/types"
)

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Manage stored project cards",
}

var projectSaveCmd = &cobra.Command{
	Use:   "save",
	Short: "Save a project card from a JSON file",
	Long:  "Validates a project card and stores it under its name, replacing any card with the same name. Custom USPs already saved for the project are kept.",
	RunE:  runProjectSave,
}

var projectListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored project names",
	Args:  cobra.NoArgs,
	RunE:  runProjectList,
}

var projectShowCmd = &cobra.Command{
	Use:   "show NAME",
	Short: "Print a stored project card as JSON",
	Args:  cobra.ExactArgs(1),
	RunE:  runProjectShow,
}

var projectFile string

func init() {
	projectSaveCmd.Flags().StringVarP(&projectFile, "file", "f", "", "Path to project card JSON file (required)")
	mustMarkRequired(projectSaveCmd, "file")

	projectCmd.AddCommand(projectSaveCmd, projectListCmd, projectShowCmd)
	rootCmd.AddCommand(projectCmd)
}

func openProjects() (*store.ProjectStore, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return store.NewProjectStore(cfg.DataDir, newLogger(cfg)), nil
}

func runProjectSave(_ *cobra.Command, _ []string) error {
	var p types.Project
	if err := readJSONFile(projectFile, "project", &p); err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	projects := store.NewProjectStore(cfg.DataDir, newLogger(cfg))
	saved, err := projects.Save(p)
	if err != nil {
		return fmt.Errorf("failed to save project: %w", err)
	}

	if pr := printer(cfg); pr != nil {
		pr.PrintProject(&saved)
	}
	_, _ = fmt.Fprintf(os.Stdout, "Project %q saved to %s\n", saved.Name, projects.Path())
	return nil
}

func runProjectList(_ *cobra.Command, _ []string) error {
	projects, err := openProjects()
	if err != nil {
		return err
	}
	for _, name := range projects.Names() {
		_, _ = fmt.Fprintln(os.Stdout, name)
	}
	return nil
}

func runProjectShow(_ *cobra.Command, args []string) error {
	projects, err := openProjects()
	if err != nil {
		return err
	}
	p, err := projects.Get(args[0])
	if err != nil {
		return err
	}
	return printJSON(p)
}
