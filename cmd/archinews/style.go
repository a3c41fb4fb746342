package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/archinews-creator/internal/store"
	"github.com/jonathan/archinews-creator/internal/types"
)

var styleCmd = &cobra.Command{
	Use:   "style",
	Short: "Manage named text style profiles",
}

var styleSaveCmd = &cobra.Command{
	Use:   "save NAME",
	Short: "Save a style profile under NAME",
	Args:  cobra.ExactArgs(1),
	RunE:  runStyleSave,
}

var styleListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print all style profiles as JSON",
	Args:  cobra.NoArgs,
	RunE:  runStyleList,
}

var (
	styleVoice     string
	styleFormality string
	styleStructure string
)

func init() {
	draft := types.NewStyleDraft()
	styleSaveCmd.Flags().StringVar(&styleVoice, "voice", draft.Voice, "Text voice")
	styleSaveCmd.Flags().StringVar(&styleFormality, "formality", string(draft.Formality), fmt.Sprintf("Formality, one of %v", types.Formalities))
	styleSaveCmd.Flags().StringVar(&styleStructure, "structure", string(draft.Structure), fmt.Sprintf("Structure, one of %v", types.Structures))

	styleCmd.AddCommand(styleSaveCmd, styleListCmd)
	rootCmd.AddCommand(styleCmd)
}

func openStyles() (*store.StyleStore, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return store.NewStyleStore(cfg.DataDir, newLogger(cfg)), nil
}

func runStyleSave(_ *cobra.Command, args []string) error {
	styles, err := openStyles()
	if err != nil {
		return err
	}
	style := types.StyleProfile{
		Voice:     styleVoice,
		Formality: types.Formality(styleFormality),
		Structure: types.Structure(styleStructure),
	}
	if err := styles.Save(args[0], style); err != nil {
		return fmt.Errorf("failed to save style: %w", err)
	}
	_, _ = fmt.Fprintf(os.Stdout, "Style %q saved\n", args[0])
	return nil
}

func runStyleList(_ *cobra.Command, _ []string) error {
	styles, err := openStyles()
	if err != nil {
		return err
	}
	return printJSON(styles.All())
}
