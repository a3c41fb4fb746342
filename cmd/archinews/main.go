// Package main provides the archinews CLI and HTTP API server.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/jonathan/archinews-creator/internal/config"
	"github.com/jonathan/archinews-creator/internal/llm"
	"github.com/jonathan/archinews-creator/internal/observability"
)

var (
	configFile string
	dataDir    string
	verbose    bool
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:           "archinews",
	Short:         "ArchiNews Creator",
	Long:          "ArchiNews Creator turns architecture project cards into website copy in three lengths, Instagram captions and hashtags, and framed hero and square images.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Path to a JSON or YAML config file")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "Directory holding projects.json, styles.json and website_styles.json")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print generated artifacts in boxes")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn or error")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig reads the config file and environment, then applies global flags.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if dataDir != "" {
		cfg.DataDir = dataDir
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if verbose {
		cfg.Verbose = true
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) *slog.Logger {
	return observability.NewLogger(os.Stderr, cfg.LogLevel)
}

// newClient creates the model client. apiKeyFlag overrides the configured key.
func newClient(ctx context.Context, cfg *config.Config, apiKeyFlag string) (llm.Client, error) {
	apiKey := apiKeyFlag
	if apiKey == "" {
		apiKey = cfg.APIKey
	}
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required (set %s environment variable or use --api-key flag)", config.EnvAPIKey)
	}

	llmConfig := llm.DefaultConfig().
		WithModel(llm.TierText, cfg.TextModel).
		WithModel(llm.TierVision, cfg.VisionModel)
	return llm.NewClient(ctx, llmConfig, apiKey)
}

// printer returns a Printer on stdout in verbose mode, nil otherwise.
func printer(cfg *config.Config) *observability.Printer {
	if !cfg.Verbose {
		return nil
	}
	return observability.NewPrinter(os.Stdout)
}

// mustMarkRequired marks flags required, panicking on programmer error.
func mustMarkRequired(cmd *cobra.Command, names ...string) {
	for _, name := range names {
		if err := cmd.MarkFlagRequired(name); err != nil {
			panic(fmt.Sprintf("failed to mark %s flag as required: %v", name, err))
		}
	}
}

// readJSONFile unmarshals the JSON file at path into v.
func readJSONFile(path, what string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s file: %w", what, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to unmarshal %s JSON: %w", what, err)
	}
	return nil
}

// writeOutput writes data to path, creating the parent directory first.
func writeOutput(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

// printJSON writes v to stdout as indented JSON.
func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	_, _ = fmt.Fprintln(os.Stdout, string(out))
	return nil
}
