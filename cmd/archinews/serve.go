package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/archinews-creator/internal/server"
)

var (
	servePort        int
	serveAPIKey      string
	serveSessionIdle time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes the project library and interactive sessions for generating website copy, captions, hashtags and framed images.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides config)")
	serveCmd.Flags().StringVar(&serveAPIKey, "api-key", "", "Gemini API key (overrides GEMINI_API_KEY env var)")
	serveCmd.Flags().DurationVar(&serveSessionIdle, "session-idle", 2*time.Hour, "Drop sessions idle for this long (0 keeps them)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if servePort != 0 {
		cfg.Port = servePort
	}

	client, err := newClient(cmd.Context(), cfg, serveAPIKey)
	if err != nil {
		return err
	}

	srv, err := server.New(server.Config{
		Port:          cfg.Port,
		DataDir:       cfg.DataDir,
		Client:        client,
		Parallel:      cfg.Parallel,
		FrameCacheTTL: cfg.FrameCacheTTL(),
		SessionIdle:   serveSessionIdle,
		Logger:        newLogger(cfg),
	})
	if err != nil {
		client.Close() //nolint:errcheck
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start(cmd.Context())
}
