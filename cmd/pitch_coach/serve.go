package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/pitch-coach/internal/critique"
	"github.com/jonathan/pitch-coach/internal/intel"
	"github.com/jonathan/pitch-coach/internal/pacing"
	"github.com/jonathan/pitch-coach/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the pitch-coach HTTP API",
	Long:  "Serve exposes event analysis, demo critique, and live rehearsal coaching (SSE tip stream) over HTTP. All state is session-scoped and held in memory.",
	RunE:  runServe,
}

var (
	servePort       int
	serveConfigFile string
	serveAPIKey     string
)

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "Port to listen on (default 8080 or PORT env)")
	serveCmd.Flags().StringVarP(&serveConfigFile, "config", "c", "", "Path to JSON config file")
	serveCmd.Flags().StringVar(&serveAPIKey, "api-key", "", "Gemini API key (overrides GEMINI_API_KEY env var)")

	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := loadAppConfig(serveConfigFile, serveAPIKey)
	if err != nil {
		return err
	}
	if servePort > 0 {
		cfg.Port = servePort
	}
	if cfg.Port == 0 {
		cfg.Port = 8080
	}

	ctx := context.Background()
	client, err := newLLMClient(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer func() { _ = client.Close() }()

	srv, err := server.New(server.Config{
		Port: cfg.Port,
		Intel: intel.NewResolver(client, intel.Options{
			Timeout:    cfg.ResolveTimeout(),
			FetchPage:  cfg.FetchPage,
			UseBrowser: cfg.UseBrowser,
		}),
		Critic: critique.NewResolver(client, cfg.CritiqueTimeout()),
		Coach:  pacing.NewCoach(client, cfg.TipTimeout()),
	})
	if err != nil {
		return err
	}

	return srv.Start()
}
