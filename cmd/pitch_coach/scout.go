package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/pitch-coach/internal/intel"
	"github.com/jonathan/pitch-coach/internal/observability"
)

var scoutCmd = &cobra.Command{
	Use:   "scout",
	Short: "Resolve a hackathon URL into judge and strategy intelligence",
	Long:  "Scout searches for the hackathon event at the given URL, extracts or synthesizes a judging panel, and generates a tailored 3-minute presentation strategy. The output always contains a complete judge panel and script.",
	RunE:  runScout,
}

var (
	scoutURL        string
	scoutOutputFile string
	scoutConfigFile string
	scoutAPIKey     string
	scoutFetchPage  bool
	scoutUseBrowser bool
	scoutVerbose    bool
)

func init() {
	scoutCmd.Flags().StringVarP(&scoutURL, "url", "u", "", "Hackathon event URL (required)")
	scoutCmd.Flags().StringVarP(&scoutOutputFile, "out", "o", "", "Path to output JSON file (default: stdout)")
	scoutCmd.Flags().StringVarP(&scoutConfigFile, "config", "c", "", "Path to JSON config file")
	scoutCmd.Flags().StringVar(&scoutAPIKey, "api-key", "", "Gemini API key (overrides GEMINI_API_KEY env var)")
	scoutCmd.Flags().BoolVar(&scoutFetchPage, "fetch-page", false, "Fetch the event page to enrich the prompt")
	scoutCmd.Flags().BoolVar(&scoutUseBrowser, "browser", false, "Use headless browser for JavaScript-rendered event sites")
	scoutCmd.Flags().BoolVarP(&scoutVerbose, "verbose", "v", false, "Print a summary of the resolved intelligence")
	_ = scoutCmd.MarkFlagRequired("url")

	rootCmd.AddCommand(scoutCmd)
}

func runScout(_ *cobra.Command, _ []string) error {
	cfg, err := loadAppConfig(scoutConfigFile, scoutAPIKey)
	if err != nil {
		return err
	}

	ctx := context.Background()
	client, err := newLLMClient(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer func() { _ = client.Close() }()

	resolver := intel.NewResolver(client, intel.Options{
		Timeout:    cfg.ResolveTimeout(),
		FetchPage:  scoutFetchPage || cfg.FetchPage,
		UseBrowser: scoutUseBrowser || cfg.UseBrowser,
	})

	data, err := resolver.Resolve(ctx, scoutURL)
	if err != nil {
		// The caller's retry affordance: resubmit the same URL
		return fmt.Errorf("event analysis failed (retry with the same URL): %w", err)
	}

	if scoutVerbose || cfg.Verbose {
		observability.NewPrinter(os.Stderr).PrintHackathonData(data)
	}

	jsonBytes, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return writeJSONOutput(scoutOutputFile, jsonBytes)
}
