package main

import (
	"context"
	"encoding/json"
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jonathan/pitch-coach/internal/critique"
	"github.com/jonathan/pitch-coach/internal/llm"
	"github.com/jonathan/pitch-coach/internal/observability"
	"github.com/jonathan/pitch-coach/internal/types"
)

var critiqueCmd = &cobra.Command{
	Use:   "critique",
	Short: "Analyze a recorded demo video against the event's judge panel",
	Long:  "Critique sends the recorded demo and the scouted hackathon intelligence to the inference service and produces a scored critique with per-judge feedback and anticipated Q&A. On failure the recording is kept; rerun with the same files.",
	RunE:  runCritique,
}

var (
	critiqueVideoFile  string
	critiqueEventFile  string
	critiqueOutputFile string
	critiqueConfigFile string
	critiqueAPIKey     string
	critiqueVerbose    bool
)

func init() {
	critiqueCmd.Flags().StringVar(&critiqueVideoFile, "video", "", "Path to recorded demo video (required)")
	critiqueCmd.Flags().StringVar(&critiqueEventFile, "event", "", "Path to hackathon intelligence JSON from scout (required)")
	critiqueCmd.Flags().StringVarP(&critiqueOutputFile, "out", "o", "", "Path to output JSON file (default: stdout)")
	critiqueCmd.Flags().StringVarP(&critiqueConfigFile, "config", "c", "", "Path to JSON config file")
	critiqueCmd.Flags().StringVar(&critiqueAPIKey, "api-key", "", "Gemini API key (overrides GEMINI_API_KEY env var)")
	critiqueCmd.Flags().BoolVarP(&critiqueVerbose, "verbose", "v", false, "Print a summary of the critique")
	_ = critiqueCmd.MarkFlagRequired("video")
	_ = critiqueCmd.MarkFlagRequired("event")

	rootCmd.AddCommand(critiqueCmd)
}

func runCritique(_ *cobra.Command, _ []string) error {
	cfg, err := loadAppConfig(critiqueConfigFile, critiqueAPIKey)
	if err != nil {
		return err
	}

	videoBytes, err := os.ReadFile(critiqueVideoFile)
	if err != nil {
		return fmt.Errorf("failed to read video file: %w", err)
	}

	eventBytes, err := os.ReadFile(critiqueEventFile)
	if err != nil {
		return fmt.Errorf("failed to read event file: %w", err)
	}
	var data types.HackathonData
	if err := json.Unmarshal(eventBytes, &data); err != nil {
		return fmt.Errorf("failed to parse event JSON: %w", err)
	}

	ctx := context.Background()
	client, err := newLLMClient(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer func() { _ = client.Close() }()

	resolver := critique.NewResolver(client, cfg.CritiqueTimeout())
	result, err := resolver.Critique(ctx, &llm.Media{
		MIMEType: videoMIMEType(critiqueVideoFile),
		Data:     videoBytes,
	}, &data)
	if err != nil {
		return fmt.Errorf("critique failed (the recording is kept, rerun to retry): %w", err)
	}

	if critiqueVerbose || cfg.Verbose {
		observability.NewPrinter(os.Stderr).PrintAnalysis(result)
	}

	jsonBytes, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return writeJSONOutput(critiqueOutputFile, jsonBytes)
}

// videoMIMEType derives the attachment MIME type from the file extension,
// defaulting to webm (the capture collaborator's native container).
func videoMIMEType(path string) string {
	if t := mime.TypeByExtension(filepath.Ext(path)); t != "" {
		return t
	}
	return "video/webm"
}
