package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/pitch-coach/internal/observability"
	"github.com/jonathan/pitch-coach/internal/pacing"
)

var rehearseCmd = &cobra.Command{
	Use:   "rehearse",
	Short: "Run live pace coaching over a transcript stream from stdin",
	Long:  "Rehearse reads transcript fragments line by line from stdin (as produced by a speech-to-text collaborator), tracks the speaking pace, and prints short coaching tips. The session ends at EOF or interrupt.",
	RunE:  runRehearse,
}

var (
	rehearseConfigFile string
	rehearseAPIKey     string
)

func init() {
	rehearseCmd.Flags().StringVarP(&rehearseConfigFile, "config", "c", "", "Path to JSON config file")
	rehearseCmd.Flags().StringVar(&rehearseAPIKey, "api-key", "", "Gemini API key (overrides GEMINI_API_KEY env var)")

	rootCmd.AddCommand(rehearseCmd)
}

func runRehearse(_ *cobra.Command, _ []string) error {
	cfg, err := loadAppConfig(rehearseConfigFile, rehearseAPIKey)
	if err != nil {
		return err
	}

	ctx := context.Background()
	client, err := newLLMClient(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer func() { _ = client.Close() }()

	printer := observability.NewPrinter(os.Stdout)
	coach := pacing.NewCoach(client, cfg.TipTimeout())
	session := pacing.NewSession(coach, printer.PrintTip)
	session.Start(time.Now())
	defer session.Stop()

	fmt.Fprintln(os.Stderr, "Rehearsal started. Speak (pipe transcript lines to stdin); Ctrl-D to stop.")

	var transcript strings.Builder
	wordCount := 0

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		transcript.WriteString(line)
		transcript.WriteString(" ")
		wordCount += len(strings.Fields(line))
		session.Observe(wordCount, transcript.String(), time.Now())
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read transcript stream: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Rehearsal finished: %d words, final pace %d wpm.\n", wordCount, session.WPM())
	return nil
}
