// Package main provides the entry point for the pitch-coach CLI and API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "pitch_coach",
	Short: "Hackathon demo coaching toolkit",
	Long:  "Pitch Coach scouts judge intelligence for a hackathon, generates a tailored presentation strategy, paces live rehearsals, and critiques recorded demos against the judging panel.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
