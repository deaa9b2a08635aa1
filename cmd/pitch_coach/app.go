package main

import (
	"context"
	"fmt"
	"os"

	appconfig "github.com/jonathan/pitch-coach/internal/config"
	"github.com/jonathan/pitch-coach/internal/llm"
)

// loadAppConfig merges an optional config file with the environment.
func loadAppConfig(configPath, apiKeyFlag string) (*appconfig.Config, error) {
	cfg := &appconfig.Config{}
	if configPath != "" {
		loaded, err := appconfig.LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if apiKeyFlag != "" {
		cfg.APIKey = apiKeyFlag
	}
	cfg.FromEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API key is required (set GEMINI_API_KEY environment variable or use --api-key flag)")
	}

	return cfg, nil
}

// newLLMClient builds the inference client from application config.
func newLLMClient(ctx context.Context, cfg *appconfig.Config) (llm.Client, error) {
	llmConfig := llm.DefaultConfig()
	if cfg.FastModel != "" {
		llmConfig = llmConfig.WithModel(llm.TierFast, cfg.FastModel)
	}
	if cfg.ReasoningModel != "" {
		llmConfig = llmConfig.WithModel(llm.TierReasoning, cfg.ReasoningModel)
	}
	return llm.NewClient(ctx, llmConfig, cfg.APIKey)
}

// writeJSONOutput writes indented JSON to a file, or stdout when path is empty.
func writeJSONOutput(path string, jsonBytes []byte) error {
	if path == "" {
		_, err := os.Stdout.Write(append(jsonBytes, '\n'))
		return err
	}
	if err := os.WriteFile(path, jsonBytes, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}
