// Package config provides configuration loading and validation for the CLI
// and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Defaults for inference timeouts. Expiry is treated as a network error.
const (
	DefaultResolveTimeout  = 30 * time.Second
	DefaultCritiqueTimeout = 10 * time.Second
	DefaultTipTimeout      = 3 * time.Second
	DefaultPort            = 8080
)

// Config represents the application configuration that can be loaded from a
// JSON file and the process environment. All fields are optional; missing
// values use defaults or must be provided via CLI flags.
type Config struct {
	// Credential
	APIKey string `json:"api_key,omitempty"` // Gemini API key (GEMINI_API_KEY)

	// Model identifiers: configurable constants, not user-facing flags
	FastModel      string `json:"fast_model,omitempty"`      // low-latency text and video critique
	ReasoningModel string `json:"reasoning_model,omitempty"` // search-grounded structured analysis

	// Inference timeouts in seconds
	ResolveTimeoutSec  int `json:"resolve_timeout_sec,omitempty"`
	CritiqueTimeoutSec int `json:"critique_timeout_sec,omitempty"`
	TipTimeoutSec      int `json:"tip_timeout_sec,omitempty"`

	// Behavior
	FetchPage  bool `json:"fetch_page,omitempty"`  // enrich the intel prompt with fetched page text
	UseBrowser bool `json:"use_browser,omitempty"` // headless browser for SPA event sites
	Verbose    bool `json:"verbose,omitempty"`     // print detailed output
	Port       int  `json:"port,omitempty"`        // HTTP server port
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// FromEnv fills unset fields from the process environment.
func (c *Config) FromEnv() {
	if c.APIKey == "" {
		c.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	if c.FastModel == "" {
		c.FastModel = os.Getenv("PITCH_COACH_FAST_MODEL")
	}
	if c.ReasoningModel == "" {
		c.ReasoningModel = os.Getenv("PITCH_COACH_REASONING_MODEL")
	}
	if c.Port == 0 {
		if port, err := strconv.Atoi(os.Getenv("PORT")); err == nil && port > 0 {
			c.Port = port
		}
	}
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.ResolveTimeoutSec < 0 {
		return fmt.Errorf("config error: 'resolve_timeout_sec' must be non-negative")
	}
	if c.CritiqueTimeoutSec < 0 {
		return fmt.Errorf("config error: 'critique_timeout_sec' must be non-negative")
	}
	if c.TipTimeoutSec < 0 {
		return fmt.Errorf("config error: 'tip_timeout_sec' must be non-negative")
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be a valid port number")
	}
	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.FastModel == "" {
		result.FastModel = defaults.FastModel
	}
	if result.ReasoningModel == "" {
		result.ReasoningModel = defaults.ReasoningModel
	}
	if result.ResolveTimeoutSec == 0 {
		result.ResolveTimeoutSec = defaults.ResolveTimeoutSec
	}
	if result.CritiqueTimeoutSec == 0 {
		result.CritiqueTimeoutSec = defaults.CritiqueTimeoutSec
	}
	if result.TipTimeoutSec == 0 {
		result.TipTimeoutSec = defaults.TipTimeoutSec
	}
	if result.Port == 0 {
		result.Port = defaults.Port
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// ResolveTimeout returns the configured resolution timeout.
func (c *Config) ResolveTimeout() time.Duration {
	if c.ResolveTimeoutSec > 0 {
		return time.Duration(c.ResolveTimeoutSec) * time.Second
	}
	return DefaultResolveTimeout
}

// CritiqueTimeout returns the configured critique timeout.
func (c *Config) CritiqueTimeout() time.Duration {
	if c.CritiqueTimeoutSec > 0 {
		return time.Duration(c.CritiqueTimeoutSec) * time.Second
	}
	return DefaultCritiqueTimeout
}

// TipTimeout returns the configured coaching-tip timeout.
func (c *Config) TipTimeout() time.Duration {
	if c.TipTimeoutSec > 0 {
		return time.Duration(c.TipTimeoutSec) * time.Second
	}
	return DefaultTipTimeout
}
