package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	content := `{
		"api_key": "test-key",
		"fast_model": "gemini-2.5-flash",
		"resolve_timeout_sec": 45,
		"port": 9090
	}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "test-key", cfg.APIKey)
	assert.Equal(t, "gemini-2.5-flash", cfg.FastModel)
	assert.Equal(t, 45, cfg.ResolveTimeoutSec)
	assert.Equal(t, 9090, cfg.Port)
	assert.Empty(t, cfg.ReasoningModel)
}

func TestLoadConfig_Errors(t *testing.T) {
	t.Run("empty path", func(t *testing.T) {
		_, err := LoadConfig("")
		assert.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.json"))
		assert.Error(t, err)
	})

	t.Run("invalid JSON", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.json")
		require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))
		_, err := LoadConfig(path)
		assert.Error(t, err)
	})
}

func TestFromEnv(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "env-key")
	t.Setenv("PITCH_COACH_FAST_MODEL", "env-fast")
	t.Setenv("PORT", "3000")

	cfg := &Config{}
	cfg.FromEnv()

	assert.Equal(t, "env-key", cfg.APIKey)
	assert.Equal(t, "env-fast", cfg.FastModel)
	assert.Equal(t, 3000, cfg.Port)
}

func TestFromEnv_ExistingValuesWin(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "env-key")
	t.Setenv("PORT", "3000")

	cfg := &Config{APIKey: "file-key", Port: 9090}
	cfg.FromEnv()

	assert.Equal(t, "file-key", cfg.APIKey)
	assert.Equal(t, 9090, cfg.Port)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{name: "zero config", cfg: Config{}, wantErr: false},
		{name: "valid values", cfg: Config{ResolveTimeoutSec: 30, Port: 8080}, wantErr: false},
		{name: "negative resolve timeout", cfg: Config{ResolveTimeoutSec: -1}, wantErr: true},
		{name: "negative critique timeout", cfg: Config{CritiqueTimeoutSec: -1}, wantErr: true},
		{name: "negative tip timeout", cfg: Config{TipTimeoutSec: -1}, wantErr: true},
		{name: "port out of range", cfg: Config{Port: 70000}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestMergeWithDefaults(t *testing.T) {
	cfg := Config{APIKey: "mine", Port: 9090}
	defaults := Config{
		APIKey:            "default-key",
		FastModel:         "gemini-2.5-flash",
		ReasoningModel:    "gemini-2.5-pro",
		ResolveTimeoutSec: 30,
		Port:              8080,
	}

	merged := cfg.MergeWithDefaults(defaults)

	assert.Equal(t, "mine", merged.APIKey)
	assert.Equal(t, 9090, merged.Port)
	assert.Equal(t, "gemini-2.5-flash", merged.FastModel)
	assert.Equal(t, "gemini-2.5-pro", merged.ReasoningModel)
	assert.Equal(t, 30, merged.ResolveTimeoutSec)
}

func TestTimeoutHelpers(t *testing.T) {
	cfg := &Config{}
	assert.Equal(t, DefaultResolveTimeout, cfg.ResolveTimeout())
	assert.Equal(t, DefaultCritiqueTimeout, cfg.CritiqueTimeout())
	assert.Equal(t, DefaultTipTimeout, cfg.TipTimeout())

	cfg = &Config{ResolveTimeoutSec: 60, CritiqueTimeoutSec: 20, TipTimeoutSec: 5}
	assert.Equal(t, 60*time.Second, cfg.ResolveTimeout())
	assert.Equal(t, 20*time.Second, cfg.CritiqueTimeout())
	assert.Equal(t, 5*time.Second, cfg.TipTimeout())
}
