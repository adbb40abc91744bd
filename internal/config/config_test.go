package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ukaji3/sheetask-go/pkg/sheetask/keystore"
	"github.com/ukaji3/sheetask-go/pkg/sheetask/models"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		keystore.AnthropicAPIKey, keystore.OpenAIAPIKey, keystore.GeminiAPIKey,
		"SHEETASK_ACCESS_TOKEN", "SHEETASK_MODEL",
	} {
		t.Setenv(name, "")
	}
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 200, cfg.Context.MaxRows)
	assert.Equal(t, []string{"namedRange", "table", "sheet"}, cfg.Context.Precedence)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
spreadsheet:
  url: https://docs.google.com/spreadsheets/d/abc123/edit
model: gpt-4o
context:
  max_rows: 50
  precedence: [sheet, table, namedRange]
providers:
  anthropic:
    base_url: http://localhost:9999
    max_tokens: 2048
api_keys:
  OPENAI_API_KEY: sk-file
`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://docs.google.com/spreadsheets/d/abc123/edit", cfg.Spreadsheet.URL)
	assert.Equal(t, "gpt-4o", cfg.Model)
	assert.Equal(t, 50, cfg.Context.MaxRows)
	assert.Equal(t, "http://localhost:9999", cfg.Providers.Anthropic.BaseURL)
	assert.Equal(t, 2048, cfg.Providers.Anthropic.MaxTokens)
	assert.Equal(t, "sk-file", cfg.APIKeys[keystore.OpenAIAPIKey])
	assert.Equal(t, "warn", cfg.Logging.Level, "unset keys keep defaults")

	opts, err := cfg.Options()
	require.NoError(t, err)
	assert.Equal(t, 50, opts.MaxRows)
	assert.Equal(t, []models.EntityType{models.EntitySheet, models.EntityTable, models.EntityNamedRange}, opts.Precedence)
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("context: [unclosed"), 0o600))
	_, err := Load(path)
	assert.ErrorContains(t, err, "failed to parse config")
}

func TestEnvOverrides(t *testing.T) {
	t.Run("keys from environment win over file", func(t *testing.T) {
		clearEnv(t)
		t.Setenv(keystore.OpenAIAPIKey, "sk-env")
		cfg := &Config{APIKeys: map[string]string{keystore.OpenAIAPIKey: "sk-file"}}
		cfg.applyEnvOverrides()
		assert.Equal(t, "sk-env", cfg.APIKeys[keystore.OpenAIAPIKey])
	})

	t.Run("empty variables are ignored", func(t *testing.T) {
		clearEnv(t)
		cfg := &Config{Model: "gpt-4o"}
		cfg.applyEnvOverrides()
		assert.Equal(t, "gpt-4o", cfg.Model)
		assert.Empty(t, cfg.APIKeys)
	})

	t.Run("token and model", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("SHEETASK_ACCESS_TOKEN", "ya29.token")
		t.Setenv("SHEETASK_MODEL", "gemini-2.5-pro")
		cfg := &Config{}
		cfg.applyEnvOverrides()
		assert.Equal(t, "ya29.token", cfg.Spreadsheet.AccessToken)
		assert.Equal(t, "gemini-2.5-pro", cfg.Model)
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults", func(*Config) {}, ""},
		{"zero max rows", func(c *Config) { c.Context.MaxRows = 0 }, "max_rows"},
		{"unknown namespace", func(c *Config) { c.Context.Precedence = []string{"chart"} }, "unknown entity type"},
		{"duplicate namespace", func(c *Config) { c.Context.Precedence = []string{"sheet", "sheet"} }, "duplicate"},
		{"unknown model", func(c *Config) { c.Model = "gpt-2" }, "unknown model"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := DefaultConfig()
	cfg.Spreadsheet.XLSX = "/tmp/book.xlsx"
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/book.xlsx", loaded.Spreadsheet.XLSX)
	assert.Equal(t, cfg.Bridge.Addr, loaded.Bridge.Addr)
}
