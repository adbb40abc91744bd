// Package config loads sheetask configuration from YAML and the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/ukaji3/sheetask-go/pkg/sheetask"
	"github.com/ukaji3/sheetask-go/pkg/sheetask/keystore"
	"github.com/ukaji3/sheetask-go/pkg/sheetask/llm"
	"github.com/ukaji3/sheetask-go/pkg/sheetask/models"
	"github.com/ukaji3/sheetask-go/pkg/sheetask/serialize"
)

// Config holds all sheetask configuration.
type Config struct {
	Spreadsheet SpreadsheetConfig   `yaml:"spreadsheet"`
	Model       string              `yaml:"model"`
	DryRun      bool                `yaml:"dry_run"`
	Context     ContextConfig       `yaml:"context"`
	Keystore    KeystoreConfig      `yaml:"keystore"`
	Providers   llm.ProviderOptions `yaml:"providers"`
	Logging     LoggingConfig       `yaml:"logging"`
	Bridge      BridgeConfig        `yaml:"bridge"`
	// APIKeys are provider keys by store name, e.g. ANTHROPIC_API_KEY.
	APIKeys map[string]string `yaml:"api_keys"`
}

// SpreadsheetConfig selects the spreadsheet to work on.
type SpreadsheetConfig struct {
	// ID is a spreadsheet id; URL is a browser URL it can be taken from.
	ID  string `yaml:"id"`
	URL string `yaml:"url"`
	// XLSX is a local workbook path; it takes priority over ID and URL.
	XLSX        string `yaml:"xlsx"`
	AccessToken string `yaml:"access_token"`
	// BaseURL overrides the Sheets API root.
	BaseURL string `yaml:"base_url"`
}

// ContextConfig tunes context assembly.
type ContextConfig struct {
	MaxRows    int      `yaml:"max_rows"`
	Precedence []string `yaml:"precedence"`
}

// KeystoreConfig locates the key and preference database.
type KeystoreConfig struct {
	Path string `yaml:"path"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, console
}

// BridgeConfig configures the WebSocket bridge.
type BridgeConfig struct {
	Addr string `yaml:"addr"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Context: ContextConfig{
			MaxRows:    serialize.DefaultMaxRows,
			Precedence: []string{"namedRange", "table", "sheet"},
		},
		Keystore: KeystoreConfig{Path: DefaultKeystorePath()},
		Logging:  LoggingConfig{Level: "warn", Format: "console"},
		Bridge:   BridgeConfig{Addr: "127.0.0.1:8765"},
		APIKeys:  map[string]string{},
	}
}

// DefaultPath returns the default configuration file location.
func DefaultPath() string {
	return filepath.Join(configDir(), "config.yaml")
}

// DefaultKeystorePath returns the default key database location.
func DefaultKeystorePath() string {
	return filepath.Join(configDir(), "keys.db")
}

func configDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".sheetask"
	}
	return filepath.Join(dir, "sheetask")
}

// Load reads configuration from path. A missing file yields defaults.
// Environment variables override file values in both cases.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return nil, fmt.Errorf("failed to read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save writes the configuration to path as YAML.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	if c.APIKeys == nil {
		c.APIKeys = map[string]string{}
	}
	for _, name := range []string{keystore.AnthropicAPIKey, keystore.OpenAIAPIKey, keystore.GeminiAPIKey} {
		if key := os.Getenv(name); key != "" {
			c.APIKeys[name] = key
		}
	}
	if token := os.Getenv("SHEETASK_ACCESS_TOKEN"); token != "" {
		c.Spreadsheet.AccessToken = token
	}
	if model := os.Getenv("SHEETASK_MODEL"); model != "" {
		c.Model = model
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if c.Context.MaxRows <= 0 {
		return fmt.Errorf("context.max_rows must be > 0, got %d", c.Context.MaxRows)
	}
	if _, err := c.Precedence(); err != nil {
		return err
	}
	if c.Model != "" {
		if _, ok := llm.Registry(llm.DefaultModels).Lookup(c.Model); !ok {
			return fmt.Errorf("unknown model: %s", c.Model)
		}
	}
	return nil
}

// Precedence parses the configured namespace order.
func (c *Config) Precedence() ([]models.EntityType, error) {
	if len(c.Context.Precedence) == 0 {
		return models.EntityTypes, nil
	}
	out := make([]models.EntityType, 0, len(c.Context.Precedence))
	seen := make(map[models.EntityType]bool)
	for _, name := range c.Context.Precedence {
		t, err := models.ParseEntityType(name)
		if err != nil {
			return nil, fmt.Errorf("context.precedence: %w", err)
		}
		if seen[t] {
			return nil, fmt.Errorf("context.precedence: duplicate %s", t)
		}
		seen[t] = true
		out = append(out, t)
	}
	return out, nil
}

// Options returns context assembly options for the configuration.
func (c *Config) Options() (sheetask.Options, error) {
	prec, err := c.Precedence()
	if err != nil {
		return sheetask.Options{}, err
	}
	return sheetask.Options{
		MaxRows:    c.Context.MaxRows,
		Precedence: prec,
		DryRun:     c.DryRun,
	}, nil
}
