// ABOUTME: Configuration loading for the freight desk client
// ABOUTME: Merges defaults, a YAML file, a .env file, and process environment
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/harperreed/freightdesk/api"
)

const appName = "freightdesk"

// Environment variables that override file settings.
const (
	EnvAPIBaseURL  = "FREIGHT_API_BASE_URL"
	EnvFileBaseURL = "FREIGHT_FILE_BASE_URL"
	EnvLogFile     = "FREIGHT_LOG_FILE"
	EnvLogLevel    = "FREIGHT_LOG_LEVEL"
	EnvCharmHost   = "CHARM_HOST"
)

// ErrNoAPIBaseURL means no backend address was configured anywhere.
var ErrNoAPIBaseURL = errors.New("api base url is not configured (set " + EnvAPIBaseURL + " or api_base_url in the config file)")

// Config holds all client settings.
type Config struct {
	APIBaseURL  string `yaml:"api_base_url"`
	FileBaseURL string `yaml:"file_base_url"`
	LogFile     string `yaml:"log_file"`
	LogLevel    string `yaml:"log_level"` // debug, info, warn, error
	CharmHost   string `yaml:"charm_host"`

	// Verbose forces debug logging; set from the command line only.
	Verbose bool `yaml:"-"`
}

// DefaultConfig returns the settings used when nothing else is configured.
func DefaultConfig() *Config {
	return &Config{
		LogFile:  filepath.Join(xdg.StateHome, appName, appName+".log"),
		LogLevel: "info",
	}
}

// DefaultPath is the YAML config location under the XDG config home.
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, appName, "config.yaml")
}

// Load reads path (missing is fine), then the given .env files (".env" when
// none are named; missing ones are skipped), then the process environment.
// Variables already in the environment win over .env entries.
func Load(path string, envFiles ...string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	case !os.IsNotExist(err):
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to load %s: %w", f, err)
		}
	}

	cfg.applyEnvOverrides()
	cfg.fillDerived()
	return cfg, nil
}

func (c *Config) applyEnvOverrides() {
	overrides := map[string]*string{
		EnvAPIBaseURL:  &c.APIBaseURL,
		EnvFileBaseURL: &c.FileBaseURL,
		EnvLogFile:     &c.LogFile,
		EnvLogLevel:    &c.LogLevel,
		EnvCharmHost:   &c.CharmHost,
	}
	for key, field := range overrides {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			*field = v
		}
	}
}

func (c *Config) fillDerived() {
	c.APIBaseURL = strings.TrimRight(c.APIBaseURL, "/")
	if c.FileBaseURL == "" && c.APIBaseURL != "" {
		c.FileBaseURL = api.FileBase(c.APIBaseURL)
	}
}

// Validate reports settings that prevent any surface from starting.
func (c *Config) Validate() error {
	if c.APIBaseURL == "" {
		return ErrNoAPIBaseURL
	}
	switch strings.ToLower(c.LogLevel) {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q", c.LogLevel)
	}
	return nil
}

// Save writes the configuration as YAML, creating parent directories.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
