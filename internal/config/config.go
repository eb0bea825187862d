package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultAPIURL is the hosting platform the CLI talks to.
const DefaultAPIURL = "https://structure.sh"

type Config struct {
	APIURL           string `yaml:"api_url"`
	TimeoutSeconds   int    `yaml:"timeout_seconds"`
	UpdateCheckHours int    `yaml:"update_check_hours"`
	Debug            bool   `yaml:"debug"`
}

func DefaultConfig() *Config {
	return &Config{
		APIURL:           DefaultAPIURL,
		TimeoutSeconds:   20,
		UpdateCheckHours: 12,
	}
}

// Timeout returns the request timeout as a duration.
func (c *Config) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 20 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// UpdateInterval returns the minimum time between update checks.
func (c *Config) UpdateInterval() time.Duration {
	if c.UpdateCheckHours <= 0 {
		return 12 * time.Hour
	}
	return time.Duration(c.UpdateCheckHours) * time.Hour
}

func ConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".structure", "config.yaml")
}

// Load reads the user config, falling back to defaults when the file is
// missing, then applies environment overrides.
func Load() (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(ConfigPath())
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	applyEnv(cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("STRUCTURE_API_URL"); v != "" {
		cfg.APIURL = v
	}
	if v := os.Getenv("STRUCTURE_DEBUG"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Debug = b
		}
	}
}

func (c *Config) Save() error {
	path := ConfigPath()

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// ExpandPath expands ~ to home directory
func ExpandPath(path string) string {
	if len(path) > 0 && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return path // Return unexpanded if home unavailable
		}
		return filepath.Join(home, path[1:])
	}
	return path
}
