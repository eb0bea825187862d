package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// AppConfigFile is the per-project configuration file name.
const AppConfigFile = "structure.yaml"

// AppConfig is the optional project-level configuration.
type AppConfig struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

// LoadAppConfig reads structure.yaml from dir.
// Returns nil, nil when the file does not exist.
func LoadAppConfig(dir string) (*AppConfig, error) {
	data, err := os.ReadFile(filepath.Join(dir, AppConfigFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", AppConfigFile, err)
	}
	return &cfg, nil
}
