package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	SubdirsPerLevel int      `yaml:"subdirs_per_level"`
	FileSize        int64    `yaml:"file_size"`
	Workers         int      `yaml:"workers"`
	LogLevel        string   `yaml:"log_level"`
	Exclude         []string `yaml:"exclude"`
}

func DefaultConfig() *Config {
	return &Config{
		SubdirsPerLevel: 2,
		FileSize:        1024,
		Workers:         1,
		LogLevel:        "warn",
		Exclude:         []string{},
	}
}

// LoadConfig reads path on top of the defaults. A missing file is not an
// error and yields the defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	// Initialize Exclude slice if nil (explicit null in the file)
	if cfg.Exclude == nil {
		cfg.Exclude = []string{}
	}

	return cfg, nil
}
