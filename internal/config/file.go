package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/ytget/ytfetch/internal/model"
)

// FileConfig holds the optional CLI configuration, read from
// ~/.config/ytfetch/config.yml. All fields are optional; command-line
// flags take precedence over the file.
type FileConfig struct {
	OutputDir string `yaml:"output_dir"`
	Mode      string `yaml:"mode"`
}

// DefaultConfigPath returns the CLI config file location.
func DefaultConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve user config directory: %w", err)
	}
	return filepath.Join(configDir, "ytfetch", "config.yml"), nil
}

// LoadFile reads the config file at path. A missing file is not an error
// and yields the zero config.
func LoadFile(path string) (FileConfig, error) {
	var cfg FileConfig

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if cfg.Mode != "" {
		if _, err := model.ParseMode(cfg.Mode); err != nil {
			return FileConfig{}, fmt.Errorf("config file %s: %w", path, err)
		}
	}
	return cfg, nil
}
