// Package config loads the portal backend configuration from a YAML file
// with environment-variable overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds all xdg-desktop-portal-phosh configuration.
type Config struct {
	// BusName is the well-known D-Bus name the backend claims.
	BusName string `yaml:"bus_name"`

	// MessageBuffer is the capacity of the channel into the dispatch
	// loop. A full channel stalls new portal requests (backpressure).
	MessageBuffer int `yaml:"message_buffer"`

	// Interfaces toggles the exposed portal interfaces.
	Interfaces InterfacesConfig `yaml:"interfaces"`

	// Account configures the account dialog defaults.
	Account AccountConfig `yaml:"account"`

	// FileChooser configures the file chooser dialog.
	FileChooser FileChooserConfig `yaml:"file_chooser"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// InterfacesConfig enables or disables individual portal interfaces.
type InterfacesConfig struct {
	Account     bool `yaml:"account"`
	AppChooser  bool `yaml:"app_chooser"`
	FileChooser bool `yaml:"file_chooser"`
	Wallpaper   bool `yaml:"wallpaper"`
}

// AccountConfig pre-fills the account dialog. Empty fields fall back to the
// values reported by the OS user database.
type AccountConfig struct {
	Username  string `yaml:"username"`
	RealName  string `yaml:"real_name"`
	ImagePath string `yaml:"image_path"`
}

// FileChooserConfig configures the file chooser dialog.
type FileChooserConfig struct {
	// StartDirectory is where browsing begins when the request does not
	// name a folder. Defaults to the user's home directory.
	StartDirectory string `yaml:"start_directory"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	JSON  bool   `yaml:"json"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		BusName:       "mobi.phosh.impl.portal.desktop.phosh",
		MessageBuffer: 16,
		Interfaces: InterfacesConfig{
			Account:     true,
			AppChooser:  true,
			FileChooser: true,
			Wallpaper:   true,
		},
		Logging: LoggingConfig{
			Level: "info",
			JSON:  false,
		},
	}
}

// Load loads configuration from a YAML file. A missing file yields the
// defaults; environment variables override either way.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// applyEnvOverrides lets the environment override config-file values.
func (c *Config) applyEnvOverrides() {
	if name := os.Getenv("XDPP_BUS_NAME"); name != "" {
		c.BusName = name
	}
	if level := os.Getenv("XDPP_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
	if dir := os.Getenv("XDPP_FILE_CHOOSER_DIR"); dir != "" {
		c.FileChooser.StartDirectory = dir
	}
}

// Validate checks the configuration for values the backend cannot run with.
func (c *Config) Validate() error {
	if c.BusName == "" {
		return fmt.Errorf("bus_name must not be empty")
	}
	if c.MessageBuffer < 0 {
		return fmt.Errorf("message_buffer must not be negative: %d", c.MessageBuffer)
	}
	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}
	return nil
}
