// Package config provides configuration management for i18nsync.
// It defines the structure of the .i18nsync.yaml file and handles loading,
// validation, and default value application.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the top-level configuration for i18nsync.
type Config struct {
	// Version is the configuration file format version
	Version string `yaml:"version"`
	// RcloneBinary is the rclone binary name or path (default: "rclone")
	RcloneBinary string `yaml:"rclone_binary"`
	// RcloneURL is the rc endpoint of the running rclone daemon
	RcloneURL string `yaml:"rclone_url"`
	// I18nDir is the root of the per-language localization directories
	I18nDir string `yaml:"i18n_dir"`
	// FlagsFile is the flag resource filename inside each language directory
	FlagsFile string `yaml:"flags_file"`
	// ProvidersFile is the provider resource filename inside each language directory
	ProvidersFile string `yaml:"providers_file"`
	// Indent is the indentation width of the resource files
	Indent int `yaml:"indent"`
	// Languages restricts the sync to the listed language codes (empty = all)
	Languages []string `yaml:"languages"`
}

// NewDefaultConfig creates a configuration with the defaults the resource
// files in the app repository use.
func NewDefaultConfig() *Config {
	return &Config{
		Version:       "1.0",
		RcloneBinary:  "rclone",
		RcloneURL:     "http://127.0.0.1:51900",
		I18nDir:       "src/assets/i18n",
		FlagsFile:     "rclone.json",
		ProvidersFile: "rclone-providers.json",
		Indent:        2,
	}
}

// LoadConfig loads and validates a configuration from a YAML file.
// Missing optional fields are filled with defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// SaveConfig writes the configuration to a YAML file.
func (c *Config) SaveConfig(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.RcloneBinary == "" {
		return fmt.Errorf("rclone_binary cannot be empty")
	}
	if c.RcloneURL == "" {
		return fmt.Errorf("rclone_url cannot be empty")
	}
	if c.I18nDir == "" {
		return fmt.Errorf("i18n_dir cannot be empty")
	}
	if c.FlagsFile == "" {
		return fmt.Errorf("flags_file cannot be empty")
	}
	if c.ProvidersFile == "" {
		return fmt.Errorf("providers_file cannot be empty")
	}
	if c.Indent < 1 {
		return fmt.Errorf("indent must be at least 1, got %d", c.Indent)
	}
	return nil
}

// applyDefaults fills in zero-valued optional fields.
func (c *Config) applyDefaults() {
	defaults := NewDefaultConfig()

	if c.Version == "" {
		c.Version = defaults.Version
	}
	if c.RcloneBinary == "" {
		c.RcloneBinary = defaults.RcloneBinary
	}
	if c.RcloneURL == "" {
		c.RcloneURL = defaults.RcloneURL
	}
	if c.I18nDir == "" {
		c.I18nDir = defaults.I18nDir
	}
	if c.FlagsFile == "" {
		c.FlagsFile = defaults.FlagsFile
	}
	if c.ProvidersFile == "" {
		c.ProvidersFile = defaults.ProvidersFile
	}
	if c.Indent == 0 {
		c.Indent = defaults.Indent
	}
}
