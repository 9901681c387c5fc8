package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load loads configuration from the default config file and environment
// variables.
func Load() (*Config, error) {
	return LoadFrom(configPath())
}

// LoadFrom loads configuration from the given file and environment variables.
// A missing default file is fine; an explicitly given file must exist.
func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		if err := loadFromFile(cfg, path); err != nil {
			if path != configPath() || !os.IsNotExist(err) {
				return nil, err
			}
		}
	}

	loadFromEnv(cfg)
	return cfg, nil
}

// Dir returns the config directory, creating it if needed.
func Dir() (string, error) {
	dir := configDir()
	if dir == "" {
		return "", fmt.Errorf("could not determine config directory")
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", err
	}
	return dir, nil
}

func configDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "koda")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "koda")
}

func configPath() string {
	dir := configDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}

// loadFromFile loads configuration from a YAML file. Environment variables
// in the file are expanded before parsing.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	expanded := os.ExpandEnv(string(data))
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

// loadFromEnv applies environment variable overrides.
func loadFromEnv(cfg *Config) {
	if url := os.Getenv("KODA_BACKEND_URL"); url != "" {
		cfg.Backend.BaseURL = url
	}
	if level := os.Getenv("KODA_LOG_LEVEL"); level != "" {
		cfg.Logging.Level = level
	}
	if lang := os.Getenv("KODA_LANGUAGE"); lang != "" {
		cfg.Editor.Language = lang
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Backend.BaseURL == "" {
		return fmt.Errorf("backend base_url must not be empty")
	}
	return nil
}

// Save writes the configuration to the config file atomically.
func (c *Config) Save() error {
	dir, err := Dir()
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	path := filepath.Join(dir, "config.yaml")
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
