package config

import "time"

// Config represents the main application configuration.
type Config struct {
	Backend BackendConfig `yaml:"backend"`
	Editor  EditorConfig  `yaml:"editor"`
	Suggest SuggestConfig `yaml:"suggest"`
	UI      UIConfig      `yaml:"ui"`
	Watcher WatcherConfig `yaml:"watcher"`
	Logging LoggingConfig `yaml:"logging"`

	// Runtime version information
	Version string `yaml:"-"`
}

// BackendConfig holds settings for the completion backend.
type BackendConfig struct {
	// BaseURL of the backend proxy that fronts the LLM provider.
	BaseURL string `yaml:"base_url"`
	// Timeout applied to every backend request.
	Timeout time.Duration `yaml:"timeout"`
}

// EditorConfig holds editor pane settings.
type EditorConfig struct {
	// Language overrides filename-based detection when set.
	Language string `yaml:"language,omitempty"`
	TabWidth int    `yaml:"tab_width"`
}

// SuggestConfig holds quick-suggestion settings.
type SuggestConfig struct {
	Enabled  bool          `yaml:"enabled"`
	Debounce time.Duration `yaml:"debounce"`
}

// UIConfig holds UI-related settings.
type UIConfig struct {
	Theme             string `yaml:"theme"` // chroma style: monokai, dracula, github-dark, native
	MarkdownRendering bool   `yaml:"markdown_rendering"`
	MouseMode         string `yaml:"mouse_mode"` // "enabled" (default) or "disabled"
}

// WatcherConfig holds settings for reloading the open file when it changes
// on disk outside the editor.
type WatcherConfig struct {
	Enabled    bool `yaml:"enabled"`
	DebounceMs int  `yaml:"debounce_ms"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	File  bool   `yaml:"file"`  // write koda.log in the config directory
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Backend: BackendConfig{
			BaseURL: "http://127.0.0.1:5002",
			Timeout: 10 * time.Second,
		},
		Editor: EditorConfig{
			TabWidth: 4,
		},
		Suggest: SuggestConfig{
			Enabled:  true,
			Debounce: 500 * time.Millisecond,
		},
		UI: UIConfig{
			Theme:             "monokai",
			MarkdownRendering: true,
			MouseMode:         "enabled",
		},
		Watcher: WatcherConfig{
			Enabled:    true,
			DebounceMs: 400,
		},
		Logging: LoggingConfig{
			Level: "warn",
			File:  true,
		},
	}
}
