package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the complete mustdo configuration
type Config struct {
	Storage StorageConfig `mapstructure:"storage"`
	Logging LoggingConfig `mapstructure:"logging"`
	Display DisplayConfig `mapstructure:"display"`
	TUI     TUIConfig     `mapstructure:"tui"`
}

// StorageConfig controls where the task collection is kept
type StorageConfig struct {
	// Dir is the directory holding the slot file, lock file and logs.
	// Empty means the XDG data directory (see DataDir). A leading ~ is expanded.
	Dir string `mapstructure:"dir"`
	// Slot is the name of the slot holding the collection (default: "todos").
	// The collection is stored in <dir>/<slot>.json.
	Slot string `mapstructure:"slot"`
}

// LoggingConfig controls debug logging behavior
type LoggingConfig struct {
	// Enabled controls whether logging is enabled (default: true)
	Enabled bool `mapstructure:"enabled"`
	// Level sets the minimum log level: "debug", "info", "warn", "error" (default: "info")
	Level string `mapstructure:"level"`
	// MaxSizeMB is the maximum size of the log file in megabytes before rotation (default: 10)
	MaxSizeMB int `mapstructure:"max_size_mb"`
	// MaxBackups is the number of rotated log files to keep (default: 3)
	MaxBackups int `mapstructure:"max_backups"`
	// Compress gzips rotated log files (default: false)
	Compress bool `mapstructure:"compress"`
}

// DisplayConfig controls how tasks are rendered by the CLI and TUI
type DisplayConfig struct {
	// Theme is the color theme (default: "default")
	// Options: "default", "mono", "high-contrast"
	Theme string `mapstructure:"theme"`
	// Color controls colored output: "auto" colors only when stdout is a terminal,
	// "always" and "never" force it on or off (default: "auto")
	Color string `mapstructure:"color"`
	// MaxTextWidth is the widest the task text column may grow (default: 60, min: 10, max: 200)
	MaxTextWidth int `mapstructure:"max_text_width"`
}

// TUIConfig controls the terminal UI behavior
type TUIConfig struct {
	// ShowHelp renders the key binding help line under the list (default: true)
	ShowHelp bool `mapstructure:"show_help"`
}

// ResolveDir returns the storage directory with ~ expanded.
// An empty Dir resolves to DataDir().
func (s *StorageConfig) ResolveDir() string {
	if s.Dir == "" {
		return DataDir()
	}

	path := s.Dir
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, path[2:])
		}
	} else if path == "~" {
		if home, err := os.UserHomeDir(); err == nil {
			path = home
		}
	}
	return path
}

// Default returns a Config with sensible default values
func Default() *Config {
	return &Config{
		Storage: StorageConfig{
			Dir:  "", // Empty means use DataDir()
			Slot: "todos",
		},
		Logging: LoggingConfig{
			Enabled:    true,
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
			Compress:   false,
		},
		Display: DisplayConfig{
			Theme:        "default",
			Color:        "auto",
			MaxTextWidth: 60,
		},
		TUI: TUIConfig{
			ShowHelp: true,
		},
	}
}

// SetDefaults registers default values with viper
func SetDefaults() {
	defaults := Default()

	// Storage defaults
	viper.SetDefault("storage.dir", defaults.Storage.Dir)
	viper.SetDefault("storage.slot", defaults.Storage.Slot)

	// Logging defaults
	viper.SetDefault("logging.enabled", defaults.Logging.Enabled)
	viper.SetDefault("logging.level", defaults.Logging.Level)
	viper.SetDefault("logging.max_size_mb", defaults.Logging.MaxSizeMB)
	viper.SetDefault("logging.max_backups", defaults.Logging.MaxBackups)
	viper.SetDefault("logging.compress", defaults.Logging.Compress)

	// Display defaults
	viper.SetDefault("display.theme", defaults.Display.Theme)
	viper.SetDefault("display.color", defaults.Display.Color)
	viper.SetDefault("display.max_text_width", defaults.Display.MaxTextWidth)

	// TUI defaults
	viper.SetDefault("tui.show_help", defaults.TUI.ShowHelp)
}

// Load reads the configuration from viper into a Config struct and validates it
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// Get returns the current configuration (convenience function)
func Get() *Config {
	cfg, err := Load()
	if err != nil {
		// Fall back to defaults if unmarshaling fails
		return Default()
	}
	return cfg
}

// ConfigDir returns the path to the user's config directory
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "mustdo")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".mustdo"
	}
	return filepath.Join(home, ".config", "mustdo")
}

// ConfigFile returns the path to the config file
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// DataDir returns the default directory for the slot file and logs
func DataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "mustdo")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".mustdo"
	}
	return filepath.Join(home, ".local", "share", "mustdo")
}

// ValidThemes returns the list of valid display themes
func ValidThemes() []string {
	return []string{"default", "mono", "high-contrast"}
}

// ValidColorModes returns the list of valid display color modes
func ValidColorModes() []string {
	return []string{"auto", "always", "never"}
}
