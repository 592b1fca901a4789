package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/Iron-Ham/mustdo/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or modify mustdo configuration",
	Long: `View or modify mustdo configuration.

Without arguments, displays the current configuration.
Use subcommands to modify settings or create a config file.`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value in the user's config file.

Keys use dot notation, e.g.:
  mustdo config set display.theme mono
  mustdo config set storage.slot work

Valid keys:
  storage.dir             - Directory for the slot file (empty = XDG data dir)
  storage.slot            - Slot name
  logging.enabled         - Write a log file (true/false)
  logging.level           - debug, info, warn, error
  logging.max_size_mb     - Log size before rotation
  logging.max_backups     - Rotated logs to keep
  logging.compress        - Gzip rotated logs (true/false)
  display.theme           - default, mono, high-contrast
  display.color           - auto, always, never
  display.max_text_width  - Widest text column
  tui.show_help           - Show the key help line (true/false)`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a default config file",
	Long:  `Create a default config file at ~/.config/mustdo/config.yaml with all available options.`,
	RunE:  runConfigInit,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show the config file path",
	RunE:  runConfigPath,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(out, "Configuration is invalid, showing defaults:\n%v\n\n", err)
		cfg = config.Default()
	}

	if viper.ConfigFileUsed() != "" {
		fmt.Fprintf(out, "# Config file: %s\n", viper.ConfigFileUsed())
	} else {
		fmt.Fprintln(out, "# Config file: (none - using defaults)")
	}
	fmt.Fprintf(out, "# Data directory: %s\n\n", cfg.Storage.ResolveDir())

	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(configDocument(cfg)); err != nil {
		return err
	}
	return enc.Close()
}

// configDocument mirrors the config file layout for display.
func configDocument(cfg *config.Config) map[string]any {
	return map[string]any{
		"storage": map[string]any{
			"dir":  cfg.Storage.Dir,
			"slot": cfg.Storage.Slot,
		},
		"logging": map[string]any{
			"enabled":     cfg.Logging.Enabled,
			"level":       cfg.Logging.Level,
			"max_size_mb": cfg.Logging.MaxSizeMB,
			"max_backups": cfg.Logging.MaxBackups,
			"compress":    cfg.Logging.Compress,
		},
		"display": map[string]any{
			"theme":          cfg.Display.Theme,
			"color":          cfg.Display.Color,
			"max_text_width": cfg.Display.MaxTextWidth,
		},
		"tui": map[string]any{
			"show_help": cfg.TUI.ShowHelp,
		},
	}
}

// configKeyTypes lists the keys config set accepts and their value types.
var configKeyTypes = map[string]string{
	"storage.dir":            "string",
	"storage.slot":           "string",
	"logging.enabled":        "bool",
	"logging.level":          "string",
	"logging.max_size_mb":    "int",
	"logging.max_backups":    "int",
	"logging.compress":       "bool",
	"display.theme":          "string",
	"display.color":          "string",
	"display.max_text_width": "int",
	"tui.show_help":          "bool",
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key := args[0]
	value := args[1]

	keyType, ok := configKeyTypes[key]
	if !ok {
		return fmt.Errorf("unknown configuration key: %s\nRun 'mustdo config set --help' to see valid keys", key)
	}

	var typedValue any
	switch keyType {
	case "bool":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid value for %s: expected true or false", key)
		}
		typedValue = b
	case "int":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid value for %s: expected integer", key)
		}
		typedValue = n
	default:
		typedValue = value
	}

	previous := viper.Get(key)
	viper.Set(key, typedValue)

	// Reject values the validator would refuse on the next run.
	if _, err := config.Load(); err != nil {
		viper.Set(key, previous)
		return err
	}

	configFile := viper.ConfigFileUsed()
	if configFile == "" {
		configFile = config.ConfigFile()
	}
	if err := os.MkdirAll(filepath.Dir(configFile), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Set %s = %v\n", key, typedValue)
	fmt.Fprintf(out, "Config saved to %s\n", configFile)
	return nil
}

const defaultConfigContent = `# mustdo configuration

# Where the task list is kept
storage:
  # Directory for <slot>.json, its lock file and the log
  # (empty = $XDG_DATA_HOME/mustdo or ~/.local/share/mustdo)
  dir: ""
  # Slot name; use different slots for separate lists
  slot: todos

# Log file written to the storage directory
logging:
  enabled: true
  # debug, info, warn or error
  level: info
  max_size_mb: 10
  max_backups: 3
  compress: false

# Rendering for list, search and the TUI
display:
  # default, mono or high-contrast
  theme: default
  # auto colors only when writing to a terminal; always or never force it
  color: auto
  # Widest the task text column may grow (10-200)
  max_text_width: 60

tui:
  # Show the key help line under the list
  show_help: true
`

func runConfigInit(cmd *cobra.Command, args []string) error {
	configDir := config.ConfigDir()
	configFile := config.ConfigFile()

	if _, err := os.Stat(configFile); err == nil {
		return fmt.Errorf("config file already exists at %s\nUse 'mustdo config set' to modify values", configFile)
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(configFile, []byte(defaultConfigContent), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Created config file at %s\n", configFile)
	fmt.Fprintln(out, "Edit this file to customize mustdo's behavior.")
	return nil
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if viper.ConfigFileUsed() != "" {
		fmt.Fprintf(out, "Active config: %s\n", viper.ConfigFileUsed())
	} else {
		fmt.Fprintf(out, "Default path: %s (not created)\n", config.ConfigFile())
	}

	fmt.Fprintln(out, "\nSearch paths:")
	fmt.Fprintf(out, "  1. %s\n", config.ConfigFile())
	fmt.Fprintln(out, "  2. $HOME/.config/mustdo/config.yaml")
	fmt.Fprintln(out, "\nEnvironment variables: MUSTDO_* (e.g., MUSTDO_DISPLAY_THEME)")
	return nil
}
