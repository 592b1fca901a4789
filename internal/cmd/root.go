package cmd

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Iron-Ham/mustdo/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "mustdo",
	Short: "A small prioritized task list",
	Long: `mustdo keeps a single list of tasks, each with a priority (High, Medium
or Low) and an optional due date. The list is always shown High first, and
every change is saved immediately.

Run 'mustdo tui' for the interactive list, or use the subcommands to script it.`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is $HOME/.config/mustdo/config.yaml)")
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
}

func initConfig() {
	// Set defaults first so they're available even without a config file
	config.SetDefaults()

	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(config.ConfigDir())
		viper.AddConfigPath("$HOME/.config/mustdo")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("MUSTDO")
	// Replace dots with underscores for nested keys in env vars
	// e.g., MUSTDO_STORAGE_SLOT for storage.slot
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file if it exists (ignore error if not found)
	_ = viper.ReadInConfig()
}
