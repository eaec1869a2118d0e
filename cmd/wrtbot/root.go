package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var configFile string

var rootCmd = &cobra.Command{
	Use:   "wrtbot",
	Short: "wrtbot answers OpenWrt router queries over chat",
	Long: `wrtbot is a small chat bot for OpenWrt routers. It reads router state
through ubus and answers /status, /wifi and /clients on Telegram and
Discord for a fixed list of allowed users.`,
	SilenceUsage: true,
}

// Execute executes the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Configuration file path (default: search standard locations)")

	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(versionCmd)
}

// defaultConfigLocations are searched in order when --config is not given.
func defaultConfigLocations() []string {
	locations := []string{"config.yaml"}
	if home, err := os.UserHomeDir(); err == nil {
		locations = append(locations, filepath.Join(home, ".config", "wrtbot", "config.yaml"))
	}
	return append(locations, "/etc/wrtbot/config.yaml")
}

// resolveConfigPath returns the explicit path, else the first existing
// default location, else "" for an environment-only configuration.
func resolveConfigPath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	for _, loc := range defaultConfigLocations() {
		if _, err := os.Stat(loc); err == nil {
			return loc
		}
	}
	return ""
}
