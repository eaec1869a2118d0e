package main

import (
	"fmt"

	"github.com/keepmind9/wrtbot/internal/core"
	"github.com/keepmind9/wrtbot/internal/logger"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the bots",
	Long:  "Start every configured bot and serve router queries until SIGINT or SIGTERM",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := resolveConfigPath(configFile)

		config, err := core.LoadConfig(path)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		if err := logger.InitLogger(config.LoggerConfig()); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		logger.WithFields(logrus.Fields{
			"config_file": path,
			"log_level":   config.Logging.Level,
			"log_file":    config.Logging.File,
			"ubus_path":   config.Ubus.Path,
			"bots":        config.EnabledBots(),
		}).Info("logger-initialized")

		manager := core.NewManagerFromConfig(config, core.NewRouter(config))
		core.NewApp(manager, core.NewOSSignals()).Run()
		return nil
	},
}
