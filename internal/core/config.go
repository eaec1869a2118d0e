// Package core wires configuration, the router client and the bots into a
// running application.
//
// # Configuration
//
// Configuration comes from an optional YAML file, overlaid with BOT_*
// environment variables. The file may reference the environment with
// ${VAR}; every referenced variable must be set.
//
//	telegram:
//	  token: "${TELEGRAM_TOKEN}"
//	  allowed_users: [123456789]
//	discord:
//	  token: ""
//	  allowed_users: []
//	ubus:
//	  path: "ubus"
//	  timeout: 10s
//	logging:
//	  level: info
//	  dir: /var/log/wrtbot
//	  format: json
//
// A bot is enabled when its token is set, and an enabled bot must have at
// least one allowed user.
package core

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/keepmind9/wrtbot/internal/logger"
	"github.com/keepmind9/wrtbot/pkg/constants"
	"gopkg.in/yaml.v3"
)

const (
	DefaultLogLevel     = "info"
	DefaultLogFormat    = logger.FormatJSON
	DefaultUbusPath     = "ubus"
	DefaultEnableStdout = true
)

// LoadConfig reads the YAML file at configPath, applies the BOT_* environment
// overlay, fills defaults and validates the result. An empty path or a
// missing file yields a configuration built from the environment alone.
func LoadConfig(configPath string) (*Config, error) {
	config, err := loadConfig(configPath)
	if err != nil {
		return nil, err
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

// LoadUbusConfig returns only the router section. It skips the bot rules,
// so it works on hosts where no bot is configured.
func LoadUbusConfig(configPath string) (UbusConfig, error) {
	config, err := loadConfig(configPath)
	if err != nil {
		return UbusConfig{}, err
	}

	if err := validator.New().Struct(config.Ubus); err != nil {
		return UbusConfig{}, fmt.Errorf("config validation failed: %w", err)
	}

	return config.Ubus, nil
}

func loadConfig(configPath string) (*Config, error) {
	var config Config

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		switch {
		case errors.Is(err, os.ErrNotExist):
			// environment only
		case err != nil:
			return nil, fmt.Errorf("failed to read config file: %w", err)
		default:
			expandedData, err := expandEnv(string(data))
			if err != nil {
				return nil, fmt.Errorf("failed to expand environment variables: %w", err)
			}
			if err := yaml.Unmarshal([]byte(expandedData), &config); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	if err := env.Parse(&config); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if err := applyDefaults(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// expandEnv replaces ${VAR_NAME} patterns with environment variable values
func expandEnv(input string) (string, error) {
	var missingVars []string

	result := os.Expand(input, func(key string) string {
		if val := os.Getenv(key); val != "" {
			return val
		}
		missingVars = append(missingVars, key)
		return ""
	})

	if len(missingVars) > 0 {
		return "", fmt.Errorf("missing required environment variables: %s",
			strings.Join(missingVars, ", "))
	}

	return result, nil
}

func applyDefaults(config *Config) error {
	if config.Ubus.Path == "" {
		config.Ubus.Path = DefaultUbusPath
	}
	if config.Ubus.Timeout == nil {
		timeout := constants.DefaultUbusTimeout
		config.Ubus.Timeout = &timeout
	}

	l := &config.Logging
	if l.Level == "" {
		l.Level = DefaultLogLevel
	}
	if l.Format == "" {
		l.Format = DefaultLogFormat
	}
	if l.MaxSize == 0 {
		l.MaxSize = constants.DefaultLogMaxSize
	}
	if l.MaxBackups == 0 {
		l.MaxBackups = constants.DefaultLogMaxBackups
	}
	if l.MaxAge == 0 {
		l.MaxAge = constants.DefaultLogMaxAge
	}
	if l.EnableStdout == nil {
		enabled := DefaultEnableStdout
		l.EnableStdout = &enabled
	}
	if l.File == "" {
		dir := l.Dir
		if dir == "" {
			exe, err := os.Executable()
			if err != nil {
				return fmt.Errorf("failed to locate executable for log dir: %w", err)
			}
			dir = filepath.Dir(exe)
		}
		l.File = filepath.Join(dir, constants.LogFileName)
	}

	return nil
}

// validateConfig runs the struct tag rules, then the rules that span fields.
func validateConfig(config *Config) error {
	if err := validator.New().Struct(config); err != nil {
		return err
	}

	if !config.Telegram.Enabled() && !config.Discord.Enabled() {
		return fmt.Errorf("at least one bot must be configured (set BOT_TOKEN or BOT_DISCORD_TOKEN)")
	}

	if config.Telegram.Enabled() && len(config.Telegram.AllowedUsers) == 0 {
		return fmt.Errorf("telegram.allowed_users cannot be empty when the telegram bot is enabled")
	}
	if config.Discord.Enabled() && len(config.Discord.AllowedUsers) == 0 {
		return fmt.Errorf("discord.allowed_users cannot be empty when the discord bot is enabled")
	}

	return nil
}

// LoggerConfig converts the logging section for logger.InitLogger.
func (c *Config) LoggerConfig() logger.Config {
	l := c.Logging
	stdout := DefaultEnableStdout
	if l.EnableStdout != nil {
		stdout = *l.EnableStdout
	}
	return logger.Config{
		Level:        l.Level,
		File:         l.File,
		MaxSize:      l.MaxSize,
		MaxBackups:   l.MaxBackups,
		MaxAge:       l.MaxAge,
		Compress:     l.Compress,
		EnableStdout: stdout,
		Format:       l.Format,
		ANSI:         l.ANSI,
	}
}

// EnabledBots lists the platforms that will be started.
func (c *Config) EnabledBots() []string {
	var names []string
	if c.Telegram.Enabled() {
		names = append(names, "telegram")
	}
	if c.Discord.Enabled() {
		names = append(names, "discord")
	}
	return names
}
