package core

import (
	"github.com/keepmind9/wrtbot/internal/bot"
	"github.com/keepmind9/wrtbot/internal/logger"
	"github.com/keepmind9/wrtbot/internal/router"
	"github.com/sirupsen/logrus"
)

// NewRouter builds the ubus client described by the configuration.
func NewRouter(config *Config) *router.Ubus {
	return router.NewUbus(config.Ubus.Path, config.Ubus.CallTimeout())
}

// NewManagerFromConfig registers one bot per enabled platform. Every bot
// shares r, and each gets a whitelist built from its own allowed users.
func NewManagerFromConfig(config *Config, r router.Info) *bot.Manager {
	manager := bot.NewManager()

	if config.Telegram.Enabled() {
		auth := bot.NewWhitelist(config.Telegram.AllowedUsers)
		manager.Add(bot.NewTelegramBot(config.Telegram.Token, r, auth))
		logBotRegistered("telegram", auth)
	}

	if config.Discord.Enabled() {
		auth := bot.NewWhitelist(config.Discord.AllowedUsers)
		manager.Add(bot.NewDiscordBot(config.Discord.Token, r, auth))
		logBotRegistered("discord", auth)
	}

	return manager
}

func logBotRegistered(name string, auth *bot.Whitelist) {
	logger.WithFields(logrus.Fields{
		"bot":           name,
		"allowed_users": auth.Len(),
	}).Info("bot-registered")
}
