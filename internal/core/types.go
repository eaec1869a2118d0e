package core

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Config represents the complete wrtbot configuration structure
type Config struct {
	Telegram TelegramConfig `yaml:"telegram"`
	Discord  DiscordConfig  `yaml:"discord"`
	Ubus     UbusConfig     `yaml:"ubus"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// TelegramConfig is the Telegram bot section. Telegram owns the unprefixed
// BOT_TOKEN variable.
type TelegramConfig struct {
	Token        string  `yaml:"token"         env:"BOT_TOKEN"`
	AllowedUsers UserIDs `yaml:"allowed_users" env:"BOT_ALLOWED_USERS" validate:"dive,gt=0"`
}

// DiscordConfig is the Discord bot section.
type DiscordConfig struct {
	Token        string  `yaml:"token"         env:"BOT_DISCORD_TOKEN"`
	AllowedUsers UserIDs `yaml:"allowed_users" env:"BOT_DISCORD_ALLOWED_USERS" validate:"dive,gt=0"`
}

// UserIDs is an allow list. In YAML it is a sequence; in the environment it
// is a comma separated list such as "111, 222".
type UserIDs []uint64

// UnmarshalText parses a comma separated list. Blanks around items and empty
// items are ignored; anything else that is not a number is an error.
func (u *UserIDs) UnmarshalText(text []byte) error {
	ids := UserIDs{}
	for _, item := range strings.Split(string(text), ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		id, err := strconv.ParseUint(item, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid user id %q: %w", item, err)
		}
		ids = append(ids, id)
	}
	*u = ids
	return nil
}

// Enabled reports whether the bot should be started.
func (t TelegramConfig) Enabled() bool {
	return t.Token != ""
}

// Enabled reports whether the bot should be started.
func (d DiscordConfig) Enabled() bool {
	return d.Token != ""
}

// UbusConfig controls how the router is queried. Timeout defaults to 10s
// when unset; an explicit 0 leaves calls unbounded.
type UbusConfig struct {
	Path    string         `yaml:"path"    env:"BOT_UBUS_PATH"    validate:"required"`
	Timeout *time.Duration `yaml:"timeout" env:"BOT_UBUS_TIMEOUT" validate:"omitempty,gte=0"`
}

// CallTimeout returns the per-call timeout, 0 meaning none.
func (u UbusConfig) CallTimeout() time.Duration {
	if u.Timeout == nil {
		return 0
	}
	return *u.Timeout
}

// LoggingConfig represents logging configuration. File, when set, wins over
// Dir. Sizes are in MB and ages in days. EnableStdout defaults to true.
type LoggingConfig struct {
	Level        string `yaml:"level"         env:"BOT_LOG"        validate:"oneof=trace debug info warn warning error"`
	Dir          string `yaml:"dir"           env:"BOT_LOG_DIR"`
	File         string `yaml:"file"`
	MaxSize      int    `yaml:"max_size"      validate:"gte=0"`
	MaxBackups   int    `yaml:"max_backups"   validate:"gte=0"`
	MaxAge       int    `yaml:"max_age"       validate:"gte=0"`
	Compress     bool   `yaml:"compress"`
	EnableStdout *bool  `yaml:"enable_stdout" env:"BOT_LOG_STDOUT"`
	Format       string `yaml:"format"        env:"BOT_LOG_FORMAT" validate:"oneof=json text"`
	ANSI         bool   `yaml:"ansi"          env:"BOT_LOG_ANSI"`
}
