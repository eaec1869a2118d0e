package constants

import "time"

// Message length limits for different platforms
const (
	// MaxDiscordMessageLength is Discord's message character limit
	MaxDiscordMessageLength = 2000
	// MaxTelegramMessageLength is Telegram's message character limit
	MaxTelegramMessageLength = 4096
)

// Timeouts and delays
const (
	// DefaultPollTimeout is the timeout for Telegram long polling
	DefaultPollTimeout = 60 * time.Second
	// DefaultUbusTimeout bounds a single ubus call
	DefaultUbusTimeout = 10 * time.Second
)

// Message buffer sizes
const (
	// InboundBufferSize is the buffer size for messages handed from a
	// platform SDK callback to the bot's run loop
	InboundBufferSize = 100
)

// Token masking
const (
	// MinSecretLengthForMasking is the minimum secret length to apply masking
	MinSecretLengthForMasking = 10
	// SecretMaskPrefixLength is the length of prefix to show before masking
	SecretMaskPrefixLength = 4
	// SecretMaskSuffixLength is the length of suffix to show after masking
	SecretMaskSuffixLength = 4
)

// Logging defaults
const (
	// DefaultLogMaxSize is the default maximum log file size in MB
	DefaultLogMaxSize = 10
	// DefaultLogMaxBackups is the default number of rotated files to keep
	DefaultLogMaxBackups = 3
	// DefaultLogMaxAge is the default maximum number of days to retain old logs
	DefaultLogMaxAge = 30
	// LogFileName is the log file created inside the log directory
	LogFileName = "wrtbot.log"
)

// Router data conversion
const (
	// BytesInMB converts ubus memory figures to megabytes
	BytesInMB = 1024 * 1024
	// LoadDivisor scales the raw ubus load figures for display
	LoadDivisor = 100.0
	// BitsPerMbps converts client bit rates to Mbps
	BitsPerMbps = 1_000_000.0
)
