package core

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoadConfig_ValidConfig_ReturnsConfigStruct(t *testing.T) {
	t.Setenv("TEST_TOKEN", "test-token-12345")
	logDir := t.TempDir()

	path := writeConfig(t, `
telegram:
  token: "${TEST_TOKEN}"
  allowed_users: [111, 222]
ubus:
  path: /bin/ubus
  timeout: 3s
logging:
  level: debug
  dir: `+logDir+`
  format: text
  ansi: true
  enable_stdout: false
`)

	config, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "test-token-12345", config.Telegram.Token)
	assert.Equal(t, UserIDs{111, 222}, config.Telegram.AllowedUsers)
	assert.False(t, config.Discord.Enabled())
	assert.Equal(t, "/bin/ubus", config.Ubus.Path)
	assert.Equal(t, 3*time.Second, config.Ubus.CallTimeout())

	lc := config.LoggerConfig()
	assert.Equal(t, "debug", lc.Level)
	assert.Equal(t, filepath.Join(logDir, "wrtbot.log"), lc.File)
	assert.Equal(t, "text", lc.Format)
	assert.True(t, lc.ANSI)
	assert.False(t, lc.EnableStdout)
}

func TestLoadConfig_MissingFile_UsesEnvironment(t *testing.T) {
	t.Setenv("BOT_TOKEN", "env-token")
	t.Setenv("BOT_ALLOWED_USERS", "1,2,3")
	t.Setenv("BOT_LOG_DIR", t.TempDir())

	config, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "env-token", config.Telegram.Token)
	assert.Equal(t, UserIDs{1, 2, 3}, config.Telegram.AllowedUsers)
}

func TestLoadConfig_EmptyPath_UsesEnvironment(t *testing.T) {
	t.Setenv("BOT_DISCORD_TOKEN", "discord-token")
	t.Setenv("BOT_DISCORD_ALLOWED_USERS", "123456789012345678")
	t.Setenv("BOT_LOG_DIR", t.TempDir())

	config, err := LoadConfig("")
	require.NoError(t, err)

	assert.True(t, config.Discord.Enabled())
	assert.Equal(t, UserIDs{123456789012345678}, config.Discord.AllowedUsers)
	assert.Equal(t, []string{"discord"}, config.EnabledBots())
}

func TestLoadConfig_EnvironmentOverridesFile(t *testing.T) {
	t.Setenv("BOT_TOKEN", "from-env")
	t.Setenv("BOT_UBUS_TIMEOUT", "250ms")
	t.Setenv("BOT_LOG", "warn")
	t.Setenv("BOT_LOG_STDOUT", "false")

	path := writeConfig(t, `
telegram:
  token: from-file
  allowed_users: [42]
logging:
  dir: `+t.TempDir()+`
`)

	config, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "from-env", config.Telegram.Token)
	assert.Equal(t, UserIDs{42}, config.Telegram.AllowedUsers)
	assert.Equal(t, 250*time.Millisecond, config.Ubus.CallTimeout())
	assert.Equal(t, "warn", config.Logging.Level)
	assert.False(t, config.LoggerConfig().EnableStdout)
}

func TestLoadConfig_Defaults(t *testing.T) {
	logDir := t.TempDir()
	path := writeConfig(t, `
telegram:
  token: abc
  allowed_users: [42]
logging:
  dir: `+logDir+`
`)

	config, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, DefaultUbusPath, config.Ubus.Path)
	assert.Equal(t, 10*time.Second, config.Ubus.CallTimeout())

	lc := config.LoggerConfig()
	assert.Equal(t, DefaultLogLevel, lc.Level)
	assert.Equal(t, DefaultLogFormat, lc.Format)
	assert.Equal(t, filepath.Join(logDir, "wrtbot.log"), lc.File)
	assert.Equal(t, 10, lc.MaxSize)
	assert.Equal(t, 3, lc.MaxBackups)
	assert.Equal(t, 30, lc.MaxAge)
	assert.True(t, lc.EnableStdout)
	assert.False(t, lc.ANSI)
}

func TestLoadConfig_LogDirDefaultsToExecutableDir(t *testing.T) {
	path := writeConfig(t, `
telegram:
  token: abc
  allowed_users: [42]
`)

	config, err := LoadConfig(path)
	require.NoError(t, err)

	exe, err := os.Executable()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(filepath.Dir(exe), "wrtbot.log"), config.Logging.File)
}

func TestLoadConfig_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "no bots",
			content: "ubus:\n  path: ubus\n",
			wantErr: "at least one bot must be configured",
		},
		{
			name:    "telegram without allowed users",
			content: "telegram:\n  token: abc\n",
			wantErr: "telegram.allowed_users cannot be empty",
		},
		{
			name:    "discord without allowed users",
			content: "discord:\n  token: abc\n  allowed_users: []\n",
			wantErr: "discord.allowed_users cannot be empty",
		},
		{
			name:    "invalid log level",
			content: "telegram:\n  token: abc\n  allowed_users: [1]\nlogging:\n  level: loud\n",
			wantErr: "config validation failed",
		},
		{
			name:    "invalid log format",
			content: "telegram:\n  token: abc\n  allowed_users: [1]\nlogging:\n  format: xml\n",
			wantErr: "config validation failed",
		},
		{
			name:    "zero user id",
			content: "telegram:\n  token: abc\n  allowed_users: [0]\n",
			wantErr: "config validation failed",
		},
		{
			name:    "negative timeout",
			content: "telegram:\n  token: abc\n  allowed_users: [1]\nubus:\n  timeout: -1s\n",
			wantErr: "config validation failed",
		},
		{
			name:    "invalid yaml",
			content: "telegram: [unclosed\n",
			wantErr: "failed to parse config",
		},
		{
			name:    "missing variable",
			content: "telegram:\n  token: ${WRTBOT_TEST_UNSET_VAR}\n",
			wantErr: "missing required environment variables: WRTBOT_TEST_UNSET_VAR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("BOT_LOG_DIR", t.TempDir())
			_, err := LoadConfig(writeConfig(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadConfig_InvalidEnvironmentList(t *testing.T) {
	t.Setenv("BOT_TOKEN", "abc")
	t.Setenv("BOT_ALLOWED_USERS", "1,alice")

	_, err := LoadConfig("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse environment")
}

func TestExpandEnv(t *testing.T) {
	t.Setenv("WRTBOT_A", "alpha")

	out, err := expandEnv("token: ${WRTBOT_A}")
	require.NoError(t, err)
	assert.Equal(t, "token: alpha", out)

	_, err = expandEnv("${WRTBOT_MISSING_ONE} ${WRTBOT_MISSING_TWO}")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "WRTBOT_MISSING_ONE, WRTBOT_MISSING_TWO")
}

func TestConfig_EnabledBots(t *testing.T) {
	config := &Config{
		Telegram: TelegramConfig{Token: "t"},
		Discord:  DiscordConfig{Token: "d"},
	}
	assert.Equal(t, []string{"telegram", "discord"}, config.EnabledBots())

	config.Telegram.Token = ""
	assert.Equal(t, []string{"discord"}, config.EnabledBots())
}

func TestLoadUbusConfig_IgnoresBotRules(t *testing.T) {
	t.Setenv("BOT_LOG_DIR", t.TempDir())
	path := writeConfig(t, "ubus:\n  path: /sbin/ubus\n  timeout: 2s\n")

	_, err := LoadConfig(path)
	require.Error(t, err)

	ubus, err := LoadUbusConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "/sbin/ubus", ubus.Path)
	assert.Equal(t, 2*time.Second, ubus.CallTimeout())
}

func TestLoadConfig_AllowedUsersFromEnvironment(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  UserIDs
	}{
		{"plain", "111,222", UserIDs{111, 222}},
		{"spaces after commas", "111, 222", UserIDs{111, 222}},
		{"padded", "  111 ,222  ", UserIDs{111, 222}},
		{"trailing comma", "111,222,", UserIDs{111, 222}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("BOT_TOKEN", "abc")
			t.Setenv("BOT_ALLOWED_USERS", tt.value)
			t.Setenv("BOT_LOG_DIR", t.TempDir())

			config, err := LoadConfig("")
			require.NoError(t, err)
			assert.Equal(t, tt.want, config.Telegram.AllowedUsers)
		})
	}
}

func TestUserIDs_UnmarshalText(t *testing.T) {
	var ids UserIDs
	require.NoError(t, ids.UnmarshalText([]byte(" 7 , 8")))
	assert.Equal(t, UserIDs{7, 8}, ids)

	require.NoError(t, ids.UnmarshalText([]byte("")))
	assert.Empty(t, ids)

	err := ids.UnmarshalText([]byte("7, alice"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid user id "alice"`)
}

func TestLoadConfig_UbusTimeout(t *testing.T) {
	tests := []struct {
		name    string
		content string
		env     string
		want    time.Duration
	}{
		{"unset uses default", "", "", 10 * time.Second},
		{"explicit zero disables", "ubus:\n  timeout: 0s\n", "", 0},
		{"explicit value", "ubus:\n  timeout: 5s\n", "", 5 * time.Second},
		{"environment zero disables", "", "0s", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("BOT_LOG_DIR", t.TempDir())
			if tt.env != "" {
				t.Setenv("BOT_UBUS_TIMEOUT", tt.env)
			}

			ubus, err := LoadUbusConfig(writeConfig(t, tt.content))
			require.NoError(t, err)
			require.NotNil(t, ubus.Timeout)
			assert.Equal(t, tt.want, ubus.CallTimeout())
		})
	}
}
