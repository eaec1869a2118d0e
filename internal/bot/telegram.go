package bot

import (
	"context"
	"fmt"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/keepmind9/wrtbot/internal/logger"
	"github.com/keepmind9/wrtbot/internal/router"
	"github.com/keepmind9/wrtbot/pkg/constants"
	"github.com/sirupsen/logrus"
)

// TelegramAPI is the part of *tgbotapi.BotAPI the bot uses.
// This allows us to mock it in tests.
type TelegramAPI interface {
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// telegramConnector logs in with a token and returns the API handle plus
// the bot's own username.
type telegramConnector func(token string) (TelegramAPI, string, error)

// TelegramBot serves router queries over Telegram using long polling.
type TelegramBot struct {
	token   string
	router  router.Info
	auth    AuthFilter
	connect telegramConnector
}

// NewTelegramBot creates a Telegram bot. No network call is made until Run.
func NewTelegramBot(token string, r router.Info, auth AuthFilter) *TelegramBot {
	return &TelegramBot{
		token:   token,
		router:  r,
		auth:    auth,
		connect: connectTelegram,
	}
}

func connectTelegram(token string) (TelegramAPI, string, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, "", err
	}
	return api, api.Self.UserName, nil
}

func (t *TelegramBot) Name() string {
	return "telegram"
}

// Run connects, then handles updates one at a time until stop fires or the
// updates channel closes.
func (t *TelegramBot) Run(stop <-chan struct{}) error {
	logger.WithFields(logrus.Fields{
		"token": maskSecret(t.token),
	}).Info("starting-telegram-bot-with-long-polling")

	api, username, err := t.connect(t.token)
	if err != nil {
		logger.WithFields(logrus.Fields{
			"error": err,
		}).Error("failed-to-initialize-telegram-bot")
		return fmt.Errorf("failed to initialize Telegram bot: %w", err)
	}

	logger.WithFields(logrus.Fields{
		"bot_username": username,
	}).Info("telegram-bot-initialized-successfully")

	t.registerCommands(api)

	pipeline := NewPipeline(t.router, t.auth, username)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	u := tgbotapi.NewUpdate(0)
	u.Timeout = int(constants.DefaultPollTimeout.Seconds())
	updates := api.GetUpdatesChan(u)
	defer func() {
		api.StopReceivingUpdates()
		logger.Info("telegram-bot-stopped")
	}()

	for {
		select {
		case <-stop:
			logger.Info("telegram-bot-received-shutdown-signal")
			return nil
		case update, ok := <-updates:
			if !ok {
				logger.Info("telegram-updates-channel-closed")
				return nil
			}
			if update.Message != nil {
				t.handleMessage(ctx, api, pipeline, update.Message)
			}
		}
	}
}

// registerCommands publishes the command menu. Failure only costs the
// client-side autocompletion, so it is logged and ignored.
func (t *TelegramBot) registerCommands(api TelegramAPI) {
	commands := make([]tgbotapi.BotCommand, 0, len(commandTable))
	for _, entry := range commandTable {
		commands = append(commands, tgbotapi.BotCommand{
			Command:     entry.name,
			Description: entry.description,
		})
	}

	if _, err := api.Request(tgbotapi.NewSetMyCommands(commands...)); err != nil {
		logger.WithField("error", err).Warn("failed-to-register-telegram-commands")
	}
}

// handleMessage handles incoming message events from Telegram
func (t *TelegramBot) handleMessage(ctx context.Context, api TelegramAPI, pipeline *Pipeline, message *tgbotapi.Message) {
	if message.Chat == nil {
		return
	}

	msg := Message{
		Platform: t.Name(),
		ChatID:   strconv.FormatInt(message.Chat.ID, 10),
		Text:     message.Text,
	}
	if message.From != nil {
		msg.Sender = &Sender{
			ID:       UserID(message.From.ID),
			Username: message.From.UserName,
		}
	}

	reply, outcome := pipeline.Process(ctx, msg)
	if outcome != OutcomeResponded || reply == "" {
		return
	}

	if err := t.send(api, message.Chat.ID, reply); err != nil {
		logger.WithFields(logrus.Fields{
			"chat_id": message.Chat.ID,
			"error":   err,
		}).Error("failed-to-send-message-to-telegram")
	}
}

func (t *TelegramBot) send(api TelegramAPI, chatID int64, text string) error {
	out := tgbotapi.NewMessage(chatID, truncate(text, constants.MaxTelegramMessageLength))
	if _, err := api.Send(out); err != nil {
		return fmt.Errorf("failed to send message to chat %d: %w", chatID, err)
	}
	logger.WithField("chat_id", chatID).Debug("message-sent-to-telegram")
	return nil
}
