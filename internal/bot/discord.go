package bot

import (
	"context"
	"fmt"
	"strconv"

	"github.com/bwmarrin/discordgo"
	"github.com/keepmind9/wrtbot/internal/logger"
	"github.com/keepmind9/wrtbot/internal/router"
	"github.com/keepmind9/wrtbot/pkg/constants"
	"github.com/sirupsen/logrus"
)

// DiscordSession defines the interface we need from discordgo.Session
// This allows us to mock it in tests without depending on concrete types
type DiscordSession interface {
	AddHandler(handler interface{}) func()
	Open() error
	Close() error
	ChannelMessageSend(channelID string, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// DiscordBot serves router queries over the Discord gateway.
type DiscordBot struct {
	token      string
	router     router.Info
	auth       AuthFilter
	newSession func(token string) (DiscordSession, error)
}

// NewDiscordBot creates a Discord bot. No connection is made until Run.
func NewDiscordBot(token string, r router.Info, auth AuthFilter) *DiscordBot {
	return &DiscordBot{
		token:      token,
		router:     r,
		auth:       auth,
		newSession: newDiscordSession,
	}
}

func newDiscordSession(token string) (DiscordSession, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, err
	}
	session.Identify.Intents = discordgo.IntentGuildMessages |
		discordgo.IntentDirectMessages |
		discordgo.IntentMessageContent
	return session, nil
}

func (d *DiscordBot) Name() string {
	return "discord"
}

// Run opens the gateway session and handles messages one at a time until
// stop fires. discordgo delivers events on its own goroutines, so the event
// handler only queues messages for this loop.
func (d *DiscordBot) Run(stop <-chan struct{}) error {
	logger.WithFields(logrus.Fields{
		"token": maskSecret(d.token),
	}).Info("starting-discord-bot")

	session, err := d.newSession(d.token)
	if err != nil {
		return fmt.Errorf("failed to create discord session: %w", err)
	}

	inbound := make(chan *discordgo.MessageCreate, constants.InboundBufferSize)
	closed := make(chan struct{})
	defer close(closed)

	removeHandler := session.AddHandler(func(_ *discordgo.Session, m *discordgo.MessageCreate) {
		if m.Author == nil || m.Author.Bot {
			return
		}
		select {
		case inbound <- m:
		case <-closed:
		}
	})

	if err := session.Open(); err != nil {
		removeHandler()
		return fmt.Errorf("failed to open discord connection: %w", err)
	}
	defer func() {
		removeHandler()
		if err := session.Close(); err != nil {
			logger.WithField("error", err).Warn("failed-to-close-discord-session")
		}
		logger.Info("discord-bot-stopped")
	}()

	logger.Info("discord-bot-connected")

	pipeline := NewPipeline(d.router, d.auth, "")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	for {
		select {
		case <-stop:
			logger.Info("discord-bot-received-shutdown-signal")
			return nil
		case m := <-inbound:
			d.handleMessage(ctx, session, pipeline, m)
		}
	}
}

func (d *DiscordBot) handleMessage(ctx context.Context, session DiscordSession, pipeline *Pipeline, m *discordgo.MessageCreate) {
	msg := Message{
		Platform: d.Name(),
		ChatID:   m.ChannelID,
		Text:     m.Content,
	}
	if id, err := strconv.ParseUint(m.Author.ID, 10, 64); err == nil {
		msg.Sender = &Sender{ID: UserID(id), Username: m.Author.Username}
	}

	reply, outcome := pipeline.Process(ctx, msg)
	if outcome != OutcomeResponded || reply == "" {
		return
	}

	content := truncate(reply, constants.MaxDiscordMessageLength)
	if _, err := session.ChannelMessageSend(m.ChannelID, content); err != nil {
		logger.WithFields(logrus.Fields{
			"channel": m.ChannelID,
			"error":   err,
		}).Error("failed-to-send-message-to-discord")
		return
	}
	logger.WithField("channel", m.ChannelID).Debug("message-sent-to-discord")
}
