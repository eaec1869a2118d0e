package bot

import (
	"context"

	"github.com/keepmind9/wrtbot/internal/logger"
	"github.com/keepmind9/wrtbot/internal/router"
	"github.com/sirupsen/logrus"
)

// Outcome is the final state of one inbound message.
type Outcome int

const (
	// OutcomeRejected: the sender is unknown or not allowed.
	OutcomeRejected Outcome = iota + 1
	// OutcomeIgnored: the text is not a known command.
	OutcomeIgnored
	// OutcomeResponded: a handler produced a reply.
	OutcomeResponded
)

func (o Outcome) String() string {
	switch o {
	case OutcomeRejected:
		return "rejected"
	case OutcomeIgnored:
		return "ignored"
	case OutcomeResponded:
		return "responded"
	default:
		return "unknown"
	}
}

// delivery carries one message through the filters.
type delivery struct {
	msg     Message
	command Command
}

// filter is one pipeline stage. A filter returning false stops the message
// with the filter's outcome.
type filter struct {
	name    string
	outcome Outcome
	admit   func(p *Pipeline, d *delivery) bool
}

// filters run top to bottom; the first rejection wins.
var filters = []filter{
	{name: "log", admit: logMessage},
	{name: "authorize", outcome: OutcomeRejected, admit: authorize},
	{name: "parse", outcome: OutcomeIgnored, admit: parseCommand},
}

// Pipeline turns inbound messages into replies. It holds no mutable state,
// so one Pipeline may serve a bot for its whole lifetime.
type Pipeline struct {
	router  router.Info
	auth    AuthFilter
	botName string
}

// NewPipeline creates a pipeline. botName is the bot's own username, used
// to check "/cmd@name" mentions; leave it empty to accept any mention.
func NewPipeline(r router.Info, auth AuthFilter, botName string) *Pipeline {
	return &Pipeline{router: r, auth: auth, botName: botName}
}

// Process runs msg through the filters and, when all pass, the command
// handler. The reply is only meaningful for OutcomeResponded.
func (p *Pipeline) Process(ctx context.Context, msg Message) (string, Outcome) {
	d := &delivery{msg: msg}

	for _, f := range filters {
		if !f.admit(p, d) {
			logger.WithFields(logrus.Fields{
				"platform": msg.Platform,
				"chat_id":  msg.ChatID,
				"stage":    f.name,
				"outcome":  f.outcome.String(),
			}).Debug("message-dropped")
			return "", f.outcome
		}
	}

	logger.WithFields(logrus.Fields{
		"platform": msg.Platform,
		"chat_id":  msg.ChatID,
		"command":  d.command.String(),
	}).Info("dispatching-command")

	return Handle(ctx, d.command, p.router), OutcomeResponded
}

func logMessage(_ *Pipeline, d *delivery) bool {
	fields := logrus.Fields{
		"platform": d.msg.Platform,
		"chat_id":  d.msg.ChatID,
		"username": "unknown",
		"text":     d.msg.Text,
	}
	if d.msg.Text == "" {
		fields["text"] = "[no text]"
	}
	if s := d.msg.Sender; s != nil {
		fields["user_id"] = uint64(s.ID)
		if s.Username != "" {
			fields["username"] = s.Username
		}
	}
	logger.WithFields(fields).Info("message-received")
	return true
}

func authorize(p *Pipeline, d *delivery) bool {
	if d.msg.Sender == nil || p.auth == nil {
		return false
	}
	return p.auth.IsAllowed(d.msg.Sender.ID)
}

func parseCommand(p *Pipeline, d *delivery) bool {
	cmd, ok := ParseCommand(d.msg.Text, p.botName)
	if !ok {
		return false
	}
	d.command = cmd
	return true
}
