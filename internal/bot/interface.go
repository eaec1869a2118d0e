// Package bot runs chat bots that answer router queries.
//
// A Bot is one connection to one chat platform. The Manager starts every
// registered Bot in its own goroutine, and stops and joins all of them when
// the process shuts down. Inbound messages go through a Pipeline:
//
//	log -> authorize -> parse command -> handler -> reply
//
// Unauthorized senders and unknown commands are dropped without a reply.
//
// # Supported Platforms
//
//   - Telegram: long polling
//   - Discord: gateway WebSocket
//
// # Shared State
//
// Bots share the router.Info and AuthFilter values they were built with.
// Both are read-only after construction, which is why no locking is done
// around them. Anything mutable added later needs its own synchronization.
package bot

// Bot is a long-running connection to a chat platform.
type Bot interface {
	// Name identifies the bot in logs.
	Name() string

	// Run services inbound messages until a value arrives on stop or the
	// platform transport ends by itself. Both are a normal return. Run
	// releases its transport before returning. A non-nil error means the
	// bot could not start or its transport failed.
	Run(stop <-chan struct{}) error
}

// UserID identifies a chat platform account.
type UserID uint64

// Sender is the account that posted a message.
type Sender struct {
	ID       UserID
	Username string
}

// Message is an inbound chat message in platform neutral form.
type Message struct {
	Platform string
	ChatID   string
	// Sender is nil when the platform did not identify the author.
	Sender *Sender
	Text   string
}
