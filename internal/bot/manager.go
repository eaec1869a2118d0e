package bot

import (
	"fmt"
	"sync"

	"github.com/keepmind9/wrtbot/internal/logger"
	"github.com/sirupsen/logrus"
)

// Manager supervises a set of bots: it starts each in its own goroutine and
// stops and joins all of them on shutdown.
type Manager struct {
	mu      sync.Mutex
	bots    []Bot
	started bool
}

// botHandle pairs a running bot's stop channel with its completion channel.
// Both are created together when the bot is spawned.
type botHandle struct {
	name string
	stop chan<- struct{}
	done <-chan error
}

// NewManager creates an empty manager.
func NewManager() *Manager {
	return &Manager{}
}

// Add registers a bot. Bots added after RunAll has been called are ignored.
func (m *Manager) Add(b Bot) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.started {
		logger.WithField("bot", b.Name()).Warn("bot-added-after-start-ignored")
		return
	}
	m.bots = append(m.bots, b)
}

// Len returns the number of registered bots.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.bots)
}

// RunAll starts every registered bot and blocks until shutdown yields a
// value or is closed. It then asks each bot to stop and waits for all of
// them, so no bot goroutine outlives the call. Bot errors and panics are
// logged and do not affect the other bots.
//
// With no bots registered RunAll returns at once without reading shutdown.
// A manager runs once; later calls return immediately.
func (m *Manager) RunAll(shutdown <-chan struct{}) {
	m.mu.Lock()
	if m.started {
		m.mu.Unlock()
		logger.Warn("bot-manager-already-started")
		return
	}
	m.started = true
	bots := m.bots
	m.bots = nil
	m.mu.Unlock()

	if len(bots) == 0 {
		logger.Warn("no-bots-configured")
		return
	}

	logger.WithField("count", len(bots)).Info("starting-bots")

	handles := make([]botHandle, 0, len(bots))
	for _, b := range bots {
		handles = append(handles, spawnBot(b))
	}

	<-shutdown
	logger.Info("shutting-down-all-bots")

	failed := stopAllBots(handles)

	logger.WithFields(logrus.Fields{
		"count":  len(handles),
		"failed": failed,
	}).Info("all-bots-stopped")
}

func spawnBot(b Bot) botHandle {
	stop := make(chan struct{}, 1)
	done := make(chan error, 1)
	name := b.Name()

	go func() {
		var err error
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("bot %s panicked: %v", name, r)
			}
			if err != nil {
				logger.WithFields(logrus.Fields{
					"bot":   name,
					"error": err,
				}).Error("bot-exited-with-error")
			} else {
				logger.WithField("bot", name).Info("bot-exited")
			}
			done <- err
		}()

		logger.WithField("bot", name).Info("bot-starting")
		err = b.Run(stop)
	}()

	return botHandle{name: name, stop: stop, done: done}
}

// stopAllBots signals every bot, then joins every bot. It returns how many
// bots ended with an error.
func stopAllBots(handles []botHandle) int {
	for _, h := range handles {
		select {
		case h.stop <- struct{}{}:
		default:
			logger.WithField("bot", h.name).Debug("bot-stop-signal-not-delivered")
		}
	}

	failed := 0
	for _, h := range handles {
		if err := <-h.done; err != nil {
			failed++
		}
	}
	return failed
}
