package core

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/keepmind9/wrtbot/internal/logger"
)

// Supervisor runs bots until shutdown yields a value. *bot.Manager
// implements it.
type Supervisor interface {
	RunAll(shutdown <-chan struct{})
}

// SignalWaiter delivers process termination requests.
type SignalWaiter interface {
	// Signals returns a channel that receives a value per termination request.
	Signals() <-chan os.Signal
	// Stop releases the underlying signal subscription.
	Stop()
}

// OSSignals listens for SIGINT and SIGTERM.
type OSSignals struct {
	ch chan os.Signal
}

// NewOSSignals subscribes to SIGINT and SIGTERM.
func NewOSSignals() *OSSignals {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	return &OSSignals{ch: ch}
}

func (s *OSSignals) Signals() <-chan os.Signal {
	return s.ch
}

func (s *OSSignals) Stop() {
	signal.Stop(s.ch)
}

// App runs the bot supervisor until the process is asked to stop.
type App struct {
	supervisor Supervisor
	signals    SignalWaiter
}

// NewApp creates an application from a supervisor and a signal source.
func NewApp(supervisor Supervisor, signals SignalWaiter) *App {
	return &App{supervisor: supervisor, signals: signals}
}

// Run blocks until a termination signal arrives or the supervisor returns by
// itself, then shuts the supervisor down and waits for it.
func (a *App) Run() {
	logger.Info("application-started")
	defer a.signals.Stop()

	shutdown := make(chan struct{}, 1)
	finished := make(chan struct{})
	go func() {
		defer close(finished)
		a.supervisor.RunAll(shutdown)
	}()

	select {
	case sig := <-a.signals.Signals():
		logger.WithField("signal", sig.String()).Info("shutdown-signal-received")
	case <-finished:
		logger.Info("bot-manager-finished")
	}

	// The buffer holds the value even when the supervisor no longer reads it.
	shutdown <- struct{}{}
	<-finished

	logger.Info("shutdown-complete")
}
