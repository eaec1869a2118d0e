package core

import (
	"os"
	"sync/atomic"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSignals struct {
	ch      chan os.Signal
	stopped atomic.Bool
}

func newFakeSignals() *fakeSignals {
	return &fakeSignals{ch: make(chan os.Signal, 1)}
}

func (f *fakeSignals) Signals() <-chan os.Signal { return f.ch }
func (f *fakeSignals) Stop() { f.stopped.Store(true) }

// fakeSupervisor either waits for shutdown or returns at once.
type fakeSupervisor struct {
	returnEarly bool
	started     chan struct{}
	gotShutdown atomic.Bool
}

func (f *fakeSupervisor) RunAll(shutdown <-chan struct{}) {
	close(f.started)
	if f.returnEarly {
		return
	}
	<-shutdown
	f.gotShutdown.Store(true)
}

func runApp(app *App) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		app.Run()
		close(done)
	}()
	return done
}

func TestApp_SignalStopsSupervisor(t *testing.T) {
	signals := newFakeSignals()
	supervisor := &fakeSupervisor{started: make(chan struct{})}

	done := runApp(NewApp(supervisor, signals))
	<-supervisor.started

	select {
	case <-done:
		t.Fatal("app returned before a signal")
	case <-time.After(50 * time.Millisecond):
	}

	signals.ch <- syscall.SIGTERM

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("app did not stop")
	}
	assert.True(t, supervisor.gotShutdown.Load())
	assert.True(t, signals.stopped.Load())
}

func TestApp_ReturnsWhenSupervisorFinishes(t *testing.T) {
	signals := newFakeSignals()
	supervisor := &fakeSupervisor{started: make(chan struct{}), returnEarly: true}

	done := runApp(NewApp(supervisor, signals))

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("app did not return after the supervisor finished")
	}
	assert.False(t, supervisor.gotShutdown.Load())
	assert.True(t, signals.stopped.Load())
}

func TestApp_WithManagerAndNoBots(t *testing.T) {
	config := &Config{}
	manager := NewManagerFromConfig(config, NewRouter(config))
	require.Equal(t, 0, manager.Len())

	done := runApp(NewApp(manager, newFakeSignals()))

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("app did not return without bots")
	}
}

func TestOSSignals(t *testing.T) {
	s := NewOSSignals()
	defer s.Stop()

	require.NoError(t, syscall.Kill(os.Getpid(), syscall.SIGINT))

	select {
	case sig := <-s.Signals():
		assert.Equal(t, syscall.SIGINT, sig)
	case <-time.After(2 * time.Second):
		t.Fatal("signal not delivered")
	}
}
