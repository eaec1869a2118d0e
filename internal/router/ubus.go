package router

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os/exec"
	"strings"
	"time"

	"github.com/keepmind9/wrtbot/internal/logger"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const ubusCmd = "ubus"

// Ubus queries the router through the ubus CLI.
type Ubus struct {
	path    string
	timeout time.Duration
}

// NewUbus creates a client running the binary at path (looked up in PATH
// when it has no slash). A zero timeout leaves calls unbounded.
func NewUbus(path string, timeout time.Duration) *Ubus {
	if path == "" {
		path = ubusCmd
	}
	return &Ubus{path: path, timeout: timeout}
}

func (u *Ubus) SystemInfo(ctx context.Context) (SystemInfo, error) {
	return call[SystemInfo](ctx, u, "system", "info")
}

func (u *Ubus) BoardInfo(ctx context.Context) (BoardInfo, error) {
	return call[BoardInfo](ctx, u, "system", "board")
}

// Status fetches system and board information concurrently.
func (u *Ubus) Status(ctx context.Context) (Status, error) {
	var status Status
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		info, err := u.SystemInfo(gctx)
		status.System = info
		return err
	})
	g.Go(func() error {
		board, err := u.BoardInfo(gctx)
		status.Board = board
		return err
	})
	if err := g.Wait(); err != nil {
		return Status{}, err
	}
	return status, nil
}

func (u *Ubus) WirelessStatus(ctx context.Context) (WirelessStatus, error) {
	return call[WirelessStatus](ctx, u, "network.wireless", "status")
}

func (u *Ubus) WifiClients(ctx context.Context, iface string) (HostapdClients, error) {
	return call[HostapdClients](ctx, u, "hostapd."+iface, "get_clients")
}

// call runs `ubus call <service> <method>` and decodes its JSON output.
func call[T any](ctx context.Context, u *Ubus, service, method string) (T, error) {
	var zero T

	if u.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, u.timeout)
		defer cancel()
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, u.path, "call", service, method)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = time.Second

	start := time.Now()
	err := cmd.Run()
	logger.WithFields(logrus.Fields{
		"service":  service,
		"method":   method,
		"duration": time.Since(start),
	}).Debug("ubus-call-finished")

	if err != nil {
		var exitErr *exec.ExitError
		if ctx.Err() == nil && errors.As(err, &exitErr) {
			return zero, &RouterError{
				Kind:   ErrNonZeroExit,
				Cmd:    ubusCmd,
				Code:   exitErr.ExitCode(),
				Stderr: strings.TrimSpace(stderr.String()),
			}
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = ctxErr
		}
		return zero, &RouterError{Kind: ErrSpawn, Cmd: ubusCmd, Err: err}
	}

	var out T
	if err := json.Unmarshal(stdout.Bytes(), &out); err != nil {
		return zero, &RouterError{Kind: ErrJSON, Cmd: ubusCmd, Err: err}
	}
	return out, nil
}
