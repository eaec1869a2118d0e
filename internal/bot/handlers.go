package bot

import (
	"context"
	"fmt"
	"strings"

	"github.com/keepmind9/wrtbot/internal/format"
	"github.com/keepmind9/wrtbot/internal/logger"
	"github.com/keepmind9/wrtbot/internal/router"
	"github.com/sirupsen/logrus"
)

// Handle runs the handler for cmd. Router failures are rendered as an error
// line instead of being returned. A Command outside the known set gets an
// empty reply.
func Handle(ctx context.Context, cmd Command, r router.Info) string {
	switch cmd {
	case CommandPing:
		return PingResponse()
	case CommandHelp:
		return HelpResponse()
	case CommandStatus:
		return StatusResponse(ctx, r)
	case CommandWifi:
		return WifiResponse(ctx, r)
	case CommandClients:
		return ClientsResponse(ctx, r)
	default:
		logger.WithField("command", int(cmd)).Warn("unknown-command")
		return ""
	}
}

func PingResponse() string {
	return format.Pong
}

func HelpResponse() string {
	lines := make([]string, 0, len(commandTable)+1)
	lines = append(lines, format.HelpHeader)
	for _, entry := range commandTable {
		lines = append(lines, fmt.Sprintf("/%s — %s", entry.name, entry.description))
	}
	return strings.Join(lines, "\n")
}

func StatusResponse(ctx context.Context, r router.Info) string {
	status, err := r.Status(ctx)
	if err != nil {
		logQueryFailure("status", err)
		return format.Error(err)
	}
	return format.RouterStatus(status)
}

func WifiResponse(ctx context.Context, r router.Info) string {
	wireless, err := r.WirelessStatus(ctx)
	if err != nil {
		logQueryFailure("wifi", err)
		return format.Error(err)
	}
	return format.Wireless(wireless)
}

// ClientsResponse lists stations per SSID. Interfaces whose client query
// fails are left out of the report.
func ClientsResponse(ctx context.Context, r router.Info) string {
	wireless, err := r.WirelessStatus(ctx)
	if err != nil {
		logQueryFailure("clients", err)
		return format.Error(err)
	}

	var groups []format.InterfaceClients
	for _, name := range format.RadioNames(wireless) {
		radio := wireless[name]
		for _, iface := range radio.Interfaces {
			clients, err := r.WifiClients(ctx, iface.IfName)
			if err != nil {
				logger.WithFields(logrus.Fields{
					"iface": iface.IfName,
					"error": err,
				}).Warn("failed-to-query-wifi-clients")
				continue
			}
			groups = append(groups, format.InterfaceClients{
				SSID:    iface.Config.SSID,
				Band:    radio.Config.Band,
				Clients: clients.Clients,
			})
		}
	}

	return format.Clients(groups)
}

func logQueryFailure(command string, err error) {
	logger.WithFields(logrus.Fields{
		"command": command,
		"error":   err,
	}).Warn("router-query-failed")
}
