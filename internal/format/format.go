// Package format turns router data into chat-friendly text.
//
// All functions are pure and platform agnostic. Output is plain text with
// newlines only, so it renders the same on Telegram, Discord or a terminal.
package format

import (
	"fmt"
	"sort"
	"strings"

	"github.com/keepmind9/wrtbot/internal/router"
	"github.com/keepmind9/wrtbot/pkg/constants"
)

const (
	secondsInMinute = 60
	secondsInHour   = 3600
	secondsInDay    = 86400
)

// Uptime renders seconds as "1d 2h 3m", "2h 3m" or "3m".
func Uptime(seconds uint64) string {
	days := seconds / secondsInDay
	hours := (seconds % secondsInDay) / secondsInHour
	minutes := (seconds % secondsInHour) / secondsInMinute

	switch {
	case days > 0:
		return fmt.Sprintf("%dd %dh %dm", days, hours, minutes)
	case hours > 0:
		return fmt.Sprintf("%dh %dm", hours, minutes)
	default:
		return fmt.Sprintf("%dm", minutes)
	}
}

// Speed renders a bit rate in whole Mbps.
func Speed(bps uint64) string {
	return fmt.Sprintf("%.0f Mbps", float64(bps)/constants.BitsPerMbps)
}

// Error renders a failed query as a user visible line.
func Error(err error) string {
	return fmt.Sprintf("%s: %v", ErrorPrefix, err)
}

// RouterStatus renders the /status block.
func RouterStatus(s router.Status) string {
	header := fmt.Sprintf("[%s]\n%s | %s\n%s",
		s.Board.Hostname,
		s.Board.Release.Distribution,
		s.Board.Release.Version,
		s.Board.Model,
	)

	return fmt.Sprintf("%s\n\nUptime: %s\n%s\nLoad: %s",
		header,
		Uptime(s.System.Uptime),
		memory(s.System.Memory),
		load(s.System.Load),
	)
}

func memory(m router.MemoryInfo) string {
	if m.Total == 0 {
		return "RAM: unknown"
	}
	used := m.Total - min(m.Available, m.Total)
	return fmt.Sprintf("RAM: %d / %d MB (%d%%)",
		used/constants.BytesInMB,
		m.Total/constants.BytesInMB,
		used*100/m.Total,
	)
}

func load(l [3]uint32) string {
	return fmt.Sprintf("%.2f %.2f %.2f",
		float64(l[0])/constants.LoadDivisor,
		float64(l[1])/constants.LoadDivisor,
		float64(l[2])/constants.LoadDivisor,
	)
}

// Wireless renders the /wifi block: one entry per SSID, grouped by radio.
func Wireless(ws router.WirelessStatus) string {
	var b strings.Builder
	b.WriteString(WifiStatus)

	for _, name := range RadioNames(ws) {
		radio := ws[name]
		state := RadioOff
		if radio.Up && !radio.Disabled {
			state = RadioOn
		}
		for _, iface := range radio.Interfaces {
			fmt.Fprintf(&b, "\n[%s] %s (%s)\n    Radio: %s | Channel: %s",
				state, iface.Config.SSID, radio.Config.Band, name, radio.Config.Channel)
		}
	}

	return b.String()
}

// RadioNames returns the radio names in a stable order.
func RadioNames(ws router.WirelessStatus) []string {
	names := make([]string, 0, len(ws))
	for name := range ws {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// InterfaceClients is the station list of one SSID.
type InterfaceClients struct {
	SSID    string
	Band    string
	Clients map[string]router.WifiClient
}

// Clients renders the /clients block. Groups without stations are skipped.
func Clients(groups []InterfaceClients) string {
	var lines []string
	total := 0

	for _, g := range groups {
		count := len(g.Clients)
		if count == 0 {
			continue
		}
		total += count
		lines = append(lines, fmt.Sprintf("\n%s (%s) - %d devices", g.SSID, g.Band, count))

		macs := make([]string, 0, count)
		for mac := range g.Clients {
			macs = append(macs, mac)
		}
		sort.Strings(macs)
		for _, mac := range macs {
			lines = append(lines, ClientInfo(mac, g.Clients[mac]))
		}
	}

	if total == 0 {
		return ClientsHeader + "\n\n" + NoDevices
	}
	return ClientsHeader + fmt.Sprintf("\nTotal: %d", total) + strings.Join(lines, "")
}

// ClientInfo renders one station.
func ClientInfo(mac string, c router.WifiClient) string {
	return fmt.Sprintf("\n  %s\n    %s | %s | %ddBm", mac, Speed(c.Rate.TX), router.ModeOf(c), c.Signal)
}
