package bot

import (
	"strings"
)

// Command is a recognized chat command.
type Command int

const (
	CommandPing Command = iota + 1
	CommandStatus
	CommandWifi
	CommandClients
	CommandHelp
)

type commandEntry struct {
	command     Command
	name        string
	description string
}

// commandTable is the closed command set in help order.
var commandTable = []commandEntry{
	{CommandPing, "ping", "Check connection"},
	{CommandStatus, "status", "Router status"},
	{CommandWifi, "wifi", "WiFi status"},
	{CommandClients, "clients", "Connected devices"},
	{CommandHelp, "help", "Show commands"},
}

func (c Command) String() string {
	for _, entry := range commandTable {
		if entry.command == c {
			return entry.name
		}
	}
	return "unknown"
}

// ParseCommand maps message text such as "/status" or "/Status@my_bot" to
// a Command. Matching is case-insensitive. Arguments after the command are
// not accepted. When botName is not empty, an @mention must name this bot.
func ParseCommand(text, botName string) (Command, bool) {
	fields := strings.Fields(text)
	if len(fields) != 1 {
		return 0, false
	}

	token := fields[0]
	if !strings.HasPrefix(token, "/") {
		return 0, false
	}

	name := token[1:]
	if i := strings.Index(name, "@"); i >= 0 {
		mention := name[i+1:]
		name = name[:i]
		if botName != "" && !strings.EqualFold(mention, botName) {
			return 0, false
		}
	}

	name = strings.ToLower(name)
	for _, entry := range commandTable {
		if entry.name == name {
			return entry.command, true
		}
	}
	return 0, false
}
