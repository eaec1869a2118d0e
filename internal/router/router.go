// Package router provides read access to an OpenWrt router's state.
//
// The Info interface is what the bot handlers consume. Ubus implements it by
// shelling out to the `ubus` command line tool, which is available on every
// OpenWrt install and needs no extra daemon.
//
// Implementations must be safe for concurrent use: several bots query the
// same Info value from their own goroutines.
package router

import "context"

// Info is the router query capability.
type Info interface {
	SystemInfo(ctx context.Context) (SystemInfo, error)
	BoardInfo(ctx context.Context) (BoardInfo, error)
	// Status returns system and board information together.
	Status(ctx context.Context) (Status, error)
	WirelessStatus(ctx context.Context) (WirelessStatus, error)
	// WifiClients lists the stations associated with one wireless interface.
	WifiClients(ctx context.Context, iface string) (HostapdClients, error)
}
