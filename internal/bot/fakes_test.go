package bot

import (
	"context"
	"sync"

	"github.com/keepmind9/wrtbot/internal/router"
)

// fakeRouter is an in-memory router.Info that counts calls.
type fakeRouter struct {
	mu sync.Mutex

	status      router.Status
	statusErr   error
	wireless    router.WirelessStatus
	wirelessErr error
	clients     map[string]router.HostapdClients
	clientsErr  map[string]error

	calls map[string]int
}

func newFakeRouter() *fakeRouter {
	return &fakeRouter{calls: make(map[string]int)}
}

func (f *fakeRouter) record(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[name]++
}

func (f *fakeRouter) callCount(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func (f *fakeRouter) totalCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	total := 0
	for _, n := range f.calls {
		total += n
	}
	return total
}

func (f *fakeRouter) SystemInfo(ctx context.Context) (router.SystemInfo, error) {
	f.record("system")
	return f.status.System, f.statusErr
}

func (f *fakeRouter) BoardInfo(ctx context.Context) (router.BoardInfo, error) {
	f.record("board")
	return f.status.Board, f.statusErr
}

func (f *fakeRouter) Status(ctx context.Context) (router.Status, error) {
	f.record("status")
	return f.status, f.statusErr
}

func (f *fakeRouter) WirelessStatus(ctx context.Context) (router.WirelessStatus, error) {
	f.record("wireless")
	return f.wireless, f.wirelessErr
}

func (f *fakeRouter) WifiClients(ctx context.Context, iface string) (router.HostapdClients, error) {
	f.record("clients:" + iface)
	if err := f.clientsErr[iface]; err != nil {
		return router.HostapdClients{}, err
	}
	return f.clients[iface], nil
}

// sampleRouter returns a router with one radio, two SSIDs and one station.
func sampleRouter() *fakeRouter {
	f := newFakeRouter()
	f.status = router.Status{
		System: router.SystemInfo{
			Uptime: 2*86400 + 5*3600 + 7*60,
			Load:   [3]uint32{5, 10, 15},
			Memory: router.MemoryInfo{Total: 512 * 1024 * 1024, Available: 384 * 1024 * 1024},
		},
		Board: router.BoardInfo{
			Hostname: "edge-gw",
			Model:    "GL.iNet GL-MT3000",
			Release:  router.ReleaseInfo{Distribution: "OpenWrt", Version: "23.05.3"},
		},
	}
	f.wireless = router.WirelessStatus{
		"radio0": {
			Up:     true,
			Config: router.RadioConfig{Band: "2g", Channel: "1"},
			Interfaces: []router.WifiInterface{
				{IfName: "phy0-ap0", Config: router.WifiInterfaceConfig{SSID: "home"}},
				{IfName: "phy0-ap1", Config: router.WifiInterfaceConfig{SSID: "guest"}},
			},
		},
	}
	f.clients = map[string]router.HostapdClients{
		"phy0-ap0": {Clients: map[string]router.WifiClient{
			"11:22:33:44:55:66": {Signal: -48, VHT: true, Rate: router.ClientRate{TX: 866_700_000}},
		}},
		"phy0-ap1": {Clients: map[string]router.WifiClient{}},
	}
	return f
}

// staticAuth allows exactly the listed ids.
func staticAuth(ids ...uint64) AuthFilter {
	return NewWhitelist(ids)
}
