package router

// SystemInfo is the reply of `ubus call system info`.
type SystemInfo struct {
	LocalTime uint64      `json:"localtime"`
	Uptime    uint64      `json:"uptime"`
	Load      [3]uint32   `json:"load"`
	Memory    MemoryInfo  `json:"memory"`
	Root      StorageInfo `json:"root"`
	Tmp       StorageInfo `json:"tmp"`
	Swap      SwapInfo    `json:"swap"`
}

// MemoryInfo holds memory figures in bytes.
type MemoryInfo struct {
	Total     uint64 `json:"total"`
	Free      uint64 `json:"free"`
	Shared    uint64 `json:"shared"`
	Buffered  uint64 `json:"buffered"`
	Available uint64 `json:"available"`
	Cached    uint64 `json:"cached"`
}

// StorageInfo holds filesystem figures in kilobytes.
type StorageInfo struct {
	Total uint64 `json:"total"`
	Free  uint64 `json:"free"`
	Used  uint64 `json:"used"`
	Avail uint64 `json:"avail"`
}

type SwapInfo struct {
	Total uint64 `json:"total"`
	Free  uint64 `json:"free"`
}

// BoardInfo is the reply of `ubus call system board`.
type BoardInfo struct {
	Kernel     string      `json:"kernel"`
	Hostname   string      `json:"hostname"`
	System     string      `json:"system"`
	Model      string      `json:"model"`
	BoardName  string      `json:"board_name"`
	RootfsType string      `json:"rootfs_type"`
	Release    ReleaseInfo `json:"release"`
}

type ReleaseInfo struct {
	Distribution string `json:"distribution"`
	Version      string `json:"version"`
	Revision     string `json:"revision"`
	Target       string `json:"target"`
	Description  string `json:"description"`
	BuildDate    string `json:"builddate"`
}

// Status combines system and board information.
type Status struct {
	System SystemInfo
	Board  BoardInfo
}

// WirelessStatus is the reply of `ubus call network.wireless status`,
// keyed by radio name (radio0, radio1, ...).
type WirelessStatus map[string]RadioInfo

type RadioInfo struct {
	Up         bool            `json:"up"`
	Disabled   bool            `json:"disabled"`
	Config     RadioConfig     `json:"config"`
	Interfaces []WifiInterface `json:"interfaces"`
}

type RadioConfig struct {
	Band    string `json:"band"`
	Channel string `json:"channel"`
	HTMode  string `json:"htmode"`
}

type WifiInterface struct {
	Section  string              `json:"section"`
	IfName   string              `json:"ifname"`
	Config   WifiInterfaceConfig `json:"config"`
	Stations []string            `json:"stations"`
}

type WifiInterfaceConfig struct {
	SSID       string `json:"ssid"`
	Encryption string `json:"encryption"`
}

// HostapdClients is the reply of `ubus call hostapd.<iface> get_clients`,
// clients keyed by MAC address.
type HostapdClients struct {
	Freq    uint32                `json:"freq"`
	Clients map[string]WifiClient `json:"clients"`
}

type WifiClient struct {
	Auth       bool          `json:"auth"`
	Assoc      bool          `json:"assoc"`
	Authorized bool          `json:"authorized"`
	Signal     int32         `json:"signal"`
	HT         bool          `json:"ht"`
	VHT        bool          `json:"vht"`
	HE         bool          `json:"he"`
	Bytes      ClientTraffic `json:"bytes"`
	Rate       ClientRate    `json:"rate"`
}

type ClientTraffic struct {
	RX uint64 `json:"rx"`
	TX uint64 `json:"tx"`
}

// ClientRate holds link rates in bits per second.
type ClientRate struct {
	RX uint64 `json:"rx"`
	TX uint64 `json:"tx"`
}
