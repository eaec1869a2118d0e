package router

// WifiMode is the highest 802.11 generation a client negotiated.
type WifiMode int

const (
	WifiModeLegacy WifiMode = iota
	WifiMode4
	WifiMode5
	WifiMode6
)

// ModeOf derives the mode from the client's capability flags, newest first.
func ModeOf(c WifiClient) WifiMode {
	switch {
	case c.HE:
		return WifiMode6
	case c.VHT:
		return WifiMode5
	case c.HT:
		return WifiMode4
	default:
		return WifiModeLegacy
	}
}

func (m WifiMode) String() string {
	switch m {
	case WifiMode6:
		return "WiFi 6"
	case WifiMode5:
		return "WiFi 5"
	case WifiMode4:
		return "WiFi 4"
	default:
		return "Legacy"
	}
}
