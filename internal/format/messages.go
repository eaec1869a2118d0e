package format

// Fixed response texts shared by every platform.
const (
	Pong          = "pong"
	HelpHeader    = "Available commands:"
	WifiStatus    = "WiFi Status"
	ClientsHeader = "Connected devices"
	NoDevices     = "No connected devices"
	ErrorPrefix   = "Error"

	RadioOn  = "ON"
	RadioOff = "OFF"
)
