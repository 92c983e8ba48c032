package useragent

// Unknown is reported for any name, version, brand or model that no rule
// could extract.
const Unknown = "Unknown"

// Operating system names
const (
	OSAndroid  = "Android"
	OSiOS      = "iOS"
	OSiPadOS   = "iPadOS"
	OSMacOS    = "macOS"
	OSWindows  = "Windows"
	OSLinux    = "Linux"
	OSChromeOS = "Chrome OS"
	OSUnknown  = Unknown
)

// Browser names
const (
	BrowserChrome  = "Chrome"
	BrowserFirefox = "Firefox"
	BrowserSafari  = "Safari"
	BrowserEdge    = "Edge"
	BrowserOpera   = "Opera"
	BrowserSamsung = "Samsung Internet"
	BrowserUnknown = Unknown
)

// DeviceType is the form factor of the client device.
type DeviceType string

const (
	// DeviceTypeMobile identifies smartphones and feature phones
	DeviceTypeMobile DeviceType = "mobile"

	// DeviceTypeTablet identifies tablets, including iPads in desktop mode
	DeviceTypeTablet DeviceType = "tablet"

	// DeviceTypeDesktop identifies desktops and laptops; it is the default
	DeviceTypeDesktop DeviceType = "desktop"

	// DeviceTypeTV identifies smart TVs and streaming sticks
	DeviceTypeTV DeviceType = "tv"

	// DeviceTypeWearable identifies watches and other wearables
	DeviceTypeWearable DeviceType = "wearable"

	// DeviceTypeConsole identifies gaming consoles
	DeviceTypeConsole DeviceType = "console"

	// DeviceTypeUnknown is part of the vocabulary for consumers; the device
	// rules never produce it because desktop is the terminal default
	DeviceTypeUnknown DeviceType = "unknown"
)
