package events

import (
	"github.com/dmitrymomot/devicekit/pkg/device"
	"github.com/dmitrymomot/devicekit/pkg/signals"
)

// Type names an event exchanged with the remote host.
type Type string

const (
	DeviceInfoRequested      Type = "deviceInfoRequested"
	DeviceInfoSent           Type = "deviceInfoSent"
	MobileDeviceDetected     Type = "mobileDeviceDetected"
	DesktopDeviceDetected    Type = "desktopDeviceDetected"
	DeviceOrientationChanged Type = "deviceOrientationChanged"
	ConnectionEstablished    Type = "connectionEstablished"
	ConnectionLost           Type = "connectionLost"
)

// Event is one notification about a client session.
// Descriptor is set for deviceInfoSent and the detection events;
// the orientation fields only for deviceOrientationChanged.
type Event struct {
	ID                  string              `json:"id"`
	Type                Type                `json:"type"`
	SessionID           string              `json:"sessionId"`
	AtEpochMs           int64               `json:"atEpochMs"`
	Descriptor          *device.Descriptor  `json:"descriptor,omitempty"`
	Orientation         signals.Orientation `json:"orientation,omitempty"`
	PreviousOrientation signals.Orientation `json:"previousOrientation,omitempty"`
}
