package events

import "errors"

var (
	// ErrNotConnected is returned when detection is requested before Connect
	// or after Disconnect.
	ErrNotConnected = errors.New("events: detector is not connected")

	// ErrEncodeEvent is returned when an event cannot be serialized.
	ErrEncodeEvent = errors.New("events: failed to encode event")

	// ErrPublish is returned when a sink fails to deliver an event.
	ErrPublish = errors.New("events: failed to publish event")
)
