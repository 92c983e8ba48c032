package fingerprint

import "errors"

var (
	// ErrNoCanvas is returned by Probe when the host offers no offscreen drawable.
	ErrNoCanvas = errors.New("fingerprint: no offscreen drawable")

	// ErrProbe wraps failures to allocate, draw on or serialize the probe surface.
	ErrProbe = errors.New("fingerprint: rendering probe failed")
)
