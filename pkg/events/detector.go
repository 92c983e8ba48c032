package events

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/devicekit/pkg/device"
	"github.com/dmitrymomot/devicekit/pkg/logger"
	"github.com/dmitrymomot/devicekit/pkg/signals"
	"github.com/dmitrymomot/devicekit/pkg/useragent"
)

// Detector drives the event exchange for one session. Detection is only
// active between Connect and Disconnect. Events of one detector are
// delivered in order; sink failures are logged and never returned.
type Detector struct {
	id      string
	session *device.Session
	sinks   []Sink
	logger  *slog.Logger
	now     func() time.Time

	mu          sync.Mutex
	active      bool
	orientation signals.Orientation
}

// Option configures a Detector.
type Option func(*Detector)

// WithSinks adds sinks. Nil sinks are ignored.
func WithSinks(sinks ...Sink) Option {
	return func(d *Detector) {
		for _, s := range sinks {
			if s != nil {
				d.sinks = append(d.sinks, s)
			}
		}
	}
}

// WithLogger sets the logger used to report sink failures.
func WithLogger(l *slog.Logger) Option {
	return func(d *Detector) {
		if l != nil {
			d.logger = l
		}
	}
}

// WithClock overrides the time source for event timestamps.
func WithClock(now func() time.Time) Option {
	return func(d *Detector) {
		if now != nil {
			d.now = now
		}
	}
}

// NewDetector creates an inactive detector for the session identified by id.
func NewDetector(id string, session *device.Session, opts ...Option) *Detector {
	d := &Detector{
		id:          id,
		session:     session,
		logger:      slog.New(slog.DiscardHandler),
		now:         time.Now,
		orientation: signals.OrientationUnknown,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// ID returns the session ID.
func (d *Detector) ID() string { return d.id }

// Session returns the underlying session.
func (d *Detector) Session() *device.Session { return d.session }

// Active reports whether detection is active.
func (d *Detector) Active() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.active
}

// Connect activates detection, emits connectionEstablished and then
// mobileDeviceDetected (mobile or tablet) or desktopDeviceDetected.
// Connecting an active detector only returns the current descriptor.
func (d *Detector) Connect(ctx context.Context) device.Descriptor {
	d.mu.Lock()
	defer d.mu.Unlock()

	info := d.session.DeviceInfo()
	if d.active {
		return info
	}

	d.active = true
	d.orientation = info.Display.Orientation

	d.emit(ctx, Event{Type: ConnectionEstablished})
	detected := DesktopDeviceDetected
	if info.Device.Type == useragent.DeviceTypeMobile || info.Device.Type == useragent.DeviceTypeTablet {
		detected = MobileDeviceDetected
	}
	d.emit(ctx, Event{Type: detected, Descriptor: &info})

	return info
}

// RequestDeviceInfo answers a device-info request: it emits
// deviceInfoRequested and then deviceInfoSent carrying the descriptor.
func (d *Detector) RequestDeviceInfo(ctx context.Context) (device.Descriptor, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.active {
		return device.Descriptor{}, ErrNotConnected
	}

	d.emit(ctx, Event{Type: DeviceInfoRequested})
	info := d.session.DeviceInfo()
	d.emit(ctx, Event{Type: DeviceInfoSent, Descriptor: &info})

	return info, nil
}

// Refresh re-reads the session and emits deviceOrientationChanged when the
// orientation differs from the last one seen.
func (d *Detector) Refresh(ctx context.Context) (device.Descriptor, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.active {
		return device.Descriptor{}, ErrNotConnected
	}

	info := d.session.DeviceInfo()
	if current := info.Display.Orientation; current != d.orientation {
		d.emit(ctx, Event{
			Type:                DeviceOrientationChanged,
			Orientation:         current,
			PreviousOrientation: d.orientation,
		})
		d.orientation = current
	}

	return info, nil
}

// Disconnect emits connectionLost and deactivates detection. Disconnecting
// an inactive detector does nothing.
func (d *Detector) Disconnect(ctx context.Context) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.active {
		return
	}
	d.active = false
	d.emit(ctx, Event{Type: ConnectionLost})
}

// emit stamps e and hands it to every sink. Callers hold d.mu.
func (d *Detector) emit(ctx context.Context, e Event) {
	e.ID = uuid.NewString()
	e.SessionID = d.id
	e.AtEpochMs = d.now().UnixMilli()

	for _, s := range d.sinks {
		if err := s.Publish(ctx, e); err != nil {
			d.logger.WarnContext(ctx, "event sink failed",
				logger.Component("events"),
				logger.SessionID(d.id),
				logger.Event(string(e.Type)),
				logger.Error(err),
			)
		}
	}
}
