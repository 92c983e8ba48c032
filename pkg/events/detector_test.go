package events_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/devicekit/pkg/device"
	"github.com/dmitrymomot/devicekit/pkg/events"
	"github.com/dmitrymomot/devicekit/pkg/signals"
)

const (
	uaPhone   = "Mozilla/5.0 (Linux; Android 11; SM-G991B) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.6099.144 Mobile Safari/537.36"
	uaTablet  = "Mozilla/5.0 (Linux; Android 13; SM-X710) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	uaDesktop = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

var fixedNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

// recorder is a Sink that keeps everything it receives.
type recorder struct {
	mu     sync.Mutex
	events []events.Event
}

func (r *recorder) Publish(_ context.Context, e events.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return nil
}

func (r *recorder) types() []events.Type {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]events.Type, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Type)
	}
	return out
}

func (r *recorder) last() events.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.events[len(r.events)-1]
}

func newDetector(t *testing.T, src signals.Source, opts ...events.Option) (*events.Detector, *recorder) {
	t.Helper()
	rec := &recorder{}
	sess := device.NewSession(src, device.WithClock(func() time.Time { return fixedNow }))
	opts = append([]events.Option{events.WithSinks(rec), events.WithClock(func() time.Time { return fixedNow })}, opts...)
	return events.NewDetector("session-1", sess, opts...), rec
}

func environment(ua string, w, h int) signals.Environment {
	return signals.Environment{
		UserAgent:      signals.Some(ua),
		ViewportWidth:  signals.Some(w),
		ViewportHeight: signals.Some(h),
	}
}

func TestDetectorConnect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		ua       string
		expected events.Type
	}{
		{"phone", uaPhone, events.MobileDeviceDetected},
		{"tablet counts as mobile", uaTablet, events.MobileDeviceDetected},
		{"desktop", uaDesktop, events.DesktopDeviceDetected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			det, rec := newDetector(t, environment(tt.ua, 400, 800))

			info := det.Connect(context.Background())

			assert.True(t, det.Active())
			assert.Equal(t, []events.Type{events.ConnectionEstablished, tt.expected}, rec.types())

			detected := rec.last()
			require.NotNil(t, detected.Descriptor)
			assert.Equal(t, info, *detected.Descriptor)
			assert.Equal(t, "session-1", detected.SessionID)
			assert.Equal(t, fixedNow.UnixMilli(), detected.AtEpochMs)
			assert.NotEmpty(t, detected.ID)
		})
	}

	t.Run("second connect emits nothing", func(t *testing.T) {
		t.Parallel()
		det, rec := newDetector(t, environment(uaPhone, 400, 800))

		det.Connect(context.Background())
		det.Connect(context.Background())

		assert.Len(t, rec.types(), 2)
	})
}

func TestDetectorRequestDeviceInfo(t *testing.T) {
	t.Parallel()

	t.Run("not connected", func(t *testing.T) {
		t.Parallel()
		det, rec := newDetector(t, environment(uaPhone, 400, 800))

		_, err := det.RequestDeviceInfo(context.Background())
		assert.ErrorIs(t, err, events.ErrNotConnected)
		assert.Empty(t, rec.types())
	})

	t.Run("request then response", func(t *testing.T) {
		t.Parallel()
		det, rec := newDetector(t, environment(uaPhone, 400, 800))
		det.Connect(context.Background())

		info, err := det.RequestDeviceInfo(context.Background())
		require.NoError(t, err)

		assert.Equal(t, []events.Type{
			events.ConnectionEstablished,
			events.MobileDeviceDetected,
			events.DeviceInfoRequested,
			events.DeviceInfoSent,
		}, rec.types())

		sent := rec.last()
		require.NotNil(t, sent.Descriptor)
		assert.Equal(t, info, *sent.Descriptor)
		assert.Equal(t, det.Session().Fingerprint(), info.Fingerprint)
	})

	t.Run("after disconnect", func(t *testing.T) {
		t.Parallel()
		det, rec := newDetector(t, environment(uaPhone, 400, 800))
		det.Connect(context.Background())
		det.Disconnect(context.Background())

		_, err := det.RequestDeviceInfo(context.Background())
		assert.ErrorIs(t, err, events.ErrNotConnected)
		assert.False(t, det.Active())
		assert.Equal(t, events.ConnectionLost, rec.last().Type)
	})
}

func TestDetectorRefresh(t *testing.T) {
	t.Parallel()

	t.Run("orientation change", func(t *testing.T) {
		t.Parallel()
		live := signals.NewLive(environment(uaPhone, 400, 800))
		det, rec := newDetector(t, live)
		det.Connect(context.Background())

		_, err := det.Refresh(context.Background())
		require.NoError(t, err)
		assert.Len(t, rec.types(), 2, "unchanged orientation emits nothing")

		live.Update(func(env *signals.Environment) {
			env.ViewportWidth = signals.Some(800)
			env.ViewportHeight = signals.Some(400)
		})
		info, err := det.Refresh(context.Background())
		require.NoError(t, err)

		assert.Equal(t, signals.OrientationLandscape, info.Display.Orientation)
		changed := rec.last()
		assert.Equal(t, events.DeviceOrientationChanged, changed.Type)
		assert.Equal(t, signals.OrientationLandscape, changed.Orientation)
		assert.Equal(t, signals.OrientationPortrait, changed.PreviousOrientation)

		_, err = det.Refresh(context.Background())
		require.NoError(t, err)
		assert.Len(t, rec.types(), 3)
	})

	t.Run("not connected", func(t *testing.T) {
		t.Parallel()
		det, _ := newDetector(t, environment(uaPhone, 400, 800))
		_, err := det.Refresh(context.Background())
		assert.ErrorIs(t, err, events.ErrNotConnected)
	})
}

func TestDetectorDisconnect(t *testing.T) {
	t.Parallel()

	det, rec := newDetector(t, environment(uaDesktop, 1920, 1080))
	det.Disconnect(context.Background())
	assert.Empty(t, rec.types(), "disconnecting an inactive detector emits nothing")

	det.Connect(context.Background())
	det.Disconnect(context.Background())
	det.Disconnect(context.Background())

	assert.Equal(t, []events.Type{
		events.ConnectionEstablished,
		events.DesktopDeviceDetected,
		events.ConnectionLost,
	}, rec.types())
}

func TestDetectorSinkFailure(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := slog.New(slog.NewJSONHandler(&buf, nil))
	failing := events.SinkFunc(func(context.Context, events.Event) error {
		return errors.New("sink down")
	})

	rec := &recorder{}
	sess := device.NewSession(environment(uaPhone, 400, 800))
	det := events.NewDetector("session-1", sess,
		events.WithSinks(failing, nil, rec),
		events.WithLogger(log),
	)

	det.Connect(context.Background())

	assert.Len(t, rec.types(), 2, "later sinks still receive events")
	assert.Contains(t, buf.String(), "event sink failed")
	assert.Contains(t, buf.String(), "sink down")
	assert.Contains(t, buf.String(), `"session_id":"session-1"`)
}
