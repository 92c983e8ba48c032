package device_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/devicekit/pkg/canvas"
	"github.com/dmitrymomot/devicekit/pkg/device"
	"github.com/dmitrymomot/devicekit/pkg/signals"
	"github.com/dmitrymomot/devicekit/pkg/useragent"
)

const uaGalaxyS21 = "Mozilla/5.0 (Linux; Android 11; SM-G991B) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.6099.144 Mobile Safari/537.36"

var fixedNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func phoneEnvironment() signals.Environment {
	return signals.Environment{
		UserAgent:           signals.Some(uaGalaxyS21),
		Platform:            signals.Some("Linux armv8l"),
		ScreenWidth:         signals.Some(412),
		ScreenHeight:        signals.Some(915),
		ViewportWidth:       signals.Some(412),
		ViewportHeight:      signals.Some(915),
		PixelRatio:          signals.Some(2.625),
		ColorDepth:          signals.Some(24),
		PixelDepth:          signals.Some(24),
		MaxTouchPoints:      signals.Some(5),
		HardwareConcurrency: signals.Some(8),
		Network: signals.Some(signals.NetworkInfo{
			Type:          signals.Some("cellular"),
			EffectiveType: signals.Some("4g"),
		}),
		Language:       signals.Some("en-US"),
		CookiesEnabled: signals.Some(true),
		Canvas:         signals.Some[canvas.Factory](canvas.New),
	}
}

func TestSessionDeviceInfo(t *testing.T) {
	t.Parallel()

	t.Run("phone", func(t *testing.T) {
		t.Parallel()
		sess := device.NewSession(phoneEnvironment(), device.WithClock(fixedClock))
		d := sess.DeviceInfo()

		assert.Equal(t, "Linux armv8l", d.Platform)
		assert.Equal(t, uaGalaxyS21, d.UserAgent)
		assert.True(t, d.TouchCapable)
		assert.Equal(t, 5, d.MaxTouchPoints)
		assert.Equal(t, 8, d.HardwareConcurrency)
		assert.Equal(t, signals.Display{
			WidthPx:        412,
			HeightPx:       915,
			PixelRatio:     2.625,
			ColorDepthBits: 24,
			PixelDepthBits: 24,
			Orientation:    signals.OrientationPortrait,
		}, d.Display)
		assert.Equal(t, useragent.OS{Name: "Android", Version: "11"}, d.OS)
		assert.Equal(t, useragent.Browser{Name: "Chrome", Version: "120.0.6099.144"}, d.Browser)
		assert.Equal(t, useragent.Device{
			IsMobile: true,
			Type:     useragent.DeviceTypeMobile,
			Brand:    "Samsung",
			Model:    "SM-G991B",
		}, d.Device)
		assert.Equal(t, signals.Connection{Type: "cellular", SpeedDescriptor: "4g"}, d.Connection)
		assert.Equal(t, "en-US", d.Language)
		assert.Equal(t, fixedNow.UnixMilli(), d.CapturedAtEpochMs)
		assert.Regexp(t, `^device_[0-9a-z]+$`, d.Fingerprint)
		assert.NoError(t, d.Validate())
	})

	t.Run("host exposing nothing", func(t *testing.T) {
		t.Parallel()
		d := device.NewSession(nil, device.WithClock(fixedClock)).DeviceInfo()

		assert.Empty(t, d.Platform)
		assert.Empty(t, d.UserAgent)
		assert.False(t, d.TouchCapable)
		assert.Equal(t, 1.0, d.Display.PixelRatio)
		assert.Equal(t, signals.OrientationUnknown, d.Display.Orientation)
		assert.Equal(t, useragent.OS{Name: "Unknown", Version: "Unknown"}, d.OS)
		assert.Equal(t, useragent.Browser{Name: "Unknown", Version: "Unknown"}, d.Browser)
		assert.Equal(t, useragent.DeviceTypeDesktop, d.Device.Type)
		assert.Equal(t, signals.Connection{Type: "unknown", SpeedDescriptor: "unknown"}, d.Connection)
		assert.Equal(t, "unknown", d.Language)
		assert.NoError(t, d.Validate())
	})

	t.Run("fingerprint is stable across calls and source changes", func(t *testing.T) {
		t.Parallel()
		live := signals.NewLive(phoneEnvironment())
		sess := device.NewSession(live, device.WithClock(fixedClock))

		first := sess.DeviceInfo()
		live.Update(func(env *signals.Environment) {
			env.ScreenWidth = signals.Some(915)
			env.ScreenHeight = signals.Some(412)
			env.Orientation = signals.Some("landscape-primary")
		})
		second := sess.DeviceInfo()

		assert.Equal(t, first.Fingerprint, second.Fingerprint)
		assert.Equal(t, sess.Fingerprint(), first.Fingerprint)
		assert.Equal(t, signals.OrientationPortrait, first.Display.Orientation)
		assert.Equal(t, signals.OrientationLandscape, second.Display.Orientation)
		assert.Equal(t, 915, second.Display.WidthPx)
	})

	t.Run("sessions own their fingerprints", func(t *testing.T) {
		t.Parallel()
		a := device.NewSession(phoneEnvironment())
		other := phoneEnvironment()
		other.ScreenWidth = signals.Some(390)
		b := device.NewSession(other)

		assert.NotEqual(t, a.Fingerprint(), b.Fingerprint())
	})

	t.Run("idempotent apart from timestamp", func(t *testing.T) {
		t.Parallel()
		tick := fixedNow
		sess := device.NewSession(phoneEnvironment(), device.WithClock(func() time.Time {
			tick = tick.Add(time.Second)
			return tick
		}))

		first := sess.DeviceInfo()
		second := sess.DeviceInfo()

		assert.Equal(t, first.CapturedAtEpochMs+1000, second.CapturedAtEpochMs)
		second.CapturedAtEpochMs = first.CapturedAtEpochMs
		assert.Equal(t, first, second)
	})

	t.Run("shared cached classifier", func(t *testing.T) {
		t.Parallel()
		cl := useragent.NewClassifier(useragent.WithCache(4))
		a := device.NewSession(phoneEnvironment(), device.WithClassifier(cl))
		b := device.NewSession(phoneEnvironment(), device.WithClassifier(cl))

		assert.Equal(t, a.DeviceInfo().Classification(), b.DeviceInfo().Classification())
		assert.Equal(t, 1, cl.Cached())
	})

	t.Run("logs at debug level", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		log := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

		d := device.NewSession(phoneEnvironment(), device.WithLogger(log)).DeviceInfo()

		var record map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
		assert.Equal(t, "device info assembled", record["msg"])
		assert.Equal(t, d.Fingerprint, record["fingerprint"])
		assert.Equal(t, "mobile", record["device_type"])
	})

	t.Run("panicking source degrades to defaults", func(t *testing.T) {
		t.Parallel()
		d := device.NewSession(panickingSource{}, device.WithClock(fixedClock)).DeviceInfo()
		assert.NoError(t, d.Validate())
		assert.Equal(t, useragent.DeviceTypeDesktop, d.Device.Type)
	})

	t.Run("panicking drawable is skipped", func(t *testing.T) {
		t.Parallel()
		env := phoneEnvironment()
		env.Canvas = signals.Some[canvas.Factory](func(int, int) (canvas.Surface, error) {
			panic("drawable unavailable")
		})
		withoutCanvas := phoneEnvironment()
		withoutCanvas.Canvas = signals.None[canvas.Factory]()

		var d device.Descriptor
		require.NotPanics(t, func() {
			d = device.NewSession(env, device.WithClock(fixedClock)).DeviceInfo()
		})
		assert.NoError(t, d.Validate())
		assert.Equal(t, useragent.DeviceTypeMobile, d.Device.Type)
		assert.Equal(t, device.NewSession(withoutCanvas).Fingerprint(), d.Fingerprint)
	})
}

type panickingSource struct{}

func (panickingSource) Snapshot() signals.Environment { panic("host went away") }

func TestDescriptorJSON(t *testing.T) {
	t.Parallel()

	d := device.NewSession(phoneEnvironment(), device.WithClock(fixedClock)).DeviceInfo()
	raw, err := json.Marshal(d)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))

	for _, key := range []string{
		"platform", "userAgent", "touchCapable", "maxTouchPoints", "hardwareConcurrency",
		"display", "os", "browser", "device", "connection", "language", "fingerprint", "capturedAtEpochMs",
	} {
		assert.Contains(t, decoded, key)
	}

	display := decoded["display"].(map[string]any)
	assert.Equal(t, "portrait", display["orientation"])
	assert.Equal(t, 412.0, display["widthPx"])

	dev := decoded["device"].(map[string]any)
	assert.Equal(t, true, dev["isMobile"])
	assert.Equal(t, false, dev["isTablet"])
	assert.Equal(t, "mobile", dev["type"])

	conn := decoded["connection"].(map[string]any)
	assert.Equal(t, "4g", conn["speedDescriptor"])
}
