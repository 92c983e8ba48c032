package device_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/devicekit/pkg/device"
	"github.com/dmitrymomot/devicekit/pkg/signals"
	"github.com/dmitrymomot/devicekit/pkg/useragent"
)

func TestDescriptorValidate(t *testing.T) {
	t.Parallel()

	valid := func() device.Descriptor {
		return device.NewSession(phoneEnvironment(), device.WithClock(fixedClock)).DeviceInfo()
	}

	tests := []struct {
		name   string
		mutate func(d *device.Descriptor)
	}{
		{"mobile and tablet", func(d *device.Descriptor) { d.Device.IsTablet = true }},
		{"type disagrees with flags", func(d *device.Descriptor) { d.Device.Type = useragent.DeviceTypeDesktop }},
		{"unknown device type", func(d *device.Descriptor) { d.Device.Type = "fridge" }},
		{"os outside vocabulary", func(d *device.Descriptor) { d.OS.Name = "BeOS" }},
		{"browser outside vocabulary", func(d *device.Descriptor) { d.Browser.Name = "Netscape" }},
		{"empty version", func(d *device.Descriptor) { d.OS.Version = "" }},
		{"empty model", func(d *device.Descriptor) { d.Device.Model = "" }},
		{"zero pixel ratio", func(d *device.Descriptor) { d.Display.PixelRatio = 0 }},
		{"negative width", func(d *device.Descriptor) { d.Display.WidthPx = -1 }},
		{"bad orientation", func(d *device.Descriptor) { d.Display.Orientation = "sideways" }},
		{"negative touch points", func(d *device.Descriptor) { d.MaxTouchPoints = -1 }},
		{"empty connection", func(d *device.Descriptor) { d.Connection.Type = "" }},
		{"malformed fingerprint", func(d *device.Descriptor) { d.Fingerprint = "abc" }},
		{"missing timestamp", func(d *device.Descriptor) { d.CapturedAtEpochMs = 0 }},
	}

	assert.NoError(t, valid().Validate())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			d := valid()
			tt.mutate(&d)
			assert.ErrorIs(t, d.Validate(), device.ErrInvalidDescriptor)
		})
	}
}

func TestDeviceInfoInvariants(t *testing.T) {
	t.Parallel()

	agents := []string{
		"",
		"foo bar baz",
		uaGalaxyS21,
		"Mozilla/5.0 (Linux; Android 13; SM-X710) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
		"Mozilla/5.0 (iPad; Intel Mac OS X 15_1) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/15.1 Safari/605.1.15",
		"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.2 Safari/605.1.15",
		"Mozilla/5.0 (PlayStation; PlayStation 5/2.26) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/13.0 Safari/605.1.15",
	}
	platforms := []string{"", "MacIntel", "Win32", "Linux armv8l"}

	for _, ua := range agents {
		for _, platform := range platforms {
			for _, touch := range []bool{false, true} {
				env := signals.Environment{
					UserAgent:   signals.Some(ua),
					Platform:    signals.Some(platform),
					TouchEvents: signals.Some(touch),
				}
				d := device.NewSession(env, device.WithClock(fixedClock)).DeviceInfo()
				assert.NoError(t, d.Validate(), "ua=%q platform=%q touch=%v", ua, platform, touch)
			}
		}
	}
}
