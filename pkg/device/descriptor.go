package device

import (
	"errors"
	"fmt"
	"slices"

	"github.com/dmitrymomot/devicekit/pkg/fingerprint"
	"github.com/dmitrymomot/devicekit/pkg/signals"
	"github.com/dmitrymomot/devicekit/pkg/useragent"
)

// Descriptor is the complete classification of one client at one moment.
// It is built fresh on every call; only Fingerprint is carried over between
// calls of the same session.
type Descriptor struct {
	Platform            string             `json:"platform"`
	UserAgent           string             `json:"userAgent"`
	TouchCapable        bool               `json:"touchCapable"`
	MaxTouchPoints      int                `json:"maxTouchPoints"`
	HardwareConcurrency int                `json:"hardwareConcurrency"`
	Display             signals.Display    `json:"display"`
	OS                  useragent.OS       `json:"os"`
	Browser             useragent.Browser  `json:"browser"`
	Device              useragent.Device   `json:"device"`
	Connection          signals.Connection `json:"connection"`
	Language            string             `json:"language"`
	Fingerprint         string             `json:"fingerprint"`
	CapturedAtEpochMs   int64              `json:"capturedAtEpochMs"`
}

// Classification returns the OS, browser and device part of d.
func (d Descriptor) Classification() useragent.Classification {
	return useragent.Classification{OS: d.OS, Browser: d.Browser, Device: d.Device}
}

var (
	osNames = []string{
		useragent.OSAndroid, useragent.OSiOS, useragent.OSiPadOS, useragent.OSMacOS,
		useragent.OSWindows, useragent.OSLinux, useragent.OSChromeOS, useragent.OSUnknown,
	}
	browserNames = []string{
		useragent.BrowserChrome, useragent.BrowserFirefox, useragent.BrowserSafari, useragent.BrowserEdge,
		useragent.BrowserOpera, useragent.BrowserSamsung, useragent.BrowserUnknown,
	}
	deviceTypes = []useragent.DeviceType{
		useragent.DeviceTypeMobile, useragent.DeviceTypeTablet, useragent.DeviceTypeDesktop,
		useragent.DeviceTypeTV, useragent.DeviceTypeWearable, useragent.DeviceTypeConsole,
		useragent.DeviceTypeUnknown,
	}
	orientations = []signals.Orientation{
		signals.OrientationPortrait, signals.OrientationLandscape, signals.OrientationUnknown,
	}
)

// Validate reports every invariant d violates, joined. A descriptor built by
// Session.DeviceInfo always validates.
func (d Descriptor) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidDescriptor}, args...)...))
		}
	}

	check(d.MaxTouchPoints >= 0, "negative maxTouchPoints %d", d.MaxTouchPoints)
	check(d.HardwareConcurrency >= 0, "negative hardwareConcurrency %d", d.HardwareConcurrency)

	check(d.Display.WidthPx >= 0 && d.Display.HeightPx >= 0,
		"negative display size %dx%d", d.Display.WidthPx, d.Display.HeightPx)
	check(d.Display.PixelRatio > 0, "non-positive pixelRatio %v", d.Display.PixelRatio)
	check(d.Display.ColorDepthBits >= 0 && d.Display.PixelDepthBits >= 0, "negative depth")
	check(slices.Contains(orientations, d.Display.Orientation), "orientation %q", d.Display.Orientation)

	check(slices.Contains(osNames, d.OS.Name), "os name %q", d.OS.Name)
	check(d.OS.Version != "", "empty os version")
	check(slices.Contains(browserNames, d.Browser.Name), "browser name %q", d.Browser.Name)
	check(d.Browser.Version != "", "empty browser version")

	check(slices.Contains(deviceTypes, d.Device.Type), "device type %q", d.Device.Type)
	check(!(d.Device.IsMobile && d.Device.IsTablet), "device is both mobile and tablet")
	check(d.Device.IsMobile == (d.Device.Type == useragent.DeviceTypeMobile), "isMobile disagrees with type %q", d.Device.Type)
	check(d.Device.IsTablet == (d.Device.Type == useragent.DeviceTypeTablet), "isTablet disagrees with type %q", d.Device.Type)
	check(d.Device.Brand != "" && d.Device.Model != "", "empty brand or model")

	check(d.Connection.Type != "" && d.Connection.SpeedDescriptor != "", "empty connection field")
	check(d.Language != "", "empty language")
	check(fingerprint.WellFormed(d.Fingerprint), "fingerprint %q", d.Fingerprint)
	check(d.CapturedAtEpochMs > 0, "capturedAtEpochMs %d", d.CapturedAtEpochMs)

	return errors.Join(errs...)
}
