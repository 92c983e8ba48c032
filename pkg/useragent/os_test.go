package useragent_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/devicekit/pkg/signals"
	"github.com/dmitrymomot/devicekit/pkg/useragent"
)

func TestClassifyOS(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		signals  signals.Signals
		expected useragent.OS
	}{
		{"Windows 10/11", ua(uaChromeWindows), useragent.OS{Name: useragent.OSWindows, Version: "10/11"}},
		{"Windows XP", ua(uaWindowsXP), useragent.OS{Name: useragent.OSWindows, Version: "XP"}},
		{"Windows 8", ua(uaWindowsTouch), useragent.OS{Name: useragent.OSWindows, Version: "8"}},
		{"unmapped NT token passes through", ua(uaWindowsFuture), useragent.OS{Name: useragent.OSWindows, Version: "99.9"}},
		{"macOS", ua(uaSafariMac), useragent.OS{Name: useragent.OSMacOS, Version: "10.15.7"}},
		{"iOS", ua(uaSafariIPhone), useragent.OS{Name: useragent.OSiOS, Version: "17.2"}},
		{"iPadOS from CPU OS token", ua(uaIPadCPU), useragent.OS{Name: useragent.OSiPadOS, Version: "16.6"}},
		{"iPadOS from Mac OS X token", uaWith(uaIPadMacToken, "iPad", true), useragent.OS{Name: useragent.OSiPadOS, Version: "15.1"}},
		{"iPad in desktop mode", uaWith(uaSafariMac, "MacIntel", true), useragent.OS{Name: useragent.OSiPadOS, Version: "10.15.7"}},
		{"Android", ua(uaGalaxyS21), useragent.OS{Name: useragent.OSAndroid, Version: "11"}},
		{"Android wins over Linux token", ua(uaPixel8Pro), useragent.OS{Name: useragent.OSAndroid, Version: "14"}},
		{"Linux", ua(uaFirefoxLinux), useragent.OS{Name: useragent.OSLinux, Version: useragent.Unknown}},
		{"Chrome OS", ua(uaChromeOS), useragent.OS{Name: useragent.OSChromeOS, Version: "14541.0.0"}},
		{"platform fallback Windows", uaWith("", "Win32", false), useragent.OS{Name: useragent.OSWindows, Version: useragent.Unknown}},
		{"platform fallback macOS", uaWith("", "MacIntel", false), useragent.OS{Name: useragent.OSMacOS, Version: useragent.Unknown}},
		{"platform fallback Linux", uaWith("", "Linux x86_64", false), useragent.OS{Name: useragent.OSLinux, Version: useragent.Unknown}},
		{"platform fallback iOS", uaWith("", "iPhone", true), useragent.OS{Name: useragent.OSiOS, Version: useragent.Unknown}},
		{"console has no OS token", ua(uaPlayStation5), useragent.OS{Name: useragent.OSUnknown, Version: useragent.Unknown}},
		{"unrecognized", ua(uaUnrecognized), useragent.OS{Name: useragent.OSUnknown, Version: useragent.Unknown}},
		{"empty", ua(""), useragent.OS{Name: useragent.OSUnknown, Version: useragent.Unknown}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, useragent.Classify(tt.signals).OS)
		})
	}
}

func TestOSRulesOrder(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{
		"android",
		"ipad",
		"iphone",
		"ipad-desktop-mode",
		"macos",
		"windows",
		"linux",
		"chrome-os",
		"platform-windows",
		"platform-mac",
		"platform-linux",
		"platform-ios",
		"platform-ipados",
		"unknown",
	}, useragent.OSRules())
}
