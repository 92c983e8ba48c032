package useragent

import (
	"regexp"
	"strings"
)

// OS is the operating system detected for a client.
type OS struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

var (
	androidVersionRe = regexp.MustCompile(`(?i)android[ /]?([\d._]+)`)
	appleOSVersionRe = regexp.MustCompile(`(?:CPU (?:iPhone )?OS|iPhone OS) ([\d_]+)`)
	macVersionRe     = regexp.MustCompile(`Mac OS X ([\d_.]+)`)
	safariVersionRe  = regexp.MustCompile(`Version/([\d.]+)`)
	windowsNTRe      = regexp.MustCompile(`Windows NT ([\d.]+)`)
	windowsPhoneRe   = regexp.MustCompile(`Windows Phone(?: OS)? ([\d.]+)`)
	chromeOSRe       = regexp.MustCompile(`CrOS \S+ ([\d.]+)`)
	macTokenRe       = regexp.MustCompile(`\bmac os x\b|\bmacintosh\b`)
	crosTokenRe      = regexp.MustCompile(`\bcros\b`)
)

func osResult(name string, version string) func(input) OS {
	return func(input) OS { return OS{Name: name, Version: version} }
}

var osChain = chain[OS]{
	rules: []rule[OS]{
		{
			name:  "android",
			match: func(in input) bool { return in.has("android") },
			extract: func(in input) OS {
				return OS{Name: OSAndroid, Version: capture(in.ua, androidVersionRe)}
			},
		},
		{
			name:  "ipad",
			match: func(in input) bool { return in.has("ipad") },
			extract: func(in input) OS {
				return OS{Name: OSiPadOS, Version: capture(in.ua, appleOSVersionRe, macVersionRe, safariVersionRe)}
			},
		},
		{
			name:  "iphone",
			match: func(in input) bool { return in.has("iphone", "ipod") },
			extract: func(in input) OS {
				return OS{Name: OSiOS, Version: capture(in.ua, appleOSVersionRe, macVersionRe, safariVersionRe)}
			},
		},
		{
			// iPads in desktop mode send a Mac user agent and MacIntel platform
			name:  "ipad-desktop-mode",
			match: func(in input) bool { return in.macIntelTouch() },
			extract: func(in input) OS {
				return OS{Name: OSiPadOS, Version: capture(in.ua, macVersionRe, safariVersionRe)}
			},
		},
		{
			name:  "macos",
			match: func(in input) bool { return !in.touch && macTokenRe.MatchString(in.lower) },
			extract: func(in input) OS {
				return OS{Name: OSMacOS, Version: capture(in.ua, macVersionRe)}
			},
		},
		{
			name:    "windows",
			match:   func(in input) bool { return in.has("windows") },
			extract: windowsOS,
		},
		{
			name:    "linux",
			match:   func(in input) bool { return in.has("linux") && !in.has("android") },
			extract: osResult(OSLinux, Unknown),
		},
		{
			name:  "chrome-os",
			match: func(in input) bool { return crosTokenRe.MatchString(in.lower) },
			extract: func(in input) OS {
				return OS{Name: OSChromeOS, Version: capture(in.ua, chromeOSRe)}
			},
		},
		{
			name:    "platform-windows",
			match:   func(in input) bool { return strings.Contains(in.platform, "Win") },
			extract: osResult(OSWindows, Unknown),
		},
		{
			name:    "platform-mac",
			match:   func(in input) bool { return strings.Contains(in.platform, "Mac") },
			extract: osResult(OSMacOS, Unknown),
		},
		{
			name:    "platform-linux",
			match:   func(in input) bool { return strings.Contains(in.platform, "Linux") },
			extract: osResult(OSLinux, Unknown),
		},
		{
			name: "platform-ios",
			match: func(in input) bool {
				return strings.Contains(in.platform, "iPhone") || strings.Contains(in.platform, "iPod")
			},
			extract: osResult(OSiOS, Unknown),
		},
		{
			name:    "platform-ipados",
			match:   func(in input) bool { return strings.Contains(in.platform, "iPad") },
			extract: osResult(OSiPadOS, Unknown),
		},
	},
	fallback: rule[OS]{name: "unknown", extract: osResult(OSUnknown, Unknown)},
}

// windowsOS maps the NT kernel token through the version table. Windows
// Phone strings carry their own version and are reported as is.
func windowsOS(in input) OS {
	if m := windowsNTRe.FindStringSubmatch(in.ua); len(m) > 1 {
		return OS{Name: OSWindows, Version: tables.windowsVersion(m[1])}
	}
	return OS{Name: OSWindows, Version: capture(in.ua, windowsPhoneRe)}
}

func detectOS(in input) OS {
	return osChain.eval(in)
}
