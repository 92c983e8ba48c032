package useragent

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Device describes the form factor and hardware of a client. IsMobile and
// IsTablet mirror Type and are never both true.
type Device struct {
	IsMobile bool       `json:"isMobile"`
	IsTablet bool       `json:"isTablet"`
	Type     DeviceType `json:"type"`
	Brand    string     `json:"brand"`
	Model    string     `json:"model"`
}

func newDevice(t DeviceType, brand, model string) Device {
	return Device{
		IsMobile: t == DeviceTypeMobile,
		IsTablet: t == DeviceTypeTablet,
		Type:     t,
		Brand:    brand,
		Model:    model,
	}
}

var (
	tvKeywords = newKeywordSet(
		"smart-tv", "smarttv", "googletv", "google tv", "android tv", "appletv", "apple tv",
		"crkey", "roku", "hbbtv", "netcast", "web0s", "bravia", "viera", "aftb", "aftm", "aftt",
	)
	tvTokenRe = regexp.MustCompile(`\btv\b`)

	consoleKeywords  = newKeywordSet("playstation", "xbox", "nintendo")
	wearableKeywords = newKeywordSet(
		"watchos", "watch os", "wear os", "wearos", "smartwatch", "galaxy watch", "apple watch",
	)
	windowsTabletKeywords = newKeywordSet("touch", "tablet")
	tabletKeywords        = newKeywordSet("tablet", "playbook", "rim tablet")
	kindleKeywords        = newKeywordSet("kindle", "silk/")
	legacyMobileKeywords  = newKeywordSet(
		"blackberry", "bb10", "iemobile", "opera mini", "opera mobi", "webos", "windows phone",
		"symbian", "palmos", "windows ce",
	)
	genericMobileKeywords = newKeywordSet("mobile", "mobi")
)

var deviceChain = chain[Device]{
	rules: []rule[Device]{
		{
			name: "tv",
			match: func(in input) bool {
				return tvKeywords.contains(in.lower) || tvTokenRe.MatchString(in.lower)
			},
			extract: identified(DeviceTypeTV),
		},
		{
			name:    "console",
			match:   func(in input) bool { return consoleKeywords.contains(in.lower) },
			extract: console,
		},
		{
			name:    "wearable",
			match:   func(in input) bool { return wearableKeywords.contains(in.lower) },
			extract: identified(DeviceTypeWearable),
		},
		{
			name:    "ipad",
			match:   func(in input) bool { return in.has("ipad") },
			extract: identified(DeviceTypeTablet),
		},
		{
			name:  "ipad-desktop-mode",
			match: func(in input) bool { return in.macIntelTouch() },
			extract: func(input) Device {
				return newDevice(DeviceTypeTablet, "Apple", "iPad")
			},
		},
		{
			name:    "android-tablet",
			match:   func(in input) bool { return androidWithoutMobile(in.lower) },
			extract: identified(DeviceTypeTablet),
		},
		{
			name: "windows-tablet",
			match: func(in input) bool {
				return in.has("windows") && !in.has("windows phone") && windowsTabletKeywords.contains(in.lower)
			},
			extract: identified(DeviceTypeTablet),
		},
		{
			name:    "kindle",
			match:   func(in input) bool { return kindleKeywords.contains(in.lower) },
			extract: identified(DeviceTypeTablet),
		},
		{
			name:    "generic-tablet",
			match:   func(in input) bool { return tabletKeywords.contains(in.lower) },
			extract: identified(DeviceTypeTablet),
		},
		{
			// android-tablet already took every Android string without Mobile
			name:    "android-mobile",
			match:   func(in input) bool { return in.has("android") },
			extract: identified(DeviceTypeMobile),
		},
		{
			name:    "apple-mobile",
			match:   func(in input) bool { return in.has("iphone", "ipod") },
			extract: identified(DeviceTypeMobile),
		},
		{
			name:    "legacy-mobile",
			match:   func(in input) bool { return legacyMobileKeywords.contains(in.lower) },
			extract: identified(DeviceTypeMobile),
		},
		{
			name:    "generic-mobile",
			match:   func(in input) bool { return genericMobileKeywords.contains(in.lower) },
			extract: identified(DeviceTypeMobile),
		},
	},
	fallback: rule[Device]{name: "desktop", extract: identified(DeviceTypeDesktop)},
}

func detectDevice(in input) Device {
	return deviceChain.eval(in)
}

// androidWithoutMobile reports whether an Android token is present with no
// Mobile token after it.
func androidWithoutMobile(lower string) bool {
	idx := strings.Index(lower, "android")
	if idx < 0 {
		return false
	}
	return !strings.Contains(lower[idx:], "mobile") && !legacyMobileKeywords.contains(lower)
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

func identified(t DeviceType) func(input) Device {
	return func(in input) Device {
		brand, model := identify(in)
		return newDevice(t, brand, model)
	}
}

// identify resolves brand and model: brand table first, then the generic
// Android model token. Codenames are only looked up against that token.
func identify(in input) (string, string) {
	token := androidModel(in.ua)
	code := token
	if code == Unknown {
		code = ""
	}
	brandName, model := Unknown, ""
	if b, ok := tables.brandOf(in.lower, code); ok {
		brandName = b.name
		model, _ = b.model(in.ua, code)
	}
	if model == "" {
		model = token
	}
	return brandName, model
}

var (
	androidSectionRe = regexp.MustCompile(`\(([^)]*[Aa]ndroid[^)]*)\)`)
	localeTokenRe    = regexp.MustCompile(`^[a-z]{2}(?:[-_][A-Za-z]{2})?$`)
	buildSuffixRe    = regexp.MustCompile(`\s*Build/.*$`)
)

// Tokens that never name a model. K is the placeholder reduced user agents
// send instead of the real model.
var androidNoiseTokens = map[string]struct{}{
	"linux": {}, "u": {}, "k": {}, "wv": {}, "mobile": {}, "tablet": {}, "x11": {},
	"arm": {}, "touch": {},
}

// Browser and OS names that share the Android section on legacy devices.
var androidForeignPrefixes = []string{"opera mini", "opera mobi", "windows phone", "iemobile"}

// androidModel pulls the model from the parenthesized Android section, as
// in "(Linux; Android 13; Pixel 7 Build/TQ3A)".
func androidModel(ua string) string {
	m := androidSectionRe.FindStringSubmatch(ua)
	if len(m) < 2 {
		return Unknown
	}
	for _, token := range strings.Split(m[1], ";") {
		token = strings.TrimSpace(buildSuffixRe.ReplaceAllString(strings.TrimSpace(token), ""))
		lower := strings.ToLower(token)
		if token == "" || strings.HasPrefix(lower, "android") || strings.HasPrefix(lower, "rv:") {
			continue
		}
		if strings.Contains(token, "/") || hasAnyPrefix(lower, androidForeignPrefixes) {
			continue
		}
		if _, noise := androidNoiseTokens[lower]; noise {
			continue
		}
		if localeTokenRe.MatchString(token) {
			continue
		}
		return token
	}
	return Unknown
}

var (
	playStationRe = regexp.MustCompile(`(?i)playstation[ ]?(\d+|vita|portable)?`)
	xboxRe        = regexp.MustCompile(`(?i)xbox(?:[ ]?(one|series [xs]|360))?`)
	nintendoRe    = regexp.MustCompile(`(?i)nintendo[ ]?([a-z0-9 ]+?)(?:[;)]|$)`)

	nintendoModels = map[string]string{
		"switch":  "Switch",
		"wiiu":    "Wii U",
		"wii u":   "Wii U",
		"wii":     "Wii",
		"3ds":     "3DS",
		"new 3ds": "New 3DS",
		"ds":      "DS",
	}
)

// console resolves brand and model for gaming consoles without the
// brand table.
func console(in input) Device {
	switch {
	case in.has("playstation"):
		model := "PlayStation"
		if variant := firstGroup(playStationRe, in.ua); variant != "" {
			model += " " + title(variant)
		}
		return newDevice(DeviceTypeConsole, "Sony", model)
	case in.has("xbox"):
		model := "Xbox"
		if variant := firstGroup(xboxRe, in.ua); variant != "" {
			model += " " + title(variant)
		}
		return newDevice(DeviceTypeConsole, "Microsoft", model)
	default:
		model := Unknown
		if key := strings.ToLower(strings.TrimSpace(firstGroup(nintendoRe, in.ua))); key != "" {
			if name, ok := nintendoModels[key]; ok {
				model = name
			} else {
				model = title(key)
			}
		}
		return newDevice(DeviceTypeConsole, "Nintendo", model)
	}
}

// firstGroup returns the first non-empty capture across all matches. Console
// strings often repeat the brand token before the variant, as in
// "Xbox; Xbox One".
func firstGroup(re *regexp.Regexp, s string) string {
	for _, m := range re.FindAllStringSubmatch(s, -1) {
		if len(m) > 1 && m[1] != "" {
			return m[1]
		}
	}
	return ""
}

// title upper-cases the first letter of each word. Casers hold state, so
// one is built per call.
func title(s string) string {
	return cases.Title(language.English).String(s)
}
