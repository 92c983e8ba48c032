package useragent

import "regexp"

// Browser is the browser detected for a client.
type Browser struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

var (
	edgeVersionRe    = regexp.MustCompile(`Edg(?:e|A|iOS)?/([\d.]+)`)
	chromeVersionRe  = regexp.MustCompile(`(?:Chrome|CriOS|Chromium)/([\d.]+)`)
	firefoxVersionRe = regexp.MustCompile(`(?:Firefox|FxiOS)/([\d.]+)`)
	operaVersionRe   = regexp.MustCompile(`(?:OPR|OPT)/([\d.]+)`)
	operaLegacyRe    = regexp.MustCompile(`Opera[/ ]([\d.]+)`)
	samsungVersionRe = regexp.MustCompile(`SamsungBrowser/([\d.]+)`)
)

// Signatures used by the exclusion clauses. Edge and Opera embed a Chrome
// token; Chrome embeds a Safari token.
var (
	edgeSignatures    = newKeywordSet("edg/", "edge/", "edga/", "edgios/")
	chromeSignatures  = newKeywordSet("chrome/", "crios/", "chromium/")
	operaSignatures   = newKeywordSet("opr/", "opt/", "opera")
	samsungSignatures = newKeywordSet("samsungbrowser/")
)

var browserChain = chain[Browser]{
	rules: []rule[Browser]{
		{
			name:  "edge",
			match: func(in input) bool { return edgeSignatures.contains(in.lower) },
			extract: func(in input) Browser {
				return Browser{Name: BrowserEdge, Version: capture(in.ua, edgeVersionRe)}
			},
		},
		{
			name: "chrome",
			match: func(in input) bool {
				return chromeSignatures.contains(in.lower) &&
					!edgeSignatures.contains(in.lower) &&
					!operaSignatures.contains(in.lower) &&
					!samsungSignatures.contains(in.lower)
			},
			extract: func(in input) Browser {
				return Browser{Name: BrowserChrome, Version: capture(in.ua, chromeVersionRe)}
			},
		},
		{
			name:  "firefox",
			match: func(in input) bool { return in.has("firefox/", "fxios/") },
			extract: func(in input) Browser {
				return Browser{Name: BrowserFirefox, Version: capture(in.ua, firefoxVersionRe)}
			},
		},
		{
			name: "safari",
			match: func(in input) bool {
				return in.has("safari") &&
					!chromeSignatures.contains(in.lower) &&
					!operaSignatures.contains(in.lower)
			},
			extract: func(in input) Browser {
				return Browser{Name: BrowserSafari, Version: capture(in.ua, safariVersionRe)}
			},
		},
		{
			name:  "opera",
			match: func(in input) bool { return operaSignatures.contains(in.lower) },
			extract: func(in input) Browser {
				// Presto-era Opera reports the real version in Version/
				return Browser{Name: BrowserOpera, Version: capture(in.ua, operaVersionRe, safariVersionRe, operaLegacyRe)}
			},
		},
		{
			name:  "samsung-internet",
			match: func(in input) bool { return samsungSignatures.contains(in.lower) },
			extract: func(in input) Browser {
				return Browser{Name: BrowserSamsung, Version: capture(in.ua, samsungVersionRe)}
			},
		},
	},
	fallback: rule[Browser]{
		name:    "unknown",
		extract: func(input) Browser { return Browser{Name: BrowserUnknown, Version: Unknown} },
	},
}

func detectBrowser(in input) Browser {
	return browserChain.eval(in)
}
