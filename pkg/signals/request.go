package signals

import (
	"net/http"
	"strconv"
	"strings"

	"golang.org/x/text/language"
)

// Client hint headers read by FromRequest.
const (
	HeaderPlatform       = "Sec-CH-UA-Platform"
	HeaderViewportWidth  = "Sec-CH-Viewport-Width"
	HeaderViewportHeight = "Sec-CH-Viewport-Height"
	HeaderDPR            = "Sec-CH-DPR"
	HeaderECT            = "ECT"

	legacyViewportWidth = "Viewport-Width"
	legacyDPR           = "DPR"
)

// platformHints maps Sec-CH-UA-Platform values to navigator.platform values
// so both sources feed the classifier the same vocabulary.
var platformHints = map[string]string{
	"windows":   "Win32",
	"macos":     "MacIntel",
	"linux":     "Linux x86_64",
	"android":   "Linux armv8l",
	"ios":       "iPhone",
	"chrome os": "CrOS",
	"chromeos":  "CrOS",
}

// FromRequest builds an Environment from an HTTP request's User-Agent and
// client hint headers. Requests carry no drawable, so Canvas is absent.
func FromRequest(r *http.Request) Environment {
	var env Environment
	if r == nil {
		return env
	}

	if ua := r.UserAgent(); ua != "" {
		env.UserAgent = Some(ua)
	}
	if p := unquote(r.Header.Get(HeaderPlatform)); p != "" {
		if mapped, ok := platformHints[strings.ToLower(p)]; ok {
			p = mapped
		}
		env.Platform = Some(p)
	}

	env.ViewportWidth = headerInt(r, HeaderViewportWidth, legacyViewportWidth)
	env.ViewportHeight = headerInt(r, HeaderViewportHeight)

	for _, name := range []string{HeaderDPR, legacyDPR} {
		if v := strings.TrimSpace(r.Header.Get(name)); v != "" {
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				env.PixelRatio = Some(f)
				break
			}
		}
	}

	if ect := strings.TrimSpace(r.Header.Get(HeaderECT)); ect != "" {
		env.Network = Some(NetworkInfo{EffectiveType: Some(ect)})
	}

	if al := r.Header.Get("Accept-Language"); al != "" {
		if tags, _, err := language.ParseAcceptLanguage(al); err == nil && len(tags) > 0 {
			env.Language = Some(tags[0].String())
		}
	}

	if r.Header.Get("Cookie") != "" {
		env.CookiesEnabled = Some(true)
	}

	return env
}

func headerInt(r *http.Request, names ...string) Optional[int] {
	for _, name := range names {
		v := strings.TrimSpace(r.Header.Get(name))
		if v == "" {
			continue
		}
		if n, err := strconv.Atoi(v); err == nil {
			return Some(n)
		}
	}
	return None[int]()
}

func unquote(v string) string {
	return strings.Trim(strings.TrimSpace(v), `"`)
}
