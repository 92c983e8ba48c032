package signals

import (
	"os"
	"runtime"
	"strings"
	"time"

	"golang.org/x/text/language"

	"github.com/dmitrymomot/devicekit/pkg/canvas"
)

var archNames = map[string]string{
	"amd64": "x86_64",
	"386":   "i686",
	"arm64": "aarch64",
	"arm":   "armv7l",
}

// Local describes the host running this process, for Go-native clients that
// report their own environment. It has no user agent or display.
func Local() Environment {
	env := Environment{
		Platform:            Some(localPlatform(runtime.GOOS, runtime.GOARCH)),
		HardwareConcurrency: Some(runtime.NumCPU()),
		TimezoneOffset:      Some(timezoneOffset(time.Now())),
		CookiesEnabled:      Some(false),
		Canvas:              Some[canvas.Factory](canvas.New),
	}
	if tag, ok := localeTag(os.Getenv); ok {
		env.Language = Some(tag)
	}
	return env
}

// localPlatform renders GOOS/GOARCH in the navigator.platform vocabulary.
func localPlatform(goos, goarch string) string {
	switch goos {
	case "windows":
		return "Win32"
	case "darwin":
		return "MacIntel"
	case "ios":
		return "iPhone"
	case "android":
		return "Linux armv8l"
	case "linux":
		if arch, ok := archNames[goarch]; ok {
			return "Linux " + arch
		}
		return "Linux " + goarch
	}
	return goos + " " + goarch
}

// timezoneOffset follows the getTimezoneOffset convention: minutes to add
// to local time to reach UTC.
func timezoneOffset(t time.Time) int {
	_, offset := t.Zone()
	return -offset / 60
}

// localeTag reads the POSIX locale variables in precedence order.
func localeTag(getenv func(string) string) (string, bool) {
	for _, key := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		v := getenv(key)
		if v == "" {
			continue
		}
		if i := strings.IndexAny(v, ".@"); i >= 0 {
			v = v[:i]
		}
		if v == "C" || v == "POSIX" || v == "" {
			continue
		}
		tag, err := language.Parse(strings.ReplaceAll(v, "_", "-"))
		if err != nil {
			continue
		}
		return tag.String(), true
	}
	return "", false
}
