package signals

import (
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"

	"github.com/dmitrymomot/devicekit/pkg/canvas"
)

// Unknown is the default for descriptive string signals.
const Unknown = "unknown"

// Orientation of the display.
type Orientation string

const (
	OrientationPortrait  Orientation = "portrait"
	OrientationLandscape Orientation = "landscape"
	OrientationUnknown   Orientation = "unknown"
)

// Display describes screen geometry. Width and height are zero when the
// host does not expose them.
type Display struct {
	WidthPx        int         `json:"widthPx"`
	HeightPx       int         `json:"heightPx"`
	PixelRatio     float64     `json:"pixelRatio"`
	ColorDepthBits int         `json:"colorDepthBits"`
	PixelDepthBits int         `json:"pixelDepthBits"`
	Orientation    Orientation `json:"orientation"`
}

// Connection is the network class reported by the host.
type Connection struct {
	Type            string `json:"type"`
	SpeedDescriptor string `json:"speedDescriptor"`
}

// Signals is the resolved read of an Environment with every default applied.
type Signals struct {
	UserAgent           string
	Platform            string
	TouchCapable        bool
	MaxTouchPoints      int
	HardwareConcurrency int
	Display             Display
	Connection          Connection
	Language            string
	TimezoneOffset      int
	CookiesEnabled      bool
	// Canvas is nil when the host offers no offscreen drawable.
	Canvas canvas.Factory
}

// Defaults returns the signals of a host that exposes nothing.
func Defaults() Signals {
	return Signals{
		Display: Display{
			PixelRatio:  1,
			Orientation: OrientationUnknown,
		},
		Connection: Connection{Type: Unknown, SpeedDescriptor: Unknown},
		Language:   Unknown,
	}
}

// Read resolves the environment exposed by src. It never panics: a nil
// source, or one that panics while producing its snapshot, yields Defaults.
func Read(src Source) (s Signals) {
	defer func() {
		if r := recover(); r != nil {
			s = Defaults()
		}
	}()

	if src == nil {
		return Defaults()
	}
	env := src.Snapshot()

	s = Defaults()
	s.UserAgent = env.UserAgent.Or("")
	s.Platform = env.Platform.Or("")
	s.MaxTouchPoints = nonNegative(env.MaxTouchPoints.Or(0))
	s.TouchCapable = env.TouchEvents.Or(false) || s.MaxTouchPoints > 0
	s.HardwareConcurrency = nonNegative(env.HardwareConcurrency.Or(0))

	s.Display.WidthPx = nonNegative(env.ScreenWidth.Or(0))
	s.Display.HeightPx = nonNegative(env.ScreenHeight.Or(0))
	if ratio := env.PixelRatio.Or(0); ratio > 0 && !math.IsInf(ratio, 0) {
		s.Display.PixelRatio = ratio
	}
	s.Display.ColorDepthBits = nonNegative(env.ColorDepth.Or(0))
	s.Display.PixelDepthBits = nonNegative(env.PixelDepth.Or(0))
	s.Display.Orientation = resolveOrientation(env)

	if netInfo, ok := env.Network.Get(); ok {
		s.Connection.Type = nonEmpty(netInfo.Type.Or(""))
		s.Connection.SpeedDescriptor = nonEmpty(netInfo.EffectiveType.Or(""))
	}

	if lang, ok := env.Language.Get(); ok {
		s.Language = normalizeLanguage(lang)
	}
	s.TimezoneOffset = env.TimezoneOffset.Or(0)
	s.CookiesEnabled = env.CookiesEnabled.Or(false)

	if f, ok := env.Canvas.Get(); ok && f != nil {
		s.Canvas = f
	}

	return s
}

// resolveOrientation prefers the explicit orientation capability, then the
// viewport aspect ratio.
func resolveOrientation(env Environment) Orientation {
	if raw, ok := env.Orientation.Get(); ok {
		if o, ok := ParseOrientation(raw); ok {
			return o
		}
	}

	w, wok := env.ViewportWidth.Get()
	h, hok := env.ViewportHeight.Get()
	if !wok || !hok || w <= 0 || h <= 0 {
		return OrientationUnknown
	}
	if w > h {
		return OrientationLandscape
	}
	return OrientationPortrait
}

// ParseOrientation understands screen-orientation types
// ("portrait-primary", "landscape-secondary", ...) and rotation angles.
func ParseOrientation(raw string) (Orientation, bool) {
	v := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case v == "":
		return OrientationUnknown, false
	case strings.HasPrefix(v, "portrait"):
		return OrientationPortrait, true
	case strings.HasPrefix(v, "landscape"):
		return OrientationLandscape, true
	}

	angle, err := strconv.Atoi(v)
	if err != nil {
		return OrientationUnknown, false
	}
	switch ((angle % 360) + 360) % 360 {
	case 0, 180:
		return OrientationPortrait, true
	case 90, 270:
		return OrientationLandscape, true
	}
	return OrientationUnknown, false
}

// normalizeLanguage canonicalizes a BCP-47 tag, keeping unparseable input as is.
func normalizeLanguage(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Unknown
	}
	tag, err := language.Parse(raw)
	if err != nil {
		return raw
	}
	return tag.String()
}

func nonNegative(v int) int {
	if v < 0 {
		return 0
	}
	return v
}

func nonEmpty(v string) string {
	if strings.TrimSpace(v) == "" {
		return Unknown
	}
	return v
}
