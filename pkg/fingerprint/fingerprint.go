package fingerprint

import (
	"errors"
	"fmt"
	"image/color"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf16"

	"github.com/dmitrymomot/devicekit/pkg/signals"
)

// Prefix starts every fingerprint.
const Prefix = "device_"

// Probe surface geometry and content.
const (
	ProbeWidth  = 240
	ProbeHeight = 60
	ProbeText   = "Device fingerprint"
)

var (
	probeInk     = color.NRGBA{R: 0x00, G: 0x66, B: 0x99, A: 0xff} // #069
	probeOverlay = color.NRGBA{R: 102, G: 204, B: 0, A: 179}       // rgba(102, 204, 0, 0.7)
)

var fingerprintRe = regexp.MustCompile(`^device_[0-9a-z]+$`)

// Hash folds s into a 32-bit value with hash = hash*31 + unit over its
// UTF-16 code units. Arithmetic wraps at every step.
func Hash(s string) int32 {
	var h int32
	for _, unit := range utf16.Encode([]rune(s)) {
		h = h*31 + int32(unit)
	}
	return h
}

// Format renders the absolute value of h in base 36 behind Prefix.
func Format(h int32) string {
	v := int64(h)
	if v < 0 {
		v = -v
	}
	return Prefix + strconv.FormatInt(v, 36)
}

// Compose concatenates the fingerprint inputs. The probe is left out when
// it cannot be rendered.
func Compose(s signals.Signals) string {
	var b strings.Builder
	if probe, err := Probe(s); err == nil {
		b.WriteString(probe)
	}
	b.WriteString(s.UserAgent)
	b.WriteString(s.Language)
	b.WriteString(strconv.Itoa(s.Display.WidthPx))
	b.WriteByte('x')
	b.WriteString(strconv.Itoa(s.Display.HeightPx))
	b.WriteString(strconv.Itoa(s.Display.ColorDepthBits))
	b.WriteString(strconv.Itoa(s.TimezoneOffset))
	b.WriteString(s.Platform)
	b.WriteString(strconv.FormatBool(s.CookiesEnabled))
	b.WriteString(strconv.Itoa(s.HardwareConcurrency))
	return b.String()
}

// Probe draws ProbeText twice with overlapping offsets and colors and
// returns the serialized surface. A panicking drawable is reported as
// ErrProbe.
func Probe(s signals.Signals) (dataURL string, err error) {
	if s.Canvas == nil {
		return "", ErrNoCanvas
	}
	defer func() {
		if r := recover(); r != nil {
			dataURL, err = "", fmt.Errorf("%w: drawable panicked: %v", ErrProbe, r)
		}
	}()
	surface, err := s.Canvas(ProbeWidth, ProbeHeight)
	if err != nil {
		return "", errors.Join(ErrProbe, err)
	}
	if err := surface.FillText(ProbeText, 2, 15, probeInk); err != nil {
		return "", errors.Join(ErrProbe, err)
	}
	if err := surface.FillText(ProbeText, 4, 17, probeOverlay); err != nil {
		return "", errors.Join(ErrProbe, err)
	}
	if dataURL, err = surface.DataURL(); err != nil {
		return "", errors.Join(ErrProbe, err)
	}
	return dataURL, nil
}

// Generate returns the fingerprint for s.
func Generate(s signals.Signals) string {
	return Format(Hash(Compose(s)))
}

// Validate reports whether s still produces the stored fingerprint.
func Validate(s signals.Signals, stored string) bool {
	return Generate(s) == stored
}

// WellFormed reports whether fp has the fingerprint shape.
func WellFormed(fp string) bool {
	return fingerprintRe.MatchString(fp)
}
