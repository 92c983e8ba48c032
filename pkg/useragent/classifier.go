package useragent

import (
	"fmt"

	"github.com/dmitrymomot/devicekit/pkg/cache"
	"github.com/dmitrymomot/devicekit/pkg/signals"
)

// Classification is the result of running the three rule chains over one
// set of signals.
type Classification struct {
	OS      OS      `json:"os"`
	Browser Browser `json:"browser"`
	Device  Device  `json:"device"`
}

// Classify runs the OS, browser and device chains. It is a total function:
// unmatched fields fall back to Unknown and the device type to desktop.
func Classify(s signals.Signals) Classification {
	in := newInput(s)
	return Classification{
		OS:      detectOS(in),
		Browser: detectBrowser(in),
		Device:  detectDevice(in),
	}
}

// OSRules returns the OS rule names in evaluation order, default last.
func OSRules() []string { return osChain.names() }

// BrowserRules returns the browser rule names in evaluation order, default last.
func BrowserRules() []string { return browserChain.names() }

// DeviceRules returns the device rule names in evaluation order, default last.
func DeviceRules() []string { return deviceChain.names() }

// cacheKey holds every signal the rule chains read.
type cacheKey struct {
	userAgent string
	platform  string
	touch     bool
}

// Classifier wraps Classify with an optional LRU of results. The zero value
// is usable and does not cache.
type Classifier struct {
	cache *cache.LRU[cacheKey, Classification]
}

// Option configures a Classifier.
type Option func(*Classifier)

// WithCache memoizes up to size classifications. A size of zero or less
// disables caching.
func WithCache(size int) Option {
	return func(c *Classifier) {
		if size > 0 {
			c.cache = cache.New[cacheKey, Classification](size)
		}
	}
}

// NewClassifier creates a Classifier.
func NewClassifier(opts ...Option) *Classifier {
	c := &Classifier{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Classify returns the classification for s, from cache when possible.
func (c *Classifier) Classify(s signals.Signals) Classification {
	if c == nil || c.cache == nil {
		return Classify(s)
	}
	key := cacheKey{userAgent: s.UserAgent, platform: s.Platform, touch: s.TouchCapable}
	return c.cache.GetOrLoad(key, func() Classification { return Classify(s) })
}

// Cached returns the number of memoized classifications.
func (c *Classifier) Cached() int {
	if c == nil || c.cache == nil {
		return 0
	}
	return c.cache.Len()
}

// ShortIdentifier returns a compact label for logs.
// Format: Browser/Version (OS Version, Type)
func (c Classification) ShortIdentifier() string {
	if c.Browser.Name == BrowserUnknown && c.OS.Name == OSUnknown {
		return fmt.Sprintf("Unknown %s", title(string(c.Device.Type)))
	}

	browser := c.Browser.Name
	if c.Browser.Version != Unknown {
		browser += "/" + majorVersion(c.Browser.Version)
	}

	os := c.OS.Name
	if c.OS.Version != Unknown {
		os += " " + c.OS.Version
	}

	return fmt.Sprintf("%s (%s, %s)", browser, os, title(string(c.Device.Type)))
}

// majorVersion trims a version to its first component.
func majorVersion(v string) string {
	for i := 0; i < len(v); i++ {
		if v[i] == '.' {
			return v[:i]
		}
	}
	return v
}
