package device

import (
	"log/slog"
	"time"

	"github.com/dmitrymomot/devicekit/pkg/fingerprint"
	"github.com/dmitrymomot/devicekit/pkg/logger"
	"github.com/dmitrymomot/devicekit/pkg/signals"
	"github.com/dmitrymomot/devicekit/pkg/useragent"
)

// Session represents one client session. It owns the signal source and the
// memoized fingerprint, so every descriptor it produces carries the same
// fingerprint.
type Session struct {
	src         signals.Source
	classifier  *useragent.Classifier
	fingerprint *fingerprint.Generator
	now         func() time.Time
	logger      *slog.Logger
}

// Option configures a Session.
type Option func(*Session)

// WithClassifier shares a classifier, typically one with a result cache,
// between sessions.
func WithClassifier(c *useragent.Classifier) Option {
	return func(s *Session) {
		if c != nil {
			s.classifier = c
		}
	}
}

// WithClock overrides the time source for capturedAtEpochMs.
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewSession creates a session reading from src. A nil src behaves like a
// host that exposes nothing.
func NewSession(src signals.Source, opts ...Option) *Session {
	s := &Session{
		src:        src,
		classifier: useragent.NewClassifier(),
		now:        time.Now,
		logger:     slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.fingerprint = fingerprint.NewGenerator(src)
	return s
}

// Source returns the session's signal source.
func (s *Session) Source() signals.Source { return s.src }

// Fingerprint returns the session fingerprint, computing it on first use.
func (s *Session) Fingerprint() string { return s.fingerprint.Fingerprint() }

// DeviceInfo reads the current signals, classifies them and stamps the
// result. It never fails.
func (s *Session) DeviceInfo() Descriptor {
	sig := signals.Read(s.src)
	c := s.classifier.Classify(sig)

	d := Descriptor{
		Platform:            sig.Platform,
		UserAgent:           sig.UserAgent,
		TouchCapable:        sig.TouchCapable,
		MaxTouchPoints:      sig.MaxTouchPoints,
		HardwareConcurrency: sig.HardwareConcurrency,
		Display:             sig.Display,
		OS:                  c.OS,
		Browser:             c.Browser,
		Device:              c.Device,
		Connection:          sig.Connection,
		Language:            sig.Language,
		Fingerprint:         s.Fingerprint(),
		CapturedAtEpochMs:   s.now().UnixMilli(),
	}

	s.logger.Debug("device info assembled",
		logger.Component("device"),
		logger.Fingerprint(d.Fingerprint),
		logger.DeviceType(string(d.Device.Type)),
		logger.Client(c.ShortIdentifier()),
	)
	if err := d.Validate(); err != nil {
		s.logger.Warn("device info violates invariants", logger.Error(err))
	}
	return d
}
