package deviceapi

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/devicekit/pkg/broadcast"
	"github.com/dmitrymomot/devicekit/pkg/environment"
	"github.com/dmitrymomot/devicekit/pkg/events"
	"github.com/dmitrymomot/devicekit/pkg/fingerprint"
	"github.com/dmitrymomot/devicekit/pkg/httpserver"
	"github.com/dmitrymomot/devicekit/pkg/requestid"
	"github.com/dmitrymomot/devicekit/pkg/useragent"
)

const (
	defaultSessionCapacity = 1024
	defaultEventBuffer     = 32
	defaultKeepAlive       = 15 * time.Second
	maxReportBytes         = 64 << 10
)

// API serves device descriptors and session events over HTTP.
type API struct {
	registry    *Registry
	broadcaster broadcast.Broadcaster[events.Event]
	classifier  *useragent.Classifier
	sinks       []events.Sink
	checks      []httpserver.Check
	env         environment.Environment
	logger      *slog.Logger
	keepAlive   time.Duration
	newID       func() string

	capacity    int
	eventBuffer int
}

// Option configures an API.
type Option func(*API)

func WithLogger(l *slog.Logger) Option {
	return func(a *API) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithClassifier shares c between all sessions.
func WithClassifier(c *useragent.Classifier) Option {
	return func(a *API) {
		if c != nil {
			a.classifier = c
		}
	}
}

// WithSinks adds sinks every session publishes to besides the in-process
// broadcaster, e.g. an events.RedisSink.
func WithSinks(sinks ...events.Sink) Option {
	return func(a *API) { a.sinks = append(a.sinks, sinks...) }
}

// WithBroadcaster replaces the in-memory broadcaster event streams read from.
func WithBroadcaster(b broadcast.Broadcaster[events.Event]) Option {
	return func(a *API) {
		if b != nil {
			a.broadcaster = b
		}
	}
}

// WithSessionCapacity bounds the number of live sessions.
func WithSessionCapacity(n int) Option {
	return func(a *API) {
		if n > 0 {
			a.capacity = n
		}
	}
}

// WithEventBuffer sets the per-stream buffer of the default broadcaster.
func WithEventBuffer(n int) Option {
	return func(a *API) {
		if n > 0 {
			a.eventBuffer = n
		}
	}
}

// WithHealthChecks adds readiness checks to GET /health.
func WithHealthChecks(checks ...httpserver.Check) Option {
	return func(a *API) { a.checks = append(a.checks, checks...) }
}

// WithEnvironment tags request contexts with env.
func WithEnvironment(env environment.Environment) Option {
	return func(a *API) { a.env = env }
}

// WithKeepAlive sets the interval of comment frames on idle event streams.
func WithKeepAlive(d time.Duration) Option {
	return func(a *API) {
		if d > 0 {
			a.keepAlive = d
		}
	}
}

// WithIDGenerator overrides session ID generation.
func WithIDGenerator(fn func() string) Option {
	return func(a *API) {
		if fn != nil {
			a.newID = fn
		}
	}
}

// New creates an API. Call Close when done to disconnect sessions.
func New(opts ...Option) *API {
	a := &API{
		classifier:  useragent.NewClassifier(),
		env:         environment.Development,
		logger:      slog.New(slog.DiscardHandler),
		keepAlive:   defaultKeepAlive,
		newID:       newSessionID,
		capacity:    defaultSessionCapacity,
		eventBuffer: defaultEventBuffer,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.broadcaster == nil {
		a.broadcaster = broadcast.NewMemoryBroadcaster[events.Event](a.eventBuffer)
	}
	a.registry = NewRegistry(a.capacity)
	return a
}

// Registry exposes the live sessions.
func (a *API) Registry() *Registry { return a.registry }

// Close disconnects every session and closes the broadcaster, ending all
// event streams.
func (a *API) Close() error {
	a.registry.Close()
	return a.broadcaster.Close()
}

// Routes returns the HTTP handler.
func (a *API) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(
		requestid.Middleware,
		environment.Middleware(a.env),
		a.recoverer,
		fingerprint.Middleware,
		a.logRequests,
	)

	r.NotFound(handle(a.logger, func(*http.Request) Response {
		return JSONError(HTTPError{Status: http.StatusNotFound, Code: "not_found", Err: errNotFound})
	}))
	r.MethodNotAllowed(handle(a.logger, func(*http.Request) Response {
		return JSONError(HTTPError{Status: http.StatusMethodNotAllowed, Code: "method_not_allowed", Err: errMethodNotAllowed})
	}))

	r.Get("/health", httpserver.HealthCheckHandler(a.logger, a.checks...))

	r.Route("/v1", func(r chi.Router) {
		r.Get("/device-info", handle(a.logger, a.requestDeviceInfo))

		r.Post("/sessions", handle(a.logger, a.createSession))
		r.Route("/sessions/{id}", func(r chi.Router) {
			r.Delete("/", handle(a.logger, a.deleteSession))
			r.Get("/device-info", handle(a.logger, a.sessionDeviceInfo))
			r.Put("/signals", handle(a.logger, a.updateSignals))
			r.Get("/events", a.streamEvents)
		})
	})

	return r
}
