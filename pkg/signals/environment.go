package signals

import (
	"sync"

	"github.com/dmitrymomot/devicekit/pkg/canvas"
)

// NetworkInfo mirrors a network-information capability object.
// The object itself may exist while some of its attributes do not.
type NetworkInfo struct {
	Type          Optional[string]
	EffectiveType Optional[string]
}

// Environment is a snapshot of everything a client host exposes.
// Every property is optional; Read substitutes documented defaults.
type Environment struct {
	UserAgent           Optional[string]
	Platform            Optional[string]
	ScreenWidth         Optional[int]
	ScreenHeight        Optional[int]
	ViewportWidth       Optional[int]
	ViewportHeight      Optional[int]
	PixelRatio          Optional[float64]
	ColorDepth          Optional[int]
	PixelDepth          Optional[int]
	TouchEvents         Optional[bool]
	MaxTouchPoints      Optional[int]
	HardwareConcurrency Optional[int]
	Network             Optional[NetworkInfo]
	Orientation         Optional[string]
	Language            Optional[string]
	TimezoneOffset      Optional[int]
	CookiesEnabled      Optional[bool]
	Canvas              Optional[canvas.Factory]
}

// Source provides the current environment of a client host.
type Source interface {
	Snapshot() Environment
}

// Snapshot makes a fixed Environment usable as a Source.
func (e Environment) Snapshot() Environment { return e }

// Live is a Source whose environment can be replaced while a session is
// running, e.g. when the client reports a rotation. Safe for concurrent use.
type Live struct {
	mu  sync.RWMutex
	env Environment
}

// NewLive creates a Live source seeded with env.
func NewLive(env Environment) *Live {
	return &Live{env: env}
}

func (l *Live) Snapshot() Environment {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.env
}

// Set replaces the whole environment.
func (l *Live) Set(env Environment) {
	l.mu.Lock()
	l.env = env
	l.mu.Unlock()
}

// Update mutates the environment in place under the write lock.
func (l *Live) Update(fn func(env *Environment)) {
	if fn == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	fn(&l.env)
}
