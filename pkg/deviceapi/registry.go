package deviceapi

import (
	"context"

	"github.com/dmitrymomot/devicekit/pkg/cache"
	"github.com/dmitrymomot/devicekit/pkg/events"
	"github.com/dmitrymomot/devicekit/pkg/signals"
)

// entry is a registered session: the live source the client updates and
// the detector emitting its events.
type entry struct {
	live     *signals.Live
	detector *events.Detector
}

// Registry keeps the most recently used sessions. A session pushed out by
// capacity is disconnected, so its stream sees connectionLost.
type Registry struct {
	sessions *cache.LRU[string, *entry]
}

// NewRegistry creates a registry holding at most capacity sessions.
func NewRegistry(capacity int) *Registry {
	return &Registry{
		sessions: cache.New(max(capacity, 1),
			cache.WithEvictCallback(func(_ string, e *entry) {
				e.detector.Disconnect(context.Background())
			}),
		),
	}
}

func (r *Registry) add(id string, e *entry) {
	r.sessions.Put(id, e)
}

// Lookup returns the session with id, marking it recently used.
func (r *Registry) Lookup(id string) (*events.Detector, bool) {
	e, ok := r.get(id)
	if !ok {
		return nil, false
	}
	return e.detector, true
}

func (r *Registry) get(id string) (*entry, bool) {
	return r.sessions.Get(id)
}

// Remove disconnects and drops the session with id.
func (r *Registry) Remove(ctx context.Context, id string) bool {
	e, ok := r.sessions.Remove(id)
	if !ok {
		return false
	}
	e.detector.Disconnect(ctx)
	return true
}

// Len returns the number of registered sessions.
func (r *Registry) Len() int { return r.sessions.Len() }

// Close disconnects every session.
func (r *Registry) Close() { r.sessions.Clear() }
