package deviceapi

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/devicekit/pkg/broadcast"
	"github.com/dmitrymomot/devicekit/pkg/events"
	"github.com/dmitrymomot/devicekit/pkg/logger"
)

// streamEvents sends the session's events as server-sent events until the
// client leaves, the session disconnects or the subscriber falls behind.
func (a *API) streamEvents(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	detector, ok := a.registry.Lookup(id)
	if !ok {
		_ = JSONError(ErrSessionNotFound).Render(w, r)
		return
	}

	sub := a.broadcaster.Subscribe(ctx, broadcast.WithTopic(id))
	defer sub.Close()

	// disconnected between lookup and subscribe
	if !detector.Active() {
		_ = JSONError(ErrSessionNotFound).Render(w, r)
		return
	}

	h := w.Header()
	h.Set("Content-Type", "text/event-stream")
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")
	h.Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)

	rc := http.NewResponseController(w)
	if err := rc.Flush(); err != nil {
		a.logger.ErrorContext(ctx, "event stream not supported",
			logger.Component("deviceapi"),
			logger.SessionID(id),
			logger.Error(err),
		)
		return
	}

	ticker := time.NewTicker(a.keepAlive)
	defer ticker.Stop()

	messages := sub.Receive(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := io.WriteString(w, ": keep-alive\n\n"); err != nil {
				return
			}
		case msg, ok := <-messages:
			if !ok {
				return
			}
			if err := writeEvent(w, msg.Data); err != nil {
				a.logger.WarnContext(ctx, "failed to write event",
					logger.Component("deviceapi"),
					logger.SessionID(id),
					logger.Event(string(msg.Data.Type)),
					logger.Error(err),
				)
				return
			}
			if msg.Data.Type == events.ConnectionLost {
				_ = rc.Flush()
				return
			}
		}
		if err := rc.Flush(); err != nil {
			return
		}
	}
}

func writeEvent(w io.Writer, e events.Event) error {
	data, err := json.Marshal(e)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "id: %s\nevent: %s\ndata: %s\n\n", e.ID, e.Type, data)
	return err
}
