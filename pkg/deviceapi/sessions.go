package deviceapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dmitrymomot/devicekit/pkg/device"
	"github.com/dmitrymomot/devicekit/pkg/events"
	"github.com/dmitrymomot/devicekit/pkg/logger"
	"github.com/dmitrymomot/devicekit/pkg/signals"
)

var (
	errNotFound         = errors.New("route not found")
	errMethodNotAllowed = errors.New("method not allowed")
)

func newSessionID() string { return uuid.NewString() }

// SessionCreated is the body of a successful POST /v1/sessions.
type SessionCreated struct {
	ID         string            `json:"id"`
	Descriptor device.Descriptor `json:"descriptor"`
}

// decodeReport reads a signals.Report. An empty body is a host exposing
// nothing.
func decodeReport(r *http.Request) (signals.Report, error) {
	var report signals.Report
	body := io.LimitReader(r.Body, maxReportBytes)
	if err := json.NewDecoder(body).Decode(&report); err != nil && !errors.Is(err, io.EOF) {
		return signals.Report{}, errors.Join(ErrInvalidReport, err)
	}
	return report, nil
}

func (a *API) newSession(id string, live *signals.Live) *events.Detector {
	session := device.NewSession(live,
		device.WithClassifier(a.classifier),
		device.WithLogger(a.logger),
	)
	sinks := append([]events.Sink{events.NewBroadcastSink(a.broadcaster)}, a.sinks...)
	return events.NewDetector(id, session,
		events.WithSinks(sinks...),
		events.WithLogger(a.logger),
	)
}

func (a *API) createSession(r *http.Request) Response {
	report, err := decodeReport(r)
	if err != nil {
		return JSONError(err)
	}

	id := a.newID()
	live := signals.NewLive(report.Environment())
	detector := a.newSession(id, live)
	info := detector.Connect(r.Context())
	a.registry.add(id, &entry{live: live, detector: detector})

	a.logger.InfoContext(r.Context(), "session connected",
		logger.Component("deviceapi"),
		logger.SessionID(id),
		logger.DeviceType(string(info.Device.Type)),
		logger.Client(info.Classification().ShortIdentifier()),
	)

	return locationResponse{
		Response: JSON(http.StatusCreated, SessionCreated{ID: id, Descriptor: info}),
		location: "/v1/sessions/" + id,
	}
}

func (a *API) sessionDeviceInfo(r *http.Request) Response {
	id := chi.URLParam(r, "id")
	detector, ok := a.registry.Lookup(id)
	if !ok {
		return JSONError(ErrSessionNotFound)
	}
	info, err := detector.RequestDeviceInfo(r.Context())
	if errors.Is(err, events.ErrNotConnected) {
		return JSONError(errors.Join(ErrSessionNotFound, err))
	}
	if err != nil {
		return JSONError(err)
	}
	return JSON(http.StatusOK, info)
}

func (a *API) updateSignals(r *http.Request) Response {
	id := chi.URLParam(r, "id")
	e, ok := a.registry.get(id)
	if !ok {
		return JSONError(ErrSessionNotFound)
	}
	report, err := decodeReport(r)
	if err != nil {
		return JSONError(err)
	}

	e.live.Set(report.Environment())
	info, err := e.detector.Refresh(r.Context())
	if errors.Is(err, events.ErrNotConnected) {
		return JSONError(errors.Join(ErrSessionNotFound, err))
	}
	if err != nil {
		return JSONError(err)
	}
	return JSON(http.StatusOK, info)
}

func (a *API) deleteSession(r *http.Request) Response {
	id := chi.URLParam(r, "id")
	if !a.registry.Remove(r.Context(), id) {
		return JSONError(ErrSessionNotFound)
	}
	a.logger.InfoContext(r.Context(), "session disconnected",
		logger.Component("deviceapi"),
		logger.SessionID(id),
	)
	return NoContent()
}

// requestDeviceInfo describes the calling client from its request headers
// alone. No session is created.
func (a *API) requestDeviceInfo(r *http.Request) Response {
	session := device.NewSession(signals.FromRequest(r),
		device.WithClassifier(a.classifier),
		device.WithLogger(a.logger),
	)
	return JSON(http.StatusOK, session.DeviceInfo())
}

type locationResponse struct {
	Response
	location string
}

func (l locationResponse) Render(w http.ResponseWriter, r *http.Request) error {
	w.Header().Set("Location", l.location)
	return l.Response.Render(w, r)
}
