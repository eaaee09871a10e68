// Package httpapi exposes the planner and its stored inputs over HTTP.
//
// Routes:
//
//	POST   /v1/plan               solve the stored dataset
//	GET    /v1/locations          home and relatives
//	POST   /v1/locations          add one location ("home" sets the home)
//	DELETE /v1/locations/{name}   remove one location
//	GET    /v1/modes              transport modes
//	POST   /v1/modes              add one mode
//	DELETE /v1/modes/{name}       remove one mode
//	GET    /metrics               Prometheus exposition
//	GET    /healthz               liveness
//
// Mutations are load-modify-save against the store and are serialized by
// the Server.
package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/gorilla/mux"

	"github.com/katalvlaran/tarjan/builder"
	"github.com/katalvlaran/tarjan/internal/logging"
	"github.com/katalvlaran/tarjan/internal/observability"
	"github.com/katalvlaran/tarjan/metric"
	"github.com/katalvlaran/tarjan/planner"
	"github.com/katalvlaran/tarjan/store"
	"github.com/katalvlaran/tarjan/tsp"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 1 << 20

// Server holds the HTTP handlers.
type Server struct {
	store   store.Store
	planner *planner.Service
	metrics *observability.PlannerCollector
	log     logging.Logger
	router  *mux.Router

	mu sync.Mutex // serializes store mutations
}

// New wires the routes. A nil log drops logs and a nil collector disables
// metrics and the /metrics route.
func New(st store.Store, svc *planner.Service, metrics *observability.PlannerCollector, log logging.Logger) *Server {
	if log == nil {
		log = logging.Noop()
	}
	s := &Server{
		store:   st,
		planner: svc,
		metrics: metrics,
		log:     log.With(logging.String("component", "httpapi")),
		router:  mux.NewRouter(),
	}
	s.routes()

	return s
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) routes() {
	r := s.router
	r.Use(s.instrument)

	v1 := r.PathPrefix("/v1").Subrouter()
	v1.HandleFunc("/plan", s.plan).Methods(http.MethodPost)
	v1.HandleFunc("/locations", s.listLocations).Methods(http.MethodGet)
	v1.HandleFunc("/locations", s.addLocation).Methods(http.MethodPost)
	v1.HandleFunc("/locations/{name}", s.deleteLocation).Methods(http.MethodDelete)
	v1.HandleFunc("/modes", s.listModes).Methods(http.MethodGet)
	v1.HandleFunc("/modes", s.addMode).Methods(http.MethodPost)
	v1.HandleFunc("/modes/{name}", s.deleteMode).Methods(http.MethodDelete)

	if s.metrics != nil {
		r.Handle("/metrics", s.metrics.Handler()).Methods(http.MethodGet)
	}
	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)
}

// statusRecorder captures the response code for metrics and logs.
type statusRecorder struct {
	http.ResponseWriter
	code int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.code = code
	r.ResponseWriter.WriteHeader(code)
}

// instrument attaches a request ID, counts the request by route template
// and logs its outcome.
func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, id := logging.EnsureRequestID(r.Context())
		w.Header().Set("X-Request-ID", id)

		route := r.URL.Path
		if cur := mux.CurrentRoute(r); cur != nil {
			if tpl, err := cur.GetPathTemplate(); err == nil {
				route = tpl
			}
		}

		rec := &statusRecorder{ResponseWriter: w, code: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(rec, r.WithContext(ctx))

		s.metrics.ObserveHTTP(route, r.Method, rec.code)
		s.log.Debug(ctx, "request served",
			logging.String("method", r.Method),
			logging.String("route", route),
			logging.Int("code", rec.code),
			logging.Duration("elapsed", time.Since(start)),
		)
	})
}

// statusOf maps domain errors onto HTTP status codes.
func statusOf(err error) int {
	switch {
	case errors.Is(err, metric.ErrInvalidWeightKind),
		errors.Is(err, builder.ErrEmptyTransportModes),
		errors.Is(err, builder.ErrEmptyNodeSet),
		errors.Is(err, builder.ErrInvalidTransportMode),
		errors.Is(err, builder.ErrDuplicateTransportMode),
		errors.Is(err, builder.ErrEmptyLocationID),
		errors.Is(err, builder.ErrDuplicateLocation),
		errors.Is(err, builder.ErrCoordinateOutOfRange),
		errors.Is(err, tsp.ErrMissingHome),
		errors.Is(err, store.ErrInvalid),
		errors.Is(err, errBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, store.ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, tsp.ErrTooManyNodes):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

var errBadRequest = errors.New("httpapi: bad request")

// fail writes err with its mapped status. Server-side failures are logged
// at error level and their text is not echoed to the client.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	code := statusOf(err)
	msg := err.Error()
	if code >= http.StatusInternalServerError {
		s.log.Error(r.Context(), "request failed",
			logging.String("path", r.URL.Path),
			logging.Err(err),
		)
		msg = http.StatusText(code)
	}
	writeJSON(w, code, map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// decode reads a single JSON object from r's body into v.
func decode(r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errors.Join(errBadRequest, err)
	}

	return nil
}

// created answers 201 with a Location header pointing at prefix/name.
func created(w http.ResponseWriter, prefix, name string, v any) {
	w.Header().Set("Location", prefix+"/"+url.PathEscape(name))
	writeJSON(w, http.StatusCreated, v)
}
