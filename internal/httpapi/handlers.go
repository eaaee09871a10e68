package httpapi

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/katalvlaran/tarjan/core"
	"github.com/katalvlaran/tarjan/metric"
	"github.com/katalvlaran/tarjan/planner"
	"github.com/katalvlaran/tarjan/store"
)

// LocationJSON is the wire form of a location.
type LocationJSON struct {
	Name       string  `json:"name"`
	StreetName string  `json:"street_name,omitempty"`
	District   string  `json:"district,omitempty"`
	Lat        float64 `json:"lat"`
	Lng        float64 `json:"lng"`
}

// ModeJSON is the wire form of a transport mode.
type ModeJSON struct {
	Name            string  `json:"name"`
	SpeedKmh        float64 `json:"speed_kmh"`
	CostPerKm       float64 `json:"cost_per_km"`
	TransferTimeMin float64 `json:"transfer_time_min"`
}

// LocationsResponse is the body of GET /v1/locations.
type LocationsResponse struct {
	Home      *LocationJSON  `json:"home"`
	Locations []LocationJSON `json:"locations"`
}

// ModesResponse is the body of GET /v1/modes.
type ModesResponse struct {
	Modes []ModeJSON `json:"modes"`
}

// PlanRequest is the body of POST /v1/plan. An empty Weight means "time".
type PlanRequest struct {
	Weight  string `json:"weight"`
	Workers int    `json:"workers"`
}

// LegJSON is one hop of a planned route.
type LegJSON struct {
	From   string  `json:"from"`
	To     string  `json:"to"`
	Mode   string  `json:"mode"`
	Weight float64 `json:"weight"`
}

// NetworkJSON summarizes the graph a plan was solved on.
type NetworkJSON struct {
	Locations   int     `json:"locations"`
	Connections int     `json:"connections"`
	Total       float64 `json:"total"`
}

// PlanResponse is the body of a successful POST /v1/plan.
type PlanResponse struct {
	Weight    string      `json:"weight"`
	Unit      string      `json:"unit"`
	Stops     []string    `json:"stops"`
	Legs      []LegJSON   `json:"legs"`
	Total     float64     `json:"total"`
	Network   NetworkJSON `json:"network"`
	ElapsedMs float64     `json:"elapsed_ms"`
}

func toLocationJSON(l core.Location) LocationJSON {
	return LocationJSON{Name: l.ID, StreetName: l.Street, District: l.District, Lat: l.Lat, Lng: l.Lng}
}

func (l LocationJSON) location() core.Location {
	return core.Location{ID: l.Name, Street: l.StreetName, District: l.District, Lat: l.Lat, Lng: l.Lng}
}

func toModeJSON(m core.TransportMode) ModeJSON {
	return ModeJSON{Name: m.Name, SpeedKmh: m.SpeedKmh, CostPerKm: m.CostPerKm, TransferTimeMin: m.TransferTimeMin}
}

func (m ModeJSON) mode() core.TransportMode {
	return core.TransportMode{Name: m.Name, SpeedKmh: m.SpeedKmh, CostPerKm: m.CostPerKm, TransferTimeMin: m.TransferTimeMin}
}

func (s *Server) plan(w http.ResponseWriter, r *http.Request) {
	var req PlanRequest
	if err := decode(r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	if req.Weight == "" {
		req.Weight = metric.Time.String()
	}
	kind, err := metric.ParseKind(req.Weight)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if req.Workers < 0 {
		s.fail(w, r, fmt.Errorf("workers=%d must be >= 0: %w", req.Workers, errBadRequest))
		return
	}

	d, err := s.store.Load(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	res, err := s.planner.Plan(r.Context(), d.Locations, d.Home, d.Modes, kind, planner.WithWorkers(req.Workers))
	if err != nil {
		s.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toPlanResponse(res))
}

func toPlanResponse(res planner.Result) PlanResponse {
	out := PlanResponse{
		Weight: res.Kind.String(),
		Unit:   res.Kind.Unit(),
		Stops:  res.Route.Stops,
		Legs:   make([]LegJSON, 0, res.Route.Legs()),
		Total:  res.Route.Total,
		Network: NetworkJSON{
			Locations:   res.Graph.NodeCount(),
			Connections: res.Graph.EdgeCount(),
			Total:       res.NetworkTotal(),
		},
		ElapsedMs: float64(res.Elapsed.Microseconds()) / 1000,
	}
	for i, mode := range res.Route.Modes {
		leg := LegJSON{From: res.Route.Stops[i], To: res.Route.Stops[i+1], Mode: mode}
		if e, ok := res.Graph.Edge(leg.From, leg.To); ok {
			leg.Weight = e.Weight
		}
		out.Legs = append(out.Legs, leg)
	}

	return out
}

func (s *Server) listLocations(w http.ResponseWriter, r *http.Request) {
	d, err := s.store.Load(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	resp := LocationsResponse{Locations: make([]LocationJSON, 0, len(d.Locations))}
	if d.Home != nil {
		home := toLocationJSON(*d.Home)
		resp.Home = &home
	}
	for _, l := range d.Locations {
		resp.Locations = append(resp.Locations, toLocationJSON(l))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) addLocation(w http.ResponseWriter, r *http.Request) {
	var body LocationJSON
	if err := decode(r, &body); err != nil {
		s.fail(w, r, err)
		return
	}

	s.mu.Lock()
	err := store.AddLocation(r.Context(), s.store, body.location())
	s.mu.Unlock()
	if err != nil {
		s.fail(w, r, err)
		return
	}
	created(w, "/v1/locations", body.Name, body)
}

func (s *Server) deleteLocation(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	err := store.DeleteLocation(r.Context(), s.store, mux.Vars(r)["name"])
	s.mu.Unlock()
	if err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) listModes(w http.ResponseWriter, r *http.Request) {
	d, err := s.store.Load(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	resp := ModesResponse{Modes: make([]ModeJSON, 0, len(d.Modes))}
	for _, m := range d.Modes {
		resp.Modes = append(resp.Modes, toModeJSON(m))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) addMode(w http.ResponseWriter, r *http.Request) {
	var body ModeJSON
	if err := decode(r, &body); err != nil {
		s.fail(w, r, err)
		return
	}

	s.mu.Lock()
	err := store.AddMode(r.Context(), s.store, body.mode())
	s.mu.Unlock()
	if err != nil {
		s.fail(w, r, err)
		return
	}
	created(w, "/v1/modes", body.Name, body)
}

func (s *Server) deleteMode(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	err := store.DeleteMode(r.Context(), s.store, mux.Vars(r)["name"])
	s.mu.Unlock()
	if err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
