package render

import (
	"encoding/json"
	"io"

	"github.com/katalvlaran/tarjan/core"
	"github.com/katalvlaran/tarjan/tsp"
)

// FeatureCollection is the GeoJSON document written by GeoJSON.
type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

// Feature is a GeoJSON feature.
type Feature struct {
	Type       string         `json:"type"`
	Geometry   Geometry       `json:"geometry"`
	Properties map[string]any `json:"properties"`
}

// Geometry is a Point ([lng, lat]) or a LineString ([[lng, lat], ...]).
type Geometry struct {
	Type        string `json:"type"`
	Coordinates any    `json:"coordinates"`
}

// Collection builds the FeatureCollection for route over g: one Point per
// node followed by one LineString per leg, in route order. Legs whose
// endpoints are unknown to g are skipped.
func Collection(g *core.Graph, route tsp.Route) FeatureCollection {
	fc := FeatureCollection{Type: "FeatureCollection", Features: []Feature{}}

	order := make(map[string]int, len(route.Stops))
	for i, id := range route.Stops {
		if _, seen := order[id]; !seen {
			order[id] = i
		}
	}
	for _, loc := range g.Locations() {
		props := map[string]any{
			"name":     loc.ID,
			"street":   loc.Street,
			"district": loc.District,
		}
		if i, ok := order[loc.ID]; ok {
			props["stop"] = i
		}
		fc.Features = append(fc.Features, Feature{
			Type:       "Feature",
			Geometry:   Geometry{Type: "Point", Coordinates: [2]float64{loc.Lng, loc.Lat}},
			Properties: props,
		})
	}

	for i, mode := range route.Modes {
		from, okFrom := g.Node(route.Stops[i])
		to, okTo := g.Node(route.Stops[i+1])
		if !okFrom || !okTo {
			continue
		}
		props := map[string]any{
			"leg":   i + 1,
			"from":  from.ID,
			"to":    to.ID,
			"mode":  mode,
			"color": ColorOf(mode),
		}
		if e, ok := g.Edge(from.ID, to.ID); ok {
			props["weight"] = e.Weight
		}
		fc.Features = append(fc.Features, Feature{
			Type: "Feature",
			Geometry: Geometry{Type: "LineString", Coordinates: [][2]float64{
				{from.Lng, from.Lat},
				{to.Lng, to.Lat},
			}},
			Properties: props,
		})
	}

	return fc
}

// GeoJSON writes Collection(g, route) as indented JSON.
func GeoJSON(w io.Writer, g *core.Graph, route tsp.Route) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(Collection(g, route))
}
