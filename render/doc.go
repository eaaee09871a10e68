// Package render writes a solved plan in human- and machine-readable forms:
//
//   - Itinerary: the "From A to B using mode" listing with totals.
//   - DOT:       a Graphviz graph of the network with route legs coloured by mode.
//   - GeoJSON:   a FeatureCollection of the stops and route legs.
//
// Renderers only read their inputs.
package render
