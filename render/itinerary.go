package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/katalvlaran/tarjan/metric"
	"github.com/katalvlaran/tarjan/planner"
)

// Itinerary writes the network statistics followed by one line per leg:
//
//	From home to aunt using bus
//
// and the route total in the plan's metric.
func Itinerary(w io.Writer, res planner.Result) error {
	var (
		b     strings.Builder
		kind  = res.Kind.String()
		route = res.Route
	)
	if res.Graph != nil {
		b.WriteString("Network Statistics:\n")
		fmt.Fprintf(&b, "Number of locations: %d\n", res.Graph.NodeCount())
		fmt.Fprintf(&b, "Number of transport connections: %d\n", res.Graph.EdgeCount())
		fmt.Fprintf(&b, "Total network %s: %.2f\n\n", kind, res.NetworkTotal())
	}

	b.WriteString("Efficient Route:\n")
	for i, mode := range route.Modes {
		fmt.Fprintf(&b, "From %s to %s using %s\n", route.Stops[i], route.Stops[i+1], mode)
	}
	fmt.Fprintf(&b, "Minimum %s: %.2f", kind, route.Total)
	if res.Kind == metric.Time {
		b.WriteString(" " + res.Kind.Unit())
	}
	b.WriteString("\n")

	_, err := io.WriteString(w, b.String())

	return err
}
