package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/katalvlaran/tarjan/core"
	"github.com/katalvlaran/tarjan/tsp"
)

// DefaultColor is used for modes without an entry in ModeColors.
const DefaultColor = "gray"

// ModeColors maps well-known transport modes to their drawing colour.
var ModeColors = map[string]string{
	"bus":     "red",
	"bicycle": "green",
	"walking": "blue",
	"train":   "black",
}

// ColorOf returns the colour for mode.
func ColorOf(mode string) string {
	if c, ok := ModeColors[mode]; ok {
		return c
	}

	return DefaultColor
}

// DOT writes g as an undirected Graphviz graph. Every edge is drawn dotted
// and light; legs of route are drawn bold in their mode colour and labelled
// with their order.
func DOT(w io.Writer, g *core.Graph, route tsp.Route) error {
	var b strings.Builder
	b.WriteString("graph tarjan {\n")
	b.WriteString("  node [shape=ellipse, fontname=\"Helvetica\"];\n")
	b.WriteString("  edge [fontname=\"Helvetica\", fontsize=10];\n")

	home := ""
	if len(route.Stops) > 0 {
		home = route.Stops[0]
	}
	for _, loc := range g.Locations() {
		label := loc.ID
		if loc.Street != "" {
			label += "\n" + loc.Street
		}
		attrs := "label=" + strconv.Quote(label)
		if loc.ID == home {
			attrs += ", shape=doublecircle"
		}
		fmt.Fprintf(&b, "  %s [%s];\n", strconv.Quote(loc.ID), attrs)
	}

	legs := make(map[[2]string]int, len(route.Modes))
	for i := range route.Modes {
		legs[pair(route.Stops[i], route.Stops[i+1])] = i + 1
	}
	for _, e := range g.Edges() {
		weight := strconv.FormatFloat(e.Weight, 'f', 2, 64)
		if n, ok := legs[pair(e.U, e.V)]; ok {
			fmt.Fprintf(&b, "  %s -- %s [color=%s, penwidth=2.5, label=%s];\n",
				strconv.Quote(e.U), strconv.Quote(e.V), ColorOf(e.Mode),
				strconv.Quote(fmt.Sprintf("%d. %s %s", n, e.Mode, weight)))
			continue
		}
		fmt.Fprintf(&b, "  %s -- %s [color=lightgray, style=dotted, label=%s];\n",
			strconv.Quote(e.U), strconv.Quote(e.V), strconv.Quote(weight))
	}
	b.WriteString("}\n")

	_, err := io.WriteString(w, b.String())

	return err
}

func pair(u, v string) [2]string {
	if v < u {
		u, v = v, u
	}

	return [2]string{u, v}
}
