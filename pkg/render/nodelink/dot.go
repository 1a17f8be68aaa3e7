package nodelink

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/matzehuels/excalimaid/pkg/flowchart"
)

// Options configures DOT generation.
type Options struct {
	// Direction overrides the graph's inferred direction when non-empty.
	Direction flowchart.Direction
}

var rankdirs = map[flowchart.Direction]string{
	flowchart.DirectionTD: "TB",
	flowchart.DirectionLR: "LR",
	flowchart.DirectionBT: "BT",
	flowchart.DirectionRL: "RL",
}

// ToDOT converts a flowchart graph to Graphviz DOT source. The result can be
// rendered with [RenderSVG] or [RenderPNG], or saved for external tools.
func ToDOT(g *flowchart.Graph, opts Options) string {
	dir := opts.Direction
	if dir == "" {
		dir = g.Direction()
	}
	rankdir, ok := rankdirs[dir]
	if !ok {
		rankdir = "TB"
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	fmt.Fprintf(&buf, "  rankdir=%s;\n", rankdir)
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=filled, fillcolor=white, fontname=\"Helvetica\", fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  edge [fontname=\"Helvetica\", fontsize=12];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")

	placed := make(map[string]bool)
	for i, grp := range g.Groups() {
		var members []*flowchart.Node
		for _, id := range grp.Members {
			if n, ok := g.Node(id); ok && !placed[id] {
				placed[id] = true
				members = append(members, n)
			}
		}
		if len(members) == 0 {
			continue
		}
		fmt.Fprintf(&buf, "\n  subgraph cluster_%d {\n", i)
		fmt.Fprintf(&buf, "    label=%q;\n", grp.Label)
		buf.WriteString("    style=\"rounded,dashed\";\n")
		buf.WriteString("    color=grey50;\n")
		for _, n := range members {
			fmt.Fprintf(&buf, "    %q [%s];\n", n.ID, strings.Join(nodeAttrs(n), ", "))
		}
		buf.WriteString("  }\n")
	}

	buf.WriteString("\n")
	for _, n := range g.Nodes() {
		if placed[n.ID] {
			continue
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(nodeAttrs(n), ", "))
	}

	buf.WriteString("\n")
	for _, e := range g.Edges() {
		attrs := edgeAttrs(e)
		if len(attrs) == 0 {
			fmt.Fprintf(&buf, "  %q -> %q;\n", e.From, e.To)
			continue
		}
		fmt.Fprintf(&buf, "  %q -> %q [%s];\n", e.From, e.To, strings.Join(attrs, ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeAttrs(n *flowchart.Node) []string {
	label := n.Label
	if label == "" {
		label = n.ID
	}
	attrs := []string{fmt.Sprintf("label=%q", label)}
	switch n.Shape {
	case flowchart.ShapeRounded:
		attrs = append(attrs, `style="rounded,filled"`)
	case flowchart.ShapeDiamond:
		attrs = append(attrs, "shape=diamond")
	case flowchart.ShapeCircle:
		attrs = append(attrs, "shape=ellipse")
	case flowchart.ShapeSubroutine:
		attrs = append(attrs, "peripheries=2")
	}
	return attrs
}

func edgeAttrs(e flowchart.Edge) []string {
	var attrs []string
	if e.Label != "" {
		attrs = append(attrs, fmt.Sprintf("label=%q", e.Label))
	}
	switch e.Style {
	case flowchart.StyleDotted, flowchart.StyleDottedLine:
		attrs = append(attrs, "style=dashed")
	case flowchart.StyleThick, flowchart.StyleThickLine:
		attrs = append(attrs, "penwidth=3")
	}
	switch e.Style {
	case flowchart.StyleLine, flowchart.StyleDottedLine, flowchart.StyleThickLine:
		attrs = append(attrs, "arrowhead=none")
	}
	return attrs
}
