package mermaid

import (
	"strings"

	"github.com/matzehuels/excalimaid/pkg/flowchart"
)

const (
	indent      = "    "
	innerIndent = indent + indent

	// unlabeledSubgraph is the title emitted for groups without a label.
	unlabeledSubgraph = `" "`
)

// Options configures rendering.
type Options struct {
	// Direction overrides the graph's inferred direction when non-empty.
	Direction flowchart.Direction
}

var brackets = map[flowchart.Shape][2]string{
	flowchart.ShapeRectangle:  {"[", "]"},
	flowchart.ShapeRounded:    {"(", ")"},
	flowchart.ShapeDiamond:    {"{", "}"},
	flowchart.ShapeCircle:     {"((", "))"},
	flowchart.ShapeSubroutine: {"[[", "]]"},
}

var connectors = map[flowchart.EdgeStyle]string{
	flowchart.StyleArrow:      "-->",
	flowchart.StyleLine:       "---",
	flowchart.StyleDotted:     "-.->",
	flowchart.StyleDottedLine: "-.-",
	flowchart.StyleThick:      "==>",
	flowchart.StyleThickLine:  "===",
}

// Connector returns the Mermaid link token for a style; unknown styles
// render as a plain arrow.
func Connector(s flowchart.EdgeStyle) string {
	if c, ok := connectors[s]; ok {
		return c
	}
	return connectors[flowchart.StyleArrow]
}

// Render produces Mermaid flowchart markup for g, terminated by a newline.
func Render(g *flowchart.Graph, opts Options) string {
	dir := opts.Direction
	if dir == "" {
		dir = g.Direction()
	}
	if dir == "" {
		dir = flowchart.DefaultDirection
	}

	lines := []string{"graph " + string(dir)}

	nodes := g.Nodes()
	ids := make(map[string]string, len(nodes))
	for i, n := range nodes {
		ids[n.ID] = ShortID(i)
	}

	grouped := make(map[string]bool)
	for _, grp := range g.Groups() {
		for _, m := range grp.Members {
			grouped[m] = true
		}
	}

	rendered := make(map[string]bool, len(nodes))
	for _, grp := range g.Groups() {
		lines = append(lines, indent+"subgraph "+subgraphTitle(grp.Label))
		for _, m := range grp.Members {
			n, ok := g.Node(m)
			if !ok || rendered[m] {
				continue
			}
			rendered[m] = true
			lines = append(lines, innerIndent+declareNode(ids[m], n))
		}
		lines = append(lines, indent+"end")
	}

	for _, n := range nodes {
		if grouped[n.ID] || rendered[n.ID] {
			continue
		}
		rendered[n.ID] = true
		lines = append(lines, indent+declareNode(ids[n.ID], n))
	}

	for _, e := range g.Edges() {
		src, ok := ids[e.From]
		if !ok {
			continue
		}
		dst, ok := ids[e.To]
		if !ok {
			continue
		}
		lines = append(lines, indent+linkLine(src, dst, e))
	}

	return strings.Join(lines, "\n") + "\n"
}

func declareNode(sid string, n *flowchart.Node) string {
	label := n.Label
	if label == "" {
		label = sid
	}
	b, ok := brackets[n.Shape]
	if !ok {
		b = brackets[flowchart.ShapeRectangle]
	}
	return sid + b[0] + QuoteLabel(label) + b[1]
}

func linkLine(src, dst string, e flowchart.Edge) string {
	conn := Connector(e.Style)
	if e.Label == "" {
		return src + " " + conn + " " + dst
	}
	return src + " " + conn + "|" + QuoteLabel(e.Label) + "| " + dst
}

// subgraphTitle always quotes, since subgraph titles are free text.
func subgraphTitle(label string) string {
	if label == "" {
		return unlabeledSubgraph
	}
	quoted := QuoteLabel(label)
	if strings.HasPrefix(quoted, `"`) {
		return quoted
	}
	return `"` + quoted + `"`
}
