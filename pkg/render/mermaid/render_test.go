package mermaid

import (
	"regexp"
	"strings"
	"testing"

	"github.com/matzehuels/excalimaid/pkg/flowchart"
)

func mustAdd(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatal(err)
	}
}

func TestRender_EmptyGraph(t *testing.T) {
	got := Render(flowchart.New(), Options{})
	if got != "graph TD\n" {
		t.Errorf("Render(empty) = %q, want %q", got, "graph TD\n")
	}
}

func TestRender_DirectionOverride(t *testing.T) {
	g := flowchart.New()
	g.SetDirection(flowchart.DirectionLR)

	if got := Render(g, Options{}); got != "graph LR\n" {
		t.Errorf("inferred = %q", got)
	}
	if got := Render(g, Options{Direction: flowchart.DirectionBT}); got != "graph BT\n" {
		t.Errorf("override = %q", got)
	}
}

func TestRender_Shapes(t *testing.T) {
	g := flowchart.New()
	mustAdd(t, g.AddNode(flowchart.Node{ID: "r", Label: "Rect", Shape: flowchart.ShapeRectangle}))
	mustAdd(t, g.AddNode(flowchart.Node{ID: "o", Label: "Round", Shape: flowchart.ShapeRounded}))
	mustAdd(t, g.AddNode(flowchart.Node{ID: "d", Label: "Choice", Shape: flowchart.ShapeDiamond}))
	mustAdd(t, g.AddNode(flowchart.Node{ID: "c", Label: "Circle", Shape: flowchart.ShapeCircle}))
	mustAdd(t, g.AddNode(flowchart.Node{ID: "s", Label: "Sub", Shape: flowchart.ShapeSubroutine}))
	mustAdd(t, g.AddNode(flowchart.Node{ID: "x", Label: "Odd", Shape: "hexagon"}))

	want := strings.Join([]string{
		"graph TD",
		"    A[Rect]",
		"    B(Round)",
		"    C{Choice}",
		"    D((Circle))",
		"    E[[Sub]]",
		"    F[Odd]",
	}, "\n") + "\n"

	if got := Render(g, Options{}); got != want {
		t.Errorf("Render() =\n%s\nwant\n%s", got, want)
	}
}

func TestRender_EmptyLabelFallsBackToShortID(t *testing.T) {
	g := flowchart.New()
	mustAdd(t, g.AddNode(flowchart.Node{ID: "n1", Shape: flowchart.ShapeRectangle}))
	mustAdd(t, g.AddNode(flowchart.Node{ID: "n2", Shape: flowchart.ShapeCircle}))

	got := Render(g, Options{})
	if !strings.Contains(got, "    A[A]\n") || !strings.Contains(got, "    B((B))\n") {
		t.Errorf("Render() = %q, want short ids as labels", got)
	}
}

func TestRender_Connectors(t *testing.T) {
	styles := []struct {
		style flowchart.EdgeStyle
		want  string
	}{
		{flowchart.StyleArrow, "-->"},
		{flowchart.StyleLine, "---"},
		{flowchart.StyleDotted, "-.->"},
		{flowchart.StyleDottedLine, "-.-"},
		{flowchart.StyleThick, "==>"},
		{flowchart.StyleThickLine, "==="},
		{"wavy", "-->"},
	}

	for _, tt := range styles {
		t.Run(string(tt.style), func(t *testing.T) {
			if got := Connector(tt.style); got != tt.want {
				t.Errorf("Connector(%q) = %q, want %q", tt.style, got, tt.want)
			}
		})
	}
}

func TestRender_EdgesWithLabels(t *testing.T) {
	g := flowchart.New()
	mustAdd(t, g.AddNode(flowchart.Node{ID: "d", Label: "Valid?", Shape: flowchart.ShapeDiamond}))
	mustAdd(t, g.AddNode(flowchart.Node{ID: "y", Label: "Save", Shape: flowchart.ShapeRectangle}))
	mustAdd(t, g.AddNode(flowchart.Node{ID: "n", Label: "Reject", Shape: flowchart.ShapeRectangle}))
	mustAdd(t, g.AddEdge(flowchart.Edge{From: "d", To: "y", Label: "Yes", Style: flowchart.StyleArrow}))
	mustAdd(t, g.AddEdge(flowchart.Edge{From: "d", To: "n", Label: "No", Style: flowchart.StyleDotted}))
	mustAdd(t, g.AddEdge(flowchart.Edge{From: "y", To: "n", Style: flowchart.StyleThickLine}))

	got := Render(g, Options{})

	if !regexp.MustCompile(`A\{Valid\?\}`).MatchString(got) {
		t.Errorf("missing brace-delimited Valid? node in %q", got)
	}
	for _, line := range []string{
		"    A -->|Yes| B\n",
		"    A -.->|No| C\n",
		"    B === C\n",
	} {
		if !strings.Contains(got, line) {
			t.Errorf("Render() missing %q in:\n%s", line, got)
		}
	}
}

func TestRender_QuotedLabels(t *testing.T) {
	g := flowchart.New()
	mustAdd(t, g.AddNode(flowchart.Node{ID: "db", Label: "DB: Main", Shape: flowchart.ShapeRectangle}))
	mustAdd(t, g.AddNode(flowchart.Node{ID: "q", Label: `He said "go"`, Shape: flowchart.ShapeRounded}))
	mustAdd(t, g.AddEdge(flowchart.Edge{From: "db", To: "q", Label: "a|b", Style: flowchart.StyleArrow}))

	got := Render(g, Options{})
	for _, want := range []string{
		`A["DB: Main"]`,
		`B("He said #quot;go#quot;")`,
		`A -->|"a|b"| B`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("Render() missing %q in:\n%s", want, got)
		}
	}
}

func TestRender_Subgraphs(t *testing.T) {
	g := flowchart.New()
	for _, id := range []string{"a", "b", "c", "d"} {
		mustAdd(t, g.AddNode(flowchart.Node{ID: id, Label: strings.ToUpper(id) + "x", Shape: flowchart.ShapeRectangle}))
	}
	mustAdd(t, g.AddGroup(flowchart.Group{ID: "f", Label: "Backend", Members: []string{"b", "c"}, Origin: flowchart.OriginFrame}))
	mustAdd(t, g.AddGroup(flowchart.Group{ID: "g", Members: []string{"c", "a"}, Origin: flowchart.OriginGroup}))
	mustAdd(t, g.AddEdge(flowchart.Edge{From: "a", To: "d", Style: flowchart.StyleArrow}))

	want := strings.Join([]string{
		"graph TD",
		`    subgraph "Backend"`,
		"        B[Bx]",
		"        C[Cx]",
		"    end",
		`    subgraph " "`,
		"        A[Ax]",
		"    end",
		"    D[Dx]",
		"    A --> D",
	}, "\n") + "\n"

	if got := Render(g, Options{}); got != want {
		t.Errorf("Render() =\n%s\nwant\n%s", got, want)
	}
}

func TestRender_SubgraphTitleEscaping(t *testing.T) {
	g := flowchart.New()
	mustAdd(t, g.AddNode(flowchart.Node{ID: "a", Label: "A", Shape: flowchart.ShapeRectangle}))
	mustAdd(t, g.AddNode(flowchart.Node{ID: "b", Label: "B", Shape: flowchart.ShapeRectangle}))
	mustAdd(t, g.AddGroup(flowchart.Group{ID: "f", Label: `Zone "1": API`, Members: []string{"a"}}))
	mustAdd(t, g.AddGroup(flowchart.Group{ID: "h", Label: "two\nlines", Members: []string{"b"}}))

	got := Render(g, Options{})
	if !strings.Contains(got, `subgraph "Zone #quot;1#quot;: API"`) {
		t.Errorf("escaped title missing in:\n%s", got)
	}
	if !strings.Contains(got, `subgraph "two<br/>lines"`) {
		t.Errorf("multi-line title missing in:\n%s", got)
	}
}

func TestRender_EachNodeOnce(t *testing.T) {
	g := flowchart.New()
	mustAdd(t, g.AddNode(flowchart.Node{ID: "a", Label: "Shared", Shape: flowchart.ShapeRectangle}))
	mustAdd(t, g.AddNode(flowchart.Node{ID: "b", Label: "Other", Shape: flowchart.ShapeRectangle}))
	mustAdd(t, g.AddGroup(flowchart.Group{ID: "g1", Members: []string{"a", "b"}}))
	mustAdd(t, g.AddGroup(flowchart.Group{ID: "g2", Members: []string{"a", "b"}}))

	got := Render(g, Options{})
	if n := strings.Count(got, "[Shared]"); n != 1 {
		t.Errorf("shared node declared %d times, want 1:\n%s", n, got)
	}
	if n := strings.Count(got, "subgraph"); n != 2 {
		t.Errorf("want both subgraph blocks even when the second is empty, got %d", n)
	}
}

func TestRender_MultilineNodeLabel(t *testing.T) {
	g := flowchart.New()
	mustAdd(t, g.AddNode(flowchart.Node{ID: "a", Label: "first\nsecond", Shape: flowchart.ShapeRectangle}))

	got := Render(g, Options{})
	if !strings.Contains(got, "A[first<br/>second]") {
		t.Errorf("Render() = %q", got)
	}
	if strings.Count(got, "\n") != 2 {
		t.Errorf("raw newlines must not leak into node lines: %q", got)
	}
}

func TestRender_Deterministic(t *testing.T) {
	g := flowchart.New()
	for i := 0; i < 40; i++ {
		mustAdd(t, g.AddNode(flowchart.Node{ID: ShortID(i) + "-id", Shape: flowchart.ShapeRectangle}))
	}
	first := Render(g, Options{})
	for i := 0; i < 5; i++ {
		if Render(g, Options{}) != first {
			t.Fatal("Render() output differs between calls")
		}
	}
	if !strings.Contains(first, "    AN[AN]\n") {
		t.Errorf("40th node should be AN, output:\n%s", first)
	}
}
