package convert

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/matzehuels/excalimaid/pkg/excalidraw"
	"github.com/matzehuels/excalimaid/pkg/flowchart"
)

func readFixture(t *testing.T, name string) excalidraw.Document {
	t.Helper()
	doc, err := excalidraw.ReadFile(filepath.Join("testdata", name+".excalidraw"))
	if err != nil {
		t.Fatalf("read fixture %s: %v", name, err)
	}
	return doc
}

func TestConvert_Golden(t *testing.T) {
	tests := []struct {
		name      string
		nodes     int
		edges     int
		direction flowchart.Direction
	}{
		{"simple-flow", 3, 2, flowchart.DirectionLR},
		{"decision", 3, 2, flowchart.DirectionTD},
		{"frames", 4, 3, flowchart.DirectionLR},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			want, err := os.ReadFile(filepath.Join("testdata", tt.name+".mmd"))
			if err != nil {
				t.Fatal(err)
			}

			res := Convert(readFixture(t, tt.name), Options{})

			if res.Mermaid != string(want) {
				t.Errorf("Mermaid =\n%s\nwant\n%s", res.Mermaid, want)
			}
			if res.NodeCount != tt.nodes {
				t.Errorf("NodeCount = %d, want %d", res.NodeCount, tt.nodes)
			}
			if res.EdgeCount != tt.edges {
				t.Errorf("EdgeCount = %d, want %d", res.EdgeCount, tt.edges)
			}
			if res.Direction != tt.direction {
				t.Errorf("Direction = %q, want %q", res.Direction, tt.direction)
			}
			if res.Graph == nil || res.Graph.NodeCount() != res.NodeCount {
				t.Error("Result.Graph should be the extracted graph")
			}
		})
	}
}

func TestConvert_StartProcessEnd(t *testing.T) {
	res := Convert(readFixture(t, "simple-flow"), Options{})

	arrows := 0
	for _, line := range strings.Split(res.Mermaid, "\n") {
		if strings.Contains(line, "-->") {
			arrows++
		}
	}
	if arrows != 2 {
		t.Errorf("want exactly 2 --> edge lines, got %d in:\n%s", arrows, res.Mermaid)
	}
}

func TestConvert_Decision(t *testing.T) {
	res := Convert(readFixture(t, "decision"), Options{})

	if !regexp.MustCompile(`\{Valid\?\}`).MatchString(res.Mermaid) {
		t.Errorf("missing {Valid?} in:\n%s", res.Mermaid)
	}
	if !regexp.MustCompile(`(?m)^\s+\w+ -\.->\|No\| \w+$`).MatchString(res.Mermaid) {
		t.Errorf("missing dotted No edge in:\n%s", res.Mermaid)
	}
	if !regexp.MustCompile(`(?m)^\s+\w+ -->\|Yes\| \w+$`).MatchString(res.Mermaid) {
		t.Errorf("missing solid Yes edge in:\n%s", res.Mermaid)
	}
}

func TestConvert_EmptyDocuments(t *testing.T) {
	inputs := map[string]string{
		"no elements key":     `{"type":"excalidraw"}`,
		"elements not array":  `{"elements":{"a":1}}`,
		"empty elements":      `{"elements":[]}`,
		"only text and edges": `{"elements":[{"type":"text","id":"t","text":"hi"},{"type":"arrow","id":"a"}]}`,
		"only deleted nodes":  `{"elements":[{"type":"rectangle","id":"r","isDeleted":true}]}`,
		"root is array":       `[1,2,3]`,
	}

	for name, input := range inputs {
		t.Run(name, func(t *testing.T) {
			doc, err := excalidraw.Parse([]byte(input))
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			res := Convert(doc, Options{})
			if res.Mermaid != "graph TD\n" {
				t.Errorf("Mermaid = %q, want %q", res.Mermaid, "graph TD\n")
			}
			if res.NodeCount != 0 || res.EdgeCount != 0 || res.Direction != flowchart.DirectionTD {
				t.Errorf("got %+v, want empty TD result", res)
			}
		})
	}
}

func TestConvert_DirectionOverride(t *testing.T) {
	doc := readFixture(t, "simple-flow")

	tests := []struct {
		in   flowchart.Direction
		want flowchart.Direction
	}{
		{"", flowchart.DirectionLR},
		{flowchart.DirectionTD, flowchart.DirectionTD},
		{"TB", flowchart.DirectionTD},
		{flowchart.DirectionBT, flowchart.DirectionBT},
		{flowchart.DirectionRL, flowchart.DirectionRL},
		{"rl", flowchart.DirectionRL},
		{"sideways", flowchart.DirectionLR},
	}

	for _, tt := range tests {
		t.Run(string(tt.in), func(t *testing.T) {
			res := Convert(doc, Options{Direction: tt.in})
			if res.Direction != tt.want {
				t.Errorf("Direction = %q, want %q", res.Direction, tt.want)
			}
			if !strings.HasPrefix(res.Mermaid, "graph "+string(tt.want)+"\n") {
				t.Errorf("header mismatch: %q", strings.SplitN(res.Mermaid, "\n", 2)[0])
			}
		})
	}
}

func TestConvert_DroppedEdgesNeverRendered(t *testing.T) {
	res := Convert(readFixture(t, "frames"), Options{})

	// e4 has no end binding and e5 points at a deleted node.
	for _, line := range strings.Split(res.Mermaid, "\n") {
		if strings.Contains(line, "D -->") || strings.Contains(line, "Old") {
			t.Errorf("dropped edge leaked into output: %q", line)
		}
	}
	if strings.Contains(res.Mermaid, "backdrop") {
		t.Error("decorative container rendered")
	}
}

func TestConvert_OutputPassesThrough(t *testing.T) {
	res := Convert(excalidraw.Document{}, Options{Output: "out.mmd"})
	if res.Output != "out.mmd" {
		t.Errorf("Output = %q, want out.mmd", res.Output)
	}
}

func TestConvert_Deterministic(t *testing.T) {
	doc := readFixture(t, "frames")
	first := Convert(doc, Options{}).Mermaid
	for i := 0; i < 10; i++ {
		if got := Convert(doc, Options{}).Mermaid; got != first {
			t.Fatalf("run %d differs:\n%s\nvs\n%s", i, got, first)
		}
	}
}
