package extract

import (
	"testing"

	"github.com/matzehuels/excalimaid/pkg/excalidraw"
	"github.com/matzehuels/excalimaid/pkg/flowchart"
)

func TestClassifyShape(t *testing.T) {
	tests := []struct {
		name string
		el   excalidraw.Element
		want flowchart.Shape
	}{
		{"diamond", excalidraw.Element{Type: "diamond"}, flowchart.ShapeDiamond},
		{"ellipse", excalidraw.Element{Type: "ellipse"}, flowchart.ShapeCircle},
		{"plain rectangle", excalidraw.Element{Type: "rectangle", StrokeStyle: "solid"}, flowchart.ShapeRectangle},
		{"rounded rectangle", excalidraw.Element{Type: "rectangle", Rounded: true}, flowchart.ShapeRounded},
		{"dashed rectangle", excalidraw.Element{Type: "rectangle", StrokeStyle: "dashed"}, flowchart.ShapeSubroutine},
		{"dotted rectangle", excalidraw.Element{Type: "rectangle", StrokeStyle: "dotted"}, flowchart.ShapeRectangle},
		{"rounded wins over dashed", excalidraw.Element{Type: "rectangle", Rounded: true, StrokeStyle: "dashed"}, flowchart.ShapeRounded},
		{"unknown kind", excalidraw.Element{Type: "hexagon"}, flowchart.ShapeRectangle},
		{"empty kind", excalidraw.Element{}, flowchart.ShapeRectangle},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyShape(tt.el); got != tt.want {
				t.Errorf("ClassifyShape() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestClassifyEdgeStyle(t *testing.T) {
	tests := []struct {
		name   string
		stroke string
		width  float64
		head   string
		want   flowchart.EdgeStyle
	}{
		{"plain arrow", "solid", 1, "arrow", flowchart.StyleArrow},
		{"plain line", "solid", 1, "", flowchart.StyleLine},
		{"none sentinel", "solid", 2, "none", flowchart.StyleLine},
		{"dashed arrow", "dashed", 1, "arrow", flowchart.StyleDotted},
		{"dotted arrow", "dotted", 1, "triangle", flowchart.StyleDotted},
		{"dashed line", "dashed", 2, "", flowchart.StyleDottedLine},
		{"thick arrow", "solid", 4, "arrow", flowchart.StyleThick},
		{"thick line", "solid", 6, "", flowchart.StyleThickLine},
		{"thick wins over dashed", "dashed", 4, "arrow", flowchart.StyleThick},
		{"thick dashed line", "dotted", 4, "", flowchart.StyleThickLine},
		{"just below thick", "solid", 3.9, "arrow", flowchart.StyleArrow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			el := excalidraw.Element{Type: "arrow", StrokeStyle: tt.stroke, StrokeWidth: tt.width, EndArrowhead: tt.head}
			if got := ClassifyEdgeStyle(el); got != tt.want {
				t.Errorf("ClassifyEdgeStyle() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestClassifyEdgeStyle_DefaultWidthIsNotThick(t *testing.T) {
	doc, err := excalidraw.Parse([]byte(`{"elements":[{"type":"arrow","id":"a","endArrowhead":"arrow"}]}`))
	if err != nil {
		t.Fatal(err)
	}
	if got := ClassifyEdgeStyle(doc.Elements[0]); got != flowchart.StyleArrow {
		t.Errorf("ClassifyEdgeStyle() = %q, want %q", got, flowchart.StyleArrow)
	}
}
