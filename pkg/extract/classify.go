package extract

import (
	"github.com/matzehuels/excalimaid/pkg/excalidraw"
	"github.com/matzehuels/excalimaid/pkg/flowchart"
)

// thickStrokeWidth is the stroke width from which a connector renders thick.
const thickStrokeWidth = 4

// ClassifyShape maps a shape element to its node shape.
// Roundness is checked before the dash style, so a rounded dashed rectangle
// is rounded. Unknown kinds fall back to a plain rectangle.
func ClassifyShape(el excalidraw.Element) flowchart.Shape {
	switch el.Type {
	case excalidraw.TypeDiamond:
		return flowchart.ShapeDiamond
	case excalidraw.TypeEllipse:
		return flowchart.ShapeCircle
	case excalidraw.TypeRectangle:
		switch {
		case el.Rounded:
			return flowchart.ShapeRounded
		case el.IsDashed():
			return flowchart.ShapeSubroutine
		default:
			return flowchart.ShapeRectangle
		}
	default:
		return flowchart.ShapeRectangle
	}
}

// ClassifyEdgeStyle maps an arrow or line element to its connector style.
// Thickness wins over dashing, dashing wins over a plain stroke; each then
// splits on whether the element ends in an arrowhead.
func ClassifyEdgeStyle(el excalidraw.Element) flowchart.EdgeStyle {
	hasHead := el.HasEndArrowhead()
	isDashed := el.StrokeStyle == excalidraw.StrokeDashed || el.StrokeStyle == excalidraw.StrokeDotted
	isThick := el.StrokeWidth >= thickStrokeWidth

	switch {
	case isThick:
		if hasHead {
			return flowchart.StyleThick
		}
		return flowchart.StyleThickLine
	case isDashed:
		if hasHead {
			return flowchart.StyleDotted
		}
		return flowchart.StyleDottedLine
	default:
		if hasHead {
			return flowchart.StyleArrow
		}
		return flowchart.StyleLine
	}
}

func isNodeType(t string) bool {
	return t == excalidraw.TypeRectangle || t == excalidraw.TypeEllipse || t == excalidraw.TypeDiamond
}

func isEdgeType(t string) bool {
	return t == excalidraw.TypeArrow || t == excalidraw.TypeLine
}
