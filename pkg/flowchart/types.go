package flowchart

import (
	"fmt"
	"strings"

	"github.com/matzehuels/excalimaid/pkg/errors"
)

// =============================================================================
// Shapes
// =============================================================================

// Shape is the semantic node shape.
type Shape string

const (
	ShapeRectangle  Shape = "rectangle"
	ShapeRounded    Shape = "rounded"
	ShapeDiamond    Shape = "diamond"
	ShapeCircle     Shape = "circle"
	ShapeSubroutine Shape = "subroutine"
)

// =============================================================================
// Edge Styles
// =============================================================================

// EdgeStyle is the semantic connector style.
type EdgeStyle string

const (
	StyleArrow      EdgeStyle = "arrow"
	StyleLine       EdgeStyle = "line"
	StyleDotted     EdgeStyle = "dotted"
	StyleDottedLine EdgeStyle = "dotted-line"
	StyleThick      EdgeStyle = "thick"
	StyleThickLine  EdgeStyle = "thick-line"
)

// HasHead reports whether the style ends in an arrowhead.
func (s EdgeStyle) HasHead() bool {
	return s == StyleArrow || s == StyleDotted || s == StyleThick
}

// =============================================================================
// Direction
// =============================================================================

// Direction is the flowchart layout orientation.
type Direction string

const (
	DirectionTD Direction = "TD" // top to bottom
	DirectionLR Direction = "LR" // left to right
	DirectionBT Direction = "BT" // bottom to top
	DirectionRL Direction = "RL" // right to left
)

// DefaultDirection is used when nothing else decides.
const DefaultDirection = DirectionTD

// ParseDirection validates a user supplied direction. Matching is
// case-insensitive and "TB" is accepted as an alias for "TD".
func ParseDirection(s string) (Direction, error) {
	switch d := Direction(strings.ToUpper(strings.TrimSpace(s))); d {
	case DirectionTD, DirectionLR, DirectionBT, DirectionRL:
		return d, nil
	case "TB":
		return DirectionTD, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidDirection,
			"invalid direction: %q (must be one of: TD, TB, LR, BT, RL)", s)
	}
}

// IsHorizontal reports whether the direction lays nodes out in rows.
func (d Direction) IsHorizontal() bool {
	return d == DirectionLR || d == DirectionRL
}

// =============================================================================
// Node, Edge, Group
// =============================================================================

// Node is a graph vertex derived from one shape element.
type Node struct {
	ID     string   `json:"id"`
	Label  string   `json:"label,omitempty"`
	Shape  Shape    `json:"shape"`
	X      float64  `json:"x"`
	Y      float64  `json:"y"`
	Width  float64  `json:"width"`
	Height float64  `json:"height"`
	Groups []string `json:"group_ids,omitempty"`
}

// Center returns the center of the node's bounding box.
func (n *Node) Center() (float64, float64) {
	return n.X + n.Width/2, n.Y + n.Height/2
}

// Edge is a connection between two nodes.
type Edge struct {
	From  string    `json:"from"`
	To    string    `json:"to"`
	Label string    `json:"label,omitempty"`
	Style EdgeStyle `json:"style"`
}

// GroupOrigin records how a group was discovered.
type GroupOrigin string

const (
	OriginFrame GroupOrigin = "frame" // geometric containment in a frame element
	OriginGroup GroupOrigin = "group" // shared group id across elements
)

// Group is a named cluster of nodes.
type Group struct {
	ID      string      `json:"id"`
	Label   string      `json:"label,omitempty"`
	Members []string    `json:"members"`
	Origin  GroupOrigin `json:"origin"`
}

func (g Group) String() string {
	return fmt.Sprintf("%s(%s, %d members)", g.ID, g.Origin, len(g.Members))
}
