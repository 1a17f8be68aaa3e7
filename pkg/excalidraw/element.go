package excalidraw

// Element kinds understood by the converter. Any other kind is carried through
// verbatim in [Element.Type] and treated by consumers with their default policy.
const (
	TypeRectangle = "rectangle"
	TypeEllipse   = "ellipse"
	TypeDiamond   = "diamond"
	TypeArrow     = "arrow"
	TypeLine      = "line"
	TypeText      = "text"
	TypeFrame     = "frame"
)

// Stroke styles.
const (
	StrokeSolid  = "solid"
	StrokeDashed = "dashed"
	StrokeDotted = "dotted"
)

// ArrowheadNone is the literal some exporters write instead of null to mark a
// missing arrowhead.
const ArrowheadNone = "none"

// DefaultStrokeWidth is assumed when an element carries no stroke width.
const DefaultStrokeWidth = 1.0

// Document is a parsed Excalidraw document.
type Document struct {
	Type     string    // "excalidraw" for files saved by the editor, may be empty
	Version  int       // schema version, 0 when absent
	Source   string    // editor origin URL, may be empty
	Elements []Element // drawing primitives in document order
}

// Element is one drawing primitive.
type Element struct {
	Type   string
	ID     string
	X      float64
	Y      float64
	Width  float64
	Height float64

	StrokeStyle string
	StrokeWidth float64

	// ContainerID is set on text elements bound to a shape or arrow.
	ContainerID  string
	Text         string
	OriginalText string

	// Name is the display name of a frame.
	Name string

	// StartBinding and EndBinding hold the element ids an arrow or line is
	// anchored to; empty when the endpoint floats freely.
	StartBinding string
	EndBinding   string
	EndArrowhead string

	Rounded   bool
	GroupIDs  []string
	IsDeleted bool
}

// Center returns the geometric center of the element's bounding box.
func (e Element) Center() (float64, float64) {
	return e.X + e.Width/2, e.Y + e.Height/2
}

// IsDashed reports whether the element is drawn with a dashed stroke.
func (e Element) IsDashed() bool { return e.StrokeStyle == StrokeDashed }

// DisplayText returns the rendered text of a text element, falling back to
// the original (pre-wrapping) text when the rendered text is empty.
func (e Element) DisplayText() string {
	if e.Text != "" {
		return e.Text
	}
	return e.OriginalText
}

// HasEndArrowhead reports whether the element ends in an arrowhead.
func (e Element) HasEndArrowhead() bool {
	return e.EndArrowhead != "" && e.EndArrowhead != ArrowheadNone
}
