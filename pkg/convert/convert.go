// Package convert is the library entry point: Excalidraw document in,
// Mermaid flowchart out.
//
//	doc, err := excalidraw.ReadFile("diagram.excalidraw")
//	if err != nil {
//	    return err
//	}
//	res := convert.Convert(doc, convert.Options{Direction: flowchart.DirectionLR})
//	fmt.Print(res.Mermaid)
//
// Convert never fails. Content it cannot interpret degrades to defaults and
// the result may describe an empty graph. Parsing the JSON, validating a
// user-supplied direction with [flowchart.ParseDirection], and writing
// [Options.Output] are left to the caller (see the pipeline package).
package convert

import (
	"github.com/matzehuels/excalimaid/pkg/excalidraw"
	"github.com/matzehuels/excalimaid/pkg/extract"
	"github.com/matzehuels/excalimaid/pkg/flowchart"
	"github.com/matzehuels/excalimaid/pkg/render/mermaid"
)

// Options configures a conversion.
type Options struct {
	// Direction forces the layout direction. Empty means infer it from the
	// diagram geometry. TB is accepted as an alias for TD; any other value
	// outside TD, LR, BT and RL is ignored.
	Direction flowchart.Direction

	// Output is the destination file for the rendered markup. Convert itself
	// does not write it.
	Output string
}

// Result is the outcome of a conversion.
type Result struct {
	Mermaid   string              `json:"mermaid"`
	NodeCount int                 `json:"nodeCount"`
	EdgeCount int                 `json:"edgeCount"`
	Direction flowchart.Direction `json:"direction"`
	Output    string              `json:"output,omitempty"`

	// Graph is the extracted graph the markup was rendered from.
	Graph *flowchart.Graph `json:"-"`
}

// Convert extracts a flowchart graph from doc and renders it as Mermaid.
// Result.Direction is the direction actually used in the header.
func Convert(doc excalidraw.Document, opts Options) Result {
	g := extract.Extract(doc)

	dir := g.Direction()
	if forced, err := flowchart.ParseDirection(string(opts.Direction)); err == nil && forced != "" {
		dir = forced
	}
	if dir == "" {
		dir = flowchart.DefaultDirection
	}

	return Result{
		Mermaid:   mermaid.Render(g, mermaid.Options{Direction: dir}),
		NodeCount: g.NodeCount(),
		EdgeCount: g.EdgeCount(),
		Direction: dir,
		Output:    opts.Output,
		Graph:     g,
	}
}
