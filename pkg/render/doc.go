// Package render groups the flowchart renderers.
//
// # Mermaid
//
// The [mermaid] subpackage is the converter's output format. Rendering is
// deterministic: nodes get short ids (A, B, ..., Z, AA, ...) in document
// order, labels are quoted only when they contain reserved characters, and
// groups become subgraphs.
//
//	markup := mermaid.Render(g, mermaid.Options{})
//
// # Node-Link Previews
//
// The [nodelink] subpackage lays the same graph out with Graphviz, for a
// visual check of what was extracted. DOT output needs no Graphviz runtime;
// SVG and PNG use the embedded WebAssembly build from goccy/go-graphviz.
//
//	svg, err := nodelink.Render(ctx, g, nodelink.Options{}, nodelink.FormatSVG)
//
// [mermaid]: https://pkg.go.dev/github.com/matzehuels/excalimaid/pkg/render/mermaid
// [nodelink]: https://pkg.go.dev/github.com/matzehuels/excalimaid/pkg/render/nodelink
package render
