// Package pkg provides the libraries behind excalimaid, an Excalidraw to
// Mermaid flowchart converter.
//
// # Overview
//
// Conversion is a two-stage pipeline: a typed graph is extracted from the
// loosely structured Excalidraw document, then rendered deterministically as
// Mermaid markup.
//
//	Excalidraw JSON
//	       ↓
//	  [excalidraw] package (permissive decoding)
//	       ↓
//	  [extract] package (nodes, edges, groups, direction)
//	       ↓
//	  [flowchart] package (the graph)
//	       ↓
//	  [render/mermaid] package
//	       ↓
//	  graph LR ... markup
//
// # Quick Start
//
//	doc, err := excalidraw.Parse(data)
//	if err != nil {
//	    return err
//	}
//	res := convert.Convert(doc, convert.Options{})
//	fmt.Print(res.Mermaid)
//
// # Main Packages
//
// ## Core
//
// [excalidraw] - Document and element types. Decoding never rejects a
// document for missing or mistyped fields; it falls back to safe defaults.
//
// [flowchart] - The ordered graph: nodes, edges, groups and direction.
//
// [extract] - Shape and connector classification, frame and group-id
// clustering, and direction inference from arrow geometry.
//
// [render/mermaid] - Mermaid flowchart output with short ids and label
// quoting.
//
// [convert] - The library facade combining extraction and rendering.
//
// ## Previews
//
// [render/nodelink] - Graphviz DOT, SVG and PNG renderings of the extracted
// graph.
//
// ## Infrastructure
//
// [pipeline] - Conversion with caching and output files, shared by the CLI
// and the HTTP server.
//
// [cache] - Result caches: null, in-memory LRU, file and Redis backends.
//
// [observability] - Hooks for parse, conversion, cache and HTTP events.
//
// [errors] - Coded errors shared by every adapter.
//
// [buildinfo] - Version information injected at build time.
//
// # Testing
//
//	go test ./pkg/...           # All tests
//	go test -run Example ./...  # Examples only
//
// Set EXCALIMAID_TEST_REDIS_URL to run the Redis cache tests.
//
// [excalidraw]: https://pkg.go.dev/github.com/matzehuels/excalimaid/pkg/excalidraw
// [flowchart]: https://pkg.go.dev/github.com/matzehuels/excalimaid/pkg/flowchart
// [extract]: https://pkg.go.dev/github.com/matzehuels/excalimaid/pkg/extract
// [render/mermaid]: https://pkg.go.dev/github.com/matzehuels/excalimaid/pkg/render/mermaid
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/excalimaid/pkg/render/nodelink
// [convert]: https://pkg.go.dev/github.com/matzehuels/excalimaid/pkg/convert
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/excalimaid/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/excalimaid/pkg/cache
// [observability]: https://pkg.go.dev/github.com/matzehuels/excalimaid/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/excalimaid/pkg/errors
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/excalimaid/pkg/buildinfo
package pkg
