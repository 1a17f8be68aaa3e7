// Package mermaid renders a [flowchart.Graph] as Mermaid flowchart markup.
//
// # Output Shape
//
//	graph LR
//	    subgraph "Backend"
//	        A[API]
//	        B[("DB: Main")]
//	    end
//	    C{Valid?}
//	    A -->|calls| B
//	    B -.->|No| C
//
// Nodes are renamed to compact short ids (A, B, ..., Z, AA, AB, ...) in the
// graph's node order, so the output is stable for a given input and never
// leaks the whiteboard's random element ids. Grouped nodes are declared inside
// their subgraph block (first group wins when a node belongs to several),
// everything else at top level, followed by all edges.
//
// # Labels
//
// [QuoteLabel] applies Mermaid's escaping rules: labels containing reserved
// characters are wrapped in double quotes with embedded quotes written as
// #quot;, and newlines always become <br/>. Quoting is not idempotent:
// quoting an already quoted label escapes its quotes again.
//
// Rendering is a pure function of its inputs and safe for concurrent use.
package mermaid
