// Package flowchart defines the typed graph extracted from a whiteboard
// drawing and consumed by the renderers.
//
// A [Graph] holds:
//
//   - [Node]s in insertion order (the order drives short-id assignment and
//     output order, so it is part of the contract) with an id index
//   - [Edge]s in insertion order, each referencing two existing nodes
//   - [Group]s in insertion order, each with a non-empty membership
//   - an inferred [Direction]
//
// # Construction
//
//	g := flowchart.New()
//	_ = g.AddNode(flowchart.Node{ID: "a", Label: "Start"})
//	_ = g.AddNode(flowchart.Node{ID: "b", Label: "End"})
//	_ = g.AddEdge(flowchart.Edge{From: "a", To: "b", Style: flowchart.StyleArrow})
//	g.SetDirection(flowchart.DirectionLR)
//
// Construction errors ([ErrDuplicateNode], [ErrUnknownNode], [ErrEmptyGroup],
// [ErrDuplicateGroup]) signal that an item would violate a graph invariant;
// the extractor treats them as "drop this item" rather than as failures.
//
// # Concurrency
//
// A Graph is built by a single goroutine and is read-only afterwards; reads
// are safe from multiple goroutines.
package flowchart
