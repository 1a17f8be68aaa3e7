// Package extract turns an Excalidraw document into a [flowchart.Graph].
//
// Extraction is a single pass over the document's elements:
//
//  1. Deleted elements are dropped.
//  2. Text elements bound to a container become that container's label.
//  3. Rectangles, ellipses and diamonds become nodes ([ClassifyShape]).
//  4. Arrows and lines bound to two nodes become edges ([ClassifyEdgeStyle]).
//  5. Frames and shared group ids become groups.
//  6. The layout direction is estimated from edge geometry ([EstimateDirection]).
//
// Extraction never fails. Anything that cannot be represented (a dangling
// arrow, a frame with nothing inside, a duplicate id) is silently left out,
// so the resulting graph always satisfies the invariants of package flowchart.
//
// # Conventions
//
// A dashed rectangle without a label is treated as a decorative background
// container and produces no node. A labelled dashed rectangle is a node with
// the subroutine shape.
package extract
