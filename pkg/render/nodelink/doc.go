// Package nodelink renders flowchart graphs as Graphviz node-link diagrams.
//
// # Overview
//
// Mermaid output is text; reviewing it usually means pasting it into a
// renderer. This package gives a quick local preview of the same graph by
// translating it to DOT and rendering it in-process with Graphviz.
//
// # Usage
//
// Convert a graph to DOT format, then render to SVG or PNG:
//
//	dot := nodelink.ToDOT(g, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//	png, err := nodelink.RenderPNG(ctx, dot)
//
// [Render] dispatches on a [Format] and is what the CLI and HTTP server use.
//
// # Mapping
//
// The DOT output mirrors the Mermaid rendering as closely as Graphviz allows:
//
//	flowchart          DOT
//	---------          ---
//	direction TD/LR    rankdir=TB/LR (BT, RL likewise)
//	rectangle          shape=box
//	rounded            shape=box, style=rounded
//	diamond            shape=diamond
//	circle             shape=ellipse
//	subroutine         shape=box, peripheries=2
//	group              subgraph cluster_N (label = group label)
//	dotted styles      style=dashed
//	thick styles       penwidth=3
//	headless styles    arrowhead=none
//
// A node listed in several groups is placed in the first one only, as in the
// Mermaid output.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz], which embeds Graphviz as
// WebAssembly, so no system installation is required.
package nodelink
