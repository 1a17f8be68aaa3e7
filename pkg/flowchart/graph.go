package flowchart

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

var (
	// ErrDuplicateNode is returned by [Graph.AddNode] when a node with the same
	// ID already exists.
	ErrDuplicateNode = errors.New("duplicate node ID")

	// ErrUnknownNode is returned by [Graph.AddEdge] when an endpoint does not
	// reference an existing node, and by [Graph.AddGroup] for unknown members.
	ErrUnknownNode = errors.New("unknown node")

	// ErrEmptyGroup is returned by [Graph.AddGroup] for a group without members.
	ErrEmptyGroup = errors.New("group has no members")

	// ErrDuplicateGroup is returned by [Graph.AddGroup] when the group ID is taken.
	ErrDuplicateGroup = errors.New("duplicate group ID")
)

// Graph is the structured result of extraction.
//
// The zero value is not usable; use [New].
type Graph struct {
	nodes     []*Node
	nodeIndex map[string]*Node
	edges     []Edge
	groups    []*Group
	groupIdx  map[string]*Group
	direction Direction
}

// New creates an empty graph with the default direction.
func New() *Graph {
	return &Graph{
		nodeIndex: make(map[string]*Node),
		groupIdx:  make(map[string]*Group),
		direction: DefaultDirection,
	}
}

// AddNode appends a node. Returns ErrDuplicateNode if the ID is taken.
func (g *Graph) AddNode(n Node) error {
	if _, exists := g.nodeIndex[n.ID]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateNode, n.ID)
	}
	node := &n
	g.nodes = append(g.nodes, node)
	g.nodeIndex[n.ID] = node
	return nil
}

// AddEdge appends an edge. Both endpoints must already exist.
func (g *Graph) AddEdge(e Edge) error {
	if _, ok := g.nodeIndex[e.From]; !ok {
		return fmt.Errorf("%w: source %q", ErrUnknownNode, e.From)
	}
	if _, ok := g.nodeIndex[e.To]; !ok {
		return fmt.Errorf("%w: target %q", ErrUnknownNode, e.To)
	}
	g.edges = append(g.edges, e)
	return nil
}

// AddGroup appends a group. Membership must be non-empty and reference
// existing nodes, and the ID must be unused.
func (g *Graph) AddGroup(grp Group) error {
	if len(grp.Members) == 0 {
		return fmt.Errorf("%w: %q", ErrEmptyGroup, grp.ID)
	}
	if _, exists := g.groupIdx[grp.ID]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateGroup, grp.ID)
	}
	for _, id := range grp.Members {
		if _, ok := g.nodeIndex[id]; !ok {
			return fmt.Errorf("%w: member %q of group %q", ErrUnknownNode, id, grp.ID)
		}
	}
	grp.Members = append([]string(nil), grp.Members...)
	group := &grp
	g.groups = append(g.groups, group)
	g.groupIdx[grp.ID] = group
	return nil
}

// SetDirection records the layout orientation.
func (g *Graph) SetDirection(d Direction) { g.direction = d }

// Direction returns the recorded layout orientation.
func (g *Graph) Direction() Direction { return g.direction }

// Nodes returns all nodes in insertion order.
// The slice is a copy; the nodes themselves must not be modified.
func (g *Graph) Nodes() []*Node { return append([]*Node(nil), g.nodes...) }

// Node looks up a node by ID.
func (g *Graph) Node(id string) (*Node, bool) {
	n, ok := g.nodeIndex[id]
	return n, ok
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// Edges returns all edges in insertion order.
func (g *Graph) Edges() []Edge { return append([]Edge(nil), g.edges...) }

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// Groups returns all groups in insertion order.
func (g *Graph) Groups() []*Group { return append([]*Group(nil), g.groups...) }

// Group looks up a group by ID.
func (g *Graph) Group(id string) (*Group, bool) {
	grp, ok := g.groupIdx[id]
	return grp, ok
}

// HasGroup reports whether a group with the given ID exists.
func (g *Graph) HasGroup(id string) bool {
	_, ok := g.groupIdx[id]
	return ok
}

// GroupCount returns the number of groups.
func (g *Graph) GroupCount() int { return len(g.groups) }

// =============================================================================
// Serialization
// =============================================================================

// wireGraph is the JSON shape of a Graph. Slices keep insertion order so the
// document can be diffed and read top to bottom.
type wireGraph struct {
	Direction Direction `json:"direction"`
	Nodes     []Node    `json:"nodes"`
	Edges     []Edge    `json:"edges"`
	Groups    []Group   `json:"groups"`
}

// MarshalJSON implements json.Marshaler.
func (g *Graph) MarshalJSON() ([]byte, error) {
	w := wireGraph{
		Direction: g.direction,
		Nodes:     make([]Node, len(g.nodes)),
		Edges:     g.Edges(),
		Groups:    make([]Group, len(g.groups)),
	}
	for i, n := range g.nodes {
		w.Nodes[i] = *n
	}
	for i, grp := range g.groups {
		w.Groups[i] = *grp
	}
	if w.Edges == nil {
		w.Edges = []Edge{}
	}
	return json.Marshal(w)
}

// WriteJSON writes the graph as indented JSON to w.
func WriteJSON(g *Graph, w io.Writer) error {
	data, err := json.MarshalIndent(g, "", "  ")
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	data = append(data, '\n')
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}
