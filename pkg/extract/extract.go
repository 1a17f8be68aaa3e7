package extract

import (
	"math"

	"github.com/matzehuels/excalimaid/pkg/excalidraw"
	"github.com/matzehuels/excalimaid/pkg/flowchart"
)

// Extract builds the flowchart graph described by doc. It never fails; see
// the package documentation for what is dropped along the way.
func Extract(doc excalidraw.Document) *flowchart.Graph {
	g := flowchart.New()

	elements := live(doc.Elements)
	labels := containerLabels(elements)

	addNodes(g, elements, labels)
	addEdges(g, elements, labels)
	addFrameGroups(g, elements)
	addIDGroups(g)

	g.SetDirection(EstimateDirection(g, g.Edges()))
	return g
}

// live returns the elements that are not flagged as deleted.
func live(elements []excalidraw.Element) []excalidraw.Element {
	out := make([]excalidraw.Element, 0, len(elements))
	for _, el := range elements {
		if !el.IsDeleted {
			out = append(out, el)
		}
	}
	return out
}

// containerLabels maps container element ids to the text bound inside them.
// When several text elements claim the same container the last one wins.
func containerLabels(elements []excalidraw.Element) map[string]string {
	labels := make(map[string]string)
	for _, el := range elements {
		if el.Type == excalidraw.TypeText && el.ContainerID != "" {
			labels[el.ContainerID] = el.DisplayText()
		}
	}
	return labels
}

func addNodes(g *flowchart.Graph, elements []excalidraw.Element, labels map[string]string) {
	for _, el := range elements {
		if !isNodeType(el.Type) {
			continue
		}
		label := labels[el.ID]
		// Unlabelled dashed rectangles are background containers.
		if el.Type == excalidraw.TypeRectangle && el.IsDashed() && label == "" {
			continue
		}
		// Duplicate ids keep the first element.
		_ = g.AddNode(flowchart.Node{
			ID:     el.ID,
			Label:  label,
			Shape:  ClassifyShape(el),
			X:      el.X,
			Y:      el.Y,
			Width:  el.Width,
			Height: el.Height,
			Groups: append([]string(nil), el.GroupIDs...),
		})
	}
}

func addEdges(g *flowchart.Graph, elements []excalidraw.Element, labels map[string]string) {
	for _, el := range elements {
		if !isEdgeType(el.Type) {
			continue
		}
		if el.StartBinding == "" || el.EndBinding == "" {
			continue
		}
		// AddEdge rejects endpoints that did not become nodes.
		_ = g.AddEdge(flowchart.Edge{
			From:  el.StartBinding,
			To:    el.EndBinding,
			Label: labels[el.ID],
			Style: ClassifyEdgeStyle(el),
		})
	}
}

// addFrameGroups creates one group per frame holding every node whose center
// lies inside the frame, boundary included.
func addFrameGroups(g *flowchart.Graph, elements []excalidraw.Element) {
	nodes := g.Nodes()
	for _, el := range elements {
		if el.Type != excalidraw.TypeFrame {
			continue
		}
		minX, maxX := span(el.X, el.Width)
		minY, maxY := span(el.Y, el.Height)

		var members []string
		for _, n := range nodes {
			cx, cy := n.Center()
			if cx >= minX && cx <= maxX && cy >= minY && cy <= maxY {
				members = append(members, n.ID)
			}
		}
		if len(members) == 0 {
			continue
		}
		_ = g.AddGroup(flowchart.Group{
			ID:      el.ID,
			Label:   el.Name,
			Members: members,
			Origin:  flowchart.OriginFrame,
		})
	}
}

// addIDGroups clusters nodes by shared group id. Clusters of at least two
// nodes become unlabelled groups, in order of first appearance, unless a
// frame already uses the same id.
func addIDGroups(g *flowchart.Graph) {
	var order []string
	clusters := make(map[string][]string)
	for _, n := range g.Nodes() {
		for _, gid := range n.Groups {
			members, seen := clusters[gid]
			if !seen {
				order = append(order, gid)
			}
			if len(members) > 0 && members[len(members)-1] == n.ID {
				continue
			}
			clusters[gid] = append(members, n.ID)
		}
	}

	for _, gid := range order {
		members := clusters[gid]
		if len(members) < 2 || g.HasGroup(gid) {
			continue
		}
		_ = g.AddGroup(flowchart.Group{
			ID:      gid,
			Members: members,
			Origin:  flowchart.OriginGroup,
		})
	}
}

// span returns the closed interval covered by an origin and a (possibly
// negative) extent.
func span(origin, extent float64) (float64, float64) {
	return math.Min(origin, origin+extent), math.Max(origin, origin+extent)
}
