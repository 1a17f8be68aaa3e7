package extract

import (
	"math"

	"github.com/matzehuels/excalimaid/pkg/flowchart"
)

// NodeLookup resolves node ids. *flowchart.Graph implements it.
type NodeLookup interface {
	Node(id string) (*flowchart.Node, bool)
}

// EstimateDirection guesses the flowchart orientation from edge geometry.
//
// Every edge whose endpoints both resolve casts one vote: LR when the
// horizontal distance between the node centers exceeds the vertical one, TD
// otherwise. The majority wins and ties, including the no-edge case, go to TD.
// BT and RL are never inferred.
func EstimateDirection(nodes NodeLookup, edges []flowchart.Edge) flowchart.Direction {
	var horizontal, vertical int
	for _, e := range edges {
		src, ok := nodes.Node(e.From)
		if !ok {
			continue
		}
		dst, ok := nodes.Node(e.To)
		if !ok {
			continue
		}
		sx, sy := src.Center()
		dx, dy := dst.Center()
		if math.Abs(dx-sx) > math.Abs(dy-sy) {
			horizontal++
		} else {
			vertical++
		}
	}
	if horizontal > vertical {
		return flowchart.DirectionLR
	}
	return flowchart.DirectionTD
}
