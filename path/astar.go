package path

import (
	"math"

	"github.com/gravitas-games/hexpath/hex"
)

// Result is the outcome of a search.
type Result struct {
	// Path runs from start to goal inclusive; empty when Found is false.
	Path []hex.Axial
	// Cost is the summed cost of every coordinate entered after start.
	Cost int
	// Expanded counts the coordinates settled before the goal was reached.
	Expanded int
	Found    bool
}

// node is a search-local record. parent indexes the node table, -1 for start.
type node struct {
	at      hex.Axial
	parent  int32
	g       int
	h       int
	settled bool
}

// FindPath returns the cheapest path from start to goal inclusive, or an
// empty slice when goal cannot be reached.
func FindPath(start, goal hex.Axial, cost CostFunc) []hex.Axial {
	return Search(start, goal, cost).Path
}

// Search runs A* from start to goal using hex distance as the heuristic.
// Neighbors are expanded in hex.Directions order and frontier ties on f are
// broken toward the smaller heuristic. The start coordinate is never
// charged; cost is only consulted for coordinates being entered.
//
// A search over an unbounded cost function with an unreachable goal does
// not terminate; bound it with WithinDisc or a finite map.
func Search(start, goal hex.Axial, cost CostFunc) Result {
	nodes := []node{{at: start, parent: -1, g: 0, h: hex.Distance(start, goal)}}
	index := map[hex.Axial]int32{start: 0}
	open := frontier{{node: 0, f: nodes[0].h, h: nodes[0].h}}
	expanded := 0

	for open.Len() > 0 {
		cur := open.pop().node
		if nodes[cur].settled {
			continue
		}
		if nodes[cur].at == goal {
			return Result{
				Path:     retrace(nodes, cur),
				Cost:     nodes[cur].g,
				Expanded: expanded,
				Found:    true,
			}
		}
		nodes[cur].settled = true
		expanded++

		for _, nb := range nodes[cur].at.Neighbors() {
			ni, seen := index[nb]
			if seen && nodes[ni].settled {
				continue
			}
			step, ok := cost.enter(nb)
			if !ok {
				continue
			}
			h := hex.Distance(nb, goal)
			if step > math.MaxInt-nodes[cur].g-h {
				// g+step+h would overflow; such a tile is out of reach.
				continue
			}
			tentative := nodes[cur].g + step
			if !seen {
				ni = int32(len(nodes))
				nodes = append(nodes, node{at: nb, parent: -1, g: math.MaxInt})
				index[nb] = ni
			}
			if tentative < nodes[ni].g {
				n := &nodes[ni]
				n.parent = cur
				n.g = tentative
				n.h = h
				open.push(frontierEntry{node: ni, f: n.g + n.h, h: n.h})
			}
		}
	}
	return Result{Path: []hex.Axial{}, Expanded: expanded}
}

// retrace follows parent links from the goal node back to start and
// returns them in start-to-goal order.
func retrace(nodes []node, goal int32) []hex.Axial {
	n := 0
	for i := goal; i >= 0; i = nodes[i].parent {
		n++
	}
	out := make([]hex.Axial, n)
	for i := goal; i >= 0; i = nodes[i].parent {
		n--
		out[n] = nodes[i].at
	}
	return out
}
