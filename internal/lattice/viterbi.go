package lattice

import (
	"fmt"
	"math"
)

// addNode appends n to the arena, relaxes it against every node ending
// at n.CharStart (cost[e] + row[e.RightID] + n.Weight, minimized over
// predecessors e), and registers the new node's id in the endNodes
// bucket for endPos.
func (l *Lattice) addNode(endPos int, n Node, src Sources) error {
	preds := l.endNodes[n.CharStart]
	if len(preds) == 0 {
		return fmt.Errorf("lattice: no predecessor ends at char position %d", n.CharStart)
	}

	row, err := src.Matrix.Row(n.LeftID)
	if err != nil {
		return fmt.Errorf("lattice: connection row for left id %d: %w", n.LeftID, err)
	}

	bestCost := int64(math.MaxInt64)
	bestPrev := noPrev
	for _, eid := range preds {
		e := l.nodes[eid]
		if int(e.RightID) >= len(row) {
			return fmt.Errorf("lattice: right id %d out of range for connection matrix", e.RightID)
		}
		c := l.cost[eid] + int64(row[e.RightID]) + int64(n.Weight)
		if c < bestCost {
			bestCost = c
			bestPrev = eid
		}
	}

	id := l.appendNode(n)
	l.prev[id] = bestPrev
	l.cost[id] = bestCost
	l.endNodes[endPos] = append(l.endNodes[endPos], id)
	return nil
}

// TotalCost returns the minimum-cost path's cumulative weight, as found
// at EOS.
func (l *Lattice) TotalCost() int64 {
	return l.cost[l.eosID]
}

// Reconstruct walks the back-pointer chain from EOS to BOS and returns
// the minimum-cost path's nodes in left-to-right order, excluding the
// BOS/EOS sentinels.
func (l *Lattice) Reconstruct() []Node {
	var path []Node
	for id := l.eosID; id != l.bosID; id = l.prev[id] {
		n := l.nodes[id]
		if n.Kind != KindEOS {
			path = append(path, n)
		}
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
