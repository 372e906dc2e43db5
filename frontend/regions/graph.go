package regions

import "fmt"

// OutlivesGraph records the `sup: sub` edges between region variables
// discovered during constraint collection. Mutually reachable regions must
// end up equal, so the strongly connected components of this graph are the
// equivalence classes used to re-key member constraints.
type OutlivesGraph struct {
	successors [][]RegionVid
}

func NewOutlivesGraph(numRegions int) *OutlivesGraph {
	return &OutlivesGraph{
		successors: make([][]RegionVid, numRegions),
	}
}

func (g *OutlivesGraph) NumRegions() int {
	return len(g.successors)
}

// AddOutlives records that sup outlives sub.
func (g *OutlivesGraph) AddOutlives(sup, sub RegionVid) {
	g.checkBounds(sup)
	g.checkBounds(sub)
	g.successors[sup] = append(g.successors[sup], sub)
}

func (g *OutlivesGraph) Successors(r RegionVid) []RegionVid {
	g.checkBounds(r)
	return g.successors[r]
}

func (g *OutlivesGraph) checkBounds(r RegionVid) {
	if int(r) >= len(g.successors) {
		panic(fmt.Sprintf("region %v outside graph of %d regions", r, len(g.successors)))
	}
}
