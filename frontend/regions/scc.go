package regions

import (
	set "github.com/hashicorp/go-set/v3"

	"github.com/cottand/regionck/util"
)

// SCCs assigns every region variable of an OutlivesGraph to the strongly
// connected component containing it. The mapping is total: isolated regions
// get a singleton component.
type SCCs struct {
	sccOf []SCCIndex
	count int
}

// SCC returns the component r belongs to.
func (s *SCCs) SCC(r RegionVid) SCCIndex {
	return s.sccOf[r]
}

// Len returns the number of components.
func (s *SCCs) Len() int {
	return s.count
}

// MapFn adapts the component lookup into the shape IntoMapped takes.
func (s *SCCs) MapFn() func(RegionVid) SCCIndex {
	return s.SCC
}

const sccUnvisited = -1

// sccFrame is one suspended visit in the iterative Tarjan walk; succIdx
// remembers how far through the region's successors the visit got.
type sccFrame struct {
	region  RegionVid
	succIdx int
}

// ComputeSCCs runs Tarjan's algorithm over the graph. Components are
// numbered in completion order, so a component's index is stable for a given
// graph and edge insertion order.
func ComputeSCCs(g *OutlivesGraph) *SCCs {
	n := g.NumRegions()
	index := make([]int, n)
	lowLink := make([]int, n)
	for i := range index {
		index[i] = sccUnvisited
	}
	sccs := &SCCs{sccOf: make([]SCCIndex, n)}

	onStack := set.New[RegionVid](n)
	var tarjanStack []RegionVid
	var frames util.Stack[sccFrame]
	nextIndex := 0

	visit := func(r RegionVid) {
		index[r] = nextIndex
		lowLink[r] = nextIndex
		nextIndex++
		tarjanStack = append(tarjanStack, r)
		onStack.Insert(r)
		frames.Push(sccFrame{region: r})
	}

	for root := 0; root < n; root++ {
		if index[root] != sccUnvisited {
			continue
		}
		visit(RegionVid(root))

		for frames.Len() > 0 {
			frame, _ := frames.Peek()
			v := frame.region
			succs := g.Successors(v)

			descended := false
			for frame.succIdx < len(succs) {
				w := succs[frame.succIdx]
				frame.succIdx++
				if index[w] == sccUnvisited {
					visit(w)
					descended = true
					break
				}
				if onStack.Contains(w) && index[w] < lowLink[v] {
					lowLink[v] = index[w]
				}
			}
			if descended {
				continue
			}

			// v's subtree is done
			frames.Pop()
			if parent, ok := frames.Peek(); ok && lowLink[v] < lowLink[parent.region] {
				lowLink[parent.region] = lowLink[v]
			}
			if lowLink[v] != index[v] {
				continue
			}
			// v is the root of a component: pop it off the Tarjan stack
			for {
				w := tarjanStack[len(tarjanStack)-1]
				tarjanStack = tarjanStack[:len(tarjanStack)-1]
				onStack.Remove(w)
				sccs.sccOf[w] = SCCIndex(sccs.count)
				if w == v {
					break
				}
			}
			sccs.count++
		}
	}
	return sccs
}
