package regions

import (
	"github.com/cottand/regionck/frontend/ir"
	"github.com/cottand/regionck/internal/log"
)

var collectLogger = ir.TypeLogger(log.DefaultLogger).With("section", "collect")

// Collector owns the inference state built up while walking a function body:
// the unmapped member-constraint set and the outlives graph. Once collection
// is done, Finish collapses regions onto their equivalence classes and
// re-keys the constraints accordingly.
//
// A Collector has a single owner and is not suitable for concurrent use;
// independent inference contexts each get their own.
type Collector struct {
	constraints *MemberConstraintSet[RegionVid]
	graph       *OutlivesGraph
	finished    bool
}

func NewCollector(numRegions int) *Collector {
	return &Collector{
		constraints: NewMemberConstraintSet(),
		graph:       NewOutlivesGraph(numRegions),
	}
}

// MemberConstraint records that memberRegion must equal exactly one of
// choiceRegions, discovered while instantiating the hidden type of the
// opaque type identified by key.
func (c *Collector) MemberConstraint(
	key OpaqueTypeKey,
	hiddenType ir.Type,
	definitionSpan ir.Range,
	memberRegion RegionVid,
	choiceRegions []RegionVid,
) ConstraintIndex {
	c.checkLive()
	collectLogger.Debug("collected member constraint",
		"opaque", key.String(),
		"hiddenType", hiddenType,
		"memberRegion", memberRegion,
	)
	return AddMemberConstraint(c.constraints, key, hiddenType, definitionSpan, memberRegion, choiceRegions)
}

// Outlives records a `sup: sub` edge between two region variables.
func (c *Collector) Outlives(sup, sub RegionVid) {
	c.checkLive()
	c.graph.AddOutlives(sup, sub)
}

// Finish computes the strongly connected components of the outlives graph
// and re-keys the collected constraints by component. The Collector must not
// be used afterwards.
func (c *Collector) Finish() (*MemberConstraintSet[SCCIndex], *SCCs) {
	c.checkLive()
	c.finished = true
	sccs := ComputeSCCs(c.graph)
	collectLogger.Debug("finishing collection",
		"constraints", c.constraints.Len(),
		"regions", c.graph.NumRegions(),
		"sccs", sccs.Len(),
	)
	return IntoMapped(c.constraints, sccs.MapFn()), sccs
}

func (c *Collector) checkLive() {
	if c.finished {
		panic("use of Collector after Finish")
	}
}
