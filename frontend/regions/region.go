package regions

import (
	"fmt"

	"github.com/cottand/regionck/frontend/ir"
)

// RegionVid is a dense handle standing for a region (lifetime) variable
// created during inference. Fresh variables are numbered from zero.
type RegionVid uint32

func (r RegionVid) String() string {
	return fmt.Sprintf("'?%d", uint32(r))
}

// SCCIndex identifies the strongly connected component a region variable was
// collapsed into. Constraint sets are re-keyed from RegionVid to SCCIndex
// once equivalence classes are known.
type SCCIndex uint32

func (s SCCIndex) String() string {
	return fmt.Sprintf("scc%d", uint32(s))
}

// OpaqueTypeKey identifies which opaque type instantiation gave rise to a
// member constraint. Like the hidden type, it is passenger data: stored and
// returned for diagnostics, never interpreted here.
type OpaqueTypeKey struct {
	Def  string
	Args []ir.Type
}

func (k OpaqueTypeKey) String() string {
	if len(k.Args) == 0 {
		return k.Def
	}
	return ir.TypeRef{Name: k.Def, Args: k.Args}.String()
}
