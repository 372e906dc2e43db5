package regions

import (
	"slices"
	"sort"

	"github.com/benbjohnson/immutable"
	xset "github.com/xtgo/set"

	"github.com/cottand/regionck/frontend/ir"
	"github.com/cottand/regionck/internal/log"
)

var checkLogger = log.DefaultLogger.With("section", "check")

type regionVids []RegionVid

func (s regionVids) Len() int           { return len(s) }
func (s regionVids) Less(i, j int) bool { return s[i] < s[j] }
func (s regionVids) Swap(i, j int)      { s[i], s[j] = s[j], s[i] }

// RegionVidHasher lets RegionVid be a key of the immutable collections.
type RegionVidHasher struct{}

func (RegionVidHasher) Hash(key RegionVid) uint32 { return uint32(key) }
func (RegionVidHasher) Equal(a, b RegionVid) bool { return a == b }

var _ immutable.Hasher[RegionVid] = RegionVidHasher{}

// NarrowCandidates intersects the candidate lists of every constraint
// recorded for key: a region may only be picked for the equivalence class if
// each of its member constraints allows it. The result is frozen since the
// later choice must not feed back into the stored candidate lists.
//
// A key with no constraints narrows to the empty set.
func NarrowCandidates(cs *MemberConstraintSet[SCCIndex], key SCCIndex) immutable.Set[RegionVid] {
	var narrowed []RegionVid
	first := true
	for idx := range cs.Indices(key) {
		choices := sortedUnique(cs.ChoiceRegions(idx))
		if first {
			narrowed = choices
			first = false
			continue
		}
		// both halves are sorted, so intersect in place
		data := regionVids(append(narrowed, choices...))
		n := xset.Inter(data, len(narrowed))
		narrowed = data[:n]
	}
	checkLogger.Debug("narrowed member candidates", "key", key, "candidates", len(narrowed))
	return immutable.NewSet(RegionVidHasher{}, narrowed...)
}

func sortedUnique(rs []RegionVid) []RegionVid {
	out := regionVids(slices.Clone(rs))
	sort.Sort(out)
	n := xset.Uniq(out)
	return out[:n]
}

// MemberViolation reports a member constraint whose equivalence class was
// given a region outside the constraint's candidates.
type MemberViolation struct {
	Index          ConstraintIndex
	MemberRegion   RegionVid
	Chosen         RegionVid
	DefinitionSpan ir.Range
	HiddenType     ir.Type
	Key            OpaqueTypeKey
}

// VerifyChosen sweeps every constraint exactly once and checks the region
// chosen for its equivalence class against its candidate list. How a region
// gets chosen is the caller's business; violations come back with their
// passenger data attached so diagnostics can render them.
func VerifyChosen(
	cs *MemberConstraintSet[SCCIndex],
	sccs *SCCs,
	chosen func(SCCIndex) RegionVid,
) []MemberViolation {
	var violations []MemberViolation
	for idx := range cs.AllIndices() {
		c := cs.Constraint(idx)
		pick := chosen(sccs.SCC(c.MemberRegion))
		if slices.Contains(cs.ChoiceRegions(idx), pick) {
			continue
		}
		violations = append(violations, MemberViolation{
			Index:          idx,
			MemberRegion:   c.MemberRegion,
			Chosen:         pick,
			DefinitionSpan: c.DefinitionSpan,
			HiddenType:     c.HiddenType,
			Key:            c.Key,
		})
	}
	return violations
}
