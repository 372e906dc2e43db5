package regions

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// identitySCCs builds the trivial classes of a graph with no edges, where
// every region is its own representative.
func identitySCCs(numRegions int) *SCCs {
	return ComputeSCCs(NewOutlivesGraph(numRegions))
}

func TestNarrowCandidatesIntersectsChains(t *testing.T) {
	cs := NewMemberConstraintSet()
	pushSimple(cs, 0, 1, 2, 3)
	pushSimple(cs, 0, 2, 3, 4)
	pushSimple(cs, 0, 3, 2, 9)

	sccs := identitySCCs(10)
	mapped := IntoMapped(cs, sccs.MapFn())

	narrowed := NarrowCandidates(mapped, sccs.SCC(0))
	assert.Equal(t, 2, narrowed.Len())
	assert.True(t, narrowed.Has(2))
	assert.True(t, narrowed.Has(3))
	assert.False(t, narrowed.Has(1))
}

func TestNarrowCandidatesSingleConstraintDeduplicates(t *testing.T) {
	cs := NewMemberConstraintSet()
	idx := pushSimple(cs, 0, 5, 5, 6)

	sccs := identitySCCs(7)
	mapped := IntoMapped(cs, sccs.MapFn())

	// the stored candidate list keeps its duplicates
	require.Equal(t, []RegionVid{5, 5, 6}, mapped.ChoiceRegions(idx))
	// narrowing works on the set of candidates
	narrowed := NarrowCandidates(mapped, sccs.SCC(0))
	assert.Equal(t, 2, narrowed.Len())
}

func TestNarrowCandidatesUnknownKeyIsEmpty(t *testing.T) {
	cs := NewMemberConstraintSet()
	pushSimple(cs, 0, 1)

	sccs := identitySCCs(3)
	mapped := IntoMapped(cs, sccs.MapFn())

	assert.Equal(t, 0, NarrowCandidates(mapped, sccs.SCC(2)).Len())
}

func TestVerifyChosenSweepsEveryConstraintOnce(t *testing.T) {
	cs := NewMemberConstraintSet()
	okIdx := pushSimple(cs, 0, 1, 2)
	badIdx := pushSimple(cs, 1, 2)

	sccs := identitySCCs(3)
	mapped := IntoMapped(cs, sccs.MapFn())

	chosen := map[SCCIndex]RegionVid{
		sccs.SCC(0): 1, // allowed by [1, 2]
		sccs.SCC(1): 0, // not in [2]
	}
	violations := VerifyChosen(mapped, sccs, func(s SCCIndex) RegionVid { return chosen[s] })

	require.Len(t, violations, 1)
	assert.Equal(t, badIdx, violations[0].Index)
	assert.Equal(t, RegionVid(1), violations[0].MemberRegion)
	assert.Equal(t, RegionVid(0), violations[0].Chosen)
	assert.NotEqual(t, okIdx, violations[0].Index)
}

func TestVerifyChosenNoViolations(t *testing.T) {
	cs := NewMemberConstraintSet()
	pushSimple(cs, 0, 3)
	pushSimple(cs, 0, 3, 4)

	sccs := identitySCCs(5)
	mapped := IntoMapped(cs, sccs.MapFn())

	violations := VerifyChosen(mapped, sccs, func(SCCIndex) RegionVid { return 3 })
	assert.Empty(t, violations)
}
