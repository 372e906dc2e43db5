package regions

import (
	"fmt"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cottand/regionck/frontend/ir"
)

func pushSimple(cs *MemberConstraintSet[RegionVid], member RegionVid, choices ...RegionVid) ConstraintIndex {
	return AddMemberConstraint(
		cs,
		OpaqueTypeKey{Def: "Opaque"},
		ir.TypeRef{Name: "Hidden"},
		ir.Range{},
		member,
		choices,
	)
}

func TestAllIndicesFollowsPushOrder(t *testing.T) {
	cs := NewMemberConstraintSet()
	members := []RegionVid{3, 1, 3, 0, 1}
	for _, m := range members {
		pushSimple(cs, m, 7)
	}

	got := slices.Collect(cs.AllIndices())
	assert.Equal(t, []ConstraintIndex{0, 1, 2, 3, 4}, got)
	assert.Equal(t, len(members), cs.Len())
}

func TestChoiceRegionsReturnedVerbatim(t *testing.T) {
	testCases := []struct {
		name    string
		choices []RegionVid
	}{
		{name: "singleton", choices: []RegionVid{4}},
		{name: "ordered run", choices: []RegionVid{9, 2, 5}},
		{name: "duplicates kept", choices: []RegionVid{1, 1, 2, 1}},
		{name: "empty candidate list", choices: []RegionVid{}},
	}

	cs := NewMemberConstraintSet()
	for _, tc := range testCases {
		idx := pushSimple(cs, 0, tc.choices...)
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.choices, slices.Clone(cs.ChoiceRegions(idx)))
		})
	}
}

func TestIndicesVisitsNewestFirst(t *testing.T) {
	cs := NewMemberConstraintSet()
	first := pushSimple(cs, 1, 5)
	pushSimple(cs, 2, 6)
	second := pushSimple(cs, 1, 7)

	assert.Equal(t, []ConstraintIndex{second, first}, slices.Collect(cs.Indices(1)))
	assert.Empty(t, slices.Collect(cs.Indices(9)))
}

func TestIntoMappedIdentityKeepsChains(t *testing.T) {
	cs := NewMemberConstraintSet()
	a := pushSimple(cs, 1, 5, 6)
	b := pushSimple(cs, 2, 7)
	c := pushSimple(cs, 1, 8)

	mapped := IntoMapped(cs, func(r RegionVid) RegionVid { return r })

	assert.Equal(t, []ConstraintIndex{c, a}, slices.Collect(mapped.Indices(1)))
	assert.Equal(t, []ConstraintIndex{b}, slices.Collect(mapped.Indices(2)))
	assert.Equal(t, []RegionVid{5, 6}, mapped.ChoiceRegions(a))
	assert.Equal(t, []RegionVid{8}, mapped.ChoiceRegions(c))
}

func TestIntoMappedToDifferentKeyType(t *testing.T) {
	cs := NewMemberConstraintSet()
	a := pushSimple(cs, 1, 5)

	mapped := IntoMapped(cs, func(r RegionVid) string { return fmt.Sprint("k", r) })

	assert.Equal(t, []ConstraintIndex{a}, slices.Collect(mapped.Indices("k'?1")))
}

func TestIntoMappedMergesCollidingKeys(t *testing.T) {
	cs := NewMemberConstraintSet()
	a := pushSimple(cs, 1, 10, 11) // key k1, candidates [x, y]
	b := pushSimple(cs, 2, 12)     // key k2, candidates [z]

	// both keys collapse onto region 3; key 1 was inserted first, so its
	// chain is processed first and key 2's chain ends up as the prefix
	mapped := IntoMapped(cs, func(RegionVid) RegionVid { return 3 })

	require.Equal(t, []ConstraintIndex{b, a}, slices.Collect(mapped.Indices(3)))
	assert.Equal(t, []RegionVid{12}, mapped.ChoiceRegions(b))
	assert.Equal(t, []RegionVid{10, 11}, mapped.ChoiceRegions(a))
}

func TestIntoMappedThreeWayMerge(t *testing.T) {
	cs := NewMemberConstraintSet()
	c1 := pushSimple(cs, 1, 10)
	c2 := pushSimple(cs, 2, 11)
	c3 := pushSimple(cs, 3, 12)

	mapped := IntoMapped(cs, func(RegionVid) RegionVid { return 4 })

	// each merge makes the chain processed last the new visible head
	assert.Equal(t, []ConstraintIndex{c3, c2, c1}, slices.Collect(mapped.Indices(4)))
}

func TestIntoMappedMergeKeepsChainInternalOrder(t *testing.T) {
	cs := NewMemberConstraintSet()
	a1 := pushSimple(cs, 1, 10)
	b1 := pushSimple(cs, 2, 20)
	a2 := pushSimple(cs, 1, 11)
	b2 := pushSimple(cs, 2, 21)

	mapped := IntoMapped(cs, func(RegionVid) RegionVid { return 0 })

	// key 2's chain (newest first) followed by key 1's chain (newest first)
	assert.Equal(t, []ConstraintIndex{b2, b1, a2, a1}, slices.Collect(mapped.Indices(0)))
}

func TestIsEmpty(t *testing.T) {
	cs := NewMemberConstraintSet()
	assert.True(t, cs.IsEmpty())

	mappedEmpty := IntoMapped(cs, func(r RegionVid) RegionVid { return r })
	assert.True(t, mappedEmpty.IsEmpty())

	cs2 := NewMemberConstraintSet()
	pushSimple(cs2, 0, 1)
	assert.False(t, cs2.IsEmpty())
}

func TestForeignIndexPanics(t *testing.T) {
	cs := NewMemberConstraintSet()
	pushSimple(cs, 0, 1)

	assert.Panics(t, func() { cs.Constraint(5) })
	assert.Panics(t, func() { cs.ChoiceRegions(-1) })
}

func TestConsumedSetIsRetired(t *testing.T) {
	cs := NewMemberConstraintSet()
	idx := pushSimple(cs, 0, 1)
	mapped := IntoMapped(cs, func(r RegionVid) RegionVid { return r })

	// the index stays valid against the mapped set only
	assert.Equal(t, []RegionVid{1}, mapped.ChoiceRegions(idx))
	assert.Panics(t, func() { cs.Constraint(idx) })
}
