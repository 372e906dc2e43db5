package regions

import (
	"fmt"
	"iter"

	"github.com/cottand/regionck/frontend/ir"
	"github.com/cottand/regionck/internal/log"
	"github.com/cottand/regionck/util"
)

var logger = log.DefaultLogger.With("section", "regions")

// ConstraintIndex is a dense handle for a constraint inside one
// MemberConstraintSet. Indices are assigned at push time, never reused, and
// stay valid for as long as the owning set (or the set it was mapped into)
// lives. Indexing a set with a handle it never minted is a bug in the caller
// and panics.
type ConstraintIndex int

// noConstraint terminates the linked list of constraints sharing a key.
const noConstraint ConstraintIndex = -1

// MemberConstraintSet compactly stores `R0 member of [R1..Rn]` constraints,
// indexed by the region R0. Constraints live in a single append-only arena
// and form intrusive linked lists per key; the candidate regions of every
// constraint share one backing slice, referenced by offset pairs.
//
// A set is built incrementally while keyed by RegionVid, then consumed once
// by IntoMapped to produce a set keyed by equivalence-class representatives.
type MemberConstraintSet[R comparable] struct {
	// firstConstraints stores the most recently pushed constraint for a
	// given R0, iterable in first-insertion order of the keys.
	firstConstraints *util.OrderedMap[R, ConstraintIndex]

	// constraints is the arena of all constraint records, in push order.
	constraints []MemberConstraint

	// choiceRegions stores the R1..Rn candidates for *all* constraints.
	// Each record keeps two offsets so it can pull out its own sub-slice.
	choiceRegions []RegionVid
}

// MemberConstraint records a single `R0 member of [R1..Rn]` fact.
// Everything except the list link and the candidate offsets is passenger
// data for later diagnostics.
type MemberConstraint struct {
	// next links to the next constraint sharing this one's key at push
	// time, or whatever key the chain was merged under since.
	next ConstraintIndex

	// DefinitionSpan is the span where the hidden type was instantiated.
	DefinitionSpan ir.Range

	// HiddenType is the type in which R0 appears. (Used in error reporting.)
	HiddenType ir.Type

	Key OpaqueTypeKey

	// MemberRegion is the raw region variable R0. It is not rewritten when
	// the set is re-keyed, so diagnostics always see the original variable.
	MemberRegion RegionVid

	startIndex int
	endIndex   int
}

// NewMemberConstraintSet returns an empty set keyed by raw region variables,
// ready for the collection phase.
func NewMemberConstraintSet() *MemberConstraintSet[RegionVid] {
	return &MemberConstraintSet[RegionVid]{
		firstConstraints: util.NewOrderedMap[RegionVid, ConstraintIndex](0),
	}
}

func (cs *MemberConstraintSet[R]) IsEmpty() bool {
	return len(cs.constraints) == 0
}

// Len returns how many constraints have been pushed (or carried over by
// re-keying) into this set.
func (cs *MemberConstraintSet[R]) Len() int {
	return len(cs.constraints)
}

// AddMemberConstraint pushes a `memberRegion member of choiceRegions`
// constraint. The candidates are appended verbatim: order is preserved and
// duplicates are kept, since candidate order is significant to callers.
// Only the unmapped set accepts new constraints, hence the concrete
// RegionVid instantiation; re-keyed sets are read-only.
func AddMemberConstraint(
	cs *MemberConstraintSet[RegionVid],
	key OpaqueTypeKey,
	hiddenType ir.Type,
	definitionSpan ir.Range,
	memberRegion RegionVid,
	choiceRegions []RegionVid,
) ConstraintIndex {
	next := noConstraint
	if head, ok := cs.firstConstraints.Get(memberRegion); ok {
		next = head
	}
	startIndex := len(cs.choiceRegions)
	cs.choiceRegions = append(cs.choiceRegions, choiceRegions...)
	endIndex := len(cs.choiceRegions)
	constraintIndex := ConstraintIndex(len(cs.constraints))
	cs.constraints = append(cs.constraints, MemberConstraint{
		next:           next,
		MemberRegion:   memberRegion,
		DefinitionSpan: definitionSpan,
		HiddenType:     hiddenType,
		Key:            key,
		startIndex:     startIndex,
		endIndex:       endIndex,
	})
	cs.firstConstraints.Set(memberRegion, constraintIndex)
	logger.Debug("pushed member constraint",
		"memberRegion", memberRegion,
		"index", int(constraintIndex),
		"choiceRegions", len(choiceRegions),
	)
	return constraintIndex
}

// IntoMapped re-keys the set through mapFn, producing a new set and
// consuming the receiver. This is used to map from raw region variables to
// their SCC representative. mapFn may send several old keys to the same new
// key; the affected chains are then merged.
//
// The constraint arena and the candidate slice move into the result
// unchanged. Only the key map and, when chains merge, the final link of a
// chain are rewritten.
//
// When old keys collide, the chain processed later becomes the visible
// prefix: walking from the new head yields the last-processed old key's
// constraints first (in their original relative order), then the chain
// accumulated before it, and so on. Old keys are processed in the order they
// were first pushed. Merging walks a chain to its tail, so heavy collision
// onto one growing chain degrades quadratically; equivalence classes over
// region variables are small in practice, so this is an accepted ceiling
// rather than something worth a tail cache.
func IntoMapped[R1, R2 comparable](
	cs *MemberConstraintSet[R1],
	mapFn func(R1) R2,
) *MemberConstraintSet[R2] {
	firstConstraints := util.NewOrderedMap[R2, ConstraintIndex](cs.firstConstraints.Len())
	constraints := cs.constraints

	for r1, start1 := range cs.firstConstraints.All() {
		r2 := mapFn(r1)
		if start2, ok := firstConstraints.Get(r2); ok {
			appendList(constraints, start1, start2)
		}
		firstConstraints.Set(r2, start1)
	}

	mapped := &MemberConstraintSet[R2]{
		firstConstraints: firstConstraints,
		constraints:      constraints,
		choiceRegions:    cs.choiceRegions,
	}
	// retire the consumed set so stale handles fail fast rather than read
	// through to the moved arenas
	cs.firstConstraints = nil
	cs.constraints = nil
	cs.choiceRegions = nil
	return mapped
}

// Indices iterates the constraints recorded for memberRegion, most recently
// pushed first. Chains merged in by IntoMapped follow, each in its own
// most-recent-first order.
func (cs *MemberConstraintSet[R]) Indices(memberRegion R) iter.Seq[ConstraintIndex] {
	return func(yield func(ConstraintIndex) bool) {
		head, ok := cs.firstConstraints.Get(memberRegion)
		if !ok {
			return
		}
		for current := head; current != noConstraint; current = cs.constraints[current].next {
			if !yield(current) {
				return
			}
		}
	}
}

// AllIndices iterates every constraint exactly once, in push order,
// regardless of key.
func (cs *MemberConstraintSet[R]) AllIndices() iter.Seq[ConstraintIndex] {
	return func(yield func(ConstraintIndex) bool) {
		for i := range cs.constraints {
			if !yield(ConstraintIndex(i)) {
				return
			}
		}
	}
}

// Constraint returns the record for the given index. The returned pointer
// aliases the arena; callers must not mutate it.
func (cs *MemberConstraintSet[R]) Constraint(i ConstraintIndex) *MemberConstraint {
	if i < 0 || int(i) >= len(cs.constraints) {
		panic(fmt.Sprintf("constraint index %d outside arena of %d constraints", i, len(cs.constraints)))
	}
	return &cs.constraints[i]
}

// ChoiceRegions returns the `R1..Rn` candidates of the given constraint as a
// view into the shared slice. Do not mutate or retain past the set's life.
func (cs *MemberConstraintSet[R]) ChoiceRegions(i ConstraintIndex) []RegionVid {
	c := cs.Constraint(i)
	return cs.choiceRegions[c.startIndex:c.endIndex]
}

// appendList walks the list starting at targetList to its final link and
// points that link at sourceList, so that targetList is followed by
// sourceList:
//
//	target: A -> B -> C -> (none)
//	source: D -> E -> F -> (none)
//
// becomes
//
//	target: A -> B -> C -> D -> E -> F -> (none)
func appendList(constraints []MemberConstraint, targetList, sourceList ConstraintIndex) {
	p := targetList
	for {
		r := &constraints[p]
		if r.next == noConstraint {
			r.next = sourceList
			return
		}
		p = r.next
	}
}
