package ir

import (
	"fmt"
	"hash/fnv"
	"strings"

	set "github.com/hashicorp/go-set/v3"
)

// Type is an opaque descriptor for a (possibly partially inferred) type.
// Region inference stores these as passenger data only: they are never
// compared or interpreted, just carried through to diagnostics.
type Type interface {
	Hash() uint64
	String() string
	Positioner
}

// Equal can be used to compare Type instances for equality.
// Types hash their whole structure, so hash equality is type equality.
func Equal[H, HH set.Hasher[uint64]](this H, other HH) bool {
	return this.Hash() == other.Hash()
}

var _ Type = TypeRef{}

// TypeRef names a type, together with any applied type arguments, as in
// `Vec[Str]`. It is the hidden-type shape region inference carries around.
type TypeRef struct {
	Range
	Name string
	Args []Type
}

func (t TypeRef) String() string {
	if len(t.Args) == 0 {
		return t.Name
	}
	shown := make([]string, len(t.Args))
	for i, arg := range t.Args {
		shown[i] = arg.String()
	}
	return fmt.Sprint(t.Name, "[", strings.Join(shown, ", "), "]")
}

func (t TypeRef) Hash() uint64 {
	hash := fnv.New64()
	_, _ = hash.Write([]byte(t.Name))
	h := hash.Sum64()
	for _, arg := range t.Args {
		h = 31*h ^ arg.Hash()
	}
	return h
}
