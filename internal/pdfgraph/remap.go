package pdfgraph

import (
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// ObjectID identifies an indirect object by number and generation.
type ObjectID struct {
	Number     int
	Generation int
}

func (id ObjectID) String() string {
	return fmt.Sprintf("%d %d R", id.Number, id.Generation)
}

// Ref returns id as an indirect reference.
func (id ObjectID) Ref() types.IndirectRef {
	return *types.NewIndirectRef(id.Number, id.Generation)
}

// IDOf returns the ObjectID a reference points at.
func IDOf(ref types.IndirectRef) ObjectID {
	return ObjectID{Number: int(ref.ObjectNumber), Generation: int(ref.GenerationNumber)}
}

// RemapTable maps object identifiers of one document to fresh identifiers in another.
type RemapTable map[ObjectID]ObjectID

// Offset builds a table that shifts every listed object number by offset,
// keeping generations.
func Offset(ids []ObjectID, offset int) RemapTable {
	t := make(RemapTable, len(ids))
	for _, id := range ids {
		t[id] = ObjectID{Number: id.Number + offset, Generation: id.Generation}
	}
	return t
}

// Ref translates ref, reporting whether it was in the table.
func (t RemapTable) Ref(ref types.IndirectRef) (types.IndirectRef, bool) {
	id, ok := t[IDOf(ref)]
	if !ok {
		return ref, false
	}
	return id.Ref(), true
}

// Rewrite replaces every reference reachable inside o with its mapped
// counterpart. Containers are modified in place; references not present in
// the table are left untouched.
func (t RemapTable) Rewrite(o types.Object) types.Object {
	switch obj := o.(type) {
	case types.IndirectRef:
		ref, _ := t.Ref(obj)
		return ref
	case types.Dict:
		for k, v := range obj {
			obj[k] = t.Rewrite(v)
		}
		return obj
	case types.Array:
		for i, v := range obj {
			obj[i] = t.Rewrite(v)
		}
		return obj
	case types.StreamDict:
		t.Rewrite(obj.Dict)
		return obj
	default:
		return o
	}
}
