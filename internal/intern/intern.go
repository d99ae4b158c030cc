// Package intern implements the per-shard, per-kind type interner
// (spec.md §4.1): the bidirectional string↔small-int mapping for node
// and relationship type names, plus each type's id-set bitmap.
//
// A shard holds two Interner instances — one for node types, one for
// relationship types — populated directly when the shard is shard 0 (the
// authoritative writer) and populated by applying broadcast Insert
// records everywhere else (spec.md §4.7, §5: "shard 0 as leader").
// Interner itself has no notion of shards or broadcasting; it is a plain
// single-threaded data structure, safe to use only from the goroutine
// that owns the enclosing shard, the same assumption every other
// per-shard package in this module makes.
package intern

import "github.com/RoaringBitmap/roaring/roaring64"

// EmptyID is the reserved type id for the empty/unknown type name
// (spec.md §4.1: "id 0 is reserved and always maps to the empty string").
const EmptyID uint16 = 0

// Interner is a bidirectional name↔id map for one kind of type name
// (node types or relationship types, kept as separate instances per
// spec.md §3), plus the set of external ids currently registered under
// each type id.
type Interner struct {
	nameToID map[string]uint16
	idToName []string
	idSets   []*roaring64.Bitmap
}

// New returns an Interner pre-populated with the reserved empty type.
func New() *Interner {
	return &Interner{
		nameToID: map[string]uint16{"": EmptyID},
		idToName: []string{""},
		idSets:   []*roaring64.Bitmap{roaring64.New()},
	}
}

// Get returns the id for name and true if it has been assigned, or
// (0, false) otherwise.
func (in *Interner) Get(name string) (uint16, bool) {
	id, ok := in.nameToID[name]
	return id, ok
}

// GetOrInsert returns the existing id for name, or assigns the next id
// (len(idToName)) and returns it. Ids are assigned monotonically and
// never recycled, even after every member of a type is removed (spec.md
// §4.1). On a non-leader shard this must only be called with a name
// already agreed via broadcast — see graph's peered type-insert path,
// which is the only caller allowed to grow the interner on a shard that
// is not shard 0.
func (in *Interner) GetOrInsert(name string) uint16 {
	if id, ok := in.nameToID[name]; ok {
		return id
	}
	id := uint16(len(in.idToName))
	in.nameToID[name] = id
	in.idToName = append(in.idToName, name)
	in.idSets = append(in.idSets, roaring64.New())
	return id
}

// Insert records an (name, id) pair assigned elsewhere (by shard 0) into
// this shard's cache, without allocating a new id. It is idempotent: if
// name is already bound, the existing id must match id (callers are
// trusted — the broadcast protocol is the only path that calls this, and
// it is serialized by construction, spec.md §4.7).
func (in *Interner) Insert(name string, id uint16) {
	if _, ok := in.nameToID[name]; ok {
		return
	}
	for int(id) >= len(in.idToName) {
		in.idToName = append(in.idToName, "")
		in.idSets = append(in.idSets, roaring64.New())
	}
	in.nameToID[name] = id
	in.idToName[id] = name
}

// NameOf returns the type name for id, or ("", false) if id has never
// been assigned.
func (in *Interner) NameOf(id uint16) (string, bool) {
	if int(id) >= len(in.idToName) {
		return "", false
	}
	if id != EmptyID && in.idToName[id] == "" {
		return "", false
	}
	return in.idToName[id], true
}

// AddID registers externalID as a member of typeID's id-set.
func (in *Interner) AddID(typeID uint16, externalID uint64) {
	in.ensure(typeID)
	in.idSets[typeID].Add(externalID)
}

// RemoveID removes externalID from typeID's id-set. Removing the last
// member reduces the set's cardinality to zero but never removes the
// name binding (spec.md §4.1).
func (in *Interner) RemoveID(typeID uint16, externalID uint64) {
	if int(typeID) >= len(in.idSets) {
		return
	}
	in.idSets[typeID].Remove(externalID)
}

// IDsOf returns the live external ids currently registered under typeID.
// The returned slice is a snapshot; mutating the interner afterward does
// not retroactively change it.
func (in *Interner) IDsOf(typeID uint16) []uint64 {
	if int(typeID) >= len(in.idSets) {
		return nil
	}
	return in.idSets[typeID].ToArray()
}

// AllIDs returns every external id registered under any type.
func (in *Interner) AllIDs() []uint64 {
	all := roaring64.New()
	for _, s := range in.idSets {
		all.Or(s)
	}
	return all.ToArray()
}

// Count returns the number of live ids registered under typeID.
func (in *Interner) Count(typeID uint16) uint64 {
	if int(typeID) >= len(in.idSets) {
		return 0
	}
	return in.idSets[typeID].GetCardinality()
}

// Counts returns a count per assigned type id, including types whose
// count is currently zero (so callers can tell "exists but empty" from
// "never existed").
func (in *Interner) Counts() map[uint16]uint64 {
	out := make(map[uint16]uint64, len(in.idSets))
	for id, set := range in.idSets {
		out[uint16(id)] = set.GetCardinality()
	}
	return out
}

// Types returns every type name ever assigned, including the reserved
// empty name.
func (in *Interner) Types() []string {
	out := make([]string, 0, len(in.nameToID))
	for name := range in.nameToID {
		out = append(out, name)
	}
	return out
}

// TypesCount returns the number of distinct type names assigned,
// including the reserved empty type.
func (in *Interner) TypesCount() int {
	return len(in.nameToID)
}

func (in *Interner) ensure(typeID uint16) {
	for int(typeID) >= len(in.idSets) {
		in.idToName = append(in.idToName, "")
		in.idSets = append(in.idSets, roaring64.New())
	}
}
