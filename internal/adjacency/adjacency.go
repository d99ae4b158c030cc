// Package adjacency implements the per-node outgoing/incoming adjacency
// representation spec.md §4.4 describes: groups of edges bucketed by
// relationship type, searched linearly (the number of distinct types
// touching one node is expected to stay small, per spec.md §9's note on
// adjacency scan cost).
package adjacency

// Entry is one edge endpoint recorded in a Group: the node on the other
// side of the edge and the relationship that connects them.
type Entry struct {
	Peer uint64 // external node id on the far side of the edge
	Rel  uint64 // external relationship id
}

// Group is the unit of per-node adjacency organization spec.md's
// GLOSSARY defines: all edges of one relationship type in one direction,
// in insertion order.
type Group struct {
	TypeID uint16
	Ids    []Entry
}

// List is the ordered, unordered-by-type collection of Groups for one
// direction (outgoing or incoming) on one node. Groups are searched
// linearly by TypeID; a missing group is created lazily on first
// insertion (spec.md §4.4).
type List []Group

// Add appends (peer, rel) to the group for typeID, creating the group if
// this is the first edge of that type.
func (l *List) Add(typeID uint16, peer, rel uint64) {
	for i := range *l {
		if (*l)[i].TypeID == typeID {
			(*l)[i].Ids = append((*l)[i].Ids, Entry{Peer: peer, Rel: rel})
			return
		}
	}
	*l = append(*l, Group{TypeID: typeID, Ids: []Entry{{Peer: peer, Rel: rel}}})
}

// RemoveByRel removes the entry whose relationship id is rel from
// typeID's group, preserving the order of the remaining entries (spec.md
// §4.4: "uses remove-by-predicate, not swap-remove"). It reports whether
// an entry was found and removed.
func (l *List) RemoveByRel(typeID uint16, rel uint64) bool {
	for i := range *l {
		if (*l)[i].TypeID != typeID {
			continue
		}
		ids := (*l)[i].Ids
		for j, e := range ids {
			if e.Rel == rel {
				(*l)[i].Ids = append(ids[:j], ids[j+1:]...)
				return true
			}
		}
		return false
	}
	return false
}

// Clear empties the list.
func (l *List) Clear() {
	*l = (*l)[:0]
}

// Degree returns the number of entries matching typeFilter, or the total
// across all groups if typeFilter is nil (spec.md §6's direction/type
// filter semantics: "BOTH and an empty type list are equivalent to
// unfiltered" — callers handle BOTH by summing two Lists; this handles
// the type-list filter for a single direction).
func (l List) Degree(typeFilter map[uint16]bool) int {
	if len(typeFilter) == 0 {
		total := 0
		for _, g := range l {
			total += len(g.Ids)
		}
		return total
	}
	total := 0
	for _, g := range l {
		if typeFilter[g.TypeID] {
			total += len(g.Ids)
		}
	}
	return total
}

// Entries returns the (typeID, Entry) pairs matching typeFilter, or all
// entries if typeFilter is nil, in group order then insertion order
// within each group.
func (l List) Entries(typeFilter map[uint16]bool) []TypedEntry {
	var out []TypedEntry
	for _, g := range l {
		if len(typeFilter) > 0 && !typeFilter[g.TypeID] {
			continue
		}
		for _, e := range g.Ids {
			out = append(out, TypedEntry{TypeID: g.TypeID, Entry: e})
		}
	}
	return out
}

// TypedEntry pairs an adjacency Entry with the relationship type id of
// the group it came from, used where a flattened view across groups is
// needed (traversal output, shard fan-out partitioning).
type TypedEntry struct {
	TypeID uint16
	Entry  Entry
}

// GroupByPeerShard partitions entries matching typeFilter by the shard
// that owns Peer (per shardOf), returning a map from shard id to the
// relevant field extracted by pick. This is the primitive spec.md §4.4
// describes as feeding every peered fan-out: "partitions the node's
// edges by the shard that owns the far side". pick lets callers choose
// whether the fan-out needs the peer id or the relationship id per
// entry, matching the two use sites in spec.md §4.8 (node remove needs
// the peer to notify; it also needs the relationship id to recycle).
func (l List) GroupByPeerShard(typeFilter map[uint16]bool, shardOf func(uint64) uint8, pick func(TypedEntry) uint64) map[uint8][]uint64 {
	out := make(map[uint8][]uint64)
	for _, te := range l.Entries(typeFilter) {
		s := shardOf(te.Entry.Peer)
		out[s] = append(out[s], pick(te))
	}
	return out
}
