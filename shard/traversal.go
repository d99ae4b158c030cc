package shard

import (
	"github.com/dreamware/shardgraph/internal/adjacency"
	"github.com/dreamware/shardgraph/internal/ident"
)

// Direction selects which of a node's adjacency lists a traversal or
// degree query considers (spec.md §6's "direction ∈ {IN, OUT, BOTH}").
type Direction uint8

const (
	DirOut Direction = iota
	DirIn
	DirBoth
)

// Degree returns the number of edges matching direction and typeFilter
// on id, or (0, false) if id is invalid. An empty or nil typeFilter is
// unfiltered (spec.md §8: "Direction filters with BOTH and an empty type
// list are equivalent to unfiltered").
func (s *Shard) Degree(id uint64, direction Direction, typeFilter map[uint16]bool) (int, bool) {
	rec, ok := s.GetNodeByID(id)
	if !ok {
		return 0, false
	}
	switch direction {
	case DirOut:
		return rec.Out.Degree(typeFilter), true
	case DirIn:
		return rec.In.Degree(typeFilter), true
	default:
		return rec.Out.Degree(typeFilter) + rec.In.Degree(typeFilter), true
	}
}

// RelationshipIDs returns the relationship ids reachable from id in
// direction, restricted to typeFilter, in group-then-insertion order.
// Relationship ids are always resolvable purely locally: an adjacency
// entry stores the relationship's external id directly regardless of
// which shard actually owns that relationship's record (spec.md §3:
// "an incoming entry's relationship_id ... identifies which shard holds
// the relationship record" — the id itself never requires a round trip).
func (s *Shard) RelationshipIDs(id uint64, direction Direction, typeFilter map[uint16]bool) ([]uint64, bool) {
	rec, ok := s.GetNodeByID(id)
	if !ok {
		return nil, false
	}
	var entries []adjacency.TypedEntry
	switch direction {
	case DirOut:
		entries = rec.Out.Entries(typeFilter)
	case DirIn:
		entries = rec.In.Entries(typeFilter)
	default:
		entries = append(rec.Out.Entries(typeFilter), rec.In.Entries(typeFilter)...)
	}
	out := make([]uint64, len(entries))
	for i, te := range entries {
		out[i] = te.Entry.Rel
	}
	return out, true
}

// Neighbors returns the peer node ids reachable from id in direction,
// restricted to typeFilter, in the same order as RelationshipIDs.
func (s *Shard) Neighbors(id uint64, direction Direction, typeFilter map[uint16]bool) ([]uint64, bool) {
	rec, ok := s.GetNodeByID(id)
	if !ok {
		return nil, false
	}
	var entries []adjacency.TypedEntry
	switch direction {
	case DirOut:
		entries = rec.Out.Entries(typeFilter)
	case DirIn:
		entries = rec.In.Entries(typeFilter)
	default:
		entries = append(rec.Out.Entries(typeFilter), rec.In.Entries(typeFilter)...)
	}
	out := make([]uint64, len(entries))
	for i, te := range entries {
		out[i] = te.Entry.Peer
	}
	return out, true
}

// LocalRelationshipRecords returns the full relationship records
// reachable from id in direction that this shard can resolve without
// leaving its own pool (outgoing edges always resolve locally, since id
// owns them; incoming edges resolve locally only when the peer — the
// relationship's starting node — also lives on this shard), plus the
// ids of any edges whose record lives on a different shard. The graph
// package fetches those remotely and appends them after the local
// records, so the combined order differs from RelationshipIDs' when both
// kinds are present.
func (s *Shard) LocalRelationshipRecords(id uint64, direction Direction, typeFilter map[uint16]bool) (local []RelationshipRecord, remoteIDs []uint64, ok bool) {
	relIDs, ok := s.RelationshipIDs(id, direction, typeFilter)
	if !ok {
		return nil, nil, false
	}
	for _, relID := range relIDs {
		if ident.ShardOf(relID) == s.id {
			if rec, ok := s.GetRelationshipByID(relID); ok {
				local = append(local, rec)
				continue
			}
		}
		remoteIDs = append(remoteIDs, relID)
	}
	return local, remoteIDs, true
}
