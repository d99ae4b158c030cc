package shard

import (
	"sync/atomic"

	"github.com/dreamware/shardgraph/internal/ident"
	"github.com/dreamware/shardgraph/internal/propbag"
)

// AddRelationshipSameShard adds a relationship whose endpoints both
// belong to this shard (spec.md §4.6's "same-shard add"): allocate a
// relationship slot, append to startID's outgoing group and endID's
// incoming group, register the type id.
func (s *Shard) AddRelationshipSameShard(typeID uint16, startID, endID uint64, props *propbag.Bag) (uint64, bool) {
	if !s.validNode(startID) || !s.validNode(endID) {
		return 0, false
	}
	if props == nil {
		props = propbag.New()
	}

	relIdx := s.rels.Alloc(RelationshipRecord{TypeID: typeID, Start: startID, End: endID, Props: props})
	relID := ident.Encode(s.id, relIdx)
	s.rels.Set(relIdx, RelationshipRecord{ID: relID, TypeID: typeID, Start: startID, End: endID, Props: props})

	startIdx := ident.IndexOf(startID)
	startRec := s.nodes.Get(startIdx)
	startRec.Out.Add(typeID, endID, relID)
	s.nodes.Set(startIdx, startRec)

	endIdx := ident.IndexOf(endID)
	endRec := s.nodes.Get(endIdx)
	endRec.In.Add(typeID, startID, relID)
	s.nodes.Set(endIdx, endRec)

	s.relTypes.AddID(typeID, relID)
	atomic.AddUint64(&s.stats.RelationshipAdds, 1)
	return relID, true
}

// AddRelationshipOutgoingSide is the starting-node half of a cross-shard
// add (spec.md §4.6): allocate and install the relationship record on
// this shard, append to startID's outgoing group, register the type id.
// It does not touch any incoming group — endID may not even be valid on
// its own shard yet when this runs (the peered protocol, §4.8(A),
// validates both endpoints before calling either side).
func (s *Shard) AddRelationshipOutgoingSide(typeID uint16, startID, endID uint64, props *propbag.Bag) (uint64, bool) {
	if !s.validNode(startID) {
		return 0, false
	}
	if props == nil {
		props = propbag.New()
	}

	relIdx := s.rels.Alloc(RelationshipRecord{TypeID: typeID, Start: startID, End: endID, Props: props})
	relID := ident.Encode(s.id, relIdx)
	s.rels.Set(relIdx, RelationshipRecord{ID: relID, TypeID: typeID, Start: startID, End: endID, Props: props})

	startIdx := ident.IndexOf(startID)
	startRec := s.nodes.Get(startIdx)
	startRec.Out.Add(typeID, endID, relID)
	s.nodes.Set(startIdx, startRec)

	s.relTypes.AddID(typeID, relID)
	atomic.AddUint64(&s.stats.RelationshipAdds, 1)
	return relID, true
}

// AddRelationshipIncomingSide is the ending-node half of a cross-shard
// add, invoked with the already-allocated relID from the starting
// shard's AddRelationshipOutgoingSide call. It appends to endID's
// incoming group; the type's group is created lazily if this is the
// first edge of that type on endID (spec.md §4.6: "idempotent in type-id
// lookup").
func (s *Shard) AddRelationshipIncomingSide(typeID uint16, startID, endID, relID uint64) bool {
	if !s.validNode(endID) {
		return false
	}
	idx := ident.IndexOf(endID)
	rec := s.nodes.Get(idx)
	rec.In.Add(typeID, startID, relID)
	s.nodes.Set(idx, rec)
	return true
}

// GetRelationshipByID returns the relationship record for id, or the
// zero record and false if id is invalid on this shard.
func (s *Shard) GetRelationshipByID(id uint64) (RelationshipRecord, bool) {
	if !s.validRel(id) {
		return RelationshipRecord{}, false
	}
	return s.rels.Get(ident.IndexOf(id)), true
}

// TypeOfRelationship returns id's relationship type, or (0, false).
func (s *Shard) TypeOfRelationship(id uint64) (uint16, bool) {
	rec, ok := s.GetRelationshipByID(id)
	if !ok {
		return 0, false
	}
	return rec.TypeID, true
}

// StartNodeOf returns id's starting node id, or (0, false).
func (s *Shard) StartNodeOf(id uint64) (uint64, bool) {
	rec, ok := s.GetRelationshipByID(id)
	if !ok {
		return 0, false
	}
	return rec.Start, true
}

// EndNodeOf returns id's ending node id, or (0, false).
func (s *Shard) EndNodeOf(id uint64) (uint64, bool) {
	rec, ok := s.GetRelationshipByID(id)
	if !ok {
		return 0, false
	}
	return rec.End, true
}

// RemoveRelationshipSameShard removes a relationship whose endpoints
// both belong to this shard: remove from both adjacency groups, recycle
// the slot, remove the id from the type bitmap (spec.md §4.6's
// "same-shard remove").
func (s *Shard) RemoveRelationshipSameShard(id uint64) bool {
	rec, ok := s.GetRelationshipByID(id)
	if !ok {
		return false
	}
	if startIdx := ident.IndexOf(rec.Start); s.nodes.Live(startIdx) {
		startRec := s.nodes.Get(startIdx)
		startRec.Out.RemoveByRel(rec.TypeID, id)
		s.nodes.Set(startIdx, startRec)
	}
	if endIdx := ident.IndexOf(rec.End); s.nodes.Live(endIdx) {
		endRec := s.nodes.Get(endIdx)
		endRec.In.RemoveByRel(rec.TypeID, id)
		s.nodes.Set(endIdx, endRec)
	}
	s.recycleRelationship(rec.TypeID, id)
	atomic.AddUint64(&s.stats.RelationshipRems, 1)
	return true
}

// RemoveRelationshipOutgoingSide is the starting-node half of a
// cross-shard remove (spec.md §4.6's "cross-shard remove", two-step —
// see §4.8): remove id from startID's outgoing group and recycle the
// slot, which lives on this shard since this shard owns id.
func (s *Shard) RemoveRelationshipOutgoingSide(id uint64) bool {
	rec, ok := s.GetRelationshipByID(id)
	if !ok {
		return false
	}
	if startIdx := ident.IndexOf(rec.Start); s.nodes.Live(startIdx) {
		startRec := s.nodes.Get(startIdx)
		startRec.Out.RemoveByRel(rec.TypeID, id)
		s.nodes.Set(startIdx, startRec)
	}
	s.recycleRelationship(rec.TypeID, id)
	atomic.AddUint64(&s.stats.RelationshipRems, 1)
	return true
}

// RemoveRelationshipIncomingCounterpart removes the (typeID, relID)
// entry from endID's incoming group. Called on the ending node's shard
// when that shard differs from the relationship's own shard.
func (s *Shard) RemoveRelationshipIncomingCounterpart(endID uint64, typeID uint16, relID uint64) bool {
	return s.removeIncomingCounterpart(endID, typeID, relID)
}
