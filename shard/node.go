package shard

import (
	"sync/atomic"

	"github.com/dreamware/shardgraph/internal/adjacency"
	"github.com/dreamware/shardgraph/internal/ident"
	"github.com/dreamware/shardgraph/internal/propbag"
)

// AddEmptyNode adds a node of typeID under key with an empty property
// bag. It returns (0, false) if (typeID, key) already has a live node
// (spec.md §4.5: "verify the (type_name, key) index has no live entry").
func (s *Shard) AddEmptyNode(typeID uint16, key string) (uint64, bool) {
	return s.addNode(typeID, key, propbag.New())
}

// AddNode adds a node of typeID under key with the given properties. A
// nil props is treated as an empty bag.
func (s *Shard) AddNode(typeID uint16, key string, props *propbag.Bag) (uint64, bool) {
	if props == nil {
		props = propbag.New()
	}
	return s.addNode(typeID, key, props)
}

func (s *Shard) addNode(typeID uint16, key string, props *propbag.Bag) (uint64, bool) {
	nk := nodeKey{typeID: typeID, key: key}
	if existing, ok := s.nodeIndex[nk]; ok {
		if idx := ident.IndexOf(existing); s.nodes.Live(idx) {
			return 0, false
		}
	}

	idx := s.nodes.Alloc(NodeRecord{TypeID: typeID, Key: key, Props: props})
	id := ident.Encode(s.id, idx)
	s.nodes.Set(idx, NodeRecord{ID: id, TypeID: typeID, Key: key, Props: props})
	s.nodeIndex[nk] = id
	s.nodeTypes.AddID(typeID, id)
	atomic.AddUint64(&s.stats.NodeAdds, 1)
	return id, true
}

// GetNodeIDByKey resolves (typeID, key) to an external id via the
// per-type index, in O(1) (spec.md §4.5's Get contract).
func (s *Shard) GetNodeIDByKey(typeID uint16, key string) (uint64, bool) {
	id, ok := s.nodeIndex[nodeKey{typeID: typeID, key: key}]
	if !ok || !s.validNode(id) {
		return 0, false
	}
	return id, true
}

// GetNodeByID returns the node record for id. An invalid id returns the
// zero record and false (spec.md §4.5: "invalid id returns the zero
// entity").
func (s *Shard) GetNodeByID(id uint64) (NodeRecord, bool) {
	if !s.validNode(id) {
		return NodeRecord{}, false
	}
	return s.nodes.Get(ident.IndexOf(id)), true
}

// GetNodeByKey is GetNodeIDByKey followed by GetNodeByID.
func (s *Shard) GetNodeByKey(typeID uint16, key string) (NodeRecord, bool) {
	id, ok := s.GetNodeIDByKey(typeID, key)
	if !ok {
		return NodeRecord{}, false
	}
	return s.GetNodeByID(id)
}

// TypeOfNode returns id's node type, or (0, false) if id is invalid.
func (s *Shard) TypeOfNode(id uint64) (uint16, bool) {
	rec, ok := s.GetNodeByID(id)
	if !ok {
		return 0, false
	}
	return rec.TypeID, true
}

// KeyOfNode returns id's key, or ("", false) if id is invalid.
func (s *Shard) KeyOfNode(id uint64) (string, bool) {
	rec, ok := s.GetNodeByID(id)
	if !ok {
		return "", false
	}
	return rec.Key, true
}

// validNode is the valid-id predicate of spec.md §4.5, specialized to
// the node pool, plus a liveness check: an id whose slot has been freed
// is rejected too.
func (s *Shard) validNode(id uint64) bool {
	return ident.Valid(id, s.id, s.nodes.Len()) && s.nodes.Live(ident.IndexOf(id))
}

// validRel is the same predicate specialized to the relationship pool,
// including the liveness check. spec.md §9's Open Question 1 is resolved
// symmetrically with nodes (see DESIGN.md): relationship ids are
// validated with the same shard-identity clause.
func (s *Shard) validRel(id uint64) bool {
	return ident.Valid(id, s.id, s.rels.Len()) && s.rels.Live(ident.IndexOf(id))
}

// NodeAdjacency returns snapshots of id's outgoing and incoming
// adjacency, used by the graph package to compute the cross-shard
// remove protocol's per-peer-shard work maps (spec.md §4.8(B) step 1)
// without exposing the NodeRecord's mutable adjacency.List directly.
func (s *Shard) NodeAdjacency(id uint64) (out, in []adjacency.TypedEntry, ok bool) {
	rec, ok := s.GetNodeByID(id)
	if !ok {
		return nil, nil, false
	}
	return rec.Out.Entries(nil), rec.In.Entries(nil), true
}

// RemoveNodeByID performs the full local removal sequence of spec.md
// §4.5: for every outgoing edge to a peer on this shard, remove the
// peer's matching incoming entry and recycle the relationship slot
// (recycling happens for every outgoing edge regardless of the peer's
// shard, because the relationship record always belongs to this shard —
// n is its starting node). For every incoming edge from a peer on this
// shard, remove the peer's matching outgoing entry and recycle that
// relationship's slot too (symmetric case: the peer is the starting
// node, so the relationship record lives on the peer's own shard, which
// is this shard in the local case). Edges to or from a remote peer are
// assumed already handled by the peered wrapper's fan-out (graph
// package, §4.8(B)) before this is called; RemoveNodeByID never talks to
// another shard.
func (s *Shard) RemoveNodeByID(id uint64) bool {
	if !s.validNode(id) {
		return false
	}
	idx := ident.IndexOf(id)
	rec := s.nodes.Get(idx)

	for _, te := range rec.Out.Entries(nil) {
		if ident.ShardOf(te.Entry.Peer) == s.id {
			s.removeIncomingCounterpart(te.Entry.Peer, te.TypeID, te.Entry.Rel)
		}
		s.recycleRelationship(te.TypeID, te.Entry.Rel)
	}
	for _, te := range rec.In.Entries(nil) {
		if ident.ShardOf(te.Entry.Peer) == s.id {
			s.removeOutgoingCounterpartAndRecycle(te.Entry.Peer, te.TypeID, te.Entry.Rel)
		}
	}

	delete(s.nodeIndex, nodeKey{typeID: rec.TypeID, key: rec.Key})
	s.nodeTypes.RemoveID(rec.TypeID, id)
	s.nodes.Free(idx)
	atomic.AddUint64(&s.stats.NodeRemoves, 1)
	return true
}

// RemoveNodeByKey resolves (typeID, key) and removes it.
func (s *Shard) RemoveNodeByKey(typeID uint16, key string) bool {
	id, ok := s.GetNodeIDByKey(typeID, key)
	if !ok {
		return false
	}
	return s.RemoveNodeByID(id)
}

// removeIncomingCounterpart removes the (typeID, relID) entry from
// holder's incoming group, used when holder is local to this shard.
func (s *Shard) removeIncomingCounterpart(holder uint64, typeID uint16, relID uint64) bool {
	idx := ident.IndexOf(holder)
	if !s.nodes.Live(idx) {
		return false
	}
	rec := s.nodes.Get(idx)
	rec.In.RemoveByRel(typeID, relID)
	s.nodes.Set(idx, rec)
	return true
}

// removeOutgoingCounterpartAndRecycle removes the (typeID, relID) entry
// from holder's outgoing group and recycles the relationship slot, used
// when holder — the relationship's starting node — is local to this
// shard. LocalRemoveOutgoingCounterpartAndRecycle is the exported form
// the graph package calls when holder lives on a different shard from
// the node being removed.
func (s *Shard) removeOutgoingCounterpartAndRecycle(holder uint64, typeID uint16, relID uint64) bool {
	idx := ident.IndexOf(holder)
	if !s.nodes.Live(idx) {
		return false
	}
	rec := s.nodes.Get(idx)
	rec.Out.RemoveByRel(typeID, relID)
	s.nodes.Set(idx, rec)
	s.recycleRelationship(typeID, relID)
	return true
}

// recycleRelationship frees relID's slot and removes it from the
// relationship-type interner, if it is still live. It is a no-op for an
// already-recycled or invalid id, so callers can invoke it unconditionally
// while walking adjacency without checking liveness first.
func (s *Shard) recycleRelationship(typeID uint16, relID uint64) {
	idx := ident.IndexOf(relID)
	if !s.rels.Live(idx) {
		return
	}
	s.relTypes.RemoveID(typeID, relID)
	s.rels.Free(idx)
}

// LocalRemoveIncomingCounterpart removes the (typeID, relID) entry from
// holder's incoming group. This is the exported counterpart of
// removeIncomingCounterpart, called by the graph package's cross-shard
// remove protocol (§4.8(B)) on the shard that owns holder, which may be
// a different shard from the one removing the node that owned the
// outgoing side of the edge.
func (s *Shard) LocalRemoveIncomingCounterpart(holder uint64, typeID uint16, relID uint64) bool {
	return s.removeIncomingCounterpart(holder, typeID, relID)
}

// LocalRemoveOutgoingCounterpartAndRecycle removes the (typeID, relID)
// entry from holder's outgoing group and recycles the relationship slot
// (which lives on this shard, since holder is the relationship's
// starting node). Called by the graph package's cross-shard remove
// protocol on the shard that owns holder.
func (s *Shard) LocalRemoveOutgoingCounterpartAndRecycle(holder uint64, typeID uint16, relID uint64) bool {
	return s.removeOutgoingCounterpartAndRecycle(holder, typeID, relID)
}
