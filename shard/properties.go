package shard

import (
	"sync/atomic"

	"github.com/dreamware/shardgraph/internal/ident"
	"github.com/dreamware/shardgraph/internal/propbag"
)

// Node and relationship properties are always local to the shard that
// owns the entity (both records live in this shard's pools), so none of
// these operations route or fan out — the graph package's peered wrapper
// only has to find the owning shard, not coordinate across shards.

// NodePropertyTryGet returns id's value for key and true if present, or
// (zero, false) if id is invalid or key is absent (internal/propbag's
// presence-checking alternative to the typed getter, spec.md §9).
func (s *Shard) NodePropertyTryGet(id uint64, key string) (propbag.Value, bool) {
	rec, ok := s.GetNodeByID(id)
	if !ok {
		return propbag.Value{}, false
	}
	return rec.Props.TryGet(key)
}

// NodePropertyGet returns id's value for key typed as want, or the
// tombstone for want if id is invalid, key is absent, or key's value is
// a different kind (spec.md §4.2's typed-getter dispatch).
func (s *Shard) NodePropertyGet(id uint64, key string, want propbag.Kind) propbag.Value {
	rec, ok := s.GetNodeByID(id)
	if !ok {
		return propbag.New().Get(key, want)
	}
	return rec.Props.Get(key, want)
}

// NodePropertySet sets key to value on id's property bag.
func (s *Shard) NodePropertySet(id uint64, key string, value propbag.Value) bool {
	idx, ok := s.liveNodeIdx(id)
	if !ok {
		return false
	}
	rec := s.nodes.Get(idx)
	rec.Props.Set(key, value)
	s.nodes.Set(idx, rec)
	atomic.AddUint64(&s.stats.PropertyOps, 1)
	return true
}

// NodePropertyDelete removes key from id's property bag, reporting
// whether it was present.
func (s *Shard) NodePropertyDelete(id uint64, key string) bool {
	idx, ok := s.liveNodeIdx(id)
	if !ok {
		return false
	}
	rec := s.nodes.Get(idx)
	removed := rec.Props.Delete(key)
	s.nodes.Set(idx, rec)
	atomic.AddUint64(&s.stats.PropertyOps, 1)
	return removed
}

// NodePropertiesGet returns id's entire property bag as parallel
// key/value slices, in iteration order.
func (s *Shard) NodePropertiesGet(id uint64) ([]string, []propbag.Value, bool) {
	rec, ok := s.GetNodeByID(id)
	if !ok {
		return nil, nil, false
	}
	keys, values := rec.Props.All()
	return keys, values, true
}

// NodePropertiesMerge overlays keys/values onto id's bag: existing keys
// keep their value, new keys are added (spec.md §4.2's merge /
// properties_set semantics).
func (s *Shard) NodePropertiesMerge(id uint64, keys []string, values []propbag.Value) bool {
	idx, ok := s.liveNodeIdx(id)
	if !ok {
		return false
	}
	rec := s.nodes.Get(idx)
	rec.Props.Merge(keys, values)
	s.nodes.Set(idx, rec)
	atomic.AddUint64(&s.stats.PropertyOps, 1)
	return true
}

// NodePropertiesReset replaces id's entire bag with keys/values
// (spec.md §4.2's properties_reset semantics).
func (s *Shard) NodePropertiesReset(id uint64, keys []string, values []propbag.Value) bool {
	idx, ok := s.liveNodeIdx(id)
	if !ok {
		return false
	}
	rec := s.nodes.Get(idx)
	rec.Props.SetAll(keys, values)
	s.nodes.Set(idx, rec)
	atomic.AddUint64(&s.stats.PropertyOps, 1)
	return true
}

// NodePropertiesDelete clears id's entire property bag.
func (s *Shard) NodePropertiesDelete(id uint64) bool {
	idx, ok := s.liveNodeIdx(id)
	if !ok {
		return false
	}
	rec := s.nodes.Get(idx)
	rec.Props.Clear()
	s.nodes.Set(idx, rec)
	atomic.AddUint64(&s.stats.PropertyOps, 1)
	return true
}

func (s *Shard) liveNodeIdx(id uint64) (uint64, bool) {
	if !s.validNode(id) {
		return 0, false
	}
	return ident.IndexOf(id), true
}

// RelPropertyTryGet is NodePropertyTryGet for relationships.
func (s *Shard) RelPropertyTryGet(id uint64, key string) (propbag.Value, bool) {
	rec, ok := s.GetRelationshipByID(id)
	if !ok {
		return propbag.Value{}, false
	}
	return rec.Props.TryGet(key)
}

// RelPropertyGet is NodePropertyGet for relationships.
func (s *Shard) RelPropertyGet(id uint64, key string, want propbag.Kind) propbag.Value {
	rec, ok := s.GetRelationshipByID(id)
	if !ok {
		return propbag.New().Get(key, want)
	}
	return rec.Props.Get(key, want)
}

// RelPropertySet is NodePropertySet for relationships.
func (s *Shard) RelPropertySet(id uint64, key string, value propbag.Value) bool {
	idx, ok := s.liveRelIdx(id)
	if !ok {
		return false
	}
	rec := s.rels.Get(idx)
	rec.Props.Set(key, value)
	s.rels.Set(idx, rec)
	atomic.AddUint64(&s.stats.PropertyOps, 1)
	return true
}

// RelPropertyDelete is NodePropertyDelete for relationships.
func (s *Shard) RelPropertyDelete(id uint64, key string) bool {
	idx, ok := s.liveRelIdx(id)
	if !ok {
		return false
	}
	rec := s.rels.Get(idx)
	removed := rec.Props.Delete(key)
	s.rels.Set(idx, rec)
	atomic.AddUint64(&s.stats.PropertyOps, 1)
	return removed
}

// RelPropertiesGet is NodePropertiesGet for relationships.
func (s *Shard) RelPropertiesGet(id uint64) ([]string, []propbag.Value, bool) {
	rec, ok := s.GetRelationshipByID(id)
	if !ok {
		return nil, nil, false
	}
	keys, values := rec.Props.All()
	return keys, values, true
}

// RelPropertiesMerge is NodePropertiesMerge for relationships.
func (s *Shard) RelPropertiesMerge(id uint64, keys []string, values []propbag.Value) bool {
	idx, ok := s.liveRelIdx(id)
	if !ok {
		return false
	}
	rec := s.rels.Get(idx)
	rec.Props.Merge(keys, values)
	s.rels.Set(idx, rec)
	atomic.AddUint64(&s.stats.PropertyOps, 1)
	return true
}

// RelPropertiesReset is NodePropertiesReset for relationships. This
// writes into the relationship record, not the node record — spec.md
// §9's Open Question 3 resolved (see DESIGN.md): the source's apparent
// write-to-node-record on this path is treated as the typo it almost
// certainly is.
func (s *Shard) RelPropertiesReset(id uint64, keys []string, values []propbag.Value) bool {
	idx, ok := s.liveRelIdx(id)
	if !ok {
		return false
	}
	rec := s.rels.Get(idx)
	rec.Props.SetAll(keys, values)
	s.rels.Set(idx, rec)
	atomic.AddUint64(&s.stats.PropertyOps, 1)
	return true
}

// RelPropertiesDelete is NodePropertiesDelete for relationships.
func (s *Shard) RelPropertiesDelete(id uint64) bool {
	idx, ok := s.liveRelIdx(id)
	if !ok {
		return false
	}
	rec := s.rels.Get(idx)
	rec.Props.Clear()
	s.rels.Set(idx, rec)
	atomic.AddUint64(&s.stats.PropertyOps, 1)
	return true
}

func (s *Shard) liveRelIdx(id uint64) (uint64, bool) {
	if !s.validRel(id) {
		return 0, false
	}
	return ident.IndexOf(id), true
}
