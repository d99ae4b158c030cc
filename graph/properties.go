package graph

import (
	"context"

	"github.com/dreamware/shardgraph/internal/ident"
	"github.com/dreamware/shardgraph/internal/propbag"
	"github.com/dreamware/shardgraph/shard"
)

// Node and relationship properties always live on the entity's own
// shard, so these operations route to exactly one shard and never fan
// out — the peered wrapper here is pure routing (spec.md §6's property
// operations, §4.8's "routing fast path" applied to every single-shard
// operation, not only node/relationship lifecycle).

// NodePropertyTryGet resolves sel and returns its value for key and
// true if key is present, or (zero, false) if sel does not name a live
// node or key is absent — the presence-checking alternative to
// NodePropertyGet's typed-tombstone dispatch (spec.md §9).
func (g *Graph) NodePropertyTryGet(ctx context.Context, sel Selector, key string) (propbag.Value, bool, error) {
	id, err := g.resolve(ctx, sel)
	if err != nil || id == ident.Invalid {
		return propbag.Value{}, false, err
	}
	type result struct {
		value propbag.Value
		ok    bool
	}
	r, err := callOnShard(ctx, g, ident.ShardOf(id), func(s *shard.Shard) (result, error) {
		v, ok := s.NodePropertyTryGet(id, key)
		return result{v, ok}, nil
	})
	return r.value, r.ok, err
}

// NodePropertyGet resolves sel and returns its value for key typed as
// want, or the tombstone for want if sel does not name a live node.
func (g *Graph) NodePropertyGet(ctx context.Context, sel Selector, key string, want propbag.Kind) (propbag.Value, error) {
	id, err := g.resolve(ctx, sel)
	if err != nil || id == ident.Invalid {
		return propbag.New().Get(key, want), err
	}
	return callOnShard(ctx, g, ident.ShardOf(id), func(s *shard.Shard) (propbag.Value, error) {
		return s.NodePropertyGet(id, key, want), nil
	})
}

// NodePropertySet resolves sel and sets key to value on its bag.
func (g *Graph) NodePropertySet(ctx context.Context, sel Selector, key string, value propbag.Value) (bool, error) {
	id, err := g.resolve(ctx, sel)
	if err != nil || id == ident.Invalid {
		return false, err
	}
	return callOnShard(ctx, g, ident.ShardOf(id), func(s *shard.Shard) (bool, error) {
		return s.NodePropertySet(id, key, value), nil
	})
}

// NodePropertyDelete resolves sel and removes key from its bag.
func (g *Graph) NodePropertyDelete(ctx context.Context, sel Selector, key string) (bool, error) {
	id, err := g.resolve(ctx, sel)
	if err != nil || id == ident.Invalid {
		return false, err
	}
	return callOnShard(ctx, g, ident.ShardOf(id), func(s *shard.Shard) (bool, error) {
		return s.NodePropertyDelete(id, key), nil
	})
}

// NodePropertiesGet resolves sel and returns its entire property bag.
func (g *Graph) NodePropertiesGet(ctx context.Context, sel Selector) ([]string, []propbag.Value, error) {
	id, err := g.resolve(ctx, sel)
	if err != nil || id == ident.Invalid {
		return nil, nil, err
	}
	type result struct {
		keys   []string
		values []propbag.Value
	}
	r, err := callOnShard(ctx, g, ident.ShardOf(id), func(s *shard.Shard) (result, error) {
		keys, values, _ := s.NodePropertiesGet(id)
		return result{keys, values}, nil
	})
	return r.keys, r.values, err
}

// NodePropertiesSet merges keys/values onto sel's bag (spec.md §6:
// properties_set is a merge — existing keys keep their value).
func (g *Graph) NodePropertiesSet(ctx context.Context, sel Selector, keys []string, values []propbag.Value) (bool, error) {
	id, err := g.resolve(ctx, sel)
	if err != nil || id == ident.Invalid {
		return false, err
	}
	return callOnShard(ctx, g, ident.ShardOf(id), func(s *shard.Shard) (bool, error) {
		return s.NodePropertiesMerge(id, keys, values), nil
	})
}

// NodePropertiesReset replaces sel's entire bag with keys/values.
func (g *Graph) NodePropertiesReset(ctx context.Context, sel Selector, keys []string, values []propbag.Value) (bool, error) {
	id, err := g.resolve(ctx, sel)
	if err != nil || id == ident.Invalid {
		return false, err
	}
	return callOnShard(ctx, g, ident.ShardOf(id), func(s *shard.Shard) (bool, error) {
		return s.NodePropertiesReset(id, keys, values), nil
	})
}

// NodePropertiesDelete clears sel's entire property bag.
func (g *Graph) NodePropertiesDelete(ctx context.Context, sel Selector) (bool, error) {
	id, err := g.resolve(ctx, sel)
	if err != nil || id == ident.Invalid {
		return false, err
	}
	return callOnShard(ctx, g, ident.ShardOf(id), func(s *shard.Shard) (bool, error) {
		return s.NodePropertiesDelete(id), nil
	})
}

// RelPropertyTryGet is NodePropertyTryGet for relationships, taking a
// bare id since relationships have no key-based selector.
func (g *Graph) RelPropertyTryGet(ctx context.Context, id uint64, key string) (propbag.Value, bool, error) {
	type result struct {
		value propbag.Value
		ok    bool
	}
	r, err := callOnShard(ctx, g, ident.ShardOf(id), func(s *shard.Shard) (result, error) {
		v, ok := s.RelPropertyTryGet(id, key)
		return result{v, ok}, nil
	})
	return r.value, r.ok, err
}

// RelPropertyGet is NodePropertyGet for relationships, taking a bare id
// since relationships have no key-based selector.
func (g *Graph) RelPropertyGet(ctx context.Context, id uint64, key string, want propbag.Kind) (propbag.Value, error) {
	return callOnShard(ctx, g, ident.ShardOf(id), func(s *shard.Shard) (propbag.Value, error) {
		return s.RelPropertyGet(id, key, want), nil
	})
}

// RelPropertySet is NodePropertySet for relationships.
func (g *Graph) RelPropertySet(ctx context.Context, id uint64, key string, value propbag.Value) (bool, error) {
	return callOnShard(ctx, g, ident.ShardOf(id), func(s *shard.Shard) (bool, error) {
		return s.RelPropertySet(id, key, value), nil
	})
}

// RelPropertyDelete is NodePropertyDelete for relationships.
func (g *Graph) RelPropertyDelete(ctx context.Context, id uint64, key string) (bool, error) {
	return callOnShard(ctx, g, ident.ShardOf(id), func(s *shard.Shard) (bool, error) {
		return s.RelPropertyDelete(id, key), nil
	})
}

// RelPropertiesGet is NodePropertiesGet for relationships.
func (g *Graph) RelPropertiesGet(ctx context.Context, id uint64) ([]string, []propbag.Value, error) {
	type result struct {
		keys   []string
		values []propbag.Value
	}
	r, err := callOnShard(ctx, g, ident.ShardOf(id), func(s *shard.Shard) (result, error) {
		keys, values, _ := s.RelPropertiesGet(id)
		return result{keys, values}, nil
	})
	return r.keys, r.values, err
}

// RelPropertiesSet is NodePropertiesSet for relationships.
func (g *Graph) RelPropertiesSet(ctx context.Context, id uint64, keys []string, values []propbag.Value) (bool, error) {
	return callOnShard(ctx, g, ident.ShardOf(id), func(s *shard.Shard) (bool, error) {
		return s.RelPropertiesMerge(id, keys, values), nil
	})
}

// RelPropertiesReset is NodePropertiesReset for relationships. This is
// the path spec.md §9's Open Question 3 is about: both relationship
// property-reset entry points (node-selector-free here, and via any
// future selector-based surface) write into the relationship record.
func (g *Graph) RelPropertiesReset(ctx context.Context, id uint64, keys []string, values []propbag.Value) (bool, error) {
	return callOnShard(ctx, g, ident.ShardOf(id), func(s *shard.Shard) (bool, error) {
		return s.RelPropertiesReset(id, keys, values), nil
	})
}

// RelPropertiesDelete is NodePropertiesDelete for relationships.
func (g *Graph) RelPropertiesDelete(ctx context.Context, id uint64) (bool, error) {
	return callOnShard(ctx, g, ident.ShardOf(id), func(s *shard.Shard) (bool, error) {
		return s.RelPropertiesDelete(id), nil
	})
}
