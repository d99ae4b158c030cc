package graph

import (
	"context"
	"fmt"

	"github.com/dreamware/shardgraph/internal/ident"
	"github.com/dreamware/shardgraph/shard"
)

// Selector names a node either by its external id or by a (type, key)
// pair (spec.md §6: "each accepts either a (type, key) pair or an
// external id as selector; implementations should parameterize rather
// than enumerate"). Relationships have no key, so relationship-facing
// operations take a bare external id instead of a Selector.
type Selector struct {
	byID     bool
	id       uint64
	typeName string
	key      string
}

// ByID builds a Selector naming a node by its external id.
func ByID(id uint64) Selector { return Selector{byID: true, id: id} }

// ByKey builds a Selector naming a node by its (type, key) pair.
func ByKey(typeName, key string) Selector { return Selector{typeName: typeName, key: key} }

// resolve turns sel into an external node id, performing the routing
// hash of spec.md §4.7 for a (type, key) selector, or decoding the shard
// directly out of an id selector (no routing message is needed since the
// shard component is embedded in the id itself).
func (g *Graph) resolve(ctx context.Context, sel Selector) (uint64, error) {
	if sel.byID {
		return sel.id, nil
	}
	shardID := uint8(ident.RouteKey(sel.typeName, sel.key, len(g.shards)))
	id, err := callOnShard(ctx, g, shardID, func(s *shard.Shard) (uint64, error) {
		typeID, ok := s.TypeID(shard.NodeEntity, sel.typeName)
		if !ok {
			return ident.Invalid, nil
		}
		id, ok := s.GetNodeIDByKey(typeID, sel.key)
		if !ok {
			return ident.Invalid, nil
		}
		return id, nil
	})
	if err != nil {
		return ident.Invalid, fmt.Errorf("graph: resolve selector: %w", err)
	}
	return id, nil
}
