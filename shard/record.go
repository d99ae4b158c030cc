package shard

import "github.com/dreamware/shardgraph/internal/adjacency"
import "github.com/dreamware/shardgraph/internal/propbag"

// NodeRecord is a node's header plus property bag (spec.md §3). The zero
// NodeRecord is the "zero entity" reserved at index 0 of every shard's
// node pool — its TypeID is the interner's reserved empty type and its
// Props is nil, never dereferenced because neither index 0 nor a freed
// slot (which also holds the zero record) passes the shard's validNode
// check.
type NodeRecord struct {
	Key    string
	Props  *propbag.Bag
	Out    adjacency.List
	In     adjacency.List
	ID     uint64
	TypeID uint16
}

// RelationshipRecord is a relationship's header plus property bag
// (spec.md §3). Start and End are external node ids; Start always lives
// on the shard that owns this record (spec.md §3: "a relationship's
// external id belongs to the shard of its starting node").
type RelationshipRecord struct {
	Props  *propbag.Bag
	ID     uint64
	TypeID uint16
	Start  uint64
	End    uint64
}
