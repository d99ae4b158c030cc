// Package shard implements one worker's slice of the graph: the local
// API (spec.md §4.5, §4.6 — callable only from the shard's own goroutine)
// that every peered operation in package graph ultimately routes to.
//
// A Shard owns two record pools (nodes, relationships), two type
// interners (node types, relationship types), and a per-type (type,key)
// index for O(1) node lookup. None of it is guarded by a mutex: a Shard
// is meant to be driven by exactly one goroutine draining its Mailbox,
// the same single-writer discipline every other per-shard package in
// this module assumes.
package shard

import (
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/dreamware/shardgraph/internal/intern"
	"github.com/dreamware/shardgraph/internal/mailbox"
	"github.com/dreamware/shardgraph/internal/slotpool"
)

// EntityKind selects which of a shard's two type interners an operation
// targets — nodes and relationship types are interned separately
// (spec.md §3).
type EntityKind uint8

const (
	NodeEntity EntityKind = iota
	RelationshipEntity
)

// nodeKey is the per-type lookup key for the (type, key) → id index
// spec.md §3 requires ("lookup is O(1) via a per-type key→id map
// maintained in parallel").
type nodeKey struct {
	typeID uint16
	key    string
}

// OperationStats counts the operations a shard has served, modeled on
// torua's internal/shard.OperationStats — plain counters, read with
// atomic loads, bumped with atomic adds so a debug/metrics reader never
// needs to route through the shard's own goroutine.
type OperationStats struct {
	NodeAdds         uint64
	NodeRemoves      uint64
	RelationshipAdds uint64
	RelationshipRems uint64
	PropertyOps      uint64
}

// Shard is one partition of the graph. id is this shard's component of
// every external id it mints; numShards is the total shard count, needed
// by routing helpers that must know N.
type Shard struct {
	id        uint8
	numShards int

	nodeTypes *intern.Interner
	relTypes  *intern.Interner

	nodes *slotpool.Pool[NodeRecord]
	rels  *slotpool.Pool[RelationshipRecord]

	nodeIndex map[nodeKey]uint64

	mailbox *mailbox.Mailbox
	log     *zap.Logger
	stats   OperationStats
}

// New returns an empty Shard with its interners and pools initialized to
// the zero-entity-only state, ready for its mailbox to be drained.
func New(id uint8, numShards int, queueDepth int, log *zap.Logger) *Shard {
	if log == nil {
		log = zap.NewNop()
	}
	return &Shard{
		id:        id,
		numShards: numShards,
		nodeTypes: intern.New(),
		relTypes:  intern.New(),
		nodes:     slotpool.New[NodeRecord](),
		rels:      slotpool.New[RelationshipRecord](),
		nodeIndex: make(map[nodeKey]uint64),
		mailbox:   mailbox.New(queueDepth),
		log:       log.With(zap.Uint8("shard", id)),
	}
}

// ID returns this shard's id, the low byte embedded in every external id
// it mints.
func (s *Shard) ID() uint8 { return s.id }

// Mailbox returns the shard's inbox, used by the graph package to submit
// peered tasks (internal/mailbox.Submit) and to run the drain loop.
func (s *Shard) Mailbox() *mailbox.Mailbox { return s.mailbox }

// Logger returns this shard's logger, already scoped with its shard id.
// The graph package uses it to log fan-out dispatch and cross-shard
// partial failures from inside a task running on this shard's own drain
// goroutine.
func (s *Shard) Logger() *zap.Logger { return s.log }

// Stats returns a snapshot of the shard's operation counters.
func (s *Shard) Stats() OperationStats {
	return OperationStats{
		NodeAdds:         atomic.LoadUint64(&s.stats.NodeAdds),
		NodeRemoves:      atomic.LoadUint64(&s.stats.NodeRemoves),
		RelationshipAdds: atomic.LoadUint64(&s.stats.RelationshipAdds),
		RelationshipRems: atomic.LoadUint64(&s.stats.RelationshipRems),
		PropertyOps:      atomic.LoadUint64(&s.stats.PropertyOps),
	}
}

// Reserve pre-sizes the node and relationship pools. The Graph root
// divides a caller's (node_count, rel_count) hint by the shard count
// before calling this (spec.md §6: "reserve(node_count, rel_count)
// divides the hint by N").
func (s *Shard) Reserve(nodeCount, relCount int) {
	s.nodes.Reserve(nodeCount)
	s.rels.Reserve(relCount)
}

// Clear resets the shard to its initial state: empty interners, empty
// pools, empty index (spec.md §6: "clear() resets all shards to the
// initial state"). It does not touch the mailbox or logger.
func (s *Shard) Clear() {
	s.nodeTypes = intern.New()
	s.relTypes = intern.New()
	s.nodes = slotpool.New[NodeRecord]()
	s.rels = slotpool.New[RelationshipRecord]()
	s.nodeIndex = make(map[nodeKey]uint64)
}

func (s *Shard) interner(kind EntityKind) *intern.Interner {
	if kind == NodeEntity {
		return s.nodeTypes
	}
	return s.relTypes
}
