package graph

import (
	"context"

	"go.uber.org/zap"

	"github.com/dreamware/shardgraph/internal/ident"
	"github.com/dreamware/shardgraph/internal/mailbox"
	"github.com/dreamware/shardgraph/internal/propbag"
	"github.com/dreamware/shardgraph/shard"
)

// AddEmptyNode adds a node of typeName under key with an empty property
// bag, creating typeName if this is its first use (spec.md §4.1, §4.7).
// It returns 0 if (typeName, key) already has a live node.
func (g *Graph) AddEmptyNode(ctx context.Context, typeName, key string) (uint64, error) {
	return g.AddNode(ctx, typeName, key, nil)
}

// AddNode adds a node of typeName under key with the given properties.
func (g *Graph) AddNode(ctx context.Context, typeName, key string, props *propbag.Bag) (uint64, error) {
	typeID, err := g.TypeInsert(ctx, shard.NodeEntity, typeName)
	if err != nil {
		return ident.Invalid, err
	}
	shardID := uint8(ident.RouteKey(typeName, key, len(g.shards)))
	return callOnShard(ctx, g, shardID, func(s *shard.Shard) (uint64, error) {
		id, ok := s.AddNode(typeID, key, props)
		if !ok {
			return ident.Invalid, nil
		}
		return id, nil
	})
}

// GetNodeID resolves sel to an external id, or 0 if it does not name a
// live node.
func (g *Graph) GetNodeID(ctx context.Context, sel Selector) (uint64, error) {
	return g.resolve(ctx, sel)
}

// GetNode resolves sel and returns the node's record. The zero record and
// false are returned if sel does not name a live node.
func (g *Graph) GetNode(ctx context.Context, sel Selector) (shard.NodeRecord, bool, error) {
	id, err := g.resolve(ctx, sel)
	if err != nil || id == ident.Invalid {
		return shard.NodeRecord{}, false, err
	}
	type result struct {
		rec shard.NodeRecord
		ok  bool
	}
	r, err := callOnShard(ctx, g, ident.ShardOf(id), func(s *shard.Shard) (result, error) {
		rec, ok := s.GetNodeByID(id)
		return result{rec, ok}, nil
	})
	return r.rec, r.ok, err
}

// TypeOfNode returns sel's node type, or (0, false) if it does not name
// a live node.
func (g *Graph) TypeOfNode(ctx context.Context, sel Selector) (uint16, bool, error) {
	rec, ok, err := g.GetNode(ctx, sel)
	return rec.TypeID, ok, err
}

// KeyOfNode returns sel's key, or ("", false) if it does not name a live
// node.
func (g *Graph) KeyOfNode(ctx context.Context, sel Selector) (string, bool, error) {
	rec, ok, err := g.GetNode(ctx, sel)
	return rec.Key, ok, err
}

// RemoveNode resolves sel and removes the node, implementing the
// cross-shard node remove protocol of spec.md §4.8(B). The entire
// protocol — computing remote work maps, fanning out to peer shards,
// and the final local remove — runs as a single task submitted to the
// owning shard's mailbox, so no other task on that shard can observe a
// partially completed removal (spec.md §4.5: "atomically ... within one
// uninterruptible scheduling slice").
//
// If any fan-out leg fails, the already-performed fan-outs are not
// undone and RemoveNode returns false (spec.md §4.8(B), §7's "Cross-shard
// partial" error kind).
func (g *Graph) RemoveNode(ctx context.Context, sel Selector) (bool, error) {
	id, err := g.resolve(ctx, sel)
	if err != nil || id == ident.Invalid {
		return false, err
	}
	return callOnShard(ctx, g, ident.ShardOf(id), func(s *shard.Shard) (bool, error) {
		return removeNodeOnOwningShard(ctx, g, s, id)
	})
}

// removeNodeOnOwningShard is the body of the task described in
// RemoveNode's doc comment; factored out so it can run from the task
// closure already executing on the owning shard's drain goroutine.
func removeNodeOnOwningShard(ctx context.Context, g *Graph, s *shard.Shard, id uint64) (bool, error) {
	out, in, ok := s.NodeAdjacency(id)
	if !ok {
		return false, nil
	}

	type relRef struct {
		typeID uint16
		relID  uint64
		peer   uint64
	}
	incomingToRemove := make(map[uint8][]relRef) // remote peers on out edges: tell them to drop their incoming entry
	outgoingToRemove := make(map[uint8][]relRef) // remote peers on in edges: tell them to drop their outgoing entry + recycle

	for _, te := range out {
		peerShard := ident.ShardOf(te.Entry.Peer)
		if peerShard == s.ID() {
			continue // handled entirely by the local remove below
		}
		incomingToRemove[peerShard] = append(incomingToRemove[peerShard], relRef{te.TypeID, te.Entry.Rel, te.Entry.Peer})
	}
	for _, te := range in {
		peerShard := ident.ShardOf(te.Entry.Peer)
		if peerShard == s.ID() {
			continue
		}
		outgoingToRemove[peerShard] = append(outgoingToRemove[peerShard], relRef{te.TypeID, te.Entry.Rel, te.Entry.Peer})
	}

	var futures []*mailbox.Future[bool]
	for peerShard, refs := range incomingToRemove {
		peer := g.shards[peerShard]
		for _, r := range refs {
			r := r
			futures = append(futures, mailbox.Submit(peer.Mailbox(), func() (bool, error) {
				return peer.LocalRemoveIncomingCounterpart(r.peer, r.typeID, r.relID), nil
			}))
		}
	}
	for peerShard, refs := range outgoingToRemove {
		peer := g.shards[peerShard]
		for _, r := range refs {
			r := r
			futures = append(futures, mailbox.Submit(peer.Mailbox(), func() (bool, error) {
				return peer.LocalRemoveOutgoingCounterpartAndRecycle(r.peer, r.typeID, r.relID), nil
			}))
		}
	}

	if len(futures) > 0 {
		s.Logger().Debug("remove node: dispatching peer-shard fan-out",
			zap.Uint64("id", id), zap.Int("peers", len(futures)))
	}

	results, err := mailbox.Join(ctx, futures)
	if err != nil {
		s.Logger().Warn("remove node: cross-shard partial failure, fan-out join failed",
			zap.Uint64("id", id), zap.Error(err))
		return false, nil
	}
	for _, ok := range results {
		if !ok {
			s.Logger().Warn("remove node: cross-shard partial failure, a peer leg reported failure",
				zap.Uint64("id", id))
			return false, nil
		}
	}

	return s.RemoveNodeByID(id), nil
}
