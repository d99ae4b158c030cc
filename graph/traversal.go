package graph

import (
	"context"

	"go.uber.org/zap"

	"github.com/dreamware/shardgraph/internal/ident"
	"github.com/dreamware/shardgraph/internal/mailbox"
	"github.com/dreamware/shardgraph/shard"
)

// Degree resolves sel and returns its degree in direction restricted to
// typeFilter. Degree never leaves sel's owning shard: every edge
// (outgoing or incoming) is recorded in that node's own adjacency lists
// regardless of where the peer lives (spec.md §3, §4.4).
func (g *Graph) Degree(ctx context.Context, sel Selector, direction shard.Direction, typeFilter map[uint16]bool) (int, error) {
	id, err := g.resolve(ctx, sel)
	if err != nil || id == ident.Invalid {
		return 0, err
	}
	r, err := callOnShard(ctx, g, ident.ShardOf(id), func(s *shard.Shard) (int, error) {
		d, _ := s.Degree(id, direction, typeFilter)
		return d, nil
	})
	return r, err
}

// RelationshipIDs resolves sel and returns the relationship ids
// reachable in direction restricted to typeFilter.
func (g *Graph) RelationshipIDs(ctx context.Context, sel Selector, direction shard.Direction, typeFilter map[uint16]bool) ([]uint64, error) {
	id, err := g.resolve(ctx, sel)
	if err != nil || id == ident.Invalid {
		return nil, err
	}
	return callOnShard(ctx, g, ident.ShardOf(id), func(s *shard.Shard) ([]uint64, error) {
		ids, _ := s.RelationshipIDs(id, direction, typeFilter)
		return ids, nil
	})
}

// Neighbors resolves sel and returns the peer node ids reachable in
// direction restricted to typeFilter.
func (g *Graph) Neighbors(ctx context.Context, sel Selector, direction shard.Direction, typeFilter map[uint16]bool) ([]uint64, error) {
	id, err := g.resolve(ctx, sel)
	if err != nil || id == ident.Invalid {
		return nil, err
	}
	return callOnShard(ctx, g, ident.ShardOf(id), func(s *shard.Shard) ([]uint64, error) {
		ids, _ := s.Neighbors(id, direction, typeFilter)
		return ids, nil
	})
}

// Relationships resolves sel and returns the full relationship records
// reachable in direction restricted to typeFilter. Records held by sel's
// own shard come first, in RelationshipIDs order; records held by a
// different shard (an incoming edge whose peer — the starting node — is
// remote) follow, fetched with one task per remote relationship id. When
// both kinds are present the result is therefore not in RelationshipIDs
// order.
func (g *Graph) Relationships(ctx context.Context, sel Selector, direction shard.Direction, typeFilter map[uint16]bool) ([]shard.RelationshipRecord, error) {
	id, err := g.resolve(ctx, sel)
	if err != nil || id == ident.Invalid {
		return nil, err
	}

	type localResult struct {
		local     []shard.RelationshipRecord
		remoteIDs []uint64
	}
	lr, err := callOnShard(ctx, g, ident.ShardOf(id), func(s *shard.Shard) (localResult, error) {
		local, remote, _ := s.LocalRelationshipRecords(id, direction, typeFilter)
		return localResult{local, remote}, nil
	})
	if err != nil {
		return nil, err
	}
	if len(lr.remoteIDs) == 0 {
		return lr.local, nil
	}

	g.log.Debug("relationships: dispatching remote record fetch",
		zap.Int("remote_ids", len(lr.remoteIDs)))

	futures := make([]*mailbox.Future[shard.RelationshipRecord], len(lr.remoteIDs))
	for i, relID := range lr.remoteIDs {
		relID := relID
		peer := g.shards[ident.ShardOf(relID)]
		futures[i] = mailbox.Submit(peer.Mailbox(), func() (shard.RelationshipRecord, error) {
			rec, _ := peer.GetRelationshipByID(relID)
			return rec, nil
		})
	}
	remote, err := mailbox.Join(ctx, futures)
	if err != nil {
		return nil, err
	}
	return append(lr.local, remote...), nil
}
