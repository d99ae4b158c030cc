package graph

import (
	"context"

	"github.com/dreamware/shardgraph/shard"
)

// leaderShard is shard 0, the single-writer authority for type id
// assignment (spec.md §4.7, §5: "shard 0 as leader").
const leaderShard uint8 = 0

// TypeInsert assigns name a type id if it has none yet, or returns its
// existing id, implementing the global type-id agreement protocol of
// spec.md §4.7: the request is forwarded to shard 0, which serializes
// the assignment (shard 0's own task loop is single-threaded, so this
// needs no additional lock), then the result is broadcast to every
// shard — including shard 0 again, harmlessly, since Insert is
// idempotent. The original operation that needed this type id should
// not proceed until the returned error is nil.
func (g *Graph) TypeInsert(ctx context.Context, kind shard.EntityKind, name string) (uint16, error) {
	id, err := callOnShard(ctx, g, leaderShard, func(s *shard.Shard) (uint16, error) {
		return s.TypeGetOrInsertLeader(kind, name), nil
	})
	if err != nil {
		return 0, err
	}
	if _, err := parallelOnEveryShard(ctx, g, func(s *shard.Shard) (struct{}, error) {
		s.TypeInsertBroadcast(kind, name, id)
		return struct{}{}, nil
	}); err != nil {
		return 0, err
	}
	return id, nil
}

// TypesCount returns the number of distinct type names assigned for
// kind. Every shard's cache agrees by construction once a TypeInsert
// call has returned (the broadcast step above completes before it
// does), so this reads shard 0 without fanning out.
func (g *Graph) TypesCount(ctx context.Context, kind shard.EntityKind) (int, error) {
	return callOnShard(ctx, g, leaderShard, func(s *shard.Shard) (int, error) {
		return s.TypesCount(kind), nil
	})
}

// TypesList returns every type name ever assigned for kind.
func (g *Graph) TypesList(ctx context.Context, kind shard.EntityKind) ([]string, error) {
	return callOnShard(ctx, g, leaderShard, func(s *shard.Shard) ([]string, error) {
		return s.TypesList(kind), nil
	})
}

// TypeName returns the name bound to id, or ("", false) if unassigned.
func (g *Graph) TypeName(ctx context.Context, kind shard.EntityKind, id uint16) (string, bool, error) {
	type result struct {
		name string
		ok   bool
	}
	r, err := callOnShard(ctx, g, leaderShard, func(s *shard.Shard) (result, error) {
		name, ok := s.TypeName(kind, id)
		return result{name, ok}, nil
	})
	return r.name, r.ok, err
}

// TypeID returns the id bound to name, or (0, false) if unassigned.
func (g *Graph) TypeID(ctx context.Context, kind shard.EntityKind, name string) (uint16, bool, error) {
	type result struct {
		id uint16
		ok bool
	}
	r, err := callOnShard(ctx, g, leaderShard, func(s *shard.Shard) (result, error) {
		id, ok := s.TypeID(kind, name)
		return result{id, ok}, nil
	})
	return r.id, r.ok, err
}

// TypeCount returns the total number of live entities registered under
// id across every shard — unlike the name/id mapping, membership is
// partitioned per shard, so this fans out and sums.
func (g *Graph) TypeCount(ctx context.Context, kind shard.EntityKind, id uint16) (uint64, error) {
	counts, err := parallelOnEveryShard(ctx, g, func(s *shard.Shard) (uint64, error) {
		return s.TypeCount(kind, id), nil
	})
	if err != nil {
		return 0, err
	}
	var total uint64
	for _, c := range counts {
		total += c
	}
	return total, nil
}

// TypeCountByName resolves name to an id on shard 0, then sums its count
// across every shard.
func (g *Graph) TypeCountByName(ctx context.Context, kind shard.EntityKind, name string) (uint64, bool, error) {
	id, ok, err := g.TypeID(ctx, kind, name)
	if err != nil || !ok {
		return 0, ok, err
	}
	count, err := g.TypeCount(ctx, kind, id)
	return count, true, err
}
