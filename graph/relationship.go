package graph

import (
	"context"

	"go.uber.org/zap"

	"github.com/dreamware/shardgraph/internal/ident"
	"github.com/dreamware/shardgraph/internal/mailbox"
	"github.com/dreamware/shardgraph/internal/propbag"
	"github.com/dreamware/shardgraph/shard"
)

// AddEmptyRelationship adds a relationship of relTypeName from fromSel
// to toSel with an empty property bag.
func (g *Graph) AddEmptyRelationship(ctx context.Context, relTypeName string, fromSel, toSel Selector) (uint64, error) {
	return g.AddRelationship(ctx, relTypeName, fromSel, toSel, nil)
}

// AddRelationship implements the cross-shard relationship insert
// protocol of spec.md §4.8(A). When both endpoints land on the same
// shard it takes the routing fast path straight to
// shard.Shard.AddRelationshipSameShard instead of running the two-phase
// protocol; the two-phase path only runs when the endpoints genuinely
// differ in shard.
func (g *Graph) AddRelationship(ctx context.Context, relTypeName string, fromSel, toSel Selector, props *propbag.Bag) (uint64, error) {
	typeID, err := g.TypeInsert(ctx, shard.RelationshipEntity, relTypeName)
	if err != nil {
		return ident.Invalid, err
	}

	n1, err := g.resolve(ctx, fromSel)
	if err != nil {
		return ident.Invalid, err
	}
	n2, err := g.resolve(ctx, toSel)
	if err != nil {
		return ident.Invalid, err
	}
	if n1 == ident.Invalid || n2 == ident.Invalid {
		return ident.Invalid, nil
	}

	s1, s2 := ident.ShardOf(n1), ident.ShardOf(n2)
	if int(s1) >= len(g.shards) || int(s2) >= len(g.shards) {
		return ident.Invalid, nil
	}
	if s1 == s2 {
		return callOnShard(ctx, g, s1, func(s *shard.Shard) (uint64, error) {
			id, ok := s.AddRelationshipSameShard(typeID, n1, n2, props)
			if !ok {
				return ident.Invalid, nil
			}
			return id, nil
		})
	}

	g.log.Debug("add relationship: dispatching cross-shard endpoint validation",
		zap.Uint8("start_shard", s1), zap.Uint8("end_shard", s2))

	valid1 := mailbox.Submit(g.shards[s1].Mailbox(), func() (bool, error) {
		_, ok := g.shards[s1].GetNodeByID(n1)
		return ok, nil
	})
	valid2 := mailbox.Submit(g.shards[s2].Mailbox(), func() (bool, error) {
		_, ok := g.shards[s2].GetNodeByID(n2)
		return ok, nil
	})
	results, err := mailbox.Join(ctx, []*mailbox.Future[bool]{valid1, valid2})
	if err != nil {
		return ident.Invalid, err
	}
	if !results[0] || !results[1] {
		return ident.Invalid, nil
	}

	relID, err := callOnShard(ctx, g, s1, func(s *shard.Shard) (uint64, error) {
		id, ok := s.AddRelationshipOutgoingSide(typeID, n1, n2, props)
		if !ok {
			return ident.Invalid, nil
		}
		return id, nil
	})
	if err != nil || relID == ident.Invalid {
		return ident.Invalid, err
	}

	// Step 4's failure is intentionally not surfaced: spec.md §4.8(A)'s
	// failure semantics keep the outgoing half in place and still return
	// the allocated id even if the peer side never completes.
	_, _ = callOnShard(ctx, g, s2, func(s *shard.Shard) (bool, error) {
		return s.AddRelationshipIncomingSide(typeID, n1, n2, relID), nil
	})
	return relID, nil
}

// GetRelationship returns id's record, or the zero record and false if
// id is invalid.
func (g *Graph) GetRelationship(ctx context.Context, id uint64) (shard.RelationshipRecord, bool, error) {
	type result struct {
		rec shard.RelationshipRecord
		ok  bool
	}
	r, err := callOnShard(ctx, g, ident.ShardOf(id), func(s *shard.Shard) (result, error) {
		rec, ok := s.GetRelationshipByID(id)
		return result{rec, ok}, nil
	})
	return r.rec, r.ok, err
}

// TypeOfRelationship returns id's relationship type, or (0, false).
func (g *Graph) TypeOfRelationship(ctx context.Context, id uint64) (uint16, bool, error) {
	rec, ok, err := g.GetRelationship(ctx, id)
	return rec.TypeID, ok, err
}

// StartNode returns id's starting node id, or (0, false).
func (g *Graph) StartNode(ctx context.Context, id uint64) (uint64, bool, error) {
	rec, ok, err := g.GetRelationship(ctx, id)
	return rec.Start, ok, err
}

// EndNode returns id's ending node id, or (0, false).
func (g *Graph) EndNode(ctx context.Context, id uint64) (uint64, bool, error) {
	rec, ok, err := g.GetRelationship(ctx, id)
	return rec.End, ok, err
}

// RemoveRelationship removes id. Same-shard relationships take the
// routing fast path to shard.Shard.RemoveRelationshipSameShard; a
// cross-shard relationship is removed by first asking the ending node's
// shard to drop its incoming counterpart, then the relationship's own
// shard to drop the outgoing side and recycle the slot (spec.md §4.6's
// "cross-shard remove, two-step", the mirror image of the insert
// protocol).
func (g *Graph) RemoveRelationship(ctx context.Context, id uint64) (bool, error) {
	relShard := ident.ShardOf(id)
	type snapshot struct {
		typeID uint16
		end    uint64
		ok     bool
	}
	snap, err := callOnShard(ctx, g, relShard, func(s *shard.Shard) (snapshot, error) {
		rec, ok := s.GetRelationshipByID(id)
		return snapshot{rec.TypeID, rec.End, ok}, nil
	})
	if err != nil || !snap.ok {
		return false, err
	}

	endShard := ident.ShardOf(snap.end)
	if endShard == relShard {
		return callOnShard(ctx, g, relShard, func(s *shard.Shard) (bool, error) {
			return s.RemoveRelationshipSameShard(id), nil
		})
	}

	g.log.Debug("remove relationship: dispatching cross-shard two-step remove",
		zap.Uint8("rel_shard", relShard), zap.Uint8("end_shard", endShard))

	if _, err := callOnShard(ctx, g, endShard, func(s *shard.Shard) (bool, error) {
		return s.RemoveRelationshipIncomingCounterpart(snap.end, snap.typeID, id), nil
	}); err != nil {
		return false, err
	}

	return callOnShard(ctx, g, relShard, func(s *shard.Shard) (bool, error) {
		return s.RemoveRelationshipOutgoingSide(id), nil
	})
}
