package graph

import (
	"context"

	"go.uber.org/zap"

	"github.com/dreamware/shardgraph/internal/mailbox"
	"github.com/dreamware/shardgraph/shard"
)

// perShardInstruction is one shard's slice of a paginated scan, computed
// by planScan from the global (skip, limit) request.
type perShardInstruction struct {
	shardID uint8
	skip    int
	limit   int
}

// planScan implements step 2 of spec.md §4.8(C): "walk the counts in
// shard order, translating (skip, limit) into a per-shard
// (local_skip, local_limit) instruction; stop issuing instructions once
// limit is satisfied."
func planScan(perShardCount []int, skip, limit int) []perShardInstruction {
	var plan []perShardInstruction
	for shardID, count := range perShardCount {
		if limit <= 0 {
			break
		}
		if skip >= count {
			skip -= count
			continue
		}
		localSkip := skip
		localLimit := count - localSkip
		if localLimit > limit {
			localLimit = limit
		}
		plan = append(plan, perShardInstruction{shardID: uint8(shardID), skip: localSkip, limit: localLimit})
		skip = 0
		limit -= localLimit
	}
	return plan
}

// AllNodeIDs implements the paginated global scan of spec.md §4.8(C)
// for nodes: query every shard's per-type-id count for typeName (or
// every type if typeName is ""), plan per-shard instructions, fan out
// the local scans, and concatenate results in shard-major order —
// exactly the ordering guarantee §4.8(C) specifies.
func (g *Graph) AllNodeIDs(ctx context.Context, typeName string, skip, limit int) ([]uint64, error) {
	return g.allIDs(ctx, shard.NodeEntity, typeName, skip, limit)
}

// AllRelationshipIDs is AllNodeIDs for relationships.
func (g *Graph) AllRelationshipIDs(ctx context.Context, typeName string, skip, limit int) ([]uint64, error) {
	return g.allIDs(ctx, shard.RelationshipEntity, typeName, skip, limit)
}

func (g *Graph) allIDs(ctx context.Context, kind shard.EntityKind, typeName string, skip, limit int) ([]uint64, error) {
	var typeID *uint16
	if typeName != "" {
		id, ok, err := g.TypeID(ctx, kind, typeName)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, nil
		}
		typeID = &id
	}

	counts, err := g.perShardCounts(ctx, kind, typeID)
	if err != nil {
		return nil, err
	}
	plan := planScan(counts, skip, limit)

	g.log.Debug("scan: dispatching per-shard instructions", zap.Int("shards_touched", len(plan)))

	futures := make([]*mailbox.Future[[]uint64], len(plan))
	for i, instr := range plan {
		instr := instr
		s := g.shards[instr.shardID]
		futures[i] = mailbox.Submit(s.Mailbox(), func() ([]uint64, error) {
			return s.LocalScanIDs(kind, typeID, instr.skip, instr.limit), nil
		})
	}
	perShardIDs, err := mailbox.Join(ctx, futures)
	if err != nil {
		return nil, err
	}

	var out []uint64
	for _, ids := range perShardIDs {
		out = append(out, ids...)
	}
	return out, nil
}

// AllNodes is AllNodeIDs followed by a fetch of each record, still
// concatenated in shard-major order.
func (g *Graph) AllNodes(ctx context.Context, typeName string, skip, limit int) ([]shard.NodeRecord, error) {
	ids, err := g.AllNodeIDs(ctx, typeName, skip, limit)
	if err != nil {
		return nil, err
	}
	return g.fetchNodes(ctx, ids)
}

// AllRelationships is AllRelationshipIDs followed by a fetch of each
// record.
func (g *Graph) AllRelationships(ctx context.Context, typeName string, skip, limit int) ([]shard.RelationshipRecord, error) {
	ids, err := g.AllRelationshipIDs(ctx, typeName, skip, limit)
	if err != nil {
		return nil, err
	}
	return g.fetchRelationships(ctx, ids)
}

func (g *Graph) fetchNodes(ctx context.Context, ids []uint64) ([]shard.NodeRecord, error) {
	out := make([]shard.NodeRecord, len(ids))
	for i, id := range ids {
		rec, _, err := g.GetNode(ctx, ByID(id))
		if err != nil {
			return nil, err
		}
		out[i] = rec
	}
	return out, nil
}

func (g *Graph) fetchRelationships(ctx context.Context, ids []uint64) ([]shard.RelationshipRecord, error) {
	out := make([]shard.RelationshipRecord, len(ids))
	for i, id := range ids {
		rec, _, err := g.GetRelationship(ctx, id)
		if err != nil {
			return nil, err
		}
		out[i] = rec
	}
	return out, nil
}

// perShardCounts returns, in shard order, the number of live entities of
// kind (restricted to typeID if non-nil) on each shard — step 1 of
// spec.md §4.8(C): "query every shard for its per-type-id count maps."
func (g *Graph) perShardCounts(ctx context.Context, kind shard.EntityKind, typeID *uint16) ([]int, error) {
	counts, err := parallelOnEveryShard(ctx, g, func(s *shard.Shard) (int, error) {
		if typeID != nil {
			return int(s.TypeCount(kind, *typeID)), nil
		}
		total := 0
		for _, c := range s.TypeCounts(kind) {
			total += int(c)
		}
		return total, nil
	})
	return counts, err
}
