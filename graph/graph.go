package graph

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/dreamware/shardgraph/internal/config"
	"github.com/dreamware/shardgraph/internal/mailbox"
	"github.com/dreamware/shardgraph/shard"
)

// Graph is the root of an engine instance: N shards, each running its own
// single-threaded task loop, plus the peered operations that route and
// fan out across them (spec.md §2, §6).
type Graph struct {
	name   string
	cfg    config.Config
	shards []*shard.Shard
	log    *zap.Logger

	cancel  context.CancelFunc
	running sync.WaitGroup
}

// New constructs a Graph with cfg.ShardCount shards, none of them
// running yet. Call Start to launch their task loops.
func New(name string, cfg config.Config, log *zap.Logger) (*Graph, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("graph: invalid config: %w", err)
	}
	if log == nil {
		log = zap.NewNop()
	}
	g := &Graph{name: name, cfg: cfg, log: log.With(zap.String("graph", name))}
	g.shards = make([]*shard.Shard, cfg.ShardCount)
	for i := range g.shards {
		g.shards[i] = shard.New(uint8(i), cfg.ShardCount, cfg.TaskQueueDepth, log)
	}
	return g, nil
}

// Start launches one Drain goroutine per shard and returns once they are
// all live (spec.md §6: "start() materializes N shards and returns when
// all are live").
func (g *Graph) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	g.cancel = cancel
	var live sync.WaitGroup
	for _, s := range g.shards {
		s := s
		g.running.Add(1)
		live.Add(1)
		go func() {
			defer g.running.Done()
			live.Done()
			s.Mailbox().Drain(ctx)
		}()
	}
	live.Wait()
	g.log.Info("graph started", zap.Int("shards", len(g.shards)))
}

// Stop cancels the one context every shard's task loop drains under and
// waits for their goroutines to exit. All loops are cancelled together;
// they are not stopped one at a time or in any particular order.
func (g *Graph) Stop() {
	if g.cancel != nil {
		g.cancel()
	}
	g.running.Wait()
	g.log.Info("graph stopped")
}

// Reserve divides (nodeCount, relCount) by the shard count and pre-sizes
// every shard's pools (spec.md §6).
func (g *Graph) Reserve(ctx context.Context, nodeCount, relCount int) error {
	n := len(g.shards)
	perShardNodes := nodeCount / n
	perShardRels := relCount / n
	_, err := parallelOnEveryShard(ctx, g, func(s *shard.Shard) (struct{}, error) {
		s.Reserve(perShardNodes, perShardRels)
		return struct{}{}, nil
	})
	return err
}

// Clear resets every shard to its initial empty state (spec.md §6).
func (g *Graph) Clear(ctx context.Context) error {
	_, err := parallelOnEveryShard(ctx, g, func(s *shard.Shard) (struct{}, error) {
		s.Clear()
		return struct{}{}, nil
	})
	return err
}

// NumShards returns the shard count the Graph was constructed with.
func (g *Graph) NumShards() int { return len(g.shards) }

// callOnShard submits fn to shardID's mailbox and awaits the result.
// This is the single primitive every peered operation in this package
// routes through; when the caller already is the task running on
// shardID's own drain goroutine (as happens inside the multi-shard
// protocols below), calling the shard.Shard method directly instead of
// going through this helper again is the "routing fast path" spec.md
// §4.8 describes — the mailbox round trip is only paid once per
// distinct shard a protocol touches. A shardID that names no shard of g
// (an id whose low byte is out of range) yields T's zero value and a nil
// error, the same result as any other invalid id.
func callOnShard[T any](ctx context.Context, g *Graph, shardID uint8, fn func(*shard.Shard) (T, error)) (T, error) {
	if int(shardID) >= len(g.shards) {
		var zero T
		return zero, nil
	}
	sh := g.shards[shardID]
	future := mailbox.Submit(sh.Mailbox(), func() (T, error) { return fn(sh) })
	return future.Await(ctx)
}

// parallelOnEveryShard submits fn to every shard concurrently and joins
// the results, used by operations like Reserve and Clear that touch
// every shard independently with no cross-shard coordination needed.
func parallelOnEveryShard[T any](ctx context.Context, g *Graph, fn func(*shard.Shard) (T, error)) ([]T, error) {
	g.log.Debug("dispatching fan-out to every shard", zap.Int("shards", len(g.shards)))
	futures := make([]*mailbox.Future[T], len(g.shards))
	for i, s := range g.shards {
		s := s
		futures[i] = mailbox.Submit(s.Mailbox(), func() (T, error) { return fn(s) })
	}
	return mailbox.Join(ctx, futures)
}
