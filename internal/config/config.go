// Package config holds the small set of knobs the core needs to start up
// a Graph, modeled on the struct-of-structs-with-defaults shape of
// therealutkarshpriyadarshi-vector's pkg/config/config.go — torua's node
// and coordinator binaries read environment variables directly in main,
// which is exactly the process-bootstrap responsibility spec.md §1
// places outside the core.
//
// The core never reads the environment itself; a bootstrap builds a
// Config (from env vars, flags, a file — its choice) and passes it to
// graph.New.
package config

import "fmt"

// Config controls how a Graph is constructed and how its shards behave.
type Config struct {
	// ShardCount is the number of shards the Graph creates, normally one
	// per physical core (spec.md §2). Must be between 1 and 256 — the
	// external id encoding reserves 8 bits for the shard component
	// (internal/ident.ShardBits), so 256 is a hard ceiling, not a default.
	ShardCount int

	// TaskQueueDepth sizes each shard's mailbox (internal/mailbox.New).
	// A deeper queue lets a burst of peered calls queue up without the
	// caller blocking, at the cost of memory; spec.md §5 explicitly
	// declines to specify back-pressure, so this is purely a local tuning
	// knob, not a protocol guarantee.
	TaskQueueDepth int

	// LogLevel names a zap level: one of "debug", "info", "warn", "error";
	// Validate rejects any other value. graph.New does not apply it: the
	// Graph and its shards log through the *zap.Logger passed to
	// graph.New, at whatever levels that logger enables.
	LogLevel string
}

// Default returns a Config with reasonable defaults for a single-process
// deployment: one shard per logical CPU, a moderate queue depth, and
// LogLevel "info".
func Default(numCPU int) Config {
	if numCPU < 1 {
		numCPU = 1
	}
	return Config{
		ShardCount:     numCPU,
		TaskQueueDepth: 128,
		LogLevel:       "info",
	}
}

// Validate reports whether c describes a startable Graph.
func (c Config) Validate() error {
	if c.ShardCount < 1 {
		return fmt.Errorf("config: ShardCount must be >= 1, got %d", c.ShardCount)
	}
	if c.ShardCount > 256 {
		return fmt.Errorf("config: ShardCount must be <= 256 (8-bit shard id), got %d", c.ShardCount)
	}
	if c.TaskQueueDepth < 0 {
		return fmt.Errorf("config: TaskQueueDepth must be >= 0, got %d", c.TaskQueueDepth)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: unrecognized LogLevel %q", c.LogLevel)
	}
	return nil
}
