// Package graph implements the peered API: the cross-shard routing,
// fan-out, and two-phase protocols described in spec.md §4.7 and §4.8,
// built on top of package shard's purely local operations.
//
// # Overview
//
// A Graph owns N shards, each draining its own mailbox on its own
// goroutine. Every method on Graph is safe to call from any goroutine;
// internally it either routes a single task to the owning shard's
// mailbox, or — for the genuine multi-shard protocols — submits tasks to
// every shard involved and awaits their replies. Cross-shard node remove
// runs as one orchestrating task on the removed node's own shard, which
// fans out to the peer shards from there; relationship insert and the
// paginated scans are orchestrated from the caller's goroutine.
//
//	┌────────────────────────────────────────────────────────────┐
//	│                            GRAPH                            │
//	├────────────────────────────────────────────────────────────┤
//	│                                                              │
//	│   caller goroutine                                          │
//	│        │  Submit(shard[i].Mailbox(), task)                  │
//	│        ▼                                                     │
//	│   ┌─────────┐   mailbox.Submit    ┌─────────┐               │
//	│   │ shard 0 │◄────────────────────│ shard 1 │  ...          │
//	│   │ (leader)│────────────────────►│         │               │
//	│   └─────────┘   fan-out / reply   └─────────┘               │
//	│        │                                                     │
//	│        ▼                                                     │
//	│   type interner broadcast (§4.7)                            │
//	│                                                              │
//	└────────────────────────────────────────────────────────────┘
//
// # Protocols implemented here
//
//   - Type-id agreement (§4.7): TypeInsert forwards to shard 0, then
//     broadcasts the assigned id to every shard before returning.
//   - Cross-shard relationship insert (§4.8(A)): AddRelationship.
//   - Cross-shard node remove (§4.8(B)): RemoveNode.
//   - Paginated global scan (§4.8(C)): AllNodeIDs, AllNodes, and their
//     relationship counterparts.
//
// Every other method — property access, degree, traversal, single-shard
// CRUD — is mechanical routing: resolve a Selector to a shard, submit
// one task, await the reply.
package graph
