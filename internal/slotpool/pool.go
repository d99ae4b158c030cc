// Package slotpool implements the slot-reuse allocator and dense record
// vector spec.md §4.3 describes: index 0 of every pool is a reserved zero
// entity, the vector never shrinks, and a bitmap of deleted indices
// supplies the next allocation before the vector is grown.
//
// This generalizes a map[string][]byte guarded by a mutex into a dense,
// index-addressed vector of typed records with slot reuse. There is no
// mutex here: a Pool is owned by exactly one shard's single-threaded
// task loop, the same no-intra-shard-locking contract every per-shard
// package in this module relies on (spec.md §5).
package slotpool

import "github.com/RoaringBitmap/roaring/roaring64"

// Pool is a dense vector of T with slot reuse on deletion. Index 0 is
// always the zero value of T (the "zero entity" in spec.md's
// vocabulary) and is never allocated or freed through the public API.
type Pool[T any] struct {
	records []T
	deleted *roaring64.Bitmap
}

// New returns an empty Pool with its zero-entity slot already installed.
func New[T any]() *Pool[T] {
	var zero T
	return &Pool[T]{records: []T{zero}, deleted: roaring64.New()}
}

// Reserve pre-sizes the backing vector to hold at least n live records in
// addition to the zero entity, without allocating any slots. It is a
// hint only: a non-positive n, an n the vector already covers, and an n
// whose capacity make rejects as out of range are all silently ignored.
func (p *Pool[T]) Reserve(n int) {
	if n <= 0 {
		return
	}
	want := n + 1
	if want <= len(p.records) {
		return
	}
	defer func() {
		// make panics when want is beyond what it can allocate; the hint
		// is dropped and the pool keeps its current backing vector.
		_ = recover()
	}()
	grown := make([]T, len(p.records), want)
	copy(grown, p.records)
	p.records = grown
}

// Len returns the current length of the backing vector, including the
// zero-entity slot and any deleted (but not yet reused) slots.
func (p *Pool[T]) Len() uint64 {
	return uint64(len(p.records))
}

// Alloc installs record into a reused deleted slot if one exists,
// otherwise appends a new slot, per the allocation algorithm in
// spec.md §4.3. It returns the index the record now occupies (never 0).
func (p *Pool[T]) Alloc(record T) uint64 {
	if !p.deleted.IsEmpty() {
		idx := p.deleted.Minimum()
		p.deleted.Remove(idx)
		p.records[idx] = record
		return idx
	}
	idx := uint64(len(p.records))
	p.records = append(p.records, record)
	return idx
}

// Free overwrites the record at idx with the zero value of T and marks
// idx deleted so a future Alloc may reuse it. Freeing index 0 or an
// already-deleted index is a no-op; callers validate with Live first.
func (p *Pool[T]) Free(idx uint64) {
	if idx == 0 || idx >= uint64(len(p.records)) {
		return
	}
	if p.deleted.Contains(idx) {
		return
	}
	var zero T
	p.records[idx] = zero
	p.deleted.Add(idx)
}

// Live reports whether idx denotes an allocated, non-deleted slot other
// than the reserved zero-entity slot at index 0.
func (p *Pool[T]) Live(idx uint64) bool {
	if idx == 0 || idx >= uint64(len(p.records)) {
		return false
	}
	return !p.deleted.Contains(idx)
}

// Get returns the record at idx. Callers must check Live (or validate
// the external id with internal/ident.Valid) first; Get on a dead or
// out-of-range index returns T's zero value without panicking only for
// in-range indices — out-of-range access is a programmer error the
// caller is responsible for preventing via Live.
func (p *Pool[T]) Get(idx uint64) T {
	return p.records[idx]
}

// Set overwrites the record at idx in place, used for in-place property
// mutation where the caller already holds a validated live index.
func (p *Pool[T]) Set(idx uint64, record T) {
	p.records[idx] = record
}

// DeletedCount returns the number of freed slots awaiting reuse.
func (p *Pool[T]) DeletedCount() uint64 {
	return p.deleted.GetCardinality()
}
