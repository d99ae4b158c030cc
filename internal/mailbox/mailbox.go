// Package mailbox implements the asynchronous message-passing primitive
// every peered operation is built on (spec.md §5): a per-shard inbox
// drained by exactly one goroutine (the shard's "dedicated worker
// thread"), and a Future type callers await for the result of work
// submitted to another shard's inbox.
//
// This adapts torua's internal/cluster HTTP request/response envelope
// (PostJSON/GetJSON against another node's address) into an in-process
// channel send, since spec.md's shards are cores of one process, not
// nodes on a network — the envelope shape (submit a request, get a
// typed response back) survives, the transport does not.
package mailbox

import "context"

// Task is a unit of work queued on a shard's inbox. It receives no
// arguments and returns nothing; callers close over whatever state and
// result channel they need (see Submit), the same closure-over-channel
// shape Go's standard library uses for one-shot RPC-like calls.
type Task func()

// Mailbox is a single shard's FIFO inbox. Exactly one goroutine — the
// shard's task loop — must call Drain; every other goroutine only calls
// Send (directly) or Submit (via the Future helpers below).
type Mailbox struct {
	inbox chan Task
}

// New returns a Mailbox with the given inbox depth. A depth of 0 makes
// Send synchronous with the drainer, which is fine for low fan-out but
// callers with many peers typically want enough depth to avoid
// serializing their own dispatch loop on the drainer's pace.
func New(depth int) *Mailbox {
	return &Mailbox{inbox: make(chan Task, depth)}
}

// Send enqueues task for execution by the draining goroutine. It blocks
// if the inbox is full; there is no back-pressure signal beyond that
// blocking, matching spec.md §5's "None. Senders await their replies".
func (m *Mailbox) Send(task Task) {
	m.inbox <- task
}

// Close signals the drainer to stop once the inbox empties. Sending to a
// closed Mailbox panics, the same as sending to any closed channel;
// callers must stop sending before calling Close.
func (m *Mailbox) Close() {
	close(m.inbox)
}

// Drain runs every queued Task in FIFO order until the Mailbox is closed
// or ctx is canceled. This is the shard's single-threaded task loop:
// spec.md §5's "FIFO of incoming tasks", executed one at a time on one
// goroutine so the shard's data structures need no internal locking.
func (m *Mailbox) Drain(ctx context.Context) {
	for {
		select {
		case task, ok := <-m.inbox:
			if !ok {
				return
			}
			task()
		case <-ctx.Done():
			return
		}
	}
}

// result carries a Future's eventual value or error.
type result[T any] struct {
	val T
	err error
}

// Future is the handle spec.md §2 describes for a peered call: "callable
// from any thread, returning a future; internally routes to the owning
// shard via message passing". A Future is resolved exactly once, by the
// function passed to Submit.
type Future[T any] struct {
	ch chan result[T]
}

// newFuture creates an unresolved Future and the resolver used to fulfil
// it exactly once.
func newFuture[T any]() (*Future[T], func(T, error)) {
	ch := make(chan result[T], 1)
	resolve := func(v T, err error) {
		ch <- result[T]{val: v, err: err}
	}
	return &Future[T]{ch: ch}, resolve
}

// Await blocks until the Future is resolved or ctx is canceled,
// whichever comes first — the "awaiting one such reply" suspension
// point spec.md §5 names.
func (f *Future[T]) Await(ctx context.Context) (T, error) {
	select {
	case r := <-f.ch:
		return r.val, r.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Submit queues fn to run on m's drainer and returns a Future for its
// result. This is the standard way a peered method on one shard calls
// into another shard's local API: wrap the local call in a closure that
// resolves the Future, hand it to the target shard's Mailbox.
func Submit[T any](m *Mailbox, fn func() (T, error)) *Future[T] {
	future, resolve := newFuture[T]()
	m.Send(func() {
		v, err := fn()
		resolve(v, err)
	})
	return future
}

// Join awaits every Future in futures against the same ctx and returns
// their results in the same order they were given, or the first error
// encountered (after awaiting the rest, so no goroutine is left writing
// to an abandoned Future). Each call to Join's caller is expected to
// construct a fresh futures slice per spec.md §9's Open Question 2 ("each
// dispatch [produces] a freshly owned future set") — Join itself does
// not cache or reuse anything across calls.
func Join[T any](ctx context.Context, futures []*Future[T]) ([]T, error) {
	out := make([]T, len(futures))
	var firstErr error
	for i, f := range futures {
		v, err := f.Await(ctx)
		out[i] = v
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return out, firstErr
}
