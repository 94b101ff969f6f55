package render

import "sync/atomic"

type node[T any] struct {
	value T
	next  atomic.Pointer[node[T]]
}

// Queue is an unbounded lock-free FIFO safe for any number of concurrent
// producers and consumers. It is a Michael-Scott linked queue; the garbage
// collector rules out ABA on node reuse.
//
// Push never blocks: a producer only retries its compare-and-swap when
// another producer linked a node first. Every pushed value is popped exactly
// once, in an order consistent with a single total order over all pushes.
type Queue[T any] struct {
	head atomic.Pointer[node[T]] // sentinel; head.next is the oldest value
	tail atomic.Pointer[node[T]]
	size atomic.Int64
}

// NewQueue creates an empty queue.
func NewQueue[T any]() *Queue[T] {
	q := &Queue[T]{}
	sentinel := &node[T]{}
	q.head.Store(sentinel)
	q.tail.Store(sentinel)
	return q
}

// Push appends v to the queue.
func (q *Queue[T]) Push(v T) {
	n := &node[T]{value: v}
	for {
		tail := q.tail.Load()
		next := tail.next.Load()
		if tail != q.tail.Load() {
			continue
		}
		if next != nil {
			// Tail is lagging; help the other producer finish.
			q.tail.CompareAndSwap(tail, next)
			continue
		}
		if tail.next.CompareAndSwap(nil, n) {
			q.tail.CompareAndSwap(tail, n)
			q.size.Add(1)
			return
		}
	}
}

// Pop removes and returns the oldest value. ok is false if the queue was
// empty.
func (q *Queue[T]) Pop() (v T, ok bool) {
	for {
		head := q.head.Load()
		tail := q.tail.Load()
		next := head.next.Load()
		if head != q.head.Load() {
			continue
		}
		if next == nil {
			return v, false
		}
		if head == tail {
			q.tail.CompareAndSwap(tail, next)
			continue
		}
		v = next.value
		if q.head.CompareAndSwap(head, next) {
			q.size.Add(-1)
			return v, true
		}
	}
}

// Drain pops values until the queue is observed empty and returns them in
// queue order. Values pushed concurrently may or may not be included.
func (q *Queue[T]) Drain() []T {
	var out []T
	for {
		v, ok := q.Pop()
		if !ok {
			return out
		}
		out = append(out, v)
	}
}

// Len returns the approximate number of queued values.
func (q *Queue[T]) Len() int {
	// Pop may decrement before the matching Push increments.
	if n := q.size.Load(); n > 0 {
		return int(n)
	}
	return 0
}

// Empty reports whether the queue currently holds no values.
func (q *Queue[T]) Empty() bool {
	return q.head.Load().next.Load() == nil
}
