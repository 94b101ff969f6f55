package render

import "sync"

// Object is a unit of deferred render work. The interface is sealed: only
// this package can define variants.
type Object interface {
	renderObject()
}

// Entry is an Object tagged with the call site that produced it.
type Entry struct {
	ID     RenderID
	Object Object
}

// deferred is the process-wide queue, created on first use.
var deferred = sync.OnceValue(NewQueue[Entry])

// Push enqueues obj under id. It never blocks and may be called from any
// goroutine at any time.
func Push(id RenderID, obj Object) {
	deferred().Push(Entry{ID: id, Object: obj})
}

// Pending returns the approximate number of queued entries.
func Pending() int {
	return deferred().Len()
}

// Drain removes and returns all queued entries in arrival order. It is meant
// for the single stage that consumes deferred work.
func Drain() []Entry {
	return deferred().Drain()
}

// Latest collapses entries to the most recent object per RenderID, keeping
// the order in which each ID first appeared.
func Latest(entries []Entry) []Entry {
	index := make(map[RenderID]int, len(entries))
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if i, ok := index[e.ID]; ok {
			out[i] = e
			continue
		}
		index[e.ID] = len(out)
		out = append(out, e)
	}
	return out
}
