package scenic

// opQueue is a FIFO buffer of deferred structural operations.
// Entities, scenes and the registry all funnel their pending mutations
// through one of these; the commit phase is the only consumer.
//
// Everything runs on the loop goroutine, so no locking is needed: producers
// only ever append between commits, and drain runs exclusively inside one.
type opQueue[T comparable] struct {
	items []T
}

// push appends v to the queue. A value already queued is not queued twice.
func (q *opQueue[T]) push(v T) {
	if q.contains(v) {
		return
	}
	q.items = append(q.items, v)
}

// remove deletes v from the queue, reporting whether it was present.
func (q *opQueue[T]) remove(v T) bool {
	for i, item := range q.items {
		if item == v {
			q.items = append(q.items[:i], q.items[i+1:]...)
			return true
		}
	}
	return false
}

// contains reports whether v is queued.
func (q *opQueue[T]) contains(v T) bool {
	for _, item := range q.items {
		if item == v {
			return true
		}
	}
	return false
}

// drain returns the queued values in FIFO order and resets the queue.
// The returned slice is the caller's to iterate; operations enqueued while
// the caller processes it land in a fresh buffer for the next commit.
func (q *opQueue[T]) drain() []T {
	items := q.items
	q.items = nil
	return items
}

// len returns the number of queued values.
func (q *opQueue[T]) len() int {
	return len(q.items)
}

// clear discards all queued values.
func (q *opQueue[T]) clear() {
	q.items = nil
}
