package native

import "sync"

// ContextHandle identifies a compile context owned by a Library.
type ContextHandle uint64

// CodeHandle identifies a compiled pattern owned by a Library.
type CodeHandle uint64

// MatchDataHandle identifies a match-data block owned by a Library.
type MatchDataHandle uint64

// Handle is the constraint satisfied by all handle kinds.
type Handle interface {
	~uint64
}

// Table maps handles of kind H to driver-side values of type T.
//
// Handles are issued from a monotonically increasing counter starting at 1,
// so the zero handle is never live and a freed handle is never reissued.
// A Table is safe for concurrent use.
type Table[H Handle, T any] struct {
	mu   sync.Mutex
	next uint64
	live map[H]T
}

// Put stores v and returns a fresh handle for it.
func (t *Table[H, T]) Put(v T) H {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.live == nil {
		t.live = make(map[H]T)
	}
	t.next++
	h := H(t.next)
	t.live[h] = v
	return h
}

// Get returns the value for h.
func (t *Table[H, T]) Get(h H) (T, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	v, ok := t.live[h]
	return v, ok
}

// Delete removes h and returns the value it referred to.
// Deleting the null handle or an unknown handle reports false.
func (t *Table[H, T]) Delete(h H) (T, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	v, ok := t.live[h]
	if ok {
		delete(t.live, h)
	}
	return v, ok
}

// Len returns the number of live handles.
func (t *Table[H, T]) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.live)
}
