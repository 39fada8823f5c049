// Package dedupe tracks which player ids a batch run has already accepted.
package dedupe

import (
	"context"
	"sync"
)

// defaultMaxSize bounds the seen set when no option is given.
const defaultMaxSize = 50000

// Deduper records seen player ids so a batch run evaluates each player once.
type Deduper interface {
	// SeenAndRecord atomically checks if id was seen and records it if not.
	// Returns true if id was already seen, false if it was newly recorded.
	SeenAndRecord(ctx context.Context, id string) bool

	// Unrecord removes id, allowing it to be submitted again. Used when a
	// record was marked as seen but could not be queued.
	Unrecord(ctx context.Context, id string)

	Size() int64
}

type entry struct {
	id  string
	seq uint64
}

// inMemoryDeduper keeps ids in a map. In bounded mode (maxSize > 0) it also
// keeps insertion order and evicts the oldest id once full. Unrecorded ids
// are dropped from the order lazily.
type inMemoryDeduper struct {
	mu       sync.Mutex
	seen     map[string]uint64 // id -> insertion sequence
	order    []entry
	head     int
	seq      uint64
	maxSize  int
	sizeHint int
}

// NewInMemoryDeduper creates a new in-memory deduper with configuration options.
func NewInMemoryDeduper(opts ...Option) Deduper {
	d := &inMemoryDeduper{
		maxSize: defaultMaxSize,
	}
	for _, opt := range opts {
		opt(d)
	}
	hint := d.sizeHint
	if d.maxSize > 0 && hint > d.maxSize {
		hint = d.maxSize
	}
	d.seen = make(map[string]uint64, hint)
	if d.maxSize > 0 {
		d.order = make([]entry, 0, hint)
	}
	return d
}

// SeenAndRecord atomically checks if id was seen and records it if not.
func (d *inMemoryDeduper) SeenAndRecord(_ context.Context, id string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, exists := d.seen[id]; exists {
		return true
	}

	if d.maxSize > 0 && len(d.seen) >= d.maxSize {
		d.evictOldest()
	}

	d.seq++
	d.seen[id] = d.seq
	if d.maxSize > 0 {
		d.order = append(d.order, entry{id: id, seq: d.seq})
		d.compactIfSparse()
	}
	return false
}

// Unrecord removes an ID from the seen set.
func (d *inMemoryDeduper) Unrecord(_ context.Context, id string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	seq, ok := d.seen[id]
	if !ok {
		return
	}
	delete(d.seen, id)
	if d.maxSize <= 0 {
		return
	}
	// The common retry case undoes the latest record.
	if last := len(d.order) - 1; last >= d.head && d.order[last].seq == seq {
		d.order[last] = entry{}
		d.order = d.order[:last]
		return
	}
	d.compactIfSparse()
}

// compactIfSparse drops dead entries once the pending order holds more than
// twice maxSize. Must be called with d.mu held.
func (d *inMemoryDeduper) compactIfSparse() {
	if len(d.order)-d.head <= 2*d.maxSize {
		return
	}
	live := d.order[:0]
	for _, e := range d.order[d.head:] {
		if seq, ok := d.seen[e.id]; ok && seq == e.seq {
			live = append(live, e)
		}
	}
	clear(d.order[len(live):])
	d.order = live
	d.head = 0
}

// evictOldest drops the oldest live id. Must be called with d.mu held.
func (d *inMemoryDeduper) evictOldest() {
	for d.head < len(d.order) {
		e := d.order[d.head]
		d.order[d.head] = entry{}
		d.head++
		if seq, ok := d.seen[e.id]; ok && seq == e.seq {
			delete(d.seen, e.id)
			break
		}
	}

	// Compact once the consumed prefix dominates the slice.
	if d.head > len(d.order)/2 {
		d.order = append(d.order[:0], d.order[d.head:]...)
		d.head = 0
	}
}

// Size returns the current number of entries in the deduper.
func (d *inMemoryDeduper) Size() int64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return int64(len(d.seen))
}
