package repository

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/okian/scout/internal/domain/profile"
	"github.com/okian/scout/pkg/metrics"
)

// Treap-based, in-memory Store implementation.
//
// Ordering: rating DESC, then playerID ASC (deterministic). "before" means
// ranks earlier, so an in-order walk yields the board from best to worst.
// Subtree sizes make rank lookups O(log n).

type node struct {
	id     string
	rating float64
	prio   uint64
	left   *node
	right  *node
	size   int
}

func nsize(n *node) int {
	if n == nil {
		return 0
	}
	return n.size
}

func fix(n *node) {
	if n != nil {
		n.size = 1 + nsize(n.left) + nsize(n.right)
	}
}

// before reports whether (aRating, aID) ranks ahead of (bRating, bID).
func before(aRating float64, aID string, bRating float64, bID string) bool {
	if aRating != bRating {
		return aRating > bRating
	}
	return aID < bID
}

func rotateRight(y *node) *node {
	x := y.left
	y.left = x.right
	x.right = y
	fix(y)
	fix(x)
	return x
}

func rotateLeft(x *node) *node {
	y := x.right
	x.right = y.left
	y.left = x
	fix(x)
	fix(y)
	return y
}

func insert(n *node, id string, rating float64, prio uint64) *node {
	if n == nil {
		return &node{id: id, rating: rating, prio: prio, size: 1}
	}
	if before(rating, id, n.rating, n.id) {
		n.left = insert(n.left, id, rating, prio)
		if n.left.prio > n.prio {
			n = rotateRight(n)
		}
	} else {
		n.right = insert(n.right, id, rating, prio)
		if n.right.prio > n.prio {
			n = rotateLeft(n)
		}
	}
	fix(n)
	return n
}

func remove(n *node, id string, rating float64) *node {
	if n == nil {
		return nil
	}
	switch {
	case id == n.id && rating == n.rating:
		// Rotate the higher-priority child up until n is a leaf.
		if n.left == nil {
			return n.right
		}
		if n.right == nil {
			return n.left
		}
		if n.left.prio > n.right.prio {
			n = rotateRight(n)
			n.right = remove(n.right, id, rating)
		} else {
			n = rotateLeft(n)
			n.left = remove(n.left, id, rating)
		}
	case before(rating, id, n.rating, n.id):
		n.left = remove(n.left, id, rating)
	default:
		n.right = remove(n.right, id, rating)
	}
	fix(n)
	return n
}

// rankOf returns the 1-based rank of (rating, id), or 0 if absent.
func rankOf(n *node, id string, rating float64) int {
	passed := 0
	for n != nil {
		switch {
		case id == n.id && rating == n.rating:
			return passed + nsize(n.left) + 1
		case before(rating, id, n.rating, n.id):
			n = n.left
		default:
			passed += nsize(n.left) + 1
			n = n.right
		}
	}
	return 0
}

// walk visits nodes in rank order until visit returns false.
func walk(n *node, rank *int, visit func(id string, rank int) bool) bool {
	if n == nil {
		return true
	}
	if !walk(n.left, rank, visit) {
		return false
	}
	*rank++
	if !visit(n.id, *rank) {
		return false
	}
	return walk(n.right, rank, visit)
}

var _ Store = (*Board)(nil)

// Board is the default Store.
type Board struct {
	mu           sync.RWMutex
	root         *node
	byID         map[string]Entry
	capacityHint int
	priority     func() uint64
}

// NewBoard constructs an empty rating board.
func NewBoard(opts ...Option) *Board {
	b := &Board{
		capacityHint: 64,
		priority:     rand.Uint64,
	}
	for _, opt := range opts {
		opt(b)
	}
	b.byID = make(map[string]Entry, b.capacityHint)
	metrics.UpdateBoardSize(0)
	return b
}

// Upsert implements Store.Upsert in O(log n) expected time.
func (b *Board) Upsert(_ context.Context, e Entry) (bool, error) {
	start := time.Now()

	if e.PlayerID == "" {
		metrics.RecordErrorByComponent("repository", "invalid_entry")
		return false, fmt.Errorf("%w: empty player id", ErrInvalidEntry)
	}
	if math.IsNaN(e.Rating) || math.IsInf(e.Rating, 0) {
		metrics.RecordErrorByComponent("repository", "invalid_entry")
		return false, fmt.Errorf("%w: rating %v for %s", ErrInvalidEntry, e.Rating, e.PlayerID)
	}
	e.Rank = 0

	b.mu.Lock()
	old, existed := b.byID[e.PlayerID]
	if existed {
		b.root = remove(b.root, old.PlayerID, old.Rating)
	}
	b.byID[e.PlayerID] = e
	b.root = insert(b.root, e.PlayerID, e.Rating, b.priority())
	count := len(b.byID)
	b.mu.Unlock()

	metrics.RecordBoardUpdate(float64(time.Since(start).Microseconds()) / 1000)
	if !existed {
		metrics.UpdateBoardSize(count)
	}
	return !existed, nil
}

// Get returns a player's row with its current rank in O(log n).
func (b *Board) Get(_ context.Context, playerID string) (Entry, error) {
	start := time.Now()
	defer func() {
		metrics.RecordBoardQueryLatency(float64(time.Since(start).Microseconds()) / 1000)
	}()

	b.mu.RLock()
	defer b.mu.RUnlock()

	e, ok := b.byID[playerID]
	if !ok {
		metrics.RecordErrorByComponent("repository", "not_found")
		return Entry{}, fmt.Errorf("%w: %s", ErrNotFound, playerID)
	}
	e.Rank = rankOf(b.root, e.PlayerID, e.Rating)
	return e, nil
}

// TopN returns the best n rows.
func (b *Board) TopN(_ context.Context, n int) ([]Entry, error) {
	return b.collect(n, func(Entry) bool { return true })
}

// TopByPosition returns the best n rows submitted under pos.
func (b *Board) TopByPosition(_ context.Context, pos profile.Position, n int) ([]Entry, error) {
	return b.collect(n, func(e Entry) bool { return e.Position == pos })
}

func (b *Board) collect(n int, keep func(Entry) bool) ([]Entry, error) {
	start := time.Now()
	defer func() {
		metrics.RecordBoardQueryLatency(float64(time.Since(start).Microseconds()) / 1000)
	}()

	if n < 1 {
		metrics.RecordErrorByComponent("repository", "invalid_limit")
		return nil, fmt.Errorf("%w: %d", ErrInvalidLimit, n)
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]Entry, 0, min(n, len(b.byID)))
	rank := 0
	walk(b.root, &rank, func(id string, r int) bool {
		e := b.byID[id]
		if keep(e) {
			e.Rank = r
			out = append(out, e)
		}
		return len(out) < n
	})
	return out, nil
}

// Count returns the number of players on the board.
func (b *Board) Count(_ context.Context) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.byID)
}
