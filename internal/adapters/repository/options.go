package repository

// Option applies a configuration option to the Board.
type Option func(*Board)

// WithCapacityHint presizes the board for n players.
func WithCapacityHint(n int) Option {
	return func(b *Board) {
		if n > 0 {
			b.capacityHint = n
		}
	}
}

// WithPrioritySource replaces the random treap priority source. Tests use
// it to get a reproducible tree shape.
func WithPrioritySource(next func() uint64) Option {
	return func(b *Board) {
		if next != nil {
			b.priority = next
		}
	}
}
