package repository

import "errors"

// Sentinel kinds for rating board errors.
var (
	ErrNotFound     = errors.New("player not found")
	ErrInvalidLimit = errors.New("invalid board limit")
	ErrInvalidEntry = errors.New("invalid board entry")
)
