package service

import (
	"errors"

	"github.com/okian/scout/internal/domain/model"
)

// Sentinel kinds for service errors.
var (
	ErrNotStarted = errors.New("service not started")
	ErrDrained    = errors.New("service already drained")
	ErrQueueFull  = errors.New("record queue full")

	// ErrInvalidRecord is the model's validation error, re-exported for callers.
	ErrInvalidRecord = model.ErrInvalidRecord
)
