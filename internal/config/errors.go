package config

import "errors"

var (
	// ErrInvalidConfig marks a value that parsed but is out of range, or a
	// profile table the registry refused.
	ErrInvalidConfig = errors.New("invalid scout config")
	// ErrLoadConfig marks a config file or environment layer that could not be read.
	ErrLoadConfig = errors.New("scout config not loadable")
)
