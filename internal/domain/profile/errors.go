package profile

import "errors"

// Sentinel error kinds for registry construction. These allow errors.Is/As
// from callers.
var (
	ErrInvalidProfile  = errors.New("invalid position profile")
	ErrUnknownAlias    = errors.New("alias targets unknown position")
	ErrAliasConflict   = errors.New("alias collides with canonical position")
	ErrUnknownFallback = errors.New("fallback position not registered")
)
