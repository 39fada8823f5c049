package profile

// Option applies a configuration option to a Registry under construction.
type Option func(*Registry)

// WithProfile registers or replaces the canonical profile for code. An
// alias with the same code is dropped.
func WithProfile(code Position, p Profile) Option {
	return func(r *Registry) {
		if code != "" {
			r.canonical[code] = p.Clone()
			delete(r.aliases, code)
		}
	}
}

// WithAlias makes alias resolve to a copy of target's canonical profile.
func WithAlias(alias, target Position) Option {
	return func(r *Registry) {
		if alias != "" {
			r.aliases[alias] = target
		}
	}
}

// WithFallback sets the position used for unknown or empty codes.
func WithFallback(code Position) Option {
	return func(r *Registry) {
		if code != "" {
			r.fallback = code
		}
	}
}

// WithoutDefaults starts from an empty table instead of the built-in one.
// The fallback still has to be registered by the caller.
func WithoutDefaults() Option {
	return func(r *Registry) {
		r.canonical = make(map[Position]Profile)
		r.aliases = make(map[Position]Position)
	}
}
