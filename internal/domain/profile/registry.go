package profile

import (
	"fmt"
	"math"
	"sort"

	"github.com/go-playground/validator/v10"

	"github.com/okian/scout/internal/domain/stats"
)

// Registry resolves position codes to profiles. It is immutable once New
// returns and safe for concurrent use.
type Registry struct {
	// construction inputs, discarded once resolved
	canonical map[Position]Profile
	aliases   map[Position]Position

	profiles map[Position]Profile
	fallback Position
	order    []Position
}

var defaultRegistry = MustNew() //nolint:gochecknoglobals // built once, read-only

// Default returns the process-wide registry built from the built-in table.
func Default() *Registry { return defaultRegistry }

// Resolve looks code up in the default registry.
func Resolve(code Position) Profile { return defaultRegistry.Resolve(code) }

// New builds a registry from the built-in table plus opts. Every profile is
// validated; aliases are resolved by copying their target's values.
// WithoutDefaults, when used, must come before the options that add entries.
func New(opts ...Option) (*Registry, error) {
	r := &Registry{
		canonical: canonicalProfiles(),
		aliases:   canonicalAliases(),
		fallback:  Forward,
	}
	for _, opt := range opts {
		opt(r)
	}

	v := newValidator()
	for code, p := range r.canonical {
		if err := v.Struct(p); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidProfile, code, err)
		}
	}

	r.profiles = make(map[Position]Profile, len(r.canonical)+len(r.aliases))
	for code, p := range r.canonical {
		r.profiles[code] = p.Clone()
	}
	for alias, target := range r.aliases {
		if _, ok := r.canonical[alias]; ok {
			return nil, fmt.Errorf("%w: %s", ErrAliasConflict, alias)
		}
		p, ok := r.canonical[target]
		if !ok {
			return nil, fmt.Errorf("%w: %s -> %s", ErrUnknownAlias, alias, target)
		}
		r.profiles[alias] = p.Clone()
	}
	if _, ok := r.profiles[r.fallback]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownFallback, r.fallback)
	}

	r.order = sortPositions(r.profiles)
	r.canonical = nil
	r.aliases = nil
	return r, nil
}

// MustNew is New that panics on a malformed table.
func MustNew(opts ...Option) *Registry {
	r, err := New(opts...)
	if err != nil {
		panic(err)
	}
	return r
}

// Resolve returns a copy of the profile for code, or of the fallback
// profile when code is unknown or empty.
func (r *Registry) Resolve(code Position) Profile {
	if p, ok := r.profiles[code]; ok {
		return p.Clone()
	}
	return r.profiles[r.fallback].Clone()
}

// Known reports whether code has its own entry.
func (r *Registry) Known(code Position) bool {
	_, ok := r.profiles[code]
	return ok
}

// Fallback returns the code used for unknown positions.
func (r *Registry) Fallback() Position { return r.fallback }

// Positions lists registered codes: built-in codes in display order, then
// custom codes sorted.
func (r *Registry) Positions() []Position {
	return append([]Position(nil), r.order...)
}

func sortPositions(profiles map[Position]Profile) []Position {
	out := make([]Position, 0, len(profiles))
	builtin := make(map[Position]bool, len(displayOrder))
	for _, code := range displayOrder {
		builtin[code] = true
		if _, ok := profiles[code]; ok {
			out = append(out, code)
		}
	}
	custom := make([]Position, 0)
	for code := range profiles {
		if !builtin[code] {
			custom = append(custom, code)
		}
	}
	sort.Slice(custom, func(i, j int) bool { return custom[i] < custom[j] })
	return append(out, custom...)
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Registration only fails for an empty tag or nil func.
	_ = v.RegisterValidation("statkey", func(fl validator.FieldLevel) bool {
		return stats.Key(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("finite", func(fl validator.FieldLevel) bool {
		f := fl.Field().Float()
		return !math.IsInf(f, 0) && !math.IsNaN(f)
	})
	return v
}
