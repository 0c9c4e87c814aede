// Package dvar implements the symbol & state registry (spec §4.1): a
// process-local, monotonically growing map from declared symbols to
// contiguous half-open index ranges in the global decision-variable
// vector, threaded explicitly through every construction operation.
//
// The registry is realized as a *State owned by exactly one caller at a
// time and mutated through pointer-receiver methods, the same discipline
// gnark's own *R1CSRefactor builder uses (see frontend/r1cs/api.go): no
// package-level singleton, one mutator at a time, composition is plain
// sequential Go code.
package dvar

import (
	"fmt"

	"github.com/polysos/sos/internal/sosopt/errs"
	"github.com/polysos/sos/internal/sosopt/logger"
)

// CacheKey identifies an entry in State's expression cache. dvar treats
// it as an opaque key so the registry stays independent of the polynomial
// representation; no package in this module derives keys from
// expressions or fills the cache.
type CacheKey uint64

// Option configures a State at construction time.
type Option func(*options)

type options struct {
	sparseSMR    bool
	capacityHint int
}

// WithSparseSMR selects the sparse Gram-factorization mode (spec §4.6) for
// every SOS/Putinar constraint lowered against this state. Default is
// dense.
func WithSparseSMR() Option {
	return func(o *options) { o.sparseSMR = true }
}

// WithCapacityHint reserves map capacity for the expected number of
// decision symbols, mirroring gnark's frontend.WithCapacity compile option.
func WithCapacityHint(n int) Option {
	return func(o *options) { o.capacityHint = n }
}

// State is the name/index registry plus expression cache (spec §3). Zero
// value is not usable; construct with New.
type State struct {
	sparseSMR bool

	nIndices int
	indices  map[Symbol]Range
	order    []Symbol // allocation order, for deterministic SymbolAt scans

	cache map[CacheKey]any

	auxiliaryEquations []any // opaque poly.Polynomial values, see AddAuxiliaryEquation
}

// New creates an empty State.
func New(opts ...Option) *State {
	var o options
	for _, apply := range opts {
		apply(&o)
	}
	return &State{
		sparseSMR: o.sparseSMR,
		indices:   make(map[Symbol]Range, o.capacityHint),
		order:     make([]Symbol, 0, o.capacityHint),
		cache:     make(map[CacheKey]any),
	}
}

// SparseSMR reports whether sparse Gram factorization is configured.
func (s *State) SparseSMR() bool { return s.sparseSMR }

// NIndices returns the total number of indices allocated so far.
func (s *State) NIndices() int { return s.nIndices }

// Allocate assigns the next free contiguous range of size length to
// symbol, mutating s in place. Fails if symbol is already registered or if
// length <= 0.
func (s *State) Allocate(symbol Symbol, length int) error {
	if length <= 0 {
		return fmt.Errorf("allocate %q: length must be positive, got %d: %w", symbol, length, errs.ShapeMismatch)
	}
	if _, ok := s.indices[symbol]; ok {
		return fmt.Errorf("allocate %q: %w", symbol, errs.SymbolAlreadyAllocated)
	}

	start := s.nIndices
	r := Range{Start: start, Stop: start + length}
	s.indices[symbol] = r
	s.order = append(s.order, symbol)
	s.nIndices += length

	logger.Logger().Debug().
		Str("symbol", symbol.Name()).
		Str("kind", symbol.Kind().String()).
		Int("start", r.Start).
		Int("stop", r.Stop).
		Msg("allocated decision symbol")

	return nil
}

// RangeOf looks up the index range assigned to symbol.
func (s *State) RangeOf(symbol Symbol) (Range, error) {
	r, ok := s.indices[symbol]
	if !ok {
		return Range{}, fmt.Errorf("range of %q: %w", symbol, errs.UnknownSymbol)
	}
	return r, nil
}

// SymbolAt performs the reverse lookup: which symbol (if any) owns flat
// index i. A linear scan over allocation order; callers needing this in a
// hot loop should cache the result themselves (State does not memoize
// reverse lookups, matching the "implementation choice" the spec leaves
// open).
func (s *State) SymbolAt(i int) (Symbol, bool) {
	for _, sym := range s.order {
		r := s.indices[sym]
		if r.Start <= i && i < r.Stop {
			return sym, true
		}
	}
	return Symbol{}, false
}

// Symbols returns every allocated symbol in allocation order.
func (s *State) Symbols() []Symbol {
	out := make([]Symbol, len(s.order))
	copy(out, s.order)
	return out
}

// Cache retrieves a memoized sparse representation for key.
func (s *State) Cache(key CacheKey) (any, bool) {
	v, ok := s.cache[key]
	return v, ok
}

// SetCache memoizes value under key, overwriting any prior entry.
func (s *State) SetCache(key CacheKey, value any) {
	s.cache[key] = value
}

// AddAuxiliaryEquation records an equality the sparse SMR engine must add
// to the problem (spec §4.6). The value is opaque to dvar; callers (smr,
// conic) store and retrieve poly.Polynomial values here.
func (s *State) AddAuxiliaryEquation(eq any) {
	s.auxiliaryEquations = append(s.auxiliaryEquations, eq)
}

// AuxiliaryEquations returns every auxiliary equation accumulated so far,
// in the order they were added.
func (s *State) AuxiliaryEquations() []any {
	out := make([]any, len(s.auxiliaryEquations))
	copy(out, s.auxiliaryEquations)
	return out
}
