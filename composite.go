package pinion

import "context"

// Composite adapts a Machine to the State contract so it can nest inside an
// outer machine. From the parent's perspective a Composite is
// indistinguishable from an atomic state.
//
// The projection/merge pair is the only place state crosses between nesting
// levels: project copies the relevant slice of the outer context into a
// fresh inner context (the outer one stays valid), and merge folds the inner
// final context back after a successful run. Neither context ever holds a
// reference into the other.
type Composite[P, C any] struct {
	name    string
	inner   *Machine[C]
	project func(outer *P) C
	merge   func(outer *P, final C)
}

// Nest wraps inner so it runs as a single state of an outer machine.
func Nest[P, C any](name string, inner *Machine[C], project func(outer *P) C, merge func(outer *P, final C)) *Composite[P, C] {
	return &Composite[P, C]{
		name:    name,
		inner:   inner,
		project: project,
		merge:   merge,
	}
}

// Name returns the composite's state name within the outer machine.
func (s *Composite[P, C]) Name() string { return s.name }

// Run projects the outer context, drives the inner machine to termination
// and merges the result back. An inner failure (including cancellation) is
// reported unmodified in kind, wrapped with the nesting location; merge is
// not applied, so the outer context is never left half-updated.
func (s *Composite[P, C]) Run(ctx context.Context, outer *P) error {
	final, err := s.inner.Run(ctx, s.project(outer))
	if err != nil {
		return &NestingError{Machine: s.inner.Name(), Err: err}
	}

	s.merge(outer, final)

	return nil
}
