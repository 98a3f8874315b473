package pinion

import "context"

// State is the atomic unit of computation within a run. Run performs the
// state's work against the context it is given, mutating it in place. A
// non-nil error aborts the run immediately; the policy is not consulted and
// the caller receives the context as it stood at failure time.
//
// Side effects must be confined to the given context. A state must not
// retain the context pointer across invocations: each call ends with the
// context in a coherent shape so the policy can be re-invoked safely.
type State[C any] interface {
	Name() string
	Run(ctx context.Context, data *C) error
}

// Completer is implemented by context types that signal run completion
// cooperatively with their states. The machine checks it after every
// successful step, before consulting the policy.
type Completer interface {
	Completed() bool
}

// StateFunc adapts a plain function into a State.
func StateFunc[C any](name string, fn func(ctx context.Context, data *C) error) State[C] {
	return &stateFunc[C]{name: name, fn: fn}
}

type stateFunc[C any] struct {
	name string
	fn   func(ctx context.Context, data *C) error
}

func (s *stateFunc[C]) Name() string { return s.name }

func (s *stateFunc[C]) Run(ctx context.Context, data *C) error {
	return s.fn(ctx, data)
}
