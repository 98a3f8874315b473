package pinion

import (
	"fmt"
	"reflect"
)

// Policy decides, given the current state and the context, which state runs
// next. Returning (nil, nil) signals terminal. Policies should be
// deterministic for a given context so runs stay reproducible and testable.
type Policy[C any] interface {
	Next(current State[C], data *C) (State[C], error)
}

// PolicyFunc adapts a plain function into a Policy.
type PolicyFunc[C any] func(current State[C], data *C) (State[C], error)

func (f PolicyFunc[C]) Next(current State[C], data *C) (State[C], error) {
	return f(current, data)
}

// Sequence returns a policy that runs the given states in declaration order
// and terminates after the last one. States are matched by identity, so they
// must be the same comparable values handed to the machine (pointer states,
// which is what StateFunc and Nest return). A state of a non-comparable type
// is reported as a transition error rather than matched.
func Sequence[C any](states ...State[C]) Policy[C] {
	return PolicyFunc[C](func(current State[C], _ *C) (State[C], error) {
		if !reflect.TypeOf(current).Comparable() {
			return nil, fmt.Errorf("state %q has a non-comparable type %T and cannot be matched by identity", current.Name(), current)
		}
		for i, s := range states {
			if s == current {
				if i+1 < len(states) {
					return states[i+1], nil
				}
				return nil, nil
			}
		}
		return nil, fmt.Errorf("state %q is not part of the sequence", current.Name())
	})
}
