package pinion

import (
	"errors"
	"fmt"
)

// ErrStepLimit is returned when a run exceeds the step limit configured with
// WithStepLimit.
var ErrStepLimit = errors.New("step limit exceeded")

// StateError reports that a state's work could not complete. The run halts
// immediately; the partial context is still returned to the caller.
type StateError struct {
	State string
	Err   error
}

func (e *StateError) Error() string {
	return fmt.Sprintf("state %q failed: %v", e.State, e.Err)
}

func (e *StateError) Unwrap() error { return e.Err }

// TransitionError reports that the policy could not determine a next state
// for the current context.
type TransitionError struct {
	State string
	Err   error
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("no transition from state %q: %v", e.State, e.Err)
}

func (e *TransitionError) Unwrap() error { return e.Err }

// NestingError reports that a nested machine's run failed. It wraps the
// inner failure unmodified in kind, adding the nesting location for
// diagnosability.
type NestingError struct {
	Machine string
	Err     error
}

func (e *NestingError) Error() string {
	return fmt.Sprintf("nested machine %q failed: %v", e.Machine, e.Err)
}

func (e *NestingError) Unwrap() error { return e.Err }
