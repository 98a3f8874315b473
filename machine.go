package pinion

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"
)

// Machine drives a run from its start state to termination. A Machine owns
// exactly one context value per run; it is never shared with another
// concurrently running machine. The Machine itself holds no per-run state,
// so one Machine may serve concurrent runs as long as its states and policy
// are safe to share.
type Machine[C any] struct {
	name      string
	start     State[C]
	policy    Policy[C]
	stepLimit int
	logger    *slog.Logger
	hooks     Hooks
}

// Option configures a Machine.
type Option[C any] func(*Machine[C])

// WithStepLimit caps the number of loop iterations. Zero (the default) means
// unbounded: an infinite policy is a caller error, not a framework-detected
// fault, but production machines should set a limit.
func WithStepLimit[C any](n int) Option[C] {
	return func(m *Machine[C]) {
		m.stepLimit = n
	}
}

// WithLogger sets a structured logger for the machine.
func WithLogger[C any](logger *slog.Logger) Option[C] {
	return func(m *Machine[C]) {
		m.logger = logger
	}
}

// WithHooks registers observability hooks.
func WithHooks[C any](hooks Hooks) Option[C] {
	return func(m *Machine[C]) {
		m.hooks = hooks
	}
}

// New creates a Machine starting at start and transitioning per policy.
func New[C any](name string, start State[C], policy Policy[C], opts ...Option[C]) *Machine[C] {
	m := &Machine[C]{
		name:   name,
		start:  start,
		policy: policy,
	}

	for _, opt := range opts {
		opt(m)
	}

	if m.logger == nil {
		m.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	m.logger = m.logger.With("machine", name)

	return m
}

// Name returns the machine name.
func (m *Machine[C]) Name() string { return m.name }

// Run drives the machine from its start state until the policy signals
// terminal, the context reports completion, or a state fails. The final
// context is always returned, also on failure, so callers can inspect how
// far processing progressed.
//
// Cancellation is checked before every step: cancelling before the first
// step returns the initial context untouched, and cancellation propagates
// into the running state through ctx.
func (m *Machine[C]) Run(ctx context.Context, data C) (C, error) {
	current := m.start

	for step := 0; ; step++ {
		if err := ctx.Err(); err != nil {
			return data, err
		}

		if m.stepLimit > 0 && step >= m.stepLimit {
			m.logger.WarnContext(ctx, "run aborted", "step", step, "err", ErrStepLimit)
			return data, fmt.Errorf("machine %q: %w", m.name, ErrStepLimit)
		}

		event := StepEvent{Machine: m.name, State: current.Name(), Step: step}
		m.hooks.stateEnter(ctx, &event)

		began := time.Now()
		err := current.Run(ctx, &data)
		event.Duration = time.Since(began)

		if err != nil {
			failure := &StateError{State: current.Name(), Err: err}
			event.Err = failure
			m.hooks.failure(ctx, &event)
			m.logger.ErrorContext(ctx, "state failed",
				"state", current.Name(), "step", step, "err", err)
			return data, failure
		}

		m.hooks.stateLeave(ctx, &event)
		m.logger.DebugContext(ctx, "state completed",
			"state", current.Name(), "step", step, "duration", event.Duration)

		if runCompleted(&data) {
			return data, nil
		}

		next, err := m.policy.Next(current, &data)
		if err != nil {
			failure := &TransitionError{State: current.Name(), Err: err}
			event.Err = failure
			m.hooks.failure(ctx, &event)
			m.logger.ErrorContext(ctx, "transition failed",
				"state", current.Name(), "step", step, "err", err)
			return data, failure
		}

		if next == nil {
			return data, nil
		}

		current = next
	}
}

// runCompleted reports the cooperative completion signal if the context type
// exposes one, either by value or by pointer receiver.
func runCompleted[C any](data *C) bool {
	if c, ok := any(data).(Completer); ok {
		return c.Completed()
	}
	if c, ok := any(*data).(Completer); ok {
		return c.Completed()
	}
	return false
}
