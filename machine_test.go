package pinion_test

import (
	"context"
	"errors"
	"testing"

	"github.com/pinionworks/pinion"
	"github.com/stretchr/testify/require"
)

// trace records which states ran, in order.
type trace struct {
	Visited []string
	Done    bool
}

func (t *trace) Completed() bool { return t.Done }

func visit(name string) pinion.State[trace] {
	return pinion.StateFunc(name, func(_ context.Context, tr *trace) error {
		tr.Visited = append(tr.Visited, name)
		return nil
	})
}

func TestMachine_RunsSequenceInOrder(t *testing.T) {
	first := visit("first")
	second := visit("second")
	third := visit("third")

	m := pinion.New("ordered", first, pinion.Sequence(first, second, third))

	final, err := m.Run(context.Background(), trace{})
	require.NoError(t, err)
	require.Equal(t, []string{"first", "second", "third"}, final.Visited)
}

func TestMachine_TerminatesInExactlyKSteps(t *testing.T) {
	const k = 7

	step := visit("loop")
	policy := pinion.PolicyFunc[trace](func(_ pinion.State[trace], tr *trace) (pinion.State[trace], error) {
		if len(tr.Visited) >= k {
			return nil, nil
		}
		return step, nil
	})

	final, err := pinion.New("k-steps", step, policy).Run(context.Background(), trace{})
	require.NoError(t, err)
	require.Len(t, final.Visited, k)
}

func TestMachine_FailureHaltsWithoutConsultingPolicy(t *testing.T) {
	bang := errors.New("bang")

	first := visit("first")
	broken := pinion.StateFunc("broken", func(_ context.Context, tr *trace) error {
		tr.Visited = append(tr.Visited, "broken")
		return bang
	})
	never := visit("never")

	consulted := 0
	policy := pinion.PolicyFunc[trace](func(current pinion.State[trace], _ *trace) (pinion.State[trace], error) {
		consulted++
		if current == first {
			return broken, nil
		}
		return never, nil
	})

	final, err := pinion.New("failing", first, policy).Run(context.Background(), trace{})

	var stateErr *pinion.StateError
	require.ErrorAs(t, err, &stateErr)
	require.Equal(t, "broken", stateErr.State)
	require.ErrorIs(t, err, bang)

	// The failing step's own mutations stay visible; nothing after it does.
	require.Equal(t, []string{"first", "broken"}, final.Visited)
	require.Equal(t, 1, consulted)
}

func TestMachine_TransitionErrorHaltsRun(t *testing.T) {
	start := visit("start")
	policy := pinion.PolicyFunc[trace](func(_ pinion.State[trace], _ *trace) (pinion.State[trace], error) {
		return nil, errors.New("policy misconfigured")
	})

	final, err := pinion.New("no-route", start, policy).Run(context.Background(), trace{})

	var transErr *pinion.TransitionError
	require.ErrorAs(t, err, &transErr)
	require.Equal(t, "start", transErr.State)
	require.Equal(t, []string{"start"}, final.Visited)
}

func TestMachine_StepLimit(t *testing.T) {
	step := visit("spin")
	forever := pinion.PolicyFunc[trace](func(_ pinion.State[trace], _ *trace) (pinion.State[trace], error) {
		return step, nil
	})

	m := pinion.New("runaway", step, forever, pinion.WithStepLimit[trace](10))

	final, err := m.Run(context.Background(), trace{})
	require.ErrorIs(t, err, pinion.ErrStepLimit)
	require.Len(t, final.Visited, 10)
}

func TestMachine_CancelBeforeFirstStep(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	initial := trace{Visited: []string{"seed"}}
	m := pinion.New("cancelled", visit("first"), pinion.Sequence[trace]())

	final, err := m.Run(ctx, initial)
	require.ErrorIs(t, err, context.Canceled)
	require.Equal(t, initial, final)
}

func TestMachine_CompleterStopsBeforePolicy(t *testing.T) {
	finish := pinion.StateFunc("finish", func(_ context.Context, tr *trace) error {
		tr.Visited = append(tr.Visited, "finish")
		tr.Done = true
		return nil
	})

	consulted := false
	policy := pinion.PolicyFunc[trace](func(_ pinion.State[trace], _ *trace) (pinion.State[trace], error) {
		consulted = true
		return finish, nil
	})

	final, err := pinion.New("cooperative", finish, policy).Run(context.Background(), trace{})
	require.NoError(t, err)
	require.True(t, final.Done)
	require.False(t, consulted, "policy must not run once the context reports completion")
}

func TestSequence_UnknownStateIsTransitionError(t *testing.T) {
	known := visit("known")
	stranger := visit("stranger")

	m := pinion.New("strict", stranger, pinion.Sequence(known))

	_, err := m.Run(context.Background(), trace{})

	var transErr *pinion.TransitionError
	require.ErrorAs(t, err, &transErr)
	require.Equal(t, "stranger", transErr.State)
}

// slipperyState is a value state whose func field makes its type
// non-comparable, so identity matching cannot apply to it.
type slipperyState struct {
	fn func(ctx context.Context, tr *trace) error
}

func (slipperyState) Name() string { return "slippery" }

func (s slipperyState) Run(ctx context.Context, tr *trace) error { return s.fn(ctx, tr) }

func TestSequence_NonComparableStateIsTransitionError(t *testing.T) {
	slippery := slipperyState{fn: func(_ context.Context, _ *trace) error { return nil }}

	m := pinion.New[trace]("slippery", slippery, pinion.Sequence[trace](slippery))

	_, err := m.Run(context.Background(), trace{})

	var transErr *pinion.TransitionError
	require.ErrorAs(t, err, &transErr)
	require.Equal(t, "slippery", transErr.State)
	require.Contains(t, err.Error(), "non-comparable")
}

func TestMachine_Name(t *testing.T) {
	m := pinion.New("named", visit("only"), pinion.Sequence(visit("only")))
	if m.Name() != "named" {
		t.Errorf("expected machine name 'named', got %q", m.Name())
	}
}
