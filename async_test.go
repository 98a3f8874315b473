package pinion_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pinionworks/pinion"
	"github.com/stretchr/testify/require"
)

func TestGo_ResolvesWithValue(t *testing.T) {
	task := pinion.Go(func() (int, error) { return 42, nil })

	v, err := task.Await(context.Background())
	require.NoError(t, err)
	require.Equal(t, 42, v)
}

func TestGo_ResolvesWithError(t *testing.T) {
	bang := errors.New("bang")
	task := pinion.Go(func() (int, error) { return 0, bang })

	_, err := task.Await(context.Background())
	require.ErrorIs(t, err, bang)
}

func TestGo_RecoversPanicAsError(t *testing.T) {
	task := pinion.Go(func() (int, error) { panic("boom") })

	_, err := task.Await(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "panicked")
}

func TestAwait_CancellationAbandonsWaitButKeepsResult(t *testing.T) {
	release := make(chan struct{})
	task := pinion.Go(func() (string, error) {
		<-release
		return "late", nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := task.Await(ctx)
	require.ErrorIs(t, err, context.Canceled)

	// The in-flight operation still runs to completion; a later waiter with a
	// live context observes the result.
	close(release)
	v, err := task.Await(context.Background())
	require.NoError(t, err)
	require.Equal(t, "late", v)
}

type fetchState struct {
	URL  string
	Body string
}

func TestAsync_StateAppliesResolvedResult(t *testing.T) {
	fetch := pinion.Async("fetch",
		func(_ context.Context, f *fetchState) (*pinion.Task[string], error) {
			url := f.URL
			return pinion.Go(func() (string, error) {
				return "payload from " + url, nil
			}), nil
		},
		func(f *fetchState, body string) error {
			f.Body = body
			return nil
		},
	)

	m := pinion.New("fetcher", fetch, pinion.Sequence(fetch))

	final, err := m.Run(context.Background(), fetchState{URL: "edgar"})
	require.NoError(t, err)
	require.Equal(t, "payload from edgar", final.Body)
}

func TestAsync_StartErrorFailsTheState(t *testing.T) {
	bang := errors.New("cannot even start")
	fetch := pinion.Async("fetch",
		func(_ context.Context, _ *fetchState) (*pinion.Task[string], error) {
			return nil, bang
		},
		func(_ *fetchState, _ string) error { return nil },
	)

	m := pinion.New("fetcher", fetch, pinion.Sequence(fetch))

	_, err := m.Run(context.Background(), fetchState{})

	var stateErr *pinion.StateError
	require.ErrorAs(t, err, &stateErr)
	require.Equal(t, "fetch", stateErr.State)
	require.ErrorIs(t, err, bang)
}

func TestAsync_CancelledRunLeavesContextUntouched(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	started := make(chan struct{})
	fetch := pinion.Async("fetch",
		func(_ context.Context, _ *fetchState) (*pinion.Task[string], error) {
			return pinion.Go(func() (string, error) {
				close(started)
				time.Sleep(50 * time.Millisecond)
				return "discarded", nil
			}), nil
		},
		func(f *fetchState, body string) error {
			f.Body = body
			return nil
		},
	)

	go func() {
		<-started
		cancel()
	}()

	m := pinion.New("fetcher", fetch, pinion.Sequence(fetch))

	final, err := m.Run(ctx, fetchState{URL: "edgar"})
	require.ErrorIs(t, err, context.Canceled)
	require.Empty(t, final.Body, "a discarded result must not mutate the context")
}

func TestAsync_StepsStaySequential(t *testing.T) {
	var order []string

	slow := pinion.Async("slow",
		func(_ context.Context, f *fetchState) (*pinion.Task[string], error) {
			return pinion.Go(func() (string, error) {
				time.Sleep(10 * time.Millisecond)
				return "slow done", nil
			}), nil
		},
		func(f *fetchState, body string) error {
			order = append(order, "slow")
			return nil
		},
	)
	after := pinion.StateFunc("after", func(_ context.Context, _ *fetchState) error {
		order = append(order, "after")
		return nil
	})

	m := pinion.New("sequential", slow, pinion.Sequence(slow, after))

	_, err := m.Run(context.Background(), fetchState{})
	require.NoError(t, err)
	require.Equal(t, []string{"slow", "after"}, order)
}
