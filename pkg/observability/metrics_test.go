package observability_test

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/pinionworks/pinion"
	"github.com/pinionworks/pinion/pkg/observability"
)

type probe struct{ Count int }

func TestMetrics_CountsStepsAndFailures(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := observability.New(reg)

	ok := pinion.StateFunc("ok", func(_ context.Context, p *probe) error {
		p.Count++
		return nil
	})
	fail := pinion.StateFunc("fail", func(_ context.Context, _ *probe) error {
		return errors.New("bang")
	})

	m := pinion.New("probe", ok, pinion.Sequence(ok, fail),
		pinion.WithHooks[probe](metrics.Hooks()))

	_, err := m.Run(context.Background(), probe{})
	require.Error(t, err)

	steps, err := testutil.GatherAndCount(reg, "pinion_steps_total")
	require.NoError(t, err)
	require.Equal(t, 1, steps)

	failures, err := testutil.GatherAndCount(reg, "pinion_failures_total")
	require.NoError(t, err)
	require.Equal(t, 1, failures)
}

func TestMetrics_LabelsByMachineAndState(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := observability.New(reg)

	ok := pinion.StateFunc("only", func(_ context.Context, p *probe) error {
		p.Count++
		return nil
	})
	m := pinion.New("labeled", ok, pinion.Sequence(ok),
		pinion.WithHooks[probe](metrics.Hooks()))

	_, err := m.Run(context.Background(), probe{})
	require.NoError(t, err)
	_, err = m.Run(context.Background(), probe{})
	require.NoError(t, err)

	families, err := reg.Gather()
	require.NoError(t, err)

	for _, fam := range families {
		if fam.GetName() != "pinion_steps_total" {
			continue
		}
		require.Len(t, fam.GetMetric(), 1)
		metric := fam.GetMetric()[0]
		require.Equal(t, float64(2), metric.GetCounter().GetValue())

		labels := map[string]string{}
		for _, l := range metric.GetLabel() {
			labels[l.GetName()] = l.GetValue()
		}
		require.Equal(t, "labeled", labels["machine"])
		require.Equal(t, "only", labels["state"])
		return
	}
	t.Fatal("pinion_steps_total not gathered")
}
