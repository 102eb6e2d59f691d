package scenarios

import (
	"context"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/gigwage/core/calculator"
	"github.com/kilianp07/gigwage/core/events"
	"github.com/kilianp07/gigwage/core/validation"
	"github.com/kilianp07/gigwage/infra/logger"
	"github.com/kilianp07/gigwage/infra/metrics"
	"github.com/kilianp07/gigwage/internal/eventbus"
)

// RunScenario computes sc through a calculator.Service wired to a private
// Prometheus registry and asserts the expectations.
func RunScenario(t *testing.T, sc *Scenario) {
	t.Helper()
	reg := prometheus.NewRegistry()
	sink, err := metrics.NewPromSinkWithRegistry(reg)
	require.NoError(t, err)

	bus := eventbus.New()
	defer bus.Close()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := metrics.StartEventCollector(ctx, bus, sink, logger.NopLogger{})

	svc := calculator.NewService(bus, logger.NopLogger{})
	calc, err := svc.Calculate(events.SourceBatch, sc.Inputs)

	if len(sc.Expected.Rejected) > 0 {
		var verrs validation.Errors
		require.ErrorAs(t, err, &verrs)
		assert.Equal(t, sc.Expected.Rejected, verrs.Fields())
		waitForSeries(t, reg, "gigwage_rejections_total", len(sc.Expected.Rejected))
	} else {
		require.NoError(t, err)
		got := resultMap(t, calc)
		for field, want := range sc.Expected.Results {
			v, ok := got[field]
			if assert.True(t, ok, "unknown result field %s", field) {
				assert.InDelta(t, want, v, 1e-9, field)
			}
		}
		if sc.Expected.Mode != "" {
			assert.Equal(t, sc.Expected.Mode, calc.Results.Mode.String())
		}
		waitForSeries(t, reg, "gigwage_calculations_total", 1)
	}

	cancel()
	<-done
}

func resultMap(t *testing.T, calc calculator.Calculation) map[string]float64 {
	t.Helper()
	data, err := json.Marshal(calc.Results)
	require.NoError(t, err)
	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	out := make(map[string]float64, len(raw))
	for k, v := range raw {
		if f, ok := v.(float64); ok {
			out[k] = f
		}
	}
	return out
}

func waitForSeries(t *testing.T, reg *prometheus.Registry, name string, want int) {
	t.Helper()
	assert.Eventually(t, func() bool {
		n, err := testutil.GatherAndCount(reg, name)
		return err == nil && n == want
	}, time.Second, 5*time.Millisecond, "%s series", name)
}
