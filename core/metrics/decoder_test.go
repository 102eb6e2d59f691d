package metrics_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/kilianp07/gigwage/core/factory"
	metrics "github.com/kilianp07/gigwage/core/metrics"
)

func TestConfig_DecodeYAML(t *testing.T) {
	const doc = `
prometheus_port: ":9091"
sinks:
  - type: nop
  - type: nop
`
	var raw map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(doc), &raw))

	var cfg metrics.Config
	require.NoError(t, factory.Decode(raw, &cfg))
	assert.Equal(t, ":9091", cfg.PrometheusPort)
	require.Len(t, cfg.Sinks, 2)
	require.NoError(t, cfg.Validate())

	s, err := metrics.NewMetricsSink(cfg.Sinks)
	require.NoError(t, err)
	assert.IsType(t, &metrics.MultiSink{}, s)
}
