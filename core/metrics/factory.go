package metrics

import (
	"fmt"

	"github.com/kilianp07/gigwage/core/factory"
)

var sinkRegistry = factory.NewRegistry[MetricsSink]()

// RegisterMetricsSink adds a metrics sink factory identified by name.
func RegisterMetricsSink(name string, f factory.Factory[MetricsSink]) error {
	return sinkRegistry.Register(name, f)
}

// NewMetricsSink builds the sink list from the metrics.sinks configuration.
// An empty list records nothing. A sink type other than "nop" may appear
// only once, since two sinks of one type would share collectors and count
// every calculation twice.
func NewMetricsSink(cfgs []factory.ModuleConfig) (MetricsSink, error) {
	if len(cfgs) == 0 {
		return NopSink{}, nil
	}
	seen := make(map[string]int, len(cfgs))
	sinks := make([]MetricsSink, 0, len(cfgs))
	for i, c := range cfgs {
		if first, dup := seen[c.Type]; dup && c.Type != "nop" {
			return nil, fmt.Errorf("metrics sink %d: type %q already configured at index %d", i, c.Type, first)
		}
		seen[c.Type] = i
		s, err := sinkRegistry.Create(c)
		if err != nil {
			return nil, fmt.Errorf("metrics sink %d (%s): %w", i, c.Type, err)
		}
		sinks = append(sinks, s)
	}
	if len(sinks) == 1 {
		return sinks[0], nil
	}
	return NewMultiSink(sinks...), nil
}
