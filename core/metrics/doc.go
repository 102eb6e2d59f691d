// Package metrics defines the sink interfaces used to observe calculator
// activity. Sinks such as the Prometheus sink in infra/metrics are built from
// configuration through NewMetricsSink and combined with NewMultiSink when
// more than one is configured. Events reach the sinks from the event bus via
// infra/metrics.StartEventCollector.
package metrics
