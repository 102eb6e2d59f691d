package metrics

import (
	"fmt"

	"github.com/kilianp07/gigwage/core/factory"
)

// Config defines the metrics sinks and the exporter endpoint.
type Config struct {
	Sinks []factory.ModuleConfig `json:"sinks"`
	// PrometheusPort is the listen address of the /metrics server, e.g.
	// ":9091". Empty disables the server.
	PrometheusPort string `json:"prometheus_port"`
}

// Validate checks the sink declarations.
func (c Config) Validate() error {
	for i, s := range c.Sinks {
		if s.Type == "" {
			return fmt.Errorf("metrics sink %d: type is required", i)
		}
	}
	return nil
}
