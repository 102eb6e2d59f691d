package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/kilianp07/gigwage/core/metrics"
)

// PromSink records calculator activity in Prometheus metrics.
type PromSink struct {
	calculations *prometheus.CounterVec
	lost         *prometheus.HistogramVec
	realHourly   *prometheus.HistogramVec
	rejections   *prometheus.CounterVec
}

// NewPromSink registers calculator metrics on the default Prometheus registerer.
// The exporter is started separately with StartPromServer.
func NewPromSink() (coremetrics.MetricsSink, error) {
	return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(reg prometheus.Registerer) (coremetrics.MetricsSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	calculations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "gigwage_calculations_total",
		Help: "Total number of accepted calculations",
	}, []string{"mode", "source"})
	lost := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "gigwage_percentage_lost",
		Help:    "Share of gross earnings lost to vehicle costs and taxes",
		Buckets: prometheus.LinearBuckets(10, 10, 10),
	}, []string{"mode"})
	realHourly := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "gigwage_real_hourly_profit_dollars",
		Help:    "Net profit per hour online",
		Buckets: []float64{5, 7.25, 10, 12.5, 15, 20, 25, 30, 40},
	}, []string{"mode"})
	rejections := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "gigwage_rejections_total",
		Help: "Invalid input fields seen by the validator",
	}, []string{"field", "source"})

	var err error
	if calculations, err = register(reg, calculations); err != nil {
		return nil, err
	}
	if lost, err = register(reg, lost); err != nil {
		return nil, err
	}
	if realHourly, err = register(reg, realHourly); err != nil {
		return nil, err
	}
	if rejections, err = register(reg, rejections); err != nil {
		return nil, err
	}
	return &PromSink{calculations: calculations, lost: lost, realHourly: realHourly, rejections: rejections}, nil
}

// register returns the already registered collector when c is a duplicate,
// so that several sinks can share one registry.
func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

// RecordCalculation counts the calculation and observes its outcome.
func (s *PromSink) RecordCalculation(rec coremetrics.CalculationRecord) error {
	mode := rec.Results.Mode.String()
	s.calculations.WithLabelValues(mode, rec.Source).Inc()
	s.lost.WithLabelValues(mode).Observe(rec.Results.PercentageLost)
	s.realHourly.WithLabelValues(mode).Observe(rec.Results.RealHourlyProfit)
	return nil
}

// RecordRejection increments the rejection counter once per invalid field.
func (s *PromSink) RecordRejection(rec coremetrics.RejectionRecord) error {
	for _, f := range rec.Fields {
		s.rejections.WithLabelValues(f, rec.Source).Inc()
	}
	return nil
}
