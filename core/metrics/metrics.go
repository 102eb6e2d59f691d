package metrics

import (
	"time"

	"github.com/kilianp07/gigwage/core/model"
)

// CalculationRecord is one accepted calculation.
type CalculationRecord struct {
	Source  string
	Results model.Results
	Time    time.Time
}

// MetricsSink records calculator activity for observability purposes.
type MetricsSink interface {
	RecordCalculation(rec CalculationRecord) error
}

// RejectionRecord is one set of inputs refused by the validator.
type RejectionRecord struct {
	Source string
	Fields []string
	Time   time.Time
}

// RejectionRecorder is implemented by sinks able to count rejected inputs.
type RejectionRecorder interface {
	RecordRejection(rec RejectionRecord) error
}

// NopSink implements every recorder with no-op methods.
type NopSink struct{}

func (NopSink) RecordCalculation(CalculationRecord) error { return nil }
func (NopSink) RecordRejection(RejectionRecord) error     { return nil }
