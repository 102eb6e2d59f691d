package metrics

// MultiSink fans records out to several sinks.
type MultiSink struct {
	Sinks []MetricsSink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...MetricsSink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordCalculation forwards to all sinks, returning the first error.
func (m *MultiSink) RecordCalculation(rec CalculationRecord) error {
	for _, s := range m.Sinks {
		if err := s.RecordCalculation(rec); err != nil {
			return err
		}
	}
	return nil
}

// RecordRejection forwards to the sinks that support it.
func (m *MultiSink) RecordRejection(rec RejectionRecord) error {
	for _, s := range m.Sinks {
		if rr, ok := s.(RejectionRecorder); ok {
			if err := rr.RecordRejection(rec); err != nil {
				return err
			}
		}
	}
	return nil
}
