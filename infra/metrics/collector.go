package metrics

import (
	"context"

	"github.com/kilianp07/gigwage/core/events"
	"github.com/kilianp07/gigwage/core/logger"
	coremetrics "github.com/kilianp07/gigwage/core/metrics"
	"github.com/kilianp07/gigwage/internal/eventbus"
)

// StartEventCollector subscribes to the event bus and records metrics for
// calculation events. It stops when the context is canceled or the bus is
// closed. The returned channel is closed once the collector has exited.
func StartEventCollector(ctx context.Context, bus eventbus.EventBus, sink coremetrics.MetricsSink, log logger.Logger) <-chan struct{} {
	done := make(chan struct{})
	if bus == nil || sink == nil {
		close(done)
		return done
	}
	sub := bus.Subscribe()
	go func() {
		defer close(done)
		defer bus.Unsubscribe(sub)
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-sub:
				if !ok {
					return
				}
				if err := record(sink, ev); err != nil && log != nil {
					log.Warnf("metrics sink: %v", err)
				}
			}
		}
	}()
	return done
}

func record(sink coremetrics.MetricsSink, ev eventbus.Event) error {
	switch e := ev.(type) {
	case events.CalculationEvent:
		return sink.RecordCalculation(coremetrics.CalculationRecord{
			Source:  string(e.Source),
			Results: e.Results,
			Time:    e.Time,
		})
	case events.RejectedEvent:
		if r, ok := sink.(coremetrics.RejectionRecorder); ok {
			return r.RecordRejection(coremetrics.RejectionRecord{
				Source: string(e.Source),
				Fields: e.Fields,
				Time:   e.Time,
			})
		}
	}
	return nil
}
