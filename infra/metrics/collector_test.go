package metrics

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/gigwage/core/events"
	coremetrics "github.com/kilianp07/gigwage/core/metrics"
	"github.com/kilianp07/gigwage/core/model"
	"github.com/kilianp07/gigwage/infra/logger"
	"github.com/kilianp07/gigwage/internal/eventbus"
)

type captureSink struct {
	mu         sync.Mutex
	calcs      []coremetrics.CalculationRecord
	rejections []coremetrics.RejectionRecord
}

func (c *captureSink) RecordCalculation(rec coremetrics.CalculationRecord) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calcs = append(c.calcs, rec)
	return nil
}

func (c *captureSink) RecordRejection(rec coremetrics.RejectionRecord) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rejections = append(c.rejections, rec)
	return nil
}

func (c *captureSink) counts() (int, int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.calcs), len(c.rejections)
}

func TestStartEventCollector(t *testing.T) {
	bus := eventbus.New()
	sink := &captureSink{}
	ctx, cancel := context.WithCancel(context.Background())
	done := StartEventCollector(ctx, bus, sink, logger.NopLogger{})

	bus.Publish(events.CalculationEvent{Source: events.SourceHTTP, Results: model.Results{Mode: model.ModeIRS}})
	bus.Publish(events.RejectedEvent{Source: events.SourceCLI, Fields: []string{"mpg"}})
	bus.Publish("ignored")

	require.Eventually(t, func() bool {
		c, r := sink.counts()
		return c == 1 && r == 1
	}, time.Second, 10*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("collector did not stop")
	}

	assert.Equal(t, "http", sink.calcs[0].Source)
	assert.Equal(t, model.ModeIRS, sink.calcs[0].Results.Mode)
	assert.Equal(t, []string{"mpg"}, sink.rejections[0].Fields)
}

func TestStartEventCollector_StopsOnBusClose(t *testing.T) {
	bus := eventbus.New()
	done := StartEventCollector(context.Background(), bus, coremetrics.NopSink{}, nil)
	bus.Close()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("collector did not stop")
	}
}

func TestStartEventCollector_NilBus(t *testing.T) {
	done := StartEventCollector(context.Background(), nil, coremetrics.NopSink{}, nil)
	_, open := <-done
	assert.False(t, open)
}
