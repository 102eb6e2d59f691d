package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/gigwage/config"
	"github.com/kilianp07/gigwage/core/factory"
	"github.com/kilianp07/gigwage/core/model"
)

func testConfig() *config.Config {
	cfg := &config.Config{Defaults: model.DefaultInputs()}
	cfg.Server.Addr = "127.0.0.1:0"
	cfg.Metrics.Sinks = []factory.ModuleConfig{{Type: "nop"}}
	cfg.SetDefaults()
	return cfg
}

func TestService_Handler(t *testing.T) {
	svc, err := New(testConfig())
	require.NoError(t, err)
	defer func() { _ = svc.Close() }()

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/calculate", strings.NewReader(`{"grossEarnings":800,"hoursOnline":40,"milesDriven":500}`))
	svc.Handler().ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"netProfit":533.61`)
}

func TestService_RunStopsOnCancel(t *testing.T) {
	svc, err := New(testConfig())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("service did not stop")
	}
	assert.NoError(t, svc.Close())
}

func TestService_RunFailsFastOnMQTTSetup(t *testing.T) {
	cfg := testConfig()
	cfg.MQTT.Enabled = true
	cfg.MQTT.Broker = "tcp://127.0.0.1:1"
	cfg.MQTT.UseTLS = true
	svc, err := New(cfg)
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() { done <- svc.Run(context.Background()) }()

	select {
	case err := <-done:
		require.Error(t, err)
		assert.ErrorContains(t, err, "mqtt responder")
	case <-time.After(5 * time.Second):
		t.Fatal("run did not return on mqtt setup failure")
	}
	assert.Nil(t, svc.responder)
	assert.NoError(t, svc.Close())
}

func TestNew_UnknownSink(t *testing.T) {
	cfg := testConfig()
	cfg.Metrics.Sinks = []factory.ModuleConfig{{Type: "influx"}}
	_, err := New(cfg)
	assert.ErrorContains(t, err, "metrics sink")
}
