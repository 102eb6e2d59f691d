// Package app wires the calculator service to its transports: the HTTP API,
// the optional MQTT responder and the metrics pipeline.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/kilianp07/gigwage/api"
	"github.com/kilianp07/gigwage/config"
	"github.com/kilianp07/gigwage/core/calculator"
	"github.com/kilianp07/gigwage/core/factory"
	coremetrics "github.com/kilianp07/gigwage/core/metrics"
	"github.com/kilianp07/gigwage/infra/logger"
	"github.com/kilianp07/gigwage/infra/metrics"
	"github.com/kilianp07/gigwage/infra/mqtt"
	"github.com/kilianp07/gigwage/internal/eventbus"
)

const limiterCleanupInterval = 10 * time.Minute

// Service holds the long-running parts of the server.
type Service struct {
	Calculator *calculator.Service

	cfg       *config.Config
	bus       *eventbus.Bus
	sink      coremetrics.MetricsSink
	limiter   *api.RateLimiter
	server    *http.Server
	responder *mqtt.Responder
	log       logger.Logger
}

// New creates a Service from the configuration. Nothing is started until Run.
func New(cfg *config.Config) (*Service, error) {
	logg := logger.New("service")

	sinkCfgs := cfg.Metrics.Sinks
	if len(sinkCfgs) == 0 && cfg.Metrics.PrometheusPort != "" {
		sinkCfgs = []factory.ModuleConfig{{Type: "prometheus"}}
	}
	sink, err := coremetrics.NewMetricsSink(sinkCfgs)
	if err != nil {
		return nil, fmt.Errorf("metrics sink: %w", err)
	}

	bus := eventbus.New()
	calc := calculator.NewService(bus, logger.New("calculator"))

	var limiter *api.RateLimiter
	if rl := cfg.Server.RateLimit; rl.RequestsPerMinute > 0 {
		limiter = api.NewRateLimiter(rl.RequestsPerMinute, rl.Burst)
	}
	router := api.NewRouter(calc, cfg.Defaults, limiter, logger.New("http"))

	return &Service{
		Calculator: calc,
		cfg:        cfg,
		bus:        bus,
		sink:       sink,
		limiter:    limiter,
		server:     &http.Server{Addr: cfg.Server.Addr, Handler: router, ReadHeaderTimeout: 5 * time.Second},
		log:        logg,
	}, nil
}

// Handler exposes the HTTP router.
func (s *Service) Handler() http.Handler { return s.server.Handler }

// Run starts every component and blocks until ctx is cancelled or the HTTP
// server fails.
func (s *Service) Run(ctx context.Context) error {
	// The responder connects first so a broker failure leaves nothing running.
	if s.cfg.MQTT.Enabled {
		r, err := mqtt.NewResponder(s.cfg.MQTT, s.Calculator, s.cfg.Defaults, logger.New("mqtt"))
		if err != nil {
			return fmt.Errorf("mqtt responder: %w", err)
		}
		s.responder = r
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	collectorDone := metrics.StartEventCollector(ctx, s.bus, s.sink, s.log)
	if s.limiter != nil {
		go s.limiter.Run(ctx, limiterCleanupInterval)
	}
	if addr := s.cfg.Metrics.PrometheusPort; addr != "" {
		go func() {
			if err := metrics.StartPromServer(ctx, addr, s.log); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}
	errCh := make(chan error, 1)
	go func() {
		defer close(errCh)
		s.log.Infof("listening on %s", s.server.Addr)
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	var runErr error
	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil {
			runErr = fmt.Errorf("http server: %w", err)
		}
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := s.server.Shutdown(shutdownCtx); err != nil {
		s.log.Errorf("http shutdown: %v", err)
	}
	cancel()
	<-collectorDone
	return runErr
}

// Close releases resources held by the service.
func (s *Service) Close() error {
	if s.responder != nil {
		s.responder.Close()
	}
	if d := s.bus.Dropped(); d > 0 {
		s.log.Warnf("%d events dropped by slow subscribers", d)
	}
	s.bus.Close()
	return nil
}
