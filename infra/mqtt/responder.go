package mqtt

import (
	"fmt"
	"strings"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/goccy/go-json"

	"github.com/kilianp07/gigwage/core/calculator"
	"github.com/kilianp07/gigwage/core/events"
	"github.com/kilianp07/gigwage/core/logger"
	"github.com/kilianp07/gigwage/core/model"
	"github.com/kilianp07/gigwage/core/report"
)

// Calculator runs one validated calculation.
type Calculator interface {
	Calculate(src events.Source, in model.Inputs) (calculator.Calculation, error)
}

// Request is the payload expected on the request topic. Cost fields missing
// from Inputs are taken from the responder defaults.
type Request struct {
	RequestID string          `json:"request_id"`
	Inputs    json.RawMessage `json:"inputs"`
}

// Responder answers calculation requests received over MQTT. The reply is
// published on <response_prefix>/<request_id>: a report.Envelope on success,
// a report.ErrorBody otherwise.
type Responder struct {
	cli      pahoClient
	cfg      Config
	calc     Calculator
	defaults model.Inputs
	logger   logger.Logger
	backoff  time.Duration
	sleep    func(time.Duration)
}

// NewResponder connects to the broker and subscribes to the request topic.
// The subscription is renewed on every reconnect.
func NewResponder(cfg Config, calc Calculator, defaults model.Inputs, log logger.Logger) (*Responder, error) {
	cfg.SetDefaults()
	opts, err := NewClientOptions(cfg)
	if err != nil {
		return nil, err
	}
	r := &Responder{
		cfg:      cfg,
		calc:     calc,
		defaults: defaults,
		logger:   log,
		backoff:  time.Duration(cfg.BackoffMS) * time.Millisecond,
		sleep:    time.Sleep,
	}

	opts.OnConnect = func(c paho.Client) {
		log.Infof("MQTT connected, listening on %s", cfg.RequestTopic)
		if token := c.Subscribe(cfg.RequestTopic, cfg.qos("request"), r.onRequest); token.Wait() && token.Error() != nil {
			log.Errorf("subscribe error: %v", token.Error())
		}
	}
	opts.OnConnectionLost = func(_ paho.Client, err error) {
		log.Errorf("connection lost: %v", err)
	}
	opts.OnReconnecting = func(_ paho.Client, _ *paho.ClientOptions) {
		log.Warnf("reconnecting to MQTT broker")
	}
	c := newMQTTClient(opts)
	if token := c.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("mqtt connect %s: %w", cfg.Broker, token.Error())
	}
	r.cli = c
	return r, nil
}

// Close unsubscribes and disconnects from the broker.
func (r *Responder) Close() {
	if r.cli == nil || !r.cli.IsConnected() {
		return
	}
	r.cli.Unsubscribe(r.cfg.RequestTopic).WaitTimeout(time.Second)
	r.cli.Disconnect(250)
}

func (r *Responder) onRequest(_ paho.Client, msg paho.Message) {
	var req Request
	if err := json.Unmarshal(msg.Payload(), &req); err != nil {
		r.logger.Errorf("failed to decode request on %s: %v", msg.Topic(), err)
		return
	}
	id := strings.TrimSpace(req.RequestID)
	if id == "" || strings.ContainsAny(id, "/+#") {
		r.logger.Warnf("dropping request with unusable request_id %q", req.RequestID)
		return
	}

	payload, err := json.Marshal(r.handle(req))
	if err != nil {
		r.logger.Errorf("encode reply %s: %v", id, err)
		return
	}
	if err := r.publish(r.cfg.ResponsePrefix+"/"+id, payload); err != nil {
		r.logger.Errorf("reply %s not delivered: %v", id, err)
	}
}

func (r *Responder) handle(req Request) any {
	in := r.defaults
	if len(req.Inputs) > 0 {
		if err := json.Unmarshal(req.Inputs, &in); err != nil {
			return report.NewErrorBody(fmt.Errorf("malformed inputs: %w", err))
		}
	}
	calc, err := r.calc.Calculate(events.SourceMQTT, in)
	if err != nil {
		return report.NewErrorBody(err)
	}
	return report.NewEnvelope(calc.ID, calc.Results)
}

// publish retries with exponential backoff up to MaxRetries times. It runs in
// the paho message callback, so there is no wait after the last attempt.
func (r *Responder) publish(topic string, payload []byte) error {
	var err error
	for attempt := 0; attempt <= r.cfg.MaxRetries; attempt++ {
		token := r.cli.Publish(topic, r.cfg.qos("response"), false, payload)
		token.Wait()
		if err = token.Error(); err == nil {
			r.logger.Debugf("replied on %s", topic)
			return nil
		}
		r.logger.Errorf("publish attempt %d failed: %v", attempt+1, err)
		if attempt < r.cfg.MaxRetries {
			r.sleep(r.backoff * time.Duration(1<<attempt))
		}
	}
	return err
}
