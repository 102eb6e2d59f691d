package calculator

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/kilianp07/gigwage/core/events"
	"github.com/kilianp07/gigwage/core/logger"
	"github.com/kilianp07/gigwage/core/model"
	"github.com/kilianp07/gigwage/core/validation"
	"github.com/kilianp07/gigwage/internal/eventbus"
)

// Calculation is one accepted computation.
type Calculation struct {
	ID      string        `json:"calculation_id"`
	Results model.Results `json:"results"`
}

// Service validates inputs, computes the breakdown and announces the outcome
// on the event bus. A nil bus disables publishing.
type Service struct {
	validator *validation.Validator
	bus       eventbus.EventBus
	log       logger.Logger
	now       func() time.Time
	newID     func() string
}

// NewService builds a Service. log must not be nil.
func NewService(bus eventbus.EventBus, log logger.Logger) *Service {
	return &Service{
		validator: validation.New(),
		bus:       bus,
		log:       log,
		now:       time.Now,
		newID:     uuid.NewString,
	}
}

// Calculate runs validation then Compute. Validation failures are returned
// as validation.Errors.
func (s *Service) Calculate(src events.Source, in model.Inputs) (Calculation, error) {
	if err := s.validator.Validate(in); err != nil {
		var verrs validation.Errors
		if errors.As(err, &verrs) {
			s.log.Warnf("%s calculation rejected: %v", src, err)
			s.publish(events.RejectedEvent{Source: src, Fields: verrs.Fields(), Time: s.now()})
		}
		return Calculation{}, err
	}

	calc := Calculation{ID: s.newID(), Results: Compute(in)}
	s.log.Debugw("calculation completed", map[string]any{
		"id":             calc.ID,
		"source":         string(src),
		"mode":           string(in.Mode),
		"net_profit":     calc.Results.NetProfit,
		"percentageLost": calc.Results.PercentageLost,
	})
	s.publish(events.CalculationEvent{
		ID:      calc.ID,
		Source:  src,
		Inputs:  in,
		Results: calc.Results,
		Time:    s.now(),
	})
	return calc, nil
}

func (s *Service) publish(ev eventbus.Event) {
	if s.bus != nil {
		s.bus.Publish(ev)
	}
}
