package report

import (
	"errors"

	"github.com/kilianp07/gigwage/core/model"
	"github.com/kilianp07/gigwage/core/validation"
)

// Envelope is the payload returned for an accepted calculation over HTTP
// and MQTT.
type Envelope struct {
	CalculationID string        `json:"calculation_id"`
	Results       model.Results `json:"results"`
	Insights      Insights      `json:"insights"`
}

// NewEnvelope wraps res with its display insights.
func NewEnvelope(id string, res model.Results) Envelope {
	return Envelope{CalculationID: id, Results: res, Insights: Analyze(res)}
}

// ErrorBody is the payload returned for refused input.
type ErrorBody struct {
	Status  string                  `json:"status"`
	Message string                  `json:"message"`
	Errors  []validation.FieldError `json:"errors,omitempty"`
}

// NewErrorBody describes err. Validation failures list every offending
// field; anything else carries only its message.
func NewErrorBody(err error) ErrorBody {
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		return ErrorBody{Status: "error", Message: "invalid calculation inputs", Errors: verrs}
	}
	return ErrorBody{Status: "error", Message: err.Error()}
}
