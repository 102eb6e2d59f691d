// Package calculate serves the calculator over HTTP.
package calculate

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/kilianp07/gigwage/core/calculator"
	"github.com/kilianp07/gigwage/core/events"
	"github.com/kilianp07/gigwage/core/logger"
	"github.com/kilianp07/gigwage/core/model"
	"github.com/kilianp07/gigwage/core/report"
	"github.com/kilianp07/gigwage/core/validation"
)

const maxBodyBytes = 64 << 10

// Calculator runs one validated calculation.
type Calculator interface {
	Calculate(src events.Source, in model.Inputs) (calculator.Calculation, error)
}

// NewHandler returns the POST /api/calculate handler. Fields absent from the
// request body keep their value from defaults.
func NewHandler(calc Calculator, defaults model.Inputs, log logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		in := defaults
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			writeJSON(w, http.StatusBadRequest, report.NewErrorBody(fmt.Errorf("malformed request body: %w", err)))
			return
		}

		res, err := calc.Calculate(events.SourceHTTP, in)
		if err != nil {
			var verrs validation.Errors
			if errors.As(err, &verrs) {
				writeJSON(w, http.StatusBadRequest, report.NewErrorBody(err))
				return
			}
			log.Errorf("calculate: %v", err)
			writeJSON(w, http.StatusInternalServerError, report.ErrorBody{Status: "error", Message: "internal error"})
			return
		}
		writeJSON(w, http.StatusOK, report.NewEnvelope(res.ID, res.Results))
	})
}

// NewDefaultsHandler returns the GET /api/defaults handler.
func NewDefaultsHandler(defaults model.Inputs) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, defaults)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
