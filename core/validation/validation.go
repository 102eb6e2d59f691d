// Package validation guards the calculator: it rejects out-of-range inputs
// with one descriptive error per offending field so that calculator.Compute
// only ever sees values inside its domain.
package validation

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/kilianp07/gigwage/core/model"
)

// FieldError describes a single violated constraint.
type FieldError struct {
	// Field is the JSON name of the input, e.g. "hoursOnline".
	Field string `json:"field"`
	// Constraint is the rule that failed, e.g. "gte=0.1".
	Constraint string `json:"constraint"`
	// Message is a human readable explanation.
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s (%s)", e.Field, e.Message, e.Constraint)
}

// Errors aggregates every violation found in one set of inputs.
type Errors []FieldError

func (e Errors) Error() string {
	parts := make([]string, len(e))
	for i, fe := range e {
		parts[i] = fe.Error()
	}
	return "invalid inputs: " + strings.Join(parts, "; ")
}

// Fields returns the names of the offending fields in report order.
func (e Errors) Fields() []string {
	out := make([]string, len(e))
	for i, fe := range e {
		out[i] = fe.Field
	}
	return out
}

var messages = map[string]string{
	"grossEarnings":    "Earnings must be positive",
	"hoursOnline":      "Hours must be greater than 0",
	"milesDriven":      "Miles must be positive",
	"mpg":              "MPG must be at least 1",
	"gasPrice":         "Gas price must be positive",
	"irsMileageRate":   "Mileage rate must be positive",
	"depreciationRate": "Depreciation rate must be positive",
	"taxRate":          "Tax rate must be between 0-100",
	"calculationMode":  "Calculation mode must be irs or actual",
}

// Validator checks calculator inputs. The zero value is not usable; call New.
type Validator struct {
	v *validator.Validate
}

// New builds a Validator reporting fields by their JSON names.
func New() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	// Registration only fails for an empty tag or nil func.
	_ = v.RegisterValidation("finite", func(fl validator.FieldLevel) bool {
		f := fl.Field().Float()
		return !math.IsNaN(f) && !math.IsInf(f, 0)
	})
	return &Validator{v: v}
}

// Validate returns nil when in is safe to compute, or Errors otherwise.
func (val *Validator) Validate(in model.Inputs) error {
	err := val.v.Struct(in)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate inputs: %w", err)
	}
	out := make(Errors, 0, len(verrs))
	for _, fe := range verrs {
		constraint := fe.Tag()
		if fe.Param() != "" {
			constraint += "=" + fe.Param()
		}
		msg, ok := messages[fe.Field()]
		if !ok {
			msg = fmt.Sprintf("failed %s", constraint)
		}
		out = append(out, FieldError{Field: fe.Field(), Constraint: constraint, Message: msg})
	}
	return out
}

var std = New()

// Validate checks in with a shared Validator.
func Validate(in model.Inputs) error { return std.Validate(in) }
