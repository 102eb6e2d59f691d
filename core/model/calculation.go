package model

import (
	"fmt"
	"strings"
)

// CalculationMode selects how vehicle costs are accounted for.
type CalculationMode string

const (
	// ModeIRS applies the IRS standard mileage rate, which bundles gas,
	// depreciation, maintenance and insurance into one per-mile figure.
	ModeIRS CalculationMode = "irs"
	// ModeActual computes gas from MPG and local price plus a separate
	// per-mile wear estimate.
	ModeActual CalculationMode = "actual"
)

// Valid reports whether m is a known mode.
func (m CalculationMode) Valid() bool {
	return m == ModeIRS || m == ModeActual
}

func (m CalculationMode) String() string { return string(m) }

// ParseMode converts user input such as "IRS" or " actual " into a mode.
func ParseMode(s string) (CalculationMode, error) {
	m := CalculationMode(strings.ToLower(strings.TrimSpace(s)))
	if !m.Valid() {
		return "", fmt.Errorf("unknown calculation mode %q", s)
	}
	return m, nil
}

// Inputs holds one week of driver data plus the cost assumptions to apply.
type Inputs struct {
	GrossEarnings    float64         `json:"grossEarnings" yaml:"grossEarnings" validate:"finite,gte=0"`
	HoursOnline      float64         `json:"hoursOnline" yaml:"hoursOnline" validate:"finite,gte=0.1"`
	MilesDriven      float64         `json:"milesDriven" yaml:"milesDriven" validate:"finite,gte=0"`
	MPG              float64         `json:"mpg" yaml:"mpg" validate:"finite,gte=1"`
	GasPrice         float64         `json:"gasPrice" yaml:"gasPrice" validate:"finite,gte=0"`
	IRSMileageRate   float64         `json:"irsMileageRate" yaml:"irsMileageRate" validate:"finite,gte=0"`
	DepreciationRate float64         `json:"depreciationRate" yaml:"depreciationRate" validate:"finite,gte=0"`
	TaxRate          float64         `json:"taxRate" yaml:"taxRate" validate:"finite,gte=0,lte=100"`
	Mode             CalculationMode `json:"calculationMode" yaml:"calculationMode" validate:"oneof=irs actual"`
}

// Results is the breakdown produced for a set of Inputs. Derived amounts are
// rounded to cents. GasCost and DepreciationCost are zero in IRS mode.
type Results struct {
	GrossEarnings float64         `json:"grossEarnings"`
	HoursWorked   float64         `json:"hoursWorked"`
	MilesDriven   float64         `json:"milesDriven"`
	Mode          CalculationMode `json:"calculationMode"`

	GasCost          float64 `json:"gasCost"`
	DepreciationCost float64 `json:"depreciationCost"`
	VehicleCosts     float64 `json:"vehicleCosts"`
	ProfitBeforeTax  float64 `json:"profitBeforeTax"`
	EstimatedTaxes   float64 `json:"estimatedTaxes"`

	NetProfit        float64 `json:"netProfit"`
	AppHourlyRate    float64 `json:"appHourlyRate"`
	RealHourlyProfit float64 `json:"realHourlyProfit"`

	HourlyDifference float64 `json:"hourlyDifference"`
	PercentageLost   float64 `json:"percentageLost"`
}

// DefaultInputs mirrors the calculator form defaults: a 25 mpg car, $3.50 gas,
// the 2024 IRS rate, $0.20/mi wear and the 15.3% self-employment tax.
func DefaultInputs() Inputs {
	return Inputs{
		MPG:              25,
		GasPrice:         3.5,
		IRSMileageRate:   0.67,
		DepreciationRate: 0.2,
		TaxRate:          15.3,
		Mode:             ModeActual,
	}
}
