package calculator

import (
	"math"

	"github.com/kilianp07/gigwage/core/model"
)

// Compute turns a week of validated driver inputs into the take-home
// breakdown. It has no side effects and is safe for concurrent use.
//
// Inputs outside the validator's domain (negative hours, for instance) yield
// unspecified results; callers are expected to run validation first.
func Compute(in model.Inputs) model.Results {
	var gasCost, depreciationCost, vehicleCosts float64

	if in.Mode == model.ModeIRS {
		vehicleCosts = in.MilesDriven * in.IRSMileageRate
	} else {
		if in.MPG > 0 {
			gasCost = (in.MilesDriven / in.MPG) * in.GasPrice
		}
		depreciationCost = in.MilesDriven * in.DepreciationRate
		vehicleCosts = gasCost + depreciationCost
	}

	// Costs above earnings floor the taxable base at zero.
	profitBeforeTax := math.Max(0, in.GrossEarnings-vehicleCosts)
	estimatedTaxes := profitBeforeTax * (in.TaxRate / 100)
	netProfit := math.Max(0, profitBeforeTax-estimatedTaxes)

	var appHourly, realHourly float64
	if in.HoursOnline > 0 {
		appHourly = in.GrossEarnings / in.HoursOnline
		realHourly = netProfit / in.HoursOnline
	}

	var percentageLost float64
	if in.GrossEarnings > 0 {
		percentageLost = (in.GrossEarnings - netProfit) / in.GrossEarnings * 100
	}

	return model.Results{
		GrossEarnings:    in.GrossEarnings,
		HoursWorked:      in.HoursOnline,
		MilesDriven:      in.MilesDriven,
		Mode:             in.Mode,
		GasCost:          Round2(gasCost),
		DepreciationCost: Round2(depreciationCost),
		VehicleCosts:     Round2(vehicleCosts),
		ProfitBeforeTax:  Round2(profitBeforeTax),
		EstimatedTaxes:   Round2(estimatedTaxes),
		NetProfit:        Round2(netProfit),
		AppHourlyRate:    Round2(appHourly),
		RealHourlyProfit: Round2(realHourly),
		HourlyDifference: Round2(appHourly - realHourly),
		PercentageLost:   Round2(percentageLost),
	}
}

// Round2 rounds to cents, ties away from zero.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
