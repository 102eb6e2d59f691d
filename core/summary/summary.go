// Package summary aggregates several weekly results, for example a month of
// driving loaded through the batch command.
package summary

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/kilianp07/gigwage/core/calculator"
	"github.com/kilianp07/gigwage/core/model"
)

// Summary describes a run of weeks. Money fields are rounded to cents.
type Summary struct {
	Weeks             int     `json:"weeks"`
	TotalGross        float64 `json:"totalGross"`
	TotalVehicleCosts float64 `json:"totalVehicleCosts"`
	TotalTaxes        float64 `json:"totalTaxes"`
	TotalNet          float64 `json:"totalNet"`
	TotalHours        float64 `json:"totalHours"`
	// OverallRealHourly is total net profit over total hours, which weights
	// long weeks more than MeanRealHourly does.
	OverallRealHourly  float64 `json:"overallRealHourly"`
	MeanRealHourly     float64 `json:"meanRealHourly"`
	StdDevRealHourly   float64 `json:"stdDevRealHourly"`
	MeanPercentageLost float64 `json:"meanPercentageLost"`
	// BestWeek and WorstWeek index the input slice by real hourly profit,
	// -1 when empty.
	BestWeek  int `json:"bestWeek"`
	WorstWeek int `json:"worstWeek"`
}

// Summarize aggregates results. An empty slice gives a zero Summary with
// BestWeek and WorstWeek set to -1.
func Summarize(results []model.Results) Summary {
	s := Summary{Weeks: len(results), BestWeek: -1, WorstWeek: -1}
	if len(results) == 0 {
		return s
	}

	gross := make([]float64, len(results))
	costs := make([]float64, len(results))
	taxes := make([]float64, len(results))
	net := make([]float64, len(results))
	hours := make([]float64, len(results))
	realHourly := make([]float64, len(results))
	lost := make([]float64, len(results))
	for i, r := range results {
		gross[i] = r.GrossEarnings
		costs[i] = r.VehicleCosts
		taxes[i] = r.EstimatedTaxes
		net[i] = r.NetProfit
		hours[i] = r.HoursWorked
		realHourly[i] = r.RealHourlyProfit
		lost[i] = r.PercentageLost
	}

	s.TotalGross = calculator.Round2(floats.Sum(gross))
	s.TotalVehicleCosts = calculator.Round2(floats.Sum(costs))
	s.TotalTaxes = calculator.Round2(floats.Sum(taxes))
	s.TotalNet = calculator.Round2(floats.Sum(net))
	s.TotalHours = floats.Sum(hours)
	if s.TotalHours > 0 {
		s.OverallRealHourly = calculator.Round2(floats.Sum(net) / s.TotalHours)
	}
	s.MeanRealHourly = calculator.Round2(stat.Mean(realHourly, nil))
	if len(realHourly) > 1 {
		s.StdDevRealHourly = calculator.Round2(stat.StdDev(realHourly, nil))
	}
	s.MeanPercentageLost = calculator.Round2(stat.Mean(lost, nil))
	s.BestWeek = floats.MaxIdx(realHourly)
	s.WorstWeek = floats.MinIdx(realHourly)
	return s
}
