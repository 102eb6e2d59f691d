package report

import (
	"fmt"
	"io"
	"math"
	"text/tabwriter"

	"github.com/shopspring/decimal"

	"github.com/kilianp07/gigwage/core/model"
)

// SignificantLossThreshold is the share of gross earnings, in percent, above
// which the loss is called out to the driver.
const SignificantLossThreshold = 30.0

// Ready reports whether in carries enough data to be worth computing: the
// form stays empty until earnings, hours and miles are all filled in.
func Ready(in model.Inputs) bool {
	return in.GrossEarnings > 0 && in.HoursOnline > 0 && in.MilesDriven > 0
}

// Insights summarises a result for display.
type Insights struct {
	SignificantLoss bool   `json:"significantLoss"`
	Headline        string `json:"headline,omitempty"`
	// LostPercentage is the whole-number share of the app hourly rate lost
	// to expenses and tax.
	LostPercentage int `json:"lostPercentage"`
	// GrossBarHeight and NetBarHeight scale the two hourly rates against the
	// larger of them, in percent.
	GrossBarHeight float64 `json:"grossBarHeight"`
	NetBarHeight   float64 `json:"netBarHeight"`
}

// Analyze derives the display insights for res.
func Analyze(res model.Results) Insights {
	var ins Insights
	if res.PercentageLost > SignificantLossThreshold {
		ins.SignificantLoss = true
		ins.Headline = fmt.Sprintf("%s%% of your earnings go to expenses",
			decimal.NewFromFloat(res.PercentageLost).StringFixed(0))
	}

	gross, net := res.AppHourlyRate, res.RealHourlyProfit
	if gross > 0 {
		ins.LostPercentage = int(math.Round((gross - net) / gross * 100))
	}
	if top := math.Max(gross, net); top > 0 {
		ins.GrossBarHeight = gross / top * 100
		ins.NetBarHeight = net / top * 100
	}
	return ins
}

// LineKind classifies a breakdown row.
type LineKind string

const (
	LineIncome  LineKind = "income"
	LineExpense LineKind = "expense"
	LineTotal   LineKind = "total"
)

// Line is one row of the "where your money goes" breakdown. Expenses carry a
// negative Amount.
type Line struct {
	Label  string   `json:"label"`
	Amount float64  `json:"amount"`
	Kind   LineKind `json:"kind"`
}

// Breakdown lists the rows explaining how gross earnings became take-home
// pay. Cost rows depend on the calculation mode.
func Breakdown(in model.Inputs, res model.Results) []Line {
	lines := []Line{{Label: "Gross Weekly Earnings", Amount: res.GrossEarnings, Kind: LineIncome}}
	miles := formatNumber(res.MilesDriven)
	if res.Mode == model.ModeActual {
		lines = append(lines,
			Line{
				Label:  fmt.Sprintf("Gas Cost (%s mi ÷ %s mpg × $%s)", miles, formatNumber(in.MPG), formatNumber(in.GasPrice)),
				Amount: -res.GasCost,
				Kind:   LineExpense,
			},
			Line{
				Label:  fmt.Sprintf("Wear & Tear (%s mi × $%s/mi)", miles, formatNumber(in.DepreciationRate)),
				Amount: -res.DepreciationCost,
				Kind:   LineExpense,
			},
		)
	} else {
		lines = append(lines, Line{
			Label:  fmt.Sprintf("Vehicle Costs (%s mi × $%s/mi)", miles, formatNumber(in.IRSMileageRate)),
			Amount: -res.VehicleCosts,
			Kind:   LineExpense,
		})
	}
	lines = append(lines,
		Line{Label: fmt.Sprintf("Self-Employment Tax (%s%%)", formatNumber(in.TaxRate)), Amount: -res.EstimatedTaxes, Kind: LineExpense},
		Line{Label: "Your Actual Take-Home", Amount: res.NetProfit, Kind: LineTotal},
	)
	return lines
}

// Render writes a plain-text report for in and res to w.
func Render(w io.Writer, in model.Inputs, res model.Results) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	rows := [][2]string{
		{"What apps show you", FormatCurrency(res.AppHourlyRate) + "/hr"},
		{"What you actually make", FormatCurrency(res.RealHourlyProfit) + "/hr"},
		{"Difference", FormatCurrency(res.HourlyDifference) + "/hr"},
		{"", ""},
	}
	for _, l := range Breakdown(in, res) {
		rows = append(rows, [2]string{l.Label, FormatCurrency(l.Amount)})
	}
	rows = append(rows, [2]string{"Lost to expenses", FormatPercentage(res.PercentageLost)})
	for _, r := range rows {
		if _, err := fmt.Fprintf(tw, "%s\t%s\t\n", r[0], r[1]); err != nil {
			return err
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if ins := Analyze(res); ins.SignificantLoss {
		if _, err := fmt.Fprintf(w, "\n! %s\n", ins.Headline); err != nil {
			return err
		}
	}
	return nil
}
