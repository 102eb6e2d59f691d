package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/goccy/go-json"

	"github.com/kilianp07/gigwage/core/model"
	"github.com/kilianp07/gigwage/core/summary"
)

// Row is one computed week.
type Row struct {
	Label   string        `json:"label"`
	Results model.Results `json:"results"`
}

// Report is the JSON document written for a batch run.
type Report struct {
	Weeks   []Row           `json:"weeks"`
	Summary summary.Summary `json:"summary"`
}

// WriteJSON writes the rows and their summary to w as indented JSON.
func WriteJSON(w io.Writer, rows []Row, sum summary.Summary) error {
	if rows == nil {
		rows = []Row{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(Report{Weeks: rows, Summary: sum})
}

var csvHeader = []string{
	"label", "calculationMode", "grossEarnings", "hoursWorked", "milesDriven",
	"gasCost", "depreciationCost", "vehicleCosts", "profitBeforeTax", "estimatedTaxes",
	"netProfit", "appHourlyRate", "realHourlyProfit", "hourlyDifference", "percentageLost",
}

// WriteCSV writes one line per row to w, preceded by a header.
func WriteCSV(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, row := range rows {
		r := row.Results
		rec := []string{row.Label, r.Mode.String()}
		for _, v := range []float64{
			r.GrossEarnings, r.HoursWorked, r.MilesDriven,
			r.GasCost, r.DepreciationCost, r.VehicleCosts, r.ProfitBeforeTax, r.EstimatedTaxes,
			r.NetProfit, r.AppHourlyRate, r.RealHourlyProfit, r.HourlyDifference, r.PercentageLost,
		} {
			rec = append(rec, strconv.FormatFloat(v, 'f', -1, 64))
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
