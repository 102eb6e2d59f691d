package cmd

import (
	"fmt"
	"io"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/kilianp07/gigwage/core/calculator"
	"github.com/kilianp07/gigwage/core/events"
	"github.com/kilianp07/gigwage/core/model"
	"github.com/kilianp07/gigwage/core/report"
	"github.com/kilianp07/gigwage/infra/logger"
)

type calcFlags struct {
	gross, hours, miles              float64
	mpg, gasPrice, irsRate, wearRate float64
	taxRate                          float64
	mode                             string
	asJSON                           bool
}

var calcOpts calcFlags

var calcCmd = &cobra.Command{
	Use:   "calc",
	Short: "Compute the real hourly wage for one week",
	Example: "  gigwage calc --gross 800 --hours 40 --miles 500\n" +
		"  gigwage calc --gross 800 --hours 40 --miles 500 --mode irs --json",
	Args: cobra.NoArgs,
	RunE: runCalc,
}

func init() {
	f := calcCmd.Flags()
	f.Float64Var(&calcOpts.gross, "gross", 0, "gross weekly earnings shown by the apps")
	f.Float64Var(&calcOpts.hours, "hours", 0, "hours online")
	f.Float64Var(&calcOpts.miles, "miles", 0, "miles driven")
	f.Float64Var(&calcOpts.mpg, "mpg", 0, "vehicle fuel economy (actual mode)")
	f.Float64Var(&calcOpts.gasPrice, "gas-price", 0, "price per gallon (actual mode)")
	f.Float64Var(&calcOpts.irsRate, "irs-rate", 0, "IRS standard mileage rate (irs mode)")
	f.Float64Var(&calcOpts.wearRate, "depreciation", 0, "wear and tear per mile (actual mode)")
	f.Float64Var(&calcOpts.taxRate, "tax-rate", 0, "self-employment tax percentage")
	f.StringVar(&calcOpts.mode, "mode", "", "calculation mode: irs or actual")
	f.BoolVar(&calcOpts.asJSON, "json", false, "print the result as JSON")
	rootCmd.AddCommand(calcCmd)
}

// inputsFromFlags overrides defaults with the flags set on the command line.
func inputsFromFlags(f *pflag.FlagSet, o calcFlags, defaults model.Inputs) (model.Inputs, error) {
	in := defaults
	set := map[string]func(){
		"gross":        func() { in.GrossEarnings = o.gross },
		"hours":        func() { in.HoursOnline = o.hours },
		"miles":        func() { in.MilesDriven = o.miles },
		"mpg":          func() { in.MPG = o.mpg },
		"gas-price":    func() { in.GasPrice = o.gasPrice },
		"irs-rate":     func() { in.IRSMileageRate = o.irsRate },
		"depreciation": func() { in.DepreciationRate = o.wearRate },
		"tax-rate":     func() { in.TaxRate = o.taxRate },
	}
	for name, apply := range set {
		if f.Changed(name) {
			apply()
		}
	}
	if f.Changed("mode") {
		m, err := model.ParseMode(o.mode)
		if err != nil {
			return in, err
		}
		in.Mode = m
	}
	return in, nil
}

func runCalc(cmd *cobra.Command, _ []string) error {
	in, err := inputsFromFlags(cmd.Flags(), calcOpts, cfg.Defaults)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if !report.Ready(in) {
		_, err := fmt.Fprintln(out, "Enter your weekly earnings, hours and miles (--gross, --hours, --miles) to see your real hourly wage.")
		return err
	}

	svc := calculator.NewService(nil, logger.NewWithWriter(cmd.ErrOrStderr(), "cli"))
	calc, err := svc.Calculate(events.SourceCLI, in)
	if err != nil {
		return err
	}
	if calcOpts.asJSON {
		return writeJSON(out, report.NewEnvelope(calc.ID, calc.Results))
	}
	return report.Render(out, in, calc.Results)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
