package cmd

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kilianp07/gigwage/core/calculator"
	"github.com/kilianp07/gigwage/core/events"
	"github.com/kilianp07/gigwage/core/model"
	"github.com/kilianp07/gigwage/core/report"
	"github.com/kilianp07/gigwage/core/summary"
	"github.com/kilianp07/gigwage/infra/logger"
	"github.com/kilianp07/gigwage/pkg/batch"
	"github.com/kilianp07/gigwage/pkg/export"
)

var (
	batchFormat string
	batchOutput string
)

var batchCmd = &cobra.Command{
	Use:   "batch FILE",
	Short: "Compute several weeks from a YAML, JSON or CSV file",
	Args:  cobra.ExactArgs(1),
	RunE:  runBatch,
}

func init() {
	batchCmd.Flags().StringVarP(&batchFormat, "format", "f", "table", "output format: table, csv or json")
	batchCmd.Flags().StringVarP(&batchOutput, "output", "o", "", "write to this file instead of stdout")
	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	switch batchFormat {
	case "table", "csv", "json":
	default:
		return fmt.Errorf("unknown format %q", batchFormat)
	}
	weeks, err := batch.Load(args[0], cfg.Defaults)
	if err != nil {
		return err
	}

	svc := calculator.NewService(nil, logger.NewWithWriter(cmd.ErrOrStderr(), "batch"))
	rows := make([]export.Row, 0, len(weeks))
	for _, w := range weeks {
		calc, err := svc.Calculate(events.SourceBatch, w.Inputs)
		if err != nil {
			return fmt.Errorf("%s: %w", w.Label, err)
		}
		rows = append(rows, export.Row{Label: w.Label, Results: calc.Results})
	}

	if batchOutput == "" {
		return writeBatch(cmd.OutOrStdout(), batchFormat, rows)
	}
	f, err := os.Create(batchOutput)
	if err != nil {
		return err
	}
	if err := writeBatch(f, batchFormat, rows); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func writeBatch(w io.Writer, format string, rows []export.Row) error {
	results := make([]model.Results, len(rows))
	for i, r := range rows {
		results[i] = r.Results
	}
	sum := summary.Summarize(results)
	switch format {
	case "csv":
		return export.WriteCSV(w, rows)
	case "json":
		return export.WriteJSON(w, rows, sum)
	}
	return writeTable(w, rows, sum)
}

func writeTable(w io.Writer, rows []export.Row, sum summary.Summary) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "WEEK\tMODE\tGROSS\tNET\tAPP/HR\tREAL/HR\tLOST\t")
	for _, r := range rows {
		res := r.Results
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t\n", r.Label, res.Mode,
			report.FormatCurrency(res.GrossEarnings), report.FormatCurrency(res.NetProfit),
			report.FormatCurrency(res.AppHourlyRate), report.FormatCurrency(res.RealHourlyProfit),
			report.FormatPercentage(res.PercentageLost))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if sum.Weeks == 0 {
		return nil
	}
	_, err := fmt.Fprintf(w, "\n%d weeks: gross %s, net %s over %.1f h, real hourly %s (mean %s ± %s), %s lost on average, best %s, worst %s\n",
		sum.Weeks, report.FormatCurrency(sum.TotalGross), report.FormatCurrency(sum.TotalNet), sum.TotalHours,
		report.FormatCurrency(sum.OverallRealHourly), report.FormatCurrency(sum.MeanRealHourly),
		report.FormatCurrency(sum.StdDevRealHourly), report.FormatPercentage(sum.MeanPercentageLost),
		rows[sum.BestWeek].Label, rows[sum.WorstWeek].Label)
	return err
}
