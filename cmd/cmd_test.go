package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/gigwage/core/model"
	"github.com/kilianp07/gigwage/core/report"
	"github.com/kilianp07/gigwage/pkg/export"
)

// execute runs the root command with args and returns stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	calcOpts = calcFlags{}
	batchFormat, batchOutput = "table", ""
	for _, c := range []string{"gross", "hours", "miles", "mpg", "gas-price", "irs-rate", "depreciation", "tax-rate", "mode", "json"} {
		if fl := calcCmd.Flags().Lookup(c); fl != nil {
			fl.Changed = false
		}
	}
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestCalc_Table(t *testing.T) {
	out, err := execute(t, "calc", "--gross", "800", "--hours", "40", "--miles", "500", "--mode", "IRS")
	require.NoError(t, err)
	assert.Contains(t, out, "$9.85/hr")
	assert.Contains(t, out, "$393.86")
	assert.Contains(t, out, "! 51% of your earnings go to expenses")
}

func TestCalc_JSON(t *testing.T) {
	out, err := execute(t, "calc", "--gross", "800", "--hours", "40", "--miles", "500", "--json")
	require.NoError(t, err)

	var env report.Envelope
	require.NoError(t, json.Unmarshal([]byte(out), &env))
	assert.Equal(t, model.ModeActual, env.Results.Mode)
	assert.InDelta(t, 13.34, env.Results.RealHourlyProfit, 1e-9)
}

func TestCalc_NotReady(t *testing.T) {
	out, err := execute(t, "calc", "--gross", "800")
	require.NoError(t, err)
	assert.Contains(t, out, "Enter your weekly earnings")
}

func TestCalc_Invalid(t *testing.T) {
	_, err := execute(t, "calc", "--gross", "800", "--hours", "40", "--miles", "500", "--tax-rate", "150")
	assert.ErrorContains(t, err, "taxRate")

	_, err = execute(t, "calc", "--mode", "lease")
	assert.ErrorContains(t, err, "unknown calculation mode")
}

func TestBatch_Formats(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "weeks.csv")
	require.NoError(t, os.WriteFile(path, []byte("label,grossEarnings,hoursOnline,milesDriven,calculationMode\n"+
		"w1,800,40,500,actual\n"+
		"w2,800,40,500,irs\n"), 0o600))

	out, err := execute(t, "batch", path)
	require.NoError(t, err)
	assert.Contains(t, out, "2 weeks")
	assert.Contains(t, out, "best w1, worst w2")

	out, err = execute(t, "batch", path, "--format", "csv")
	require.NoError(t, err)
	assert.Contains(t, out, "w2,irs,800,40,500,0,0,335")

	dest := filepath.Join(dir, "out.json")
	_, err = execute(t, "batch", path, "-f", "json", "-o", dest)
	require.NoError(t, err)
	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	var rep export.Report
	require.NoError(t, json.Unmarshal(data, &rep))
	assert.Len(t, rep.Weeks, 2)
	assert.InDelta(t, 927.47, rep.Summary.TotalNet, 1e-9)
}

func TestBatch_Errors(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "weeks.yaml")
	require.NoError(t, os.WriteFile(path, []byte("- label: broken\n  grossEarnings: 10\n  hoursOnline: 0\n"), 0o600))

	_, err := execute(t, "batch", path)
	assert.ErrorContains(t, err, "broken")

	_, err = execute(t, "batch", path, "--format", "xml")
	assert.ErrorContains(t, err, "unknown format")
}
