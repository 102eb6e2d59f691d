package calculator

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/gigwage/core/model"
)

const eps = 1e-9

func weekInputs(mode model.CalculationMode) model.Inputs {
	return model.Inputs{
		GrossEarnings:    800,
		HoursOnline:      40,
		MilesDriven:      500,
		MPG:              25,
		GasPrice:         3.5,
		IRSMileageRate:   0.67,
		DepreciationRate: 0.2,
		TaxRate:          15.3,
		Mode:             mode,
	}
}

func TestCompute_IRSMode(t *testing.T) {
	res := Compute(weekInputs(model.ModeIRS))

	assert.InDelta(t, 335.00, res.VehicleCosts, eps)
	assert.InDelta(t, 465.00, res.ProfitBeforeTax, eps)
	assert.InDelta(t, 71.15, res.EstimatedTaxes, eps)
	// 465 - 71.145 = 393.855, which rounds half away from zero.
	assert.InDelta(t, 393.86, res.NetProfit, eps)
	assert.InDelta(t, 20.00, res.AppHourlyRate, eps)
	assert.InDelta(t, 9.85, res.RealHourlyProfit, eps)
	assert.InDelta(t, 10.15, res.HourlyDifference, eps)
	assert.InDelta(t, 50.77, res.PercentageLost, eps)
	assert.Zero(t, res.GasCost)
	assert.Zero(t, res.DepreciationCost)
}

func TestCompute_ActualMode(t *testing.T) {
	res := Compute(weekInputs(model.ModeActual))

	assert.InDelta(t, 70.00, res.GasCost, eps)
	assert.InDelta(t, 100.00, res.DepreciationCost, eps)
	assert.InDelta(t, 170.00, res.VehicleCosts, eps)
	assert.InDelta(t, 630.00, res.ProfitBeforeTax, eps)
	assert.InDelta(t, 96.39, res.EstimatedTaxes, eps)
	assert.InDelta(t, 533.61, res.NetProfit, eps)
	assert.InDelta(t, 20.00, res.AppHourlyRate, eps)
	assert.InDelta(t, 13.34, res.RealHourlyProfit, eps)
	assert.InDelta(t, 6.66, res.HourlyDifference, eps)
	assert.InDelta(t, 33.30, res.PercentageLost, eps)
}

func TestCompute_EchoesInputs(t *testing.T) {
	in := weekInputs(model.ModeActual)
	res := Compute(in)
	assert.Equal(t, in.GrossEarnings, res.GrossEarnings)
	assert.Equal(t, in.HoursOnline, res.HoursWorked)
	assert.Equal(t, in.MilesDriven, res.MilesDriven)
	assert.Equal(t, in.Mode, res.Mode)
}

func TestCompute_ZeroEarnings(t *testing.T) {
	for _, mode := range []model.CalculationMode{model.ModeIRS, model.ModeActual} {
		t.Run(string(mode), func(t *testing.T) {
			in := weekInputs(mode)
			in.GrossEarnings = 0
			in.HoursOnline = 10
			in.MilesDriven = 0
			res := Compute(in)
			assert.Zero(t, res.VehicleCosts)
			assert.Zero(t, res.NetProfit)
			assert.Zero(t, res.AppHourlyRate)
			assert.Zero(t, res.RealHourlyProfit)
			assert.Zero(t, res.PercentageLost)
		})
	}
}

func TestCompute_ExpensesAboveEarningsClampToZero(t *testing.T) {
	in := weekInputs(model.ModeIRS)
	in.GrossEarnings = 100
	in.MilesDriven = 1000

	res := Compute(in)

	assert.InDelta(t, 670.00, res.VehicleCosts, eps)
	assert.Zero(t, res.ProfitBeforeTax)
	assert.Zero(t, res.EstimatedTaxes)
	assert.Zero(t, res.NetProfit)
	assert.Zero(t, res.RealHourlyProfit)
	assert.InDelta(t, 100.00, res.PercentageLost, eps)
}

func TestCompute_ZeroMPGSkipsGas(t *testing.T) {
	in := weekInputs(model.ModeActual)
	in.MPG = 0

	res := Compute(in)

	assert.Zero(t, res.GasCost)
	assert.InDelta(t, 100.00, res.DepreciationCost, eps)
	assert.InDelta(t, 100.00, res.VehicleCosts, eps)
	assert.False(t, math.IsNaN(res.NetProfit))
}

func TestCompute_ZeroHours(t *testing.T) {
	in := weekInputs(model.ModeActual)
	in.HoursOnline = 0

	res := Compute(in)

	assert.Zero(t, res.AppHourlyRate)
	assert.Zero(t, res.RealHourlyProfit)
	assert.Zero(t, res.HourlyDifference)
	assert.False(t, math.IsInf(res.AppHourlyRate, 0))
}

func TestCompute_UnknownModeUsesActualCosts(t *testing.T) {
	in := weekInputs("")
	res := Compute(in)
	assert.InDelta(t, 70.00, res.GasCost, eps)
}

func TestCompute_ActualCostsRoundedOnce(t *testing.T) {
	in := model.Inputs{
		GrossEarnings:    100,
		HoursOnline:      10,
		MilesDriven:      1,
		MPG:              1,
		GasPrice:         0.005,
		DepreciationRate: 0.005,
		Mode:             model.ModeActual,
	}

	res := Compute(in)

	assert.InDelta(t, 0.01, res.VehicleCosts, eps)
	assert.InDelta(t, 99.99, res.ProfitBeforeTax, eps)
	assert.InDelta(t, res.GrossEarnings-res.VehicleCosts, res.ProfitBeforeTax, eps)
}

func randomInputs(r *rand.Rand) model.Inputs {
	mode := model.ModeIRS
	if r.Intn(2) == 0 {
		mode = model.ModeActual
	}
	return model.Inputs{
		GrossEarnings:    r.Float64() * 3000,
		HoursOnline:      0.1 + r.Float64()*80,
		MilesDriven:      r.Float64() * 2500,
		MPG:              1 + r.Float64()*60,
		GasPrice:         r.Float64() * 8,
		IRSMileageRate:   r.Float64() * 1.5,
		DepreciationRate: r.Float64() * 0.8,
		TaxRate:          r.Float64() * 100,
		Mode:             mode,
	}
}

func hasAtMostTwoDecimals(v float64) bool {
	return math.Abs(v*100-math.Round(v*100)) < 1e-6
}

func TestCompute_Properties(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	for i := 0; i < 2000; i++ {
		in := randomInputs(r)
		res := Compute(in)

		require.Equal(t, res, Compute(in), "idempotence for %+v", in)
		require.GreaterOrEqual(t, res.NetProfit, 0.0)
		require.GreaterOrEqual(t, res.ProfitBeforeTax, 0.0)
		require.LessOrEqual(t, res.NetProfit, Round2(in.GrossEarnings)+eps)
		require.GreaterOrEqual(t, res.HourlyDifference, 0.0)

		if in.Mode == model.ModeIRS {
			require.Zero(t, res.GasCost)
			require.Zero(t, res.DepreciationCost)
			require.InDelta(t, Round2(in.MilesDriven*in.IRSMileageRate), res.VehicleCosts, eps)
		} else {
			// Parts are rounded on their own, so their sum may drift by a cent.
			require.InDelta(t, res.GasCost+res.DepreciationCost, res.VehicleCosts, 0.01+eps)
			if res.ProfitBeforeTax > 0 {
				require.InDelta(t, in.GrossEarnings-res.VehicleCosts, res.ProfitBeforeTax, 0.01+eps)
			}
		}

		require.InDelta(t, Round2(in.GrossEarnings/in.HoursOnline), res.AppHourlyRate, eps)

		for name, v := range map[string]float64{
			"gasCost":          res.GasCost,
			"depreciationCost": res.DepreciationCost,
			"vehicleCosts":     res.VehicleCosts,
			"estimatedTaxes":   res.EstimatedTaxes,
			"netProfit":        res.NetProfit,
			"appHourlyRate":    res.AppHourlyRate,
			"realHourlyProfit": res.RealHourlyProfit,
			"hourlyDifference": res.HourlyDifference,
			"percentageLost":   res.PercentageLost,
		} {
			require.True(t, hasAtMostTwoDecimals(v), "%s=%v has more than two decimals", name, v)
		}
	}
}

func TestRound2(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{0, 0},
		{1.125, 1.13},
		{-1.125, -1.13},
		{0.125, 0.13},
		{2.675000001, 2.68},
		{9.846375, 9.85},
		{13.34025, 13.34},
		{-0.004, 0},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, Round2(tt.in), eps, "Round2(%v)", tt.in)
	}
}
