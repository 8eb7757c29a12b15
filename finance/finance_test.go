package finance

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFutureValue(t *testing.T) {
	tests := []struct {
		name      string
		monthly   float64
		rate      float64
		years     float64
		want      float64
		tolerance float64
	}{
		{
			name:    "one year at 12 percent",
			monthly: 1000, rate: 12, years: 1,
			// r = 0.01, n = 12: 1000 * ((1.01^12 - 1) / 0.01) * 1.01
			want:      12809.33,
			tolerance: 0.01,
		},
		{
			name:    "ten years at 12 percent",
			monthly: 5000, rate: 12, years: 10,
			want:      1161695.38,
			tolerance: 0.5,
		},
		{
			name:    "zero rate is a plain sum",
			monthly: 2500, rate: 0, years: 3,
			want:      90000,
			tolerance: 1e-9,
		},
		{
			name:    "zero years",
			monthly: 2500, rate: 12, years: 0,
			want:      0,
			tolerance: 1e-9,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, FutureValue(tt.monthly, tt.rate, tt.years), tt.tolerance)
		})
	}
}

func TestFutureValue_ZeroRateIsContributionTimesMonths(t *testing.T) {
	for _, x := range []float64{1, 500, 12345.67} {
		for _, years := range []float64{0.5, 1, 7, 25} {
			assert.InDelta(t, x*years*12, FutureValue(x, 0, years), 1e-6)
		}
	}
}

func TestRequiredSIP_RoundTrip(t *testing.T) {
	for _, x := range []float64{100, 5000, 75000} {
		for _, rate := range []float64{1, 8, 12, 18.5} {
			for _, years := range []float64{0.5, 3, 10, 30} {
				fv := FutureValue(x, rate, years)
				assert.InDelta(t, x, RequiredSIP(fv, rate, years), 1e-6*x,
					"x=%v rate=%v years=%v", x, rate, years)
			}
		}
	}
}

func TestRequiredSIP_Degenerate(t *testing.T) {
	// zero rate spreads the target over n months
	assert.InDelta(t, 1000.0, RequiredSIP(120000, 0, 10), 1e-9)
	// zero years divides by one
	assert.InDelta(t, 120000.0, RequiredSIP(120000, 12, 0), 1e-9)
}

func TestRequiredSIP_GoalPlannerDefaults(t *testing.T) {
	// 25 lakh in 8 years at 12%
	sip := RequiredSIP(2500000, 12, 8)
	assert.InDelta(t, 15477.0, math.Round(sip), 1)
	assert.InDelta(t, 2500000.0, FutureValue(sip, 12, 8), 1e-3)
}

func TestEstimateYearsToGoal(t *testing.T) {
	t.Run("reachable target", func(t *testing.T) {
		years := EstimateYearsToGoal(5000, 2500000, 12)

		// first half-year step whose corpus clears the target
		assert.Equal(t, 15.0, years)
		assert.GreaterOrEqual(t, FutureValue(5000, 12, years), 2500000.0)
		assert.Less(t, FutureValue(5000, 12, years-GoalScanStep), 2500000.0)
	})

	t.Run("unreachable target returns ceiling", func(t *testing.T) {
		assert.Equal(t, GoalScanCeiling, EstimateYearsToGoal(100, 1e12, 12))
	})

	t.Run("already reached in the first year", func(t *testing.T) {
		assert.Equal(t, GoalScanStart, EstimateYearsToGoal(100000, 1000, 12))
	})

	t.Run("non-positive inputs", func(t *testing.T) {
		assert.Zero(t, EstimateYearsToGoal(0, 2500000, 12))
		assert.Zero(t, EstimateYearsToGoal(5000, 0, 12))
		assert.Zero(t, EstimateYearsToGoal(-1, 2500000, 12))
	})

	t.Run("zero rate uses simple sum", func(t *testing.T) {
		// 1000 * 12 * years >= 30000 first at 2.5 years
		assert.Equal(t, 2.5, EstimateYearsToGoal(1000, 30000, 0))
	})
}

func TestXIRRApprox(t *testing.T) {
	assert.InDelta(t, 10.0, XIRRApprox(100, 121, 2), 1e-9)
	assert.InDelta(t, -50.0, XIRRApprox(100, 50, 1), 1e-9)
	assert.Zero(t, XIRRApprox(0, 121, 2))
	assert.Zero(t, XIRRApprox(100, 0, 2))
	assert.Zero(t, XIRRApprox(100, 121, 0))

	v := XIRRApprox(100, -20, 3)
	assert.False(t, math.IsNaN(v))
	assert.Zero(t, v)
}

func TestCapitalGainsTax(t *testing.T) {
	tests := []struct {
		name    string
		gains   float64
		holding HoldingPeriod
		elss    float64
		want    TaxEstimate
	}{
		{"long term above exemption", 180000, LongTerm, 120000, TaxEstimate{Tax: 8000, ELSSSavings: 36000}},
		{"long term under exemption", 90000, LongTerm, 0, TaxEstimate{Tax: 0, ELSSSavings: 0}},
		{"short term", 180000, ShortTerm, 200000, TaxEstimate{Tax: 27000, ELSSSavings: 45000}},
		{"unknown holding taxed short term", 1000, HoldingPeriod("Medium"), 0, TaxEstimate{Tax: 150}},
		{"negative inputs clamp", -5000, ShortTerm, -100, TaxEstimate{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CapitalGainsTax(tt.gains, tt.holding, tt.elss)
			assert.InDelta(t, tt.want.Tax, got.Tax, 1e-9)
			assert.InDelta(t, tt.want.ELSSSavings, got.ELSSSavings, 1e-9)
		})
	}
}

func TestStepUpSIP(t *testing.T) {
	assert.Equal(t, 5500.0, StepUpSIP(5000, 10))
	assert.Equal(t, 5000.0, StepUpSIP(5000, 0))
	assert.Equal(t, 1158.0, StepUpSIP(1111, 4.2))
}

func TestSimulatePath(t *testing.T) {
	path := SimulatePath(rand.NewPCG(7, 11), DefaultSteps)
	require.Len(t, path, DefaultSteps)
	assert.Equal(t, PathStart, path[0])

	for i := 1; i < len(path); i++ {
		assert.GreaterOrEqual(t, path[i], PathFloor)
		// a single step cannot move more than the shock bounds plus rounding
		assert.LessOrEqual(t, path[i], path[i-1]*(1+ShockMaxPct/100)+0.01)
		if path[i] > PathFloor {
			assert.GreaterOrEqual(t, path[i], path[i-1]*(1+ShockMinPct/100)-0.01)
		}
	}

	again := SimulatePath(rand.NewPCG(7, 11), DefaultSteps)
	assert.Equal(t, path, again, "same seed must reproduce the path")

	assert.Empty(t, SimulatePath(nil, 0))
}
