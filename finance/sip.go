package finance

import "math"

// Goal scan parameters used by EstimateYearsToGoal.
const (
	GoalScanStart   = 1.0
	GoalScanStep    = 0.5
	GoalScanCeiling = 40.0
)

// monthlyRate converts an annual percentage into the per-month rate and the
// number of monthly periods in years.
func monthlyRate(annualRatePercent, years float64) (r, n float64) {
	return annualRatePercent / 12 / 100, years * 12
}

// FutureValue returns the corpus built by paying monthly at the start of
// every month for years at annualRatePercent, compounded monthly.
//
// Formula: FV = P * (((1+r)^n - 1) / r) * (1+r)
//
// With a zero rate or zero periods there is no compounding and the result is
// the plain sum of contributions, P * n.
func FutureValue(monthly, annualRatePercent, years float64) float64 {
	r, n := monthlyRate(annualRatePercent, years)
	if r == 0 || n == 0 {
		return monthly * n
	}
	return monthly * annuityFactor(r, n)
}

// RequiredSIP is the inverse of FutureValue: the monthly contribution needed
// to reach target in years at annualRatePercent.
func RequiredSIP(target, annualRatePercent, years float64) float64 {
	r, n := monthlyRate(annualRatePercent, years)
	if r == 0 || n == 0 {
		return target / math.Max(n, 1)
	}
	return target / annuityFactor(r, n)
}

// annuityFactor is the annuity-due multiplier ((1+r)^n - 1)/r * (1+r).
func annuityFactor(r, n float64) float64 {
	return (math.Pow(1+r, n) - 1) / r * (1 + r)
}

// EstimateYearsToGoal walks forward from GoalScanStart in GoalScanStep
// increments and returns the first horizon whose FutureValue reaches target.
// It returns 0 when either amount is non-positive and GoalScanCeiling when the
// target is out of reach within the scan.
func EstimateYearsToGoal(monthlySIP, target, annualRatePercent float64) float64 {
	if monthlySIP <= 0 || target <= 0 {
		return 0
	}
	for years := GoalScanStart; years <= GoalScanCeiling; years += GoalScanStep {
		if FutureValue(monthlySIP, annualRatePercent, years) >= target {
			return years
		}
	}
	return GoalScanCeiling
}

// StepUpSIP raises a monthly amount by stepUpPercent and rounds to the nearest
// rupee.
func StepUpSIP(amount, stepUpPercent float64) float64 {
	return math.Round(amount * (1 + stepUpPercent/100))
}
