package finance

import "math"

// XIRRApprox approximates the annualised return of a single lump investment
// that grew from invested to current over years, in percent.
//
// Formula: ((current / invested)^(1/years) - 1) * 100
//
// This is a CAGR, not an irregular cash-flow XIRR. Any zero input yields 0,
// and so does a non-positive value ratio, which has no real root.
func XIRRApprox(invested, current, years float64) float64 {
	if invested == 0 || current == 0 || years == 0 {
		return 0
	}
	ratio := current / invested
	if ratio <= 0 {
		return 0
	}
	return (math.Pow(ratio, 1/years) - 1) * 100
}
