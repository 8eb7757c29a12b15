package finance

import "math"

// HoldingPeriod selects the capital gains regime.
type HoldingPeriod string

const (
	LongTerm  HoldingPeriod = "Long Term"
	ShortTerm HoldingPeriod = "Short Term"
)

// Simplified tax regime constants. These are not current tax law.
const (
	LTCGExemption    = 100000.0
	LTCGRate         = 0.10
	STCGRate         = 0.15
	ELSSDeductionCap = 150000.0
	ELSSTaxRate      = 0.30
)

type TaxEstimate struct {
	Tax         float64 `json:"tax"`
	ELSSSavings float64 `json:"elss_savings"`
}

// CapitalGainsTax estimates tax due on gains for the holding period and the
// tax saved by investing elssInvested in ELSS under the deduction cap.
// Anything other than LongTerm is taxed as short term.
func CapitalGainsTax(gains float64, holding HoldingPeriod, elssInvested float64) TaxEstimate {
	gains = math.Max(0, gains)

	var tax float64
	if holding == LongTerm {
		tax = math.Max(0, gains-LTCGExemption) * LTCGRate
	} else {
		tax = gains * STCGRate
	}

	return TaxEstimate{
		Tax:         tax,
		ELSSSavings: math.Min(ELSSDeductionCap, math.Max(0, elssInvested)) * ELSSTaxRate,
	}
}
