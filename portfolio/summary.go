package portfolio

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"fund-insights/finance"
	"fund-insights/models"
)

// Assumptions behind the illustrative portfolio valuation.
const (
	// SIPMonths is how long every enrolled fund is assumed to have been funded.
	SIPMonths = 36
	// HoldingYears is the same period in years, used for the XIRR estimate.
	HoldingYears = 3.0
	// ReturnUplift scales the average 3Y return into the notional gain.
	ReturnUplift = 1.05
)

// Summary is the headline view of an enrolled holding set.
type Summary struct {
	Holdings          int               `json:"holdings"`
	TotalInvested     float64           `json:"total_invested"`
	CurrentValue      float64           `json:"current_value"`
	ProfitLossPercent float64           `json:"profit_loss_percent"`
	XIRR              float64           `json:"xirr"`
	AverageReturn3Y   float64           `json:"average_return_3y"`
	AssetAllocation   models.Allocation `json:"asset_allocation"`
	SectorAllocation  models.Allocation `json:"sector_allocation"`
}

// AverageReturn3Y is the arithmetic mean of the holdings' 3-year returns, or 0
// for no holdings.
func AverageReturn3Y(holdings []models.Fund) float64 {
	if len(holdings) == 0 {
		return 0
	}
	returns := make([]float64, len(holdings))
	for i, f := range holdings {
		returns[i] = f.Returns3Y
	}
	return stat.Mean(returns, nil)
}

// Summarize values a holding set funded with monthlySIP per fund. An empty
// set is still valued as one fund's worth of contributions.
func Summarize(holdings []models.Fund, monthlySIP float64) Summary {
	count := len(holdings)
	invested := monthlySIP * SIPMonths * float64(max(count, 1))
	avg := AverageReturn3Y(holdings)
	current := math.Round(invested * (1 + avg/100*ReturnUplift))

	s := Summary{
		Holdings:         count,
		TotalInvested:    invested,
		CurrentValue:     current,
		AverageReturn3Y:  avg,
		AssetAllocation:  AllocationByKey(holdings, ByFundType),
		SectorAllocation: AggregateSectorAllocation(holdings),
	}
	if invested != 0 {
		s.ProfitLossPercent = (current - invested) / invested * 100
		s.XIRR = finance.XIRRApprox(invested, current, HoldingYears)
	}
	return s
}
