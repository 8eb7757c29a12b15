package portfolio

import (
	"fund-insights/models"
)

// CashLabel is the single bucket reported for an empty holding set.
const CashLabel = "Cash"

func allCash() models.Allocation {
	return models.Allocation{CashLabel: 100}
}

// ByFundType classifies a holding by its fund type.
func ByFundType(f models.Fund) string {
	return f.FundType
}

// AllocationByKey counts holdings per key and converts the counts into
// percentage shares of the number of holdings.
func AllocationByKey(holdings []models.Fund, key func(models.Fund) string) models.Allocation {
	if len(holdings) == 0 {
		return allCash()
	}

	counts := make(map[string]int)
	for _, f := range holdings {
		counts[key(f)]++
	}

	total := float64(len(holdings))
	allocation := make(models.Allocation, len(counts))
	for k, c := range counts {
		allocation[k] = float64(c) / total * 100
	}
	return allocation
}

// AggregateSectorAllocation adds up the sector breakdown of every holding and
// rescales the sums to 100. Each holding counts once regardless of how much
// is invested in it.
func AggregateSectorAllocation(holdings []models.Fund) models.Allocation {
	if len(holdings) == 0 {
		return allCash()
	}

	totals := make(models.Allocation)
	for _, f := range holdings {
		for sector, pct := range f.SectorAllocation {
			totals[sector] += pct
		}
	}

	factor := totals.Total()
	if factor == 0 {
		// no holding declared a sector breakdown
		return allCash()
	}

	normalized := make(models.Allocation, len(totals))
	for sector, v := range totals {
		normalized[sector] = v / factor * 100
	}
	return normalized
}
