package insights

import (
	"fmt"

	"fund-insights/models"
	"fund-insights/portfolio"
)

// Portfolio rule thresholds, in percentage points.
const (
	UnderperformanceGap  = 2.0
	EquityConcentration  = 80.0
	BankingConcentration = 35.0
)

const (
	MsgNoHoldings        = "No enrolled funds yet. Enroll funds to receive AI insights."
	MsgEquityHeavy       = "Your portfolio is over 80% equity. Consider debt/hybrid diversification."
	MsgBankingHeavy      = "You are overexposed to banking sector. Rebalance sector concentration."
	MsgPortfolioBalanced = "Portfolio allocation looks balanced for current profile."
	msgUnderperformer    = "%s is underperforming compared to your portfolio category average."
)

// PortfolioInput is what the portfolio rules look at.
type PortfolioInput struct {
	Holdings         []models.Fund
	AssetAllocation  models.Allocation
	SectorAllocation models.Allocation
}

var portfolioRules = NewEvaluator(MsgPortfolioBalanced,
	Rule[PortfolioInput]{
		Name:     "empty",
		Terminal: true,
		Check: func(in PortfolioInput) (string, bool) {
			return MsgNoHoldings, len(in.Holdings) == 0
		},
	},
	Rule[PortfolioInput]{
		Name:  "underperformer",
		Check: underperformer,
	},
	Threshold("equity-concentration", MsgEquityHeavy, func(in PortfolioInput) bool {
		return in.AssetAllocation[models.FundTypeEquity]+in.AssetAllocation[models.FundTypeELSS] >= EquityConcentration
	}),
	Threshold("banking-concentration", MsgBankingHeavy, func(in PortfolioInput) bool {
		return in.SectorAllocation["Banking"] > BankingConcentration
	}),
)

// underperformer names the first holding whose 3Y return trails the holding
// average by more than UnderperformanceGap.
func underperformer(in PortfolioInput) (string, bool) {
	avg := portfolio.AverageReturn3Y(in.Holdings)
	for _, f := range in.Holdings {
		if f.Returns3Y < avg-UnderperformanceGap {
			return fmt.Sprintf(msgUnderperformer, f.Name), true
		}
	}
	return "", false
}

// Portfolio evaluates the portfolio rules.
func Portfolio(in PortfolioInput) []string {
	return portfolioRules.Evaluate(in)
}

// ForHoldings aggregates holdings and evaluates the portfolio rules on the result.
func ForHoldings(holdings []models.Fund) []string {
	return Portfolio(PortfolioInput{
		Holdings:         holdings,
		AssetAllocation:  portfolio.AllocationByKey(holdings, portfolio.ByFundType),
		SectorAllocation: portfolio.AggregateSectorAllocation(holdings),
	})
}
