package insights

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fund-insights/models"
	"fund-insights/seed"
)

func seedFunds(ids ...int) []models.Fund {
	var out []models.Fund
	for _, id := range ids {
		for _, f := range seed.MustFunds() {
			if f.ID == id {
				out = append(out, f)
			}
		}
	}
	return out
}

func TestEvaluator(t *testing.T) {
	positive := Threshold("positive", "positive", func(n int) bool { return n > 0 })
	even := Threshold("even", "even", func(n int) bool { return n%2 == 0 })
	zero := Rule[int]{
		Name:     "zero",
		Terminal: true,
		Check:    func(n int) (string, bool) { return "zero", n == 0 },
	}

	e := NewEvaluator("fallback", zero, positive, even)

	assert.Equal(t, []string{"zero"}, e.Evaluate(0), "terminal rule stops evaluation")
	assert.Equal(t, []string{"positive", "even"}, e.Evaluate(4))
	assert.Equal(t, []string{"positive"}, e.Evaluate(3))
	assert.Equal(t, []string{"fallback"}, e.Evaluate(-3))
}

func TestEvaluator_NoRules(t *testing.T) {
	assert.Equal(t, []string{"nothing"}, NewEvaluator[string]("nothing").Evaluate("x"))
}

func TestPortfolio_Empty(t *testing.T) {
	msgs := ForHoldings(nil)
	require.Len(t, msgs, 1)
	assert.Equal(t, MsgNoHoldings, msgs[0])
}

func TestPortfolio_Balanced(t *testing.T) {
	// mean 3Y 15.0, 50% equity, 24.5% banking
	msgs := ForHoldings(seedFunds(1, 4))
	assert.Equal(t, []string{MsgPortfolioBalanced}, msgs)
}

func TestPortfolio_Underperformer(t *testing.T) {
	msgs := ForHoldings(seedFunds(1, 2, 4))
	assert.Equal(t, []string{
		"HDFC Hybrid Equity Fund is underperforming compared to your portfolio category average.",
	}, msgs)
}

func TestPortfolio_UnderperformerFirstMatchOnly(t *testing.T) {
	holdings := []models.Fund{
		{ID: 1, Name: "Leader", FundType: "Debt", Returns3Y: 20},
		{ID: 2, Name: "Laggard A", FundType: "Debt", Returns3Y: 10},
		{ID: 3, Name: "Laggard B", FundType: "Debt", Returns3Y: 10},
	}
	msgs := ForHoldings(holdings)
	require.Len(t, msgs, 1)
	assert.Contains(t, msgs[0], "Laggard A")
}

func TestPortfolio_EquityHeavy(t *testing.T) {
	msgs := ForHoldings(seedFunds(1, 2, 6))
	assert.Equal(t, []string{MsgEquityHeavy}, msgs)
}

func TestPortfolio_EquityThresholdInclusive(t *testing.T) {
	msgs := Portfolio(PortfolioInput{
		Holdings:         seedFunds(1),
		AssetAllocation:  models.Allocation{"Equity": 60, "ELSS": 20, "Debt": 20},
		SectorAllocation: models.Allocation{"Banking": 35},
	})
	assert.Equal(t, []string{MsgEquityHeavy}, msgs, "banking at exactly 35 does not fire")
}

func TestPortfolio_AllRulesInOrder(t *testing.T) {
	holdings := []models.Fund{
		{ID: 1, Name: "Bank Heavy", FundType: "Equity", Returns3Y: 5, SectorAllocation: models.Allocation{"Banking": 90, "IT": 10}},
		{ID: 2, Name: "Strong", FundType: "ELSS", Returns3Y: 25, SectorAllocation: models.Allocation{"Banking": 60, "IT": 40}},
	}
	msgs := ForHoldings(holdings)
	assert.Equal(t, []string{
		"Bank Heavy is underperforming compared to your portfolio category average.",
		MsgEquityHeavy,
		MsgBankingHeavy,
	}, msgs)
}

func TestBehavior(t *testing.T) {
	tests := []struct {
		name string
		in   BehaviorInput
		want []string
	}{
		{"prototype defaults", BehaviorInput{PanicSells: 3, Overtrades: 5, SIPConsistency: 68},
			[]string{MsgPanicSelling, MsgOvertrading, MsgLowSIPConsistency}},
		{"thresholds are inclusive", BehaviorInput{PanicSells: 2, Overtrades: 4, SIPConsistency: 75},
			[]string{MsgPanicSelling, MsgOvertrading}},
		{"only consistency", BehaviorInput{PanicSells: 1, Overtrades: 3, SIPConsistency: 74.9},
			[]string{MsgLowSIPConsistency}},
		{"disciplined", BehaviorInput{PanicSells: 0, Overtrades: 1, SIPConsistency: 95},
			[]string{MsgDisciplined}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Behavior(tt.in))
		})
	}
}
