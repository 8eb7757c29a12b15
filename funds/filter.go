// Package funds selects funds from the catalog: discovery filters, the risk
// quiz and profile-based recommendations.
package funds

import (
	"slices"
	"strings"

	"fund-insights/models"
)

// Wildcard matches any value of a categorical criterion.
const Wildcard = "All"

// DefaultMaxExpense is the expense ratio ceiling used when none is given.
const DefaultMaxExpense = 2.0

// Criteria is a conjunction of discovery filters.
type Criteria struct {
	Query       string  `form:"q" json:"q"`
	Risk        string  `form:"risk" json:"risk"`
	Type        string  `form:"type" json:"type"`
	House       string  `form:"house" json:"house"`
	MaxExpense  float64 `form:"max_expense" json:"max_expense"`
	MinRating   float64 `form:"min_rating" json:"min_rating"`
	MinReturn3Y float64 `form:"min_return_3y" json:"min_return_3y"`
}

// DefaultCriteria matches the whole demo catalog.
func DefaultCriteria() Criteria {
	return Criteria{
		Risk:       Wildcard,
		Type:       Wildcard,
		House:      Wildcard,
		MaxExpense: DefaultMaxExpense,
	}
}

func matchesExact(want, got string) bool {
	return want == Wildcard || want == got
}

// Match reports whether f satisfies every criterion.
func (c Criteria) Match(f models.Fund) bool {
	return strings.Contains(strings.ToLower(f.Name), strings.ToLower(c.Query)) &&
		matchesExact(c.Risk, f.Risk) &&
		matchesExact(c.Type, f.FundType) &&
		matchesExact(c.House, f.FundHouse) &&
		f.ExpenseRatio <= c.MaxExpense &&
		f.Rating >= c.MinRating &&
		f.Returns3Y >= c.MinReturn3Y
}

// Filter returns the funds matching c in catalog order.
func Filter(catalog []models.Fund, c Criteria) []models.Fund {
	out := make([]models.Fund, 0, len(catalog))
	for _, f := range catalog {
		if c.Match(f) {
			out = append(out, f)
		}
	}
	return out
}

// Houses lists the wildcard followed by each distinct fund house in catalog order.
func Houses(catalog []models.Fund) []string {
	houses := []string{Wildcard}
	for _, f := range catalog {
		if !slices.Contains(houses, f.FundHouse) {
			houses = append(houses, f.FundHouse)
		}
	}
	return houses
}

// Select returns the funds whose IDs appear in ids, in catalog order.
func Select(catalog []models.Fund, ids []int) []models.Fund {
	out := make([]models.Fund, 0, len(ids))
	for _, f := range catalog {
		if slices.Contains(ids, f.ID) {
			out = append(out, f)
		}
	}
	return out
}
