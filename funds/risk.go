package funds

import (
	"cmp"
	"slices"
	"strings"

	"fund-insights/models"
)

// Tolerance answers of the risk quiz.
const (
	ToleranceLow    = "Low"
	ToleranceMedium = "Medium"
	ToleranceHigh   = "High"
)

// Goals of the risk quiz.
const (
	GoalEducation      = "Education"
	GoalHousePurchase  = "House Purchase"
	GoalRetirement     = "Retirement"
	GoalVacation       = "Vacation"
	GoalWealthCreation = "Wealth Creation"
)

// Score cut-offs for the risk tiers.
const (
	AggressiveScore = 7
	ModerateScore   = 4
)

// MaxRecommendations caps the recommendation list.
const MaxRecommendations = 4

// Questionnaire holds the risk quiz answers.
type Questionnaire struct {
	Age           float64 `json:"age"`
	AnnualIncome  float64 `json:"annual_income"`
	DurationYears float64 `json:"duration_years"`
	Tolerance     string  `json:"tolerance"`
	Goal          string  `json:"goal"`
}

// Score adds up the quiz points.
func Score(q Questionnaire) int {
	score := 0

	switch {
	case q.Age < 30:
		score += 2
	case q.Age < 45:
		score++
	}

	switch {
	case q.AnnualIncome > 1800000:
		score += 2
	case q.AnnualIncome > 800000:
		score++
	}

	switch {
	case q.DurationYears >= 8:
		score += 2
	case q.DurationYears >= 4:
		score++
	}

	switch q.Tolerance {
	case ToleranceHigh:
		score += 2
	case ToleranceMedium:
		score++
	}

	if q.Goal == GoalWealthCreation || q.Goal == GoalRetirement {
		score++
	}

	return score
}

// ScoreRiskProfile classifies the quiz answers and returns the score used.
func ScoreRiskProfile(q Questionnaire) (models.RiskProfile, int) {
	score := Score(q)
	switch {
	case score >= AggressiveScore:
		return models.Aggressive, score
	case score >= ModerateScore:
		return models.Moderate, score
	default:
		return models.Conservative, score
	}
}

// Eligible reports whether f suits an investor with the given profile.
func Eligible(profile models.RiskProfile, f models.Fund) bool {
	switch profile {
	case models.Conservative:
		return f.FundType == models.FundTypeDebt || f.FundType == models.FundTypeHybrid || f.Risk == models.RiskModerate
	case models.Moderate:
		return f.Risk != models.RiskHigh
	case models.Aggressive:
		return f.FundType == models.FundTypeEquity || f.FundType == models.FundTypeELSS || strings.Contains(f.Risk, models.RiskHigh)
	}
	return false
}

// Recommend returns up to MaxRecommendations eligible funds, best 3Y return
// first. Ties keep catalog order and catalog is left untouched.
func Recommend(catalog []models.Fund, profile models.RiskProfile) []models.Fund {
	eligible := make([]models.Fund, 0, len(catalog))
	for _, f := range catalog {
		if Eligible(profile, f) {
			eligible = append(eligible, f)
		}
	}

	slices.SortStableFunc(eligible, func(a, b models.Fund) int {
		return cmp.Compare(b.Returns3Y, a.Returns3Y)
	})

	if len(eligible) > MaxRecommendations {
		eligible = eligible[:MaxRecommendations]
	}
	return eligible
}
