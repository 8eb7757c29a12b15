package handlers

import (
	"math"
	"net/http"

	"github.com/gin-gonic/gin"

	"fund-insights/finance"
	"fund-insights/funds"
	"fund-insights/insights"
	"fund-insights/models"
)

// Planner defaults.
const (
	defaultExpectedReturn = 12.0
	projectionYears       = 10.0
)

type RiskQuizInput struct {
	Age           float64 `json:"age" binding:"required,gt=0"`
	AnnualIncome  float64 `json:"annual_income" binding:"min=0"`
	DurationYears float64 `json:"duration_years" binding:"required,gt=0"`
	Tolerance     string  `json:"tolerance" binding:"required,oneof=Low Medium High"`
	Goal          string  `json:"goal" binding:"required"`
}

type GoalPlanInput struct {
	Goal           string   `json:"goal"`
	TargetCorpus   float64  `json:"target_corpus" binding:"required,gt=0"`
	Years          float64  `json:"years" binding:"required,gt=0"`
	ExpectedReturn *float64 `json:"expected_return" binding:"omitempty,min=0"`
	MonthlySIP     *float64 `json:"monthly_sip" binding:"omitempty,gt=0"`
}

type TaxInput struct {
	Gains        float64 `json:"gains"`
	HoldingType  string  `json:"holding_type" binding:"required,oneof='Long Term' 'Short Term'"`
	ELSSInvested float64 `json:"elss_invested"`
}

type BehaviorInput struct {
	PanicSells     int     `json:"panic_sells" binding:"min=0"`
	Overtrades     int     `json:"overtrades" binding:"min=0"`
	SIPConsistency float64 `json:"sip_consistency" binding:"min=0,max=100"`
}

type SIPInput struct {
	Amount     *float64 `json:"amount" binding:"omitempty,gt=0"`
	StepUpRate *float64 `json:"step_up_rate" binding:"omitempty,min=0,max=100"`
	AutoDebit  *bool    `json:"auto_debit"`
	NextDate   string   `json:"next_date" binding:"omitempty,datetime=2006-01-02"`
}

// RiskQuiz scores the questionnaire, stores the resulting profile and
// returns matching funds.
func (h *Handler) RiskQuiz(c *gin.Context) {
	var input RiskQuizInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profile, score := funds.ScoreRiskProfile(funds.Questionnaire{
		Age:           input.Age,
		AnnualIncome:  input.AnnualIncome,
		DurationYears: input.DurationYears,
		Tolerance:     input.Tolerance,
		Goal:          input.Goal,
	})

	catalog, ok := h.catalogFunds(c)
	if !ok {
		return
	}

	ws := workspace(c)
	ws.RiskProfile = profile
	if !h.saveWorkspace(c, ws) {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"profile":         profile,
		"score":           score,
		"recommendations": funds.Recommend(catalog, profile),
	})
}

// PlanGoal sizes the SIP needed for a target and projects the current one.
func (h *Handler) PlanGoal(c *gin.Context) {
	var input GoalPlanInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ws := workspace(c)
	rate := floatOr(input.ExpectedReturn, defaultExpectedReturn)
	monthly := floatOr(input.MonthlySIP, ws.SIP.Amount)

	c.JSON(http.StatusOK, gin.H{
		"goal":            input.Goal,
		"required_sip":    math.Round(finance.RequiredSIP(input.TargetCorpus, rate, input.Years)),
		"projected_value": math.Round(finance.FutureValue(monthly, rate, input.Years)),
		"years_to_goal":   finance.EstimateYearsToGoal(monthly, input.TargetCorpus, rate),
		"monthly_sip":     monthly,
		"expected_return": rate,
	})
}

func (h *Handler) EstimateTax(c *gin.Context) {
	var input TaxInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, finance.CapitalGainsTax(input.Gains, finance.HoldingPeriod(input.HoldingType), input.ELSSInvested))
}

func (h *Handler) AnalyzeBehavior(c *gin.Context) {
	var input BehaviorInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"insights": insights.Behavior(insights.BehaviorInput{
		PanicSells:     input.PanicSells,
		Overtrades:     input.Overtrades,
		SIPConsistency: input.SIPConsistency,
	})})
}

func sipResponse(plan models.SIPPlan) gin.H {
	return gin.H{
		"sip":              plan,
		"projected_value":  math.Round(finance.FutureValue(plan.Amount, defaultExpectedReturn, projectionYears)),
		"projection_years": projectionYears,
	}
}

func (h *Handler) GetSIP(c *gin.Context) {
	c.JSON(http.StatusOK, sipResponse(workspace(c).SIP))
}

// UpdateSIP changes the SIP fields present in the body.
func (h *Handler) UpdateSIP(c *gin.Context) {
	var input SIPInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ws := workspace(c)
	if input.Amount != nil {
		ws.SIP.Amount = *input.Amount
	}
	if input.StepUpRate != nil {
		ws.SIP.StepUpRate = *input.StepUpRate
	}
	if input.AutoDebit != nil {
		ws.SIP.AutoDebit = *input.AutoDebit
	}
	if input.NextDate != "" {
		ws.SIP.NextDate = input.NextDate
	}
	h.commitSIP(c, ws)
}

func (h *Handler) StartSIP(c *gin.Context) {
	ws := workspace(c)
	ws.SIP.Status = models.SIPActive
	h.commitSIP(c, ws)
}

func (h *Handler) PauseSIP(c *gin.Context) {
	ws := workspace(c)
	ws.SIP.Status = models.SIPPaused
	h.commitSIP(c, ws)
}

// StepUpSIP raises the SIP amount by its step-up rate.
func (h *Handler) StepUpSIP(c *gin.Context) {
	ws := workspace(c)
	ws.SIP.Amount = finance.StepUpSIP(ws.SIP.Amount, ws.SIP.StepUpRate)
	h.commitSIP(c, ws)
}

func (h *Handler) commitSIP(c *gin.Context, ws *models.Workspace) {
	if !h.saveWorkspace(c, ws) {
		return
	}
	c.JSON(http.StatusOK, sipResponse(ws.SIP))
}
