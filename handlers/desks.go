package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gonum.org/v1/gonum/stat"

	"fund-insights/finance"
	"fund-insights/funds"
	"fund-insights/models"
)

const defaultRecommendationNote = "Suggested a diversified mix based on risk profile."

type RecommendationInput struct {
	Client string `json:"client" binding:"required"`
	FundID int    `json:"fund_id" binding:"required"`
	Note   string `json:"note"`
}

// AdvisorRecommendations lists funds for a risk profile, the advisor's own
// profile when none is given.
func (h *Handler) AdvisorRecommendations(c *gin.Context) {
	profile := workspace(c).RiskProfile
	if q := c.Query("profile"); q != "" {
		profile = models.RiskProfile(q)
	}
	if !profile.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown risk profile"})
		return
	}

	catalog, ok := h.catalogFunds(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": profile, "funds": funds.Recommend(catalog, profile)})
}

// SendRecommendation records a note to a client at the top of the outbox.
func (h *Handler) SendRecommendation(c *gin.Context) {
	var input RecommendationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	fund, ok := h.lookupFund(c, input.FundID)
	if !ok {
		return
	}

	ws := workspace(c)
	entry := fmt.Sprintf("%s: %s -> %s", input.Client, fund.Name, orDefault(input.Note, defaultRecommendationNote))
	ws.AdvisorOutbox = append([]string{entry}, ws.AdvisorOutbox...)
	if !h.saveWorkspace(c, ws) {
		return
	}
	c.JSON(http.StatusCreated, gin.H{"outbox": ws.AdvisorOutbox})
}

// AnalystLab reports the catalog's mean 1-year return and, on request, a
// simulated value path.
func (h *Handler) AnalystLab(c *gin.Context) {
	catalog, ok := h.catalogFunds(c)
	if !ok {
		return
	}

	var avg float64
	if len(catalog) > 0 {
		returns := make([]float64, len(catalog))
		for i, f := range catalog {
			returns[i] = f.Returns1Y
		}
		avg = stat.Mean(returns, nil)
	}

	resp := gin.H{"fund_count": len(catalog), "average_return_1y": avg}
	if strings.EqualFold(c.Query("simulate"), "true") {
		resp["monte_carlo"] = finance.SimulatePath(nil, finance.DefaultSteps)
	}
	c.JSON(http.StatusOK, resp)
}
