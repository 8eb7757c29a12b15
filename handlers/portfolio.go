package handlers

import (
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"

	"fund-insights/funds"
	"fund-insights/insights"
	"fund-insights/portfolio"
)

// ToggleEnroll adds the fund to the portfolio, or removes it if already
// enrolled.
func (h *Handler) ToggleEnroll(c *gin.Context) {
	id, ok := fundID(c)
	if !ok {
		return
	}
	if _, ok := h.lookupFund(c, id); !ok {
		return
	}

	ws := workspace(c)
	ws.EnrolledFundIDs = funds.ToggleMembership(ws.EnrolledFundIDs, id)
	if !h.saveWorkspace(c, ws) {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"enrolled":          slices.Contains(ws.EnrolledFundIDs, id),
		"enrolled_fund_ids": ws.EnrolledFundIDs,
	})
}

// ToggleCompare adds the fund to the comparison set, dropping the oldest
// pick once the set is full.
func (h *Handler) ToggleCompare(c *gin.Context) {
	id, ok := fundID(c)
	if !ok {
		return
	}
	if _, ok := h.lookupFund(c, id); !ok {
		return
	}

	ws := workspace(c)
	ws.CompareIDs = funds.ToggleCompare(ws.CompareIDs, id)
	if !h.saveWorkspace(c, ws) {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"comparing":   slices.Contains(ws.CompareIDs, id),
		"compare_ids": ws.CompareIDs,
	})
}

func (h *Handler) GetCompare(c *gin.Context) {
	catalog, ok := h.catalogFunds(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"funds": funds.Select(catalog, workspace(c).CompareIDs)})
}

// GetPortfolio values the enrolled funds and runs the portfolio insights.
func (h *Handler) GetPortfolio(c *gin.Context) {
	catalog, ok := h.catalogFunds(c)
	if !ok {
		return
	}

	ws := workspace(c)
	holdings := funds.Select(catalog, ws.EnrolledFundIDs)
	summary := portfolio.Summarize(holdings, ws.SIP.Amount)
	notes := insights.Portfolio(insights.PortfolioInput{
		Holdings:         holdings,
		AssetAllocation:  summary.AssetAllocation,
		SectorAllocation: summary.SectorAllocation,
	})

	c.JSON(http.StatusOK, gin.H{
		"holdings":     holdings,
		"summary":      summary,
		"insights":     notes,
		"risk_profile": ws.RiskProfile,
	})
}
