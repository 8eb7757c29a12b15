package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"fund-insights/funds"
	"fund-insights/models"
	"fund-insights/store"
)

// FundInput is the admin form for a new catalog entry. Only the name is
// required; everything else falls back to the form defaults.
type FundInput struct {
	Name         string   `json:"name" binding:"required"`
	Category     string   `json:"category"`
	FundType     string   `json:"fund_type" binding:"omitempty,oneof=Equity Debt Hybrid Index ELSS"`
	Risk         string   `json:"risk" binding:"omitempty,oneof='Low to Moderate' Moderate 'Moderate to High' High"`
	Returns1Y    *float64 `json:"returns_1y"`
	Returns3Y    *float64 `json:"returns_3y"`
	Returns5Y    *float64 `json:"returns_5y"`
	ExpenseRatio *float64 `json:"expense_ratio" binding:"omitempty,min=0"`
	AUM          *float64 `json:"aum" binding:"omitempty,min=0"`
	FundHouse    string   `json:"fund_house"`
}

func orDefault(s, def string) string {
	if s = strings.TrimSpace(s); s == "" {
		return def
	}
	return s
}

func floatOr(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}

// toFund fills the admin form defaults. Rating, sectors, risk metrics and
// the fixed text fields are not part of the form.
func (in FundInput) toFund() models.Fund {
	return models.Fund{
		Name:         strings.TrimSpace(in.Name),
		Category:     orDefault(in.Category, "Index"),
		FundType:     orDefault(in.FundType, models.FundTypeIndex),
		Risk:         orDefault(in.Risk, models.RiskModerate),
		Returns1Y:    floatOr(in.Returns1Y, 12),
		Returns3Y:    floatOr(in.Returns3Y, 11),
		Returns5Y:    floatOr(in.Returns5Y, 10),
		ExpenseRatio: floatOr(in.ExpenseRatio, 0.25),
		AUM:          floatOr(in.AUM, 10000),
		Rating:       4.0,
		RiskMetrics:  models.RiskMetrics{StdDev: 8.3, Beta: 0.7, Sharpe: 0.6, Alpha: 1.2},
		SectorAllocation: models.Allocation{
			"Others": 100,
		},
		FundHouse:   orDefault(in.FundHouse, "Nifty AMC"),
		FundManager: "Admin Added",
		ExitLoad:    "Nil",
		LockIn:      "No lock-in",
	}
}

// fundID parses the :id path parameter, writing a 400 when it is not a
// number.
func fundID(c *gin.Context) (int, bool) {
	return pathID(c, "fund")
}

// pathID parses the :id parameter, writing a 400 naming what when it is not
// a number.
func pathID(c *gin.Context, what string) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + what + " id"})
		return 0, false
	}
	return id, true
}

// lookupFund fetches a fund by id, writing a 404 when it does not exist.
func (h *Handler) lookupFund(c *gin.Context, id int) (models.Fund, bool) {
	fund, err := h.catalog.Get(c.Request.Context(), id)
	if errors.Is(err, store.ErrFundNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Fund not found"})
		return models.Fund{}, false
	}
	if err != nil {
		h.log.Error().Err(err).Int("fund_id", id).Msg("failed to get fund")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load fund"})
		return models.Fund{}, false
	}
	return fund, true
}

// ListFunds runs the discovery filters given as query parameters.
func (h *Handler) ListFunds(c *gin.Context) {
	criteria := funds.DefaultCriteria()
	if err := c.ShouldBindQuery(&criteria); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	// Blank selects mean "All"; a blank ceiling means the default one.
	criteria.Risk = orDefault(criteria.Risk, funds.Wildcard)
	criteria.Type = orDefault(criteria.Type, funds.Wildcard)
	criteria.House = orDefault(criteria.House, funds.Wildcard)
	if strings.TrimSpace(c.Query("max_expense")) == "" {
		criteria.MaxExpense = funds.DefaultMaxExpense
	}

	catalog, ok := h.catalogFunds(c)
	if !ok {
		return
	}
	matched := funds.Filter(catalog, criteria)
	c.JSON(http.StatusOK, gin.H{"funds": matched, "count": len(matched)})
}

// FundHouses lists the distinct fund houses for the house filter.
func (h *Handler) FundHouses(c *gin.Context) {
	catalog, ok := h.catalogFunds(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"houses": funds.Houses(catalog)})
}

func (h *Handler) GetFund(c *gin.Context) {
	id, ok := fundID(c)
	if !ok {
		return
	}
	fund, ok := h.lookupFund(c, id)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, fund)
}

// AddFund appends a fund to the catalog. Admin only.
func (h *Handler) AddFund(c *gin.Context) {
	var input FundInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if strings.TrimSpace(input.Name) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Fund name is required"})
		return
	}

	fund, err := h.catalog.Append(c.Request.Context(), input.toFund())
	if errors.Is(err, store.ErrInvalidFund) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		h.log.Error().Err(err).Msg("failed to add fund")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add fund"})
		return
	}

	h.log.Info().Int("fund_id", fund.ID).Str("name", fund.Name).Msg("fund added")
	c.JSON(http.StatusCreated, gin.H{"message": "Fund added successfully", "fund": fund})
}
