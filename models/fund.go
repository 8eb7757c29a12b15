package models

import (
	"time"
)

// Fund types offered by the catalog.
const (
	FundTypeEquity = "Equity"
	FundTypeDebt   = "Debt"
	FundTypeHybrid = "Hybrid"
	FundTypeIndex  = "Index"
	FundTypeELSS   = "ELSS"
)

// Risk tiers as printed on the scheme documents.
const (
	RiskLowToModerate  = "Low to Moderate"
	RiskModerate       = "Moderate"
	RiskModerateToHigh = "Moderate to High"
	RiskHigh           = "High"
)

// FundTypes lists the selectable fund types in display order.
var FundTypes = []string{FundTypeEquity, FundTypeDebt, FundTypeHybrid, FundTypeIndex, FundTypeELSS}

// RiskTiers lists the risk tiers from lowest to highest.
var RiskTiers = []string{RiskLowToModerate, RiskModerate, RiskModerateToHigh, RiskHigh}

// Allocation maps a category or sector label to a percentage share (0-100).
type Allocation map[string]float64

// Total sums every share in the allocation.
func (a Allocation) Total() float64 {
	var total float64
	for _, v := range a {
		total += v
	}
	return total
}

// RiskMetrics are the volatility and risk-adjusted return figures of a fund.
type RiskMetrics struct {
	StdDev float64 `json:"std_dev" yaml:"std_dev"`
	Beta   float64 `json:"beta" yaml:"beta"`
	Sharpe float64 `json:"sharpe" yaml:"sharpe"`
	Alpha  float64 `json:"alpha" yaml:"alpha"`
}

// Fund is an immutable catalog record. Funds are appended, never updated or removed.
type Fund struct {
	ID               int         `gorm:"primaryKey;autoIncrement:false" json:"id" yaml:"id"`
	Name             string      `gorm:"index" json:"name" yaml:"name"`
	Category         string      `json:"category" yaml:"category"`
	FundType         string      `gorm:"index" json:"fund_type" yaml:"fund_type"`
	Risk             string      `json:"risk" yaml:"risk"`
	Returns1Y        float64     `gorm:"column:returns_1y" json:"returns_1y" yaml:"returns_1y"`
	Returns3Y        float64     `gorm:"column:returns_3y" json:"returns_3y" yaml:"returns_3y"`
	Returns5Y        float64     `gorm:"column:returns_5y" json:"returns_5y" yaml:"returns_5y"`
	ExpenseRatio     float64     `json:"expense_ratio" yaml:"expense_ratio"`
	AUM              float64     `gorm:"column:aum" json:"aum" yaml:"aum"`
	Rating           float64     `json:"rating" yaml:"rating"`
	RiskMetrics      RiskMetrics `gorm:"embedded;embeddedPrefix:risk_" json:"risk_metrics" yaml:"risk_metrics"`
	SectorAllocation Allocation  `gorm:"serializer:json" json:"sector_allocation" yaml:"sector_allocation"`
	FundHouse        string      `gorm:"index" json:"fund_house" yaml:"fund_house"`
	FundManager      string      `json:"fund_manager" yaml:"fund_manager"`
	ExitLoad         string      `json:"exit_load" yaml:"exit_load"`
	LockIn           string      `json:"lock_in" yaml:"lock_in"`
	CreatedAt        time.Time   `json:"created_at" yaml:"-"`
}
