package models

// RiskProfile is the investor classification produced by the risk quiz.
type RiskProfile string

const (
	Conservative RiskProfile = "Conservative"
	Moderate     RiskProfile = "Moderate"
	Aggressive   RiskProfile = "Aggressive"
)

// Valid reports whether p is one of the three known profiles.
func (p RiskProfile) Valid() bool {
	switch p {
	case Conservative, Moderate, Aggressive:
		return true
	}
	return false
}

// Role gates which workflows a session can reach.
type Role string

const (
	RoleInvestor Role = "Investor"
	RoleAdmin    Role = "Admin"
	RoleAdvisor  Role = "Financial Advisor"
	RoleAnalyst  Role = "Data Analyst"
)

// Roles lists every role in menu order.
var Roles = []Role{RoleInvestor, RoleAdmin, RoleAdvisor, RoleAnalyst}

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	for _, known := range Roles {
		if r == known {
			return true
		}
	}
	return false
}

// SIP plan statuses.
const (
	SIPActive = "Active"
	SIPPaused = "Paused"
)

type SIPPlan struct {
	Amount     float64 `json:"amount"`
	Status     string  `json:"status"`
	StepUpRate float64 `json:"step_up_rate"`
	AutoDebit  bool    `json:"auto_debit"`
	NextDate   string  `json:"next_date"`
}

type Notification struct {
	Type    string `json:"type"`
	Label   string `json:"label"`
	Message string `json:"message"`
	Enabled bool   `json:"enabled"`
	Read    bool   `json:"read"`
}

// Workspace is the per-session state of one signed-in user. It lives only as
// long as the session does.
type Workspace struct {
	SessionID       string         `json:"session_id"`
	Name            string         `json:"name"`
	Email           string         `json:"email"`
	Mobile          string         `json:"mobile"`
	Role            Role           `json:"role"`
	RiskProfile     RiskProfile    `json:"risk_profile"`
	CompareIDs      []int          `json:"compare_ids"`
	EnrolledFundIDs []int          `json:"enrolled_fund_ids"`
	SIP             SIPPlan        `json:"sip"`
	Notifications   []Notification `json:"notifications"`
	AdvisorOutbox   []string       `json:"advisor_outbox"`
	// Version counts saves; a save must carry the version it was loaded at.
	Version         int            `json:"version"`
}

// NewWorkspace returns a workspace populated with the demo defaults.
func NewWorkspace(sessionID, email string, role Role) *Workspace {
	if !role.Valid() {
		role = RoleInvestor
	}
	return &Workspace{
		SessionID:       sessionID,
		Name:            "Demo User",
		Email:           email,
		Mobile:          "9876543210",
		Role:            role,
		RiskProfile:     Moderate,
		CompareIDs:      []int{1, 2, 3},
		EnrolledFundIDs: []int{1, 2, 4},
		SIP: SIPPlan{
			Amount:     5000,
			Status:     SIPActive,
			StepUpRate: 10,
			AutoDebit:  true,
			NextDate:   "2026-03-05",
		},
		Notifications: []Notification{
			{Type: "nav", Label: "NAV Updates", Message: "2 tracked funds changed NAV today.", Enabled: true},
			{Type: "crash", Label: "Market Crash Alert", Message: "Nifty corrected 3.2% intraday.", Enabled: true},
			{Type: "rebalance", Label: "Rebalancing Suggestion", Message: "Portfolio equity crossed 80% threshold.", Enabled: true},
			{Type: "sip", Label: "SIP Due Reminder", Message: "Next SIP due on 5th March 2026.", Enabled: true, Read: true},
			{Type: "dividend", Label: "Dividend Declared", Message: "One debt fund announced payout.", Read: true},
		},
		AdvisorOutbox: []string{},
	}
}

// UnreadCount counts notifications not yet marked read.
func (w *Workspace) UnreadCount() int {
	n := 0
	for _, note := range w.Notifications {
		if !note.Read {
			n++
		}
	}
	return n
}

// MarkAllRead flags every notification as read.
func (w *Workspace) MarkAllRead() {
	for i := range w.Notifications {
		w.Notifications[i].Read = true
	}
}

// ToggleNotification flips the enabled flag of the notification with the
// given type. It reports false when no such notification exists.
func (w *Workspace) ToggleNotification(kind string) bool {
	for i := range w.Notifications {
		if w.Notifications[i].Type == kind {
			w.Notifications[i].Enabled = !w.Notifications[i].Enabled
			return true
		}
	}
	return false
}
