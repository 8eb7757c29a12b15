package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewWorkspace_Defaults(t *testing.T) {
	ws := NewWorkspace("sid", "student@demo.com", RoleAdmin)

	assert.Equal(t, RoleAdmin, ws.Role)
	assert.Equal(t, Moderate, ws.RiskProfile)
	assert.Equal(t, []int{1, 2, 4}, ws.EnrolledFundIDs)
	assert.Equal(t, []int{1, 2, 3}, ws.CompareIDs)
	assert.Equal(t, 5000.0, ws.SIP.Amount)
	assert.Equal(t, 3, ws.UnreadCount())
}

func TestNewWorkspace_UnknownRoleFallsBackToInvestor(t *testing.T) {
	ws := NewWorkspace("sid", "a@b.c", Role("Superuser"))
	assert.Equal(t, RoleInvestor, ws.Role)
}

func TestWorkspace_Notifications(t *testing.T) {
	ws := NewWorkspace("sid", "a@b.c", RoleInvestor)

	assert.True(t, ws.ToggleNotification("dividend"))
	assert.True(t, ws.Notifications[4].Enabled)
	assert.False(t, ws.ToggleNotification("missing"))

	ws.MarkAllRead()
	assert.Zero(t, ws.UnreadCount())
}

func TestAllocation_Total(t *testing.T) {
	assert.InDelta(t, 100.0, Allocation{"Banking": 31, "IT": 24, "Others": 45}.Total(), 1e-9)
	assert.Zero(t, Allocation{}.Total())
}

func TestRiskProfile_Valid(t *testing.T) {
	assert.True(t, Aggressive.Valid())
	assert.False(t, RiskProfile("Reckless").Valid())
}
