package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanTransition(t *testing.T) {
	allowed := []struct{ from, to PayrollStatus }{
		{StatusPending, StatusApproved},
		{StatusPending, StatusCancelled},
		{StatusApproved, StatusPaid},
		{StatusApproved, StatusCancelled},
	}
	for _, tc := range allowed {
		assert.True(t, CanTransition(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}

	denied := []struct{ from, to PayrollStatus }{
		{StatusPending, StatusPaid},
		{StatusApproved, StatusPending},
		{StatusPaid, StatusApproved},
		{StatusPaid, StatusCancelled},
		{StatusCancelled, StatusPending},
		{StatusCancelled, StatusApproved},
	}
	for _, tc := range denied {
		assert.False(t, CanTransition(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestIsTerminal(t *testing.T) {
	assert.False(t, StatusPending.IsTerminal())
	assert.False(t, StatusApproved.IsTerminal())
	assert.True(t, StatusPaid.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
}

func TestParsePayMonth(t *testing.T) {
	month, err := ParsePayMonth("2025-07")
	require.NoError(t, err)
	assert.Equal(t, "2025-07", month)

	for _, bad := range []string{"", "2025", "2025-13", "07-2025", "2025-07-01"} {
		_, err := ParsePayMonth(bad)
		assert.Error(t, err, "input %q", bad)
	}
}

func TestPreviousPayMonth(t *testing.T) {
	now := time.Date(2025, time.August, 1, 9, 0, 0, 0, time.UTC)
	assert.Equal(t, "2025-07", PreviousPayMonth(now))

	janFirst := time.Date(2025, time.January, 1, 9, 0, 0, 0, time.UTC)
	assert.Equal(t, "2024-12", PreviousPayMonth(janFirst))
}

func TestAuthorizationPredicates(t *testing.T) {
	// HR on the matching source state.
	assert.True(t, CanApprove(StatusPending, RoleHR))
	assert.True(t, CanMarkPaid(StatusApproved, RoleHR))
	assert.True(t, CanEdit(StatusPending, RoleHR))
	assert.True(t, CanDelete(StatusPending, RoleHR))
	assert.True(t, CanDelete(StatusApproved, RoleHR))

	// Wrong state.
	assert.False(t, CanApprove(StatusApproved, RoleHR))
	assert.False(t, CanMarkPaid(StatusPending, RoleHR))
	assert.False(t, CanEdit(StatusPaid, RoleHR))
	assert.False(t, CanDelete(StatusPaid, RoleHR))
	assert.False(t, CanDelete(StatusCancelled, RoleHR))

	// Wrong role, even admins.
	for _, role := range []Role{RoleAdmin, RoleFaculty} {
		assert.False(t, CanApprove(StatusPending, role))
		assert.False(t, CanMarkPaid(StatusApproved, role))
		assert.False(t, CanEdit(StatusPending, role))
		assert.False(t, CanDelete(StatusPending, role))
	}
}

func TestIsBroadcastRecipient(t *testing.T) {
	assert.True(t, IsBroadcastRecipient(RecipientHRTeam))
	assert.True(t, IsBroadcastRecipient(RecipientSystem))
	assert.False(t, IsBroadcastRecipient("FAC001"))
	assert.False(t, IsBroadcastRecipient(""))
}
