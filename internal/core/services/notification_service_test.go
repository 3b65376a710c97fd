package services

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"college-cms/internal/adapters/persistence/models"
	"college-cms/internal/core/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testNotification(recipientID string) domain.Notification {
	return domain.Notification{
		Type:        domain.NotifyPayrollApproved,
		Title:       "Salary Approved",
		Message:     "Your salary for 2025-07 has been approved.",
		RecipientID: recipientID,
	}
}

func TestPublishAssignsIDAndTimestamp(t *testing.T) {
	store := NewNotificationService(0)

	require.NoError(t, store.Publish(testNotification("FAC001")))

	entries := store.List("FAC001")
	require.Len(t, entries, 1)
	assert.NotEmpty(t, entries[0].ID)
	assert.False(t, entries[0].Timestamp.IsZero())
	assert.False(t, entries[0].Read)
}

func TestBoundedLogEvictsOldestFirst(t *testing.T) {
	store := NewNotificationService(50)

	for i := 1; i <= 51; i++ {
		n := testNotification("FAC001")
		n.ID = fmt.Sprintf("n-%d", i)
		require.NoError(t, store.Publish(n))
	}

	entries := store.List("FAC001")
	require.Len(t, entries, 50)

	// Newest first; the very first insert has been evicted.
	assert.Equal(t, "n-51", entries[0].ID)
	assert.Equal(t, "n-2", entries[49].ID)
}

func TestEvictionIgnoresReadState(t *testing.T) {
	store := NewNotificationService(2)

	first := testNotification("FAC001")
	first.ID = "first"
	require.NoError(t, store.Publish(first))
	// Unread entries are evicted like any other.
	for _, id := range []string{"second", "third"} {
		n := testNotification("FAC001")
		n.ID = id
		require.NoError(t, store.Publish(n))
	}

	entries := store.List("FAC001")
	require.Len(t, entries, 2)
	assert.Equal(t, "third", entries[0].ID)
	assert.Equal(t, "second", entries[1].ID)
}

func TestListIncludesBroadcasts(t *testing.T) {
	store := NewNotificationService(0)

	require.NoError(t, store.Publish(testNotification("FAC001")))
	require.NoError(t, store.Publish(testNotification("FAC002")))
	require.NoError(t, store.Publish(testNotification(domain.RecipientHRTeam)))
	require.NoError(t, store.Publish(testNotification(domain.RecipientSystem)))

	entries := store.List("FAC001")
	require.Len(t, entries, 3)
	for _, n := range entries {
		assert.NotEqual(t, "FAC002", n.RecipientID)
	}
}

func TestMarkAsRead(t *testing.T) {
	store := NewNotificationService(0)

	n := testNotification("FAC001")
	n.ID = "target"
	require.NoError(t, store.Publish(n))

	assert.Equal(t, 1, store.UnreadCount("FAC001"))
	require.NoError(t, store.MarkAsRead("target"))
	assert.Equal(t, 0, store.UnreadCount("FAC001"))

	assert.ErrorIs(t, store.MarkAsRead("missing"), domain.ErrNotFound)
}

func TestClearRemovesOnlyOwnEntries(t *testing.T) {
	store := NewNotificationService(0)

	require.NoError(t, store.Publish(testNotification("FAC001")))
	require.NoError(t, store.Publish(testNotification("FAC001")))
	require.NoError(t, store.Publish(testNotification("FAC002")))
	require.NoError(t, store.Publish(testNotification(domain.RecipientHRTeam)))

	removed := store.Clear("FAC001")
	assert.Equal(t, 2, removed)

	// Broadcast entry survives and is still visible to FAC001.
	entries := store.List("FAC001")
	require.Len(t, entries, 1)
	assert.Equal(t, domain.RecipientHRTeam, entries[0].RecipientID)

	// FAC002's entry was untouched.
	assert.Len(t, store.List("FAC002"), 2)
}

func TestPublishAfterCloseFails(t *testing.T) {
	store := NewNotificationService(0)
	store.Close()

	assert.ErrorIs(t, store.Publish(testNotification("FAC001")), ErrStoreClosed)
}

type failingChannel struct {
	mu    sync.Mutex
	calls int
}

func (f *failingChannel) Name() string { return "failing" }

func (f *failingChannel) Deliver(n domain.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return errors.New("delivery refused")
}

func TestDeliveryFailureIsSwallowed(t *testing.T) {
	channel := &failingChannel{}
	store := NewNotificationService(0, channel)

	require.NoError(t, store.Publish(testNotification("FAC001")))

	assert.Equal(t, 1, channel.calls)
	assert.Len(t, store.List("FAC001"), 1)
}

func TestPublishTransitionFormatsApproval(t *testing.T) {
	store := NewNotificationService(0)

	record := &models.PayrollRecord{
		ID:         12,
		EmployeeNo: "FAC001",
		PayMonth:   "2025-07",
		NetSalary:  decimal.RequireFromString("33579.55"),
		Status:     string(domain.StatusApproved),
	}

	require.NoError(t, store.PublishTransition(TransitionEvent{
		Type:       domain.NotifyPayrollApproved,
		Record:     record,
		OccurredAt: time.Now(),
	}))

	entries := store.List("FAC001")
	require.Len(t, entries, 1)
	assert.Equal(t, domain.NotifyPayrollApproved, entries[0].Type)
	assert.Equal(t, "Salary Approved", entries[0].Title)
	assert.Contains(t, entries[0].Message, "2025-07")
	assert.Equal(t, "33579.55", entries[0].Data["net_salary"])
}

func TestPublishCalculatedTargetsHRTeam(t *testing.T) {
	store := NewNotificationService(0)

	record := &models.PayrollRecord{
		ID:         3,
		EmployeeNo: "FAC001",
		PayMonth:   "2025-07",
		NetSalary:  decimal.RequireFromString("33579.55"),
		Status:     string(domain.StatusPending),
	}

	require.NoError(t, store.PublishCalculated(record))

	entries := store.List(domain.RecipientHRTeam)
	require.Len(t, entries, 1)
	assert.Equal(t, domain.NotifyPayrollCalculated, entries[0].Type)
	assert.Equal(t, domain.RecipientHRTeam, entries[0].RecipientID)
}

func TestPublishErrorTargetsSystem(t *testing.T) {
	store := NewNotificationService(0)

	require.NoError(t, store.PublishError("Payroll generation failed for FAC002", map[string]interface{}{
		"employee_no": "FAC002",
	}))

	entries := store.List(domain.RecipientSystem)
	require.Len(t, entries, 1)
	assert.Equal(t, domain.NotifyPayrollError, entries[0].Type)
}
