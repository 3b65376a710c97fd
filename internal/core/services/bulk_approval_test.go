package services

import (
	"context"
	"testing"

	"college-cms/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBulkApprovePartialFailure(t *testing.T) {
	repo := newFakePayrollRepo()
	events := &fakePublisher{}
	workflow := NewPayrollWorkflow(repo, events)
	bulk := NewBulkApprovalCoordinator(workflow)

	pending := repo.add(domain.StatusPending)
	approved := repo.add(domain.StatusApproved)
	unknown := uint(999)

	result := bulk.BulkApprove(context.Background(), []uint{pending.ID, approved.ID, unknown}, uintPtr(1))

	assert.Equal(t, 1, result.SuccessCount)
	require.Len(t, result.Failed, 2)

	failedIDs := []uint{result.Failed[0].ID, result.Failed[1].ID}
	assert.ElementsMatch(t, []uint{approved.ID, unknown}, failedIDs)
	for _, f := range result.Failed {
		assert.NotEmpty(t, f.Reason)
	}

	// Only the pending record moved.
	fresh, _ := repo.GetByID(context.Background(), pending.ID)
	assert.Equal(t, string(domain.StatusApproved), fresh.Status)

	// One approval, one event.
	assert.Len(t, events.published(), 1)
}

func TestBulkApproveDeduplicatesIDs(t *testing.T) {
	repo := newFakePayrollRepo()
	workflow := NewPayrollWorkflow(repo, &fakePublisher{})
	bulk := NewBulkApprovalCoordinator(workflow)

	record := repo.add(domain.StatusPending)

	result := bulk.BulkApprove(context.Background(), []uint{record.ID, record.ID, record.ID}, nil)

	// One attempt, one success; duplicates never produce AlreadyInState failures.
	assert.Equal(t, 1, result.SuccessCount)
	assert.Empty(t, result.Failed)
}

func TestBulkApproveAllFail(t *testing.T) {
	repo := newFakePayrollRepo()
	workflow := NewPayrollWorkflow(repo, &fakePublisher{})
	bulk := NewBulkApprovalCoordinator(workflow)

	paid := repo.add(domain.StatusPaid)
	cancelled := repo.add(domain.StatusCancelled)

	result := bulk.BulkApprove(context.Background(), []uint{paid.ID, cancelled.ID}, nil)

	assert.Equal(t, 0, result.SuccessCount)
	assert.Len(t, result.Failed, 2)
}

func TestBulkApproveEmptyInput(t *testing.T) {
	workflow := NewPayrollWorkflow(newFakePayrollRepo(), &fakePublisher{})
	bulk := NewBulkApprovalCoordinator(workflow)

	result := bulk.BulkApprove(context.Background(), nil, nil)

	assert.Equal(t, 0, result.SuccessCount)
	assert.Empty(t, result.Failed)
}
