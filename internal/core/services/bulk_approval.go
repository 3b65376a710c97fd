package services

import (
	"context"
)

// BulkApprovalCoordinator applies the approve transition across a set of
// record ids with per-item accounting. Batches are best-effort by contract:
// a failure on one id never aborts or rolls back the others.
type BulkApprovalCoordinator struct {
	workflow *PayrollWorkflow
}

// NewBulkApprovalCoordinator creates a new bulk approval coordinator.
func NewBulkApprovalCoordinator(workflow *PayrollWorkflow) *BulkApprovalCoordinator {
	return &BulkApprovalCoordinator{workflow: workflow}
}

// BulkFailure records one id that could not be approved and why.
type BulkFailure struct {
	ID     uint   `json:"id"`
	Reason string `json:"reason"`
}

// BulkApprovalResult is returned only after every id has been attempted.
type BulkApprovalResult struct {
	SuccessCount int           `json:"success_count"`
	Failed       []BulkFailure `json:"failed"`
}

// BulkApprove attempts approve(id) for each unique id in the input.
// Duplicate ids are attempted once. Each attempt is independent: not-found,
// wrong-state and lost-race errors become entries in Failed while the rest
// of the batch proceeds. There are no partial results and no mid-batch
// cancellation; the result is a join over every attempt.
func (c *BulkApprovalCoordinator) BulkApprove(ctx context.Context, ids []uint, actorID *uint) *BulkApprovalResult {
	result := &BulkApprovalResult{Failed: []BulkFailure{}}

	seen := make(map[uint]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true

		if _, err := c.workflow.Approve(ctx, id, actorID); err != nil {
			result.Failed = append(result.Failed, BulkFailure{ID: id, Reason: err.Error()})
			continue
		}
		result.SuccessCount++
	}

	return result
}
