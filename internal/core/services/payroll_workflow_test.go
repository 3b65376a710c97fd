package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"college-cms/internal/adapters/persistence/models"
	"college-cms/internal/core/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fakePayrollRepo is an in-memory PayrollRepository with a real
// compare-and-swap UpdateStatus.
type fakePayrollRepo struct {
	mu      sync.Mutex
	nextID  uint
	records map[uint]*models.PayrollRecord

	// forceSwapFail makes every UpdateStatus report a lost swap, simulating a
	// concurrent caller winning the conditional update.
	forceSwapFail bool
}

func newFakePayrollRepo() *fakePayrollRepo {
	return &fakePayrollRepo{records: map[uint]*models.PayrollRecord{}}
}

func (f *fakePayrollRepo) add(status domain.PayrollStatus) *models.PayrollRecord {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.nextID++
	record := &models.PayrollRecord{
		ID:          f.nextID,
		FacultyID:   f.nextID,
		EmployeeNo:  "FAC001",
		PayMonth:    "2025-07",
		TotalDays:   22,
		PresentDays: 20,
		AbsentDays:  2,
		BasicSalary: decimal.NewFromInt(50000),
		NetSalary:   decimal.RequireFromString("33579.55"),
		Deductions:  decimal.RequireFromString("16420.45"),
		RuleVersion: DefaultRuleVersion,
		Status:      string(status),
	}
	f.records[record.ID] = record
	return record
}

func (f *fakePayrollRepo) Create(ctx context.Context, record *models.PayrollRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	record.ID = f.nextID
	f.records[record.ID] = record
	return nil
}

func (f *fakePayrollRepo) GetByID(ctx context.Context, id uint) (*models.PayrollRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	record, ok := f.records[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *record
	return &clone, nil
}

func (f *fakePayrollRepo) ExistsByFacultyAndMonth(ctx context.Context, facultyID uint, payMonth string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.records {
		if r.FacultyID == facultyID && r.PayMonth == payMonth {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakePayrollRepo) List(ctx context.Context, filter *domain.PayrollFilter, offset, limit int) ([]*models.PayrollRecord, int64, error) {
	all, err := f.ListAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return all, int64(len(all)), nil
}

func (f *fakePayrollRepo) ListAll(ctx context.Context, filter *domain.PayrollFilter) ([]*models.PayrollRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []*models.PayrollRecord
	for _, r := range f.records {
		clone := *r
		result = append(result, &clone)
	}
	return result, nil
}

func (f *fakePayrollRepo) ListByEmployeeNo(ctx context.Context, employeeNo string) ([]*models.PayrollRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []*models.PayrollRecord
	for _, r := range f.records {
		if r.EmployeeNo == employeeNo {
			clone := *r
			result = append(result, &clone)
		}
	}
	return result, nil
}

func (f *fakePayrollRepo) UpdateStatus(ctx context.Context, id uint, expected, next domain.PayrollStatus, at time.Time, actorID *uint) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.forceSwapFail {
		return false, nil
	}

	record, ok := f.records[id]
	if !ok || record.Status != string(expected) {
		return false, nil
	}

	record.Status = string(next)
	switch next {
	case domain.StatusApproved:
		record.ApprovedAt = &at
		record.ApprovedBy = actorID
	case domain.StatusPaid:
		record.PaidAt = &at
	case domain.StatusCancelled:
		record.CancelledAt = &at
	}
	return true, nil
}

// fakePublisher records transition events.
type fakePublisher struct {
	mu     sync.Mutex
	events []TransitionEvent
	err    error
}

func (f *fakePublisher) PublishTransition(event TransitionEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, event)
	return nil
}

func (f *fakePublisher) published() []TransitionEvent {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]TransitionEvent(nil), f.events...)
}

func uintPtr(v uint) *uint { return &v }

func TestApprovePendingRecord(t *testing.T) {
	repo := newFakePayrollRepo()
	events := &fakePublisher{}
	workflow := NewPayrollWorkflow(repo, events)

	record := repo.add(domain.StatusPending)

	updated, err := workflow.Approve(context.Background(), record.ID, uintPtr(7))
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusApproved), updated.Status)
	require.NotNil(t, updated.ApprovedAt)
	require.NotNil(t, updated.ApprovedBy)
	assert.Equal(t, uint(7), *updated.ApprovedBy)

	published := events.published()
	require.Len(t, published, 1)
	assert.Equal(t, domain.NotifyPayrollApproved, published[0].Type)
	assert.Equal(t, string(domain.StatusApproved), published[0].Record.Status)
}

func TestApproveAlreadyApprovedFailsWithoutPublishing(t *testing.T) {
	repo := newFakePayrollRepo()
	events := &fakePublisher{}
	workflow := NewPayrollWorkflow(repo, events)

	record := repo.add(domain.StatusApproved)

	_, err := workflow.Approve(context.Background(), record.ID, nil)

	var alreadyErr *domain.AlreadyInStateError
	require.ErrorAs(t, err, &alreadyErr)
	assert.Equal(t, domain.StatusApproved, alreadyErr.Status)
	assert.Empty(t, events.published())
}

func TestApproveWrongStateFails(t *testing.T) {
	repo := newFakePayrollRepo()
	events := &fakePublisher{}
	workflow := NewPayrollWorkflow(repo, events)

	for _, status := range []domain.PayrollStatus{domain.StatusPaid, domain.StatusCancelled} {
		record := repo.add(status)

		_, err := workflow.Approve(context.Background(), record.ID, nil)

		var stateErr *domain.InvalidStateTransitionError
		require.ErrorAs(t, err, &stateErr)
		assert.Equal(t, status, stateErr.Current)

		// Record is untouched.
		fresh, _ := repo.GetByID(context.Background(), record.ID)
		assert.Equal(t, string(status), fresh.Status)
	}
	assert.Empty(t, events.published())
}

func TestApproveUnknownRecord(t *testing.T) {
	workflow := NewPayrollWorkflow(newFakePayrollRepo(), &fakePublisher{})

	_, err := workflow.Approve(context.Background(), 999, nil)
	assert.ErrorIs(t, err, domain.ErrPayrollNotFound)
}

func TestApproveLostSwapFailsWithoutPublishing(t *testing.T) {
	repo := newFakePayrollRepo()
	events := &fakePublisher{}
	workflow := NewPayrollWorkflow(repo, events)

	record := repo.add(domain.StatusPending)
	repo.forceSwapFail = true

	_, err := workflow.Approve(context.Background(), record.ID, nil)

	var stateErr *domain.InvalidStateTransitionError
	require.ErrorAs(t, err, &stateErr)
	assert.Empty(t, events.published())
}

func TestMarkPaidApprovedRecord(t *testing.T) {
	repo := newFakePayrollRepo()
	events := &fakePublisher{}
	workflow := NewPayrollWorkflow(repo, events)

	record := repo.add(domain.StatusApproved)

	updated, err := workflow.MarkPaid(context.Background(), record.ID, nil)
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusPaid), updated.Status)
	require.NotNil(t, updated.PaidAt)

	published := events.published()
	require.Len(t, published, 1)
	assert.Equal(t, domain.NotifyPayrollPaid, published[0].Type)
}

func TestMarkPaidPendingRecordFails(t *testing.T) {
	repo := newFakePayrollRepo()
	workflow := NewPayrollWorkflow(repo, &fakePublisher{})

	record := repo.add(domain.StatusPending)

	_, err := workflow.MarkPaid(context.Background(), record.ID, nil)

	var stateErr *domain.InvalidStateTransitionError
	require.ErrorAs(t, err, &stateErr)
	assert.Equal(t, domain.StatusPending, stateErr.Current)
}

func TestCancelFromNonTerminalStates(t *testing.T) {
	repo := newFakePayrollRepo()
	events := &fakePublisher{}
	workflow := NewPayrollWorkflow(repo, events)

	for _, status := range []domain.PayrollStatus{domain.StatusPending, domain.StatusApproved} {
		record := repo.add(status)

		updated, err := workflow.Cancel(context.Background(), record.ID, nil)
		require.NoError(t, err)

		assert.Equal(t, string(domain.StatusCancelled), updated.Status)
		require.NotNil(t, updated.CancelledAt)
	}

	// Cancellation never notifies anyone.
	assert.Empty(t, events.published())
}

func TestCancelTerminalStatesFail(t *testing.T) {
	repo := newFakePayrollRepo()
	workflow := NewPayrollWorkflow(repo, &fakePublisher{})

	paid := repo.add(domain.StatusPaid)
	_, err := workflow.Cancel(context.Background(), paid.ID, nil)
	var stateErr *domain.InvalidStateTransitionError
	require.ErrorAs(t, err, &stateErr)

	cancelled := repo.add(domain.StatusCancelled)
	_, err = workflow.Cancel(context.Background(), cancelled.ID, nil)
	var alreadyErr *domain.AlreadyInStateError
	require.ErrorAs(t, err, &alreadyErr)
}

func TestPublishFailureDoesNotFailTransition(t *testing.T) {
	repo := newFakePayrollRepo()
	events := &fakePublisher{err: errors.New("store unavailable")}
	workflow := NewPayrollWorkflow(repo, events)

	record := repo.add(domain.StatusPending)

	updated, err := workflow.Approve(context.Background(), record.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusApproved), updated.Status)
}
