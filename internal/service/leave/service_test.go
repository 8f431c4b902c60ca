package leave

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/cmlabs-hris/worklog-backend-go/internal/domain/approval"
	"github.com/cmlabs-hris/worklog-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/worklog-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/worklog-backend-go/internal/pkg/clock"
	"github.com/cmlabs-hris/worklog-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/worklog-backend-go/internal/pkg/validator"
	"github.com/cmlabs-hris/worklog-backend-go/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingListener struct {
	mu      sync.Mutex
	notices []approval.Notice
}

func (l *recordingListener) Decided(_ context.Context, n approval.Notice) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.notices = append(l.notices, n)
}

// failingSettle makes every debit fail after the approval is stored.
type failingSettle struct {
	leave.LeaveRepository
}

func (failingSettle) SettleCredits(context.Context, string) (int64, error) {
	return 0, errors.New("connection reset by peer")
}

type fixture struct {
	now       time.Time
	clock     clock.Clock
	store     *memory.Store
	employees employee.EmployeeRepository
	leaves    leave.LeaveRepository
	listener  *recordingListener
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{now: time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)}
	f.clock = clock.Func(func() time.Time { return f.now })
	f.store = memory.NewStore(memory.WithClock(f.clock))
	f.employees = memory.NewEmployeeRepository(f.store)
	f.leaves = memory.NewLeaveRepository(f.store)
	f.listener = &recordingListener{}
	return f
}

func (f *fixture) employee(t *testing.T, code string, credits int) employee.Employee {
	t.Helper()
	e, err := f.employees.Create(context.Background(), employee.Employee{
		EmployeeCode: code,
		FullName:     "Employee " + code,
		Position:     "Clerk",
		Department:   "Operations",
		LeaveCredits: credits,
		IsActive:     true,
	})
	require.NoError(t, err)
	return e
}

func (f *fixture) service(repo leave.LeaveRepository) leave.LeaveService {
	return NewLeaveService(repo, f.employees, f.listener, f.clock)
}

func (f *fixture) submit(t *testing.T, svc leave.LeaveService, employeeID, start, end string) leave.LeaveRequestResponse {
	t.Helper()
	resp, err := svc.Submit(context.Background(), leave.CreateLeaveRequest{
		EmployeeID: employeeID,
		LeaveType:  string(leave.TypeVacation),
		StartDate:  start,
		EndDate:    end,
		Reason:     "Family trip",
	})
	require.NoError(t, err)
	return resp
}

func review(id string) approval.ReviewInput {
	return approval.ReviewInput{RequestID: id, ReviewerID: "admin-1"}
}

func TestApprove_InsufficientCreditsRefusesWithoutWrite(t *testing.T) {
	f := newFixture(t)
	svc := f.service(f.leaves)
	e := f.employee(t, "EMP001", 3)
	lr := f.submit(t, svc, e.ID, "2026-03-02", "2026-03-06")
	require.Equal(t, 5, lr.DaysCount)

	res, err := svc.Approve(context.Background(), review(lr.ID))
	require.NoError(t, err)
	assert.False(t, res.OK)
	assert.ErrorIs(t, res.Reason, leave.ErrInsufficientCredits)
	assert.Equal(t, "Insufficient leave credits. Available: 3, Required: 5", res.Message)
	assert.Equal(t, "INSUFFICIENT_CREDITS", res.Code)

	stored, err := f.leaves.GetByID(context.Background(), lr.ID)
	require.NoError(t, err)
	assert.Equal(t, approval.StatusPending, stored.Status)
	assert.Nil(t, stored.ReviewedBy)

	credits, err := f.employees.GetLeaveCredits(context.Background(), e.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, credits)
	assert.Empty(t, f.listener.notices)
}

func TestApprove_DebitsOnceAndRefusesSecondReview(t *testing.T) {
	f := newFixture(t)
	svc := f.service(f.leaves)
	e := f.employee(t, "EMP001", 10)
	lr := f.submit(t, svc, e.ID, "2026-03-02", "2026-03-06")

	res, err := svc.Approve(context.Background(), review(lr.ID))
	require.NoError(t, err)
	assert.True(t, res.OK)
	assert.Equal(t, approval.StatusApproved, res.Status)
	assert.Equal(t, "Leave request approved successfully.", res.Message)

	credits, err := f.employees.GetLeaveCredits(context.Background(), e.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, credits)

	again, err := svc.Approve(context.Background(), review(lr.ID))
	require.NoError(t, err)
	assert.False(t, again.OK)
	assert.ErrorIs(t, again.Reason, approval.ErrAlreadyReviewed)
	assert.Equal(t, "This leave request has already been approved.", again.Message)

	rejected, err := svc.Reject(context.Background(), review(lr.ID))
	require.NoError(t, err)
	assert.ErrorIs(t, rejected.Reason, approval.ErrAlreadyReviewed)

	credits, err = f.employees.GetLeaveCredits(context.Background(), e.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, credits)

	stored, err := f.leaves.GetByID(context.Background(), lr.ID)
	require.NoError(t, err)
	assert.True(t, stored.CreditsDebited)

	require.Len(t, f.listener.notices, 1)
	assert.Equal(t, approval.StatusApproved, f.listener.notices[0].Status)
	assert.Equal(t, e.ID, f.listener.notices[0].EmployeeID)
}

func TestReject_LeavesCreditsUntouched(t *testing.T) {
	f := newFixture(t)
	svc := f.service(f.leaves)
	e := f.employee(t, "EMP001", 2)
	lr := f.submit(t, svc, e.ID, "2026-03-02", "2026-03-06")

	remarks := "Peak season"
	in := review(lr.ID)
	in.Remarks = &remarks
	res, err := svc.Reject(context.Background(), in)
	require.NoError(t, err)
	assert.True(t, res.OK)
	assert.Equal(t, "Leave request rejected.", res.Message)

	stored, err := f.leaves.GetByID(context.Background(), lr.ID)
	require.NoError(t, err)
	assert.Equal(t, approval.StatusRejected, stored.Status)
	require.NotNil(t, stored.Remarks)
	assert.Equal(t, remarks, *stored.Remarks)
	assert.False(t, stored.CreditsDebited)
}

func TestApprove_UnknownRequest(t *testing.T) {
	f := newFixture(t)
	svc := f.service(f.leaves)

	res, err := svc.Approve(context.Background(), review("missing"))
	require.NoError(t, err)
	assert.False(t, res.OK)
	assert.ErrorIs(t, res.Reason, approval.ErrRequestNotFound)
	assert.Equal(t, "Leave request not found.", res.Message)
}

func TestSubmit_Validation(t *testing.T) {
	f := newFixture(t)
	svc := f.service(f.leaves)
	e := f.employee(t, "EMP001", 10)

	_, err := svc.Submit(context.Background(), leave.CreateLeaveRequest{
		EmployeeID: e.ID,
		LeaveType:  string(leave.TypeSick),
		StartDate:  "2026-03-01",
		EndDate:    "2026-03-02",
		Reason:     "Flu",
	})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "start_date cannot be in the past", verrs.ToMap()["start_date"])

	f.submit(t, svc, e.ID, "2026-03-09", "2026-03-10")
	_, err = svc.Submit(context.Background(), leave.CreateLeaveRequest{
		EmployeeID: e.ID,
		LeaveType:  string(leave.TypePersonal),
		StartDate:  "2026-03-09",
		EndDate:    "2026-03-10",
		Reason:     "Errands",
	})
	assert.ErrorIs(t, err, approval.ErrDuplicateRequest)

	pending, err := svc.PendingCount(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 1, pending)
}

func TestApprove_DebitFailureFlagsReconciliation(t *testing.T) {
	f := newFixture(t)
	broken := f.service(failingSettle{f.leaves})
	e := f.employee(t, "EMP001", 10)
	lr := f.submit(t, broken, e.ID, "2026-03-02", "2026-03-04")

	res, err := broken.Approve(context.Background(), review(lr.ID))
	require.Error(t, err)
	assert.ErrorIs(t, err, approval.ErrReconciliationNeeded)
	assert.True(t, database.IsStorageError(err))
	var recErr *approval.ReconciliationError
	require.ErrorAs(t, err, &recErr)
	assert.Equal(t, lr.ID, recErr.RequestID)
	assert.False(t, res.OK)
	assert.ErrorIs(t, res.Reason, approval.ErrReconciliationNeeded)

	stored, err := f.leaves.GetByID(context.Background(), lr.ID)
	require.NoError(t, err)
	assert.Equal(t, approval.StatusApproved, stored.Status)
	assert.False(t, stored.CreditsDebited)
	require.Len(t, f.listener.notices, 1)

	svc := f.service(f.leaves)

	f.now = f.now.Add(time.Minute)
	report, err := svc.Reconcile(context.Background(), leave.ReconcileOptions{MinAge: time.Hour})
	require.NoError(t, err)
	assert.Empty(t, report.Unsettled)

	f.now = f.now.Add(2 * time.Hour)
	report, err = svc.Reconcile(context.Background(), leave.ReconcileOptions{MinAge: time.Hour})
	require.NoError(t, err)
	assert.Equal(t, []string{lr.ID}, report.Unsettled)
	assert.Empty(t, report.Settled)

	report, err = svc.Reconcile(context.Background(), leave.ReconcileOptions{MinAge: time.Hour, AutoSettle: true})
	require.NoError(t, err)
	assert.Equal(t, []string{lr.ID}, report.Settled)

	credits, err := f.employees.GetLeaveCredits(context.Background(), e.ID)
	require.NoError(t, err)
	assert.Equal(t, 7, credits)

	_, err = svc.Settle(context.Background(), lr.ID)
	assert.ErrorIs(t, err, leave.ErrAlreadySettled)
}

func TestSettle_RefusesPendingRequest(t *testing.T) {
	f := newFixture(t)
	svc := f.service(f.leaves)
	e := f.employee(t, "EMP001", 10)
	lr := f.submit(t, svc, e.ID, "2026-03-02", "2026-03-02")

	_, err := svc.Settle(context.Background(), lr.ID)
	assert.ErrorIs(t, err, leave.ErrNotApproved)
}
