package lateconsideration

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/worklog-backend-go/internal/domain/approval"
	"github.com/cmlabs-hris/worklog-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/worklog-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/worklog-backend-go/internal/domain/lateconsideration"
	"github.com/cmlabs-hris/worklog-backend-go/internal/pkg/clock"
	"github.com/cmlabs-hris/worklog-backend-go/internal/pkg/timeofday"
	"github.com/cmlabs-hris/worklog-backend-go/internal/pkg/validator"
	"github.com/cmlabs-hris/worklog-backend-go/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	svc        lateconsideration.LateConsiderationService
	attendance attendance.AttendanceRepository
	employeeID string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	clk := clock.Fixed(time.Date(2026, 3, 3, 9, 0, 0, 0, time.UTC))
	store := memory.NewStore(memory.WithClock(clk))
	e, err := memory.NewEmployeeRepository(store).Create(context.Background(), employee.Employee{
		EmployeeCode: "EMP001",
		FullName:     "Ana Reyes",
		Position:     "Support",
		Department:   "Customer Care",
		IsActive:     true,
	})
	require.NoError(t, err)

	records := memory.NewAttendanceRepository(store)
	return &fixture{
		svc:        NewLateConsiderationService(memory.NewLateConsiderationRepository(store), records, nil, clk),
		attendance: records,
		employeeID: e.ID,
	}
}

func (f *fixture) record(t *testing.T, day int, timeIn, status string) {
	t.Helper()
	in := timeofday.MustParse(timeIn)
	_, err := f.attendance.Create(context.Background(), attendance.Record{
		EmployeeID: f.employeeID,
		Date:       time.Date(2026, 3, day, 0, 0, 0, 0, time.UTC),
		TimeIn:     &in,
		Status:     &status,
	})
	require.NoError(t, err)
}

func TestLateConsiderationLifecycle(t *testing.T) {
	f := newFixture(t)
	f.record(t, 2, "08:40:00", "Late, Complete")
	svc := f.svc
	ctx := context.Background()

	_, err := svc.Submit(ctx, lateconsideration.CreateLateConsiderationRequest{
		EmployeeID:     f.employeeID,
		AttendanceDate: "2026-03-04",
		Reason:         "Typhoon signal no. 2",
	})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "attendance_date cannot be in the future", verrs.ToMap()["attendance_date"])

	lc, err := svc.Submit(ctx, lateconsideration.CreateLateConsiderationRequest{
		EmployeeID:     f.employeeID,
		AttendanceDate: "2026-03-02",
		Reason:         "Typhoon signal no. 2",
	})
	require.NoError(t, err)

	res, err := svc.Reject(ctx, approval.ReviewInput{RequestID: lc.ID, ReviewerID: "admin-1"})
	require.NoError(t, err)
	assert.True(t, res.OK)
	assert.Equal(t, "Late consideration request rejected.", res.Message)

	res, err = svc.Approve(ctx, approval.ReviewInput{RequestID: lc.ID, ReviewerID: "admin-1"})
	require.NoError(t, err)
	assert.False(t, res.OK)
	assert.Equal(t, "This late consideration request has already been rejected.", res.Message)

	mine, err := svc.Mine(ctx, f.employeeID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, approval.StatusRejected, mine[0].Status)
}

func TestSubmit_RequiresLateAttendance(t *testing.T) {
	f := newFixture(t)
	f.record(t, 2, "08:00:00", "On Time, Complete")
	ctx := context.Background()

	for _, date := range []string{"2026-03-02", "2026-02-27"} {
		_, err := f.svc.Submit(ctx, lateconsideration.CreateLateConsiderationRequest{
			EmployeeID:     f.employeeID,
			AttendanceDate: date,
			Reason:         "Traffic",
		})
		var verrs validator.ValidationErrors
		require.ErrorAs(t, err, &verrs, date)
		assert.Equal(t, "no late attendance recorded on attendance_date", verrs.ToMap()["attendance_date"])
	}

	mine, err := f.svc.Mine(ctx, f.employeeID)
	require.NoError(t, err)
	assert.Empty(t, mine)
}
