package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cmlabs-hris/worklog-backend-go/internal/config"
	"github.com/cmlabs-hris/worklog-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/worklog-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/worklog-backend-go/internal/pkg/clock"
	"github.com/cmlabs-hris/worklog-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/worklog-backend-go/internal/pkg/sse"
	"github.com/cmlabs-hris/worklog-backend-go/internal/repository/memory"
	attendanceService "github.com/cmlabs-hris/worklog-backend-go/internal/service/attendance"
	employeeService "github.com/cmlabs-hris/worklog-backend-go/internal/service/employee"
	lateService "github.com/cmlabs-hris/worklog-backend-go/internal/service/lateconsideration"
	leaveService "github.com/cmlabs-hris/worklog-backend-go/internal/service/leave"
	notificationService "github.com/cmlabs-hris/worklog-backend-go/internal/service/notification"
	overtimeService "github.com/cmlabs-hris/worklog-backend-go/internal/service/overtime"
	shiftService "github.com/cmlabs-hris/worklog-backend-go/internal/service/shift"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Details map[string]string `json:"details"`
	} `json:"error"`
}

type testServer struct {
	now       time.Time
	router    http.Handler
	jwt       jwt.Service
	employees employee.EmployeeRepository
}

func newTestServer(t *testing.T, now time.Time) *testServer {
	t.Helper()

	ts := &testServer{now: now}
	clk := clock.Func(func() time.Time { return ts.now })
	store := memory.NewStore(memory.WithClock(clk))

	ts.employees = memory.NewEmployeeRepository(store)
	shifts := memory.NewShiftRepository(store)
	leaves := memory.NewLeaveRepository(store)
	overtimes := memory.NewOvertimeRepository(store)
	lates := memory.NewLateConsiderationRepository(store)
	records := memory.NewAttendanceRepository(store)
	tx := memory.NewTransactor()

	notifier := notificationService.NewNotificationService(leaves, overtimes, lates, sse.NewHub(), notificationService.Config{})
	t.Cleanup(notifier.Stop)

	shiftSvc := shiftService.NewShiftService(shifts, tx)

	var err error
	ts.jwt, err = jwt.NewJWTService("router-test-secret", "1h")
	require.NoError(t, err)

	ts.router = NewRouter(config.AppConfig{Env: "test", Version: "test"}, slog.LevelError, ts.jwt, Handlers{
		Attendance:        NewAttendanceHandler(attendanceService.NewAttendanceService(records, overtimes, shiftSvc, clk), clk),
		Leave:             NewLeaveHandler(leaveService.NewLeaveService(leaves, ts.employees, notifier, clk)),
		Overtime:          NewOvertimeHandler(overtimeService.NewOvertimeService(overtimes, notifier, clk), clk),
		LateConsideration: NewLateConsiderationHandler(lateService.NewLateConsiderationService(lates, records, notifier, clk)),
		Notification:      NewNotificationHandler(notifier, ts.jwt),
		Shift:             NewShiftHandler(shiftSvc),
		Employee:          NewEmployeeHandler(employeeService.NewEmployeeService(ts.employees, shifts, tx)),
	})
	return ts
}

func (ts *testServer) employee(t *testing.T, code string, credits int) employee.Employee {
	t.Helper()
	e, err := ts.employees.Create(context.Background(), employee.Employee{
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

func (ts *testServer) token(t *testing.T, employeeID string, role user.Role) string {
	t.Helper()
	token, _, err := ts.jwt.GenerateAccessToken(employeeID, role)
	require.NoError(t, err)
	return token
}

func (ts *testServer) do(t *testing.T, method, path, token string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	}
	return rec, env
}

// Monday 2026-03-02, 09:00.
var monday = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

func TestRouter_RequiresAccessToken(t *testing.T) {
	ts := newTestServer(t, monday)

	rec, _ := ts.do(t, http.MethodGet, "/api/v1/attendance/today", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	emp := ts.employee(t, "EMP001", 5)
	sseToken, _, err := ts.jwt.GenerateSSEToken(emp.ID)
	require.NoError(t, err)

	rec, _ = ts.do(t, http.MethodGet, "/api/v1/attendance/today", sseToken, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_PermissionDenied(t *testing.T) {
	ts := newTestServer(t, monday)
	emp := ts.employee(t, "EMP001", 5)

	rec, env := ts.do(t, http.MethodGet, "/api/v1/employees", ts.token(t, emp.ID, user.RoleEmployee), nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "FORBIDDEN", env.Error.Code)

	rec, _ = ts.do(t, http.MethodGet, "/api/v1/leave-requests/pending-count", ts.token(t, emp.ID, user.RoleStaff), nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_LeaveApprovalFlow(t *testing.T) {
	ts := newTestServer(t, monday)
	emp := ts.employee(t, "EMP001", 5)
	admin := ts.employee(t, "EMP002", 5)
	empToken := ts.token(t, emp.ID, user.RoleEmployee)
	adminToken := ts.token(t, admin.ID, user.RoleAdmin)

	rec, env := ts.do(t, http.MethodPost, "/api/v1/leave-requests", empToken, map[string]any{
		"leave_type": "Vacation Leave",
		"start_date": "2026-03-09",
		"end_date":   "2026-03-10",
		"reason":     "Family trip",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created struct {
		ID string `json:"leave_request_id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))

	rec, _ = ts.do(t, http.MethodPost, "/api/v1/leave-requests", empToken, map[string]any{
		"leave_type": "Vacation Leave",
		"start_date": "2026-03-09",
		"end_date":   "2026-03-10",
		"reason":     "Again",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec, env = ts.do(t, http.MethodPost, "/api/v1/leave-requests/"+created.ID+"/approve", adminToken, map[string]any{"remarks": "Enjoy"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.True(t, env.Success)

	rec, env = ts.do(t, http.MethodPost, "/api/v1/leave-requests/"+created.ID+"/reject", adminToken, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "ALREADY_REVIEWED", env.Error.Code)

	rec, env = ts.do(t, http.MethodGet, "/api/v1/notifications/reviews", empToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var notices struct {
		Count int `json:"count"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &notices))
	assert.Equal(t, 1, notices.Count)

	rec, env = ts.do(t, http.MethodPost, "/api/v1/notifications/reviews/read-all", empToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"marked":1}`, string(env.Data))

	rec, env = ts.do(t, http.MethodPost, "/api/v1/notifications/reviews/read-all", empToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"marked":0}`, string(env.Data))
}

func TestRouter_ApproveRefusals(t *testing.T) {
	ts := newTestServer(t, monday)
	emp := ts.employee(t, "EMP001", 1)
	admin := ts.employee(t, "EMP002", 5)
	adminToken := ts.token(t, admin.ID, user.RoleAdmin)

	rec, env := ts.do(t, http.MethodPost, "/api/v1/leave-requests", ts.token(t, emp.ID, user.RoleEmployee), map[string]any{
		"leave_type": "Sick Leave",
		"start_date": "2026-03-09",
		"end_date":   "2026-03-11",
		"reason":     "Recovery",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created struct {
		ID string `json:"leave_request_id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))

	rec, env = ts.do(t, http.MethodPost, "/api/v1/leave-requests/"+created.ID+"/approve", adminToken, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "INSUFFICIENT_CREDITS", env.Error.Code)

	rec, env = ts.do(t, http.MethodPost, "/api/v1/leave-requests/0190c8e4-9d4a-7b6e-8f3a-2c1d5e6f7a8b/approve", adminToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "REQUEST_NOT_FOUND", env.Error.Code)
}

func TestRouter_ValidationError(t *testing.T) {
	ts := newTestServer(t, monday)
	emp := ts.employee(t, "EMP001", 5)

	rec, env := ts.do(t, http.MethodPost, "/api/v1/overtime-requests", ts.token(t, emp.ID, user.RoleEmployee), map[string]any{
		"request_date":    "03/09/2026",
		"hours_requested": 2,
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
	assert.Contains(t, env.Error.Details, "request_date")
	assert.Contains(t, env.Error.Details, "reason")
}

func TestRouter_AttendanceGuardIsConflict(t *testing.T) {
	// Sunday
	ts := newTestServer(t, time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))
	emp := ts.employee(t, "EMP001", 5)
	token := ts.token(t, emp.ID, user.RoleEmployee)

	rec, env := ts.do(t, http.MethodPost, "/api/v1/attendance/check-in", token, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "NON_WORK_DAY", env.Error.Code)

	var outcome struct {
		Allowed bool   `json:"allowed"`
		Title   string `json:"title"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &outcome))
	assert.False(t, outcome.Allowed)
	assert.Equal(t, "Sunday - No Work Day", outcome.Title)
}

func TestRouter_AttendanceDay(t *testing.T) {
	ts := newTestServer(t, time.Date(2026, 3, 2, 8, 5, 0, 0, time.UTC))
	emp := ts.employee(t, "EMP001", 5)
	token := ts.token(t, emp.ID, user.RoleEmployee)

	rec, _ := ts.do(t, http.MethodPost, "/api/v1/attendance/check-in", token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec, env := ts.do(t, http.MethodPost, "/api/v1/attendance/check-in", token, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "ALREADY_CHECKED_IN", env.Error.Code)

	rec, env = ts.do(t, http.MethodGet, "/api/v1/attendance/checks", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var checks struct {
		CheckOut struct {
			Allowed bool `json:"allowed"`
		} `json:"check_out"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &checks))
	assert.True(t, checks.CheckOut.Allowed)

	ts.now = time.Date(2026, 3, 2, 17, 30, 0, 0, time.UTC)
	rec, env = ts.do(t, http.MethodPost, "/api/v1/attendance/check-out", token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var record struct {
		TimeOut string `json:"time_out"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &record))
	assert.NotEmpty(t, record.TimeOut)
}

func TestRouter_SSETokenAndStreamAuth(t *testing.T) {
	ts := newTestServer(t, monday)
	emp := ts.employee(t, "EMP001", 5)

	rec, env := ts.do(t, http.MethodGet, "/api/v1/notifications/sse-token", ts.token(t, emp.ID, user.RoleEmployee), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var tok struct {
		Token     string `json:"token"`
		ExpiresIn int    `json:"expires_in"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &tok))
	assert.NotEmpty(t, tok.Token)
	assert.Equal(t, 300, tok.ExpiresIn)

	rec, _ = ts.do(t, http.MethodGet, "/api/v1/notifications/stream", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, _ = ts.do(t, http.MethodGet, "/api/v1/notifications/stream?token="+ts.token(t, emp.ID, user.RoleEmployee), "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
