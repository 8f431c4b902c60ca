package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/worklog-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/worklog-backend-go/internal/domain/overtime"
	"github.com/cmlabs-hris/worklog-backend-go/internal/domain/shift"
	"github.com/cmlabs-hris/worklog-backend-go/internal/pkg/clock"
	"github.com/cmlabs-hris/worklog-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/worklog-backend-go/internal/pkg/timeofday"
	"github.com/shopspring/decimal"
)

type AttendanceServiceImpl struct {
	attendanceRepo attendance.AttendanceRepository
	overtimeRepo   overtime.OvertimeRepository
	resolver       shift.Resolver
	clock          clock.Clock
}

// dayContext is everything a guard looks at, read once per call.
type dayContext struct {
	now    time.Time
	today  time.Time
	shift  *shift.Shift
	record *attendance.Record
}

func (s *AttendanceServiceImpl) load(ctx context.Context, employeeID string) (dayContext, error) {
	now := s.clock.Now()
	dc := dayContext{now: now, today: clock.Date(now)}

	sh, err := s.resolver.Resolve(ctx, employeeID)
	if err != nil {
		return dc, database.NewStorageError("resolve shift", err)
	}
	dc.shift = sh

	rec, err := s.attendanceRepo.GetByEmployeeAndDate(ctx, employeeID, dc.today)
	if err != nil {
		return dc, database.NewStorageError("load attendance", err)
	}
	dc.record = rec
	return dc, nil
}

// openRecord is the record lunch and check-out act on. A night shift that
// started yesterday keeps using yesterday's record until it is closed.
func (s *AttendanceServiceImpl) openRecord(ctx context.Context, employeeID string, dc dayContext) (*attendance.Record, error) {
	if dc.record != nil || dc.shift == nil || !dc.shift.IsNightShift() {
		return dc.record, nil
	}

	prev, err := s.attendanceRepo.GetByEmployeeAndDate(ctx, employeeID, dc.today.AddDate(0, 0, -1))
	if err != nil {
		return nil, database.NewStorageError("load attendance", err)
	}
	if prev != nil && prev.TimeIn != nil && prev.TimeOut == nil {
		return prev, nil
	}
	return nil, nil
}

// checkIn guards a new record. open is the result of openRecord, so a night
// shift still running from yesterday blocks a second check-in after midnight.
func (s *AttendanceServiceImpl) checkIn(dc dayContext, open *attendance.Record) attendance.Outcome {
	if dc.now.Weekday() == time.Sunday {
		return attendance.Refused(attendance.ErrSundayCheckIn,
			"Sunday - No Work Day", "Check-in is disabled on Sundays. Enjoy your rest day!")
	}
	if dc.record != nil {
		return attendance.Refused(attendance.ErrAlreadyCheckedIn,
			"Already Checked In", "You have already checked in today.")
	}
	if open != nil {
		return attendance.Refused(attendance.ErrAlreadyCheckedIn,
			"Already Checked In", "Your shift that started yesterday is still open. Please check out first.")
	}
	if dc.shift != nil && !dc.shift.AllowsCheckIn(timeofday.Of(dc.now)) {
		return attendance.Refused(attendance.ErrOutsideShiftWindow,
			"Outside Shift Schedule",
			fmt.Sprintf("Your shift (%s) is %s - %s.\nCheck-in is not allowed after your shift has ended.",
				dc.shift.Name, dc.shift.StartTime.Kitchen(), dc.shift.EndTime.Kitchen()))
	}
	return attendance.Allowed()
}

func (s *AttendanceServiceImpl) startLunch(dc dayContext, rec *attendance.Record) attendance.Outcome {
	if rec == nil || rec.TimeIn == nil {
		return attendance.Refused(attendance.ErrNotCheckedIn, "Not Checked In", "Please check in first.")
	}
	if rec.LunchStart != nil {
		return attendance.Refused(attendance.ErrLunchAlreadyStarted, "Lunch Already Started", "Lunch already started.")
	}
	if rec.TimeOut != nil {
		return attendance.Refused(attendance.ErrAlreadyCheckedOut, "Already Checked Out", "Already checked out.")
	}

	minBeforeLunch := time.Duration(shift.DefaultMinHoursBeforeLunch * float64(time.Hour))
	if dc.shift != nil {
		minBeforeLunch = dc.shift.MinTimeBeforeLunch()
	}

	worked := timeofday.Of(dc.now).Since(*rec.TimeIn)
	if worked < minBeforeLunch {
		tooEarly := &attendance.LunchTooEarlyError{
			Earliest:         rec.TimeIn.On(rec.Date).Add(minBeforeLunch),
			MinutesRemaining: int((minBeforeLunch - worked).Minutes()),
		}
		return attendance.Refused(tooEarly, "Cannot Start Lunch Yet",
			fmt.Sprintf("You need to work at least %.0f hours before lunch.\nEarliest lunch: %s\n(%d minutes remaining)",
				minBeforeLunch.Hours(), tooEarly.Earliest.Format("3:04 PM"), tooEarly.MinutesRemaining))
	}
	return attendance.Allowed()
}

func (s *AttendanceServiceImpl) endLunch(rec *attendance.Record) attendance.Outcome {
	if rec == nil || rec.TimeIn == nil {
		return attendance.Refused(attendance.ErrNotCheckedIn, "Not Checked In", "Please check in first.")
	}
	if rec.TimeOut != nil {
		return attendance.Refused(attendance.ErrAlreadyCheckedOut, "Already Checked Out", "Already checked out.")
	}
	if rec.LunchStart == nil {
		return attendance.Refused(attendance.ErrLunchNotStarted, "Lunch Not Started", "Please start lunch first before ending it.")
	}
	if rec.LunchEnd != nil {
		return attendance.Refused(attendance.ErrLunchAlreadyEnded, "Lunch Already Ended", "You have already ended your lunch break.")
	}
	return attendance.Allowed()
}

func (s *AttendanceServiceImpl) checkOut(rec *attendance.Record) attendance.Outcome {
	if rec == nil || rec.TimeIn == nil {
		return attendance.Refused(attendance.ErrNotCheckedIn, "Not Checked In", "You have not checked in today.")
	}
	if rec.TimeOut != nil {
		return attendance.Refused(attendance.ErrAlreadyCheckedOut, "Already Checked Out", "You have already checked out today.")
	}
	return attendance.Allowed()
}

func failed(title, message string) attendance.Outcome {
	return attendance.Outcome{Title: title, Message: message, Severity: attendance.SeverityError}
}

// CanCheckIn implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) CanCheckIn(ctx context.Context, employeeID string) (attendance.Outcome, error) {
	dc, open, err := s.loadOpen(ctx, employeeID)
	if err != nil {
		return attendance.Outcome{}, err
	}
	return s.checkIn(dc, open), nil
}

// CheckIn implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) CheckIn(ctx context.Context, employeeID string) (attendance.Outcome, error) {
	dc, open, err := s.loadOpen(ctx, employeeID)
	if err != nil {
		return attendance.Outcome{}, err
	}
	if out := s.checkIn(dc, open); !out.Allowed {
		return out, nil
	}

	timeIn := timeofday.Of(dc.now)
	rec, err := s.attendanceRepo.Create(ctx, attendance.Record{
		EmployeeID: employeeID,
		Date:       dc.today,
		TimeIn:     &timeIn,
	})
	if err != nil {
		if errors.Is(err, attendance.ErrAlreadyCheckedIn) {
			return attendance.Refused(attendance.ErrAlreadyCheckedIn,
				"Already Checked In", "You have already checked in today."), nil
		}
		return failed("Check In Failed", "Failed to record check-in. Please try again."),
			database.NewStorageError("check in", err)
	}

	return attendance.Succeeded("Check In Successful", "Checked in at "+timeIn.Kitchen(), &rec), nil
}

// CanStartLunch implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) CanStartLunch(ctx context.Context, employeeID string) (attendance.Outcome, error) {
	dc, rec, err := s.loadOpen(ctx, employeeID)
	if err != nil {
		return attendance.Outcome{}, err
	}
	return s.startLunch(dc, rec), nil
}

// StartLunch implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) StartLunch(ctx context.Context, employeeID string) (attendance.Outcome, error) {
	dc, rec, err := s.loadOpen(ctx, employeeID)
	if err != nil {
		return attendance.Outcome{}, err
	}
	if out := s.startLunch(dc, rec); !out.Allowed {
		return out, nil
	}

	at := timeofday.Of(dc.now)
	if err := s.write(ctx, "start lunch", func() (int64, error) {
		return s.attendanceRepo.StartLunch(ctx, rec.ID, at)
	}); err != nil {
		return failed("Failed", "Failed to record lunch start. Please try again."), err
	}
	rec.LunchStart = &at

	return attendance.Succeeded("Lunch Started", "Lunch break started at "+at.Kitchen(), rec), nil
}

// CanEndLunch implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) CanEndLunch(ctx context.Context, employeeID string) (attendance.Outcome, error) {
	_, rec, err := s.loadOpen(ctx, employeeID)
	if err != nil {
		return attendance.Outcome{}, err
	}
	return s.endLunch(rec), nil
}

// EndLunch implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) EndLunch(ctx context.Context, employeeID string) (attendance.Outcome, error) {
	dc, rec, err := s.loadOpen(ctx, employeeID)
	if err != nil {
		return attendance.Outcome{}, err
	}
	if out := s.endLunch(rec); !out.Allowed {
		return out, nil
	}

	at := timeofday.Of(dc.now)
	if err := s.write(ctx, "end lunch", func() (int64, error) {
		return s.attendanceRepo.EndLunch(ctx, rec.ID, at)
	}); err != nil {
		return failed("Failed", "Failed to record lunch end. Please try again."), err
	}
	rec.LunchEnd = &at

	return attendance.Succeeded("Lunch Ended", "Lunch break ended at "+at.Kitchen(), rec), nil
}

// CanCheckOut implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) CanCheckOut(ctx context.Context, employeeID string) (attendance.Outcome, error) {
	_, rec, err := s.loadOpen(ctx, employeeID)
	if err != nil {
		return attendance.Outcome{}, err
	}
	return s.checkOut(rec), nil
}

// CheckOut implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) CheckOut(ctx context.Context, employeeID string) (attendance.Outcome, error) {
	dc, rec, err := s.loadOpen(ctx, employeeID)
	if err != nil {
		return attendance.Outcome{}, err
	}
	if out := s.checkOut(rec); !out.Allowed {
		return out, nil
	}

	timeOut := timeofday.Of(dc.now)
	hours := ComputePaidHours(rec.TimeIn, &timeOut, rec.LunchStart, rec.LunchEnd)

	c := attendance.Completion{
		TimeOut:       timeOut,
		TotalTime:     hours.Total,
		LunchDuration: hours.Lunch,
		PaidHours:     hours.Paid,
		OvertimeHours: OvertimeHours(hours.Paid),
		Status:        DetermineShiftStatus(*rec.TimeIn, hours.Paid, dc.shift),
	}
	if err := s.write(ctx, "check out", func() (int64, error) {
		return s.attendanceRepo.Complete(ctx, rec.ID, c)
	}); err != nil {
		return failed("Check Out Failed", "Failed to record check-out. Please try again."), err
	}

	rec.TimeOut = &c.TimeOut
	rec.TotalTime = c.TotalTime
	rec.LunchDuration = c.LunchDuration
	rec.PaidHours = c.PaidHours
	rec.OvertimeHours = c.OvertimeHours
	rec.Status = &c.Status

	s.recordActualOvertime(ctx, *rec)

	return attendance.Succeeded("Check Out Successful",
		fmt.Sprintf("Checked out at %s\nPaid Hours: %.2f\nStatus: %s", timeOut.Kitchen(), c.PaidHours, c.Status), rec), nil
}

// recordActualOvertime copies the day's overtime onto an approved overtime
// request for the same date. The check-out has already been stored, so a
// failure here is logged rather than returned.
func (s *AttendanceServiceImpl) recordActualOvertime(ctx context.Context, rec attendance.Record) {
	if s.overtimeRepo == nil {
		return
	}

	req, err := s.overtimeRepo.FindApprovedForDate(ctx, rec.EmployeeID, rec.Date)
	if err != nil {
		slog.Error("Failed to look up approved overtime", "employee_id", rec.EmployeeID, "date", rec.Date.Format("2006-01-02"), "error", err)
		return
	}
	if req == nil {
		return
	}

	if _, err := s.overtimeRepo.UpdateActualOvertime(ctx, req.ID, rec.OvertimeHours); err != nil {
		slog.Error("Failed to record actual overtime", "overtime_request_id", req.ID, "error", err)
	}
}

func (s *AttendanceServiceImpl) loadOpen(ctx context.Context, employeeID string) (dayContext, *attendance.Record, error) {
	dc, err := s.load(ctx, employeeID)
	if err != nil {
		return dc, nil, err
	}
	rec, err := s.openRecord(ctx, employeeID, dc)
	return dc, rec, err
}

// write runs a conditioned transition write. Zero changed rows means the
// record moved on since it was read.
func (s *AttendanceServiceImpl) write(ctx context.Context, op string, fn func() (int64, error)) error {
	n, err := fn()
	if err != nil {
		return database.NewStorageError(op, err)
	}
	if n == 0 {
		return database.NewStorageError(op, database.ErrNoRowsAffected)
	}
	return nil
}

// Checks implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Checks(ctx context.Context, employeeID string) (attendance.ChecksResponse, error) {
	dc, rec, err := s.loadOpen(ctx, employeeID)
	if err != nil {
		return attendance.ChecksResponse{}, err
	}

	return attendance.ChecksResponse{
		State:      rec.State(),
		CheckIn:    s.checkIn(dc, rec),
		StartLunch: s.startLunch(dc, rec),
		EndLunch:   s.endLunch(rec),
		CheckOut:   s.checkOut(rec),
	}, nil
}

// Today implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Today(ctx context.Context, employeeID string) (*attendance.RecordResponse, error) {
	_, rec, err := s.loadOpen(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, nil
	}
	resp := attendance.NewRecordResponse(*rec)
	return &resp, nil
}

// History implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) History(ctx context.Context, employeeID string, query attendance.HistoryQuery) ([]attendance.RecordResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	filter, err := query.Filter(s.clock.Now().Location())
	if err != nil {
		return nil, err
	}

	records, err := s.attendanceRepo.ListByEmployee(ctx, employeeID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}

	resp := make([]attendance.RecordResponse, 0, len(records))
	for _, r := range records {
		resp = append(resp, attendance.NewRecordResponse(r))
	}
	return resp, nil
}

// Summary implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Summary(ctx context.Context, employeeID string, query attendance.HistoryQuery) (attendance.SummaryResponse, error) {
	if err := query.Validate(); err != nil {
		return attendance.SummaryResponse{}, err
	}
	filter, err := query.Filter(s.clock.Now().Location())
	if err != nil {
		return attendance.SummaryResponse{}, err
	}
	filter.Limit = 0

	records, err := s.attendanceRepo.ListByEmployee(ctx, employeeID, filter)
	if err != nil {
		return attendance.SummaryResponse{}, fmt.Errorf("failed to list attendance: %w", err)
	}

	return summarize(employeeID, records), nil
}

func summarize(employeeID string, records []attendance.Record) attendance.SummaryResponse {
	resp := attendance.SummaryResponse{EmployeeID: employeeID, TotalDays: len(records)}

	paid := decimal.Zero
	over := decimal.Zero
	completed := 0
	for _, r := range records {
		switch {
		case r.IsLate():
			resp.LateDays++
		case r.IsOnTime():
			resp.OnTimeDays++
		}
		switch {
		case r.IsComplete():
			resp.CompleteDays++
		case r.IsUndertime():
			resp.UndertimeDays++
		}
		if r.TimeOut != nil {
			completed++
			paid = paid.Add(decimal.NewFromFloat(r.PaidHours))
			over = over.Add(decimal.NewFromFloat(r.OvertimeHours))
		}
	}

	resp.TotalPaidHours = paid.Round(2).InexactFloat64()
	resp.TotalOvertime = over.Round(2).InexactFloat64()
	if completed > 0 {
		resp.AvgPaidHours = paid.Div(decimal.NewFromInt(int64(completed))).Round(2).InexactFloat64()
	}
	return resp
}

// Daily implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Daily(ctx context.Context, date time.Time) (attendance.DailyResponse, error) {
	records, err := s.attendanceRepo.ListByDate(ctx, clock.Date(date))
	if err != nil {
		return attendance.DailyResponse{}, fmt.Errorf("failed to list attendance: %w", err)
	}

	resp := attendance.DailyResponse{
		Date:         date.Format("2006-01-02"),
		PresentCount: len(records),
		Records:      make([]attendance.RecordResponse, 0, len(records)),
	}
	for _, r := range records {
		if r.IsLate() {
			resp.LateCount++
		}
		resp.Records = append(resp.Records, attendance.NewRecordResponse(r))
	}
	return resp, nil
}

// NewAttendanceService wires the workflow. overtimeRepo may be nil, in which
// case check-out does not touch overtime requests.
func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	overtimeRepo overtime.OvertimeRepository,
	resolver shift.Resolver,
	clk clock.Clock,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		attendanceRepo: attendanceRepo,
		overtimeRepo:   overtimeRepo,
		resolver:       resolver,
		clock:          clk,
	}
}
