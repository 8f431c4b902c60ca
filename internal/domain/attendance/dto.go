package attendance

import (
	"strconv"
	"time"

	"github.com/cmlabs-hris/worklog-backend-go/internal/pkg/timeofday"
	"github.com/cmlabs-hris/worklog-backend-go/internal/pkg/validator"
)

const (
	defaultHistoryLimit = 30
	maxHistoryLimit     = 366
)

type HistoryFilter struct {
	From  *time.Time
	To    *time.Time
	Limit int
}

// HistoryQuery is the raw query string form of HistoryFilter.
type HistoryQuery struct {
	From  string
	To    string
	Limit string
}

func (q *HistoryQuery) Validate() error {
	var errs validator.ValidationErrors

	if q.From != "" {
		if _, ok := validator.IsValidDate(q.From); !ok {
			errs = append(errs, validator.ValidationError{Field: "from", Message: "from must be in YYYY-MM-DD format"})
		}
	}
	if q.To != "" {
		if _, ok := validator.IsValidDate(q.To); !ok {
			errs = append(errs, validator.ValidationError{Field: "to", Message: "to must be in YYYY-MM-DD format"})
		}
	}
	if q.Limit != "" {
		if n, err := strconv.Atoi(q.Limit); err != nil || n <= 0 || n > maxHistoryLimit {
			errs = append(errs, validator.ValidationError{Field: "limit", Message: "limit must be between 1 and 366"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Filter converts a validated query, interpreting dates in loc.
func (q *HistoryQuery) Filter(loc *time.Location) (HistoryFilter, error) {
	f := HistoryFilter{Limit: defaultHistoryLimit}
	if q.From != "" {
		from, err := validator.ParseDate(q.From, loc)
		if err != nil {
			return f, err
		}
		f.From = &from
	}
	if q.To != "" {
		to, err := validator.ParseDate(q.To, loc)
		if err != nil {
			return f, err
		}
		f.To = &to
	}
	if f.From != nil && f.To != nil && f.From.After(*f.To) {
		return f, ErrInvalidDateRange
	}
	if q.Limit != "" {
		f.Limit, _ = strconv.Atoi(q.Limit)
	}
	return f, nil
}

type RecordResponse struct {
	ID            string               `json:"attendance_id"`
	EmployeeID    string               `json:"employee_id"`
	Date          string               `json:"date"`
	TimeIn        *timeofday.TimeOfDay `json:"time_in"`
	LunchStart    *timeofday.TimeOfDay `json:"lunch_start"`
	LunchEnd      *timeofday.TimeOfDay `json:"lunch_end"`
	TimeOut       *timeofday.TimeOfDay `json:"time_out"`
	TotalTime     float64              `json:"total_time"`
	LunchDuration float64              `json:"lunch_duration"`
	PaidHours     float64              `json:"paid_hours"`
	OvertimeHours float64              `json:"overtime_hours"`
	Status        *string              `json:"status"`
	State         State                `json:"state"`
}

func NewRecordResponse(r Record) RecordResponse {
	return RecordResponse{
		ID:            r.ID,
		EmployeeID:    r.EmployeeID,
		Date:          r.Date.Format("2006-01-02"),
		TimeIn:        r.TimeIn,
		LunchStart:    r.LunchStart,
		LunchEnd:      r.LunchEnd,
		TimeOut:       r.TimeOut,
		TotalTime:     r.TotalTime,
		LunchDuration: r.LunchDuration,
		PaidHours:     r.PaidHours,
		OvertimeHours: r.OvertimeHours,
		Status:        r.Status,
		State:         r.State(),
	}
}

// ChecksResponse bundles all four guards so a client can render which
// actions are available.
type ChecksResponse struct {
	State      State   `json:"state"`
	CheckIn    Outcome `json:"check_in"`
	StartLunch Outcome `json:"start_lunch"`
	EndLunch   Outcome `json:"end_lunch"`
	CheckOut   Outcome `json:"check_out"`
}

type SummaryResponse struct {
	EmployeeID     string  `json:"employee_id"`
	TotalDays      int     `json:"total_days"`
	OnTimeDays     int     `json:"on_time_days"`
	LateDays       int     `json:"late_days"`
	CompleteDays   int     `json:"complete_days"`
	UndertimeDays  int     `json:"undertime_days"`
	TotalPaidHours float64 `json:"total_paid_hours"`
	AvgPaidHours   float64 `json:"avg_paid_hours"`
	TotalOvertime  float64 `json:"total_overtime"`
}

type DailyResponse struct {
	Date         string           `json:"date"`
	PresentCount int              `json:"present_count"`
	LateCount    int              `json:"late_count"`
	Records      []RecordResponse `json:"records"`
}
