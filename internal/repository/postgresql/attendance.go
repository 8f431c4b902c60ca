package postgresql

import (
	"context"
	"errors"
	"time"

	"github.com/cmlabs-hris/worklog-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/worklog-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/worklog-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/worklog-backend-go/internal/pkg/timeofday"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const attendanceColumns = `id, employee_id, date, time_in, lunch_start, lunch_end, time_out,
	total_time, lunch_duration, paid_hours, overtime_hours, status, created_at, updated_at`

var attendanceErrors = pgErrors{
	noRows:     attendance.ErrAttendanceNotFound,
	unique:     attendance.ErrAlreadyCheckedIn,
	foreignKey: employee.ErrEmployeeNotFound,
}

type attendanceRepository struct {
	db database.Querier
}

func NewAttendanceRepository(db database.Querier) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

func scanAttendance(row pgx.Row) (attendance.Record, error) {
	var (
		rec                                 attendance.Record
		timeIn, lunchStart, lunchEnd, tmOut pgtype.Time
	)
	err := row.Scan(
		&rec.ID, &rec.EmployeeID, &rec.Date,
		&timeIn, &lunchStart, &lunchEnd, &tmOut,
		&rec.TotalTime, &rec.LunchDuration, &rec.PaidHours, &rec.OvertimeHours,
		&rec.Status, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		return attendance.Record{}, err
	}
	rec.TimeIn = timeofday.FromPgTime(timeIn)
	rec.LunchStart = timeofday.FromPgTime(lunchStart)
	rec.LunchEnd = timeofday.FromPgTime(lunchEnd)
	rec.TimeOut = timeofday.FromPgTime(tmOut)
	return rec, nil
}

// Create implements attendance.AttendanceRepository.
func (a *attendanceRepository) Create(ctx context.Context, rec attendance.Record) (attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO attendance (id, employee_id, date, time_in, status)
		VALUES ($1, $2, $3::date, $4, $5)
		RETURNING ` + attendanceColumns

	created, err := scanAttendance(q.QueryRow(ctx, query,
		newID(),
		rec.EmployeeID,
		dateArg(rec.Date),
		timeofday.PgTime(rec.TimeIn),
		rec.Status,
	))
	if err != nil {
		return attendance.Record{}, attendanceErrors.translate(err)
	}
	return created, nil
}

// GetByEmployeeAndDate implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := `SELECT ` + attendanceColumns + ` FROM attendance WHERE employee_id = $1 AND date = $2::date`

	rec, err := scanAttendance(q.QueryRow(ctx, query, employeeID, dateArg(date)))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// StartLunch implements attendance.AttendanceRepository.
func (a *attendanceRepository) StartLunch(ctx context.Context, id string, at timeofday.TimeOfDay) (int64, error) {
	return a.exec(ctx, `
		UPDATE attendance SET lunch_start = $2, updated_at = NOW()
		WHERE id = $1 AND time_in IS NOT NULL AND lunch_start IS NULL AND time_out IS NULL`,
		id, at.PgTime())
}

// EndLunch implements attendance.AttendanceRepository.
func (a *attendanceRepository) EndLunch(ctx context.Context, id string, at timeofday.TimeOfDay) (int64, error) {
	return a.exec(ctx, `
		UPDATE attendance SET lunch_end = $2, updated_at = NOW()
		WHERE id = $1 AND lunch_start IS NOT NULL AND lunch_end IS NULL AND time_out IS NULL`,
		id, at.PgTime())
}

// Complete implements attendance.AttendanceRepository.
func (a *attendanceRepository) Complete(ctx context.Context, id string, c attendance.Completion) (int64, error) {
	return a.exec(ctx, `
		UPDATE attendance
		SET time_out = $2, total_time = $3, lunch_duration = $4, paid_hours = $5,
			overtime_hours = $6, status = $7, updated_at = NOW()
		WHERE id = $1 AND time_in IS NOT NULL AND time_out IS NULL`,
		id, c.TimeOut.PgTime(), c.TotalTime, c.LunchDuration, c.PaidHours, c.OvertimeHours, c.Status)
}

// ListByEmployee implements attendance.AttendanceRepository. Newest date
// first; a zero limit returns everything in range.
func (a *attendanceRepository) ListByEmployee(ctx context.Context, employeeID string, filter attendance.HistoryFilter) ([]attendance.Record, error) {
	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance
		WHERE employee_id = $1
		  AND ($2::date IS NULL OR date >= $2::date)
		  AND ($3::date IS NULL OR date <= $3::date)
		ORDER BY date DESC
		LIMIT NULLIF($4, 0)
	`
	return a.list(ctx, query, employeeID, optionalDate(filter.From), optionalDate(filter.To), filter.Limit)
}

// ListByDate implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListByDate(ctx context.Context, date time.Time) ([]attendance.Record, error) {
	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance
		WHERE date = $1::date
		ORDER BY time_in ASC NULLS LAST, employee_id ASC
	`
	return a.list(ctx, query, dateArg(date))
}

func (a *attendanceRepository) exec(ctx context.Context, query string, args ...any) (int64, error) {
	q := GetQuerier(ctx, a.db)

	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return 0, attendanceErrors.translate(err)
	}
	return tag.RowsAffected(), nil
}

func (a *attendanceRepository) list(ctx context.Context, query string, args ...any) ([]attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]attendance.Record, 0)
	for rows.Next() {
		rec, err := scanAttendance(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
