package postgresql

import (
	"context"
	"errors"

	"github.com/cmlabs-hris/worklog-backend-go/internal/domain/shift"
	"github.com/cmlabs-hris/worklog-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/worklog-backend-go/internal/pkg/timeofday"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const shiftColumns = `s.id, s.shift_name, s.start_time, s.end_time, s.work_hours, s.grace_period_mins,
	s.min_hours_before_lunch, s.is_default, s.is_active, s.created_at, s.updated_at`

// Default shift first, then by name.
const shiftOrder = ` ORDER BY s.is_default DESC, s.shift_name ASC`

var shiftErrors = pgErrors{
	noRows: shift.ErrShiftNotFound,
	unique: shift.ErrShiftNameExists,
}

type shiftRepositoryImpl struct {
	db database.Querier
}

func NewShiftRepository(db database.Querier) shift.ShiftRepository {
	return &shiftRepositoryImpl{db: db}
}

func scanShift(row pgx.Row) (shift.Shift, error) {
	var (
		s          shift.Shift
		start, end pgtype.Time
	)
	err := row.Scan(
		&s.ID,
		&s.Name,
		&start,
		&end,
		&s.WorkHours,
		&s.GracePeriodMinutes,
		&s.MinHoursBeforeLunch,
		&s.IsDefault,
		&s.IsActive,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		return shift.Shift{}, err
	}
	if t := timeofday.FromPgTime(start); t != nil {
		s.StartTime = *t
	}
	if t := timeofday.FromPgTime(end); t != nil {
		s.EndTime = *t
	}
	return s, nil
}

// GetByID implements shift.ShiftRepository.
func (r *shiftRepositoryImpl) GetByID(ctx context.Context, id string) (shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	s, err := scanShift(q.QueryRow(ctx, `SELECT `+shiftColumns+` FROM shifts s WHERE s.id = $1`, id))
	if err != nil {
		return shift.Shift{}, shiftErrors.translate(err)
	}
	return s, nil
}

// List implements shift.ShiftRepository.
func (r *shiftRepositoryImpl) List(ctx context.Context, includeInactive bool) ([]shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT `+shiftColumns+` FROM shifts s WHERE s.is_active OR $1`+shiftOrder, includeInactive)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	shifts := make([]shift.Shift, 0)
	for rows.Next() {
		s, err := scanShift(rows)
		if err != nil {
			return nil, err
		}
		shifts = append(shifts, s)
	}
	return shifts, rows.Err()
}

// FindAssignedActive implements shift.ShiftRepository.
func (r *shiftRepositoryImpl) FindAssignedActive(ctx context.Context, employeeID string) (*shift.Shift, error) {
	return r.findOne(ctx, `
		SELECT `+shiftColumns+`
		FROM shifts s
		INNER JOIN employees e ON e.shift_id = s.id
		WHERE e.id = $1 AND s.is_active`, employeeID)
}

// FindDefaultActive implements shift.ShiftRepository.
func (r *shiftRepositoryImpl) FindDefaultActive(ctx context.Context) (*shift.Shift, error) {
	return r.findOne(ctx, `SELECT `+shiftColumns+` FROM shifts s WHERE s.is_default AND s.is_active LIMIT 1`)
}

// FindAnyActive implements shift.ShiftRepository.
func (r *shiftRepositoryImpl) FindAnyActive(ctx context.Context) (*shift.Shift, error) {
	return r.findOne(ctx, `SELECT `+shiftColumns+` FROM shifts s WHERE s.is_active`+shiftOrder+` LIMIT 1`)
}

// Create implements shift.ShiftRepository.
func (r *shiftRepositoryImpl) Create(ctx context.Context, s shift.Shift) (shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO shifts AS s (id, shift_name, start_time, end_time, work_hours, grace_period_mins,
			min_hours_before_lunch, is_default, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + shiftColumns

	created, err := scanShift(q.QueryRow(ctx, query,
		newID(),
		s.Name,
		s.StartTime.PgTime(),
		s.EndTime.PgTime(),
		s.WorkHours,
		s.GracePeriodMinutes,
		s.MinHoursBeforeLunch,
		s.IsDefault,
		s.IsActive,
	))
	if err != nil {
		return shift.Shift{}, shiftErrors.translate(err)
	}
	return created, nil
}

// Update implements shift.ShiftRepository.
func (r *shiftRepositoryImpl) Update(ctx context.Context, s shift.Shift) (shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE shifts AS s
		SET shift_name = $2, start_time = $3, end_time = $4, work_hours = $5, grace_period_mins = $6,
			min_hours_before_lunch = $7, is_default = $8, is_active = $9, updated_at = NOW()
		WHERE s.id = $1
		RETURNING ` + shiftColumns

	updated, err := scanShift(q.QueryRow(ctx, query,
		s.ID,
		s.Name,
		s.StartTime.PgTime(),
		s.EndTime.PgTime(),
		s.WorkHours,
		s.GracePeriodMinutes,
		s.MinHoursBeforeLunch,
		s.IsDefault,
		s.IsActive,
	))
	if err != nil {
		return shift.Shift{}, shiftErrors.translate(err)
	}
	return updated, nil
}

// ClearDefault implements shift.ShiftRepository.
func (r *shiftRepositoryImpl) ClearDefault(ctx context.Context, exceptID string) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx,
		`UPDATE shifts SET is_default = FALSE, updated_at = NOW() WHERE is_default AND id::text <> $1`,
		exceptID)
	return err
}

// SetActive implements shift.ShiftRepository. The default shift is never
// deactivated, so that write reports zero rows.
func (r *shiftRepositoryImpl) SetActive(ctx context.Context, id string, active bool) (int64, error) {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx,
		`UPDATE shifts SET is_active = $2, updated_at = NOW() WHERE id = $1 AND ($2 OR NOT is_default)`,
		id, active)
	if err != nil {
		return 0, shiftErrors.translate(err)
	}
	return tag.RowsAffected(), nil
}

// CountActiveEmployees implements shift.ShiftRepository.
func (r *shiftRepositoryImpl) CountActiveEmployees(ctx context.Context, shiftID string) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var n int64
	err := q.QueryRow(ctx, `SELECT COUNT(*) FROM employees WHERE shift_id = $1 AND is_active`, shiftID).Scan(&n)
	if err != nil {
		return 0, shiftErrors.translate(err)
	}
	return n, nil
}

// ReassignEmployees implements shift.ShiftRepository.
func (r *shiftRepositoryImpl) ReassignEmployees(ctx context.Context, fromShiftID, toShiftID string) (int64, error) {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx,
		`UPDATE employees SET shift_id = $2, updated_at = NOW() WHERE shift_id = $1`,
		fromShiftID, toShiftID)
	if err != nil {
		return 0, pgErrors{foreignKey: shift.ErrShiftNotFound}.translate(err)
	}
	return tag.RowsAffected(), nil
}

func (r *shiftRepositoryImpl) findOne(ctx context.Context, query string, args ...any) (*shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	s, err := scanShift(q.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}
