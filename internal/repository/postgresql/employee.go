package postgresql

import (
	"context"
	"errors"

	"github.com/cmlabs-hris/worklog-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/worklog-backend-go/internal/domain/shift"
	"github.com/cmlabs-hris/worklog-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const employeeColumns = `id, employee_code, full_name, position, department, email, phone,
	leave_credits, shift_id, is_active, created_at, updated_at`

var employeeErrors = pgErrors{
	noRows:     employee.ErrEmployeeNotFound,
	unique:     employee.ErrEmployeeCodeExists,
	foreignKey: shift.ErrShiftNotFound,
	check:      employee.ErrNegativeLeaveCredits,
}

type employeeRepositoryImpl struct {
	db database.Querier
}

func NewEmployeeRepository(db database.Querier) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var e employee.Employee
	err := row.Scan(
		&e.ID,
		&e.EmployeeCode,
		&e.FullName,
		&e.Position,
		&e.Department,
		&e.Email,
		&e.Phone,
		&e.LeaveCredits,
		&e.ShiftID,
		&e.IsActive,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	return e, err
}

// GetByID implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	e, err := scanEmployee(q.QueryRow(ctx, `SELECT `+employeeColumns+` FROM employees WHERE id = $1`, id))
	if err != nil {
		return employee.Employee{}, employeeErrors.translate(err)
	}
	return e, nil
}

// List implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) List(ctx context.Context, activeOnly bool) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + employeeColumns + `
		FROM employees
		WHERE is_active OR NOT $1
		ORDER BY full_name ASC
	`

	rows, err := q.Query(ctx, query, activeOnly)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	employees := make([]employee.Employee, 0)
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, e)
	}
	return employees, rows.Err()
}

// Create implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Create(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO employees (id, employee_code, full_name, position, department, email, phone, leave_credits, shift_id, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + employeeColumns

	created, err := scanEmployee(q.QueryRow(ctx, query,
		newID(),
		e.EmployeeCode,
		e.FullName,
		e.Position,
		e.Department,
		e.Email,
		e.Phone,
		e.LeaveCredits,
		e.ShiftID,
		e.IsActive,
	))
	if err != nil {
		return employee.Employee{}, employeeErrors.translate(err)
	}
	return created, nil
}

// LastEmployeeCode implements employee.EmployeeRepository. Longer codes sort
// after shorter ones so EMP1000 follows EMP999.
func (r *employeeRepositoryImpl) LastEmployeeCode(ctx context.Context) (string, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT employee_code
		FROM employees
		WHERE employee_code LIKE 'EMP%'
		ORDER BY LENGTH(employee_code) DESC, employee_code DESC
		LIMIT 1
	`

	var code string
	err := q.QueryRow(ctx, query).Scan(&code)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil
	}
	return code, err
}

// GetLeaveCredits implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetLeaveCredits(ctx context.Context, id string) (int, error) {
	q := GetQuerier(ctx, r.db)

	var credits int
	if err := q.QueryRow(ctx, `SELECT leave_credits FROM employees WHERE id = $1`, id).Scan(&credits); err != nil {
		return 0, employeeErrors.translate(err)
	}
	return credits, nil
}

// SetLeaveCredits implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) SetLeaveCredits(ctx context.Context, id string, credits int) error {
	return r.update(ctx, `leave_credits = $2`, id, credits)
}

// AssignShift implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) AssignShift(ctx context.Context, id string, shiftID *string) error {
	return r.update(ctx, `shift_id = $2`, id, shiftID)
}

// SetActive implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) SetActive(ctx context.Context, id string, active bool) error {
	return r.update(ctx, `is_active = $2`, id, active)
}

// Delete implements employee.EmployeeRepository. Attendance and requests
// cascade; reviews the employee recorded keep their decision but lose the
// reviewer.
func (r *employeeRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		WITH leaves AS (
			UPDATE leave_requests SET reviewed_by = NULL WHERE reviewed_by = $1
		), overtimes AS (
			UPDATE overtime_requests SET reviewed_by = NULL WHERE reviewed_by = $1
		), lates AS (
			UPDATE late_considerations SET reviewed_by = NULL WHERE reviewed_by = $1
		)
		DELETE FROM employees WHERE id = $1::uuid
	`

	tag, err := q.Exec(ctx, query, id)
	if err != nil {
		return employeeErrors.translate(err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

func (r *employeeRepositoryImpl) update(ctx context.Context, set string, id string, value any) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `UPDATE employees SET `+set+`, updated_at = NOW() WHERE id = $1`, id, value)
	if err != nil {
		return employeeErrors.translate(err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}
