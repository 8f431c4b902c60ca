package postgresql

import (
	"context"
	"errors"
	"time"

	"github.com/cmlabs-hris/worklog-backend-go/internal/domain/approval"
	"github.com/cmlabs-hris/worklog-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/worklog-backend-go/internal/domain/overtime"
	"github.com/cmlabs-hris/worklog-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const overtimeColumns = `id, employee_id, request_date, hours_requested, reason, evidence_path, actual_overtime, ` +
	reviewColumns + `, created_at, updated_at`

type overtimeRepositoryImpl struct {
	*requestTable[overtime.OvertimeRequest]
}

func NewOvertimeRepository(db database.Querier) overtime.OvertimeRepository {
	return &overtimeRepositoryImpl{
		requestTable: &requestTable[overtime.OvertimeRequest]{
			db:      db,
			table:   "overtime_requests",
			columns: overtimeColumns,
			scan:    scanOvertimeRequest,
			errs: pgErrors{
				noRows:     approval.ErrRequestNotFound,
				unique:     approval.ErrDuplicateRequest,
				foreignKey: employee.ErrEmployeeNotFound,
			},
		},
	}
}

func scanOvertimeRequest(row pgx.Row) (overtime.OvertimeRequest, error) {
	var r overtime.OvertimeRequest
	err := row.Scan(
		&r.ID,
		&r.EmployeeID,
		&r.RequestDate,
		&r.HoursRequested,
		&r.Reason,
		&r.EvidencePath,
		&r.ActualOvertime,
		&r.Status,
		&r.ReviewedBy,
		&r.ReviewedAt,
		&r.Remarks,
		&r.EmployeeNotified,
		&r.CreatedAt,
		&r.UpdatedAt,
	)
	return r, err
}

func (r *overtimeRepositoryImpl) HasPending(ctx context.Context, req overtime.OvertimeRequest) (bool, error) {
	return r.exists(ctx,
		`employee_id = $1 AND status = 'Pending' AND request_date = $2::date`,
		req.EmployeeID, dateArg(req.RequestDate))
}

func (r *overtimeRepositoryImpl) Create(ctx context.Context, req overtime.OvertimeRequest) (overtime.OvertimeRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO overtime_requests (id, employee_id, request_date, hours_requested, reason, evidence_path)
		VALUES ($1, $2, $3::date, $4, $5, $6)
		RETURNING ` + overtimeColumns

	created, err := scanOvertimeRequest(q.QueryRow(ctx, query,
		newID(), req.EmployeeID, dateArg(req.RequestDate), req.HoursRequested, req.Reason, req.EvidencePath))
	if err != nil {
		return overtime.OvertimeRequest{}, r.errs.translate(err)
	}
	return created, nil
}

func (r *overtimeRepositoryImpl) FindApprovedForDate(ctx context.Context, employeeID string, date time.Time) (*overtime.OvertimeRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := r.selectFrom() + `
		WHERE employee_id = $1 AND status = 'Approved' AND request_date = $2::date
		ORDER BY created_at DESC
		LIMIT 1`

	req, err := scanOvertimeRequest(q.QueryRow(ctx, query, employeeID, dateArg(date)))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *overtimeRepositoryImpl) UpdateActualOvertime(ctx context.Context, id string, hours float64) (int64, error) {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx,
		`UPDATE overtime_requests SET actual_overtime = $2, updated_at = NOW() WHERE id = $1`,
		id, hours)
	if err != nil {
		return 0, r.errs.translate(err)
	}
	return tag.RowsAffected(), nil
}

func (r *overtimeRepositoryImpl) MonthlyOvertime(ctx context.Context, employeeID string, year int, month time.Month) (float64, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COALESCE(SUM(actual_overtime), 0)
		FROM overtime_requests
		WHERE employee_id = $1
		  AND status = 'Approved'
		  AND EXTRACT(YEAR FROM request_date) = $2
		  AND EXTRACT(MONTH FROM request_date) = $3
	`

	var total float64
	if err := q.QueryRow(ctx, query, employeeID, year, int(month)).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}
