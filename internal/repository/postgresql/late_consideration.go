package postgresql

import (
	"context"

	"github.com/cmlabs-hris/worklog-backend-go/internal/domain/approval"
	"github.com/cmlabs-hris/worklog-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/worklog-backend-go/internal/domain/lateconsideration"
	"github.com/cmlabs-hris/worklog-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const lateConsiderationColumns = `id, employee_id, attendance_date, reason, evidence_path, ` +
	reviewColumns + `, created_at, updated_at`

type lateConsiderationRepositoryImpl struct {
	*requestTable[lateconsideration.LateConsideration]
}

func NewLateConsiderationRepository(db database.Querier) lateconsideration.LateConsiderationRepository {
	return &lateConsiderationRepositoryImpl{
		requestTable: &requestTable[lateconsideration.LateConsideration]{
			db:      db,
			table:   "late_considerations",
			columns: lateConsiderationColumns,
			scan:    scanLateConsideration,
			errs: pgErrors{
				noRows:     approval.ErrRequestNotFound,
				unique:     approval.ErrDuplicateRequest,
				foreignKey: employee.ErrEmployeeNotFound,
			},
		},
	}
}

func scanLateConsideration(row pgx.Row) (lateconsideration.LateConsideration, error) {
	var r lateconsideration.LateConsideration
	err := row.Scan(
		&r.ID,
		&r.EmployeeID,
		&r.AttendanceDate,
		&r.Reason,
		&r.EvidencePath,
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

func (r *lateConsiderationRepositoryImpl) HasPending(ctx context.Context, req lateconsideration.LateConsideration) (bool, error) {
	return r.exists(ctx,
		`employee_id = $1 AND status = 'Pending' AND attendance_date = $2::date`,
		req.EmployeeID, dateArg(req.AttendanceDate))
}

func (r *lateConsiderationRepositoryImpl) Create(ctx context.Context, req lateconsideration.LateConsideration) (lateconsideration.LateConsideration, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO late_considerations (id, employee_id, attendance_date, reason, evidence_path)
		VALUES ($1, $2, $3::date, $4, $5)
		RETURNING ` + lateConsiderationColumns

	created, err := scanLateConsideration(q.QueryRow(ctx, query,
		newID(), req.EmployeeID, dateArg(req.AttendanceDate), req.Reason, req.EvidencePath))
	if err != nil {
		return lateconsideration.LateConsideration{}, r.errs.translate(err)
	}
	return created, nil
}
