package postgresql

import (
	"context"
	"time"

	"github.com/cmlabs-hris/worklog-backend-go/internal/domain/approval"
	"github.com/cmlabs-hris/worklog-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/worklog-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/worklog-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const leaveColumns = `id, employee_id, leave_type, start_date, end_date, days_count, reason, evidence_path, ` +
	reviewColumns + `, credits_debited, created_at, updated_at`

type leaveRepositoryImpl struct {
	*requestTable[leave.LeaveRequest]
}

func NewLeaveRepository(db database.Querier) leave.LeaveRepository {
	return &leaveRepositoryImpl{
		requestTable: &requestTable[leave.LeaveRequest]{
			db:      db,
			table:   "leave_requests",
			columns: leaveColumns,
			scan:    scanLeaveRequest,
			errs: pgErrors{
				noRows:     approval.ErrRequestNotFound,
				unique:     approval.ErrDuplicateRequest,
				foreignKey: employee.ErrEmployeeNotFound,
			},
		},
	}
}

func scanLeaveRequest(row pgx.Row) (leave.LeaveRequest, error) {
	var r leave.LeaveRequest
	err := row.Scan(
		&r.ID,
		&r.EmployeeID,
		&r.LeaveType,
		&r.StartDate,
		&r.EndDate,
		&r.DaysCount,
		&r.Reason,
		&r.EvidencePath,
		&r.Status,
		&r.ReviewedBy,
		&r.ReviewedAt,
		&r.Remarks,
		&r.EmployeeNotified,
		&r.CreditsDebited,
		&r.CreatedAt,
		&r.UpdatedAt,
	)
	return r, err
}

// HasPending implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) HasPending(ctx context.Context, req leave.LeaveRequest) (bool, error) {
	return r.exists(ctx,
		`employee_id = $1 AND status = 'Pending' AND start_date = $2::date AND end_date = $3::date`,
		req.EmployeeID, dateArg(req.StartDate), dateArg(req.EndDate))
}

// Create implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) Create(ctx context.Context, req leave.LeaveRequest) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_requests (id, employee_id, leave_type, start_date, end_date, days_count, reason, evidence_path)
		VALUES ($1, $2, $3, $4::date, $5::date, $6, $7, $8)
		RETURNING ` + leaveColumns

	created, err := scanLeaveRequest(q.QueryRow(ctx, query,
		newID(),
		req.EmployeeID,
		string(req.LeaveType),
		dateArg(req.StartDate),
		dateArg(req.EndDate),
		req.DaysCount,
		req.Reason,
		req.EvidencePath,
	))
	if err != nil {
		return leave.LeaveRequest{}, r.errs.translate(err)
	}
	return created, nil
}

// SettleCredits implements leave.LeaveRepository. The debit and the settled
// flag are written by one statement; the balance check constraint refuses an
// overdraft.
func (r *leaveRepositoryImpl) SettleCredits(ctx context.Context, id string) (int64, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		WITH req AS (
			UPDATE leave_requests
			SET credits_debited = TRUE, updated_at = NOW()
			WHERE id = $1 AND status = 'Approved' AND NOT credits_debited
			RETURNING employee_id, days_count
		)
		UPDATE employees e
		SET leave_credits = e.leave_credits - req.days_count, updated_at = NOW()
		FROM req
		WHERE e.id = req.employee_id
	`

	tag, err := q.Exec(ctx, query, id)
	if err != nil {
		return 0, pgErrors{
			noRows: approval.ErrRequestNotFound,
			check:  leave.ErrInsufficientCredits,
		}.translate(err)
	}
	return tag.RowsAffected(), nil
}

// ListUnsettled implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) ListUnsettled(ctx context.Context, reviewedBefore time.Time) ([]leave.LeaveRequest, error) {
	return r.list(ctx, `
		WHERE status = 'Approved' AND NOT credits_debited AND reviewed_at < $1
		ORDER BY reviewed_at DESC, id DESC`, reviewedBefore)
}
