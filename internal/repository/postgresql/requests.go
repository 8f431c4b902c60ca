package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/worklog-backend-go/internal/domain/approval"
	"github.com/cmlabs-hris/worklog-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

// reviewColumns is the review state shared by the three request tables.
const reviewColumns = `status, reviewed_by, reviewed_at, remarks, employee_notified`

// requestTable implements the approval.Repository methods that only touch
// the shared review columns. The concrete repositories add Create,
// HasPending and their own queries.
type requestTable[R approval.Reviewable] struct {
	db      database.Querier
	table   string
	columns string
	scan    func(pgx.Row) (R, error)
	errs    pgErrors
}

func (t *requestTable[R]) selectFrom() string {
	return fmt.Sprintf("SELECT %s FROM %s", t.columns, t.table)
}

func (t *requestTable[R]) GetByID(ctx context.Context, id string) (R, error) {
	q := GetQuerier(ctx, t.db)

	r, err := t.scan(q.QueryRow(ctx, t.selectFrom()+` WHERE id = $1`, id))
	if err != nil {
		var zero R
		return zero, t.errs.translate(err)
	}
	return r, nil
}

func (t *requestTable[R]) exists(ctx context.Context, where string, args ...any) (bool, error) {
	q := GetQuerier(ctx, t.db)

	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s)`, t.table, where)
	var found bool
	if err := q.QueryRow(ctx, query, args...).Scan(&found); err != nil {
		return false, err
	}
	return found, nil
}

func (t *requestTable[R]) Decide(ctx context.Context, id string, d approval.Decision) (int64, error) {
	q := GetQuerier(ctx, t.db)

	query := fmt.Sprintf(`
		UPDATE %s
		SET status = $2, reviewed_by = $3, reviewed_at = $4, remarks = $5, updated_at = NOW()
		WHERE id = $1 AND status = 'Pending'
	`, t.table)

	tag, err := q.Exec(ctx, query, id, string(d.Status), d.ReviewerID, d.DecidedAt, d.Remarks)
	if err != nil {
		return 0, t.errs.translate(err)
	}
	return tag.RowsAffected(), nil
}

func (t *requestTable[R]) ListByEmployee(ctx context.Context, employeeID string) ([]R, error) {
	return t.list(ctx, ` WHERE employee_id = $1 ORDER BY created_at DESC, id DESC`, employeeID)
}

func (t *requestTable[R]) List(ctx context.Context, status *approval.Status) ([]R, error) {
	var s *string
	if status != nil {
		v := string(*status)
		s = &v
	}
	return t.list(ctx, ` WHERE ($1::text IS NULL OR status = $1) ORDER BY created_at DESC, id DESC`, s)
}

func (t *requestTable[R]) CountPending(ctx context.Context) (int64, error) {
	q := GetQuerier(ctx, t.db)

	var n int64
	err := q.QueryRow(ctx, fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE status = 'Pending'`, t.table)).Scan(&n)
	return n, err
}

func (t *requestTable[R]) ListUnnotified(ctx context.Context, employeeID string) ([]R, error) {
	return t.list(ctx, `
		WHERE employee_id = $1 AND status <> 'Pending' AND NOT employee_notified
		ORDER BY reviewed_at DESC NULLS LAST, id DESC`, employeeID)
}

func (t *requestTable[R]) MarkNotified(ctx context.Context, id string) (int64, error) {
	return t.markNotified(ctx, `id = $1`, id)
}

func (t *requestTable[R]) MarkAllNotified(ctx context.Context, employeeID string) (int64, error) {
	return t.markNotified(ctx, `employee_id = $1`, employeeID)
}

func (t *requestTable[R]) markNotified(ctx context.Context, where string, arg string) (int64, error) {
	q := GetQuerier(ctx, t.db)

	query := fmt.Sprintf(`
		UPDATE %s SET employee_notified = TRUE, updated_at = NOW()
		WHERE %s AND status <> 'Pending' AND NOT employee_notified
	`, t.table, where)

	tag, err := q.Exec(ctx, query, arg)
	if err != nil {
		return 0, t.errs.translate(err)
	}
	return tag.RowsAffected(), nil
}

func (t *requestTable[R]) list(ctx context.Context, clause string, args ...any) ([]R, error) {
	q := GetQuerier(ctx, t.db)

	rows, err := q.Query(ctx, t.selectFrom()+clause, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]R, 0)
	for rows.Next() {
		r, err := t.scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
