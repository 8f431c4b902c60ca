package memory

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/cmlabs-hris/worklog-backend-go/internal/domain/approval"
)

// requestMeta exposes the fields the shared table logic reads and writes on
// a concrete request type.
type requestMeta struct {
	id         *string
	employeeID string
	review     *approval.Review
	createdAt  *time.Time
	updatedAt  *time.Time
}

// requests implements approval.Repository for one request table.
type requests[R approval.Reviewable] struct {
	s       *Store
	rows    map[string]R
	meta    func(*R) *requestMeta
	sameKey func(a, b R) bool
}

func newRequests[R approval.Reviewable](s *Store, meta func(*R) *requestMeta, sameKey func(a, b R) bool) *requests[R] {
	return &requests[R]{
		s:       s,
		rows:    make(map[string]R),
		meta:    meta,
		sameKey: sameKey,
	}
}

func (t *requests[R]) GetByID(ctx context.Context, id string) (R, error) {
	t.s.mu.RLock()
	defer t.s.mu.RUnlock()

	r, ok := t.rows[id]
	if !ok {
		var zero R
		return zero, approval.ErrRequestNotFound
	}
	return r, nil
}

func (t *requests[R]) HasPending(ctx context.Context, req R) (bool, error) {
	t.s.mu.RLock()
	defer t.s.mu.RUnlock()

	for _, r := range t.rows {
		if r.RequesterID() == req.RequesterID() &&
			r.ReviewState().Status == approval.StatusPending &&
			t.sameKey(r, req) {
			return true, nil
		}
	}
	return false, nil
}

func (t *requests[R]) Create(ctx context.Context, req R) (R, error) {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()

	m := t.meta(&req)
	if _, ok := t.s.employees[m.employeeID]; !ok {
		var zero R
		return zero, errForeignKey("employee", m.employeeID)
	}

	now := t.s.now()
	*m.id = newID()
	*m.createdAt = now
	*m.updatedAt = now
	if m.review.Status == "" {
		m.review.Status = approval.StatusPending
	}

	t.rows[*m.id] = req
	return req, nil
}

func (t *requests[R]) Decide(ctx context.Context, id string, d approval.Decision) (int64, error) {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()

	r, ok := t.rows[id]
	if !ok || r.ReviewState().Status != approval.StatusPending {
		return 0, nil
	}

	m := t.meta(&r)
	reviewer := d.ReviewerID
	decidedAt := d.DecidedAt
	m.review.Status = d.Status
	m.review.ReviewedBy = &reviewer
	m.review.ReviewedAt = &decidedAt
	m.review.Remarks = d.Remarks
	*m.updatedAt = t.s.now()

	t.rows[id] = r
	return 1, nil
}

func (t *requests[R]) ListByEmployee(ctx context.Context, employeeID string) ([]R, error) {
	return t.filter(func(r R) bool { return r.RequesterID() == employeeID }, t.newestFirst), nil
}

func (t *requests[R]) List(ctx context.Context, status *approval.Status) ([]R, error) {
	return t.filter(func(r R) bool {
		return status == nil || r.ReviewState().Status == *status
	}, t.newestFirst), nil
}

func (t *requests[R]) CountPending(ctx context.Context) (int64, error) {
	pending := approval.StatusPending
	rows, _ := t.List(ctx, &pending)
	return int64(len(rows)), nil
}

func (t *requests[R]) ListUnnotified(ctx context.Context, employeeID string) ([]R, error) {
	return t.filter(func(r R) bool {
		rev := r.ReviewState()
		return r.RequesterID() == employeeID && rev.Status.IsTerminal() && !rev.EmployeeNotified
	}, latestReviewFirst[R]), nil
}

func (t *requests[R]) MarkNotified(ctx context.Context, id string) (int64, error) {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()

	r, ok := t.rows[id]
	if !ok || !t.notifiable(r) {
		return 0, nil
	}
	t.markNotified(id, r)
	return 1, nil
}

func (t *requests[R]) MarkAllNotified(ctx context.Context, employeeID string) (int64, error) {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()

	var n int64
	for id, r := range t.rows {
		if r.RequesterID() == employeeID && t.notifiable(r) {
			t.markNotified(id, r)
			n++
		}
	}
	return n, nil
}

func (t *requests[R]) notifiable(r R) bool {
	rev := r.ReviewState()
	return rev.Status.IsTerminal() && !rev.EmployeeNotified
}

func (t *requests[R]) markNotified(id string, r R) {
	m := t.meta(&r)
	m.review.EmployeeNotified = true
	*m.updatedAt = t.s.now()
	t.rows[id] = r
}

// deleteEmployee drops the employee's requests and forgets them as a
// reviewer. The caller holds the write lock.
func (t *requests[R]) deleteEmployee(employeeID string) {
	for id, r := range t.rows {
		if r.RequesterID() == employeeID {
			delete(t.rows, id)
			continue
		}
		m := t.meta(&r)
		if m.review.ReviewedBy != nil && *m.review.ReviewedBy == employeeID {
			m.review.ReviewedBy = nil
			t.rows[id] = r
		}
	}
}

// filter copies matching rows out under the read lock.
func (t *requests[R]) filter(keep func(R) bool, order func(a, b R) int) []R {
	t.s.mu.RLock()
	defer t.s.mu.RUnlock()

	out := make([]R, 0)
	for _, r := range t.rows {
		if keep(r) {
			out = append(out, r)
		}
	}
	slices.SortFunc(out, order)
	return out
}

func (t *requests[R]) newestFirst(a, b R) int {
	ca, cb := *t.meta(&a).createdAt, *t.meta(&b).createdAt
	if c := cb.Compare(ca); c != 0 {
		return c
	}
	return strings.Compare(b.RequestID(), a.RequestID())
}

func latestReviewFirst[R approval.Reviewable](a, b R) int {
	ra, rb := a.ReviewState().ReviewedAt, b.ReviewState().ReviewedAt
	if ra != nil && rb != nil {
		if c := rb.Compare(*ra); c != 0 {
			return c
		}
	}
	return strings.Compare(b.RequestID(), a.RequestID())
}
