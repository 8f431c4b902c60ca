package memory

import (
	"context"
	"time"

	"github.com/cmlabs-hris/worklog-backend-go/internal/domain/leave"
)

type leaveRepository struct {
	*requests[leave.LeaveRequest]
}

func NewLeaveRepository(s *Store) leave.LeaveRepository {
	return &leaveRepository{requests: s.leaves}
}

func (r *leaveRepository) SettleCredits(ctx context.Context, id string) (int64, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	req, ok := r.rows[id]
	if !ok || !req.NeedsSettlement() {
		return 0, nil
	}
	e, ok := s.employees[req.EmployeeID]
	if !ok {
		return 0, nil
	}
	if e.LeaveCredits < req.DaysCount {
		return 0, leave.ErrInsufficientCredits
	}

	now := s.now()
	e.LeaveCredits -= req.DaysCount
	e.UpdatedAt = now
	s.employees[e.ID] = e

	req.CreditsDebited = true
	req.UpdatedAt = now
	r.rows[id] = req
	return 1, nil
}

func (r *leaveRepository) ListUnsettled(ctx context.Context, reviewedBefore time.Time) ([]leave.LeaveRequest, error) {
	return r.filter(func(req leave.LeaveRequest) bool {
		return req.NeedsSettlement() && req.ReviewedAt != nil && req.ReviewedAt.Before(reviewedBefore)
	}, latestReviewFirst[leave.LeaveRequest]), nil
}
