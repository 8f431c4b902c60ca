package memory

import (
	"context"
	"time"

	"github.com/cmlabs-hris/worklog-backend-go/internal/domain/approval"
	"github.com/cmlabs-hris/worklog-backend-go/internal/domain/overtime"
	"github.com/shopspring/decimal"
)

type overtimeRepository struct {
	*requests[overtime.OvertimeRequest]
}

func NewOvertimeRepository(s *Store) overtime.OvertimeRepository {
	return &overtimeRepository{requests: s.overtime}
}

func (r *overtimeRepository) FindApprovedForDate(ctx context.Context, employeeID string, date time.Time) (*overtime.OvertimeRequest, error) {
	matches := r.filter(func(req overtime.OvertimeRequest) bool {
		return req.EmployeeID == employeeID &&
			req.Status == approval.StatusApproved &&
			sameDay(req.RequestDate, date)
	}, r.newestFirst)
	if len(matches) == 0 {
		return nil, nil
	}
	return &matches[0], nil
}

func (r *overtimeRepository) UpdateActualOvertime(ctx context.Context, id string, hours float64) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	req, ok := r.rows[id]
	if !ok {
		return 0, nil
	}
	req.ActualOvertime = &hours
	req.UpdatedAt = r.s.now()
	r.rows[id] = req
	return 1, nil
}

func (r *overtimeRepository) MonthlyOvertime(ctx context.Context, employeeID string, year int, month time.Month) (float64, error) {
	matches := r.filter(func(req overtime.OvertimeRequest) bool {
		return req.EmployeeID == employeeID &&
			req.Status == approval.StatusApproved &&
			req.RequestDate.Year() == year &&
			req.RequestDate.Month() == month
	}, r.newestFirst)

	total := decimal.Zero
	for _, req := range matches {
		if req.ActualOvertime != nil {
			total = total.Add(decimal.NewFromFloat(*req.ActualOvertime))
		}
	}
	return total.InexactFloat64(), nil
}
