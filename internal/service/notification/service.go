package notification

import (
	"cmp"
	"context"
	"errors"
	"log/slog"
	"slices"
	"sync"

	"github.com/cmlabs-hris/worklog-backend-go/internal/domain/approval"
	"github.com/cmlabs-hris/worklog-backend-go/internal/domain/lateconsideration"
	"github.com/cmlabs-hris/worklog-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/worklog-backend-go/internal/domain/notification"
	"github.com/cmlabs-hris/worklog-backend-go/internal/domain/overtime"
	"github.com/cmlabs-hris/worklog-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/worklog-backend-go/internal/pkg/sse"
)

// Config holds notification service configuration
type Config struct {
	WorkerCount int // default: 2
	QueueSize   int // default: 256
}

// source is the notification ledger of one request kind.
type source interface {
	unnotified(ctx context.Context, employeeID string) ([]approval.Notice, error)
	markAll(ctx context.Context, employeeID string) (int64, error)
	mark(ctx context.Context, employeeID, requestID string) error
}

type sourceFor[R approval.Reviewable] struct {
	repo approval.Repository[R]
}

func (s sourceFor[R]) unnotified(ctx context.Context, employeeID string) ([]approval.Notice, error) {
	rows, err := s.repo.ListUnnotified(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	notices := make([]approval.Notice, 0, len(rows))
	for _, r := range rows {
		notices = append(notices, approval.NewNotice(r))
	}
	return notices, nil
}

func (s sourceFor[R]) markAll(ctx context.Context, employeeID string) (int64, error) {
	return s.repo.MarkAllNotified(ctx, employeeID)
}

func (s sourceFor[R]) mark(ctx context.Context, employeeID, requestID string) error {
	req, err := s.repo.GetByID(ctx, requestID)
	if err != nil {
		return err
	}
	if req.RequesterID() != employeeID {
		return approval.ErrNotRequester
	}
	if !req.ReviewState().Status.IsTerminal() {
		return notification.ErrRequestNotTerminal
	}
	_, err = s.repo.MarkNotified(ctx, requestID)
	return err
}

type service struct {
	sources map[approval.Kind]source
	hub     *sse.Hub
	config  Config

	queue    chan approval.Notice
	wg       sync.WaitGroup
	stopCh   chan struct{}
	stopOnce sync.Once
}

// NewNotificationService starts the delivery workers. Call Stop on shutdown.
func NewNotificationService(
	leaves leave.LeaveRepository,
	overtimes overtime.OvertimeRepository,
	lates lateconsideration.LateConsiderationRepository,
	hub *sse.Hub,
	cfg Config,
) notification.Service {
	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 2
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 256
	}

	s := &service{
		sources: map[approval.Kind]source{
			approval.KindLeave:             sourceFor[leave.LeaveRequest]{repo: leaves},
			approval.KindOvertime:          sourceFor[overtime.OvertimeRequest]{repo: overtimes},
			approval.KindLateConsideration: sourceFor[lateconsideration.LateConsideration]{repo: lates},
		},
		hub:    hub,
		config: cfg,
		queue:  make(chan approval.Notice, cfg.QueueSize),
		stopCh: make(chan struct{}),
	}

	for i := 0; i < cfg.WorkerCount; i++ {
		s.wg.Add(1)
		go s.worker(i)
	}

	slog.Info("notification service started", "workers", cfg.WorkerCount, "queue_size", cfg.QueueSize)
	return s
}

func (s *service) worker(id int) {
	defer s.wg.Done()

	for {
		select {
		case n := <-s.queue:
			s.deliver(id, n)
		case <-s.stopCh:
			for {
				select {
				case n := <-s.queue:
					s.deliver(id, n)
				default:
					return
				}
			}
		}
	}
}

func (s *service) deliver(worker int, n approval.Notice) {
	delivered := s.hub.Publish(n.EmployeeID, sse.Event{
		Name: notification.EventReviewDecided,
		Data: n,
	})
	slog.Debug("review notice delivered",
		"worker", worker,
		"kind", n.Kind,
		"request_id", n.RequestID,
		"subscribers", delivered,
	)
}

// Decided implements approval.Listener. Delivery is best effort; the ledger
// stays authoritative until the requester acknowledges.
func (s *service) Decided(ctx context.Context, n approval.Notice) {
	select {
	case <-s.stopCh:
		s.deliver(-1, n)
		return
	default:
	}

	select {
	case s.queue <- n:
	case <-ctx.Done():
	default:
		slog.Warn("notification queue full, delivering inline",
			"error", notification.ErrQueueFull,
			"request_id", n.RequestID,
		)
		s.deliver(-1, n)
	}
}

// UnnotifiedFor implements notification.Ledger.
func (s *service) UnnotifiedFor(ctx context.Context, employeeID string) ([]approval.Notice, error) {
	var all []approval.Notice
	for _, kind := range approval.AllKinds() {
		notices, err := s.sources[kind].unnotified(ctx, employeeID)
		if err != nil {
			return nil, database.NewStorageError("list unnotified "+string(kind), err)
		}
		all = append(all, notices...)
	}

	slices.SortStableFunc(all, func(a, b approval.Notice) int {
		switch {
		case a.ReviewedAt == nil && b.ReviewedAt == nil:
			return 0
		case a.ReviewedAt == nil:
			return 1
		case b.ReviewedAt == nil:
			return -1
		}
		return cmp.Compare(b.ReviewedAt.UnixNano(), a.ReviewedAt.UnixNano())
	})
	return all, nil
}

// MarkAllNotified implements notification.Ledger.
func (s *service) MarkAllNotified(ctx context.Context, employeeID string) (int64, error) {
	var total int64
	for _, kind := range approval.AllKinds() {
		n, err := s.sources[kind].markAll(ctx, employeeID)
		if err != nil {
			return total, database.NewStorageError("mark notified "+string(kind), err)
		}
		total += n
	}
	return total, nil
}

// MarkNotified implements notification.Ledger.
func (s *service) MarkNotified(ctx context.Context, req notification.MarkNotifiedRequest) error {
	kind, err := approval.ParseKind(req.Kind)
	if err != nil {
		return err
	}

	err = s.sources[kind].mark(ctx, req.EmployeeID, req.RequestID)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, approval.ErrRequestNotFound),
		errors.Is(err, approval.ErrNotRequester),
		errors.Is(err, notification.ErrRequestNotTerminal):
		return err
	}
	return database.NewStorageError("mark notified "+string(kind), err)
}

// Subscribe creates an SSE subscription for an employee
func (s *service) Subscribe(ctx context.Context, employeeID string) (<-chan notification.SSEEvent, func()) {
	ch, cleanup := s.hub.Subscribe(employeeID)
	slog.Debug("review stream opened", "employee_id", employeeID, "streams", s.hub.SubscriberCount(employeeID))

	out := make(chan notification.SSEEvent, 10)

	go func() {
		defer close(out)
		for {
			select {
			case event, ok := <-ch:
				if !ok {
					return
				}
				n, ok := event.Data.(approval.Notice)
				if !ok {
					continue
				}
				select {
				case out <- notification.SSEEvent{Event: event.Name, Data: n}:
				case <-ctx.Done():
					return
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, cleanup
}

// Stop drains the queue and waits for the workers.
func (s *service) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopCh)
		s.wg.Wait()
		slog.Info("notification service stopped", "open_streams", s.hub.TotalSubscribers())
	})
}
