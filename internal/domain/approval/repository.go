package approval

import "context"

// Repository is the storage contract shared by the three request tables.
type Repository[R Reviewable] interface {
	// GetByID returns ErrRequestNotFound when the id is unknown.
	GetByID(ctx context.Context, id string) (R, error)

	// HasPending reports whether the requester already has a pending request
	// with the same duplicate key as req.
	HasPending(ctx context.Context, req R) (bool, error)
	Create(ctx context.Context, req R) (R, error)

	// Decide writes d only while the request is still pending and returns the
	// number of rows changed.
	Decide(ctx context.Context, id string, d Decision) (int64, error)

	ListByEmployee(ctx context.Context, employeeID string) ([]R, error)
	List(ctx context.Context, status *Status) ([]R, error)
	CountPending(ctx context.Context) (int64, error)

	// ListUnnotified returns terminal requests whose requester has not been
	// told about the decision, newest decision first.
	ListUnnotified(ctx context.Context, employeeID string) ([]R, error)
	MarkNotified(ctx context.Context, id string) (int64, error)
	MarkAllNotified(ctx context.Context, employeeID string) (int64, error)
}

// Policy is the kind-specific part of an approval.
type Policy[R Reviewable] interface {
	// CheckApprove runs before the decision is written. A returned error
	// that is not a storage error refuses the approval with no write.
	CheckApprove(ctx context.Context, req R) error

	// OnApproved runs after the approval has been written.
	OnApproved(ctx context.Context, req R) error
}

// NoSideEffects approves unconditionally and does nothing afterwards.
type NoSideEffects[R Reviewable] struct{}

func (NoSideEffects[R]) CheckApprove(context.Context, R) error { return nil }
func (NoSideEffects[R]) OnApproved(context.Context, R) error   { return nil }

// Listener is told about every decision after it is stored.
type Listener interface {
	Decided(ctx context.Context, n Notice)
}
