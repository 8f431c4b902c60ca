package notification

import (
	"context"

	"github.com/cmlabs-hris/worklog-backend-go/internal/domain/approval"
)

// Ledger tracks whether a requester has been told about each terminal
// decision, across all request kinds.
type Ledger interface {
	UnnotifiedFor(ctx context.Context, employeeID string) ([]approval.Notice, error)

	// MarkAllNotified flips every terminal, unnotified request of the
	// employee and returns how many changed. A second call returns 0.
	MarkAllNotified(ctx context.Context, employeeID string) (int64, error)
	MarkNotified(ctx context.Context, req MarkNotifiedRequest) error
}

// Service is the ledger plus real-time delivery of decisions.
type Service interface {
	Ledger
	approval.Listener

	// SSE subscription
	Subscribe(ctx context.Context, employeeID string) (<-chan SSEEvent, func())

	// Lifecycle
	Stop()
}
