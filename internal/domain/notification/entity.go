package notification

import "github.com/cmlabs-hris/worklog-backend-go/internal/domain/approval"

// EventReviewDecided is the SSE event name for a terminal decision.
const EventReviewDecided = "review_decided"

// SSEEvent is one decision pushed to a connected requester.
type SSEEvent struct {
	Event string
	Data  approval.Notice
}
