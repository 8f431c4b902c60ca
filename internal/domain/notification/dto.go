package notification

import "github.com/cmlabs-hris/worklog-backend-go/internal/domain/approval"

type ReviewNoticesResponse struct {
	Notices []approval.Notice `json:"notices"`
	Count   int               `json:"count"`
}

type MarkAllNotifiedResponse struct {
	Marked int64 `json:"marked"`
}

type MarkNotifiedRequest struct {
	EmployeeID string
	Kind       string
	RequestID  string
}

// SSETokenResponse represents the SSE token response
type SSETokenResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expires_in"`
}
