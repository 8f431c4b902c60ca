package approval

import (
	"strings"
	"time"
)

// Kind names one of the review-gated request types.
type Kind string

const (
	KindLeave             Kind = "leave"
	KindOvertime          Kind = "overtime"
	KindLateConsideration Kind = "late_consideration"
)

func AllKinds() []Kind {
	return []Kind{KindLeave, KindOvertime, KindLateConsideration}
}

func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range AllKinds() {
		if k == known {
			return k, nil
		}
	}
	return "", ErrInvalidKind
}

// Label is the human-readable name used in messages, e.g. "Leave request".
func (k Kind) Label() string {
	switch k {
	case KindLeave:
		return "Leave request"
	case KindOvertime:
		return "Overtime request"
	case KindLateConsideration:
		return "Late consideration request"
	}
	return "Request"
}

type Status string

const (
	StatusPending  Status = "Pending"
	StatusApproved Status = "Approved"
	StatusRejected Status = "Rejected"
)

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusApproved, StatusRejected:
		return Status(s), nil
	}
	return "", ErrInvalidStatus
}

// IsTerminal reports whether no further decision may be recorded.
func (s Status) IsTerminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// Review is the reviewer-side state every request carries.
type Review struct {
	Status           Status
	ReviewedBy       *string
	ReviewedAt       *time.Time
	Remarks          *string
	EmployeeNotified bool
}

// Decision is written once, conditioned on the request still being pending.
type Decision struct {
	Status     Status
	ReviewerID string
	Remarks    *string
	DecidedAt  time.Time
}

// Reviewable is the capability the shared workflow needs from a request.
type Reviewable interface {
	RequestID() string
	RequesterID() string
	RequestKind() Kind
	// Subject summarises what was requested, e.g. "Vacation Leave, 2026-03-02 to 2026-03-04".
	Subject() string
	ReviewState() Review
}

// Notice tells a requester about a terminal decision.
type Notice struct {
	RequestID  string     `json:"request_id"`
	EmployeeID string     `json:"employee_id"`
	Kind       Kind       `json:"kind"`
	Status     Status     `json:"status"`
	Subject    string     `json:"subject"`
	Remarks    *string    `json:"remarks"`
	ReviewedAt *time.Time `json:"reviewed_at"`
}

func NewNotice(r Reviewable) Notice {
	rev := r.ReviewState()
	return Notice{
		RequestID:  r.RequestID(),
		EmployeeID: r.RequesterID(),
		Kind:       r.RequestKind(),
		Status:     rev.Status,
		Subject:    r.Subject(),
		Remarks:    rev.Remarks,
		ReviewedAt: rev.ReviewedAt,
	}
}
