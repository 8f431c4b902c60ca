package approval

import (
	"errors"
	"fmt"
)

var (
	ErrRequestNotFound      = errors.New("request not found")
	ErrAlreadyReviewed      = errors.New("request has already been reviewed")
	ErrDuplicateRequest     = errors.New("a pending request already exists")
	ErrInvalidKind          = errors.New("invalid request kind")
	ErrInvalidStatus        = errors.New("invalid request status")
	ErrNotRequester         = errors.New("request belongs to another employee")
	ErrReconciliationNeeded = errors.New("approval recorded but its side effect failed")
)

// ReconciliationError reports an approved request whose approval side
// effect did not complete. The request stays approved; Err is the storage
// failure that interrupted it.
type ReconciliationError struct {
	Kind      Kind
	RequestID string
	Err       error
}

func (e *ReconciliationError) Error() string {
	return fmt.Sprintf("%s %s approved but needs reconciliation: %v", e.Kind, e.RequestID, e.Err)
}

func (e *ReconciliationError) Unwrap() []error {
	return []error{ErrReconciliationNeeded, e.Err}
}

var codes = []struct {
	err  error
	code string
}{
	{ErrRequestNotFound, "REQUEST_NOT_FOUND"},
	{ErrAlreadyReviewed, "ALREADY_REVIEWED"},
	{ErrDuplicateRequest, "DUPLICATE_REQUEST"},
	{ErrNotRequester, "NOT_REQUESTER"},
	{ErrReconciliationNeeded, "RECONCILIATION_REQUIRED"},
}

// CodeOf returns the machine-readable code for a workflow error. Policy
// errors supply their own through a Code method.
func CodeOf(err error) string {
	for _, c := range codes {
		if errors.Is(err, c.err) {
			return c.code
		}
	}
	var coded interface{ Code() string }
	if errors.As(err, &coded) {
		return coded.Code()
	}
	return ""
}
