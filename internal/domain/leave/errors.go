package leave

import (
	"errors"
	"fmt"
)

var (
	ErrInsufficientCredits = errors.New("insufficient leave credits")
	ErrNotApproved         = errors.New("leave request is not approved")
	ErrAlreadySettled      = errors.New("leave credits already debited for this request")
)

// InsufficientCreditsError refuses an approval the balance cannot cover.
type InsufficientCreditsError struct {
	Available int
	Required  int
}

func (e *InsufficientCreditsError) Error() string {
	return fmt.Sprintf("Insufficient leave credits. Available: %d, Required: %d", e.Available, e.Required)
}

func (e *InsufficientCreditsError) Unwrap() error { return ErrInsufficientCredits }

func (e *InsufficientCreditsError) Code() string { return "INSUFFICIENT_CREDITS" }
