package overtime

import "errors"

var (
	ErrAlreadyApproved = errors.New("overtime for this date is already approved")
	ErrInvalidMonth    = errors.New("month must be between 1 and 12")
)
