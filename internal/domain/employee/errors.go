package employee

import "errors"

var (
	ErrEmployeeNotFound        = errors.New("employee not found")
	ErrEmployeeCodeExists      = errors.New("employee code already exists")
	ErrEmployeeAlreadyInactive = errors.New("employee is already inactive")
	ErrNegativeLeaveCredits    = errors.New("leave credits cannot be negative")
	ErrCannotDeleteSelf        = errors.New("cannot delete your own employee record")
	ErrInvalidEmployeeCode     = errors.New("invalid employee code")
)
