package shift

import "errors"

var (
	ErrShiftNotFound            = errors.New("shift not found")
	ErrShiftNameExists          = errors.New("shift name already exists")
	ErrShiftInactive            = errors.New("shift is inactive")
	ErrDefaultShiftDeactivation = errors.New("the default shift cannot be deactivated")
	ErrShiftInUse               = errors.New("shift still has active employees assigned")
	ErrSameShift                = errors.New("source and target shift are the same")
)
