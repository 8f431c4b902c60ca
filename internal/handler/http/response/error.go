package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/worklog-backend-go/internal/domain/approval"
	"github.com/cmlabs-hris/worklog-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/worklog-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/worklog-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/worklog-backend-go/internal/domain/notification"
	"github.com/cmlabs-hris/worklog-backend-go/internal/domain/overtime"
	"github.com/cmlabs-hris/worklog-backend-go/internal/domain/shift"
	"github.com/cmlabs-hris/worklog-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/worklog-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/worklog-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth
	case errors.Is(err, user.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")

	// Request workflow errors
	case errors.Is(err, approval.ErrReconciliationNeeded):
		slog.Error("approval needs reconciliation", "error", err)
		writeError(w, http.StatusInternalServerError, approval.CodeOf(err), "Request approved but could not be fully applied")
	case errors.Is(err, approval.ErrRequestNotFound):
		NotFound(w, "Request not found")
	case errors.Is(err, approval.ErrAlreadyReviewed):
		Conflict(w, "Request has already been reviewed")
	case errors.Is(err, approval.ErrDuplicateRequest):
		Conflict(w, "A pending request already exists for this period")
	case errors.Is(err, approval.ErrNotRequester):
		Forbidden(w, "Request belongs to another employee")
	case errors.Is(err, approval.ErrInvalidKind), errors.Is(err, approval.ErrInvalidStatus):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, notification.ErrRequestNotTerminal):
		Conflict(w, "Request has not been reviewed yet")

	// Leave and overtime
	case errors.Is(err, leave.ErrInsufficientCredits):
		writeError(w, http.StatusUnprocessableEntity, "INSUFFICIENT_CREDITS", err.Error())
	case errors.Is(err, leave.ErrNotApproved):
		Conflict(w, "Leave request is not approved")
	case errors.Is(err, leave.ErrAlreadySettled):
		Conflict(w, "Leave credits already debited for this request")
	case errors.Is(err, overtime.ErrInvalidMonth):
		BadRequest(w, err.Error(), nil)

	// Attendance
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrInvalidDateRange):
		BadRequest(w, err.Error(), nil)

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeCodeExists):
		Conflict(w, "Employee code already exists")
	case errors.Is(err, employee.ErrEmployeeAlreadyInactive):
		Conflict(w, "Employee is already inactive")
	case errors.Is(err, employee.ErrNegativeLeaveCredits):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, employee.ErrCannotDeleteSelf):
		Forbidden(w, "You cannot delete your own employee record")

	// Shift domain errors
	case errors.Is(err, shift.ErrShiftNotFound):
		NotFound(w, "Shift not found")
	case errors.Is(err, shift.ErrShiftNameExists):
		Conflict(w, "Shift name already exists")
	case errors.Is(err, shift.ErrShiftInactive):
		Conflict(w, "Shift is inactive")
	case errors.Is(err, shift.ErrDefaultShiftDeactivation):
		Conflict(w, "The default shift cannot be deactivated")
	case errors.Is(err, shift.ErrShiftInUse):
		Conflict(w, "Shift still has active employees assigned")
	case errors.Is(err, shift.ErrSameShift):
		BadRequest(w, err.Error(), nil)

	case database.IsStorageError(err):
		slog.Error("storage failure", "error", err)
		InternalServerError(w, "A storage error occurred")

	// Default
	default:
		slog.Error("unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}

// Outcome renders an attendance check or transition. A refused outcome is a
// conflict with the outcome itself as data.
func Outcome(w http.ResponseWriter, o attendance.Outcome, data interface{}) {
	if !o.Allowed {
		writeJSON(w, http.StatusConflict, Response{
			Success: false,
			Message: o.Message,
			Data:    o,
			Error: &ErrorDetail{
				Code:    o.Code,
				Message: o.Title,
			},
		})
		return
	}
	SuccessWithMessage(w, o.Message, data)
}

// ReviewResult renders the result of an approve or reject call.
func ReviewResult(w http.ResponseWriter, res approval.Result) {
	if res.OK {
		SuccessWithMessage(w, res.Message, res)
		return
	}

	status := http.StatusConflict
	switch {
	case errors.Is(res.Reason, approval.ErrRequestNotFound):
		status = http.StatusNotFound
	case errors.Is(res.Reason, approval.ErrAlreadyReviewed):
		status = http.StatusConflict
	case errors.Is(res.Reason, approval.ErrReconciliationNeeded):
		status = http.StatusInternalServerError
	case res.Reason != nil:
		// kind-specific policy refusals such as insufficient credits
		status = http.StatusUnprocessableEntity
	}

	writeJSON(w, status, Response{
		Success: false,
		Data:    res,
		Error: &ErrorDetail{
			Code:    res.Code,
			Message: res.Message,
		},
	})
}
