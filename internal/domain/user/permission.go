package user

type Permission string

const (
	// Self service
	PermissionAttendanceSelf Permission = "attendance.self"
	PermissionRequestSubmit  Permission = "request.submit"

	// Review
	PermissionAttendanceViewAll Permission = "attendance.view_all"
	PermissionRequestReview     Permission = "request.review"

	// Administration
	PermissionShiftManage    Permission = "shift.manage"
	PermissionEmployeeManage Permission = "employee.manage"
)

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleAdmin: {
		// Admin has all permissions
		PermissionAttendanceSelf,
		PermissionRequestSubmit,
		PermissionAttendanceViewAll,
		PermissionRequestReview,
		PermissionShiftManage,
		PermissionEmployeeManage,
	},
	RoleStaff: {
		PermissionAttendanceSelf,
		PermissionRequestSubmit,
		PermissionAttendanceViewAll,
		PermissionRequestReview,
	},
	RoleEmployee: {
		PermissionAttendanceSelf,
		PermissionRequestSubmit,
	},
}

// HasPermission checks if a role has a specific permission
func HasPermission(role Role, permission Permission) bool {
	permissions, exists := RolePermissions[role]
	if !exists {
		return false
	}

	for _, p := range permissions {
		if p == permission {
			return true
		}
	}

	return false
}
