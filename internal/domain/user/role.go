package user

type Role string

const (
	RoleOwner    Role = "owner"    // Tenant owner - full access
	RoleManager  Role = "manager"  // Can review timesheet submissions
	RoleEmployee Role = "employee" // Regular employee
)

type Permission string

const (
	PermissionTimesheetViewOwn Permission = "timesheet.view_own"
	PermissionTimesheetCreate  Permission = "timesheet.create"
	PermissionTimesheetSubmit  Permission = "timesheet.submit"
	PermissionTimesheetViewAll Permission = "timesheet.view_all"
	PermissionTimesheetReview  Permission = "timesheet.review"
	PermissionProjectView      Permission = "project.view"
)

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleOwner: {
		PermissionTimesheetViewOwn,
		PermissionTimesheetCreate,
		PermissionTimesheetSubmit,
		PermissionTimesheetViewAll,
		PermissionTimesheetReview,
		PermissionProjectView,
	},
	RoleManager: {
		PermissionTimesheetViewOwn,
		PermissionTimesheetCreate,
		PermissionTimesheetSubmit,
		PermissionTimesheetViewAll,
		PermissionTimesheetReview,
		PermissionProjectView,
	},
	RoleEmployee: {
		PermissionTimesheetViewOwn,
		PermissionTimesheetCreate,
		PermissionTimesheetSubmit,
		PermissionProjectView,
	},
}

// HasPermission checks whether a role carries a permission.
func HasPermission(role Role, permission Permission) bool {
	for _, p := range RolePermissions[role] {
		if p == permission {
			return true
		}
	}
	return false
}

// CanReview reports whether the role may approve or reject submissions.
func CanReview(role Role) bool {
	return HasPermission(role, PermissionTimesheetReview)
}
