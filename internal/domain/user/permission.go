package user

import "slices"

type Permission string

const (
	// Leave
	PermissionLeaveCreate   Permission = "leave.create"
	PermissionLeaveViewOwn  Permission = "leave.view_own"
	PermissionLeaveViewTeam Permission = "leave.view_team"
	PermissionLeaveApprove  Permission = "leave.approve"

	// Attendance
	PermissionAttendanceClock    Permission = "attendance.clock"
	PermissionAttendanceViewTeam Permission = "attendance.view_team"
	PermissionAttendanceApprove  Permission = "attendance.approve"
	PermissionAttendanceDelete   Permission = "attendance.delete"

	// Users and roles
	PermissionUserViewTeam Permission = "user.view_team"
	PermissionUserManage   Permission = "user.manage"
	PermissionRoleManage   Permission = "role.manage"

	// Work tracking
	PermissionProjectManage Permission = "project.manage"
	PermissionTaskManage    Permission = "task.manage"
)

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleFounder: {
		PermissionLeaveCreate,
		PermissionLeaveViewOwn,
		PermissionLeaveViewTeam,
		PermissionLeaveApprove,
		PermissionAttendanceClock,
		PermissionAttendanceViewTeam,
		PermissionAttendanceApprove,
		PermissionAttendanceDelete,
		PermissionUserViewTeam,
		PermissionUserManage,
		PermissionRoleManage,
		PermissionProjectManage,
		PermissionTaskManage,
	},
	RoleManager: {
		PermissionLeaveCreate,
		PermissionLeaveViewOwn,
		PermissionLeaveViewTeam,
		PermissionLeaveApprove,
		PermissionAttendanceClock,
		PermissionAttendanceViewTeam,
		PermissionAttendanceApprove,
		PermissionUserViewTeam,
		PermissionProjectManage,
		PermissionTaskManage,
	},
	RoleEmployee: {
		PermissionLeaveCreate,
		PermissionLeaveViewOwn,
		PermissionLeaveViewTeam,
		PermissionAttendanceClock,
		PermissionAttendanceViewTeam,
		PermissionUserViewTeam,
		PermissionTaskManage,
	},
}

// HasPermission checks if a role has a specific permission
func HasPermission(role Role, permission Permission) bool {
	permissions, exists := RolePermissions[role]
	if !exists {
		return false
	}
	return slices.Contains(permissions, permission)
}
