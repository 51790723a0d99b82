// Package access holds the pure role-based predicates gating timesheet
// visibility and mutation. The functions decide over state they are handed
// and never query storage.
package access

import (
	"github.com/akhilsingh-git/timesheetapplication/internal/domain/entity"
)

// CanView reports whether the user may read the given timesheet. Owners
// always may; Managers and Admins may view anyone's.
func CanView(user *entity.User, ts *entity.Timesheet) bool {
	if user == nil || ts == nil {
		return false
	}
	if user.ID == ts.UserID {
		return true
	}
	return user.IsManagerial()
}

// CanViewUser reports whether the user may read timesheets belonging to
// targetUserID, used before any record has been loaded.
func CanViewUser(user *entity.User, targetUserID string) bool {
	if user == nil {
		return false
	}
	if user.ID == targetUserID {
		return true
	}
	return user.IsManagerial()
}

// CanEdit reports whether the user may save over the given stored record.
// existing is nil on first save for a week, which is always editable under
// the visibility rule. Once a sheet is Submitted or Approved an Employee is
// locked out; Managers and Admins may still edit.
func CanEdit(user *entity.User, existing *entity.Timesheet) bool {
	if user == nil {
		return false
	}
	if existing == nil {
		return true
	}
	if !CanView(user, existing) {
		return false
	}
	if existing.Status == entity.StatusSubmitted || existing.Status == entity.StatusApproved {
		return user.IsManagerial()
	}
	return true
}

// CanApproveOrReject reports whether the user may decide submitted
// timesheets. Everyone but an Employee may.
func CanApproveOrReject(user *entity.User) bool {
	if user == nil {
		return false
	}
	return user.Role != entity.RoleEmployee
}

// CanManageProjects reports whether the user may create or modify
// projects. Same Manager-or-Admin rule the workflow reuses wherever
// project-scoped mutation intersects timesheet data.
func CanManageProjects(user *entity.User) bool {
	if user == nil {
		return false
	}
	return user.IsManagerial()
}
