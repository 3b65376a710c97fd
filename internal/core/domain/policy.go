package domain

// Pure authorization predicates consulted by the HTTP layer. The payroll core
// itself never rejects a call for lack of permission; route middleware does.
// All payroll actions are an HR-desk concern.

// CanApprove reports whether role may approve a record in the given state.
func CanApprove(status PayrollStatus, role Role) bool {
	return role == RoleHR && status == StatusPending
}

// CanMarkPaid reports whether role may mark a record in the given state as paid.
func CanMarkPaid(status PayrollStatus, role Role) bool {
	return role == RoleHR && status == StatusApproved
}

// CanEdit reports whether role may edit a record in the given state.
func CanEdit(status PayrollStatus, role Role) bool {
	return role == RoleHR && status == StatusPending
}

// CanDelete reports whether role may delete a record in the given state.
func CanDelete(status PayrollStatus, role Role) bool {
	return role == RoleHR && !status.IsTerminal()
}
