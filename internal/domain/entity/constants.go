package entity

// Status constants for Timesheet
const (
	StatusDraft     = "Draft"
	StatusSubmitted = "Submitted"
	StatusApproved  = "Approved"
	StatusRejected  = "Rejected"
)

// Role constants for User
const (
	RoleEmployee = "Employee"
	RoleManager  = "Manager"
	RoleAdmin    = "Admin"
)

// Audit action constants
const (
	ActionCreated   = "Created"
	ActionUpdated   = "Updated"
	ActionSubmitted = "Submitted"
	ActionApproved  = "Approved"
	ActionRejected  = "Rejected"
)

// DefaultLocation is assumed when a timesheet row carries no location.
const DefaultLocation = "Remote"

// DaysPerWeek is the conventional entry count per row (Monday through
// Sunday). It is a convention, not an enforced constraint.
const DaysPerWeek = 7

// FullWeekHours is the soft threshold below which a submission is flagged
// to the UI but never blocked.
const FullWeekHours = 40.0
