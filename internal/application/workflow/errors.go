package workflow

import "errors"

// Failure kinds surfaced by the engine. Each maps 1:1 to a caller-visible
// signal; only the HTTP boundary translates them into transport responses.
var (
	// ErrForbidden means the identity lacks permission for the requested
	// view, mutation, or approval action. Never retried.
	ErrForbidden = errors.New("forbidden")

	// ErrLocked means the edit was denied because the sheet is Submitted
	// or Approved and the actor is an Employee.
	ErrLocked = errors.New("timesheet is locked")

	// ErrNotFound means the referenced record does not exist for an
	// operation that requires one. A legitimately empty GetByWeek lookup
	// is not an error and never produces this.
	ErrNotFound = errors.New("timesheet not found")

	// ErrConflict means a concurrent-write race on the same natural key
	// that the bounded internal retries could not resolve.
	ErrConflict = errors.New("concurrent modification conflict")

	// ErrValidation means the payload violated an invariant the engine
	// cannot safely repair, e.g. negative hours or a malformed week date.
	ErrValidation = errors.New("validation failed")
)
