package workflow

import (
	"context"

	"github.com/akhilsingh-git/timesheetapplication/internal/domain/entity"
)

// SavePayload is the caller-supplied document for a Save operation.
// UserID and WeekStartDate form the natural key the record is upserted
// under; status, totals and the audit trail are engine-owned and anything
// the caller puts there is ignored.
type SavePayload struct {
	UserID        string                `json:"user_id"`
	WeekStartDate string                `json:"week_start_date"`
	Rows          []entity.TimesheetRow `json:"rows"`
}

// Engine orchestrates the timesheet workflow: it consults the access
// policy, loads prior state, validates transitions against the state
// machine, recomputes totals, grows the audit trail and hands the next
// record state to the repository.
type Engine interface {
	// GetByWeek resolves the target user (the actor when targetUserID is
	// empty) and returns the stored sheet for that week, or nil when none
	// exists. Absence is a normal outcome, not an error.
	GetByWeek(ctx context.Context, actor *entity.User, targetUserID, weekStartDate string) (*entity.Timesheet, error)

	// Save upserts the sheet addressed by the payload's natural key.
	Save(ctx context.Context, actor *entity.User, payload *SavePayload) (*entity.Timesheet, error)

	// Submit moves the sheet into Submitted and stamps submitted_at.
	Submit(ctx context.Context, actor *entity.User, timesheetID string) (*entity.Timesheet, error)

	// Approve records a manager decision in favor of the sheet.
	Approve(ctx context.Context, actor *entity.User, timesheetID string) (*entity.Timesheet, error)

	// Reject records a manager decision against the sheet.
	Reject(ctx context.Context, actor *entity.User, timesheetID string) (*entity.Timesheet, error)

	// ListPending returns sheets awaiting a decision, for reviewer queues.
	ListPending(ctx context.Context, actor *entity.User, limit, offset int) ([]*entity.Timesheet, error)
}
