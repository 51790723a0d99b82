package entity

import "time"

// DayEntry records the hours worked on a single day of the week.
// DayIndex is 0-based starting at Monday.
type DayEntry struct {
	DayIndex int     `json:"day_index"`
	Hours    float64 `json:"hours"`
	Notes    string  `json:"notes,omitempty"`
}

// TimesheetRow is one project line on a weekly timesheet. Entries
// conventionally holds 7 day entries (Monday through Sunday) but the
// count is not enforced; aggregation sums whatever is present.
type TimesheetRow struct {
	ProjectID    string     `json:"project_id"`
	SubProjectID string     `json:"sub_project_id"`
	Entries      []DayEntry `json:"entries"`
	Location     string     `json:"location,omitempty"`
}

// AuditEntry is a single record in a timesheet's append-only audit trail.
// Once written it is never mutated or removed.
type AuditEntry struct {
	Action    string    `json:"action"`
	Actor     string    `json:"actor"`
	Timestamp time.Time `json:"timestamp"`
}

// Timesheet represents one user's work-hour submission for one week.
// The (UserID, WeekStartDate) pair is the natural key: at most one
// timesheet exists per user per week, independent of the storage ID.
type Timesheet struct {
	ID            string         `json:"id"`
	UserID        string         `json:"user_id"`
	WeekStartDate string         `json:"week_start_date"` // ISO date, conventionally a Monday
	Rows          []TimesheetRow `json:"rows"`
	Status        string         `json:"status"`
	SubmittedAt   *time.Time     `json:"submitted_at,omitempty"`
	ApprovedAt    *time.Time     `json:"approved_at,omitempty"`
	ApprovedBy    string         `json:"approved_by,omitempty"`
	RejectedAt    *time.Time     `json:"rejected_at,omitempty"`
	AuditTrail    []AuditEntry   `json:"audit_trail"`
	TotalHours    float64        `json:"total_hours"`
	Version       int64          `json:"-"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

// AppendAudit adds one entry to the audit trail. The trail only ever grows.
func (t *Timesheet) AppendAudit(action, actor string, at time.Time) {
	t.AuditTrail = append(t.AuditTrail, AuditEntry{
		Action:    action,
		Actor:     actor,
		Timestamp: at.UTC(),
	})
}
