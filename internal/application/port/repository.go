package port

import (
	"context"

	"github.com/akhilsingh-git/timesheetapplication/internal/domain/entity"
)

// TimesheetRepository defines persistence operations for Timesheet.
// The store guarantees single-document atomicity; the UNIQUE constraint on
// (user_id, week_start_date) plus the version column give the engine its
// optimistic-concurrency upsert.
type TimesheetRepository interface {
	// Insert creates a new timesheet. A natural-key collision surfaces as
	// ErrDuplicateKey so the caller can fall back to an update.
	Insert(ctx context.Context, ts *entity.Timesheet) error

	// Update writes the timesheet conditional on the version it was read
	// at, returning ErrVersionMismatch when another writer got there first.
	Update(ctx context.Context, ts *entity.Timesheet) error

	// GetByID retrieves a timesheet by storage ID; nil when absent.
	GetByID(ctx context.Context, id string) (*entity.Timesheet, error)

	// GetByUserWeek retrieves a timesheet by its natural key; nil when absent.
	GetByUserWeek(ctx context.Context, userID, weekStartDate string) (*entity.Timesheet, error)

	// ListByUser returns all timesheets for a user, newest week first.
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entity.Timesheet, error)

	// ListByStatus returns timesheets in the given status, oldest submission first.
	ListByStatus(ctx context.Context, status string, limit, offset int) ([]*entity.Timesheet, error)
}

// UserRepository defines persistence operations for User
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	List(ctx context.Context, limit, offset int) ([]*entity.User, error)
}

// ProjectRepository defines persistence operations for Project
type ProjectRepository interface {
	Create(ctx context.Context, project *entity.Project) error
	GetByID(ctx context.Context, id string) (*entity.Project, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Project, error)
	Count(ctx context.Context) (int, error)
}

// TransactionManager handles database transactions
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
