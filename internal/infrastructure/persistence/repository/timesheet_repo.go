package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/akhilsingh-git/timesheetapplication/internal/application/port"
	"github.com/akhilsingh-git/timesheetapplication/internal/domain/entity"
)

// TimesheetRepository implements port.TimesheetRepository on SQLite.
// Rows and the audit trail are stored as JSON documents; the natural key
// (user_id, week_start_date) carries a UNIQUE constraint and every write
// bumps the version column, which together give the engine its atomic
// upsert semantics.
type TimesheetRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewTimesheetRepository creates a new timesheet repository
func NewTimesheetRepository(db *sql.DB, logger *zap.Logger) port.TimesheetRepository {
	return &TimesheetRepository{
		db:     db,
		logger: logger,
	}
}

const timesheetColumns = `
	id, user_id, week_start_date, rows_json, status,
	submitted_at, approved_at, approved_by, rejected_at,
	audit_trail_json, total_hours, version, created_at, updated_at
`

// Insert creates a new timesheet. A collision on the natural key is
// reported as port.ErrDuplicateKey so the engine can retry as an update.
func (r *TimesheetRepository) Insert(ctx context.Context, ts *entity.Timesheet) error {
	if ts.ID == "" {
		ts.ID = uuid.NewString()
	}
	ts.Version = 1

	rowsJSON, auditJSON, err := marshalDocuments(ts)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO timesheets (` + timesheetColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.getExecutor(ctx).ExecContext(ctx, query,
		ts.ID,
		ts.UserID,
		ts.WeekStartDate,
		rowsJSON,
		ts.Status,
		ts.SubmittedAt,
		ts.ApprovedAt,
		nullString(ts.ApprovedBy),
		ts.RejectedAt,
		auditJSON,
		ts.TotalHours,
		ts.Version,
		ts.CreatedAt,
		ts.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("timesheet %s/%s: %w", ts.UserID, ts.WeekStartDate, port.ErrDuplicateKey)
	}
	if err != nil {
		r.logger.Error("Failed to insert timesheet", zap.Error(err))
		return fmt.Errorf("failed to insert timesheet: %w", err)
	}

	return nil
}

// Update writes the timesheet conditional on the version it was read at.
// A version miss means another writer won the race and is reported as
// port.ErrVersionMismatch.
func (r *TimesheetRepository) Update(ctx context.Context, ts *entity.Timesheet) error {
	rowsJSON, auditJSON, err := marshalDocuments(ts)
	if err != nil {
		return err
	}

	query := `
		UPDATE timesheets SET
			rows_json = ?, status = ?,
			submitted_at = ?, approved_at = ?, approved_by = ?, rejected_at = ?,
			audit_trail_json = ?, total_hours = ?,
			version = version + 1, updated_at = ?
		WHERE id = ? AND version = ?
	`

	result, err := r.getExecutor(ctx).ExecContext(ctx, query,
		rowsJSON,
		ts.Status,
		ts.SubmittedAt,
		ts.ApprovedAt,
		nullString(ts.ApprovedBy),
		ts.RejectedAt,
		auditJSON,
		ts.TotalHours,
		ts.UpdatedAt,
		ts.ID,
		ts.Version,
	)
	if err != nil {
		r.logger.Error("Failed to update timesheet", zap.String("id", ts.ID), zap.Error(err))
		return fmt.Errorf("failed to update timesheet: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("timesheet %s at version %d: %w", ts.ID, ts.Version, port.ErrVersionMismatch)
	}

	ts.Version++
	return nil
}

// GetByID retrieves a timesheet by storage ID; nil when absent.
func (r *TimesheetRepository) GetByID(ctx context.Context, id string) (*entity.Timesheet, error) {
	query := `SELECT ` + timesheetColumns + ` FROM timesheets WHERE id = ?`
	return r.scanOne(r.getExecutor(ctx).QueryRowContext(ctx, query, id))
}

// GetByUserWeek retrieves a timesheet by its natural key; nil when absent.
func (r *TimesheetRepository) GetByUserWeek(ctx context.Context, userID, weekStartDate string) (*entity.Timesheet, error) {
	query := `SELECT ` + timesheetColumns + ` FROM timesheets WHERE user_id = ? AND week_start_date = ?`
	return r.scanOne(r.getExecutor(ctx).QueryRowContext(ctx, query, userID, weekStartDate))
}

// ListByUser returns all timesheets for a user, newest week first.
func (r *TimesheetRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entity.Timesheet, error) {
	query := `
		SELECT ` + timesheetColumns + `
		FROM timesheets
		WHERE user_id = ?
		ORDER BY week_start_date DESC
		LIMIT ? OFFSET ?
	`
	return r.queryMany(ctx, query, userID, limit, offset)
}

// ListByStatus returns timesheets in the given status, oldest submission first.
func (r *TimesheetRepository) ListByStatus(ctx context.Context, status string, limit, offset int) ([]*entity.Timesheet, error) {
	query := `
		SELECT ` + timesheetColumns + `
		FROM timesheets
		WHERE status = ?
		ORDER BY submitted_at ASC, week_start_date ASC
		LIMIT ? OFFSET ?
	`
	return r.queryMany(ctx, query, status, limit, offset)
}

func (r *TimesheetRepository) queryMany(ctx context.Context, query string, args ...interface{}) ([]*entity.Timesheet, error) {
	rows, err := r.getExecutor(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to query timesheets", zap.Error(err))
		return nil, fmt.Errorf("failed to query timesheets: %w", err)
	}
	defer rows.Close()

	var sheets []*entity.Timesheet
	for rows.Next() {
		ts, err := scanTimesheet(rows.Scan)
		if err != nil {
			return nil, err
		}
		sheets = append(sheets, ts)
	}

	return sheets, rows.Err()
}

func (r *TimesheetRepository) scanOne(row *sql.Row) (*entity.Timesheet, error) {
	ts, err := scanTimesheet(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to scan timesheet", zap.Error(err))
		return nil, err
	}
	return ts, nil
}

func scanTimesheet(scan func(dest ...interface{}) error) (*entity.Timesheet, error) {
	var (
		ts          entity.Timesheet
		rowsJSON    string
		auditJSON   string
		submittedAt sql.NullTime
		approvedAt  sql.NullTime
		approvedBy  sql.NullString
		rejectedAt  sql.NullTime
	)

	err := scan(
		&ts.ID,
		&ts.UserID,
		&ts.WeekStartDate,
		&rowsJSON,
		&ts.Status,
		&submittedAt,
		&approvedAt,
		&approvedBy,
		&rejectedAt,
		&auditJSON,
		&ts.TotalHours,
		&ts.Version,
		&ts.CreatedAt,
		&ts.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(rowsJSON), &ts.Rows); err != nil {
		return nil, fmt.Errorf("failed to decode timesheet rows: %w", err)
	}
	if err := json.Unmarshal([]byte(auditJSON), &ts.AuditTrail); err != nil {
		return nil, fmt.Errorf("failed to decode audit trail: %w", err)
	}

	if submittedAt.Valid {
		ts.SubmittedAt = &submittedAt.Time
	}
	if approvedAt.Valid {
		ts.ApprovedAt = &approvedAt.Time
	}
	if approvedBy.Valid {
		ts.ApprovedBy = approvedBy.String
	}
	if rejectedAt.Valid {
		ts.RejectedAt = &rejectedAt.Time
	}

	return &ts, nil
}

func marshalDocuments(ts *entity.Timesheet) (rowsJSON, auditJSON string, err error) {
	rows := ts.Rows
	if rows == nil {
		rows = []entity.TimesheetRow{}
	}
	trail := ts.AuditTrail
	if trail == nil {
		trail = []entity.AuditEntry{}
	}

	rb, err := json.Marshal(rows)
	if err != nil {
		return "", "", fmt.Errorf("failed to encode timesheet rows: %w", err)
	}
	ab, err := json.Marshal(trail)
	if err != nil {
		return "", "", fmt.Errorf("failed to encode audit trail: %w", err)
	}
	return string(rb), string(ab), nil
}

func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
		sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// getExecutor returns appropriate executor based on context
func (r *TimesheetRepository) getExecutor(ctx context.Context) executor {
	return getExecutor(ctx, r.db)
}

// Verify interface compliance
var _ port.TimesheetRepository = (*TimesheetRepository)(nil)
