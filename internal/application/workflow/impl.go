package workflow

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/akhilsingh-git/timesheetapplication/internal/application/port"
	"github.com/akhilsingh-git/timesheetapplication/internal/domain/access"
	"github.com/akhilsingh-git/timesheetapplication/internal/domain/entity"
	domainwf "github.com/akhilsingh-git/timesheetapplication/internal/domain/workflow"
)

// engineImpl is the concrete implementation of Engine
type engineImpl struct {
	timesheets port.TimesheetRepository
	logger     *zap.Logger

	now        func() time.Time
	maxRetries int
}

// EngineOption configures the workflow engine
type EngineOption func(*engineImpl)

// WithClock overrides the engine's time source
func WithClock(now func() time.Time) EngineOption {
	return func(e *engineImpl) {
		e.now = now
	}
}

// WithMaxRetries sets the bound on optimistic-concurrency retries before
// a save surfaces ErrConflict
func WithMaxRetries(n int) EngineOption {
	return func(e *engineImpl) {
		e.maxRetries = n
	}
}

// NewEngine creates a new workflow engine
func NewEngine(timesheets port.TimesheetRepository, logger *zap.Logger, opts ...EngineOption) Engine {
	e := &engineImpl{
		timesheets: timesheets,
		logger:     logger,
		now:        time.Now,
		maxRetries: 3,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// GetByWeek returns the stored sheet for (target user, week), or nil when
// none exists. Absence is a normal outcome distinct from lookup failure.
func (e *engineImpl) GetByWeek(ctx context.Context, actor *entity.User, targetUserID, weekStartDate string) (*entity.Timesheet, error) {
	if actor == nil {
		return nil, ErrForbidden
	}
	if targetUserID == "" {
		targetUserID = actor.ID
	}
	if !access.CanViewUser(actor, targetUserID) {
		return nil, fmt.Errorf("%w: cannot view other users' timesheets", ErrForbidden)
	}

	ts, err := e.timesheets.GetByUserWeek(ctx, targetUserID, weekStartDate)
	if err != nil {
		return nil, fmt.Errorf("lookup timesheet: %w", err)
	}
	return ts, nil
}

// Save upserts the sheet addressed by the payload's natural key. The
// read-check-write is wrapped in an optimistic-concurrency loop so two
// racing saves for the same (user, week) never both insert; the loser
// re-reads and merges onto the winner's record.
func (e *engineImpl) Save(ctx context.Context, actor *entity.User, payload *SavePayload) (*entity.Timesheet, error) {
	if actor == nil {
		return nil, ErrForbidden
	}
	if err := validatePayload(payload); err != nil {
		return nil, err
	}
	if !access.CanViewUser(actor, payload.UserID) {
		return nil, fmt.Errorf("%w: cannot modify other users' timesheets", ErrForbidden)
	}

	rows := normalizeRows(payload.Rows)
	total := entity.ComputeTotalHours(rows)

	for attempt := 0; attempt < e.maxRetries; attempt++ {
		existing, err := e.timesheets.GetByUserWeek(ctx, payload.UserID, payload.WeekStartDate)
		if err != nil {
			return nil, fmt.Errorf("lookup timesheet: %w", err)
		}

		if !access.CanEdit(actor, existing) {
			return nil, fmt.Errorf("%w: status %s", ErrLocked, existing.Status)
		}

		now := e.now().UTC()

		if existing == nil {
			ts := &entity.Timesheet{
				UserID:        payload.UserID,
				WeekStartDate: payload.WeekStartDate,
				Rows:          rows,
				Status:        entity.StatusDraft,
				TotalHours:    total,
				CreatedAt:     now,
				UpdatedAt:     now,
			}
			ts.AppendAudit(entity.ActionCreated, actor.Email, now)

			err = e.timesheets.Insert(ctx, ts)
			if errors.Is(err, port.ErrDuplicateKey) {
				// Lost the insert race; retry as an update against the winner
				e.logger.Warn("Concurrent insert on natural key, retrying",
					zap.String("user_id", payload.UserID),
					zap.String("week_start_date", payload.WeekStartDate))
				continue
			}
			if err != nil {
				return nil, fmt.Errorf("insert timesheet: %w", err)
			}

			e.logger.Info("Timesheet created",
				zap.String("id", ts.ID),
				zap.String("user_id", ts.UserID),
				zap.String("week_start_date", ts.WeekStartDate),
				zap.Float64("total_hours", ts.TotalHours))
			return ts, nil
		}

		machine := BuildTimesheetStateMachine(domainwf.State(existing.Status))
		if err := machine.Fire(ctx, domainwf.TriggerSave); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrValidation, err)
		}

		ts := &entity.Timesheet{
			ID:            existing.ID,
			UserID:        payload.UserID,
			WeekStartDate: payload.WeekStartDate,
			Rows:          rows,
			Status:        machine.State().String(),
			SubmittedAt:   existing.SubmittedAt,
			ApprovedAt:    existing.ApprovedAt,
			ApprovedBy:    existing.ApprovedBy,
			RejectedAt:    existing.RejectedAt,
			AuditTrail:    existing.AuditTrail,
			TotalHours:    total,
			Version:       existing.Version,
			CreatedAt:     existing.CreatedAt,
			UpdatedAt:     now,
		}
		ts.AppendAudit(entity.ActionUpdated, actor.Email, now)

		err = e.timesheets.Update(ctx, ts)
		if errors.Is(err, port.ErrVersionMismatch) {
			e.logger.Warn("Version conflict on save, retrying",
				zap.String("id", existing.ID),
				zap.Int64("version", existing.Version))
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("update timesheet: %w", err)
		}

		e.logger.Info("Timesheet updated",
			zap.String("id", ts.ID),
			zap.String("status", ts.Status),
			zap.Float64("total_hours", ts.TotalHours))
		return ts, nil
	}

	return nil, fmt.Errorf("%w: save for user %s week %s", ErrConflict, payload.UserID, payload.WeekStartDate)
}

// Submit moves the sheet into Submitted. A total under the conventional 40
// hours is permitted; it is a soft signal for the UI, not a block.
func (e *engineImpl) Submit(ctx context.Context, actor *entity.User, timesheetID string) (*entity.Timesheet, error) {
	if actor == nil {
		return nil, ErrForbidden
	}

	return e.transition(ctx, timesheetID, domainwf.TriggerSubmit, false, func(ts *entity.Timesheet) error {
		if ts.UserID != actor.ID && !actor.IsManagerial() {
			return fmt.Errorf("%w: cannot submit another user's timesheet", ErrForbidden)
		}

		if ts.TotalHours < entity.FullWeekHours {
			e.logger.Info("Timesheet submitted under full week",
				zap.String("id", ts.ID),
				zap.Float64("total_hours", ts.TotalHours))
		}

		now := e.now().UTC()
		ts.SubmittedAt = &now
		ts.AppendAudit(entity.ActionSubmitted, actor.Email, now)
		return nil
	})
}

// Approve records a decision in favor of the sheet.
func (e *engineImpl) Approve(ctx context.Context, actor *entity.User, timesheetID string) (*entity.Timesheet, error) {
	if !access.CanApproveOrReject(actor) {
		return nil, fmt.Errorf("%w: role %s cannot approve", ErrForbidden, roleOf(actor))
	}

	return e.transition(ctx, timesheetID, domainwf.TriggerApprove, false, func(ts *entity.Timesheet) error {
		now := e.now().UTC()
		ts.ApprovedAt = &now
		ts.ApprovedBy = actor.ID
		ts.AppendAudit(entity.ActionApproved, actor.Email, now)
		return nil
	})
}

// Reject records a decision against the sheet. Rejecting an absent record
// is a no-op that still reports success, matching the historical contract.
func (e *engineImpl) Reject(ctx context.Context, actor *entity.User, timesheetID string) (*entity.Timesheet, error) {
	if !access.CanApproveOrReject(actor) {
		return nil, fmt.Errorf("%w: role %s cannot reject", ErrForbidden, roleOf(actor))
	}

	return e.transition(ctx, timesheetID, domainwf.TriggerReject, true, func(ts *entity.Timesheet) error {
		now := e.now().UTC()
		ts.RejectedAt = &now
		ts.AppendAudit(entity.ActionRejected, actor.Email, now)
		return nil
	})
}

// ListPending returns submitted sheets awaiting a decision.
func (e *engineImpl) ListPending(ctx context.Context, actor *entity.User, limit, offset int) ([]*entity.Timesheet, error) {
	if !access.CanApproveOrReject(actor) {
		return nil, fmt.Errorf("%w: role %s cannot review timesheets", ErrForbidden, roleOf(actor))
	}

	sheets, err := e.timesheets.ListByStatus(ctx, entity.StatusSubmitted, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list pending timesheets: %w", err)
	}
	return sheets, nil
}

// transition loads the sheet, fires the trigger, applies mutate and writes
// the result back under the optimistic-concurrency loop. missingOK makes an
// absent record a silent success instead of ErrNotFound.
func (e *engineImpl) transition(ctx context.Context, timesheetID string, trigger domainwf.Trigger, missingOK bool, mutate func(*entity.Timesheet) error) (*entity.Timesheet, error) {
	for attempt := 0; attempt < e.maxRetries; attempt++ {
		ts, err := e.timesheets.GetByID(ctx, timesheetID)
		if err != nil {
			return nil, fmt.Errorf("lookup timesheet: %w", err)
		}
		if ts == nil {
			if missingOK {
				return nil, nil
			}
			return nil, fmt.Errorf("%w: id %s", ErrNotFound, timesheetID)
		}

		machine := BuildTimesheetStateMachine(domainwf.State(ts.Status))
		if err := machine.Fire(ctx, trigger); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrValidation, err)
		}
		ts.Status = machine.State().String()

		if err := mutate(ts); err != nil {
			return nil, err
		}
		ts.UpdatedAt = e.now().UTC()

		err = e.timesheets.Update(ctx, ts)
		if errors.Is(err, port.ErrVersionMismatch) {
			e.logger.Warn("Version conflict on transition, retrying",
				zap.String("id", timesheetID),
				zap.String("trigger", trigger.String()))
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("update timesheet: %w", err)
		}

		e.logger.Info("Timesheet transitioned",
			zap.String("id", ts.ID),
			zap.String("trigger", trigger.String()),
			zap.String("status", ts.Status))
		return ts, nil
	}

	return nil, fmt.Errorf("%w: %s on id %s", ErrConflict, trigger, timesheetID)
}

// validatePayload rejects documents the engine cannot safely repair.
func validatePayload(p *SavePayload) error {
	if p == nil {
		return fmt.Errorf("%w: missing payload", ErrValidation)
	}
	if p.UserID == "" {
		return fmt.Errorf("%w: user_id is required", ErrValidation)
	}
	if p.WeekStartDate == "" {
		return fmt.Errorf("%w: week_start_date is required", ErrValidation)
	}
	if _, err := time.Parse("2006-01-02", p.WeekStartDate); err != nil {
		return fmt.Errorf("%w: week_start_date must be an ISO date: %v", ErrValidation, err)
	}
	for i, row := range p.Rows {
		if row.ProjectID == "" {
			return fmt.Errorf("%w: row %d has no project_id", ErrValidation, i)
		}
		for _, entry := range row.Entries {
			if entry.DayIndex < 0 || entry.DayIndex >= entity.DaysPerWeek {
				return fmt.Errorf("%w: row %d has day_index %d out of range", ErrValidation, i, entry.DayIndex)
			}
			if entry.Hours < 0 {
				return fmt.Errorf("%w: row %d day %d has negative hours", ErrValidation, i, entry.DayIndex)
			}
		}
	}
	return nil
}

// normalizeRows fills defaults without reshaping caller data. Entry counts
// other than 7 pass through untouched.
func normalizeRows(rows []entity.TimesheetRow) []entity.TimesheetRow {
	out := make([]entity.TimesheetRow, len(rows))
	for i, row := range rows {
		out[i] = row
		if out[i].Location == "" {
			out[i].Location = entity.DefaultLocation
		}
	}
	return out
}

func roleOf(u *entity.User) string {
	if u == nil {
		return "anonymous"
	}
	return u.Role
}
