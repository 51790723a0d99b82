package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/akhilsingh-git/timesheetapplication/internal/application/port"
	"github.com/akhilsingh-git/timesheetapplication/internal/domain/entity"
)

// ProjectRepository implements port.ProjectRepository. Sub-projects are
// stored as a JSON document alongside the project row.
type ProjectRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewProjectRepository creates a new project repository
func NewProjectRepository(db *sql.DB, logger *zap.Logger) port.ProjectRepository {
	return &ProjectRepository{
		db:     db,
		logger: logger,
	}
}

// Create creates a new project
func (r *ProjectRepository) Create(ctx context.Context, project *entity.Project) error {
	if project.ID == "" {
		project.ID = uuid.NewString()
	}

	subProjects := project.SubProjects
	if subProjects == nil {
		subProjects = []entity.SubProject{}
	}
	spJSON, err := json.Marshal(subProjects)
	if err != nil {
		return fmt.Errorf("failed to encode sub-projects: %w", err)
	}

	query := `
		INSERT INTO projects (id, name, code, sub_projects_json, created_at)
		VALUES (?, ?, ?, ?, ?)
	`

	_, err = r.getExecutor(ctx).ExecContext(ctx, query,
		project.ID,
		project.Name,
		project.Code,
		string(spJSON),
		project.CreatedAt,
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("project %s: %w", project.Code, port.ErrDuplicateKey)
	}
	if err != nil {
		r.logger.Error("Failed to create project", zap.Error(err))
		return fmt.Errorf("failed to create project: %w", err)
	}

	return nil
}

// GetByID retrieves a project by ID; nil when absent.
func (r *ProjectRepository) GetByID(ctx context.Context, id string) (*entity.Project, error) {
	query := `SELECT id, name, code, sub_projects_json, created_at FROM projects WHERE id = ?`

	project, err := scanProject(r.getExecutor(ctx).QueryRowContext(ctx, query, id).Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get project", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return project, nil
}

// List returns projects ordered by name.
func (r *ProjectRepository) List(ctx context.Context, limit, offset int) ([]*entity.Project, error) {
	query := `
		SELECT id, name, code, sub_projects_json, created_at
		FROM projects
		ORDER BY name ASC
		LIMIT ? OFFSET ?
	`

	rows, err := r.getExecutor(ctx).QueryContext(ctx, query, limit, offset)
	if err != nil {
		r.logger.Error("Failed to list projects", zap.Error(err))
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	var projects []*entity.Project
	for rows.Next() {
		project, err := scanProject(rows.Scan)
		if err != nil {
			return nil, err
		}
		projects = append(projects, project)
	}

	return projects, rows.Err()
}

// Count returns the number of projects, used by the startup seeder.
func (r *ProjectRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.getExecutor(ctx).QueryRowContext(ctx, `SELECT COUNT(*) FROM projects`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count projects: %w", err)
	}
	return count, nil
}

func scanProject(scan func(dest ...interface{}) error) (*entity.Project, error) {
	var (
		project entity.Project
		spJSON  string
	)

	err := scan(
		&project.ID,
		&project.Name,
		&project.Code,
		&spJSON,
		&project.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(spJSON), &project.SubProjects); err != nil {
		return nil, fmt.Errorf("failed to decode sub-projects: %w", err)
	}

	return &project, nil
}

// getExecutor returns appropriate executor based on context
func (r *ProjectRepository) getExecutor(ctx context.Context) executor {
	return getExecutor(ctx, r.db)
}

// Verify interface compliance
var _ port.ProjectRepository = (*ProjectRepository)(nil)
