package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/akhilsingh-git/timesheetapplication/internal/application/port"
	"github.com/akhilsingh-git/timesheetapplication/internal/application/workflow"
	"github.com/akhilsingh-git/timesheetapplication/internal/domain/access"
	"github.com/akhilsingh-git/timesheetapplication/internal/domain/entity"
)

// CreateProjectRequest carries the fields for a new project
type CreateProjectRequest struct {
	Name        string
	Code        string
	SubProjects []entity.SubProject
}

// ProjectService manages the bookable projects timesheet rows reference
type ProjectService interface {
	Create(ctx context.Context, actor *entity.User, req CreateProjectRequest) (*entity.Project, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Project, error)
}

type projectServiceImpl struct {
	projects port.ProjectRepository
	logger   Logger
	now      func() time.Time
}

// NewProjectService creates a new ProjectService
func NewProjectService(projects port.ProjectRepository, logger Logger) ProjectService {
	return &projectServiceImpl{
		projects: projects,
		logger:   logger,
		now:      time.Now,
	}
}

// Create creates a project. Only Managers and Admins may.
func (s *projectServiceImpl) Create(ctx context.Context, actor *entity.User, req CreateProjectRequest) (*entity.Project, error) {
	if !access.CanManageProjects(actor) {
		return nil, fmt.Errorf("%w: only managers and admins may create projects", workflow.ErrForbidden)
	}
	if req.Name == "" || req.Code == "" {
		return nil, fmt.Errorf("%w: project name and code are required", workflow.ErrValidation)
	}

	subProjects := make([]entity.SubProject, len(req.SubProjects))
	for i, sp := range req.SubProjects {
		subProjects[i] = sp
		if subProjects[i].ID == "" {
			subProjects[i].ID = uuid.NewString()
		}
	}

	project := &entity.Project{
		Name:        req.Name,
		Code:        req.Code,
		SubProjects: subProjects,
		CreatedAt:   s.now().UTC(),
	}

	if err := s.projects.Create(ctx, project); err != nil {
		s.logger.Error("Failed to create project", "error", err, "code", req.Code)
		return nil, err
	}

	s.logger.Info("Project created", "id", project.ID, "code", project.Code)
	return project, nil
}

// List returns the project catalog. Any authenticated user may browse it.
func (s *projectServiceImpl) List(ctx context.Context, limit, offset int) ([]*entity.Project, error) {
	return s.projects.List(ctx, limit, offset)
}
