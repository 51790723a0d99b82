package service

import (
	"context"
	"fmt"

	"github.com/akhilsingh-git/timesheetapplication/internal/application/port"
	"github.com/akhilsingh-git/timesheetapplication/internal/application/workflow"
	"github.com/akhilsingh-git/timesheetapplication/internal/domain/entity"
)

// UserService exposes the user directory to reviewers
type UserService interface {
	List(ctx context.Context, actor *entity.User, limit, offset int) ([]*entity.User, error)
}

type userServiceImpl struct {
	users  port.UserRepository
	logger Logger
}

// NewUserService creates a new UserService
func NewUserService(users port.UserRepository, logger Logger) UserService {
	return &userServiceImpl{
		users:  users,
		logger: logger,
	}
}

// List returns the user directory. Managers and Admins only; an Employee
// has no business enumerating other accounts.
func (s *userServiceImpl) List(ctx context.Context, actor *entity.User, limit, offset int) ([]*entity.User, error) {
	if actor == nil || !actor.IsManagerial() {
		return nil, fmt.Errorf("%w: only managers and admins may list users", workflow.ErrForbidden)
	}
	return s.users.List(ctx, limit, offset)
}
