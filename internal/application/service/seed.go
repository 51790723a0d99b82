package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/akhilsingh-git/timesheetapplication/internal/application/port"
	"github.com/akhilsingh-git/timesheetapplication/internal/domain/entity"
)

// SeedConfig holds the bootstrap admin credentials
type SeedConfig struct {
	AdminEmail    string
	AdminPassword string
}

// Seeder provisions the initial admin account and default project catalog
// on first startup. Existing data is left alone.
type Seeder struct {
	users     port.UserRepository
	projects  port.ProjectRepository
	txManager port.TransactionManager
	cfg       SeedConfig
	logger    Logger
}

// NewSeeder creates a new Seeder
func NewSeeder(users port.UserRepository, projects port.ProjectRepository, txManager port.TransactionManager, cfg SeedConfig, logger Logger) *Seeder {
	return &Seeder{
		users:     users,
		projects:  projects,
		txManager: txManager,
		cfg:       cfg,
		logger:    logger,
	}
}

// Run seeds the admin user and default projects when absent.
func (s *Seeder) Run(ctx context.Context) error {
	if err := s.seedAdmin(ctx); err != nil {
		return err
	}
	return s.seedProjects(ctx)
}

func (s *Seeder) seedAdmin(ctx context.Context) error {
	existing, err := s.users.GetByEmail(ctx, s.cfg.AdminEmail)
	if err != nil {
		return fmt.Errorf("check admin user: %w", err)
	}
	if existing != nil {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(s.cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	admin := &entity.User{
		Email:        s.cfg.AdminEmail,
		FullName:     "System Admin",
		Role:         entity.RoleAdmin,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.users.Create(ctx, admin); err != nil {
		return fmt.Errorf("seed admin user: %w", err)
	}

	s.logger.Info("Seeded admin user", "email", admin.Email)
	return nil
}

func (s *Seeder) seedProjects(ctx context.Context) error {
	count, err := s.projects.Count(ctx)
	if err != nil {
		return fmt.Errorf("count projects: %w", err)
	}
	if count > 0 {
		return nil
	}

	defaults := []*entity.Project{
		{
			Name: "Internal", Code: "INT-001",
			SubProjects: []entity.SubProject{
				{Name: "Administrative", Code: "ADM"},
				{Name: "Training", Code: "TRN"},
				{Name: "Meetings", Code: "MTG"},
			},
		},
		{
			Name: "Client Alpha", Code: "CL-A",
			SubProjects: []entity.SubProject{
				{Name: "Development", Code: "DEV"},
				{Name: "Design", Code: "DES"},
				{Name: "Testing", Code: "TST"},
			},
		},
		{
			Name: "Time Off", Code: "TO",
			SubProjects: []entity.SubProject{
				{Name: "Vacation", Code: "VAC"},
				{Name: "Sick Leave", Code: "SICK"},
				{Name: "Public Holiday", Code: "PUB"},
			},
		},
	}

	err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		now := time.Now().UTC()
		for _, p := range defaults {
			p.CreatedAt = now
			for i := range p.SubProjects {
				if p.SubProjects[i].ID == "" {
					p.SubProjects[i].ID = uuid.NewString()
				}
			}
			if err := s.projects.Create(txCtx, p); err != nil {
				return fmt.Errorf("seed project %s: %w", p.Code, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("Seeded default projects", "count", len(defaults))
	return nil
}
