package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/akhilsingh-git/timesheetapplication/internal/application/service"
	appworkflow "github.com/akhilsingh-git/timesheetapplication/internal/application/workflow"
	"github.com/akhilsingh-git/timesheetapplication/internal/config"
	"github.com/akhilsingh-git/timesheetapplication/internal/infrastructure/persistence/repository"
	"github.com/akhilsingh-git/timesheetapplication/internal/infrastructure/persistence/sqlite"
	httpserver "github.com/akhilsingh-git/timesheetapplication/internal/interfaces/http"
	"github.com/akhilsingh-git/timesheetapplication/pkg/database"
	"github.com/akhilsingh-git/timesheetapplication/pkg/utils"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := utils.NewLogger(utils.LoggerConfig{
		Level:      cfg.Logger.Level,
		OutputPath: cfg.Logger.OutputPath,
		Format:     cfg.Logger.Format,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting timesheet service",
		zap.String("version", "1.0.0"),
		zap.Int("port", cfg.Server.Port))

	db, err := database.New(database.Config{
		Path:            cfg.Database.Path,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}, logger)
	if err != nil {
		logger.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer db.Close()

	migrator := database.NewMigrator(db, logger)
	if err := migrator.RunMigrations(cfg.Database.MigrationsDir); err != nil {
		logger.Fatal("Failed to run database migrations", zap.Error(err))
	}

	// Repositories and transaction manager
	txManager := sqlite.NewDB(db.DB, logger)
	timesheetRepo := repository.NewTimesheetRepository(db.DB, logger)
	userRepo := repository.NewUserRepository(db.DB, logger)
	projectRepo := repository.NewProjectRepository(db.DB, logger)

	kvLogger := utils.NewKVLogger(logger)

	// Application services
	authService := service.NewAuthService(userRepo, service.AuthConfig{
		SecretKey:   cfg.Auth.SecretKey,
		TokenExpiry: cfg.Auth.TokenExpiry,
	}, kvLogger)
	userService := service.NewUserService(userRepo, kvLogger)
	projectService := service.NewProjectService(projectRepo, kvLogger)

	// Workflow engine
	engine := appworkflow.NewEngine(timesheetRepo, logger)

	// Seed bootstrap data
	seeder := service.NewSeeder(userRepo, projectRepo, txManager, service.SeedConfig{
		AdminEmail:    cfg.Seed.AdminEmail,
		AdminPassword: cfg.Seed.AdminPassword,
	}, kvLogger)
	if err := seeder.Run(context.Background()); err != nil {
		logger.Fatal("Failed to seed database", zap.Error(err))
	}

	// HTTP server
	server := httpserver.NewServer(httpserver.ServerConfig{
		Host:         cfg.Server.Host,
		Port:         cfg.Server.Port,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		CORSOrigins:  cfg.Server.CORSOrigins,
	}, engine, authService, userService, projectService, kvLogger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.Start(ctx); err != nil {
		logger.Fatal("Server exited with error", zap.Error(err))
	}

	logger.Info("Server shut down cleanly")
}
