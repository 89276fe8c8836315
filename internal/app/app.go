package app

import (
	"github.com/ywyher/survey/config"
	"github.com/ywyher/survey/internal/database"
	"github.com/ywyher/survey/internal/handlers/middleware"
	"github.com/ywyher/survey/internal/logger"
	"github.com/ywyher/survey/internal/repositories"
	"github.com/ywyher/survey/internal/services"

	responseController "github.com/ywyher/survey/internal/controllers/response"
)

type App struct {
	Database   database.DB
	Middleware middleware.Middleware
	Config     config.Config

	// Services
	TransactionService       *services.TransactionService
	CacheInvalidationService *services.CacheInvalidationService

	// Repositories
	ResponseRepo repositories.ResponseRepository

	// Controllers
	ResponseController *responseController.ResponseController
}

func New(config config.Config) (*App, error) {
	log := logger.New("app").Function("New")

	if err := config.Validate(); err != nil {
		return &App{}, log.Err("invalid config", err)
	}

	db, err := database.New(config)
	if err != nil {
		return &App{}, log.Err("failed to create database", err)
	}

	// Initialize services
	transactionService := services.NewTransactionService(db)
	cacheInvalidationService := services.NewCacheInvalidationService(db)

	// Initialize repositories
	responseRepo := repositories.NewResponse(db)

	// Initialize controllers with repositories and services
	middleware := middleware.New(config)
	responseController := responseController.New(
		responseRepo,
		transactionService,
		cacheInvalidationService,
	)

	app := &App{
		Database:                 db,
		Config:                   config,
		Middleware:               middleware,
		TransactionService:       transactionService,
		CacheInvalidationService: cacheInvalidationService,
		ResponseRepo:             responseRepo,
		ResponseController:       responseController,
	}

	if err := app.validate(); err != nil {
		_ = db.Close()
		return &App{}, log.Err("failed to validate app", err)
	}

	return app, nil
}

func (a *App) validate() error {
	log := logger.New("app").Function("validate")
	if a.Database.SQL == nil {
		return log.ErrMsg("database is nil")
	}

	if a.Config == (config.Config{}) {
		return log.ErrMsg("config is nil")
	}

	nilChecks := []any{
		a.TransactionService,
		a.CacheInvalidationService,
		a.ResponseController,
		a.ResponseRepo,
	}

	for _, check := range nilChecks {
		if check == nil {
			return log.ErrMsg("nil check failed")
		}
	}

	return nil
}

func (a *App) Close() error {
	return a.Database.Close()
}
