// internal/app.go
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jmoiron/sqlx"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	router "exercise-tracker/internal/api"
	"exercise-tracker/internal/api/handler"
	"exercise-tracker/internal/config"
	"exercise-tracker/internal/repository"
	mongorepo "exercise-tracker/internal/repository/mongo"
	"exercise-tracker/internal/repository/postgres"
	"exercise-tracker/internal/service"
	"exercise-tracker/internal/util"
	"exercise-tracker/pkg/db"
)

// Application holds all the initialized components of the application.
type Application struct {
	Config  *config.AppConfig
	Logger  *slog.Logger
	Backend db.Backend

	// Exactly one of these is set, depending on Backend.
	DB    *sqlx.DB
	Mongo *mongo.Client

	// Repositories
	UserRepository     repository.UserRepository
	ExerciseRepository repository.ExerciseRepository

	// Services
	UserService     service.UserService
	ExerciseService service.ExerciseService

	// HTTP API
	HTTPHandler http.Handler
}

// NewApplication creates a new Application instance.
func NewApplication() *Application {
	return &Application{Logger: slog.Default()}
}

// Initialize initializes all application components.
func (app *Application) Initialize(ctx context.Context) error {
	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	app.Config = cfg

	// 2. Initialize Logger
	util.InitLogger(cfg.LogLevel)
	app.Logger = util.GetLogger()
	app.Logger.Info("Application configuration loaded successfully.")

	// 3. Connect to the store selected by DB_URL and prepare its schema
	backend, err := db.DetectBackend(cfg.DB.URL)
	if err != nil {
		return fmt.Errorf("failed to select store backend: %w", err)
	}
	app.Backend = backend

	switch backend {
	case db.BackendPostgres:
		if err := app.initPostgres(ctx); err != nil {
			return err
		}
	default:
		if err := app.initMongo(ctx); err != nil {
			return err
		}
	}
	app.Logger.Info("Store connection established.", "backend", string(backend))

	// 4. Initialize Services
	app.UserService = service.NewUserService(app.UserRepository)
	app.ExerciseService = service.NewExerciseService(app.UserRepository, app.ExerciseRepository, nil)
	app.Logger.Info("Services initialized.")

	// 5. Initialize HTTP Handlers and Router
	userHandler := handler.NewUserHandler(app.UserService, app.Logger)
	exerciseHandler := handler.NewExerciseHandler(app.ExerciseService, app.Logger)
	app.HTTPHandler = router.NewRouter(router.RouterConfig{
		RequestTimeout:     cfg.RequestTimeout,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
	}, userHandler, exerciseHandler, app.Ping, app.Logger)
	app.Logger.Info("HTTP router and handlers initialized.")

	return nil
}

func (app *Application) initPostgres(ctx context.Context) error {
	database, err := db.NewPostgresDB(ctx, app.Config.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = database

	if err := db.EnsureSchema(ctx, app.DB); err != nil {
		return fmt.Errorf("failed to prepare database schema: %w", err)
	}

	app.UserRepository = postgres.NewUserRepository(app.DB)
	app.ExerciseRepository = postgres.NewExerciseRepository(app.DB)
	return nil
}

func (app *Application) initMongo(ctx context.Context) error {
	client, err := db.NewMongoClient(ctx, app.Config.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	app.Mongo = client

	database := client.Database(app.Config.DB.Name)
	if err := db.EnsureMongoIndexes(ctx, database); err != nil {
		return fmt.Errorf("failed to prepare database indexes: %w", err)
	}

	app.UserRepository = mongorepo.NewUserRepository(database)
	app.ExerciseRepository = mongorepo.NewExerciseRepository(database)
	return nil
}

// Ping checks that the active store answers.
func (app *Application) Ping(ctx context.Context) error {
	switch {
	case app.DB != nil:
		return app.DB.PingContext(ctx)
	case app.Mongo != nil:
		return app.Mongo.Ping(ctx, readpref.Primary())
	default:
		return fmt.Errorf("no store connection")
	}
}

// Shutdown gracefully shuts down application resources.
func (app *Application) Shutdown(ctx context.Context) error {
	app.Logger.Info("Shutting down application...")
	if app.DB != nil {
		if err := app.DB.Close(); err != nil {
			app.Logger.Error("Failed to close database connection", "error", err)
			return fmt.Errorf("failed to close database connection: %w", err)
		}
		app.Logger.Info("Database connection closed.")
	}
	if app.Mongo != nil {
		if err := app.Mongo.Disconnect(ctx); err != nil {
			app.Logger.Error("Failed to disconnect from MongoDB", "error", err)
			return fmt.Errorf("failed to disconnect from MongoDB: %w", err)
		}
		app.Logger.Info("MongoDB client disconnected.")
	}
	app.Logger.Info("Application shut down gracefully.")
	return nil
}
