// Package bootstrap wires configuration, storage and the HTTP layer together
package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rafly/siprojek/internal/app/controllers"
	"github.com/rafly/siprojek/internal/app/migrations"
	"github.com/rafly/siprojek/internal/app/repositories"
	"github.com/rafly/siprojek/internal/app/routes"
	"github.com/rafly/siprojek/internal/app/services"
	"github.com/rafly/siprojek/internal/config"
	"github.com/rafly/siprojek/internal/db"
	"github.com/rafly/siprojek/internal/middleware"
	"github.com/rafly/siprojek/internal/pkg/auth"
	"github.com/rafly/siprojek/internal/pkg/logger"
	"github.com/rafly/siprojek/internal/seed"
	"github.com/redis/go-redis/v9"
)

// Dependencies holds every wired application component
type Dependencies struct {
	Repos       *repositories.Repositories
	JWTService  *auth.JWTService
	Redis       *redis.Client
	Controllers *routes.Controllers
	AuthMW      *middleware.AuthMiddleware
}

// LoadConfigAndSetupLogger loads configuration and configures the logger
func LoadConfigAndSetupLogger() (*config.Config, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, err
	}

	logger.Configure(logger.Config{
		Level:  logger.LogLevel(strings.ToLower(cfg.Logging.Level)),
		Pretty: strings.ToLower(cfg.Logging.Format) == "text",
	})
	logger.Info().Str("logLevel", cfg.Logging.Level).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")

	return cfg, nil
}

// SetupDatabase connects to postgres, applies migrations and seeds defaults
func SetupDatabase(cfg *config.Config) (*db.PostgresDB, error) {
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		database.Close()
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	migrator := migrations.NewMigrator(database.Pool)
	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		database.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	logger.Info().Msg("Database migrations applied")

	if err := seed.CreateDefaultData(context.Background(), database); err != nil {
		// Startup proceeds; missing defaults only affect first-time setups.
		logger.Error().Err(err).Msg("Failed to create default data, proceeding anyway")
	}

	return database, nil
}

// BuildDependencies constructs repositories, services and controllers
func BuildDependencies(cfg *config.Config, database *db.PostgresDB) *Dependencies {
	deps := &Dependencies{}

	deps.Repos = repositories.NewRepositories(database.Pool)
	deps.Redis = db.NewRedisClient(cfg)

	deps.JWTService = auth.NewJWTService(auth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: cfg.AccessTokenDuration(),
		TokenIssuer:    cfg.JWT.Issuer,
	})

	statsCache := repositories.NewStatsCache(deps.Redis, cfg.StatsTTL())

	authService := services.NewAuthService(database, deps.Repos.UserRepository, deps.Repos.StudentRepository, deps.JWTService)
	matchingService := services.NewMatchingService(database, deps.Repos.StudentRepository, deps.Repos.KelompokRepository)
	proposalService := services.NewProposalService(database, deps.Repos.StudentRepository, deps.Repos.UserRepository)
	guidanceService := services.NewGuidanceService(deps.Repos.GuidanceRepository, deps.Repos.StudentRepository, deps.Repos.UserRepository)
	examService := services.NewExamService(database, deps.Repos.ExamRepository, deps.Repos.StudentRepository, deps.Repos.GuidanceRepository, deps.Repos.UserRepository)
	periodService := services.NewPeriodService(database, deps.Repos.PeriodRepository, deps.Repos.StudentRepository, deps.Repos.KelompokRepository, deps.Repos.GuidanceRepository, deps.Repos.ExamRepository)
	roleService := services.NewRoleService(deps.Repos.RoleRepository, deps.Repos.UserRepository)
	statsService := services.NewStatsService(deps.Repos.StatsRepository, statsCache)

	deps.AuthMW = middleware.NewAuthMiddleware(deps.JWTService, roleService)

	deps.Controllers = &routes.Controllers{
		Auth:     controllers.NewAuthController(authService),
		Track:    controllers.NewTrackController(matchingService),
		Proposal: controllers.NewProposalController(proposalService, matchingService),
		Guidance: controllers.NewGuidanceController(guidanceService, matchingService),
		Exam:     controllers.NewExamController(examService, matchingService),
		Period:   controllers.NewPeriodController(periodService),
		Role:     controllers.NewRoleController(roleService),
		Stats:    controllers.NewStatsController(statsService),
	}

	return deps
}

// SetupRouter builds the gin engine with middleware and routes mounted
func SetupRouter(cfg *config.Config, deps *Dependencies) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())

	routes.SetupRoutes(router, deps.Controllers, deps.AuthMW)

	return router
}
