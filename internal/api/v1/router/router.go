package router

import (
	"context"
	"database/sql"
	"net/http"
	"strings"
	"time"

	"app/internal/api/v1/handler"
	"app/internal/config"
	"app/internal/middleware"
	"app/internal/repository"
	"app/internal/service"

	"github.com/go-playground/validator/v10"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
)

func New(cfg *config.Config, logger zerolog.Logger) (http.Handler, *sql.DB, error) {
	logger.Info().Str("environment", cfg.Environment).Msg("Router initializing")

	// 1. Open DB connection (connection pooling)
	dsn := cfg.DBConnectionString
	// In a development environment, we want to ensure that SSL is disabled for
	// local testing. In production, the connection string should be provided
	// with the correct SSL settings.
	if cfg.Environment == "development" && !strings.Contains(dsn, "sslmode") {
		separator := " "
		if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
			if strings.Contains(dsn, "?") {
				separator = "&"
			} else {
				separator = "?"
			}
		}
		dsn += separator + "sslmode=disable"
	}
	// For non-development environments that use a transaction pooler like pgbouncer,
	// we must use the simple query protocol to avoid issues with server-side prepared statements.
	if cfg.Environment != "development" {
		if !strings.Contains(dsn, "prefer_simple_protocol") {
			separator := "&"
			if !strings.Contains(dsn, "?") {
				separator = "?"
			}
			dsn += separator + "prefer_simple_protocol=true"
		}
	}

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, nil, err
	}
	if err := db.Ping(); err != nil {
		return nil, nil, err
	}
	logger.Info().Msg("Database connection successful")

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxIdleTime(5 * time.Minute)

	// 2. Resolve secrets that are absent from the environment. Development
	// runs straight off .env; deployed environments pull from Secret Manager.
	if err := resolveSecrets(cfg, logger); err != nil {
		return nil, nil, err
	}

	// 3. Initialize validator
	validate := validator.New(validator.WithRequiredStructEnabled())

	// 4. Initialize repositories & services & handlers
	courseRepo := repository.NewCourseRepo(db, logger)
	userRepo := repository.NewUserRepo(db)

	generator := service.NewGroqGenerator(cfg.GroqBaseURL, cfg.GroqAPIKey, cfg.GroqModel)
	courseSvc := service.NewCourseService(courseRepo, generator, logger)
	userSvc := service.NewUserService(userRepo)

	courseHandler := handler.NewCourseHandler(courseSvc, validate, logger)
	userHandler := handler.NewUserHandler(userSvc, logger)

	// 5. Initialize middleware
	authMiddleware := middleware.AuthMiddleware(cfg.JWTSecret, logger)

	// 6. Create ServeMux router
	mux := http.NewServeMux()
	courseHandler.RegisterRoutes(mux, authMiddleware)
	userHandler.RegisterRoutes(mux, authMiddleware)

	// 7. Apply CORS middleware
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	return middleware.LoggerMiddleware(c.Handler(mux)), db, nil
}

// resolveSecrets fills JWTSecret and GroqAPIKey from Secret Manager when the
// environment did not provide them. In development missing secrets are a
// configuration error rather than a lookup.
func resolveSecrets(cfg *config.Config, logger zerolog.Logger) error {
	if cfg.JWTSecret != "" && cfg.GroqAPIKey != "" {
		return nil
	}
	if cfg.Environment == "development" || cfg.GCPProjectID == "" {
		logger.Warn().Msg("JWT_SECRET or GROQ_API_KEY not set and no Secret Manager project configured")
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	resolver, err := service.NewSecretResolver(ctx, cfg.GCPProjectID)
	if err != nil {
		return err
	}
	defer resolver.Close()

	if cfg.JWTSecret == "" {
		secret, err := resolver.Resolve(ctx, "jwt-secret")
		if err != nil {
			return err
		}
		cfg.JWTSecret = secret
	}
	if cfg.GroqAPIKey == "" {
		key, err := resolver.Resolve(ctx, "groq-api-key")
		if err != nil {
			return err
		}
		cfg.GroqAPIKey = key
	}
	logger.Info().Msg("Secrets resolved from Secret Manager")
	return nil
}
