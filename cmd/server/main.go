package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"appraiser-auth.backend/internal/config"
	domainRepos "appraiser-auth.backend/internal/domain/repositories"
	"appraiser-auth.backend/internal/infrastructure/datasources/postgres"
	"appraiser-auth.backend/internal/infrastructure/faceextractor"
	"appraiser-auth.backend/internal/infrastructure/jobs"
	"appraiser-auth.backend/internal/infrastructure/models"
	"appraiser-auth.backend/internal/infrastructure/repositories"
	"appraiser-auth.backend/internal/interfaces/http/handlers"
	"appraiser-auth.backend/internal/interfaces/http/middleware"
	"appraiser-auth.backend/internal/usecases"
	"appraiser-auth.backend/pkg/jwt"
	"appraiser-auth.backend/pkg/logger"
	"appraiser-auth.backend/pkg/redis"
)

const (
	thresholdStoreRedis = "redis"
	shutdownTimeout     = 10 * time.Second
)

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	initLog    = logger.Init
	initRedis  = redis.Init
	openDB     = postgres.NewConnection
	pingDB     = postgres.Ping
	runServer  = func(srv *http.Server) error { return srv.ListenAndServe() }
	getStdDB   = func(db *gorm.DB) (*sql.DB, error) { return db.DB() }
)

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

func runMainProcess() error {
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := loadCfg()

	initLog(cfg.Server.Env)
	defer logger.Sync()
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	logger.Info(ctx, "Logger initialized", zap.String("env", cfg.Server.Env))

	if err := usecases.ValidateThreshold(cfg.Face.MatchThreshold); err != nil {
		return fmt.Errorf("invalid FACE_MATCH_THRESHOLD: %w", err)
	}

	// Redis backs the shared threshold and idempotency keys; only the former is mandatory
	redisReady := true
	if err := initRedis(cfg.Redis.URL, cfg.Redis.PASSWORD); err != nil {
		if cfg.Face.ThresholdStore == thresholdStoreRedis {
			logger.Error(ctx, "Failed to initialize Redis", zap.Error(err))
			return fmt.Errorf("failed to initialize redis: %w", err)
		}
		redisReady = false
		logger.Warn(ctx, "Redis not available, idempotency keys disabled", zap.Error(err))
	} else {
		logger.Info(ctx, "Redis initialized")
	}

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := openDB(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	sqlDB, err := getStdDB(db)
	if err != nil {
		return fmt.Errorf("failed to get generic database object: %w", err)
	}
	defer sqlDB.Close()

	if err := pingDB(ctx, db); err != nil {
		logger.Warn(ctx, "Database not available, endpoints will return errors", zap.Error(err))
	} else {
		logger.Info(ctx, "Connected to PostgreSQL via GORM")
		if cfg.Database.AutoMigrate {
			if err := db.AutoMigrate(models.All()...); err != nil {
				return fmt.Errorf("failed to migrate database: %w", err)
			}
		}
	}

	var thresholds domainRepos.ThresholdStore
	if cfg.Face.ThresholdStore == thresholdStoreRedis {
		thresholds = repositories.NewRedisThresholdStore(redis.GetClient(), cfg.Face.MatchThreshold)
	} else {
		thresholds = repositories.NewMemoryThresholdStore(cfg.Face.MatchThreshold)
	}

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiry)

	appraiserRepo := repositories.NewAppraiserRepository(db)
	authRepo := repositories.NewAuthorizationRepository(db)
	tenantRepo := repositories.NewTenantRepository(db)
	uow := repositories.NewUnitOfWork(db)

	extractor := faceextractor.NewClient(cfg.Face.ExtractorURL, cfg.Face.ExtractTimeout)
	tenants := usecases.NewTenantResolver(tenantRepo, cfg.Tenant.CodeMaxLen, cfg.Tenant.CacheSize, cfg.Tenant.CacheTTL)

	enrollmentUsecase := usecases.NewEnrollmentUsecase(appraiserRepo, authRepo, tenants, extractor, uow)
	matchingUsecase := usecases.NewMatchingUsecase(appraiserRepo, thresholds, extractor, cfg.Face.GalleryScanTimeout)
	authorizationUsecase := usecases.NewAuthorizationUsecase(appraiserRepo, authRepo, tenantRepo, tenants)

	faceHandler := handlers.NewFaceHandler(enrollmentUsecase, matchingUsecase)
	authorizationHandler := handlers.NewAuthorizationHandler(authorizationUsecase)

	var migrationJob *jobs.LegacyAuthorizationMigrationJob
	if cfg.Jobs.LegacyMigrationInterval > 0 {
		migrationJob = jobs.NewLegacyAuthorizationMigrationJob(authorizationUsecase, cfg.Jobs.LegacyMigrationInterval)
		go migrationJob.Start(ctx)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.MetricsMiddleware())

	applyCORSMiddleware(r, cfg.Server.AllowedOrigins)
	registerHealthRoute(r)
	registerMetricsRoute(r)
	registerAPIV1Routes(r, routeDeps{
		faceHandler:          faceHandler,
		authorizationHandler: authorizationHandler,
		authMiddleware:       middleware.AuthMiddleware(jwtService),
		adminMiddleware:      middleware.RequireAdmin(),
		idempotency:          idempotencyMiddleware(redisReady),
	})

	for _, route := range r.Routes() {
		logger.Debug(ctx, "Route registered", zap.String("method", route.Method), zap.String("path", route.Path))
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		logger.Info(context.Background(), "Shutting down server")
		if migrationJob != nil {
			migrationJob.Stop()
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error(shutdownCtx, "Server shutdown failed", zap.Error(err))
		}
	}()

	logger.Info(ctx, "Appraiser auth backend starting",
		zap.String("port", cfg.Server.Port),
		zap.String("threshold_store", cfg.Face.ThresholdStore),
	)
	if err := runServer(srv); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

func idempotencyMiddleware(redisReady bool) gin.HandlerFunc {
	if !redisReady {
		return func(c *gin.Context) { c.Next() }
	}
	return middleware.IdempotencyMiddleware()
}
