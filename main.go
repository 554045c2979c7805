package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"listener-api/config"
	"listener-api/repositories"
	"listener-api/router"
	"listener-api/services"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, err := config.NewLogger(cfg)
	if err != nil {
		log.Fatalf("build logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:         cfg.SentryDSN,
			Environment: cfg.AppEnv,
			Release:     config.ServiceName + "@" + config.Version,
		}); err != nil {
			logger.Fatal("init sentry", zap.Error(err))
		}
		defer sentry.Flush(2 * time.Second)
	}

	shutdownTracing, err := config.InitTracing(ctx, cfg)
	if err != nil {
		logger.Fatal("init tracing", zap.Error(err))
	}

	// Initialize database
	db, err := config.InitDB(cfg, logger)
	if err != nil {
		logger.Fatal("init database", zap.Error(err))
	}

	blacklist := repositories.NewMemoryTokenBlacklist()
	redisClient, err := config.NewRedisClient(ctx, cfg)
	switch {
	case err != nil:
		logger.Fatal("connect redis", zap.Error(err))
	case redisClient != nil:
		defer redisClient.Close()
		blacklist = repositories.NewRedisTokenBlacklist(redisClient)
	default:
		logger.Warn("REDIS_URL not set, revoked tokens are kept in memory")
	}

	var files repositories.FileRepository
	if cfg.S3Bucket != "" {
		files, err = repositories.NewS3FileRepository(ctx, repositories.S3Options{
			Region:          cfg.AWSRegion,
			Bucket:          cfg.S3Bucket,
			AccessKeyID:     cfg.AWSAccessKeyID,
			SecretAccessKey: cfg.AWSSecretAccessKey,
			Endpoint:        cfg.S3Endpoint,
		})
		if err != nil {
			logger.Fatal("init object storage", zap.Error(err))
		}
	} else {
		logger.Warn("AWS_S3_BUCKET not set, file routes are disabled")
	}

	if cfg.FirstSuperuserEmail != "" && cfg.FirstSuperuserPassword != "" {
		authService := services.NewAuthService(repositories.NewUserRepository(db), blacklist, services.TokenConfig{
			Secret:     cfg.JWTSecret,
			Expiration: cfg.JWTExpiration,
		}, logger)
		if err := authService.EnsureSuperuser(ctx, cfg.FirstSuperuserEmail, cfg.FirstSuperuserUsername, cfg.FirstSuperuserPassword); err != nil {
			logger.Fatal("seed superuser", zap.Error(err))
		}
	}

	engine := router.New(router.Options{
		Config:    cfg,
		DB:        db,
		Logger:    logger,
		Blacklist: blacklist,
		Files:     files,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server starting", zap.String("addr", srv.Addr), zap.String("version", config.Version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("listen", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", zap.Error(err))
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		logger.Error("tracer shutdown", zap.Error(err))
	}
}
