package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"github.com/YevheniiaMushyk/goit-node-rest-api/internal/app"
	"github.com/YevheniiaMushyk/goit-node-rest-api/internal/contacts"
	"github.com/YevheniiaMushyk/goit-node-rest-api/internal/platform/db"
	"github.com/YevheniiaMushyk/goit-node-rest-api/internal/token"
	"github.com/YevheniiaMushyk/goit-node-rest-api/internal/users"
	"github.com/YevheniiaMushyk/goit-node-rest-api/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	if err := db.Migrate(ctx, cfg.PGDSN); err != nil {
		logger.Error("run migrations", slog.Any("error", err))
		os.Exit(1)
	}

	dbpool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer dbpool.Close()

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Warn("redis ping", slog.Any("error", err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	queueClient := jobs.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer func() {
		if err := queueClient.Close(); err != nil {
			logger.Warn("queue client close", slog.Any("error", err))
		}
	}()
	mailer := jobs.NewQueueMailer(queueClient)

	issuer := token.NewIssuer([]byte(cfg.JWTSecret), cfg.JWTTTL)
	hasher := users.NewBcryptHasher(cfg.BcryptCost)

	usersRepo := users.NewRepository(dbpool)
	usersService := users.NewService(logger, usersRepo, hasher, issuer, mailer)
	sessionGuard := users.NewGuard(logger, usersRepo, issuer)
	usersHandler := users.NewHandler(logger, usersService, sessionGuard)

	contactsRepo := contacts.NewRepository(dbpool)
	contactsService := contacts.NewService(contactsRepo)
	contactsHandler := contacts.NewHandler(logger, contactsService)

	inspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer func() {
		if err := inspector.Close(); err != nil {
			logger.Warn("inspector close", slog.Any("error", err))
		}
	}()
	jobHandler := jobs.NewHandler(inspector, logger)

	router := app.NewRouter(app.RouterParams{
		Logger:          logger,
		Config:          cfg,
		UsersHandler:    usersHandler,
		ContactsHandler: contactsHandler,
		SessionGuard:    sessionGuard,
		JobHandler:      jobHandler,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
