package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/prestigebuild/siteapi/internal/auth"
	"github.com/prestigebuild/siteapi/internal/config"
	"github.com/prestigebuild/siteapi/internal/db"
	apihttp "github.com/prestigebuild/siteapi/internal/http"
	"github.com/prestigebuild/siteapi/internal/http/handlers"
	"github.com/prestigebuild/siteapi/internal/http/middlewares"
	"github.com/prestigebuild/siteapi/internal/media"
	"github.com/prestigebuild/siteapi/internal/notifications"
	"github.com/prestigebuild/siteapi/internal/observability"
	repo "github.com/prestigebuild/siteapi/internal/repo/mongo"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	cfg := config.Load()

	logger := observability.NewLogger(cfg.Env)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.OTELEndpoint != "" {
		shutdown, err := observability.InitTracer(ctx, "siteapi", cfg.OTELEndpoint)

		if err != nil {
			logger.Error("otel init failed", "error", err)
			os.Exit(1)
		}

		defer func() {
			sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = shutdown(sctx)
		}()
	}

	database, err := db.Connect(ctx, cfg.MongoURI, cfg.MongoDatabase)

	if err != nil {
		logger.Error("database connection failed", "error", err)
		os.Exit(1)
	}

	defer func() {
		dctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = database.Client().Disconnect(dctx)
	}()

	if err := db.EnsureIndexes(ctx, database); err != nil {
		logger.Error("index creation failed", "error", err)
		os.Exit(1)
	}

	prom := observability.NewProm(prometheus.DefaultRegisterer)

	projectsRepo := repo.NewProjectsRepo(database, prom)
	servicesRepo := repo.NewServicesRepo(database, prom)
	testimonialsRepo := repo.NewTestimonialsRepo(database, prom)
	contactsRepo := repo.NewContactsRepo(database, prom)
	usersRepo := repo.NewUsersRepo(database, prom)

	store, err := media.NewStore(cfg.UploadDir, cfg.MaxUploadBytes)

	if err != nil {
		logger.Error("upload store init failed", "error", err)
		os.Exit(1)
	}

	var notifier notifications.Notifier

	if cfg.SMTPHost != "" {
		notifier, err = notifications.NewSMTPNotifier(notifications.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUser,
			Password: cfg.SMTPPassword,
			Operator: cfg.ContactEmail,
		}, prom)

		if err != nil {
			logger.Error("smtp notifier init failed", "error", err)
			os.Exit(1)
		}
	} else {
		logger.Warn("SMTP not configured, contact notifications will only be logged")
		notifier = notifications.NewLogNotifier()
	}

	tokens := auth.NewManager(cfg.JWTSecret, cfg.JWTTTL)

	router := apihttp.NewRouter(apihttp.RouterDeps{
		Config: cfg,
		Logger: logger,
		Prom:   prom,

		Auth: middlewares.NewAuthMiddleware(tokens),

		Health:       handlers.NewHealthHandler(db.NewHealth(database)),
		AuthH:        handlers.NewAuthHandler(usersRepo, tokens, logger),
		Projects:     handlers.NewProjectsHandler(projectsRepo),
		Services:     handlers.NewServicesHandler(servicesRepo),
		Testimonials: handlers.NewTestimonialsHandler(testimonialsRepo),
		Contacts:     handlers.NewContactsHandler(contactsRepo, notifier, logger),
		Stats:        handlers.NewStatsHandler(projectsRepo, testimonialsRepo),
		Uploads:      handlers.NewUploadsHandler(store),

		UploadDir: store.Dir(),
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server starting", "port", cfg.Port, "env", cfg.Env)

		err := server.ListenAndServe()

		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server stopped unexpectedly", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
}
