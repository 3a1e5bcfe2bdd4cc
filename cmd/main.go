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

	"github.com/albertofp/club-system/config"
	"github.com/albertofp/club-system/db"
	"github.com/albertofp/club-system/fixtures"
	"github.com/albertofp/club-system/handlers"
	"github.com/albertofp/club-system/live"
	"github.com/albertofp/club-system/repositories"
	"github.com/albertofp/club-system/routes"
	"github.com/albertofp/club-system/services"
	"github.com/albertofp/club-system/storage"
)

const schedulerInterval = 30 * time.Second

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort))

	dbConn, err := db.Connect(cfg.DatabaseURL, 5*time.Second)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			logger.Error("failed to close database connection", slog.Any("error", err))
		}
	}()
	logger.Info("database connection established")

	if err := db.RunMigrations(dbConn); err != nil {
		logger.Error("failed to run migrations", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("database migrations applied")

	// Object storage is optional; without it crest/photo URLs are simply
	// omitted from responses.
	var uploader storage.FileUploader
	if cfg.R2AccountID != "" {
		uploader, err = storage.NewCloudflareR2Uploader(storage.CloudflareR2Config{
			AccountID:       cfg.R2AccountID,
			AccessKeyID:     cfg.R2AccessKeyID,
			SecretAccessKey: cfg.R2SecretAccessKey,
			BucketName:      cfg.R2Bucket,
			PublicBaseURL:   cfg.R2PublicBaseURL,
		})
		if err != nil {
			logger.Error("failed to initialize Cloudflare R2 uploader", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("Cloudflare R2 uploader initialized")
	}

	var mailer services.Mailer
	if cfg.SMTPHost != "" {
		mailer = services.NewSMTPMailer(services.SMTPConfig{
			Host: cfg.SMTPHost,
			Port: cfg.SMTPPort,
			User: cfg.SMTPUsername,
			Pass: cfg.SMTPPassword,
			From: cfg.SMTPFrom,
		})
		logger.Info("SMTP mailer initialized", slog.String("host", cfg.SMTPHost))
	} else {
		mailer = services.NewNoopMailer()
	}

	wsHub := live.NewHub()
	go wsHub.Run()
	logger.Info("WebSocket hub started")

	tournamentRepo := repositories.NewPostgresTournamentRepository(dbConn)
	teamRepo := repositories.NewPostgresTeamRepository(dbConn)
	matchRepo := repositories.NewPostgresMatchRepository(dbConn)
	guardianRepo := repositories.NewPostgresGuardianRepository(dbConn)
	childRepo := repositories.NewPostgresChildRepository(dbConn)
	paymentRepo := repositories.NewPostgresPaymentRepository(dbConn)
	attendanceRepo := repositories.NewPostgresAttendanceRepository(dbConn)
	productRepo := repositories.NewPostgresProductRepository(dbConn)
	orderRepo := repositories.NewPostgresOrderRepository(dbConn)
	logger.Info("repositories initialized")

	tournamentService := services.NewTournamentService(tournamentRepo, teamRepo, matchRepo, logger)
	teamService := services.NewTeamService(teamRepo, tournamentRepo, uploader)
	fixtureService := services.NewFixtureService(
		tournamentRepo,
		teamRepo,
		matchRepo,
		fixtures.NewRoundRobinGenerator(),
		wsHub,
		logger,
	)
	standingsService := services.NewStandingsService(tournamentRepo, teamRepo, matchRepo)
	matchService := services.NewMatchService(matchRepo, wsHub, logger)
	guardianService := services.NewGuardianService(guardianRepo, childRepo)
	childService := services.NewChildService(childRepo, guardianRepo, teamRepo, uploader)
	paymentService := services.NewPaymentService(paymentRepo, childRepo, guardianRepo, mailer, logger)
	attendanceService := services.NewAttendanceService(attendanceRepo, childRepo)
	storeService := services.NewStoreService(dbConn, productRepo, orderRepo, guardianRepo, uploader, logger)
	dashboardService := services.NewDashboardService(childRepo, teamRepo, tournamentRepo, matchRepo, paymentRepo)
	logger.Info("services initialized")

	// Background scheduler: flips upcoming tournaments to active once their
	// start date passes.
	go func() {
		ticker := time.NewTicker(schedulerInterval)
		defer ticker.Stop()
		logger.Info("tournament activation scheduler started", slog.Duration("interval", schedulerInterval))

		if err := tournamentService.ActivateDueTournaments(context.Background()); err != nil {
			logger.Error("scheduler: initial run failed", slog.Any("error", err))
		}

		for range ticker.C {
			if err := tournamentService.ActivateDueTournaments(context.Background()); err != nil {
				logger.Error("scheduler: periodic run failed", slog.Any("error", err))
			}
		}
	}()

	router := routes.SetupRoutes(routes.Handlers{
		Tournament: handlers.NewTournamentHandler(tournamentService, fixtureService, standingsService),
		Team:       handlers.NewTeamHandler(teamService),
		Match:      handlers.NewMatchHandler(matchService),
		Guardian:   handlers.NewGuardianHandler(guardianService),
		Child:      handlers.NewChildHandler(childService),
		Payment:    handlers.NewPaymentHandler(paymentService),
		Attendance: handlers.NewAttendanceHandler(attendanceService),
		Store:      handlers.NewStoreHandler(storeService),
		Dashboard:  handlers.NewDashboardHandler(dashboardService),
		WebSocket:  handlers.NewWebSocketHandler(wsHub, logger),
	}, cfg.JWTSecretKey, cfg.AllowedOrigins)
	logger.Info("routes configured")

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("server stopped gracefully")
	case sig := <-quit:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancelShutdown()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			os.Exit(1)
		}
		logger.Info("server shutdown complete")
	}
	logger.Info("application exited")
}
