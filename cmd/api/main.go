package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"assetvault/internal/adapters/collaborator"
	"assetvault/internal/adapters/eventbroker/nats"
	"assetvault/internal/adapters/handlers/http/chi"
	upload2 "assetvault/internal/adapters/handlers/http/chi/v1/upload"
	"assetvault/internal/adapters/repository/postgres"
	"assetvault/internal/adapters/storage/minio"
	"assetvault/internal/config"
	"assetvault/internal/core/port"
	"assetvault/internal/core/service/reaper"
	"assetvault/internal/core/service/upload"

	_ "github.com/lib/pq"
)

func main() {

	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer stop()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := initDB(cfg.Database)
	if err != nil {
		logger.Error("failed to init database", "error", err)
		os.Exit(1)
	}
	defer func(db *sql.DB) {
		err := db.Close()
		if err != nil {
			logger.Error("failed to close database", "error", err)
			os.Exit(1)
		}
	}(db)
	logger.Info("db connection established")

	//storage
	minioAdapter, err := minio.NewAdapter(cfg.Minio, logger)
	if err != nil {
		logger.Error("failed to init minio", "error", err)
		os.Exit(1)
	}

	//event broker
	publisher, err := nats.NewNATSPublisher(ctx, cfg.NATS, logger)
	if err != nil {
		logger.Error("failed to init nats publisher", "error", err)
		os.Exit(1)
	}
	defer publisher.Close()

	//repositories
	unitOfWork := postgres.NewUnitOfWork(db)

	//services
	collaborators := upload.Collaborators{
		Plans:      collaborator.NewStaticPlanGate(cfg.Upload.PlanLimitBytes),
		Buckets:    minioAdapter,
		Categories: collaborator.NewOpenCategoryGate(),
		Metadata:   collaborator.NewAcceptAllMetadataPersister(logger),
		Notifier:   collaborator.NewLogNotifier(logger),
		Tickets:    collaborator.NewLogTicketEscalator(logger),
		Events:     publisher,
	}
	uploadService := upload.NewUploadService(unitOfWork, minioAdapter, collaborators, cfg.Upload, logger)
	reaperService := reaper.NewReaperService(unitOfWork, minioAdapter, cfg.Upload, logger)

	//http
	uploadHandler := upload2.NewUploadHandlerV1(uploadService, logger)

	router := chi.NewRouter(logger, uploadHandler, cfg.Env.Env)
	server := &http.Server{
		Addr:    fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler: router,
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		logger.Info("starting server", "host", cfg.Server.Host, "port", cfg.Server.Port)
		servErr := server.ListenAndServe()
		if servErr != nil && !errors.Is(servErr, http.ErrServerClosed) {
			logger.Error("failed to start server", "error", servErr)
			stop()
		}
	}()

	// init reaper task
	wg.Add(1)
	go func() {
		defer wg.Done()
		initReaperTask(ctx, reaperService, cfg.Upload.ReapEvery, logger)
	}()

	//wait for context cancel
	<-ctx.Done()
	logger.Info("gracefully shutting down app")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("failed to shutdown server", "error", err)
	} else {
		logger.Info("server gracefully shutdown complete")
	}

	wg.Wait()
	logger.Info("app shutdown complete")

}

func initDB(cfg config.DatabaseConfig) (*sql.DB, error) {

	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host,
		cfg.Port,
		cfg.User,
		cfg.Password,
		cfg.Name,
		cfg.SSLMode,
	)
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenCons)
	db.SetMaxIdleConns(cfg.MaxIdleCons)
	db.SetConnMaxLifetime(cfg.ConMaxLifeTime)

	return db, nil
}

func initReaperTask(ctx context.Context, service port.ReaperService, every time.Duration, logger *slog.Logger) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	logger.Info("reaper task initialized", "interval", every)

	for {
		select {
		case <-ticker.C:
			logger.Info("reaper sweep starting")
			err := service.ExpireStale(ctx, time.Now())
			if err != nil {
				logger.Error("failed to expire stale sessions", "error", err)
			} else {
				logger.Info("reaper sweep completed successfully")
			}
		case <-ctx.Done():
			logger.Info("reaper task stopped")
			return
		}
	}

}
