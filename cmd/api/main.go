package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	"github.com/BruksfildServices01/clinic-scheduler/internal/config"
	dbpkg "github.com/BruksfildServices01/clinic-scheduler/internal/db"
	"github.com/BruksfildServices01/clinic-scheduler/internal/logger"
	"github.com/BruksfildServices01/clinic-scheduler/internal/middleware"
	"github.com/BruksfildServices01/clinic-scheduler/internal/realtime"
	"github.com/BruksfildServices01/clinic-scheduler/internal/routes"
	"github.com/BruksfildServices01/clinic-scheduler/internal/storage"
	ucChat "github.com/BruksfildServices01/clinic-scheduler/internal/usecase/clinicchat"
)

const shutdownTimeout = 15 * time.Second

func main() {
	// a missing .env is fine; real deployments use the environment
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "clinic-scheduler",
		Short: "Clinic booking and chat API",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	var migrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(migrate)
		},
	}
	cmd.Flags().BoolVar(&migrate, "migrate", false, "Apply migrations before serving")
	return cmd
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update tables and indexes",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			log := logger.New(cfg.Env)

			db, err := dbpkg.Open(cfg, log)
			if err != nil {
				return err
			}
			if err := dbpkg.Migrate(db); err != nil {
				return err
			}

			log.Info().Msg("migrations applied")
			return nil
		},
	}
}

func runServer(migrate bool) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log := logger.New(cfg.Env)

	db, err := dbpkg.Open(cfg, log)
	if err != nil {
		return err
	}
	if migrate {
		if err := dbpkg.Migrate(db); err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ======================================================
	// SINGLETONS
	// ======================================================
	dispatcher := audit.NewDispatcher(audit.New(db), log)
	rooms := realtime.NewRooms(log.With().Str("component", "realtime").Logger())

	var broadcaster ucChat.Broadcaster = rooms
	if cfg.RedisURL != "" {
		relay, err := startRelay(ctx, cfg.RedisURL, rooms, log)
		if err != nil {
			return err
		}
		defer relay.Close()
		broadcaster = relay
	}

	var photos storage.ObjectStore
	if cfg.PhotosEnabled() {
		s3, err := storage.NewS3(storage.S3Config{
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
		})
		if err != nil {
			return err
		}
		photos = s3
	}

	// ======================================================
	// HTTP
	// ======================================================
	if !cfg.IsDev() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(
		middleware.RequestLogger(log),
		middleware.Recovery(log),
		middleware.CORSMiddleware(cfg.CORSOrigins),
	)

	if err := routes.RegisterRoutes(r, routes.Deps{
		DB:          db,
		Config:      cfg,
		Audit:       dispatcher,
		Rooms:       rooms,
		Broadcaster: broadcaster,
		Photos:      photos,
	}); err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.Addr()).Str("env", cfg.Env).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}
	if err := dispatcher.Close(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("audit queue not fully drained")
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}

	log.Info().Msg("server stopped")
	return nil
}

func startRelay(ctx context.Context, url string, rooms *realtime.Rooms, log zerolog.Logger) (*realtime.RedisRelay, error) {
	relay, err := realtime.NewRedisRelay(url, rooms, log.With().Str("component", "redis-relay").Logger())
	if err != nil {
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := relay.Ping(pingCtx); err != nil {
		_ = relay.Close()
		return nil, fmt.Errorf("redis: %w", err)
	}

	go func() {
		if err := relay.Run(ctx); err != nil {
			log.Error().Err(err).Msg("redis relay stopped")
		}
	}()
	return relay, nil
}
