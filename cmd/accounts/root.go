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

	"github.com/deppfellow/account-service/internal/config"
	"github.com/deppfellow/account-service/internal/database"
	"github.com/deppfellow/account-service/internal/handler"
	"github.com/deppfellow/account-service/internal/logger"
	"github.com/deppfellow/account-service/internal/middleware"
	"github.com/deppfellow/account-service/internal/repository"
	"github.com/deppfellow/account-service/internal/router"
	"github.com/deppfellow/account-service/internal/server"
	"github.com/deppfellow/account-service/internal/service"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// version is set via ldflags at build time.
var version = "dev"

// shutdownTimeout bounds how long in-flight requests may run after a stop signal.
const shutdownTimeout = 30 * time.Second

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "accounts",
		Short:         "Account REST API service",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}

	root.AddCommand(newServeCmd(), newMigrateCmd())
	return root
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server (default)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
}

func newMigrateCmd() *cobra.Command {
	var target int32

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply the embedded database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, loggerService := bootstrap()
			defer loggerService.Shutdown()

			if err := database.Migrate(cmd.Context(), &log, cfg, target); err != nil {
				log.Error().Err(err).Msg("migration failed")
				return err
			}
			return nil
		},
	}

	cmd.Flags().Int32Var(&target, "version", -1, "target schema version, negative for latest")
	return cmd
}

// bootstrap loads the configuration and builds the loggers. A bad
// configuration is fatal.
func bootstrap() (*config.Config, zerolog.Logger, *logger.LoggerService) {
	cfg, err := config.LoadConfig()
	if err != nil {
		bootLogger := zerolog.New(os.Stderr).With().Timestamp().Logger()
		bootLogger.Fatal().Err(err).Msg("failed to load config")
	}

	loggerService := logger.NewLoggerService(cfg.Observability)
	log := logger.NewLoggerWithService(cfg.Observability, loggerService)

	return cfg, log, loggerService
}

// migrateFunc has the signature of database.Migrate.
type migrateFunc func(ctx context.Context, logger *zerolog.Logger, cfg *config.Config, targetVersion int32) error

// autoMigrate brings the schema to the latest version before the server
// opens its pool, unless database.auto_migrate is off.
func autoMigrate(ctx context.Context, log *zerolog.Logger, cfg *config.Config, migrate migrateFunc) error {
	if !cfg.Database.AutoMigrate {
		log.Info().Msg("auto migration disabled, expecting an up to date schema")
		return nil
	}

	if err := migrate(ctx, log, cfg, -1); err != nil {
		return fmt.Errorf("auto migration failed: %w", err)
	}
	return nil
}

func runServe(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, log, loggerService := bootstrap()
	defer loggerService.Shutdown()

	if err := autoMigrate(ctx, &log, cfg, database.Migrate); err != nil {
		log.Error().Err(err).Msg("failed to prepare database schema")
		return err
	}

	srv, err := server.New(cfg, &log, loggerService)
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize server")
		return err
	}

	repos := repository.NewRepositories(srv)
	services := service.NewServices(srv, repos)
	handlers := handler.NewHandlers(srv, services)
	middlewares := middleware.NewMiddlewares(srv)

	r := router.NewRouter(srv, handlers, middlewares)
	srv.SetupHTTPServer(r)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			log.Error().Err(err).Msg("server stopped unexpectedly")
			_ = srv.Shutdown(context.Background())
			return err
		}
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		return err
	}

	log.Info().Msg("server exited properly")
	return nil
}
