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

	"github.com/MillyinVR/tovis-app-sub004/internal/app"
	"github.com/MillyinVR/tovis-app-sub004/internal/clock"
	"github.com/MillyinVR/tovis-app-sub004/internal/config"
	"github.com/MillyinVR/tovis-app-sub004/internal/storage/postgres"
	transporthttp "github.com/MillyinVR/tovis-app-sub004/internal/transport/http"
	"github.com/MillyinVR/tovis-app-sub004/migrations"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

func main() {
	logger := log.Default()

	root := &cobra.Command{
		Use:   "tovis-api",
		Short: "Appointment reservation API",
	}
	root.AddCommand(serveCmd(logger), migrateCmd(logger))

	if err := root.Execute(); err != nil {
		logger.Fatalf("%v", err)
	}
}

func serveCmd(logger *log.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.Load(logger)

			pool, err := connect(cmd.Context(), cfg.DatabaseURL)
			if err != nil {
				return err
			}
			defer pool.Close()

			startupCtx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
			defer cancel()
			if err := migrations.Apply(startupCtx, pool); err != nil {
				return err
			}

			repo := postgres.NewReservationRepository(pool)
			var opts []app.ReservationServiceOption
			if cfg.HoldTTL > 0 {
				opts = append(opts, app.WithHoldTTL(cfg.HoldTTL))
			}
			svc := app.NewReservationService(repo, clock.NewSystem(), opts...)

			handler := transporthttp.NewHandler(svc, []byte(cfg.JWTSecret), cfg.CORSOrigins, logger)
			server := &http.Server{
				Addr:    ":" + cfg.Port,
				Handler: handler,
			}

			logger.Printf("api listening on :%s", cfg.Port)

			srvErr := make(chan error, 1)
			go func() {
				srvErr <- server.ListenAndServe()
			}()

			stopCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			select {
			case err := <-srvErr:
				if err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Printf("server error: %v", err)
				}
			case <-stopCtx.Done():
				logger.Printf("shutdown signal received, stopping server")
			}

			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer shutdownCancel()
			if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Printf("server shutdown error: %v", err)
			}
			logger.Printf("server stopped")
			return nil
		},
	}
}

func migrateCmd(logger *log.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations and exit",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.Load(logger)

			pool, err := connect(cmd.Context(), cfg.DatabaseURL)
			if err != nil {
				return err
			}
			defer pool.Close()

			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			if err := migrations.Apply(ctx, pool); err != nil {
				return err
			}
			logger.Printf("migrations applied")
			return nil
		},
	}
}

func connect(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	connectCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	pool, err := pgxpool.New(connectCtx, dsn)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(connectCtx); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}
