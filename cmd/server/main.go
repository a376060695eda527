package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"lineup-manager/internal/config"
	"lineup-manager/internal/constants"
	fxmodules "lineup-manager/internal/fx"
	"lineup-manager/internal/repository"
	"lineup-manager/internal/scheduler"
	"lineup-manager/internal/server"
	"lineup-manager/internal/service"

	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

func main() {
	fx.New(
		fxmodules.Module,
		fx.Invoke(runServer),
	).Run()
}

func runServer(
	lc fx.Lifecycle,
	lineupServer *server.LineupServer,
	lineups *service.LineupService,
	backups *scheduler.Scheduler,
	store repository.DocumentStore,
	cfg *config.Config,
	logger zerolog.Logger,
) {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.ServerPort),
		Handler:           lineupServer.Handler(logger),
		ReadHeaderTimeout: constants.RequestTimeout,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := lineups.Load(ctx); err != nil {
				return fmt.Errorf("failed to load lineup: %w", err)
			}
			if err := backups.Start(); err != nil {
				return err
			}
			go func() {
				logger.Info().Str("addr", srv.Addr).Msg("server starting")
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Fatal().Err(err).Msg("server failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info().Msg("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
			defer cancel()

			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Error().Err(err).Msg("server shutdown failed")
				return err
			}
			if err := backups.Stop(); err != nil {
				logger.Warn().Err(err).Msg("error stopping backup scheduler")
			}
			if err := store.Close(); err != nil {
				logger.Warn().Err(err).Msg("error closing document store")
			}
			logger.Info().Msg("server stopped gracefully")
			return nil
		},
	})
}
