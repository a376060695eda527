package fx

import (
	"lineup-manager/internal/config"
	"lineup-manager/internal/database"
	"lineup-manager/internal/logger"
	"lineup-manager/internal/repository"
	"lineup-manager/internal/scheduler"
	"lineup-manager/internal/server"
	"lineup-manager/internal/service"

	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

// ProvideStore opens the document store selected by STORAGE_DRIVER.
func ProvideStore(cfg *config.Config, logger zerolog.Logger) (repository.DocumentStore, error) {
	if cfg.StorageDriver == config.DriverBolt {
		logger.Info().Str("path", cfg.DBPath).Msg("opening bolt store")
		store, err := repository.OpenBoltStore(cfg.DBPath)
		if err != nil {
			return nil, err
		}
		return store, nil
	}

	sqlDB, err := database.New(cfg, logger)
	if err != nil {
		return nil, err
	}
	return repository.NewSQLiteStore(sqlDB, logger), nil
}

var Module = fx.Options(
	logger.Module,
	config.Module,
	fx.Provide(ProvideStore),
	// repos
	fx.Provide(repository.NewPlayerRepository),
	fx.Provide(repository.NewLineupRepository),
	// svc
	fx.Provide(service.NewLineupService),
	fx.Provide(service.NewPlayerService),
	fx.Provide(scheduler.NewScheduler),
	// server
	fx.Provide(server.NewLineupServer),
)
