package repository

import (
	"context"

	"lineup-manager/internal/domain"

	"github.com/rs/zerolog"
)

type PlayerRepository struct {
	store  DocumentStore
	logger zerolog.Logger
}

func NewPlayerRepository(store DocumentStore, logger zerolog.Logger) *PlayerRepository {
	return &PlayerRepository{store: store, logger: logger}
}

// List returns the registry in registration order.
func (r *PlayerRepository) List(ctx context.Context) ([]domain.Player, error) {
	players, found, err := loadDocument[[]domain.Player](ctx, r.store, r.logger, PlayersKey)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to load players")
		return nil, err
	}
	if !found || players == nil {
		return []domain.Player{}, nil
	}
	return players, nil
}

func (r *PlayerRepository) Save(ctx context.Context, players []domain.Player) error {
	if players == nil {
		players = []domain.Player{}
	}
	docs, err := encodeDocuments(map[string]any{PlayersKey: players})
	if err != nil {
		return err
	}
	if err := r.store.PutBatch(ctx, docs); err != nil {
		r.logger.Error().Err(err).Int("count", len(players)).Msg("failed to save players")
		return err
	}
	return nil
}
