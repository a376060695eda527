package repository

import (
	"context"
	"fmt"

	"lineup-manager/internal/domain"
	"lineup-manager/internal/lineup"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// LineupState is everything persisted about the current game.
type LineupState struct {
	Lineup  *lineup.Lineup
	Innings lineup.InningRoster
	Match   domain.MatchDetails
}

type LineupRepository struct {
	store  DocumentStore
	logger zerolog.Logger
}

func NewLineupRepository(store DocumentStore, logger zerolog.Logger) *LineupRepository {
	return &LineupRepository{store: store, logger: logger}
}

// Load reads the four lineup documents concurrently. Missing or broken
// documents fall back to defaults: nine empty slots with the standard
// labels, an empty inning roster and blank match details. Inning rows
// that do not cover every inning are dropped so they get re-derived.
func (r *LineupRepository) Load(ctx context.Context) (LineupState, error) {
	var (
		players []*domain.Player
		labels  []string
		innings lineup.InningRoster
		match   domain.MatchDetails
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		players, _, err = loadDocument[[]*domain.Player](gctx, r.store, r.logger, LineupKey)
		return err
	})
	g.Go(func() error {
		var err error
		labels, _, err = loadDocument[[]string](gctx, r.store, r.logger, PositionsKey)
		return err
	})
	g.Go(func() error {
		var err error
		innings, _, err = loadDocument[lineup.InningRoster](gctx, r.store, r.logger, InningRosterKey)
		return err
	})
	g.Go(func() error {
		var err error
		match, _, err = loadDocument[domain.MatchDetails](gctx, r.store, r.logger, MatchDetailsKey)
		return err
	})
	if err := g.Wait(); err != nil {
		r.logger.Error().Err(err).Msg("failed to load lineup state")
		return LineupState{}, fmt.Errorf("failed to load lineup state: %w", err)
	}

	l, repaired := lineup.Join(players, labels)
	if repaired {
		r.logger.Warn().
			Int("players", len(players)).
			Int("labels", len(labels)).
			Msg("stored lineup and positions disagree, repaired")
	}
	if innings == nil {
		innings = lineup.InningRoster{}
	}
	for id, row := range innings {
		if len(row) != lineup.Innings {
			r.logger.Warn().Str("player_id", id).Int("innings", len(row)).Msg("dropping malformed inning row")
			delete(innings, id)
		}
	}

	r.logger.Info().
		Int("slots", l.Len()).
		Int("inning_entries", len(innings)).
		Msg("lineup state loaded")

	return LineupState{Lineup: l, Innings: innings, Match: match}, nil
}

// Save writes all lineup documents in one batch.
func (r *LineupRepository) Save(ctx context.Context, state LineupState) error {
	players, labels := state.Lineup.Split()
	innings := state.Innings
	if innings == nil {
		innings = lineup.InningRoster{}
	}
	docs, err := encodeDocuments(map[string]any{
		LineupKey:       players,
		PositionsKey:    labels,
		InningRosterKey: innings,
		MatchDetailsKey: state.Match,
	})
	if err != nil {
		return err
	}
	if err := r.store.PutBatch(ctx, docs); err != nil {
		r.logger.Error().Err(err).Msg("failed to save lineup state")
		return err
	}
	return nil
}

// Export returns every stored document keyed by name, for backups.
func (r *LineupRepository) Export(ctx context.Context) (map[string][]byte, error) {
	keys, err := r.store.Keys(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[string][]byte, len(keys))
	for _, key := range keys {
		raw, err := r.store.Get(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", key, err)
		}
		out[key] = raw
	}
	return out, nil
}
