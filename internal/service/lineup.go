package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"

	"lineup-manager/internal/constants"
	"lineup-manager/internal/domain"
	"lineup-manager/internal/lineup"
	"lineup-manager/internal/repository"

	"github.com/rs/zerolog"
)

// LineupService owns the in-memory game state and persists it after every
// change. All operations are serialized.
type LineupService struct {
	mu        sync.Mutex
	players   *repository.PlayerRepository
	repo      *repository.LineupRepository
	generator *lineup.Generator
	logger    zerolog.Logger

	loaded  bool
	lineup  *lineup.Lineup
	innings lineup.InningRoster
	match   domain.MatchDetails
	input   *lineup.Interaction
	gesture *lineup.Gesture
}

func NewLineupService(players *repository.PlayerRepository, repo *repository.LineupRepository, logger zerolog.Logger) *LineupService {
	return &LineupService{
		players:   players,
		repo:      repo,
		generator: lineup.NewGenerator(nil),
		logger:    logger,
	}
}

// WithRand swaps the generator's random source. Tests use it for
// reproducible lineups.
func (s *LineupService) WithRand(rng *rand.Rand) *LineupService {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generator = lineup.NewGenerator(rng)
	return s
}

// Load reads the stored state, replacing whatever is in memory.
func (s *LineupService) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

func (s *LineupService) load(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	state, err := s.repo.Load(ctx)
	if err != nil {
		return err
	}
	s.lineup = state.Lineup
	s.innings = lineup.DeriveInnings(state.Lineup, state.Innings)
	s.match = state.Match
	s.input = lineup.NewInteraction(s.lineup)
	s.gesture = lineup.NewGesture(s.input, lineup.DefaultDragThreshold)
	s.loaded = true
	return nil
}

func (s *LineupService) ensureLoaded(ctx context.Context) error {
	if s.loaded {
		return nil
	}
	return s.load(ctx)
}

func (s *LineupService) save(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	err := s.repo.Save(ctx, repository.LineupState{
		Lineup:  s.lineup,
		Innings: s.innings,
		Match:   s.match,
	})
	if err != nil {
		return fmt.Errorf("failed to save lineup: %w", err)
	}
	return nil
}

// mutate runs fn under the lock. When fn changed the lineup the inning
// roster is re-derived and everything is saved, even if fn also returned an
// error. A failed save rolls the lineup and inning roster back.
func (s *LineupService) mutate(ctx context.Context, op string, fn func() error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoaded(ctx); err != nil {
		return err
	}

	before := s.lineup.Revision()
	slots, innings := s.lineup.Slots(), s.innings.Clone()
	opErr := fn()
	if s.lineup.Revision() == before {
		if opErr != nil {
			s.logger.Debug().Err(opErr).Str("op", op).Msg("lineup operation rejected")
		}
		return opErr
	}

	s.innings = lineup.DeriveInnings(s.lineup, s.innings)
	if err := s.save(ctx); err != nil {
		s.logger.Error().Err(err).Str("op", op).Msg("failed to persist lineup, rolling back")
		s.lineup.Replace(slots)
		s.innings = innings
		s.resetInput()
		return err
	}

	s.logger.Info().
		Str("op", op).
		Uint64("revision", s.lineup.Revision()).
		Int("slots", s.lineup.Len()).
		Msg("lineup updated")
	return opErr
}

func (s *LineupService) Swap(ctx context.Context, i, j int) error {
	return s.mutate(ctx, "swap", func() error { return s.lineup.Swap(i, j) })
}

func (s *LineupService) SwapPlayers(ctx context.Context, i, j int) error {
	return s.mutate(ctx, "swap_players", func() error { return s.lineup.SwapPlayers(i, j) })
}

func (s *LineupService) SwapLabels(ctx context.Context, i, j int) error {
	return s.mutate(ctx, "swap_labels", func() error { return s.lineup.SwapLabels(i, j) })
}

// Assign puts a registered player into slot index.
func (s *LineupService) Assign(ctx context.Context, playerID string, index int) error {
	return s.mutate(ctx, "assign", func() error {
		p, err := s.lookupPlayer(ctx, playerID)
		if err != nil {
			return err
		}
		return s.lineup.AssignPlayer(p, index)
	})
}

func (s *LineupService) Unassign(ctx context.Context, index int) error {
	return s.mutate(ctx, "unassign", func() error { return s.lineup.UnassignPlayer(index) })
}

// AddSlot appends an empty slot. An empty label means DH.
func (s *LineupService) AddSlot(ctx context.Context, label string) error {
	if label == "" {
		label = lineup.LabelDH
	}
	return s.mutate(ctx, "add_slot", func() error { return s.lineup.AppendSlot(label) })
}

func (s *LineupService) RemoveSlot(ctx context.Context, index int) error {
	return s.mutate(ctx, "remove_slot", func() error {
		if err := s.lineup.RemoveSlot(index); err != nil {
			return err
		}
		s.resetInput()
		return nil
	})
}

func (s *LineupService) Reverse(ctx context.Context) error {
	return s.mutate(ctx, "reverse", func() error {
		s.lineup.ReverseAll()
		s.resetInput()
		return nil
	})
}

// Randomize builds a new lineup from the given players, or from the whole
// registry when ids is empty. A *lineup.ShortfallError leaves the current
// lineup untouched.
func (s *LineupService) Randomize(ctx context.Context, ids []string) error {
	return s.mutate(ctx, "random", func() error {
		pool, err := s.selectPlayers(ctx, ids)
		if err != nil {
			return err
		}
		slots, err := s.generator.Generate(pool)
		if err != nil {
			var shortfall *lineup.ShortfallError
			if errors.As(err, &shortfall) {
				s.logger.Warn().
					Int("pool", len(pool)).
					Int("assigned", shortfall.Assigned).
					Msg("random lineup shortfall")
			}
			return err
		}
		s.lineup.Replace(slots)
		s.resetInput()
		return nil
	})
}

func (s *LineupService) selectPlayers(ctx context.Context, ids []string) ([]domain.Player, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	players, err := s.players.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return players, nil
	}

	pool := make([]domain.Player, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		i := indexOfPlayer(players, id)
		if i < 0 {
			return nil, fmt.Errorf("%w: %s", ErrPlayerNotFound, id)
		}
		pool = append(pool, players[i])
	}
	return pool, nil
}

// SetInning changes one cell of the inning roster.
func (s *LineupService) SetInning(ctx context.Context, playerID string, inning int, label string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoaded(ctx); err != nil {
		return err
	}
	prev := s.innings.Clone()
	if err := s.innings.Set(playerID, inning, label); err != nil {
		return err
	}
	if err := s.save(ctx); err != nil {
		s.innings = prev
		return err
	}

	s.logger.Info().
		Str("player_id", playerID).
		Int("inning", inning).
		Str("label", label).
		Msg("inning updated")
	return nil
}

func (s *LineupService) Match(ctx context.Context) (domain.MatchDetails, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoaded(ctx); err != nil {
		return domain.MatchDetails{}, err
	}
	return s.match, nil
}

func (s *LineupService) UpdateMatch(ctx context.Context, m domain.MatchDetails) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoaded(ctx); err != nil {
		return err
	}
	prev := s.match
	s.match = m
	if err := s.save(ctx); err != nil {
		s.match = prev
		return err
	}
	s.logger.Info().Str("opponent", m.Opponent).Str("date", m.Date).Msg("match details updated")
	return nil
}

// OnPlayerDeleted empties any slot held by the player. The inning roster
// entry goes with it.
func (s *LineupService) OnPlayerDeleted(ctx context.Context, id string) error {
	return s.mutate(ctx, "player_deleted", func() error {
		if sel, ok := s.input.Selection().(lineup.AvailableSelection); ok && sel.Player.ID == id {
			s.resetInput()
		}
		s.lineup.ClearPlayer(id)
		return nil
	})
}

// OnPlayerUpdated refreshes the lineup's copy of p. Inning entries are
// keyed by id and stay as they are.
func (s *LineupService) OnPlayerUpdated(ctx context.Context, p domain.Player) error {
	return s.mutate(ctx, "player_updated", func() error {
		if sel, ok := s.input.Selection().(lineup.AvailableSelection); ok && sel.Player.ID == p.ID {
			s.resetInput()
		}
		s.lineup.RefreshPlayer(p)
		return nil
	})
}

func (s *LineupService) resetInput() {
	s.gesture.Cancel()
	s.input.Reset()
}

// lookupPlayer reads the registry. Callers hold s.mu so a concurrent
// delete cannot slip in between the read and the lineup change.
func (s *LineupService) lookupPlayer(ctx context.Context, id string) (domain.Player, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	players, err := s.players.List(ctx)
	if err != nil {
		return domain.Player{}, err
	}
	i := indexOfPlayer(players, id)
	if i < 0 {
		return domain.Player{}, fmt.Errorf("%w: %s", ErrPlayerNotFound, id)
	}
	return players[i], nil
}
