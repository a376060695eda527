package service

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"strings"
	"sync"

	"lineup-manager/internal/constants"
	"lineup-manager/internal/domain"
	"lineup-manager/internal/lineup"
	"lineup-manager/internal/repository"

	"github.com/lithammer/fuzzysearch/fuzzy"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"
)

// PlayerInput is the editable part of a player. Positions accept either the
// stored value or an English alias.
type PlayerInput struct {
	Name         string `json:"name"`
	Number       string `json:"number"`
	MainPosition string `json:"mainPosition"`
	SubPosition1 string `json:"subPosition1"`
	SubPosition2 string `json:"subPosition2"`
}

type PlayerService struct {
	mu      sync.Mutex
	repo    *repository.PlayerRepository
	lineups *LineupService
	logger  zerolog.Logger
}

func NewPlayerService(repo *repository.PlayerRepository, lineups *LineupService, logger zerolog.Logger) *PlayerService {
	return &PlayerService{repo: repo, lineups: lineups, logger: logger}
}

func (s *PlayerService) List(ctx context.Context, order lineup.SortOrder) ([]domain.Player, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	players, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	return lineup.SortPlayers(players, order), nil
}

// Search ranks players by how closely their name matches query.
func (s *PlayerService) Search(ctx context.Context, query string) ([]domain.Player, error) {
	players, err := s.List(ctx, lineup.SortDefault)
	if err != nil {
		return nil, err
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return players, nil
	}

	names := make([]string, len(players))
	for i, p := range players {
		names[i] = p.Name
	}
	ranks := fuzzy.RankFindNormalizedFold(query, names)
	sort.Stable(ranks)

	out := make([]domain.Player, 0, min(len(ranks), constants.SearchResultLimit))
	for _, r := range ranks {
		if len(out) == constants.SearchResultLimit {
			break
		}
		out = append(out, players[r.OriginalIndex])
	}

	s.logger.Debug().Str("query", query).Int("matches", len(ranks)).Msg("player search")
	return out, nil
}

func (s *PlayerService) Get(ctx context.Context, id string) (domain.Player, error) {
	players, err := s.List(ctx, lineup.SortDefault)
	if err != nil {
		return domain.Player{}, err
	}
	i := indexOfPlayer(players, id)
	if i < 0 {
		return domain.Player{}, ErrPlayerNotFound
	}
	return players[i], nil
}

func (s *PlayerService) Create(ctx context.Context, in PlayerInput) (domain.Player, error) {
	p, err := buildPlayer(in)
	if err != nil {
		return domain.Player{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	players, err := s.repo.List(ctx)
	if err != nil {
		return domain.Player{}, err
	}
	if p.ID, err = gonanoid.New(); err != nil {
		return domain.Player{}, fmt.Errorf("failed to generate player id: %w", err)
	}
	if err := s.repo.Save(ctx, append(players, p)); err != nil {
		return domain.Player{}, fmt.Errorf("failed to save player: %w", err)
	}

	s.logger.Info().Str("player_id", p.ID).Str("name", p.Name).Msg("player created")
	return p, nil
}

// Update replaces a player's attributes, keeping the id, and refreshes the
// copy held by the lineup.
func (s *PlayerService) Update(ctx context.Context, id string, in PlayerInput) (domain.Player, error) {
	p, err := buildPlayer(in)
	if err != nil {
		return domain.Player{}, err
	}
	p.ID = id

	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	players, err := s.repo.List(ctx)
	if err != nil {
		return domain.Player{}, err
	}
	i := indexOfPlayer(players, id)
	if i < 0 {
		return domain.Player{}, ErrPlayerNotFound
	}
	players[i] = p
	if err := s.repo.Save(ctx, players); err != nil {
		return domain.Player{}, fmt.Errorf("failed to save player: %w", err)
	}
	if err := s.lineups.OnPlayerUpdated(ctx, p); err != nil {
		return domain.Player{}, err
	}

	s.logger.Info().Str("player_id", id).Str("name", p.Name).Msg("player updated")
	return p, nil
}

// Delete removes a player from the registry, then from the lineup and the
// inning roster.
func (s *PlayerService) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	players, err := s.repo.List(ctx)
	if err != nil {
		return err
	}
	i := indexOfPlayer(players, id)
	if i < 0 {
		return ErrPlayerNotFound
	}
	if err := s.repo.Save(ctx, slices.Delete(players, i, i+1)); err != nil {
		return fmt.Errorf("failed to delete player: %w", err)
	}
	if err := s.lineups.OnPlayerDeleted(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Str("player_id", id).Msg("player deleted")
	return nil
}

// appendPlayers gives each player a fresh id and adds them to the registry.
func (s *PlayerService) appendPlayers(ctx context.Context, added []domain.Player) ([]domain.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	players, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range added {
		id, err := gonanoid.New()
		if err != nil {
			return nil, fmt.Errorf("failed to generate player id: %w", err)
		}
		added[i].ID = id
	}
	if err := s.repo.Save(ctx, append(players, added...)); err != nil {
		return nil, fmt.Errorf("failed to save imported players: %w", err)
	}
	return added, nil
}

func buildPlayer(in PlayerInput) (domain.Player, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return domain.Player{}, ErrNameRequired
	}
	number := strings.TrimSpace(in.Number)
	if number != "" {
		if _, ok := domain.ParseNumber(number); !ok {
			return domain.Player{}, ErrInvalidNumber
		}
	}

	main, ok := domain.ParsePosition(in.MainPosition)
	if !ok || main == domain.PositionNone {
		return domain.Player{}, fmt.Errorf("%w: main position %q", ErrInvalidPosition, in.MainPosition)
	}
	sub1, ok := domain.ParsePosition(in.SubPosition1)
	if !ok {
		return domain.Player{}, fmt.Errorf("%w: sub position %q", ErrInvalidPosition, in.SubPosition1)
	}
	sub2, ok := domain.ParsePosition(in.SubPosition2)
	if !ok {
		return domain.Player{}, fmt.Errorf("%w: sub position %q", ErrInvalidPosition, in.SubPosition2)
	}

	p := domain.Player{
		Name:         name,
		Number:       number,
		MainPosition: main,
		SubPosition1: sub1,
		SubPosition2: sub2,
	}
	p.Normalize()
	return p, nil
}

func indexOfPlayer(players []domain.Player, id string) int {
	for i, p := range players {
		if p.ID == id {
			return i
		}
	}
	return -1
}
