package scheduler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"lineup-manager/internal/config"
	"lineup-manager/internal/constants"
	"lineup-manager/internal/repository"
	"lineup-manager/internal/service"

	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog"
)

const (
	rosterFile    = "players.csv"
	documentsFile = "documents.json"
)

// Scheduler runs the periodic roster backup.
type Scheduler struct {
	s        gocron.Scheduler
	players  *service.PlayerService
	lineups  *repository.LineupRepository
	dir      string
	schedule string
	now      func() time.Time
	started  bool
	logger   zerolog.Logger
}

func NewScheduler(cfg *config.Config, players *service.PlayerService, lineups *repository.LineupRepository, logger zerolog.Logger) (*Scheduler, error) {
	s, err := gocron.NewScheduler(gocron.WithLocation(time.Local))
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	return &Scheduler{
		s:        s,
		players:  players,
		lineups:  lineups,
		dir:      cfg.BackupDir,
		schedule: cfg.BackupSchedule,
		now:      time.Now,
		logger:   logger,
	}, nil
}

// Start registers the backup job. An empty schedule disables it.
func (s *Scheduler) Start() error {
	if s.schedule == "" {
		s.logger.Info().Msg("backup schedule empty, backups disabled")
		return nil
	}

	_, err := s.s.NewJob(
		gocron.CronJob(s.schedule, false),
		gocron.NewTask(s.runBackup),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return fmt.Errorf("failed to create backup job: %w", err)
	}

	s.s.Start()
	s.started = true
	s.logger.Info().Str("schedule", s.schedule).Str("dir", s.dir).Msg("backup scheduler started")
	return nil
}

func (s *Scheduler) Stop() error {
	if !s.started {
		return nil
	}
	s.started = false
	return s.s.Shutdown()
}

func (s *Scheduler) runBackup() {
	ctx, cancel := context.WithTimeout(context.Background(), constants.BackupJobTimeout)
	defer cancel()

	dir, err := s.Backup(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("backup failed")
		return
	}
	s.logger.Info().Str("dir", dir).Msg("backup written")
}

// Backup writes the roster CSV and every stored document into a new
// timestamped directory and returns its path.
func (s *Scheduler) Backup(ctx context.Context) (string, error) {
	dir := filepath.Join(s.dir, s.now().Format("20060102-150405"))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create backup dir: %w", err)
	}

	var roster bytes.Buffer
	if err := s.players.Export(ctx, &roster); err != nil {
		return "", fmt.Errorf("failed to export roster: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, rosterFile), roster.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("failed to write roster: %w", err)
	}

	docs, err := s.lineups.Export(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to export documents: %w", err)
	}
	dump := make(map[string]json.RawMessage, len(docs))
	for key, raw := range docs {
		dump[key] = raw
	}
	payload, err := json.MarshalIndent(dump, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal documents: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, documentsFile), payload, 0o644); err != nil {
		return "", fmt.Errorf("failed to write documents: %w", err)
	}

	return dir, nil
}
