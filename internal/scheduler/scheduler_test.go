package scheduler

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"lineup-manager/internal/config"
	"lineup-manager/internal/repository"
	"lineup-manager/internal/service"

	"github.com/rs/zerolog"
)

func newTestScheduler(t *testing.T, schedule string) (*Scheduler, *service.PlayerService) {
	t.Helper()
	dir := t.TempDir()
	store, err := repository.OpenBoltStore(filepath.Join(dir, "lineup.bolt"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	logger := zerolog.Nop()
	playerRepo := repository.NewPlayerRepository(store, logger)
	lineupRepo := repository.NewLineupRepository(store, logger)
	lineups := service.NewLineupService(playerRepo, lineupRepo, logger)
	players := service.NewPlayerService(playerRepo, lineups, logger)

	cfg := &config.Config{BackupDir: filepath.Join(dir, "backups"), BackupSchedule: schedule}
	s, err := NewScheduler(cfg, players, lineupRepo, logger)
	if err != nil {
		t.Fatalf("new scheduler: %v", err)
	}
	s.now = func() time.Time { return time.Date(2024, 4, 1, 3, 0, 0, 0, time.UTC) }
	t.Cleanup(func() { _ = s.Stop() })
	return s, players
}

func TestBackupWritesRosterAndDocuments(t *testing.T) {
	s, players := newTestScheduler(t, "")
	ctx := context.Background()

	if _, err := players.Create(ctx, service.PlayerInput{Name: "Sato", MainPosition: "pitcher"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	dir, err := s.Backup(ctx)
	if err != nil {
		t.Fatalf("backup: %v", err)
	}
	if filepath.Base(dir) != "20240401-030000" {
		t.Fatalf("unexpected backup dir %s", dir)
	}

	roster, err := os.ReadFile(filepath.Join(dir, rosterFile))
	if err != nil {
		t.Fatalf("read roster: %v", err)
	}
	if !strings.Contains(string(roster), "Sato") {
		t.Fatalf("expected Sato in roster, got %q", roster)
	}

	raw, err := os.ReadFile(filepath.Join(dir, documentsFile))
	if err != nil {
		t.Fatalf("read documents: %v", err)
	}
	var docs map[string]json.RawMessage
	if err := json.Unmarshal(raw, &docs); err != nil {
		t.Fatalf("decode documents: %v", err)
	}
	if _, ok := docs[repository.PlayersKey]; !ok {
		t.Fatalf("expected %s in dump, got keys %v", repository.PlayersKey, docs)
	}
}

func TestStartWithEmptyScheduleIsNoop(t *testing.T) {
	s, _ := newTestScheduler(t, "")
	if err := s.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	if jobs := s.s.Jobs(); len(jobs) != 0 {
		t.Fatalf("expected no jobs, got %d", len(jobs))
	}
}

func TestStartRegistersCronJob(t *testing.T) {
	s, _ := newTestScheduler(t, "0 3 * * *")
	if err := s.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	if jobs := s.s.Jobs(); len(jobs) != 1 {
		t.Fatalf("expected one job, got %d", len(jobs))
	}
}

func TestStartRejectsBadSchedule(t *testing.T) {
	s, _ := newTestScheduler(t, "every tuesday")
	if err := s.Start(); err == nil {
		t.Fatalf("expected error for bad cron expression")
	}
}
