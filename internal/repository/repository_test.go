package repository

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"lineup-manager/internal/database"
	"lineup-manager/internal/domain"
	"lineup-manager/internal/lineup"

	"github.com/rs/zerolog"
)

func openStores(t *testing.T) map[string]DocumentStore {
	t.Helper()
	dir := t.TempDir()

	sqlDB, err := database.Open(filepath.Join(dir, "lineup.db"), zerolog.Nop())
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqliteStore := NewSQLiteStore(sqlDB, zerolog.Nop())
	t.Cleanup(func() { _ = sqliteStore.Close() })

	boltStore, err := OpenBoltStore(filepath.Join(dir, "lineup.bolt"))
	if err != nil {
		t.Fatalf("open bolt: %v", err)
	}
	t.Cleanup(func() { _ = boltStore.Close() })

	return map[string]DocumentStore{"sqlite": sqliteStore, "bolt": boltStore}
}

func TestDocumentStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	for name, store := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			if _, err := store.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
				t.Fatalf("expected ErrNotFound, got %v", err)
			}

			if err := store.PutBatch(ctx, map[string][]byte{"b": []byte("1"), "a": []byte("2")}); err != nil {
				t.Fatalf("put batch: %v", err)
			}
			if err := store.PutBatch(ctx, map[string][]byte{"b": []byte("3")}); err != nil {
				t.Fatalf("overwrite: %v", err)
			}

			got, err := store.Get(ctx, "b")
			if err != nil {
				t.Fatalf("get: %v", err)
			}
			if string(got) != "3" {
				t.Fatalf("expected overwritten value 3, got %q", got)
			}

			keys, err := store.Keys(ctx)
			if err != nil {
				t.Fatalf("keys: %v", err)
			}
			if len(keys) != 2 || keys[0] != "a" || keys[1] != "b" {
				t.Fatalf("expected keys [a b], got %v", keys)
			}
		})
	}
}

func TestPlayerRepository(t *testing.T) {
	ctx := context.Background()
	for name, store := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			repo := NewPlayerRepository(store, zerolog.Nop())

			players, err := repo.List(ctx)
			if err != nil {
				t.Fatalf("list empty: %v", err)
			}
			if players == nil || len(players) != 0 {
				t.Fatalf("expected empty non-nil registry, got %#v", players)
			}

			want := []domain.Player{
				{ID: "p1", Name: "Sato", Number: "18", MainPosition: domain.PositionPitcher, SubPosition1: domain.PositionNone, SubPosition2: domain.PositionNone},
				{ID: "p2", Name: "Suzuki", Number: "2", MainPosition: domain.PositionCatcher, SubPosition1: domain.PositionInfielder, SubPosition2: domain.PositionNone},
			}
			if err := repo.Save(ctx, want); err != nil {
				t.Fatalf("save: %v", err)
			}
			got, err := repo.List(ctx)
			if err != nil {
				t.Fatalf("list: %v", err)
			}
			if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
				t.Fatalf("expected %v, got %v", want, got)
			}
		})
	}
}

func TestPlayerRepositoryMalformedDocument(t *testing.T) {
	ctx := context.Background()
	docs := map[string]string{
		"syntax":       "{not json",
		"element type": `[{"id":"a","name":"A","mainPosition":"投"},5]`,
	}
	for name, store := range openStores(t) {
		for kind, doc := range docs {
			t.Run(name+"/"+kind, func(t *testing.T) {
				if err := store.PutBatch(ctx, map[string][]byte{PlayersKey: []byte(doc)}); err != nil {
					t.Fatalf("seed: %v", err)
				}
				players, err := NewPlayerRepository(store, zerolog.Nop()).List(ctx)
				if err != nil {
					t.Fatalf("expected fallback, got error %v", err)
				}
				if len(players) != 0 {
					t.Fatalf("expected empty registry, got %v", players)
				}
			})
		}
	}
}

func TestLineupRepositoryDefaults(t *testing.T) {
	ctx := context.Background()
	for name, store := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			state, err := NewLineupRepository(store, zerolog.Nop()).Load(ctx)
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			if state.Lineup.Len() != lineup.BaseSlots {
				t.Fatalf("expected %d slots, got %d", lineup.BaseSlots, state.Lineup.Len())
			}
			for i, label := range state.Lineup.Labels() {
				if label != lineup.FieldLabels[i] {
					t.Fatalf("slot %d: expected %s, got %s", i, lineup.FieldLabels[i], label)
				}
			}
			if len(state.Innings) != 0 {
				t.Fatalf("expected empty innings, got %v", state.Innings)
			}
			if !state.Match.IsZero() {
				t.Fatalf("expected blank match details, got %+v", state.Match)
			}
		})
	}
}

func TestLineupRepositoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	for name, store := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			repo := NewLineupRepository(store, zerolog.Nop())

			l := lineup.New()
			p := domain.Player{ID: "p1", Name: "Sato", MainPosition: domain.PositionPitcher}
			if err := l.AssignPlayer(p, 3); err != nil {
				t.Fatalf("assign: %v", err)
			}
			if err := l.AppendSlot(lineup.LabelDH); err != nil {
				t.Fatalf("append: %v", err)
			}
			innings := lineup.DeriveInnings(l, nil)
			if err := innings.Set("p1", 2, lineup.LabelFirst); err != nil {
				t.Fatalf("set inning: %v", err)
			}
			match := domain.MatchDetails{Date: "2024-05-01", Opponent: "Tigers"}

			if err := repo.Save(ctx, LineupState{Lineup: l, Innings: innings, Match: match}); err != nil {
				t.Fatalf("save: %v", err)
			}

			got, err := repo.Load(ctx)
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			if got.Lineup.Len() != 10 {
				t.Fatalf("expected 10 slots, got %d", got.Lineup.Len())
			}
			if got.Lineup.IndexOf("p1") != 3 {
				t.Fatalf("expected p1 in slot 3, got %d", got.Lineup.IndexOf("p1"))
			}
			if got.Innings["p1"][1] != lineup.LabelFirst {
				t.Fatalf("expected inning 2 to be %s, got %v", lineup.LabelFirst, got.Innings["p1"])
			}
			if got.Match != match {
				t.Fatalf("expected %+v, got %+v", match, got.Match)
			}

			docs, err := repo.Export(ctx)
			if err != nil {
				t.Fatalf("export: %v", err)
			}
			for _, key := range []string{LineupKey, PositionsKey, InningRosterKey, MatchDetailsKey} {
				if _, ok := docs[key]; !ok {
					t.Fatalf("expected %s in export", key)
				}
			}
		})
	}
}

func TestLineupRepositoryRepairsMismatch(t *testing.T) {
	ctx := context.Background()
	for name, store := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			err := store.PutBatch(ctx, map[string][]byte{
				LineupKey:    []byte(`[{"id":"p1","name":"Sato"},null]`),
				PositionsKey: []byte(`["投","捕","一"]`),
			})
			if err != nil {
				t.Fatalf("seed: %v", err)
			}

			state, err := NewLineupRepository(store, zerolog.Nop()).Load(ctx)
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			if state.Lineup.Len() != 3 {
				t.Fatalf("expected label array to decide length 3, got %d", state.Lineup.Len())
			}
			if state.Lineup.IndexOf("p1") != 0 {
				t.Fatalf("expected p1 in slot 0")
			}
		})
	}
}

func TestLineupRepositoryWrongElementTypes(t *testing.T) {
	ctx := context.Background()
	full := `["投","投","投","投","投","投","投","投","投"]`
	for name, store := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			err := store.PutBatch(ctx, map[string][]byte{
				LineupKey:       []byte(`[{"id":"p1","name":"Sato"}]`),
				PositionsKey:    []byte(`["投",5,"一"]`),
				InningRosterKey: []byte(`{"p1":["投"],"p2":` + full + `}`),
				MatchDetailsKey: []byte(`{"opponent":7}`),
			})
			if err != nil {
				t.Fatalf("seed: %v", err)
			}

			state, err := NewLineupRepository(store, zerolog.Nop()).Load(ctx)
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			labels := state.Lineup.Labels()
			if len(labels) != lineup.BaseSlots {
				t.Fatalf("expected default %d labels, got %v", lineup.BaseSlots, labels)
			}
			for i, label := range labels {
				if label != lineup.FieldLabels[i] {
					t.Fatalf("slot %d: expected %s, got %q", i, lineup.FieldLabels[i], label)
				}
			}
			if state.Lineup.IndexOf("p1") != 0 {
				t.Fatalf("expected p1 kept in slot 0")
			}
			if _, ok := state.Innings["p1"]; ok {
				t.Fatalf("expected short inning row dropped, got %v", state.Innings["p1"])
			}
			if len(state.Innings["p2"]) != lineup.Innings {
				t.Fatalf("expected full row for p2 kept, got %v", state.Innings["p2"])
			}
			if !state.Match.IsZero() {
				t.Fatalf("expected blank match details, got %+v", state.Match)
			}

			derived := lineup.DeriveInnings(state.Lineup, state.Innings)
			if len(derived["p1"]) != lineup.Innings {
				t.Fatalf("expected p1 re-derived to %d innings, got %v", lineup.Innings, derived["p1"])
			}
		})
	}
}
