package server

import (
	"bytes"
	"encoding/json"
	"io"
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"lineup-manager/internal/domain"
	"lineup-manager/internal/repository"
	"lineup-manager/internal/service"

	"github.com/rs/zerolog"
)

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()
	store, err := repository.OpenBoltStore(filepath.Join(t.TempDir(), "lineup.bolt"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	logger := zerolog.Nop()
	playerRepo := repository.NewPlayerRepository(store, logger)
	lineups := service.NewLineupService(playerRepo, repository.NewLineupRepository(store, logger), logger).
		WithRand(rand.New(rand.NewPCG(7, 7)))
	players := service.NewPlayerService(playerRepo, lineups, logger)
	return NewLineupServer(players, lineups).Handler(logger)
}

func serve(h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var r io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		r = strings.NewReader(b)
	default:
		raw, _ := json.Marshal(b)
		r = bytes.NewReader(raw)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(method, path, r))
	return rr
}

func assertStatus(t *testing.T, rr *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rr.Code != want {
		t.Fatalf("expected status %d, got %d: %s", want, rr.Code, rr.Body.String())
	}
}

func decodeJSON(t *testing.T, rr *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.NewDecoder(rr.Body).Decode(v); err != nil {
		t.Fatalf("decode: %v", err)
	}
}

func createPlayer(t *testing.T, h http.Handler, name, main string) domain.Player {
	t.Helper()
	rr := serve(h, http.MethodPost, "/players", service.PlayerInput{Name: name, MainPosition: main})
	assertStatus(t, rr, http.StatusCreated)
	var p domain.Player
	decodeJSON(t, rr, &p)
	return p
}

func TestHealth(t *testing.T) {
	h := newTestHandler(t)
	rr := serve(h, http.MethodGet, "/health", nil)
	assertStatus(t, rr, http.StatusOK)
	if rr.Header().Get("X-Request-ID") == "" {
		t.Fatalf("expected request id header")
	}
}

func TestPlayerLifecycle(t *testing.T) {
	h := newTestHandler(t)
	p := createPlayer(t, h, "Sato", "pitcher")
	if p.MainPosition != domain.PositionPitcher {
		t.Fatalf("expected alias to resolve, got %s", p.MainPosition)
	}

	rr := serve(h, http.MethodPut, "/players/"+p.ID, service.PlayerInput{Name: "Sato", Number: "11", MainPosition: "catcher"})
	assertStatus(t, rr, http.StatusOK)

	rr = serve(h, http.MethodGet, "/players?sort=number", nil)
	assertStatus(t, rr, http.StatusOK)
	var players []domain.Player
	decodeJSON(t, rr, &players)
	if len(players) != 1 || players[0].Number != "11" {
		t.Fatalf("unexpected players %+v", players)
	}

	rr = serve(h, http.MethodDelete, "/players/"+p.ID, nil)
	assertStatus(t, rr, http.StatusNoContent)
	rr = serve(h, http.MethodDelete, "/players/"+p.ID, nil)
	assertStatus(t, rr, http.StatusNotFound)
}

func TestCreatePlayerRejectsBadInput(t *testing.T) {
	h := newTestHandler(t)

	rr := serve(h, http.MethodPost, "/players", service.PlayerInput{Name: "", MainPosition: "pitcher"})
	assertStatus(t, rr, http.StatusBadRequest)
	var resp errorResponse
	decodeJSON(t, rr, &resp)
	if resp.RequestID == "" {
		t.Fatalf("expected request id in error body")
	}

	rr = serve(h, http.MethodPost, "/players", "{not json")
	assertStatus(t, rr, http.StatusBadRequest)
}

func TestLineupAssignAndSwap(t *testing.T) {
	h := newTestHandler(t)
	a := createPlayer(t, h, "A", "pitcher")
	b := createPlayer(t, h, "B", "catcher")

	assertStatus(t, serve(h, http.MethodPut, "/lineup/slots/0/player", map[string]string{"playerId": a.ID}), http.StatusOK)
	assertStatus(t, serve(h, http.MethodPut, "/lineup/slots/1/player", map[string]string{"playerId": b.ID}), http.StatusOK)

	rr := serve(h, http.MethodPut, "/lineup/slots/2/player", map[string]string{"playerId": a.ID})
	assertStatus(t, rr, http.StatusConflict)

	rr = serve(h, http.MethodPost, "/lineup/swap-players", map[string]int{"i": 0, "j": 1})
	assertStatus(t, rr, http.StatusOK)
	var view service.LineupView
	decodeJSON(t, rr, &view)
	if view.Slots[0].Player.ID != b.ID || view.Slots[0].Label != "投" {
		t.Fatalf("expected players swapped with labels fixed, got %+v", view.Slots[0])
	}

	rr = serve(h, http.MethodPost, "/lineup/swap", map[string]int{"i": 0, "j": 99})
	assertStatus(t, rr, http.StatusBadRequest)

	rr = serve(h, http.MethodPut, "/lineup/slots/x/player", map[string]string{"playerId": a.ID})
	assertStatus(t, rr, http.StatusBadRequest)
}

func TestLineupSlots(t *testing.T) {
	h := newTestHandler(t)

	assertStatus(t, serve(h, http.MethodDelete, "/lineup/slots/3", nil), http.StatusConflict)

	rr := serve(h, http.MethodPost, "/lineup/slots", nil)
	assertStatus(t, rr, http.StatusOK)
	var view service.LineupView
	decodeJSON(t, rr, &view)
	if len(view.Slots) != 10 || view.Slots[9].Label != "DH" {
		t.Fatalf("expected DH slot appended, got %+v", view.Slots)
	}

	assertStatus(t, serve(h, http.MethodDelete, "/lineup/slots/9", nil), http.StatusOK)
	assertStatus(t, serve(h, http.MethodPost, "/lineup/reverse", nil), http.StatusOK)
}

func TestRandomShortfall(t *testing.T) {
	h := newTestHandler(t)
	createPlayer(t, h, "A", "pitcher")

	rr := serve(h, http.MethodPost, "/lineup/random", nil)
	assertStatus(t, rr, http.StatusUnprocessableEntity)
	var resp errorResponse
	decodeJSON(t, rr, &resp)
	if resp.Assigned != 1 || resp.Required != 9 {
		t.Fatalf("expected 1 of 9 assigned, got %+v", resp)
	}
}

func TestTapAndTouchEndpoints(t *testing.T) {
	h := newTestHandler(t)
	a := createPlayer(t, h, "A", "pitcher")

	rr := serve(h, http.MethodPost, "/lineup/tap", service.TargetInput{Kind: "available", PlayerID: a.ID})
	assertStatus(t, rr, http.StatusOK)
	var view service.LineupView
	decodeJSON(t, rr, &view)
	if view.Interaction.State != "selected" {
		t.Fatalf("expected selected, got %s", view.Interaction.State)
	}

	// a plain touch with no movement is a tap on slot 5
	assertStatus(t, serve(h, http.MethodPost, "/lineup/touch/start", map[string]any{
		"x": 10, "y": 10,
		"target": service.TargetInput{Kind: "player", Index: 5},
	}), http.StatusOK)
	rr = serve(h, http.MethodPost, "/lineup/touch/move", map[string]any{
		"x": 12, "y": 11,
		"target": service.TargetInput{Kind: "player", Index: 5},
	})
	assertStatus(t, rr, http.StatusOK)
	var move map[string]bool
	decodeJSON(t, rr, &move)
	if move["preventScroll"] {
		t.Fatalf("expected no scroll suppression under the threshold")
	}

	rr = serve(h, http.MethodPost, "/lineup/touch/end", nil)
	assertStatus(t, rr, http.StatusOK)
	view = service.LineupView{}
	decodeJSON(t, rr, &view)
	if view.Slots[5].Player == nil || view.Slots[5].Player.ID != a.ID {
		t.Fatalf("expected %s in slot 5, got %+v", a.ID, view.Slots[5])
	}
	if view.Interaction.State != "idle" {
		t.Fatalf("expected idle, got %s", view.Interaction.State)
	}
}

func TestDragEndpoints(t *testing.T) {
	h := newTestHandler(t)
	a := createPlayer(t, h, "A", "pitcher")
	assertStatus(t, serve(h, http.MethodPut, "/lineup/slots/0/player", map[string]string{"playerId": a.ID}), http.StatusOK)

	assertStatus(t, serve(h, http.MethodPost, "/lineup/drag/start", service.ItemInput{Kind: "slot", Index: 0}), http.StatusOK)
	assertStatus(t, serve(h, http.MethodPost, "/lineup/drag/over", service.TargetInput{Kind: "return"}), http.StatusOK)
	rr := serve(h, http.MethodPost, "/lineup/drag/drop", service.TargetInput{Kind: "return"})
	assertStatus(t, rr, http.StatusOK)

	var view service.LineupView
	decodeJSON(t, rr, &view)
	if view.Slots[0].Player != nil {
		t.Fatalf("expected slot 0 emptied by return drop")
	}
	if len(view.Available) != 1 {
		t.Fatalf("expected player back in available list, got %+v", view.Available)
	}
}

func TestInningsEndpoints(t *testing.T) {
	h := newTestHandler(t)
	a := createPlayer(t, h, "A", "pitcher")
	assertStatus(t, serve(h, http.MethodPut, "/lineup/slots/0/player", map[string]string{"playerId": a.ID}), http.StatusOK)

	rr := serve(h, http.MethodPut, "/innings/"+a.ID+"/3", map[string]string{"label": "DH"})
	assertStatus(t, rr, http.StatusOK)
	var view service.InningsView
	decodeJSON(t, rr, &view)
	if len(view.Rows) != 1 || view.Rows[0].Innings[2] != "DH" {
		t.Fatalf("unexpected innings %+v", view.Rows)
	}

	assertStatus(t, serve(h, http.MethodPut, "/innings/"+a.ID+"/0", map[string]string{"label": "DH"}), http.StatusBadRequest)
	assertStatus(t, serve(h, http.MethodPut, "/innings/ghost/1", map[string]string{"label": "DH"}), http.StatusConflict)

	rr = serve(h, http.MethodGet, "/innings/table", nil)
	assertStatus(t, rr, http.StatusOK)
	if !strings.Contains(rr.Body.String(), "A") {
		t.Fatalf("expected player in table, got %q", rr.Body.String())
	}
}

func TestMatchEndpoints(t *testing.T) {
	h := newTestHandler(t)
	m := domain.MatchDetails{Date: "2024-07-07", Opponent: "Giants"}
	assertStatus(t, serve(h, http.MethodPut, "/match", m), http.StatusOK)

	rr := serve(h, http.MethodGet, "/match", nil)
	assertStatus(t, rr, http.StatusOK)
	var got domain.MatchDetails
	decodeJSON(t, rr, &got)
	if got != m {
		t.Fatalf("expected %+v, got %+v", m, got)
	}
}

func TestCSVEndpoints(t *testing.T) {
	h := newTestHandler(t)

	csv := "name,number,mainPosition,subPosition1,subPosition2\nA,1,ピッチャー,なし,なし\nB,2,キャッチャー,なし,なし\n"
	rr := serve(h, http.MethodPost, "/players/import", csv)
	assertStatus(t, rr, http.StatusCreated)
	var added []domain.Player
	decodeJSON(t, rr, &added)
	if len(added) != 2 {
		t.Fatalf("expected 2 imported, got %d", len(added))
	}

	rr = serve(h, http.MethodGet, "/players/export", nil)
	assertStatus(t, rr, http.StatusOK)
	if !strings.HasPrefix(rr.Header().Get("Content-Type"), "text/csv") {
		t.Fatalf("unexpected content type %q", rr.Header().Get("Content-Type"))
	}
	if rr.Body.String() != csv {
		t.Fatalf("expected export to match import, got %q", rr.Body.String())
	}

	assertStatus(t, serve(h, http.MethodPost, "/players/import", "bad,header\n"), http.StatusBadRequest)
	assertStatus(t, serve(h, http.MethodGet, "/players/template", nil), http.StatusOK)
}
