package server

import (
	"context"
	"net/http"

	"lineup-manager/internal/domain"
	"lineup-manager/internal/lineup"
	"lineup-manager/internal/service"
)

type pairRequest struct {
	I int `json:"i"`
	J int `json:"j"`
}

type assignRequest struct {
	PlayerID string `json:"playerId"`
}

type slotRequest struct {
	Label string `json:"label"`
}

type randomRequest struct {
	PlayerIDs []string `json:"playerIds"`
}

type touchStartRequest struct {
	X      float64             `json:"x"`
	Y      float64             `json:"y"`
	Item   *service.ItemInput  `json:"item"`
	Target service.TargetInput `json:"target"`
}

type touchMoveRequest struct {
	X      float64             `json:"x"`
	Y      float64             `json:"y"`
	Target service.TargetInput `json:"target"`
}

type inningRequest struct {
	Label string `json:"label"`
}

// respondLineup answers a successful mutation with the fresh board.
func (s *LineupServer) respondLineup(w http.ResponseWriter, r *http.Request) {
	view, err := s.lineups.Lineup(r.Context(), lineup.ParseSortOrder(r.URL.Query().Get("sort")))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, view)
}

func (s *LineupServer) getLineup(w http.ResponseWriter, r *http.Request) {
	s.respondLineup(w, r)
}

func (s *LineupServer) lineupTable(w http.ResponseWriter, r *http.Request) {
	table, err := s.lineups.LineupTable(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(table))
}

func (s *LineupServer) pairOp(op func(ctx context.Context, i, j int) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req pairRequest
		if err := decode(w, r, &req); err != nil {
			writeError(w, r, err)
			return
		}
		if err := op(r.Context(), req.I, req.J); err != nil {
			writeError(w, r, err)
			return
		}
		s.respondLineup(w, r)
	}
}

func (s *LineupServer) targetOp(op func(ctx context.Context, t service.TargetInput) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req service.TargetInput
		if err := decode(w, r, &req); err != nil {
			writeError(w, r, err)
			return
		}
		if err := op(r.Context(), req); err != nil {
			writeError(w, r, err)
			return
		}
		s.respondLineup(w, r)
	}
}

func (s *LineupServer) assign(w http.ResponseWriter, r *http.Request) {
	index, err := pathInt(r, "index")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req assignRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if err := s.lineups.Assign(r.Context(), req.PlayerID, index); err != nil {
		writeError(w, r, err)
		return
	}
	s.respondLineup(w, r)
}

func (s *LineupServer) unassign(w http.ResponseWriter, r *http.Request) {
	index, err := pathInt(r, "index")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := s.lineups.Unassign(r.Context(), index); err != nil {
		writeError(w, r, err)
		return
	}
	s.respondLineup(w, r)
}

func (s *LineupServer) addSlot(w http.ResponseWriter, r *http.Request) {
	var req slotRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if err := s.lineups.AddSlot(r.Context(), req.Label); err != nil {
		writeError(w, r, err)
		return
	}
	s.respondLineup(w, r)
}

func (s *LineupServer) removeSlot(w http.ResponseWriter, r *http.Request) {
	index, err := pathInt(r, "index")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := s.lineups.RemoveSlot(r.Context(), index); err != nil {
		writeError(w, r, err)
		return
	}
	s.respondLineup(w, r)
}

func (s *LineupServer) reverse(w http.ResponseWriter, r *http.Request) {
	if err := s.lineups.Reverse(r.Context()); err != nil {
		writeError(w, r, err)
		return
	}
	s.respondLineup(w, r)
}

func (s *LineupServer) random(w http.ResponseWriter, r *http.Request) {
	var req randomRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if err := s.lineups.Randomize(r.Context(), req.PlayerIDs); err != nil {
		writeError(w, r, err)
		return
	}
	s.respondLineup(w, r)
}

func (s *LineupServer) dragStart(w http.ResponseWriter, r *http.Request) {
	var req service.ItemInput
	if err := decode(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if err := s.lineups.DragStart(r.Context(), req); err != nil {
		writeError(w, r, err)
		return
	}
	s.respondLineup(w, r)
}

func (s *LineupServer) dragCancel(w http.ResponseWriter, r *http.Request) {
	if err := s.lineups.CancelDrag(r.Context()); err != nil {
		writeError(w, r, err)
		return
	}
	s.respondLineup(w, r)
}

func (s *LineupServer) touchStart(w http.ResponseWriter, r *http.Request) {
	var req touchStartRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	at := lineup.Point{X: req.X, Y: req.Y}
	if err := s.lineups.TouchStart(r.Context(), at, req.Item, req.Target); err != nil {
		writeError(w, r, err)
		return
	}
	s.respondLineup(w, r)
}

func (s *LineupServer) touchMove(w http.ResponseWriter, r *http.Request) {
	var req touchMoveRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	prevent, err := s.lineups.TouchMove(r.Context(), lineup.Point{X: req.X, Y: req.Y}, req.Target)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]bool{"preventScroll": prevent})
}

func (s *LineupServer) touchEnd(w http.ResponseWriter, r *http.Request) {
	if err := s.lineups.TouchEnd(r.Context()); err != nil {
		writeError(w, r, err)
		return
	}
	s.respondLineup(w, r)
}

func (s *LineupServer) touchCancel(w http.ResponseWriter, r *http.Request) {
	if err := s.lineups.TouchCancel(r.Context()); err != nil {
		writeError(w, r, err)
		return
	}
	s.respondLineup(w, r)
}

func (s *LineupServer) getInnings(w http.ResponseWriter, r *http.Request) {
	view, err := s.lineups.Innings(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, view)
}

func (s *LineupServer) inningsTable(w http.ResponseWriter, r *http.Request) {
	table, err := s.lineups.InningsTable(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(table))
}

func (s *LineupServer) setInning(w http.ResponseWriter, r *http.Request) {
	inning, err := pathInt(r, "inning")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req inningRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if err := s.lineups.SetInning(r.Context(), r.PathValue("playerId"), inning, req.Label); err != nil {
		writeError(w, r, err)
		return
	}
	s.getInnings(w, r)
}

func (s *LineupServer) getMatch(w http.ResponseWriter, r *http.Request) {
	m, err := s.lineups.Match(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, m)
}

func (s *LineupServer) putMatch(w http.ResponseWriter, r *http.Request) {
	var m domain.MatchDetails
	if err := decode(w, r, &m); err != nil {
		writeError(w, r, err)
		return
	}
	if err := s.lineups.UpdateMatch(r.Context(), m); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, m)
}
