package server

import (
	"net/http"

	"lineup-manager/internal/constants"
	"lineup-manager/internal/lineup"
	"lineup-manager/internal/service"
)

func (s *LineupServer) listPlayers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if query := q.Get("q"); query != "" {
		players, err := s.players.Search(r.Context(), query)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, r, http.StatusOK, players)
		return
	}

	players, err := s.players.List(r.Context(), lineup.ParseSortOrder(q.Get("sort")))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, players)
}

func (s *LineupServer) createPlayer(w http.ResponseWriter, r *http.Request) {
	var in service.PlayerInput
	if err := decode(w, r, &in); err != nil {
		writeError(w, r, err)
		return
	}
	p, err := s.players.Create(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, p)
}

func (s *LineupServer) updatePlayer(w http.ResponseWriter, r *http.Request) {
	var in service.PlayerInput
	if err := decode(w, r, &in); err != nil {
		writeError(w, r, err)
		return
	}
	p, err := s.players.Update(r.Context(), r.PathValue("id"), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, p)
}

func (s *LineupServer) deletePlayer(w http.ResponseWriter, r *http.Request) {
	if err := s.players.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *LineupServer) importPlayers(w http.ResponseWriter, r *http.Request) {
	body := http.MaxBytesReader(w, r.Body, constants.MaxImportBytes)
	added, err := s.players.Import(r.Context(), body)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, added)
}

func (s *LineupServer) exportPlayers(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="players.csv"`)
	if err := s.players.Export(r.Context(), w); err != nil {
		writeError(w, r, err)
	}
}

func (s *LineupServer) playerTemplate(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="players_template.csv"`)
	if err := service.WriteTemplate(w); err != nil {
		writeError(w, r, err)
	}
}
