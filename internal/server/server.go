package server

import (
	"net/http"

	"lineup-manager/internal/middleware"
	"lineup-manager/internal/service"

	"github.com/rs/cors"
	"github.com/rs/zerolog"
)

// LineupServer exposes the player registry and the lineup board over JSON.
type LineupServer struct {
	players *service.PlayerService
	lineups *service.LineupService
}

func NewLineupServer(players *service.PlayerService, lineups *service.LineupService) *LineupServer {
	return &LineupServer{players: players, lineups: lineups}
}

// Routes registers every endpoint on a fresh mux.
func (s *LineupServer) Routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.health)

	mux.HandleFunc("GET /players", s.listPlayers)
	mux.HandleFunc("POST /players", s.createPlayer)
	mux.HandleFunc("PUT /players/{id}", s.updatePlayer)
	mux.HandleFunc("DELETE /players/{id}", s.deletePlayer)
	mux.HandleFunc("POST /players/import", s.importPlayers)
	mux.HandleFunc("GET /players/export", s.exportPlayers)
	mux.HandleFunc("GET /players/template", s.playerTemplate)

	mux.HandleFunc("GET /lineup", s.getLineup)
	mux.HandleFunc("GET /lineup/table", s.lineupTable)
	mux.HandleFunc("POST /lineup/swap", s.pairOp(s.lineups.Swap))
	mux.HandleFunc("POST /lineup/swap-players", s.pairOp(s.lineups.SwapPlayers))
	mux.HandleFunc("POST /lineup/swap-labels", s.pairOp(s.lineups.SwapLabels))
	mux.HandleFunc("PUT /lineup/slots/{index}/player", s.assign)
	mux.HandleFunc("DELETE /lineup/slots/{index}/player", s.unassign)
	mux.HandleFunc("POST /lineup/slots", s.addSlot)
	mux.HandleFunc("DELETE /lineup/slots/{index}", s.removeSlot)
	mux.HandleFunc("POST /lineup/reverse", s.reverse)
	mux.HandleFunc("POST /lineup/random", s.random)

	mux.HandleFunc("POST /lineup/tap", s.targetOp(s.lineups.Tap))
	mux.HandleFunc("POST /lineup/drag/start", s.dragStart)
	mux.HandleFunc("POST /lineup/drag/over", s.targetOp(s.lineups.DragOver))
	mux.HandleFunc("POST /lineup/drag/drop", s.targetOp(s.lineups.Drop))
	mux.HandleFunc("POST /lineup/drag/cancel", s.dragCancel)
	mux.HandleFunc("POST /lineup/touch/start", s.touchStart)
	mux.HandleFunc("POST /lineup/touch/move", s.touchMove)
	mux.HandleFunc("POST /lineup/touch/end", s.touchEnd)
	mux.HandleFunc("POST /lineup/touch/cancel", s.touchCancel)

	mux.HandleFunc("GET /innings", s.getInnings)
	mux.HandleFunc("GET /innings/table", s.inningsTable)
	mux.HandleFunc("PUT /innings/{playerId}/{inning}", s.setInning)

	mux.HandleFunc("GET /match", s.getMatch)
	mux.HandleFunc("PUT /match", s.putMatch)

	return mux
}

// Handler wraps the routes with CORS, request ids and panic recovery.
func (s *LineupServer) Handler(logger zerolog.Logger) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{middleware.RequestIDHeader},
	})
	return middleware.RequestID(logger)(middleware.Recover(c.Handler(s.Routes())))
}

func (s *LineupServer) health(w http.ResponseWriter, r *http.Request) {
	if err := r.Context().Err(); err != nil {
		writeJSON(w, r, http.StatusServiceUnavailable, map[string]string{"error": "shutting down"})
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}
