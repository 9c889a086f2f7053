package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/vytor/ivanachess/internal/errors"
)

const requestTimeout = 30 * time.Second

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(loggingMiddleware)
	r.Use(recoveryMiddleware)
	r.Use(securityHeadersMiddleware)
	r.Use(timeoutMiddleware(requestTimeout))

	r.Get("/health", s.handleHealth)
	r.Get("/ready", s.handleReady)

	r.Route("/api", func(r chi.Router) {
		r.Post("/game", s.handleCreateGame)
		r.Post("/game/import", s.handleImportGame)
		r.Get("/game", s.handleListGames)
		r.Get("/game/{id}", s.handleGetGame)
		r.Get("/game/{id}/board/ascii", s.handleBoardASCII)
		r.Get("/game/{id}/pgn", s.handlePGN)
		r.Get("/game/{id}/legal-moves", s.handleLegalMoves)
		r.Put("/game/{token}/play", s.handlePlay)

		r.Put("/matchmaking", s.handleJoinMatchmaking)
		r.Delete("/matchmaking", s.handleLeaveMatchmaking)
		r.Get("/matchmaking/{ticket}", s.handleGetTicket)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		handleError(w, r, errors.NewNotFoundError("route", r.URL.Path))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, r, http.StatusMethodNotAllowed, errorResponse{Error: errorBody{
			Code:    "METHOD_NOT_ALLOWED",
			Message: r.Method + " not allowed on " + r.URL.Path,
		}})
	})
	return r
}
