package api

import "net/http"

func (s *Server) handleJoinMatchmaking(w http.ResponseWriter, r *http.Request) {
	var req matchRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	ticket, err := s.MatchmakingService.Join(r.Context(), req.Player)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, ticket)
}

func (s *Server) handleLeaveMatchmaking(w http.ResponseWriter, r *http.Request) {
	var req matchRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	if err := s.MatchmakingService.Leave(r.Context(), req.Player); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleGetTicket(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "ticket")
	if err != nil {
		handleError(w, r, err)
		return
	}

	ticket, err := s.MatchmakingService.Ticket(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, ticket)
}
