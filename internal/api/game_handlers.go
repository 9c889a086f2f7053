package api

import (
	"io"
	"net/http"

	"github.com/vytor/ivanachess/internal/errors"
	"github.com/vytor/ivanachess/internal/logger"
	"github.com/vytor/ivanachess/internal/models"
	"github.com/vytor/ivanachess/internal/notation"
)

func (s *Server) handleCreateGame(w http.ResponseWriter, r *http.Request) {
	info, err := s.GameService.Create(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, newGameDTO(info, true))
}

// handleImportGame creates a game from the main line of a PGN body.
func (s *Server) handleImportGame(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		handleError(w, r, errors.NewBadRequestError("invalid request body: "+err.Error()))
		return
	}

	imported, err := notation.FromPGN(string(body))
	if err != nil {
		handleError(w, r, errors.NewValidationError("pgn", err.Error()))
		return
	}

	info, err := s.GameService.Import(r.Context(), imported.Moves, imported.Tags)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, s.gameView(r, info, true))
}

func (s *Server) handleListGames(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	page, err := intQuery(r, "page", 1)
	if err != nil {
		handleError(w, r, err)
		return
	}
	size, err := intQuery(r, "size", s.DefaultPageSize)
	if err != nil {
		handleError(w, r, err)
		return
	}
	if s.MaxPageSize > 0 && size > s.MaxPageSize {
		log.Debug("page size %d above limit %d", size, s.MaxPageSize)
		handleError(w, r, errors.NewValidationError("size", "must not exceed the maximum page size"))
		return
	}

	result, err := s.GameService.List(r.Context(), page, size, r.URL.Query().Get("state"))
	if err != nil {
		handleError(w, r, err)
		return
	}

	content := make([]gameSummaryDTO, 0, len(result.Content))
	for _, g := range result.Content {
		content = append(content, newGameSummaryDTO(g))
	}
	writeJSON(w, r, http.StatusOK, models.NewPage(content, result.Number, result.Size, result.TotalItems))
}

func (s *Server) gameView(r *http.Request, info *models.GameInfo, withTokens bool) gameDTO {
	dto := newGameDTO(info, withTokens)
	opening, err := notation.FindOpening(info.Game.Moves())
	if err != nil {
		logger.FromContext(r.Context()).WithGame(info.Summary.ID).Warn("failed to name opening: %v", err)
	}
	dto.Opening = opening

	if san, err := notation.SAN(info.Game.Moves()); err != nil {
		logger.FromContext(r.Context()).WithGame(info.Summary.ID).Warn("failed to render san: %v", err)
	} else {
		dto.SAN = san
	}
	return dto
}

func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	info, err := s.GameService.GetByID(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, s.gameView(r, info, false))
}

func (s *Server) handleBoardASCII(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	board, err := s.GameService.Board(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeText(w, r, "text/plain; charset=utf-8", board)
}

func (s *Server) handlePGN(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	pgn, err := s.GameService.PGN(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeText(w, r, "application/x-chess-pgn", []byte(pgn))
}

func (s *Server) handleLegalMoves(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	info, err := s.GameService.GetByID(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	legal := info.Game.LegalMoves()
	out := make([]moveDTO, 0, len(legal))
	for _, m := range legal {
		out = append(out, newMoveDTO(m))
	}
	writeJSON(w, r, http.StatusOK, out)
}

func (s *Server) handlePlay(w http.ResponseWriter, r *http.Request) {
	token, err := uuidParam(r, "token")
	if err != nil {
		handleError(w, r, err)
		return
	}

	var req moveDTO
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	move, err := req.toMove()
	if err != nil {
		handleError(w, r, err)
		return
	}

	info, err := s.GameService.Play(r.Context(), token, move)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, s.gameView(r, info, false))
}
