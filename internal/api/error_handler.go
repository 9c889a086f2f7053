package api

import (
	stderrors "errors"
	"net/http"

	"github.com/vytor/ivanachess/internal/errors"
	"github.com/vytor/ivanachess/internal/logger"
)

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Reason  string `json:"reason,omitempty"`
}

type errorResponse struct {
	Error errorBody `json:"error"`
}

// handleError centralizes error handling for HTTP responses
func handleError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromContext(r.Context())

	var appErr *errors.AppError
	if !stderrors.As(err, &appErr) {
		// Wrap unknown errors as internal errors
		appErr = errors.NewInternalError(err)
	}

	// Rejected moves are routine, keep them out of the warn log.
	switch {
	case appErr.Status >= 500:
		log.Error("server error: %v", appErr)
	case appErr.Code == errors.ErrCodeInvalidMove:
		log.Debug("client error: %v", appErr)
	case appErr.Status >= 400:
		log.Warn("client error: %v", appErr)
	default:
		log.Debug("error: %v", appErr)
	}

	writeJSON(w, r, appErr.Status, errorResponse{Error: errorBody{
		Code:    appErr.Code,
		Message: appErr.Message,
		Reason:  appErr.Reason,
	}})
}
