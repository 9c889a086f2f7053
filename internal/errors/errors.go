package errors

import "fmt"

// Error codes
const (
	ErrCodeNotFound        = "NOT_FOUND"
	ErrCodeGameNotFound    = "GAME_NOT_FOUND"
	ErrCodeValidation      = "VALIDATION_ERROR"
	ErrCodeInternal        = "INTERNAL_ERROR"
	ErrCodeBadRequest      = "BAD_REQUEST"
	ErrCodeInvalidMove     = "INVALID_MOVE"
	ErrCodeInvalidPlayer   = "INVALID_PLAYER"
	ErrCodeConflict        = "CONFLICT"
	ErrCodeReplayCorrupted = "REPLAY_CORRUPTED"
)

// AppError represents an application error with HTTP status code and error code
type AppError struct {
	Code    string // Error code (e.g., "NOT_FOUND", "INVALID_MOVE")
	Message string // Human-readable error message
	Reason  string // Machine-readable detail, set for INVALID_MOVE
	Status  int    // HTTP status code
	Err     error  // Wrapped underlying error (optional)
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for error wrapping support
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewNotFoundError creates a new NOT_FOUND error
func NewNotFoundError(resource string, id interface{}) *AppError {
	return &AppError{
		Code:    ErrCodeNotFound,
		Message: fmt.Sprintf("%s not found: %v", resource, id),
		Status:  404,
	}
}

// NewGameNotFoundError is returned for unknown game ids and tokens.
func NewGameNotFoundError(id interface{}) *AppError {
	return &AppError{
		Code:    ErrCodeGameNotFound,
		Message: fmt.Sprintf("game not found: %v", id),
		Status:  404,
	}
}

// NewValidationError creates a new VALIDATION_ERROR
func NewValidationError(field string, reason string) *AppError {
	return &AppError{
		Code:    ErrCodeValidation,
		Message: fmt.Sprintf("validation failed for %s: %s", field, reason),
		Status:  400,
	}
}

// NewInternalError creates a new INTERNAL_ERROR
func NewInternalError(err error) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: "internal server error",
		Status:  500,
		Err:     err,
	}
}

// NewBadRequestError creates a new BAD_REQUEST error
func NewBadRequestError(message string) *AppError {
	return &AppError{
		Code:    ErrCodeBadRequest,
		Message: message,
		Status:  400,
	}
}

// NewInvalidMoveError wraps a rejected move. reason is the rule that failed.
func NewInvalidMoveError(reason, message string, err error) *AppError {
	return &AppError{
		Code:    ErrCodeInvalidMove,
		Message: message,
		Reason:  reason,
		Status:  412,
		Err:     err,
	}
}

// NewInvalidPlayerError is returned when a token tries to move for the
// color that is not to play.
func NewInvalidPlayerError(message string) *AppError {
	return &AppError{
		Code:    ErrCodeInvalidPlayer,
		Message: message,
		Status:  412,
	}
}

// NewConflictError reports a concurrent write to the same resource.
func NewConflictError(message string, err error) *AppError {
	return &AppError{
		Code:    ErrCodeConflict,
		Message: message,
		Status:  409,
		Err:     err,
	}
}

// NewReplayCorruptedError reports a stored move log that no longer replays.
func NewReplayCorruptedError(gameID interface{}, err error) *AppError {
	return &AppError{
		Code:    ErrCodeReplayCorrupted,
		Message: fmt.Sprintf("stored moves of game %v are corrupted", gameID),
		Status:  500,
		Err:     err,
	}
}
