package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/pjessen/partywords/internal/model"
	"github.com/pjessen/partywords/internal/services/auth"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest     = "INVALID_REQUEST"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeHostRequired       = "HOST_REQUIRED"
	CodeNotHost            = "NOT_HOST"
	CodePartyNotFound      = "PARTY_NOT_FOUND"
	CodeNotInParty         = "NOT_IN_PARTY"
	CodeTeamFull           = "TEAM_FULL"
	CodeInvalidState       = "INVALID_STATE"
	CodeWrongRole          = "WRONG_ROLE"
	CodeNotYourTurn        = "NOT_YOUR_TURN"
	CodeAlreadyRevealed    = "ALREADY_REVEALED"
	CodeInvalidTile        = "INVALID_TILE"
	CodeInvalidRow         = "INVALID_ROW"
	CodeAbilityUsed        = "ABILITY_USED"
	CodeInvalidSettings    = "INVALID_SETTINGS"
	CodeInsufficientWords  = "INSUFFICIENT_WORDS"
	CodeHostNotFound       = "HOST_NOT_FOUND"
	CodeWordPackNotFound   = "WORD_PACK_NOT_FOUND"
	CodeUsernameTaken      = "USERNAME_TAKEN"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeInternalError      = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	// Map model errors
	switch {
	case errors.Is(err, model.ErrPartyNotFound):
		return &httpError{http.StatusNotFound, APIError{CodePartyNotFound, "Party not found"}}
	case errors.Is(err, model.ErrNotHost):
		return &httpError{http.StatusForbidden, APIError{CodeNotHost, "Only the host can perform this action"}}
	case errors.Is(err, model.ErrNotInParty):
		return &httpError{http.StatusNotFound, APIError{CodeNotInParty, "Not in this party"}}
	case errors.Is(err, model.ErrTeamFull):
		return &httpError{http.StatusConflict, APIError{CodeTeamFull, "No spymaster seat is available"}}
	case errors.Is(err, model.ErrInvalidState):
		return &httpError{http.StatusConflict, APIError{CodeInvalidState, "Action not allowed in the party's current state"}}
	case errors.Is(err, model.ErrWrongRole):
		return &httpError{http.StatusForbidden, APIError{CodeWrongRole, "Your role cannot perform this action now"}}
	case errors.Is(err, model.ErrNotYourTurn):
		return &httpError{http.StatusForbidden, APIError{CodeNotYourTurn, "Not your team's turn"}}
	case errors.Is(err, model.ErrAlreadyRevealed):
		return &httpError{http.StatusConflict, APIError{CodeAlreadyRevealed, "Tile is already revealed"}}
	case errors.Is(err, model.ErrInvalidTile):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidTile, "Invalid tile index"}}
	case errors.Is(err, model.ErrInvalidRow):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidRow, "Invalid board row"}}
	case errors.Is(err, model.ErrAbilityUsed):
		return &httpError{http.StatusConflict, APIError{CodeAbilityUsed, "Ability already used this game"}}
	case errors.Is(err, model.ErrInvalidSettings):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidSettings, "Invalid party settings"}}
	case errors.Is(err, model.ErrInsufficientWords):
		return &httpError{http.StatusConflict, APIError{CodeInsufficientWords, "Not enough distinct words for the board"}}
	case errors.Is(err, model.ErrHostNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeHostNotFound, "Host account not found"}}
	case errors.Is(err, model.ErrWordPackNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeWordPackNotFound, "Word pack not found"}}

	// Map auth errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		return &httpError{http.StatusUnauthorized, APIError{CodeInvalidCredentials, "Invalid username or password"}}
	case errors.Is(err, auth.ErrInvalidSession):
		return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Invalid or expired session"}}
	case errors.Is(err, auth.ErrUsernameTaken):
		return &httpError{http.StatusConflict, APIError{CodeUsernameTaken, "Username already taken"}}
	case errors.Is(err, auth.ErrNotElevated):
		return &httpError{http.StatusForbidden, APIError{CodeHostRequired, "A host account is required"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Authentication required"}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
