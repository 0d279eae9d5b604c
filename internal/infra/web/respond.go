package web

import (
	"errors"
	"net/http"

	"travel-planner/internal/domain"
)

type errorBody struct {
	Error string `json:"error"`
}

// writeDomainError maps the domain taxonomy onto HTTP status codes.
// Everything unrecognized becomes an opaque 500: internal errors never
// leak to clients.
func (s *Server) writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrValidationFailed), errors.Is(err, domain.ErrInvalidArgument):
		writeJSON(w, http.StatusBadRequest, errorBody{Error: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorBody{Error: "not found"})
	case errors.Is(err, domain.ErrForbidden):
		writeJSON(w, http.StatusForbidden, errorBody{Error: "forbidden"})
	case errors.Is(err, domain.ErrRateLimited):
		writeJSON(w, http.StatusTooManyRequests, errorBody{Error: "rate limit exceeded"})
	case errors.Is(err, domain.ErrSubmissionFailed):
		writeJSON(w, http.StatusBadGateway, errorBody{Error: "planner submission failed"})
	default:
		s.log.Error().Err(err).Msg("request failed")
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: "internal error"})
	}
}
