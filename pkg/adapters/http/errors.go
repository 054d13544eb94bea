package http

import (
	"errors"
	"net/http"

	"github.com/aretw0/superdense/pkg/domain"
)

type errorResponse struct {
	Error string `json:"error"`
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrRunInProgress):
		return http.StatusConflict
	case errors.Is(err, domain.ErrBitsRequired):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrInvalidBit):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// messageFor prefers the user-facing failure message when the error has one.
func messageFor(err error) string {
	if f := domain.FailureFrom(err); f != nil {
		return f.Message
	}
	return err.Error()
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "err", err)
	} else {
		s.logger.Debug("request rejected", "status", status, "err", err)
	}
	s.writeJSON(w, status, errorResponse{Error: messageFor(err)})
}
