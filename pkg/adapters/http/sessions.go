package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/aretw0/superdense/pkg/domain"
	"github.com/aretw0/superdense/pkg/session"
	"github.com/go-chi/chi/v5"
)

// SessionResponse carries the raw state and its rendered view.
type SessionResponse struct {
	ID    string           `json:"id"`
	State *domain.RunState `json:"state"`
	View  domain.View      `json:"view"`
}

// InputRequest is the body of PUT /sessions/{id}/input. Omitted fields keep their value.
type InputRequest struct {
	Bits        *domain.BitPair `json:"bits,omitempty"`
	Bit1        *domain.Bit     `json:"bit1,omitempty"`
	Bit2        *domain.Bit     `json:"bit2,omitempty"`
	GateCutting *bool           `json:"gate_cutting,omitempty"`
}

func (s *Server) sessionResponse(sess *session.Session) SessionResponse {
	state := sess.Runner.Snapshot()
	return SessionResponse{
		ID:    sess.ID,
		State: state,
		View:  s.Engine.Render(state),
	}
}

// CreateSession handles the POST /sessions request.
func (s *Server) CreateSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.Sessions.Create(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Location", "/sessions/"+sess.ID)
	s.writeJSON(w, http.StatusCreated, s.sessionResponse(sess))
}

// ListSessions handles the GET /sessions request.
func (s *Server) ListSessions(w http.ResponseWriter, r *http.Request) {
	ids, err := s.Sessions.List(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string][]string{"sessions": ids})
}

// GetSession handles the GET /sessions/{id} request.
func (s *Server) GetSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.Sessions.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, s.sessionResponse(sess))
}

// DeleteSession handles the DELETE /sessions/{id} request.
func (s *Server) DeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := s.Sessions.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UpdateInput handles the PUT /sessions/{id}/input request.
func (s *Server) UpdateInput(w http.ResponseWriter, r *http.Request) {
	sess, err := s.Sessions.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}

	var body InputRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		if errors.Is(err, domain.ErrInvalidBit) {
			s.writeError(w, err)
			return
		}
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	input := sess.Runner.Snapshot().Input
	if body.Bits != nil {
		input.Bits = *body.Bits
	}
	if body.Bit1 != nil {
		input.Bits = input.Bits.With(domain.SlotFirst, *body.Bit1)
	}
	if body.Bit2 != nil {
		input.Bits = input.Bits.With(domain.SlotSecond, *body.Bit2)
	}
	if body.GateCutting != nil {
		input.GateCutting = *body.GateCutting
	}

	if err := sess.Runner.SetInput(r.Context(), input); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, s.sessionResponse(sess))
}

// StartSession handles the POST /sessions/{id}/start request. The run proceeds
// in the background; progress is observable through GET or the event stream.
func (s *Server) StartSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.Sessions.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	if err := sess.Runner.Start(r.Context()); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusAccepted, s.sessionResponse(sess))
}
