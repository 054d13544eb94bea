package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/aretw0/superdense/pkg/domain"
	"github.com/aretw0/superdense/pkg/runner"
)

// SimulateRequest is the body of POST /simulate. Bits travel as "0" or "1".
type SimulateRequest struct {
	Bit1        domain.Bit `json:"bit1"`
	Bit2        domain.Bit `json:"bit2"`
	GateCutting bool       `json:"gate_cutting"`
}

// SimulateResponse reports a completed run. Exactly one of MeasuredBits and Error is set.
type SimulateResponse struct {
	OriginalBits string   `json:"original_bits"`
	MeasuredBits string   `json:"measured_bits,omitempty"`
	Error        string   `json:"error,omitempty"`
	GateCutting  bool     `json:"gate_cutting"`
	Timeline     []string `json:"timeline"`
}

// Simulate handles the POST /simulate request. The run is ticked to completion
// without waiting for the display cadence.
func (s *Server) Simulate(w http.ResponseWriter, r *http.Request) {
	var body SimulateRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.logger.Warn("Simulate: Invalid request body", "err", err)
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	input := domain.Input{
		Bits:        domain.BitPair{First: body.Bit1, Second: body.Bit2},
		GateCutting: body.GateCutting,
	}

	final, events, err := runner.Simulate(r.Context(), s.Engine, input, runner.WithLogger(s.logger))
	if errors.Is(err, domain.ErrBitsRequired) {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: messageFor(err)})
		return
	}
	if err != nil {
		s.writeError(w, err)
		return
	}

	var timeline []string
	for _, evt := range events {
		if evt.Phase.Valid() {
			timeline = append(timeline, evt.Phase.String())
		}
	}

	view := s.Engine.Render(final)
	resp := SimulateResponse{
		OriginalBits: view.OriginalBits,
		Error:        view.Error,
		GateCutting:  input.GateCutting,
		Timeline:     timeline,
	}
	if final.Result != nil {
		resp.MeasuredBits = final.Result.String()
	}
	s.writeJSON(w, http.StatusOK, resp)
}
