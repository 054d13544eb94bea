package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/aretw0/superdense"
	"github.com/aretw0/superdense/pkg/domain"
	"github.com/aretw0/superdense/pkg/outcome"
	"github.com/aretw0/superdense/pkg/ports"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(src ports.RandomSource) *Server {
	return NewServer(superdense.New(superdense.WithRandomSource(src)))
}

func TestHandleSimulate(t *testing.T) {
	s := newTestServer(outcome.AlwaysSucceed)

	res, err := s.handleSimulate(context.Background(), mcp.CallToolRequest{}, map[string]interface{}{
		"bit1": "1",
		"bit2": "0",
	})
	require.NoError(t, err)
	assert.Equal(t, "10", res.OriginalBits)
	assert.Equal(t, "10", res.MeasuredBits)
	assert.Empty(t, res.Error)
	require.Len(t, res.Timeline, domain.PhaseCount)
	assert.Equal(t, "Entanglement", res.Timeline[0].Title)
	assert.Equal(t, 3, res.Timeline[3].Index)
}

func TestHandleSimulate_Fault(t *testing.T) {
	s := newTestServer(outcome.AlwaysFail)

	res, err := s.handleSimulate(context.Background(), mcp.CallToolRequest{}, map[string]interface{}{
		"bit1":         "1",
		"bit2":         "1",
		"gate_cutting": true,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.MessageTransmissionFault, res.Error)
	assert.Empty(t, res.MeasuredBits)
	assert.True(t, res.GateCutting)
}

func TestHandleSimulate_WeakTypes(t *testing.T) {
	s := newTestServer(outcome.AlwaysSucceed)

	res, err := s.handleSimulate(context.Background(), mcp.CallToolRequest{}, map[string]interface{}{
		"bit1":         float64(0),
		"bit2":         float64(1),
		"gate_cutting": "false",
	})
	require.NoError(t, err)
	assert.Equal(t, "01", res.MeasuredBits)
}

func TestHandleSimulate_Rejects(t *testing.T) {
	s := newTestServer(outcome.AlwaysSucceed)
	ctx := context.Background()

	_, err := s.handleSimulate(ctx, mcp.CallToolRequest{}, map[string]interface{}{"bit1": "1"})
	assert.EqualError(t, err, domain.MessageBitsRequired)

	_, err = s.handleSimulate(ctx, mcp.CallToolRequest{}, map[string]interface{}{"bit1": "2", "bit2": "0"})
	assert.ErrorIs(t, err, domain.ErrInvalidBit)
}

func rpc(t *testing.T, s *Server, id int, method string, params any) string {
	t.Helper()
	msg, err := json.Marshal(map[string]any{
		"jsonrpc": "2.0",
		"id":      id,
		"method":  method,
		"params":  params,
	})
	require.NoError(t, err)

	resp := s.MCPServer().HandleMessage(context.Background(), msg)
	out, err := json.Marshal(resp)
	require.NoError(t, err)
	return string(out)
}

func initialize(t *testing.T, s *Server) {
	t.Helper()
	rpc(t, s, 0, "initialize", map[string]any{
		"protocolVersion": mcp.LATEST_PROTOCOL_VERSION,
		"clientInfo":      map[string]any{"name": "test", "version": "0"},
		"capabilities":    map[string]any{},
	})
}

func TestServer_ListsTools(t *testing.T) {
	s := newTestServer(outcome.AlwaysSucceed)
	initialize(t, s)

	out := rpc(t, s, 1, "tools/list", map[string]any{})
	assert.Contains(t, out, `"simulate"`)
	assert.Contains(t, out, `"encoding_table"`)
	assert.Contains(t, out, `"phases"`)
}

func TestServer_CallEncodingTable(t *testing.T) {
	s := newTestServer(outcome.AlwaysSucceed)
	initialize(t, s)

	out := rpc(t, s, 2, "tools/call", map[string]any{"name": "encoding_table", "arguments": map[string]any{}})
	assert.Contains(t, out, `x_gate`)
	assert.Contains(t, out, `Ψ⁻`)
}

func TestServer_ReadTutorial(t *testing.T) {
	s := newTestServer(outcome.AlwaysSucceed)
	initialize(t, s)

	out := rpc(t, s, 3, "resources/read", map[string]any{"uri": TutorialURI})
	assert.Contains(t, out, "No-cloning theorem ensures security")
}
