package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/aretw0/superdense"
	"github.com/aretw0/superdense/internal/logging"
	"github.com/aretw0/superdense/pkg/domain"
	"github.com/aretw0/superdense/pkg/ports"
	"github.com/aretw0/superdense/pkg/runner"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/mitchellh/mapstructure"
)

// TutorialURI is the resource holding the educational text and gate table.
const TutorialURI = "superdense://tutorial"

// SimulateArgs are the arguments of the simulate tool.
type SimulateArgs struct {
	Bit1        string `mapstructure:"bit1"`
	Bit2        string `mapstructure:"bit2"`
	GateCutting bool   `mapstructure:"gate_cutting"`
}

// TimelineEntry is one phase walked by a simulated run.
type TimelineEntry struct {
	Index       int    `json:"index" jsonschema_description:"Zero-based phase index"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// SimulateResult aligns with the HTTP /simulate response.
type SimulateResult struct {
	OriginalBits string          `json:"original_bits" jsonschema_description:"The bits chosen by the sender"`
	MeasuredBits string          `json:"measured_bits,omitempty" jsonschema_description:"The bits decoded by the receiver"`
	Error        string          `json:"error,omitempty" jsonschema_description:"Transmission fault message, if any"`
	GateCutting  bool            `json:"gate_cutting"`
	Timeline     []TimelineEntry `json:"timeline"`
}

// Server wraps the superdense Engine and exposes it as an MCP Server.
type Server struct {
	engine    ports.StatelessEngine
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// Option configures the Server.
type Option func(*Server)

// WithLogger configures the logger. MCP over stdio must never log to stdout.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewServer creates a new MCP Server instance.
func NewServer(engine ports.StatelessEngine, opts ...Option) *Server {
	s := &Server{
		engine:    engine,
		logger:    logging.NewNop(),
		mcpServer: server.NewMCPServer("superdense-mcp", strings.TrimSpace(superdense.Version)),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer exposes the underlying server, e.g. for in-process clients.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

func (s *Server) registerTools() {
	simulateTool := mcp.NewTool("simulate",
		mcp.WithDescription("Run one superdense coding transmission and return the phase timeline and the decoded bits."),
		mcp.WithString("bit1", mcp.Required(), mcp.Description(`First classical bit, "0" or "1"`)),
		mcp.WithString("bit2", mcp.Required(), mcp.Description(`Second classical bit, "0" or "1"`)),
		mcp.WithBoolean("gate_cutting", mcp.Description("Simulate gate cutting: the channel fails 25% of the time")),
		mcp.WithOutputSchema[SimulateResult](),
	)
	s.mcpServer.AddTool(simulateTool, mcp.NewStructuredToolHandler(s.handleSimulate))

	s.mcpServer.AddTool(mcp.NewTool("encoding_table",
		mcp.WithDescription("Get the gate applied for each pair of bits and the resulting Bell state."),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		jsonBytes, err := json.Marshal(domain.Encodings())
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("encode failed: %v", err)), nil
		}
		return mcp.NewToolResultText(string(jsonBytes)), nil
	})

	s.mcpServer.AddTool(mcp.NewTool("phases",
		mcp.WithDescription("Get the four protocol phases in order."),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		jsonBytes, err := json.Marshal(domain.Phases())
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("encode failed: %v", err)), nil
		}
		return mcp.NewToolResultText(string(jsonBytes)), nil
	})
}

func (s *Server) handleSimulate(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (SimulateResult, error) {
	var in SimulateArgs
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &in,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return SimulateResult{}, err
	}
	if err := decoder.Decode(args); err != nil {
		return SimulateResult{}, fmt.Errorf("invalid arguments: %w", err)
	}

	first, err := domain.ParseBit(in.Bit1)
	if err != nil {
		return SimulateResult{}, fmt.Errorf("bit1: %w", err)
	}
	second, err := domain.ParseBit(in.Bit2)
	if err != nil {
		return SimulateResult{}, fmt.Errorf("bit2: %w", err)
	}
	input := domain.Input{
		Bits:        domain.BitPair{First: first, Second: second},
		GateCutting: in.GateCutting,
	}

	final, events, err := runner.Simulate(ctx, s.engine, input, runner.WithLogger(s.logger))
	if errors.Is(err, domain.ErrBitsRequired) {
		s.logger.Warn("MCP Simulate: Input rejected", "bits", input.Bits.String())
		return SimulateResult{}, errors.New(domain.MessageBitsRequired)
	}
	if err != nil {
		return SimulateResult{}, fmt.Errorf("simulate failed: %w", err)
	}

	view := s.engine.Render(final)
	result := SimulateResult{
		OriginalBits: view.OriginalBits,
		Error:        view.Error,
		GateCutting:  input.GateCutting,
		Timeline:     []TimelineEntry{},
	}
	if final.Result != nil {
		result.MeasuredBits = final.Result.String()
	}
	for _, evt := range events {
		info, ok := evt.Phase.Info()
		if !ok {
			continue
		}
		result.Timeline = append(result.Timeline, TimelineEntry{
			Index:       int(info.Phase),
			Title:       info.Title,
			Description: info.Description,
		})
	}
	return result, nil
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(TutorialURI, "How Superdense Coding Works",
		mcp.WithMIMEType("text/markdown"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      TutorialURI,
				MIMEType: "text/markdown",
				Text:     domain.TutorialMarkdown(),
			},
		}, nil
	})
}
