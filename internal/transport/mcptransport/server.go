// Package mcptransport exposes the palindrome service as MCP tools over stdio.
package mcptransport

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/awmpietro/palindrome-trace/internal/app"
	"github.com/awmpietro/palindrome-trace/internal/logging"
	"github.com/awmpietro/palindrome-trace/internal/palindrome"
	"github.com/awmpietro/palindrome-trace/internal/tracegraph"
	"github.com/awmpietro/palindrome-trace/internal/transport/dto"
)

// Server wraps an MCP server whose tool handlers call the palindrome service.
type Server struct {
	svc       app.PalindromeService
	v         *dto.Validator
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

func NewServer(svc app.PalindromeService, version string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}
	s := &Server{svc: svc, v: dto.MustValidator(), logger: logger}

	mcpSrv := server.NewMCPServer(
		"palindrome-trace",
		version,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
		server.WithInstructions("Step-by-step traces of longest palindromic substring algorithms. Use palindrome.visualize for a full trace, palindrome.replay to inspect the state at one step, palindrome.benchmark to time every engine and palindrome.algorithms to list them."),
	)
	mcpSrv.AddTools(s.tools()...)
	s.mcpServer = mcpSrv
	return s
}

// Serve runs the stdio transport until ctx is cancelled or stdin closes.
func (s *Server) Serve(ctx context.Context) error {
	stdio := server.NewStdioServer(s.mcpServer)
	return stdio.Listen(ctx, os.Stdin, os.Stdout)
}

func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

func (s *Server) tools() []server.ServerTool {
	return []server.ServerTool{
		{Tool: visualizeTool(), Handler: s.handleVisualize},
		{Tool: replayTool(), Handler: s.handleReplay},
		{Tool: benchmarkTool(), Handler: s.handleBenchmark},
		{Tool: algorithmsTool(), Handler: s.handleAlgorithms},
	}
}

func algorithmNames() []string {
	names := make([]string, 0, 4)
	for _, a := range palindrome.Algorithms() {
		names = append(names, string(a))
	}
	return names
}

func visualizeTool() mcp.Tool {
	return mcp.NewTool("palindrome.visualize",
		mcp.WithDescription("Trace one longest palindromic substring algorithm step by step"),
		mcp.WithString("text", mcp.Required(), mcp.Description("Input text")),
		mcp.WithString("algorithm", mcp.Required(), mcp.Enum(algorithmNames()...), mcp.Description("Algorithm to trace")),
		mcp.WithString("locale", mcp.Enum("en", "vi"), mcp.Description("Message language (default: server locale)")),
		mcp.WithString("format", mcp.Enum("steps", "full", "dot"), mcp.Description("Output shape (default: steps)")),
	)
}

func replayTool() mcp.Tool {
	return mcp.NewTool("palindrome.replay",
		mcp.WithDescription("Reconstruct the visualization state after a given trace step"),
		mcp.WithString("text", mcp.Required(), mcp.Description("Input text")),
		mcp.WithString("algorithm", mcp.Required(), mcp.Enum(algorithmNames()...), mcp.Description("Algorithm to trace")),
		mcp.WithNumber("step", mcp.Required(), mcp.Description("Zero-based step index")),
		mcp.WithString("locale", mcp.Enum("en", "vi"), mcp.Description("Message language (default: server locale)")),
	)
}

func benchmarkTool() mcp.Tool {
	return mcp.NewTool("palindrome.benchmark",
		mcp.WithDescription("Time every algorithm on the same input; slow engines are skipped on long inputs"),
		mcp.WithString("text", mcp.Required(), mcp.Description("Input text")),
	)
}

func algorithmsTool() mcp.Tool {
	return mcp.NewTool("palindrome.algorithms",
		mcp.WithDescription("List the available algorithms with their complexity"),
	)
}

func (s *Server) handleVisualize(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ctx, _ = logging.NewRequestID(ctx)
	text, err := req.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError("text is required"), nil
	}
	in := dto.VisualizeRequest{
		Text:      text,
		Algorithm: req.GetString("algorithm", ""),
		Locale:    req.GetString("locale", ""),
		Format:    req.GetString("format", ""),
	}
	if err := s.v.ValidateVisualize(in); err != nil {
		return s.toolError(ctx, err), nil
	}

	v, err := s.svc.Visualize(ctx, in.Text, in.Algorithm, in.LocaleOrDefault())
	if err != nil {
		return s.toolError(ctx, err), nil
	}
	switch in.Format {
	case dto.FormatDOT:
		dot, err := tracegraph.Export(v.Trace)
		if err != nil {
			return s.toolError(ctx, err), nil
		}
		return mcp.NewToolResultText(dot), nil
	case dto.FormatFull:
		return marshalResult(dto.NewVisualizeResponse(v))
	default:
		return marshalResult(v.Trace.Wire())
	}
}

func (s *Server) handleReplay(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ctx, _ = logging.NewRequestID(ctx)
	text, err := req.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError("text is required"), nil
	}
	in := dto.ReplayRequest{
		Text:      text,
		Algorithm: req.GetString("algorithm", ""),
		Locale:    req.GetString("locale", ""),
		Step:      req.GetInt("step", -1),
	}
	if err := s.v.ValidateReplay(in); err != nil {
		return s.toolError(ctx, err), nil
	}

	st, err := s.svc.Replay(ctx, in.Text, in.Algorithm, in.LocaleOrDefault(), in.Step)
	if err != nil {
		return s.toolError(ctx, err), nil
	}
	return marshalResult(dto.NewReplayResponse(st))
}

func (s *Server) handleBenchmark(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ctx, _ = logging.NewRequestID(ctx)
	text, err := req.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError("text is required"), nil
	}
	res, err := s.svc.Benchmark(ctx, text)
	if err != nil {
		return s.toolError(ctx, err), nil
	}
	return marshalResult(dto.BenchmarkBody(res))
}

func (s *Server) handleAlgorithms(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return marshalResult(s.svc.Algorithms())
}

func (s *Server) toolError(ctx context.Context, err error) *mcp.CallToolResult {
	if dto.Status(err) >= 500 {
		s.logger.ErrorContext(ctx, "tool call failed", slog.String("error", err.Error()))
	}
	return mcp.NewToolResultError(fmt.Sprintf("%s: %v", dto.Message(err), err))
}

func marshalResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal result: %v", err)), nil
	}
	return mcp.NewToolResultJSON(json.RawMessage(data))
}
