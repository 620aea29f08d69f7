package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/sandevgo/shopdesk/internal/core"
	"github.com/sandevgo/shopdesk/pkg/log"
)

type Invoker interface {
	Invoke(ctx context.Context, name, args string) (string, error)
}

// Server exposes the support actions as MCP tools, so other agents can
// register callbacks and check orders without the hosted assistant.
type Server struct {
	mcp *server.MCPServer
	in  io.Reader
	out io.Writer
}

func NewServer(invoker Invoker, tools []core.Tool, in io.Reader, out io.Writer) *Server {
	s := server.NewMCPServer(core.DeskName, core.DeskVersion,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)

	for _, t := range tools {
		tool := mcp.NewToolWithRawSchema(t.Function.Name, t.Function.Description, t.Function.Parameters)
		s.AddTool(tool, handler(invoker, t.Function.Name))
	}

	return &Server{mcp: s, in: in, out: out}
}

func (s *Server) MCP() *server.MCPServer {
	return s.mcp
}

func (s *Server) Start(ctx context.Context) error {
	log.FromCtx(ctx).Info().Msg("serving support tools over stdio")
	return server.NewStdioServer(s.mcp).Listen(ctx, s.in, s.out)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return nil
}

func handler(invoker Invoker, name string) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, err := json.Marshal(req.GetArguments())
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}

		out, err := invoker.Invoke(ctx, name, string(args))
		if err != nil {
			log.FromCtx(ctx).Warn().Err(err).Str("tool", name).Msg("mcp tool call failed")
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(out), nil
	}
}
