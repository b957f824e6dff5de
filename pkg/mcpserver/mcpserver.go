// Package mcpserver serves a toolbox over the MCP protocol using the
// official MCP Go SDK. Dispatch goes through toolbox.Call, so every call —
// success or failure — yields a single text content item and the session
// never sees a protocol-level tool error.
package mcpserver

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"slices"

	"github.com/germanamz/skycast/pkg/toolbox"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// MCPServer serves tools over the MCP protocol.
type MCPServer struct {
	server *mcp.Server
	logger *slog.Logger
	order  []string
}

// New creates a new MCPServer with the given name and version. A nil logger
// disables call logging.
func New(name, version string, logger *slog.Logger) *MCPServer {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	server := mcp.NewServer(&mcp.Implementation{
		Name:    name,
		Version: version,
	}, nil)

	s := &MCPServer{server: server, logger: logger}
	s.server.AddReceivingMiddleware(s.listOrderMiddleware)

	return s
}

// Register adds every tool in tb to the server, preserving tb's order in
// listings.
func (s *MCPServer) Register(tb *toolbox.ToolBox) {
	for _, t := range tb.Tools() {
		s.order = append(s.order, t.Name)
		s.server.AddTool(toSDKTool(t), s.callHandler(tb, t.Name))
	}
}

// listOrderMiddleware restores registration order in tools/list results. The
// SDK sorts tools by name, but the catalog is an ordered sequence.
func (s *MCPServer) listOrderMiddleware(next mcp.MethodHandler) mcp.MethodHandler {
	return func(ctx context.Context, method string, req mcp.Request) (mcp.Result, error) {
		res, err := next(ctx, method, req)
		if err != nil || method != "tools/list" {
			return res, err
		}

		if list, ok := res.(*mcp.ListToolsResult); ok {
			rank := make(map[string]int, len(s.order))
			for i, name := range s.order {
				rank[name] = i
			}

			slices.SortStableFunc(list.Tools, func(a, b *mcp.Tool) int {
				return rank[a.Name] - rank[b.Name]
			})
		}

		return res, err
	}
}

// Serve starts serving MCP requests. It reads requests from in and writes
// responses to out. It blocks until ctx is cancelled or the transport closes.
func (s *MCPServer) Serve(ctx context.Context, in io.Reader, out io.Writer) error {
	transport := &mcp.IOTransport{
		Reader: io.NopCloser(in),
		Writer: nopWriteCloser{out},
	}

	return s.run(ctx, transport)
}

// run starts the server with the given transport. Exported via Serve for
// production use; called directly by tests with InMemoryTransport.
func (s *MCPServer) run(ctx context.Context, transport mcp.Transport) error {
	return s.server.Run(ctx, transport)
}

// toSDKTool converts a toolbox.Tool to an SDK *mcp.Tool.
func toSDKTool(t toolbox.Tool) *mcp.Tool {
	return &mcp.Tool{
		Name:        t.Name,
		Description: t.Description,
		InputSchema: t.InputSchema,
	}
}

// callHandler returns an SDK ToolHandler that routes the call through the
// toolbox dispatcher. The dispatcher folds failures into the result text, so
// the handler always reports a plain text result.
func (s *MCPServer) callHandler(tb *toolbox.ToolBox, name string) mcp.ToolHandler {
	return func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := req.Params.Arguments
		if args == nil {
			args = json.RawMessage("{}")
		}

		s.logger.DebugContext(ctx, "tool call", "tool", name)
		result := tb.Call(ctx, name, args)

		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: result.Text}},
		}, nil
	}
}

// nopWriteCloser wraps an io.Writer as an io.WriteCloser with a no-op Close.
type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }
