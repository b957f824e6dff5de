// Package toolbox defines executable tools and the dispatcher that routes
// calls to them. Every dispatched call produces a ToolResult: handler
// failures are folded into the result text rather than surfaced to the
// caller, so nothing past the dispatcher ever sees a raw error.
package toolbox

import (
	"context"
	"encoding/json"
	"errors"
)

// Handler executes a tool with the given JSON input and returns a text result.
type Handler func(ctx context.Context, input json.RawMessage) (string, error)

// Tool represents an executable tool with a name, description, JSON Schema,
// and handler.
type Tool struct {
	Name        string
	Description string
	InputSchema json.RawMessage
	Handler     Handler
}

// ToolResult is the envelope produced for every dispatched call, success or
// failure. Callers distinguish outcomes only by the text: "API Error: "
// prefixes upstream transport failures, "Error: " everything else.
type ToolResult struct {
	Text string
}

// TransportError marks errors caused by the upstream service or the network
// path to it, as opposed to bad arguments or unexpected response shapes.
type TransportError interface {
	error
	TransportError()
}

// ToolBox holds an ordered collection of tools and dispatches calls to them.
// Registration order is preserved so catalog listings are stable.
type ToolBox struct {
	tools []Tool
	index map[string]int
}

// New creates a new ToolBox ready for use.
func New() *ToolBox {
	return &ToolBox{index: make(map[string]int)}
}

// Register adds one or more tools to the ToolBox. If a tool with the same
// name already exists, it is replaced in place and keeps its position.
func (tb *ToolBox) Register(tools ...Tool) {
	for _, t := range tools {
		if i, ok := tb.index[t.Name]; ok {
			tb.tools[i] = t
			continue
		}

		tb.index[t.Name] = len(tb.tools)
		tb.tools = append(tb.tools, t)
	}
}

// Get returns a tool by name and a boolean indicating whether it was found.
func (tb *ToolBox) Get(name string) (Tool, bool) {
	i, ok := tb.index[name]
	if !ok {
		return Tool{}, false
	}

	return tb.tools[i], true
}

// Tools returns all registered tools in registration order.
func (tb *ToolBox) Tools() []Tool {
	result := make([]Tool, len(tb.tools))
	copy(result, tb.tools)

	return result
}

// Call dispatches a tool call and returns its ToolResult. Unknown tool names
// and handler errors become error text in the result; Call itself never
// fails. Nil or empty arguments are treated as an empty object.
func (tb *ToolBox) Call(ctx context.Context, name string, args json.RawMessage) ToolResult {
	t, ok := tb.Get(name)
	if !ok {
		return ToolResult{Text: "Error: Unknown tool: " + name}
	}

	if len(args) == 0 {
		args = json.RawMessage("{}")
	}

	text, err := t.Handler(ctx, args)
	if err != nil {
		return ToolResult{Text: FormatError(err)}
	}

	return ToolResult{Text: text}
}

// FormatError renders err as envelope text, choosing the prefix by whether
// the error originated in the upstream transport.
func FormatError(err error) string {
	var te TransportError
	if errors.As(err, &te) {
		return "API Error: " + err.Error()
	}

	return "Error: " + err.Error()
}
