package toolbox

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func echoHandler(_ context.Context, input json.RawMessage) (string, error) {
	return string(input), nil
}

func newTestTool(name string) Tool {
	return Tool{
		Name:        name,
		Description: "Test tool: " + name,
		InputSchema: json.RawMessage(`{"type":"object"}`),
		Handler:     echoHandler,
	}
}

// upstreamError satisfies TransportError for dispatcher classification tests.
type upstreamError struct{ msg string }

func (e *upstreamError) Error() string   { return e.msg }
func (e *upstreamError) TransportError() {}

func TestRegisterAndGet(t *testing.T) {
	tb := New()
	tb.Register(newTestTool("a"), newTestTool("b"))

	got, ok := tb.Get("a")
	require.True(t, ok)
	assert.Equal(t, "a", got.Name)

	_, ok = tb.Get("missing")
	assert.False(t, ok)
}

func TestToolsPreservesRegistrationOrder(t *testing.T) {
	tb := New()
	tb.Register(newTestTool("c"), newTestTool("a"), newTestTool("b"))

	names := make([]string, 0, 3)
	for _, tool := range tb.Tools() {
		names = append(names, tool.Name)
	}

	assert.Equal(t, []string{"c", "a", "b"}, names)
}

func TestRegisterReplacesInPlace(t *testing.T) {
	tb := New()
	tb.Register(newTestTool("a"), newTestTool("b"))

	replacement := newTestTool("a")
	replacement.Description = "replaced"
	tb.Register(replacement)

	tools := tb.Tools()
	require.Len(t, tools, 2)
	assert.Equal(t, "a", tools[0].Name)
	assert.Equal(t, "replaced", tools[0].Description)
}

func TestToolsIdempotent(t *testing.T) {
	tb := New()
	tb.Register(newTestTool("a"), newTestTool("b"))

	first := tb.Tools()
	second := tb.Tools()

	require.Len(t, second, len(first))
	for i := range first {
		assert.Equal(t, first[i].Name, second[i].Name)
		assert.Equal(t, first[i].Description, second[i].Description)
		assert.JSONEq(t, string(first[i].InputSchema), string(second[i].InputSchema))
	}
}

func TestCallSuccess(t *testing.T) {
	tb := New()
	tb.Register(newTestTool("echo"))

	result := tb.Call(context.Background(), "echo", json.RawMessage(`{"msg":"hi"}`))
	assert.JSONEq(t, `{"msg":"hi"}`, result.Text)
}

func TestCallUnknownTool(t *testing.T) {
	tb := New()
	tb.Register(newTestTool("echo"))

	result := tb.Call(context.Background(), "get-frobnicate", json.RawMessage(`{}`))
	assert.Equal(t, "Error: Unknown tool: get-frobnicate", result.Text)
}

func TestCallNilArguments(t *testing.T) {
	tb := New()
	tb.Register(newTestTool("echo"))

	result := tb.Call(context.Background(), "echo", nil)
	assert.Equal(t, "{}", result.Text)
}

func TestCallHandlerError(t *testing.T) {
	tb := New()
	tb.Register(Tool{
		Name:        "fail",
		InputSchema: json.RawMessage(`{"type":"object"}`),
		Handler: func(context.Context, json.RawMessage) (string, error) {
			return "", errors.New("latitude is required")
		},
	})

	result := tb.Call(context.Background(), "fail", nil)
	assert.Equal(t, "Error: latitude is required", result.Text)
}

func TestCallTransportError(t *testing.T) {
	tb := New()
	tb.Register(Tool{
		Name:        "fail",
		InputSchema: json.RawMessage(`{"type":"object"}`),
		Handler: func(context.Context, json.RawMessage) (string, error) {
			return "", &upstreamError{msg: "GET https://api.weather.gov/points/1,2: unexpected status 503"}
		},
	})

	result := tb.Call(context.Background(), "fail", nil)
	assert.Equal(t, "API Error: GET https://api.weather.gov/points/1,2: unexpected status 503", result.Text)
}

func TestFormatError(t *testing.T) {
	assert.Equal(t, "Error: boom", FormatError(errors.New("boom")))
	assert.Equal(t, "API Error: down", FormatError(&upstreamError{msg: "down"}))

	// Wrapped transport errors keep the transport prefix.
	wrapped := fmt.Errorf("lookup failed: %w", &upstreamError{msg: "down"})
	assert.Equal(t, "API Error: lookup failed: down", FormatError(wrapped))
}
