// Package weathertools defines the tools served over MCP: get-forecast and
// get-alerts, both backed by the NWS API.
package weathertools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/germanamz/skycast/pkg/nws"
	"github.com/germanamz/skycast/pkg/toolbox"
)

// Service provides the weather tools backed by an NWS client.
type Service struct {
	client *nws.Client
}

// New creates a Service using the given NWS client.
func New(client *nws.Client) *Service {
	return &Service{client: client}
}

// Tools returns a ToolBox containing the weather tools, in catalog order.
func (s *Service) Tools() *toolbox.ToolBox {
	tb := toolbox.New()
	tb.Register(s.forecastTool(), s.alertsTool())

	return tb
}

// --- get-forecast ---

// Pointer fields distinguish a missing argument from a zero value.
type forecastInput struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

func (s *Service) forecastTool() toolbox.Tool {
	return toolbox.Tool{
		Name:        "get-forecast",
		Description: "Get weather forecast for a location",
		InputSchema: json.RawMessage(`{"type":"object","properties":{"latitude":{"type":"number"},"longitude":{"type":"number"}},"required":["latitude","longitude"]}`),
		Handler:     s.handleForecast,
	}
}

func (s *Service) handleForecast(ctx context.Context, input json.RawMessage) (string, error) {
	var in forecastInput
	if err := json.Unmarshal(input, &in); err != nil {
		return "", fmt.Errorf("invalid arguments: %w", err)
	}

	if in.Latitude == nil {
		return "", errors.New("latitude is required")
	}

	if in.Longitude == nil {
		return "", errors.New("longitude is required")
	}

	return s.client.Forecast(ctx, *in.Latitude, *in.Longitude)
}

// --- get-alerts ---

type alertsInput struct {
	State *string `json:"state"`
}

func (s *Service) alertsTool() toolbox.Tool {
	return toolbox.Tool{
		Name:        "get-alerts",
		Description: "Get weather alerts for a state",
		InputSchema: json.RawMessage(`{"type":"object","properties":{"state":{"type":"string","description":"Two-letter state code (e.g. CA, NY)"}},"required":["state"]}`),
		Handler:     s.handleAlerts,
	}
}

func (s *Service) handleAlerts(ctx context.Context, input json.RawMessage) (string, error) {
	var in alertsInput
	if err := json.Unmarshal(input, &in); err != nil {
		return "", fmt.Errorf("invalid arguments: %w", err)
	}

	if in.State == nil {
		return "", errors.New("state is required")
	}

	return s.client.Alerts(ctx, *in.State)
}
