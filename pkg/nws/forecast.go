package nws

import (
	"context"
	"fmt"
	"strings"
)

// maxForecastPeriods caps how many periods Forecast reports.
const maxForecastPeriods = 3

type pointsResponse struct {
	Properties struct {
		Forecast string `json:"forecast"`
	} `json:"properties"`
}

type forecastResponse struct {
	Properties struct {
		Periods []forecastPeriod `json:"periods"`
	} `json:"properties"`
}

type forecastPeriod struct {
	Name             string `json:"name"`
	DetailedForecast string `json:"detailedForecast"`
}

// Forecast returns the forecast for a coordinate, one line per period
// formatted "<name>: <detailedForecast>", at most maxForecastPeriods lines in
// upstream order. Fewer periods produce fewer lines; none produce an empty
// string. The lookup is two-step: the points endpoint maps the coordinate to
// a grid and carries the URL of the actual forecast.
//
// Coordinates are formatted to exactly 4 decimal places; the points endpoint
// rejects higher precision.
func (c *Client) Forecast(ctx context.Context, latitude, longitude float64) (string, error) {
	pointsURL := fmt.Sprintf("%s/points/%.4f,%.4f", c.baseURL, latitude, longitude)

	var points pointsResponse
	if err := c.get(ctx, pointsURL, &points); err != nil {
		return "", err
	}

	forecastURL := points.Properties.Forecast
	if forecastURL == "" {
		return "", fmt.Errorf("nws: points response for %.4f,%.4f has no forecast URL", latitude, longitude)
	}

	var forecast forecastResponse
	if err := c.get(ctx, forecastURL, &forecast); err != nil {
		return "", err
	}

	periods := forecast.Properties.Periods
	if len(periods) > maxForecastPeriods {
		periods = periods[:maxForecastPeriods]
	}

	lines := make([]string, 0, len(periods))
	for _, p := range periods {
		lines = append(lines, p.Name+": "+p.DetailedForecast)
	}

	return strings.Join(lines, "\n"), nil
}
