package nws

import (
	"context"
	"fmt"
	"net/url"
	"strings"
)

// maxAlerts caps how many active alerts Alerts reports.
const maxAlerts = 5

type alertsResponse struct {
	Features []alertFeature `json:"features"`
}

type alertFeature struct {
	Properties struct {
		Event    *string `json:"event"`
		Headline *string `json:"headline"`
	} `json:"properties"`
}

// Alerts returns the active alerts for a US state, one bullet line per
// alert, at most maxAlerts lines in upstream order. No active alerts is a
// normal outcome, reported as "No active alerts for <CODE>.".
//
// The state code is uppercased but otherwise passed through unchecked;
// invalid codes surface as upstream rejections.
func (c *Client) Alerts(ctx context.Context, state string) (string, error) {
	state = strings.ToUpper(state)
	alertsURL := fmt.Sprintf("%s/alerts/active?area=%s", c.baseURL, url.QueryEscape(state))

	var alerts alertsResponse
	if err := c.get(ctx, alertsURL, &alerts); err != nil {
		return "", err
	}

	if len(alerts.Features) == 0 {
		return fmt.Sprintf("No active alerts for %s.", state), nil
	}

	features := alerts.Features
	if len(features) > maxAlerts {
		features = features[:maxAlerts]
	}

	lines := make([]string, 0, len(features))
	for i, f := range features {
		if f.Properties.Event == nil || f.Properties.Headline == nil {
			return "", fmt.Errorf("nws: alert feature %d is missing event or headline", i)
		}

		lines = append(lines, fmt.Sprintf("• %s: %s", *f.Properties.Event, *f.Properties.Headline))
	}

	return strings.Join(lines, "\n"), nil
}
