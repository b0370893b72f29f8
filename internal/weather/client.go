// Package weather provides the current-condition collaborator for the
// worsening projector: a small OpenWeather client plus a TTL cache keyed on
// rounded coordinates.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ConditionSource yields the current weather condition group at a point.
// Labels are lowercase OpenWeather groups: "clear", "clouds", "drizzle",
// "rain", "thunderstorm", "snow", "mist".
type ConditionSource interface {
	CurrentCondition(ctx context.Context, lat, lng float64) (string, error)
}

// Client implements ConditionSource against the OpenWeather current weather
// API.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates an OpenWeather client.
func NewClient(apiKey string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: "https://api.openweathermap.org",
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// currentResponse is the slice of the OpenWeather payload we consume.
type currentResponse struct {
	Weather []struct {
		Main string `json:"main"`
	} `json:"weather"`
}

// CurrentCondition fetches the condition group at the given coordinates,
// lowercased (e.g. "Rain" becomes "rain").
func (c *Client) CurrentCondition(ctx context.Context, lat, lng float64) (string, error) {
	params := url.Values{}
	params.Set("lat", fmt.Sprintf("%.4f", lat))
	params.Set("lon", fmt.Sprintf("%.4f", lng))
	params.Set("appid", c.apiKey)

	u := c.baseURL + "/data/2.5/weather?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("weather request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("weather API error: status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var cur currentResponse
	if err := json.NewDecoder(resp.Body).Decode(&cur); err != nil {
		return "", fmt.Errorf("decode weather response: %w", err)
	}
	if len(cur.Weather) == 0 {
		return "", fmt.Errorf("weather response carried no conditions")
	}

	return strings.ToLower(cur.Weather[0].Main), nil
}
