package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/jjenkins/legislators/internal/model"
)

// WeatherClient fetches current conditions from the weather collaborator.
// Failures surface as a single ErrUpstreamUnavailable; the client never
// retries and never caches.
type WeatherClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewWeatherClient creates a weather client. The API key, base URL, and
// timeout are injected at construction so behavior is a pure function of
// inputs.
func NewWeatherClient(apiKey, baseURL string, timeout time.Duration, logger *slog.Logger) *WeatherClient {
	return &WeatherClient{
		apiKey:  apiKey,
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// Configured reports whether an API key was provided.
func (c *WeatherClient) Configured() bool {
	return c.apiKey != ""
}

// weatherResponse mirrors the fields this service reads from the
// collaborator's payload.
type weatherResponse struct {
	Main *struct {
		Temp     float64 `json:"temp"`
		Humidity int     `json:"humidity"`
	} `json:"main"`
	Weather []struct {
		Description string `json:"description"`
	} `json:"weather"`
	Wind *struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
}

// Current returns the current conditions for a capital city.
func (c *WeatherClient) Current(ctx context.Context, city, state string) (*model.WeatherReport, error) {
	params := url.Values{
		"q":     {fmt.Sprintf("%s,%s,US", city, state)},
		"appid": {c.apiKey},
		"units": {"imperial"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/weather?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("weather request failed", "city", city, "state", state, "error", err)
		return nil, fmt.Errorf("weather request: %v: %w", err, model.ErrUpstreamUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("weather API error", "city", city, "state", state, "status", resp.StatusCode)
		return nil, fmt.Errorf("weather API status %d: %w", resp.StatusCode, model.ErrUpstreamUnavailable)
	}

	var body weatherResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode weather response: %v: %w", err, model.ErrUpstreamUnavailable)
	}
	if body.Main == nil || body.Wind == nil || len(body.Weather) == 0 {
		return nil, fmt.Errorf("unexpected weather response format: %w", model.ErrUpstreamUnavailable)
	}

	return &model.WeatherReport{
		Temperature: body.Main.Temp,
		Description: body.Weather[0].Description,
		Humidity:    body.Main.Humidity,
		WindSpeed:   body.Wind.Speed,
	}, nil
}
