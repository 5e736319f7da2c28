// Package integration handles external service interactions
package integration

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/abelzeko/fishing-bot/internal/entities"
)

const (
	defaultWeatherAPIURL  = "https://api.weatherapi.com/v1"
	defaultWeatherTimeout = 10 * time.Second
)

var (
	// ErrFetchFailed covers network errors, timeouts and non-200 responses
	ErrFetchFailed = errors.New("weather fetch failed")
	// ErrMalformedResponse means the payload lacked an expected field or had the wrong type
	ErrMalformedResponse = errors.New("malformed weather response")
)

// currentResponse mirrors the part of weatherapi.com's current.json we use.
// Pointers let us tell a missing field from a zero value.
type currentResponse struct {
	Current *struct {
		PressureMb  *float64 `json:"pressure_mb"`
		WindKph     *float64 `json:"wind_kph"`
		WindDir     *string  `json:"wind_dir"`
		TempC       *float64 `json:"temp_c"`
		Humidity    *int     `json:"humidity"`
		LastUpdated *string  `json:"last_updated"`
	} `json:"current"`
}

// WeatherAPIClient fetches current conditions from weatherapi.com
type WeatherAPIClient struct {
	baseURL    string
	apiKey     string
	lang       string
	httpClient *http.Client
}

// NewWeatherAPIClient creates a new weather provider client
func NewWeatherAPIClient(baseURL, apiKey, lang string, timeout time.Duration) *WeatherAPIClient {
	if baseURL == "" {
		baseURL = defaultWeatherAPIURL
	}
	if timeout <= 0 {
		timeout = defaultWeatherTimeout
	}
	return &WeatherAPIClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		lang:    lang,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// CurrentObservation retrieves the current weather at the given coordinates
func (c *WeatherAPIClient) CurrentObservation(ctx context.Context, lat, lon float64) (*entities.WeatherObservation, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.buildURL(lat, lon), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrFetchFailed, err)
	}
	req.Header.Set("Accept", "application/json")

	log.Printf("Requesting current weather for %.3f,%.3f", lat, lon)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, redact(err, c.apiKey))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%w: unexpected status code: %d %s: %s",
			ErrFetchFailed, resp.StatusCode, http.StatusText(resp.StatusCode), strings.TrimSpace(string(body)))
	}

	var payload currentResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrMalformedResponse, err)
	}

	return payload.observation()
}

func (c *WeatherAPIClient) buildURL(lat, lon float64) string {
	q := url.Values{}
	q.Set("key", c.apiKey)
	q.Set("q", strconv.FormatFloat(lat, 'f', -1, 64)+","+strconv.FormatFloat(lon, 'f', -1, 64))
	if c.lang != "" {
		q.Set("lang", c.lang)
	}
	return c.baseURL + "/current.json?" + q.Encode()
}

func (r currentResponse) observation() (*entities.WeatherObservation, error) {
	cur := r.Current
	if cur == nil {
		return nil, fmt.Errorf("%w: missing field current", ErrMalformedResponse)
	}

	var missing []string
	if cur.PressureMb == nil {
		missing = append(missing, "pressure_mb")
	}
	if cur.WindKph == nil {
		missing = append(missing, "wind_kph")
	}
	if cur.WindDir == nil {
		missing = append(missing, "wind_dir")
	}
	if cur.TempC == nil {
		missing = append(missing, "temp_c")
	}
	if cur.Humidity == nil {
		missing = append(missing, "humidity")
	}
	if cur.LastUpdated == nil {
		missing = append(missing, "last_updated")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing fields %s", ErrMalformedResponse, strings.Join(missing, ", "))
	}

	if *cur.WindKph < 0 {
		return nil, fmt.Errorf("%w: negative wind_kph %v", ErrMalformedResponse, *cur.WindKph)
	}

	return &entities.WeatherObservation{
		PressureMb:  *cur.PressureMb,
		WindKph:     *cur.WindKph,
		WindDir:     *cur.WindDir,
		TempC:       *cur.TempC,
		Humidity:    *cur.Humidity,
		LastUpdated: *cur.LastUpdated,
	}, nil
}

// redact keeps the API key out of error messages, since *url.Error embeds the request URL
func redact(err error, secret string) string {
	msg := err.Error()
	if secret == "" {
		return msg
	}
	return strings.ReplaceAll(msg, url.QueryEscape(secret), "REDACTED")
}
