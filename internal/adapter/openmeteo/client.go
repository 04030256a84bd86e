package openmeteo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/hydtwin/citizen-report-etl/internal/domain"
	"github.com/hydtwin/citizen-report-etl/internal/observability"
	"github.com/jonboulle/clockwork"
)

// hourlyTimeLayout is Open-Meteo's hourly timestamp format (no zone suffix;
// the request pins timezone=UTC).
const hourlyTimeLayout = "2006-01-02T15:04"

// Client implements domain.RainfallForecaster using the Open-Meteo forecast
// API. The API is keyless and rate-limited by IP, so callers should wrap it
// in a CachedForecaster.
type Client struct {
	httpClient *http.Client
	baseURL    string
	metrics    *observability.Metrics
	logger     *slog.Logger
	clock      clockwork.Clock
}

// NewClient creates an Open-Meteo forecast client.
func NewClient(timeout time.Duration, metrics *observability.Metrics, logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: "https://api.open-meteo.com/v1/forecast",
		metrics: metrics,
		logger:  logger,
		clock:   clockwork.NewRealClock(),
	}
}

// ForecastRainfall fetches the hourly rain forecast at a coordinate and sums
// the next `hours` hours starting from the current hour.
func (c *Client) ForecastRainfall(ctx context.Context, lat, lon float64, hours int) (domain.RainfallOutlook, error) {
	params := url.Values{
		"latitude":      {strconv.FormatFloat(lat, 'f', 4, 64)},
		"longitude":     {strconv.FormatFloat(lon, 'f', 4, 64)},
		"hourly":        {"rain"},
		"forecast_days": {"3"},
		"timezone":      {"UTC"},
	}

	start := time.Now()
	resp, err := c.doRequest(ctx, c.baseURL+"?"+params.Encode())
	c.metrics.ForecastAPIDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		c.metrics.ForecastRequests.WithLabelValues("error").Inc()
		return domain.RainfallOutlook{}, err
	}

	total, err := sumUpcomingRain(resp, c.clock.Now(), hours)
	if err != nil {
		c.metrics.ForecastRequests.WithLabelValues("error").Inc()
		return domain.RainfallOutlook{}, err
	}

	c.metrics.ForecastRequests.WithLabelValues("success").Inc()
	return domain.RainfallOutlook{TotalMM: total, Hours: hours}, nil
}

func (c *Client) doRequest(ctx context.Context, fullURL string) (response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return response{}, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return response{}, fmt.Errorf("forecast request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return response{}, fmt.Errorf("open-meteo API error: status %d: %s", resp.StatusCode, body)
	}

	var omResp response
	if err := json.NewDecoder(resp.Body).Decode(&omResp); err != nil {
		return response{}, fmt.Errorf("decode response: %w", err)
	}
	return omResp, nil
}

// sumUpcomingRain adds up the rain values for the `hours` hourly slots at or
// after `now` truncated to the hour. Slots already in the past are skipped;
// the forecast horizon covers 3 days so the window always fits.
func sumUpcomingRain(resp response, now time.Time, hours int) (float64, error) {
	if len(resp.Hourly.Time) == 0 {
		return 0, fmt.Errorf("open-meteo response has no hourly data")
	}
	if len(resp.Hourly.Time) != len(resp.Hourly.Rain) {
		return 0, fmt.Errorf("open-meteo response has %d timestamps but %d rain values",
			len(resp.Hourly.Time), len(resp.Hourly.Rain))
	}

	windowStart := now.UTC().Truncate(time.Hour)

	var total float64
	counted := 0
	for i, ts := range resp.Hourly.Time {
		slot, err := time.Parse(hourlyTimeLayout, ts)
		if err != nil {
			return 0, fmt.Errorf("parse hourly timestamp %q: %w", ts, err)
		}
		if slot.Before(windowStart) {
			continue
		}
		total += resp.Hourly.Rain[i]
		counted++
		if counted == hours {
			break
		}
	}

	if counted == 0 {
		return 0, fmt.Errorf("open-meteo response has no slots at or after %s", windowStart.Format(time.RFC3339))
	}
	return total, nil
}

// Open-Meteo API response types.

type response struct {
	Hourly hourly `json:"hourly"`
}

type hourly struct {
	Time []string  `json:"time"`
	Rain []float64 `json:"rain"`
}
