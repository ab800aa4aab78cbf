package aviationweather

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/couchcryptid/metarflow-service/internal/observability"
)

// DefaultBaseURL is the aviationweather.gov data API root.
const DefaultBaseURL = "https://aviationweather.gov/api/data"

// ErrNoReport is returned when the API answers but has no report for the station.
var ErrNoReport = errors.New("no METAR data found")

// StatusError reports a non-200 response from the API.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("failed to fetch data: status %d", e.StatusCode)
	}
	return fmt.Sprintf("failed to fetch data: status %d: %s", e.StatusCode, e.Body)
}

// Client fetches raw METAR text from the aviationweather.gov data API.
// It implements domain.ReportFetcher.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	maxRetries  int
	backoffBase time.Duration
	metrics     *observability.Metrics
	logger      *slog.Logger
}

// NewClient creates a fetch client. maxRetries is the number of additional
// attempts after the first one fails with a transport error or a 5xx status.
func NewClient(baseURL string, timeout time.Duration, maxRetries int, metrics *observability.Metrics, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL:     strings.TrimRight(baseURL, "/"),
		maxRetries:  maxRetries,
		backoffBase: 500 * time.Millisecond,
		metrics:     metrics,
		logger:      logger,
	}
}

// FetchMETAR returns the latest raw report for a station. When the API returns
// several lines, the first non-empty one is used.
func (c *Client) FetchMETAR(ctx context.Context, station string) (string, error) {
	params := url.Values{
		"ids":    {station},
		"format": {"raw"},
	}
	fullURL := c.baseURL + "/metar?" + params.Encode()

	start := time.Now()
	body, err := c.fetchWithRetry(ctx, fullURL, station)
	c.metrics.FetchDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		c.metrics.FetchRequests.WithLabelValues("error").Inc()
		return "", err
	}

	report := firstLine(body)
	if report == "" {
		c.metrics.FetchRequests.WithLabelValues("empty").Inc()
		return "", fmt.Errorf("%w for airport %s", ErrNoReport, station)
	}

	c.metrics.FetchRequests.WithLabelValues("success").Inc()
	return report, nil
}

func (c *Client) fetchWithRetry(ctx context.Context, fullURL, station string) (string, error) {
	var lastErr error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			backoff := c.backoffBase * time.Duration(1<<uint(attempt-1))
			c.logger.Info("retrying metar fetch", "station", station, "attempt", attempt, "backoff", backoff)
			if !sleepWithContext(ctx, backoff) {
				return "", ctx.Err()
			}
		}

		body, err := c.doRequest(ctx, fullURL)
		if err == nil {
			return body, nil
		}
		lastErr = err

		if !retryable(ctx, err) {
			return "", err
		}
		c.logger.Warn("metar fetch failed, may retry",
			"station", station,
			"error", err,
			"attempt", attempt+1,
			"max_attempts", c.maxRetries+1,
		)
	}

	c.logger.Error("all metar fetch attempts failed", "station", station, "error", lastErr)
	return "", lastErr
}

func (c *Client) doRequest(ctx context.Context, fullURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("metar request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	return string(body), nil
}

// retryable reports whether a failed attempt is worth repeating: transport
// errors and server-side statuses are, client errors and cancellation are not.
func retryable(ctx context.Context, err error) bool {
	if ctx.Err() != nil {
		return false
	}
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode >= 500
	}
	return true
}

func firstLine(body string) string {
	for _, line := range strings.Split(body, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			return line
		}
	}
	return ""
}

func sleepWithContext(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
