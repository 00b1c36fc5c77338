package marketdata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"market_dashboard/internal/models"
)

const (
	dashboardPath  = "/api/dashboard"
	jobNameParam   = "job_name"
	requestIDHdr   = "X-Request-ID"
	maxErrorBody   = 512
	defaultTimeout = 30 * time.Second
)

// Client is an HTTP client for the job-market statistics API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new statistics API client. The per-load deadline is
// owned by the caller's context; timeout only bounds a single round trip.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// DashboardURL builds the request URL; a blank filter requests the unfiltered dataset.
func (c *Client) DashboardURL(jobName string) (string, error) {
	u, err := url.Parse(c.baseURL + dashboardPath)
	if err != nil {
		return "", fmt.Errorf("failed to parse URL: %w", err)
	}
	if jobName = strings.TrimSpace(jobName); jobName != "" {
		q := u.Query()
		q.Set(jobNameParam, jobName)
		u.RawQuery = q.Encode()
	}
	return u.String(), nil
}

// FetchDashboard performs exactly one GET against the dashboard endpoint.
func (c *Client) FetchDashboard(ctx context.Context, jobName string) (*models.DashboardData, error) {
	u, err := c.DashboardURL(jobName)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, &NetworkError{Err: fmt.Errorf("failed to create request: %w", err)}
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set(requestIDHdr, requestID)

	slog.Debug("fetching dashboard", "url", u, "request_id", requestID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &StatusError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       strings.TrimSpace(string(body)),
		}
	}

	var data *models.DashboardData
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		// A body cut off by cancellation is a transport failure, not bad JSON.
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, &NetworkError{Err: ctxErr}
		}
		return nil, &ParseError{Err: err}
	}
	if data == nil {
		return nil, &ParseError{Err: errors.New("empty document")}
	}
	if err := data.Validate(); err != nil {
		return nil, &ParseError{Err: err}
	}

	slog.Debug("fetched dashboard", "request_id", requestID, "total_jobs", data.Meta.TotalJobs)
	return data, nil
}

// HealthCheck checks if the statistics API is available.
func (c *Client) HealthCheck(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("dashboard API unhealthy: %s", resp.Status)
	}

	return nil
}
