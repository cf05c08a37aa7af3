// Package hospital implements the HTTP client for one upstream hospital
// speciality endpoint. Each endpoint serves {"data": [{"speciality": ...}]}.
package hospital

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/carelink/hospital-portal/internal/core/domain"
)

const defaultRequestTimeout = 10 * time.Second

// Client fetches the speciality listing from a single source URL.
type Client struct {
	url  string
	http *http.Client
}

// NewClient builds a Client for the given endpoint. httpClient may be nil, in
// which case a client with a bounded timeout is used.
func NewClient(url string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultRequestTimeout}
	}
	return &Client{url: url, http: httpClient}
}

type specialitiesPayload struct {
	Data []domain.Speciality `json:"data"`
}

// FetchSpecialities performs the GET and decodes the payload. Any transport
// error, non-2xx status, or decode failure is returned to the caller; the
// aggregator treats all of them as a failed source.
func (c *Client) FetchSpecialities(ctx context.Context) ([]domain.Speciality, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch specialities: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetch specialities: unexpected status %d", resp.StatusCode)
	}

	var payload specialitiesPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode specialities: %w", err)
	}
	return payload.Data, nil
}
