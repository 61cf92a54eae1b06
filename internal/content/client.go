// Package content reads catalog data from the content service.
package content

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gc02/usuario-server/internal/model"
)

var _ model.ContentGateway = (*Client)(nil)

// maxBodyBytes caps how much of a response body is read.
const maxBodyBytes = 1 << 20

// Client fetches elements and genres by id over HTTP GET.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a content service client. A nil httpClient gets one with timeout.
func NewClient(baseURL string, timeout time.Duration, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

func (c *Client) GetElement(ctx context.Context, id int64) (model.Element, error) {
	var element model.Element
	if err := c.get(ctx, fmt.Sprintf("/elementos/%d", id), &element); err != nil {
		return model.Element{}, fmt.Errorf("failed to get element %d: %w", id, err)
	}
	return element, nil
}

func (c *Client) GetGenre(ctx context.Context, id int64) (model.Genre, error) {
	var genre model.Genre
	if err := c.get(ctx, fmt.Sprintf("/generos/%d", id), &genre); err != nil {
		return model.Genre{}, fmt.Errorf("failed to get genre %d: %w", id, err)
	}
	return genre, nil
}

// get decodes the JSON body of a 2xx response into out. Every failure wraps model.ErrUpstream.
func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", model.ErrUpstream, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: request failed: %v", model.ErrUpstream, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("%w: failed to read response: %v", model.ErrUpstream, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: unexpected status %d", model.ErrUpstream, resp.StatusCode)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", model.ErrUpstream, err)
	}

	return nil
}
