package casos

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"casos-validator/domain/caso"
)

// Package casos fetches case records from the application's REST API.
// It performs a single unauthenticated GET: no paging, no retries.

// DefaultURL is the casos collection of a locally running application.
const DefaultURL = "http://localhost:3000/api/casos"

// StatusError is returned when the API answers with anything but 200 OK.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected HTTP status %d", e.Code)
}

// Client is a thin wrapper over http.Client bound to one casos endpoint.
// Use New to construct it.

type Client struct {
	c   *http.Client
	url string
}

// New returns a client for url. A nil http.Client means a client without timeout.
func New(c *http.Client, url string) *Client {
	if c == nil {
		c = &http.Client{}
	}
	if url == "" {
		url = DefaultURL
	}
	return &Client{c: c, url: url}
}

// URL returns the endpoint the client reads from.
func (cl *Client) URL() string { return cl.url }

// List fetches the whole casos collection.
func (cl *Client) List(ctx context.Context) ([]caso.Caso, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, cl.url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := cl.c.Do(req)
	if err != nil {
		return nil, err
	}
	defer drainAndClose(resp.Body)

	if resp.StatusCode != http.StatusOK {
		slog.Debug("casos.fetch.status", "url", cl.url, "status", resp.StatusCode)
		return nil, &StatusError{Code: resp.StatusCode}
	}

	var out []caso.Caso
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode casos response: %w", err)
	}
	slog.Debug("casos.fetch.done", "url", cl.url, "count", len(out))
	return out, nil
}

func drainAndClose(rc io.ReadCloser) error {
	_, _ = io.Copy(io.Discard, rc)
	return rc.Close()
}
