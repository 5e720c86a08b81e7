// Package datastore is a thin client for the hosted database's REST data
// plane. Every request rides through an authenticated HTTP client that
// attaches the bridged bearer token, so the store's row-level security
// resolves the caller's identity from the token claims.
package datastore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	domainErrors "github.com/praxishq/praxis-backend/internal/domain/errors"
	"go.uber.org/zap"
)

type Client struct {
	http    *http.Client
	baseURL string
	apiKey  string
	logger  *zap.Logger
}

// NewClient wraps httpClient (built by identity.ClientFactory) for the data
// plane at projectURL.
func NewClient(httpClient *http.Client, projectURL, apiKey string, logger *zap.Logger) *Client {
	return &Client{
		http:    httpClient,
		baseURL: projectURL,
		apiKey:  apiKey,
		logger:  logger,
	}
}

// Filters maps column names to PostgREST operator expressions, e.g.
// {"user_id": "eq.<uuid>"}.
type Filters map[string]string

func (c *Client) tableURL(table string, filters Filters, extra url.Values) string {
	params := url.Values{}
	for col, expr := range filters {
		params.Add(col, expr)
	}
	for k, vs := range extra {
		for _, v := range vs {
			params.Add(k, v)
		}
	}
	return fmt.Sprintf("%s/rest/v1/%s?%s", c.baseURL, table, params.Encode())
}

// GetRows selects rows matching filters into dest (a pointer to a slice).
func (c *Client) GetRows(ctx context.Context, table string, filters Filters, dest interface{}) error {
	extra := url.Values{}
	extra.Set("select", "*")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.tableURL(table, filters, extra), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("data store request failed: %w", err)
	}
	defer resp.Body.Close()

	if err := c.checkStatus(resp, table); err != nil {
		return err
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("failed to decode data store response: %w", err)
	}
	return nil
}

// InsertRows inserts rows into table. The request carries
// Prefer: resolution=ignore-duplicates, so two near-simultaneous lazy
// creations of the same row resolve atomically at the store instead of one
// of them surfacing a unique-constraint error.
func (c *Client) InsertRows(ctx context.Context, table string, rows interface{}) error {
	body, err := json.Marshal(rows)
	if err != nil {
		return fmt.Errorf("failed to marshal rows: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.tableURL(table, nil, nil), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Prefer", "resolution=ignore-duplicates")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("data store request failed: %w", err)
	}
	defer resp.Body.Close()

	return c.checkStatus(resp, table)
}

// DeleteRows deletes rows matching filters.
func (c *Client) DeleteRows(ctx context.Context, table string, filters Filters) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.tableURL(table, filters, nil), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("data store request failed: %w", err)
	}
	defer resp.Body.Close()

	return c.checkStatus(resp, table)
}

func (c *Client) checkStatus(resp *http.Response, table string) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	body, _ := io.ReadAll(resp.Body)
	c.logger.Warn("Data store returned non-2xx status",
		zap.String("table", table),
		zap.Int("status_code", resp.StatusCode),
		zap.ByteString("response_body", body))

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return fmt.Errorf("%w: status %d", domainErrors.ErrTokenRejected, resp.StatusCode)
	}
	return fmt.Errorf("data store error: status %d", resp.StatusCode)
}

// VerifyToken probes the store with an explicit candidate token: a cheap
// single-row read against profiles. It distinguishes "token rejected by
// policy" from plain transport failure, which is exactly what the auth
// bridge needs to report. Implements identity.BackendVerifier.
func (c *Client) VerifyToken(ctx context.Context, token string) error {
	extra := url.Values{}
	extra.Set("select", "id")
	extra.Set("limit", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.tableURL("profiles", nil, extra), nil)
	if err != nil {
		return fmt.Errorf("failed to create probe request: %w", err)
	}
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+token)

	// Bypass the authenticated transport: the probe carries the exact token
	// under test, not whatever the provider would mint next.
	probe := &http.Client{Timeout: c.http.Timeout}
	resp, err := probe.Do(req)
	if err != nil {
		return fmt.Errorf("probe request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return fmt.Errorf("%w: status %d", domainErrors.ErrTokenRejected, resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("probe returned status %d", resp.StatusCode)
	}
	return nil
}
