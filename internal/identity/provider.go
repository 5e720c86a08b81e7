package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// TokenOptions qualifies a session-token request.
type TokenOptions struct {
	// Template names the JWT template the provider should mint the token
	// from. Leave empty to use the provider's default claims.
	Template string
}

// TokenProvider hands out short-lived bearer tokens for the current session.
//
// SessionToken returns ("", nil) when there is no active session: callers
// must treat an empty token as "unauthenticated", not as an error. Errors are
// reserved for transport failures and provider 5xx responses.
type TokenProvider interface {
	SessionToken(ctx context.Context, opts TokenOptions) (string, error)
}

// TokenProviderFunc adapts a function to the TokenProvider interface.
type TokenProviderFunc func(ctx context.Context, opts TokenOptions) (string, error)

func (f TokenProviderFunc) SessionToken(ctx context.Context, opts TokenOptions) (string, error) {
	return f(ctx, opts)
}

// ProviderClient talks to the external identity provider's backend API. It
// always requests tokens from the single configured template so that the
// issued claims match the data store's verification policy; mixing templated
// and untemplated tokens against one policy causes silent authorization
// failures.
type ProviderClient struct {
	client    *http.Client
	baseURL   string
	apiKey    string
	sessionID string
	template  string
	logger    *zap.Logger
}

type ProviderClientConfig struct {
	BaseURL   string
	APIKey    string
	SessionID string
	Template  string
}

func NewProviderClient(cfg ProviderClientConfig, logger *zap.Logger) *ProviderClient {
	return &ProviderClient{
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL:   cfg.BaseURL,
		apiKey:    cfg.APIKey,
		sessionID: cfg.SessionID,
		template:  cfg.Template,
		logger:    logger,
	}
}

// Ready reports whether the provider currently has a signed-in session to
// mint tokens from.
func (p *ProviderClient) Ready() bool {
	return p.sessionID != ""
}

// SessionToken fetches a fresh token for the configured session. The
// configured template wins over opts.Template unless opts names one
// explicitly.
func (p *ProviderClient) SessionToken(ctx context.Context, opts TokenOptions) (string, error) {
	if p.sessionID == "" {
		return "", nil
	}

	template := opts.Template
	if template == "" {
		template = p.template
	}

	endpoint := fmt.Sprintf("%s/v1/sessions/%s/tokens", p.baseURL, p.sessionID)
	if template != "" {
		endpoint = fmt.Sprintf("%s/%s", endpoint, template)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create token request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+p.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("token request failed: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusNotFound, resp.StatusCode == http.StatusUnauthorized:
		// Session expired or revoked between readiness check and token
		// fetch. Not an error, just unauthenticated.
		p.logger.Debug("Session has no token to mint",
			zap.Int("status_code", resp.StatusCode),
			zap.String("session_id", p.sessionID))
		return "", nil
	default:
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("identity provider returned status %d: %s", resp.StatusCode, body)
	}

	var payload struct {
		JWT string `json:"jwt"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("failed to decode token response: %w", err)
	}

	return payload.JWT, nil
}

// UpdateUserMetadata patches the provider-side metadata for a user. The
// onboarding flow persists completion flags and plan/template selection here
// so they survive outside our own tables.
func (p *ProviderClient) UpdateUserMetadata(ctx context.Context, externalUserID string, patch map[string]interface{}) error {
	body, err := json.Marshal(map[string]interface{}{
		"public_metadata": patch,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal metadata patch: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v1/users/%s/metadata", p.baseURL, externalUserID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create metadata request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+p.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("metadata request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("identity provider returned status %d: %s", resp.StatusCode, respBody)
	}

	p.logger.Debug("User metadata updated",
		zap.String("external_user_id", externalUserID))
	return nil
}
