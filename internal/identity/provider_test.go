package identity

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func newTestProvider(t *testing.T, handler http.HandlerFunc, sessionID, template string) (*ProviderClient, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	p := NewProviderClient(ProviderClientConfig{
		BaseURL:   srv.URL,
		APIKey:    "sk_test",
		SessionID: sessionID,
		Template:  template,
	}, zap.NewNop())
	return p, srv
}

func TestProviderClient_SessionToken(t *testing.T) {
	var gotPath, gotAuth string
	p, _ := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(map[string]string{"jwt": "minted-token"})
	}, "sess_123", "datastore")

	token, err := p.SessionToken(context.Background(), TokenOptions{})
	assert.NoError(t, err)
	assert.Equal(t, "minted-token", token)
	assert.Equal(t, "/v1/sessions/sess_123/tokens/datastore", gotPath)
	assert.Equal(t, "Bearer sk_test", gotAuth)
}

func TestProviderClient_SessionToken_ExplicitTemplateWins(t *testing.T) {
	var gotPath string
	p, _ := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		json.NewEncoder(w).Encode(map[string]string{"jwt": "tok"})
	}, "sess_123", "datastore")

	_, err := p.SessionToken(context.Background(), TokenOptions{Template: "other"})
	assert.NoError(t, err)
	assert.Equal(t, "/v1/sessions/sess_123/tokens/other", gotPath)
}

func TestProviderClient_SessionToken_GoneSessionIsUnauthenticated(t *testing.T) {
	for _, status := range []int{http.StatusNotFound, http.StatusUnauthorized} {
		p, _ := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		}, "sess_123", "")

		token, err := p.SessionToken(context.Background(), TokenOptions{})
		assert.NoError(t, err, "status %d is not an error", status)
		assert.Empty(t, token)
	}
}

func TestProviderClient_SessionToken_ServerErrorIsError(t *testing.T) {
	p, _ := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}, "sess_123", "")

	_, err := p.SessionToken(context.Background(), TokenOptions{})
	assert.Error(t, err)
}

func TestProviderClient_NoSession(t *testing.T) {
	p := NewProviderClient(ProviderClientConfig{BaseURL: "http://unused"}, zap.NewNop())

	assert.False(t, p.Ready())
	token, err := p.SessionToken(context.Background(), TokenOptions{})
	assert.NoError(t, err)
	assert.Empty(t, token)
}

func TestProviderClient_UpdateUserMetadata(t *testing.T) {
	var gotMethod, gotPath string
	var gotBody map[string]map[string]interface{}
	p, _ := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusOK)
	}, "sess_123", "")

	err := p.UpdateUserMetadata(context.Background(), "user_abc", map[string]interface{}{
		"onboarding_complete": true,
		"selected_plan":       "pro",
	})
	assert.NoError(t, err)
	assert.Equal(t, http.MethodPatch, gotMethod)
	assert.Equal(t, "/v1/users/user_abc/metadata", gotPath)
	assert.Equal(t, true, gotBody["public_metadata"]["onboarding_complete"])
	assert.Equal(t, "pro", gotBody["public_metadata"]["selected_plan"])
}
