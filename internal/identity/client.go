package identity

import (
	"fmt"
	"net/http"
	"reflect"
	"sync"
	"time"
)

// authTransport attaches a freshly fetched session token to every outgoing
// request. Tokens are never cached across requests: the provider owns the
// session lifecycle and its own token cache, this transport is stateless.
type authTransport struct {
	base     http.RoundTripper
	provider TokenProvider
	opts     TokenOptions
	apiKey   string
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	token, err := t.provider.SessionToken(req.Context(), t.opts)
	if err != nil {
		// Surface the token failure to the caller of the request so the UI
		// layer can tell an auth error from a plain network error.
		return nil, fmt.Errorf("fetching session token: %w", err)
	}

	// Clone per RoundTripper contract: the original request must not be
	// mutated.
	clone := req.Clone(req.Context())
	if t.apiKey != "" {
		clone.Header.Set("apikey", t.apiKey)
	}
	if token != "" {
		clone.Header.Set("Authorization", "Bearer "+token)
	}
	// No token: proceed without the Authorization header so rows readable
	// anonymously under row-level security still succeed.

	return t.base.RoundTrip(clone)
}

// ClientFactory builds HTTP clients whose requests carry the bridged bearer
// token. Clients are memoized per token-provider identity: recreating them is
// cheap but callers tend to ask on every tick, and the provider identity
// changing is exactly the moment a rebuild is wanted.
type ClientFactory struct {
	apiKey  string
	opts    TokenOptions
	timeout time.Duration

	mu    sync.Mutex
	cache map[TokenProvider]*http.Client
}

func NewClientFactory(apiKey string, opts TokenOptions) *ClientFactory {
	return &ClientFactory{
		apiKey:  apiKey,
		opts:    opts,
		timeout: 10 * time.Second,
		cache:   make(map[TokenProvider]*http.Client),
	}
}

// AuthenticatedClient returns an HTTP client that fetches a token from tp for
// each request and attaches it as a bearer credential, plus the data-plane
// api key header when configured.
func (f *ClientFactory) AuthenticatedClient(tp TokenProvider) *http.Client {
	cacheable := tp != nil && reflect.TypeOf(tp).Comparable()

	if cacheable {
		f.mu.Lock()
		if c, ok := f.cache[tp]; ok {
			f.mu.Unlock()
			return c
		}
		f.mu.Unlock()
	}

	client := &http.Client{
		Timeout: f.timeout,
		Transport: &authTransport{
			base:     http.DefaultTransport,
			provider: tp,
			opts:     f.opts,
			apiKey:   f.apiKey,
		},
	}

	if cacheable {
		f.mu.Lock()
		f.cache[tp] = client
		f.mu.Unlock()
	}

	return client
}
