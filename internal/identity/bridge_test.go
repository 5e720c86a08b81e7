package identity

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	domainErrors "github.com/praxishq/praxis-backend/internal/domain/errors"
)

type fakeSessionProvider struct {
	ready bool
	token string
	err   error
}

func (p *fakeSessionProvider) Ready() bool { return p.ready }

func (p *fakeSessionProvider) SessionToken(ctx context.Context, opts TokenOptions) (string, error) {
	return p.token, p.err
}

type fakeVerifier struct {
	err   error
	calls int
}

func (v *fakeVerifier) VerifyToken(ctx context.Context, token string) error {
	v.calls++
	return v.err
}

func TestBridge_Refresh(t *testing.T) {
	logger := zap.NewNop()

	tests := []struct {
		name          string
		provider      *fakeSessionProvider
		verifier      *fakeVerifier
		expectedOK    bool
		expectedState State
		expectedErrIs error
	}{
		{
			name:          "provider not ready ends unauthenticated",
			provider:      &fakeSessionProvider{ready: false},
			verifier:      &fakeVerifier{},
			expectedOK:    false,
			expectedState: StateUnauthenticated,
		},
		{
			name:          "empty token is an error, not unauthenticated",
			provider:      &fakeSessionProvider{ready: true, token: ""},
			verifier:      &fakeVerifier{},
			expectedOK:    false,
			expectedState: StateErrored,
			expectedErrIs: domainErrors.ErrNoToken,
		},
		{
			name:          "token fetch network failure",
			provider:      &fakeSessionProvider{ready: true, err: errors.New("connection refused")},
			verifier:      &fakeVerifier{},
			expectedOK:    false,
			expectedState: StateErrored,
		},
		{
			name:          "token rejected by policy",
			provider:      &fakeSessionProvider{ready: true, token: "tok"},
			verifier:      &fakeVerifier{err: domainErrors.ErrTokenRejected},
			expectedOK:    false,
			expectedState: StateErrored,
			expectedErrIs: domainErrors.ErrTokenRejected,
		},
		{
			name:          "verification network failure",
			provider:      &fakeSessionProvider{ready: true, token: "tok"},
			verifier:      &fakeVerifier{err: errors.New("dial tcp: timeout")},
			expectedOK:    false,
			expectedState: StateErrored,
		},
		{
			name:          "full handshake succeeds",
			provider:      &fakeSessionProvider{ready: true, token: "tok"},
			verifier:      &fakeVerifier{},
			expectedOK:    true,
			expectedState: StateAuthenticated,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBridge(tt.provider, tt.verifier, logger)

			ok := b.Refresh(context.Background())
			assert.Equal(t, tt.expectedOK, ok)

			snap := b.Snapshot()
			assert.Equal(t, tt.expectedState, snap.State)
			assert.Equal(t, tt.expectedOK, snap.IsAuthenticated)
			assert.False(t, snap.IsLoading)
			if tt.expectedErrIs != nil {
				assert.ErrorIs(t, snap.Err, tt.expectedErrIs)
			}
			if tt.expectedState == StateErrored {
				assert.Error(t, snap.Err)
			}
		})
	}
}

func TestBridge_RefreshNeverAuthenticatesWithoutToken(t *testing.T) {
	provider := &fakeSessionProvider{ready: true, token: ""}
	verifier := &fakeVerifier{}
	b := NewBridge(provider, verifier, zap.NewNop())

	for i := 0; i < 5; i++ {
		assert.False(t, b.Refresh(context.Background()))
		assert.False(t, b.Snapshot().IsAuthenticated)
	}
	// The backend probe must never run when there is no token to probe with.
	assert.Zero(t, verifier.calls)
}

func TestBridge_RepeatedRefreshConverges(t *testing.T) {
	provider := &fakeSessionProvider{ready: true, token: "tok"}
	verifier := &fakeVerifier{err: domainErrors.ErrTokenRejected}
	b := NewBridge(provider, verifier, zap.NewNop())

	assert.False(t, b.Refresh(context.Background()))
	assert.Equal(t, StateErrored, b.Snapshot().State)

	// The policy gets fixed; the next refresh recovers.
	verifier.err = nil
	assert.True(t, b.Refresh(context.Background()))
	assert.Equal(t, StateAuthenticated, b.Snapshot().State)
	assert.NoError(t, b.Snapshot().Err)
}

func TestBridge_StaleRefreshDoesNotPublish(t *testing.T) {
	provider := &fakeSessionProvider{ready: true, token: "tok"}
	b := NewBridge(provider, &fakeVerifier{}, zap.NewNop())

	// Simulate an older in-flight refresh: its generation is stale by the
	// time it tries to publish, so the transition must be dropped.
	b.mu.Lock()
	b.generation = 7
	b.state = StateAuthenticated
	b.mu.Unlock()

	applied := b.publish(3, StateErrored, errors.New("stale failure"))
	assert.False(t, applied)

	snap := b.Snapshot()
	assert.Equal(t, StateAuthenticated, snap.State)
	assert.NoError(t, snap.Err)
}
