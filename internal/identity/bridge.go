package identity

import (
	"context"
	"errors"
	"fmt"
	"sync"

	domainErrors "github.com/praxishq/praxis-backend/internal/domain/errors"
	"go.uber.org/zap"
)

// State is one phase of the auth-bridge handshake.
type State string

const (
	StateIdle             State = "idle"
	StateCheckingProvider State = "checking_provider"
	StateFetchingToken    State = "fetching_token"
	StateVerifying        State = "verifying_with_backend"
	StateAuthenticated    State = "authenticated"
	StateUnauthenticated  State = "unauthenticated"
	StateErrored          State = "errored"
)

// SessionProvider is a TokenProvider that can also report whether the
// identity provider currently has a signed-in session at all.
type SessionProvider interface {
	TokenProvider
	Ready() bool
}

// BackendVerifier probes the data store with a candidate token. It must
// return domainErrors.ErrTokenRejected (possibly wrapped) when the token is
// syntactically fine but refused by row-level security, and any other error
// for transport failures. A nil return means the store accepted the token
// and resolved a row for the caller.
type BackendVerifier interface {
	VerifyToken(ctx context.Context, token string) error
}

// Bridge sequences the identity handshake: provider readiness, token fetch,
// then a cheap authenticated probe of the data store. The probe exists
// because a token can be well-formed yet rejected by policy; the two
// conditions surface differently to the user.
//
// A Bridge is safe for concurrent use. Overlapping Refresh calls are
// serialized by a generation counter: a refresh that has been superseded
// stops publishing state, so a stale in-flight resolution can never
// overwrite a newer one.
type Bridge struct {
	provider SessionProvider
	verifier BackendVerifier
	logger   *zap.Logger

	mu         sync.Mutex
	state      State
	err        error
	generation uint64
}

// Snapshot is the externally visible bridge state.
type Snapshot struct {
	State           State
	IsAuthenticated bool
	IsLoading       bool
	Err             error
}

func NewBridge(provider SessionProvider, verifier BackendVerifier, logger *zap.Logger) *Bridge {
	return &Bridge{
		provider: provider,
		verifier: verifier,
		logger:   logger,
		state:    StateIdle,
	}
}

// Snapshot returns the current bridge state.
func (b *Bridge) Snapshot() Snapshot {
	b.mu.Lock()
	defer b.mu.Unlock()
	return Snapshot{
		State:           b.state,
		IsAuthenticated: b.state == StateAuthenticated,
		IsLoading:       b.state == StateCheckingProvider || b.state == StateFetchingToken || b.state == StateVerifying,
		Err:             b.err,
	}
}

// Refresh runs the handshake once and reports whether it ended
// authenticated. Calling Refresh repeatedly is safe; when calls overlap, the
// last-initiated call's outcome wins and earlier in-flight calls stop
// publishing as soon as they notice they are stale.
func (b *Bridge) Refresh(ctx context.Context) bool {
	b.mu.Lock()
	b.generation++
	gen := b.generation
	b.state = StateCheckingProvider
	b.err = nil
	b.mu.Unlock()

	if !b.provider.Ready() {
		b.publish(gen, StateUnauthenticated, nil)
		return false
	}

	if !b.publish(gen, StateFetchingToken, nil) {
		return false
	}

	token, err := b.provider.SessionToken(ctx, TokenOptions{})
	if err != nil {
		b.logger.Warn("Token fetch failed", zap.Error(err))
		b.publish(gen, StateErrored, fmt.Errorf("network failure fetching token: %w", err))
		return false
	}
	if token == "" {
		b.publish(gen, StateErrored, domainErrors.ErrNoToken)
		return false
	}

	if !b.publish(gen, StateVerifying, nil) {
		return false
	}

	if err := b.verifier.VerifyToken(ctx, token); err != nil {
		if errors.Is(err, domainErrors.ErrTokenRejected) {
			b.logger.Error("Bridged token rejected by data store policy", zap.Error(err))
			b.publish(gen, StateErrored, err)
		} else {
			b.logger.Warn("Backend verification failed", zap.Error(err))
			b.publish(gen, StateErrored, fmt.Errorf("network failure verifying token: %w", err))
		}
		return false
	}

	return b.publish(gen, StateAuthenticated, nil)
}

// publish applies a state transition only if gen is still the latest
// generation. It reports whether the transition was applied.
func (b *Bridge) publish(gen uint64, state State, err error) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if gen != b.generation {
		return false
	}
	b.state = state
	b.err = err
	return true
}
