package licitadoc

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/licitadoc/licitadoc-go/state"
	"github.com/licitadoc/licitadoc-go/token"
)

// Session is the aggregate of identity, organizations, active-organization
// pointer, and the startup loading flag. Exactly one Session serves a
// running client; it is handed to the consumer surface explicitly rather
// than held as a package global, so tests can run independent instances.
//
// States: Unknown (loading) resolves to Authenticated or Anonymous once
// [Session.Initialize] finishes. Authenticated drops to Anonymous via
// [Session.SignOut] or expiry detection; Anonymous rises via
// [Session.SignIn]. There are no other transitions.
type Session struct {
	mu sync.Mutex

	store   state.Store
	auth    Authenticator
	orgs    OrganizationFetcher
	log     *zap.Logger
	metrics *Metrics
	now     func() time.Time

	identity      *Identity
	organizations []Organization
	active        *Organization
	loading       bool

	// epoch advances on every sign-out. In-flight organization loads carry
	// the epoch they started under and are discarded on mismatch, so a
	// signed-out session's organization list can never be resurrected.
	epoch uint64
}

// Initialize restores a persisted session. It runs once at startup: a
// missing token leaves the session anonymous; an expired or malformed token
// is cleared the same way a sign-out would; a live token restores the
// identity and kicks off the organization load in the background.
// isLoading is false once Initialize returns, in every path.
func (s *Session) Initialize(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	defer func() { s.loading = false }()

	raw, ok, err := s.store.Get(ctx, state.TokenKey)
	if err != nil {
		s.log.Warn("session: reading persisted token failed", zap.Error(err))
		return err
	}
	if !ok || raw == "" {
		return nil
	}

	claims, err := token.Decode(raw)
	if err != nil {
		s.log.Warn("session: persisted token is malformed, clearing", zap.Error(err))
		s.clearLocked(ctx)
		return nil
	}
	if claims.Expired(s.now()) {
		s.log.Info("session: persisted token expired, clearing",
			zap.String("subject", claims.Identifier()))
		s.clearLocked(ctx)
		return nil
	}

	s.identity = identityFromClaims(claims)
	epoch := s.epoch

	// Organizations may arrive after first paint. A failure here must not
	// sign the user out; the identity stays valid and a later reload can
	// recover.
	bg := context.WithoutCancel(ctx)
	go func() {
		if err := s.load(bg, epoch); err != nil {
			s.log.Warn("session: startup organization load failed", zap.Error(err))
		}
	}()

	return nil
}

// SignIn exchanges credentials for a bearer token, persists it, decodes the
// identity, and resolves the organization set before returning, so the
// active organization is already known when the caller navigates on.
// Authentication failures propagate unchanged; there is no retry.
func (s *Session) SignIn(ctx context.Context, identifier, secret string) error {
	raw, err := s.auth.Authenticate(ctx, identifier, secret)
	if err != nil {
		s.metrics.Inc(MetricSignInFailure)
		return err
	}

	claims, err := token.Decode(raw)
	if err != nil {
		s.metrics.Inc(MetricSignInFailure)
		return fmt.Errorf("decoding issued token: %w", err)
	}

	s.mu.Lock()
	if err := s.store.Set(ctx, state.TokenKey, raw); err != nil {
		s.mu.Unlock()
		s.metrics.Inc(MetricSignInFailure)
		return fmt.Errorf("persisting token: %w", err)
	}
	s.identity = identityFromClaims(claims)
	s.loading = false
	epoch := s.epoch
	s.mu.Unlock()

	s.metrics.Inc(MetricSignInSuccess)

	if err := s.load(ctx, epoch); err != nil {
		// The sign-in itself succeeded; organization data is recoverable by
		// an explicit reload and must not invalidate the session.
		s.log.Warn("session: organization load after sign-in failed", zap.Error(err))
	}
	return nil
}

// SignOut clears both persisted values and resets identity, organizations,
// and the active pointer. Deletes are best effort; local state is cleared
// regardless, and SignOut never fails.
func (s *Session) SignOut(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearLocked(ctx)
	s.metrics.Inc(MetricSignOut)
}

func (s *Session) clearLocked(ctx context.Context) {
	if err := s.store.Delete(ctx, state.TokenKey); err != nil {
		s.log.Warn("session: deleting persisted token failed", zap.Error(err))
	}
	if err := s.store.Delete(ctx, state.ActiveOrganizationKey); err != nil {
		s.log.Warn("session: deleting persisted organization failed", zap.Error(err))
	}
	s.identity = nil
	s.organizations = nil
	s.active = nil
	s.epoch++
}

// IsAuthenticated reports whether an identity is present.
func (s *Session) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.identity != nil
}

// IsLoading reports whether startup rehydration has finished.
func (s *Session) IsLoading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Identity returns a copy of the current identity.
func (s *Session) Identity() (Identity, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.identity == nil {
		return Identity{}, false
	}
	return *s.identity, true
}

func identityFromClaims(c *token.Claims) *Identity {
	return &Identity{
		Subject:   c.Identifier(),
		Role:      c.Role,
		UserID:    c.UserID,
		ExpiresAt: c.Expiry(),
	}
}
