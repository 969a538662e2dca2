package licitadoc

import (
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/licitadoc/licitadoc-go/state"
)

// Builder assembles a [Session]. A Builder is single-use.
type Builder struct {
	cfg     Config
	store   state.Store
	auth    Authenticator
	orgs    OrganizationFetcher
	logger  *zap.Logger
	metrics *Metrics
	now     func() time.Time

	built bool
}

// New creates a Builder with the default configuration.
func New() *Builder {
	return &Builder{cfg: defaultConfig()}
}

// WithConfig replaces the configuration.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.cfg = cfg
	return b
}

// WithStateStore sets the persisted key-value backend. Defaults to an
// in-memory store.
func (b *Builder) WithStateStore(store state.Store) *Builder {
	b.store = store
	return b
}

// WithAuthenticator sets the credential-exchange collaborator. Required.
func (b *Builder) WithAuthenticator(auth Authenticator) *Builder {
	b.auth = auth
	return b
}

// WithOrganizationFetcher sets the organization-load collaborator. Required.
func (b *Builder) WithOrganizationFetcher(orgs OrganizationFetcher) *Builder {
	b.orgs = orgs
	return b
}

// WithLogger sets the logger. Defaults to a no-op logger.
func (b *Builder) WithLogger(logger *zap.Logger) *Builder {
	b.logger = logger
	return b
}

// WithMetrics shares a Metrics instance, typically the same one handed to
// the HTTP adapter so counters land in one place.
func (b *Builder) WithMetrics(m *Metrics) *Builder {
	b.metrics = m
	return b
}

// WithClock overrides the time source for expiry checks. Test hook.
func (b *Builder) WithClock(now func() time.Time) *Builder {
	b.now = now
	return b
}

// Build validates the configuration and returns a Session in the Unknown
// (loading) state; callers run [Session.Initialize] next.
func (b *Builder) Build() (*Session, error) {
	if b.built {
		return nil, ErrBuilderUsed
	}
	if err := b.cfg.Validate(); err != nil {
		return nil, err
	}
	if b.auth == nil {
		return nil, errors.New("authenticator required")
	}
	if b.orgs == nil {
		return nil, errors.New("organization fetcher required")
	}

	store := b.store
	if store == nil {
		store = state.NewMemoryStore()
	}
	logger := b.logger
	if logger == nil {
		logger = zap.NewNop()
	}
	metrics := b.metrics
	if metrics == nil {
		metrics = NewMetrics(b.cfg.Metrics)
	}
	now := b.now
	if now == nil {
		now = time.Now
	}

	b.built = true

	return &Session{
		store:   store,
		auth:    b.auth,
		orgs:    b.orgs,
		log:     logger,
		metrics: metrics,
		now:     now,
		loading: true,
	}, nil
}
