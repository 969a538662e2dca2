package licitadoc

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/licitadoc/licitadoc-go/state"
)

// LoadOrganizations fetches the organization set for the current identity,
// replaces the session's set, and re-resolves the active pointer with the
// persisted default-selection rule. The set is loaded once per identity
// lifetime (sign-in or rehydration) and refreshed only through this call.
//
// Failures leave the prior set and active pointer untouched; passive
// refreshers log and ignore the returned error.
func (s *Session) LoadOrganizations(ctx context.Context) error {
	s.mu.Lock()
	epoch := s.epoch
	s.mu.Unlock()
	return s.load(ctx, epoch)
}

// load runs the fetch outside the lock, then commits only if the session is
// still in the same identity epoch; results arriving after a sign-out are
// discarded rather than applied.
func (s *Session) load(ctx context.Context, epoch uint64) error {
	orgs, err := s.orgs.FetchOrganizations(ctx)
	if err != nil {
		s.metrics.Inc(MetricOrganizationLoadFailed)
		s.log.Warn("session: organization fetch failed", zap.Error(err))
		return fmt.Errorf("%w: %w", ErrFetch, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.epoch != epoch {
		s.metrics.Inc(MetricOrganizationLoadDiscarded)
		s.log.Info("session: discarding organization load from a previous identity")
		return nil
	}

	s.organizations = orgs
	s.resolveActiveLocked(ctx)
	s.metrics.Inc(MetricOrganizationsLoaded)
	return nil
}

// resolveActiveLocked applies the persisted default-selection rule: a
// persisted id present in the fresh set wins; otherwise the first
// organization in load order; nil when the set is empty. The chosen id is
// always re-persisted so storage stays consistent even when falling back.
// The active pointer is re-targeted into the new slice every time; object
// identity is never trusted across a reload.
func (s *Session) resolveActiveLocked(ctx context.Context) {
	persisted, _, err := s.store.Get(ctx, state.ActiveOrganizationKey)
	if err != nil {
		s.log.Warn("session: reading persisted organization failed", zap.Error(err))
		persisted = ""
	}

	var chosen *Organization
	if persisted != "" {
		for i := range s.organizations {
			if s.organizations[i].ID == persisted {
				chosen = &s.organizations[i]
				break
			}
		}
	}
	if chosen == nil && len(s.organizations) > 0 {
		chosen = &s.organizations[0]
	}

	s.active = chosen
	if chosen == nil {
		if err := s.store.Delete(ctx, state.ActiveOrganizationKey); err != nil {
			s.log.Warn("session: clearing persisted organization failed", zap.Error(err))
		}
		return
	}
	if err := s.store.Set(ctx, state.ActiveOrganizationKey, chosen.ID); err != nil {
		s.log.Warn("session: persisting active organization failed", zap.Error(err))
	}
}

// SwitchOrganization makes the organization with the given id active and
// persists the choice. An id missing from the current set is ignored; the
// UI may hold a stale list, and that is not an error.
func (s *Session) SwitchOrganization(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.organizations {
		if s.organizations[i].ID != id {
			continue
		}
		s.active = &s.organizations[i]
		if err := s.store.Set(ctx, state.ActiveOrganizationKey, id); err != nil {
			s.log.Warn("session: persisting active organization failed", zap.Error(err))
		}
		s.metrics.Inc(MetricOrganizationSwitched)
		return
	}
}

// Organizations returns a copy of the current organization set.
func (s *Session) Organizations() []Organization {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Organization, len(s.organizations))
	copy(out, s.organizations)
	return out
}

// ActiveOrganization returns a copy of the active organization, if any.
func (s *Session) ActiveOrganization() (Organization, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active == nil {
		return Organization{}, false
	}
	return *s.active, true
}
