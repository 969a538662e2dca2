package licitadoc

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidCredentials is returned by [Session.SignIn] when the
	// authentication collaborator rejects the supplied credentials.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrFetch wraps a failed organization or catalog load. Stale data is
	// retained; the session itself stays valid.
	ErrFetch = errors.New("fetch failed")
	// ErrConnectivity indicates no response was received at all.
	ErrConnectivity = errors.New("no response from server")
	// ErrSessionExpired is the 401 classification. It is the only error that
	// forcibly tears a session down mid-flight.
	ErrSessionExpired = errors.New("session expired")
	// ErrForbidden is the 403 classification. The session stays intact; the
	// action was merely disallowed.
	ErrForbidden = errors.New("action not allowed")
	// ErrServer is the 5xx classification.
	ErrServer = errors.New("server error")
	// ErrBuilderUsed is returned when a [Builder] is built twice.
	ErrBuilderUsed = errors.New("builder already used")
)

// StatusError carries a non-2xx HTTP status the adapter passes through to
// the caller unmodified (validation failures, not-found, conflicts). The
// classified statuses (401, 403, 5xx) never reach callers as a StatusError.
type StatusError struct {
	StatusCode int
	Body       []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d", e.StatusCode)
}
