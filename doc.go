// Package licitadoc is the client-side session and tenancy core for the
// LicitaDoc document-compliance API, plus the typed service clients that
// consume it.
//
// The package owns a single [Session] per running client: the decoded
// [Identity] of the current bearer token, the set of [Organization] values
// the identity may act on behalf of, and the active-organization pointer.
// Sessions are built through [Builder.Build] and handed to the whole
// consumer surface explicitly, so tests can construct independent instances.
//
// # Architecture boundaries
//
// licitadoc is the public surface. The HTTP adapter and domain service
// clients live in the api sub-package, persisted key-value state in state,
// route gating in guard, user-facing notifications in notify, and vault
// grouping in vault. The adapter never knows about the Session; the
// relationship is strictly one-directional (the Session consumes the
// adapter through collaborator interfaces, never the reverse).
//
// # What this package must NOT do
//
//   - Verify bearer tokens. Tokens are decoded for display and routing only;
//     authorization is enforced server-side on every call.
//   - Retry or queue failed calls. Errors are classified once and surfaced.
//   - Expose the persisted state backend or HTTP client in its public API.
package licitadoc
