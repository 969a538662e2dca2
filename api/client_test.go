package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	licitadoc "github.com/licitadoc/licitadoc-go"
	"github.com/licitadoc/licitadoc-go/notify"
	"github.com/licitadoc/licitadoc-go/state"
)

type collectNotifier struct {
	mu   sync.Mutex
	seen []notify.Notification
}

func (c *collectNotifier) Notify(_ context.Context, n notify.Notification) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seen = append(c.seen, n)
}

func (c *collectNotifier) byKind(kind notify.Kind) []notify.Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []notify.Notification
	for _, n := range c.seen {
		if n.Kind == kind {
			out = append(out, n)
		}
	}
	return out
}

type testHarness struct {
	client   *Client
	store    *state.MemoryStore
	notifier *collectNotifier
	routed   chan string
}

func newTestClient(t *testing.T, handler http.Handler) *testHarness {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	h := &testHarness{
		store:    state.NewMemoryStore(),
		notifier: &collectNotifier{},
		routed:   make(chan string, 1),
	}

	client, err := NewClient(Config{
		BaseURL:       server.URL,
		EntryRoute:    "/login",
		RedirectDelay: 5 * time.Millisecond,
		Store:         h.store,
		Notifier:      h.notifier,
		Navigator: NavigatorFunc(func(route string) {
			select {
			case h.routed <- route:
			default:
			}
		}),
	})
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}
	h.client = client
	return h
}

func (h *testHarness) seedToken(t *testing.T, raw string) {
	t.Helper()
	if err := h.store.Set(context.Background(), state.TokenKey, raw); err != nil {
		t.Fatalf("seeding token failed: %v", err)
	}
	if err := h.store.Set(context.Background(), state.ActiveOrganizationKey, "org-1"); err != nil {
		t.Fatalf("seeding organization failed: %v", err)
	}
}

func TestNewClientDefaults(t *testing.T) {
	client, err := NewClient(Config{
		BaseURL: "http://localhost:8000",
		Store:   state.NewMemoryStore(),
	})
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}
	if client.entryRoute != "/" {
		t.Fatalf("unexpected default entry route %q", client.entryRoute)
	}
	if client.redirectDelay != 1500*time.Millisecond {
		t.Fatalf("expected non-zero default redirect delay, got %v", client.redirectDelay)
	}
	if client.http.Timeout != 30*time.Second {
		t.Fatalf("unexpected default timeout %v", client.http.Timeout)
	}
}

func TestBearerAttachedWhenTokenPresent(t *testing.T) {
	var got string
	h := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	}))
	h.seedToken(t, "raw-token")

	var out map[string]any
	if err := h.client.get(context.Background(), "/users/me", nil, &out); err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got != "Bearer raw-token" {
		t.Fatalf("expected bearer header, got %q", got)
	}
}

func TestBearerOmittedWhenTokenAbsent(t *testing.T) {
	var got string
	var present bool
	h := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, present = r.Header.Get("Authorization"), r.Header.Get("Authorization") != ""
		w.Write([]byte(`{}`))
	}))

	var out map[string]any
	if err := h.client.get(context.Background(), "/users/me", nil, &out); err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if present {
		t.Fatalf("expected no Authorization header, got %q", got)
	}
}

func TestUnauthorizedTearsDownSession(t *testing.T) {
	h := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	h.seedToken(t, "stale-token")

	var out map[string]any
	err := h.client.get(context.Background(), "/users/me", nil, &out)
	if !errors.Is(err, licitadoc.ErrSessionExpired) {
		t.Fatalf("expected ErrSessionExpired, got %v", err)
	}

	if _, ok, _ := h.store.Get(context.Background(), state.TokenKey); ok {
		t.Fatal("expected token cleared on 401")
	}
	if _, ok, _ := h.store.Get(context.Background(), state.ActiveOrganizationKey); ok {
		t.Fatal("expected organization cleared on 401")
	}
	if n := h.notifier.byKind(notify.KindSessionExpired); len(n) != 1 {
		t.Fatalf("expected exactly one session-expired notification, got %d", len(n))
	}

	select {
	case route := <-h.routed:
		if route != "/login" {
			t.Fatalf("expected redirect to entry route, got %q", route)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("expected deferred navigation after 401")
	}
}

func TestForbiddenKeepsSession(t *testing.T) {
	h := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	h.seedToken(t, "good-token")

	var out map[string]any
	err := h.client.get(context.Background(), "/companies", nil, &out)
	if !errors.Is(err, licitadoc.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	if _, ok, _ := h.store.Get(context.Background(), state.TokenKey); !ok {
		t.Fatal("403 must not clear the token")
	}
	if n := h.notifier.byKind(notify.KindAccessDenied); len(n) != 1 {
		t.Fatalf("expected one access-denied notification, got %d", len(n))
	}
	select {
	case route := <-h.routed:
		t.Fatalf("403 must not navigate, got %q", route)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestServerErrorNotifies(t *testing.T) {
	h := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	h.seedToken(t, "good-token")

	var out map[string]any
	err := h.client.get(context.Background(), "/documents/", nil, &out)
	if !errors.Is(err, licitadoc.ErrServer) {
		t.Fatalf("expected ErrServer, got %v", err)
	}
	if _, ok, _ := h.store.Get(context.Background(), state.TokenKey); !ok {
		t.Fatal("5xx must not clear the token")
	}
	if n := h.notifier.byKind(notify.KindServerError); len(n) != 1 {
		t.Fatalf("expected one server-error notification, got %d", len(n))
	}
}

func TestConnectivityFailureNotifies(t *testing.T) {
	h := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {}))

	// Point the client at a closed port.
	broken, err := NewClient(Config{
		BaseURL:  "http://127.0.0.1:1",
		Timeout:  100 * time.Millisecond,
		Store:    h.store,
		Notifier: h.notifier,
	})
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}

	var out map[string]any
	err = broken.get(context.Background(), "/users/me", nil, &out)
	if !errors.Is(err, licitadoc.ErrConnectivity) {
		t.Fatalf("expected ErrConnectivity, got %v", err)
	}
	if n := h.notifier.byKind(notify.KindConnectivity); len(n) != 1 {
		t.Fatalf("expected one connectivity notification, got %d", len(n))
	}
}

func TestUnlistedStatusPassesThrough(t *testing.T) {
	h := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"detail":"document not found"}`))
	}))

	var out map[string]any
	err := h.client.get(context.Background(), "/documents/missing", nil, &out)

	var se *licitadoc.StatusError
	if !errors.As(err, &se) {
		t.Fatalf("expected StatusError, got %v", err)
	}
	if se.StatusCode != http.StatusNotFound {
		t.Fatalf("unexpected status %d", se.StatusCode)
	}
	if len(h.notifier.seen) != 0 {
		t.Fatal("unlisted statuses must not notify globally")
	}
}

func TestAuthenticateMapsRejectionsToInvalidCredentials(t *testing.T) {
	for _, status := range []int{http.StatusBadRequest, http.StatusUnauthorized, http.StatusUnprocessableEntity} {
		h := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(status)
		}))
		h.seedToken(t, "existing-token")

		_, err := h.client.Authenticate(context.Background(), "alice@example.com", "wrong")
		if !errors.Is(err, licitadoc.ErrInvalidCredentials) {
			t.Fatalf("status %d: expected ErrInvalidCredentials, got %v", status, err)
		}

		// Credential rejection is not session expiry.
		if _, ok, _ := h.store.Get(context.Background(), state.TokenKey); !ok {
			t.Fatalf("status %d cleared the persisted token", status)
		}
		if n := h.notifier.byKind(notify.KindSessionExpired); len(n) != 0 {
			t.Fatalf("status %d emitted a session-expired notification", status)
		}
	}
}

func TestAuthenticateReturnsToken(t *testing.T) {
	h := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Errorf("parsing form failed: %v", err)
		}
		if r.PostForm.Get("username") != "alice@example.com" || r.PostForm.Get("password") != "secret" {
			t.Errorf("unexpected credentials %v", r.PostForm)
		}
		w.Write([]byte(`{"access_token":"issued-token","token_type":"bearer"}`))
	}))

	token, err := h.client.Authenticate(context.Background(), "alice@example.com", "secret")
	if err != nil {
		t.Fatalf("Authenticate failed: %v", err)
	}
	if token != "issued-token" {
		t.Fatalf("unexpected token %q", token)
	}
}

func TestFetchOrganizationsWrapsFetchError(t *testing.T) {
	h := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	_, err := h.client.FetchOrganizations(context.Background())
	if !errors.Is(err, licitadoc.ErrFetch) {
		t.Fatalf("expected ErrFetch, got %v", err)
	}
	if !errors.Is(err, licitadoc.ErrServer) {
		t.Fatalf("expected underlying ErrServer preserved, got %v", err)
	}
}

func TestRequestIDPropagates(t *testing.T) {
	var got string
	h := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("X-Request-ID")
		w.Write([]byte(`{}`))
	}))

	ctx := WithRequestID(context.Background(), "req-123")
	var out map[string]any
	if err := h.client.get(ctx, "/users/me", nil, &out); err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got != "req-123" {
		t.Fatalf("expected propagated request id, got %q", got)
	}

	if err := h.client.get(context.Background(), "/users/me", nil, &out); err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got == "" || got == "req-123" {
		t.Fatalf("expected a fresh request id, got %q", got)
	}
}
