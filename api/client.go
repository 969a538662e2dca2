// Package api is the single outbound choke point for the LicitaDoc REST
// API: one Client attaches the bearer token, classifies every response the
// same way regardless of caller, and exposes the typed domain services
// (auth, users, companies, documents, dashboards, admin) on top of it.
//
// The Client never knows about the Session; it talks only to the persisted
// state store, the notifier, and the navigator.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	licitadoc "github.com/licitadoc/licitadoc-go"
	"github.com/licitadoc/licitadoc-go/notify"
	"github.com/licitadoc/licitadoc-go/state"
)

// Navigator triggers a client-side or hard navigation.
type Navigator interface {
	NavigateTo(route string)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(route string)

func (f NavigatorFunc) NavigateTo(route string) { f(route) }

// Config assembles a Client.
type Config struct {
	BaseURL string
	Timeout time.Duration

	// EntryRoute is where a forced sign-out navigates to; RedirectDelay is
	// how long the navigation is deferred so the session-expired
	// notification can render first.
	EntryRoute    string
	RedirectDelay time.Duration

	Store     state.Store
	Notifier  notify.Notifier
	Navigator Navigator
	Logger    *zap.Logger
	Metrics   *licitadoc.Metrics

	// HTTPClient overrides the underlying client. Test hook; a default
	// client with Timeout is built when nil.
	HTTPClient *http.Client
}

// Client is the HTTP adapter plus the domain services built on it.
type Client struct {
	base          *url.URL
	http          *http.Client
	store         state.Store
	notifier      notify.Notifier
	nav           Navigator
	log           *zap.Logger
	metrics       *licitadoc.Metrics
	entryRoute    string
	redirectDelay time.Duration
}

// NewClient validates cfg and builds a Client.
func NewClient(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("BaseURL required")
	}
	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing BaseURL: %w", err)
	}
	if cfg.Store == nil {
		return nil, errors.New("state store required")
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	notifier := cfg.Notifier
	if notifier == nil {
		notifier = notify.NoOpNotifier{}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	entry := cfg.EntryRoute
	if entry == "" {
		entry = "/"
	}
	delay := cfg.RedirectDelay
	if delay <= 0 {
		// The delay exists so the session-expired notification can render
		// before navigation; zero would navigate over it.
		delay = 1500 * time.Millisecond
	}

	return &Client{
		base:          base,
		http:          httpClient,
		store:         cfg.Store,
		notifier:      notifier,
		nav:           cfg.Navigator,
		log:           logger,
		metrics:       cfg.Metrics,
		entryRoute:    entry,
		redirectDelay: delay,
	}, nil
}

// call describes one outbound request for do.
type call struct {
	method      string
	path        string
	query       url.Values
	body        io.Reader
	contentType string

	// out receives the decoded JSON body; rawOut receives the raw bytes
	// (downloads). At most one is set.
	out    any
	rawOut *[]byte

	// noTeardown marks endpoints where a 401 means the request itself was
	// rejected (token issuance), not that the session expired. The status
	// passes through instead of tearing the session down.
	noTeardown bool
}

// do executes one call through the classification pipeline.
func (c *Client) do(ctx context.Context, cl call) error {
	target := c.base.JoinPath(cl.path)
	if len(cl.query) > 0 {
		target.RawQuery = cl.query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, cl.method, target.String(), cl.body)
	if err != nil {
		return err
	}
	if cl.contentType != "" {
		req.Header.Set("Content-Type", cl.contentType)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestIDFromContext(ctx))

	if token, ok := c.bearer(ctx); ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.metrics.Inc(licitadoc.MetricConnectivityFailure)
		c.notifier.Notify(ctx, notify.New(notify.KindConnectivity,
			"could not reach the server, check your connection"))
		return fmt.Errorf("%w: %v", licitadoc.ErrConnectivity, err)
	}
	defer resp.Body.Close()

	if err := c.classify(ctx, resp, cl.noTeardown); err != nil {
		return err
	}

	switch {
	case cl.rawOut != nil:
		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("reading response body: %w", err)
		}
		*cl.rawOut = data
	case cl.out != nil:
		if err := json.NewDecoder(resp.Body).Decode(cl.out); err != nil {
			return fmt.Errorf("decoding response body: %w", err)
		}
	}
	return nil
}

// bearer reads the persisted token. A store read failure is treated as an
// absent token: the header is omitted, never sent empty.
func (c *Client) bearer(ctx context.Context) (string, bool) {
	token, ok, err := c.store.Get(ctx, state.TokenKey)
	if err != nil {
		c.log.Warn("api: reading persisted token failed", zap.Error(err))
		return "", false
	}
	if !ok || token == "" {
		return "", false
	}
	return token, true
}

// classify applies the uniform response policy. 2xx and unlisted statuses
// pass; everything else notifies globally and rejects with a typed error so
// the caller can still show contextual feedback; nothing is swallowed.
func (c *Client) classify(ctx context.Context, resp *http.Response, noTeardown bool) error {
	status := resp.StatusCode

	switch {
	case status >= 200 && status < 300:
		return nil

	case status == http.StatusUnauthorized && !noTeardown:
		c.forceSignOut(ctx)
		return licitadoc.ErrSessionExpired

	case status == http.StatusForbidden:
		c.metrics.Inc(licitadoc.MetricForbidden)
		c.notifier.Notify(ctx, notify.New(notify.KindAccessDenied,
			"you do not have permission to perform this action"))
		return licitadoc.ErrForbidden

	case status >= 500:
		c.metrics.Inc(licitadoc.MetricServerError)
		c.notifier.Notify(ctx, notify.New(notify.KindServerError,
			"the server had a problem handling the request, try again later"))
		return fmt.Errorf("%w: status %d", licitadoc.ErrServer, status)

	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
		return &licitadoc.StatusError{StatusCode: status, Body: body}
	}
}

// forceSignOut is the only path that tears a session down mid-flight: both
// persisted values are cleared, the session-expired notification fires once
// for this response, and navigation to the entry route is scheduled after
// the configured delay.
func (c *Client) forceSignOut(ctx context.Context) {
	if err := c.store.Delete(ctx, state.TokenKey); err != nil {
		c.log.Warn("api: deleting persisted token failed", zap.Error(err))
	}
	if err := c.store.Delete(ctx, state.ActiveOrganizationKey); err != nil {
		c.log.Warn("api: deleting persisted organization failed", zap.Error(err))
	}

	c.metrics.Inc(licitadoc.MetricUnauthorized)
	c.notifier.Notify(ctx, notify.New(notify.KindSessionExpired,
		"your session has expired, sign in again"))

	if c.nav == nil {
		return
	}
	nav, route := c.nav, c.entryRoute
	time.AfterFunc(c.redirectDelay, func() { nav.NavigateTo(route) })
}

// JSON convenience wrappers used by the domain services.

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, call{method: http.MethodGet, path: path, query: query, out: out})
}

func (c *Client) postJSON(ctx context.Context, path string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return err
	}
	return c.do(ctx, call{
		method:      http.MethodPost,
		path:        path,
		body:        bytes.NewReader(body),
		contentType: "application/json",
		out:         out,
	})
}

func (c *Client) putJSON(ctx context.Context, path string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return err
	}
	return c.do(ctx, call{
		method:      http.MethodPut,
		path:        path,
		body:        bytes.NewReader(body),
		contentType: "application/json",
		out:         out,
	})
}

func (c *Client) postForm(ctx context.Context, path string, form url.Values, out any, noTeardown bool) error {
	return c.do(ctx, call{
		method:      http.MethodPost,
		path:        path,
		body:        strings.NewReader(form.Encode()),
		contentType: "application/x-www-form-urlencoded",
		out:         out,
		noTeardown:  noTeardown,
	})
}

func (c *Client) delete(ctx context.Context, path string) error {
	return c.do(ctx, call{method: http.MethodDelete, path: path})
}

func jsonBody(in any) (io.Reader, error) {
	data, err := json.Marshal(in)
	if err != nil {
		return nil, err
	}
	return bytes.NewReader(data), nil
}
