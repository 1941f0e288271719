package api

// Package api implements the REST client for the volunteer-management
// backend: bearer authentication with one-shot token refresh, tagged error
// decoding, and typed repositories over the resource endpoints.

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/volops/voladmin/config"
	"github.com/volops/voladmin/internal/domain/auth"
	"github.com/volops/voladmin/internal/ports"
)

// Options groups dependencies for Client.
type Options struct {
	Config   config.APIConfig
	Sessions ports.SessionStore
	Logger   *slog.Logger
}

// Client is the shared HTTP layer under every repository. It loads the
// bearer token from the session store per request, and on a 401 performs
// at most one token refresh before retrying the original request once.
type Client struct {
	http     *resty.Client
	sessions ports.SessionStore
	logger   *slog.Logger

	// refreshMu serializes token refresh so concurrent 401s trigger a
	// single refresh round-trip.
	refreshMu sync.Mutex
}

// New constructs a Client from its options.
func New(opts Options) *Client {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	httpc := resty.New().
		SetBaseURL(opts.Config.BaseURL).
		SetTimeout(opts.Config.Timeout).
		SetHeader("Accept", "application/json").
		SetRetryCount(opts.Config.RetryCount).
		SetRetryWaitTime(100 * time.Millisecond).
		SetRetryMaxWaitTime(2 * time.Second)
	httpc.AddRetryCondition(retryCondition)

	return &Client{http: httpc, sessions: opts.Sessions, logger: logger}
}

// retryCondition retries network errors and transient server statuses,
// for GET requests only: multipart file readers are drained on the first
// attempt, so resending a POST would upload an empty body (and a confirm
// could commit twice). 401 is never retried here; the refresh path owns it.
func retryCondition(r *resty.Response, err error) bool {
	if r == nil || r.Request == nil || r.Request.Method != http.MethodGet {
		return false
	}
	if err != nil {
		return true
	}
	code := r.StatusCode()
	return code >= 500 || code == http.StatusTooManyRequests || code == http.StatusRequestTimeout
}

// formFile is one multipart file part.
type formFile struct {
	field   string
	name    string
	content []byte
}

// request describes one API call. anonymous requests skip the bearer
// header and the refresh-and-retry path (login, token refresh).
type request struct {
	method    string
	path      string
	query     map[string]string
	body      any
	files     []formFile
	fields    map[string]string
	anonymous bool
}

// do executes the request and unmarshals the response body into out when
// out is non-nil.
func (c *Client) do(ctx context.Context, r request, out any) error {
	body, err := c.doRaw(ctx, r)
	if err != nil {
		return err
	}
	if out == nil || len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", r.method, r.path, err)
	}
	return nil
}

// doRaw executes the request and returns the raw response body. On a 401
// it refreshes the access token once and retries the original request
// once; a second 401 is returned to the caller as-is.
func (c *Client) doRaw(ctx context.Context, r request) ([]byte, error) {
	var token string
	var sess auth.Session
	if !r.anonymous {
		var err error
		sess, err = c.sessions.Load(ctx)
		if err != nil {
			return nil, fmt.Errorf("load session: %w", err)
		}
		token = sess.AccessToken
	}

	resp, err := c.send(ctx, r, token)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", r.method, r.path, err)
	}

	if resp.StatusCode() == http.StatusUnauthorized && !r.anonymous {
		fresh, refreshErr := c.refreshToken(ctx, sess)
		if refreshErr != nil {
			return nil, refreshErr
		}
		c.logger.Debug("access token refreshed, retrying request",
			"method", r.method, "path", r.path)
		resp, err = c.send(ctx, r, fresh)
		if err != nil {
			return nil, fmt.Errorf("%s %s (retry): %w", r.method, r.path, err)
		}
	}

	if resp.StatusCode() >= 400 {
		return nil, decodeError(resp.StatusCode(), resp.Body())
	}
	return resp.Body(), nil
}

func (c *Client) send(ctx context.Context, r request, token string) (*resty.Response, error) {
	req := c.http.R().SetContext(ctx)
	if token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	if len(r.query) > 0 {
		req.SetQueryParams(r.query)
	}
	if r.body != nil {
		req.SetBody(r.body)
	}
	for _, f := range r.files {
		req.SetFileReader(f.field, f.name, bytes.NewReader(f.content))
	}
	if len(r.fields) > 0 {
		req.SetFormData(r.fields)
	}
	return req.Execute(r.method, r.path)
}

// refreshToken exchanges the stored refresh token for a new access token
// and persists it. Any failure clears the session and yields
// ErrSessionExpired: the caller has to authenticate again.
func (c *Client) refreshToken(ctx context.Context, stale auth.Session) (string, error) {
	c.refreshMu.Lock()
	defer c.refreshMu.Unlock()

	// Another request may have refreshed while we waited for the lock.
	if current, err := c.sessions.Load(ctx); err == nil &&
		current.AccessToken != "" && current.AccessToken != stale.AccessToken {
		return current.AccessToken, nil
	}

	if stale.RefreshToken == "" {
		c.expireSession(ctx)
		return "", ErrSessionExpired
	}

	var out struct {
		Access  string `json:"access"`
		Refresh string `json:"refresh"`
	}
	resp, err := c.http.R().SetContext(ctx).
		SetBody(map[string]string{"refresh": stale.RefreshToken}).
		SetResult(&out).
		Post("/auth/token/refresh/")
	if err != nil {
		return "", fmt.Errorf("refresh token: %w", err)
	}
	if resp.StatusCode() >= 400 || out.Access == "" {
		c.expireSession(ctx)
		return "", ErrSessionExpired
	}

	stale.AccessToken = out.Access
	if out.Refresh != "" {
		stale.RefreshToken = out.Refresh
	}
	if err := c.sessions.Save(ctx, stale); err != nil {
		return "", fmt.Errorf("save refreshed session: %w", err)
	}
	return out.Access, nil
}

func (c *Client) expireSession(ctx context.Context) {
	if err := c.sessions.Clear(ctx); err != nil {
		c.logger.Warn("clear expired session", "error", err)
	}
}

// listEnvelope is the DRF paginated list shape.
type listEnvelope[T any] struct {
	Count   int `json:"count"`
	Results []T `json:"results"`
}

// decodeList accepts both a paginated envelope and a bare JSON array.
func decodeList[T any](body []byte) ([]T, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, nil
	}
	if trimmed[0] == '[' {
		var items []T
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, fmt.Errorf("decode list: %w", err)
		}
		return items, nil
	}
	var env listEnvelope[T]
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return nil, fmt.Errorf("decode list envelope: %w", err)
	}
	return env.Results, nil
}

// resource is the generic CRUD repository over one DRF viewset. Every
// concrete repository embeds it with its base path.
type resource[T any] struct {
	c    *Client
	base string
}

func (r resource[T]) List(ctx context.Context, query map[string]string) ([]T, error) {
	body, err := r.c.doRaw(ctx, request{method: http.MethodGet, path: r.base + "/", query: query})
	if err != nil {
		return nil, err
	}
	return decodeList[T](body)
}

func (r resource[T]) Get(ctx context.Context, id int) (*T, error) {
	out := new(T)
	if err := r.c.do(ctx, request{method: http.MethodGet, path: r.itemPath(id)}, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r resource[T]) Create(ctx context.Context, payload any) (*T, error) {
	out := new(T)
	if err := r.c.do(ctx, request{method: http.MethodPost, path: r.base + "/", body: payload}, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r resource[T]) Update(ctx context.Context, id int, patch any) (*T, error) {
	out := new(T)
	if err := r.c.do(ctx, request{method: http.MethodPatch, path: r.itemPath(id), body: patch}, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r resource[T]) Delete(ctx context.Context, id int) error {
	return r.c.do(ctx, request{method: http.MethodDelete, path: r.itemPath(id)}, nil)
}

func (r resource[T]) itemPath(id int) string {
	return fmt.Sprintf("%s/%d/", r.base, id)
}
