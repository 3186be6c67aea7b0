// Package api is the typed client for the remote shortener REST API. It owns
// the wire contract: envelope decoding, bearer credentials, error
// classification, and the clear-session hook for authentication failures.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/snipurl/snip-cli/internal/constants"
	"github.com/snipurl/snip-cli/internal/infrastructure/logger"
	"github.com/snipurl/snip-cli/internal/processing/analytics"
	"github.com/snipurl/snip-cli/internal/processing/links"
	"github.com/snipurl/snip-cli/internal/session"
	"github.com/snipurl/snip-cli/pkg/httpclient"
	"go.uber.org/zap"
)

const correlationIDHeader = "X-Correlation-Id"

// TokenSource provides the bearer credential attached to every request.
// An empty token means the request goes out unauthenticated.
type TokenSource interface {
	Token() string
}

type Option func(*Client)

// WithTokenSource wires the session store (or any credential source) into
// outgoing requests.
func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) { c.tokens = ts }
}

// WithUnauthorizedHook registers the single funnel for authentication-class
// failures. The default wiring clears the session store so the local guard
// redirects to login on the next command.
func WithUnauthorizedHook(fn func()) Option {
	return func(c *Client) { c.onUnauthorized = fn }
}

type Client struct {
	baseURL        string
	http           *httpclient.Client
	tokens         TokenSource
	onUnauthorized func()
}

func New(baseURL string, hc *httpclient.Client, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    hc,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// --- Auth ---

func (c *Client) Register(ctx context.Context, in RegisterInput) (*AuthSession, error) {
	data, err := c.call(ctx, http.MethodPost, "/auth/register", in)
	if err != nil {
		return nil, err
	}
	var auth AuthSession
	if err := json.Unmarshal(data, &auth); err != nil {
		return nil, fmt.Errorf("decoding auth response: %w", err)
	}
	return &auth, nil
}

func (c *Client) Login(ctx context.Context, in LoginInput) (*AuthSession, error) {
	data, err := c.call(ctx, http.MethodPost, "/auth/login", in)
	if err != nil {
		return nil, err
	}
	var auth AuthSession
	if err := json.Unmarshal(data, &auth); err != nil {
		return nil, fmt.Errorf("decoding auth response: %w", err)
	}
	return &auth, nil
}

func (c *Client) CurrentUser(ctx context.Context) (*session.User, error) {
	data, err := c.call(ctx, http.MethodGet, "/auth/me", nil)
	if err != nil {
		return nil, err
	}
	var wrapped userData
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return nil, fmt.Errorf("decoding user response: %w", err)
	}
	return &wrapped.User, nil
}

// --- Links ---

func (c *Client) CreateLink(ctx context.Context, in links.CreateInput) (*links.Created, error) {
	data, err := c.call(ctx, http.MethodPost, "/link/create", in)
	if err != nil {
		return nil, err
	}
	var created links.Created
	if err := json.Unmarshal(data, &created); err != nil {
		return nil, fmt.Errorf("decoding created link: %w", err)
	}
	return &created, nil
}

func (c *Client) MyLinks(ctx context.Context) (*links.Page, error) {
	data, err := c.call(ctx, http.MethodGet, "/link/my-links", nil)
	if err != nil {
		return nil, err
	}
	var page links.Page
	if err := json.Unmarshal(data, &page); err != nil {
		return nil, fmt.Errorf("decoding link page: %w", err)
	}
	return &page, nil
}

func (c *Client) UpdateLink(ctx context.Context, slug, newSlug string) (*links.Link, error) {
	data, err := c.call(ctx, http.MethodPatch, "/link/"+url.PathEscape(slug), updateLinkBody{NewSlug: newSlug})
	if err != nil {
		return nil, err
	}
	var updated links.Link
	if err := json.Unmarshal(data, &updated); err != nil {
		return nil, fmt.Errorf("decoding updated link: %w", err)
	}
	return &updated, nil
}

func (c *Client) DeleteLink(ctx context.Context, slug string) error {
	_, err := c.call(ctx, http.MethodDelete, "/link/"+url.PathEscape(slug), nil)
	return err
}

// --- Analytics ---

func (c *Client) Analytics(ctx context.Context, slug string) (*analytics.Aggregate, error) {
	data, err := c.call(ctx, http.MethodGet, "/analytics/"+url.PathEscape(slug), nil)
	if err != nil {
		return nil, err
	}
	var agg analytics.Aggregate
	if err := json.Unmarshal(data, &agg); err != nil {
		return nil, fmt.Errorf("decoding analytics: %w", err)
	}
	return &agg, nil
}

func (c *Client) GlobalAnalytics(ctx context.Context) (*analytics.GlobalAggregate, error) {
	data, err := c.call(ctx, http.MethodGet, "/analytics/global", nil)
	if err != nil {
		return nil, err
	}
	var agg analytics.GlobalAggregate
	if err := json.Unmarshal(data, &agg); err != nil {
		return nil, fmt.Errorf("decoding global analytics: %w", err)
	}
	return &agg, nil
}

// ResolveTarget asks the server's redirect endpoint where a slug points
// without following the redirect. Redirect semantics stay server-owned; this
// only previews the Location target.
func (c *Client) ResolveTarget(ctx context.Context, slug string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/link/"+url.PathEscape(slug), nil)
	if err != nil {
		return "", err
	}
	req.Header.Set(correlationIDHeader, uuid.New().String())

	hc := &http.Client{
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
	resp, err := hc.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMovedPermanently && resp.StatusCode < http.StatusBadRequest {
		if loc := resp.Header.Get("Location"); loc != "" {
			return loc, nil
		}
	}
	if resp.StatusCode >= http.StatusBadRequest {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
		return "", c.asAPIError(resp.StatusCode, body)
	}
	return "", fmt.Errorf("no redirect target for %q (status %d)", slug, resp.StatusCode)
}

// call runs one API request and unwraps the response envelope. Non-2xx
// responses come back as *APIError; authentication-class failures also fire
// the unauthorized hook.
func (c *Client) call(ctx context.Context, method, path string, body any) (json.RawMessage, error) {
	fullURL := c.baseURL + path
	headers := map[string]string{
		"Accept":            "application/json",
		correlationIDHeader: uuid.New().String(),
	}
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			headers["Authorization"] = "Bearer " + token
		}
	}

	var resp *http.Response
	var err error
	switch method {
	case http.MethodGet:
		resp, err = c.http.Get(ctx, fullURL, nil, headers)
	case http.MethodPost:
		resp, err = c.http.Post(ctx, fullURL, body, headers)
	case http.MethodPatch:
		resp, err = c.http.Patch(ctx, fullURL, body, headers)
	case http.MethodDelete:
		resp, err = c.http.Delete(ctx, fullURL, headers)
	default:
		return nil, fmt.Errorf("unsupported method %q", method)
	}
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	logger.Debug("api call",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
	)

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, c.asAPIError(resp.StatusCode, raw)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("decoding response envelope: %w", err)
	}
	return env.Data, nil
}

func (c *Client) asAPIError(status int, body []byte) *APIError {
	message := ""
	var env envelope
	if err := json.Unmarshal(body, &env); err == nil {
		if env.Message != "" {
			message = env.Message
		} else if env.Error != "" {
			message = env.Error
		}
	}
	if message == "" {
		// The body was not the usual envelope; salvage what we can.
		message = CleanMessage(errors.New(string(body)), constants.MsgGenericError)
	}

	apiErr := &APIError{
		Status:  status,
		Kind:    classify(status, message),
		Message: message,
	}

	if apiErr.Kind == KindUnauthorized && c.onUnauthorized != nil {
		c.onUnauthorized()
	}
	return apiErr
}
