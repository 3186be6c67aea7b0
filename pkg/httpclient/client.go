// Package httpclient is a small retrying HTTP client for JSON APIs. Transient
// failures (network errors and 5xx responses) are retried with jittered
// exponential backoff behind a circuit breaker; 4xx responses are returned to
// the caller untouched, since repeating them cannot help.
package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"net/url"
	"time"
)

const (
	defaultMaxRetries = 3
	baseRetryDelay    = 100 * time.Millisecond
	maxJitter         = 100 * time.Millisecond
)

type Options struct {
	Timeout     time.Duration
	MaxFailures int           // breaker trips after this many consecutive failures
	OpenFor     time.Duration // how long the breaker stays open
	// Transport overrides the default transport, e.g. for tracing.
	Transport http.RoundTripper
}

type Client struct {
	client  *http.Client
	breaker *Breaker
}

func New(opts Options) *Client {
	hc := &http.Client{Timeout: opts.Timeout}
	if opts.Transport != nil {
		hc.Transport = opts.Transport
	}
	return &Client{
		client:  hc,
		breaker: NewBreaker(opts.MaxFailures, opts.OpenFor),
	}
}

func (c *Client) Get(ctx context.Context, rawURL string, query map[string]string, headers map[string]string) (*http.Response, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, err
	}
	if len(query) > 0 {
		q := u.Query()
		for k, v := range query {
			q.Set(k, v)
		}
		u.RawQuery = q.Encode()
	}
	return c.do(ctx, http.MethodGet, u.String(), nil, headers)
}

func (c *Client) Post(ctx context.Context, url string, body any, headers map[string]string) (*http.Response, error) {
	return c.do(ctx, http.MethodPost, url, body, headers)
}

func (c *Client) Patch(ctx context.Context, url string, body any, headers map[string]string) (*http.Response, error) {
	return c.do(ctx, http.MethodPatch, url, body, headers)
}

func (c *Client) Delete(ctx context.Context, url string, headers map[string]string) (*http.Response, error) {
	return c.do(ctx, http.MethodDelete, url, nil, headers)
}

func (c *Client) do(ctx context.Context, method, url string, body any, headers map[string]string) (*http.Response, error) {
	if err := c.breaker.Allow(); err != nil {
		slog.Error("request blocked by circuit breaker", "method", method, "url", url)
		return nil, err
	}

	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encoding request body: %w", err)
		}
	}

	var lastErr error
	var resp *http.Response

	for attempt := 0; attempt <= defaultMaxRetries; attempt++ {
		req, err := c.newRequest(ctx, method, url, payload, headers)
		if err != nil {
			return nil, err
		}

		resp, lastErr = c.client.Do(req)

		if lastErr == nil && resp.StatusCode < http.StatusInternalServerError {
			c.breaker.Success()
			return resp, nil
		}

		if attempt == defaultMaxRetries {
			break
		}

		if resp != nil {
			_, _ = io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
		}

		delay := baseRetryDelay<<attempt + rand.N(maxJitter)
		slog.Warn("request failed, retrying",
			"method", method,
			"attempt", attempt+1,
			"delay", delay.String(),
		)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}
	}

	c.breaker.Failure()

	if lastErr != nil {
		return nil, fmt.Errorf("all retries failed: %w", lastErr)
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	return nil, fmt.Errorf("all retries failed, last status: %s", resp.Status)
}

func (c *Client) newRequest(ctx context.Context, method, url string, payload []byte, headers map[string]string) (*http.Request, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, err
	}

	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	return req, nil
}
