package client

import (
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the HTTP client used for every request.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithAPIBase overrides the REST root (tests, proxies).
func WithAPIBase(base string) Option {
	return func(c *Client) { c.apiBase = strings.TrimRight(base, "/") }
}

// WithAuthorizeURL overrides the OAuth2 authorization page.
func WithAuthorizeURL(u string) Option {
	return func(c *Client) { c.authorizeURL = u }
}

// WithScopes replaces DefaultScopes.
func WithScopes(scopes ...string) Option {
	return func(c *Client) { c.scopes = append([]string(nil), scopes...) }
}

// WithLogger enables debug request logging.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

// WithClock sets the time source used for token expiry.
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		if now != nil {
			c.now = now
		}
	}
}
