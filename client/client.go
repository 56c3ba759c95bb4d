// Package client talks to Discord's OAuth2 and application role connection
// endpoints. Every method performs exactly one HTTP request; retries, backoff
// and token refresh scheduling belong to the caller.
package client

import (
	"bytes"
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/reoring/linkedroles"
)

const (
	// DefaultAPIBase is the versioned REST root.
	DefaultAPIBase = "https://discord.com/api/v10"
	// DefaultAuthorizeURL is the OAuth2 authorization page users are sent to.
	DefaultAuthorizeURL = "https://discord.com/api/oauth2/authorize"

	responseSizeLimit = 4 << 20
	userAgent         = "linkedroles (https://github.com/reoring/linkedroles, 1.0)"
)

// DefaultScopes are the scopes a linked role integration needs.
var DefaultScopes = []string{"role_connections.write", "identify"}

var (
	// ErrMissingCredential is returned when a call needs a Config value that was not set.
	ErrMissingCredential = errors.New("missing credential")
	// ErrNoToken is returned when a user call receives a nil or empty token.
	ErrNoToken = errors.New("no access token")
)

// Config holds the application credentials. Only ClientID is required up
// front; the rest are checked by the calls that need them.
type Config struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string
	// BotToken authenticates schema registration.
	BotToken string
}

// Client is a Discord linked roles API client. It is safe for concurrent use.
type Client struct {
	cfg          Config
	http         *http.Client
	apiBase      string
	authorizeURL string
	scopes       []string
	log          *zap.Logger
	now          func() time.Time
}

// New validates cfg and returns a Client.
func New(cfg Config, opts ...Option) (*Client, error) {
	if cfg.ClientID == "" {
		return nil, fmt.Errorf("client: %w: client id", ErrMissingCredential)
	}
	if _, err := strconv.ParseUint(cfg.ClientID, 10, 64); err != nil {
		return nil, fmt.Errorf("client: client id must be a snowflake: %w", err)
	}
	c := &Client{
		cfg:          cfg,
		http:         http.DefaultClient,
		apiBase:      DefaultAPIBase,
		authorizeURL: DefaultAuthorizeURL,
		scopes:       DefaultScopes,
		log:          zap.NewNop(),
		now:          time.Now,
	}
	for _, o := range opts {
		if o != nil {
			o(c)
		}
	}
	return c, nil
}

// ClientID returns the application id the client was configured with.
func (c *Client) ClientID() string { return c.cfg.ClientID }

// OAuthURL builds the authorization URL and a random state token. The caller
// must keep the state (for example in a short-lived cookie) and compare it with
// the state echoed to the redirect URI, see VerifyState.
func (c *Client) OAuthURL() (authURL, state string, err error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", "", fmt.Errorf("oauthURL: state: %w", err)
	}
	state = id.String()
	q := url.Values{}
	q.Set("client_id", c.cfg.ClientID)
	q.Set("redirect_uri", c.cfg.RedirectURI)
	q.Set("response_type", "code")
	q.Set("state", state)
	q.Set("scope", strings.Join(c.scopes, " "))
	q.Set("prompt", "consent")
	return c.authorizeURL + "?" + q.Encode(), state, nil
}

// VerifyState reports whether the state returned by Discord matches the one
// issued by OAuthURL.
func VerifyState(expected, got string) bool {
	if expected == "" || got == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(expected), []byte(got)) == 1
}

// GetOAuthToken exchanges an authorization code for a token pair.
func (c *Client) GetOAuthToken(ctx context.Context, code string) (*Token, error) {
	const op = "getOAuthToken"
	if err := c.requireSecret(op); err != nil {
		return nil, err
	}
	if c.cfg.RedirectURI == "" {
		return nil, fmt.Errorf("%s: %w: redirect uri", op, ErrMissingCredential)
	}
	form := url.Values{}
	form.Set("client_id", c.cfg.ClientID)
	form.Set("client_secret", c.cfg.ClientSecret)
	form.Set("grant_type", "authorization_code")
	form.Set("code", code)
	form.Set("redirect_uri", c.cfg.RedirectURI)
	return c.tokenRequest(ctx, op, form)
}

// RefreshToken exchanges the refresh token of tok for a new pair.
func (c *Client) RefreshToken(ctx context.Context, tok *Token) (*Token, error) {
	const op = "refreshToken"
	if err := c.requireSecret(op); err != nil {
		return nil, err
	}
	if tok == nil || tok.RefreshToken == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrNoToken)
	}
	form := url.Values{}
	form.Set("client_id", c.cfg.ClientID)
	form.Set("client_secret", c.cfg.ClientSecret)
	form.Set("grant_type", "refresh_token")
	form.Set("refresh_token", tok.RefreshToken)
	return c.tokenRequest(ctx, op, form)
}

func (c *Client) requireSecret(op string) error {
	if c.cfg.ClientSecret == "" {
		return fmt.Errorf("%s: %w: client secret", op, ErrMissingCredential)
	}
	return nil
}

func (c *Client) tokenRequest(ctx context.Context, op string, form url.Values) (*Token, error) {
	var res tokenResponse
	err := c.do(ctx, request{
		op:          op,
		method:      http.MethodPost,
		path:        "/oauth2/token",
		body:        []byte(form.Encode()),
		contentType: "application/x-www-form-urlencoded",
	}, &res)
	if err != nil {
		return nil, err
	}
	if res.AccessToken == "" {
		return nil, fmt.Errorf("%s: response has no access_token", op)
	}
	return res.token(c.now()), nil
}

// GetUserData returns the authorization info of the token, including the user.
func (c *Client) GetUserData(ctx context.Context, tok *Token) (*AuthorizationInfo, error) {
	const op = "getUserData"
	auth, err := bearer(op, tok)
	if err != nil {
		return nil, err
	}
	var out AuthorizationInfo
	if err := c.do(ctx, request{op: op, method: http.MethodGet, path: "/oauth2/@me", auth: auth}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// PushMetadata replaces the user's role connection with the value payload.
func (c *Client) PushMetadata(ctx context.Context, tok *Token, p linkedroles.Payload) (*linkedroles.RoleConnection, error) {
	const op = "pushMetadata"
	auth, err := bearer(op, tok)
	if err != nil {
		return nil, err
	}
	body, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("%s: encode payload: %w", op, err)
	}
	var out linkedroles.RoleConnection
	err = c.do(ctx, request{
		op:          op,
		method:      http.MethodPut,
		path:        c.roleConnectionPath(),
		auth:        auth,
		body:        body,
		contentType: "application/json",
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// GetMetadata returns the user's stored role connection.
func (c *Client) GetMetadata(ctx context.Context, tok *Token) (*linkedroles.RoleConnection, error) {
	const op = "getMetadata"
	auth, err := bearer(op, tok)
	if err != nil {
		return nil, err
	}
	var out linkedroles.RoleConnection
	if err := c.do(ctx, request{op: op, method: http.MethodGet, path: c.roleConnectionPath(), auth: auth}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RegisterMetadataSchema replaces the application's metadata records with
// the schema payload. It authenticates with the bot token.
func (c *Client) RegisterMetadataSchema(ctx context.Context, schema []linkedroles.FieldDescriptor) ([]linkedroles.FieldDescriptor, error) {
	const op = "registerMetadataSchema"
	if c.cfg.BotToken == "" {
		return nil, fmt.Errorf("%s: %w: bot token", op, ErrMissingCredential)
	}
	if schema == nil {
		schema = []linkedroles.FieldDescriptor{}
	}
	body, err := json.Marshal(schema)
	if err != nil {
		return nil, fmt.Errorf("%s: encode schema: %w", op, err)
	}
	var out []linkedroles.FieldDescriptor
	err = c.do(ctx, request{
		op:          op,
		method:      http.MethodPut,
		path:        c.schemaPath(),
		auth:        "Bot " + c.cfg.BotToken,
		body:        body,
		contentType: "application/json",
	}, &out)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// GetMetadataSchema returns the metadata records currently registered.
func (c *Client) GetMetadataSchema(ctx context.Context) ([]linkedroles.FieldDescriptor, error) {
	const op = "getMetadataSchema"
	if c.cfg.BotToken == "" {
		return nil, fmt.Errorf("%s: %w: bot token", op, ErrMissingCredential)
	}
	var out []linkedroles.FieldDescriptor
	if err := c.do(ctx, request{op: op, method: http.MethodGet, path: c.schemaPath(), auth: "Bot " + c.cfg.BotToken}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) roleConnectionPath() string {
	return "/users/@me/applications/" + c.cfg.ClientID + "/role-connection"
}

func (c *Client) schemaPath() string {
	return "/applications/" + c.cfg.ClientID + "/role-connections/metadata"
}

func bearer(op string, tok *Token) (string, error) {
	if tok == nil || tok.AccessToken == "" {
		return "", fmt.Errorf("%s: %w", op, ErrNoToken)
	}
	return "Bearer " + tok.AccessToken, nil
}

type request struct {
	op          string
	method      string
	path        string
	auth        string
	body        []byte
	contentType string
}

// do performs one request and decodes a 2xx JSON body into out.
func (c *Client) do(ctx context.Context, r request, out any) error {
	var body io.Reader
	if r.body != nil {
		body = bytes.NewReader(r.body)
	}
	req, err := http.NewRequestWithContext(ctx, r.method, c.apiBase+r.path, body)
	if err != nil {
		return fmt.Errorf("%s: %w", r.op, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	if r.auth != "" {
		req.Header.Set("Authorization", r.auth)
	}
	if r.contentType != "" {
		req.Header.Set("Content-Type", r.contentType)
	}

	start := time.Now()
	res, err := c.http.Do(req)
	if err != nil {
		c.log.Debug("discord request failed",
			zap.String("op", r.op), zap.String("method", r.method), zap.String("path", r.path), zap.Error(err))
		return fmt.Errorf("%s: %w", r.op, err)
	}
	defer res.Body.Close()

	data, err := io.ReadAll(io.LimitReader(res.Body, responseSizeLimit))
	c.log.Debug("discord request",
		zap.String("op", r.op),
		zap.String("method", r.method),
		zap.String("path", r.path),
		zap.Int("status", res.StatusCode),
		zap.Duration("elapsed", time.Since(start)))
	if err != nil {
		return fmt.Errorf("%s: read body: %w", r.op, err)
	}

	if err := checkResp(res, r.op, data); err != nil {
		return err
	}
	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%s: decode response: %w", r.op, err)
	}
	return nil
}
