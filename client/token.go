package client

import (
	"time"

	json "github.com/goccy/go-json"
)

// Token is an OAuth2 token pair with an absolute expiry. In JSON, expires_in
// is whole seconds as on Discord's token endpoint.
type Token struct {
	AccessToken  string        `json:"access_token"`
	RefreshToken string        `json:"refresh_token"`
	TokenType    string        `json:"token_type,omitempty"`
	Scope        string        `json:"scope,omitempty"`
	ExpiresIn    time.Duration `json:"-"`
	ExpiresAt    time.Time     `json:"expires_at"`
}

type tokenJSON struct {
	plainToken
	ExpiresIn int64 `json:"expires_in"`
}

type plainToken Token

func (t Token) MarshalJSON() ([]byte, error) {
	return json.Marshal(tokenJSON{plainToken: plainToken(t), ExpiresIn: int64(t.ExpiresIn / time.Second)})
}

func (t *Token) UnmarshalJSON(data []byte) error {
	var v tokenJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*t = Token(v.plainToken)
	t.ExpiresIn = time.Duration(v.ExpiresIn) * time.Second
	return nil
}

// Expired reports whether the access token is expired at now.
func (t *Token) Expired(now time.Time) bool { return !now.Before(t.ExpiresAt) }

// IsExpired is Expired(time.Now()).
func (t *Token) IsExpired() bool { return t.Expired(time.Now()) }

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"` // seconds
	RefreshToken string `json:"refresh_token"`
	Scope        string `json:"scope"`
}

func (r tokenResponse) token(now time.Time) *Token {
	lifetime := time.Duration(r.ExpiresIn) * time.Second
	return &Token{
		AccessToken:  r.AccessToken,
		RefreshToken: r.RefreshToken,
		TokenType:    r.TokenType,
		Scope:        r.Scope,
		ExpiresIn:    lifetime,
		ExpiresAt:    now.Add(lifetime),
	}
}

// AuthorizationInfo is the response of GET /oauth2/@me.
type AuthorizationInfo struct {
	Application Application `json:"application"`
	Scopes      []string    `json:"scopes"`
	Expires     time.Time   `json:"expires"`
	User        *User       `json:"user,omitempty"`
}

// Application is the partial application object in AuthorizationInfo.
type Application struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// User is the partial user object in AuthorizationInfo.
type User struct {
	ID            string `json:"id"`
	Username      string `json:"username"`
	Discriminator string `json:"discriminator,omitempty"`
	GlobalName    string `json:"global_name,omitempty"`
	Avatar        string `json:"avatar,omitempty"`
}
