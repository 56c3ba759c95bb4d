// Package tokenstore keeps per-user OAuth2 tokens between the OAuth callback
// and later metadata pushes.
package tokenstore

import (
	"context"
	"errors"

	"github.com/reoring/linkedroles/client"
)

// ErrNotFound is returned by Load when no token is stored for the user.
var ErrNotFound = errors.New("tokenstore: token not found")

// Store persists tokens keyed by Discord user id.
type Store interface {
	Save(ctx context.Context, userID string, tok *client.Token) error
	Load(ctx context.Context, userID string) (*client.Token, error)
	Delete(ctx context.Context, userID string) error
}

var (
	_ Store = (*MemoryStore)(nil)
	_ Store = (*RedisStore)(nil)
)
