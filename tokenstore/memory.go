package tokenstore

import (
	"context"
	"errors"
	"sync"

	"github.com/reoring/linkedroles/client"
)

// MemoryStore is an in-process Store. Tokens are copied on the way in and out.
type MemoryStore struct {
	mu     sync.RWMutex
	tokens map[string]client.Token
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{tokens: make(map[string]client.Token)}
}

func (m *MemoryStore) Save(ctx context.Context, userID string, tok *client.Token) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if userID == "" || tok == nil {
		return errors.New("tokenstore: user id and token are required")
	}
	m.mu.Lock()
	m.tokens[userID] = *tok
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Load(ctx context.Context, userID string) (*client.Token, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	tok, ok := m.tokens[userID]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	return &tok, nil
}

func (m *MemoryStore) Delete(ctx context.Context, userID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	delete(m.tokens, userID)
	m.mu.Unlock()
	return nil
}
