package tokenstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	json "github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"

	"github.com/reoring/linkedroles/client"
)

// DefaultPrefix namespaces token keys.
const DefaultPrefix = "linkedroles:token:"

// RedisStore keeps tokens as JSON strings in Redis.
type RedisStore struct {
	client *redis.Client
	prefix string
	// ttl bounds how long a token survives after its last Save; 0 keeps it forever.
	ttl time.Duration
}

// RedisConfig holds Redis connection settings.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
	TTL      time.Duration
}

// NewRedisStore connects to Redis and verifies the connection.
func NewRedisStore(ctx context.Context, cfg RedisConfig) (*RedisStore, error) {
	rc := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rc.Ping(ctx).Err(); err != nil {
		_ = rc.Close()
		return nil, fmt.Errorf("tokenstore: redis ping %s: %w", cfg.Addr, err)
	}
	return NewRedisStoreWithClient(rc, cfg.Prefix, cfg.TTL), nil
}

// NewRedisStoreWithClient wraps an existing client. An empty prefix means DefaultPrefix.
func NewRedisStoreWithClient(rc *redis.Client, prefix string, ttl time.Duration) *RedisStore {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &RedisStore{client: rc, prefix: prefix, ttl: ttl}
}

func (r *RedisStore) Save(ctx context.Context, userID string, tok *client.Token) error {
	if userID == "" || tok == nil {
		return errors.New("tokenstore: user id and token are required")
	}
	data, err := json.Marshal(tok)
	if err != nil {
		return fmt.Errorf("tokenstore: encode token: %w", err)
	}
	return r.client.Set(ctx, r.prefix+userID, data, r.ttl).Err()
}

func (r *RedisStore) Load(ctx context.Context, userID string) (*client.Token, error) {
	data, err := r.client.Get(ctx, r.prefix+userID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	var tok client.Token
	if err := json.Unmarshal(data, &tok); err != nil {
		return nil, fmt.Errorf("tokenstore: decode token for %s: %w", userID, err)
	}
	return &tok, nil
}

func (r *RedisStore) Delete(ctx context.Context, userID string) error {
	return r.client.Del(ctx, r.prefix+userID).Err()
}

// Close closes the Redis connection.
func (r *RedisStore) Close() error {
	return r.client.Close()
}
