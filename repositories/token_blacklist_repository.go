package repositories

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const blacklistKeyPrefix = "auth:blacklist:"

// TokenBlacklistRepository remembers revoked tokens until they expire.
type TokenBlacklistRepository interface {
	Add(ctx context.Context, token string, expiresAt time.Time) error
	Contains(ctx context.Context, token string) (bool, error)
}

func tokenKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return blacklistKeyPrefix + hex.EncodeToString(sum[:])
}

type redisTokenBlacklist struct {
	client *redis.Client
}

func NewRedisTokenBlacklist(client *redis.Client) TokenBlacklistRepository {
	return &redisTokenBlacklist{client: client}
}

func (r *redisTokenBlacklist) Add(ctx context.Context, token string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	return r.client.Set(ctx, tokenKey(token), 1, ttl).Err()
}

func (r *redisTokenBlacklist) Contains(ctx context.Context, token string) (bool, error) {
	n, err := r.client.Exists(ctx, tokenKey(token)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// memoryTokenBlacklist is used when no Redis is configured. Entries are lost
// on restart.
type memoryTokenBlacklist struct {
	mu      sync.Mutex
	entries map[string]time.Time
	now     func() time.Time
}

func NewMemoryTokenBlacklist() TokenBlacklistRepository {
	return &memoryTokenBlacklist{entries: make(map[string]time.Time), now: time.Now}
}

func (m *memoryTokenBlacklist) Add(_ context.Context, token string, expiresAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	for k, exp := range m.entries {
		if !exp.After(now) {
			delete(m.entries, k)
		}
	}
	if expiresAt.After(now) {
		m.entries[tokenKey(token)] = expiresAt
	}
	return nil
}

func (m *memoryTokenBlacklist) Contains(_ context.Context, token string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	exp, ok := m.entries[tokenKey(token)]
	return ok && exp.After(m.now()), nil
}
