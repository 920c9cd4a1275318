package gateway

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/piresc/ledgersync/internal/pkg/constants"
	"github.com/piresc/ledgersync/internal/pkg/models"
	"github.com/piresc/ledgersync/services/ledger"
)

// CacheGW drops response cache entries by tag. Each tag set
// cache:tag:{type}:{id} lists the cache keys built from that node.
type CacheGW struct {
	client *redis.Client
}

// NewCacheGW creates a new cache invalidation gateway
func NewCacheGW(client *redis.Client) ledger.CacheInvalidator {
	return &CacheGW{client: client}
}

// Invalidate deletes every key tagged with one of nodes, then the tag sets
func (g *CacheGW) Invalidate(ctx context.Context, nodes []models.CacheNode) error {
	var keys []string
	for _, node := range nodes {
		tag := fmt.Sprintf(constants.KeyCacheTag, node.Type, node.ID)
		members, err := g.client.SMembers(ctx, tag).Result()
		if err != nil {
			return fmt.Errorf("failed to read cache tag %s: %w", tag, err)
		}
		keys = append(keys, members...)
		keys = append(keys, tag)
	}
	if len(keys) == 0 {
		return nil
	}
	if err := g.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to delete %d cache keys: %w", len(keys), err)
	}
	return nil
}

// releaseScript deletes the lock only when it still holds our token
const releaseScript = `
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0`

// LockGW is a Redis lease used for single-flight work across replicas
type LockGW struct {
	client   *redis.Client
	newToken func() string
}

// NewLockGW creates a new lock gateway
func NewLockGW(client *redis.Client) ledger.Locker {
	return &LockGW{client: client, newToken: uuid.NewString}
}

// Acquire sets key to a fresh token when it is free
func (g *LockGW) Acquire(ctx context.Context, key string, ttl time.Duration) (string, bool, error) {
	token := g.newToken()
	ok, err := g.client.SetNX(ctx, key, token, ttl).Result()
	if err != nil {
		return "", false, fmt.Errorf("failed to acquire lock %s: %w", key, err)
	}
	if !ok {
		return "", false, nil
	}
	return token, true, nil
}

// Release frees key if token still owns it
func (g *LockGW) Release(ctx context.Context, key, token string) error {
	if err := g.client.Eval(ctx, releaseScript, []string{key}, token).Err(); err != nil {
		return fmt.Errorf("failed to release lock %s: %w", key, err)
	}
	return nil
}
