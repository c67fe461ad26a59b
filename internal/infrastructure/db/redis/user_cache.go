package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/bankline/auth-service/internal/core/domain"
)

const userViewTTL = 5 * time.Minute

// UserCache is a read-through cache of public user views backed by Redis.
// Key format: user:<id>
//
// Entries expire after userViewTTL and are invalidated eagerly on deletion.
// User records are immutable after creation apart from deletion, so a stale
// window never serves wrong field values, only a just-deleted user.
type UserCache struct {
	client *redis.Client
}

// NewUserCache creates a UserCache wrapping the given Redis client.
func NewUserCache(client *redis.Client) *UserCache {
	return &UserCache{client: client}
}

// Get returns the cached view for id, or (nil, nil) on a cache miss.
func (c *UserCache) Get(ctx context.Context, id string) (*domain.PublicUser, error) {
	raw, err := c.client.Get(ctx, c.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("user cache get: %w", err)
	}

	var view domain.PublicUser
	if err := json.Unmarshal(raw, &view); err != nil {
		return nil, fmt.Errorf("user cache decode: %w", err)
	}
	return &view, nil
}

// Set stores the view with the standard TTL.
func (c *UserCache) Set(ctx context.Context, user *domain.PublicUser) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("user cache encode: %w", err)
	}
	return c.client.Set(ctx, c.key(user.ID), raw, userViewTTL).Err()
}

// Invalidate drops the cached view for id, if any.
func (c *UserCache) Invalidate(ctx context.Context, id string) error {
	return c.client.Del(ctx, c.key(id)).Err()
}

func (c *UserCache) key(id string) string {
	return "user:" + id
}
