package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// CacheService provides caching functionality using Redis
type CacheService struct {
	client *redis.Client
}

// NewCacheService creates a new cache service
func NewCacheService(client *redis.Client) *CacheService {
	return &CacheService{client: client}
}

// Get retrieves a value from cache
func (cs *CacheService) Get(ctx context.Context, key string, dest interface{}) error {
	val, err := cs.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrCacheMiss
		}
		return fmt.Errorf("failed to get cache key %s: %w", key, err)
	}

	if err := json.Unmarshal(val, dest); err != nil {
		return fmt.Errorf("failed to unmarshal cached value for key %s: %w", key, err)
	}

	return nil
}

// InvalidateByTag removes all cached values associated with a tag and bumps
// the tag version so writes prepared before the call are discarded
func (cs *CacheService) InvalidateByTag(ctx context.Context, tag string) error {
	key := tagKey(tag)

	keys, err := cs.client.SMembers(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("failed to get keys for tag %s: %w", tag, err)
	}

	keys = append(keys, key)
	_, err = cs.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, versionKey(tag))
		pipe.Del(ctx, keys...)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to invalidate tag %s: %w", tag, err)
	}

	return nil
}

// Version returns the invalidation counter of a tag, 0 when never invalidated
func (cs *CacheService) Version(ctx context.Context, tag string) (int64, error) {
	v, err := cs.client.Get(ctx, versionKey(tag)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read version of tag %s: %w", tag, err)
	}
	return v, nil
}

// SetIfVersion stores a value under tag only while the tag is still at
// version. It reports false when an invalidation happened in between.
func (cs *CacheService) SetIfVersion(ctx context.Context, key string, value interface{}, expiration time.Duration, tag string, version int64) (bool, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return false, fmt.Errorf("failed to marshal value for key %s: %w", key, err)
	}

	vkey := versionKey(tag)
	stored := false
	err = cs.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, vkey).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if current != version {
			return nil
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, expiration)
			pipe.SAdd(ctx, tagKey(tag), key)
			pipe.Expire(ctx, tagKey(tag), expiration+time.Hour)
			return nil
		})
		if err == nil {
			stored = true
		}
		return err
	}, vkey)

	if errors.Is(err, redis.TxFailedErr) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to set cache key %s: %w", key, err)
	}
	return stored, nil
}

// Ping checks that Redis answers
func (cs *CacheService) Ping(ctx context.Context) error {
	return cs.client.Ping(ctx).Err()
}

func tagKey(tag string) string {
	return fmt.Sprintf("tag:%s", tag)
}

func versionKey(tag string) string {
	return fmt.Sprintf("version:%s", tag)
}

// DashboardKey is the cache key of one tenant's dashboard for one day
func DashboardKey(tenantID string, day time.Time) string {
	return fmt.Sprintf("dashboard:tenant:%s:day:%s", tenantID, day.Format("2006-01-02"))
}

// TenantTag groups every cached value derived from one tenant's records
func TenantTag(tenantID string) string {
	return fmt.Sprintf("tenant:%s", tenantID)
}
