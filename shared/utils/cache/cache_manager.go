package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"contaia-backend/shared/config"
)

// platformScope stands in for the organization of users that have none.
const platformScope = "platform"

var ErrNotInitialized = errors.New("cache manager not initialized")

type CacheManager struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// PermissionCacheData is one cached decision. Generation is the user's
// permission generation at the time the decision was computed.
type PermissionCacheData struct {
	HasPermission  bool      `json:"has_permission"`
	UserID         string    `json:"user_id"`
	OrganizationID string    `json:"organization_id"`
	Permission     string    `json:"permission"`
	Generation     int64     `json:"generation"`
	CachedAt       time.Time `json:"cached_at"`
}

var DefaultTTL = 15 * time.Minute

// NewCacheManager wraps an existing client. A non-positive ttl uses DefaultTTL.
func NewCacheManager(client *redis.Client, ttl time.Duration, logger *zap.Logger) *CacheManager {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CacheManager{client: client, ttl: ttl, logger: logger}
}

// Connect dials Redis with cfg and verifies the connection.
func Connect(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*CacheManager, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr(),
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	cm := NewCacheManager(client, time.Duration(cfg.PermissionCacheTTL)*time.Minute, logger)
	cm.logger.Info("Redis cache manager initialized",
		zap.String("addr", cfg.RedisAddr()),
		zap.Int("db", cfg.RedisDB))
	return cm, nil
}

func scope(orgID string) string {
	if orgID == "" {
		return platformScope
	}
	return orgID
}

// GeneratePermissionKey generates a cache key for one permission decision
func GeneratePermissionKey(orgID, userID string, generation int64, permission string) string {
	return fmt.Sprintf("perm:org:%s:user:%s:g%d:%s", scope(orgID), userID, generation, permission)
}

// generationKey lives outside perm:* so flushing decisions never rewinds a
// user's generation.
func generationKey(userID string) string {
	return "permgen:user:" + userID
}

// PermissionGeneration returns the user's current permission generation, 0
// when it was never bumped. Read it before reading the user so that a
// decision computed from stale data is stored under a superseded key.
func (cm *CacheManager) PermissionGeneration(ctx context.Context, userID string) (int64, error) {
	if cm == nil || cm.client == nil {
		return 0, ErrNotInitialized
	}
	gen, err := cm.client.Get(ctx, generationKey(userID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read permission generation: %w", err)
	}
	return gen, nil
}

// SetPermissionCache caches a permission check result
func (cm *CacheManager) SetPermissionCache(ctx context.Context, data *PermissionCacheData) error {
	if cm == nil || cm.client == nil {
		return ErrNotInitialized
	}

	key := GeneratePermissionKey(data.OrganizationID, data.UserID, data.Generation, data.Permission)
	data.CachedAt = time.Now()

	jsonData, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal cache data: %w", err)
	}
	if err := cm.client.Set(ctx, key, jsonData, cm.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set cache: %w", err)
	}

	cm.logger.Debug("Permission cached", zap.String("key", key), zap.Duration("ttl", cm.ttl))
	return nil
}

// GetPermissionCache retrieves a cached permission check result
func (cm *CacheManager) GetPermissionCache(ctx context.Context, orgID, userID string, generation int64, permission string) (*PermissionCacheData, bool) {
	if cm == nil || cm.client == nil {
		return nil, false
	}

	key := GeneratePermissionKey(orgID, userID, generation, permission)
	result, err := cm.client.Get(ctx, key).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			cm.logger.Warn("Cache error", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}

	var data PermissionCacheData
	if err := json.Unmarshal([]byte(result), &data); err != nil {
		cm.logger.Warn("Failed to unmarshal cache data", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return &data, true
}

// InvalidateUserPermissions bumps the user's generation, then deletes the
// decisions cached under earlier ones.
func (cm *CacheManager) InvalidateUserPermissions(ctx context.Context, userID string) error {
	if cm == nil || cm.client == nil {
		return ErrNotInitialized
	}
	if err := cm.client.Incr(ctx, generationKey(userID)).Err(); err != nil {
		return fmt.Errorf("failed to bump permission generation: %w", err)
	}
	return cm.invalidateByPattern(ctx, fmt.Sprintf("perm:org:*:user:%s:*", userID))
}

// InvalidateOrgPermissions invalidates all cached decisions inside an organization
func (cm *CacheManager) InvalidateOrgPermissions(ctx context.Context, orgID string) error {
	if cm == nil || cm.client == nil {
		return ErrNotInitialized
	}
	return cm.invalidateByPattern(ctx, fmt.Sprintf("perm:org:%s:*", scope(orgID)))
}

// InvalidateAllPermissions invalidates all permission caches
func (cm *CacheManager) InvalidateAllPermissions(ctx context.Context) error {
	if cm == nil || cm.client == nil {
		return ErrNotInitialized
	}
	return cm.invalidateByPattern(ctx, "perm:*")
}

// invalidateByPattern invalidates cache entries matching a pattern
func (cm *CacheManager) invalidateByPattern(ctx context.Context, pattern string) error {
	iter := cm.client.Scan(ctx, 0, pattern, 0).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan keys: %w", err)
	}

	if len(keys) > 0 {
		if err := cm.client.Del(ctx, keys...).Err(); err != nil {
			return fmt.Errorf("failed to delete keys: %w", err)
		}
		cm.logger.Debug("Cache invalidated", zap.Int("keys", len(keys)), zap.String("pattern", pattern))
	}
	return nil
}

// GetCacheStats returns cache statistics
func (cm *CacheManager) GetCacheStats(ctx context.Context) (map[string]any, error) {
	if cm == nil || cm.client == nil {
		return nil, ErrNotInitialized
	}

	iter := cm.client.Scan(ctx, 0, "perm:*", 0).Iterator()
	keyCount := 0
	for iter.Next(ctx) {
		keyCount++
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan keys: %w", err)
	}

	return map[string]any{
		"total_permission_keys": keyCount,
		"ttl_seconds":           int(cm.ttl.Seconds()),
		"cache_manager_active":  true,
	}, nil
}

// Ping checks the Redis connection.
func (cm *CacheManager) Ping(ctx context.Context) error {
	if cm == nil || cm.client == nil {
		return ErrNotInitialized
	}
	return cm.client.Ping(ctx).Err()
}

// Close closes the cache manager connection
func (cm *CacheManager) Close() error {
	if cm != nil && cm.client != nil {
		return cm.client.Close()
	}
	return nil
}
