package permission

import (
	"context"
	"time"

	"go.uber.org/zap"

	"contaia-backend/shared/tenancy"
	"contaia-backend/shared/utils/cache"
)

const cacheType = "redis"

// CheckResult is one permission decision and where it came from.
type CheckResult struct {
	UserID     string `json:"user_id"`
	Permission string `json:"permission"`
	Allowed    bool   `json:"allowed"`
	Source     string `json:"source"` // "cache" or "registry"
}

// CacheRecorder receives cache hit/miss notifications.
type CacheRecorder interface {
	RecordCacheHit(cacheType string)
	RecordCacheMiss(cacheType string)
}

// Checker answers permission questions against the registry, consulting the
// Redis cache first when one is configured.
type Checker struct {
	registry *tenancy.Registry
	cache    *cache.CacheManager
	recorder CacheRecorder
	logger   *zap.Logger
	timeout  time.Duration
}

// NewChecker builds a checker. cache and recorder may be nil.
func NewChecker(registry *tenancy.Registry, cm *cache.CacheManager, recorder CacheRecorder, logger *zap.Logger) *Checker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Checker{
		registry: registry,
		cache:    cm,
		recorder: recorder,
		logger:   logger,
		timeout:  2 * time.Second,
	}
}

// Cache returns the Redis cache behind the checker, nil when disabled.
func (pc *Checker) Cache() *cache.CacheManager { return pc.cache }

// CheckPermission reports whether the user holds permission.
func (pc *Checker) CheckPermission(ctx context.Context, userID, permission string) (*CheckResult, error) {
	useCache := pc.cache != nil
	var gen int64
	if useCache {
		var err error
		if gen, err = pc.cache.PermissionGeneration(ctx, userID); err != nil {
			pc.logger.Warn("Skipping permission cache", zap.String("user_id", userID), zap.Error(err))
			useCache = false
		}
	}

	u, err := pc.registry.User(userID)
	if err != nil {
		return nil, err
	}

	if useCache {
		if data, ok := pc.cache.GetPermissionCache(ctx, u.OrganizationID, userID, gen, permission); ok {
			pc.hit()
			return &CheckResult{UserID: userID, Permission: permission, Allowed: data.HasPermission, Source: "cache"}, nil
		}
		pc.miss()
	}

	allowed := tenancy.HasPermission(u, permission)
	if useCache {
		err := pc.cache.SetPermissionCache(ctx, &cache.PermissionCacheData{
			HasPermission:  allowed,
			UserID:         userID,
			OrganizationID: u.OrganizationID,
			Permission:     permission,
			Generation:     gen,
		})
		if err != nil {
			pc.logger.Warn("Failed to cache permission decision", zap.String("user_id", userID), zap.Error(err))
		}
	}
	return &CheckResult{UserID: userID, Permission: permission, Allowed: allowed, Source: "registry"}, nil
}

// BatchCheckPermissions checks several permissions for one user.
func (pc *Checker) BatchCheckPermissions(ctx context.Context, userID string, permissions []string) (map[string]bool, error) {
	results := make(map[string]bool, len(permissions))
	for _, p := range permissions {
		res, err := pc.CheckPermission(ctx, userID, p)
		if err != nil {
			return nil, err
		}
		results[p] = res.Allowed
	}
	return results, nil
}

// Invalidate is a tenancy listener dropping cached decisions made stale by
// a committed change.
func (pc *Checker) Invalidate(ev tenancy.Event) {
	if pc.cache == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), pc.timeout)
	defer cancel()

	var err error
	switch ev.Type {
	case tenancy.EventUserUpdated, tenancy.EventUserRoleChanged, tenancy.EventUserDeleted:
		err = pc.cache.InvalidateUserPermissions(ctx, ev.EntityID)
	case tenancy.EventOrganizationDeleted:
		err = pc.cache.InvalidateOrgPermissions(ctx, ev.EntityID)
	default:
		return
	}
	if err != nil {
		pc.logger.Warn("Failed to invalidate permission cache",
			zap.String("event", string(ev.Type)),
			zap.String("entity_id", ev.EntityID),
			zap.Error(err))
	}
}

func (pc *Checker) hit() {
	if pc.recorder != nil {
		pc.recorder.RecordCacheHit(cacheType)
	}
}

func (pc *Checker) miss() {
	if pc.recorder != nil {
		pc.recorder.RecordCacheMiss(cacheType)
	}
}
