package settings

import (
	"context"
	"errors"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
)

const (
	// short TTL, the access gate reads the flag on every request and a
	// few seconds of staleness when toggling is acceptable
	maintenanceCacheTTLSeconds = 5
	maintenanceCacheSize       = 512 * 1024
)

var maintenanceCacheKey = []byte(MaintenanceModeKey)

type settingsReader interface {
	Get(ctx context.Context, key string) (string, error)
}

// MaintenanceChecker reads the maintenance_mode flag through a small
// in-process cache.
type MaintenanceChecker struct {
	repo  settingsReader
	cache *freecache.Cache
}

func NewMaintenanceChecker(repo settingsReader) *MaintenanceChecker {
	return &MaintenanceChecker{
		repo:  repo,
		cache: freecache.NewCache(maintenanceCacheSize),
	}
}

// Enabled reports whether maintenance mode is on. A missing row and a
// failed lookup both read as "off" - fail open, same as the row-absent
// case which the single-row query cannot distinguish from a real error.
func (c *MaintenanceChecker) Enabled(ctx context.Context) bool {
	if cached, err := c.cache.Get(maintenanceCacheKey); err == nil {
		return string(cached) == "true"
	}

	value, err := c.repo.Get(ctx, MaintenanceModeKey)
	if err != nil {
		if !errors.Is(err, ErrSettingNotFound) {
			log.Errorf("maintenance mode lookup: %s", err)
		}
		value = "false"
	}

	if err := c.cache.Set(maintenanceCacheKey, []byte(value), maintenanceCacheTTLSeconds); err != nil {
		log.Warnf("cache maintenance mode value: %s", err)
	}

	return value == "true"
}

// Invalidate drops the cached flag so a toggle applies on the next request
func (c *MaintenanceChecker) Invalidate() {
	c.cache.Del(maintenanceCacheKey)
}
