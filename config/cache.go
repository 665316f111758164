package config

import (
	"time"

	"github.com/patrickmn/go-cache"
)

var (
	// APICache holds RailRadar responses for train/schedule lookups.
	APICache *cache.Cache
	// SearchCache holds merged between-stations API results.
	SearchCache *cache.Cache
)

const (
	apiCleanupInterval    = 30 * time.Minute
	searchCacheDuration   = 10 * time.Minute
	searchCleanupInterval = 30 * time.Minute
)

func InitCache() {
	apiTTL := time.Duration(getEnvAsInt("API_CACHE_TTL_MINUTES", 10)) * time.Minute
	APICache = cache.New(apiTTL, apiCleanupInterval)
	SearchCache = cache.New(searchCacheDuration, searchCleanupInterval)
}

func ClearAllCaches() {
	APICache.Flush()
	SearchCache.Flush()
}
