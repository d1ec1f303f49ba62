package config

// CacheConfig defines settings for the directory memoization cache.
// When Enabled is false every read goes straight to the directory.
// The cache itself has no TTL: consistency comes from explicit
// invalidation on writes, so the only tunables are the on/off switch
// and the notification backend used alongside it.
type CacheConfig struct {
	Enabled  bool
	Notifier string // "log" or "queue"
}

// LoadCacheConfig reads environment variables to build a CacheConfig.
// Defaults keep the cache on and notifications on the process log.
func LoadCacheConfig() CacheConfig {
	return CacheConfig{
		Enabled:  getenv("CACHE_ENABLED", "true") == "true",
		Notifier: getenv("NOTIFY_BACKEND", "log"),
	}
}
