// File: utils/constants.go
package utils

import "time"

// AuthCachePrefix is the prefix used for Redis authorization cache keys. The
// entries expire with the token they pin, so there is no separate TTL here.
const AuthCachePrefix = "auth:"

// WorklistCachePrefix is the prefix for cached worklist pages.
const WorklistCachePrefix = "worklist:"

// WorklistCacheTTL bounds staleness of cached worklist pages between the
// explicit invalidation on mutation and the next refetch.
const WorklistCacheTTL = 2 * time.Minute
