package registrydata

import (
	"time"
)

// Cache stores registry endpoints learned from bootstrap fetches. Static
// table data never passes through it. A zero TTL means the entry lives for
// the backend's natural lifetime (process lifetime for the memory backend).
type Cache interface {
	Get(key string) (value string, found bool, err error)
	Set(key, value string, ttl time.Duration) error
}
