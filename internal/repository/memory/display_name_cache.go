package memory

import (
	"time"

	"github.com/patrickmn/go-cache"
)

// DisplayNameCache remembers the username behind a user id so that repeated
// websocket handshakes skip the database.
type DisplayNameCache struct {
	cache *cache.Cache
}

func NewDisplayNameCache(ttl time.Duration) *DisplayNameCache {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &DisplayNameCache{
		cache: cache.New(ttl, 2*ttl),
	}
}

func (r *DisplayNameCache) Save(userID, username string) {
	r.cache.Set(userID, username, cache.DefaultExpiration)
}

func (r *DisplayNameCache) Get(userID string) (string, bool) {
	if x, found := r.cache.Get(userID); found {
		return x.(string), true
	}
	return "", false
}

func (r *DisplayNameCache) Delete(userID string) {
	r.cache.Delete(userID)
}
