package memory

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/patrickmn/go-cache"
)

// ReplyCache remembers generated replies by prompt so identical questions
// from identical profiles skip the model round trip.
type ReplyCache struct {
	cache *cache.Cache
}

// NewReplyCache returns nil when ttl is not positive; a nil *ReplyCache is a no-op.
func NewReplyCache(ttl time.Duration) *ReplyCache {
	if ttl <= 0 {
		return nil
	}
	// Purge expired items every 10 minutes, or sooner for short TTLs
	cleanup := 10 * time.Minute
	if ttl < cleanup {
		cleanup = ttl
	}
	return &ReplyCache{
		cache: cache.New(ttl, cleanup),
	}
}

func key(prompt string) string {
	sum := sha256.Sum256([]byte(prompt))
	return hex.EncodeToString(sum[:])
}

func (r *ReplyCache) Save(prompt, reply string) {
	if r == nil {
		return
	}
	r.cache.Set(key(prompt), reply, cache.DefaultExpiration)
}

func (r *ReplyCache) Get(prompt string) (string, bool) {
	if r == nil {
		return "", false
	}
	if x, found := r.cache.Get(key(prompt)); found {
		return x.(string), true
	}
	return "", false
}
