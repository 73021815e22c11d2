package memory

import (
	"time"

	"github.com/patrickmn/go-cache"
)

// DeliveredEventCache remembers event ids that already reached the student's
// sockets, so a broker redelivery of the same event is not pushed twice.
type DeliveredEventCache struct {
	cache *cache.Cache
}

func NewDeliveredEventCache(ttl time.Duration) *DeliveredEventCache {
	return &DeliveredEventCache{
		cache: cache.New(ttl, 2*ttl),
	}
}

func (c *DeliveredEventCache) Seen(eventId string) bool {
	if eventId == "" {
		return false
	}
	_, found := c.cache.Get(eventId)
	return found
}

func (c *DeliveredEventCache) MarkDelivered(eventId string) {
	if eventId == "" {
		return
	}
	c.cache.Set(eventId, struct{}{}, cache.DefaultExpiration)
}
