package subscribers

import (
	"context"

	"github.com/redis/go-redis/v9"

	"github.com/hiredeck/hiredeck/internal/domain/entity"
	"github.com/hiredeck/hiredeck/internal/events"
	"github.com/hiredeck/hiredeck/pkg/helpers"
)

// Cache key layout shared with the read side. Entity keys are per id,
// list keys are dropped wholesale on any write to the collection.
const (
	CompanyCacheKeyPrefix = "cache:company:"
	CompanyListCacheKey   = "cache:companies:list"
)

// CompanyCacheKey returns the read-through cache key for one company.
func CompanyCacheKey(id string) string {
	return CompanyCacheKeyPrefix + id
}

// CacheInvalidator drops stale Redis cache entries when a company changes.
type CacheInvalidator struct {
	RDB *redis.Client
}

func NewCacheInvalidator(rdb *redis.Client) *CacheInvalidator {
	return &CacheInvalidator{RDB: rdb}
}

func (c *CacheInvalidator) Register(bus *events.Bus) {
	for _, kind := range []events.Kind{events.Create, events.Update, events.Delete} {
		bus.Subscribe(events.Topic{Entity: entity.KindCompanies, Kind: kind}, "cache-invalidator", c.invalidate)
	}
}

func (c *CacheInvalidator) invalidate(ctx context.Context, e events.Event) error {
	if c.RDB == nil {
		return nil
	}
	keys := []string{CompanyListCacheKey}
	if co, ok := e.Payload.(*entity.Company); ok {
		keys = append(keys, CompanyCacheKey(co.ID))
	}
	return helpers.RedisDel(ctx, c.RDB, keys...)
}
