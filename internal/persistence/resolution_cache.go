package persistence

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/onetouch-fm/facility-service/internal/domain"
	"github.com/onetouch-fm/facility-service/internal/routing"
)

const resolutionTTL = 5 * time.Minute

// ResolutionCache memoizes partner resolution results per company. Cache keys
// embed a per-company generation counter that contract mutations bump, so a
// changed contract set invalidates every cached answer for that company
// without key scans.
type ResolutionCache struct {
	client *redis.Client
}

// NewResolutionCache wraps a Redis handle; a nil client disables caching.
func NewResolutionCache(r *Redis) *ResolutionCache {
	if r == nil {
		return &ResolutionCache{}
	}
	return &ResolutionCache{client: r.Client}
}

type cachedResolution struct {
	PartnerID   *string `json:"partner_id"`
	PartnerName string  `json:"partner_name"`
}

// Get returns a memoized resolution, if any.
func (c *ResolutionCache) Get(ctx context.Context, companyCode, officeCode string, category domain.Category) (routing.Resolution, bool) {
	if c.client == nil {
		return routing.Resolution{}, false
	}
	key, err := c.resolutionKey(ctx, companyCode, officeCode, category)
	if err != nil {
		return routing.Resolution{}, false
	}
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return routing.Resolution{}, false
	}
	var cached cachedResolution
	if err := json.Unmarshal(raw, &cached); err != nil {
		return routing.Resolution{}, false
	}
	return routing.Resolution{PartnerID: cached.PartnerID, PartnerName: cached.PartnerName}, true
}

// Put memoizes a resolution outcome, including the unassigned one.
func (c *ResolutionCache) Put(ctx context.Context, companyCode, officeCode string, category domain.Category, res routing.Resolution) {
	if c.client == nil {
		return
	}
	key, err := c.resolutionKey(ctx, companyCode, officeCode, category)
	if err != nil {
		return
	}
	raw, err := json.Marshal(cachedResolution{PartnerID: res.PartnerID, PartnerName: res.PartnerName})
	if err != nil {
		return
	}
	_ = c.client.Set(ctx, key, raw, resolutionTTL).Err()
}

// Invalidate bumps the company's generation after a contract mutation.
func (c *ResolutionCache) Invalidate(ctx context.Context, companyCode string) {
	if c.client == nil {
		return
	}
	_ = c.client.Incr(ctx, generationKey(companyCode)).Err()
}

func (c *ResolutionCache) resolutionKey(ctx context.Context, companyCode, officeCode string, category domain.Category) (string, error) {
	gen, err := c.client.Get(ctx, generationKey(companyCode)).Int64()
	if err != nil && err != redis.Nil {
		return "", err
	}
	return fmt.Sprintf("contracts:resolve:%s:%d:%s:%s", companyCode, gen, officeCode, category), nil
}

func generationKey(companyCode string) string {
	return "contracts:gen:" + companyCode
}
