package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/amirphl/Rentora/pricing"
	"github.com/redis/go-redis/v9"
)

// BiddingConfigCache keeps a company's bidding tiers close to the bid evaluation path.
// A company without a stored configuration is cached as all tiers disabled.
type BiddingConfigCache interface {
	Get(ctx context.Context, companyID uint) (pricing.BiddingTiers, bool, error)
	Set(ctx context.Context, companyID uint, tiers pricing.BiddingTiers) error
	Invalidate(ctx context.Context, companyID uint) error
}

type cachedTiers struct {
	Daily   *float64 `json:"daily"`
	Weekly  *float64 `json:"weekly"`
	Monthly *float64 `json:"monthly"`
}

type redisBiddingConfigCache struct {
	rc     *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisBiddingConfigCache stores tiers as JSON under prefix+"bidding_config:<companyID>"
func NewRedisBiddingConfigCache(rc *redis.Client, prefix string, ttl time.Duration) BiddingConfigCache {
	return &redisBiddingConfigCache{rc: rc, prefix: prefix, ttl: ttl}
}

func biddingCacheKey(prefix string, companyID uint) string {
	return fmt.Sprintf("%sbidding_config:%d", prefix, companyID)
}

func encodeTiers(t pricing.BiddingTiers) ([]byte, error) {
	return json.Marshal(cachedTiers{Daily: t.Daily, Weekly: t.Weekly, Monthly: t.Monthly})
}

func decodeTiers(bs []byte) (pricing.BiddingTiers, error) {
	var c cachedTiers
	if err := json.Unmarshal(bs, &c); err != nil {
		return pricing.BiddingTiers{}, err
	}
	return pricing.BiddingTiers{Daily: c.Daily, Weekly: c.Weekly, Monthly: c.Monthly}, nil
}

func (c *redisBiddingConfigCache) Get(ctx context.Context, companyID uint) (pricing.BiddingTiers, bool, error) {
	bs, err := c.rc.Get(ctx, biddingCacheKey(c.prefix, companyID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return pricing.BiddingTiers{}, false, nil
	}
	if err != nil {
		return pricing.BiddingTiers{}, false, err
	}

	tiers, err := decodeTiers(bs)
	if err != nil {
		// a corrupt entry is treated as a miss and overwritten on the next Set
		return pricing.BiddingTiers{}, false, nil
	}
	return tiers, true, nil
}

func (c *redisBiddingConfigCache) Set(ctx context.Context, companyID uint, tiers pricing.BiddingTiers) error {
	bs, err := encodeTiers(tiers)
	if err != nil {
		return err
	}
	return c.rc.Set(ctx, biddingCacheKey(c.prefix, companyID), bs, c.ttl).Err()
}

func (c *redisBiddingConfigCache) Invalidate(ctx context.Context, companyID uint) error {
	return c.rc.Del(ctx, biddingCacheKey(c.prefix, companyID)).Err()
}

type noopBiddingConfigCache struct{}

// NewNoopBiddingConfigCache always misses. Used when the cache is disabled.
func NewNoopBiddingConfigCache() BiddingConfigCache {
	return noopBiddingConfigCache{}
}

func (noopBiddingConfigCache) Get(context.Context, uint) (pricing.BiddingTiers, bool, error) {
	return pricing.BiddingTiers{}, false, nil
}

func (noopBiddingConfigCache) Set(context.Context, uint, pricing.BiddingTiers) error { return nil }

func (noopBiddingConfigCache) Invalidate(context.Context, uint) error { return nil }
