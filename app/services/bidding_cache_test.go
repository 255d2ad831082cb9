package services

import (
	"context"
	"testing"

	"github.com/amirphl/Rentora/pricing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBiddingCacheKey(t *testing.T) {
	assert.Equal(t, "rentora:bidding_config:42", biddingCacheKey("rentora:", 42))
	assert.Equal(t, "bidding_config:7", biddingCacheKey("", 7))
}

func TestEncodeDecodeTiersKeepsDisabledTiers(t *testing.T) {
	daily := 85.0
	in := pricing.BiddingTiers{Daily: &daily}

	bs, err := encodeTiers(in)
	require.NoError(t, err)
	assert.JSONEq(t, `{"daily":85,"weekly":null,"monthly":null}`, string(bs))

	out, err := decodeTiers(bs)
	require.NoError(t, err)
	require.NotNil(t, out.Daily)
	assert.Equal(t, 85.0, *out.Daily)
	assert.Nil(t, out.Weekly)
	assert.Nil(t, out.Monthly)
}

func TestDecodeTiersRejectsGarbage(t *testing.T) {
	_, err := decodeTiers([]byte("not-json"))
	assert.Error(t, err)
}

func TestNoopBiddingConfigCache(t *testing.T) {
	ctx := context.Background()
	c := NewNoopBiddingConfigCache()

	pct := 80.0
	require.NoError(t, c.Set(ctx, 1, pricing.BiddingTiers{Weekly: &pct}))

	_, hit, err := c.Get(ctx, 1)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.NoError(t, c.Invalidate(ctx, 1))
}
