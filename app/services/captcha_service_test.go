package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChallengeStore_TakeIsSingleUse(t *testing.T) {
	store := newChallengeStore(time.Minute)
	defer store.Close()

	store.Set("c1", 120)

	angle, ok := store.Take("c1")
	assert.True(t, ok)
	assert.Equal(t, 120, angle)

	_, ok = store.Take("c1")
	assert.False(t, ok)
}

func TestChallengeStore_Expired(t *testing.T) {
	store := newChallengeStore(time.Minute)
	defer store.Close()

	store.mu.Lock()
	store.m["old"] = challengeEntry{targetAngle: 10, expiresAt: time.Now().Add(-time.Second)}
	store.mu.Unlock()

	_, ok := store.Take("old")
	assert.False(t, ok)
}

func TestCaptchaService_GenerateAndVerify(t *testing.T) {
	svc, err := NewCaptchaServiceRotate(time.Minute, 5, 220)
	require.NoError(t, err)
	defer svc.Close()

	ctx := context.Background()
	ch, err := svc.GenerateRotate(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, ch.ID)
	assert.NotEmpty(t, ch.MasterImageBase64)
	assert.NotEmpty(t, ch.ThumbImageBase64)

	impl := svc.(*captchaServiceImpl)
	impl.store.mu.Lock()
	target := impl.store.m[ch.ID].targetAngle
	impl.store.mu.Unlock()

	assert.True(t, svc.VerifyRotate(ctx, ch.ID, float64(target)))
	// consumed
	assert.False(t, svc.VerifyRotate(ctx, ch.ID, float64(target)))
	assert.False(t, svc.VerifyRotate(ctx, "unknown", 0))
}

func TestGenerateRotateBackgrounds(t *testing.T) {
	imgs := generateRotateBackgrounds(2, 100)
	require.Len(t, imgs, 2)
	for _, img := range imgs {
		assert.Equal(t, 100, img.Bounds().Dx())
		assert.Equal(t, 100, img.Bounds().Dy())
	}
}
