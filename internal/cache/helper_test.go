package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func setupCache(t *testing.T) {
	t.Helper()
	mr := miniredis.RunT(t)
	SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { SetClient(nil) })
}

func TestSetJSONThenGetJSON(t *testing.T) {
	setupCache(t)
	ctx := context.Background()

	require.NoError(t, SetJSON(ctx, "k", payload{Name: "ember", Count: 3}, time.Minute))

	var got payload
	hit, err := GetJSON(ctx, "k", &got)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, payload{Name: "ember", Count: 3}, got)
}

func TestGetJSONMissIsNotAnError(t *testing.T) {
	setupCache(t)

	var got payload
	hit, err := GetJSON(context.Background(), "absent", &got)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestNilClientDisablesCache(t *testing.T) {
	SetClient(nil)

	var got payload
	hit, err := GetJSON(context.Background(), "k", &got)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.NoError(t, SetJSON(context.Background(), "k", payload{}, time.Minute))
}

func TestCacheAsideFetchesOnceThenServesCached(t *testing.T) {
	setupCache(t)
	ctx := context.Background()

	fetches := 0
	var first payload
	fetch := func() error {
		fetches++
		first = payload{Name: "stone", Count: 1}
		return nil
	}

	require.NoError(t, CacheAside(ctx, "aside", &first, time.Minute, fetch))

	var second payload
	require.NoError(t, CacheAside(ctx, "aside", &second, time.Minute, fetch))

	assert.Equal(t, 1, fetches)
	assert.Equal(t, first, second)
}

func TestCacheAsidePropagatesFetchError(t *testing.T) {
	setupCache(t)

	boom := errors.New("boom")
	var dest payload
	err := CacheAside(context.Background(), "bad", &dest, time.Minute, func() error {
		return boom
	})
	assert.ErrorIs(t, err, boom)
}

func TestInvalidatePostDropsPostAndFeed(t *testing.T) {
	setupCache(t)
	ctx := context.Background()

	require.NoError(t, SetJSON(ctx, PostKey("p1"), payload{Name: "p"}, time.Minute))
	require.NoError(t, SetJSON(ctx, FeedKey, []string{"p1"}, time.Minute))

	InvalidatePost(ctx, "p1")

	var got payload
	hit, err := GetJSON(ctx, PostKey("p1"), &got)
	require.NoError(t, err)
	assert.False(t, hit)

	var feed []string
	hit, err = GetJSON(ctx, FeedKey, &feed)
	require.NoError(t, err)
	assert.False(t, hit)
}
