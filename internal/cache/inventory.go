package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	PostKeyPrefix     = "post:%s"
	ProfileKeyPrefix  = "profile:%s"
	IdentityKeyPrefix = "identity:%s"
	FeedKey           = "posts:feed"
)

const (
	PostTTL     = 5 * time.Minute
	ProfileTTL  = 5 * time.Minute
	IdentityTTL = 5 * time.Minute
	FeedTTL     = 30 * time.Second
)

func PostKey(postID string) string {
	return fmt.Sprintf(PostKeyPrefix, postID)
}

func ProfileKey(userID string) string {
	return fmt.Sprintf(ProfileKeyPrefix, userID)
}

func IdentityKey(userID string) string {
	return fmt.Sprintf(IdentityKeyPrefix, userID)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidatePost(ctx context.Context, postID string) {
	Invalidate(ctx, PostKey(postID))
	Invalidate(ctx, FeedKey)
}

func InvalidateProfile(ctx context.Context, userID string) {
	Invalidate(ctx, ProfileKey(userID))
}
