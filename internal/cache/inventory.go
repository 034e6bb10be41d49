package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	postKeyPrefix     = "post:%d"
	postSlugKeyPrefix = "post:slug:%s"
	postsListKey      = "posts:list"
	categoriesAllKey  = "categories:all"
)

const (
	PostTTL       = 10 * time.Minute
	ListTTL       = 1 * time.Minute
	CategoriesTTL = 5 * time.Minute
)

func PostKey(postID uint) string {
	return fmt.Sprintf(postKeyPrefix, postID)
}

func PostSlugKey(slug string) string {
	return fmt.Sprintf(postSlugKeyPrefix, slug)
}

func PostsListKey() string {
	return postsListKey
}

func CategoriesKey() string {
	return categoriesAllKey
}

func Invalidate(ctx context.Context, keys ...string) {
	if client != nil && len(keys) > 0 {
		client.Del(ctx, keys...)
	}
}

// InvalidatePost drops the id- and slug-keyed entries plus the default listing.
func InvalidatePost(ctx context.Context, postID uint, slug string) {
	Invalidate(ctx, PostKey(postID), PostSlugKey(slug), postsListKey)
}

// InvalidateCategories drops the category listing and the default post listing,
// since post listings embed category summaries.
func InvalidateCategories(ctx context.Context) {
	Invalidate(ctx, categoriesAllKey, postsListKey)
}
