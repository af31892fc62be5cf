package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"luxestandard/internal/domain"
	"luxestandard/internal/ports"
)

// Cache TTLs per key family. The cache is purely derived state: losing it
// only raises read latency, never correctness beyond the staleness window.
const (
	listingTTL    = 5 * time.Minute
	articleTTL    = 10 * time.Minute
	categoriesTTL = 10 * time.Minute
	clickTTL      = 7 * 24 * time.Hour
)

const (
	keyFeatured   = "featured_articles"
	keyCategories = "categories_with_counts"
)

// keyArticles parameterizes listing keys so distinct query shapes never collide.
func keyArticles(filter domain.ArticleFilter) string {
	category := filter.CategorySlug
	if category == "" {
		category = "all"
	}
	articleType := filter.ArticleType
	if articleType == "" {
		articleType = "all"
	}
	return fmt.Sprintf("articles_%s_%s_%d_%d", category, articleType, filter.Page, filter.Limit)
}

func keyArticle(slug string) string {
	return "article_" + slug
}

func keyCategory(categoryID int64) string {
	return fmt.Sprintf("category_%d", categoryID)
}

func keyClicks(linkID int64, day time.Time) string {
	return fmt.Sprintf("clicks_%d_%s", linkID, day.UTC().Format("2006-01-02"))
}

// cached implements the read-through contract: return the stored value if
// present, otherwise run the producer, store its result with the given TTL,
// and return it. Concurrent misses all run the producer and overwrite the
// same key; stampedes are accepted at this traffic level. Cache store
// errors degrade to a direct producer call.
func cached[T any](ctx context.Context, store ports.Cache, log *slog.Logger, key string, ttl time.Duration, produce func(context.Context) (T, error)) (T, error) {
	raw, ok, err := store.Get(ctx, key)
	if err != nil {
		log.Warn("cache read failed", "key", key, "error", err)
	} else if ok {
		var value T
		if err := json.Unmarshal([]byte(raw), &value); err == nil {
			return value, nil
		}
		log.Warn("discarding unreadable cache entry", "key", key)
	}

	value, err := produce(ctx)
	if err != nil {
		var zero T
		return zero, err
	}

	if encoded, err := json.Marshal(value); err != nil {
		log.Warn("cache encode failed", "key", key, "error", err)
	} else if err := store.Set(ctx, key, string(encoded), ttl); err != nil {
		log.Warn("cache write failed", "key", key, "error", err)
	}

	return value, nil
}
