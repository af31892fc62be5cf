package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"luxestandard/internal/domain"
	"luxestandard/internal/ports"
)

const (
	defaultPageLimit = 12
	featuredLimit    = 6
	relatedLimit     = 3
	searchLimit      = 10
	minSearchLength  = 2
	sitemapLimit     = 1000
	feedLimit        = 50
)

// ReaderDeps wires the driven adapters into the read paths.
type ReaderDeps struct {
	Articles   ports.ArticleRepository
	Categories ports.CategoryRepository
	Links      ports.LinkRepository
	Cache      ports.Cache
	Logger     *slog.Logger
}

// Reader serves the public read endpoints through the read-through cache
// and resolves outbound redirects.
type Reader struct {
	articles   ports.ArticleRepository
	categories ports.CategoryRepository
	links      ports.LinkRepository
	cache      ports.Cache
	log        *slog.Logger
}

// NewReader constructs the read-path component.
func NewReader(deps ReaderDeps) *Reader {
	log := deps.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Reader{
		articles:   deps.Articles,
		categories: deps.Categories,
		links:      deps.Links,
		cache:      deps.Cache,
		log:        log,
	}
}

// Pagination describes one listing page.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

// ArticlePage is the cached payload of the listing endpoint.
type ArticlePage struct {
	Articles   []domain.ArticleCard `json:"articles"`
	Pagination Pagination           `json:"pagination"`
}

// ListArticles serves one page of published articles, read-through cached
// per distinct filter shape for five minutes.
func (r *Reader) ListArticles(ctx context.Context, filter domain.ArticleFilter) (*ArticlePage, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = defaultPageLimit
	}

	return cached(ctx, r.cache, r.log, keyArticles(filter), listingTTL, func(ctx context.Context) (*ArticlePage, error) {
		cards, total, err := r.articles.List(ctx, filter)
		if err != nil {
			return nil, fmt.Errorf("list articles: %w", err)
		}
		if cards == nil {
			cards = []domain.ArticleCard{}
		}
		return &ArticlePage{
			Articles: cards,
			Pagination: Pagination{
				Page:  filter.Page,
				Limit: filter.Limit,
				Total: total,
				Pages: (total + filter.Limit - 1) / filter.Limit,
			},
		}, nil
	})
}

// GetArticle serves one published article with related reads, cached by
// slug for ten minutes. A missing slug returns domain.ErrNotFound and is
// never cached.
func (r *Reader) GetArticle(ctx context.Context, slug string) (*domain.ArticleDetail, error) {
	return cached(ctx, r.cache, r.log, keyArticle(slug), articleTTL, func(ctx context.Context) (*domain.ArticleDetail, error) {
		detail, err := r.articles.GetBySlug(ctx, slug)
		if err != nil {
			return nil, err
		}

		related, err := r.articles.Related(ctx, detail.CategoryID, slug, relatedLimit)
		if err != nil {
			return nil, fmt.Errorf("related articles for %s: %w", slug, err)
		}
		if related == nil {
			related = []domain.ArticleCard{}
		}
		detail.Related = related

		return detail, nil
	})
}

// Categories serves the taxonomy with published article counts, cached for
// ten minutes under a singleton key.
func (r *Reader) Categories(ctx context.Context) ([]domain.CategoryCount, error) {
	return cached(ctx, r.cache, r.log, keyCategories, categoriesTTL, func(ctx context.Context) ([]domain.CategoryCount, error) {
		counts, err := r.categories.ListWithCounts(ctx)
		if err != nil {
			return nil, fmt.Errorf("list categories: %w", err)
		}
		if counts == nil {
			counts = []domain.CategoryCount{}
		}
		return counts, nil
	})
}

// Featured serves recent published articles for featured links, cached
// under a singleton key for five minutes.
func (r *Reader) Featured(ctx context.Context) ([]domain.ArticleCard, error) {
	return cached(ctx, r.cache, r.log, keyFeatured, listingTTL, func(ctx context.Context) ([]domain.ArticleCard, error) {
		cards, err := r.articles.Featured(ctx, featuredLimit)
		if err != nil {
			return nil, fmt.Errorf("featured articles: %w", err)
		}
		if cards == nil {
			cards = []domain.ArticleCard{}
		}
		return cards, nil
	})
}

// Search matches published articles; queries shorter than two characters
// return an empty result. Search is not cached.
func (r *Reader) Search(ctx context.Context, query string) ([]domain.ArticleCard, error) {
	if len(query) < minSearchLength {
		return []domain.ArticleCard{}, nil
	}

	cards, err := r.articles.Search(ctx, query, searchLimit)
	if err != nil {
		return nil, fmt.Errorf("search articles: %w", err)
	}
	if cards == nil {
		cards = []domain.ArticleCard{}
	}
	return cards, nil
}

// ResolveRedirect returns the outbound affiliate URL for a link id.
func (r *Reader) ResolveRedirect(ctx context.Context, linkID int64) (string, error) {
	link, err := r.links.GetByID(ctx, linkID)
	if err != nil {
		return "", fmt.Errorf("resolve redirect %d: %w", linkID, err)
	}
	return link.AffiliateURL, nil
}

// TrackClick bumps the advisory per-day click counter for a link. The
// read-modify-write is deliberately not atomic: concurrent redirects can
// lose an update, which is accepted for analytics-grade counts. Callers
// run this after the redirect response is already on the wire.
func (r *Reader) TrackClick(ctx context.Context, linkID int64, day time.Time) {
	key := keyClicks(linkID, day)

	raw, ok, err := r.cache.Get(ctx, key)
	if err != nil {
		r.log.Warn("click counter read failed", "key", key, "error", err)
		return
	}

	count := 0
	if ok {
		if parsed, err := strconv.Atoi(raw); err == nil {
			count = parsed
		}
	}

	if err := r.cache.Set(ctx, key, strconv.Itoa(count+1), clickTTL); err != nil {
		r.log.Warn("click counter write failed", "key", key, "error", err)
	}
}

// Sitemap lists published article entries and all category slugs.
func (r *Reader) Sitemap(ctx context.Context) ([]domain.SitemapEntry, []domain.Category, error) {
	entries, err := r.articles.SitemapEntries(ctx, sitemapLimit)
	if err != nil {
		return nil, nil, fmt.Errorf("sitemap entries: %w", err)
	}

	categories, err := r.categories.List(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("sitemap categories: %w", err)
	}

	return entries, categories, nil
}

// Feed lists the most recent published articles for the RSS feed.
func (r *Reader) Feed(ctx context.Context) ([]domain.ArticleCard, error) {
	cards, _, err := r.articles.List(ctx, domain.ArticleFilter{Page: 1, Limit: feedLimit})
	if err != nil {
		return nil, fmt.Errorf("feed articles: %w", err)
	}
	return cards, nil
}
