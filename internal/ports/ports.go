package ports

import (
	"context"
	"time"

	"luxestandard/internal/domain"
)

// LinkRepository owns the affiliate link catalog.
type LinkRepository interface {
	Create(ctx context.Context, link *domain.AffiliateLink) error
	GetByID(ctx context.Context, id int64) (*domain.AffiliateLink, error)
	List(ctx context.Context, categoryID int64) ([]domain.LinkOverview, error)
	Update(ctx context.Context, id int64, patch domain.LinkPatch) (*domain.AffiliateLink, error)
	Delete(ctx context.Context, id int64) error
	// WithoutPublishedArticle lists links lacking a published article, for
	// the scheduled batch job. Best-effort filter, not a lock.
	WithoutPublishedArticle(ctx context.Context, limit int) ([]domain.AffiliateLink, error)
}

// ArticleRepository persists and serves generated articles.
type ArticleRepository interface {
	// CommitGenerated inserts the article row and its link association in
	// one transaction and returns the generated article id.
	CommitGenerated(ctx context.Context, article *domain.Article) (int64, error)
	List(ctx context.Context, filter domain.ArticleFilter) ([]domain.ArticleCard, int, error)
	GetBySlug(ctx context.Context, slug string) (*domain.ArticleDetail, error)
	Related(ctx context.Context, categoryID int64, excludeSlug string, limit int) ([]domain.ArticleCard, error)
	Featured(ctx context.Context, limit int) ([]domain.ArticleCard, error)
	Search(ctx context.Context, query string, limit int) ([]domain.ArticleCard, error)
	SetStatus(ctx context.Context, id int64, status domain.ArticleStatus) (*domain.ArticleRef, error)
	Delete(ctx context.Context, id int64) error
	SitemapEntries(ctx context.Context, limit int) ([]domain.SitemapEntry, error)
	Stats(ctx context.Context) (*domain.Stats, error)
}

// CategoryRepository serves the category taxonomy.
type CategoryRepository interface {
	List(ctx context.Context) ([]domain.Category, error)
	ListWithCounts(ctx context.Context) ([]domain.CategoryCount, error)
}

// Cache is a process-external key/value store with per-key TTL. A missing
// key is never an error; the second return of Get reports presence.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// ChatClient submits a two-part instruction to the hosted text-generation
// capability and returns its raw, untrusted textual response.
type ChatClient interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// Scheduler controls when recurring jobs execute.
type Scheduler interface {
	Start(ctx context.Context, job func(time.Time)) error
	Stop(ctx context.Context) error
}
