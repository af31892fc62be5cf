package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"luxestandard/internal/domain"
)

type fakeLinks struct {
	byID   map[int64]*domain.AffiliateLink
	nextID int64
}

func newFakeLinks(links ...*domain.AffiliateLink) *fakeLinks {
	f := &fakeLinks{byID: map[int64]*domain.AffiliateLink{}, nextID: 1}
	for _, link := range links {
		f.byID[link.ID] = link
		if link.ID >= f.nextID {
			f.nextID = link.ID + 1
		}
	}
	return f
}

func (f *fakeLinks) Create(ctx context.Context, link *domain.AffiliateLink) error {
	link.ID = f.nextID
	f.nextID++
	link.CreatedAt = time.Now()
	link.UpdatedAt = link.CreatedAt
	f.byID[link.ID] = link
	return nil
}

func (f *fakeLinks) GetByID(ctx context.Context, id int64) (*domain.AffiliateLink, error) {
	link, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *link
	return &copied, nil
}

func (f *fakeLinks) List(ctx context.Context, categoryID int64) ([]domain.LinkOverview, error) {
	var result []domain.LinkOverview
	for _, link := range f.byID {
		if categoryID != 0 && link.CategoryID != categoryID {
			continue
		}
		result = append(result, domain.LinkOverview{AffiliateLink: *link})
	}
	return result, nil
}

func (f *fakeLinks) Update(ctx context.Context, id int64, patch domain.LinkPatch) (*domain.AffiliateLink, error) {
	link, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if patch.ProductName != nil {
		link.ProductName = *patch.ProductName
	}
	if patch.IsFeatured != nil {
		link.IsFeatured = *patch.IsFeatured
	}
	copied := *link
	return &copied, nil
}

func (f *fakeLinks) Delete(ctx context.Context, id int64) error {
	delete(f.byID, id)
	return nil
}

func (f *fakeLinks) WithoutPublishedArticle(ctx context.Context, limit int) ([]domain.AffiliateLink, error) {
	var result []domain.AffiliateLink
	for _, link := range f.byID {
		if len(result) == limit {
			break
		}
		result = append(result, *link)
	}
	return result, nil
}

// fakeArticles records committed articles and serves canned read results.
type fakeArticles struct {
	committed []*domain.Article
	nextID    int64

	cards   []domain.ArticleCard
	total   int
	detail  *domain.ArticleDetail
	related []domain.ArticleCard
	stats   *domain.Stats

	listCalls int
}

func (f *fakeArticles) CommitGenerated(ctx context.Context, article *domain.Article) (int64, error) {
	f.nextID++
	article.ID = f.nextID
	f.committed = append(f.committed, article)
	return article.ID, nil
}

func (f *fakeArticles) List(ctx context.Context, filter domain.ArticleFilter) ([]domain.ArticleCard, int, error) {
	f.listCalls++
	return f.cards, f.total, nil
}

func (f *fakeArticles) GetBySlug(ctx context.Context, slug string) (*domain.ArticleDetail, error) {
	if f.detail == nil || f.detail.Slug != slug {
		return nil, domain.ErrNotFound
	}
	copied := *f.detail
	return &copied, nil
}

func (f *fakeArticles) Related(ctx context.Context, categoryID int64, excludeSlug string, limit int) ([]domain.ArticleCard, error) {
	return f.related, nil
}

func (f *fakeArticles) Featured(ctx context.Context, limit int) ([]domain.ArticleCard, error) {
	return f.cards, nil
}

func (f *fakeArticles) Search(ctx context.Context, query string, limit int) ([]domain.ArticleCard, error) {
	return f.cards, nil
}

func (f *fakeArticles) SetStatus(ctx context.Context, id int64, status domain.ArticleStatus) (*domain.ArticleRef, error) {
	for _, article := range f.committed {
		if article.ID == id {
			article.Status = status
			return &domain.ArticleRef{ID: id, Slug: article.Slug, Title: article.Title, Status: status}, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeArticles) Delete(ctx context.Context, id int64) error {
	return nil
}

func (f *fakeArticles) SitemapEntries(ctx context.Context, limit int) ([]domain.SitemapEntry, error) {
	return nil, nil
}

func (f *fakeArticles) Stats(ctx context.Context) (*domain.Stats, error) {
	return f.stats, nil
}

// fakeChat replays scripted responses keyed by call order.
type fakeChat struct {
	responses []string
	err       error
	calls     int
}

func (f *fakeChat) Complete(ctx context.Context, system, user string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	if len(f.responses) == 0 {
		return "", fmt.Errorf("no scripted response")
	}
	response := f.responses[0]
	if len(f.responses) > 1 {
		f.responses = f.responses[1:]
	}
	return response, nil
}

// fakeCache is an in-memory ports.Cache recording deletions.
type fakeCache struct {
	mu      sync.Mutex
	entries map[string]string
	deleted []string
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[string]string{}}
}

func (f *fakeCache) Get(ctx context.Context, key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	value, ok := f.entries[key]
	return value, ok, nil
}

func (f *fakeCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries[key] = value
	return nil
}

func (f *fakeCache) Delete(ctx context.Context, keys ...string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, key := range keys {
		delete(f.entries, key)
		f.deleted = append(f.deleted, key)
	}
	return nil
}
