package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"luxestandard/internal/domain"
	"luxestandard/internal/ports"
)

// CatalogDeps wires the driven adapters into the admin operations.
type CatalogDeps struct {
	Links    ports.LinkRepository
	Articles ports.ArticleRepository
	Cache    ports.Cache
	Logger   *slog.Logger
}

// Catalog implements the admin surface: link CRUD, article lifecycle, stats.
type Catalog struct {
	links    ports.LinkRepository
	articles ports.ArticleRepository
	cache    ports.Cache
	log      *slog.Logger
}

// NewCatalog constructs the admin component.
func NewCatalog(deps CatalogDeps) *Catalog {
	log := deps.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Catalog{
		links:    deps.Links,
		articles: deps.Articles,
		cache:    deps.Cache,
		log:      log,
	}
}

// CreateLink validates and stores a new affiliate link. Network defaults to
// shareasale and Tags to an empty JSON array when omitted.
func (c *Catalog) CreateLink(ctx context.Context, link *domain.AffiliateLink) error {
	if strings.TrimSpace(link.ProductName) == "" {
		return fmt.Errorf("product_name is required")
	}
	if strings.TrimSpace(link.AffiliateURL) == "" {
		return fmt.Errorf("affiliate_url is required")
	}
	if link.CategoryID == 0 {
		return fmt.Errorf("category_id is required")
	}

	if link.Network == "" {
		link.Network = "shareasale"
	}
	if link.Tags == "" {
		link.Tags = "[]"
	}

	if err := c.links.Create(ctx, link); err != nil {
		return fmt.Errorf("create link: %w", err)
	}

	c.log.Info("created affiliate link", "link_id", link.ID, "product", link.ProductName)
	return nil
}

// ListLinks returns the admin link overview, optionally filtered by category.
func (c *Catalog) ListLinks(ctx context.Context, categoryID int64) ([]domain.LinkOverview, error) {
	links, err := c.links.List(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("list links: %w", err)
	}
	if links == nil {
		links = []domain.LinkOverview{}
	}
	return links, nil
}

// UpdateLink applies a partial update; nil patch fields keep stored values.
func (c *Catalog) UpdateLink(ctx context.Context, id int64, patch domain.LinkPatch) (*domain.AffiliateLink, error) {
	link, err := c.links.Update(ctx, id, patch)
	if err != nil {
		return nil, fmt.Errorf("update link %d: %w", id, err)
	}
	return link, nil
}

// DeleteLink removes a link; deleting an unknown id is a no-op.
func (c *Catalog) DeleteLink(ctx context.Context, id int64) error {
	if err := c.links.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete link %d: %w", id, err)
	}
	return nil
}

// PublishArticle moves an article to published, stamping published_at on the
// first transition, and drops its cached detail plus the featured list.
func (c *Catalog) PublishArticle(ctx context.Context, id int64) (*domain.ArticleRef, error) {
	return c.setStatus(ctx, id, domain.StatusPublished)
}

// UnpublishArticle moves an article back to draft. The stored published_at
// stays as a historical record.
func (c *Catalog) UnpublishArticle(ctx context.Context, id int64) (*domain.ArticleRef, error) {
	return c.setStatus(ctx, id, domain.StatusDraft)
}

func (c *Catalog) setStatus(ctx context.Context, id int64, status domain.ArticleStatus) (*domain.ArticleRef, error) {
	ref, err := c.articles.SetStatus(ctx, id, status)
	if err != nil {
		return nil, fmt.Errorf("set article %d status: %w", id, err)
	}

	if err := c.cache.Delete(ctx, keyArticle(ref.Slug), keyFeatured); err != nil {
		c.log.Warn("cache invalidation failed", "article_id", id, "error", err)
	}

	c.log.Info("changed article status", "article_id", id, "slug", ref.Slug, "status", status)
	return ref, nil
}

// DeleteArticle removes an article row; cached copies age out on their TTL.
func (c *Catalog) DeleteArticle(ctx context.Context, id int64) error {
	if err := c.articles.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete article %d: %w", id, err)
	}
	return nil
}

// Stats returns the content inventory summary for the dashboard.
func (c *Catalog) Stats(ctx context.Context) (*domain.Stats, error) {
	stats, err := c.articles.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("load stats: %w", err)
	}
	return stats, nil
}
