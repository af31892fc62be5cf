package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"luxestandard/internal/domain"
	"luxestandard/internal/generator"
	"luxestandard/internal/ports"
)

// MaxBatchSize bounds one batch generation call.
const MaxBatchSize = 10

// GeneratorDeps wires the driven adapters into the generation pipeline.
type GeneratorDeps struct {
	Links    ports.LinkRepository
	Articles ports.ArticleRepository
	Chat     ports.ChatClient
	Cache    ports.Cache
	SiteName string
	SiteURL  string
	Logger   *slog.Logger
}

// Generator implements the article-generation workflow: prompt, model call,
// validation, post-processing, persistence, cache invalidation.
type Generator struct {
	links    ports.LinkRepository
	articles ports.ArticleRepository
	chat     ports.ChatClient
	cache    ports.Cache
	siteName string
	siteURL  string
	log      *slog.Logger
}

// NewGenerator constructs the pipeline component.
func NewGenerator(deps GeneratorDeps) *Generator {
	log := deps.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Generator{
		links:    deps.Links,
		articles: deps.Articles,
		chat:     deps.Chat,
		cache:    deps.Cache,
		siteName: deps.SiteName,
		siteURL:  deps.SiteURL,
		log:      log,
	}
}

// GenerateRequest describes one single-item generation call.
type GenerateRequest struct {
	LinkID      int64
	Type        domain.ArticleType
	AutoPublish bool
}

// Generate runs the full pipeline for one affiliate link. It fails closed:
// nothing persists unless the model response parsed and validated, and a
// committed article always triggers cache invalidation for the featured
// list and the owning category.
func (g *Generator) Generate(ctx context.Context, req GenerateRequest) (*domain.ArticleRef, error) {
	link, err := g.links.GetByID(ctx, req.LinkID)
	if err != nil {
		return nil, fmt.Errorf("lookup link %d: %w", req.LinkID, err)
	}

	system, user := generator.BuildPrompt(*link, req.Type)

	raw, err := g.chat.Complete(ctx, system, user)
	if err != nil {
		return nil, fmt.Errorf("generate article for link %d: %w", req.LinkID, err)
	}

	payload, err := generator.ParsePayload(raw)
	if err != nil {
		return nil, err
	}

	body := generator.ReplacePlaceholder(payload.BodyHTML, *link)

	words := generator.CountWords(body)
	if minimum := req.Type.MinWordCount(); words < minimum {
		return nil, fmt.Errorf("%w: body has %d words, minimum for %s is %d",
			domain.ErrGenerationInvalid, words, req.Type, minimum)
	}

	now := time.Now()
	slug := generator.UniqueSlug(payload.Title, now)

	schemaJSON, err := generator.BuildSchemaJSON(payload, *link, slug, g.siteName, g.siteURL, now)
	if err != nil {
		return nil, fmt.Errorf("build schema markup: %w", err)
	}

	keywords, err := json.Marshal(payload.SEOKeywords)
	if err != nil {
		return nil, fmt.Errorf("serialize keywords: %w", err)
	}

	status := domain.StatusDraft
	var publishedAt *time.Time
	if req.AutoPublish {
		status = domain.StatusPublished
		publishedAt = &now
	}

	article := &domain.Article{
		AffiliateLinkID: link.ID,
		CategoryID:      link.CategoryID,
		Slug:            slug,
		Title:           payload.Title,
		Subtitle:        payload.Subtitle,
		Excerpt:         payload.Excerpt,
		BodyHTML:        body,
		ArticleType:     req.Type,
		SEOTitle:        payload.SEOTitle,
		SEODescription:  payload.SEODescription,
		SEOKeywords:     string(keywords),
		SchemaJSON:      schemaJSON,
		WordCount:       words,
		ReadTimeMinutes: generator.ReadTime(words),
		Status:          status,
		PublishedAt:     publishedAt,
	}

	id, err := g.articles.CommitGenerated(ctx, article)
	if err != nil {
		return nil, fmt.Errorf("commit article for link %d: %w", req.LinkID, err)
	}

	if err := g.cache.Delete(ctx, keyFeatured, keyCategory(link.CategoryID)); err != nil {
		g.log.Warn("cache invalidation failed", "article_id", id, "error", err)
	}

	g.log.Info("generated article",
		"link_id", link.ID, "article_id", id, "slug", slug,
		"type", req.Type, "words", words, "status", status)

	return &domain.ArticleRef{ID: id, Slug: slug, Title: payload.Title, Status: status}, nil
}

// BatchItem is one successfully generated entry of a batch report.
type BatchItem struct {
	LinkID    int64  `json:"id"`
	ArticleID int64  `json:"article_id"`
	Slug      string `json:"slug"`
}

// BatchError attributes one failed entry of a batch report to its link.
type BatchError struct {
	LinkID int64  `json:"id"`
	Error  string `json:"error"`
}

// BatchReport is always complete: per-item failures never abort the batch.
type BatchReport struct {
	Generated []BatchItem  `json:"generated"`
	Errors    []BatchError `json:"errors"`
}

// GenerateBatch runs the pipeline for each link id in order. Item failures
// are isolated and recorded; there is no rollback across items.
func (g *Generator) GenerateBatch(ctx context.Context, linkIDs []int64, articleType domain.ArticleType, autoPublish bool) (*BatchReport, error) {
	if len(linkIDs) > MaxBatchSize {
		return nil, fmt.Errorf("batch of %d links exceeds maximum of %d", len(linkIDs), MaxBatchSize)
	}

	report := &BatchReport{Generated: []BatchItem{}, Errors: []BatchError{}}
	for _, linkID := range linkIDs {
		ref, err := g.Generate(ctx, GenerateRequest{
			LinkID:      linkID,
			Type:        articleType,
			AutoPublish: autoPublish,
		})
		if err != nil {
			reason := err.Error()
			if errors.Is(err, domain.ErrNotFound) {
				reason = "affiliate link not found"
			}
			g.log.Warn("batch item failed", "link_id", linkID, "error", err)
			report.Errors = append(report.Errors, BatchError{LinkID: linkID, Error: reason})
			continue
		}
		report.Generated = append(report.Generated, BatchItem{
			LinkID:    linkID,
			ArticleID: ref.ID,
			Slug:      ref.Slug,
		})
	}

	return report, nil
}

// GenerateMissing is the scheduled entrypoint: it drafts spotlight articles
// for up to limit links lacking a published article, logging and swallowing
// per-item failures.
func (g *Generator) GenerateMissing(ctx context.Context, limit int) {
	links, err := g.links.WithoutPublishedArticle(ctx, limit)
	if err != nil {
		g.log.Error("auto-generate batch failed", "error", err)
		return
	}

	for _, link := range links {
		_, err := g.Generate(ctx, GenerateRequest{LinkID: link.ID, Type: domain.TypeSpotlight})
		if err != nil {
			g.log.Error("auto-generate failed", "link_id", link.ID, "error", err)
			continue
		}
		g.log.Info("auto-generated article", "link_id", link.ID, "product", link.ProductName)
	}
}
