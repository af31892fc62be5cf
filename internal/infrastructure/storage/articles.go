package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"luxestandard/internal/domain"
	"luxestandard/internal/ports"
)

// ArticleRepository owns the articles and article_affiliate_links tables.
type ArticleRepository struct {
	db *sql.DB
}

var _ ports.ArticleRepository = (*ArticleRepository)(nil)

// NewArticleRepository wires a sql.DB implementation.
func NewArticleRepository(db *sql.DB) *ArticleRepository {
	return &ArticleRepository{db: db}
}

// CommitGenerated inserts the article row and its idempotent link
// association inside one transaction, so a failed association never leaves
// an orphaned article behind.
func (r *ArticleRepository) CommitGenerated(ctx context.Context, article *domain.Article) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin commit article: %w", err)
	}
	defer tx.Rollback()

	insert := `INSERT INTO articles
		(affiliate_link_id, category_id, slug, title, subtitle, excerpt,
		 body_html, article_type, seo_title, seo_description, seo_keywords,
		 schema_json, word_count, read_time_minutes, status, published_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	RETURNING id`

	var id int64
	err = tx.QueryRowContext(ctx, insert,
		article.AffiliateLinkID,
		article.CategoryID,
		article.Slug,
		article.Title,
		article.Subtitle,
		article.Excerpt,
		article.BodyHTML,
		article.ArticleType,
		article.SEOTitle,
		article.SEODescription,
		article.SEOKeywords,
		article.SchemaJSON,
		article.WordCount,
		article.ReadTimeMinutes,
		article.Status,
		article.PublishedAt,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert article: %w", err)
	}

	association := `INSERT INTO article_affiliate_links (article_id, affiliate_link_id, placement)
	VALUES ($1, $2, 'body')
	ON CONFLICT DO NOTHING`

	if _, err := tx.ExecContext(ctx, association, id, article.AffiliateLinkID); err != nil {
		return 0, fmt.Errorf("insert article association: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit article: %w", err)
	}

	article.ID = id
	return id, nil
}

// cardQuery selects the published listing projection with its joins.
func cardQuery() sq.SelectBuilder {
	return psql.Select(
		"a.id", "a.slug", "a.title", "a.subtitle", "a.excerpt", "a.article_type",
		"a.read_time_minutes", "a.published_at",
		"COALESCE(c.name, '') AS category_name", "COALESCE(c.slug, '') AS category_slug",
		"COALESCE(al.product_name, '') AS product_name", "COALESCE(al.brand, '') AS brand",
		"COALESCE(al.price_display, '') AS price_display", "al.id AS link_id",
	).
		From("articles a").
		LeftJoin("categories c ON c.id = a.category_id").
		LeftJoin("affiliate_links al ON al.id = a.affiliate_link_id").
		Where(sq.Eq{"a.status": domain.StatusPublished})
}

func applyFilter(qb sq.SelectBuilder, filter domain.ArticleFilter) sq.SelectBuilder {
	if filter.CategorySlug != "" {
		qb = qb.Where(sq.Eq{"c.slug": filter.CategorySlug})
	}
	if filter.ArticleType != "" {
		qb = qb.Where(sq.Eq{"a.article_type": filter.ArticleType})
	}
	return qb
}

// List returns one page of published cards plus the unpaginated total.
func (r *ArticleRepository) List(ctx context.Context, filter domain.ArticleFilter) ([]domain.ArticleCard, int, error) {
	offset := (filter.Page - 1) * filter.Limit

	qb := applyFilter(cardQuery(), filter).
		OrderBy("a.published_at DESC").
		Limit(uint64(filter.Limit)).
		Offset(uint64(offset))

	query, args, err := qb.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build article listing: %w", err)
	}

	cards, err := r.queryCards(ctx, query, args)
	if err != nil {
		return nil, 0, err
	}

	countQB := applyFilter(
		psql.Select("COUNT(*)").
			From("articles a").
			LeftJoin("categories c ON c.id = a.category_id").
			Where(sq.Eq{"a.status": domain.StatusPublished}),
		filter,
	)

	countQuery, countArgs, err := countQB.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build article count: %w", err)
	}

	var total int
	if err := r.db.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count articles: %w", err)
	}

	return cards, total, nil
}

// GetBySlug loads one published article with its joined product context.
func (r *ArticleRepository) GetBySlug(ctx context.Context, slug string) (*domain.ArticleDetail, error) {
	query := `SELECT a.id, a.affiliate_link_id, a.category_id, a.slug, a.title, a.subtitle,
		a.excerpt, a.body_html, a.article_type, a.seo_title, a.seo_description,
		a.seo_keywords, a.schema_json, a.word_count, a.read_time_minutes,
		a.status, a.published_at, a.created_at, a.updated_at,
		COALESCE(c.name, ''), COALESCE(c.slug, ''),
		COALESCE(al.product_name, ''), COALESCE(al.brand, ''),
		COALESCE(al.price_display, ''), COALESCE(al.affiliate_url, '')
	FROM articles a
	LEFT JOIN categories c ON c.id = a.category_id
	LEFT JOIN affiliate_links al ON al.id = a.affiliate_link_id
	WHERE a.slug = $1 AND a.status = 'published'`

	var (
		detail      domain.ArticleDetail
		publishedAt sql.NullTime
	)
	err := r.db.QueryRowContext(ctx, query, slug).Scan(
		&detail.ID, &detail.AffiliateLinkID, &detail.CategoryID, &detail.Slug,
		&detail.Title, &detail.Subtitle, &detail.Excerpt, &detail.BodyHTML,
		&detail.ArticleType, &detail.SEOTitle, &detail.SEODescription,
		&detail.SEOKeywords, &detail.SchemaJSON, &detail.WordCount,
		&detail.ReadTimeMinutes, &detail.Status, &publishedAt,
		&detail.CreatedAt, &detail.UpdatedAt,
		&detail.CategoryName, &detail.CategorySlug,
		&detail.ProductName, &detail.Brand,
		&detail.PriceDisplay, &detail.AffiliateURL,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query article %s: %w", slug, err)
	}

	detail.PublishedAt = timePtr(publishedAt)
	detail.TrackedURL = domain.TrackedPath(detail.AffiliateLinkID)
	return &detail, nil
}

// Related lists recent published cards from the same category.
func (r *ArticleRepository) Related(ctx context.Context, categoryID int64, excludeSlug string, limit int) ([]domain.ArticleCard, error) {
	qb := cardQuery().
		Where(sq.Eq{"a.category_id": categoryID}).
		Where(sq.NotEq{"a.slug": excludeSlug}).
		OrderBy("a.published_at DESC").
		Limit(uint64(limit))

	query, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build related listing: %w", err)
	}
	return r.queryCards(ctx, query, args)
}

// Featured lists recent published cards whose link is flagged featured.
func (r *ArticleRepository) Featured(ctx context.Context, limit int) ([]domain.ArticleCard, error) {
	qb := cardQuery().
		Where(sq.Eq{"al.is_featured": true}).
		OrderBy("a.published_at DESC").
		Limit(uint64(limit))

	query, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build featured listing: %w", err)
	}
	return r.queryCards(ctx, query, args)
}

// Search matches published articles on title, excerpt, or SEO keywords.
func (r *ArticleRepository) Search(ctx context.Context, query string, limit int) ([]domain.ArticleCard, error) {
	pattern := "%" + query + "%"
	qb := cardQuery().
		Where(sq.Or{
			sq.ILike{"a.title": pattern},
			sq.ILike{"a.excerpt": pattern},
			sq.ILike{"a.seo_keywords": pattern},
		}).
		OrderBy("a.published_at DESC").
		Limit(uint64(limit))

	stmt, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build search: %w", err)
	}
	return r.queryCards(ctx, stmt, args)
}

// SetStatus moves an article between draft and published. Publishing stamps
// published_at; unpublishing keeps the previous timestamp.
func (r *ArticleRepository) SetStatus(ctx context.Context, id int64, status domain.ArticleStatus) (*domain.ArticleRef, error) {
	var query string
	if status == domain.StatusPublished {
		query = `UPDATE articles SET status = 'published', published_at = NOW(), updated_at = NOW()
			WHERE id = $1 RETURNING id, slug, title, status`
	} else {
		query = `UPDATE articles SET status = 'draft', updated_at = NOW()
			WHERE id = $1 RETURNING id, slug, title, status`
	}

	var ref domain.ArticleRef
	err := r.db.QueryRowContext(ctx, query, id).Scan(&ref.ID, &ref.Slug, &ref.Title, &ref.Status)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("set article %d status: %w", id, err)
	}

	return &ref, nil
}

// Delete removes the article; deleting an unknown id is a no-op.
func (r *ArticleRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM articles WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete article %d: %w", id, err)
	}
	return nil
}

// SitemapEntries lists published slugs with their last update time.
func (r *ArticleRepository) SitemapEntries(ctx context.Context, limit int) ([]domain.SitemapEntry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT slug, updated_at FROM articles WHERE status = 'published'
		 ORDER BY updated_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("query sitemap entries: %w", err)
	}
	defer rows.Close()

	var result []domain.SitemapEntry
	for rows.Next() {
		var entry domain.SitemapEntry
		if err := rows.Scan(&entry.Slug, &entry.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan sitemap entry: %w", err)
		}
		result = append(result, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}

	return result, nil
}

// Stats aggregates content inventory for the admin dashboard.
func (r *ArticleRepository) Stats(ctx context.Context) (*domain.Stats, error) {
	stats := &domain.Stats{}

	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*),
			COUNT(*) FILTER (WHERE status = 'published'),
			COUNT(*) FILTER (WHERE status = 'draft')
		 FROM articles`).
		Scan(&stats.Articles.Total, &stats.Articles.Published, &stats.Articles.Drafts)
	if err != nil {
		return nil, fmt.Errorf("count articles: %w", err)
	}

	err = r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM affiliate_links`).
		Scan(&stats.AffiliateLinks.Total)
	if err != nil {
		return nil, fmt.Errorf("count links: %w", err)
	}

	byCategory, err := r.db.QueryContext(ctx,
		`SELECT c.name, COUNT(a.id)
		 FROM categories c
		 LEFT JOIN articles a ON a.category_id = c.id AND a.status = 'published'
		 GROUP BY c.id, c.name
		 ORDER BY COUNT(a.id) DESC`)
	if err != nil {
		return nil, fmt.Errorf("query category stats: %w", err)
	}
	defer byCategory.Close()

	for byCategory.Next() {
		var row domain.CategoryArticleCount
		if err := byCategory.Scan(&row.Name, &row.Count); err != nil {
			return nil, fmt.Errorf("scan category stats: %w", err)
		}
		stats.ByCategory = append(stats.ByCategory, row)
	}
	if err := byCategory.Err(); err != nil {
		return nil, fmt.Errorf("category stats iteration: %w", err)
	}

	byType, err := r.db.QueryContext(ctx,
		`SELECT article_type, COUNT(*) FROM articles
		 WHERE status = 'published' GROUP BY article_type`)
	if err != nil {
		return nil, fmt.Errorf("query type stats: %w", err)
	}
	defer byType.Close()

	for byType.Next() {
		var row domain.TypeArticleCount
		if err := byType.Scan(&row.ArticleType, &row.Count); err != nil {
			return nil, fmt.Errorf("scan type stats: %w", err)
		}
		stats.ByType = append(stats.ByType, row)
	}
	if err := byType.Err(); err != nil {
		return nil, fmt.Errorf("type stats iteration: %w", err)
	}

	recent, err := r.db.QueryContext(ctx,
		`SELECT id, slug, title, status FROM articles ORDER BY created_at DESC LIMIT 10`)
	if err != nil {
		return nil, fmt.Errorf("query recent articles: %w", err)
	}
	defer recent.Close()

	for recent.Next() {
		var ref domain.ArticleRef
		if err := recent.Scan(&ref.ID, &ref.Slug, &ref.Title, &ref.Status); err != nil {
			return nil, fmt.Errorf("scan recent article: %w", err)
		}
		stats.Recent = append(stats.Recent, ref)
	}
	if err := recent.Err(); err != nil {
		return nil, fmt.Errorf("recent articles iteration: %w", err)
	}

	return stats, nil
}

func (r *ArticleRepository) queryCards(ctx context.Context, query string, args []any) ([]domain.ArticleCard, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query article cards: %w", err)
	}
	defer rows.Close()

	var result []domain.ArticleCard
	for rows.Next() {
		var (
			card        domain.ArticleCard
			publishedAt sql.NullTime
			linkID      sql.NullInt64
		)
		err := rows.Scan(
			&card.ID, &card.Slug, &card.Title, &card.Subtitle, &card.Excerpt,
			&card.ArticleType, &card.ReadTimeMinutes, &publishedAt,
			&card.CategoryName, &card.CategorySlug,
			&card.ProductName, &card.Brand, &card.PriceDisplay, &linkID,
		)
		if err != nil {
			return nil, fmt.Errorf("scan article card: %w", err)
		}
		card.PublishedAt = timePtr(publishedAt)
		if linkID.Valid {
			card.TrackedURL = domain.TrackedPath(linkID.Int64)
		}
		result = append(result, card)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}

	return result, nil
}
